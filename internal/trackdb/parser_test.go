package trackdb

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"track-replicator/internal/geometry"
	"track-replicator/internal/mathutil"
)

const fixture = `SIMISA@@@@@@@@@@JINX0T0t______
// hand-written fixture
TrackSections ( 3
	TrackSection ( 1
		SectionSize ( 1.435 10 )
	)
	TrackSection ( 2
		SectionSize ( 1.435 0 )
		SectionCurve ( 500 2.5 )
	)
	_SKIP ( TrackSection ( 3 SectionSize ( 1 1 ) ) )
	TrackSection ( 4 SectionSize ( 1.0 0 ) SectionCurve ( 120 -10 ) )
)
comment ( "ignored ( block" )
TrackShapes ( 2
	TrackShape ( 10
		FileName ( A1t10mStrt.s )
		NumPaths ( 1 )
		SectionIdx ( 1 0 0 0 0 1 )
	)
	TrackShape ( 20
		FileName ( "curves\A1t500r5d.s" )
		NumPaths ( 2 )
		SectionIdx ( 2 0 0 0 0 2 2 )
		SectionIdx ( 1 -5 0 0 -90 4 )
	)
)
`

func TestParse(t *testing.T) {
	t.Parallel()

	db, err := Parse(strings.NewReader(fixture))
	require.NoError(t, err)

	require.Len(t, db.Sections, 3)
	assert.Equal(t, Section{ID: 1, Gauge: 1.435, Leg: geometry.StraightLeg(10)}, db.Sections[1])
	assert.Equal(t, Section{ID: 2, Gauge: 1.435, Leg: geometry.CurveLeg(500, 2.5)}, db.Sections[2])
	assert.Equal(t, geometry.CurveLeg(120, -10), db.Sections[4].Leg)
	_, err = db.Sections.Lookup(3)
	assert.ErrorIs(t, err, ErrUnknownSection)

	shapes := db.ShapesByID()
	require.Len(t, shapes, 2)
	assert.Equal(t, 10, shapes[0].ID)
	assert.Equal(t, "A1t10mStrt", shapes[0].Name())
	require.Len(t, shapes[0].Paths, 1)
	assert.Equal(t, []int{1}, shapes[0].Paths[0].SectionIDs)

	curved := shapes[1]
	assert.Equal(t, "A1t500r5d", curved.Name())
	require.Len(t, curved.Paths, 2)
	assert.Equal(t, []int{2, 2}, curved.Paths[0].SectionIDs)
	assert.Equal(t, geometry.Pose{Position: mathutil.Vec3{-5, 0, 0}, Heading: 270}, curved.Paths[1].Start)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"unbalanced close": `TrackSections ( 1 ) )`,
		"unclosed block":   `TrackSections ( 1 TrackSection ( 1`,
		"bad number":       `TrackSections ( 1 TrackSection ( x SectionSize ( 1 1 ) ) )`,
		"short path":       `TrackShapes ( 1 TrackShape ( 1 SectionIdx ( 3 0 0 0 0 1 ) ) )`,
		"missing size arg": `TrackSections ( 1 TrackSection ( 1 SectionSize ( 1 ) ) )`,
		"unterminated":     `TrackShapes ( 1 TrackShape ( 1 FileName ( "a.s ) ) )`,
		"anonymous group":  `TrackShapes ( ( 1 ) )`,
		"negative count":   `TrackShapes ( 1 TrackShape ( 10 FileName ( a.s ) SectionIdx ( -1 0 0 0 0 ) ) )`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestParseDeepNestingUsesNoRecursion(t *testing.T) {
	t.Parallel()

	depth := 100000
	doc := strings.Repeat("a ( ", depth) + strings.Repeat(") ", depth)
	toks, err := tokenize(strings.NewReader(doc))
	require.NoError(t, err)
	blocks, err := parseBlocks(toks)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "tsection.dat")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0644))

	db, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, db.Shapes, 2)

	_, err = Load(filepath.Join(dir, "nope.dat"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestTrackShapeNameFallback(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "shape7", TrackShape{ID: 7}.Name())
}

func TestParseComments(t *testing.T) {
	t.Parallel()

	doc := `TrackShapes ( 1 // shape count
	TrackShape ( 7 FileName ( "dir//a1t.s" )// trailing
		SectionIdx ( 1 0 0 0 0 3 )//( unbalanced in comment
	)
)`
	db, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Contains(t, db.Shapes, 7)
	assert.Equal(t, "dir//a1t.s", db.Shapes[7].FileName)
	assert.Equal(t, []int{3}, db.Shapes[7].Paths[0].SectionIDs)
}
