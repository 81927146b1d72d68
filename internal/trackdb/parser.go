package trackdb

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"track-replicator/internal/geometry"
	"track-replicator/internal/mathutil"
)

// Load reads a track database file.
//
// The file holds parenthesised blocks:
//
//	TrackSections ( 2
//		TrackSection ( 1 SectionSize ( 1.435 10 ) )
//		TrackSection ( 2 SectionSize ( 1.435 0 ) SectionCurve ( 500 2.5 ) )
//	)
//	TrackShapes ( 1
//		TrackShape ( 10
//			FileName ( A1t10mStrt.s )
//			SectionIdx ( 1 0 0 0 0 1 )
//		)
//	)
//
// SectionCurve angles are in degrees, positive turning left. SectionIdx lists
// the section count, the start position and heading, then the section ids.
// Blocks named "comment" or starting with "_" are ignored.
func Load(path string) (Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return Database{}, fmt.Errorf("trackdb: open %s: %w", path, err)
	}
	defer f.Close()

	db, err := Parse(f)
	if err != nil {
		return Database{}, fmt.Errorf("trackdb: parse %s: %w", path, err)
	}
	return db, nil
}

// Parse reads a track database from r.
func Parse(r io.Reader) (Database, error) {
	toks, err := tokenize(r)
	if err != nil {
		return Database{}, err
	}
	blocks, err := parseBlocks(toks)
	if err != nil {
		return Database{}, err
	}

	db := Database{Sections: make(Sections), Shapes: make(map[int]TrackShape)}
	for _, b := range blocks {
		switch {
		case skipped(b):
		case strings.EqualFold(b.name, "TrackSections"):
			for _, c := range b.children {
				if skipped(c) || !strings.EqualFold(c.name, "TrackSection") {
					continue
				}
				sec, err := parseSection(c)
				if err != nil {
					return Database{}, err
				}
				db.Sections[sec.ID] = sec
			}
		case strings.EqualFold(b.name, "TrackShapes"):
			for _, c := range b.children {
				if skipped(c) || !strings.EqualFold(c.name, "TrackShape") {
					continue
				}
				ts, err := parseTrackShape(c)
				if err != nil {
					return Database{}, err
				}
				db.Shapes[ts.ID] = ts
			}
		}
	}
	return db, nil
}

func skipped(b *block) bool {
	return strings.EqualFold(b.name, "comment") || strings.HasPrefix(b.name, "_")
}

func parseSection(b *block) (Section, error) {
	id, err := argInt(b, 0)
	if err != nil {
		return Section{}, err
	}
	sec := Section{ID: id}

	if size := b.child("SectionSize"); size != nil {
		if sec.Gauge, err = argFloat(size, 0); err != nil {
			return Section{}, err
		}
		length, err := argFloat(size, 1)
		if err != nil {
			return Section{}, err
		}
		sec.Leg = geometry.StraightLeg(length)
	}

	if curve := b.child("SectionCurve"); curve != nil {
		radius, err := argFloat(curve, 0)
		if err != nil {
			return Section{}, err
		}
		angle, err := argFloat(curve, 1)
		if err != nil {
			return Section{}, err
		}
		sec.Leg = geometry.CurveLeg(radius, angle)
	}
	return sec, nil
}

func parseTrackShape(b *block) (TrackShape, error) {
	id, err := argInt(b, 0)
	if err != nil {
		return TrackShape{}, err
	}
	ts := TrackShape{ID: id}
	if fn := b.child("FileName"); fn != nil && len(fn.args) > 0 {
		ts.FileName = fn.args[0]
	}

	for _, c := range b.children {
		if !strings.EqualFold(c.name, "SectionIdx") {
			continue
		}
		p, err := parsePath(c)
		if err != nil {
			return TrackShape{}, fmt.Errorf("track shape %d: %w", id, err)
		}
		ts.Paths = append(ts.Paths, p)
	}
	return ts, nil
}

func parsePath(b *block) (Path, error) {
	n, err := argInt(b, 0)
	if err != nil {
		return Path{}, err
	}
	var v [4]float64
	for i := range v {
		if v[i], err = argFloat(b, i+1); err != nil {
			return Path{}, err
		}
	}
	if n < 0 {
		return Path{}, fmt.Errorf("line %d: SectionIdx declares %d sections", b.line, n)
	}
	if len(b.args) < 5+n {
		return Path{}, fmt.Errorf("line %d: SectionIdx declares %d sections, has %d", b.line, n, len(b.args)-5)
	}

	p := Path{
		Start: geometry.Pose{
			Position: mathutil.Vec3{v[0], v[1], v[2]},
			Heading:  mathutil.NormalizeDeg(v[3]),
		},
		SectionIDs: make([]int, n),
	}
	for i := 0; i < n; i++ {
		if p.SectionIDs[i], err = argInt(b, 5+i); err != nil {
			return Path{}, err
		}
	}
	return p, nil
}

func argFloat(b *block, i int) (float64, error) {
	if i >= len(b.args) {
		return 0, fmt.Errorf("line %d: %s: missing argument %d", b.line, b.name, i+1)
	}
	v, err := strconv.ParseFloat(b.args[i], 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: %s: %w", b.line, b.name, err)
	}
	return v, nil
}

func argInt(b *block, i int) (int, error) {
	if i >= len(b.args) {
		return 0, fmt.Errorf("line %d: %s: missing argument %d", b.line, b.name, i+1)
	}
	v, err := strconv.Atoi(b.args[i])
	if err != nil {
		return 0, fmt.Errorf("line %d: %s: %w", b.line, b.name, err)
	}
	return v, nil
}
