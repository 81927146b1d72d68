package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Manifest describes one batch run.
type Manifest struct {
	RunID    string          `json:"run_id"`
	Created  time.Time       `json:"created"`
	Template string          `json:"template"`
	TrackDB  string          `json:"track_db"`
	Shapes   []ManifestEntry `json:"shapes"`
}

// ManifestEntry represents one track shape in the output manifest.
type ManifestEntry struct {
	ShapeID  int    `json:"shape_id"`
	Name     string `json:"name"`
	Status   string `json:"status"`
	Output   string `json:"output,omitempty"`
	Preview  string `json:"preview,omitempty"`
	Polygons int    `json:"polygons"`
	Error    string `json:"error,omitempty"`
}

// NewManifest builds a manifest with a fresh run id. Output paths are
// stored relative to outputDir when possible.
func NewManifest(template, trackDB, outputDir string, results []Result) Manifest {
	m := Manifest{
		RunID:    uuid.New().String(),
		Created:  time.Now().UTC(),
		Template: template,
		TrackDB:  trackDB,
		Shapes:   make([]ManifestEntry, len(results)),
	}
	for i, r := range results {
		m.Shapes[i] = ManifestEntry{
			ShapeID:  r.ShapeID,
			Name:     r.Name,
			Status:   r.Status(),
			Output:   relTo(outputDir, r.Output),
			Preview:  relTo(outputDir, r.Preview),
			Polygons: r.Polygons,
			Error:    r.Error,
		}
	}
	return m
}

// Status is "ok", "skipped" or "failed".
func (r Result) Status() string {
	switch {
	case r.Success:
		return "ok"
	case r.Skipped:
		return "skipped"
	default:
		return "failed"
	}
}

// WriteManifest writes m as indented JSON.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write %s: %w", path, err)
	}
	return nil
}

func relTo(dir, path string) string {
	if path == "" || dir == "" {
		return path
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
