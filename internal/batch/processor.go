// Package batch replicates a template shape over every track shape of a
// database on a pool of workers and writes the results to disk.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"track-replicator/internal/monitoring"
	"track-replicator/internal/preview"
	"track-replicator/internal/replicate"
	"track-replicator/internal/shape"
	"track-replicator/internal/texture"
	"track-replicator/internal/trackdb"
)

// Config holds all shared resources for a batch run.
type Config struct {
	Template    shape.Shape
	Sections    trackdb.Sections
	OutputDir   string
	Workers     int
	Preview     bool
	PreviewOpts preview.Options
	TexResolver texture.Resolver // may be nil
	Compressor  *Compressor      // nil disables compression
	Progress    time.Duration    // progress line interval, 0 means 2s
}

// Result holds the outcome of processing one track shape.
type Result struct {
	ShapeID  int
	Name     string
	Output   string
	Preview  string
	Polygons int
	Success  bool
	Skipped  bool
	Error    string
}

// Run processes all track shapes using a worker pool. Shapes not yet handed
// to a worker when ctx is cancelled are reported with the context error.
func Run(ctx context.Context, cfg Config, shapes []trackdb.TrackShape) []Result {
	total := len(shapes)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	interval := cfg.Progress
	if interval <= 0 {
		interval = 2 * time.Second
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f shapes/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	shapeChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range shapeChan {
				results[idx] = processShape(ctx, cfg, shapes[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	sent := 0
send:
	for ; sent < total && ctx.Err() == nil; sent++ {
		select {
		case shapeChan <- sent:
		case <-ctx.Done():
			break send
		}
	}
	close(shapeChan)

	wg.Wait()
	close(done)

	for i := sent; i < total; i++ {
		results[i] = Result{
			ShapeID: shapes[i].ID,
			Name:    shapes[i].Name(),
			Error:   ctx.Err().Error(),
		}
	}

	return results
}

func processShape(ctx context.Context, cfg Config, ts trackdb.TrackShape) Result {
	res := Result{ShapeID: ts.ID, Name: ts.Name()}

	out, err := replicate.Replicate(cfg.Template, ts, cfg.Sections)
	if errors.Is(err, replicate.ErrNoPolygons) {
		monitoring.Logf("batch: skipping %s: %v", res.Name, err)
		res.Skipped = true
		return res
	}
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Polygons = out.PolygonCount()

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		res.Error = err.Error()
		return res
	}

	res.Output = filepath.Join(cfg.OutputDir, res.Name+".json")
	if err := shape.Save(res.Output, out); err != nil {
		res.Error = err.Error()
		return res
	}

	if cfg.Preview {
		res.Preview = filepath.Join(cfg.OutputDir, res.Name+".webp")
		if err := preview.WriteFile(res.Preview, out, cfg.PreviewOpts, cfg.TexResolver); err != nil {
			res.Error = err.Error()
			return res
		}
	}

	if cfg.Compressor != nil {
		if err := cfg.Compressor.Compress(ctx, res.Output); err != nil {
			res.Error = err.Error()
			return res
		}
	}

	res.Success = true
	return res
}
