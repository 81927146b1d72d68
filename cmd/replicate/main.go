package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"track-replicator/internal/batch"
	"track-replicator/internal/config"
	"track-replicator/internal/preview"
	"track-replicator/internal/shape"
	"track-replicator/internal/texture"
	"track-replicator/internal/trackdb"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	baseDir := flag.String("base", "", "Base directory for relative paths (default: cwd)")
	template := flag.String("template", "", "Template shape JSON file")
	tdb := flag.String("tdb", "", "Track section database (default: tsection.dat)")
	outputDir := flag.String("output", "", "Output directory (default: replicated)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	shapeID := flag.Int("shape", -1, "Replicate only the track shape with this id")
	testN := flag.Int("test", 0, "Replicate only the first N track shapes")
	withPreview := flag.Bool("preview", false, "Write a WebP top-down preview per shape")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		BaseDir:       *baseDir,
		TemplateShape: *template,
		TrackDB:       *tdb,
		OutputDir:     *outputDir,
		Workers:       *workers,
		Preview:       *withPreview,
	})

	if cfg.TemplateShape == "" {
		fmt.Fprintln(os.Stderr, "Error: no template shape. Use -template flag or config.json.")
		os.Exit(1)
	}

	tmpl, err := shape.Load(cfg.TemplateShape)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading template: %v\n", err)
		os.Exit(1)
	}

	db, err := trackdb.Load(cfg.TrackDB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading track database: %v\n", err)
		os.Exit(1)
	}

	shapes := db.ShapesByID()
	if *shapeID >= 0 {
		ts, ok := db.Shapes[*shapeID]
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: track shape %d not in %s\n", *shapeID, cfg.TrackDB)
			os.Exit(1)
		}
		shapes = []trackdb.TrackShape{ts}
	}

	// Limit for testing
	if *testN > 0 && *testN < len(shapes) {
		shapes = shapes[:*testN]
	}

	if len(shapes) == 0 {
		fmt.Println("No track shapes to replicate.")
		os.Exit(0)
	}

	var texCache texture.Resolver
	if cfg.Preview && cfg.TextureDir != "" {
		texIndex := texture.BuildIndex(cfg.TextureDir)
		texCache = texture.NewCache(texIndex)
		fmt.Printf("Textures: %d indexed\n", texIndex.Len())
	}

	var compressor *batch.Compressor
	if cfg.Compressor != "" {
		compressor = batch.NewCompressor(cfg.Compressor, cfg.CompressorArgs, cfg.MaxCompressions)
	}

	// Print summary
	mode := ""
	if *shapeID >= 0 {
		mode = fmt.Sprintf(" (Shape %d)", *shapeID)
	} else if *testN > 0 {
		mode = fmt.Sprintf(" (TEST: first %d)", *testN)
	}

	fmt.Printf("Track shape replicator%s\n", mode)
	fmt.Printf("Template: %s (%d polygons)\n", tmpl.Name, tmpl.PolygonCount())
	fmt.Printf("Sections: %d, Shapes: %d, Workers: %d\n", len(db.Sections), len(shapes), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()

	// Run batch
	batchCfg := batch.Config{
		Template:  tmpl,
		Sections:  db.Sections,
		OutputDir: cfg.OutputDir,
		Workers:   cfg.Workers,
		Preview:   cfg.Preview,
		PreviewOpts: preview.Options{
			Size:        cfg.PreviewSize,
			Supersample: cfg.Supersample,
			LOD:         cfg.PreviewLOD,
		},
		TexResolver: texCache,
		Compressor:  compressor,
	}

	results := batch.Run(ctx, batchCfg, shapes)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, skipped := 0, 0
	var failures []batch.Result
	for _, r := range results {
		switch {
		case r.Success:
			success++
		case r.Skipped:
			skipped++
		default:
			failures = append(failures, r)
		}
	}

	fmt.Printf("Replicated: %d/%d, skipped: %d\n", success, len(shapes), skipped)

	if len(failures) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(failures))
		for _, e := range failures[:min(len(failures), 20)] {
			fmt.Printf("  %d %s: %s\n", e.ShapeID, e.Name, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	m := batch.NewManifest(cfg.TemplateShape, cfg.TrackDB, cfg.OutputDir, results)
	if err := batch.WriteManifest(manifestPath, m); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s (run %s)\n", manifestPath, m.RunID)
	}

	if len(failures) > 0 {
		os.Exit(1)
	}
}
