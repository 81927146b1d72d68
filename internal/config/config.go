package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config holds all configurable paths and replication settings.
type Config struct {
	// Paths
	BaseDir       string `json:"base_dir"`
	TemplateShape string `json:"template_shape"`
	TrackDB       string `json:"track_db"`
	OutputDir     string `json:"output_dir"`
	TextureDir    string `json:"texture_dir"`

	// Preview settings
	Preview     bool `json:"preview"`
	PreviewSize int  `json:"preview_size"`
	Supersample int  `json:"supersample"`
	PreviewLOD  int  `json:"preview_lod"`

	// Processing
	Workers         int      `json:"workers"`
	Compressor      string   `json:"compressor"`
	CompressorArgs  []string `json:"compressor_args"`
	MaxCompressions int      `json:"max_compressions"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	BaseDir       string
	TemplateShape string
	TrackDB       string
	OutputDir     string
	Workers       int
	Preview       bool
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.BaseDir != "" {
		c.BaseDir = flags.BaseDir
	}
	if flags.TemplateShape != "" {
		c.TemplateShape = flags.TemplateShape
	}
	if flags.TrackDB != "" {
		c.TrackDB = flags.TrackDB
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Preview {
		c.Preview = true
	}

	if c.BaseDir == "" {
		c.BaseDir, _ = os.Getwd()
	}

	// Resolve relative paths against base dir
	if c.TrackDB == "" {
		c.TrackDB = findTrackDB(c.BaseDir)
	}
	c.TemplateShape = c.abs(c.TemplateShape)
	c.TrackDB = c.abs(c.TrackDB)
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.BaseDir, "replicated")
	} else {
		c.OutputDir = c.abs(c.OutputDir)
	}
	if c.TextureDir == "" && c.TemplateShape != "" {
		c.TextureDir = filepath.Dir(c.TemplateShape)
	} else {
		c.TextureDir = c.abs(c.TextureDir)
	}

	// Defaults for preview and processing settings
	if c.PreviewSize <= 0 {
		c.PreviewSize = 512
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.PreviewLOD < 0 {
		c.PreviewLOD = 0
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.MaxCompressions <= 0 {
		c.MaxCompressions = 2
	}
}

func (c *Config) abs(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

func findTrackDB(baseDir string) string {
	candidates := []string{
		filepath.Join(baseDir, "tsection.dat"),
		filepath.Join(baseDir, "Global", "tsection.dat"),
		filepath.Join(baseDir, "global", "tsection.dat"),
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return candidates[0]
}
