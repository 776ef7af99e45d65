package bento

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml"
)

// ConfigVersion is the only on-disk config schema understood by this build.
const ConfigVersion = 1

// Config is the on-disk configuration document. JSON is the canonical format;
// files with a .toml extension parse with the same keys. Absent keys keep
// their defaults because parsing happens over a DefaultConfig value.
type Config struct {
	Version     int      `json:"version" toml:"version"`
	Input       []string `json:"input" toml:"input"`
	OutputDir   string   `json:"output_dir" toml:"output_dir"`
	Name        string   `json:"name" toml:"name"`
	Format      string   `json:"format" toml:"format"`
	ImageFormat string   `json:"image_format" toml:"image_format"`
	Compress    string   `json:"compress" toml:"compress"`
	MaxWidth    int      `json:"max_width" toml:"max_width"`
	MaxHeight   int      `json:"max_height" toml:"max_height"`
	Padding     int      `json:"padding" toml:"padding"`
	Trim        bool     `json:"trim" toml:"trim"`
	TrimMargin  int      `json:"trim_margin" toml:"trim_margin"`
	ResizeWidth int      `json:"resize_width" toml:"resize_width"`
	ResizeScale float64  `json:"resize_scale" toml:"resize_scale"`
	Heuristic   string   `json:"heuristic" toml:"heuristic"`
	PackMode    string   `json:"pack_mode" toml:"pack_mode"`
	Pot         bool     `json:"pot" toml:"pot"`
	Extrude     int      `json:"extrude" toml:"extrude"`
	Opaque      bool     `json:"opaque" toml:"opaque"`
	Background  string   `json:"background" toml:"background"`
}

func DefaultConfig() Config {
	opts := DefaultOptions()
	return Config{
		Version:     ConfigVersion,
		OutputDir:   ".",
		Name:        "atlas",
		Format:      FormatJSON,
		ImageFormat: ImageFormatPNG,
		MaxWidth:    opts.MaxWidth,
		MaxHeight:   opts.MaxHeight,
		Padding:     opts.Padding,
		Trim:        opts.Trim,
		Heuristic:   opts.Heuristic,
		PackMode:    opts.PackMode,
		Background:  opts.Background,
	}
}

// Options projects the packing-related config fields.
func (c *Config) Options() Options {
	return Options{
		MaxWidth:    c.MaxWidth,
		MaxHeight:   c.MaxHeight,
		Padding:     c.Padding,
		Trim:        c.Trim,
		TrimMargin:  c.TrimMargin,
		ResizeWidth: c.ResizeWidth,
		ResizeScale: c.ResizeScale,
		Heuristic:   c.Heuristic,
		PackMode:    c.PackMode,
		PowerOfTwo:  c.Pot,
		Extrude:     c.Extrude,
		Opaque:      c.Opaque,
		Background:  c.Background,
	}
}

// LoadConfig reads and parses a config file. Relative input and output paths
// resolve against the config file's directory.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrInvalidConfig, path, err)
	}
	cfg := DefaultConfig()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrInvalidConfig, path, err)
	}
	if cfg.Version != ConfigVersion {
		return nil, fmt.Errorf("%w: %s: unsupported config version %d", ErrInvalidConfig, path, cfg.Version)
	}
	dir := filepath.Dir(path)
	for i, in := range cfg.Input {
		if !filepath.IsAbs(in) {
			cfg.Input[i] = filepath.Join(dir, in)
		}
	}
	if cfg.OutputDir != "" && !filepath.IsAbs(cfg.OutputDir) {
		cfg.OutputDir = filepath.Join(dir, cfg.OutputDir)
	}
	return &cfg, nil
}

// ExpandInputs resolves every glob pattern in order, sorting each pattern's
// matches and dropping paths an earlier pattern already matched. Matching
// nothing at all is an EmptyInput error.
func ExpandInputs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	for _, pat := range patterns {
		matches, err := filepath.Glob(pat)
		if err != nil {
			return nil, fmt.Errorf("%w: bad glob %q: %s", ErrInvalidConfig, pat, err)
		}
		sort.Strings(matches)
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no files matched %v", ErrEmptyInput, patterns)
	}
	return paths, nil
}
