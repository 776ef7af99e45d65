package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"

	"github.com/d6e/bento/bento"
)

// PackFlags are shared by every packing subcommand; the subcommand itself
// picks the manifest serializer.
type PackFlags struct {
	Output      string  `short:"o" default:"." type:"path" help:"Directory to write atlas images and the manifest"`
	Name        string  `default:"atlas" help:"Base name for atlas images and the manifest"`
	MaxWidth    int     `default:"4096" help:"Maximum width of a single atlas"`
	MaxHeight   int     `default:"4096" help:"Maximum height of a single atlas"`
	Padding     int     `default:"1" help:"Pixel gap between packed sprites"`
	NoTrim      bool    `help:"Keep transparent borders instead of trimming them"`
	TrimMargin  int     `default:"0" help:"Transparent pixels kept around trimmed content"`
	ResizeWidth int     `help:"Scale every sprite to this width before packing"`
	ResizeScale float64 `help:"Scale every sprite by this factor before packing"`
	Heuristic   string  `default:"best" enum:"best,best-short-side-fit,best-long-side-fit,best-area-fit,bottom-left,contact-point" help:"Free-rectangle placement rule"`
	PackMode    string  `default:"best" enum:"single,best" help:"Input ordering strategy"`
	Pot         bool    `help:"Round atlas dimensions up to powers of two"`
	Extrude     int     `default:"0" help:"Pixels of edge replication around each sprite"`
	Opaque      bool    `help:"Flatten the atlas over the background color (rgb888)"`
	Background  string  `default:"#000000" help:"Background color used with --opaque"`
	Compress    string  `default:"default" help:"PNG compression hint: off, 0-6, max or default"`
	ImageFormat string  `default:"png" enum:"png,bmp" help:"Atlas image encoding"`
}

func (f *PackFlags) config(inputs []string, format string) *bento.Config {
	cfg := bento.DefaultConfig()
	cfg.Input = inputs
	cfg.OutputDir = f.Output
	cfg.Name = f.Name
	cfg.Format = format
	cfg.ImageFormat = f.ImageFormat
	cfg.Compress = f.Compress
	cfg.MaxWidth = f.MaxWidth
	cfg.MaxHeight = f.MaxHeight
	cfg.Padding = f.Padding
	cfg.Trim = !f.NoTrim
	cfg.TrimMargin = f.TrimMargin
	cfg.ResizeWidth = f.ResizeWidth
	cfg.ResizeScale = f.ResizeScale
	cfg.Heuristic = f.Heuristic
	cfg.PackMode = f.PackMode
	cfg.Pot = f.Pot
	cfg.Extrude = f.Extrude
	cfg.Opaque = f.Opaque
	cfg.Background = f.Background
	return &cfg
}

// signalContext cancels the pack when the user interrupts the process, which
// is the one cancellation source a terminal run has.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runPack(format string, configPath string, inputs []string, flags *PackFlags, progress bento.ProgressFunc) error {
	var cfg *bento.Config
	if configPath != "" {
		loaded, err := bento.LoadConfig(configPath)
		if err != nil {
			return err
		}
		loaded.Format = format
		if len(inputs) > 0 {
			loaded.Input = append(loaded.Input, inputs...)
		}
		cfg = loaded
	} else {
		cfg = flags.config(inputs, format)
	}
	ctx, stop := signalContext()
	defer stop()
	start := time.Now()
	result, err := bento.RunJob(ctx, cfg, progress)
	if err != nil {
		return err
	}
	sprites := 0
	occupancy := make([]float64, len(result.Atlases))
	for i, a := range result.Atlases {
		sprites += len(a.Placements)
		occupancy[i] = a.Occupancy()
	}
	log.Printf("Packed %d sprites into %d atlases in %s\n",
		sprites, len(result.Atlases), time.Since(start))
	summary := make(map[string]interface{})
	summary["Sprites"] = sprites
	summary["Atlases"] = len(result.Atlases)
	summary["Occupancy"] = occupancy
	summary["ImageFiles"] = result.ImageFiles
	summary["ManifestFile"] = result.ManifestFile
	PrintJson(summary)
	return nil
}

// Json command: pack and emit the neutral JSON manifest.
type JsonCmd struct {
	Inputs    []string `arg:"" optional:"" help:"Sprite image files or globs"`
	Config    string   `short:"c" type:"existingfile" help:"Load settings from a JSON or TOML config file"`
	PackFlags `embed:""`
}

func (c *JsonCmd) Run() error {
	return runPack(bento.FormatJSON, c.Config, c.Inputs, &c.PackFlags, nil)
}

// Godot command: pack and emit a Godot .tres resource.
type GodotCmd struct {
	Inputs    []string `arg:"" optional:"" help:"Sprite image files or globs"`
	Config    string   `short:"c" type:"existingfile" help:"Load settings from a JSON or TOML config file"`
	PackFlags `embed:""`
}

func (c *GodotCmd) Run() error {
	return runPack(bento.FormatGodot, c.Config, c.Inputs, &c.PackFlags, nil)
}

// Tpsheet command: pack and emit a TexturePacker .tpsheet document.
type TpsheetCmd struct {
	Inputs    []string `arg:"" optional:"" help:"Sprite image files or globs"`
	Config    string   `short:"c" type:"existingfile" help:"Load settings from a JSON or TOML config file"`
	PackFlags `embed:""`
}

func (c *TpsheetCmd) Run() error {
	return runPack(bento.FormatTpsheet, c.Config, c.Inputs, &c.PackFlags, nil)
}

// Gui command: the interactive preview is not linked into this build, so gui
// runs the same pack with live progress on the terminal.
type GuiCmd struct {
	Inputs    []string `arg:"" optional:"" help:"Sprite image files or globs"`
	Config    string   `short:"c" type:"existingfile" help:"Load settings from a JSON or TOML config file"`
	PackFlags `embed:""`
}

func (c *GuiCmd) Run() error {
	last := -1
	progress := func(done, total int) {
		pct := done * 100 / total
		if pct/10 != last/10 {
			log.Printf("Progress: %d%% (%d/%d sprites)\n", pct, done, total)
		}
		last = pct
	}
	return runPack(bento.FormatJSON, c.Config, c.Inputs, &c.PackFlags, progress)
}

// Script command: run a lua pack script.
type ScriptCmd struct {
	Infile string `arg:"" default:"bento.lua" type:"existingfile" help:"The pack script to run (default: bento.lua)"`
}

func (c *ScriptCmd) Run() error {
	script, err := os.ReadFile(c.Infile)
	if err != nil {
		return fmt.Errorf("%w: %s: %s", bento.ErrInvalidConfig, c.Infile, err)
	}
	ctx, stop := signalContext()
	defer stop()
	state, err := bento.RunPackScript(ctx, string(script), filepath.Dir(c.Infile))
	if err != nil {
		return err
	}
	summary := make(map[string]interface{})
	summary["Script"] = c.Infile
	summary["Jobs"] = len(state.Results)
	files := make([]string, 0)
	for _, r := range state.Results {
		files = append(files, r.ImageFiles...)
		files = append(files, r.ManifestFile)
	}
	summary["Files"] = files
	PrintJson(summary)
	return nil
}

var cli struct {
	Json    JsonCmd          `cmd:"" help:"Pack sprites and write the JSON manifest"`
	Godot   GodotCmd         `cmd:"" help:"Pack sprites and write a Godot .tres resource"`
	Tpsheet TpsheetCmd       `cmd:"" help:"Pack sprites and write a TexturePacker .tpsheet"`
	Gui     GuiCmd           `cmd:"" help:"Pack with live progress output"`
	Script  ScriptCmd        `cmd:"" help:"Run a lua pack script"`
	Version kong.VersionFlag `help:"Show version information"`
}

// Each error kind maps to its own exit code so callers can dispatch on
// failures without parsing stderr.
func exitCode(err error) int {
	switch {
	case errors.Is(err, bento.ErrInvalidConfig):
		return 2
	case errors.Is(err, bento.ErrDecodeFailed):
		return 3
	case errors.Is(err, bento.ErrSpriteTooLarge):
		return 4
	case errors.Is(err, bento.ErrEmptyInput):
		return 5
	case errors.Is(err, bento.ErrDuplicateName):
		return 6
	case errors.Is(err, bento.ErrCancelled):
		return 7
	case errors.Is(err, bento.ErrEncodeFailed):
		return 8
	}
	return 1
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("bento"),
		kong.ShortUsageOnError(),
		kong.Description("Pack sprite images into texture atlases"),
		kong.Vars{
			"version": bento.AppVersion,
		},
	)
	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "bento: %s\n", err)
		os.Exit(exitCode(err))
	}
}
