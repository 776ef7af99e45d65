package bento

import (
	"fmt"
	"log"

	"github.com/mazznoer/csscolorparser"
)

const (
	DefaultMaxSize = 4096
	DefaultPadding = 1
)

// Pack modes: single keeps the input order, best also tries the three
// descending size orderings and keeps the best result.
const (
	PackModeSingle = "single"
	PackModeBest   = "best"
)

// HeuristicBest tries all five placement rules and keeps the best result.
const HeuristicBest = "best"

// Options configure a single pack operation.
type Options struct {
	MaxWidth    int
	MaxHeight   int
	Padding     int
	Trim        bool
	TrimMargin  int
	ResizeWidth int     // pre-resize to this width; 0 disables
	ResizeScale float64 // pre-resize by this factor; 0 disables
	Heuristic   string  // one of the five placement rule names, or "best"
	PackMode    string  // "single" or "best"
	PowerOfTwo  bool
	Extrude     int
	Opaque      bool
	Background  string // CSS color composited under sprites when Opaque is set
}

func DefaultOptions() Options {
	return Options{
		MaxWidth:   DefaultMaxSize,
		MaxHeight:  DefaultMaxSize,
		Padding:    DefaultPadding,
		Trim:       true,
		Heuristic:  HeuristicBest,
		PackMode:   PackModeBest,
		Background: "#000000",
	}
}

// Validate checks every option for range and mutual-exclusion errors. All
// failures carry the ErrInvalidConfig kind.
func (o *Options) Validate() error {
	if o.MaxWidth < 1 || o.MaxHeight < 1 {
		return fmt.Errorf("%w: max size must be at least 1x1, got %dx%d",
			ErrInvalidConfig, o.MaxWidth, o.MaxHeight)
	}
	if o.Padding < 0 {
		return fmt.Errorf("%w: padding must not be negative, got %d", ErrInvalidConfig, o.Padding)
	}
	if o.Extrude < 0 {
		return fmt.Errorf("%w: extrude must not be negative, got %d", ErrInvalidConfig, o.Extrude)
	}
	if o.TrimMargin < 0 {
		return fmt.Errorf("%w: trim margin must not be negative, got %d", ErrInvalidConfig, o.TrimMargin)
	}
	if o.ResizeWidth < 0 || o.ResizeScale < 0 {
		return fmt.Errorf("%w: resize values must not be negative", ErrInvalidConfig)
	}
	if o.ResizeWidth > 0 && o.ResizeScale > 0 {
		return fmt.Errorf("%w: resize_width and resize_scale are mutually exclusive", ErrInvalidConfig)
	}
	if o.Heuristic != HeuristicBest {
		if _, err := ParseHeuristic(o.Heuristic); err != nil {
			return err
		}
	}
	if o.PackMode != PackModeSingle && o.PackMode != PackModeBest {
		return fmt.Errorf("%w: unknown pack mode %q", ErrInvalidConfig, o.PackMode)
	}
	if o.Background != "" {
		if _, err := csscolorparser.Parse(o.Background); err != nil {
			return fmt.Errorf("%w: bad background color %q: %s", ErrInvalidConfig, o.Background, err)
		}
	}
	if !o.Trim && o.TrimMargin > 0 {
		log.Printf("Warning: trim_margin %d ignored because trimming is disabled\n", o.TrimMargin)
	}
	return nil
}

// heuristics expands the configured name into the list of rules to try.
// Validate has already rejected unknown names.
func (o *Options) heuristics() []Heuristic {
	if o.Heuristic == HeuristicBest {
		return Heuristics
	}
	h, err := ParseHeuristic(o.Heuristic)
	if err != nil {
		return Heuristics
	}
	return []Heuristic{h}
}
