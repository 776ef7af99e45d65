package bento

import (
	"context"
	"fmt"
	"image"
	"sort"
)

// ProgressFunc receives sprite-level progress while preprocessing and while
// compositing. It is invoked synchronously between steps.
type ProgressFunc func(done, total int)

// Placement is a trimmed sprite fixed at a rectangle inside one atlas. Frame
// holds the sprite's actual pixels; the surrounding extrusion band and padding
// are accounted for by the packer but not part of the frame.
type Placement struct {
	Sprite *TrimmedSprite
	Bin    int
	Frame  Rect
}

// PackedAtlas is one composed output bin.
type PackedAtlas struct {
	Width      int
	Height     int
	Image      *image.NRGBA
	Placements []*Placement
}

// Occupancy is the fraction of the atlas covered by sprite frames.
func (a *PackedAtlas) Occupancy() float64 {
	if a.Width == 0 || a.Height == 0 {
		return 0
	}
	area := 0
	for _, p := range a.Placements {
		area += p.Frame.Area()
	}
	return float64(area) / float64(a.Width*a.Height)
}

// Pack runs the whole pipeline: preprocessing, trials over orderings and
// heuristics, multi-bin splitting, finalisation and composition. The context
// is consulted at every trial boundary and every blit; on cancellation the
// error carries the ErrCancelled kind and no partial results are returned.
//
// Given identical inputs and options the result is deterministic.
func Pack(ctx context.Context, sprites []*Sprite, opts Options, progress ProgressFunc) ([]*PackedAtlas, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(sprites) == 0 {
		return nil, fmt.Errorf("%w: no sprites to pack", ErrEmptyInput)
	}
	seen := make(map[string]bool, len(sprites))
	for _, s := range sprites {
		if seen[s.Name] {
			return nil, fmt.Errorf("%w: sprite %q appears more than once", ErrDuplicateName, s.Name)
		}
		seen[s.Name] = true
	}

	trimmed, err := preprocess(ctx, sprites, &opts, progress)
	if err != nil {
		return nil, err
	}

	var best *trialResult
	var bestScore [3]int
	for _, ord := range orderings(opts.PackMode) {
		ordered := ord(trimmed)
		for _, heur := range opts.heuristics() {
			trial, err := runTrial(ctx, ordered, heur, &opts)
			if err != nil {
				return nil, err
			}
			score := trial.score()
			if best == nil || lessScore(score, bestScore) {
				best, bestScore = trial, score
			}
		}
	}

	atlases := finalize(best, &opts)
	if err := compose(ctx, atlases, &opts, progress); err != nil {
		return nil, err
	}
	return atlases, nil
}

// Resize runs before trimming so trimming reclaims any border the filter
// turned transparent.
func preprocess(ctx context.Context, sprites []*Sprite, opts *Options, progress ProgressFunc) ([]*TrimmedSprite, error) {
	trimmed := make([]*TrimmedSprite, len(sprites))
	for i, s := range sprites {
		if err := cancelled(ctx); err != nil {
			return nil, err
		}
		src := s
		if opts.ResizeWidth > 0 {
			src = ResizeWidth(src, opts.ResizeWidth)
		} else if opts.ResizeScale > 0 {
			src = ResizeScale(src, opts.ResizeScale)
		}
		if opts.Trim {
			trimmed[i] = Trim(src, opts.TrimMargin)
		} else {
			trimmed[i] = IdentityTrim(src)
		}
		if progress != nil {
			progress(i+1, len(sprites))
		}
	}
	return trimmed, nil
}

type orderFunc func([]*TrimmedSprite) []*TrimmedSprite

// orderings returns the input orderings a pack mode evaluates. The size
// orderings are stable so equal keys keep their input order.
func orderings(mode string) []orderFunc {
	input := func(s []*TrimmedSprite) []*TrimmedSprite {
		return append([]*TrimmedSprite(nil), s...)
	}
	if mode == PackModeSingle {
		return []orderFunc{input}
	}
	descending := func(key func(*TrimmedSprite) int) orderFunc {
		return func(s []*TrimmedSprite) []*TrimmedSprite {
			out := append([]*TrimmedSprite(nil), s...)
			sort.SliceStable(out, func(i, j int) bool {
				return key(out[i]) > key(out[j])
			})
			return out
		}
	}
	return []orderFunc{
		input,
		descending(func(t *TrimmedSprite) int { return t.Width() * t.Height() }),
		descending(func(t *TrimmedSprite) int { return t.Width() + t.Height() }),
		descending(func(t *TrimmedSprite) int { return max(t.Width(), t.Height()) }),
	}
}

type binLayout struct {
	packer     *maxRectsBin
	placements []*Placement
}

type trialResult struct {
	bins []*binLayout
}

// score ranks a completed trial: bins used, then total occupied area, then the
// summed bounding-box areas of each bin's contents. Lower wins on every axis.
func (t *trialResult) score() [3]int {
	occupied, boxes := 0, 0
	for _, b := range t.bins {
		occupied += b.packer.usedArea()
		w, h := b.packer.extent()
		boxes += w * h
	}
	return [3]int{len(t.bins), occupied, boxes}
}

func lessScore(a, b [3]int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// The working bin is two paddings wider and taller than the configured maximum:
// each inflated sprite carries a full padding that is conceptually half on
// each side, so the outermost half-paddings may overhang the nominal bounds.
// The too-large check still holds sprites to the configured maximum.
func workingBinSize(opts *Options) (int, int) {
	return opts.MaxWidth + 2*opts.Padding, opts.MaxHeight + 2*opts.Padding
}

// runTrial inserts the ordered sprites one by one. When a sprite fails to fit
// the current bin is closed and a fresh one opened; a sprite whose inflated
// size exceeds the configured maximum fails the whole operation.
func runTrial(ctx context.Context, sprites []*TrimmedSprite, heur Heuristic, opts *Options) (*trialResult, error) {
	if err := cancelled(ctx); err != nil {
		return nil, err
	}
	inflate := 2*opts.Extrude + opts.Padding
	binW, binH := workingBinSize(opts)
	result := &trialResult{}
	bin := &binLayout{packer: newMaxRectsBin(binW, binH)}
	result.bins = append(result.bins, bin)
	for _, s := range sprites {
		ew := s.Width() + inflate
		eh := s.Height() + inflate
		if ew > opts.MaxWidth || eh > opts.MaxHeight {
			return nil, fmt.Errorf("%w: sprite %q needs %dx%d with padding and extrusion, maximum bin is %dx%d",
				ErrSpriteTooLarge, s.Name, ew, eh, opts.MaxWidth, opts.MaxHeight)
		}
		r, ok := bin.packer.Insert(ew, eh, heur)
		if !ok {
			bin = &binLayout{packer: newMaxRectsBin(binW, binH)}
			result.bins = append(result.bins, bin)
			r, ok = bin.packer.Insert(ew, eh, heur)
			if !ok {
				return nil, fmt.Errorf("%w: sprite %q does not fit an empty bin", ErrSpriteTooLarge, s.Name)
			}
		}
		bin.placements = append(bin.placements, &Placement{
			Sprite: s,
			Bin:    len(result.bins) - 1,
			Frame:  Rect{r.X + opts.Extrude, r.Y + opts.Extrude, s.Width(), s.Height()},
		})
		if err := cancelled(ctx); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// finalize computes each atlas's final size: the bounding box of the placed
// inflated rects, rounded up to a power of two when requested. The rounding
// cap never shrinks an atlas below its contents.
func finalize(t *trialResult, opts *Options) []*PackedAtlas {
	atlases := make([]*PackedAtlas, len(t.bins))
	for i, b := range t.bins {
		w, h := b.packer.extent()
		if opts.PowerOfTwo {
			w = potCapped(w, opts.MaxWidth)
			h = potCapped(h, opts.MaxHeight)
		}
		atlases[i] = &PackedAtlas{Width: w, Height: h, Placements: b.placements}
	}
	return atlases
}

func potCapped(extent, limit int) int {
	rounded := min(NextPowerOfTwo(extent), limit)
	if rounded < extent {
		return extent
	}
	return rounded
}

func cancelled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %s", ErrCancelled, err)
	}
	return nil
}
