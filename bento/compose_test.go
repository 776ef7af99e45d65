package bento

import (
	"context"
	"image/color"
	"testing"
)

func composeOne(t *testing.T, atlas *PackedAtlas, opts Options) {
	t.Helper()
	if err := compose(context.Background(), []*PackedAtlas{atlas}, &opts, nil); err != nil {
		t.Fatalf("Compose failed: %s", err)
	}
}

func TestCompose_ExtrudeBorders(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	atlas := &PackedAtlas{
		Width:  20,
		Height: 20,
		Placements: []*Placement{
			{Sprite: IdentityTrim(redSprite("r", 10, 10)), Frame: Rect{5, 5, 10, 10}},
		},
	}
	opts := DefaultOptions()
	opts.Extrude = 1
	composeOne(t, atlas, opts)
	for i := 5; i <= 14; i++ {
		checkPixel(t, atlas.Image, 4, i, red)
		checkPixel(t, atlas.Image, 15, i, red)
		checkPixel(t, atlas.Image, i, 4, red)
		checkPixel(t, atlas.Image, i, 15, red)
	}
	// Corner cells replicate the corner pixel.
	checkPixel(t, atlas.Image, 4, 4, red)
	checkPixel(t, atlas.Image, 15, 4, red)
	checkPixel(t, atlas.Image, 4, 15, red)
	checkPixel(t, atlas.Image, 15, 15, red)
	// Just outside the extrusion band stays clear.
	checkPixel(t, atlas.Image, 3, 10, color.NRGBA{})
	checkPixel(t, atlas.Image, 10, 16, color.NRGBA{})
}

func TestCompose_PaddingStaysTransparent(t *testing.T) {
	atlas := &PackedAtlas{
		Width:  30,
		Height: 10,
		Placements: []*Placement{
			{Sprite: IdentityTrim(redSprite("a", 10, 10)), Frame: Rect{0, 0, 10, 10}},
			{Sprite: IdentityTrim(redSprite("b", 10, 10)), Frame: Rect{12, 0, 10, 10}},
		},
	}
	composeOne(t, atlas, DefaultOptions())
	for y := 0; y < 10; y++ {
		checkPixel(t, atlas.Image, 10, y, color.NRGBA{})
		checkPixel(t, atlas.Image, 11, y, color.NRGBA{})
	}
}

func TestCompose_OpaqueFlatten(t *testing.T) {
	atlas := &PackedAtlas{
		Width:  4,
		Height: 4,
		Placements: []*Placement{
			{Sprite: IdentityTrim(redSprite("r", 2, 2)), Frame: Rect{0, 0, 2, 2}},
		},
	}
	opts := DefaultOptions()
	opts.Opaque = true
	opts.Background = "#0000ff"
	composeOne(t, atlas, opts)
	// Fully opaque sprite pixels keep their color.
	checkPixel(t, atlas.Image, 0, 0, color.NRGBA{R: 255, A: 255})
	// Uncovered pixels become the background, fully opaque.
	checkPixel(t, atlas.Image, 3, 3, color.NRGBA{B: 255, A: 255})
}

func TestCompose_Cancelled(t *testing.T) {
	atlas := &PackedAtlas{
		Width:  8,
		Height: 8,
		Placements: []*Placement{
			{Sprite: IdentityTrim(redSprite("r", 2, 2)), Frame: Rect{0, 0, 2, 2}},
		},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	opts := DefaultOptions()
	err := compose(ctx, []*PackedAtlas{atlas}, &opts, nil)
	if err == nil {
		t.Fatal("Compose ignored cancellation!")
	}
}

func TestCompose_BlitUsesTrimmedBuffer(t *testing.T) {
	src := spriteWithOpaqueRect("t", 16, 16, Rect{6, 6, 4, 4}, color.NRGBA{G: 255, A: 255})
	tr := Trim(src, 0)
	atlas := &PackedAtlas{
		Width:  8,
		Height: 8,
		Placements: []*Placement{
			{Sprite: tr, Frame: Rect{2, 2, tr.Width(), tr.Height()}},
		},
	}
	composeOne(t, atlas, DefaultOptions())
	checkPixel(t, atlas.Image, 2, 2, color.NRGBA{G: 255, A: 255})
	checkPixel(t, atlas.Image, 5, 5, color.NRGBA{G: 255, A: 255})
	checkPixel(t, atlas.Image, 1, 1, color.NRGBA{})
}
