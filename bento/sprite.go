package bento

import (
	"image"
	"image/draw"
)

// Sprite is a named RGBA8 input image. The pixel buffer is never mutated once
// the sprite enters the pipeline.
type Sprite struct {
	Name  string
	Image *image.NRGBA
}

// NewSprite wraps any decoded image as a sprite, converting to straight-alpha
// NRGBA anchored at the origin when necessary.
func NewSprite(name string, img image.Image) *Sprite {
	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Rect.Min.X == 0 && nrgba.Rect.Min.Y == 0 {
		return &Sprite{Name: name, Image: nrgba}
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return &Sprite{Name: name, Image: dst}
}

func (s *Sprite) Width() int  { return s.Image.Rect.Dx() }
func (s *Sprite) Height() int { return s.Image.Rect.Dy() }

// TrimmedSprite is a sprite reduced to the bounding box of its opaque pixels.
// OffsetX/OffsetY locate the trimmed content inside the original frame so the
// consumer can restore the sprite at its source position.
type TrimmedSprite struct {
	Name         string
	SourceWidth  int
	SourceHeight int
	OffsetX      int
	OffsetY      int
	Image        *image.NRGBA
	Trimmed      bool
}

func (t *TrimmedSprite) Width() int  { return t.Image.Rect.Dx() }
func (t *TrimmedSprite) Height() int { return t.Image.Rect.Dy() }
