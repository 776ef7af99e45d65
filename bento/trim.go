package bento

import (
	"image"

	"github.com/disintegration/imaging"
)

// IdentityTrim wraps a sprite without removing any pixels.
func IdentityTrim(s *Sprite) *TrimmedSprite {
	return &TrimmedSprite{
		Name:         s.Name,
		SourceWidth:  s.Width(),
		SourceHeight: s.Height(),
		Image:        s.Image,
	}
}

// Trim computes the tight bounding box of pixels with alpha > 0, expands it by
// keepMargin (clamped to the source bounds) and copies that region out. A fully
// transparent sprite collapses to a single clear pixel at (0,0) so it still
// occupies a rectangle during packing.
func Trim(s *Sprite, keepMargin int) *TrimmedSprite {
	w, h := s.Width(), s.Height()
	minX, minY := w, h
	maxX, maxY := -1, -1
	stride := s.Image.Stride
	for y := 0; y < h; y++ {
		row := s.Image.Pix[y*stride : y*stride+w*4]
		for x := 0; x < w; x++ {
			if row[x*4+3] > 0 {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}
	if maxX < 0 {
		return &TrimmedSprite{
			Name:         s.Name,
			SourceWidth:  w,
			SourceHeight: h,
			Image:        image.NewNRGBA(image.Rect(0, 0, 1, 1)),
			Trimmed:      true,
		}
	}
	minX = max(0, minX-keepMargin)
	minY = max(0, minY-keepMargin)
	maxX = min(w-1, maxX+keepMargin)
	maxY = min(h-1, maxY+keepMargin)
	if minX == 0 && minY == 0 && maxX == w-1 && maxY == h-1 {
		return IdentityTrim(s)
	}
	crop := imaging.Crop(s.Image, image.Rect(minX, minY, maxX+1, maxY+1))
	return &TrimmedSprite{
		Name:         s.Name,
		SourceWidth:  w,
		SourceHeight: h,
		OffsetX:      minX,
		OffsetY:      minY,
		Image:        crop,
		Trimmed:      true,
	}
}
