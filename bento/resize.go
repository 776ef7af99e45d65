package bento

import (
	"math"

	"github.com/nfnt/resize"
)

// ResizeWidth scales the sprite to the given width, preserving aspect ratio.
// Both dimensions have a floor of one pixel.
func ResizeWidth(s *Sprite, width int) *Sprite {
	if width < 1 {
		width = 1
	}
	scale := float64(width) / float64(s.Width())
	height := int(math.Round(float64(s.Height()) * scale))
	if height < 1 {
		height = 1
	}
	return scaleTo(s, width, height)
}

// ResizeScale scales both sprite dimensions by the given factor, with a floor
// of one pixel.
func ResizeScale(s *Sprite, scale float64) *Sprite {
	width := int(math.Round(float64(s.Width()) * scale))
	if width < 1 {
		width = 1
	}
	height := int(math.Round(float64(s.Height()) * scale))
	if height < 1 {
		height = 1
	}
	return scaleTo(s, width, height)
}

// Resizing interpolates the straight-alpha channels directly; no
// premultiplication happens on either side.
func scaleTo(s *Sprite, width, height int) *Sprite {
	if width == s.Width() && height == s.Height() {
		return s
	}
	scaled := resize.Resize(uint(width), uint(height), s.Image, resize.Bilinear)
	return NewSprite(s.Name, scaled)
}
