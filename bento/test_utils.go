package bento

import (
	"image"
	"image/color"
	"testing"
)

// Helpers shared by the package tests.

func solidSprite(name string, w, h int, c color.NRGBA) *Sprite {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return &Sprite{Name: name, Image: img}
}

func redSprite(name string, w, h int) *Sprite {
	return solidSprite(name, w, h, color.NRGBA{R: 255, A: 255})
}

func transparentSprite(name string, w, h int) *Sprite {
	return &Sprite{Name: name, Image: image.NewNRGBA(image.Rect(0, 0, w, h))}
}

// spriteWithOpaqueRect is transparent except for a solid region.
func spriteWithOpaqueRect(name string, w, h int, r Rect, c color.NRGBA) *Sprite {
	s := transparentSprite(name, w, h)
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.Image.SetNRGBA(x, y, c)
		}
	}
	return s
}

// gradientSprite is opaque with a position-dependent color so blit tests can
// detect misplaced pixels.
func gradientSprite(name string, w, h int) *Sprite {
	s := transparentSprite(name, w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s.Image.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 17), G: uint8(y * 29), B: uint8(x ^ y), A: 255})
		}
	}
	return s
}

func checkPixel(t *testing.T, img *image.NRGBA, x, y int, want color.NRGBA) {
	t.Helper()
	got := img.NRGBAAt(x, y)
	if got != want {
		t.Fatalf("Pixel (%d,%d) is %v, expected %v!", x, y, got, want)
	}
}
