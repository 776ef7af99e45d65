package bento

import (
	"context"
	"image"
	"image/draw"

	"github.com/mazznoer/csscolorparser"
)

// compose allocates each atlas's pixel buffer and blits every placement into
// it, then extrudes sprite edges. Padding stays unpainted. When Opaque is set
// the buffer is flattened over the background color afterwards.
func compose(ctx context.Context, atlases []*PackedAtlas, opts *Options, progress ProgressFunc) error {
	total := 0
	for _, a := range atlases {
		total += len(a.Placements)
	}
	done := 0
	for _, a := range atlases {
		dst := image.NewNRGBA(image.Rect(0, 0, a.Width, a.Height))
		for _, p := range a.Placements {
			if err := cancelled(ctx); err != nil {
				return err
			}
			f := p.Frame
			draw.Draw(dst, image.Rect(f.X, f.Y, f.Right(), f.Bottom()),
				p.Sprite.Image, p.Sprite.Image.Rect.Min, draw.Src)
			if opts.Extrude > 0 {
				extrudeEdges(dst, f, opts.Extrude)
			}
			done++
			if progress != nil {
				progress(done, total)
			}
		}
		if opts.Opaque {
			bg, err := csscolorparser.Parse(opts.Background)
			if err != nil {
				// Validate rejects unparsable colors, so only an empty
				// Background gets here; it falls back to black.
				bg = csscolorparser.Color{A: 1}
			}
			dst = flattenOpaque(dst, bg)
		}
		a.Image = dst
	}
	return nil
}

// extrudeEdges replicates the outermost sprite pixels outward by e on each
// side. Rows first, then columns over the already-extruded height, which
// makes the corner cells copies of the corner pixels.
func extrudeEdges(dst *image.NRGBA, f Rect, e int) {
	rowBytes := f.W * 4
	for i := 1; i <= e; i++ {
		top := dst.PixOffset(f.X, f.Y)
		copy(dst.Pix[dst.PixOffset(f.X, f.Y-i):][:rowBytes], dst.Pix[top:][:rowBytes])
		bottom := dst.PixOffset(f.X, f.Bottom()-1)
		copy(dst.Pix[dst.PixOffset(f.X, f.Bottom()-1+i):][:rowBytes], dst.Pix[bottom:][:rowBytes])
	}
	for y := f.Y - e; y < f.Bottom()+e; y++ {
		left := dst.PixOffset(f.X, y)
		right := dst.PixOffset(f.Right()-1, y)
		for i := 1; i <= e; i++ {
			copy(dst.Pix[left-4*i:][:4], dst.Pix[left:][:4])
			copy(dst.Pix[right+4*i:][:4], dst.Pix[right:][:4])
		}
	}
}

// flattenOpaque blends every pixel over the background color and forces the
// alpha channel to fully opaque, matching the rgb888 manifest format.
func flattenOpaque(src *image.NRGBA, bg csscolorparser.Color) *image.NRGBA {
	r32, g32, b32, _ := bg.RGBA()
	br := int(r32 >> 8)
	bgc := int(g32 >> 8)
	bb := int(b32 >> 8)
	out := image.NewNRGBA(src.Rect)
	for i := 0; i < len(src.Pix); i += 4 {
		a := int(src.Pix[i+3])
		out.Pix[i+0] = uint8((int(src.Pix[i+0])*a + br*(255-a) + 127) / 255)
		out.Pix[i+1] = uint8((int(src.Pix[i+1])*a + bgc*(255-a) + 127) / 255)
		out.Pix[i+2] = uint8((int(src.Pix[i+2])*a + bb*(255-a) + 127) / 255)
		out.Pix[i+3] = 255
	}
	return out
}
