package bento

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	_ "image/gif"
	_ "image/jpeg"
)

// Atlas image output formats.
const (
	ImageFormatPNG = "png"
	ImageFormatBMP = "bmp"
)

// LoadSprite decodes one input file into a sprite. The logical name is the
// base filename without its extension.
func LoadSprite(path string) (*Sprite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrDecodeFailed, path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrDecodeFailed, path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return NewSprite(name, img), nil
}

// LoadSprites decodes every path. Any failure aborts the whole load.
func LoadSprites(paths []string) ([]*Sprite, error) {
	sprites := make([]*Sprite, len(paths))
	for i, p := range paths {
		s, err := LoadSprite(p)
		if err != nil {
			return nil, err
		}
		sprites[i] = s
	}
	return sprites, nil
}

// ParseCompression maps the compression hint (off, 0-6, max) onto the png
// encoder levels. The std encoder exposes three real levels, so the numeric
// range collapses onto them.
func ParseCompression(hint string) (png.CompressionLevel, error) {
	switch hint {
	case "", "default":
		return png.DefaultCompression, nil
	case "off", "0":
		return png.NoCompression, nil
	case "1", "2", "3":
		return png.BestSpeed, nil
	case "4", "5":
		return png.DefaultCompression, nil
	case "6", "max":
		return png.BestCompression, nil
	}
	return 0, fmt.Errorf("%w: unknown compression %q", ErrInvalidConfig, hint)
}

// WriteImage encodes an atlas buffer. The compression level only applies to
// png output.
func WriteImage(w io.Writer, img image.Image, format string, level png.CompressionLevel) error {
	var err error
	switch format {
	case "", ImageFormatPNG:
		enc := png.Encoder{CompressionLevel: level}
		err = enc.Encode(w, img)
	case ImageFormatBMP:
		err = bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w: unknown image format %q", ErrInvalidConfig, format)
	}
	if err != nil {
		return fmt.Errorf("%w: %s", ErrEncodeFailed, err)
	}
	return nil
}

// WriteAtlasImages writes every atlas image into dir using the manifest
// filename convention and returns the paths written.
func WriteAtlasImages(dir, name string, atlases []*PackedAtlas, format string, level png.CompressionLevel) ([]string, error) {
	if format == "" {
		format = ImageFormatPNG
	}
	if err := os.MkdirAll(dir, 0770); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrEncodeFailed, dir, err)
	}
	paths := make([]string, len(atlases))
	for i, a := range atlases {
		path := filepath.Join(dir, AtlasFilename(name, i, format))
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %s", ErrEncodeFailed, path, err)
		}
		err = WriteImage(f, a.Image, format, level)
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("%w: %s: %s", ErrEncodeFailed, path, cerr)
		}
		if err != nil {
			return nil, err
		}
		paths[i] = path
	}
	return paths, nil
}
