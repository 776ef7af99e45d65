package bento

import "fmt"

const AppName = "bento"
const AppVersion = "1.0.0"

// Pixel formats reported in the manifest meta block.
const (
	FormatRGBA8888 = "rgba8888"
	FormatRGB888   = "rgb888"
)

// Manifest is the neutral description of a pack run. The format serializers
// are plain projections of this structure.
type Manifest struct {
	App     string          `json:"app"`
	Version string          `json:"version"`
	Format  string          `json:"format"`
	Atlases []ManifestAtlas `json:"atlases"`
}

type ManifestAtlas struct {
	Image   string           `json:"image"`
	Width   int              `json:"width"`
	Height  int              `json:"height"`
	Sprites []ManifestSprite `json:"sprites"`
}

// ManifestSprite locates one sprite: Frame is its rectangle inside the atlas,
// SpriteSourceSize its position and size inside the original frame, and
// SourceSize the original frame itself.
type ManifestSprite struct {
	Name             string `json:"name"`
	Frame            Rect   `json:"frame"`
	Trimmed          bool   `json:"trimmed"`
	SpriteSourceSize Rect   `json:"spriteSourceSize"`
	SourceSize       Size   `json:"sourceSize"`
}

// AtlasFilename synthesises the image filename for a bin. The index suffix is
// always present, including single-atlas runs, so filenames stay predictable.
func AtlasFilename(name string, index int, ext string) string {
	return fmt.Sprintf("%s_%d.%s", name, index, ext)
}

// BuildManifest assembles the manifest for a finished pack: atlases in bin
// order, sprites in the order they were placed.
func BuildManifest(atlases []*PackedAtlas, name string, imageExt string, opaque bool) *Manifest {
	format := FormatRGBA8888
	if opaque {
		format = FormatRGB888
	}
	m := &Manifest{
		App:     AppName,
		Version: AppVersion,
		Format:  format,
		Atlases: make([]ManifestAtlas, len(atlases)),
	}
	for i, a := range atlases {
		entry := ManifestAtlas{
			Image:   AtlasFilename(name, i, imageExt),
			Width:   a.Width,
			Height:  a.Height,
			Sprites: make([]ManifestSprite, len(a.Placements)),
		}
		for j, p := range a.Placements {
			s := p.Sprite
			entry.Sprites[j] = ManifestSprite{
				Name:    s.Name,
				Frame:   p.Frame,
				Trimmed: s.Trimmed,
				SpriteSourceSize: Rect{
					X: s.OffsetX,
					Y: s.OffsetY,
					W: s.Width(),
					H: s.Height(),
				},
				SourceSize: Size{W: s.SourceWidth, H: s.SourceHeight},
			}
		}
		m.Atlases[i] = entry
	}
	return m
}
