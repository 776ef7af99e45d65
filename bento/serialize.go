package bento

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Manifest output formats selected by the CLI subcommand or config `format`.
const (
	FormatJSON    = "json"
	FormatGodot   = "godot"
	FormatTpsheet = "tpsheet"
)

// ManifestExt returns the manifest file extension for a format.
func ManifestExt(format string) (string, error) {
	switch format {
	case FormatJSON:
		return "json", nil
	case FormatGodot:
		return "tres", nil
	case FormatTpsheet:
		return "tpsheet", nil
	}
	return "", fmt.Errorf("%w: unknown manifest format %q", ErrInvalidConfig, format)
}

// WriteManifest serialises the manifest in the given format.
func WriteManifest(w io.Writer, m *Manifest, format string) error {
	switch format {
	case FormatJSON:
		return WriteManifestJSON(w, m)
	case FormatGodot:
		return WriteGodotResource(w, m)
	case FormatTpsheet:
		return WriteTpsheet(w, m)
	}
	return fmt.Errorf("%w: unknown manifest format %q", ErrInvalidConfig, format)
}

// WriteManifestJSON emits the neutral manifest as indented JSON.
func WriteManifestJSON(w io.Writer, m *Manifest) error {
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %s", ErrEncodeFailed, err)
	}
	raw = append(raw, '\n')
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("%w: %s", ErrEncodeFailed, err)
	}
	return nil
}

// WriteGodotResource emits a Godot .tres resource: one ExtResource texture per
// atlas and one AtlasTexture sub-resource per sprite. The margin rect restores
// the trimmed sprite to its original frame.
func WriteGodotResource(w io.Writer, m *Manifest) error {
	sprites := 0
	for _, a := range m.Atlases {
		sprites += len(a.Sprites)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "[gd_resource type=\"Resource\" load_steps=%d format=2]\n\n",
		len(m.Atlases)+sprites+1)
	for i, a := range m.Atlases {
		fmt.Fprintf(&sb, "[ext_resource path=\"res://%s\" type=\"Texture\" id=%d]\n", a.Image, i+1)
	}
	sb.WriteString("\n")
	id := 1
	for i, a := range m.Atlases {
		for _, s := range a.Sprites {
			fmt.Fprintf(&sb, "[sub_resource type=\"AtlasTexture\" id=%d]\n", id)
			fmt.Fprintf(&sb, "resource_name = \"%s\"\n", s.Name)
			fmt.Fprintf(&sb, "atlas = ExtResource( %d )\n", i+1)
			fmt.Fprintf(&sb, "region = Rect2( %d, %d, %d, %d )\n",
				s.Frame.X, s.Frame.Y, s.Frame.W, s.Frame.H)
			if s.Trimmed {
				fmt.Fprintf(&sb, "margin = Rect2( %d, %d, %d, %d )\n",
					s.SpriteSourceSize.X, s.SpriteSourceSize.Y,
					s.SourceSize.W-s.SpriteSourceSize.W-s.SpriteSourceSize.X,
					s.SourceSize.H-s.SpriteSourceSize.H-s.SpriteSourceSize.Y)
			}
			sb.WriteString("\n")
			id++
		}
	}
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("%w: %s", ErrEncodeFailed, err)
	}
	return nil
}

// tpsheet projection types. Field names follow the TexturePacker sheet layout
// consumed by the Godot importer plugin.
type tpsheetDoc struct {
	Textures []tpsheetTexture `json:"textures"`
	Meta     tpsheetMeta      `json:"meta"`
}

type tpsheetTexture struct {
	Image   string          `json:"image"`
	Size    Size            `json:"size"`
	Sprites []tpsheetSprite `json:"sprites"`
}

type tpsheetSprite struct {
	Filename         string `json:"filename"`
	Frame            Rect   `json:"frame"`
	Rotated          bool   `json:"rotated"`
	Trimmed          bool   `json:"trimmed"`
	SpriteSourceSize Rect   `json:"spriteSourceSize"`
	SourceSize       Size   `json:"sourceSize"`
}

type tpsheetMeta struct {
	App     string `json:"app"`
	Version string `json:"version"`
	Format  string `json:"format"`
}

// WriteTpsheet emits the manifest as a TexturePacker .tpsheet document.
func WriteTpsheet(w io.Writer, m *Manifest) error {
	doc := tpsheetDoc{
		Meta: tpsheetMeta{
			App:     m.App,
			Version: m.Version,
			Format:  strings.ToUpper(m.Format),
		},
	}
	for _, a := range m.Atlases {
		tex := tpsheetTexture{
			Image: a.Image,
			Size:  Size{W: a.Width, H: a.Height},
		}
		for _, s := range a.Sprites {
			tex.Sprites = append(tex.Sprites, tpsheetSprite{
				Filename:         s.Name,
				Frame:            s.Frame,
				Trimmed:          s.Trimmed,
				SpriteSourceSize: s.SpriteSourceSize,
				SourceSize:       s.SourceSize,
			})
		}
		doc.Textures = append(doc.Textures, tex)
	}
	raw, err := json.MarshalIndent(&doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %s", ErrEncodeFailed, err)
	}
	raw = append(raw, '\n')
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("%w: %s", ErrEncodeFailed, err)
	}
	return nil
}
