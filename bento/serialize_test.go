package bento

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func manifestFixture() *Manifest {
	return &Manifest{
		App:     AppName,
		Version: AppVersion,
		Format:  FormatRGBA8888,
		Atlases: []ManifestAtlas{
			{
				Image:  "sheet_0.png",
				Width:  64,
				Height: 64,
				Sprites: []ManifestSprite{
					{
						Name:             "hero",
						Frame:            Rect{0, 0, 10, 12},
						Trimmed:          true,
						SpriteSourceSize: Rect{3, 4, 10, 12},
						SourceSize:       Size{16, 20},
					},
					{
						Name:             "tile",
						Frame:            Rect{11, 0, 8, 8},
						SpriteSourceSize: Rect{0, 0, 8, 8},
						SourceSize:       Size{8, 8},
					},
				},
			},
		},
	}
}

func TestManifestExt(t *testing.T) {
	cases := map[string]string{
		FormatJSON:    "json",
		FormatGodot:   "tres",
		FormatTpsheet: "tpsheet",
	}
	for format, want := range cases {
		got, err := ManifestExt(format)
		if err != nil {
			t.Fatalf("ManifestExt(%q) failed: %s", format, err)
		}
		if got != want {
			t.Fatalf("ManifestExt(%q) = %q, expected %q!", format, got, want)
		}
	}
	if _, err := ManifestExt("xml"); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Expected ErrInvalidConfig for unknown format, got %v!", err)
	}
}

func TestWriteGodotResource(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteGodotResource(&buf, manifestFixture()); err != nil {
		t.Fatalf("Couldn't write godot resource: %s", err)
	}
	out := buf.String()
	expected := []string{
		"[gd_resource type=\"Resource\" load_steps=4 format=2]",
		"[ext_resource path=\"res://sheet_0.png\" type=\"Texture\" id=1]",
		"[sub_resource type=\"AtlasTexture\" id=1]",
		"region = Rect2( 0, 0, 10, 12 )",
		"margin = Rect2( 3, 4, 3, 4 )",
		"region = Rect2( 11, 0, 8, 8 )",
		"resource_name = \"hero\"",
		"resource_name = \"tile\"",
	}
	for _, want := range expected {
		if !strings.Contains(out, want) {
			t.Fatalf("Godot output missing %q!\n%s", want, out)
		}
	}
	// The untrimmed sprite needs no margin.
	if strings.Count(out, "margin = ") != 1 {
		t.Fatal("Expected exactly one margin line!")
	}
}

func TestWriteTpsheet(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTpsheet(&buf, manifestFixture()); err != nil {
		t.Fatalf("Couldn't write tpsheet: %s", err)
	}
	var doc tpsheetDoc
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("Tpsheet output is not valid json: %s", err)
	}
	if len(doc.Textures) != 1 {
		t.Fatalf("Tpsheet has %d textures, expected 1!", len(doc.Textures))
	}
	tex := doc.Textures[0]
	if tex.Image != "sheet_0.png" || tex.Size != (Size{64, 64}) {
		t.Fatal("Tpsheet texture header wrong!")
	}
	if len(tex.Sprites) != 2 {
		t.Fatalf("Tpsheet has %d sprites, expected 2!", len(tex.Sprites))
	}
	if tex.Sprites[0].Filename != "hero" || !tex.Sprites[0].Trimmed {
		t.Fatal("Tpsheet sprite entry wrong!")
	}
	if doc.Meta.Format != "RGBA8888" {
		t.Fatalf("Tpsheet meta format %q, expected RGBA8888!", doc.Meta.Format)
	}
}

func TestWriteManifest_Dispatch(t *testing.T) {
	for _, format := range []string{FormatJSON, FormatGodot, FormatTpsheet} {
		var buf bytes.Buffer
		if err := WriteManifest(&buf, manifestFixture(), format); err != nil {
			t.Fatalf("WriteManifest(%q) failed: %s", format, err)
		}
		if buf.Len() == 0 {
			t.Fatalf("WriteManifest(%q) wrote nothing!", format)
		}
	}
	var buf bytes.Buffer
	if err := WriteManifest(&buf, manifestFixture(), "yaml"); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Expected ErrInvalidConfig for unknown format, got %v!", err)
	}
}
