package bento

import (
	"bytes"
	"encoding/json"
	"reflect"
	"testing"
)

func packedFixture(t *testing.T) []*PackedAtlas {
	t.Helper()
	sprites := []*Sprite{
		redSprite("alpha", 16, 16),
		transparentSprite("beta", 8, 8),
	}
	return mustPack(t, sprites, packOpts(func(o *Options) { o.Padding = 0 }))
}

func TestBuildManifest_Fields(t *testing.T) {
	atlases := packedFixture(t)
	m := BuildManifest(atlases, "sheet", "png", false)
	if m.App != AppName || m.Version != AppVersion {
		t.Fatal("Manifest meta incomplete!")
	}
	if m.Format != FormatRGBA8888 {
		t.Fatalf("Format %q, expected %q!", m.Format, FormatRGBA8888)
	}
	if len(m.Atlases) != len(atlases) {
		t.Fatalf("Manifest has %d atlases, expected %d!", len(m.Atlases), len(atlases))
	}
	if m.Atlases[0].Image != "sheet_0.png" {
		t.Fatalf("Atlas image %q, expected sheet_0.png!", m.Atlases[0].Image)
	}
	total := 0
	for _, a := range m.Atlases {
		total += len(a.Sprites)
	}
	if total != 2 {
		t.Fatalf("Manifest has %d sprites, expected 2!", total)
	}
}

func TestBuildManifest_OpaqueFormat(t *testing.T) {
	m := BuildManifest(packedFixture(t), "sheet", "png", true)
	if m.Format != FormatRGB888 {
		t.Fatalf("Format %q, expected %q!", m.Format, FormatRGB888)
	}
}

func TestManifest_JSONRoundTrip(t *testing.T) {
	m := BuildManifest(packedFixture(t), "sheet", "png", false)
	var buf bytes.Buffer
	if err := WriteManifestJSON(&buf, m); err != nil {
		t.Fatalf("Couldn't serialize manifest: %s", err)
	}
	var back Manifest
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("Couldn't parse manifest json: %s", err)
	}
	if !reflect.DeepEqual(*m, back) {
		t.Fatal("Manifest round trip not identity!")
	}
}

func TestAtlasFilename(t *testing.T) {
	if got := AtlasFilename("atlas", 0, "png"); got != "atlas_0.png" {
		t.Fatalf("Got %q, expected atlas_0.png!", got)
	}
	if got := AtlasFilename("sheet", 3, "bmp"); got != "sheet_3.bmp" {
		t.Fatalf("Got %q, expected sheet_3.bmp!", got)
	}
}

func TestOccupancy(t *testing.T) {
	a := &PackedAtlas{
		Width:  10,
		Height: 10,
		Placements: []*Placement{
			{Frame: Rect{0, 0, 5, 10}},
		},
	}
	if occ := a.Occupancy(); occ != 0.5 {
		t.Fatalf("Occupancy %f, expected 0.5!", occ)
	}
}
