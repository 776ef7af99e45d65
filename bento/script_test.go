package bento

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunPackScript_Basic(t *testing.T) {
	dir := t.TempDir()
	writeTestPng(t, dir, "one.png", 8, 8)
	writeTestPng(t, dir, "two.png", 8, 8)
	script := `
local result = pack({
	input = {"*.png"},
	output_dir = "out",
	name = "scripted",
	format = "json",
	padding = 0,
})
log("packed " .. #result.atlases .. " atlases")
if result.atlases[1].sprites ~= 2 then
	error("expected 2 sprites")
end
`
	state, err := RunPackScript(context.Background(), script, dir)
	if err != nil {
		t.Fatalf("Script failed: %s", err)
	}
	if len(state.Results) != 1 {
		t.Fatalf("Script ran %d jobs, expected 1!", len(state.Results))
	}
	result := state.Results[0]
	if _, err := os.Stat(result.ManifestFile); err != nil {
		t.Fatalf("Scripted manifest missing: %s", err)
	}
	if filepath.Dir(result.ManifestFile) != filepath.Join(dir, "out") {
		t.Fatalf("Output dir not resolved against script dir: %q", result.ManifestFile)
	}
	for _, f := range result.ImageFiles {
		if _, err := os.Stat(f); err != nil {
			t.Fatalf("Scripted atlas missing: %s", err)
		}
	}
}

func TestRunPackScript_MultipleJobs(t *testing.T) {
	dir := t.TempDir()
	writeTestPng(t, dir, "one.png", 8, 8)
	script := `
pack({ input = {"one.png"}, output_dir = "a", name = "first" })
pack({ input = {"one.png"}, output_dir = "b", name = "second", pot = true })
`
	state, err := RunPackScript(context.Background(), script, dir)
	if err != nil {
		t.Fatalf("Script failed: %s", err)
	}
	if len(state.Results) != 2 {
		t.Fatalf("Script ran %d jobs, expected 2!", len(state.Results))
	}
}

func TestRunPackScript_UnknownOption(t *testing.T) {
	_, err := RunPackScript(context.Background(), `pack({ rotation = true })`, "")
	if err == nil {
		t.Fatal("Script accepted an unknown option!")
	}
	if !strings.Contains(err.Error(), "rotation") {
		t.Fatalf("Error doesn't name the bad option: %s", err)
	}
}

func TestRunPackScript_PackErrorPropagates(t *testing.T) {
	dir := t.TempDir()
	script := `pack({ input = {"*.png"} })`
	_, err := RunPackScript(context.Background(), script, dir)
	if err == nil {
		t.Fatal("Script swallowed a pack failure!")
	}
}
