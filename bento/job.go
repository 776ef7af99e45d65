package bento

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// JobResult describes everything a finished pack job produced.
type JobResult struct {
	Atlases      []*PackedAtlas
	Manifest     *Manifest
	ImageFiles   []string
	ManifestFile string
}

// RunJob is the end-to-end operation behind the CLI and the script driver:
// expand inputs, decode, pack, write atlas images and the manifest file.
func RunJob(ctx context.Context, cfg *Config, progress ProgressFunc) (*JobResult, error) {
	manifestExt, err := ManifestExt(cfg.Format)
	if err != nil {
		return nil, err
	}
	level, err := ParseCompression(cfg.Compress)
	if err != nil {
		return nil, err
	}
	if cfg.ImageFormat != "" && cfg.ImageFormat != ImageFormatPNG && cfg.ImageFormat != ImageFormatBMP {
		return nil, fmt.Errorf("%w: unknown image format %q", ErrInvalidConfig, cfg.ImageFormat)
	}
	paths, err := ExpandInputs(cfg.Input)
	if err != nil {
		return nil, err
	}
	sprites, err := LoadSprites(paths)
	if err != nil {
		return nil, err
	}
	atlases, err := Pack(ctx, sprites, cfg.Options(), progress)
	if err != nil {
		return nil, err
	}

	imageFormat := cfg.ImageFormat
	if imageFormat == "" {
		imageFormat = ImageFormatPNG
	}
	manifest := BuildManifest(atlases, cfg.Name, imageFormat, cfg.Opaque)

	imageFiles, err := WriteAtlasImages(cfg.OutputDir, cfg.Name, atlases, imageFormat, level)
	if err != nil {
		return nil, err
	}
	manifestFile := filepath.Join(cfg.OutputDir, cfg.Name+"."+manifestExt)
	f, err := os.Create(manifestFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrEncodeFailed, manifestFile, err)
	}
	err = WriteManifest(f, manifest, cfg.Format)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("%w: %s: %s", ErrEncodeFailed, manifestFile, cerr)
	}
	if err != nil {
		return nil, err
	}
	return &JobResult{
		Atlases:      atlases,
		Manifest:     manifest,
		ImageFiles:   imageFiles,
		ManifestFile: manifestFile,
	}, nil
}
