package storage

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/osmkit/mapscript/model/types"
	"github.com/stretchr/testify/assert"
)

func TestService_Zip(t *testing.T) {
	baseDir := t.TempDir()
	tilesDir := filepath.Join(baseDir, "OruxMaps", "israel")
	assert.Nil(t, os.MkdirAll(tilesDir, 0o755))
	assert.Nil(t, os.WriteFile(filepath.Join(tilesDir, "tile_76_51.png"), []byte("png-a"), 0o644))
	assert.Nil(t, os.WriteFile(filepath.Join(tilesDir, "tile_76_52.png"), []byte("png-b"), 0o644))
	assert.Nil(t, os.WriteFile(filepath.Join(baseDir, "index.xml"), []byte("<map/>"), 0o644))

	service := New()
	output := &ZipOutput{}
	zipFile := filepath.Join(t.TempDir(), "israel.zip")
	err := service.Zip(context.Background(), &ZipInput{BaseDir: baseDir, ZipFile: zipFile}, output)
	assert.Nil(t, err)
	assert.Equal(t, 3, output.Entries)
	assert.Equal(t, zipFile, output.ZipFile)

	reader, err := zip.OpenReader(zipFile)
	if !assert.Nil(t, err) {
		return
	}
	defer reader.Close()
	var names []string
	for _, entry := range reader.File {
		names = append(names, entry.Name)
	}
	sort.Strings(names)
	assert.Equal(t, []string{
		"OruxMaps/israel/tile_76_51.png",
		"OruxMaps/israel/tile_76_52.png",
		"index.xml",
	}, names)
}

func TestService_Zip_explicitFiles(t *testing.T) {
	baseDir := t.TempDir()
	assert.Nil(t, os.WriteFile(filepath.Join(baseDir, "keep.txt"), []byte("keep"), 0o644))
	assert.Nil(t, os.WriteFile(filepath.Join(baseDir, "skip.txt"), []byte("skip"), 0o644))

	service := New()
	output := &ZipOutput{}
	zipFile := filepath.Join(baseDir, "subset.zip")
	input := &ZipInput{
		BaseDir: baseDir,
		ZipFile: zipFile,
		Files:   []string{filepath.Join(baseDir, "keep.txt")},
	}
	assert.Nil(t, service.Zip(context.Background(), input, output))
	assert.Equal(t, 1, output.Entries)

	reader, err := zip.OpenReader(zipFile)
	if !assert.Nil(t, err) {
		return
	}
	defer reader.Close()
	assert.Equal(t, 1, len(reader.File))
	assert.Equal(t, "keep.txt", reader.File[0].Name)
}

func TestService_Zip_validation(t *testing.T) {
	service := New()
	err := service.Zip(context.Background(), &ZipInput{}, &ZipOutput{})
	assert.True(t, errors.Is(err, types.ErrMalformedArgument))

	err = service.Zip(context.Background(), &ZipInput{BaseDir: "/no/such/dir", ZipFile: "/tmp/x.zip"}, &ZipOutput{})
	assert.True(t, errors.Is(err, types.ErrPathResolution))
}
