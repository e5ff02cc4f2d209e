package storage

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/osmkit/mapscript/model/types"
	"github.com/osmkit/mapscript/runtime/session"
	"github.com/viant/afs/file"
	"github.com/viant/afs/option"
)

// ZipInput defines parameters for the zip directive
type ZipInput struct {
	// BaseDir is the directory whose content is archived; entry names are
	// relative to it
	BaseDir string `json:"baseDir" description:"directory to archive"`
	// ZipFile is the destination archive location
	ZipFile string `json:"zipFile" description:"destination zip file"`
	// Files optionally restricts the archive to the listed locations
	Files []string `json:"files,omitempty" description:"optional subset of files to archive"`
}

// ZipOutput describes the created archive
type ZipOutput struct {
	ZipFile string `json:"zipFile,omitempty"`
	Entries int    `json:"entries,omitempty"`
	Size    int64  `json:"size,omitempty"`
}

// Zip archives files under BaseDir into ZipFile.  afs handles all source and
// destination I/O; the zip encoding itself uses the standard library since
// afs only reads archives.
func (s *Service) Zip(ctx context.Context, input *ZipInput, output *ZipOutput) error {
	if input.BaseDir == "" || input.ZipFile == "" {
		return fmt.Errorf("%w: base-dir and zip-file are required", types.ErrMalformedArgument)
	}
	baseDir := input.BaseDir
	zipFile := input.ZipFile
	if sess, ok := session.FromContext(ctx); ok {
		baseDir = sess.Resolve(baseDir)
		zipFile = sess.Resolve(zipFile)
		for i, item := range input.Files {
			input.Files[i] = sess.Resolve(item)
		}
	}
	if ok, _ := s.fs.Exists(ctx, baseDir); !ok {
		return fmt.Errorf("%w: %s", types.ErrPathResolution, baseDir)
	}

	locations := input.Files
	if len(locations) == 0 {
		objects, err := s.fs.List(ctx, baseDir, option.NewRecursive(true))
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", baseDir, err)
		}
		for _, object := range objects {
			if object.IsDir() {
				continue
			}
			locations = append(locations, object.URL())
		}
	}

	buffer := new(bytes.Buffer)
	writer := zip.NewWriter(buffer)
	for _, location := range locations {
		data, err := s.fs.DownloadWithURL(ctx, location)
		if err != nil {
			return fmt.Errorf("%w: %s", types.ErrPathResolution, location)
		}
		entry, err := writer.Create(entryName(baseDir, location))
		if err != nil {
			return err
		}
		if _, err = entry.Write(data); err != nil {
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}

	if err := s.fs.Upload(ctx, zipFile, file.DefaultFileOsMode, bytes.NewReader(buffer.Bytes())); err != nil {
		return fmt.Errorf("failed to upload %s: %w", zipFile, err)
	}
	output.ZipFile = zipFile
	output.Entries = len(locations)
	output.Size = int64(buffer.Len())
	return nil
}

// entryName derives the archive entry name relative to the base directory
func entryName(baseDir, location string) string {
	name := location
	if idx := strings.Index(name, "://"); idx != -1 {
		name = name[idx+3:]
		if slash := strings.Index(name, "/"); slash != -1 {
			name = name[slash:]
		}
	}
	base := baseDir
	if idx := strings.Index(base, "://"); idx != -1 {
		base = base[idx+3:]
		if slash := strings.Index(base, "/"); slash != -1 {
			base = base[slash:]
		}
	}
	if strings.HasPrefix(name, base) {
		name = strings.TrimPrefix(name, base)
	}
	return strings.TrimPrefix(name, "/")
}
