// Package vfs materializes a virtual filesystem archive onto disk so the
// console can browse it.
package vfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
	"github.com/gabriel-vasile/mimetype"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

var (
	// ErrArchiveNotFound is returned when the archive path does not exist
	ErrArchiveNotFound = errors.New("archive not found")
	// ErrInvalidArchive is returned for anything that is not a usable zip
	ErrInvalidArchive = errors.New("invalid zip file")
)

// zipMIME is the detected type of a zip archive. Formats built on zip
// (jar, docx, ...) are accepted through mimetype's hierarchy.
const zipMIME = "application/zip"

// Stats describes the extracted tree
type Stats struct {
	Dir   string
	Files int
	Dirs  int
	Bytes int64
}

// Load extracts archive into dest, creating it if needed and overwriting
// files that already exist. Entries escaping dest are rejected. The
// returned stats cover everything under dest after extraction.
func Load(ctx context.Context, archive, dest string) (Stats, error) {
	if _, err := os.Stat(archive); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Stats{}, fmt.Errorf("%w: %s", ErrArchiveNotFound, archive)
		}
		return Stats{}, fmt.Errorf("failed to stat archive: %w", err)
	}

	mtype, err := mimetype.DetectFile(archive)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to detect archive type: %w", err)
	}
	if !isZip(mtype) {
		return Stats{}, fmt.Errorf("%w: %s is %s", ErrInvalidArchive, archive, mtype.String())
	}

	reader, err := zip.OpenReader(archive)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}
	defer reader.Close()
	reader.RegisterDecompressor(zip.Deflate, newFlateReader)
	reader.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())

	dest, err = filepath.Abs(dest)
	if err != nil {
		return Stats{}, fmt.Errorf("invalid destination: %w", err)
	}
	if err := os.MkdirAll(dest, 0755); err != nil {
		return Stats{}, fmt.Errorf("failed to create destination: %w", err)
	}

	for _, file := range reader.File {
		select {
		case <-ctx.Done():
			return Stats{}, fmt.Errorf("extraction cancelled: %w", ctx.Err())
		default:
		}

		if err := extractFile(file, dest); err != nil {
			return Stats{}, err
		}
	}

	return collectStats(dest)
}

func newFlateReader(r io.Reader) io.ReadCloser {
	return flate.NewReader(r)
}

func isZip(mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is(zipMIME) {
			return true
		}
	}
	return false
}

// entryPath resolves a zip entry name under dest
func entryPath(dest, name string) (string, error) {
	target := filepath.Join(dest, filepath.FromSlash(name))
	if target != dest && !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: entry %q escapes destination", ErrInvalidArchive, name)
	}
	return target, nil
}

func extractFile(file *zip.File, dest string) error {
	target, err := entryPath(dest, file.Name)
	if err != nil {
		return err
	}

	if file.FileInfo().IsDir() {
		if err := os.MkdirAll(target, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", file.Name, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create parent of %s: %w", file.Name, err)
	}

	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidArchive, file.Name, err)
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file.Name, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("%w: %s: %v", ErrInvalidArchive, file.Name, err)
	}
	return dst.Close()
}

// collectStats counts everything below dir. The callback runs concurrently.
func collectStats(dir string) (Stats, error) {
	var files, dirs, bytes atomic.Int64

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if p == dir {
			return nil
		}
		if d.IsDir() {
			dirs.Add(1)
			return nil
		}
		files.Add(1)
		if info, err := d.Info(); err == nil {
			bytes.Add(info.Size())
		}
		return nil
	})
	if err != nil {
		return Stats{}, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	return Stats{
		Dir:   dir,
		Files: int(files.Load()),
		Dirs:  int(dirs.Load()),
		Bytes: bytes.Load(),
	}, nil
}
