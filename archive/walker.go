// Package archive reads definition bundles packed into zip files.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
)

// WalkFunc is called for every regular file in the archive accepted by match.
// If an error is returned, processing stops.
type WalkFunc func(file *zip.File) error

// IsArchive reports whether path names a zip bundle.
func IsArchive(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".zip")
}

// Walk visits files in archive order. Entries with absolute paths or ".."
// components make the whole archive invalid.
func Walk(archive string, match func(name string) bool, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		if !isSafePath(f.Name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", f.Name)
		}
		if f.FileInfo().IsDir() || !match(f.Name) {
			continue
		}
		if err := walkFn(f); err != nil {
			return err
		}
	}
	return nil
}

// ReadFile returns content of a single archive entry.
func ReadFile(archive, name string) ([]byte, error) {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	if !isSafePath(name) {
		return nil, fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
	}
	f, err := r.Open(name)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s in %s: %w", name, archive, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for part := range strings.SplitSeq(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
