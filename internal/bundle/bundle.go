// Package bundle packages an add-on payload directory into the zip archive
// the host application installs (.ankiaddon).
package bundle

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// skipDirs are directories that must never end up in an installable archive.
var skipDirs = map[string]bool{
	".git":          true,
	"__pycache__":   true,
	".mypy_cache":   true,
	".pytest_cache": true,
}

// skipFiles are files the host either rejects or regenerates on install.
// meta.json in particular is written by the host and breaks installs when
// shipped.
var skipFiles = map[string]bool{
	".DS_Store": true,
	"meta.json": true,
}

// Archive zips the contents of srcDir into outPath. Entries are stored with
// forward-slash names relative to srcDir, in sorted order, so the archive is
// reproducible across platforms.
func Archive(srcDir, outPath string) error {
	info, err := os.Stat(srcDir)
	if err != nil {
		return fmt.Errorf("cannot read payload directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("payload path is not a directory: %s", srcDir)
	}

	files, err := collect(srcDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("payload directory %s contains no files", srcDir)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	defer out.Close()

	w := zip.NewWriter(out)
	for _, rel := range files {
		if err := addFile(w, srcDir, rel); err != nil {
			w.Close()
			return err
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return out.Close()
}

// collect walks srcDir and returns the sorted, slash-separated relative
// paths of every file to include.
func collect(srcDir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != srcDir && (skipDirs[name] || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if skipFiles[name] || strings.HasPrefix(name, ".") {
			return nil
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk payload directory: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

func addFile(w *zip.Writer, srcDir, rel string) error {
	f, err := os.Open(filepath.Join(srcDir, filepath.FromSlash(rel)))
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", rel, err)
	}
	defer f.Close()

	// zip.Writer.Create uses the Deflate method and a zero timestamp, which
	// keeps the archive byte-stable for identical inputs.
	entry, err := w.Create(rel)
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", rel, err)
	}
	if _, err := io.Copy(entry, f); err != nil {
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	return nil
}
