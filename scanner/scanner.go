// Package scanner finds the files a batch run should tokenize.
package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

type FileInfo struct {
	Path string
	Size int64
}

type Scanner struct {
	rootDir    string
	extensions []string
}

// New returns a Scanner for rootDir. With no extensions every file matches.
func New(rootDir string, extensions ...string) *Scanner {
	return &Scanner{
		rootDir:    rootDir,
		extensions: extensions,
	}
}

// Scan walks the root and returns matching files sorted by path. Hidden
// directories are skipped. A root that is itself a file is returned as is
// when it matches.
func (s *Scanner) Scan() ([]FileInfo, error) {
	var files []FileInfo

	err := filepath.WalkDir(s.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != s.rootDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !s.Match(path) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, FileInfo{Path: path, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(files, func(a, b FileInfo) int {
		return strings.Compare(a.Path, b.Path)
	})
	return files, nil
}

// Match reports whether path has one of the scanner's extensions.
func (s *Scanner) Match(path string) bool {
	if len(s.extensions) == 0 {
		return true
	}
	return slices.Contains(s.extensions, filepath.Ext(path))
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
