// SPDX-License-Identifier: EPL-2.0

package discover

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// File is one discovered audio file. Ext is the extension as configured,
// not as spelled on disk.
type File struct {
	Path string
	Ext  string
}

// Name returns the base name of the file.
func (f File) Name() string { return filepath.Base(f.Path) }

// ExtCount is the number of files matched for one extension.
type ExtCount struct {
	Ext   string
	Count int
}

// FileSet is an ordered, append-only list of discovered files.
// The zero value is ready to use. A FileSet is owned by its caller and is
// not safe for concurrent Discover calls.
type FileSet struct {
	files []File
	exts  []string // every extension ever searched for, first seen order
}

type options struct {
	foldCase bool
	logger   *slog.Logger
}

// Option tunes discovery.
type Option func(*options)

// WithFoldCase makes extension matching case-insensitive.
func WithFoldCase(fold bool) Option {
	return func(o *options) { o.foldCase = fold }
}

// WithLogger sets the logger used for the per-extension report.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Discover scans dir and returns a new set of matching files.
func Discover(dir string, exts []string, opts ...Option) (*FileSet, error) {
	fs := &FileSet{}
	if err := fs.Discover(dir, exts, opts...); err != nil {
		return nil, err
	}
	return fs, nil
}

// Discover scans dir for regular files whose name ends in "."+ext for each
// ext in order, and appends them to fs. Files of one extension are added in
// lexical name order. Calling Discover again appends again; nothing is
// deduplicated.
//
// A directory that does not exist or cannot be read matches nothing. This is
// logged, not returned.
func (fs *FileSet) Discover(dir string, exts []string, opts ...Option) error {
	if len(exts) == 0 {
		return ErrNoExtensions
	}
	for i, ext := range exts {
		if ext == "" {
			return fmt.Errorf("%w at index %d", ErrEmptyExtension, i)
		}
	}

	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	names := regularFiles(dir, o.logger)

	total := 0
	for _, ext := range exts {
		if !slices.Contains(fs.exts, ext) {
			fs.exts = append(fs.exts, ext)
		}

		suffix := "." + ext
		matched := 0
		for _, name := range names {
			if hasSuffix(name, suffix, o.foldCase) {
				fs.files = append(fs.files, File{Path: filepath.Join(dir, name), Ext: ext})
				matched++
			}
		}

		o.logger.Info("discovered files", "ext", ext, "count", matched, "dir", dir)
		total += matched
	}

	for _, f := range fs.files[len(fs.files)-total:] {
		o.logger.Debug("discovered file", "path", f.Path)
	}
	o.logger.Info("discovery finished", "total", total, "set_size", len(fs.files))

	return nil
}

// regularFiles returns the sorted names of the non-directory entries of dir.
func regularFiles(dir string, logger *slog.Logger) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Debug("directory not readable, nothing discovered", "dir", dir, "err", err)
		return nil
	}

	// os.ReadDir sorts by name already
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !e.Type().IsRegular() {
			// follow symlinks to files
			info, err := os.Stat(filepath.Join(dir, e.Name()))
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		}
		names = append(names, e.Name())
	}

	return names
}

// hasSuffix requires a non-empty stem: a dotfile such as ".wav" is hidden and
// not an audio file, the same way shell globs skip it.
func hasSuffix(name, suffix string, fold bool) bool {
	if len(name) <= len(suffix) {
		return false
	}
	if fold {
		return strings.EqualFold(name[len(name)-len(suffix):], suffix)
	}
	return strings.HasSuffix(name, suffix)
}

// Add appends files to the set.
func (fs *FileSet) Add(files ...File) {
	for _, f := range files {
		if !slices.Contains(fs.exts, f.Ext) {
			fs.exts = append(fs.exts, f.Ext)
		}
	}
	fs.files = append(fs.files, files...)
}

// Files returns a copy of the discovered files in discovery order.
func (fs *FileSet) Files() []File {
	if fs == nil {
		return nil
	}
	return slices.Clone(fs.files)
}

// Len returns the total number of files in the set.
func (fs *FileSet) Len() int {
	if fs == nil {
		return 0
	}
	return len(fs.files)
}

// Counts returns the number of files per extension, in the order the
// extensions were first searched for. Extensions that matched nothing are
// included with a zero count.
func (fs *FileSet) Counts() []ExtCount {
	if fs == nil {
		return nil
	}

	out := make([]ExtCount, len(fs.exts))
	for i, ext := range fs.exts {
		out[i].Ext = ext
		for _, f := range fs.files {
			if f.Ext == ext {
				out[i].Count++
			}
		}
	}
	return out
}
