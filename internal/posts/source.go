package posts

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

// Source enumerates the entries available for resolution. Implementations
// must not assume the resolver keeps the returned slice between calls.
type Source interface {
	Entries(ctx context.Context) ([]SourceEntry, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]SourceEntry, error)

// Entries calls f(ctx).
func (f SourceFunc) Entries(ctx context.Context) ([]SourceEntry, error) {
	return f(ctx)
}

// StaticSource serves a fixed list of entries.
type StaticSource []SourceEntry

// Entries returns a copy of the list.
func (s StaticSource) Entries(ctx context.Context) ([]SourceEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]SourceEntry(nil), s...), nil
}

// FSConfig configures how markdown files are discovered in a filesystem.
type FSConfig struct {
	// Dir is the directory, relative to the filesystem root, holding posts.
	Dir string
	// Pattern filters files by glob (defaults to "*.md"). Patterns without a
	// slash match the base name, others match the full relative path.
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
}

// FSSource enumerates markdown files in an fs.FS. Identifiers are file base
// names without their extension; contents are read lazily by each loader.
type FSSource struct {
	fs        fs.FS
	dir       string
	pattern   string
	recursive bool
}

// NewFSSource constructs a filesystem-backed source.
func NewFSSource(filesystem fs.FS, cfg FSConfig) *FSSource {
	pattern := strings.TrimSpace(cfg.Pattern)
	if pattern == "" {
		pattern = "*.md"
	}
	dir := path.Clean(strings.TrimPrefix(strings.ReplaceAll(cfg.Dir, "\\", "/"), "/"))
	if dir == "" {
		dir = "."
	}
	return &FSSource{
		fs:        filesystem,
		dir:       dir,
		pattern:   pattern,
		recursive: cfg.Recursive,
	}
}

// NewDirSource builds an FSSource rooted at a directory on disk.
func NewDirSource(dir string, cfg FSConfig) (*FSSource, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("posts: stat content dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("posts: content dir %s is not a directory", dir)
	}
	cfg.Dir = "."
	return NewFSSource(os.DirFS(dir), cfg), nil
}

// Entries walks the configured directory and returns one entry per matching
// file, sorted by path. Two files sharing an identifier are rejected with
// ErrDuplicateIdentifier.
func (s *FSSource) Entries(ctx context.Context) ([]SourceEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var files []string
	walkErr := fs.WalkDir(s.fs, s.dir, func(current string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if current != s.dir && !s.recursive {
				return fs.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.matches(current) {
			files = append(files, current)
		}
		return nil
	})
	if walkErr != nil {
		return nil, wrapEnumerateError(fmt.Errorf("posts: walk %s: %w", s.dir, walkErr))
	}

	sort.Strings(files)

	seen := make(map[string]string, len(files))
	entries := make([]SourceEntry, 0, len(files))
	for _, file := range files {
		id := IdentifierFromPath(file)
		if previous, ok := seen[id]; ok {
			return nil, duplicateIdentifierError(id, previous, file)
		}
		seen[id] = file
		entries = append(entries, NewEntry(id, s.fileLoader(file)))
	}
	return entries, nil
}

func (s *FSSource) fileLoader(name string) ContentLoader {
	return func(ctx context.Context) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		data, err := fs.ReadFile(s.fs, name)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", name, err)
		}
		return string(data), nil
	}
}

func (s *FSSource) matches(file string) bool {
	target := path.Base(file)
	if strings.Contains(s.pattern, "/") {
		target = file
	}
	ok, err := path.Match(s.pattern, target)
	return err == nil && ok
}

// IdentifierFromPath derives an entry identifier from a slash separated path
// by taking the base name and stripping its extension.
func IdentifierFromPath(name string) string {
	base := path.Base(name)
	return strings.TrimSuffix(base, path.Ext(base))
}
