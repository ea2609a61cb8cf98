package spec

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoSpecFile indicates no specification file was found in the target
// directory under any of the recognized names.
var ErrNoSpecFile = errors.New("no specification file found")

// Source supplies specification text for parsing. The parser does not care
// whether the text came from a local file or a remote episode listing;
// both variants satisfy this interface and are unified before parsing.
type Source interface {
	// Text returns the raw specification text.
	Text(ctx context.Context) (string, error)
	// Origin describes where the text comes from, for error messages and logs.
	Origin() string
}

// FileSource reads specification text from a file on disk.
type FileSource struct {
	Path string
}

func (s FileSource) Text(_ context.Context) (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("read spec file: %w", err)
	}
	return string(data), nil
}

func (s FileSource) Origin() string { return "spec file " + s.Path }

// FindFile locates the specification file for a directory. An explicit
// path wins and must exist; otherwise the directory is searched for the
// given names in order. No match returns ErrNoSpecFile.
func FindFile(dir, explicit string, names []string) (FileSource, error) {
	if explicit != "" {
		path, err := filepath.Abs(explicit)
		if err != nil {
			return FileSource{}, err
		}
		if _, err := os.Stat(path); err != nil {
			return FileSource{}, fmt.Errorf("spec file %s: %w", path, err)
		}
		return FileSource{Path: path}, nil
	}

	for _, name := range names {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return FileSource{Path: candidate}, nil
		}
	}
	return FileSource{}, fmt.Errorf("%w in %s (looked for %v)", ErrNoSpecFile, dir, names)
}

// Load fetches text from a source and parses it, attributing failures to
// the source's origin.
func Load(ctx context.Context, src Source) (*Table, error) {
	text, err := src.Text(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Origin(), err)
	}
	table, err := Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Origin(), err)
	}
	return table, nil
}
