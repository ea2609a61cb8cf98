package spec

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSourceText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "show.spec")
	if err := os.WriteFile(path, []byte("1 | 1-12\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	src := FileSource{Path: path}
	text, err := src.Text(context.Background())
	if err != nil {
		t.Fatalf("Text returned error: %v", err)
	}
	if text != "1 | 1-12\n" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestFindFileExplicitPathMustExist(t *testing.T) {
	dir := t.TempDir()
	if _, err := FindFile(dir, filepath.Join(dir, "missing.spec"), nil); err == nil {
		t.Fatal("expected error for missing explicit spec file")
	}
}

func TestFindFileSearchOrder(t *testing.T) {
	dir := t.TempDir()
	names := []string{"seasonfix.spec", ".seasonfix.spec"}

	if err := os.WriteFile(filepath.Join(dir, ".seasonfix.spec"), []byte("1 | 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	src, err := FindFile(dir, "", names)
	if err != nil {
		t.Fatalf("FindFile returned error: %v", err)
	}
	if filepath.Base(src.Path) != ".seasonfix.spec" {
		t.Fatalf("expected fallback name, got %s", src.Path)
	}

	// The first name wins once both exist.
	if err := os.WriteFile(filepath.Join(dir, "seasonfix.spec"), []byte("1 | 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	src, err = FindFile(dir, "", names)
	if err != nil {
		t.Fatalf("FindFile returned error: %v", err)
	}
	if filepath.Base(src.Path) != "seasonfix.spec" {
		t.Fatalf("expected preferred name, got %s", src.Path)
	}
}

func TestFindFileNone(t *testing.T) {
	_, err := FindFile(t.TempDir(), "", []string{"seasonfix.spec"})
	if !errors.Is(err, ErrNoSpecFile) {
		t.Fatalf("expected ErrNoSpecFile, got %v", err)
	}
}

type staticSource struct {
	text string
	err  error
}

func (s staticSource) Text(context.Context) (string, error) { return s.text, s.err }
func (s staticSource) Origin() string                       { return "static" }

func TestLoadAttributesErrorsToOrigin(t *testing.T) {
	_, err := Load(context.Background(), staticSource{text: "bogus\n"})
	if err == nil {
		t.Fatal("expected parse error")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected wrapped ParseError, got %v", err)
	}
}

func TestLoadSourceFailure(t *testing.T) {
	wantErr := errors.New("boom")
	_, err := Load(context.Background(), staticSource{err: wantErr})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}
}
