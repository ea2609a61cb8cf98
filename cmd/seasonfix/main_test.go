package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func setupShowDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	specText := "1 | 1-4\n2 | 5-7\n3 | 8-10\n"
	if err := os.WriteFile(filepath.Join(dir, "seasonfix.spec"), []byte(specText), 0o644); err != nil {
		t.Fatal(err)
	}
	names := []string{
		"Episode 1 - A.mkv", "Episode 2 - B.mkv", "Episode 3 - C.mkv",
		"Episode 4 - D.mkv", "Episode 5 - E.mkv", "Episode 6 - F.mkv",
		"Episode 7 - G.mkv", "Episode 8 - H.mkv", "Episode 9 - I.mkv",
		"Episode 10 - J.mkv",
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func exists(t *testing.T, dir, name string) bool {
	t.Helper()
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}

func TestRenameDryRunLeavesFilesAlone(t *testing.T) {
	dir := setupShowDir(t)

	out, err := runCommand(t, "rename", "-d", dir, "--dry-run")
	if err != nil {
		t.Fatalf("rename --dry-run failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Episode 5 - E.mkv -> S02E01 - E.mkv") {
		t.Fatalf("plan missing expected entry:\n%s", out)
	}
	if !exists(t, dir, "Episode 5 - E.mkv") || exists(t, dir, "S02E01 - E.mkv") {
		t.Fatal("dry run must not rename files")
	}
}

func TestRenameRestoreRoundTrip(t *testing.T) {
	dir := setupShowDir(t)

	out, err := runCommand(t, "rename", "-d", dir)
	if err != nil {
		t.Fatalf("rename failed: %v\n%s", err, out)
	}
	if !exists(t, dir, "S02E01 - E.mkv") || !exists(t, dir, "S03E03 - J.mkv") {
		t.Fatalf("expected renamed files on disk:\n%s", out)
	}
	if exists(t, dir, "Episode 5 - E.mkv") {
		t.Fatal("original name should be gone after rename")
	}
	if !strings.Contains(out, "Renamed 10 file(s), skipped 0.") {
		t.Fatalf("missing tally:\n%s", out)
	}

	// A second run has nothing to do.
	out, err = runCommand(t, "rename", "-d", dir)
	if err != nil {
		t.Fatalf("second rename failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Nothing to rename.") {
		t.Fatalf("second run should be a no-op:\n%s", out)
	}

	out, err = runCommand(t, "restore", "-d", dir)
	if err != nil {
		t.Fatalf("restore failed: %v\n%s", err, out)
	}
	for _, name := range []string{"Episode 1 - A.mkv", "Episode 5 - E.mkv", "Episode 10 - J.mkv"} {
		if !exists(t, dir, name) {
			t.Fatalf("original %q missing after restore:\n%s", name, out)
		}
	}
	if !strings.Contains(out, "Restored 10 file(s), skipped 0.") {
		t.Fatalf("missing restore tally:\n%s", out)
	}

	// With the record pruned, another restore has nothing to work from.
	if _, err = runCommand(t, "restore", "-d", dir); err == nil {
		t.Fatal("expected error restoring twice")
	}
}

func TestRenameSkipsUnmappedEpisode(t *testing.T) {
	dir := setupShowDir(t)
	if err := os.WriteFile(filepath.Join(dir, "Episode 99 - X.mkv"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCommand(t, "rename", "-d", dir)
	if err != nil {
		t.Fatalf("rename failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Skipping Episode 99 - X.mkv") {
		t.Fatalf("expected skip report:\n%s", out)
	}
	if !exists(t, dir, "Episode 99 - X.mkv") {
		t.Fatal("unmapped file must stay untouched")
	}
	if !strings.Contains(out, "Renamed 10 file(s), skipped 1.") {
		t.Fatalf("missing tally:\n%s", out)
	}
}

func TestRenameConflictAbortsBeforeMutation(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "seasonfix.spec"), []byte("1 | 1-4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"Episode 3 - Twin.mkv", "Episode 03 - Twin.mkv"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	_, err := runCommand(t, "rename", "-d", dir)
	if err == nil {
		t.Fatal("expected conflict error")
	}
	if !exists(t, dir, "Episode 3 - Twin.mkv") || !exists(t, dir, "Episode 03 - Twin.mkv") {
		t.Fatal("conflict must leave both files untouched")
	}
	if exists(t, dir, "S01E03 - Twin.mkv") {
		t.Fatal("no file may be renamed on conflict")
	}
}

func TestRenameMissingSpecFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Episode 1 - A.mkv"), []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := runCommand(t, "rename", "-d", dir); err == nil {
		t.Fatal("expected error when no spec file exists")
	}
}

func TestSpecShow(t *testing.T) {
	dir := setupShowDir(t)

	out, err := runCommand(t, "spec", "show", "-d", dir)
	if err != nil {
		t.Fatalf("spec show failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Season 2: episodes 5-7") {
		t.Fatalf("missing season line:\n%s", out)
	}
}

func TestSpecFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"number":1,"episode_count":4},{"number":2,"episode_count":3}]}`))
	}))
	t.Cleanup(server.Close)

	configPath := filepath.Join(t.TempDir(), "config.toml")
	content := "[tvdb]\napi_key = \"token\"\nbase_url = \"" + server.URL + "\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCommand(t, "spec", "fetch", "--series", "42", "-c", configPath)
	if err != nil {
		t.Fatalf("spec fetch failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "1 | 1-4") || !strings.Contains(out, "2 | 5-7") {
		t.Fatalf("unexpected spec text:\n%s", out)
	}
}

func TestSpecFetchRequiresSeries(t *testing.T) {
	if _, err := runCommand(t, "spec", "fetch"); err == nil {
		t.Fatal("expected error without --series")
	}
}
