package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	folio "github.com/goliatone/go-folio"
	"github.com/goliatone/go-folio/pkg/testsupport"
)

func writeContent(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := testsupport.WritePosts(dir, testsupport.SamplePosts()); err != nil {
		t.Fatalf("write posts: %v", err)
	}
	return dir
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCommand(&out, &errOut)
	base := []string{"--config-env", filepath.Join(t.TempDir(), "missing.env")}
	cmd.SetArgs(append(base, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestResolvePrintsFrontMatterAndBody(t *testing.T) {
	dir := writeContent(t)
	out, _, err := run(t, "resolve", "blog1", "--content-dir", dir)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !strings.Contains(out, `"title": "First Post"`) || !strings.Contains(out, "Hello **world**") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestResolveHTML(t *testing.T) {
	dir := writeContent(t)
	out, _, err := run(t, "resolve", "blog1", "--html", "--content-dir", dir)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !strings.Contains(out, "<strong>world</strong>") {
		t.Fatalf("expected rendered HTML, got %q", out)
	}
}

func TestResolveMissingExitsWithNotFound(t *testing.T) {
	dir := writeContent(t)
	_, _, err := run(t, "resolve", "blog3", "--content-dir", dir)
	if code := exitCode(err, &bytes.Buffer{}); code != exitNotFound {
		t.Fatalf("expected exit %d, got %d (%v)", exitNotFound, code, err)
	}
}

func TestExitCodeMapping(t *testing.T) {
	if code := exitCode(nil, &bytes.Buffer{}); code != 0 {
		t.Fatalf("expected 0, got %d", code)
	}
	if code := exitCode(&exitError{code: exitLoadError, err: errors.New("boom")}, &bytes.Buffer{}); code != exitLoadError {
		t.Fatalf("expected %d, got %d", exitLoadError, code)
	}
	if code := exitCode(errors.New("other"), &bytes.Buffer{}); code != 1 {
		t.Fatalf("expected 1, got %d", code)
	}
}

func TestListJSON(t *testing.T) {
	dir := writeContent(t)
	out, _, err := run(t, "list", "--json", "--content-dir", dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var summaries []folio.Summary
	if err := json.Unmarshal([]byte(out), &summaries); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(summaries) != 2 || summaries[0].Title != "First Post" || summaries[1].Title != "Untitled Blog" {
		t.Fatalf("unexpected summaries %+v", summaries)
	}
}

func TestListTable(t *testing.T) {
	dir := writeContent(t)
	out, _, err := run(t, "list", "--content-dir", dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "blog1") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestCheckStrictReportsMissingTitles(t *testing.T) {
	dir := writeContent(t)

	out, _, err := run(t, "check", "--content-dir", dir)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "checked 2 posts, 0 problems") {
		t.Fatalf("unexpected output %q", out)
	}

	out, _, err = run(t, "check", "--strict", "--content-dir", dir)
	if err == nil {
		t.Fatal("expected strict check to fail")
	}
	if !strings.Contains(out, "missing title\tblog2") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestImportDryRun(t *testing.T) {
	dir := writeContent(t)
	t.Setenv("FOLIO_DB_DRIVER", "sqlite3")
	t.Setenv("FOLIO_DB_DSN", testsupport.MemoryDSN(t.Name()))

	out, _, err := run(t, "import", dir, "--dry-run", "--content-dir", dir)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "created\tblog1") || !strings.Contains(out, "dry run") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestImportWithoutContentDir(t *testing.T) {
	dir := writeContent(t)
	t.Chdir(t.TempDir())
	t.Setenv("FOLIO_DB_DRIVER", "sqlite3")
	t.Setenv("FOLIO_DB_DSN", testsupport.MemoryDSN(t.Name()))

	out, _, err := run(t, "import", dir)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "created\tblog1") || !strings.Contains(out, "created\tblog2") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestImportDryRunLeavesDatabaseUntouched(t *testing.T) {
	dir := writeContent(t)
	dbPath := filepath.Join(t.TempDir(), "folio.db")
	t.Chdir(t.TempDir())
	t.Setenv("FOLIO_DB_DRIVER", "sqlite3")
	t.Setenv("FOLIO_DB_DSN", "file:"+dbPath)

	out, _, err := run(t, "import", dir, "--dry-run")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "dry run") {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := os.Stat(dbPath); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no database file, stat returned %v", err)
	}
}

func TestBootstrapErrorIsReported(t *testing.T) {
	_, _, err := run(t, "list", "--source", "ftp")
	if !errors.Is(err, folio.ErrPostsSourceUnknown) {
		t.Fatalf("expected ErrPostsSourceUnknown, got %v", err)
	}
}

func TestApplyGinMode(t *testing.T) {
	previous := gin.Mode()
	t.Cleanup(func() { gin.SetMode(previous) })

	applyGinMode(" Release ")
	if gin.Mode() != gin.ReleaseMode {
		t.Fatalf("expected release mode, got %q", gin.Mode())
	}
	applyGinMode("")
	if gin.Mode() != gin.DebugMode {
		t.Fatalf("expected debug mode for empty value, got %q", gin.Mode())
	}
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(out) != folio.Version {
		t.Fatalf("unexpected version %q", out)
	}
}
