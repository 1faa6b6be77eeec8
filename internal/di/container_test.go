package di

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-folio/internal/logging/console"
	"github.com/goliatone/go-folio/internal/logging/gologger"
	"github.com/goliatone/go-folio/internal/posts"
	"github.com/goliatone/go-folio/internal/runtimeconfig"
	"github.com/goliatone/go-folio/pkg/testsupport"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func contentDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	if err := testsupport.WritePosts(dir, files); err != nil {
		t.Fatalf("write posts: %v", err)
	}
	return dir
}

func testConfig(dir string) runtimeconfig.Config {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Posts.ContentDir = dir
	cfg.Server.Mode = gin.TestMode
	return cfg
}

func TestNewContainerServesFilesystemPosts(t *testing.T) {
	dir := contentDir(t, map[string]string{
		"blog1.md": "---\ntitle: First Post\n---\nHello",
	})

	var logs bytes.Buffer
	c, err := NewContainer(testConfig(dir), WithLogOutput(&logs))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	defer c.Close()

	if _, ok := c.LoggerProvider().(*console.Provider); !ok {
		t.Fatalf("expected console provider, got %T", c.LoggerProvider())
	}

	result := c.PostsService().Get(context.Background(), "blog1")
	if !result.IsFound() || result.Post.Title("") != "First Post" {
		t.Fatalf("unexpected result %v", result)
	}

	rec := httptest.NewRecorder()
	c.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/blogs/blog1", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "First Post") {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
	if c.Router() != c.Router() {
		t.Fatal("expected router to be built once")
	}
}

func TestRouterLeavesGinModeAlone(t *testing.T) {
	cfg := testConfig(contentDir(t, testsupport.SamplePosts()))
	cfg.Server.Mode = gin.ReleaseMode

	c, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	defer c.Close()

	c.Router()
	if gin.Mode() != gin.TestMode {
		t.Fatalf("expected gin mode to stay %q, got %q", gin.TestMode, gin.Mode())
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Posts.Source = "ftp"
	if _, err := NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrPostsSourceUnknown) {
		t.Fatalf("expected ErrPostsSourceUnknown, got %v", err)
	}
}

func TestNewContainerMissingContentDir(t *testing.T) {
	cfg := testConfig(filepath.Join(t.TempDir(), "missing"))
	if _, err := NewContainer(cfg); err == nil {
		t.Fatal("expected error for missing content directory")
	}
}

func TestNewContainerDeferredSourceOpensOnFirstUse(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "content")
	c, err := NewContainer(testConfig(dir), WithDeferredPostsSource())
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if _, err := c.PostsService().Entries(ctx); err == nil {
		t.Fatal("expected error while content directory is missing")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := testsupport.WritePosts(dir, testsupport.SamplePosts()); err != nil {
		t.Fatalf("write posts: %v", err)
	}
	entries, err := c.PostsService().Entries(ctx)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
}

func TestNewContainerUsesGoLoggerProvider(t *testing.T) {
	cfg := testConfig(contentDir(t, nil))
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "json"

	c, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if _, ok := c.LoggerProvider().(*gologger.Provider); !ok {
		t.Fatalf("expected go-logger provider, got %T", c.LoggerProvider())
	}
}

func TestNewContainerWithoutLoggerFeature(t *testing.T) {
	cfg := testConfig(contentDir(t, nil))
	cfg.Features.Logger = false

	c, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if c.LoggerProvider() != nil {
		t.Fatalf("expected no provider, got %T", c.LoggerProvider())
	}
	if c.Logger("folio.posts") == nil {
		t.Fatal("expected no-op logger")
	}
}

func TestNewContainerDatabaseSource(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Posts.Source = runtimeconfig.SourceDatabase
	cfg.Database.DSN = testsupport.MemoryDSN(t.Name())
	cfg.Server.Mode = gin.TestMode

	db, err := testsupport.NewSQLiteMemoryDB(t.Name())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()

	c, err := NewContainer(cfg, WithBunDB(db))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}

	ctx := context.Background()
	store, err := c.DatabaseSource(ctx)
	if err != nil {
		t.Fatalf("DatabaseSource: %v", err)
	}
	if _, _, err := store.Upsert(ctx, "stored", "---\ntitle: Stored\n---\nBody", 0); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	result := c.PostsService().Get(ctx, "stored")
	if !result.IsFound() || result.Post.Title("") != "Stored" {
		t.Fatalf("unexpected result %v", result)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("expected caller-owned db to stay open: %v", err)
	}
}

func TestPostsCommandsCheck(t *testing.T) {
	c, err := NewContainer(testConfig(t.TempDir()), WithPostsSource(posts.StaticSource{
		posts.StaticEntry("ok", "---\ntitle: Ok\n---\nBody"),
	}))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}

	set, err := c.PostsCommands(context.Background(), false)
	if err != nil {
		t.Fatalf("PostsCommands: %v", err)
	}
	if set.Check == nil || set.Import == nil {
		t.Fatalf("expected check and import handlers, got %+v", set)
	}
	if c.dbSource != nil {
		t.Fatal("expected database to stay closed without a store")
	}
}
