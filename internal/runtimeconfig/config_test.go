package runtimeconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/goliatone/go-folio/internal/runtimeconfig"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := runtimeconfig.DefaultConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{"unknown source", func(c *runtimeconfig.Config) { c.Posts.Source = "s3" }, runtimeconfig.ErrPostsSourceUnknown},
		{"fs without dir", func(c *runtimeconfig.Config) { c.Posts.ContentDir = " " }, runtimeconfig.ErrContentDirRequired},
		{"bad parser", func(c *runtimeconfig.Config) { c.Posts.FrontMatter = "toml" }, runtimeconfig.ErrFrontMatterParserInvalid},
		{"database without driver", func(c *runtimeconfig.Config) {
			c.Posts.Source = runtimeconfig.SourceDatabase
			c.Database.Driver = ""
		}, runtimeconfig.ErrDatabaseDriverRequired},
		{"database unknown driver", func(c *runtimeconfig.Config) {
			c.Posts.Source = runtimeconfig.SourceDatabase
			c.Database.Driver = "mysql"
		}, runtimeconfig.ErrDatabaseDriverUnknown},
		{"database without dsn", func(c *runtimeconfig.Config) {
			c.Posts.Source = runtimeconfig.SourceDatabase
			c.Database.DSN = ""
		}, runtimeconfig.ErrDatabaseDSNRequired},
		{"no addr", func(c *runtimeconfig.Config) { c.Server.Addr = "" }, runtimeconfig.ErrServerAddrRequired},
		{"bad mode", func(c *runtimeconfig.Config) { c.Server.Mode = "prod" }, runtimeconfig.ErrServerModeInvalid},
		{"no provider", func(c *runtimeconfig.Config) { c.Logging.Provider = "" }, runtimeconfig.ErrLoggingProviderRequired},
		{"unknown provider", func(c *runtimeconfig.Config) { c.Logging.Provider = "syslog" }, runtimeconfig.ErrLoggingProviderUnknown},
		{"bad level", func(c *runtimeconfig.Config) { c.Logging.Level = "loud" }, runtimeconfig.ErrLoggingLevelInvalid},
		{"bad format", func(c *runtimeconfig.Config) {
			c.Logging.Provider = "gologger"
			c.Logging.Format = "xml"
		}, runtimeconfig.ErrLoggingFormatInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestConfigValidateSkipsLoggingWhenDisabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = false
	cfg.Logging.Provider = "syslog"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected logging checks to be skipped, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		runtimeconfig.EnvPostsSource:        "database",
		runtimeconfig.EnvDBDriver:           "postgres",
		runtimeconfig.EnvDBDSN:              "postgres://localhost/folio",
		runtimeconfig.EnvPostsRecursive:     "true",
		runtimeconfig.EnvMarkdownExtensions: "table, footnote,,",
		runtimeconfig.EnvPort:               "9000",
		runtimeconfig.EnvLogLevel:           "debug",
		runtimeconfig.EnvLogFocus:           "folio.posts",
		runtimeconfig.EnvContentDir:         "   ",
	}
	cfg := runtimeconfig.DefaultConfig()
	if err := runtimeconfig.ApplyEnv(&cfg, mapLookup(env)); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}

	if cfg.Posts.Source != "database" || cfg.Database.Driver != "postgres" || cfg.Database.DSN != "postgres://localhost/folio" {
		t.Fatalf("unexpected database settings %+v %+v", cfg.Posts, cfg.Database)
	}
	if !cfg.Posts.Recursive {
		t.Fatal("expected recursive to be enabled")
	}
	if !reflect.DeepEqual(cfg.Renderer.Extensions, []string{"table", "footnote"}) {
		t.Fatalf("unexpected extensions %v", cfg.Renderer.Extensions)
	}
	if cfg.Server.Addr != ":9000" {
		t.Fatalf("expected PORT to set addr, got %q", cfg.Server.Addr)
	}
	if cfg.Logging.Level != "debug" || !reflect.DeepEqual(cfg.Logging.Focus, []string{"folio.posts"}) {
		t.Fatalf("unexpected logging %+v", cfg.Logging)
	}
	if cfg.Posts.ContentDir != "content" {
		t.Fatalf("expected blank value to be ignored, got %q", cfg.Posts.ContentDir)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestApplyEnvAddrWinsOverPort(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	err := runtimeconfig.ApplyEnv(&cfg, mapLookup(map[string]string{
		runtimeconfig.EnvPort: "9000",
		runtimeconfig.EnvAddr: "127.0.0.1:7000",
	}))
	if err != nil || cfg.Server.Addr != "127.0.0.1:7000" {
		t.Fatalf("expected FOLIO_ADDR to win, got %q %v", cfg.Server.Addr, err)
	}
}

func TestApplyEnvRejectsBadBool(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	err := runtimeconfig.ApplyEnv(&cfg, mapLookup(map[string]string{runtimeconfig.EnvMarkdownSafeMode: "maybe"}))
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("FOLIO_TEST_DOTENV=from-file\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("FOLIO_TEST_DOTENV") })

	if err := runtimeconfig.LoadDotEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("FOLIO_TEST_DOTENV"); got != "from-file" {
		t.Fatalf("expected variable from file, got %q", got)
	}
}

func mapLookup(values map[string]string) runtimeconfig.LookupFunc {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}
