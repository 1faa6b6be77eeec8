package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPostsSourceUnknown       = errors.New("folio config: posts source is invalid")
	ErrContentDirRequired       = errors.New("folio config: content directory is required for the fs source")
	ErrFrontMatterParserInvalid = errors.New("folio config: front matter parser is invalid")
	ErrDatabaseDriverRequired   = errors.New("folio config: database driver is required for the database source")
	ErrDatabaseDriverUnknown    = errors.New("folio config: database driver is invalid")
	ErrDatabaseDSNRequired      = errors.New("folio config: database dsn is required for the database source")
	ErrServerAddrRequired       = errors.New("folio config: server address is required")
	ErrServerModeInvalid        = errors.New("folio config: server mode is invalid")
	ErrLoggingProviderRequired  = errors.New("folio config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown   = errors.New("folio config: logging provider is invalid")
	ErrLoggingLevelInvalid      = errors.New("folio config: logging level is invalid")
	ErrLoggingFormatInvalid     = errors.New("folio config: logging format is invalid")
)

const (
	SourceFS       = "fs"
	SourceDatabase = "database"
)

// Config aggregates everything the site needs at startup.
type Config struct {
	Posts    PostsConfig
	Database DatabaseConfig
	Renderer RendererConfig
	Server   ServerConfig
	Site     SiteConfig
	Logging  LoggingConfig
	Features Features
}

// PostsConfig selects where posts come from and how they are parsed.
type PostsConfig struct {
	// Source is "fs" or "database".
	Source     string
	ContentDir string
	Pattern    string
	Recursive  bool
	// FrontMatter is "lines" or "yaml".
	FrontMatter    string
	DefaultTitle   string
	DefaultExcerpt string
}

type DatabaseConfig struct {
	Driver string
	DSN    string
}

// RendererConfig mirrors posts.RenderOptions.
type RendererConfig struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}

type ServerConfig struct {
	Addr string
	// Mode is the gin mode: debug, release or test.
	Mode string
}

// SiteConfig points at the profile YAML. Empty uses the embedded profile.
type SiteConfig struct {
	ProfilePath string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Features toggles optional behaviour.
type Features struct {
	Logger bool
}

// DefaultConfig serves markdown from ./content on :8080.
func DefaultConfig() Config {
	return Config{
		Posts: PostsConfig{
			Source:         SourceFS,
			ContentDir:     "content",
			Pattern:        "*.md",
			FrontMatter:    "lines",
			DefaultTitle:   "Untitled Blog",
			DefaultExcerpt: "No description available.",
		},
		Database: DatabaseConfig{
			Driver: "sqlite3",
			DSN:    "file:folio.db?cache=shared",
		},
		Server: ServerConfig{
			Addr: ":8080",
			Mode: "release",
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Features: Features{
			Logger: true,
		},
	}
}

// Validate performs consistency checks across sections.
func (cfg Config) Validate() error {
	switch normalize(cfg.Posts.Source) {
	case SourceFS, "":
		if strings.TrimSpace(cfg.Posts.ContentDir) == "" {
			return ErrContentDirRequired
		}
	case SourceDatabase:
		driver := normalize(cfg.Database.Driver)
		if driver == "" {
			return ErrDatabaseDriverRequired
		}
		if !isSupportedDriver(driver) {
			return fmt.Errorf("%w: %s", ErrDatabaseDriverUnknown, driver)
		}
		if strings.TrimSpace(cfg.Database.DSN) == "" {
			return ErrDatabaseDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrPostsSourceUnknown, cfg.Posts.Source)
	}

	switch normalize(cfg.Posts.FrontMatter) {
	case "", "lines", "line", "yaml", "structured":
	default:
		return fmt.Errorf("%w: %s", ErrFrontMatterParserInvalid, cfg.Posts.FrontMatter)
	}

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return ErrServerAddrRequired
	}
	switch normalize(cfg.Server.Mode) {
	case "", "debug", "release", "test":
	default:
		return fmt.Errorf("%w: %s", ErrServerModeInvalid, cfg.Server.Mode)
	}

	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedDriver(driver string) bool {
	switch driver {
	case "sqlite", "sqlite3", "postgres", "postgresql":
		return true
	default:
		return false
	}
}

func isSupportedProvider(provider string) bool {
	return provider == "console" || provider == "gologger"
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
