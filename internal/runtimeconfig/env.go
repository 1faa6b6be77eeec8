package runtimeconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LookupFunc resolves an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// Environment variables read by ApplyEnv.
const (
	EnvPostsSource        = "FOLIO_POSTS_SOURCE"
	EnvContentDir         = "FOLIO_CONTENT_DIR"
	EnvPostsPattern       = "FOLIO_POSTS_PATTERN"
	EnvPostsRecursive     = "FOLIO_POSTS_RECURSIVE"
	EnvFrontMatter        = "FOLIO_FRONT_MATTER"
	EnvDefaultTitle       = "FOLIO_DEFAULT_TITLE"
	EnvDefaultExcerpt     = "FOLIO_DEFAULT_EXCERPT"
	EnvDBDriver           = "FOLIO_DB_DRIVER"
	EnvDBDSN              = "FOLIO_DB_DSN"
	EnvMarkdownExtensions = "FOLIO_MARKDOWN_EXTENSIONS"
	EnvMarkdownHardWraps  = "FOLIO_MARKDOWN_HARD_WRAPS"
	EnvMarkdownSafeMode   = "FOLIO_MARKDOWN_SAFE_MODE"
	EnvAddr               = "FOLIO_ADDR"
	EnvPort               = "PORT"
	EnvGinMode            = "FOLIO_GIN_MODE"
	EnvProfilePath        = "FOLIO_PROFILE"
	EnvLogger             = "FOLIO_LOGGER"
	EnvLogProvider        = "FOLIO_LOG_PROVIDER"
	EnvLogLevel           = "FOLIO_LOG_LEVEL"
	EnvLogFormat          = "FOLIO_LOG_FORMAT"
	EnvLogSource          = "FOLIO_LOG_SOURCE"
	EnvLogFocus           = "FOLIO_LOG_FOCUS"
)

// LoadDotEnv loads KEY=value files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if strings.TrimSpace(path) == "" {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("folio config: load %s: %w", path, err)
		}
	}
	return nil
}

// FromEnv returns DefaultConfig with the process environment applied.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with the FOLIO_* variables found through lookup.
// PORT is honoured when FOLIO_ADDR is not set.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	if cfg == nil {
		return errors.New("folio config: nil config")
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}
	env := envReader{lookup: lookup}

	env.str(EnvPostsSource, &cfg.Posts.Source)
	env.str(EnvContentDir, &cfg.Posts.ContentDir)
	env.str(EnvPostsPattern, &cfg.Posts.Pattern)
	env.boolean(EnvPostsRecursive, &cfg.Posts.Recursive)
	env.str(EnvFrontMatter, &cfg.Posts.FrontMatter)
	env.str(EnvDefaultTitle, &cfg.Posts.DefaultTitle)
	env.str(EnvDefaultExcerpt, &cfg.Posts.DefaultExcerpt)

	env.str(EnvDBDriver, &cfg.Database.Driver)
	env.str(EnvDBDSN, &cfg.Database.DSN)

	env.list(EnvMarkdownExtensions, &cfg.Renderer.Extensions)
	env.boolean(EnvMarkdownHardWraps, &cfg.Renderer.HardWraps)
	env.boolean(EnvMarkdownSafeMode, &cfg.Renderer.SafeMode)

	if port, ok := env.get(EnvPort); ok {
		cfg.Server.Addr = ":" + strings.TrimPrefix(port, ":")
	}
	env.str(EnvAddr, &cfg.Server.Addr)
	env.str(EnvGinMode, &cfg.Server.Mode)

	env.str(EnvProfilePath, &cfg.Site.ProfilePath)

	env.boolean(EnvLogger, &cfg.Features.Logger)
	env.str(EnvLogProvider, &cfg.Logging.Provider)
	env.str(EnvLogLevel, &cfg.Logging.Level)
	env.str(EnvLogFormat, &cfg.Logging.Format)
	env.boolean(EnvLogSource, &cfg.Logging.AddSource)
	env.list(EnvLogFocus, &cfg.Logging.Focus)

	return errors.Join(env.errs...)
}

type envReader struct {
	lookup LookupFunc
	errs   []error
}

func (e *envReader) get(key string) (string, bool) {
	value, ok := e.lookup(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

func (e *envReader) str(key string, dst *string) {
	if value, ok := e.get(key); ok {
		*dst = value
	}
}

func (e *envReader) boolean(key string, dst *bool) {
	value, ok := e.get(key)
	if !ok {
		return
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("folio config: %s: %w", key, err))
		return
	}
	*dst = parsed
}

func (e *envReader) list(key string, dst *[]string) {
	value, ok := e.get(key)
	if !ok {
		return
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*dst = out
}
