package folio

import "github.com/goliatone/go-folio/internal/runtimeconfig"

var (
	ErrPostsSourceUnknown       = runtimeconfig.ErrPostsSourceUnknown
	ErrContentDirRequired       = runtimeconfig.ErrContentDirRequired
	ErrFrontMatterParserInvalid = runtimeconfig.ErrFrontMatterParserInvalid
	ErrDatabaseDriverRequired   = runtimeconfig.ErrDatabaseDriverRequired
	ErrDatabaseDriverUnknown    = runtimeconfig.ErrDatabaseDriverUnknown
	ErrDatabaseDSNRequired      = runtimeconfig.ErrDatabaseDSNRequired
	ErrServerAddrRequired       = runtimeconfig.ErrServerAddrRequired
	ErrServerModeInvalid        = runtimeconfig.ErrServerModeInvalid
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
)

const (
	SourceFS       = runtimeconfig.SourceFS
	SourceDatabase = runtimeconfig.SourceDatabase
)

type (
	Config         = runtimeconfig.Config
	PostsConfig    = runtimeconfig.PostsConfig
	DatabaseConfig = runtimeconfig.DatabaseConfig
	RendererConfig = runtimeconfig.RendererConfig
	ServerConfig   = runtimeconfig.ServerConfig
	SiteConfig     = runtimeconfig.SiteConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	Features       = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// ConfigFromEnv loads the optional dotenv files and returns DefaultConfig
// with the FOLIO_* environment applied.
func ConfigFromEnv(dotenv ...string) (Config, error) {
	if err := runtimeconfig.LoadDotEnv(dotenv...); err != nil {
		return Config{}, err
	}
	return runtimeconfig.FromEnv()
}
