package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	envPrefix       = "CARDFEED"
	appDirName      = "cardfeed"
	defaultBaseURL  = "https://hanamyanmar.com/wp-json/wp/v2"
	defaultPageSize = 10
	maxPageSize     = 100 // WordPress caps per_page at 100
	defaultTimeout  = 15 * time.Second
)

// Config holds application-level configuration.
type Config struct {
	BaseURL     string        // REST root, e.g. "https://example.com/wp-json/wp/v2"
	Category    int           // Category ID filter, 0 for all posts
	PageSize    int           // Posts per page
	Timeout     time.Duration // Per-request transport timeout
	TokenPath   string        // Optional credentials file; empty means anonymous
	UIStatePath string        // Where UI preferences are persisted
	LogPath     string        // Structured log file
	LogLevel    string        // debug, info, warn or error
}

// NewViper returns a viper instance with defaults, CARDFEED_* environment
// binding, and the optional config file applied. An explicit configFile
// must exist; the default search locations may be empty.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()

	dir, err := defaultDir()
	if err != nil {
		return nil, err
	}
	v.SetDefault("base_url", defaultBaseURL)
	v.SetDefault("category", 0)
	v.SetDefault("page_size", defaultPageSize)
	v.SetDefault("timeout", defaultTimeout.String())
	v.SetDefault("token_path", "")
	v.SetDefault("state_path", filepath.Join(dir, "ui_state.yaml"))
	v.SetDefault("log_path", filepath.Join(dir, "cardfeed.log"))
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &nf) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	return v, nil
}

// Load reads and validates configuration from v.
//
//	CARDFEED_BASE_URL    REST root (https only; http allowed for localhost)
//	CARDFEED_CATEGORY    category ID filter (default: none)
//	CARDFEED_PAGE_SIZE   posts per page, 1..100 (default: 10)
//	CARDFEED_TIMEOUT     request timeout (default: 15s)
//	CARDFEED_TOKEN_PATH  credentials file (default: anonymous)
//	CARDFEED_STATE_PATH  UI state file (default: ~/.config/cardfeed/ui_state.yaml)
//	CARDFEED_LOG_PATH    log file (default: ~/.config/cardfeed/cardfeed.log)
//	CARDFEED_LOG_LEVEL   debug|info|warn|error (default: info)
func Load(v *viper.Viper) (Config, error) {
	base, err := normalizeBaseURL(v.GetString("base_url"))
	if err != nil {
		return Config{}, err
	}

	category := v.GetInt("category")
	if category < 0 {
		return Config{}, fmt.Errorf("invalid category %d: must be 0 or a category ID", category)
	}

	pageSize := v.GetInt("page_size")
	if pageSize < 1 || pageSize > maxPageSize {
		return Config{}, fmt.Errorf("invalid page_size %d: must be between 1 and %d", pageSize, maxPageSize)
	}

	timeout, err := time.ParseDuration(v.GetString("timeout"))
	if err != nil || timeout <= 0 {
		return Config{}, fmt.Errorf("invalid timeout %q: must be a positive duration", v.GetString("timeout"))
	}

	level := strings.ToLower(strings.TrimSpace(v.GetString("log_level")))
	switch level {
	case "debug", "info", "warn", "error":
	default:
		return Config{}, fmt.Errorf("invalid log_level %q", level)
	}

	return Config{
		BaseURL:     base,
		Category:    category,
		PageSize:    pageSize,
		Timeout:     timeout,
		TokenPath:   strings.TrimSpace(v.GetString("token_path")),
		UIStatePath: v.GetString("state_path"),
		LogPath:     v.GetString("log_path"),
		LogLevel:    level,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid base_url: must be an absolute URL")
	}
	switch parsed.Scheme {
	case "https":
	case "http":
		host := parsed.Hostname()
		if host != "localhost" && host != "127.0.0.1" && host != "::1" {
			return "", fmt.Errorf("invalid base_url: only https is allowed for remote hosts")
		}
	default:
		return "", fmt.Errorf("invalid base_url: unsupported scheme %q", parsed.Scheme)
	}
	parsed.RawQuery = ""
	parsed.Fragment = ""
	return strings.TrimRight(parsed.String(), "/"), nil
}

func defaultDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", fmt.Errorf("cannot determine config directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appDirName), nil
}
