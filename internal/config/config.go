package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/confusion-tui/internal/app"
	uistate "github.com/atomicstack/confusion-tui/internal/ui/state"
	"github.com/joho/godotenv"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	EnvFile string
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envBaseURL         = "CONFUSION_BASE_URL"
	envView            = "CONFUSION_VIEW"
	envTimeout         = "CONFUSION_TIMEOUT"
	envPersistComments = "CONFUSION_PERSIST_COMMENTS"
	envWidth           = "CONFUSION_WIDTH"
	envHeight          = "CONFUSION_HEIGHT"
	envShowFooter      = "CONFUSION_FOOTER"
	envCursorBlink     = "CONFUSION_CURSOR_BLINK"
	envTrace           = "CONFUSION_TRACE"
	envLogFile         = "CONFUSION_LOG_FILE"
	envEnvFile         = "CONFUSION_ENV_FILE"

	defaultBaseURL = "http://localhost:3000"
	defaultEnvFile = ".env"
	defaultTimeout = 10 * time.Second
	defaultLogFile = "confusion.log"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Values from the
// env file fill in variables missing from environ.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)
	envFile := envOrDefault(env, envEnvFile, defaultEnvFile)
	if err := mergeEnvFile(env, envFile); err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("confusion", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	baseURL := fs.String("base-url", envOrDefault(env, envBaseURL, defaultBaseURL), "base URL of the restaurant API")
	view := fs.String("view", envOrDefault(env, envView, "menu"), "initial view: menu, contact or dishdetail/<id>")
	timeout := fs.Duration("timeout", envOrDuration(env, envTimeout, defaultTimeout), "deadline for each API request")
	persist := fs.Bool("persist-comments", envOrBool(env, envPersistComments, true), "send new comments to the API with PUT")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, true), "show the key hint row")
	blink := fs.Bool("cursor-blink", envOrBool(env, envCursorBlink, true), "blink the text cursor in forms")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, defaultLogFile), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	cfg := Config{
		App: app.Config{
			BaseURL:         strings.TrimRight(*baseURL, "/"),
			View:            *view,
			Timeout:         *timeout,
			PersistComments: *persist,
			Width:           *width,
			Height:          *height,
			ShowFooter:      *footer,
			CursorBlink:     *blink,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		EnvFile: envFile,
		Flags: map[string]string{
			"base-url":         *baseURL,
			"view":             *view,
			"timeout":          timeout.String(),
			"persist-comments": strconv.FormatBool(*persist),
			"width":            strconv.Itoa(*width),
			"height":           strconv.Itoa(*height),
			"footer":           strconv.FormatBool(*footer),
			"cursor-blink":     strconv.FormatBool(*blink),
			"trace":            strconv.FormatBool(*trace),
			"logFile":          *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// mergeEnvFile copies keys from a dotenv file into env without overriding
// values already present. A missing file is not an error.
func mergeEnvFile(env map[string]string, path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	values, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read env file %s: %w", path, err)
	}
	for k, v := range values {
		if _, ok := env[k]; !ok {
			env[k] = v
		}
	}
	return nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects settings the client cannot start with.
func Validate(cfg Config) error {
	u, err := url.Parse(cfg.App.BaseURL)
	if err != nil {
		return fmt.Errorf("base-url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base-url must be http or https (got %q)", cfg.App.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("base-url needs a host (got %q)", cfg.App.BaseURL)
	}
	if cfg.App.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", cfg.App.Timeout)
	}
	if _, err := uistate.ParseRoute(cfg.App.View); err != nil {
		return fmt.Errorf("view: %w", err)
	}
	return nil
}
