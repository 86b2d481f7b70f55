package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func noEnvFile(t *testing.T) string {
	t.Helper()
	return "CONFUSION_ENV_FILE=" + filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{noEnvFile(t)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.BaseURL != "http://localhost:3000" {
		t.Fatalf("unexpected base url %q", cfg.App.BaseURL)
	}
	if cfg.App.View != "menu" || cfg.App.Timeout != 10*time.Second {
		t.Fatalf("unexpected defaults %#v", cfg.App)
	}
	if !cfg.App.PersistComments || !cfg.App.ShowFooter || !cfg.App.CursorBlink {
		t.Fatalf("expected persist, footer and cursor blink on by default")
	}
	if cfg.Logging.FilePath != "confusion.log" || cfg.Logging.Trace {
		t.Fatalf("unexpected logging defaults %#v", cfg.Logging)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected defaults to validate: %v", err)
	}
}

func TestLoadArgsFlagsOverrideEnvironment(t *testing.T) {
	env := []string{
		noEnvFile(t),
		"CONFUSION_BASE_URL=http://env:3000",
		"CONFUSION_VIEW=contact",
		"CONFUSION_TIMEOUT=3s",
		"CONFUSION_PERSIST_COMMENTS=false",
		"CONFUSION_WIDTH=90",
	}
	cfg, err := LoadArgs([]string{"-base-url", "http://flag:4000/", "-width", "70", "-trace"}, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.BaseURL != "http://flag:4000" {
		t.Fatalf("expected flag base url without trailing slash, got %q", cfg.App.BaseURL)
	}
	if cfg.App.View != "contact" || cfg.App.Timeout != 3*time.Second || cfg.App.PersistComments {
		t.Fatalf("expected env values, got %#v", cfg.App)
	}
	if cfg.App.Width != 70 || !cfg.Logging.Trace {
		t.Fatalf("expected flag values, got %#v %#v", cfg.App, cfg.Logging)
	}
	if cfg.Flags["timeout"] != "3s" || cfg.Flags["width"] != "70" {
		t.Fatalf("unexpected flag map %#v", cfg.Flags)
	}
}

func TestLoadArgsCursorBlink(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{noEnvFile(t), "CONFUSION_CURSOR_BLINK=false"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.CursorBlink || cfg.Flags["cursor-blink"] != "false" {
		t.Fatalf("expected env to disable blinking, got %v / %q", cfg.App.CursorBlink, cfg.Flags["cursor-blink"])
	}
	cfg, err = LoadArgs([]string{"-cursor-blink=true"}, []string{noEnvFile(t), "CONFUSION_CURSOR_BLINK=false"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.App.CursorBlink {
		t.Fatalf("expected flag to win over env")
	}
}

func TestLoadArgsReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "confusion.env")
	content := "CONFUSION_BASE_URL=http://dotenv:5000\nCONFUSION_VIEW=dishdetail/2\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	cfg, err := LoadArgs(nil, []string{"CONFUSION_ENV_FILE=" + path, "CONFUSION_VIEW=menu"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.BaseURL != "http://dotenv:5000" {
		t.Fatalf("expected env file base url, got %q", cfg.App.BaseURL)
	}
	if cfg.App.View != "menu" {
		t.Fatalf("expected process environment to win, got %q", cfg.App.View)
	}
	if cfg.EnvFile != path {
		t.Fatalf("expected env file recorded, got %q", cfg.EnvFile)
	}
}

func TestLoadArgsRejectsNegativeSize(t *testing.T) {
	if _, err := LoadArgs([]string{"-height", "-1"}, []string{noEnvFile(t)}); err == nil {
		t.Fatalf("expected error for negative height")
	}
}

func TestLoadArgsUnknownFlag(t *testing.T) {
	if _, err := LoadArgs([]string{"-socket", "x"}, []string{noEnvFile(t)}); err == nil {
		t.Fatalf("expected unknown flag error")
	}
}

func TestValidate(t *testing.T) {
	base, err := LoadArgs(nil, []string{noEnvFile(t)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"scheme", func(c *Config) { c.App.BaseURL = "ftp://x" }, "http or https"},
		{"host", func(c *Config) { c.App.BaseURL = "http://" }, "needs a host"},
		{"timeout", func(c *Config) { c.App.Timeout = 0 }, "timeout"},
		{"view", func(c *Config) { c.App.View = "aboutus" }, "view"},
	}
	for _, tc := range cases {
		cfg := base
		tc.mutate(&cfg)
		err := Validate(cfg)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: expected error containing %q, got %v", tc.name, tc.want, err)
		}
	}
	dish := base
	dish.App.View = "dishdetail/0"
	if err := Validate(dish); err != nil {
		t.Fatalf("expected dish view to validate: %v", err)
	}
}
