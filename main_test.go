package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/CrestNiraj12/cardfeed/infra/auth"
	"github.com/CrestNiraj12/cardfeed/infra/config"
)

func TestRootCmd_RejectsPositionalArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"extra"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for positional argument")
	}
}

func TestRootCmd_Version(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasPrefix(out.String(), "cardfeed ") || !strings.Contains(out.String(), "commit:") {
		t.Fatalf("unexpected version output: %q", out.String())
	}
}

func TestBindFlags_OnlyChangedFlagsOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--category", "21"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	v, err := config.NewViper("")
	if err != nil {
		t.Fatalf("new viper: %v", err)
	}
	if err := bindFlags(v, cmd); err != nil {
		t.Fatalf("bind flags: %v", err)
	}
	cfg, err := config.Load(v)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Category != 21 {
		t.Fatalf("expected category 21 from flag, got %d", cfg.Category)
	}
	if cfg.PageSize != 10 {
		t.Fatalf("unset --page-size must keep default 10, got %d", cfg.PageSize)
	}
}

func TestStartCategory(t *testing.T) {
	tests := []struct {
		name    string
		cfg     int
		flagSet bool
		state   int
		want    int
	}{
		{name: "config only", cfg: 4, want: 4},
		{name: "state beats config", cfg: 4, state: 9, want: 9},
		{name: "flag beats state", cfg: 4, flagSet: true, state: 9, want: 4},
		{name: "flag can reset to all", cfg: 0, flagSet: true, state: 9, want: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := startCategory(config.Config{Category: tc.cfg}, tc.flagSet, config.UIState{Category: tc.state})
			if got != tc.want {
				t.Fatalf("got %d want %d", got, tc.want)
			}
		})
	}
}

func TestCredentials(t *testing.T) {
	if _, ok := credentials(config.Config{}).(auth.Anonymous); !ok {
		t.Fatal("expected anonymous credentials without a token path")
	}
	if _, ok := credentials(config.Config{TokenPath: "/tmp/token"}).(*auth.FileCredentials); !ok {
		t.Fatal("expected file credentials with a token path")
	}
}

func TestResolveVersionInfo(t *testing.T) {
	settings := buildSettingsMap([]debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
	})

	v, c, d := resolveVersionInfo("dev", "none", "unknown", "v1.2.3", settings)
	if v != "v1.2.3" || c != "0123456789ab" || d != "2026-01-02T03:04:05Z" {
		t.Fatalf("unexpected resolved info: %q %q %q", v, c, d)
	}

	v, c, d = resolveVersionInfo("v9", "abc", "yesterday", "(devel)", settings)
	if v != "v9" || c != "abc" || d != "yesterday" {
		t.Fatalf("ldflags values must win: %q %q %q", v, c, d)
	}

	v, _, _ = resolveVersionInfo("dev", "none", "unknown", "(devel)", nil)
	if v != "dev" {
		t.Fatalf("devel module version must be ignored, got %q", v)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := loadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("a missing .env should be ignored, got %v", err)
	}

	good := filepath.Join(dir, "good.env")
	if err := os.WriteFile(good, []byte("CARDFEED_DOTENV_TEST=loaded\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CARDFEED_DOTENV_TEST", "")
	os.Unsetenv("CARDFEED_DOTENV_TEST")
	if err := loadDotEnv(good); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := os.Getenv("CARDFEED_DOTENV_TEST"); got != "loaded" {
		t.Fatalf("expected value from .env, got %q", got)
	}

	bad := filepath.Join(dir, "bad.env")
	if err := os.WriteFile(bad, []byte("CARDFEED_BROKEN=\"unterminated\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	err := loadDotEnv(bad)
	if err == nil {
		t.Fatal("a malformed .env should be reported")
	}
	if !strings.Contains(err.Error(), "loading .env") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
