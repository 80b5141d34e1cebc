package auth

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileCredentials_Bearer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token")
	if err := os.WriteFile(path, []byte("  abc123 \n"), 0o600); err != nil {
		t.Fatalf("write token failed: %v", err)
	}

	p := NewFileCredentials(path)
	got, err := p.Authorization()
	if err != nil {
		t.Fatalf("authorization failed: %v", err)
	}
	if got != "Bearer abc123" {
		t.Fatalf("unexpected header: %q", got)
	}
}

func TestFileCredentials_ApplicationPassword(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("editor:abcd efgh ijkl\n"), 0o600); err != nil {
		t.Fatalf("write token failed: %v", err)
	}

	got, err := NewFileCredentials(path).Authorization()
	if err != nil {
		t.Fatalf("authorization failed: %v", err)
	}
	want := "Basic " + base64.StdEncoding.EncodeToString([]byte("editor:abcd efgh ijkl"))
	if got != want {
		t.Fatalf("unexpected header: got %q want %q", got, want)
	}
}

func TestFileCredentials_Errors(t *testing.T) {
	p := NewFileCredentials(filepath.Join(t.TempDir(), "missing"))
	if _, err := p.Authorization(); err == nil {
		t.Fatalf("expected missing-file error")
	}

	empty := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(empty, []byte(" \n\t"), 0o600); err != nil {
		t.Fatalf("write empty token failed: %v", err)
	}
	p = NewFileCredentials(empty)
	_, err := p.Authorization()
	if err == nil || !strings.Contains(err.Error(), "empty") {
		t.Fatalf("expected empty-credentials error, got: %v", err)
	}
}

func TestAnonymous_NoHeader(t *testing.T) {
	got, err := Anonymous{}.Authorization()
	if err != nil || got != "" {
		t.Fatalf("anonymous must yield empty header, got %q %v", got, err)
	}
}
