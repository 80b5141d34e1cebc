package auth

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
)

// CredentialProvider supplies the Authorization header for API requests.
// An empty header means the request is sent anonymously.
type CredentialProvider interface {
	Authorization() (string, error)
}

// Anonymous sends requests without credentials. Public WordPress
// endpoints need nothing else.
type Anonymous struct{}

func (Anonymous) Authorization() (string, error) { return "", nil }

// FileCredentials reads credentials from a file on disk.
//
// The file holds either a bearer token, or a WordPress application
// password in the form "user:application password", which is sent as
// HTTP basic auth.
type FileCredentials struct {
	path string
}

// NewFileCredentials creates a CredentialProvider that reads from the given file path.
func NewFileCredentials(path string) *FileCredentials {
	return &FileCredentials{path: path}
}

// Authorization reads the file and builds the header value, trimming whitespace.
func (f *FileCredentials) Authorization() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", fmt.Errorf("reading credentials from %s: %w", f.path, err)
	}

	secret := strings.TrimSpace(string(data))
	if secret == "" {
		return "", fmt.Errorf("credentials file %s is empty", f.path)
	}

	if user, pass, ok := strings.Cut(secret, ":"); ok && user != "" && pass != "" {
		raw := user + ":" + pass
		return "Basic " + base64.StdEncoding.EncodeToString([]byte(raw)), nil
	}
	return "Bearer " + secret, nil
}
