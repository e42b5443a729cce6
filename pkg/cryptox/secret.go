package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// SecretSize is the number of random bytes behind generated secrets, enough
// for an HS256 key.
const SecretSize = 32

var (
	pepperMu   sync.Mutex
	pepper     string
	pepperFile = "pepper"
)

// SetPepperPath sets the file the password pepper is read from (or written to
// when it doesn't exist yet). It resets any pepper already loaded.
func SetPepperPath(file string) {
	pepperMu.Lock()
	defer pepperMu.Unlock()

	pepperFile = file
	pepper = ""
}

// GetPepper returns the process-wide pepper appended to passwords before
// hashing, loading it on first use.
func GetPepper() string {
	pepperMu.Lock()
	defer pepperMu.Unlock()

	if pepper != "" {
		return pepper
	}

	var err error
	pepper, err = LoadOrGenerateSecret(pepperFile)
	if err != nil {
		slog.Error("failed to load or generate pepper", slog.Any("err", err))
		os.Exit(1)
	}

	return pepper
}

// LoadOrGenerateSecret reads a base64url secret from path. If the file does
// not exist a new random secret is generated and written with 0600
// permissions, so restarts keep using the same value.
func LoadOrGenerateSecret(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New("cryptox: secret path is empty")
	}

	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return "", fmt.Errorf("cryptox: create secret dir: %w", err)
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		secret := strings.TrimSpace(string(data))
		if secret == "" {
			return "", fmt.Errorf("cryptox: secret file %q is empty", path)
		}
		return secret, nil
	case !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("cryptox: read secret: %w", err)
	}

	secret, err := RandomSecret(SecretSize)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(secret), 0600); err != nil {
		return "", fmt.Errorf("cryptox: write secret: %w", err)
	}
	return secret, nil
}

// DecodeSecret turns a secret produced by LoadOrGenerateSecret back into raw
// key bytes. Secrets that are not base64url are used verbatim so operators can
// supply their own passphrase-style keys.
func DecodeSecret(secret string) []byte {
	if raw, err := base64.RawURLEncoding.DecodeString(secret); err == nil && len(raw) > 0 {
		return raw
	}
	return []byte(secret)
}

// RandomSecret returns size random bytes as unpadded base64url.
func RandomSecret(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("cryptox: secret size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("cryptox: read random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
