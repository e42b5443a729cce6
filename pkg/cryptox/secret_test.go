package cryptox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadOrGenerateSecret(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "secret")

	first, err := LoadOrGenerateSecret(path)
	require.NoError(t, err)
	require.Len(t, DecodeSecret(first), SecretSize)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	// Second load must return the persisted value, not a fresh one.
	second, err := LoadOrGenerateSecret(path)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestLoadOrGenerateSecret_Errors(t *testing.T) {
	_, err := LoadOrGenerateSecret("")
	require.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0600))
	_, err = LoadOrGenerateSecret(empty)
	require.Error(t, err)
}

func TestDecodeSecret_Passphrase(t *testing.T) {
	require.Equal(t, []byte("not base64 !"), DecodeSecret("not base64 !"))
}

func TestRandomSecret(t *testing.T) {
	a, err := RandomSecret(SecretSize)
	require.NoError(t, err)
	require.Len(t, a, 43)

	b, err := RandomSecret(SecretSize)
	require.NoError(t, err)
	require.NotEqual(t, a, b)

	for _, size := range []int{0, -1} {
		_, err := RandomSecret(size)
		require.Error(t, err)
	}
}
