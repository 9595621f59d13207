package keystore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptSeed_RoundTrip(t *testing.T) {
	seed := make([]byte, 64)
	for i := range seed {
		seed[i] = byte(i * 3)
	}

	encrypted, err := EncryptSeed(seed, "correct horse")
	require.NoError(t, err)
	assert.NotContains(t, string(encrypted), string(seed[:16]))

	decrypted, err := DecryptSeed(encrypted, "correct horse")
	require.NoError(t, err)
	assert.Equal(t, seed, decrypted)
}

func TestDecryptSeed_WrongPassword(t *testing.T) {
	seed := []byte("some thirty-two byte seed value!")
	encrypted, err := EncryptSeed(seed, "right")
	require.NoError(t, err)

	_, err = DecryptSeed(encrypted, "wrong")
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestDecryptSeed_Truncated(t *testing.T) {
	_, err := DecryptSeed([]byte{1, 2, 3}, "pw")
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestEncryptSeed_Empty(t *testing.T) {
	_, err := EncryptSeed(nil, "pw")
	assert.ErrorIs(t, err, ErrInvalidSeed)
}

func TestSeedFromMnemonic_Invalid(t *testing.T) {
	_, err := SeedFromMnemonic("definitely not a mnemonic", "")
	assert.ErrorIs(t, err, ErrInvalidMnemonic)
}

func TestGenerateMnemonic_24Words(t *testing.T) {
	mnemonic, err := GenerateMnemonic()
	require.NoError(t, err)
	assert.Len(t, strings.Fields(mnemonic), 24)

	seed, err := SeedFromMnemonic(mnemonic, "")
	require.NoError(t, err)
	assert.Len(t, seed, 64)
}

func TestStore_LoadOrCreate(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, "test-password")

	assert.False(t, store.Exists())
	_, err := store.Load()
	assert.ErrorIs(t, err, ErrKeyNotFound)

	// First use creates the key and reveals the mnemonic.
	created, mnemonic, err := store.LoadOrCreate()
	require.NoError(t, err)
	assert.NotEmpty(t, mnemonic)
	assert.True(t, store.Exists())

	info, err := os.Stat(filepath.Join(dir, KeyFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	// Subsequent loads reuse the same key, no mnemonic.
	loaded, mnemonic2, err := store.LoadOrCreate()
	require.NoError(t, err)
	assert.Empty(t, mnemonic2)
	assert.Equal(t, created.Address(), loaded.Address())
}

func TestStore_WrongPassword(t *testing.T) {
	dir := t.TempDir()
	_, _, err := NewStore(dir, "right").Create()
	require.NoError(t, err)

	_, err = NewStore(dir, "wrong").Load()
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}
