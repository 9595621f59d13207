package keystore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/monostate/Employees-Airdrop-Rewards-MCP/solana"
)

// KeyFileName is the funding key file name within the data directory.
const KeyFileName = "funding.key"

// Store persists the encrypted funding keypair under a data directory.
type Store struct {
	dataDir  string
	password string
}

// NewStore creates a Store rooted at dataDir. The password encrypts the seed
// at rest; an empty password is accepted but discouraged.
func NewStore(dataDir, password string) *Store {
	return &Store{dataDir: dataDir, password: password}
}

// Path returns the funding key file path.
func (s *Store) Path() string {
	return filepath.Join(s.dataDir, KeyFileName)
}

// Exists reports whether a funding key file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.Path())
	return err == nil
}

// Load decrypts the funding key file and returns the keypair.
func (s *Store) Load() (*solana.Keypair, error) {
	encrypted, err := os.ReadFile(s.Path())
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("keystore: read key file: %w", err)
	}

	seed, err := DecryptSeed(encrypted, s.password)
	if err != nil {
		return nil, err
	}
	return solana.KeypairFromSeed(seed[:32])
}

// Create generates a new funding keypair from a fresh mnemonic, persists the
// encrypted seed with 0600 permissions, and returns the keypair together with
// the mnemonic (shown to the operator once, never stored in the clear).
func (s *Store) Create() (*solana.Keypair, string, error) {
	mnemonic, err := GenerateMnemonic()
	if err != nil {
		return nil, "", err
	}

	seed, err := SeedFromMnemonic(mnemonic, "")
	if err != nil {
		return nil, "", err
	}

	encrypted, err := EncryptSeed(seed, s.password)
	if err != nil {
		return nil, "", err
	}

	if err := os.MkdirAll(s.dataDir, 0700); err != nil {
		return nil, "", fmt.Errorf("keystore: create data directory: %w", err)
	}
	if err := os.WriteFile(s.Path(), encrypted, 0600); err != nil {
		return nil, "", fmt.Errorf("keystore: write key file: %w", err)
	}

	keypair, err := solana.KeypairFromSeed(seed[:32])
	if err != nil {
		return nil, "", err
	}
	return keypair, mnemonic, nil
}

// LoadOrCreate loads the funding keypair, creating it on first use.
// The returned mnemonic is non-empty only when a new key was created.
func (s *Store) LoadOrCreate() (*solana.Keypair, string, error) {
	keypair, err := s.Load()
	if err == nil {
		return keypair, "", nil
	}
	if !errors.Is(err, ErrKeyNotFound) {
		return nil, "", err
	}
	return s.Create()
}
