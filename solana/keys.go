package solana

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"github.com/mr-tron/base58"
)

// Keypair is an ed25519 signing identity with base58 string forms.
type Keypair struct {
	PublicKey  ed25519.PublicKey
	PrivateKey ed25519.PrivateKey
}

// NewKeypair generates a fresh random keypair.
func NewKeypair() (*Keypair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("solana: generate keypair: %w", err)
	}
	return &Keypair{PublicKey: pub, PrivateKey: priv}, nil
}

// KeypairFromSeed derives a keypair from a 32-byte seed.
func KeypairFromSeed(seed []byte) (*Keypair, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("%w: seed must be %d bytes, got %d", ErrInvalidPrivateKey, ed25519.SeedSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return &Keypair{
		PublicKey:  priv.Public().(ed25519.PublicKey),
		PrivateKey: priv,
	}, nil
}

// ParsePrivateKey decodes a base58-encoded private key. Both the 64-byte
// expanded form and the 32-byte seed form are accepted.
func ParsePrivateKey(encoded string) (*Keypair, error) {
	raw, err := base58.Decode(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPrivateKey, err)
	}
	switch len(raw) {
	case ed25519.PrivateKeySize:
		priv := ed25519.PrivateKey(raw)
		return &Keypair{
			PublicKey:  priv.Public().(ed25519.PublicKey),
			PrivateKey: priv,
		}, nil
	case ed25519.SeedSize:
		return KeypairFromSeed(raw)
	default:
		return nil, fmt.Errorf("%w: key must be %d or %d bytes, got %d",
			ErrInvalidPrivateKey, ed25519.PrivateKeySize, ed25519.SeedSize, len(raw))
	}
}

// Address returns the base58-encoded public key.
func (k *Keypair) Address() string {
	return base58.Encode(k.PublicKey)
}

// EncodePrivateKey returns the base58-encoded 64-byte private key.
func (k *Keypair) EncodePrivateKey() string {
	return base58.Encode(k.PrivateKey)
}

// ValidateAddress checks that s is a base58-encoded 32-byte public key.
func ValidateAddress(s string) error {
	raw, err := base58.Decode(s)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return fmt.Errorf("%w: decoded length %d", ErrInvalidAddress, len(raw))
	}
	return nil
}
