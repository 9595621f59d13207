package keystore

import "errors"

var (
	// ErrInvalidMnemonic indicates the mnemonic fails BIP39 validation.
	ErrInvalidMnemonic = errors.New("keystore: invalid BIP39 mnemonic")

	// ErrInvalidSeed indicates the seed is empty or invalid.
	ErrInvalidSeed = errors.New("keystore: invalid seed")

	// ErrDecryptionFailed indicates wrong password or corrupted key data.
	ErrDecryptionFailed = errors.New("keystore: key decryption failed (wrong password or corrupted data)")

	// ErrChecksumMismatch indicates seed checksum verification failed after decryption.
	ErrChecksumMismatch = errors.New("keystore: seed checksum mismatch")

	// ErrKeyNotFound indicates no funding key file exists yet.
	ErrKeyNotFound = errors.New("keystore: funding key not found")
)
