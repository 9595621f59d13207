package solana

import "errors"

var (
	// ErrConnectionFailed indicates the RPC endpoint could not be reached.
	ErrConnectionFailed = errors.New("solana: connection failed")

	// ErrInvalidResponse indicates the RPC response could not be decoded.
	ErrInvalidResponse = errors.New("solana: invalid RPC response")

	// ErrInvalidPrivateKey indicates a private key that is not a valid
	// base58-encoded ed25519 key.
	ErrInvalidPrivateKey = errors.New("solana: invalid private key")

	// ErrInvalidAddress indicates an address that is not a valid base58-encoded
	// 32-byte public key.
	ErrInvalidAddress = errors.New("solana: invalid address")

	// ErrSubmitFailed indicates a transaction submission was rejected.
	ErrSubmitFailed = errors.New("solana: transaction submission failed")
)
