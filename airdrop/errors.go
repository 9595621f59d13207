package airdrop

import "errors"

var (
	// ErrNoRecipients indicates a distribution with no recipients.
	ErrNoRecipients = errors.New("airdrop: no recipients in distribution")

	// ErrNilParam indicates a required parameter is missing.
	ErrNilParam = errors.New("airdrop: required parameter is missing")

	// ErrNoSourceAccount indicates the sender has no funded token account for
	// the mint. Checked once before any batch is attempted.
	ErrNoSourceAccount = errors.New("airdrop: sender has no source token account for mint")

	// ErrBatchFailed indicates a batch submission failed. A failing batch
	// aborts the whole distribution.
	ErrBatchFailed = errors.New("airdrop: batch submission failed")

	// ErrAuditStore indicates the audit trail could not be read or written.
	ErrAuditStore = errors.New("airdrop: audit store failure")

	// ErrRunNotFound indicates no audit record exists for the run ID.
	ErrRunNotFound = errors.New("airdrop: run not found")
)
