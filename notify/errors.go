package notify

import "errors"

var (
	// ErrMissingFrom indicates the sender address was not provided.
	ErrMissingFrom = errors.New("notify: missing from address")

	// ErrMissingRecipient indicates a message without a recipient.
	ErrMissingRecipient = errors.New("notify: missing recipient address")

	// ErrNoAPIKey indicates the notifier requires an API key that was not configured.
	ErrNoAPIKey = errors.New("notify: no API key configured")

	// ErrSendFailed indicates the notification API rejected the message.
	ErrSendFailed = errors.New("notify: send failed")
)
