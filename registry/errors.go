package registry

import "errors"

var (
	// ErrNoEmployees indicates the employee input was empty after normalization.
	ErrNoEmployees = errors.New("registry: no employees provided")

	// ErrInvalidEmail indicates an email address failed basic validation.
	ErrInvalidEmail = errors.New("registry: invalid email address")

	// ErrDuplicateEmail indicates the same email appears more than once.
	ErrDuplicateEmail = errors.New("registry: duplicate email")

	// ErrUnknownEmail indicates a role import row references an email that is
	// not in the registry. Import never creates records.
	ErrUnknownEmail = errors.New("registry: email not found in registry")

	// ErrInvalidRole indicates a role value outside the fixed role set.
	ErrInvalidRole = errors.New("registry: invalid role")

	// ErrMissingEmailField indicates a row or CSV without the mandatory email field.
	ErrMissingEmailField = errors.New("registry: missing email field")

	// ErrEmptyImport indicates an empty role import set.
	ErrEmptyImport = errors.New("registry: empty import set")

	// ErrProvisionFailed indicates the custody provider could not provision a wallet.
	ErrProvisionFailed = errors.New("registry: wallet provisioning failed")
)
