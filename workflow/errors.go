package workflow

import (
	"errors"
	"fmt"

	"github.com/monostate/Employees-Airdrop-Rewards-MCP/airdrop"
	"github.com/monostate/Employees-Airdrop-Rewards-MCP/allocation"
	"github.com/monostate/Employees-Airdrop-Rewards-MCP/notify"
	"github.com/monostate/Employees-Airdrop-Rewards-MCP/registry"
	"github.com/monostate/Employees-Airdrop-Rewards-MCP/solana"
)

// The three error kinds every operation reports across the tool boundary.
var (
	// ErrValidation marks malformed or out-of-contract input. Recoverable by
	// the caller resubmitting corrected input; never retried automatically.
	ErrValidation = errors.New("validation error")

	// ErrPrecondition marks a workflow step invoked out of order. The message
	// names the missing prerequisite.
	ErrPrecondition = errors.New("precondition error")

	// ErrExecution marks a failure in an external collaborator.
	ErrExecution = errors.New("execution error")
)

func validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func preconditionf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrPrecondition, fmt.Sprintf(format, args...))
}

func executionf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrExecution, fmt.Sprintf(format, args...))
}

// validationSentinels are component errors that mean the caller's input was
// bad; everything else coming out of a collaborator is an execution failure.
var validationSentinels = []error{
	registry.ErrNoEmployees,
	registry.ErrInvalidEmail,
	registry.ErrDuplicateEmail,
	registry.ErrUnknownEmail,
	registry.ErrInvalidRole,
	registry.ErrMissingEmailField,
	registry.ErrEmptyImport,
	solana.ErrInvalidPrivateKey,
	solana.ErrInvalidAddress,
	notify.ErrMissingFrom,
	notify.ErrMissingRecipient,
}

var preconditionSentinels = []error{
	allocation.ErrNoEmployees,
	airdrop.ErrNoRecipients,
	airdrop.ErrNoSourceAccount,
}

// classify wraps a component error with its workflow kind. Errors already
// carrying a kind pass through unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrPrecondition) || errors.Is(err, ErrExecution) {
		return err
	}
	for _, sentinel := range validationSentinels {
		if errors.Is(err, sentinel) {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}
	for _, sentinel := range preconditionSentinels {
		if errors.Is(err, sentinel) {
			return fmt.Errorf("%w: %w", ErrPrecondition, err)
		}
	}
	return fmt.Errorf("%w: %w", ErrExecution, err)
}
