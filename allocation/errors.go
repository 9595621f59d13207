package allocation

import "errors"

var (
	// ErrNoEmployees indicates allocation was requested on an empty registry.
	ErrNoEmployees = errors.New("allocation: no employees to allocate to")
)
