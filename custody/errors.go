package custody

import "errors"

var (
	// ErrEmptyEmail indicates an empty or malformed email address.
	ErrEmptyEmail = errors.New("custody: empty email address")

	// ErrNoAPIKey indicates the provider requires an API key that was not configured.
	ErrNoAPIKey = errors.New("custody: no API key configured")

	// ErrDNSLookupFailed indicates the SRV lookup for the custody service failed.
	ErrDNSLookupFailed = errors.New("custody: DNS lookup failed")

	// ErrDNSSECValidationFailed indicates the resolver response was not authenticated.
	ErrDNSSECValidationFailed = errors.New("custody: DNSSEC validation failed")

	// ErrNoEndpoints indicates no custody service endpoints were discovered.
	ErrNoEndpoints = errors.New("custody: no service endpoints found")

	// ErrProviderRequest indicates the custody provider API call failed.
	ErrProviderRequest = errors.New("custody: provider request failed")

	// ErrInvalidResponse indicates the provider returned an unparseable response.
	ErrInvalidResponse = errors.New("custody: invalid provider response")
)
