// Package registry maintains the employee list: parsing HR input, provisioning
// custodial wallets, and merging role data from CSV imports.
//
// Every stage produces a new full employee list instead of mutating records in
// place. The orchestrator replaces its list wholesale, so a failed stage never
// leaves a half-updated registry behind.
package registry

import "strings"

// Employee is one registry record. Email is the unique key. WalletAddress is
// assigned at wallet-generation time and never changes afterwards; TokenAmount
// is assigned by the allocation engine.
type Employee struct {
	Email         string   `json:"email"`
	Name          string   `json:"name,omitempty"`
	Role          Role     `json:"role,omitempty"`
	WalletAddress string   `json:"wallet_address,omitempty"`
	TokenAmount   *float64 `json:"token_amount,omitempty"`
	Simulated     bool     `json:"simulated,omitempty"` // wallet came from the simulated provider
}

// Entry is one parsed line of HR employee input, before provisioning.
type Entry struct {
	Name  string
	Email string
}

// ParseEmployeeText splits a text block into employee entries, one per line.
// Each line is either "email" or "name, email"; blank lines and surrounding
// whitespace are dropped. Returns ErrNoEmployees when nothing remains.
func ParseEmployeeText(text string) ([]Entry, error) {
	var entries []Entry
	seen := make(map[string]bool)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var entry Entry
		if name, email, found := strings.Cut(line, ","); found {
			entry.Name = strings.TrimSpace(name)
			entry.Email = strings.TrimSpace(email)
		} else {
			entry.Email = line
		}

		if !validEmail(entry.Email) {
			return nil, wrapEmail(ErrInvalidEmail, entry.Email)
		}
		key := strings.ToLower(entry.Email)
		if seen[key] {
			return nil, wrapEmail(ErrDuplicateEmail, entry.Email)
		}
		seen[key] = true
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, ErrNoEmployees
	}
	return entries, nil
}

// validEmail performs the minimal structural check the workflow needs:
// non-empty local part and a domain containing a dot.
func validEmail(email string) bool {
	local, domain, found := strings.Cut(email, "@")
	if !found || local == "" || domain == "" {
		return false
	}
	return strings.Contains(domain, ".") && !strings.ContainsAny(email, " \t")
}
