package custody

import (
	"fmt"
	"net"
	"sort"
	"strings"
)

// DNSResolver defines the interface for DNS lookups.
// This allows tests to mock DNS resolution.
type DNSResolver interface {
	// LookupSRV looks up SRV records for the given service, proto, and name.
	LookupSRV(service, proto, name string) (string, []*net.SRV, error)
}

// defaultDNSResolver wraps the standard net package DNS functions.
type defaultDNSResolver struct{}

func (d *defaultDNSResolver) LookupSRV(service, proto, name string) (string, []*net.SRV, error) {
	return net.LookupSRV(service, proto, name)
}

// DefaultDNSResolver is the production DNS resolver using the net package.
var DefaultDNSResolver DNSResolver = &defaultDNSResolver{}

// SRVService is the SRV service label for custody discovery:
// _wallet-custody._tcp.{domain}
const SRVService = "wallet-custody"

// DiscoverEndpoints resolves custody service endpoints for an email domain.
// Returns endpoint addresses (host:port) sorted by priority then weight.
func DiscoverEndpoints(domain string) ([]string, error) {
	return DiscoverEndpointsWithResolver(domain, DefaultDNSResolver)
}

// DiscoverEndpointsWithResolver resolves SRV records using the provided resolver.
func DiscoverEndpointsWithResolver(domain string, resolver DNSResolver) ([]string, error) {
	if domain == "" {
		return nil, fmt.Errorf("%w: empty domain", ErrDNSLookupFailed)
	}

	_, addrs, err := resolver.LookupSRV(SRVService, "tcp", domain)
	if err != nil {
		return nil, fmt.Errorf("%w: SRV lookup for _%s._tcp.%s: %w", ErrDNSLookupFailed, SRVService, domain, err)
	}

	if len(addrs) == 0 {
		return nil, fmt.Errorf("%w: no SRV records for _%s._tcp.%s", ErrNoEndpoints, SRVService, domain)
	}

	// Sort by priority (ascending), then by weight (descending)
	sort.Slice(addrs, func(i, j int) bool {
		if addrs[i].Priority != addrs[j].Priority {
			return addrs[i].Priority < addrs[j].Priority
		}
		return addrs[i].Weight > addrs[j].Weight
	})

	endpoints := make([]string, len(addrs))
	for i, srv := range addrs {
		host := strings.TrimSuffix(srv.Target, ".")
		endpoints[i] = fmt.Sprintf("%s:%d", host, srv.Port)
	}

	return endpoints, nil
}
