// Package access decides whether a caller's network address is permitted
// to use the gateway, based on a static CIDR allow-list.
package access

import (
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/rs/zerolog"
)

// Filter holds the parsed allow-list. It is built once from configuration
// and read-only afterwards; decisions are computed fresh per request.
type Filter struct {
	ranges   []netip.Prefix
	allowAll bool
}

// NewFilter parses a comma-separated CIDR list. An empty list, or any entry
// equal to the universal range (0.0.0.0/0 or ::/0), disables filtering.
// A malformed entry is skipped with a warning rather than aborting the whole
// list: the valid siblings keep working. A configured list whose entries are
// all malformed still filters, and with zero usable ranges it denies.
func NewFilter(allowedCIDRs string, logger zerolog.Logger) *Filter {
	f := &Filter{}
	configured := false
	for _, entry := range strings.Split(allowedCIDRs, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		configured = true
		p, err := netip.ParsePrefix(entry)
		if err != nil {
			logger.Warn().Str("cidr", entry).Msg("skipping invalid entry in ALLOWED_CALLER_CIDR")
			continue
		}
		if p.Bits() == 0 {
			f.allowAll = true
		}
		f.ranges = append(f.ranges, p.Masked())
	}
	if !configured {
		f.allowAll = true
	}
	return f
}

// Allowed reports whether callerIP falls inside at least one parsed valid
// range. With nothing configured (or a universal range present) every caller
// is allowed; an unparsable caller address is never allowed when filtering
// is active.
func (f *Filter) Allowed(callerIP string) bool {
	if f.allowAll {
		return true
	}
	ip, err := netip.ParseAddr(callerIP)
	if err != nil {
		return false
	}
	ip = ip.Unmap()
	for _, p := range f.ranges {
		if p.Contains(ip) {
			return true
		}
	}
	return false
}

// CallerIP resolves the caller's address for a request. With trustProxy set,
// the first entry of X-Forwarded-For takes precedence; otherwise, and as a
// fallback, the transport-layer source address is used. The header path
// trusts the fronting proxy and is spoofable if the service is reachable
// without one.
func CallerIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			return strings.TrimSpace(first)
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
