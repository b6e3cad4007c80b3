// Package safety implements the content safety gate: keyword blocklist,
// URL allowlist, PII pattern checks, and the structural-quality heuristic.
// The gate classifies input and never mutates it.
package safety

import "strings"

// Policy is the immutable configuration of the safety gate. Build it once at
// startup from config; it carries no mutable state.
type Policy struct {
	banned         []string
	allowedDomains []string
	minStructure   int
}

// NewPolicy creates a policy. Keywords and domains are lowercased; the
// structure minimum is clamped to [0, structureChecks].
func NewPolicy(banned, allowedDomains []string, minStructure int) Policy {
	p := Policy{
		banned:         lowerAll(banned),
		allowedDomains: lowerAll(allowedDomains),
		minStructure:   minStructure,
	}
	if p.minStructure < 0 {
		p.minStructure = 0
	}
	if p.minStructure > structureChecks {
		p.minStructure = structureChecks
	}
	return p
}

// DefaultBannedKeywords returns the reference blocklist.
func DefaultBannedKeywords() []string {
	return []string{
		"kill", "suicide", "bomb", "terror", "nazi",
		"send me your otp", "share your otp", "password",
	}
}

// DefaultAllowedDomains returns the reference domain allowlist for links in
// submitted card content. Subdomains of these hosts are also allowed.
func DefaultAllowedDomains() []string {
	return []string{
		"canada.ca",
		"antifraudcentre-centreantifraude.ca",
		"interac.ca",
		"irs.gov",
		"consumerfinance.gov",
		"fdic.gov",
	}
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
