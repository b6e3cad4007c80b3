package safety

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/finlit-labs/expcards/internal/domain"
)

var (
	urlPattern   = regexp.MustCompile(`https?://[^\s<>"')]+`)
	idRunPattern = regexp.MustCompile(`[0-9]{11}`)
	// phone-shaped: optional country prefix, then 3-3-4 groups with
	// separators or parentheses.
	phonePattern = regexp.MustCompile(`(\+?[0-9]{1,2}[\s.-])?\(?[0-9]{3}\)?[\s.-][0-9]{3}[\s.-][0-9]{4}`)
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
)

// CheckCard validates a card submission. Checks run in a fixed order and
// short-circuit on the first failure: banned keywords over the concatenated
// fields, then URL hosts against the allowlist, then the structural-quality
// heuristic. Returns nil or a *domain.SafetyError.
func (p Policy) CheckCard(title, category, tags, content string) error {
	combined := strings.ToLower(title + " " + category + " " + tags + " " + content)
	if p.containsBanned(combined) {
		return domain.NewSafetyRejection(domain.ReasonBannedKeywords)
	}

	for _, raw := range urlPattern.FindAllString(content, -1) {
		if !p.hostAllowed(raw) {
			return domain.NewSafetyRejection(domain.ReasonDisallowedDomain)
		}
	}

	if StructureScore(content) < p.minStructure {
		return domain.NewSafetyRejection(domain.ReasonLowStructure)
	}
	return nil
}

// CheckQuestion validates an incoming question. Order: banned keywords, any
// URL at all, then the PII patterns (government-id run, phone shape, email
// shape). Returns nil or a *domain.SafetyError.
func (p Policy) CheckQuestion(question string) error {
	if p.containsBanned(strings.ToLower(question)) {
		return domain.NewSafetyRejection(domain.ReasonBannedKeywords)
	}
	if urlPattern.MatchString(question) {
		return domain.NewSafetyRejection(domain.ReasonURLNotAllowed)
	}
	if idRunPattern.MatchString(question) {
		return domain.NewSafetyRejection(domain.ReasonPossibleID)
	}
	if phonePattern.MatchString(question) {
		return domain.NewSafetyRejection(domain.ReasonPossiblePhone)
	}
	if emailPattern.MatchString(question) {
		return domain.NewSafetyRejection(domain.ReasonPossibleEmail)
	}
	return nil
}

func (p Policy) containsBanned(lowered string) bool {
	for _, kw := range p.banned {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// hostAllowed reports whether the URL's host is in, or a subdomain of, the
// allowlist. Unparseable URLs are not allowed.
func (p Policy) hostAllowed(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, d := range p.allowedDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}
