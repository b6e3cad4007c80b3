package safety

import (
	"regexp"
	"strings"
)

// structureChecks is the number of independent structural-quality signals.
const structureChecks = 5

const minContentLength = 120

var (
	// First-person experience: the author states what happened to them.
	experiencePattern = regexp.MustCompile(`(?i)\b(i\s+(was|had|have|got|moved|opened|received|noticed|faced|tried)|my\s+(account|card|bank|transfer|payment|money))\b`)
	// First-person action: the author states what they did about it.
	actionPattern = regexp.MustCompile(`(?i)\bi\s+(called|contacted|reported|verified|visited|asked|checked|enabled|disabled|updated|switched|installed|used|avoided|waited|learned)\b`)

	outcomeKeywords = []string{
		"resolved", "restored", "refunded", "fixed", "recovered",
		"explained", "learned", "cleared", "unlocked", "waived", "helped",
	}

	sentenceSplit = regexp.MustCompile(`[.!?]+`)
)

// StructureScore rates how much content reads like a complete first-person
// experience narrative, 0 to 5: one point each for minimum length, an
// experience phrase, an action phrase, an outcome keyword, and at least
// three sentences.
func StructureScore(content string) int {
	score := 0

	if len(content) >= minContentLength {
		score++
	}
	if experiencePattern.MatchString(content) {
		score++
	}
	if actionPattern.MatchString(content) {
		score++
	}

	lowered := strings.ToLower(content)
	for _, kw := range outcomeKeywords {
		if strings.Contains(lowered, kw) {
			score++
			break
		}
	}

	if countSentences(content) >= 3 {
		score++
	}
	return score
}

func countSentences(content string) int {
	n := 0
	for _, part := range sentenceSplit.Split(content, -1) {
		if strings.TrimSpace(part) != "" {
			n++
		}
	}
	return n
}
