package scoring

import (
	"strings"
)

// Indicator label prefixes. The legitimacy score weighs matches by prefix,
// and the alert formatter surfaces them verbatim.
const (
	prefixHighRisk   = "HIGH RISK: "
	prefixMediumRisk = "MEDIUM RISK: "
	prefixSuspicious = "SUSPICIOUS PATTERN: "
	prefixPositive   = "POSITIVE: "
	prefixTeam       = "TEAM: "
	prefixTechnical  = "TECHNICAL: "
)

// ScamIndicators returns the negative indicators matched in text, labelled
// by risk band. Empty text yields no indicators.
func (e *Engine) ScamIndicators(text string) []string {
	var indicators []string
	lower := strings.ToLower(text)

	for _, phrase := range e.lex.HighRisk {
		if strings.Contains(lower, phrase) {
			indicators = append(indicators, prefixHighRisk+phrase)
		}
	}
	for _, phrase := range e.lex.MediumRisk {
		if strings.Contains(lower, phrase) {
			indicators = append(indicators, prefixMediumRisk+phrase)
		}
	}
	for _, re := range e.lex.CompiledPatterns() {
		for _, match := range re.FindAllString(lower, -1) {
			indicators = append(indicators, prefixSuspicious+match)
		}
	}

	if len(e.lex.HypeEmojiPattern().FindAllString(text, -1)) > 10 {
		indicators = append(indicators, "EXCESSIVE HYPE EMOJIS")
	}
	if strings.Contains(lower, "t.me") || strings.Contains(lower, "telegram.me") {
		if len(e.lex.InviteLinkPattern().FindAllString(lower, -1)) > 3 {
			indicators = append(indicators, "MULTIPLE SUSPICIOUS LINKS")
		}
	}

	return indicators
}

// PositiveIndicators returns the legitimacy indicators matched in text,
// labelled by category.
func (e *Engine) PositiveIndicators(text string) []string {
	var indicators []string
	lower := strings.ToLower(text)

	for _, phrase := range e.lex.Positive {
		if strings.Contains(lower, phrase) {
			indicators = append(indicators, prefixPositive+phrase)
		}
	}
	for _, phrase := range e.lex.TeamIndicators {
		if strings.Contains(lower, phrase) {
			indicators = append(indicators, prefixTeam+phrase)
		}
	}
	for _, phrase := range e.lex.TechIndicators {
		if strings.Contains(lower, phrase) {
			indicators = append(indicators, prefixTechnical+phrase)
		}
	}

	if strings.Contains(lower, "github.com") {
		indicators = append(indicators, "GITHUB REPOSITORY")
	}
	if containsAny(lower, "audit", "certik", "peckshield") {
		indicators = append(indicators, "SECURITY AUDIT")
	}
	if strings.Contains(lower, "whitepaper") || strings.Contains(lower, "lite paper") {
		indicators = append(indicators, "DOCUMENTATION")
	}

	return indicators
}

// IsCryptoRelated reports whether the text mentions any crypto keyword.
func (e *Engine) IsCryptoRelated(text string) bool {
	lower := strings.ToLower(text)
	return containsAny(lower, e.lex.CryptoKeywords...)
}

func countPrefix(indicators []string, prefix string) int {
	n := 0
	for _, ind := range indicators {
		if strings.HasPrefix(ind, prefix) {
			n++
		}
	}
	return n
}

func containsAny(lower string, phrases ...string) bool {
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
