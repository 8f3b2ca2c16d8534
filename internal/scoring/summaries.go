package scoring

import (
	"strings"
)

// TokenomicsSummary builds a short heuristic summary of tokenomics signals.
// Used directly and as the fallback when the AI assessor is unavailable.
func (e *Engine) TokenomicsSummary(text string) string {
	lower := strings.ToLower(text)
	var parts []string

	if strings.Contains(lower, "token") {
		parts = append(parts, "Token mentioned")
	}
	if strings.Contains(lower, "supply") {
		parts = append(parts, "Supply information present")
	}
	if strings.Contains(lower, "burn") || strings.Contains(lower, "deflationary") {
		parts = append(parts, "Deflationary mechanism")
	}
	if strings.Contains(lower, "stake") || strings.Contains(lower, "staking") {
		parts = append(parts, "Staking utility")
	}
	if strings.Contains(lower, "governance") {
		parts = append(parts, "Governance utility")
	}

	if strings.Contains(lower, "unlimited supply") {
		parts = append(parts, "Warning: unlimited supply")
	}
	if strings.Contains(lower, "dev wallet") && strings.Contains(lower, "90%") {
		parts = append(parts, "Warning: high dev allocation")
	}

	if len(parts) == 0 {
		return "Limited tokenomics information"
	}
	return strings.Join(parts, "; ")
}

// RoadmapQuality summarizes roadmap signals found in the text.
func (e *Engine) RoadmapQuality(text string) string {
	lower := strings.ToLower(text)
	var parts []string

	if strings.Contains(lower, "roadmap") {
		parts = append(parts, "Roadmap present")
	}
	if containsAny(lower, "q1", "q2", "q3", "q4", "quarter") {
		parts = append(parts, "Quarterly planning")
	}
	if strings.Contains(lower, "milestone") {
		parts = append(parts, "Clear milestones")
	}
	if strings.Contains(lower, "phase") {
		parts = append(parts, "Phased development")
	}
	if strings.Contains(lower, "mainnet") || strings.Contains(lower, "testnet") {
		parts = append(parts, "Network deployment planned")
	}

	if strings.Contains(lower, "moon") || strings.Contains(lower, "lambo") {
		parts = append(parts, "Warning: unrealistic expectations")
	}
	if strings.Contains(lower, "coming soon") && len(parts) == 0 {
		parts = append(parts, "Warning: vague timeline")
	}

	if len(parts) == 0 {
		return "No roadmap information"
	}
	return strings.Join(parts, "; ")
}

// TeamPresence summarizes team transparency signals found in the text.
func (e *Engine) TeamPresence(text string) string {
	lower := strings.ToLower(text)
	var parts []string

	if strings.Contains(lower, "team") {
		parts = append(parts, "Team mentioned")
	}
	if strings.Contains(lower, "founder") || strings.Contains(lower, "ceo") {
		parts = append(parts, "Leadership identified")
	}
	if strings.Contains(lower, "doxxed") {
		parts = append(parts, "Doxxed team")
	}
	if strings.Contains(lower, "anonymous") {
		parts = append(parts, "Warning: anonymous team")
	}
	if strings.Contains(lower, "linkedin") {
		parts = append(parts, "Professional profiles")
	}
	if strings.Contains(lower, "experience") || strings.Contains(lower, "background") {
		parts = append(parts, "Experience highlighted")
	}

	if len(parts) == 0 {
		return "Limited team information"
	}
	return strings.Join(parts, "; ")
}

// Sentiment computes a word-list polarity score in [-1,1]. Zero means
// neutral or no sentiment-bearing words found.
func (e *Engine) Sentiment(text string) float64 {
	lower := strings.ToLower(text)

	pos, neg := 0, 0
	for _, w := range e.lex.PositiveSentiment {
		pos += strings.Count(lower, w)
	}
	for _, w := range e.lex.NegativeSentiment {
		neg += strings.Count(lower, w)
	}

	total := pos + neg
	if total == 0 {
		return 0
	}
	return float64(pos-neg) / float64(total)
}
