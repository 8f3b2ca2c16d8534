// Package scoring implements the legitimacy scoring engine: deterministic,
// side-effect-free functions mapping community text and metrics to dimension
// scores, an overall legitimacy score, and a risk tier.
package scoring

import (
	"strings"
	"time"

	"github.com/scoutlabs/web3scout/internal/lexicon"
	"github.com/scoutlabs/web3scout/internal/models"
)

// Score weights. Subtractive weights apply per matched negative indicator,
// additive weights per matched positive indicator.
const (
	baseScore = 50.0

	weightHighRisk   = 20.0
	weightMediumRisk = 10.0
	weightSuspicious = 5.0

	weightPositive  = 8.0
	weightTeam      = 12.0
	weightTechnical = 10.0
)

// Risk tier thresholds on the legitimacy score. A neutral input (base score,
// no indicators) lands in the low tier.
const (
	criticalBelow = 20.0
	highBelow     = 40.0
	mediumBelow   = 50.0
)

// Engine scores communities against an immutable lexicon.
type Engine struct {
	lex *lexicon.Lexicon
}

// NewEngine returns an engine bound to the given lexicon.
func NewEngine(lex *lexicon.Lexicon) *Engine {
	return &Engine{lex: lex}
}

// Analyze produces the full scored view of a community. It is a pure
// function of its input: no external calls, no mutation, missing metadata
// degrades to neutral values.
func (e *Engine) Analyze(c models.Community) models.Analysis {
	text := corpus(c)

	negative := e.ScamIndicators(text)
	positive := e.PositiveIndicators(text)

	score := e.LegitimacyScore(negative, positive, c.Metrics)

	return models.Analysis{
		LegitimacyScore: score,
		RiskTier:        e.RiskTier(score, negative),
		MatchedNegative: negative,
		MatchedPositive: positive,
		Social:          e.AnalyzeSocial(text, c.Metrics),
		Technical:       e.AnalyzeTechnical(text),
		Team:            e.AnalyzeTeam(text),
		Tokenomics:      e.AnalyzeTokenomics(text),
		Community:       e.AnalyzeCommunityHealth(c.Metrics),
		RoadmapQuality:  e.RoadmapQuality(text),
		TeamPresence:    e.TeamPresence(text),
		Sentiment:       e.Sentiment(text),
	}
}

// LegitimacyScore computes the overall 0-100 legitimacy score from matched
// indicators and structured metrics.
func (e *Engine) LegitimacyScore(negative, positive []string, m models.Metrics) float64 {
	score := baseScore

	score -= float64(countPrefix(negative, prefixHighRisk)) * weightHighRisk
	score -= float64(countPrefix(negative, prefixMediumRisk)) * weightMediumRisk
	score -= float64(countPrefix(negative, prefixSuspicious)) * weightSuspicious

	score += float64(countPrefix(positive, prefixPositive)) * weightPositive
	score += float64(countPrefix(positive, prefixTeam)) * weightTeam
	score += float64(countPrefix(positive, prefixTechnical)) * weightTechnical

	if m.AdminCount > 1 {
		score += 5
	}
	if m.Verified {
		score += 15
	}
	if m.Restricted {
		score -= 10
	}
	if m.CreationDate != nil {
		if days := daysSince(*m.CreationDate); days > 30 {
			score += min(10, float64(days)/10)
		}
	}

	return clamp(score)
}

// RiskTier maps a legitimacy score to a tier. Any matched high-risk phrase
// forces the critical tier regardless of score.
func (e *Engine) RiskTier(score float64, negative []string) models.RiskTier {
	if countPrefix(negative, prefixHighRisk) > 0 {
		return models.RiskCritical
	}
	switch {
	case score < criticalBelow:
		return models.RiskCritical
	case score < highBelow:
		return models.RiskHigh
	case score < mediumBelow:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

// AnalyzeSocial scores social presence. The community itself counts as the
// Telegram platform; other platforms count when mentioned in the corpus.
func (e *Engine) AnalyzeSocial(text string, m models.Metrics) models.SocialAnalysis {
	lower := strings.ToLower(text)
	a := models.SocialAnalysis{TelegramMembers: m.MemberCount}

	score := 25.0
	switch {
	case m.MemberCount > 5000:
		score += 15
	case m.MemberCount > 1000:
		score += 8
	}

	if strings.Contains(lower, "twitter") || strings.Contains(lower, "x.com") {
		score += 30
	} else {
		a.MissingPlatforms = append(a.MissingPlatforms, "twitter")
	}
	if strings.Contains(lower, "discord") {
		score += 25
	} else {
		a.MissingPlatforms = append(a.MissingPlatforms, "discord")
	}

	score -= float64(len(a.MissingPlatforms)) * 15

	a.Score = clampInt(score)
	if a.Score < 50 {
		a.Recommendations = append(a.Recommendations, "Increase social media activity and engagement")
	}
	for _, p := range a.MissingPlatforms {
		switch p {
		case "twitter":
			a.Recommendations = append(a.Recommendations, "Establish Twitter presence for announcements and community engagement")
		case "discord":
			a.Recommendations = append(a.Recommendations, "Set up Discord server for community building and support")
		}
	}
	return a
}

// AnalyzeTechnical scores the technical footprint from text signals.
func (e *Engine) AnalyzeTechnical(text string) models.TechnicalAnalysis {
	lower := strings.ToLower(text)
	a := models.TechnicalAnalysis{
		HasGitHub:     strings.Contains(lower, "github"),
		HasWhitepaper: strings.Contains(lower, "whitepaper") || strings.Contains(lower, "lite paper"),
		HasAudit:      containsAny(lower, "audit", "certik", "peckshield"),
	}

	score := 0.0
	if a.HasGitHub {
		score += 40
	} else {
		a.MissingElements = append(a.MissingElements, "github_repository")
	}
	if a.HasWhitepaper {
		score += 30
	} else {
		a.MissingElements = append(a.MissingElements, "whitepaper")
	}
	if containsAny(lower, "smart contract", "mainnet") {
		score += 20
	}
	if a.HasAudit {
		score += 10
	}
	score -= float64(len(a.MissingElements)) * 20

	a.Score = clampInt(score)

	if !a.HasGitHub {
		a.Recommendations = append(a.Recommendations, "Create public GitHub repository to showcase development progress")
	}
	if !a.HasWhitepaper {
		a.Recommendations = append(a.Recommendations, "Publish detailed whitepaper explaining technology and tokenomics")
	}
	if !a.HasAudit {
		a.Recommendations = append(a.Recommendations, "Get smart contracts professionally audited for security")
	}
	return a
}

// AnalyzeTeam scores team transparency by counting distinct team indicator
// keywords. No mentions means an anonymous team and a zero score.
func (e *Engine) AnalyzeTeam(text string) models.TeamAnalysis {
	lower := strings.ToLower(text)

	mentions := 0
	for _, kw := range e.lex.TeamIndicators {
		if strings.Contains(lower, kw) {
			mentions++
		}
	}

	a := models.TeamAnalysis{}
	score := 0.0
	switch {
	case strings.Contains(lower, "doxxed") && mentions >= 3:
		a.Transparency = "high"
		score = 50
	case mentions >= 3:
		a.Transparency = "medium"
		score = 30
	case mentions > 0:
		a.Transparency = "low"
		score = 10
	default:
		a.Transparency = "anonymous"
	}

	if strings.Contains(lower, "linkedin") {
		score += 10
	}
	a.Score = clampInt(score)

	switch a.Transparency {
	case "anonymous":
		a.Recommendations = append(a.Recommendations, "Consider revealing team members to build trust and credibility")
	case "low":
		a.Recommendations = append(a.Recommendations, "Provide more detailed team information and backgrounds")
	}
	return a
}

// AnalyzeTokenomics scores tokenomics signals in text: base score plus a
// fixed weight per positive aspect, minus a fixed weight per red flag.
func (e *Engine) AnalyzeTokenomics(text string) models.TokenomicsAnalysis {
	lower := strings.ToLower(text)
	a := models.TokenomicsAnalysis{}

	if strings.Contains(lower, "burn") || strings.Contains(lower, "deflationary") {
		a.PositiveAspects = append(a.PositiveAspects, "burn_mechanism")
	}
	if strings.Contains(lower, "staking") || strings.Contains(lower, "stake") {
		a.PositiveAspects = append(a.PositiveAspects, "staking_utility")
	}
	if strings.Contains(lower, "governance") {
		a.PositiveAspects = append(a.PositiveAspects, "governance_utility")
	}

	if strings.Contains(lower, "unlimited supply") {
		a.RedFlags = append(a.RedFlags, "unlimited_supply")
	}
	if strings.Contains(lower, "dev wallet") && strings.Contains(lower, "90%") {
		a.RedFlags = append(a.RedFlags, "high_dev_allocation")
	}

	score := 50.0
	score += float64(len(a.PositiveAspects)) * 15
	score -= float64(len(a.RedFlags)) * 25
	a.Score = clampInt(score)
	a.Summary = e.TokenomicsSummary(text)
	return a
}

// AnalyzeCommunityHealth scores the community from its metrics alone.
func (e *Engine) AnalyzeCommunityHealth(m models.Metrics) models.CommunityHealth {
	a := models.CommunityHealth{}
	score := 50.0

	if m.MemberCount >= 100 {
		score += 10
	}
	if m.AdminCount > 1 {
		score += 5
	} else {
		a.Issues = append(a.Issues, "single_admin")
	}
	if m.Verified {
		score += 15
	}
	if m.Restricted {
		score -= 10
		a.Issues = append(a.Issues, "restricted")
	}
	if m.CreationDate != nil {
		if days := daysSince(*m.CreationDate); days > 30 {
			score += min(10, float64(days)/10)
		}
	}

	a.Score = clampInt(score)
	return a
}

func corpus(c models.Community) string {
	parts := []string{c.Title, c.Description}
	msgs := c.RecentMessages
	if len(msgs) > 10 {
		msgs = msgs[:10]
	}
	parts = append(parts, msgs...)
	return strings.Join(parts, " ")
}

func daysSince(t time.Time) int {
	return int(time.Since(t).Hours() / 24)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func clampInt(v float64) int {
	return int(clamp(v))
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
