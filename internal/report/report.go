// Package report renders scored communities into human-readable alert text.
// Pure formatting: no decision logic, identical input yields identical text.
package report

import (
	"fmt"
	"strings"

	"github.com/scoutlabs/web3scout/internal/models"
)

// Character budgets for free-text fields.
const (
	alertDescriptionLimit    = 300
	overviewDescriptionLimit = 400
	maxWarningIndicators     = 3
	maxPositiveIndicators    = 3
	maxOpportunities         = 4
	maxListedItems           = 4
)

const (
	placeholderUnknown     = "unknown"
	placeholderNotAnalyzed = "Not analyzed"
)

var riskEmoji = map[models.RiskTier]string{
	models.RiskLow:      "✅",
	models.RiskMedium:   "⚠️",
	models.RiskHigh:     "🔸",
	models.RiskCritical: "🚨",
}

var urgencyEmoji = map[models.Urgency]string{
	models.UrgencyHigh:   "🔥",
	models.UrgencyMedium: "⚡",
	models.UrgencyLow:    "💡",
}

// AlertMessage renders the single-message community alert sent to
// subscribers.
func AlertMessage(rec models.AlertRecord) string {
	a := rec.Analysis
	c := rec.Community

	var sb strings.Builder
	sb.WriteString("📱 *NEW COMMUNITY FOUND*\n\n")
	fmt.Fprintf(&sb, "*%s*\n", orUnknown(c.Title))
	fmt.Fprintf(&sb, "👥 Members: %d (%s)\n", c.Metrics.MemberCount, rec.SizeCategory)
	fmt.Fprintf(&sb, "🔗 Link: %s\n\n", orDefault(c.InviteLink, "Private"))

	fmt.Fprintf(&sb, "%s Legitimacy Score: %.1f/100\n", riskEmoji[a.RiskTier], a.LegitimacyScore)
	fmt.Fprintf(&sb, "🎯 Risk Level: %s\n", strings.ToUpper(string(a.RiskTier)))
	fmt.Fprintf(&sb, "%s Sentiment: %.2f\n\n", sentimentEmoji(a.Sentiment), a.Sentiment)

	sb.WriteString("*PROJECT OVERVIEW:*\n")
	sb.WriteString(truncate(orDefault(c.Description, "No description available"), alertDescriptionLimit))
	sb.WriteString("\n")

	if a.RiskTier == models.RiskHigh || a.RiskTier == models.RiskCritical {
		if len(a.MatchedNegative) > 0 {
			fmt.Fprintf(&sb, "\n🚨 *WARNING SIGNS:* %s\n", strings.Join(capped(a.MatchedNegative, maxWarningIndicators), ", "))
		}
	}
	if len(a.MatchedPositive) > 0 {
		fmt.Fprintf(&sb, "\n✅ *POSITIVE SIGNS:* %s\n", strings.Join(capped(a.MatchedPositive, maxPositiveIndicators), ", "))
	}

	sb.WriteString("\n*DETAILED ANALYSIS:*\n")
	fmt.Fprintf(&sb, "💰 Tokenomics: %s\n", orDefault(a.Tokenomics.Summary, placeholderNotAnalyzed))
	fmt.Fprintf(&sb, "🗺️ Roadmap: %s\n", orDefault(a.RoadmapQuality, placeholderNotAnalyzed))
	fmt.Fprintf(&sb, "👥 Team: %s\n\n", orDefault(a.TeamPresence, placeholderNotAnalyzed))

	fmt.Fprintf(&sb, "👮 Admins: %d\n", c.Metrics.AdminCount)
	fmt.Fprintf(&sb, "📅 Discovered: %s\n", rec.DiscoveredAt.UTC().Format("2006-01-02 15:04 UTC"))

	if a.RiskTier == models.RiskCritical {
		sb.WriteString("\n⚠️ *PROCEED WITH EXTREME CAUTION* ⚠️\n")
	}
	return sb.String()
}

// Overview renders the project overview and legitimacy section.
func Overview(rec models.AlertRecord) string {
	a := rec.Analysis
	c := rec.Community

	var sb strings.Builder
	sb.WriteString("📊 *COMPREHENSIVE PROJECT RESEARCH*\n\n")
	fmt.Fprintf(&sb, "*%s*\n", strings.ToUpper(orUnknown(c.Title)))
	fmt.Fprintf(&sb, "🌐 Overall Maturity: %s\n", title(string(rec.Needs.Maturity)))
	fmt.Fprintf(&sb, "%s Legitimacy Score: %.1f/100\n", riskEmoji[a.RiskTier], a.LegitimacyScore)
	fmt.Fprintf(&sb, "🎯 Risk Level: %s\n", strings.ToUpper(string(a.RiskTier)))

	if a.RiskTier == models.RiskHigh || a.RiskTier == models.RiskCritical {
		if len(a.MatchedNegative) > 0 {
			fmt.Fprintf(&sb, "\n🚨 *WARNING:* %s\n", strings.Join(capped(a.MatchedNegative, 2), ", "))
		}
	}

	sb.WriteString("\n*PROJECT DESCRIPTION:*\n")
	sb.WriteString(truncate(orDefault(c.Description, "No description available"), overviewDescriptionLimit))
	sb.WriteString("\n")

	if len(rec.Needs.Strengths) > 0 {
		sb.WriteString("\n*STRENGTHS:*\n")
		for _, s := range capped(rec.Needs.Strengths, maxListedItems) {
			fmt.Fprintf(&sb, "✅ %s\n", title(underscoresToSpaces(s)))
		}
	}
	if len(rec.Needs.ImprovementAreas) > 0 {
		sb.WriteString("\n*NEEDS IMPROVEMENT:*\n")
		for _, s := range capped(rec.Needs.ImprovementAreas, maxListedItems) {
			fmt.Fprintf(&sb, "❌ %s\n", title(underscoresToSpaces(s)))
		}
	}

	fmt.Fprintf(&sb, "\n📅 Research Date: %s\n", rec.DiscoveredAt.UTC().Format("2006-01-02 15:04 UTC"))
	return sb.String()
}

// Breakdown renders the per-dimension analysis section.
func Breakdown(rec models.AlertRecord) string {
	a := rec.Analysis
	scores := a.DimensionScores()

	var sb strings.Builder
	sb.WriteString("🔍 *DETAILED ANALYSIS BREAKDOWN*\n\n")

	fmt.Fprintf(&sb, "*📱 SOCIAL MEDIA PRESENCE* (%d/100)\n", scores["social"])
	fmt.Fprintf(&sb, "• Missing Platforms: %s\n", orDefault(strings.Join(a.Social.MissingPlatforms, ", "), "None"))
	fmt.Fprintf(&sb, "• Telegram Members: %d\n\n", a.Social.TelegramMembers)

	fmt.Fprintf(&sb, "*🔧 TECHNICAL FOUNDATION* (%d/100)\n", scores["technical"])
	fmt.Fprintf(&sb, "• GitHub: %s\n", yesNo(a.Technical.HasGitHub))
	fmt.Fprintf(&sb, "• Whitepaper: %s\n", yesNo(a.Technical.HasWhitepaper))
	fmt.Fprintf(&sb, "• Security Audit: %s\n\n", yesNo(a.Technical.HasAudit))

	fmt.Fprintf(&sb, "*👥 TEAM TRANSPARENCY* (%d/100)\n", scores["team"])
	fmt.Fprintf(&sb, "• Transparency Level: %s\n\n", title(orUnknown(a.Team.Transparency)))

	fmt.Fprintf(&sb, "*💰 TOKENOMICS ANALYSIS* (%d/100)\n", scores["tokenomics"])
	fmt.Fprintf(&sb, "• Positive Aspects: %s\n", orDefault(strings.Join(a.Tokenomics.PositiveAspects, ", "), "None identified"))
	fmt.Fprintf(&sb, "• Red Flags: %s\n\n", orDefault(strings.Join(a.Tokenomics.RedFlags, ", "), "None identified"))

	fmt.Fprintf(&sb, "*👥 COMMUNITY HEALTH* (%d/100)\n", scores["community"])
	fmt.Fprintf(&sb, "• Issues: %s\n", orDefault(strings.Join(a.Community.Issues, ", "), "None"))
	return sb.String()
}

// Opportunities renders the job opportunities section.
func Opportunities(rec models.AlertRecord) string {
	jobs := rec.Needs.Opportunities

	var sb strings.Builder
	sb.WriteString("💼 *JOB OPPORTUNITIES & PITCH STRATEGIES*\n\n")

	if len(jobs) == 0 {
		sb.WriteString("🎯 No specific job opportunities identified.\n\n")
		sb.WriteString("This project appears to be well-staffed or mature. However, you can still reach out with:\n")
		sb.WriteString("• General consultation offers\n")
		sb.WriteString("• Specialized expertise in your field\n")
		sb.WriteString("• Partnership proposals\n")
		sb.WriteString("• Community contribution ideas\n")
		return sb.String()
	}

	fmt.Fprintf(&sb, "Found *%d opportunities* for this project:\n\n", len(jobs))
	for _, job := range capped(jobs, maxOpportunities) {
		fmt.Fprintf(&sb, "*%s %s - %s PRIORITY*\n\n",
			urgencyEmoji[job.Urgency],
			strings.ToUpper(underscoresToSpaces(string(job.Category))),
			strings.ToUpper(string(job.Urgency)))
		fmt.Fprintf(&sb, "📋 Role: %s\n", job.Description)
		fmt.Fprintf(&sb, "💰 Budget: %s\n", orUnknown(job.BudgetRange))
		fmt.Fprintf(&sb, "⏰ Commitment: %s\n\n", orUnknown(job.Commitment))
		sb.WriteString("Requirements:\n")
		for _, req := range job.Requirements {
			fmt.Fprintf(&sb, "• %s\n", req)
		}
		sb.WriteString("\n🎯 HOW TO PITCH:\n")
		sb.WriteString(job.PitchText)
		sb.WriteString("\n\n")
	}

	sb.WriteString("📧 *GENERAL OUTREACH TIPS:*\n")
	sb.WriteString("• Research recent project updates before reaching out\n")
	sb.WriteString("• Start with value - show what you can deliver\n")
	sb.WriteString("• Keep initial message concise (under 200 words)\n")
	sb.WriteString("• Follow up professionally if no response in 1 week\n")
	return sb.String()
}

// ActionPlan renders the action plan section based on project maturity.
func ActionPlan(rec models.AlertRecord) string {
	var sb strings.Builder
	sb.WriteString("🎯 *ACTION PLAN & NEXT STEPS*\n\n")

	switch rec.Needs.Maturity {
	case models.MaturityEarly:
		sb.WriteString("*🌱 EARLY STAGE PROJECT*\n")
		sb.WriteString("• High potential but also high risk\n")
		sb.WriteString("• Focus on foundational roles (community, development)\n")
		sb.WriteString("• Consider equity/token compensation\n")
		sb.WriteString("• Be prepared for rapid changes\n")
	case models.MaturityDeveloping:
		sb.WriteString("*📈 DEVELOPING PROJECT*\n")
		sb.WriteString("• Good balance of opportunity and stability\n")
		sb.WriteString("• Clear growth trajectory\n")
		sb.WriteString("• Professional compensation likely available\n")
		sb.WriteString("• Focus on scaling and optimization roles\n")
	default:
		sb.WriteString("*🏢 MATURE PROJECT*\n")
		sb.WriteString("• Lower risk, potentially lower growth\n")
		sb.WriteString("• Specialized roles and consulting opportunities\n")
		sb.WriteString("• Competitive compensation\n")
		sb.WriteString("• Focus on innovation and expansion roles\n")
	}

	sb.WriteString("\n*⚡ PRIORITY ACTIONS:*\n")
	urgent := 0
	for _, job := range capped(rec.Needs.Opportunities, 3) {
		if job.Urgency == models.UrgencyHigh {
			fmt.Fprintf(&sb, "🔥 *%s* - Act within 48 hours\n", title(underscoresToSpaces(string(job.Category))))
			urgent++
		}
	}
	if urgent == 0 {
		sb.WriteString("• Research project updates and recent news\n")
	}
	sb.WriteString("• Join their community channels to understand culture\n")
	sb.WriteString("• Prepare portfolio/examples relevant to their needs\n")
	sb.WriteString("• Draft personalized outreach messages\n")

	timeSensitive := 0
	for _, job := range rec.Needs.Opportunities {
		if job.Urgency == models.UrgencyHigh {
			timeSensitive++
		}
	}
	fmt.Fprintf(&sb, "\n⏰ Time-Sensitive Opportunities: %d\n", timeSensitive)
	return sb.String()
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	// cut on a rune boundary
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func orUnknown(s string) string {
	return orDefault(s, placeholderUnknown)
}

func yesNo(v bool) string {
	if v {
		return "✅"
	}
	return "❌"
}

func sentimentEmoji(score float64) string {
	switch {
	case score > 0.1:
		return "😊"
	case score > -0.1:
		return "😐"
	default:
		return "😟"
	}
}

func title(s string) string {
	if s == "" {
		return s
	}
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func underscoresToSpaces(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}

func capped[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
