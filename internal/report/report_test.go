package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/scoutlabs/web3scout/internal/models"
)

func sampleRecord() models.AlertRecord {
	return models.AlertRecord{
		UniqueID: "abc123",
		Community: models.Community{
			Title:       "Acme Protocol",
			Username:    "acmeprotocol",
			Description: "A DeFi protocol with staking and governance",
			InviteLink:  "https://t.me/acmeprotocol",
			Metrics:     models.Metrics{MemberCount: 42, AdminCount: 2},
		},
		Analysis: models.Analysis{
			LegitimacyScore: 63.5,
			RiskTier:        models.RiskLow,
			MatchedPositive: []string{"POSITIVE: whitepaper", "TEAM: founder"},
			Tokenomics:      models.TokenomicsAnalysis{Score: 65, Summary: "Staking utility"},
			RoadmapQuality:  "Roadmap present",
			TeamPresence:    "Team mentioned",
			Sentiment:       0.5,
		},
		Needs: models.Needs{
			Maturity: models.MaturityDeveloping,
			Opportunities: []models.Opportunity{
				{
					Category:     models.CategorySocialMedia,
					Urgency:      models.UrgencyHigh,
					Description:  "Twitter account management needed",
					Requirements: []string{"Social media experience"},
					PitchText:    "pitch",
					BudgetRange:  "$500-2000/month",
					Commitment:   "Part-time",
				},
			},
		},
		SizeCategory: models.SizeSmall,
		DiscoveredAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestAlertMessageDeterministic(t *testing.T) {
	rec := sampleRecord()
	assert.Equal(t, AlertMessage(rec), AlertMessage(rec))
}

func TestAlertMessageContents(t *testing.T) {
	msg := AlertMessage(sampleRecord())

	assert.Contains(t, msg, "*Acme Protocol*")
	assert.Contains(t, msg, "Members: 42 (small)")
	assert.Contains(t, msg, "Legitimacy Score: 63.5/100")
	assert.Contains(t, msg, "Risk Level: LOW")
	assert.Contains(t, msg, "POSITIVE SIGNS")
	assert.Contains(t, msg, "2025-06-01 12:00 UTC")
	assert.NotContains(t, msg, "WARNING SIGNS")
	assert.NotContains(t, msg, "PROCEED WITH EXTREME CAUTION")
}

func TestAlertMessageCritical(t *testing.T) {
	rec := sampleRecord()
	rec.Analysis.RiskTier = models.RiskCritical
	rec.Analysis.MatchedNegative = []string{"HIGH RISK: rug pull"}

	msg := AlertMessage(rec)
	assert.Contains(t, msg, "Risk Level: CRITICAL")
	assert.Contains(t, msg, "WARNING SIGNS")
	assert.Contains(t, msg, "HIGH RISK: rug pull")
	assert.Contains(t, msg, "PROCEED WITH EXTREME CAUTION")
}

func TestAlertMessagePlaceholders(t *testing.T) {
	rec := models.AlertRecord{
		Analysis:     models.Analysis{RiskTier: models.RiskLow},
		SizeCategory: models.SizeMicro,
	}

	msg := AlertMessage(rec)
	assert.Contains(t, msg, "*unknown*")
	assert.Contains(t, msg, "No description available")
	assert.Contains(t, msg, "Link: Private")
	assert.Contains(t, msg, "Tokenomics: Not analyzed")
}

func TestAlertMessageTruncatesDescription(t *testing.T) {
	rec := sampleRecord()
	rec.Community.Description = strings.Repeat("x", 500)

	msg := AlertMessage(rec)
	assert.Contains(t, msg, strings.Repeat("x", 300)+"...")
	assert.NotContains(t, msg, strings.Repeat("x", 301))
}

func TestTruncateRuneBoundary(t *testing.T) {
	s := strings.Repeat("é", 200)
	out := truncate(s, 150)
	assert.Equal(t, strings.Repeat("é", 150)+"...", out)
	assert.Equal(t, s, truncate(s, 400))
}

func TestOverview(t *testing.T) {
	rec := sampleRecord()
	rec.Needs.Strengths = []string{"solid_technical_foundation"}
	rec.Needs.ImprovementAreas = []string{"social_media_strategy"}

	msg := Overview(rec)
	assert.Contains(t, msg, "*ACME PROTOCOL*")
	assert.Contains(t, msg, "Overall Maturity: Developing")
	assert.Contains(t, msg, "✅ Solid Technical Foundation")
	assert.Contains(t, msg, "❌ Social Media Strategy")
}

func TestBreakdown(t *testing.T) {
	rec := sampleRecord()
	rec.Analysis.Social = models.SocialAnalysis{Score: 40, MissingPlatforms: []string{"discord"}, TelegramMembers: 42}
	rec.Analysis.Technical = models.TechnicalAnalysis{Score: 70, HasGitHub: true}
	rec.Analysis.Team = models.TeamAnalysis{Score: 30, Transparency: "medium"}

	msg := Breakdown(rec)
	assert.Contains(t, msg, "SOCIAL MEDIA PRESENCE* (40/100)")
	assert.Contains(t, msg, "Missing Platforms: discord")
	assert.Contains(t, msg, "GitHub: ✅")
	assert.Contains(t, msg, "Whitepaper: ❌")
	assert.Contains(t, msg, "Transparency Level: Medium")
}

func TestOpportunitiesEmpty(t *testing.T) {
	rec := sampleRecord()
	rec.Needs.Opportunities = nil

	msg := Opportunities(rec)
	assert.Contains(t, msg, "No specific job opportunities identified")
}

func TestOpportunitiesListed(t *testing.T) {
	msg := Opportunities(sampleRecord())

	assert.Contains(t, msg, "Found *1 opportunities*")
	assert.Contains(t, msg, "SOCIAL MEDIA - HIGH PRIORITY")
	assert.Contains(t, msg, "Budget: $500-2000/month")
	assert.Contains(t, msg, "HOW TO PITCH:")
}

func TestActionPlan(t *testing.T) {
	msg := ActionPlan(sampleRecord())

	assert.Contains(t, msg, "DEVELOPING PROJECT")
	assert.Contains(t, msg, "*Social Media* - Act within 48 hours")
	assert.Contains(t, msg, "Time-Sensitive Opportunities: 1")
}
