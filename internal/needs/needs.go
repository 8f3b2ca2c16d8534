// Package needs derives missing elements, strengths, and pitchable job
// opportunities from a community's dimension scores.
package needs

import (
	"fmt"
	"strings"

	"github.com/scoutlabs/web3scout/internal/lexicon"
	"github.com/scoutlabs/web3scout/internal/models"
)

// Threshold values for the check sequence.
const (
	socialThreshold     = 70
	technicalThreshold  = 60
	teamThreshold       = 50
	strengthThreshold   = 70
	smallMemberCount    = 1000
	marketCapThresholdUSD = 10_000_000

	maturityEarlyBelow      = 40
	maturityDevelopingBelow = 70
)

// Deriver builds Needs from dimension analyses. The checks run in a fixed
// sequence, so identical inputs always yield the same opportunity list in
// the same order.
type Deriver struct {
	lex *lexicon.Lexicon
}

// NewDeriver returns a deriver bound to the given strategy table.
func NewDeriver(lex *lexicon.Lexicon) *Deriver {
	return &Deriver{lex: lex}
}

// Derive runs the threshold checks over the analysis and market cap. An
// unknown market cap is treated as zero, which counts as below threshold.
func (d *Deriver) Derive(a models.Analysis, marketCapUSD float64) models.Needs {
	n := models.Needs{}

	if a.Social.Score < socialThreshold {
		n.MissingElements = append(n.MissingElements, "strong_social_media_presence")
		n.ImprovementAreas = append(n.ImprovementAreas, "social_media_strategy")

		if missingPlatform(a.Social, "twitter") {
			n.Opportunities = append(n.Opportunities, d.opportunity(
				models.CategorySocialMedia, models.UrgencyHigh,
				"Twitter account management and content strategy needed",
				[]string{"Social media experience", "Crypto knowledge", "Content creation"},
				"$500-2000/month", "Part-time (10-20 hrs/week)",
			))
		}
		if a.Social.TelegramMembers < smallMemberCount {
			n.Opportunities = append(n.Opportunities, d.opportunity(
				models.CategoryCommunityManagement, models.UrgencyHigh,
				"Telegram community growth and management needed",
				[]string{"Community building experience", "24/7 availability", "Crypto enthusiasm"},
				"$800-3000/month", "Full-time",
			))
		}
	}

	if a.Technical.Score < technicalThreshold {
		n.MissingElements = append(n.MissingElements, "strong_technical_foundation")
		n.ImprovementAreas = append(n.ImprovementAreas, "technical_documentation")

		if !a.Technical.HasWhitepaper {
			n.Opportunities = append(n.Opportunities, d.opportunity(
				models.CategoryTechnicalWriting, models.UrgencyHigh,
				"Technical writer needed for whitepaper and documentation",
				[]string{"Technical writing experience", "Blockchain knowledge", "Research skills"},
				"$2000-8000 (one-time)", "Project-based",
			))
		}
		if !a.Technical.HasGitHub {
			n.Opportunities = append(n.Opportunities, d.opportunity(
				models.CategoryDevelopment, models.UrgencyMedium,
				"Blockchain developer needed for smart contract development",
				[]string{"Solidity experience", "Smart contract development", "Security knowledge"},
				"$3000-10000/month", "Full-time",
			))
		}
	}

	if a.Team.Score < teamThreshold {
		n.MissingElements = append(n.MissingElements, "team_transparency")
		n.ImprovementAreas = append(n.ImprovementAreas, "team_credibility")

		n.Opportunities = append(n.Opportunities, d.opportunity(
			models.CategoryPRMarketing, models.UrgencyMedium,
			"PR specialist needed to build team credibility and media presence",
			[]string{"PR experience", "Media relationships", "Crisis communication"},
			"$1500-5000/month", "Part-time",
		))
	}

	// Weak social presence doubles as the branding signal.
	if a.Social.Score < socialThreshold {
		n.MissingElements = append(n.MissingElements, "professional_branding")
		n.ImprovementAreas = append(n.ImprovementAreas, "visual_identity")

		n.Opportunities = append(n.Opportunities, d.opportunity(
			models.CategoryGraphicsDesign, models.UrgencyMedium,
			"Graphics designer needed for branding and visual content",
			[]string{"Graphic design portfolio", "Crypto/Web3 experience", "Brand development"},
			"$1000-4000/month", "Part-time",
		))
	}

	if marketCapUSD < marketCapThresholdUSD {
		n.MissingElements = append(n.MissingElements, "strategic_partnerships")
		n.ImprovementAreas = append(n.ImprovementAreas, "business_development")

		n.Opportunities = append(n.Opportunities, d.opportunity(
			models.CategoryBusinessDev, models.UrgencyMedium,
			"Business development specialist for partnerships and growth",
			[]string{"BD experience", "Crypto industry network", "Deal-making skills"},
			"$2000-8000/month", "Part-time to Full-time",
		))
	}

	if a.Social.Score > strengthThreshold {
		n.Strengths = append(n.Strengths, "strong_social_media_presence")
	}
	if a.Technical.Score > strengthThreshold {
		n.Strengths = append(n.Strengths, "solid_technical_foundation")
	}
	if a.Team.Score > strengthThreshold {
		n.Strengths = append(n.Strengths, "transparent_team")
	}

	n.Maturity = maturity(a.Social.Score, a.Technical.Score, a.Team.Score)
	return n
}

func maturity(social, technical, team int) models.Maturity {
	avg := float64(social+technical+team) / 3
	switch {
	case avg < maturityEarlyBelow:
		return models.MaturityEarly
	case avg < maturityDevelopingBelow:
		return models.MaturityDeveloping
	default:
		return models.MaturityMature
	}
}

func (d *Deriver) opportunity(cat models.JobCategory, urgency models.Urgency,
	description string, requirements []string, budget, commitment string) models.Opportunity {
	return models.Opportunity{
		Category:     cat,
		Urgency:      urgency,
		Description:  description,
		Requirements: requirements,
		PitchText:    d.pitchText(cat),
		BudgetRange:  budget,
		Commitment:   commitment,
	}
}

func (d *Deriver) pitchText(cat models.JobCategory) string {
	strategy, ok := d.lex.StrategyFor(cat)
	if !ok {
		return "Research the project thoroughly and propose specific improvements in your area of expertise."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Pitch Strategy: %s\n\n", strategy.Strategy)
	fmt.Fprintf(&sb, "Approach: %s\n\n", strategy.Approach)
	sb.WriteString("Key Points to Highlight:\n")
	for _, p := range strategy.KeyPoints {
		fmt.Fprintf(&sb, "• %s\n", p)
	}
	sb.WriteString("\nPitch Template:\n")
	fmt.Fprintf(&sb, "\"Hi [Project Name] team! I've been following your project and see great potential. "+
		"I noticed you could benefit from %s support. Here's how I can help:\n\n", categoryLabel(cat))
	sb.WriteString("[Specific examples of what you can deliver]\n")
	sb.WriteString("[Your relevant experience/portfolio]\n")
	sb.WriteString("[Proposed timeline and deliverables]\n\n")
	sb.WriteString("I'd love to discuss how we can grow [Project Name] together. When would be a good time for a brief call?\"")
	return sb.String()
}

func categoryLabel(cat models.JobCategory) string {
	return strings.ReplaceAll(string(cat), "_", " ")
}

func missingPlatform(a models.SocialAnalysis, platform string) bool {
	for _, p := range a.MissingPlatforms {
		if p == platform {
			return true
		}
	}
	return false
}
