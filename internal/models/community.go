package models

import (
	"context"
	"time"
)

// RiskTier classifies how likely a project is to be a scam.
type RiskTier string

const (
	RiskLow      RiskTier = "low"
	RiskMedium   RiskTier = "medium"
	RiskHigh     RiskTier = "high"
	RiskCritical RiskTier = "critical"
)

// Severity returns the ordinal position of the tier, low=0 .. critical=3.
func (t RiskTier) Severity() int {
	switch t {
	case RiskLow:
		return 0
	case RiskMedium:
		return 1
	case RiskHigh:
		return 2
	case RiskCritical:
		return 3
	}
	return 0
}

// ParseRiskTier maps a stored string back to a tier, defaulting to low.
func ParseRiskTier(s string) RiskTier {
	switch RiskTier(s) {
	case RiskMedium, RiskHigh, RiskCritical:
		return RiskTier(s)
	}
	return RiskLow
}

// Urgency of a job opportunity.
type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
	UrgencyLow    Urgency = "low"
)

// Maturity bucket derived from the average of the primary dimension scores.
type Maturity string

const (
	MaturityEarly      Maturity = "early"
	MaturityDeveloping Maturity = "developing"
	MaturityMature     Maturity = "mature"
)

// JobCategory tags a service a freelancer could pitch to a project.
type JobCategory string

const (
	CategoryCommunityManagement JobCategory = "community_management"
	CategoryModeration          JobCategory = "moderation"
	CategoryGraphicsDesign      JobCategory = "graphics_design"
	CategorySocialMedia         JobCategory = "social_media"
	CategoryPRMarketing         JobCategory = "pr_marketing"
	CategoryBusinessDev         JobCategory = "business_development"
	CategoryTechnicalWriting    JobCategory = "technical_writing"
	CategoryDevelopment         JobCategory = "development"
	CategoryLegalCompliance     JobCategory = "legal_compliance"
	CategoryPartnerships        JobCategory = "partnerships"
	CategoryContentCreation     JobCategory = "content_creation"
	CategoryInfluencerOutreach  JobCategory = "influencer_outreach"
)

// SizeCategory buckets a community by member count.
type SizeCategory string

const (
	SizeMicro       SizeCategory = "micro"
	SizeSmall       SizeCategory = "small"
	SizeMediumSmall SizeCategory = "medium_small"
	SizeMedium      SizeCategory = "medium"
	SizeGrowing     SizeCategory = "growing"
)

// SizeCategoryFor buckets a member count. Anything above the growing band
// still reports growing; discovery sources filter out large communities
// before scoring.
func SizeCategoryFor(members int) SizeCategory {
	switch {
	case members <= 30:
		return SizeMicro
	case members <= 50:
		return SizeSmall
	case members <= 100:
		return SizeMediumSmall
	case members <= 200:
		return SizeMedium
	default:
		return SizeGrowing
	}
}

// Metrics is the structured metadata that accompanies a community's text.
// Zero values mean "unknown" and score neutrally.
type Metrics struct {
	MemberCount  int        `json:"member_count"`
	AdminCount   int        `json:"admin_count"`
	Verified     bool       `json:"verified"`
	Restricted   bool       `json:"restricted"`
	CreationDate *time.Time `json:"creation_date,omitempty"`
}

// Community is a discovered crypto-project community before analysis.
type Community struct {
	Title          string   `json:"title"`
	Username       string   `json:"username"`
	Description    string   `json:"description"`
	RecentMessages []string `json:"recent_messages,omitempty"`
	InviteLink     string   `json:"invite_link,omitempty"`
	TokenSymbol    string   `json:"token_symbol,omitempty"`
	MarketCapUSD   float64  `json:"market_cap_usd,omitempty"`
	Source         string   `json:"source"`
	Metrics        Metrics  `json:"metrics"`
}

// CommunitySource discovers candidate communities from an external feed.
type CommunitySource interface {
	FetchCommunities(ctx context.Context, limit int) ([]Community, error)
	Name() string
}

// SocialAnalysis scores the project's social presence.
type SocialAnalysis struct {
	Score            int      `json:"score"`
	MissingPlatforms []string `json:"missing_platforms,omitempty"`
	TelegramMembers  int      `json:"telegram_members"`
	Recommendations  []string `json:"recommendations,omitempty"`
}

// TechnicalAnalysis scores the project's technical footprint.
type TechnicalAnalysis struct {
	Score           int      `json:"score"`
	HasGitHub       bool     `json:"has_github"`
	HasWhitepaper   bool     `json:"has_whitepaper"`
	HasAudit        bool     `json:"has_audit"`
	MissingElements []string `json:"missing_elements,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// TeamAnalysis scores team transparency. Transparency is one of
// "anonymous", "low", "medium", "high".
type TeamAnalysis struct {
	Score           int      `json:"score"`
	Transparency    string   `json:"transparency"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// TokenomicsAnalysis scores tokenomics signals found in the text.
type TokenomicsAnalysis struct {
	Score           int      `json:"score"`
	PositiveAspects []string `json:"positive_aspects,omitempty"`
	RedFlags        []string `json:"red_flags,omitempty"`
	Summary         string   `json:"summary,omitempty"`
}

// CommunityHealth scores the community itself from its metrics.
type CommunityHealth struct {
	Score  int      `json:"score"`
	Issues []string `json:"issues,omitempty"`
}

// Analysis is the full scored view of a community. All scores are in
// [0,100]; the risk tier is a step function of the legitimacy score with a
// high-risk keyword override.
type Analysis struct {
	LegitimacyScore float64            `json:"legitimacy_score"`
	RiskTier        RiskTier           `json:"risk_tier"`
	MatchedNegative []string           `json:"matched_negative,omitempty"`
	MatchedPositive []string           `json:"matched_positive,omitempty"`
	Social          SocialAnalysis     `json:"social"`
	Technical       TechnicalAnalysis  `json:"technical"`
	Team            TeamAnalysis       `json:"team"`
	Tokenomics      TokenomicsAnalysis `json:"tokenomics"`
	Community       CommunityHealth    `json:"community"`
	RoadmapQuality  string             `json:"roadmap_quality,omitempty"`
	TeamPresence    string             `json:"team_presence,omitempty"`
	Sentiment       float64            `json:"sentiment"`
}

// DimensionScores flattens the per-dimension scores for reporting.
func (a Analysis) DimensionScores() map[string]int {
	return map[string]int{
		"social":     a.Social.Score,
		"technical":  a.Technical.Score,
		"team":       a.Team.Score,
		"tokenomics": a.Tokenomics.Score,
		"community":  a.Community.Score,
	}
}

// Opportunity is a suggested service pitch. Created once per analysis pass
// and never mutated.
type Opportunity struct {
	Category     JobCategory `json:"category"`
	Urgency      Urgency     `json:"urgency"`
	Description  string      `json:"description"`
	Requirements []string    `json:"requirements"`
	PitchText    string      `json:"pitch_text"`
	BudgetRange  string      `json:"budget_range"`
	Commitment   string      `json:"commitment"`
}

// Needs is the derived view of what a project is missing and which
// opportunities that opens.
type Needs struct {
	MissingElements  []string      `json:"missing_elements,omitempty"`
	Strengths        []string      `json:"strengths,omitempty"`
	ImprovementAreas []string      `json:"improvement_areas,omitempty"`
	Opportunities    []Opportunity `json:"opportunities,omitempty"`
	Maturity         Maturity      `json:"maturity"`
}

// AlertRecord is a scored community persisted to the alert log. Created on
// discovery, mutated only to flip Sent after dispatch, never deleted.
type AlertRecord struct {
	UniqueID     string       `json:"unique_id"`
	Community    Community    `json:"community"`
	Analysis     Analysis     `json:"analysis"`
	Needs        Needs        `json:"needs"`
	SizeCategory SizeCategory `json:"size_category"`
	DiscoveredAt time.Time    `json:"discovered_at"`
	Sent         bool         `json:"sent"`
}

// Subscriber holds a chat's alert preferences.
type Subscriber struct {
	ChatID       int64          `json:"chat_id"`
	SubscribedAt time.Time      `json:"subscribed_at"`
	SizeFilters  []SizeCategory `json:"size_filters,omitempty"`
	MaxRiskTier  RiskTier       `json:"max_risk_tier"`
	Enabled      bool           `json:"enabled"`
}

// WantsSize reports whether the subscriber accepts the given size bucket.
// An empty filter list accepts every size.
func (s Subscriber) WantsSize(size SizeCategory) bool {
	if len(s.SizeFilters) == 0 {
		return true
	}
	for _, f := range s.SizeFilters {
		if f == size {
			return true
		}
	}
	return false
}
