package lexicon

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/scoutlabs/web3scout/internal/models"
)

// Lexicon holds the keyword and pattern tables the scoring engine matches
// against, plus the pitch strategy table. It is built once at startup and
// never mutated afterwards.
type Lexicon struct {
	HighRisk           []string `yaml:"high_risk"`
	MediumRisk         []string `yaml:"medium_risk"`
	SuspiciousPatterns []string `yaml:"suspicious_patterns"`
	Positive           []string `yaml:"positive"`
	TeamIndicators     []string `yaml:"team_indicators"`
	TechIndicators     []string `yaml:"tech_indicators"`
	CryptoKeywords     []string `yaml:"crypto_keywords"`
	PositiveSentiment  []string `yaml:"positive_sentiment"`
	NegativeSentiment  []string `yaml:"negative_sentiment"`

	Strategies map[models.JobCategory]PitchStrategy `yaml:"strategies"`

	compiled  []*regexp.Regexp
	hypeEmoji *regexp.Regexp
	tmeLink   *regexp.Regexp
}

// PitchStrategy is the per-category template used to build pitch text.
type PitchStrategy struct {
	Strategy  string   `yaml:"strategy"`
	Approach  string   `yaml:"approach"`
	KeyPoints []string `yaml:"key_points"`
}

// Default returns the built-in lexicon with all patterns compiled.
func Default() *Lexicon {
	lex := &Lexicon{
		HighRisk: []string{
			"guaranteed profit", "risk-free", "100% safe", "get rich quick",
			"urgent", "limited time", "exclusive opportunity", "secret method",
			"financial freedom", "millionaire", "lamborghini", "to the moon",
			"pump", "dump", "shill", "exit scam", "rug pull",
		},
		MediumRisk: []string{
			"investment opportunity", "high returns", "passive income",
			"early investor", "presale", "private sale", "airdrop",
			"referral bonus", "pyramid", "matrix", "doubler",
		},
		SuspiciousPatterns: []string{
			`\d+x profit`, `\d+% return`, `\$\d+k per`, `only \d+ spots`,
			`invest \$\d+ get \$\d+`, `\d+ btc`, `\d+ eth`,
		},
		Positive: []string{
			"whitepaper", "roadmap", "github", "audit", "doxxed team",
			"partnership", "testnet", "mainnet", "smart contract",
			"open source", "decentralized", "community driven",
			"development update", "milestone", "alpha", "beta",
		},
		TeamIndicators: []string{
			"founder", "ceo", "cto", "developer", "advisor",
			"team member", "linkedin", "experience", "background",
		},
		TechIndicators: []string{
			"consensus", "validator", "node", "blockchain", "protocol",
			"algorithm", "cryptography", "security", "scalability",
		},
		CryptoKeywords: []string{
			"defi", "nft", "dao", "web3", "crypto", "blockchain", "token", "coin",
			"dapp", "protocol", "yield", "farming", "staking", "metaverse", "gamefi",
			"bridge", "swap", "dex", "cex", "mining", "node", "validator",
			"ethereum", "bitcoin", "solana", "polygon", "avalanche", "bsc",
		},
		PositiveSentiment: []string{
			"great", "excited", "progress", "launch", "growth", "strong",
			"welcome", "thanks", "love", "amazing", "shipped",
		},
		NegativeSentiment: []string{
			"scam", "fraud", "rug", "dead", "fake", "stolen", "warning",
			"avoid", "dumped", "abandoned", "hacked",
		},
		Strategies: map[models.JobCategory]PitchStrategy{
			models.CategoryCommunityManagement: {
				Strategy:  "Focus on engagement metrics and community building experience",
				Approach:  "Show examples of communities you've grown and engagement strategies",
				KeyPoints: []string{"Community growth track record", "Engagement strategies", "Crisis management", "Event organization"},
			},
			models.CategoryModeration: {
				Strategy:  "Emphasize reliability, availability, and conflict resolution skills",
				Approach:  "Highlight your availability across time zones and moderation tools experience",
				KeyPoints: []string{"24/7 availability", "Moderation tools expertise", "Conflict resolution", "Rule enforcement"},
			},
			models.CategoryGraphicsDesign: {
				Strategy:  "Lead with a strong portfolio showcasing crypto/web3 design experience",
				Approach:  "Create sample designs specifically for their project before pitching",
				KeyPoints: []string{"Crypto design portfolio", "Brand consistency", "Quick turnaround", "Multiple format delivery"},
			},
			models.CategorySocialMedia: {
				Strategy:  "Present a content strategy with growth projections and engagement tactics",
				Approach:  "Analyze their current social media and propose specific improvements",
				KeyPoints: []string{"Content strategy", "Growth tactics", "Platform expertise", "Analytics tracking"},
			},
			models.CategoryPRMarketing: {
				Strategy:  "Demonstrate media connections and successful campaign examples",
				Approach:  "Propose specific PR opportunities and media outreach strategy",
				KeyPoints: []string{"Media relationships", "Campaign success stories", "Industry knowledge", "Crisis communication"},
			},
			models.CategoryBusinessDev: {
				Strategy:  "Showcase network connections and partnership facilitation experience",
				Approach:  "Identify potential partnerships and present strategic opportunities",
				KeyPoints: []string{"Network connections", "Deal-making experience", "Market insights", "Strategic thinking"},
			},
		},
	}

	if err := lex.compile(); err != nil {
		// built-in patterns are static and known good
		panic(fmt.Sprintf("lexicon: default patterns failed to compile: %v", err))
	}
	return lex
}

// Load returns the default lexicon with overrides applied from a YAML file.
// An empty path returns the defaults unchanged. Non-empty override sections
// replace the corresponding default table wholesale.
func Load(path string) (*Lexicon, error) {
	lex := Default()
	if path == "" {
		return lex, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon file: %w", err)
	}
	if err := yaml.Unmarshal(data, lex); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon file: %w", err)
	}
	if err := lex.compile(); err != nil {
		return nil, err
	}
	return lex, nil
}

func (l *Lexicon) compile() error {
	l.compiled = l.compiled[:0]
	for _, p := range l.SuspiciousPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return fmt.Errorf("invalid suspicious pattern %q: %w", p, err)
		}
		l.compiled = append(l.compiled, re)
	}
	l.hypeEmoji = regexp.MustCompile(`[🚀💰💎🔥⚡]`)
	l.tmeLink = regexp.MustCompile(`t\.me/[a-zA-Z0-9_]+`)
	return nil
}

// CompiledPatterns returns the compiled suspicious patterns.
func (l *Lexicon) CompiledPatterns() []*regexp.Regexp { return l.compiled }

// HypeEmojiPattern matches hype emoji commonly spammed in scam channels.
func (l *Lexicon) HypeEmojiPattern() *regexp.Regexp { return l.hypeEmoji }

// InviteLinkPattern matches t.me invite links.
func (l *Lexicon) InviteLinkPattern() *regexp.Regexp { return l.tmeLink }

// StrategyFor returns the pitch strategy for a category and whether one is
// configured.
func (l *Lexicon) StrategyFor(cat models.JobCategory) (PitchStrategy, bool) {
	s, ok := l.Strategies[cat]
	return s, ok
}
