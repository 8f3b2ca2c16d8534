package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutlabs/web3scout/internal/models"
)

func TestDefault(t *testing.T) {
	lex := Default()

	assert.Contains(t, lex.HighRisk, "rug pull")
	assert.Contains(t, lex.CryptoKeywords, "defi")
	assert.NotEmpty(t, lex.CompiledPatterns())
	assert.NotNil(t, lex.HypeEmojiPattern())

	_, ok := lex.StrategyFor(models.CategoryCommunityManagement)
	assert.True(t, ok)
	_, ok = lex.StrategyFor(models.CategoryTechnicalWriting)
	assert.False(t, ok)
}

func TestLoadEmptyPath(t *testing.T) {
	lex, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().HighRisk, lex.HighRisk)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	data := `high_risk:
  - "definitely a scam"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	lex, err := Load(path)
	require.NoError(t, err)

	// overridden section replaced wholesale, others keep defaults
	assert.Equal(t, []string{"definitely a scam"}, lex.HighRisk)
	assert.Equal(t, Default().MediumRisk, lex.MediumRisk)
	assert.NotEmpty(t, lex.CompiledPatterns())
}

func TestLoadBadPattern(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	data := `suspicious_patterns:
  - "("
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid suspicious pattern")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestPatternsMatch(t *testing.T) {
	lex := Default()

	matched := false
	for _, re := range lex.CompiledPatterns() {
		if re.MatchString("100x profit") {
			matched = true
		}
	}
	assert.True(t, matched)
}
