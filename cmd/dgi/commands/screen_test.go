package commands

import (
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/dgi/internal/contracts"
	"github.com/wonny/dgi/pkg/config"
)

func baseConfig() *config.Config {
	return &config.Config{
		DataPath:    "data/fundamentals_small.csv",
		Screen:      config.ScreenConfig{MinYield: 0, MaxPayout: 100, MinCAGR: 0, TopN: 10, Weighting: "equal"},
		PayoutBound: 200,
	}
}

func resetScreenFlags(t *testing.T) {
	t.Helper()
	screenCSVPath, screenMinYield, screenMaxPayout, screenMinCAGR = "", 0, 0, 0
	screenProfile, screenSectors = "", ""
	for _, name := range []string{"csv-path", "min-yield", "max-payout", "min-cagr", "profile", "sectors"} {
		screenCmd.Flags().Lookup(name).Changed = false
	}
}

func TestResolveScreenSettingsDefaults(t *testing.T) {
	resetScreenFlags(t)

	s, err := resolveScreenSettings(screenCmd, baseConfig())
	require.NoError(t, err)

	assert.Equal(t, "data/fundamentals_small.csv", s.csvPath)
	assert.Equal(t, 100.0, s.maxPayout)
	assert.Equal(t, 10, s.topN)
	assert.Equal(t, contracts.WeightingEqual, s.weighting)
	assert.Equal(t, 200.0, s.payoutBound)
}

func TestResolveScreenSettingsProfileAndFlagPrecedence(t *testing.T) {
	resetScreenFlags(t)

	profile := filepath.Join(t.TempDir(), "core.yaml")
	require.NoError(t, os.WriteFile(profile, []byte(`meta:
  profile_id: core
screening:
  min_yield: 2.0
  max_payout: 60.0
  min_cagr: 5.0
  payout_bound: 100
sectors:
  allow: [Healthcare]
portfolio:
  top_n: 5
  weighting: score
`), 0o644))

	require.NoError(t, screenCmd.Flags().Set("profile", profile))
	// explicit flag outranks the profile
	require.NoError(t, screenCmd.Flags().Set("min-yield", "3.5"))

	s, err := resolveScreenSettings(screenCmd, baseConfig())
	require.NoError(t, err)

	assert.Equal(t, 3.5, s.minYield)  // flag wins
	assert.Equal(t, 60.0, s.maxPayout) // profile wins over env default
	assert.Equal(t, 5.0, s.minCAGR)
	assert.Equal(t, []string{"Healthcare"}, s.sectors)
	assert.Equal(t, 5, s.topN)
	assert.Equal(t, contracts.WeightingScore, s.weighting)
	assert.Equal(t, 100.0, s.payoutBound)
}

func TestResolveScreenSettingsSectorsFlag(t *testing.T) {
	resetScreenFlags(t)

	require.NoError(t, screenCmd.Flags().Set("sectors", "Healthcare, Consumer Defensive ,"))

	s, err := resolveScreenSettings(screenCmd, baseConfig())
	require.NoError(t, err)
	assert.Equal(t, []string{"Healthcare", "Consumer Defensive"}, s.sectors)
}

func TestResolveScreenSettingsBadProfile(t *testing.T) {
	resetScreenFlags(t)

	require.NoError(t, screenCmd.Flags().Set("profile", filepath.Join(t.TempDir(), "missing.yaml")))

	_, err := resolveScreenSettings(screenCmd, baseConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load profile")
}

func TestResolveScreenSettingsRejectsNegative(t *testing.T) {
	resetScreenFlags(t)

	require.NoError(t, screenCmd.Flags().Set("min-yield", "-1"))

	_, err := resolveScreenSettings(screenCmd, baseConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-negative")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a…", truncate("abcdef", 2))

	// Names are not always ASCII; the cut must land on a rune boundary.
	assert.Equal(t, "Nestlé", truncate("Nestlé", 6))
	assert.Equal(t, "Nest…", truncate("Nestlé SA", 5))
	assert.True(t, utf8.ValidString(truncate("삼성전자 보통주", 5)))
	assert.Equal(t, "삼성전자…", truncate("삼성전자 보통주", 5))
}
