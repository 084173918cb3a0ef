package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicops/visitsplit/internal/common"
	"github.com/clinicops/visitsplit/internal/match"
)

func reset(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()
}

func TestMatcherConfigDefaults(t *testing.T) {
	reset(t)

	cfg, err := MatcherConfig()
	require.NoError(t, err)
	assert.Equal(t, match.DefaultConfig(), cfg)
}

func TestMatcherConfigOverrides(t *testing.T) {
	reset(t)
	viper.Set(KeyThreshold, 0.9)
	viper.Set(KeySurnameWeight, 0.8)

	cfg, err := MatcherConfig()
	require.NoError(t, err)
	assert.Equal(t, 0.9, cfg.Threshold)
	assert.Equal(t, 0.8, cfg.SurnameWeight)
	assert.Equal(t, match.DefaultConfig().TieEpsilon, cfg.TieEpsilon)
}

func TestMatcherConfigValidation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value float64
	}{
		{"threshold too high", KeyThreshold, 1.5},
		{"threshold zero", KeyThreshold, 0},
		{"epsilon negative", KeyTieEpsilon, -0.1},
		{"surname weight below given weight", KeySurnameWeight, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reset(t)
			viper.Set(tt.key, tt.value)

			_, err := MatcherConfig()
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
		})
	}
}

func TestProviders(t *testing.T) {
	reset(t)
	assert.Empty(t, Providers())

	viper.Set(KeyProviders, map[string]string{"Dr. Jane Lee": "Lee"})
	mapping := Providers()
	short, ok := mapping.Resolve("dr. jane lee")
	require.True(t, ok)
	assert.Equal(t, "Lee", short)
}

func TestRosterSheetDefault(t *testing.T) {
	reset(t)
	assert.Equal(t, "Active", RosterSheet())
}
