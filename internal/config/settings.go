package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/clinicops/visitsplit/internal/common"
	"github.com/clinicops/visitsplit/internal/match"
	"github.com/clinicops/visitsplit/internal/model"
)

// Viper keys. Matcher tuning lives in config so runs are reproducible with
// varied thresholds without rebuilding.
const (
	KeyThreshold     = "matcher.threshold"
	KeyTieEpsilon    = "matcher.tie_epsilon"
	KeySurnameWeight = "matcher.surname_weight"
	KeyProviders     = "providers"
	KeyRosterSheet   = "roster.sheet"
)

// SetDefaults registers the default tuning values with viper.
func SetDefaults() {
	def := match.DefaultConfig()
	viper.SetDefault(KeyThreshold, def.Threshold)
	viper.SetDefault(KeyTieEpsilon, def.TieEpsilon)
	viper.SetDefault(KeySurnameWeight, def.SurnameWeight)
	viper.SetDefault(KeyRosterSheet, "Active")
}

// MatcherConfig reads the matcher tuning from viper and validates it.
func MatcherConfig() (match.Config, error) {
	cfg := match.Config{
		Threshold:     viper.GetFloat64(KeyThreshold),
		TieEpsilon:    viper.GetFloat64(KeyTieEpsilon),
		SurnameWeight: viper.GetFloat64(KeySurnameWeight),
	}
	if cfg.Threshold <= 0 || cfg.Threshold > 1 {
		return cfg, fmt.Errorf("%w: %s must be in (0,1], got %v",
			common.ErrInvalidConfig, KeyThreshold, cfg.Threshold)
	}
	if cfg.TieEpsilon < 0 || cfg.TieEpsilon >= 1 {
		return cfg, fmt.Errorf("%w: %s must be in [0,1), got %v",
			common.ErrInvalidConfig, KeyTieEpsilon, cfg.TieEpsilon)
	}
	if cfg.SurnameWeight < 0.5 || cfg.SurnameWeight > 1 {
		// Surname must stay the dominant component.
		return cfg, fmt.Errorf("%w: %s must be in [0.5,1], got %v",
			common.ErrInvalidConfig, KeySurnameWeight, cfg.SurnameWeight)
	}
	return cfg, nil
}

// Providers reads the configured raw-name to short-name provider mapping.
// An empty mapping is valid: every row then lands in the unmapped bucket.
func Providers() model.ProviderMapping {
	raw := viper.GetStringMapString(KeyProviders)
	if len(raw) == 0 {
		return model.ProviderMapping{}
	}
	mapping := make(model.ProviderMapping, len(raw))
	for full, short := range raw {
		mapping[full] = short
	}
	return mapping
}

// RosterSheet returns the worksheet name to read roster rows from.
func RosterSheet() string {
	return viper.GetString(KeyRosterSheet)
}
