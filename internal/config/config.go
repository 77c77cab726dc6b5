// Package config defines service configuration and loading.
//
// Conventions follow the rest of the repo: defaults first, then an optional
// YAML file, then environment variables; koanf tags on every field.
package config

import "github.com/okian/faceoff/internal/domain/model"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// MaxRankingLimit caps GET rankings?limit.
	MaxRankingLimit int `koanf:"max_ranking_limit"`

	// HistoryWindow bounds the rolling comparison log per scope.
	HistoryWindow int `koanf:"history_window"`

	// BaseLearningRate is the base K-factor before tier scaling.
	BaseLearningRate float64 `koanf:"base_learning_rate"`

	// ExplorationWeight scales the UCB exploration bonus.
	ExplorationWeight float64 `koanf:"exploration_weight"`

	// ProvisionalThreshold is the match count at which an item's rating
	// stops being provisional.
	ProvisionalThreshold int `koanf:"provisional_threshold"`

	// DecayRate is the fractional daily RD increase for idle items.
	DecayRate float64 `koanf:"decay_rate"`

	// Tau is the volatility constraint constant, stored for forward
	// compatibility with stricter rating models.
	Tau float64 `koanf:"tau"`

	// DecaySweepIntervalMinutes sets how often the decay sweeper runs.
	// Zero disables the sweeper.
	DecaySweepIntervalMinutes int `koanf:"decay_sweep_interval_minutes"`

	// SelectorSeed seeds the randomized selection steps when non-zero;
	// zero keeps them time-seeded. Meant for reproducing selections.
	SelectorSeed int64 `koanf:"selector_seed"`
}

// New returns a Config with documented defaults.
func New() *Config {
	return &Config{
		LogLevel:                  "info",
		Addr:                      ":9090",
		MaxRankingLimit:           200,
		HistoryWindow:             20,
		BaseLearningRate:          32,
		ExplorationWeight:         model.DefaultExplorationWeight,
		ProvisionalThreshold:      model.DefaultProvisionalThreshold,
		DecayRate:                 model.DefaultDecayRate,
		Tau:                       model.DefaultTau,
		DecaySweepIntervalMinutes: 0,
		SelectorSeed:              0,
	}
}
