package config

import (
	"context"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if FACEOFF_CONFIG is set
//  3. env (prefix FACEOFF_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("FACEOFF_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// FACEOFF_HISTORY_WINDOW -> history_window, matching the koanf tags.
	envProvider := env.Provider("FACEOFF_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "faceoff_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return ErrEmptyAddr
	case c.HistoryWindow < 1:
		return ErrBadHistoryWindow
	case c.BaseLearningRate <= 0:
		return ErrBadLearningRate
	case c.ProvisionalThreshold < 1:
		return ErrBadThreshold
	case c.DecayRate < 0:
		return ErrBadDecayRate
	}
	return nil
}
