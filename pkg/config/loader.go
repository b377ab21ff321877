package config

import (
	"fmt"
	"math"
	"strings"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "LUXWEAVE_"

const weightSumTolerance = 1e-9

// Load builds the effective configuration: struct defaults, then LUXWEAVE_*
// environment overrides, then validation.
func Load() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			// LUXWEAVE_PROMOTION_MIN_SUPPORT -> promotion.min_support
			key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
			key = strings.Replace(key, "_", ".", 1)
			return key, value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
		},
	}); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Merge overlays non-zero fields of override onto base and validates the
// result; used when a caller supplies a partial configuration.
func Merge(base, override *Config) (*Config, error) {
	merged := *base
	if err := mergo.Merge(&merged, override, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("config: merge: %w", err)
	}
	if err := Validate(&merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Validate checks field ranges and the cross-field weight-sum invariant.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config: validation failed: %w", err)
	}
	sum := cfg.Scoring.FamilyWeight +
		cfg.Scoring.LayeringWeight +
		cfg.Scoring.DensityWeight +
		cfg.Scoring.ComplexityWeight
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("config: scoring weights must sum to 1.0, got %v", sum)
	}
	return nil
}
