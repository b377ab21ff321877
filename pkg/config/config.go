// Package config carries the pipeline configuration surface: promotion
// quality thresholds and retrieval scoring weights. Defaults are loaded from
// the struct, overridden by LUXWEAVE_* environment variables, and validated
// before use.
package config

// PromotionConfig gates which mined templates may be promoted.
type PromotionConfig struct {
	MinSupport   int     `koanf:"min_support"   json:"min_support"   yaml:"min_support"   validate:"gte=0"`
	MinStability float64 `koanf:"min_stability" json:"min_stability" yaml:"min_stability" validate:"gte=0,lte=1"`
}

// ScoringConfig weights the four retrieval sub-scores. The weights must sum
// to 1.0; Validate enforces this at load time.
type ScoringConfig struct {
	FamilyWeight     float64 `koanf:"family_weight"     json:"family_weight"     yaml:"family_weight"     validate:"gte=0,lte=1"`
	LayeringWeight   float64 `koanf:"layering_weight"   json:"layering_weight"   yaml:"layering_weight"   validate:"gte=0,lte=1"`
	DensityWeight    float64 `koanf:"density_weight"    json:"density_weight"    yaml:"density_weight"    validate:"gte=0,lte=1"`
	ComplexityWeight float64 `koanf:"complexity_weight" json:"complexity_weight" yaml:"complexity_weight" validate:"gte=0,lte=1"`
}

// Config is the root configuration object.
type Config struct {
	Promotion PromotionConfig `koanf:"promotion" json:"promotion" yaml:"promotion"`
	Scoring   ScoringConfig   `koanf:"scoring"   json:"scoring"   yaml:"scoring"`
}

// Default returns the curated default configuration.
func Default() *Config {
	return &Config{
		Promotion: PromotionConfig{
			MinSupport:   3,
			MinStability: 0.6,
		},
		Scoring: ScoringConfig{
			FamilyWeight:     0.4,
			LayeringWeight:   0.2,
			DensityWeight:    0.2,
			ComplexityWeight: 0.2,
		},
	}
}
