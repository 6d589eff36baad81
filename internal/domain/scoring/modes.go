package scoring

import (
	"errors"
	"fmt"
	"sort"

	"github.com/okian/teamfit/internal/domain/model"
)

var (
	// ErrUnknownMode is returned when a preference mode is not registered.
	ErrUnknownMode = errors.New("unknown preference mode")
	// ErrInvalidWeights is returned when a mode carries negative weights.
	ErrInvalidWeights = errors.New("invalid preference weights")
)

// Weights is the (alpha, beta, gamma) triple applied to SkillMatch, Retention
// and Friction. Gamma is subtracted.
type Weights struct {
	Alpha float64 `json:"alpha" koanf:"alpha"`
	Beta  float64 `json:"beta" koanf:"beta"`
	Gamma float64 `json:"gamma" koanf:"gamma"`
}

// Validate rejects negative weights.
func (w Weights) Validate() error {
	if w.Alpha < 0 || w.Beta < 0 || w.Gamma < 0 {
		return fmt.Errorf("%w: alpha=%.2f beta=%.2f gamma=%.2f", ErrInvalidWeights, w.Alpha, w.Beta, w.Gamma)
	}
	return nil
}

// ModeConfig describes a named weighting profile.
type ModeConfig struct {
	Name        model.PreferenceMode `json:"name"`
	Description string               `json:"description"`
	UseCase     string               `json:"use_case"`
	Weights     Weights              `json:"weights"`
}

// Modes is a registry of preference modes keyed by name.
type Modes map[model.PreferenceMode]ModeConfig

// DefaultModes returns the five canonical preference modes.
func DefaultModes() Modes {
	return Modes{
		model.ModeStability: {
			Name:        model.ModeStability,
			Description: "favors retention and smooth onboarding",
			UseCase:     "long-term hires on established teams",
			Weights:     Weights{Alpha: 0.4, Beta: 0.5, Gamma: 0.1},
		},
		model.ModeGrowth: {
			Name:        model.ModeGrowth,
			Description: "favors skill match for growing teams",
			UseCase:     "scaling teams that need capability fast",
			Weights:     Weights{Alpha: 0.6, Beta: 0.2, Gamma: 0.2},
		},
		model.ModeDiversity: {
			Name:        model.ModeDiversity,
			Description: "balances skills and culture evenly",
			UseCase:     "teams looking to widen their perspective",
			Weights:     Weights{Alpha: 0.4, Beta: 0.4, Gamma: 0.2},
		},
		model.ModePriority: {
			Name:        model.ModePriority,
			Description: "ranks almost purely on skills",
			UseCase:     "urgent backfills",
			Weights:     Weights{Alpha: 0.7, Beta: 0.1, Gamma: 0.2},
		},
		model.ModeInnovation: {
			Name:        model.ModeInnovation,
			Description: "skills first with room for new culture",
			UseCase:     "new product and research teams",
			Weights:     Weights{Alpha: 0.5, Beta: 0.3, Gamma: 0.2},
		},
	}
}

// NewModes returns the canonical modes with overrides applied. Overrides may
// replace the weights of a canonical mode or register a new one.
func NewModes(overrides map[string]Weights) (Modes, error) {
	modes := DefaultModes()
	for name, w := range overrides {
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("mode %q: %w", name, err)
		}
		key := model.PreferenceMode(name)
		cfg, ok := modes[key]
		if !ok {
			cfg = ModeConfig{Name: key, Description: "custom mode"}
		}
		cfg.Weights = w
		modes[key] = cfg
	}
	return modes, nil
}

// Lookup returns the weights for mode.
func (m Modes) Lookup(mode model.PreferenceMode) (Weights, error) {
	cfg, ok := m[mode]
	if !ok {
		return Weights{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	return cfg.Weights, nil
}

// Has reports whether mode is registered.
func (m Modes) Has(mode model.PreferenceMode) bool {
	_, ok := m[mode]
	return ok
}

// List returns the registered modes sorted by name.
func (m Modes) List() []ModeConfig {
	out := make([]ModeConfig, 0, len(m))
	for _, cfg := range m {
		out = append(out, cfg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
