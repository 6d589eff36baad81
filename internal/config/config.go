// Package config defines service configuration structures and loading hooks.
package config

import (
	"context"
	"fmt"
	"runtime"

	"github.com/okian/teamfit/internal/domain/model"
	"github.com/okian/teamfit/internal/domain/placement"
	"github.com/okian/teamfit/internal/domain/scoring"
	"github.com/okian/teamfit/pkg/metrics"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat is text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// WorkerCount sets the number of scoring workers.
	WorkerCount int `koanf:"worker_count"`

	// DefaultMode is used when a fit-score request names no mode.
	DefaultMode string `koanf:"default_mode"`

	// BatchMode is the preference mode used for batch placement.
	BatchMode string `koanf:"batch_mode"`

	// BatchStrategy is stop-at-first-unmatched or skip-unmatched.
	BatchStrategy string `koanf:"batch_strategy"`

	// TransferThreshold is the improvement a transfer must exceed.
	TransferThreshold float64 `koanf:"transfer_threshold"`

	// OrganizationBaseline is the reference organization-wide fit.
	OrganizationBaseline float64 `koanf:"organization_baseline"`

	// DepartmentFitBefore and DepartmentFitAfter are reported for every
	// affected department.
	DepartmentFitBefore float64 `koanf:"department_fit_before"`
	DepartmentFitAfter  float64 `koanf:"department_fit_after"`

	// Historical signals applied to every pair until a real source exists.
	ManagerSimilarity float64 `koanf:"manager_similarity"`
	RecentMove        bool    `koanf:"recent_move"`
	MoveCountLastYear int     `koanf:"move_count_last_year"`
	HandoverLoad      float64 `koanf:"handover_load"`
	ManagerChange     bool    `koanf:"manager_change"`

	// MaxBatchCandidates caps the candidates accepted by one batch request.
	MaxBatchCandidates int `koanf:"max_batch_candidates"`

	// PreferenceModes overrides or extends the canonical modes.
	PreferenceModes map[string]scoring.Weights `koanf:"preference_modes"`

	// SkillNames maps skill ids to display names.
	SkillNames map[string]string `koanf:"skill_names"`

	// Metrics exposition on /metrics.
	MetricsEnabled   bool              `koanf:"metrics_enabled"`
	MetricsNamespace string            `koanf:"metrics_namespace"`
	MetricsSubsystem string            `koanf:"metrics_subsystem"`
	MetricsLabels    map[string]string `koanf:"metrics_labels"`
	MetricsBuckets   []float64         `koanf:"metrics_buckets"`
}

// New creates a Config with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:             "info",
		LogFormat:            "text",
		Addr:                 ":9080",
		WorkerCount:          runtime.NumCPU(),
		DefaultMode:          string(model.ModeStability),
		BatchMode:            string(model.ModeStability),
		BatchStrategy:        string(placement.StrategyStopAtFirstUnmatched),
		TransferThreshold:    placement.DefaultTransferThreshold,
		OrganizationBaseline: placement.DefaultBaseline,
		DepartmentFitBefore:  placement.DefaultDepartmentBefore,
		DepartmentFitAfter:   placement.DefaultDepartmentAfter,
		ManagerSimilarity:    scoring.DefaultManagerSimilarity,
		HandoverLoad:         scoring.DefaultHandoverLoad,
		MaxBatchCandidates:   500,
		PreferenceModes:      map[string]scoring.Weights{},
		SkillNames:           map[string]string{},
		MetricsEnabled:       true,
		MetricsNamespace:     "teamfit",
		MetricsSubsystem:     "engine",
		MetricsLabels:        map[string]string{},
	}
}

// MetricsOptions returns the options for the global metrics manager.
func (c *Config) MetricsOptions() []metrics.Option {
	return []metrics.Option{
		metrics.WithMetricsEnabled(c.MetricsEnabled),
		metrics.WithNamespace(c.MetricsNamespace),
		metrics.WithSubsystem(c.MetricsSubsystem),
		metrics.WithCustomLabels(c.MetricsLabels),
		metrics.WithHistogramBuckets(c.MetricsBuckets),
	}
}

// Modes returns the mode registry with configured overrides applied.
func (c *Config) Modes() (scoring.Modes, error) {
	modes, err := scoring.NewModes(c.PreferenceModes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return modes, nil
}

// Signals returns the configured historical signals.
func (c *Config) Signals() scoring.Signals {
	return scoring.Signals{
		ManagerSimilarity: c.ManagerSimilarity,
		RecentMove:        c.RecentMove,
		MoveCountLastYear: c.MoveCountLastYear,
		HandoverLoad:      c.HandoverLoad,
		ManagerChange:     c.ManagerChange,
	}
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.WorkerCount < 1 {
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	}
	if c.TransferThreshold < 0 {
		return fmt.Errorf("%w: transfer_threshold must not be negative", ErrInvalidConfig)
	}
	if c.MaxBatchCandidates < 1 {
		return fmt.Errorf("%w: max_batch_candidates must be positive", ErrInvalidConfig)
	}
	for i := 1; i < len(c.MetricsBuckets); i++ {
		if c.MetricsBuckets[i] <= c.MetricsBuckets[i-1] {
			return fmt.Errorf("%w: metrics_buckets must be strictly increasing", ErrInvalidConfig)
		}
	}
	if _, err := placement.ParseStrategy(c.BatchStrategy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	modes, err := c.Modes()
	if err != nil {
		return err
	}
	for _, m := range []string{c.DefaultMode, c.BatchMode} {
		if _, err := modes.Lookup(model.PreferenceMode(m)); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}
