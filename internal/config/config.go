package config

import (
	"fmt"
	"math"

	"github.com/spf13/viper"

	"github.com/bursar-app/bursar/internal/common"
	"github.com/bursar-app/bursar/internal/model"
)

// Config is everything the application loads at startup: the category set,
// default budget amounts, preset snapshots, and collaborator settings.
type Config struct {
	DatabasePath   string
	LogLevel       string
	LogFormat      string
	DefaultBudgets map[string]float64
	Categories     model.CategorySet
	Presets        []model.Preset
}

// budgetEntry is one category/amount pair in the config file. Amounts are
// listed as entries rather than a map because viper lowercases map keys,
// which would corrupt case-sensitive category names.
type budgetEntry struct {
	Category string  `mapstructure:"category"`
	Amount   float64 `mapstructure:"amount"`
}

type presetEntry struct {
	Name    string        `mapstructure:"name"`
	Budgets []budgetEntry `mapstructure:"budgets"`
}

// Load reads configuration from viper (populated by the root command) and
// validates it. Category membership and non-negativity are enforced here, at
// the boundary, so the engine can trust its inputs.
func Load() (*Config, error) {
	cfg := &Config{
		DatabasePath: viper.GetString("database.path"),
		LogLevel:     viper.GetString("logging.level"),
		LogFormat:    viper.GetString("logging.format"),
		Categories:   viper.GetStringSlice("categories"),
	}

	if cfg.DatabasePath == "" {
		cfg.DatabasePath = "$HOME/.local/share/bursar/bursar.db"
	}
	cfg.DatabasePath = ExpandPath(cfg.DatabasePath)

	if len(cfg.Categories) == 0 {
		return nil, fmt.Errorf("%w: at least one category must be configured", common.ErrInvalidConfig)
	}
	known := make(map[string]bool, len(cfg.Categories))
	for _, c := range cfg.Categories {
		if c == "" {
			return nil, fmt.Errorf("%w: empty category name", common.ErrInvalidConfig)
		}
		if known[c] {
			return nil, fmt.Errorf("%w: duplicate category %q", common.ErrInvalidConfig, c)
		}
		known[c] = true
	}

	var defaults []budgetEntry
	if err := viper.UnmarshalKey("budgets.defaults", &defaults); err != nil {
		return nil, fmt.Errorf("%w: budgets.defaults: %v", common.ErrInvalidConfig, err)
	}
	budgets, err := entriesToMap(known, defaults)
	if err != nil {
		return nil, fmt.Errorf("budgets.defaults: %w", err)
	}
	cfg.DefaultBudgets = budgets

	var entries []presetEntry
	if err := viper.UnmarshalKey("presets", &entries); err != nil {
		return nil, fmt.Errorf("%w: presets: %v", common.ErrInvalidConfig, err)
	}
	presetNames := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if entry.Name == "" {
			return nil, fmt.Errorf("%w: preset without a name", common.ErrInvalidConfig)
		}
		if presetNames[entry.Name] {
			return nil, fmt.Errorf("%w: duplicate preset %q", common.ErrInvalidConfig, entry.Name)
		}
		presetNames[entry.Name] = true

		snapshot, err := entriesToMap(known, entry.Budgets)
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", entry.Name, err)
		}
		cfg.Presets = append(cfg.Presets, model.Preset{
			Name:    entry.Name,
			Budgets: snapshot,
		})
	}

	return cfg, nil
}

func entriesToMap(known map[string]bool, entries []budgetEntry) (map[string]float64, error) {
	out := make(map[string]float64, len(entries))
	for _, e := range entries {
		if !known[e.Category] {
			return nil, fmt.Errorf("%w: %q", common.ErrInvalidCategory, e.Category)
		}
		if _, dup := out[e.Category]; dup {
			return nil, fmt.Errorf("%w: duplicate amount for %q", common.ErrInvalidConfig, e.Category)
		}
		if e.Amount < 0 || math.IsNaN(e.Amount) || math.IsInf(e.Amount, 0) {
			return nil, fmt.Errorf("%w: amount for %q must be non-negative", common.ErrInvalidConfig, e.Category)
		}
		out[e.Category] = e.Amount
	}
	return out, nil
}
