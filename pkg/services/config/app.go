package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const envPrefix = "SALES_ATLAS"

type SourceConfig struct {
	// Kind selects the record source: "csv" reads the sheet export directly,
	// "duckdb" reads rows previously imported into the embedded store.
	Kind   string `mapstructure:"kind" validate:"required,oneof=csv duckdb"`
	Path   string `mapstructure:"path"`
	DbPath string `mapstructure:"db_path"`
}

type Config struct {
	Source      SourceConfig `mapstructure:"source"`
	PeriodsFile string       `mapstructure:"periods_file" validate:"required"`
	Currency    string       `mapstructure:"currency"`
}

// LoadConfig reads the application config file. Any key can be overridden from
// the environment, e.g. SALES_ATLAS_SOURCE_PATH. Relative paths are resolved
// against the directory of the config file.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal only sees env values for keys viper already knows, so every key
	// needs a default.
	v.SetDefault("source.kind", "csv")
	v.SetDefault("source.path", "")
	v.SetDefault("source.db_path", "sales-atlas.db")
	v.SetDefault("periods_file", "periods.ini")
	v.SetDefault("currency", "kr.")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Source.Kind == "csv" && cfg.Source.Path == "" {
		return nil, errors.New("invalid config: source.path is required for the csv source")
	}

	base := filepath.Dir(path)
	cfg.PeriodsFile = resolve(base, cfg.PeriodsFile)
	cfg.Source.Path = resolve(base, cfg.Source.Path)
	cfg.Source.DbPath = resolve(base, cfg.Source.DbPath)

	return &cfg, nil
}

func resolve(base, p string) string {
	if p == "" || p == ":memory:" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
