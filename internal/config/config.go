// Package config loads tool configuration from an optional YAML file,
// environment variables and defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the resolved tool configuration.
type Config struct {
	// Hero is the statistics subject. Empty means no hero filtering.
	Hero string `mapstructure:"hero"`
	// LogDir is the root directory of hand-history .txt files.
	LogDir string `mapstructure:"log_dir"`
	// DBPath is the sqlite file backing the range store.
	DBPath string `mapstructure:"db_path"`
	// SkipTournaments drops tournament-tagged blocks during parsing.
	SkipTournaments bool `mapstructure:"skip_tournaments"`
	// Workers caps concurrent file parsing. Zero means one per CPU.
	Workers int `mapstructure:"workers"`
	// Listen is the range server bind address.
	Listen string `mapstructure:"listen"`
}

// Load reads configuration from path, or from ./pokertracker.yaml when path
// is empty. A missing default file is not an error; an explicit path that
// does not exist is.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("hero", "")
	v.SetDefault("log_dir", ".")
	v.SetDefault("db_path", "pokertracker.db")
	v.SetDefault("skip_tournaments", false)
	v.SetDefault("workers", 0)
	v.SetDefault("listen", ":8080")

	v.SetEnvPrefix("POKERTRACKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("pokertracker")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if explicit {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
