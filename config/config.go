// Package config loads host-level tuning knobs for a nativemod.Engine from
// a config file, environment variables, or both, following the same
// viper-based layering the rest of the host application uses.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/coredb/nativemod"
)

// Config holds the ambient settings a deployment can override without
// touching code. Only StagingRoot is carried into nativemod.Options;
// LegacyCacheEnabled and ReloadTimeout are surfaced for a host's own
// policy, and nothing in nativemod reads or enforces them.
type Config struct {
	StagingRoot        string        `mapstructure:"staging_root"`
	LegacyCacheEnabled bool          `mapstructure:"legacy_cache_enabled"`
	ReloadTimeout      time.Duration `mapstructure:"reload_timeout"`
}

// Load reads nativemod.{yaml,yml,json,...} from the current directory (if
// present), overlays NATIVEMOD_-prefixed environment variables, and fills
// in defaults for anything left unset.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("staging_root", "")
	v.SetDefault("legacy_cache_enabled", true)
	v.SetDefault("reload_timeout", 30*time.Second)

	v.SetConfigName("nativemod")
	v.AddConfigPath(".")
	v.SetEnvPrefix("NATIVEMOD")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read nativemod config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal nativemod config: %w", err)
	}

	if cfg.StagingRoot == "" {
		if td := os.Getenv("TMPDIR"); td != "" {
			cfg.StagingRoot = td
		} else {
			cfg.StagingRoot = "/tmp"
		}
	}
	return &cfg, nil
}

// Options translates the loaded configuration into nativemod.Options. The
// caller still supplies the Linker and Logger, since those are wiring
// decisions rather than tunable settings.
func (c *Config) Options(linker nativemod.Linker, log nativemod.Logger) nativemod.Options {
	return nativemod.Options{
		StagingRoot: c.StagingRoot,
		Linker:      linker,
		Logger:      log,
	}
}
