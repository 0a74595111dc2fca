// Package config holds the secretutils CLI's on-disk configuration: the
// network table plus, in time, whatever else a command adds, loaded and
// saved through viper (mapstructure tags, a package-level Global()).
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/scrt-labs/secret-sdk-go/config"
)

var global Config

// Config is the CLI's persisted configuration.
type Config struct {
	viper *viper.Viper

	Networks config.Networks `mapstructure:"networks"`
}

// Default is used to populate a freshly-created configuration file.
var Default = Config{
	Networks: config.DefaultNetworks,
}

// Directory returns the directory secretutils stores its configuration in.
// A single process-lifetime path lookup like this one does not carry its
// own weight as a third-party dependency, so it uses os.UserConfigDir
// directly.
func Directory() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "secretutils")
}

// Global returns the process-wide configuration structure.
func Global() *Config {
	return &global
}

// Load populates the global configuration from v.
func Load(v *viper.Viper) error {
	global.viper = v
	return v.Unmarshal(&global)
}

// Save persists the global configuration through v.
func Save(v *viper.Viper) error {
	global.viper = v
	return global.Save()
}

// ResetDefaults resets the global configuration to Default.
func ResetDefaults() {
	global = Default
}

// Save persists the current configuration back through viper.
func (cfg *Config) Save() error {
	if cfg.viper == nil {
		return nil
	}
	cfg.viper.Set("networks", cfg.Networks)
	return cfg.viper.WriteConfig()
}
