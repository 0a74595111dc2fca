// Package cmd implements the secretutils command tree: a small Cobra CLI
// for exercising the transparent encryption layer by hand against a
// running Secret Network node (cobra.OnInitialize + a viper-backed TOML
// config file under a per-user config directory).
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/scrt-labs/secret-sdk-go/cmd/secretutils/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:     "secretutils",
	Short:   "Utilities for Secret Network's transparent encryption layer",
	Version: "0.1.0",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func initConfig() {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		const configFilename = "secretutils.toml"
		configDir := config.Directory()
		configPath := filepath.Join(configDir, configFilename)

		v.AddConfigPath(configDir)
		v.SetConfigType("toml")
		v.SetConfigName(configFilename)

		_ = os.MkdirAll(configDir, 0o700)
		if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
			if _, err := os.Create(configPath); err != nil {
				cobra.CheckErr(fmt.Errorf("failed to create configuration file: %w", err))
			}
			config.ResetDefaults()
			_ = config.Save(v)
		}
	}

	_ = v.ReadInConfig()

	err := config.Load(v)
	cobra.CheckErr(err)
	err = config.Global().Networks.Validate()
	cobra.CheckErr(err)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file to use")

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(networkCmd)
	rootCmd.AddCommand(queryCmd)
}
