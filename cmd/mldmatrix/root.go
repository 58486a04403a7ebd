package main

import (
	"github.com/spf13/cobra"

	"github.com/ttpr0/mldmatrix/app"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "mldmatrix",
	Short: "Run the many-to-many MLD shortest-path engine against a fixture",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a YAML config file (defaults applied if omitted)")
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(benchCmd)
}

// loadConfig reads --config if set, otherwise falls back to the
// engine's built-in defaults — every subcommand goes through this
// instead of touching app.DefaultConfig()/app.ReadConfig() directly.
func loadConfig() (app.Config, error) {
	if configFile == "" {
		return app.DefaultConfig(), nil
	}
	return app.ReadConfig(configFile)
}
