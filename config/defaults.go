package config

import "github.com/spf13/viper"

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	// Parser defaults
	v.SetDefault("parser.mode", "fast")

	// Solver collaborator defaults
	v.SetDefault("solver.binary", "clingo")

	// Logging defaults
	v.SetDefault("log.json", false)
}
