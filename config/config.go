// Package config holds process-wide defaults for aspen tooling.
//
// Values here are ergonomic defaults only: the parsing and pipeline core
// takes explicit options at construction time, and nothing deep inside the
// core consults this package. The CLI and other collaborators read the
// config once and pass the resulting values down.
package config

// Config captures the tunable defaults for the aspen toolchain.
type Config struct {
	Parser ParserConfig `mapstructure:"parser"`
	Solver SolverConfig `mapstructure:"solver"`
	Log    LogConfig    `mapstructure:"log"`
}

// ParserConfig controls the default parsing strategy.
type ParserConfig struct {
	// Mode is "fast" or "careful".
	Mode string `mapstructure:"mode"`
}

// SolverConfig describes the external solver collaborator. The core never
// invokes the solver; these values are handed to whichever collaborator
// does.
type SolverConfig struct {
	// Binary is the solver executable name or path.
	Binary string `mapstructure:"binary"`
}

// LogConfig controls logging output.
type LogConfig struct {
	JSON bool `mapstructure:"json"`
}
