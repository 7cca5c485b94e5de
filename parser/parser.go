// Package parser turns raw solver output lines into term values.
//
// Two strategies produce identical results on unambiguous input: a fast
// single-pass delimiter splitter and a careful grammar-based parser. The
// selector in this file picks between them per line: fast by default,
// careful when the caller asks for it or when the fast parser signals
// ambiguity. Escalation is handled locally and never surfaces to callers.
package parser

import (
	"github.com/solverlab/aspen/errors"
	"github.com/solverlab/aspen/logger"
	"github.com/solverlab/aspen/term"
)

// Mode selects the parsing strategy.
type Mode int

const (
	// ModeFast uses the delimiter-splitting parser, escalating to careful
	// parsing on ambiguity.
	ModeFast Mode = iota
	// ModeCareful always uses the grammar-based parser.
	ModeCareful
)

func (m Mode) String() string {
	if m == ModeCareful {
		return "careful"
	}
	return "fast"
}

// ParseMode converts a CLI/config string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "fast", "":
		return ModeFast, nil
	case "careful":
		return ModeCareful, nil
	default:
		return ModeFast, errors.Newf("unknown parser mode %q", s)
	}
}

// Options configures one parse invocation. The zero value is the default:
// fast mode with automatic escalation.
type Options struct {
	Mode Mode
	// NoEscalate returns the fast parser's ambiguity signal to the caller
	// instead of retrying with the careful parser.
	NoEscalate bool
}

// ParseLine parses one solver model line into its terms using the default
// options.
func ParseLine(line string) ([]term.Term, error) {
	return ParseLineOpts(line, Options{})
}

// ParseLineOpts parses one solver model line with explicit options. The
// decision is stateless and per line: a run may parse most lines fast and
// escalate only the lines that trip an ambiguity heuristic.
func ParseLineOpts(line string, opts Options) ([]term.Term, error) {
	if opts.Mode == ModeCareful {
		return ParseCareful(line)
	}
	terms, err := ParseFast(line)
	if err == nil {
		return terms, nil
	}
	var pe *ParseError
	if errors.As(err, &pe) && pe.IsAmbiguous() && !opts.NoEscalate {
		logger.Logger.Debugw("escalating to careful parser",
			"reason", pe.Message,
			"line", line)
		return ParseCareful(line)
	}
	return nil, err
}
