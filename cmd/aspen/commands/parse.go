package commands

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/solverlab/aspen/answers"
	"github.com/solverlab/aspen/config"
	"github.com/solverlab/aspen/errors"
	"github.com/solverlab/aspen/logger"
	"github.com/solverlab/aspen/parser"
	"github.com/solverlab/aspen/term"
)

var (
	parseModeFlag   string
	parseByPred     bool
	parseByArity    bool
	parseFirstArg   bool
	parseStripQuote bool
	parseCoerce     bool
	parseSorted     bool
	parseJSON       bool
	parseFailFast   bool
)

// ParseCmd reads solver output and prints the parsed answer sets.
var ParseCmd = &cobra.Command{
	Use:   "parse [FILE]",
	Short: "Parse solver output lines from a file or stdin",
	Long: `Parse solver output lines into answer sets.

Each input line is one solver model: space-separated ground atoms. Lines
are parsed lazily as they are consumed, fast by default with automatic
escalation to the careful grammar parser on ambiguous constructs.

Examples:
  clingo program.lp 0 --outf=0 | aspen parse
  aspen parse --by-predicate models.txt
  aspen parse --mode careful --coerce --json models.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParseCommand,
}

func init() {
	ParseCmd.Flags().StringVarP(&parseModeFlag, "mode", "m", "",
		"Parser mode (fast/careful); defaults to the configured mode")
	ParseCmd.Flags().BoolVar(&parseByPred, "by-predicate", false,
		"Group each model's atoms by predicate name")
	ParseCmd.Flags().BoolVar(&parseByArity, "by-predicate-arity", false,
		"Group each model's atoms by (predicate, arity)")
	ParseCmd.Flags().BoolVar(&parseFirstArg, "first-arg", false,
		"Collapse each argument-tuple to its first element")
	ParseCmd.Flags().BoolVar(&parseStripQuote, "strip-quotes", false,
		"Remove surrounding quote markers from string literals")
	ParseCmd.Flags().BoolVar(&parseCoerce, "coerce", false,
		"Coerce integer-looking literals to numbers (forces careful parsing)")
	ParseCmd.Flags().BoolVar(&parseSorted, "sorted", false,
		"Order each model's terms canonically instead of first-seen")
	ParseCmd.Flags().BoolVar(&parseJSON, "json", false,
		"Emit one JSON object per model")
	ParseCmd.Flags().BoolVar(&parseFailFast, "fail-fast", false,
		"Stop at the first malformed line instead of continuing")
}

func runParseCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	modeName := parseModeFlag
	if modeName == "" {
		modeName = cfg.Parser.Mode
	}
	mode, err := parser.ParseMode(modeName)
	if err != nil {
		return err
	}

	input := os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return errors.Wrapf(err, "failed to open %s", args[0])
		}
		defer f.Close()
		input = f
	}

	pipeline := buildPipeline(input, mode)
	logger.Logger.Infow("parsing solver output", "mode", mode.String())

	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()

	for {
		m, err := pipeline.Next()
		if err != nil {
			reportParseError(err)
			if parseFailFast {
				return err
			}
			continue
		}
		if m == nil {
			return nil
		}
		if err := printModel(out, m); err != nil {
			return err
		}
	}
}

// buildPipeline wires the scanner feeding raw lines into a lazy pipeline
// with the requested views.
func buildPipeline(r io.Reader, mode parser.Mode) *answers.Answers {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	pipeline := answers.FromSource(func() (answers.Line, bool) {
		if !scanner.Scan() {
			return answers.Line{}, false
		}
		return answers.Line{Text: scanner.Text()}, true
	}).WithMode(mode).WithMetadata()

	if parseByArity {
		pipeline = pipeline.ByPredicateArity()
	} else if parseByPred {
		pipeline = pipeline.ByPredicate()
	}
	if parseFirstArg {
		pipeline = pipeline.FirstArgOnly()
	}
	if parseStripQuote {
		pipeline = pipeline.StripQuotes()
	}
	if parseCoerce {
		pipeline = pipeline.CoerceLiterals()
	}
	if parseSorted {
		pipeline = pipeline.Sorted()
	}
	return pipeline
}

func reportParseError(err error) {
	var pe *parser.ParseError
	if errors.As(err, &pe) {
		fmt.Fprintln(os.Stderr, pe.FormatError(parser.ErrorContextTerminal))
		return
	}
	fmt.Fprintln(os.Stderr, pterm.Red(err.Error()))
}

// modelOutput is the JSON shape for one parsed model.
type modelOutput struct {
	Number       int                 `json:"number"`
	Terms        []string            `json:"terms,omitempty"`
	Groups       map[string][]string `json:"groups,omitempty"`
	Optimization []int               `json:"optimization,omitempty"`
	Optimal      *bool               `json:"optimal,omitempty"`
}

func printModel(w io.Writer, m *answers.Model) error {
	if parseJSON {
		return printModelJSON(w, m)
	}

	fmt.Fprintf(w, "Answer %d:\n", m.Number)
	if m.Groups != nil {
		for _, key := range m.Groups.Keys {
			fmt.Fprintf(w, "  %s:\n", key)
			for _, tuple := range m.Groups.Entries[key] {
				fmt.Fprintf(w, "    %s\n", renderTuple(tuple))
			}
		}
	} else {
		for _, t := range m.Terms {
			fmt.Fprintf(w, "  %s\n", t)
		}
	}
	if m.Optimization != nil {
		fmt.Fprintf(w, "  optimization: %v\n", m.Optimization)
	}
	if m.Optimal != nil && *m.Optimal {
		fmt.Fprintln(w, "  OPTIMUM FOUND")
	}
	return nil
}

func printModelJSON(w io.Writer, m *answers.Model) error {
	out := modelOutput{
		Number:       m.Number,
		Optimization: m.Optimization,
		Optimal:      m.Optimal,
	}
	if m.Groups != nil {
		out.Groups = make(map[string][]string, len(m.Groups.Keys))
		for _, key := range m.Groups.Keys {
			tuples := make([]string, len(m.Groups.Entries[key]))
			for i, tuple := range m.Groups.Entries[key] {
				tuples[i] = renderTuple(tuple)
			}
			out.Groups[key.String()] = tuples
		}
	} else {
		out.Terms = make([]string, len(m.Terms))
		for i, t := range m.Terms {
			out.Terms[i] = t.String()
		}
	}
	enc := json.NewEncoder(w)
	return enc.Encode(out)
}

func renderTuple(tuple []term.Term) string {
	t := term.NewTuple(tuple...)
	return t.String()
}
