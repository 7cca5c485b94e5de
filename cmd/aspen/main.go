package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/solverlab/aspen/cmd/aspen/commands"
	"github.com/solverlab/aspen/config"
	"github.com/solverlab/aspen/logger"
)

var rootCmd = &cobra.Command{
	Use:   "aspen",
	Short: "aspen - ASP solver output parsing and reshaping",
	Long: `aspen - Parse answer-set solver output into structured, queryable data.

aspen reads the model lines a solver such as clingo prints, parses each
line into an answer set of ground terms, and reshapes the result through
composable views.

Available commands:
  parse   - Parse solver output lines from a file or stdin
  version - Show build information

Examples:
  clingo program.lp 0 --outf=0 | aspen parse        # Parse piped solver output
  aspen parse --by-predicate models.txt             # Group atoms by predicate
  aspen parse --mode careful --json models.txt      # Careful parsing, JSON output`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := logger.Initialize(cfg.Log.JSON, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v",
		"Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")

	rootCmd.AddCommand(commands.ParseCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
