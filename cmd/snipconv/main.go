package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nickwells/errutil.mod/errutil"
	"github.com/spf13/cobra"

	"github.com/nickwells/snipconv.mod/snippet"
)

var (
	inFile    string
	outFile   string
	overwrite bool
)

var rootCmd = &cobra.Command{
	Use:   "snipconv",
	Short: "Convert TOML snippet definitions to editor JSON snippets",
	Long: `snipconv converts editor snippets written in a human-editable TOML
dialect into the strict JSON form that the editor's snippet loader
requires. The TOML dialect adds a few convenience attributes (an external
body source, a line range and blank-line trimming); these are applied
during conversion and never appear in the output.`,
	RunE: runConvert,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report every problem in the snippet definitions",
	Long: `check parses the snippet definitions and reports every convenience
attribute that violates its contract, rather than stopping at the first
problem as a conversion does. No source files are read and no output is
written.`,
	RunE: runCheck,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&inFile, "in", "i", "",
		"input TOML snippet file (default: standard input)")
	rootCmd.Flags().StringVarP(&outFile, "out", "o", "",
		"output JSON snippet file (default: standard output)")
	rootCmd.Flags().BoolVarP(&overwrite, "force", "f", false,
		"overwrite an existing output file")

	rootCmd.AddCommand(checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runConvert(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	input, err := readInput(inFile)
	if err != nil {
		return err
	}

	result, err := snippet.Convert(input)
	if err != nil {
		return err
	}

	return snippet.Deliver(cmd.OutOrStdout(), result, outFile, overwrite)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	input, err := readInput(inFile)
	if err != nil {
		return err
	}

	c, err := snippet.Parse(input)
	if err != nil {
		return err
	}

	errs := errutil.NewErrMap()
	c.Check(errs)

	if len(*errs) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(),
			"%d snippets, no problems found\n", c.Len())
		return nil
	}

	errs.Report(cmd.ErrOrStderr(), "Snippet problems")

	return errors.New("the snippet definitions have problems")
}

// readInput reads the whole input document from the named file, or from
// standard input when no file is given.
func readInput(path string) (string, error) {
	if path == "" {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("cannot read standard input: %w", err)
		}

		return string(content), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot read the snippet file: %w", err)
	}

	return string(content), nil
}
