package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/mvp-joe/pytestgen/internal/candidate"
	"github.com/mvp-joe/pytestgen/internal/config"
	"github.com/mvp-joe/pytestgen/internal/strategy"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	validateTestFile   string
	validateSourceFile string
	validatePrompt     string
	validateStrategy   string
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the inputs of a test generation request",
	Long: `Validate checks the existing test file, the optional source file under
test and the optional completion prompt before they are sent to a model.

The test file must parse as Python and declare at least one test_ function.
The source file only has to parse. The prompt must not be blank. With
--strategy the inputs must also match what that strategy takes.

Examples:
  pytestgen validate --test-file tests/test_user.py
  pytestgen validate --test-file tests/test_user.py --source-file src/user.py
  pytestgen validate --test-file tests/test_calc.py --source-file calc.py \
    --strategy statement_complete --prompt "def test_divide_"
`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVar(&validateTestFile, "test-file", "", "path to the existing test file")
	validateCmd.Flags().StringVar(&validateSourceFile, "source-file", "", "path to the source file under test")
	validateCmd.Flags().StringVar(&validatePrompt, "prompt", "", "completion prompt for the statement_complete strategy")
	validateCmd.Flags().StringVar(&validateStrategy, "strategy", "", fmt.Sprintf("strategy the inputs are for (%s)", strings.Join(strategy.Names(), ", ")))
	_ = validateCmd.MarkFlagRequired("test-file")
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	testSource, err := readInput(validateTestFile)
	if err != nil {
		return err
	}
	sources := map[string]string{candidate.FieldExistingTestClass: testSource}

	in := candidate.Inputs{ExistingTestClass: testSource}
	if validateSourceFile != "" {
		src, err := readInput(validateSourceFile)
		if err != nil {
			return err
		}
		in.ClassUnderTest = &src
		sources[candidate.FieldClassUnderTest] = src
	}
	if validatePrompt != "" || cmd.Flags().Changed("prompt") {
		prompt := validatePrompt
		in.CompletionPrompt = &prompt
	}

	var (
		validated map[string]string
		selected  *strategy.Strategy
	)
	if validateStrategy != "" {
		s, lookupErr := strategy.Lookup(validateStrategy)
		if lookupErr != nil {
			return lookupErr
		}
		selected = &s
		validated, err = s.Validate(in)
	} else {
		validated, err = candidate.ValidateInputs(in)
	}

	if err != nil {
		logger.Debug("validation failed", zap.Error(err))
		var failed *candidate.ValidationFailedError
		if errors.As(err, &failed) {
			printDiagnostic(errOut, "", sources[failed.Field], err)
			return &reportedError{err: err}
		}
		return err
	}

	fields := make([]string, 0, len(validated))
	for field := range validated {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		okLabel.Fprint(out, "ok ")
		fmt.Fprintf(out, "%s (%d lines)\n", field, strings.Count(strings.TrimRight(validated[field], "\n"), "\n")+1)
	}

	if selected != nil {
		printStrategyPlan(out, *selected, currentConfig().Generation)
	}
	return nil
}

// printStrategyPlan shows what a generation request with the validated
// inputs would ask for, and at which temperatures it would run.
func printStrategyPlan(w io.Writer, s strategy.Strategy, gen config.GenerationConfig) {
	headerStyle.Fprintf(w, "strategy %s", s.Name)
	fmt.Fprintf(w, " -> %s\n", s.Output)
	fmt.Fprintf(w, "  %s\n", s.Instruction)

	temps := make([]string, len(gen.Temperatures))
	for i, t := range gen.Temperatures {
		temps[i] = strconv.FormatFloat(t, 'f', -1, 64)
	}
	fmt.Fprintf(w, "  temperatures: %s\n", strings.Join(temps, ", "))

	if !slices.Contains(gen.Strategies, s.Name) {
		warningLabel.Fprintf(w, "  %s is not enabled in generation.strategies\n", s.Name)
	}
}

// readInput reads a file given on the command line.
func readInput(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
