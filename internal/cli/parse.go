package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mvp-joe/pytestgen/internal/candidate"
	"github.com/mvp-joe/pytestgen/internal/discovery"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	parseFormat   string
	parseNoDedupe bool
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse [FILE|DIR]...",
	Short: "Split generated model output into candidate test functions",
	Long: `Parse reads raw model output and splits it into one candidate per test_
function. Each candidate carries its name, its exact source lines and an ID.

Directories are searched with the paths.generated and paths.ignore globs
from the configuration. Candidates whose normalized source was already seen
in an earlier file are dropped unless --no-dedupe is given.

A file that does not parse, or that contains no test functions, yields no
candidates at all; the remaining files are still processed.

Examples:
  pytestgen parse output.py
  pytestgen parse runs/ --format json
  pytestgen parse run1.py run2.py --no-dedupe
`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "", "output format: text, json or yaml (default from config)")
	parseCmd.Flags().BoolVar(&parseNoDedupe, "no-dedupe", false, "keep candidates that duplicate earlier ones")
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg := currentConfig()
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	format := cfg.Output.Format
	if parseFormat != "" {
		format = parseFormat
	}

	files, err := collectInputs(args, cfg.Paths.Generated, cfg.Paths.Ignore)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no generated output files found in %v", args)
	}

	var deduper *candidate.Deduper
	if cfg.Dedupe.Enabled && !parseNoDedupe {
		deduper, err = candidate.NewDeduper(cfg.Dedupe.Capacity)
		if err != nil {
			return err
		}
		defer deduper.Close()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	progress := newParseProgress(errOut, len(files), quiet)
	results := make([]parsedFile, 0, len(files))
	failed := 0

	for _, path := range files {
		text, err := readInput(path)
		if err != nil {
			return err
		}

		candidates, err := candidate.Prepare(ctx, text)
		progress.OnFileProcessed()
		if err != nil {
			failed++
			printDiagnostic(errOut, path, text, err)
			logger.Debug("generated output rejected", zap.String("path", path), zap.Error(err))
			continue
		}

		result := parsedFile{Path: path, Candidates: candidates}
		if deduper != nil {
			result.Candidates = deduper.Filter(candidates)
			result.Duplicates = len(candidates) - len(result.Candidates)
		}
		logger.Debug("generated output parsed",
			zap.String("path", path),
			zap.Int("candidates", len(result.Candidates)),
			zap.Int("duplicates", result.Duplicates))

		results = append(results, result)
	}
	progress.Finish()

	if err := renderParsed(out, format, results); err != nil {
		return fmt.Errorf("failed to render results: %w", err)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d generated outputs could not be parsed", failed, len(files))
	}
	return nil
}

// collectInputs expands directory arguments with discovery globs; file
// arguments are taken as given.
func collectInputs(args, include, ignore []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", arg, err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		fd, err := discovery.New(arg, include, ignore)
		if err != nil {
			return nil, fmt.Errorf("invalid path patterns: %w", err)
		}
		found, err := fd.Discover()
		if err != nil {
			return nil, fmt.Errorf("failed to search %s: %w", arg, err)
		}
		files = append(files, found...)
	}
	return files, nil
}
