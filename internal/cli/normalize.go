package cli

import (
	"fmt"

	"github.com/mvp-joe/pytestgen/internal/candidate"
	"github.com/spf13/cobra"
)

// normalizeCmd represents the normalize command
var normalizeCmd = &cobra.Command{
	Use:   "normalize FILE",
	Short: "Print the whitespace-normalized form used for duplicate detection",
	Args:  cobra.ExactArgs(1),
	RunE:  runNormalize,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	text, err := readInput(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(candidate.Normalize(text)))
	return nil
}
