package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mvp-joe/pytestgen/internal/candidate"
	"gopkg.in/yaml.v3"
)

var (
	errorLabel   = color.New(color.FgRed, color.Bold)
	okLabel      = color.New(color.FgGreen, color.Bold)
	headerStyle  = color.New(color.FgCyan, color.Bold)
	dimStyle     = color.New(color.Faint)
	warningLabel = color.New(color.FgYellow)
)

// parsedFile is the rendered result of parsing one generated output.
type parsedFile struct {
	Path       string                `json:"path" yaml:"path"`
	Candidates []candidate.Candidate `json:"candidates" yaml:"candidates"`
	Duplicates int                   `json:"duplicates" yaml:"duplicates"`
}

// reportedError marks an error whose diagnostic a command already printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

func isReported(err error) bool {
	var reported *reportedError
	return errors.As(err, &reported)
}

// printError writes a one-line error to w.
func printError(w io.Writer, err error) {
	errorLabel.Fprint(w, "error: ")
	fmt.Fprintln(w, err)
}

// printDiagnostic writes err with enough context for a human, or a model
// asked to correct itself, to find the problem. source is the text the error
// refers to and may be empty.
func printDiagnostic(w io.Writer, label, source string, err error) {
	errorLabel.Fprint(w, "error: ")
	if label != "" {
		fmt.Fprintf(w, "%s: ", label)
	}
	fmt.Fprintln(w, err)

	var syntaxErr *candidate.SyntaxError
	if errors.As(err, &syntaxErr) && source != "" {
		if excerpt := syntaxExcerpt(source, syntaxErr); excerpt != "" {
			dimStyle.Fprint(w, excerpt)
		}
	}
}

// syntaxExcerpt renders the offending line with a caret under the column.
func syntaxExcerpt(source string, se *candidate.SyntaxError) string {
	lines := strings.Split(source, "\n")
	if se.Line < 1 || se.Line > len(lines) {
		return ""
	}

	line := strings.TrimRight(lines[se.Line-1], "\r")
	col := se.Column
	if col < 1 {
		col = 1
	}
	if col > len(line)+1 {
		col = len(line) + 1
	}

	return fmt.Sprintf("  %4d | %s\n       | %s^\n", se.Line, line, strings.Repeat(" ", col-1))
}

// renderParsed writes results in the configured format.
func renderParsed(w io.Writer, format string, results []parsedFile) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return err
		}
		return enc.Close()
	default:
		renderParsedText(w, results)
		return nil
	}
}

func renderParsedText(w io.Writer, results []parsedFile) {
	for _, r := range results {
		headerStyle.Fprintf(w, "== %s", r.Path)
		fmt.Fprintf(w, " (%d %s", len(r.Candidates), plural(len(r.Candidates), "candidate", "candidates"))
		if r.Duplicates > 0 {
			fmt.Fprint(w, ", ")
			warningLabel.Fprintf(w, "%d %s dropped", r.Duplicates, plural(r.Duplicates, "duplicate", "duplicates"))
		}
		fmt.Fprintln(w, ")")

		for _, c := range r.Candidates {
			okLabel.Fprintf(w, "--- %s", c.Name)
			dimStyle.Fprintf(w, " [lines %d-%d] %s\n", c.Fragment.StartLine, c.Fragment.EndLine, c.ID)
			fmt.Fprintln(w, strings.TrimRight(c.Fragment.Source, "\n"))
		}
		fmt.Fprintln(w)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
