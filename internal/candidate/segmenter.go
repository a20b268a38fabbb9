package candidate

import (
	"strings"
)

// Segment splits generated output into one fragment per test function, in
// source order. It parses the text itself, so it works on raw model output
// that never went through Validate. A test function is one whose whole name
// matches test_[A-Za-z0-9_]+; other functions, test_ and test_café among
// them, are skipped like helpers.
//
// The parser only locates each def line. The end of a fragment is found by
// scanning the raw lines that follow it: blank lines and lines starting with
// a space or tab are included, and the first non-blank line at column zero
// ends the fragment. Decorator lines above the def are not part of the
// fragment. Two methods of the same class are not separated by this scan:
// the first fragment runs to the end of the class body.
//
// LF, CRLF and lone CR line breaks are accepted. Lone CRs come back as LF
// in fragment sources; CRLF lines keep their CR.
//
// Either every fragment is returned or an error is.
func Segment(text string) ([]TestFragment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyOutput
	}

	text = unifyLineBreaks(text)
	source := []byte(text)
	tree, err := parsePython(source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	nodes := testFunctions(tree.RootNode(), source, isTestName)
	if len(nodes) == 0 {
		return nil, ErrNoTestFunctions
	}

	lines := strings.Split(text, "\n")
	fragments := make([]TestFragment, 0, len(nodes))
	for _, node := range nodes {
		start := int(node.StartPosition().Row)
		end := scanBlockEnd(lines, start)
		fragments = append(fragments, TestFragment{
			Source:    strings.Join(lines[start:end+1], "\n"),
			StartLine: start + 1,
			EndLine:   end + 1,
		})
	}

	return fragments, nil
}

// scanBlockEnd returns the 0-based index of the last line belonging to the
// block declared on lines[start].
func scanBlockEnd(lines []string, start int) int {
	end := start
	for i := start + 1; i < len(lines); i++ {
		if !isBlank(lines[i]) && !isIndented(lines[i]) {
			break
		}
		end = i
	}
	return end
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func isIndented(line string) bool {
	return strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
}
