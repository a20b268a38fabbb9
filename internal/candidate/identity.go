package candidate

import (
	"regexp"
	"strings"
)

var (
	testDeclPattern = regexp.MustCompile(`^[ \t]*(?:async[ \t]+)?def[ \t]+(test_[A-Za-z0-9_]+)[ \t]*\(`)
	testNamePattern = regexp.MustCompile(`^test_[A-Za-z0-9_]+$`)
)

// isTestName reports whether name is a test name ExtractName can recover.
func isTestName(name string) bool {
	return testNamePattern.MatchString(name)
}

// ExtractName returns the name of the first test_* declaration in f. Decorator
// lines and indentation before it are skipped. Only single-line def headers
// are recognized.
func ExtractName(f TestFragment) (string, error) {
	return ExtractNameFromSource(f.Source)
}

// ExtractNameFromSource is ExtractName for text that did not come from Segment.
func ExtractNameFromSource(text string) (string, error) {
	for _, line := range strings.Split(text, "\n") {
		if m := testDeclPattern.FindStringSubmatch(line); m != nil {
			return m[1], nil
		}
	}
	return "", ErrNameNotFound
}
