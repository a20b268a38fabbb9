package candidate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Normalize:
// - Leading/trailing whitespace of the whole text is removed
// - CRLF, CR and LF inputs normalize identically
// - Trailing whitespace is stripped from every line
// - Runs of blank lines collapse to one blank line
// - Indentation is preserved
// - Normalize is idempotent
// - Same test with different trailing whitespace is Equivalent
// - Tests differing in assertion values are not Equivalent

func TestNormalize_TrimsWholeText(t *testing.T) {
	t.Parallel()

	messy := "  \n        \ndef test_example():\n    assert True\n    \n    \n        "

	result := Normalize(messy)

	assert.Equal(t, NormalizedForm("def test_example():\n    assert True"), result)
	assert.False(t, strings.HasPrefix(string(result), " "))
	assert.False(t, strings.HasSuffix(string(result), " "))
	assert.NotContains(t, string(result), "\n\n\n")
}

func TestNormalize_LineEndings(t *testing.T) {
	t.Parallel()

	windows := Normalize("def test_example():\r\n    assert True\r\n")
	mac := Normalize("def test_example():\r    assert True\r")
	unix := Normalize("def test_example():\n    assert True\n")

	assert.Equal(t, unix, windows)
	assert.Equal(t, unix, mac)
	assert.NotContains(t, string(windows), "\r")
}

func TestNormalize_StripsTrailingWhitespace(t *testing.T) {
	t.Parallel()

	result := Normalize("def test_example():   \n    assert True \t\n")

	for _, line := range strings.Split(string(result), "\n") {
		assert.Equal(t, strings.TrimRight(line, " \t"), line)
	}
	assert.Equal(t, NormalizedForm("def test_example():\n    assert True"), result)
}

func TestNormalize_CollapsesBlankLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  NormalizedForm
	}{
		{name: "two blank lines", input: "a = 1\n\n\nb = 2", want: "a = 1\n\nb = 2"},
		{name: "many blank lines", input: "a = 1\n\n\n\n\n\nb = 2", want: "a = 1\n\nb = 2"},
		{name: "whitespace-only lines", input: "a = 1\n  \n\t\nb = 2", want: "a = 1\n\nb = 2"},
		{name: "single blank line kept", input: "a = 1\n\nb = 2", want: "a = 1\n\nb = 2"},
		{name: "crlf blank lines", input: "a = 1\r\n\r\n\r\nb = 2", want: "a = 1\n\nb = 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_PreservesIndentation(t *testing.T) {
	t.Parallel()

	code := "\ndef test_example():\n    if True:\n        assert True\n    else:\n        assert False\n        "

	lines := strings.Split(string(Normalize(code)), "\n")

	require.Len(t, lines, 5)
	assert.Equal(t, "def test_example():", lines[0])
	assert.Equal(t, "    if True:", lines[1])
	assert.Equal(t, "        assert True", lines[2])
	assert.Equal(t, "    else:", lines[3])
	assert.Equal(t, "        assert False", lines[4])
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"   ",
		"def test_a():\r\n    assert True\r\n",
		"\n\n  def test_b():  \n\n\n\n      pass\t\n\n",
		"x = 1\r\r\ry = 2",
		"class TestX:\n    def test_y(self):\n        pass\n\n\n    def test_z(self):\n        pass\n",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(string(once))
		assert.Equal(t, once, twice, "input %q", in)
	}
}

func TestEquivalent(t *testing.T) {
	t.Parallel()

	first := "def test_add(self):\n    assert self.calc.add(2, 3) == 5\n"
	trailing := "def test_add(self):   \n    assert self.calc.add(2, 3) == 5    \n\n\n"
	different := "def test_add(self):\n    assert self.calc.add(2, 4) == 6\n"
	reindented := "def test_add(self):\n        assert self.calc.add(2, 3) == 5\n"

	assert.True(t, Equivalent(first, trailing))
	assert.True(t, Equivalent("def test_a():\r\n    assert True\r\n", "def test_a():\n    assert True\n"))
	assert.False(t, Equivalent(first, different))
	assert.False(t, Equivalent(first, reindented))
}
