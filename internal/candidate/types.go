package candidate

// Role identifies what kind of source a CodeBlob is expected to hold.
type Role int

const (
	// RoleTest is an existing or generated test module; it must declare at least one test_ function.
	RoleTest Role = iota
	// RoleSource is the code under test; it only has to parse.
	RoleSource
)

// String returns the lowercase role name.
func (r Role) String() string {
	switch r {
	case RoleTest:
		return "test"
	case RoleSource:
		return "source"
	default:
		return "unknown"
	}
}

// CodeBlob is raw text believed to contain Python source.
type CodeBlob struct {
	Text string
	Role Role
}

// ValidatedCode is a CodeBlob that parsed cleanly and, for RoleTest, declares
// at least one test function. Only Validate constructs it.
type ValidatedCode struct {
	blob CodeBlob
}

// Text returns the validated source text, unchanged.
func (v *ValidatedCode) Text() string { return v.blob.Text }

// Role returns the role the text was validated against.
func (v *ValidatedCode) Role() Role { return v.blob.Role }

// TestFragment is one candidate test function, sliced verbatim out of a
// larger blob. Source is not guaranteed to parse on its own: methods keep the
// indentation of the class they came from.
type TestFragment struct {
	Source    string `json:"source" yaml:"source"`
	StartLine int    `json:"start_line" yaml:"start_line"` // 1-based line of the def keyword
	EndLine   int    `json:"end_line" yaml:"end_line"`     // 1-based, inclusive
}

// NormalizedForm is the whitespace-canonical text of a fragment. It is only
// meant for equality checks.
type NormalizedForm string

// Candidate is a fragment with its derived identity, ready for the
// filtration pipeline.
type Candidate struct {
	ID         string         `json:"id" yaml:"id"`
	Name       string         `json:"name" yaml:"name"`
	Fragment   TestFragment   `json:"fragment" yaml:"fragment"`
	Normalized NormalizedForm `json:"-" yaml:"-"`
}
