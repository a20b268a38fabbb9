package candidate

import (
	"strings"
)

// Input field names, shared with the generation strategies.
const (
	FieldExistingTestClass = "existing_test_class"
	FieldClassUnderTest    = "class_under_test"
	FieldCompletionPrompt  = "completion_prompt"
)

// Inputs bundles the named inputs of one generation request. Nil pointers
// mean the field is absent.
type Inputs struct {
	ExistingTestClass string
	ClassUnderTest    *string
	CompletionPrompt  *string
}

// Validate checks that blob is non-empty Python that parses cleanly. For
// RoleTest it also requires at least one function named test_*, at any
// nesting depth.
func Validate(blob CodeBlob) (*ValidatedCode, error) {
	if strings.TrimSpace(blob.Text) == "" {
		return nil, ErrEmptyInput
	}

	source := []byte(unifyLineBreaks(blob.Text))
	tree, err := parsePython(source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	if blob.Role == RoleTest && len(testFunctions(tree.RootNode(), source, hasTestPrefix)) == 0 {
		return nil, ErrNoTestFunction
	}

	return &ValidatedCode{blob: blob}, nil
}

// ValidatePrompt checks a free-text instruction. It only has to be non-empty.
func ValidatePrompt(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyPrompt
	}
	return text, nil
}

// ValidateInputs validates every present field of in and returns the
// validated text keyed by field name. The first failing field aborts the
// call with a *ValidationFailedError.
func ValidateInputs(in Inputs) (map[string]string, error) {
	result := make(map[string]string, 3)

	validated, err := Validate(CodeBlob{Text: in.ExistingTestClass, Role: RoleTest})
	if err != nil {
		return nil, &ValidationFailedError{Field: FieldExistingTestClass, Err: err}
	}
	result[FieldExistingTestClass] = validated.Text()

	if in.ClassUnderTest != nil {
		validated, err := Validate(CodeBlob{Text: *in.ClassUnderTest, Role: RoleSource})
		if err != nil {
			return nil, &ValidationFailedError{Field: FieldClassUnderTest, Err: err}
		}
		result[FieldClassUnderTest] = validated.Text()
	}

	if in.CompletionPrompt != nil {
		prompt, err := ValidatePrompt(*in.CompletionPrompt)
		if err != nil {
			return nil, &ValidationFailedError{Field: FieldCompletionPrompt, Err: err}
		}
		result[FieldCompletionPrompt] = prompt
	}

	return result, nil
}
