// Package strategy describes the generation strategies the ensemble runs and
// the named inputs each one needs. It does not talk to any model provider.
package strategy

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mvp-joe/pytestgen/internal/candidate"
)

var (
	// ErrUnknownStrategy indicates a strategy name that is not registered
	ErrUnknownStrategy = errors.New("unknown generation strategy")

	// ErrMissingInput indicates a required input field was not supplied
	ErrMissingInput = errors.New("required input is missing")

	// ErrUnexpectedInput indicates an input field the strategy does not accept
	ErrUnexpectedInput = errors.New("input is not accepted by this strategy")
)

// Strategy names.
const (
	ExtendCoverage    = "extend_coverage"
	CornerCases       = "corner_cases"
	ExtendTest        = "extend_test"
	StatementComplete = "statement_complete"
)

// Strategy is one way of asking a model for new test functions.
type Strategy struct {
	Name        string
	Instruction string
	Inputs      []string // accepted input fields; all are required
	Output      string   // name of the field holding the generated functions
}

var registry = map[string]Strategy{
	ExtendCoverage: {
		Name: ExtendCoverage,
		Instruction: "Write additional pytest test functions to increase test coverage, " +
			"especially for corner cases missed by the original tests.",
		Inputs: []string{candidate.FieldExistingTestClass, candidate.FieldClassUnderTest},
		Output: "new_test_functions",
	},
	CornerCases: {
		Name: CornerCases,
		Instruction: "Write additional pytest test functions that specifically target corner cases " +
			"and edge cases missed by the original test suite.",
		Inputs: []string{candidate.FieldExistingTestClass, candidate.FieldClassUnderTest},
		Output: "corner_case_tests",
	},
	ExtendTest: {
		Name: ExtendTest,
		Instruction: "Write additional pytest test functions to extend the existing test class " +
			"with extra corner cases, based only on the test class structure.",
		Inputs: []string{candidate.FieldExistingTestClass},
		Output: "extended_tests",
	},
	StatementComplete: {
		Name:        StatementComplete,
		Instruction: "Complete the following statement by writing additional test functions.",
		Inputs: []string{
			candidate.FieldExistingTestClass,
			candidate.FieldClassUnderTest,
			candidate.FieldCompletionPrompt,
		},
		Output: "completed_tests",
	},
}

// Lookup returns the strategy registered under name.
func Lookup(name string) (Strategy, error) {
	s, ok := registry[name]
	if !ok {
		return Strategy{}, fmt.Errorf("%w: %q (valid: %v)", ErrUnknownStrategy, name, Names())
	}
	return s, nil
}

// All returns every strategy, sorted by name.
func All() []Strategy {
	all := make([]Strategy, 0, len(registry))
	for _, s := range registry {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}

// Names returns every strategy name, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Accepts reports whether field is one of the strategy's inputs.
func (s Strategy) Accepts(field string) bool {
	for _, f := range s.Inputs {
		if f == field {
			return true
		}
	}
	return false
}

// Validate checks that in carries exactly the fields the strategy takes and
// then validates each of them. Failures are *candidate.ValidationFailedError.
func (s Strategy) Validate(in candidate.Inputs) (map[string]string, error) {
	present := map[string]bool{
		candidate.FieldExistingTestClass: true,
		candidate.FieldClassUnderTest:    in.ClassUnderTest != nil,
		candidate.FieldCompletionPrompt:  in.CompletionPrompt != nil,
	}

	for _, field := range []string{candidate.FieldClassUnderTest, candidate.FieldCompletionPrompt} {
		switch {
		case s.Accepts(field) && !present[field]:
			return nil, &candidate.ValidationFailedError{Field: field, Err: ErrMissingInput}
		case !s.Accepts(field) && present[field]:
			return nil, &candidate.ValidationFailedError{
				Field: field,
				Err:   fmt.Errorf("%w: %s", ErrUnexpectedInput, s.Name),
			}
		}
	}

	return candidate.ValidateInputs(in)
}
