// Package compare decides whether two localized variants of a message are
// structurally interchangeable and explains the differences when they are
// not.
//
// Wording never matters: literal text is dropped before comparing, and the
// remaining placeholders are sorted so translators may reorder them freely.
package compare

import "strings"

// Result is the outcome of comparing a source message with its translation.
type Result struct {
	Equal bool
	// Diagnostics is a comma-separated list of the structural differences.
	// It is empty when Equal is set.
	Diagnostics string
}

// Comparator compares a source message against a target message written in
// the same message syntax.
type Comparator interface {
	Compare(source, target string) (Result, error)
}

// Validator is implemented by comparators whose messages can be
// malformed. Validate reports why message cannot be parsed.
type Validator interface {
	Validate(message string) error
}

func result(diags []string) Result {
	return Result{Equal: len(diags) == 0, Diagnostics: strings.Join(diags, ", ")}
}
