// Package errors provides structured, actionable error messages.
//
// Each error carries a code (e.g. "E002") that maps to a short message, a
// detailed explanation and a category. Errors are printed for humans by the
// CLI with Format, or in a single line with FormatCompact.
//
// # Usage
//
//	err := errors.New("E101").
//	    WithDetail(`unknown action "triple"`).
//	    WithSuggestion("use inc, add:N, set:N, double or reset")
//
//	errors.PrintError(err)
package errors
