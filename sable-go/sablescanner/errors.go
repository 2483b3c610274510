package sablescanner

import "fmt"

// PosError is a lexical fault anchored to a 1-based source position.
// Snippet holds the text of the offending line when the scanner could
// recover it; Suggestion is an optional remediation hint.
type PosError struct {
	Line       int
	Column     int
	Msg        string
	Snippet    string
	Suggestion string
}

// Error satisfies the error interface.
func (e PosError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("Line %d, column %d: %s - Suggestion: %s", e.Line, e.Column, e.Msg, e.Suggestion)
	}
	return fmt.Sprintf("Line %d, column %d: %s", e.Line, e.Column, e.Msg)
}
