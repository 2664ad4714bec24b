// Package parsererror defines the typed errors surfaced by the mapping and
// validation layers. The transformer's only hard failure is a ParseError;
// everything else degrades silently per the mapping rules.
package parsererror

import "fmt"

// ParseError represents a failure to parse an XML payload.
type ParseError struct {
	Source string
	Mode   string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Mode != "" {
		return fmt.Sprintf("%s: failed to parse %s xml: %v", e.Source, e.Mode, e.Err)
	}
	return fmt.Sprintf("%s: failed to parse xml: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation failure on an input file or value.
type ValidationError struct {
	FilePath string
	Reason   string
	Err      error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents an error where the input does not conform to
// any of the recognized XML dialects.
type InvalidFormatError struct {
	FilePath             string
	ExpectedFormat       string
	ActualContentSnippet string // Optional: a snippet of the actual content for debugging
	Msg                  string
}

func (e *InvalidFormatError) Error() string {
	if e.ActualContentSnippet != "" {
		return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s. Content snippet: '%s'",
			e.FilePath, e.Msg, e.ExpectedFormat, e.ActualContentSnippet)
	}
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}
