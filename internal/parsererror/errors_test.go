package parsererror

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ParseError
		expected string
	}{
		{
			name: "parse error with mode",
			err: &ParseError{
				Source: "transformer",
				Mode:   "order",
				Err:    errors.New("XML syntax error on line 1"),
			},
			expected: "transformer: failed to parse order xml: XML syntax error on line 1",
		},
		{
			name: "parse error without mode",
			err: &ParseError{
				Source: "transformer",
				Err:    errors.New("unexpected EOF"),
			},
			expected: "transformer: failed to parse xml: unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestParseError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	parseErr := &ParseError{
		Source: "transformer",
		Mode:   "refund",
		Err:    originalErr,
	}

	assert.Equal(t, originalErr, parseErr.Unwrap())
	assert.True(t, errors.Is(parseErr, originalErr))

	var target *ParseError
	assert.True(t, errors.As(parseErr, &target))
	assert.Equal(t, parseErr, target)
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ValidationError
		expected string
	}{
		{
			name: "basic validation error",
			err: &ValidationError{
				FilePath: "/path/to/payload.xml",
				Reason:   "document matches no known dialect",
			},
			expected: "validation failed for /path/to/payload.xml: document matches no known dialect",
		},
		{
			name: "validation error for date token",
			err: &ValidationError{
				FilePath: "run-token",
				Reason:   "no YYYY-MM-DD date found",
			},
			expected: "validation failed for run-token: no YYYY-MM-DD date found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestValidationError_Unwrap(t *testing.T) {
	underlyingErr := errors.New("underlying error")
	valErr := &ValidationError{
		FilePath: "/path/to/payload.xml",
		Reason:   "invalid format",
		Err:      underlyingErr,
	}

	assert.Implements(t, (*interface{ Unwrap() error })(nil), valErr)
	assert.Equal(t, underlyingErr, valErr.Unwrap())

	valErrNoWrap := &ValidationError{
		FilePath: "/path/to/payload.xml",
		Reason:   "invalid format",
	}
	assert.Nil(t, valErrNoWrap.Unwrap())
}

func TestInvalidFormatError(t *testing.T) {
	tests := []struct {
		name     string
		err      *InvalidFormatError
		expected string
	}{
		{
			name: "invalid format error with content snippet",
			err: &InvalidFormatError{
				FilePath:             "/path/to/file.xml",
				ExpectedFormat:       "Mirakl order/refund XML",
				ActualContentSnippet: "{\"responses\":",
				Msg:                  "file appears to be JSON",
			},
			expected: "invalid format in file '/path/to/file.xml': file appears to be JSON. Expected: Mirakl order/refund XML. Content snippet: '{\"responses\":'",
		},
		{
			name: "invalid format error without content snippet",
			err: &InvalidFormatError{
				FilePath:       "/path/to/file.xml",
				ExpectedFormat: "Mirakl order/refund XML",
				Msg:            "no dialect anchor found",
			},
			expected: "invalid format in file '/path/to/file.xml': no dialect anchor found. Expected: Mirakl order/refund XML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestErrorTypeAssertions(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected interface{}
	}{
		{
			name:     "ParseError type assertion",
			err:      &ParseError{Source: "transformer", Err: errors.New("test")},
			expected: &ParseError{},
		},
		{
			name:     "ValidationError type assertion",
			err:      &ValidationError{FilePath: "/p.xml", Reason: "invalid"},
			expected: &ValidationError{},
		},
		{
			name:     "InvalidFormatError type assertion",
			err:      &InvalidFormatError{FilePath: "/p.xml", ExpectedFormat: "XML", Msg: "test"},
			expected: &InvalidFormatError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.IsType(t, tt.expected, tt.err)
		})
	}
}
