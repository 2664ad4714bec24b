// Package textutils provides string sanitization and token-extraction
// utilities shared by the scanner, the transformer and the API layer.
package textutils

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"
)

var (
	whitespaceRun  = regexp.MustCompile(`\s+`)
	folderBadChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)
	controlChars   = regexp.MustCompile(`[\x00-\x1f\x7f]`)
	forbiddenChars = regexp.MustCompile(`[<>:"/\\|?*]+`)
	dateToken      = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
)

// Errors returned by LastDateToken.
var (
	ErrNoDateToken      = errors.New("no YYYY-MM-DD date found")
	ErrInvalidDateToken = errors.New("found date-like text, but not a valid YYYY-MM-DD date")
)

// SanitizeFolderName makes a string safe for use as a directory name.
// Whitespace runs become single underscores and anything outside
// [A-Za-z0-9_-] is removed. An empty result defaults to "unknown".
func SanitizeFolderName(name string) string {
	s := strings.TrimSpace(name)
	s = whitespaceRun.ReplaceAllString(s, "_")
	s = folderBadChars.ReplaceAllString(s, "")
	if s == "" {
		return "unknown"
	}
	return s
}

// SanitizeFilename makes a string safe for use as a file name. Control
// characters are removed, filesystem-forbidden characters become spaces
// and whitespace runs collapse to a single space. An empty result
// defaults to "untitled".
func SanitizeFilename(name string) string {
	s := controlChars.ReplaceAllString(name, "")
	s = forbiddenChars.ReplaceAllString(s, " ")
	s = strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
	if s == "" {
		return "untitled"
	}
	return s
}

// SanitizeInvoiceKey reduces an invoice identifier to [A-Za-z0-9_-] so it
// can be embedded in output file names. Defaults to "unknown" when nothing
// survives.
func SanitizeInvoiceKey(invoice string) string {
	s := folderBadChars.ReplaceAllString(strings.TrimSpace(invoice), "")
	if s == "" {
		return "unknown"
	}
	return s
}

// NormalizeFolderKey canonicalizes a filter folder name for rule lookups:
// trimmed, lowercased, spaces replaced with underscores.
func NormalizeFolderKey(folder string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(folder)), " ", "_")
}

// NormalizePayload prepares an attachment payload for parsing: HTML
// entities are unescaped and all line endings become plain LF.
func NormalizePayload(payload string) string {
	s := html.UnescapeString(payload)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// LastDateToken returns the last substring of s matching YYYY-MM-DD that
// is a valid calendar date. Later tokens win over earlier ones so that a
// date embedded in a run identifier beats one in a surrounding path.
func LastDateToken(s string) (string, error) {
	matches := dateToken.FindAllString(s, -1)
	if len(matches) == 0 {
		return "", ErrNoDateToken
	}
	for i := len(matches) - 1; i >= 0; i-- {
		if _, err := time.Parse("2006-01-02", matches[i]); err == nil {
			return matches[i], nil
		}
	}
	return "", ErrInvalidDateToken
}
