// Package gcs bridges the local extraction pipeline onto Google Cloud
// Storage. A run rooted at a gs:// prefix is mirrored into a temporary
// workspace, executed locally, and synced back; everything else passes
// through untouched.
package gcs

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var gsURIPattern = regexp.MustCompile(`^gs://([^/]+)/?(.*)$`)

// IsGSURI reports whether s is a gs://bucket[/key] URI.
func IsGSURI(s string) bool {
	return gsURIPattern.MatchString(s)
}

// SplitGSURI splits a gs:// URI into bucket and key; the key may be empty.
func SplitGSURI(uri string) (bucket, key string, err error) {
	m := gsURIPattern.FindStringSubmatch(uri)
	if m == nil {
		return "", "", fmt.Errorf("not a gs:// URI: %s", uri)
	}
	return m[1], m[2], nil
}

// PrefixBeforeWildcard returns the longest static prefix of an object-key
// pattern, cut at the last / before the first *, ? or [. It bounds the
// listing scope before per-key matching.
func PrefixBeforeWildcard(pattern string) string {
	cut := len(pattern)
	for _, w := range []byte{'*', '?', '['} {
		if i := strings.IndexByte(pattern, w); i >= 0 && i < cut {
			cut = i
		}
	}
	if cut == len(pattern) {
		return pattern
	}
	slash := strings.LastIndex(pattern[:cut], "/")
	if slash < 0 {
		return ""
	}
	return pattern[:slash+1]
}

// MatchKey matches an object key against a shell-style pattern. Object
// keys are flat strings, so * and ? cross / boundaries; [...] classes are
// honored, with [!...] negating and an unterminated [ treated literally.
func MatchKey(key, pattern string) bool {
	re, err := regexp.Compile(translatePattern(pattern))
	if err != nil {
		return false
	}
	return re.MatchString(key)
}

func translatePattern(pattern string) string {
	var b strings.Builder
	b.WriteString("^")
	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; c {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		case '[':
			j := i + 1
			if j < len(pattern) && (pattern[j] == '!' || pattern[j] == '^') {
				j++
			}
			if j < len(pattern) && pattern[j] == ']' {
				j++
			}
			for j < len(pattern) && pattern[j] != ']' {
				j++
			}
			if j >= len(pattern) {
				b.WriteString(regexp.QuoteMeta("["))
				break
			}
			class := strings.ReplaceAll(pattern[i+1:j], `\`, `\\`)
			if strings.HasPrefix(class, "!") {
				class = "^" + class[1:]
			}
			b.WriteString("[" + class + "]")
			i = j
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteString("$")
	return b.String()
}

// ConfigTarget maps a run root onto what Bridge.RunWithMirror expects:
// gs:// roots and explicit .json config paths pass through, local root
// directories point at their config.json.
func ConfigTarget(root string) string {
	if IsGSURI(root) || strings.HasSuffix(root, ".json") {
		return root
	}
	return filepath.Join(root, "config.json")
}

// contentTypeFor infers the upload content type from the key's extension;
// unknown extensions get no explicit type.
func contentTypeFor(key string) string {
	switch strings.ToLower(filepath.Ext(key)) {
	case ".json":
		return "application/json"
	case ".xml", ".txt", ".log":
		return "text/plain"
	default:
		return ""
	}
}
