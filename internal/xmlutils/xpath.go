// Package xmlutils provides XML parsing and field-location utilities used
// throughout the application. The element tree in document.go backs the
// transformer's locator; the xmlpath helpers here back cheap whole-document
// probes such as dialect validation.
package xmlutils

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/xmlpath.v2"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// LoadXMLFile loads an XML file and returns the xmlpath root node
func LoadXMLFile(xmlFilePath string) (*xmlpath.Node, error) {
	file, err := os.Open(xmlFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XML file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	root, err := xmlpath.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML file: %w", err)
	}

	return root, nil
}

// ParseString parses raw XML text into an xmlpath root node
func ParseString(xmlText string) (*xmlpath.Node, error) {
	root, err := xmlpath.Parse(strings.NewReader(xmlText))
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	return root, nil
}

// ExtractFromXML extracts values from an XML node using an XPath expression
func ExtractFromXML(root *xmlpath.Node, xpath string) ([]string, error) {
	path, err := xmlpath.Compile(xpath)
	if err != nil {
		return nil, fmt.Errorf("failed to compile XPath: %w", err)
	}

	var values []string
	iter := path.Iter(root)
	for iter.Next() {
		values = append(values, iter.Node().String())
	}

	return values, nil
}

// AnyPathExists reports whether at least one of the XPath expressions matches
// a node under root. Invalid expressions count as non-matching.
func AnyPathExists(root *xmlpath.Node, xpaths ...string) bool {
	if root == nil {
		return false
	}
	for _, expr := range xpaths {
		path, err := xmlpath.Compile(expr)
		if err != nil {
			log.WithError(err).WithField("xpath", expr).Warn("Skipping invalid probe expression")
			continue
		}
		if path.Exists(root) {
			return true
		}
	}
	return false
}

// Snippet collapses whitespace runs in text and truncates it for use in
// diagnostics and log fields.
func Snippet(text string, max int) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	if max <= 0 || len(collapsed) <= max {
		return collapsed
	}
	return collapsed[:max] + "..."
}
