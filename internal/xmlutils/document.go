package xmlutils

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// Element is a node in a parsed XML document tree. Tag keeps the name as
// parsed (namespace-expanded `{uri}local` or prefixed `pfx:local` when the
// document qualifies it); matching always goes through LocalName.
type Element struct {
	Tag      string
	Children []*Element

	text string
}

// Text returns the element's own text content, trimmed. Only character data
// before the first child element counts, matching the usual DOM notion of an
// element's text. Safe to call on a nil element.
func (e *Element) Text() string {
	if e == nil {
		return ""
	}
	return strings.TrimSpace(e.text)
}

// Parse builds an element tree from raw XML text and returns the root
// element. Malformed XML, an empty document, or trailing content after the
// root element all fail.
func Parse(xmlText string) (*Element, error) {
	decoder := xml.NewDecoder(strings.NewReader(xmlText))

	var root *Element
	var stack []*Element
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Tag: qualifiedName(t.Name)}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("junk after document element")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				cur := stack[len(stack)-1]
				if len(cur.Children) == 0 {
					cur.text += string(t)
				}
			}
		}
	}

	if root == nil {
		return nil, errors.New("no element found in document")
	}
	return root, nil
}

// LocalName strips any namespace qualifier from a tag: everything up to and
// including the last '}' (URI form), then everything up to and including the
// last ':' (prefixed form). A tag without either separator is returned
// unchanged.
func LocalName(tag string) string {
	if i := strings.LastIndex(tag, "}"); i >= 0 {
		tag = tag[i+1:]
	}
	if i := strings.LastIndex(tag, ":"); i >= 0 {
		tag = tag[i+1:]
	}
	return tag
}

// FindAll walks a slash-separated path of local tag names from root and
// returns every element of the final match set in document order. Each path
// segment matches direct children only; an empty intermediate set fails the
// whole search. Leading, trailing, and doubled slashes are tolerated.
func FindAll(root *Element, path string) []*Element {
	if root == nil {
		return nil
	}
	current := []*Element{root}
	for _, seg := range splitPath(path) {
		var next []*Element
		for _, el := range current {
			for _, child := range el.Children {
				if LocalName(child.Tag) == seg {
					next = append(next, child)
				}
			}
		}
		if len(next) == 0 {
			return nil
		}
		current = next
	}
	return current
}

// FindFirst returns the first element FindAll would yield, or nil when the
// path resolves nothing. Absence is never an error; callers supply their own
// defaults.
func FindFirst(root *Element, path string) *Element {
	matches := FindAll(root, path)
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

// FindAllTexts returns the trimmed text of every element the path resolves.
func FindAllTexts(root *Element, path string) []string {
	matches := FindAll(root, path)
	texts := make([]string, 0, len(matches))
	for _, el := range matches {
		texts = append(texts, el.Text())
	}
	return texts
}

func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segs = append(segs, p)
		}
	}
	return segs
}

func qualifiedName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return "{" + name.Space + "}" + name.Local
}
