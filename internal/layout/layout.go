// Package layout loads the XML layout descriptors that describe which skin
// components a page is assembled from.
package layout

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrEmptyLayout is returned when a descriptor contains no root element.
var ErrEmptyLayout = errors.New("layout: empty descriptor")

// ComponentElement is the element name that marks a component node.
const ComponentElement = "component"

// Layout is a parsed layout descriptor.
type Layout struct {
	Path string
	Root *Node
}

// Parse reads a layout descriptor from r.
func Parse(r io.Reader) (*Layout, error) {
	var root Node
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyLayout
		}
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return &Layout{Root: &root}, nil
}

// ParseString is Parse for an in-memory descriptor.
func ParseString(descriptor string) (*Layout, error) {
	return Parse(strings.NewReader(descriptor))
}

// Load reads and parses the descriptor at path.
func Load(path string) (*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open layout %s: %w", path, err)
	}
	defer f.Close()

	l, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	l.Path = path
	return l, nil
}

// Components returns every component node of the given type, in document
// order. Type names compare case-insensitively.
func (l *Layout) Components(componentType string) []*Node {
	var out []*Node
	l.Root.walk(func(n *Node) bool {
		if n.IsComponent() && strings.EqualFold(n.Type(), componentType) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// AllComponents returns the outermost component nodes in document order.
// Components nested inside another component belong to their parent.
func (l *Layout) AllComponents() []*Node {
	var out []*Node
	l.Root.walk(func(n *Node) bool {
		if n.IsComponent() {
			out = append(out, n)
			return false
		}
		return true
	})
	return out
}
