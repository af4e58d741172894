package layout

import (
	"encoding/xml"
	"strings"
)

// Attr is a single node attribute.
type Attr struct {
	Name  string
	Value string
}

// Node is an element of a layout descriptor. Attribute order is preserved.
type Node struct {
	Name     string
	Attrs    []Attr
	Children []*Node
}

// NewComponent builds a detached component node of the given type.
func NewComponent(componentType string, attrs ...Attr) *Node {
	n := &Node{Name: ComponentElement}
	n.SetAttr("type", componentType)
	for _, a := range attrs {
		n.SetAttr(a.Name, a.Value)
	}
	return n
}

// UnmarshalXML decodes an element and its subtree, ignoring character data.
func (n *Node) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	n.Name = start.Name.Local
	for _, a := range start.Attr {
		n.Attrs = append(n.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
	}
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child := &Node{}
			if err := child.UnmarshalXML(d, t); err != nil {
				return err
			}
			n.Children = append(n.Children, child)
		case xml.EndElement:
			return nil
		}
	}
}

// IsComponent reports whether n is a component element.
func (n *Node) IsComponent() bool {
	return n != nil && n.Name == ComponentElement
}

// Type returns the component type, or "" for non-component nodes.
func (n *Node) Type() string {
	v, _ := n.Attr("type")
	return v
}

// Attr returns the named attribute and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets or replaces the named attribute.
func (n *Node) SetAttr(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// AttrOr returns the named attribute or def when it is absent.
func (n *Node) AttrOr(name, def string) string {
	if v, ok := n.Attr(name); ok {
		return v
	}
	return def
}

// Bool reads the named attribute as a lenient boolean: "1", "true", "on" and
// "yes" are true regardless of case and surrounding space. Everything else,
// including a missing attribute, is false.
func (n *Node) Bool(name string) bool {
	v, ok := n.Attr(name)
	if !ok {
		return false
	}
	return ParseBool(v)
}

// ParseBool applies the lenient boolean rules used for layout attributes.
func ParseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// Classes returns the whitespace separated values of the class attribute.
func (n *Node) Classes() []string {
	v, _ := n.Attr("class")
	return strings.Fields(v)
}

// ChildComponents returns the outermost component nodes below n, in document
// order, without n itself.
func (n *Node) ChildComponents() []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, child := range n.Children {
		child.walk(func(c *Node) bool {
			if c.IsComponent() {
				out = append(out, c)
				return false
			}
			return true
		})
	}
	return out
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		Name:  n.Name,
		Attrs: append([]Attr(nil), n.Attrs...),
	}
	for _, child := range n.Children {
		c.Children = append(c.Children, child.Clone())
	}
	return c
}

// walk visits n and its descendants depth-first. Returning false from visit
// skips the visited node's children.
func (n *Node) walk(visit func(*Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for _, child := range n.Children {
		child.walk(visit)
	}
}
