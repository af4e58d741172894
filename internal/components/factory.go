package components

import (
	"errors"
	"fmt"
	"strings"

	"chameleon/internal/layout"
)

// ErrUnknownComponent is returned by New for types it cannot build.
var ErrUnknownComponent = errors.New("unknown component type")

// TypePersonalTools is the layout type name of the PersonalTools component.
const TypePersonalTools = "PersonalTools"

// New builds the component described by node.
func New(host Host, node *layout.Node, opts ...Option) (Component, error) {
	if !node.IsComponent() {
		return nil, fmt.Errorf("%w: node is not a component element", ErrUnknownComponent)
	}
	switch {
	case strings.EqualFold(node.Type(), TypePersonalTools):
		return NewPersonalTools(host, node, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownComponent, node.Type())
	}
}
