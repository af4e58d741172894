// Package components renders the pieces a skin layout is assembled from.
//
// Components never build list item markup themselves. They decide which items
// to show and how, then hand each item to the Host through MakeListItem.
package components

import (
	"strings"

	"chameleon/internal/logging"
)

// Component is a renderable piece of a layout.
type Component interface {
	HTML() string
}

// ItemOptions controls how the host renders a list item. An empty LinkClass
// means the item's link carries no class attribute.
type ItemOptions struct {
	Tag       string
	LinkClass string
}

// ListItemRequest is one call to the host's list item renderer.
type ListItemRequest struct {
	Key        string
	Attributes map[string]string
	Options    ItemOptions
}

// ListRenderer turns list item requests into markup.
type ListRenderer interface {
	MakeListItem(req ListItemRequest) string
}

// Host is the template a component renders into. Lists are returned in the
// order the host wants them shown.
type Host interface {
	ListRenderer
	NewTalk() string
	PersonalTools() []string
	Notifications() []string
}

// Option configures a component at construction.
type Option func(*options)

type options struct {
	logger logging.Logger
	indent int
}

// WithLogger sets the logger used for configuration warnings.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithIndent sets the nesting level the component's markup starts at.
func WithIndent(level int) Option {
	return func(o *options) {
		if level > 0 {
			o.indent = level
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	o.logger = logging.OrNop(o.logger)
	return o
}

// indenter produces the newline-and-tabs prefix for each emitted line.
type indenter struct {
	level int
}

// next shifts the level by delta and returns the prefix for the new level.
func (i *indenter) next(delta int) string {
	i.level += delta
	if i.level < 0 {
		i.level = 0
	}
	return "\n" + strings.Repeat("\t", i.level)
}
