package components

import (
	"html"
	"strings"

	"chameleon/internal/layout"
)

// Layout attributes read by PersonalTools.
const (
	AttrHideNewtalkNotifier = "hideNewtalkNotifier"
	AttrShowEchoAs          = "showEchoAs"
)

const (
	defaultPersonalToolsID = "p-personal"
	itemIDPrefix           = "pt-"
	itemTag                = "div"
)

// EchoMode selects how notification entries are shown.
type EchoMode string

const (
	EchoIcons  EchoMode = "icons"
	EchoLinks  EchoMode = "links"
	EchoHidden EchoMode = "hidden"
)

// ParseEchoMode maps an attribute value to an EchoMode. Empty and unknown
// values yield EchoIcons; ok is false only for unknown values.
func ParseEchoMode(v string) (mode EchoMode, ok bool) {
	switch EchoMode(strings.ToLower(strings.TrimSpace(v))) {
	case "", EchoIcons:
		return EchoIcons, true
	case EchoLinks:
		return EchoLinks, true
	case EchoHidden:
		return EchoHidden, true
	}
	return EchoIcons, false
}

// PersonalToolsConfig is the typed form of a PersonalTools layout node.
type PersonalToolsConfig struct {
	HideNewtalkNotifier bool
	ShowEchoAs          EchoMode
	ID                  string
	Classes             []string
}

// DefaultPersonalToolsConfig returns the configuration of a bare node.
func DefaultPersonalToolsConfig() PersonalToolsConfig {
	return PersonalToolsConfig{
		ShowEchoAs: EchoIcons,
		ID:         defaultPersonalToolsID,
	}
}

// PersonalTools renders the user's personal navigation: the new talk page
// notice, the personal tool links and the notification entries.
type PersonalTools struct {
	host   Host
	config PersonalToolsConfig
	indent int
}

// NewPersonalTools reads its configuration from node. A nil node yields the
// default configuration.
func NewPersonalTools(host Host, node *layout.Node, opts ...Option) *PersonalTools {
	o := buildOptions(opts)

	config := DefaultPersonalToolsConfig()
	if node != nil {
		config.HideNewtalkNotifier = node.Bool(AttrHideNewtalkNotifier)
		raw := node.AttrOr(AttrShowEchoAs, "")
		mode, ok := ParseEchoMode(raw)
		if !ok {
			o.logger.Warn("PersonalTools: unknown %s value %q, showing notifications as %s", AttrShowEchoAs, raw, mode)
		}
		config.ShowEchoAs = mode
		config.ID = node.AttrOr("id", defaultPersonalToolsID)
		config.Classes = node.Classes()
	}

	return newPersonalTools(host, config, o)
}

// NewPersonalToolsWithConfig builds the component from an explicit config.
func NewPersonalToolsWithConfig(host Host, config PersonalToolsConfig, opts ...Option) *PersonalTools {
	config.ShowEchoAs, _ = ParseEchoMode(string(config.ShowEchoAs))
	if config.ID == "" {
		config.ID = defaultPersonalToolsID
	}
	return newPersonalTools(host, config, buildOptions(opts))
}

func newPersonalTools(host Host, config PersonalToolsConfig, o options) *PersonalTools {
	config.Classes = append([]string(nil), config.Classes...)
	return &PersonalTools{
		host:   host,
		config: config,
		indent: o.indent,
	}
}

// Config returns the component's configuration.
func (p *PersonalTools) Config() PersonalToolsConfig {
	c := p.config
	c.Classes = append([]string(nil), p.config.Classes...)
	return c
}

// Requests lists the list item requests HTML issues, in order: personal tools
// first, then notifications unless they are hidden.
func (p *PersonalTools) Requests() []ListItemRequest {
	tools := p.host.PersonalTools()
	var notifications []string
	if p.config.ShowEchoAs != EchoHidden {
		notifications = p.host.Notifications()
	}

	requests := make([]ListItemRequest, 0, len(tools)+len(notifications))
	for _, key := range tools {
		requests = append(requests, itemRequest(key, true))
	}
	for _, key := range notifications {
		requests = append(requests, itemRequest(key, p.config.ShowEchoAs == EchoLinks))
	}
	return requests
}

func itemRequest(key string, withLinkClass bool) ListItemRequest {
	id := itemIDPrefix + key
	req := ListItemRequest{
		Key:        key,
		Attributes: map[string]string{"id": id},
		Options:    ItemOptions{Tag: itemTag},
	}
	if withLinkClass {
		req.Options.LinkClass = id
	}
	return req
}

// HTML renders the component.
func (p *PersonalTools) HTML() string {
	in := &indenter{level: p.indent}
	var b strings.Builder

	classes := append([]string{"p-personal"}, p.config.Classes...)

	b.WriteString(in.next(0))
	b.WriteString("<!-- personal tools -->")
	b.WriteString(in.next(0))
	b.WriteString(`<div class="`)
	b.WriteString(html.EscapeString(strings.Join(classes, " ")))
	b.WriteString(`" id="`)
	b.WriteString(html.EscapeString(p.config.ID))
	b.WriteString(`">`)

	in.next(1)
	if notice := p.newtalkNotifier(); notice != "" {
		b.WriteString(in.next(0))
		b.WriteString(notice)
	}
	for _, req := range p.Requests() {
		b.WriteString(in.next(0))
		b.WriteString(p.host.MakeListItem(req))
	}

	b.WriteString(in.next(-1))
	b.WriteString("</div>")
	return b.String()
}

// newtalkNotifier returns the talk page notice, or "" when there is nothing
// to show. The host's newtalk value is markup and is inserted as is.
func (p *PersonalTools) newtalkNotifier() string {
	if p.config.HideNewtalkNotifier {
		return ""
	}
	newtalk := p.host.NewTalk()
	if newtalk == "" {
		return ""
	}
	return `<div class="newtalk-notifier"><span class="usermessage">` + newtalk + `</span></div>`
}
