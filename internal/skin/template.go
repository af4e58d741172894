// Package skin is the host side of the component contract: it holds the page
// data, renders list items and assembles layouts into pages.
package skin

import (
	"html"
	"sort"
	"strings"

	"chameleon/internal/components"
)

const defaultItemTag = "li"

var itemTags = map[string]bool{
	"li":   true,
	"div":  true,
	"span": true,
}

// Template exposes a page context to components. A Template is used by one
// render at a time.
type Template struct {
	ctx      PageContext
	items    map[string]Item
	requests int
}

var _ components.Host = (*Template)(nil)

// NewTemplate builds a template over pc.
func NewTemplate(pc PageContext) *Template {
	pc = SplitNotifications(pc)
	items := make(map[string]Item, len(pc.PersonalTools)+len(pc.Notifications))
	for _, item := range pc.PersonalTools {
		items[item.Key] = item
	}
	for _, item := range pc.Notifications {
		items[item.Key] = item
	}
	return &Template{ctx: pc, items: items}
}

// NewTalk returns the new talk page message markup.
func (t *Template) NewTalk() string {
	return t.ctx.NewTalk
}

// PersonalTools returns the personal tool keys in display order.
func (t *Template) PersonalTools() []string {
	return keys(t.ctx.PersonalTools)
}

// Notifications returns the notification keys in display order.
func (t *Template) Notifications() []string {
	return keys(t.ctx.Notifications)
}

// Requests reports how many list items have been rendered.
func (t *Template) Requests() int {
	return t.requests
}

// MakeListItem renders one list item. Keys without an item render as a
// placeholder link labelled with the key.
func (t *Template) MakeListItem(req components.ListItemRequest) string {
	t.requests++

	item, ok := t.items[req.Key]
	if !ok {
		item = Item{Key: req.Key}
	}
	text := item.Text
	if text == "" {
		text = req.Key
	}
	href := item.Href
	if href == "" {
		href = "#"
	}
	tag := req.Options.Tag
	if !itemTags[tag] {
		tag = defaultItemTag
	}

	var b strings.Builder
	b.WriteString("<")
	b.WriteString(tag)
	writeAttrs(&b, itemAttributes(req.Attributes, item))
	b.WriteString(`><a href="`)
	b.WriteString(html.EscapeString(href))
	b.WriteString(`"`)
	if req.Options.LinkClass != "" {
		writeAttr(&b, "class", req.Options.LinkClass)
	}
	if item.Title != "" {
		writeAttr(&b, "title", item.Title)
	}
	b.WriteString(">")
	b.WriteString(html.EscapeString(text))
	b.WriteString("</a></")
	b.WriteString(tag)
	b.WriteString(">")
	return b.String()
}

// itemAttributes merges the requested attributes with the item's own classes.
func itemAttributes(requested map[string]string, item Item) map[string]string {
	attrs := make(map[string]string, len(requested)+1)
	for k, v := range requested {
		attrs[k] = v
	}
	classes := strings.Fields(attrs["class"])
	classes = append(classes, strings.Fields(item.Class)...)
	if item.Active {
		classes = append(classes, "active")
	}
	if len(classes) > 0 {
		attrs["class"] = strings.Join(classes, " ")
	}
	return attrs
}

// writeAttrs writes id first, then the remaining attributes by name.
func writeAttrs(b *strings.Builder, attrs map[string]string) {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		if name != "id" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if id, ok := attrs["id"]; ok {
		writeAttr(b, "id", id)
	}
	for _, name := range names {
		writeAttr(b, name, attrs[name])
	}
}

func writeAttr(b *strings.Builder, name, value string) {
	b.WriteString(" ")
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(html.EscapeString(value))
	b.WriteString(`"`)
}

func keys(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Key)
	}
	return out
}
