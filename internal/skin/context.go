package skin

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// NotificationKeyPrefix marks the notification entries the wiki mixes into
// the personal tools list.
const NotificationKeyPrefix = "notifications-"

// Item is one personal tool or notification link.
type Item struct {
	Key    string `yaml:"key"`
	Text   string `yaml:"text,omitempty"`
	Href   string `yaml:"href,omitempty"`
	Title  string `yaml:"title,omitempty"`
	Class  string `yaml:"class,omitempty"`
	Active bool   `yaml:"active,omitempty"`
}

// PageContext is the data a page is rendered from.
type PageContext struct {
	// NewTalk is the new talk page message markup; empty when there is none.
	NewTalk       string `yaml:"newtalk"`
	PersonalTools []Item `yaml:"personal_tools"`
	Notifications []Item `yaml:"notifications"`
}

// LoadPageContext reads a YAML page context from path.
func LoadPageContext(path string) (PageContext, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PageContext{}, fmt.Errorf("read page context: %w", err)
	}
	var pc PageContext
	if err := yaml.Unmarshal(data, &pc); err != nil {
		return PageContext{}, fmt.Errorf("parse page context %s: %w", path, err)
	}
	return pc, nil
}

// SplitNotifications moves notification entries out of the personal tools
// when the context carries no separate notification list. Both lists keep
// their relative order.
func SplitNotifications(pc PageContext) PageContext {
	if pc.Notifications != nil {
		return pc
	}
	tools := make([]Item, 0, len(pc.PersonalTools))
	var notifications []Item
	for _, item := range pc.PersonalTools {
		if strings.HasPrefix(item.Key, NotificationKeyPrefix) {
			notifications = append(notifications, item)
			continue
		}
		tools = append(tools, item)
	}
	pc.PersonalTools = tools
	pc.Notifications = notifications
	return pc
}
