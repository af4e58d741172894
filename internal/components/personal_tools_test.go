package components

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chameleon/internal/layout"
)

type fakeHost struct {
	newtalk       string
	tools         []string
	notifications []string
	calls         []ListItemRequest
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		tools:         []string{"foo", "bar"},
		notifications: []string{"notifications-alert", "notifications-notice"},
	}
}

func (h *fakeHost) NewTalk() string         { return h.newtalk }
func (h *fakeHost) PersonalTools() []string { return h.tools }
func (h *fakeHost) Notifications() []string { return h.notifications }

func (h *fakeHost) MakeListItem(req ListItemRequest) string {
	h.calls = append(h.calls, req)
	return fmt.Sprintf(`<div id="%s">%s</div>`, req.Attributes["id"], req.Key)
}

type warnRecorder struct {
	warnings []string
}

func (w *warnRecorder) Debug(string, ...any) {}
func (w *warnRecorder) Info(string, ...any)  {}
func (w *warnRecorder) Warn(format string, args ...any) {
	w.warnings = append(w.warnings, fmt.Sprintf(format, args...))
}
func (w *warnRecorder) Error(string, ...any) {}

// forEachSyntheticLayout runs fn once per testdata layout with a fresh copy of
// its PersonalTools node.
func forEachSyntheticLayout(t *testing.T, fn func(t *testing.T, node *layout.Node)) {
	t.Helper()
	files, err := filepath.Glob(filepath.Join("testdata", "*.xml"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	sort.Strings(files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			l, err := layout.Load(file)
			require.NoError(t, err)
			nodes := l.Components(TypePersonalTools)
			require.Len(t, nodes, 1)
			fn(t, nodes[0].Clone())
		})
	}
}

func withLinkClass(key string) ListItemRequest {
	return ListItemRequest{
		Key:        key,
		Attributes: map[string]string{"id": "pt-" + key},
		Options:    ItemOptions{Tag: "div", LinkClass: "pt-" + key},
	}
}

func withoutLinkClass(key string) ListItemRequest {
	return ListItemRequest{
		Key:        key,
		Attributes: map[string]string{"id": "pt-" + key},
		Options:    ItemOptions{Tag: "div"},
	}
}

func countClass(t *testing.T, markup, class string) int {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	return doc.Find("." + class).Length()
}

var newtalkMessages = []string{
	"foo",
	`You have <a href="/wiki/User_talk:Jo">new messages</a>`,
	"  ",
	"Neue Nachrichten für dich ✉",
}

func TestPersonalTools_ShowNewtalkNotifier(t *testing.T) {
	for _, newtalk := range newtalkMessages {
		t.Run(fmt.Sprintf("%q", newtalk), func(t *testing.T) {
			forEachSyntheticLayout(t, func(t *testing.T, node *layout.Node) {
				host := newFakeHost()
				host.newtalk = newtalk

				out := NewPersonalTools(host, node).HTML()

				assert.Equal(t, 1, countClass(t, out, "usermessage"))
				assert.Contains(t, out, `<span class="usermessage">`+newtalk+`</span>`)
			})
		})
	}
}

func TestPersonalTools_HideNewtalkNotifierValues(t *testing.T) {
	cases := map[string]int{
		"1":     0,
		"true":  0,
		"yes":   0,
		"On":    0,
		"0":     1,
		"false": 1,
		"no":    1,
		"":      1,
	}
	for value, notices := range cases {
		t.Run(fmt.Sprintf("%q", value), func(t *testing.T) {
			forEachSyntheticLayout(t, func(t *testing.T, node *layout.Node) {
				node.SetAttr(AttrHideNewtalkNotifier, value)
				for _, newtalk := range newtalkMessages {
					host := newFakeHost()
					host.newtalk = newtalk

					out := NewPersonalTools(host, node).HTML()

					assert.Equal(t, notices, countClass(t, out, "usermessage"), newtalk)
				}
			})
		})
	}
}

func TestPersonalTools_NoNewtalkMeansNoNotice(t *testing.T) {
	forEachSyntheticLayout(t, func(t *testing.T, node *layout.Node) {
		out := NewPersonalTools(newFakeHost(), node).HTML()

		assert.Equal(t, 0, countClass(t, out, "usermessage"))
		assert.NotContains(t, out, "newtalk-notifier")
	})
}

func TestPersonalTools_ShowEchoAsDefault(t *testing.T) {
	forEachSyntheticLayout(t, func(t *testing.T, node *layout.Node) {
		host := newFakeHost()

		NewPersonalTools(host, node).HTML()

		assert.Equal(t, []ListItemRequest{
			withLinkClass("foo"),
			withLinkClass("bar"),
			// Icons are rendered without link-class
			withoutLinkClass("notifications-alert"),
			withoutLinkClass("notifications-notice"),
		}, host.calls)
	})
}

func TestPersonalTools_ShowEchoAsIcons(t *testing.T) {
	forEachSyntheticLayout(t, func(t *testing.T, node *layout.Node) {
		node.SetAttr(AttrShowEchoAs, "icons")
		host := newFakeHost()

		NewPersonalTools(host, node).HTML()

		assert.Equal(t, []ListItemRequest{
			withLinkClass("foo"),
			withLinkClass("bar"),
			withoutLinkClass("notifications-alert"),
			withoutLinkClass("notifications-notice"),
		}, host.calls)
	})
}

func TestPersonalTools_ShowEchoAsLinks(t *testing.T) {
	forEachSyntheticLayout(t, func(t *testing.T, node *layout.Node) {
		node.SetAttr(AttrShowEchoAs, "links")
		host := newFakeHost()

		NewPersonalTools(host, node).HTML()

		assert.Equal(t, []ListItemRequest{
			withLinkClass("foo"),
			withLinkClass("bar"),
			// Links are rendered with link-class
			withLinkClass("notifications-alert"),
			withLinkClass("notifications-notice"),
		}, host.calls)
	})
}

func TestPersonalTools_ShowEchoAsHidden(t *testing.T) {
	forEachSyntheticLayout(t, func(t *testing.T, node *layout.Node) {
		node.SetAttr(AttrShowEchoAs, "hidden")
		host := newFakeHost()

		out := NewPersonalTools(host, node).HTML()

		assert.Equal(t, []ListItemRequest{
			withLinkClass("foo"),
			withLinkClass("bar"),
		}, host.calls)
		assert.NotContains(t, out, "notifications-")
	})
}

func TestPersonalTools_UnknownEchoModeFallsBackToIcons(t *testing.T) {
	node := layout.NewComponent(TypePersonalTools, layout.Attr{Name: AttrShowEchoAs, Value: "bubbles"})
	host := newFakeHost()
	warnings := &warnRecorder{}

	tools := NewPersonalTools(host, node, WithLogger(warnings))
	tools.HTML()

	assert.Equal(t, EchoIcons, tools.Config().ShowEchoAs)
	assert.Equal(t, withoutLinkClass("notifications-alert"), host.calls[2])
	require.Len(t, warnings.warnings, 1)
	assert.Contains(t, warnings.warnings[0], `"bubbles"`)
}

func TestPersonalTools_EchoModeIgnoresCase(t *testing.T) {
	node := layout.NewComponent(TypePersonalTools, layout.Attr{Name: AttrShowEchoAs, Value: " Links "})
	warnings := &warnRecorder{}

	tools := NewPersonalTools(newFakeHost(), node, WithLogger(warnings))

	assert.Equal(t, EchoLinks, tools.Config().ShowEchoAs)
	assert.Empty(t, warnings.warnings)
}

func TestPersonalTools_NoticePrecedesItems(t *testing.T) {
	host := newFakeHost()
	host.newtalk = `You have <a href="/wiki/User_talk:Jo">new messages</a>`

	out := NewPersonalTools(host, nil).HTML()

	notice := strings.Index(out, "usermessage")
	first := strings.Index(out, `id="pt-foo"`)
	last := strings.Index(out, `id="pt-notifications-notice"`)
	require.True(t, notice >= 0 && first >= 0 && last >= 0, out)
	assert.Less(t, notice, first)
	assert.Less(t, first, last)
	assert.Contains(t, out, `<a href="/wiki/User_talk:Jo">new messages</a>`)
}

func TestPersonalTools_Markup(t *testing.T) {
	host := newFakeHost()
	host.newtalk = "foo"
	host.notifications = nil

	out := NewPersonalTools(host, nil, WithIndent(1)).HTML()

	want := "\n\t<!-- personal tools -->" +
		"\n\t<div class=\"p-personal\" id=\"p-personal\">" +
		"\n\t\t<div class=\"newtalk-notifier\"><span class=\"usermessage\">foo</span></div>" +
		"\n\t\t<div id=\"pt-foo\">foo</div>" +
		"\n\t\t<div id=\"pt-bar\">bar</div>" +
		"\n\t</div>"
	assert.Equal(t, want, out)
}

func TestPersonalTools_WrapperTakesNodeIDAndClasses(t *testing.T) {
	node := layout.NewComponent(TypePersonalTools,
		layout.Attr{Name: "id", Value: "user-tools"},
		layout.Attr{Name: "class", Value: "navbar-nav pull-right"},
	)

	out := NewPersonalTools(newFakeHost(), node).HTML()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)
	wrapper := doc.Find("#user-tools")
	require.Equal(t, 1, wrapper.Length())
	assert.True(t, wrapper.HasClass("p-personal"))
	assert.True(t, wrapper.HasClass("pull-right"))
	assert.Equal(t, 4, wrapper.Children().Length())
}

func TestPersonalTools_RenderingIsRepeatable(t *testing.T) {
	host := newFakeHost()
	host.newtalk = "foo"
	tools := NewPersonalTools(host, nil)

	first := tools.HTML()
	second := tools.HTML()

	assert.Equal(t, first, second)
	require.Len(t, host.calls, 8)
	assert.Equal(t, host.calls[:4], host.calls[4:])
}

func TestPersonalTools_WithConfig(t *testing.T) {
	host := newFakeHost()
	host.newtalk = "foo"

	tools := NewPersonalToolsWithConfig(host, PersonalToolsConfig{
		HideNewtalkNotifier: true,
		ShowEchoAs:          "HIDDEN",
	})
	out := tools.HTML()

	assert.Equal(t, EchoHidden, tools.Config().ShowEchoAs)
	assert.Equal(t, "p-personal", tools.Config().ID)
	assert.Len(t, host.calls, 2)
	assert.Equal(t, 0, countClass(t, out, "usermessage"))
}

func TestParseEchoMode(t *testing.T) {
	cases := []struct {
		in   string
		mode EchoMode
		ok   bool
	}{
		{"", EchoIcons, true},
		{"icons", EchoIcons, true},
		{"links", EchoLinks, true},
		{"hidden", EchoHidden, true},
		{"HIDDEN", EchoHidden, true},
		{"badges", EchoIcons, false},
	}
	for _, tc := range cases {
		mode, ok := ParseEchoMode(tc.in)
		assert.Equal(t, tc.mode, mode, tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
	}
}
