package http

import (
	"html"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"chameleon/internal/components"
	"chameleon/internal/logging"
	"chameleon/internal/skin"
)

// PageHandler renders the configured layout.
type PageHandler struct {
	renderer    *skin.Renderer
	layoutFile  string
	contextFile string
	title       string
	logger      logging.Logger
}

// NewPageHandler creates a handler rendering layoutFile with the page data in
// contextFile. Both files are read per request so edits show up immediately.
func NewPageHandler(renderer *skin.Renderer, layoutFile, contextFile, title string, logger logging.Logger) *PageHandler {
	if title == "" {
		title = "Chameleon"
	}
	return &PageHandler{
		renderer:    renderer,
		layoutFile:  layoutFile,
		contextFile: contextFile,
		title:       title,
		logger:      logging.OrNop(logger),
	}
}

// HandlePage serves GET /.
func (h *PageHandler) HandlePage(c *gin.Context) {
	pc, ok := h.loadContext(c)
	if !ok {
		return
	}

	page, err := h.renderer.Render(c.Request.Context(), h.layoutFile, pc, skin.RenderOptions{})
	if err != nil {
		h.fail(c, "render page", err)
		return
	}

	c.HTML(http.StatusOK, "page", gin.H{
		"Title": h.title,
		"Body":  template.HTML(page.Body),
	})
}

// HandlePersonalTools serves GET /fragments/personal-tools. The query
// parameters showEchoAs, hideNewtalkNotifier and newtalk override the layout
// and page data for this request only. A newtalk override is plain text and is
// escaped before it reaches the notice.
func (h *PageHandler) HandlePersonalTools(c *gin.Context) {
	pc, ok := h.loadContext(c)
	if !ok {
		return
	}
	if newtalk, present := c.GetQuery("newtalk"); present {
		pc.NewTalk = html.EscapeString(newtalk)
	}

	attrs := map[string]string{}
	for _, name := range []string{components.AttrShowEchoAs, components.AttrHideNewtalkNotifier} {
		if value, present := c.GetQuery(name); present {
			attrs[name] = value
		}
	}

	page, err := h.renderer.Render(c.Request.Context(), h.layoutFile, pc, skin.RenderOptions{
		ComponentType: components.TypePersonalTools,
		Attributes:    attrs,
	})
	if err != nil {
		h.fail(c, "render personal tools", err)
		return
	}
	if page.Components == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "layout has no PersonalTools component"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page.Body))
}

func (h *PageHandler) loadContext(c *gin.Context) (skin.PageContext, bool) {
	pc, err := skin.LoadPageContext(h.contextFile)
	if err != nil {
		h.fail(c, "load page context", err)
		return skin.PageContext{}, false
	}
	return pc, true
}

func (h *PageHandler) fail(c *gin.Context, action string, err error) {
	logging.WithContext(c.Request.Context(), h.logger).Error("%s failed: %v", action, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": action + " failed"})
}
