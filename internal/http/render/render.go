package render

import (
	"github.com/gin-gonic/gin"

	"quickmart.dev/app/internal/http/middleware"
	"quickmart.dev/app/pkg/view"
)

// PageData wraps every page's view model with the persistent chrome: the
// header strip and the one-shot flash.
type PageData struct {
	Title  string
	Flash  *view.Flash
	Header view.Header
	Data   any
}

// Page renders a named page template with the shared chrome filled in from
// the request context.
func Page(c *gin.Context, status int, name, title string, data any) {
	hdr := view.Header{CartCount: middleware.GetCartCount(c)}
	if s, ok := middleware.CurrentSession(c); ok {
		hdr.LoggedIn = true
		hdr.Email = s.User.Email
		hdr.IsAdmin = s.IsAdmin()
	}

	c.HTML(status, name, PageData{
		Title:  title,
		Flash:  middleware.GetFlash(c),
		Header: hdr,
		Data:   data,
	})
}
