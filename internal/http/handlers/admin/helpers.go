package admin

import (
	"github.com/gin-gonic/gin"

	"quickmart.dev/app/internal/http/flash"
	"quickmart.dev/app/internal/http/middleware"
	"quickmart.dev/app/internal/http/render"
	"quickmart.dev/app/internal/http/session"
	"quickmart.dev/app/internal/storeapi"
	"quickmart.dev/app/pkg/view"
)

func expiredSession(c *gin.Context, err error, sessions *session.Codec, fl *flash.Codec, secure bool) bool {
	if !storeapi.IsUnauthenticated(err) {
		return false
	}
	sessions.Clear(c)
	middleware.ClearCartCountCookie(c, secure)
	render.RedirectWithFlash(c, fl, "/login", view.FlashWarning, "Please log in to continue.")
	return true
}

func setFlashNow(c *gin.Context, kind view.FlashKind, msg string) {
	c.Set(middleware.CtxKeyFlash, &view.Flash{Kind: kind, Message: msg})
}
