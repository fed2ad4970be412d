package handlers

import (
	"github.com/gin-gonic/gin"

	"quickmart.dev/app/internal/http/flash"
	"quickmart.dev/app/internal/http/middleware"
	"quickmart.dev/app/internal/http/render"
	"quickmart.dev/app/internal/http/session"
	"quickmart.dev/app/internal/storeapi"
	"quickmart.dev/app/pkg/view"
)

// expiredSession handles a backend 401 on a page load: the local token is
// worthless, so clear it and send the user back to login. Returns true when
// it consumed the error.
func expiredSession(c *gin.Context, err error, sessions *session.Codec, fl *flash.Codec, secure bool) bool {
	if !storeapi.IsUnauthenticated(err) {
		return false
	}
	sessions.Clear(c)
	middleware.ClearCartCountCookie(c, secure)
	render.RedirectWithFlash(c, fl, "/login", view.FlashWarning, "Please log in to continue.")
	return true
}

// setFlashNow shows a toast on the page being rendered right now, without
// the redirect round trip.
func setFlashNow(c *gin.Context, kind view.FlashKind, msg string) {
	c.Set(middleware.CtxKeyFlash, &view.Flash{Kind: kind, Message: msg})
}

func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
