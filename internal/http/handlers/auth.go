package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"quickmart.dev/app/internal/http/flash"
	"quickmart.dev/app/internal/http/middleware"
	"quickmart.dev/app/internal/http/render"
	"quickmart.dev/app/internal/http/session"
	"quickmart.dev/app/internal/http/validation"
	"quickmart.dev/app/internal/storeapi"
	"quickmart.dev/app/pkg/view"
)

type AuthHandler struct {
	API      *storeapi.Client
	Sessions *session.Codec
	Flash    *flash.Codec
	Log      *slog.Logger
	Secure   bool
}

func NewAuthHandler(api *storeapi.Client, sessions *session.Codec, fl *flash.Codec, log *slog.Logger, secure bool) *AuthHandler {
	return &AuthHandler{API: api, Sessions: sessions, Flash: fl, Log: log, Secure: secure}
}

type loginInput struct {
	Email    string `form:"email" binding:"required,email,max=255"`
	Password string `form:"password" binding:"required,max=255"`
}

type loginPage struct {
	Email    string
	Errors   validation.FieldErrors
	PageMsg  string
	ReturnTo string
}

func (h *AuthHandler) LoginGet(c *gin.Context) {
	if s, ok := middleware.CurrentSession(c); ok {
		c.Redirect(http.StatusFound, homeFor(s))
		return
	}
	render.Page(c, http.StatusOK, "login", "Login", loginPage{
		ReturnTo: normalizeReturnTo(c.Query("return_to")),
	})
}

func (h *AuthHandler) LoginPost(c *gin.Context) {
	returnTo := normalizeReturnTo(c.PostForm("return_to"))

	var in loginInput
	if err := c.ShouldBind(&in); err != nil {
		errs := validation.FromBindError(err, &in)
		render.Page(c, http.StatusBadRequest, "login", "Login", loginPage{
			Email:    in.Email,
			Errors:   errs,
			ReturnTo: returnTo,
		})
		return
	}

	res, err := h.API.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		// Credential rejection is page-level, not per-field. A transport
		// failure reads differently from a rejected login.
		status, msg := http.StatusUnauthorized, "Invalid credentials"
		if !isAPIError(err) {
			status, msg = http.StatusBadGateway, "Login failed: store unavailable"
		}
		render.Page(c, status, "login", "Login", loginPage{
			Email:    in.Email,
			PageMsg:  msg,
			ReturnTo: returnTo,
		})
		return
	}

	s := session.Session{ID: res.SessionID, User: res.User}
	if err := h.Sessions.Set(c, s); err != nil {
		render.Page(c, http.StatusInternalServerError, "login", "Login", loginPage{
			Email:   in.Email,
			PageMsg: "Login failed",
		})
		return
	}

	dest := homeFor(s)
	if returnTo != "" {
		dest = returnTo
	}
	render.RedirectWithFlash(c, h.Flash, dest, view.FlashSuccess, "Login successful!")
}

// Logout notifies the backend best-effort, then clears local state no matter
// what. A failed server call only makes a log line.
func (h *AuthHandler) Logout(c *gin.Context) {
	if s, ok := middleware.CurrentSession(c); ok {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		if err := h.API.Logout(ctx, s.ID); err != nil {
			h.Log.LogAttrs(c.Request.Context(), slog.LevelWarn, "logout_failed",
				slog.String("request_id", middleware.GetRequestID(c)),
				slog.Any("err", err),
			)
		}
	}

	h.Sessions.Clear(c)
	middleware.ClearCartCountCookie(c, h.Secure)
	c.Redirect(http.StatusFound, "/login")
}

// Home redirects by role: the root has no screen of its own.
func (h *AuthHandler) Home(c *gin.Context) {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	c.Redirect(http.StatusFound, homeFor(s))
}

func homeFor(s session.Session) string {
	if s.IsAdmin() {
		return "/admin/products"
	}
	return "/products"
}

func normalizeReturnTo(v string) string {
	v = strings.TrimSpace(v)
	// Same-site paths only; anything absolute is dropped.
	if v == "" || !strings.HasPrefix(v, "/") || strings.HasPrefix(v, "//") {
		return ""
	}
	return v
}

func isAPIError(err error) bool {
	_, ok := err.(*storeapi.APIError)
	return ok
}
