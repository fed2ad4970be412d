package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"quickmart.dev/app/internal/config"
	"quickmart.dev/app/internal/http/flash"
	"quickmart.dev/app/internal/http/handlers"
	"quickmart.dev/app/internal/http/handlers/admin"
	"quickmart.dev/app/internal/http/middleware"
	"quickmart.dev/app/internal/http/session"
	"quickmart.dev/app/internal/storeapi"
	"quickmart.dev/app/templates"
)

// NewRouter builds the gin engine: middleware chain, template set and the
// full route table.
func NewRouter(cfg *config.Config, api *storeapi.Client, log *slog.Logger) *gin.Engine {
	sessions := session.NewCodec(cfg.CookieSecret, cfg.CookieSecure)
	flashes := flash.NewCodec(cfg.CookieSecret, "store_flash", cfg.CookieSecure)

	r := gin.New()
	r.SetHTMLTemplate(templates.Parse())

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.ErrorHandler(log))
	r.Use(middleware.FlashMiddleware(flashes))
	r.Use(middleware.SessionMiddleware(sessions))
	r.Use(middleware.CartCount())

	auth := handlers.NewAuthHandler(api, sessions, flashes, log, cfg.CookieSecure)
	products := handlers.NewProductsHandler(api)
	cart := handlers.NewCartHandler(api, sessions, flashes, cfg.CookieSecure)
	checkout := handlers.NewCheckoutHandler(api, sessions, flashes, cfg.CookieSecure, cfg.ReceiptModal)
	orders := handlers.NewOrdersHandler(api, sessions, flashes, cfg.CookieSecure, cfg.ReceiptModal)
	adminProducts := admin.NewProductsHandler(api, sessions, flashes, cfg.CookieSecure)
	adminOrders := admin.NewOrdersHandler(api, sessions, flashes, cfg.CookieSecure)

	r.GET("/", auth.Home)
	r.GET("/login", auth.LoginGet)
	r.POST("/login", auth.LoginPost)
	r.POST("/logout", auth.Logout)

	authed := r.Group("", middleware.RequireAuth(flashes))
	{
		authed.GET("/products", products.List)

		authed.GET("/cart", cart.Get)
		authed.POST("/cart/add", cart.Add)
		authed.POST("/cart/update", cart.Update)
		authed.POST("/cart/remove/:id", cart.Remove)

		authed.GET("/checkout", checkout.Get)
		authed.POST("/checkout", checkout.Post)

		authed.GET("/orders", orders.List)
		authed.GET("/orders/:id/receipt", orders.Receipt)
	}

	adm := r.Group("/admin", middleware.RequireAuth(flashes), middleware.RequireAdmin(flashes))
	{
		adm.GET("/products", adminProducts.List)
		adm.POST("/products/:id", adminProducts.Update)

		adm.GET("/orders", adminOrders.List)
		adm.POST("/orders/:id/status", adminOrders.UpdateStatus)
		adm.GET("/orders/:id/invoice", orders.Invoice)
	}

	return r
}
