package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"quickmart.dev/app/internal/http/flash"
	"quickmart.dev/app/internal/http/middleware"
	"quickmart.dev/app/internal/http/render"
	"quickmart.dev/app/internal/http/session"
	"quickmart.dev/app/internal/storeapi"
	"quickmart.dev/app/pkg/view"
)

const (
	emptyCartTitle   = "Add items to proceed to checkout"
	stockIssuesTitle = "Resolve stock issues in your cart before checkout"
	stockIssuesMsg   = "Some products are out of stock or exceeded stock limit"
)

// CartHandler handles cart display and mutations. Every write is one backend
// call followed by a redirect back to /cart, so the view is always a fresh
// fetch; nothing is patched incrementally.
type CartHandler struct {
	API      *storeapi.Client
	Sessions *session.Codec
	Flash    *flash.Codec
	Secure   bool
}

func NewCartHandler(api *storeapi.Client, sessions *session.Codec, fl *flash.Codec, secure bool) *CartHandler {
	return &CartHandler{API: api, Sessions: sessions, Flash: fl, Secure: secure}
}

// Get handles GET /cart.
func (h *CartHandler) Get(c *gin.Context) {
	s, _ := middleware.CurrentSession(c)

	cart, err := h.API.Cart(c.Request.Context(), s.ID)
	if err != nil {
		if expiredSession(c, err, h.Sessions, h.Flash, h.Secure) {
			return
		}
		setFlashNow(c, view.FlashError, "Failed to load cart")
		render.Page(c, http.StatusBadGateway, "cart", "Cart", view.CartPage{
			CheckoutTitle: emptyCartTitle,
		})
		return
	}

	middleware.SetCartCountCookie(c, cart.ItemCount, h.Secure)
	render.Page(c, http.StatusOK, "cart", "Cart", buildCartPage(cart))
}

// Add handles POST /cart/add.
func (h *CartHandler) Add(c *gin.Context) {
	s, _ := middleware.CurrentSession(c)

	productID, err := strconv.Atoi(strings.TrimSpace(c.PostForm("product_id")))
	if err != nil || productID <= 0 {
		render.RedirectWithFlash(c, h.Flash, "/products", view.FlashError, "Failed to add to cart")
		return
	}
	qty := 1
	if v := strings.TrimSpace(c.PostForm("quantity")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			qty = clamp(n, 1, 99)
		}
	}

	if err := h.API.AddToCart(c.Request.Context(), s.ID, productID, qty); err != nil {
		if expiredSession(c, err, h.Sessions, h.Flash, h.Secure) {
			return
		}
		render.RedirectWithFlash(c, h.Flash, "/products", view.FlashError,
			storeapi.Detail(err, "Failed to add to cart"))
		return
	}

	render.RedirectWithFlash(c, h.Flash, "/cart", view.FlashSuccess, "Added to cart!")
}

// Update handles POST /cart/update - sets an item's quantity.
func (h *CartHandler) Update(c *gin.Context) {
	s, _ := middleware.CurrentSession(c)

	productID, err := strconv.Atoi(strings.TrimSpace(c.PostForm("product_id")))
	if err != nil || productID <= 0 {
		render.RedirectWithFlash(c, h.Flash, "/cart", view.FlashError, "Failed to update cart")
		return
	}
	qty, err := strconv.Atoi(strings.TrimSpace(c.PostForm("quantity")))
	if err != nil || qty < 1 {
		render.RedirectWithFlash(c, h.Flash, "/cart", view.FlashError, "Failed to update cart")
		return
	}

	if err := h.API.UpdateCartItem(c.Request.Context(), s.ID, productID, qty); err != nil {
		if expiredSession(c, err, h.Sessions, h.Flash, h.Secure) {
			return
		}
		render.RedirectWithFlash(c, h.Flash, "/cart", view.FlashError, "Failed to update cart")
		return
	}

	c.Redirect(http.StatusFound, "/cart")
}

// Remove handles POST /cart/remove/:id.
func (h *CartHandler) Remove(c *gin.Context) {
	s, _ := middleware.CurrentSession(c)

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil || productID <= 0 {
		render.RedirectWithFlash(c, h.Flash, "/cart", view.FlashError, "Failed to remove item")
		return
	}

	if err := h.API.RemoveFromCart(c.Request.Context(), s.ID, productID); err != nil {
		if expiredSession(c, err, h.Sessions, h.Flash, h.Secure) {
			return
		}
		render.RedirectWithFlash(c, h.Flash, "/cart", view.FlashError, "Failed to remove item")
		return
	}

	render.RedirectWithFlash(c, h.Flash, "/cart", view.FlashSuccess, "Item removed")
}

// buildCartPage maps a cart snapshot to its view model, resolving the
// checkout gate: server can_checkout wins when supplied, else every line's
// stock_ok must hold.
func buildCartPage(cart *storeapi.Cart) view.CartPage {
	page := view.CartPage{
		ItemCount: cart.ItemCount,
	}

	if len(cart.Items) == 0 {
		page.CanCheckout = false
		page.CheckoutTitle = emptyCartTitle
		return page
	}

	for _, it := range cart.Items {
		page.Items = append(page.Items, view.CartRow{
			ProductID:    it.ProductID,
			Name:         it.ProductName,
			Quantity:     it.Quantity,
			UnitPrice:    view.Money(it.UnitPrice),
			LineTotal:    view.Money(it.LineTotal),
			ImageURL:     it.ImageURL,
			StockOK:      it.StockOK,
			StockMessage: it.StockMessage,
		})
	}
	page.Total = view.Money(cart.Total)
	page.CanCheckout = cart.CanCheckout()
	if !page.CanCheckout {
		page.CheckoutTitle = stockIssuesTitle
	}
	return page
}
