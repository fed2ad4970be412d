package admin

import (
	"net/http"
	"slices"
	"strconv"

	"github.com/gin-gonic/gin"

	"quickmart.dev/app/internal/http/flash"
	"quickmart.dev/app/internal/http/middleware"
	"quickmart.dev/app/internal/http/render"
	"quickmart.dev/app/internal/http/session"
	"quickmart.dev/app/internal/storeapi"
	"quickmart.dev/app/pkg/view"
)

// OrdersHandler is the admin order board: every order in the store with a
// status selector and an invoice link per card.
type OrdersHandler struct {
	API      *storeapi.Client
	Sessions *session.Codec
	Flash    *flash.Codec
	Secure   bool
}

func NewOrdersHandler(api *storeapi.Client, sessions *session.Codec, fl *flash.Codec, secure bool) *OrdersHandler {
	return &OrdersHandler{API: api, Sessions: sessions, Flash: fl, Secure: secure}
}

// List handles GET /admin/orders.
func (h *OrdersHandler) List(c *gin.Context) {
	s, _ := middleware.CurrentSession(c)

	orders, err := h.API.Orders(c.Request.Context(), s.ID)
	if err != nil {
		if expiredSession(c, err, h.Sessions, h.Flash, h.Secure) {
			return
		}
		setFlashNow(c, view.FlashError, "Failed to load orders")
		render.Page(c, http.StatusBadGateway, "orders", "All Orders", view.OrdersPage{
			Admin:    true,
			Statuses: storeapi.OrderStatuses,
		})
		return
	}

	page := view.OrdersPage{Admin: true, Statuses: storeapi.OrderStatuses}
	for _, o := range orders {
		card := view.OrderCard{
			ID:         o.OrderID,
			CustomerID: o.CustomerID,
			Date:       o.OrderDate,
			Status:     o.Status,
			Total:      view.Money(o.Total),
		}
		for _, it := range o.Items {
			card.Items = append(card.Items, view.OrderLine{
				Name:      it.ProductName,
				Quantity:  it.Quantity,
				UnitPrice: view.Money(it.UnitPrice),
				LineTotal: view.Money(it.LineTotal),
			})
		}
		page.Orders = append(page.Orders, card)
	}

	render.Page(c, http.StatusOK, "orders", "All Orders", page)
}

// UpdateStatus handles POST /admin/orders/:id/status.
func (h *OrdersHandler) UpdateStatus(c *gin.Context) {
	s, _ := middleware.CurrentSession(c)

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil || orderID <= 0 {
		render.RedirectWithFlash(c, h.Flash, "/admin/orders", view.FlashError, "Failed to update order status")
		return
	}
	status := c.PostForm("status")
	if !slices.Contains(storeapi.OrderStatuses, status) {
		render.RedirectWithFlash(c, h.Flash, "/admin/orders", view.FlashError, "Failed to update order status")
		return
	}

	if err := h.API.UpdateOrderStatus(c.Request.Context(), s.ID, orderID, status); err != nil {
		if expiredSession(c, err, h.Sessions, h.Flash, h.Secure) {
			return
		}
		render.RedirectWithFlash(c, h.Flash, "/admin/orders", view.FlashError,
			storeapi.Detail(err, "Failed to update order status"))
		return
	}

	render.RedirectWithFlash(c, h.Flash, "/admin/orders", view.FlashSuccess, "Order status updated!")
}
