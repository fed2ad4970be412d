package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"quickmart.dev/app/internal/http/flash"
	"quickmart.dev/app/internal/http/middleware"
	"quickmart.dev/app/internal/http/render"
	"quickmart.dev/app/internal/http/session"
	"quickmart.dev/app/internal/storeapi"
	"quickmart.dev/app/pkg/view"
)

// OrdersHandler renders order history and the receipt/invoice documents.
// The backend scopes the order list by role; this side only switches which
// chrome (customer or admin) wraps the same data.
type OrdersHandler struct {
	API      *storeapi.Client
	Sessions *session.Codec
	Flash    *flash.Codec
	Secure   bool

	ReceiptModal bool
}

func NewOrdersHandler(api *storeapi.Client, sessions *session.Codec, fl *flash.Codec, secure, receiptModal bool) *OrdersHandler {
	return &OrdersHandler{API: api, Sessions: sessions, Flash: fl, Secure: secure, ReceiptModal: receiptModal}
}

// List handles GET /orders and GET /admin/orders.
func (h *OrdersHandler) List(c *gin.Context) {
	s, _ := middleware.CurrentSession(c)

	orders, err := h.API.Orders(c.Request.Context(), s.ID)
	if err != nil {
		if expiredSession(c, err, h.Sessions, h.Flash, h.Secure) {
			return
		}
		setFlashNow(c, view.FlashError, "Failed to load orders")
		render.Page(c, http.StatusBadGateway, "orders", "Orders", view.OrdersPage{Admin: s.IsAdmin()})
		return
	}

	page := view.OrdersPage{Admin: s.IsAdmin()}
	if page.Admin {
		page.Statuses = storeapi.OrderStatuses
	}
	for _, o := range orders {
		page.Orders = append(page.Orders, orderCard(o))
	}

	title := "My Orders"
	if page.Admin {
		title = "All Orders"
	}
	render.Page(c, http.StatusOK, "orders", title, page)
}

// Receipt handles GET /orders/:id/receipt.
func (h *OrdersHandler) Receipt(c *gin.Context) {
	s, _ := middleware.CurrentSession(c)

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil || orderID <= 0 {
		render.RedirectWithFlash(c, h.Flash, "/orders", view.FlashError, "Receipt not available")
		return
	}

	rcpt, err := h.API.Receipt(c.Request.Context(), s.ID, orderID)
	if err != nil {
		if expiredSession(c, err, h.Sessions, h.Flash, h.Secure) {
			return
		}
		msg := "Failed to load receipt"
		if storeapi.IsNotFound(err) {
			msg = "Receipt not available"
		}
		render.RedirectWithFlash(c, h.Flash, "/orders", view.FlashError, msg)
		return
	}

	render.Page(c, http.StatusOK, "receipt", "Receipt", receiptDoc(rcpt, h.ReceiptModal))
}

// Invoice handles GET /admin/orders/:id/invoice.
func (h *OrdersHandler) Invoice(c *gin.Context) {
	s, _ := middleware.CurrentSession(c)

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil || orderID <= 0 {
		render.RedirectWithFlash(c, h.Flash, "/admin/orders", view.FlashError, "Invoice not available")
		return
	}

	inv, err := h.API.Invoice(c.Request.Context(), s.ID, orderID)
	if err != nil {
		if expiredSession(c, err, h.Sessions, h.Flash, h.Secure) {
			return
		}
		msg := "Failed to load invoice"
		if storeapi.IsNotFound(err) {
			msg = "Invoice not available"
		}
		render.RedirectWithFlash(c, h.Flash, "/admin/orders", view.FlashError, msg)
		return
	}

	render.Page(c, http.StatusOK, "invoice", "Invoice", invoiceDoc(inv, h.ReceiptModal))
}

func orderCard(o storeapi.Order) view.OrderCard {
	card := view.OrderCard{
		ID:         o.OrderID,
		CustomerID: o.CustomerID,
		Date:       o.OrderDate,
		Status:     o.Status,
		Total:      view.Money(o.Total),
	}
	for _, it := range o.Items {
		card.Items = append(card.Items, orderLine(it))
	}
	return card
}

func orderLine(it storeapi.OrderItem) view.OrderLine {
	return view.OrderLine{
		Name:      it.ProductName,
		Quantity:  it.Quantity,
		UnitPrice: view.Money(it.UnitPrice),
		LineTotal: view.Money(it.LineTotal),
	}
}

func receiptDoc(r *storeapi.Receipt, modal bool) view.ReceiptDoc {
	doc := view.ReceiptDoc{
		Number:        r.ReceiptNumber,
		OrderID:       r.OrderID,
		PaymentDate:   r.PaymentDate,
		CustomerName:  r.CustomerName,
		PaymentMethod: r.PaymentMethod,
		AmountPaid:    view.Money(r.AmountPaid),
		Status:        r.Status,
		Modal:         modal,
	}
	for _, it := range r.Items {
		doc.Items = append(doc.Items, orderLine(it))
	}
	return doc
}

func invoiceDoc(inv *storeapi.Invoice, modal bool) view.InvoiceDoc {
	doc := view.InvoiceDoc{
		Number:       inv.InvoiceNumber,
		OrderID:      inv.OrderID,
		IssueDate:    inv.IssueDate,
		DueDate:      inv.DueDate,
		CustomerName: inv.CustomerName,
		TotalAmount:  view.Money(inv.TotalAmount),
		Status:       inv.Status,
		Paid:         inv.Status == "Paid",
		Modal:        modal,
	}
	for _, it := range inv.Items {
		doc.Items = append(doc.Items, orderLine(it))
	}
	return doc
}
