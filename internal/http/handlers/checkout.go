package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"quickmart.dev/app/internal/http/flash"
	"quickmart.dev/app/internal/http/middleware"
	"quickmart.dev/app/internal/http/render"
	"quickmart.dev/app/internal/http/session"
	"quickmart.dev/app/internal/http/validation"
	"quickmart.dev/app/internal/payment"
	"quickmart.dev/app/internal/storeapi"
	"quickmart.dev/app/pkg/view"
)

type CheckoutHandler struct {
	API      *storeapi.Client
	Sessions *session.Codec
	Flash    *flash.Codec
	Secure   bool

	// ReceiptModal selects overlay vs standalone document rendering.
	ReceiptModal bool
}

func NewCheckoutHandler(api *storeapi.Client, sessions *session.Codec, fl *flash.Codec, secure, receiptModal bool) *CheckoutHandler {
	return &CheckoutHandler{API: api, Sessions: sessions, Flash: fl, Secure: secure, ReceiptModal: receiptModal}
}

type checkoutInput struct {
	PaymentMethod  string `form:"payment_method" binding:"required,oneof=wallet bank paypal"`
	PaymentDetails string `form:"payment_details" binding:"omitempty,max=255"`
	CardNumber     string `form:"card_number"`
	Expiry         string `form:"expiry"`
	CVC            string `form:"cvc"`
	IdemKey        string `form:"idempotency_key" binding:"omitempty,max=64"`
}

func paymentOptions() []view.PaymentOption {
	return []view.PaymentOption{
		{Code: "wallet", Label: "Digital Wallet"},
		{Code: "bank", Label: "Bank Debit"},
		{Code: "paypal", Label: "PayPal"},
	}
}

// Get handles GET /checkout. The order summary is a fresh cart fetch; a cart
// that cannot check out bounces straight back with the reason.
func (h *CheckoutHandler) Get(c *gin.Context) {
	s, _ := middleware.CurrentSession(c)

	cart, err := h.API.Cart(c.Request.Context(), s.ID)
	if err != nil {
		if expiredSession(c, err, h.Sessions, h.Flash, h.Secure) {
			return
		}
		render.RedirectWithFlash(c, h.Flash, "/cart", view.FlashError, "Failed to load cart")
		return
	}

	if len(cart.Items) == 0 {
		render.RedirectWithFlash(c, h.Flash, "/cart", view.FlashError, emptyCartTitle)
		return
	}
	if !cart.CanCheckout() {
		render.RedirectWithFlash(c, h.Flash, "/cart", view.FlashError, stockIssuesMsg)
		return
	}

	render.Page(c, http.StatusOK, "checkout", "Checkout", view.CheckoutPage{
		Summary:  summaryLines(cart),
		Total:    view.Money(cart.Total),
		Payments: paymentOptions(),
		Form: view.CheckoutForm{
			PaymentMethod: "wallet",
			IdemKey:       uuid.NewString(),
		},
	})
}

// Post handles POST /checkout. Card-format validation runs first and blocks
// the backend call entirely; the inline markers and the aggregate toast list
// exactly the rules that failed.
func (h *CheckoutHandler) Post(c *gin.Context) {
	s, _ := middleware.CurrentSession(c)

	var in checkoutInput
	if err := c.ShouldBind(&in); err != nil {
		errs := validation.FromBindError(err, &in)
		h.rerender(c, s.ID, in, errs)
		return
	}

	card := payment.Card{
		Number: in.CardNumber,
		Expiry: in.Expiry,
		CVC:    in.CVC,
	}.Masked()

	if res := payment.Validate(card); !res.OK() {
		setFlashNow(c, view.FlashError, res.Aggregate())
		in.CardNumber, in.Expiry, in.CVC = card.Number, card.Expiry, card.CVC
		h.rerender(c, s.ID, in, res.Fields)
		return
	}

	details := strings.TrimSpace(in.PaymentDetails)
	if details == "" {
		details = payment.MaskedDetails(card.Number)
	}

	res, err := h.API.Checkout(c.Request.Context(), s.ID, in.PaymentMethod, details)
	if err != nil {
		if expiredSession(c, err, h.Sessions, h.Flash, h.Secure) {
			return
		}
		setFlashNow(c, view.FlashError, storeapi.Detail(err, "Checkout failed"))
		h.rerender(c, s.ID, in, nil)
		return
	}

	middleware.ClearCartCountCookie(c, h.Secure)

	if res.Payment != nil && res.Payment.Receipt != nil {
		render.Page(c, http.StatusOK, "receipt", "Receipt", receiptDoc(res.Payment.Receipt, h.ReceiptModal))
		return
	}

	// No receipt in the response: confirmation page that moves on to order
	// history after a short pause. The toast lands on the orders page.
	middleware.SetFlashCookie(c, h.Flash, view.Flash{Kind: view.FlashSuccess, Message: "Order placed successfully!"})
	render.Page(c, http.StatusOK, "order_placed", "Order Placed", nil)
}

// rerender re-fetches the summary and shows the form again with errors. The
// summary fetch is best effort here; the form is the point.
func (h *CheckoutHandler) rerender(c *gin.Context, sessionID string, in checkoutInput, fieldErrs map[string]string) {
	page := view.CheckoutPage{
		Payments: paymentOptions(),
		Errors:   fieldErrs,
		Form: view.CheckoutForm{
			PaymentMethod:  in.PaymentMethod,
			PaymentDetails: in.PaymentDetails,
			CardNumber:     in.CardNumber,
			Expiry:         in.Expiry,
			CVC:            in.CVC,
			IdemKey:        in.IdemKey,
		},
	}

	if cart, err := h.API.Cart(c.Request.Context(), sessionID); err == nil {
		if len(cart.Items) == 0 {
			page.Empty = true
		} else {
			page.Summary = summaryLines(cart)
			page.Total = view.Money(cart.Total)
		}
	}

	render.Page(c, http.StatusBadRequest, "checkout", "Checkout", page)
}

func summaryLines(cart *storeapi.Cart) []view.SummaryLine {
	out := make([]view.SummaryLine, 0, len(cart.Items))
	for _, it := range cart.Items {
		out = append(out, view.SummaryLine{
			Name:      it.ProductName,
			Quantity:  it.Quantity,
			LineTotal: view.Money(it.LineTotal),
		})
	}
	return out
}
