package http

import (
	"io"
	"log/slog"
	nethttp "net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickmart.dev/app/internal/config"
	"quickmart.dev/app/internal/http/flash"
	"quickmart.dev/app/internal/storeapi"
	"quickmart.dev/app/pkg/view"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const (
	loginBody = `{
		"message": "Login successful",
		"session_id": "sess-123",
		"user": {"user_id": 7, "email": "a@b.com", "role": "customer"}
	}`
	adminLoginBody = `{
		"message": "Login successful",
		"session_id": "sess-admin",
		"user": {"user_id": 1, "email": "admin@b.com", "role": "admin"}
	}`
)

// testApp wires the full engine against a fake store backend.
func testApp(t *testing.T, backend nethttp.Handler) (*gin.Engine, *config.Config) {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Addr:            ":0",
		StoreAPIURL:     srv.URL,
		CookieSecret:    []byte("test-secret"),
		RequestTimeout:  5 * time.Second,
		ShutdownTimeout: time.Second,
		ReceiptModal:    true,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	api := storeapi.New(srv.URL, cfg.RequestTimeout, log)
	return NewRouter(cfg, api, log), cfg
}

// login runs the real login flow and returns the resulting cookies.
func login(t *testing.T, engine *gin.Engine) []*nethttp.Cookie {
	t.Helper()
	form := url.Values{"email": {"a@b.com"}, "password": {"pw"}}
	req := httptest.NewRequest(nethttp.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, nethttp.StatusFound, w.Code)
	return w.Result().Cookies()
}

func withCookies(req *nethttp.Request, cookies []*nethttp.Cookie) *nethttp.Request {
	for _, ck := range cookies {
		if ck.MaxAge >= 0 && ck.Value != "" {
			req.AddCookie(ck)
		}
	}
	return req
}

func decodeFlash(t *testing.T, cfg *config.Config, cookies []*nethttp.Cookie) *view.Flash {
	t.Helper()
	codec := flash.NewCodec(cfg.CookieSecret, "store_flash", false)
	for _, ck := range cookies {
		if ck.Name == "store_flash" && ck.Value != "" && ck.MaxAge >= 0 {
			f, err := codec.Decode(ck.Value)
			require.NoError(t, err)
			return f
		}
	}
	return nil
}

func loginBackend(extra func(w nethttp.ResponseWriter, r *nethttp.Request) bool) nethttp.Handler {
	return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path == "/api/login" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(loginBody))
			return
		}
		if extra != nil && extra(w, r) {
			return
		}
		nethttp.NotFound(w, r)
	})
}

func TestRequireAuth_RedirectsToLoginWithReturnTo(t *testing.T) {
	engine, cfg := testApp(t, nethttp.NotFoundHandler())

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(nethttp.MethodGet, "/products", nil))

	assert.Equal(t, nethttp.StatusFound, w.Code)
	assert.Equal(t, "/login?return_to=%2Fproducts", w.Header().Get("Location"))

	f := decodeFlash(t, cfg, w.Result().Cookies())
	require.NotNil(t, f)
	assert.Equal(t, "Please log in to continue.", f.Message)
}

func TestLogin_CustomerRedirectsToProducts(t *testing.T) {
	engine, cfg := testApp(t, loginBackend(nil))

	form := url.Values{"email": {"a@b.com"}, "password": {"pw"}}
	req := httptest.NewRequest(nethttp.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, nethttp.StatusFound, w.Code)
	assert.Equal(t, "/products", w.Header().Get("Location"))

	names := map[string]bool{}
	for _, ck := range w.Result().Cookies() {
		names[ck.Name] = true
	}
	assert.True(t, names["store_session"])
	assert.True(t, names["store_user"])

	f := decodeFlash(t, cfg, w.Result().Cookies())
	require.NotNil(t, f)
	assert.Equal(t, "Login successful!", f.Message)
}

func TestLogin_AdminRedirectsToAdminPanel(t *testing.T) {
	engine, _ := testApp(t, nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(adminLoginBody))
	}))

	form := url.Values{"email": {"admin@b.com"}, "password": {"pw"}}
	req := httptest.NewRequest(nethttp.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, nethttp.StatusFound, w.Code)
	assert.Equal(t, "/admin/products", w.Header().Get("Location"))
}

func TestLogin_RejectedCredentialsStayOnLoginPage(t *testing.T) {
	engine, _ := testApp(t, nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(nethttp.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "Invalid email or password"}`))
	}))

	form := url.Values{"email": {"a@b.com"}, "password": {"wrong"}}
	req := httptest.NewRequest(nethttp.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, nethttp.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}

func TestCheckoutGet_BlockedCartBouncesBack(t *testing.T) {
	engine, cfg := testApp(t, loginBackend(func(w nethttp.ResponseWriter, r *nethttp.Request) bool {
		if r.URL.Path == "/api/cart" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"items": [{"product_id": 1, "product_name": "Widget", "quantity": 5, "stock_ok": false, "stock_message": "Only 2 left"}],
				"total": 50, "item_count": 5
			}`))
			return true
		}
		return false
	}))
	cookies := login(t, engine)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, withCookies(httptest.NewRequest(nethttp.MethodGet, "/checkout", nil), cookies))

	assert.Equal(t, nethttp.StatusFound, w.Code)
	assert.Equal(t, "/cart", w.Header().Get("Location"))

	f := decodeFlash(t, cfg, w.Result().Cookies())
	require.NotNil(t, f)
	assert.Equal(t, "Some products are out of stock or exceeded stock limit", f.Message)
}

func TestCheckoutGet_EmptyCartBouncesBack(t *testing.T) {
	engine, cfg := testApp(t, loginBackend(func(w nethttp.ResponseWriter, r *nethttp.Request) bool {
		if r.URL.Path == "/api/cart" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"items": [], "total": 0, "item_count": 0}`))
			return true
		}
		return false
	}))
	cookies := login(t, engine)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, withCookies(httptest.NewRequest(nethttp.MethodGet, "/checkout", nil), cookies))

	assert.Equal(t, nethttp.StatusFound, w.Code)
	assert.Equal(t, "/cart", w.Header().Get("Location"))

	f := decodeFlash(t, cfg, w.Result().Cookies())
	require.NotNil(t, f)
	assert.Equal(t, "Add items to proceed to checkout", f.Message)
}

func TestCheckoutPost_InvalidCardNeverReachesBackend(t *testing.T) {
	checkoutCalled := false
	engine, _ := testApp(t, loginBackend(func(w nethttp.ResponseWriter, r *nethttp.Request) bool {
		switch r.URL.Path {
		case "/api/cart":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"items": [{"product_id": 1, "product_name": "Widget", "quantity": 1, "unit_price": 10, "line_total": 10, "stock_ok": true}],
				"total": 10, "item_count": 1
			}`))
			return true
		case "/api/checkout":
			checkoutCalled = true
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"message": "should not happen"}`))
			return true
		}
		return false
	}))
	cookies := login(t, engine)

	form := url.Values{
		"payment_method": {"wallet"},
		"card_number":    {"1234"},
		"expiry":         {"13/2030"},
		"cvc":            {"12"},
	}
	req := httptest.NewRequest(nethttp.MethodPost, "/checkout", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, withCookies(req, cookies))

	assert.Equal(t, nethttp.StatusBadRequest, w.Code)
	assert.False(t, checkoutCalled, "backend checkout must not run on card-format failure")

	body := w.Body.String()
	assert.Contains(t, body, "Invalid card number (16 digits)")
	assert.Contains(t, body, "Invalid expiry date (MM/YYYY)")
	assert.Contains(t, body, "Invalid CVC/CVV2 (3 digits)")
}

func TestCheckoutPost_ValidCardPlacesOrder(t *testing.T) {
	var details string
	engine, _ := testApp(t, loginBackend(func(w nethttp.ResponseWriter, r *nethttp.Request) bool {
		switch r.URL.Path {
		case "/api/cart":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"items": [{"product_id": 1, "product_name": "Widget", "quantity": 1, "unit_price": 10, "line_total": 10, "stock_ok": true}],
				"total": 10, "item_count": 1
			}`))
			return true
		case "/api/checkout":
			_ = r.ParseForm()
			details = r.PostForm.Get("payment_details")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"message": "Order placed",
				"order": {"order_id": 42, "status": "Placed", "total": 10},
				"payment": {"payment_id": 5, "order_id": 42, "receipt": {
					"receipt_number": "R-0001", "order_id": 42, "customer_name": "A B",
					"amount_paid": 10, "payment_method": "wallet", "payment_date": "2026-08-30", "status": "Paid"
				}}
			}`))
			return true
		}
		return false
	}))
	cookies := login(t, engine)

	form := url.Values{
		"payment_method": {"wallet"},
		"card_number":    {"1234 1234 1234 1234"},
		"expiry":         {"122030"},
		"cvc":            {"123"},
	}
	req := httptest.NewRequest(nethttp.MethodPost, "/checkout", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, withCookies(req, cookies))

	assert.Equal(t, nethttp.StatusOK, w.Code)
	assert.Equal(t, "Card ****1234", details)

	// The receipt renders every supplied field verbatim.
	body := w.Body.String()
	assert.Contains(t, body, "Receipt R-0001")
	assert.Contains(t, body, "Order #42")
	assert.Contains(t, body, "Customer: A B")
	assert.Contains(t, body, "wallet")
	assert.Contains(t, body, "Paid")
	assert.Contains(t, body, "2026-08-30")
	assert.Contains(t, body, "Amount Paid: $10.00")

	// Badge cookie cleared on success.
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "store_cart_n" {
			assert.Negative(t, ck.MaxAge)
		}
	}
}

func TestAdminRoutes_CustomerIsBouncedHome(t *testing.T) {
	engine, cfg := testApp(t, loginBackend(nil))
	cookies := login(t, engine)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, withCookies(httptest.NewRequest(nethttp.MethodGet, "/admin/products", nil), cookies))

	assert.Equal(t, nethttp.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	f := decodeFlash(t, cfg, w.Result().Cookies())
	require.NotNil(t, f)
	assert.Equal(t, "Admin access required.", f.Message)
}

func TestLogout_ClearsSessionEvenWhenBackendFails(t *testing.T) {
	engine, _ := testApp(t, loginBackend(func(w nethttp.ResponseWriter, r *nethttp.Request) bool {
		if r.URL.Path == "/api/logout" {
			w.WriteHeader(nethttp.StatusInternalServerError)
			return true
		}
		return false
	}))
	cookies := login(t, engine)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, withCookies(httptest.NewRequest(nethttp.MethodPost, "/logout", nil), cookies))

	assert.Equal(t, nethttp.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	cleared := map[string]bool{}
	for _, ck := range w.Result().Cookies() {
		if ck.MaxAge < 0 {
			cleared[ck.Name] = true
		}
	}
	assert.True(t, cleared["store_session"])
	assert.True(t, cleared["store_user"])
}

func TestExpiredSession_RedirectsToLogin(t *testing.T) {
	engine, cfg := testApp(t, loginBackend(func(w nethttp.ResponseWriter, r *nethttp.Request) bool {
		if r.URL.Path == "/api/cart" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(nethttp.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail": "Invalid or expired session"}`))
			return true
		}
		return false
	}))
	cookies := login(t, engine)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, withCookies(httptest.NewRequest(nethttp.MethodGet, "/cart", nil), cookies))

	assert.Equal(t, nethttp.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	f := decodeFlash(t, cfg, w.Result().Cookies())
	require.NotNil(t, f)
	assert.Equal(t, "Please log in to continue.", f.Message)
}

func TestCartGet_EmptyCartRendersEmptyState(t *testing.T) {
	engine, _ := testApp(t, loginBackend(func(w nethttp.ResponseWriter, r *nethttp.Request) bool {
		if r.URL.Path == "/api/cart" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"items": [], "total": 0, "item_count": 0}`))
			return true
		}
		return false
	}))
	cookies := login(t, engine)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, withCookies(httptest.NewRequest(nethttp.MethodGet, "/cart", nil), cookies))

	assert.Equal(t, nethttp.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Your cart is empty.")
	assert.Contains(t, body, `<button disabled title="Add items to proceed to checkout">`)
	assert.NotContains(t, body, `href="/checkout"`)
}

func TestCartGet_StockIssueDisablesCheckout(t *testing.T) {
	engine, _ := testApp(t, loginBackend(func(w nethttp.ResponseWriter, r *nethttp.Request) bool {
		if r.URL.Path == "/api/cart" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"items": [
					{"product_id": 1, "product_name": "Widget", "quantity": 5, "unit_price": 10, "line_total": 50, "stock_ok": false, "stock_message": "Only 2 left in stock"},
					{"product_id": 2, "product_name": "Gadget", "quantity": 1, "unit_price": 5, "line_total": 5, "stock_ok": true}
				],
				"total": 55, "item_count": 6
			}`))
			return true
		}
		return false
	}))
	cookies := login(t, engine)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, withCookies(httptest.NewRequest(nethttp.MethodGet, "/cart", nil), cookies))

	assert.Equal(t, nethttp.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Only 2 left in stock")
	assert.Contains(t, body, `<button disabled title="Resolve stock issues in your cart before checkout">`)
	assert.NotContains(t, body, `href="/checkout"`)
	assert.Contains(t, body, "$55.00")
}

func TestCartGet_HealthyCartLinksToCheckout(t *testing.T) {
	engine, _ := testApp(t, loginBackend(func(w nethttp.ResponseWriter, r *nethttp.Request) bool {
		if r.URL.Path == "/api/cart" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"items": [{"product_id": 1, "product_name": "Widget", "quantity": 2, "unit_price": 10, "line_total": 20, "stock_ok": true}],
				"total": 20, "item_count": 2
			}`))
			return true
		}
		return false
	}))
	cookies := login(t, engine)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, withCookies(httptest.NewRequest(nethttp.MethodGet, "/cart", nil), cookies))

	assert.Equal(t, nethttp.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `href="/checkout"`)
}

func TestCartGet_RefreshesBadgeCookie(t *testing.T) {
	engine, _ := testApp(t, loginBackend(func(w nethttp.ResponseWriter, r *nethttp.Request) bool {
		if r.URL.Path == "/api/cart" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"items": [{"product_id": 1, "product_name": "Widget", "quantity": 3, "unit_price": 10, "line_total": 30, "stock_ok": true}],
				"total": 30, "item_count": 3
			}`))
			return true
		}
		return false
	}))
	cookies := login(t, engine)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, withCookies(httptest.NewRequest(nethttp.MethodGet, "/cart", nil), cookies))

	assert.Equal(t, nethttp.StatusOK, w.Code)

	var badge string
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "store_cart_n" {
			badge = ck.Value
		}
	}
	assert.Equal(t, "3", badge)
}
