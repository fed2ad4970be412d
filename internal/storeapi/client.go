package storeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client is a typed client for the store backend, one method per endpoint.
// Writes are form-encoded, the session token travels as a query parameter,
// and no call is retried or deduplicated; a failure is the caller's to show.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

func New(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: log,
	}
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	form := url.Values{"email": {email}, "password": {password}}
	var out LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/login", nil, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout invalidates the session server-side. Callers treat this as
// best-effort: local state is cleared regardless of the outcome.
func (c *Client) Logout(ctx context.Context, sessionID string) error {
	q := url.Values{"session_id": {sessionID}}
	return c.do(ctx, http.MethodPost, "/api/logout", q, nil, nil)
}

func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Cart(ctx context.Context, sessionID string) (*Cart, error) {
	q := url.Values{"session_id": {sessionID}}
	var out Cart
	if err := c.do(ctx, http.MethodGet, "/api/cart", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddToCart(ctx context.Context, sessionID string, productID, quantity int) error {
	q := url.Values{"session_id": {sessionID}}
	form := url.Values{
		"product_id": {strconv.Itoa(productID)},
		"quantity":   {strconv.Itoa(quantity)},
	}
	return c.do(ctx, http.MethodPost, "/api/cart/add", q, form, nil)
}

func (c *Client) UpdateCartItem(ctx context.Context, sessionID string, productID, quantity int) error {
	q := url.Values{"session_id": {sessionID}}
	form := url.Values{
		"product_id": {strconv.Itoa(productID)},
		"quantity":   {strconv.Itoa(quantity)},
	}
	return c.do(ctx, http.MethodPut, "/api/cart/update", q, form, nil)
}

func (c *Client) RemoveFromCart(ctx context.Context, sessionID string, productID int) error {
	q := url.Values{"session_id": {sessionID}}
	path := fmt.Sprintf("/api/cart/remove/%d", productID)
	return c.do(ctx, http.MethodDelete, path, q, nil, nil)
}

func (c *Client) Checkout(ctx context.Context, sessionID, paymentMethod, paymentDetails string) (*CheckoutResult, error) {
	q := url.Values{"session_id": {sessionID}}
	form := url.Values{
		"payment_method":  {paymentMethod},
		"payment_details": {paymentDetails},
	}
	var out CheckoutResult
	if err := c.do(ctx, http.MethodPost, "/api/checkout", q, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Orders returns the caller's orders; the backend scopes the list by role
// (customers see their own, admins see everything).
func (c *Client) Orders(ctx context.Context, sessionID string) ([]Order, error) {
	q := url.Values{"session_id": {sessionID}}
	var out []Order
	if err := c.do(ctx, http.MethodGet, "/api/orders", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Receipt(ctx context.Context, sessionID string, orderID int) (*Receipt, error) {
	q := url.Values{"session_id": {sessionID}}
	path := fmt.Sprintf("/api/orders/%d/receipt", orderID)
	var out Receipt
	if err := c.do(ctx, http.MethodGet, path, q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Invoice(ctx context.Context, sessionID string, orderID int) (*Invoice, error) {
	q := url.Values{"session_id": {sessionID}}
	path := fmt.Sprintf("/api/orders/%d/invoice", orderID)
	var out Invoice
	if err := c.do(ctx, http.MethodGet, path, q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, sessionID string, productID int, upd ProductUpdate) error {
	q := url.Values{"session_id": {sessionID}}
	form := url.Values{
		"name":        {upd.Name},
		"price":       {strconv.FormatFloat(upd.Price, 'f', -1, 64)},
		"stock":       {strconv.Itoa(upd.Stock)},
		"description": {upd.Description},
	}
	path := fmt.Sprintf("/api/admin/products/%d", productID)
	return c.do(ctx, http.MethodPut, path, q, form, nil)
}

func (c *Client) UpdateOrderStatus(ctx context.Context, sessionID string, orderID int, status string) error {
	q := url.Values{"session_id": {sessionID}, "status": {status}}
	path := fmt.Sprintf("/api/admin/orders/%d/status", orderID)
	return c.do(ctx, http.MethodPut, path, q, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query, form url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(method, path, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) decodeError(method, path string, resp *http.Response) error {
	ae := &APIError{StatusCode: resp.StatusCode}

	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		ae.Detail = body.Detail
	}

	c.log.LogAttrs(resp.Request.Context(), slog.LevelWarn, "store_api_error",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.String("detail", ae.Detail),
	)
	return ae
}
