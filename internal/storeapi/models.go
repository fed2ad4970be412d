package storeapi

// Wire types for the store backend. Field names follow the backend's JSON
// exactly; the frontend never derives totals or statuses from these, it only
// formats them for display.

type User struct {
	UserID  int    `json:"user_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
}

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type LoginResult struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
	User      User   `json:"user"`
}

type Product struct {
	ProductID   int     `json:"product_id"`
	SKU         string  `json:"sku"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Stock       int     `json:"stock"`
	Active      bool    `json:"active"`
	Available   bool    `json:"available"`
	ImageURL    string  `json:"image_url"`
}

type CartItem struct {
	ProductID    int     `json:"product_id"`
	ProductName  string  `json:"product_name"`
	SKU          string  `json:"sku"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	LineTotal    float64 `json:"line_total"`
	ImageURL     string  `json:"image_url"`
	CurrentStock int     `json:"current_stock"`
	StockOK      bool    `json:"stock_ok"`
	StockIssue   string  `json:"stock_issue,omitempty"`
	StockMessage string  `json:"stock_message,omitempty"`
}

type Cart struct {
	Items     []CartItem `json:"items"`
	Total     float64    `json:"total"`
	ItemCount int        `json:"item_count"`

	// CanCheckoutFlag is optional on the wire. When the server sends it, it
	// is authoritative; the per-item fallback applies only when absent.
	CanCheckoutFlag *bool `json:"can_checkout,omitempty"`
}

// CanCheckout resolves the checkout gate. Server value wins when supplied.
func (c *Cart) CanCheckout() bool {
	if c.CanCheckoutFlag != nil {
		return *c.CanCheckoutFlag
	}
	for _, it := range c.Items {
		if !it.StockOK {
			return false
		}
	}
	return true
}

type OrderItem struct {
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	SKU         string  `json:"sku"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
	ImageURL    string  `json:"image_url,omitempty"`
}

type Order struct {
	OrderID    int         `json:"order_id"`
	CustomerID int         `json:"customer_id"`
	OrderDate  string      `json:"order_date"`
	Status     string      `json:"status"`
	Total      float64     `json:"total"`
	Items      []OrderItem `json:"items"`
}

// OrderStatuses lists the admin-selectable states in display order.
var OrderStatuses = []string{"Placed", "Processing", "Shipped", "Delivered", "Cancelled"}

type Receipt struct {
	ReceiptNumber string      `json:"receipt_number"`
	PaymentID     int         `json:"payment_id"`
	OrderID       int         `json:"order_id"`
	CustomerName  string      `json:"customer_name"`
	Items         []OrderItem `json:"items"`
	AmountPaid    float64     `json:"amount_paid"`
	PaymentMethod string      `json:"payment_method"`
	PaymentDate   string      `json:"payment_date"`
	Status        string      `json:"status"`
}

type Invoice struct {
	InvoiceNumber string      `json:"invoice_number"`
	OrderID       int         `json:"order_id"`
	CustomerName  string      `json:"customer_name"`
	IssueDate     string      `json:"issue_date"`
	DueDate       string      `json:"due_date"`
	Items         []OrderItem `json:"items"`
	TotalAmount   float64     `json:"total_amount"`
	Status        string      `json:"status"`
}

type Payment struct {
	PaymentID   int      `json:"payment_id"`
	OrderID     int      `json:"order_id"`
	Amount      float64  `json:"amount"`
	Method      string   `json:"method"`
	Status      string   `json:"status"`
	PaymentDate string   `json:"payment_date"`
	Receipt     *Receipt `json:"receipt,omitempty"`
}

type CheckoutResult struct {
	Message string   `json:"message"`
	Order   *Order   `json:"order,omitempty"`
	Payment *Payment `json:"payment,omitempty"`
}

// ProductUpdate carries the admin editor's full field set. The editor always
// submits every field pre-filled with current values.
type ProductUpdate struct {
	Name        string
	Price       float64
	Stock       int
	Description string
}
