package view

type CartRow struct {
	ProductID    int
	Name         string
	Quantity     int
	UnitPrice    string
	LineTotal    string
	ImageURL     string
	StockOK      bool
	StockMessage string
}

type CartPage struct {
	Items     []CartRow
	Total     string
	ItemCount int

	// CanCheckout gates the checkout control; CheckoutTitle is the tooltip
	// explaining a disabled control.
	CanCheckout   bool
	CheckoutTitle string
}
