package view

type OrderLine struct {
	Name      string
	Quantity  int
	UnitPrice string
	LineTotal string
}

type OrderCard struct {
	ID         int
	CustomerID int
	Date       string
	Status     string
	Total      string
	Items      []OrderLine
}

type OrdersPage struct {
	Orders []OrderCard

	// Admin view gets the status select and invoice action per order.
	Admin    bool
	Statuses []string
}
