package view

// AdminProductForm is one inline editor row, pre-filled with current values.
// Submitting always sends the full field set.
type AdminProductForm struct {
	ID          int
	Name        string
	Price       string
	Stock       int
	Description string
}

type AdminProductsPage struct {
	Products []AdminProductForm
}
