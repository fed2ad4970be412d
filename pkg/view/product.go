package view

type ProductCard struct {
	ID          int
	Name        string
	Description string
	Price       string
	Stock       int
	Available   bool
	ImageURL    string
}

type ProductsPage struct {
	Products []ProductCard
}
