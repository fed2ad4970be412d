package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quickmart.dev/app/internal/http/render"
	"quickmart.dev/app/internal/storeapi"
	"quickmart.dev/app/pkg/view"
)

type ProductsHandler struct {
	API *storeapi.Client
}

func NewProductsHandler(api *storeapi.Client) *ProductsHandler {
	return &ProductsHandler{API: api}
}

// List handles GET /products - the customer catalog. Every visit re-fetches;
// nothing is cached on this side.
func (h *ProductsHandler) List(c *gin.Context) {
	prods, err := h.API.Products(c.Request.Context())
	if err != nil {
		setFlashNow(c, view.FlashError, "Failed to load products")
		render.Page(c, http.StatusBadGateway, "products", "Products", view.ProductsPage{})
		return
	}

	render.Page(c, http.StatusOK, "products", "Products", view.ProductsPage{
		Products: mapProductCards(prods),
	})
}

func mapProductCards(prods []storeapi.Product) []view.ProductCard {
	out := make([]view.ProductCard, 0, len(prods))
	for _, p := range prods {
		out = append(out, view.ProductCard{
			ID:          p.ProductID,
			Name:        p.Name,
			Description: p.Description,
			Price:       view.Money(p.Price),
			Stock:       p.Stock,
			Available:   p.Available,
			ImageURL:    p.ImageURL,
		})
	}
	return out
}
