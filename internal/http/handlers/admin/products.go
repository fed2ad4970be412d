package admin

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"quickmart.dev/app/internal/http/flash"
	"quickmart.dev/app/internal/http/middleware"
	"quickmart.dev/app/internal/http/render"
	"quickmart.dev/app/internal/http/session"
	"quickmart.dev/app/internal/storeapi"
	"quickmart.dev/app/pkg/view"
)

// ProductsHandler is the admin product editor: the catalog rendered as
// inline forms, one full-field update per submit.
type ProductsHandler struct {
	API      *storeapi.Client
	Sessions *session.Codec
	Flash    *flash.Codec
	Secure   bool
}

func NewProductsHandler(api *storeapi.Client, sessions *session.Codec, fl *flash.Codec, secure bool) *ProductsHandler {
	return &ProductsHandler{API: api, Sessions: sessions, Flash: fl, Secure: secure}
}

// List handles GET /admin/products.
func (h *ProductsHandler) List(c *gin.Context) {
	prods, err := h.API.Products(c.Request.Context())
	if err != nil {
		setFlashNow(c, view.FlashError, "Failed to load products")
		render.Page(c, http.StatusBadGateway, "admin_products", "Manage Products", view.AdminProductsPage{})
		return
	}

	page := view.AdminProductsPage{}
	for _, p := range prods {
		page.Products = append(page.Products, view.AdminProductForm{
			ID:          p.ProductID,
			Name:        p.Name,
			Price:       strconv.FormatFloat(p.Price, 'f', 2, 64),
			Stock:       p.Stock,
			Description: p.Description,
		})
	}
	render.Page(c, http.StatusOK, "admin_products", "Manage Products", page)
}

// Update handles POST /admin/products/:id. Every field is sent on each
// submit, so a blank input clears the value rather than keeping it.
func (h *ProductsHandler) Update(c *gin.Context) {
	s, _ := middleware.CurrentSession(c)

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil || productID <= 0 {
		render.RedirectWithFlash(c, h.Flash, "/admin/products", view.FlashError, "Failed to update product")
		return
	}

	upd, ok := parseProductForm(c)
	if !ok {
		render.RedirectWithFlash(c, h.Flash, "/admin/products", view.FlashError, "Failed to update product")
		return
	}

	if err := h.API.UpdateProduct(c.Request.Context(), s.ID, productID, upd); err != nil {
		if expiredSession(c, err, h.Sessions, h.Flash, h.Secure) {
			return
		}
		render.RedirectWithFlash(c, h.Flash, "/admin/products", view.FlashError,
			storeapi.Detail(err, "Failed to update product"))
		return
	}

	render.RedirectWithFlash(c, h.Flash, "/admin/products", view.FlashSuccess, "Product updated!")
}

func parseProductForm(c *gin.Context) (storeapi.ProductUpdate, bool) {
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		return storeapi.ProductUpdate{}, false
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(c.PostForm("price")), 64)
	if err != nil || price < 0 {
		return storeapi.ProductUpdate{}, false
	}
	stock, err := strconv.Atoi(strings.TrimSpace(c.PostForm("stock")))
	if err != nil || stock < 0 {
		return storeapi.ProductUpdate{}, false
	}

	return storeapi.ProductUpdate{
		Name:        name,
		Price:       price,
		Stock:       stock,
		Description: strings.TrimSpace(c.PostForm("description")),
	}, true
}
