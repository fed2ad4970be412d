package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	cartCountKey = "cart_count"

	// CartCountCookie holds the last item count the cart page fetched. The
	// badge is a display echo of that fetch, never an authority on the cart.
	CartCountCookie = "store_cart_n"
)

// CartCount parses the badge cookie, best effort. A missing or garbled
// cookie just renders as zero.
func CartCount() gin.HandlerFunc {
	return func(c *gin.Context) {
		n := 0
		if raw, err := c.Cookie(CartCountCookie); err == nil && raw != "" {
			if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
				n = v
			}
		}
		c.Set(cartCountKey, n)
		c.Next()
	}
}

func GetCartCount(c *gin.Context) int {
	v, ok := c.Get(cartCountKey)
	if !ok {
		return 0
	}
	n, _ := v.(int)
	return n
}

// SetCartCountCookie refreshes the badge after a successful cart fetch.
func SetCartCountCookie(c *gin.Context, count int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CartCountCookie, strconv.Itoa(count), 0, "/", "", secure, false)
}

// ClearCartCountCookie drops the badge with the rest of the client state.
func ClearCartCountCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CartCountCookie, "", -1, "/", "", secure, false)
}
