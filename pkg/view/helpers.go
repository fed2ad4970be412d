package view

import "fmt"

// Money formats a backend-supplied amount for display. The frontend never
// computes amounts; it only formats what the server sent.
// E.g., 2.5 -> "$2.50"
func Money(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
