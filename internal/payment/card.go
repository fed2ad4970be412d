// Package payment holds the card-format rules checked before a checkout
// submission reaches the backend. These are format checks only; whether the
// payment succeeds is the backend's verdict.
package payment

import (
	"regexp"
	"strings"
)

var (
	cardNumberRe = regexp.MustCompile(`^\d{16}$`)
	expiryRe     = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{4}$`)
	cvcRe        = regexp.MustCompile(`^\d{3}$`)
	nonDigitRe   = regexp.MustCompile(`\D`)
)

// Aggregate-toast reasons, one per rule. The shown set must match the
// failing set exactly.
const (
	ReasonCardNumber = "Invalid card number (16 digits)"
	ReasonExpiry     = "Invalid expiry date (MM/YYYY)"
	ReasonCVC        = "Invalid CVC/CVV2 (3 digits)"
)

// Card is the raw form input before masking.
type Card struct {
	Number string
	Expiry string
	CVC    string
}

// Masked returns the card with each field run through its input mask, the
// same transform the form applies keystroke by keystroke.
func (c Card) Masked() Card {
	return Card{
		Number: NormalizeCardNumber(c.Number),
		Expiry: FormatExpiry(c.Expiry),
		CVC:    NormalizeCVC(c.CVC),
	}
}

// NormalizeCardNumber keeps digits only, capped at 16.
func NormalizeCardNumber(s string) string {
	return truncate(stripNonDigits(s), 16)
}

// FormatExpiry keeps digits only, caps at 6, and inserts the slash after the
// month once a third digit exists.
func FormatExpiry(s string) string {
	v := truncate(stripNonDigits(s), 6)
	if len(v) >= 3 {
		v = v[:2] + "/" + v[2:]
	}
	return v
}

// NormalizeCVC keeps digits only, capped at 3.
func NormalizeCVC(s string) string {
	return truncate(stripNonDigits(s), 3)
}

// Result reports which rules a masked card violates.
type Result struct {
	Fields  map[string]string
	Reasons []string
}

func (r Result) OK() bool { return len(r.Reasons) == 0 }

// Aggregate is the toast message listing every violated rule, empty when
// everything passed.
func (r Result) Aggregate() string {
	if r.OK() {
		return ""
	}
	return "Some payment fields are invalid: " + strings.Join(r.Reasons, ", ")
}

// Validate checks a masked card against the three format rules. Reasons keep
// card number, expiry, CVC order.
func Validate(c Card) Result {
	res := Result{Fields: map[string]string{}}

	if !cardNumberRe.MatchString(c.Number) {
		res.Fields["card_number"] = ReasonCardNumber
		res.Reasons = append(res.Reasons, ReasonCardNumber)
	}
	if !expiryRe.MatchString(c.Expiry) {
		res.Fields["expiry"] = ReasonExpiry
		res.Reasons = append(res.Reasons, ReasonExpiry)
	}
	if !cvcRe.MatchString(c.CVC) {
		res.Fields["cvc"] = ReasonCVC
		res.Reasons = append(res.Reasons, ReasonCVC)
	}
	return res
}

// MaskedDetails synthesizes the payment_details value sent to the backend
// when the form has no explicit details field: "Card ****<last4>", or bare
// "Card" when no digits were entered.
func MaskedDetails(cardNumber string) string {
	digits := stripNonDigits(cardNumber)
	if len(digits) < 4 {
		if digits == "" {
			return "Card"
		}
		return "Card ****" + digits
	}
	return "Card ****" + digits[len(digits)-4:]
}

func stripNonDigits(s string) string {
	return nonDigitRe.ReplaceAllString(s, "")
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
