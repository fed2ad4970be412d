package view

type SummaryLine struct {
	Name      string
	Quantity  int
	LineTotal string
}

type PaymentOption struct {
	Code  string
	Label string
}

type CheckoutForm struct {
	PaymentMethod  string
	PaymentDetails string
	CardNumber     string
	Expiry         string
	CVC            string
	IdemKey        string
}

type CheckoutPage struct {
	Empty   bool
	Summary []SummaryLine
	Total   string

	Form     CheckoutForm
	Payments []PaymentOption
	Errors   map[string]string
}
