package view

// ReceiptDoc and InvoiceDoc are immutable billing documents rendered
// verbatim from the server response. Modal selects overlay rendering.

type ReceiptDoc struct {
	Number        string
	OrderID       int
	PaymentDate   string
	CustomerName  string
	PaymentMethod string
	AmountPaid    string
	Status        string
	Items         []OrderLine
	Modal         bool
}

type InvoiceDoc struct {
	Number       string
	OrderID      int
	IssueDate    string
	DueDate      string
	CustomerName string
	TotalAmount  string
	Status       string
	Paid         bool
	Items        []OrderLine
	Modal        bool
}
