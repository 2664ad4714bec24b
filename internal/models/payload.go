// Package models defines the data shapes exchanged between the scanner,
// the transformer and the reporting layer: audit-dump records, the two
// output template styles, and run statistics.
package models

// PaymentStatusOK is the fixed payment status stamped into every simple
// payload.
const PaymentStatusOK = "OK"

// OrderPayload is the flat "simple" template for order mode. Field order
// matches the downstream consumer's expected key order.
type OrderPayload struct {
	Amount            string `json:"amount"`
	CurrencyISOCode   string `json:"currency_iso_code"`
	CustomerID        string `json:"customer_id"`
	OrderID           string `json:"order_id"`
	PaymentStatus     string `json:"payment_status"`
	TransactionDate   string `json:"transaction_date"`
	TransactionNumber string `json:"transaction_number"`
}

// RefundPayload is the flat "simple" template for refund mode. The wrapper
// refund source carries no customer identity, so the shape has none.
type RefundPayload struct {
	Amount            string `json:"amount"`
	CurrencyISOCode   string `json:"currency_iso_code"`
	RefundID          string `json:"refund_id"`
	PaymentStatus     string `json:"payment_status"`
	TransactionDate   string `json:"transaction_date"`
	TransactionNumber string `json:"transaction_number"`
}

// OrdersEnvelope wraps order payloads for serialization. The slice is
// always non-nil so an empty result renders as [] rather than null.
type OrdersEnvelope struct {
	Orders []OrderPayload `json:"orders"`
}

// RefundsEnvelope wraps refund payloads for serialization.
type RefundsEnvelope struct {
	Refunds []RefundPayload `json:"refunds"`
}

// EmptyOrdersEnvelope returns the default order result for documents that
// match no dialect.
func EmptyOrdersEnvelope() OrdersEnvelope {
	return OrdersEnvelope{Orders: []OrderPayload{}}
}

// EmptyRefundsEnvelope returns the default refund result for documents
// that match no dialect.
func EmptyRefundsEnvelope() RefundsEnvelope {
	return RefundsEnvelope{Refunds: []RefundPayload{}}
}
