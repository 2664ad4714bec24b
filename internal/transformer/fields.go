package transformer

import "fmt"

// Mode selects which output template family a mapping produces.
type Mode string

const (
	// ModeOrder maps a document into the order template.
	ModeOrder Mode = "order"
	// ModeRefund maps a document into the refund template.
	ModeRefund Mode = "refund"
)

// ParseMode validates a mode string from a flag or folder key.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeOrder:
		return ModeOrder, nil
	case ModeRefund:
		return ModeRefund, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want %q or %q)", s, ModeOrder, ModeRefund)
	}
}

// TemplateStyle selects one of the two mutually exclusive output shapes.
type TemplateStyle string

const (
	// StyleSimple produces the flat payload wrapped in {"orders": [...]} or
	// {"refunds": [...]}.
	StyleSimple TemplateStyle = "simple"
	// StyleInvoice produces the nested {"InvoiceHeader": {...}} document.
	StyleInvoice TemplateStyle = "invoice"
)

// ParseTemplateStyle validates a template style string.
func ParseTemplateStyle(s string) (TemplateStyle, error) {
	switch TemplateStyle(s) {
	case StyleSimple:
		return StyleSimple, nil
	case StyleInvoice:
		return StyleInvoice, nil
	default:
		return "", fmt.Errorf("unknown template style %q (want %q or %q)", s, StyleSimple, StyleInvoice)
	}
}

// AmountPolicy selects how the feed-body order amount is computed.
type AmountPolicy string

const (
	// PolicyItemized always sums price + shipping_price + taxes.
	PolicyItemized AmountPolicy = "itemized"
	// PolicyTotalPrice uses a parsable total_price instead of
	// price + shipping_price; taxes are still added.
	PolicyTotalPrice AmountPolicy = "total-price"
)

// ParseAmountPolicy validates an amount policy string.
func ParseAmountPolicy(s string) (AmountPolicy, error) {
	switch AmountPolicy(s) {
	case PolicyItemized:
		return PolicyItemized, nil
	case PolicyTotalPrice:
		return PolicyTotalPrice, nil
	default:
		return "", fmt.Errorf("unknown amount policy %q (want %q or %q)", s, PolicyItemized, PolicyTotalPrice)
	}
}

// fields is the dialect-independent value set every extractor produces.
// String fields degrade to "" when the source element is absent; the
// amount is always a fixed two-decimal string.
type fields struct {
	amount     string
	currency   string
	customerID string
	orderID    string
	refundID   string
	txDate     string
	txNumber   string
}
