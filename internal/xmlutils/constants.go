package xmlutils

// DialectProbes groups the xmlpath expressions used to recognize the known
// input dialects without running a full mapping. The expressions use the
// descendant axis on purpose: a probe answers "could this document be one of
// ours", while the locator owns exact anchor resolution.
type DialectProbes struct {
	// Wrapper contains probes for the MiraklOrderRefund wrapper dialect
	Wrapper struct {
		Order  string
		Refund string
	}

	// Feed contains probes for the Mirakl order-feed dialect
	Feed struct {
		Order string
	}

	// Invoice contains probes for the Sterling invoice dialect
	Invoice struct {
		Header string
	}
}

// DefaultDialectProbes returns the probe expressions for the three dialects
func DefaultDialectProbes() DialectProbes {
	var d DialectProbes

	d.Wrapper.Order = "//Order"
	d.Wrapper.Refund = "//Refund"
	d.Feed.Order = "//orders/order"
	d.Invoice.Header = "//InvoiceHeader"

	return d
}

// All returns every probe expression, any of which marks a document as a
// candidate for mapping
func (d DialectProbes) All() []string {
	return []string{
		d.Wrapper.Order,
		d.Wrapper.Refund,
		d.Feed.Order,
		d.Invoice.Header,
	}
}
