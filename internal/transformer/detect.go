package transformer

import (
	"rpatwari/si-log-extract/internal/xmlutils"
)

// wrapperAnchor resolves the payload element of the MiraklOrderRefund
// wrapper dialect for the given mode: the Order or Refund element under
// the wrapper, a bare direct child, or the root element itself.
func wrapperAnchor(root *xmlutils.Element, mode Mode) *xmlutils.Element {
	name := "Order"
	if mode == ModeRefund {
		name = "Refund"
	}

	if el := xmlutils.FindFirst(root, "MiraklOrderRefund/"+name); el != nil {
		return el
	}
	if el := xmlutils.FindFirst(root, name); el != nil {
		return el
	}
	if root != nil && xmlutils.LocalName(root.Tag) == name {
		return root
	}
	return nil
}

// feedAnchor resolves the first order element of the Mirakl feed-body
// dialect. Feed documents only ever carry orders.
func feedAnchor(root *xmlutils.Element) *xmlutils.Element {
	if el := xmlutils.FindFirst(root, "body/orders/order"); el != nil {
		return el
	}
	return xmlutils.FindFirst(root, "orders/order")
}

// invoiceAnchor resolves the header element of the Sterling invoice
// dialect: nested under InvoiceDetail, a bare direct child, or the root
// element itself.
func invoiceAnchor(root *xmlutils.Element) *xmlutils.Element {
	if el := xmlutils.FindFirst(root, "InvoiceDetail/InvoiceHeader"); el != nil {
		return el
	}
	if el := xmlutils.FindFirst(root, "InvoiceHeader"); el != nil {
		return el
	}
	if root != nil && xmlutils.LocalName(root.Tag) == "InvoiceHeader" {
		return root
	}
	return nil
}
