package transformer

import (
	"strings"

	"github.com/shopspring/decimal"

	"rpatwari/si-log-extract/internal/currencyutils"
	"rpatwari/si-log-extract/internal/xmlutils"
)

// textAt returns the trimmed text of the first element at path, or ""
// when the path does not resolve.
func textAt(el *xmlutils.Element, path string) string {
	return xmlutils.FindFirst(el, path).Text()
}

// sumDecimals sums every parseable value exactly, skipping the rest.
func sumDecimals(values []string) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		if d, ok := currencyutils.ParseDecimal(v); ok {
			total = total.Add(d)
		}
	}
	return total
}

// extractWrapperOrder reads the flat direct-child tags of a wrapper Order
// element.
func extractWrapperOrder(anchor *xmlutils.Element) fields {
	return fields{
		amount:     currencyutils.SumAmounts([]string{textAt(anchor, "amount")}, false),
		currency:   textAt(anchor, "currency_iso_code"),
		customerID: textAt(anchor, "customer_id"),
		orderID:    textAt(anchor, "order_id"),
		txDate:     textAt(anchor, "transaction_date"),
		txNumber:   textAt(anchor, "transaction_number"),
	}
}

// extractWrapperRefund reads the flat direct-child tags of a wrapper
// Refund element. Refund amounts are always absolute magnitudes; the
// wrapper carries no customer identity.
func extractWrapperRefund(anchor *xmlutils.Element) fields {
	return fields{
		amount:   currencyutils.SumAmounts([]string{textAt(anchor, "amount")}, true),
		currency: textAt(anchor, "currency_iso_code"),
		refundID: textAt(anchor, "refund_id"),
		txDate:   textAt(anchor, "transaction_date"),
		txNumber: textAt(anchor, "transaction_number"),
	}
}

// extractFeedOrder computes the order amount from a feed order element.
// Itemized policy: price + shipping_price + line taxes + shipping taxes.
// Total-price policy: a parsable total_price replaces price +
// shipping_price (it already includes shipping); taxes are still added.
func extractFeedOrder(anchor *xmlutils.Element, policy AmountPolicy) fields {
	taxes := sumDecimals(xmlutils.FindAllTexts(anchor, "order_lines/order_line/taxes/tax/amount"))
	shippingTaxes := sumDecimals(xmlutils.FindAllTexts(anchor, "order_lines/order_line/shipping_taxes/shipping_tax/amount"))

	var base decimal.Decimal
	totalPrice, hasTotal := currencyutils.ParseDecimal(textAt(anchor, "total_price"))
	if policy == PolicyTotalPrice && hasTotal {
		base = totalPrice
	} else {
		price, _ := currencyutils.ParseDecimal(textAt(anchor, "price"))
		shipping, _ := currencyutils.ParseDecimal(textAt(anchor, "shipping_price"))
		base = price.Add(shipping)
	}
	total := base.Add(taxes).Add(shippingTaxes)

	return fields{
		amount:     currencyutils.FormatAmount(total),
		currency:   textAt(anchor, "currency_iso_code"),
		customerID: textAt(anchor, "customer/customer_id"),
		orderID:    textAt(anchor, "order_id"),
		txDate:     textAt(anchor, "transaction_date"),
		txNumber:   textAt(anchor, "transaction_number"),
	}
}

// extractInvoiceOrder applies the invoice-to-order mapping rules to an
// InvoiceHeader element.
func extractInvoiceOrder(header *xmlutils.Element) fields {
	txDate := textAt(header, "Shipment/ActualShipmentDate")
	if txDate == "" {
		txDate = textAt(header, "DateInvoiced")
	}

	return fields{
		amount:     currencyutils.SumAmounts(invoiceAmounts(header), false),
		currency:   textAt(header, "Order/PriceInfo/Currency"),
		customerID: textAt(header, "Order/PersonInfoBillTo/PersonInfoKey"),
		orderID:    invoiceFirstLineOrderID(header),
		txDate:     txDate,
		txNumber:   textAt(header, "InvoiceNo"),
	}
}

// extractInvoiceRefund applies the invoice-to-refund mapping rules. The
// refund identifier comes from Reference1 for credit memos, otherwise
// from the first RO-ID / MRKL_REFUND_ID reference. The transaction date
// is DateInvoiced only; the shipment fallback is an order-mode rule.
func extractInvoiceRefund(header *xmlutils.Element) fields {
	var refundID string
	invoiceType := strings.ToUpper(strings.TrimSpace(textAt(header, "InvoiceType")))
	if invoiceType == "CREDIT_MEMO" {
		refundID = textAt(header, "Reference1")
	} else {
		refundID = invoiceRefundReference(header)
	}

	return fields{
		amount:   currencyutils.SumAmounts(invoiceAmounts(header), true),
		currency: textAt(header, "Order/PriceInfo/Currency"),
		refundID: refundID,
		txDate:   textAt(header, "DateInvoiced"),
		txNumber: textAt(header, "InvoiceNo"),
	}
}

func invoiceAmounts(header *xmlutils.Element) []string {
	return xmlutils.FindAllTexts(header, "CollectionDetails/CollectionDetail/AmountCollected")
}

// invoiceFirstLineOrderID returns ExtnMiraklOrderID of the first line
// detail; later lines are ignored on purpose.
func invoiceFirstLineOrderID(header *xmlutils.Element) string {
	lines := xmlutils.FindAll(header, "LineDetails/LineDetail")
	if len(lines) == 0 {
		return ""
	}
	return textAt(lines[0], "OrderLine/Extn/ExtnMiraklOrderID")
}

// invoiceRefundReference scans all line references for the first one
// named RO-ID or MRKL_REFUND_ID and returns its value.
func invoiceRefundReference(header *xmlutils.Element) string {
	for _, ref := range xmlutils.FindAll(header, "LineDetails/LineDetail/OrderLine/References/Reference") {
		name := strings.ToUpper(strings.TrimSpace(textAt(ref, "Name")))
		if name == "RO-ID" || name == "MRKL_REFUND_ID" {
			return textAt(ref, "Value")
		}
	}
	return ""
}
