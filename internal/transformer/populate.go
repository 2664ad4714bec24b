package transformer

import (
	"rpatwari/si-log-extract/internal/dateutils"
	"rpatwari/si-log-extract/internal/models"
)

// populateSimpleOrder fills the flat order payload. The transaction date
// is normalized to ISO-8601 UTC; an unparseable date passes through
// unchanged.
func populateSimpleOrder(f fields) models.OrdersEnvelope {
	return models.OrdersEnvelope{
		Orders: []models.OrderPayload{
			{
				Amount:            f.amount,
				CurrencyISOCode:   f.currency,
				CustomerID:        f.customerID,
				OrderID:           f.orderID,
				PaymentStatus:     models.PaymentStatusOK,
				TransactionDate:   dateutils.ToISO8601UTC(f.txDate),
				TransactionNumber: f.txNumber,
			},
		},
	}
}

// populateSimpleRefund fills the flat refund payload.
func populateSimpleRefund(f fields) models.RefundsEnvelope {
	return models.RefundsEnvelope{
		Refunds: []models.RefundPayload{
			{
				Amount:            f.amount,
				CurrencyISOCode:   f.currency,
				RefundID:          f.refundID,
				PaymentStatus:     models.PaymentStatusOK,
				TransactionDate:   dateutils.ToISO8601UTC(f.txDate),
				TransactionNumber: f.txNumber,
			},
		},
	}
}

// populateInvoiceOrder overwrites the known leaves of the order skeleton.
// Dates are epoch milliseconds in this skeleton; everything not set here
// keeps its placeholder.
func populateInvoiceOrder(f fields) models.InvoiceDocument {
	doc := models.NewOrderInvoiceSkeleton()
	h := &doc.InvoiceHeader

	ms := dateutils.ToEpochMillis(f.txDate)
	h.InvoiceNo = f.txNumber
	h.DateInvoiced = ms
	h.Shipment.ActualShipmentDate = ms
	h.Shipment.ShipmentNo = f.orderID
	h.Order.PriceInfo.Currency = f.currency
	h.Order.PriceInfo.EnterpriseCurrency = f.currency
	h.Order.PersonInfoBillTo.PersonInfoKey = f.customerID
	h.LineDetails.LineDetail[0].OrderLine.Extn.ExtnMiraklOrderID = f.orderID
	h.CollectionDetails.CollectionDetail[0].AmountCollected = f.amount

	return doc
}

// populateInvoiceRefund overwrites the known leaves of the refund
// skeleton. Dates are YYYYMMDD integers here; the customer key and the
// Mirakl order extension stay empty because refund sources carry neither.
func populateInvoiceRefund(f fields) models.InvoiceDocument {
	doc := models.NewRefundInvoiceSkeleton()
	h := &doc.InvoiceHeader

	day := int64(dateutils.ToYYYYMMDDInt(f.txDate))
	h.InvoiceNo = f.txNumber
	h.DateInvoiced = day
	h.Shipment.ActualShipmentDate = day
	h.Order.PriceInfo.Currency = f.currency
	h.Order.PriceInfo.EnterpriseCurrency = f.currency
	h.CollectionDetails.CollectionDetail[0].AmountCollected = f.amount

	if f.refundID != "" {
		h.Reference1 = "REFUND-" + f.refundID
		h.LineDetails.LineDetail[0].OrderLine.References.Reference[0].Value = "MRKL-REF-" + f.refundID
	}

	return doc
}
