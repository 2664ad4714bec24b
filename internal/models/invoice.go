package models

// Invoice type constants stamped into the nested skeletons.
const (
	InvoiceTypeShipment   = "shipment"
	InvoiceTypeCreditMemo = "CREDIT_MEMO"

	// RefundShipmentNo is the fixed shipment number in the refund skeleton;
	// refund sources carry no shipment identity.
	RefundShipmentNo = "NA"

	// ReferenceNameROID is the reference name used for refund identifiers.
	ReferenceNameROID = "RO-ID"
)

// InvoiceDocument is the nested "InvoiceHeader" template style, mirroring
// the upstream invoice-system schema. Key names, nesting and
// object-vs-list shapes are a byte-exact output contract.
type InvoiceDocument struct {
	InvoiceHeader InvoiceHeader `json:"InvoiceHeader"`
}

// InvoiceHeader is the single header object of the nested template.
type InvoiceHeader struct {
	InvoiceNo         string            `json:"InvoiceNo"`
	Reference1        string            `json:"Reference1"`
	DateInvoiced      int64             `json:"DateInvoiced"`
	InvoiceType       string            `json:"InvoiceType"`
	Shipment          Shipment          `json:"Shipment"`
	Order             InvoiceOrder      `json:"Order"`
	LineDetails       LineDetails       `json:"LineDetails"`
	CollectionDetails CollectionDetails `json:"CollectionDetails"`
}

// Shipment carries the shipment identity and date. The date uses the same
// encoding as DateInvoiced (epoch milliseconds in the order skeleton,
// YYYYMMDD in the refund skeleton).
type Shipment struct {
	ShipmentNo         string `json:"ShipmentNo"`
	ActualShipmentDate int64  `json:"ActualShipmentDate"`
}

// InvoiceOrder holds the order-level pricing and billing blocks.
type InvoiceOrder struct {
	DocumentType     string           `json:"DocumentType"`
	PriceInfo        PriceInfo        `json:"PriceInfo"`
	PersonInfoBillTo PersonInfoBillTo `json:"PersonInfoBillTo"`
}

// PriceInfo holds the currency block. ReportingConversionRate stays at its
// placeholder value 1.
type PriceInfo struct {
	Currency                string `json:"Currency"`
	EnterpriseCurrency      string `json:"EnterpriseCurrency"`
	ReportingConversionRate int    `json:"ReportingConversionRate"`
}

// PersonInfoBillTo identifies the billed customer.
type PersonInfoBillTo struct {
	PersonInfoKey string `json:"PersonInfoKey"`
}

// LineDetails wraps the single-element line detail list.
type LineDetails struct {
	LineDetail []LineDetail `json:"LineDetail"`
}

// LineDetail is the one populated line of the skeleton.
type LineDetail struct {
	PrimeLineNo int       `json:"PrimeLineNo"`
	OrderLine   OrderLine `json:"OrderLine"`
}

// OrderLine carries the Mirakl order extension and, in the refund
// skeleton, the reference list.
type OrderLine struct {
	Extn       Extn        `json:"Extn"`
	References *References `json:"References,omitempty"`
}

// Extn carries the Mirakl order identifier extension field.
type Extn struct {
	ExtnMiraklOrderID string `json:"ExtnMiraklOrderID"`
}

// References wraps the single-element reference list of the refund
// skeleton.
type References struct {
	Reference []Reference `json:"Reference"`
}

// Reference is a named reference value.
type Reference struct {
	Name  string `json:"Name"`
	Value string `json:"Value"`
}

// CollectionDetails wraps the single-element collection detail list.
type CollectionDetails struct {
	CollectionDetail []CollectionDetail `json:"CollectionDetail"`
}

// CollectionDetail carries the collected amount as a fixed two-decimal
// string.
type CollectionDetail struct {
	AmountCollected string `json:"AmountCollected"`
}

// NewOrderInvoiceSkeleton returns the placeholder skeleton for order mode.
// Population overwrites only the known leaves; everything else stays as
// seeded here.
func NewOrderInvoiceSkeleton() InvoiceDocument {
	return InvoiceDocument{
		InvoiceHeader: InvoiceHeader{
			InvoiceNo:    "",
			Reference1:   "",
			DateInvoiced: 0,
			InvoiceType:  InvoiceTypeShipment,
			Shipment: Shipment{
				ShipmentNo:         "",
				ActualShipmentDate: 0,
			},
			Order: InvoiceOrder{
				DocumentType: "0001",
				PriceInfo: PriceInfo{
					Currency:                "",
					EnterpriseCurrency:      "",
					ReportingConversionRate: 1,
				},
				PersonInfoBillTo: PersonInfoBillTo{PersonInfoKey: ""},
			},
			LineDetails: LineDetails{
				LineDetail: []LineDetail{
					{
						PrimeLineNo: 1,
						OrderLine: OrderLine{
							Extn: Extn{ExtnMiraklOrderID: ""},
						},
					},
				},
			},
			CollectionDetails: CollectionDetails{
				CollectionDetail: []CollectionDetail{
					{AmountCollected: "0.00"},
				},
			},
		},
	}
}

// NewRefundInvoiceSkeleton returns the placeholder skeleton for refund
// mode. It differs from the order skeleton in the invoice type, the fixed
// shipment number and the presence of the reference list.
func NewRefundInvoiceSkeleton() InvoiceDocument {
	doc := NewOrderInvoiceSkeleton()
	doc.InvoiceHeader.InvoiceType = InvoiceTypeCreditMemo
	doc.InvoiceHeader.Shipment.ShipmentNo = RefundShipmentNo
	doc.InvoiceHeader.LineDetails.LineDetail[0].OrderLine.References = &References{
		Reference: []Reference{
			{Name: ReferenceNameROID, Value: ""},
		},
	}
	return doc
}
