// Package transformer maps Mirakl order/refund XML into the output
// template for its mode. Three input dialects are recognized (the
// MiraklOrderRefund wrapper, the Mirakl order feed body, and the Sterling
// invoice document) and tried in that priority order; a document matching
// none of them degrades to the mode's default skeleton. The only hard
// failure is malformed XML.
package transformer

import (
	"github.com/sirupsen/logrus"

	"rpatwari/si-log-extract/internal/fileutils"
	"rpatwari/si-log-extract/internal/models"
	"rpatwari/si-log-extract/internal/parsererror"
	"rpatwari/si-log-extract/internal/textutils"
	"rpatwari/si-log-extract/internal/xmlutils"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Mapper converts XML payloads into template results. A Mapper is
// immutable after construction and safe for concurrent use.
type Mapper struct {
	style  TemplateStyle
	policy AmountPolicy
	probes xmlutils.DialectProbes
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithTemplateStyle selects the output template style.
func WithTemplateStyle(style TemplateStyle) Option {
	return func(m *Mapper) { m.style = style }
}

// WithAmountPolicy selects the feed-body amount computation policy.
func WithAmountPolicy(policy AmountPolicy) Option {
	return func(m *Mapper) { m.policy = policy }
}

// NewMapper returns a Mapper with the simple template style and the
// itemized amount policy unless options say otherwise.
func NewMapper(opts ...Option) *Mapper {
	m := &Mapper{
		style:  StyleSimple,
		policy: PolicyItemized,
		probes: xmlutils.DefaultDialectProbes(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Map converts raw XML text into the template result for mode. The
// returned value is a models.OrdersEnvelope / models.RefundsEnvelope
// (simple style) or a models.InvoiceDocument (invoice style), ready for
// JSON serialization. Malformed XML returns a *parsererror.ParseError;
// every well-formed document produces a result.
func (m *Mapper) Map(xmlText string, mode Mode) (any, error) {
	root, err := xmlutils.Parse(xmlText)
	if err != nil {
		return nil, &parsererror.ParseError{Source: "transformer", Mode: string(mode), Err: err}
	}

	if anchor := wrapperAnchor(root, mode); anchor != nil {
		log.WithFields(logrus.Fields{"dialect": "wrapper", "mode": mode}).Debug("Mapping payload")
		if mode == ModeOrder {
			return m.result(extractWrapperOrder(anchor), mode), nil
		}
		return m.result(extractWrapperRefund(anchor), mode), nil
	}

	if mode == ModeOrder {
		if anchor := feedAnchor(root); anchor != nil {
			log.WithFields(logrus.Fields{"dialect": "feed", "mode": mode}).Debug("Mapping payload")
			return m.result(extractFeedOrder(anchor, m.policy), mode), nil
		}
	}

	if header := invoiceAnchor(root); header != nil {
		log.WithFields(logrus.Fields{"dialect": "invoice", "mode": mode}).Debug("Mapping payload")
		if mode == ModeOrder {
			return m.result(extractInvoiceOrder(header), mode), nil
		}
		return m.result(extractInvoiceRefund(header), mode), nil
	}

	log.WithField("mode", mode).Debug("No dialect matched, returning default skeleton")
	return m.defaultResult(mode), nil
}

// MapToJSON runs Map and renders the result as pretty-printed UTF-8 JSON:
// two-space indent, HTML characters and non-ASCII preserved, no trailing
// newline. Identical input yields byte-identical output.
func (m *Mapper) MapToJSON(xmlText string, mode Mode) ([]byte, error) {
	result, err := m.Map(xmlText, mode)
	if err != nil {
		return nil, err
	}
	return fileutils.MarshalIndentNoEscape(result)
}

// TransformPayload routes a payload by its folder key: the two Mirakl
// keys map to their modes, anything else is not handled and the caller
// writes the original payload. The bool reports whether the key was
// handled.
func (m *Mapper) TransformPayload(folderKey, xmlText string) ([]byte, bool, error) {
	switch textutils.NormalizeFolderKey(folderKey) {
	case "mirakl-order":
		data, err := m.MapToJSON(xmlText, ModeOrder)
		return data, true, err
	case "mirakl-refund":
		data, err := m.MapToJSON(xmlText, ModeRefund)
		return data, true, err
	default:
		return nil, false, nil
	}
}

// ValidateFormat reports whether the document resolves any known dialect
// anchor. It is a cheap whole-document probe, not a full mapping.
func (m *Mapper) ValidateFormat(xmlText string) bool {
	root, err := xmlutils.ParseString(xmlText)
	if err != nil {
		log.WithError(err).Debug("Document is not well-formed XML")
		return false
	}
	return xmlutils.AnyPathExists(root, m.probes.All()...)
}

// result populates the template for the configured style.
func (m *Mapper) result(f fields, mode Mode) any {
	if m.style == StyleInvoice {
		if mode == ModeOrder {
			return populateInvoiceOrder(f)
		}
		return populateInvoiceRefund(f)
	}
	if mode == ModeOrder {
		return populateSimpleOrder(f)
	}
	return populateSimpleRefund(f)
}

// defaultResult returns the untouched skeleton for documents matching no
// dialect.
func (m *Mapper) defaultResult(mode Mode) any {
	if m.style == StyleInvoice {
		if mode == ModeOrder {
			return models.NewOrderInvoiceSkeleton()
		}
		return models.NewRefundInvoiceSkeleton()
	}
	if mode == ModeOrder {
		return models.EmptyOrdersEnvelope()
	}
	return models.EmptyRefundsEnvelope()
}
