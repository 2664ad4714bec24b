package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// StringList accepts a JSON scalar or array and always presents it as a
// list of strings. Audit exports are inconsistent about whether event
// fields and attachment payloads are scalars or lists.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var raw any
	if err := decodeFlexible(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*l = nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, flexibleString(item))
		}
		*l = out
	default:
		*l = []string{flexibleString(v)}
	}
	return nil
}

// FlexString accepts any JSON scalar and presents it as a string. Numbers
// keep their source notation, null becomes the empty string.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *FlexString) UnmarshalJSON(data []byte) error {
	var raw any
	if err := decodeFlexible(data, &raw); err != nil {
		return err
	}
	*s = FlexString(flexibleString(raw))
	return nil
}

func decodeFlexible(data []byte, out *any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(out)
}

func flexibleString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		// Nested structures come through as compact JSON.
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// AuditDump is the top-level shape of an Elasticsearch multi-search
// export file.
type AuditDump struct {
	Responses []AuditResponse `json:"responses"`
}

// AuditResponse is one response block of the export.
type AuditResponse struct {
	Hits AuditHits `json:"hits"`
}

// AuditHits wraps the hit list.
type AuditHits struct {
	Hits []AuditHit `json:"hits"`
}

// AuditHit wraps a single record.
type AuditHit struct {
	Source AuditRecord `json:"_source"`
}

// AuditRecord is the _source object the scanner inspects. Only the fields
// used for filtering and naming are modeled; everything else is ignored.
type AuditRecord struct {
	EventDescription     StringList `json:"EventDescription"`
	EventName            StringList `json:"EventName"`
	AuditAttachmentsData StringList `json:"AuditAttachmentsData"`
	AuditKey1            FlexString `json:"AuditKey1"`
	AuditKeyValue1       FlexString `json:"AuditKeyValue1"`
	AuditKeyValue        StringList `json:"AuditKeyValue"`
}

// MatchesEvent reports whether the record satisfies a filter rule. Both
// arguments must already be lowercased; record values are compared
// trimmed and lowercased, and any element of a list field may match. An
// empty wantName skips the event-name check.
func (r *AuditRecord) MatchesEvent(wantDescLower, wantNameLower string) bool {
	if !containsFold(r.EventDescription, wantDescLower) {
		return false
	}
	if wantNameLower == "" {
		return true
	}
	return containsFold(r.EventName, wantNameLower)
}

func containsFold(values StringList, wantLower string) bool {
	for _, v := range values {
		if strings.ToLower(strings.TrimSpace(v)) == wantLower {
			return true
		}
	}
	return false
}

// InvoiceKey returns the raw invoice identifier for output file naming:
// AuditKeyValue1 when AuditKey1 says it holds the invoice number,
// otherwise the first AuditKeyValue element, otherwise "".
func (r *AuditRecord) InvoiceKey() string {
	if strings.TrimSpace(string(r.AuditKey1)) == "InvoiceNo" && r.AuditKeyValue1 != "" {
		return string(r.AuditKeyValue1)
	}
	if len(r.AuditKeyValue) > 0 {
		return r.AuditKeyValue[0]
	}
	return ""
}
