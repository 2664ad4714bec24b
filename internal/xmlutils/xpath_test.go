package xmlutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wrapperXML = `<?xml version="1.0" encoding="UTF-8"?>
<ns1:MiraklOrderRefund xmlns:ns1="http://mirakl.example/refund">
	<ns1:Order>
		<ns1:order_id>ORD-100</ns1:order_id>
		<ns1:total_price>10.50</ns1:total_price>
	</ns1:Order>
</ns1:MiraklOrderRefund>`

const feedXML = `<orders>
	<order>
		<order_id>FEED-1</order_id>
	</order>
</orders>`

const invoiceXML = `<InvoiceList>
	<InvoiceHeader>
		<InvoiceNo>INV-9</InvoiceNo>
	</InvoiceHeader>
</InvoiceList>`

func TestLoadXMLFile(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "order.xml")
		require.NoError(t, os.WriteFile(path, []byte(wrapperXML), 0o644))

		root, err := LoadXMLFile(path)
		require.NoError(t, err)
		require.NotNil(t, root)

		values, err := ExtractFromXML(root, "//order_id")
		require.NoError(t, err)
		assert.Equal(t, []string{"ORD-100"}, values)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadXMLFile(filepath.Join(t.TempDir(), "nope.xml"))
		assert.Error(t, err)
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.xml")
		require.NoError(t, os.WriteFile(path, []byte("<a><b></a>"), 0o644))

		_, err := LoadXMLFile(path)
		assert.Error(t, err)
	})
}

func TestParseString(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		root, err := ParseString(feedXML)
		require.NoError(t, err)
		assert.NotNil(t, root)
	})

	t.Run("malformed document", func(t *testing.T) {
		_, err := ParseString("<orders><order></orders>")
		assert.Error(t, err)
	})
}

func TestExtractFromXML(t *testing.T) {
	root, err := ParseString(wrapperXML)
	require.NoError(t, err)

	tests := []struct {
		name     string
		xpath    string
		expected []string
	}{
		{
			name:     "single value",
			xpath:    "//total_price",
			expected: []string{"10.50"},
		},
		{
			name:     "no match",
			xpath:    "//shipping_price",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := ExtractFromXML(root, tt.xpath)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, values)
		})
	}

	t.Run("invalid expression", func(t *testing.T) {
		_, err := ExtractFromXML(root, "///[")
		assert.Error(t, err)
	})
}

func TestAnyPathExists(t *testing.T) {
	probes := DefaultDialectProbes()

	tests := []struct {
		name     string
		xml      string
		expected bool
	}{
		{
			name:     "wrapper order document",
			xml:      wrapperXML,
			expected: true,
		},
		{
			name:     "order feed document",
			xml:      feedXML,
			expected: true,
		},
		{
			name:     "invoice document",
			xml:      invoiceXML,
			expected: true,
		},
		{
			name:     "unrelated document",
			xml:      "<catalog><item>book</item></catalog>",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := ParseString(tt.xml)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, AnyPathExists(root, probes.All()...))
		})
	}

	t.Run("nil root", func(t *testing.T) {
		assert.False(t, AnyPathExists(nil, probes.All()...))
	})

	t.Run("invalid probe is skipped", func(t *testing.T) {
		root, err := ParseString(feedXML)
		require.NoError(t, err)
		assert.True(t, AnyPathExists(root, "///[", "//orders/order"))
	})
}

func TestSnippet(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		max      int
		expected string
	}{
		{
			name:     "short text unchanged",
			text:     "hello world",
			max:      64,
			expected: "hello world",
		},
		{
			name:     "whitespace collapsed",
			text:     "  a\n\tb   c  ",
			max:      64,
			expected: "a b c",
		},
		{
			name:     "long text truncated",
			text:     "abcdefghij",
			max:      4,
			expected: "abcd...",
		},
		{
			name:     "zero max keeps everything",
			text:     "abcdefghij",
			max:      0,
			expected: "abcdefghij",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Snippet(tt.text, tt.max))
		})
	}
}
