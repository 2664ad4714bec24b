package common_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rpatwari/si-log-extract/cmd/common"
	"rpatwari/si-log-extract/internal/config"
	"rpatwari/si-log-extract/internal/container"
	"rpatwari/si-log-extract/internal/logging"
	"rpatwari/si-log-extract/internal/models"
	"rpatwari/si-log-extract/internal/report"
	"rpatwari/si-log-extract/internal/transformer"
)

const testRunConfig = `{
  "input_glob": "dumps/*.json",
  "output": "out",
  "filters": [
    {"folder": "producer-input", "event_description": "Payload received"}
  ]
}`

const testDump = `{
  "responses": [
    {
      "hits": {
        "hits": [
          {
            "_source": {
              "EventDescription": "Payload received",
              "AuditKey1": "InvoiceNo",
              "AuditKeyValue1": "INV-1",
              "AuditAttachmentsData": ["<note/>"]
            }
          }
        ]
      }
    }
  ]
}`

func newTestContainer(t *testing.T) *container.Container {
	t.Helper()
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Server.Listen = ":8080"
	cfg.Scan.TemplateStyle = string(transformer.StyleSimple)
	cfg.Scan.FeedAmountPolicy = string(transformer.PolicyItemized)
	cfg.Report.Format = string(report.FormatJSON)

	c, err := container.NewContainer(cfg)
	require.NoError(t, err)
	return c
}

func writeRunRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "config.json"), []byte(testRunConfig), 0600))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "dumps"), 0750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "dumps", "dump.json"), []byte(testDump), 0600))
	return root
}

func TestRunScan_LocalRoot(t *testing.T) {
	c := newTestContainer(t)
	root := writeRunRoot(t)

	stats, err := common.RunScan(context.Background(), c, root, "", false)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.FilesScanned)
	assert.Equal(t, 1, stats.Hits)
	require.Len(t, stats.WrittenFiles, 1)
	assert.Equal(t, "producer-input/input_INV-1.xml", stats.WrittenFiles[0])
	assert.FileExists(t, filepath.Join(root, "out", "producer-input", "input_INV-1.xml"))
}

func TestRunScan_FreshOverridesRunConfig(t *testing.T) {
	c := newTestContainer(t)
	root := writeRunRoot(t)

	stale := filepath.Join(root, "out", "2025-07-25", "stale.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0750))
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0600))

	// The run config does not set fresh; the flag forces it
	_, err := common.RunScan(context.Background(), c, root, "2025-07-25", true)
	require.NoError(t, err)

	assert.NoFileExists(t, stale)
	assert.FileExists(t, filepath.Join(root, "out", "2025-07-25", "producer-input", "input_INV-1.xml"))
}

func TestRunScan_ExplicitConfigPath(t *testing.T) {
	c := newTestContainer(t)
	root := writeRunRoot(t)

	stats, err := common.RunScan(context.Background(), c, filepath.Join(root, "config.json"), "", false)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Hits)
}

func TestRunScan_MissingConfig(t *testing.T) {
	c := newTestContainer(t)

	_, err := common.RunScan(context.Background(), c, t.TempDir(), "", false)
	assert.Error(t, err)
}

func TestMapFile_ToWriter(t *testing.T) {
	mock := logging.NewMockLogger()
	mapper := transformer.NewMapper()

	input := filepath.Join(t.TempDir(), "order.xml")
	require.NoError(t, os.WriteFile(input, []byte(orderXML), 0600))

	var out bytes.Buffer
	err := common.MapFile(&out, mapper, input, "", transformer.ModeOrder, false, mock)
	require.NoError(t, err)

	assert.Contains(t, out.String(), `"orders": [`)
	assert.Contains(t, out.String(), `"amount": "217.66"`)
	assert.True(t, bytes.HasSuffix(out.Bytes(), []byte("\n")))
}

func TestMapFile_ToOutputFile(t *testing.T) {
	mock := logging.NewMockLogger()
	mapper := transformer.NewMapper()
	tmp := t.TempDir()

	input := filepath.Join(tmp, "order.xml")
	require.NoError(t, os.WriteFile(input, []byte(orderXML), 0600))
	output := filepath.Join(tmp, "mapped", "order.json")

	var out bytes.Buffer
	err := common.MapFile(&out, mapper, input, output, transformer.ModeOrder, true, mock)
	require.NoError(t, err)

	assert.Zero(t, out.Len())
	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"currency_iso_code": "EUR"`)
	assert.True(t, mock.HasEntry("INFO", "Validation successful."))
}

func TestMapFile_MissingInput(t *testing.T) {
	mock := logging.NewMockLogger()
	mapper := transformer.NewMapper()

	var out bytes.Buffer
	err := common.MapFile(&out, mapper, filepath.Join(t.TempDir(), "nope.xml"), "", transformer.ModeOrder, false, mock)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestMapFile_InvalidFormat(t *testing.T) {
	mock := logging.NewMockLogger()
	mapper := transformer.NewMapper()

	input := filepath.Join(t.TempDir(), "note.xml")
	require.NoError(t, os.WriteFile(input, []byte("<note>hello</note>"), 0600))

	var out bytes.Buffer
	err := common.MapFile(&out, mapper, input, "", transformer.ModeOrder, true, mock)
	assert.ErrorIs(t, err, common.ErrInvalidFormat)
}

func TestPrintSummary(t *testing.T) {
	stats := &models.RunStats{
		FilesScanned: 3,
		Hits:         2,
		FolderHits:   map[string]int{"producer-input": 2, "vertex": 0},
		ZeroHit: []models.FilterLabel{
			{Folder: "vertex", EventDescription: "Vertex call ok"},
		},
	}

	var out bytes.Buffer
	common.PrintSummary(&out, stats)

	text := out.String()
	assert.Contains(t, text, "Files scanned:    3")
	assert.Contains(t, text, "Payloads written: 2")
	assert.Contains(t, text, "producer-input")
	assert.Contains(t, text, `No matches for filter: folder="vertex" description="Vertex call ok"`)
	assert.NotContains(t, text, "Mirror workspace")
}

func TestPrintSummary_WithMirror(t *testing.T) {
	stats := &models.RunStats{
		MirrorWorkspace: "/tmp/gcs_mirror_abc",
		Downloaded:      4,
		Uploaded:        2,
	}

	var out bytes.Buffer
	common.PrintSummary(&out, stats)

	assert.Contains(t, out.String(), "Mirror workspace: /tmp/gcs_mirror_abc (downloaded 4, uploaded 2)")
}

func TestWriteReport_ToWriter(t *testing.T) {
	mock := logging.NewMockLogger()
	gen := report.NewGenerator(mock)
	stats := &models.RunStats{FilesScanned: 1, Hits: 1, WrittenFiles: []string{"producer-input/input_INV-1.xml"}}

	var out bytes.Buffer
	err := common.WriteReport(&out, gen, stats, "json", "", mock)
	require.NoError(t, err)

	assert.Contains(t, out.String(), `"files_scanned": 1`)
	assert.Contains(t, out.String(), "producer-input/input_INV-1.xml")
}

func TestWriteReport_ToFile(t *testing.T) {
	mock := logging.NewMockLogger()
	gen := report.NewGenerator(mock)
	stats := &models.RunStats{WrittenFiles: []string{"pix/pix_K-1.xml"}}
	path := filepath.Join(t.TempDir(), "report.csv")

	var out bytes.Buffer
	err := common.WriteReport(&out, gen, stats, "csv", path, mock)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "folder,path")
	assert.Contains(t, string(data), "pix,pix/pix_K-1.xml")
	assert.Zero(t, out.Len())
}

func TestWriteReport_UnsupportedFormat(t *testing.T) {
	mock := logging.NewMockLogger()
	gen := report.NewGenerator(mock)

	var out bytes.Buffer
	err := common.WriteReport(&out, gen, &models.RunStats{}, "xlsx", "", mock)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported report format")
}

const orderXML = `<MiraklOrderRefund>
  <Order>
    <amount>217.657</amount>
    <currency_iso_code>EUR</currency_iso_code>
    <customer_id>CUST-9</customer_id>
    <order_id>ORD-77</order_id>
    <transaction_date>1755653117</transaction_date>
    <transaction_number>TX-1</transaction_number>
  </Order>
</MiraklOrderRefund>`
