package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRunConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadRunConfig_JSON(t *testing.T) {
	content := `{
  "input_glob": "dumps/*.json",
  "output": "out",
  "fresh": true,
  "filters": [
    {"folder": "Producer Input", "event_description": "Payload received", "event_name": "PRODUCER"},
    {"folder": "mirakl order", "event_description": "Order sent"}
  ],
  "unknown_key": 42
}`
	path := writeRunConfig(t, "config.json", content)

	cfg, err := LoadRunConfig(path)
	require.NoError(t, err)

	baseDir := filepath.Dir(path)
	assert.Equal(t, filepath.Join(baseDir, "dumps/*.json"), cfg.InputGlob)
	assert.Equal(t, filepath.Join(baseDir, "out"), cfg.Output)
	assert.True(t, cfg.Fresh)

	require.Len(t, cfg.Filters, 2)
	assert.Equal(t, "Producer Input", cfg.Filters[0].Folder)
	assert.Equal(t, "Payload received", cfg.Filters[0].EventDescription)
	assert.Equal(t, "PRODUCER", cfg.Filters[0].EventName)
	assert.Equal(t, "mirakl order", cfg.Filters[1].Folder)
	assert.Equal(t, "", cfg.Filters[1].EventName)
}

func TestLoadRunConfig_YAML(t *testing.T) {
	content := `
input_glob: "dumps/*.json"
output: out
filters:
  - folder: vertex
    event_description: Tax calculated
`
	path := writeRunConfig(t, "config.yaml", content)

	cfg, err := LoadRunConfig(path)
	require.NoError(t, err)

	assert.False(t, cfg.Fresh)
	require.Len(t, cfg.Filters, 1)
	assert.Equal(t, "vertex", cfg.Filters[0].Folder)
}

func TestLoadRunConfig_ExpandsEnvironment(t *testing.T) {
	t.Setenv("DUMP_DIR", "es-dumps")
	t.Setenv("EVENT_PREFIX", "Invoice")

	content := `{
  "input_glob": "$DUMP_DIR/*.json",
  "output": "out",
  "filters": [
    {"folder": "mirakl order", "event_description": "${EVENT_PREFIX} created"}
  ]
}`
	path := writeRunConfig(t, "config.json", content)

	cfg, err := LoadRunConfig(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(filepath.Dir(path), "es-dumps/*.json"), cfg.InputGlob)
	require.Len(t, cfg.Filters, 1)
	assert.Equal(t, "Invoice created", cfg.Filters[0].EventDescription)
}

func TestLoadRunConfig_AbsolutePathsKept(t *testing.T) {
	content := `{
  "input_glob": "/data/dumps/*.json",
  "output": "/data/out",
  "filters": []
}`
	path := writeRunConfig(t, "config.json", content)

	cfg, err := LoadRunConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/dumps/*.json", cfg.InputGlob)
	assert.Equal(t, "/data/out", cfg.Output)
}

func TestLoadRunConfig_KeepsDescriptionlessRules(t *testing.T) {
	// Dropping rules without a description is scanner normalization;
	// loading preserves the file as written.
	content := `{
  "input_glob": "*.json",
  "output": "out",
  "filters": [{"folder": "pix"}]
}`
	path := writeRunConfig(t, "config.json", content)

	cfg, err := LoadRunConfig(path)
	require.NoError(t, err)
	require.Len(t, cfg.Filters, 1)
	assert.Equal(t, "", cfg.Filters[0].EventDescription)
}

func TestLoadRunConfig_MissingFile(t *testing.T) {
	_, err := LoadRunConfig(filepath.Join(t.TempDir(), "config.json"))
	assert.Error(t, err)
}

func TestLoadRunConfig_MalformedJSON(t *testing.T) {
	path := writeRunConfig(t, "config.json", `{"input_glob": `)

	_, err := LoadRunConfig(path)
	assert.Error(t, err)
}

func TestExpandEnvString(t *testing.T) {
	t.Setenv("SI_LOG_TEST_VALUE", "resolved")

	assert.Equal(t, "resolved/x", ExpandEnvString("$SI_LOG_TEST_VALUE/x"))
	assert.Equal(t, "resolved/x", ExpandEnvString("${SI_LOG_TEST_VALUE}/x"))

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, home, ExpandEnvString("~"))
	assert.Equal(t, filepath.Join(home, "dumps"), ExpandEnvString("~/dumps"))

	// A ~ not in leading position is literal
	assert.Equal(t, "a~b", ExpandEnvString("a~b"))
}

func TestExpandEnvDeep(t *testing.T) {
	t.Setenv("SI_LOG_TEST_VALUE", "resolved")

	input := map[string]any{
		"plain":  "no refs",
		"ref":    "$SI_LOG_TEST_VALUE",
		"number": 7,
		"flag":   true,
		"list": []any{
			"$SI_LOG_TEST_VALUE",
			map[string]any{"nested": "${SI_LOG_TEST_VALUE}"},
		},
	}

	out := ExpandEnvDeep(input).(map[string]any)

	assert.Equal(t, "no refs", out["plain"])
	assert.Equal(t, "resolved", out["ref"])
	assert.Equal(t, 7, out["number"])
	assert.Equal(t, true, out["flag"])

	list := out["list"].([]any)
	assert.Equal(t, "resolved", list[0])
	assert.Equal(t, "resolved", list[1].(map[string]any)["nested"])
}
