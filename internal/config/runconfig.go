package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// RunConfig is the per-run scan configuration, conventionally a
// config.json at the root of the scanned workspace.
type RunConfig struct {
	InputGlob string       `mapstructure:"input_glob" yaml:"input_glob"`
	Output    string       `mapstructure:"output" yaml:"output"`
	Fresh     bool         `mapstructure:"fresh" yaml:"fresh"`
	Filters   []FilterRule `mapstructure:"filters" yaml:"filters"`
}

// FilterRule selects audit records by event metadata and names the output
// folder receiving their payloads. EventName is optional; rules without an
// EventDescription are dropped during scanner normalization, not here.
type FilterRule struct {
	Folder           string `mapstructure:"folder" yaml:"folder"`
	EventDescription string `mapstructure:"event_description" yaml:"event_description"`
	EventName        string `mapstructure:"event_name" yaml:"event_name"`
}

// LoadRunConfig reads a run config file (JSON or YAML, by extension),
// expands environment references in every string value, and resolves
// input_glob and output against the config file's directory. Unknown keys
// are ignored.
func LoadRunConfig(path string) (*RunConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("json")
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read run config %s: %w", path, err)
	}

	// Expansion runs over the raw settings tree so every string value is
	// covered, nested filter fields included.
	expanded := ExpandEnvDeep(v.AllSettings()).(map[string]any)

	ev := viper.New()
	if err := ev.MergeConfigMap(expanded); err != nil {
		return nil, fmt.Errorf("failed to merge run config: %w", err)
	}

	var cfg RunConfig
	if err := ev.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run config %s: %w", path, err)
	}

	baseDir := filepath.Dir(path)
	cfg.InputGlob = resolveAgainst(baseDir, cfg.InputGlob)
	cfg.Output = resolveAgainst(baseDir, cfg.Output)

	return &cfg, nil
}

// ExpandEnvString expands $VAR and ${VAR} references and a leading ~.
func ExpandEnvString(s string) string {
	s = os.ExpandEnv(s)
	if s == "~" || strings.HasPrefix(s, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			s = filepath.Join(home, s[1:])
		}
	}
	return s
}

// ExpandEnvDeep walks maps, slices, and strings, expanding every string
// value it finds. Non-string leaves pass through untouched.
func ExpandEnvDeep(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = ExpandEnvDeep(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = ExpandEnvDeep(item)
		}
		return out
	case string:
		return ExpandEnvString(v)
	default:
		return value
	}
}

func resolveAgainst(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
