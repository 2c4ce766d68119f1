package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// Config holds everything modelguard reads from files, env and flags.
// Zero values mean "unspecified" and are filled by Defaults or left empty.
type Config struct {
	ModelPath       string `json:"model_path" yaml:"model_path" toml:"model_path"`
	LogLevel        string `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat       string `json:"log_format" yaml:"log_format" toml:"log_format"`
	LogFile         string `json:"log_file" yaml:"log_file" toml:"log_file"`
	Addr            string `json:"addr" yaml:"addr" toml:"addr"`
	WatchDebounceMS int    `json:"watch_debounce_ms" yaml:"watch_debounce_ms" toml:"watch_debounce_ms"`
	LlamaCtx        int    `json:"llama_ctx" yaml:"llama_ctx" toml:"llama_ctx"`
	LlamaGPULayers  int    `json:"llama_gpu_layers" yaml:"llama_gpu_layers" toml:"llama_gpu_layers"`
}

//go:embed schema.json
var schemaJSON string

const schemaURL = "modelguard.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString(schemaURL, schemaJSON)
	})
	return schema, schemaErr
}

// Load reads a configuration file based on its extension and validates it
// against the embedded schema before decoding.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	var raw map[string]any
	var decode func(any) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		decode = func(v any) error { return yaml.Unmarshal(b, v) }
	case ".json":
		decode = func(v any) error { return json.Unmarshal(b, v) }
	case ".toml":
		decode = func(v any) error { return toml.Unmarshal(b, v) }
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if err := decode(&raw); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	dropNulls(raw)
	if err := validateRaw(raw); err != nil {
		return cfg, fmt.Errorf("validate %s: %w", path, err)
	}
	if err := decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg, nil
}

// dropNulls removes keys set to null (yaml `~`, json `null`) so they read as
// unset rather than failing the schema's type checks.
func dropNulls(raw map[string]any) {
	for k, v := range raw {
		if v == nil {
			delete(raw, k)
		}
	}
}

// validateRaw checks a decoded document against the schema. The document is
// round-tripped through JSON so yaml and toml number types match what the
// validator expects.
func validateRaw(raw map[string]any) error {
	if raw == nil {
		raw = map[string]any{}
	}
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}
	return s.Validate(doc)
}
