// Package layoutfile reads declarative layouts and action scripts from
// JSON, TOML or YAML documents.
package layoutfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/bnema/sashes/internal/application/usecase"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts a format name or a file extension.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), ".")) {
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported layout format %q (use json, toml or yaml)", name)
	}
}

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("cannot detect format of %s: no file extension", path)
	}
	return ParseFormat(ext)
}

// DecodeDocument decodes data into a generic document whose root is a table.
func DecodeDocument(data []byte, format Format) (map[string]any, error) {
	doc := map[string]any{}

	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode JSON: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode TOML: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported layout format %q", format)
	}

	return doc, nil
}

// Decode parses a layout document into builder input.
func Decode(data []byte, format Format) (usecase.LayoutConfig, error) {
	doc, err := DecodeDocument(data, format)
	if err != nil {
		return usecase.LayoutConfig{}, err
	}
	return usecase.DecodeLayoutConfig(doc)
}

// Load reads and decodes a layout file, choosing the format by extension.
func Load(path string) (usecase.LayoutConfig, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return usecase.LayoutConfig{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return usecase.LayoutConfig{}, fmt.Errorf("failed to read layout file: %w", err)
	}

	cfg, err := Decode(data, format)
	if err != nil {
		return usecase.LayoutConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
