package openapi

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v4"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// EncodeJSON writes the document indented by two spaces with a trailing newline.
// HTML characters in descriptions are left unescaped.
func (s *Spec) EncodeJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encoding JSON: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Spec) EncodeYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encoding YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// Marshal encodes the document in the given format.
func (s *Spec) Marshal(f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return s.EncodeJSON()
	case FormatYAML:
		return s.EncodeYAML()
	default:
		return nil, fmt.Errorf("unsupported document format %q", f)
	}
}
