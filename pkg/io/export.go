package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/orgdot/pkg/errors"
	"github.com/matzehuels/orgdot/pkg/org"
)

// WriteJSON encodes o as indented JSON.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(o *org.Organization, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(normalized(o)); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// WriteYAML encodes o as YAML using the JSON field names.
func WriteYAML(o *org.Organization, w io.Writer) error {
	doc, err := toGeneric(o)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// WriteTOML encodes o as TOML using the JSON field names.
func WriteTOML(o *org.Organization, w io.Writer) error {
	doc, err := toGeneric(o)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	return nil
}

// Write encodes o in the given format.
func Write(o *org.Organization, w io.Writer, f Format) error {
	switch f {
	case FormatJSON:
		return WriteJSON(o, w)
	case FormatYAML:
		return WriteYAML(o, w)
	case FormatTOML:
		return WriteTOML(o, w)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", f)
}

// Export writes o to path, choosing the encoder by extension.
func Export(o *org.Organization, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(o, f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func toGeneric(o *org.Organization) (map[string]any, error) {
	data, err := json.Marshal(normalized(o))
	if err != nil {
		return nil, fmt.Errorf("encode organization: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("encode organization: %w", err)
	}
	return doc, nil
}
