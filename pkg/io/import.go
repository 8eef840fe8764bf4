package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/orgdot/pkg/errors"
	"github.com/matzehuels/orgdot/pkg/org"
)

// ReadJSON decodes an organization from JSON. Unknown fields are rejected.
func ReadJSON(r io.Reader) (*org.Organization, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var o org.Organization
	if err := dec.Decode(&o); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode organization json")
	}
	return normalized(&o), nil
}

// ReadYAML decodes an organization from YAML.
func ReadYAML(r io.Reader) (*org.Organization, error) {
	var doc any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode organization yaml")
	}
	return fromGeneric(stringKeys(doc), "yaml")
}

// ReadTOML decodes an organization from TOML.
func ReadTOML(r io.Reader) (*org.Organization, error) {
	var doc map[string]any
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode organization toml")
	}
	return fromGeneric(doc, "toml")
}

// Read decodes an organization in the given format.
func Read(r io.Reader, f Format) (*org.Organization, error) {
	switch f {
	case FormatJSON:
		return ReadJSON(r)
	case FormatYAML:
		return ReadYAML(r)
	case FormatTOML:
		return ReadTOML(r)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", f)
}

// Import reads an organization file, choosing the decoder by extension.
func Import(path string) (*org.Organization, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return Read(f, format)
}

// fromGeneric re-encodes a generic document as JSON so that every format is
// held to the JSON field names and enum rules.
func fromGeneric(doc any, format string) (*org.Organization, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "convert organization %s", format)
	}
	o, err := ReadJSON(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode organization %s", format)
	}
	return o, nil
}

// stringKeys converts YAML mappings with non-string keys, such as numeric
// IDs, into string-keyed maps that encoding/json accepts.
func stringKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = stringKeys(e)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[fmt.Sprint(k)] = stringKeys(e)
		}
		return m
	case []any:
		for i, e := range t {
			t[i] = stringKeys(e)
		}
		return t
	}
	return v
}
