package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/orgdot/pkg/errors"
	"github.com/matzehuels/orgdot/pkg/org"
)

// Format is an organization document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists the supported encodings.
var Formats = []Format{FormatJSON, FormatYAML, FormatTOML}

// FormatFromPath maps a file extension to its format.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported organization file %q (want .json, .yaml, .yml or .toml)", path)
}

// ParseFormat accepts a format name such as "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	return FormatFromPath("x." + s)
}

// normalized returns a shallow copy of o with nil collections replaced by
// empty ones, so encoders never write null.
func normalized(o *org.Organization) *org.Organization {
	n := *o
	if n.Purposes == nil {
		n.Purposes = map[org.ID]org.Purpose{}
	}
	if n.People == nil {
		n.People = map[org.ID]org.Person{}
	}
	if n.Projects == nil {
		n.Projects = map[org.ID]org.Project{}
	}
	if n.ProductionSystems == nil {
		n.ProductionSystems = map[org.ID]org.ProductionSystem{}
	}
	if n.PropertyItems == nil {
		n.PropertyItems = map[org.ID]org.PropertyItem{}
	}
	if n.ProgressMetrics == nil {
		n.ProgressMetrics = map[org.ID]org.ProgressMetric{}
	}
	if n.Relationships == nil {
		n.Relationships = []org.Relationship{}
	}
	return &n
}
