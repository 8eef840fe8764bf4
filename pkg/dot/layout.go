package dot

import (
	"strings"

	"github.com/matzehuels/orgdot/pkg/errors"
)

// Layout is the node emission strategy.
type Layout int

const (
	// LayoutHierarchical arranges entities into tiered clusters held in
	// place by invisible edges and rank constraints.
	LayoutHierarchical Layout = iota
	// LayoutClustered emits one dashed cluster per non-empty entity type.
	LayoutClustered
	// LayoutFlat emits bare node statements.
	LayoutFlat
)

var layoutNames = []string{"hierarchical", "clustered", "flat"}

// Layouts lists every layout in selection priority order.
var Layouts = []Layout{LayoutHierarchical, LayoutClustered, LayoutFlat}

func (l Layout) String() string {
	if l >= 0 && int(l) < len(layoutNames) {
		return layoutNames[l]
	}
	return "unknown"
}

func (l Layout) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

func (l *Layout) UnmarshalText(text []byte) error {
	parsed, err := ParseLayout(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLayout accepts a layout name, case-insensitively.
func ParseLayout(s string) (Layout, error) {
	for i, name := range layoutNames {
		if strings.EqualFold(s, name) {
			return Layout(i), nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidLayout, "unknown layout %q (want hierarchical, clustered or flat)", s)
}

// Layout selects the emission strategy: hierarchical when enabled, else
// clustered when subgraphs are on, else flat.
func (c Config) Layout() Layout {
	switch {
	case c.UseHierarchicalLayout:
		return LayoutHierarchical
	case c.UseSubgraphs:
		return LayoutClustered
	default:
		return LayoutFlat
	}
}

// WithLayout returns a copy of c whose flags select l.
func (c Config) WithLayout(l Layout) Config {
	switch l {
	case LayoutHierarchical:
		c.UseHierarchicalLayout = true
	case LayoutClustered:
		c.UseHierarchicalLayout = false
		c.UseSubgraphs = true
	default:
		c.UseHierarchicalLayout = false
		c.UseSubgraphs = false
	}
	return c
}
