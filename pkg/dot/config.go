package dot

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/orgdot/pkg/errors"
	"github.com/matzehuels/orgdot/pkg/org"
)

// Config controls DOT generation. The zero value is usable but draws every
// node without a shape or color; start from [DefaultConfig] instead.
type Config struct {
	// UseSubgraphs groups nodes into one dashed cluster per entity type.
	// Ignored when UseHierarchicalLayout is set.
	UseSubgraphs bool `json:"use_subgraphs" toml:"use_subgraphs"`

	// Rankdir is the graph direction: TB, LR, BT or RL. Omitted in template mode.
	Rankdir string `json:"rankdir" toml:"rankdir"`

	// ShowStatus appends "[Status]" to project and production system labels.
	ShowStatus bool `json:"show_status" toml:"show_status"`

	NodeShapes NodeShapes `json:"node_shapes" toml:"node_shapes"`
	Colors     Colors     `json:"colors" toml:"colors"`

	// UseHierarchicalLayout selects the tiered layout. It takes priority
	// over UseSubgraphs.
	UseHierarchicalLayout bool `json:"use_hierarchical_layout" toml:"use_hierarchical_layout"`

	// UseTemplateMode replaces the standard graph header with the fixed
	// attribute blocks of the managers template.
	UseTemplateMode bool `json:"use_template_mode" toml:"use_template_mode"`
}

// NodeShapes is the DOT shape used for each entity type.
type NodeShapes struct {
	Purpose    string `json:"purpose" toml:"purpose"`
	Person     string `json:"person" toml:"person"`
	Project    string `json:"project" toml:"project"`
	Production string `json:"production" toml:"production"`
	Property   string `json:"property" toml:"property"`
	Progress   string `json:"progress" toml:"progress"`
}

// Colors holds the default fill colors, per type and per status.
type Colors struct {
	Purpose               string `json:"purpose" toml:"purpose"`
	Person                string `json:"person" toml:"person"`
	ProjectPlanning       string `json:"project_planning" toml:"project_planning"`
	ProjectActive         string `json:"project_active" toml:"project_active"`
	ProjectCompleted      string `json:"project_completed" toml:"project_completed"`
	ProjectOnHold         string `json:"project_onhold" toml:"project_onhold"`
	ProductionOperational string `json:"production_operational" toml:"production_operational"`
	ProductionMaintenance string `json:"production_maintenance" toml:"production_maintenance"`
	ProductionDegraded    string `json:"production_degraded" toml:"production_degraded"`
	ProductionOffline     string `json:"production_offline" toml:"production_offline"`
	Property              string `json:"property" toml:"property"`
	Progress              string `json:"progress" toml:"progress"`
}

// DefaultConfig returns the hierarchical, top-to-bottom configuration with
// status labels and the stock palette.
func DefaultConfig() Config {
	return Config{
		UseSubgraphs: true,
		Rankdir:      "TB",
		ShowStatus:   true,
		NodeShapes: NodeShapes{
			Purpose:    "ellipse",
			Person:     "box",
			Project:    "component",
			Production: "cylinder",
			Property:   "folder",
			Progress:   "box",
		},
		Colors: Colors{
			Purpose:               "lightblue",
			Person:                "lightgreen",
			ProjectPlanning:       "lightyellow",
			ProjectActive:         "lightcyan",
			ProjectCompleted:      "lightgray",
			ProjectOnHold:         "orange",
			ProductionOperational: "green",
			ProductionMaintenance: "yellow",
			ProductionDegraded:    "orange",
			ProductionOffline:     "red",
			Property:              "wheat",
			Progress:              "lightblue",
		},
		UseHierarchicalLayout: true,
	}
}

// Validate checks the fields that end up unquoted in the graph header.
func (c Config) Validate() error {
	return errors.ValidateRankdir(c.Rankdir)
}

// Project returns the default fill color for a project status. Unknown
// statuses use the Planning color.
func (c Colors) Project(s org.ProjectStatus) string {
	switch s {
	case org.ProjectActive:
		return c.ProjectActive
	case org.ProjectCompleted:
		return c.ProjectCompleted
	case org.ProjectOnHold:
		return c.ProjectOnHold
	default:
		return c.ProjectPlanning
	}
}

// Production returns the default fill color for a system status. Unknown
// statuses use the Operational color.
func (c Colors) Production(s org.SystemStatus) string {
	switch s {
	case org.SystemMaintenance:
		return c.ProductionMaintenance
	case org.SystemDegraded:
		return c.ProductionDegraded
	case org.SystemOffline:
		return c.ProductionOffline
	default:
		return c.ProductionOperational
	}
}

// DecodeConfig reads a TOML document over [DefaultConfig]. Keys missing
// from the document keep their defaults; unknown keys are rejected.
//
//	rankdir = "LR"
//	use_hierarchical_layout = false
//
//	[colors]
//	project_active = "palegreen"
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DecodeConfigJSON reads a JSON document over [DefaultConfig], with the
// same rules as [DecodeConfig].
func DecodeConfigJSON(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a config file, JSON when the extension is .json and TOML
// otherwise. An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open config %s", path)
		}
		return DecodeConfigJSON(data)
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open config %s", path)
	}
	defer f.Close()
	return DecodeConfig(f)
}

// EncodeConfig writes cfg as TOML.
func EncodeConfig(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}
