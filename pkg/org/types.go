package org

import "strings"

// ID identifies an entity. IDs become DOT node names verbatim.
type ID string

// DisplayAttributes overrides how a single node is drawn.
type DisplayAttributes struct {
	Color         *string `json:"color,omitempty" jsonschema:"fill color overriding the type or status default"`
	Shape         *string `json:"shape,omitempty" jsonschema:"DOT shape overriding the type default"`
	Style         *string `json:"style,omitempty" jsonschema:"DOT node style"`
	LabelOverride *string `json:"label_override,omitempty" jsonschema:"label replacing the computed one"`
}

// EdgeDisplayAttributes overrides how a single relationship is drawn.
type EdgeDisplayAttributes struct {
	Color  *string  `json:"color,omitempty" jsonschema:"edge color, black when unset"`
	Style  *string  `json:"style,omitempty" jsonschema:"DOT edge style, solid when unset"`
	Label  *string  `json:"label,omitempty" jsonschema:"secondary label emitted as xlabel"`
	Weight *float32 `json:"weight,omitempty" jsonschema:"layout weight"`
}

// Purpose is a reason the organization exists.
type Purpose struct {
	ID          ID                `json:"id"`
	Description string            `json:"description"`
	Display     DisplayAttributes `json:"display"`
}

// Person is a member of the organization.
type Person struct {
	ID      ID                `json:"id"`
	Name    string            `json:"name"`
	Title   string            `json:"title"`
	Display DisplayAttributes `json:"display"`
}

// Project is time-boxed work.
type Project struct {
	ID      ID                `json:"id"`
	Name    string            `json:"name"`
	Status  ProjectStatus     `json:"status"`
	Display DisplayAttributes `json:"display"`
}

// ProductionSystem is a system the organization operates.
type ProductionSystem struct {
	ID      ID                `json:"id"`
	Name    string            `json:"name"`
	Status  SystemStatus      `json:"status"`
	Display DisplayAttributes `json:"display"`
}

// PropertyItem is an asset owned or used by the organization.
type PropertyItem struct {
	ID           ID                `json:"id"`
	Name         string            `json:"name"`
	PropertyType PropertyType      `json:"property_type"`
	Display      DisplayAttributes `json:"display"`
}

// ProgressMetric is a tracked indicator such as a KPI.
type ProgressMetric struct {
	ID         ID                `json:"id"`
	Name       string            `json:"name"`
	MetricType string            `json:"metric_type" jsonschema:"free-form kind of metric, for example KPI or OKR"`
	Display    DisplayAttributes `json:"display"`
}

// Relationship is a directed, labelled edge from Subject to Object.
type Relationship struct {
	SubjectID   ID                    `json:"subject_id"`
	SubjectType EntityType            `json:"subject_type"`
	Predicate   RelationType          `json:"predicate"`
	ObjectID    ID                    `json:"object_id"`
	ObjectType  EntityType            `json:"object_type"`
	Display     EdgeDisplayAttributes `json:"display"`
}

// Organization is the root aggregate handed to the DOT emitter.
type Organization struct {
	Name              string                  `json:"name" jsonschema:"organization name, used as the graph label"`
	Purposes          map[ID]Purpose          `json:"purposes"`
	People            map[ID]Person           `json:"people"`
	Projects          map[ID]Project          `json:"projects"`
	ProductionSystems map[ID]ProductionSystem `json:"production_systems"`
	PropertyItems     map[ID]PropertyItem     `json:"property_items"`
	ProgressMetrics   map[ID]ProgressMetric   `json:"progress_metrics,omitempty" jsonschema:"KPIs, drawn only by the hierarchical layout"`
	Relationships     []Relationship          `json:"relationships"`
}

// Label is the description truncated to 30 characters.
func (p Purpose) Label() string {
	return Truncate(p.Description, PurposeLabelLength)
}

// Label is the name, followed by the title on a second line when set.
func (p Person) Label() string {
	if p.Title == "" {
		return p.Name
	}
	return p.Name + "\n" + p.Title
}

// Label is the name, optionally followed by "[Status]" on a second line.
func (p Project) Label(showStatus bool) string {
	if !showStatus {
		return p.Name
	}
	return p.Name + "\n[" + p.Status.String() + "]"
}

// Label is the name, optionally followed by "[Status]" on a second line.
func (s ProductionSystem) Label(showStatus bool) string {
	if !showStatus {
		return s.Name
	}
	return s.Name + "\n[" + s.Status.String() + "]"
}

func (p PropertyItem) Label() string   { return p.Name }
func (m ProgressMetric) Label() string { return m.Name }

// PurposeLabelLength is the number of characters kept from a purpose
// description before it is truncated.
const PurposeLabelLength = 30

// Truncate shortens s to at most n runes, replacing the tail with "..."
// when anything was cut. The result, ellipsis included, is never longer
// than n runes unless n is below 3.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	keep := max(n-3, 0)
	var b strings.Builder
	b.WriteString(string(r[:keep]))
	b.WriteString("...")
	return b.String()
}

// Ptr returns a pointer to v. It keeps overlay literals short:
//
//	org.DisplayAttributes{Color: org.Ptr("red")}
func Ptr[T any](v T) *T { return &v }
