package org

import "fmt"

// ProjectStatus is the lifecycle state of a [Project].
type ProjectStatus int

const (
	ProjectPlanning ProjectStatus = iota
	ProjectActive
	ProjectCompleted
	ProjectOnHold
)

var projectStatusNames = []string{"Planning", "Active", "Completed", "OnHold"}

// AllProjectStatuses lists every ProjectStatus in declaration order.
var AllProjectStatuses = []ProjectStatus{ProjectPlanning, ProjectActive, ProjectCompleted, ProjectOnHold}

func (s ProjectStatus) String() string { return enumString("ProjectStatus", projectStatusNames, int(s)) }

func (s ProjectStatus) MarshalText() ([]byte, error) {
	return enumMarshal("ProjectStatus", projectStatusNames, int(s))
}

func (s *ProjectStatus) UnmarshalText(text []byte) error {
	return enumUnmarshal("ProjectStatus", projectStatusNames, text, (*int)(s))
}

// SystemStatus is the operational state of a [ProductionSystem].
type SystemStatus int

const (
	SystemOperational SystemStatus = iota
	SystemMaintenance
	SystemDegraded
	SystemOffline
)

var systemStatusNames = []string{"Operational", "Maintenance", "Degraded", "Offline"}

// AllSystemStatuses lists every SystemStatus in declaration order.
var AllSystemStatuses = []SystemStatus{SystemOperational, SystemMaintenance, SystemDegraded, SystemOffline}

func (s SystemStatus) String() string { return enumString("SystemStatus", systemStatusNames, int(s)) }

func (s SystemStatus) MarshalText() ([]byte, error) {
	return enumMarshal("SystemStatus", systemStatusNames, int(s))
}

func (s *SystemStatus) UnmarshalText(text []byte) error {
	return enumUnmarshal("SystemStatus", systemStatusNames, text, (*int)(s))
}

// PropertyType classifies a [PropertyItem].
type PropertyType int

const (
	PropertyPhysical PropertyType = iota
	PropertyIntellectual
	PropertyFinancial
)

var propertyTypeNames = []string{"Physical", "Intellectual", "Financial"}

// AllPropertyTypes lists every PropertyType in declaration order.
var AllPropertyTypes = []PropertyType{PropertyPhysical, PropertyIntellectual, PropertyFinancial}

func (p PropertyType) String() string { return enumString("PropertyType", propertyTypeNames, int(p)) }

func (p PropertyType) MarshalText() ([]byte, error) {
	return enumMarshal("PropertyType", propertyTypeNames, int(p))
}

func (p *PropertyType) UnmarshalText(text []byte) error {
	return enumUnmarshal("PropertyType", propertyTypeNames, text, (*int)(p))
}

// EntityType names the collection an entity lives in. Relationships use it
// to declare the type of their endpoints.
type EntityType int

const (
	EntityPurpose EntityType = iota
	EntityPerson
	EntityProject
	EntityProductionSystem
	EntityProperty
	EntityProgress
)

var entityTypeNames = []string{"Purpose", "Person", "Project", "ProductionSystem", "Property", "Progress"}

// AllEntityTypes lists every EntityType in tier order (top to bottom).
var AllEntityTypes = []EntityType{
	EntityPurpose, EntityPerson, EntityProject, EntityProductionSystem, EntityProperty, EntityProgress,
}

func (t EntityType) String() string { return enumString("EntityType", entityTypeNames, int(t)) }

func (t EntityType) MarshalText() ([]byte, error) {
	return enumMarshal("EntityType", entityTypeNames, int(t))
}

func (t *EntityType) UnmarshalText(text []byte) error {
	return enumUnmarshal("EntityType", entityTypeNames, text, (*int)(t))
}

// RelationType is the predicate of a [Relationship].
type RelationType int

const (
	// Person relationships
	WorksOn RelationType = iota
	Manages
	Leads

	// Project relationships
	Serves        // Project serves Purpose
	DependsOn     // Project depends on Project
	Uses          // Uses PropertyItem
	TransitionsTo // Project transitions to ProductionSystem

	// Production relationships
	Maintains // Person maintains ProductionSystem
	Requires  // ProductionSystem requires PropertyItem
	Supports  // ProductionSystem supports Purpose

	// Generic
	PartOf
)

var relationTypeNames = []string{
	"WorksOn", "Manages", "Leads",
	"Serves", "DependsOn", "Uses", "TransitionsTo",
	"Maintains", "Requires", "Supports",
	"PartOf",
}

// AllRelationTypes lists every RelationType in declaration order.
var AllRelationTypes = []RelationType{
	WorksOn, Manages, Leads,
	Serves, DependsOn, Uses, TransitionsTo,
	Maintains, Requires, Supports,
	PartOf,
}

func (r RelationType) String() string { return enumString("RelationType", relationTypeNames, int(r)) }

func (r RelationType) MarshalText() ([]byte, error) {
	return enumMarshal("RelationType", relationTypeNames, int(r))
}

func (r *RelationType) UnmarshalText(text []byte) error {
	return enumUnmarshal("RelationType", relationTypeNames, text, (*int)(r))
}

// Names returns the variant names of every enum, keyed by enum type name.
// The schema exporter uses it to describe the closed sets.
func Names() map[string][]string {
	clone := func(s []string) []string { return append([]string(nil), s...) }
	return map[string][]string{
		"ProjectStatus": clone(projectStatusNames),
		"SystemStatus":  clone(systemStatusNames),
		"PropertyType":  clone(propertyTypeNames),
		"EntityType":    clone(entityTypeNames),
		"RelationType":  clone(relationTypeNames),
	}
}

func enumString(kind string, names []string, v int) string {
	if v >= 0 && v < len(names) {
		return names[v]
	}
	return fmt.Sprintf("%s(%d)", kind, v)
}

func enumMarshal(kind string, names []string, v int) ([]byte, error) {
	if v < 0 || v >= len(names) {
		return nil, fmt.Errorf("invalid %s value %d", kind, v)
	}
	return []byte(names[v]), nil
}

func enumUnmarshal(kind string, names []string, text []byte, dst *int) error {
	s := string(text)
	for i, name := range names {
		if name == s {
			*dst = i
			return nil
		}
	}
	return fmt.Errorf("unknown %s %q", kind, s)
}
