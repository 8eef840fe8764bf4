package org

import (
	"fmt"
	"slices"
)

// New returns an empty organization with every collection allocated.
func New(name string) *Organization {
	return &Organization{
		Name:              name,
		Purposes:          make(map[ID]Purpose),
		People:            make(map[ID]Person),
		Projects:          make(map[ID]Project),
		ProductionSystems: make(map[ID]ProductionSystem),
		PropertyItems:     make(map[ID]PropertyItem),
		ProgressMetrics:   make(map[ID]ProgressMetric),
	}
}

// AddPurpose stores p under p.ID, replacing any previous purpose with that ID.
func (o *Organization) AddPurpose(p Purpose) *Organization {
	if o.Purposes == nil {
		o.Purposes = make(map[ID]Purpose)
	}
	o.Purposes[p.ID] = p
	return o
}

// AddPerson stores p under p.ID.
func (o *Organization) AddPerson(p Person) *Organization {
	if o.People == nil {
		o.People = make(map[ID]Person)
	}
	o.People[p.ID] = p
	return o
}

// AddProject stores p under p.ID.
func (o *Organization) AddProject(p Project) *Organization {
	if o.Projects == nil {
		o.Projects = make(map[ID]Project)
	}
	o.Projects[p.ID] = p
	return o
}

// AddProductionSystem stores s under s.ID.
func (o *Organization) AddProductionSystem(s ProductionSystem) *Organization {
	if o.ProductionSystems == nil {
		o.ProductionSystems = make(map[ID]ProductionSystem)
	}
	o.ProductionSystems[s.ID] = s
	return o
}

// AddPropertyItem stores p under p.ID.
func (o *Organization) AddPropertyItem(p PropertyItem) *Organization {
	if o.PropertyItems == nil {
		o.PropertyItems = make(map[ID]PropertyItem)
	}
	o.PropertyItems[p.ID] = p
	return o
}

// AddProgressMetric stores m under m.ID.
func (o *Organization) AddProgressMetric(m ProgressMetric) *Organization {
	if o.ProgressMetrics == nil {
		o.ProgressMetrics = make(map[ID]ProgressMetric)
	}
	o.ProgressMetrics[m.ID] = m
	return o
}

// AddRelationship appends r. Endpoints are not checked.
func (o *Organization) AddRelationship(r Relationship) *Organization {
	o.Relationships = append(o.Relationships, r)
	return o
}

// Relate appends a relationship between two existing entities, taking the
// endpoint types from the collections that hold them. It fails when either
// ID is unknown.
func (o *Organization) Relate(subject ID, predicate RelationType, object ID) error {
	st, ok := o.Lookup(subject)
	if !ok {
		return fmt.Errorf("relate: unknown subject %q", subject)
	}
	ot, ok := o.Lookup(object)
	if !ok {
		return fmt.Errorf("relate: unknown object %q", object)
	}
	o.AddRelationship(Rel(st, subject, predicate, ot, object))
	return nil
}

// Rel builds a relationship with no display overrides.
func Rel(subjectType EntityType, subject ID, predicate RelationType, objectType EntityType, object ID) Relationship {
	return Relationship{
		SubjectID:   subject,
		SubjectType: subjectType,
		Predicate:   predicate,
		ObjectID:    object,
		ObjectType:  objectType,
	}
}

// Lookup reports which collection holds id, checking collections in tier
// order. With duplicate IDs the first match wins.
func (o *Organization) Lookup(id ID) (EntityType, bool) {
	for _, t := range AllEntityTypes {
		if o.Has(t, id) {
			return t, true
		}
	}
	return 0, false
}

// Has reports whether the collection for t contains id.
func (o *Organization) Has(t EntityType, id ID) bool {
	var ok bool
	switch t {
	case EntityPurpose:
		_, ok = o.Purposes[id]
	case EntityPerson:
		_, ok = o.People[id]
	case EntityProject:
		_, ok = o.Projects[id]
	case EntityProductionSystem:
		_, ok = o.ProductionSystems[id]
	case EntityProperty:
		_, ok = o.PropertyItems[id]
	case EntityProgress:
		_, ok = o.ProgressMetrics[id]
	}
	return ok
}

// EntityCount is the number of entities across all collections.
func (o *Organization) EntityCount() int {
	return len(o.Purposes) + len(o.People) + len(o.Projects) +
		len(o.ProductionSystems) + len(o.PropertyItems) + len(o.ProgressMetrics)
}

// IDs returns the IDs of one collection sorted in byte order.
func (o *Organization) IDs(t EntityType) []ID {
	switch t {
	case EntityPurpose:
		return sortedKeys(o.Purposes)
	case EntityPerson:
		return sortedKeys(o.People)
	case EntityProject:
		return sortedKeys(o.Projects)
	case EntityProductionSystem:
		return sortedKeys(o.ProductionSystems)
	case EntityProperty:
		return sortedKeys(o.PropertyItems)
	case EntityProgress:
		return sortedKeys(o.ProgressMetrics)
	}
	return nil
}

// NodesByType groups sorted IDs by entity type. Empty collections are
// omitted from the result.
func (o *Organization) NodesByType() map[EntityType][]ID {
	out := make(map[EntityType][]ID)
	for _, t := range AllEntityTypes {
		if ids := o.IDs(t); len(ids) > 0 {
			out[t] = ids
		}
	}
	return out
}

// NodeLabel returns the plain label of an entity: its label override, or
// the full description, "name\ntitle" or "name\n[Status]" depending on the
// type. Unknown IDs yield "".
func (o *Organization) NodeLabel(id ID, t EntityType) string {
	var (
		label    string
		override *string
	)
	switch t {
	case EntityPurpose:
		p, ok := o.Purposes[id]
		if !ok {
			return ""
		}
		label, override = p.Description, p.Display.LabelOverride
	case EntityPerson:
		p, ok := o.People[id]
		if !ok {
			return ""
		}
		label, override = p.Label(), p.Display.LabelOverride
	case EntityProject:
		p, ok := o.Projects[id]
		if !ok {
			return ""
		}
		label, override = p.Label(true), p.Display.LabelOverride
	case EntityProductionSystem:
		s, ok := o.ProductionSystems[id]
		if !ok {
			return ""
		}
		label, override = s.Label(true), s.Display.LabelOverride
	case EntityProperty:
		p, ok := o.PropertyItems[id]
		if !ok {
			return ""
		}
		label, override = p.Label(), p.Display.LabelOverride
	case EntityProgress:
		m, ok := o.ProgressMetrics[id]
		if !ok {
			return ""
		}
		label, override = m.Label(), m.Display.LabelOverride
	}
	if override != nil {
		return *override
	}
	return label
}

func sortedKeys[V any](m map[ID]V) []ID {
	ids := make([]ID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
