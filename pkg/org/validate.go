package org

import (
	"fmt"
	"strings"

	"github.com/matzehuels/orgdot/pkg/errors"
)

// IssueKind classifies a problem found by [Validate].
type IssueKind string

const (
	IssueDuplicateID      IssueKind = "DUPLICATE_ID"
	IssueKeyMismatch      IssueKind = "KEY_MISMATCH"
	IssueDanglingEndpoint IssueKind = "DANGLING_ENDPOINT"
	IssueTypeMismatch     IssueKind = "TYPE_MISMATCH"
	IssueEmptyName        IssueKind = "EMPTY_NAME"
)

// Issue is one referential or identity problem in an organization.
type Issue struct {
	Kind    IssueKind `json:"kind"`
	ID      ID        `json:"id,omitempty"`
	Message string    `json:"message"`
}

func (i Issue) String() string { return string(i.Kind) + ": " + i.Message }

// Issues is the result of [Validate].
type Issues []Issue

// Err returns nil when there are no issues, otherwise an
// INVALID_ORGANIZATION error listing all of them.
func (is Issues) Err() error {
	if len(is) == 0 {
		return nil
	}
	msgs := make([]string, len(is))
	for i, issue := range is {
		msgs[i] = issue.String()
	}
	return errors.New(errors.ErrCodeInvalidOrganization, "%d issue(s): %s", len(is), strings.Join(msgs, "; "))
}

// Validate checks the identity and referential rules the DOT emitter does
// not enforce: IDs are unique across collections, map keys match entity
// IDs, relationship endpoints exist in the collection their declared type
// names, and the organization has a name. Issues are ordered by type, then
// ID, then relationship index, so the result is deterministic.
func Validate(o *Organization) Issues {
	var issues Issues

	if strings.TrimSpace(o.Name) == "" {
		issues = append(issues, Issue{Kind: IssueEmptyName, Message: "organization name is empty"})
	}

	owner := make(map[ID]EntityType)
	for _, t := range AllEntityTypes {
		for _, key := range o.IDs(t) {
			if id := o.entityID(t, key); id != key {
				issues = append(issues, Issue{
					Kind:    IssueKeyMismatch,
					ID:      key,
					Message: fmt.Sprintf("%s stored under %q has id %q", t, key, id),
				})
			}
			if first, dup := owner[key]; dup {
				issues = append(issues, Issue{
					Kind:    IssueDuplicateID,
					ID:      key,
					Message: fmt.Sprintf("id %q used by both %s and %s", key, first, t),
				})
				continue
			}
			owner[key] = t
		}
	}

	for i, r := range o.Relationships {
		issues = append(issues, checkEndpoint(o, owner, i, "subject", r.SubjectID, r.SubjectType)...)
		issues = append(issues, checkEndpoint(o, owner, i, "object", r.ObjectID, r.ObjectType)...)
	}
	return issues
}

func checkEndpoint(o *Organization, owner map[ID]EntityType, idx int, role string, id ID, declared EntityType) Issues {
	if o.Has(declared, id) {
		return nil
	}
	if actual, ok := owner[id]; ok {
		return Issues{{
			Kind:    IssueTypeMismatch,
			ID:      id,
			Message: fmt.Sprintf("relationship %d %s %q declared as %s but is a %s", idx, role, id, declared, actual),
		}}
	}
	return Issues{{
		Kind:    IssueDanglingEndpoint,
		ID:      id,
		Message: fmt.Sprintf("relationship %d %s %q does not exist", idx, role, id),
	}}
}

func (o *Organization) entityID(t EntityType, key ID) ID {
	switch t {
	case EntityPurpose:
		return o.Purposes[key].ID
	case EntityPerson:
		return o.People[key].ID
	case EntityProject:
		return o.Projects[key].ID
	case EntityProductionSystem:
		return o.ProductionSystems[key].ID
	case EntityProperty:
		return o.PropertyItems[key].ID
	case EntityProgress:
		return o.ProgressMetrics[key].ID
	}
	return ""
}
