package org_test

import (
	"fmt"

	"github.com/matzehuels/orgdot/pkg/org"
)

func Example() {
	o := org.New("Acme Corp")
	o.AddPerson(org.Person{ID: "P1", Name: "Alice", Title: "Founder"})
	o.AddProject(org.Project{ID: "X1", Name: "Project X", Status: org.ProjectActive})
	if err := o.Relate("P1", org.WorksOn, "X1"); err != nil {
		panic(err)
	}

	fmt.Println("entities:", o.EntityCount())
	fmt.Println("relationships:", len(o.Relationships))
	fmt.Println("issues:", len(org.Validate(o)))
	// Output:
	// entities: 2
	// relationships: 1
	// issues: 0
}

func ExampleValidate() {
	o := org.New("Acme Corp")
	o.AddPerson(org.Person{ID: "P1", Name: "Alice"})
	o.AddRelationship(org.Rel(org.EntityPerson, "P1", org.Leads, org.EntityProject, "X9"))

	for _, issue := range org.Validate(o) {
		fmt.Println(issue)
	}
	// Output:
	// DANGLING_ENDPOINT: relationship 0 object "X9" does not exist
}

func ExampleTruncate() {
	fmt.Println(org.Truncate("Make the world a better place for everyone", org.PurposeLabelLength))
	// Output:
	// Make the world a better pla...
}
