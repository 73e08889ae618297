package domain

import "fmt"

// Project is one defense session to be scheduled. ResponsibleID is the
// advisor who owns the project and must chair its jury.
type Project struct {
	ID            int
	Title         string
	Type          ProjectType
	ResponsibleID int
	CoAdvisorID   *int
	AssistantIDs  []int
	IsMakeup      bool
}

// Validate checks the invariants a schedulable project must satisfy.
func (p *Project) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("project has invalid id %d", p.ID)
	}
	if p.ResponsibleID <= 0 {
		return fmt.Errorf("project %d has no responsible instructor", p.ID)
	}
	if p.Type != ProjectInterim && p.Type != ProjectThesis {
		return fmt.Errorf("project %d has unknown type %q", p.ID, p.Type)
	}
	return nil
}

// MinJurySize returns the minimum instructor count for an assignment of
// this project, responsible included.
func (p *Project) MinJurySize() int {
	if p.Type == ProjectThesis {
		return 2
	}
	return 1
}

type Instructor struct {
	ID   int
	Name string
	Rank InstructorRank
	// Load counters are advisory; the balance objective recomputes from
	// the solution itself.
	Load int
}

type Classroom struct {
	ID       int
	Name     string
	Capacity int
	Active   bool
}
