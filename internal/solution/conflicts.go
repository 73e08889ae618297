package solution

import (
	"github.com/alexanderramin/viva/internal/domain"
)

// DuplicateProject records a project scheduled more than once.
type DuplicateProject struct {
	ProjectID int
	Count     int
}

// CellCollision records two or more assignments sharing a (room, slot) cell.
type CellCollision struct {
	ClassroomID int
	TimeslotID  int
	ProjectIDs  []int
}

// InstructorCollision records an instructor sitting on two juries at the
// same timeslot.
type InstructorCollision struct {
	InstructorID int
	TimeslotID   int
	ProjectIDs   []int
}

// Conflicts bundles the three hard-constraint violation lists.
type Conflicts struct {
	DuplicateProjects    []DuplicateProject
	CellCollisions       []CellCollision
	InstructorCollisions []InstructorCollision
}

// None reports whether the solution is conflict-free.
func (c Conflicts) None() bool {
	return len(c.DuplicateProjects) == 0 &&
		len(c.CellCollisions) == 0 &&
		len(c.InstructorCollisions) == 0
}

// Total returns the combined violation count.
func (c Conflicts) Total() int {
	return len(c.DuplicateProjects) + len(c.CellCollisions) + len(c.InstructorCollisions)
}

// DetectConflicts scans a solution for duplicate projects, cell collisions
// and instructor-at-slot collisions.
func DetectConflicts(assignments []domain.Assignment) Conflicts {
	var out Conflicts

	projectCount := make(map[int]int)
	cellProjects := make(map[cell][]int)
	type insSlot struct{ instructor, slot int }
	insProjects := make(map[insSlot][]int)

	for _, a := range assignments {
		projectCount[a.ProjectID]++
		key := cell{a.ClassroomID, a.TimeslotID}
		cellProjects[key] = append(cellProjects[key], a.ProjectID)
		for _, ins := range a.InstructorIDs {
			k := insSlot{ins, a.TimeslotID}
			insProjects[k] = append(insProjects[k], a.ProjectID)
		}
	}

	for _, a := range assignments {
		if n := projectCount[a.ProjectID]; n > 1 {
			out.DuplicateProjects = append(out.DuplicateProjects, DuplicateProject{
				ProjectID: a.ProjectID,
				Count:     n,
			})
			projectCount[a.ProjectID] = 0 // report each project once
		}
	}
	for key, projects := range cellProjects {
		if len(projects) > 1 {
			out.CellCollisions = append(out.CellCollisions, CellCollision{
				ClassroomID: key.room,
				TimeslotID:  key.slot,
				ProjectIDs:  projects,
			})
		}
	}
	for key, projects := range insProjects {
		if len(projects) > 1 {
			out.InstructorCollisions = append(out.InstructorCollisions, InstructorCollision{
				InstructorID: key.instructor,
				TimeslotID:   key.slot,
				ProjectIDs:   projects,
			})
		}
	}
	return out
}
