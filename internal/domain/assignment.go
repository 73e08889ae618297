package domain

// Assignment places one project into a (classroom, timeslot) cell with its
// jury. InstructorIDs[0] is always the project's responsible instructor.
type Assignment struct {
	ProjectID     int
	ClassroomID   int
	TimeslotID    int
	InstructorIDs []int
	IsMakeup      bool
	// LatePenalized marks an assignment that could not be relocated out
	// of a late slot during post-processing.
	LatePenalized bool
}

// Clone returns a deep copy of the assignment.
func (a Assignment) Clone() Assignment {
	c := a
	c.InstructorIDs = append([]int(nil), a.InstructorIDs...)
	return c
}

// CloneAssignments deep-copies a solution. Utilities that transform
// solutions operate on copies, never on the caller's slice.
func CloneAssignments(in []Assignment) []Assignment {
	out := make([]Assignment, len(in))
	for i, a := range in {
		out[i] = a.Clone()
	}
	return out
}

// HasInstructor reports whether id sits anywhere in the jury.
func (a Assignment) HasInstructor(id int) bool {
	for _, i := range a.InstructorIDs {
		if i == id {
			return true
		}
	}
	return false
}
