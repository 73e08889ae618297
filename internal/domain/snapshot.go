package domain

import (
	"fmt"
	"sort"
)

// Snapshot is the read-only dataset one run operates on. It is assembled
// once by NewSnapshot and never mutated afterwards, so concurrent runs may
// share it without locking.
type Snapshot struct {
	projects    []Project
	instructors []Instructor
	classrooms  []Classroom
	timeslots   []Timeslot

	projectByID    map[int]Project
	instructorByID map[int]Instructor
	classroomByID  map[int]Classroom
	slotByID       map[int]Timeslot
	slotIndex      map[int]int

	extras map[string]any
}

// NewSnapshot assembles an immutable snapshot. Timeslots are sorted by
// start time (stable); only active classrooms are kept. Extras carry the
// run parameters strategies may consult.
func NewSnapshot(
	projects []Project,
	instructors []Instructor,
	classrooms []Classroom,
	timeslots []Timeslot,
	extras map[string]any,
) *Snapshot {
	s := &Snapshot{
		projects:       append([]Project(nil), projects...),
		instructors:    append([]Instructor(nil), instructors...),
		timeslots:      append([]Timeslot(nil), timeslots...),
		projectByID:    make(map[int]Project, len(projects)),
		instructorByID: make(map[int]Instructor, len(instructors)),
		classroomByID:  make(map[int]Classroom),
		slotByID:       make(map[int]Timeslot, len(timeslots)),
		slotIndex:      make(map[int]int, len(timeslots)),
		extras:         make(map[string]any, len(extras)),
	}

	for _, room := range classrooms {
		if !room.Active {
			continue
		}
		s.classrooms = append(s.classrooms, room)
		s.classroomByID[room.ID] = room
	}

	sort.SliceStable(s.timeslots, func(i, j int) bool {
		return s.timeslots[i].Start < s.timeslots[j].Start
	})
	for i, slot := range s.timeslots {
		s.slotByID[slot.ID] = slot
		s.slotIndex[slot.ID] = i
	}

	for _, p := range s.projects {
		s.projectByID[p.ID] = p
	}
	for _, ins := range s.instructors {
		s.instructorByID[ins.ID] = ins
	}
	for k, v := range extras {
		s.extras[k] = v
	}
	return s
}

// Validate rejects snapshots a strategy cannot work with.
func (s *Snapshot) Validate() error {
	if len(s.projects) == 0 {
		return fmt.Errorf("snapshot has no projects")
	}
	if len(s.instructors) == 0 {
		return fmt.Errorf("snapshot has no instructors")
	}
	if len(s.classrooms) == 0 {
		return fmt.Errorf("snapshot has no active classrooms")
	}
	if len(s.timeslots) == 0 {
		return fmt.Errorf("snapshot has no timeslots")
	}
	for i := range s.projects {
		if err := s.projects[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Projects returns the project list. Callers must not mutate it.
func (s *Snapshot) Projects() []Project { return s.projects }

// Instructors returns the instructor list. Callers must not mutate it.
func (s *Snapshot) Instructors() []Instructor { return s.instructors }

// Classrooms returns the active classrooms. Callers must not mutate it.
func (s *Snapshot) Classrooms() []Classroom { return s.classrooms }

// SortedTimeslots returns the timeslots ordered chronologically by start.
func (s *Snapshot) SortedTimeslots() []Timeslot { return s.timeslots }

// ProjectByID looks a project up by its stable integer key.
func (s *Snapshot) ProjectByID(id int) (Project, bool) {
	p, ok := s.projectByID[id]
	return p, ok
}

func (s *Snapshot) InstructorByID(id int) (Instructor, bool) {
	ins, ok := s.instructorByID[id]
	return ins, ok
}

func (s *Snapshot) TimeslotByID(id int) (Timeslot, bool) {
	t, ok := s.slotByID[id]
	return t, ok
}

func (s *Snapshot) ClassroomByID(id int) (Classroom, bool) {
	c, ok := s.classroomByID[id]
	return c, ok
}

// SlotIndex returns the chronological position of a slot, or -1 for an
// unknown slot ID.
func (s *Snapshot) SlotIndex(slotID int) int {
	if idx, ok := s.slotIndex[slotID]; ok {
		return idx
	}
	return -1
}

// IsLate reports whether the slot with the given ID starts at or after
// 16:30. Unknown slots are not late.
func (s *Snapshot) IsLate(slotID int) bool {
	slot, ok := s.slotByID[slotID]
	return ok && slot.IsLate()
}

// ClassroomIDs returns the active classroom IDs in listing order.
func (s *Snapshot) ClassroomIDs() []int {
	ids := make([]int, len(s.classrooms))
	for i, c := range s.classrooms {
		ids[i] = c.ID
	}
	return ids
}

// ProjectsByResponsible groups projects by their responsible instructor.
func (s *Snapshot) ProjectsByResponsible() map[int][]Project {
	byResp := make(map[int][]Project)
	for _, p := range s.projects {
		byResp[p.ResponsibleID] = append(byResp[p.ResponsibleID], p)
	}
	return byResp
}

// Extra returns a run parameter merged into the snapshot, if present.
func (s *Snapshot) Extra(key string) (any, bool) {
	v, ok := s.extras[key]
	return v, ok
}

// Extras returns a copy of the merged parameter map.
func (s *Snapshot) Extras() map[string]any {
	out := make(map[string]any, len(s.extras))
	for k, v := range s.extras {
		out[k] = v
	}
	return out
}

// FacultyIDs returns the IDs of faculty-rank instructors.
func (s *Snapshot) FacultyIDs() []int {
	var ids []int
	for _, ins := range s.instructors {
		if ins.Rank == RankFaculty {
			ids = append(ids, ins.ID)
		}
	}
	return ids
}
