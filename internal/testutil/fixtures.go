package testutil

import (
	"fmt"

	"github.com/alexanderramin/viva/internal/domain"
)

// Fixture ID conventions: instructors start at 10, classrooms at 100,
// timeslots at 200. Tests reference those IDs literally.

// Faculty builds a faculty-rank instructor.
func Faculty(id int) domain.Instructor {
	return domain.Instructor{ID: id, Name: fmt.Sprintf("Dr. %d", id), Rank: domain.RankFaculty}
}

// Assistant builds an assistant-rank instructor.
func Assistant(id int) domain.Instructor {
	return domain.Instructor{ID: id, Name: fmt.Sprintf("R.A. %d", id), Rank: domain.RankAssistant}
}

// Rooms builds n active classrooms with IDs 100, 101, ...
func Rooms(n int) []domain.Classroom {
	rooms := make([]domain.Classroom, n)
	for i := range rooms {
		rooms[i] = domain.Classroom{ID: 100 + i, Name: fmt.Sprintf("D%d", 101+i), Capacity: 30, Active: true}
	}
	return rooms
}

// Slots builds timeslots with IDs 200, 201, ... for the given start times.
func Slots(starts ...string) []domain.Timeslot {
	slots := make([]domain.Timeslot, len(starts))
	for i, start := range starts {
		slots[i] = domain.Timeslot{ID: 200 + i, Start: start, IsMorning: start < "12:00"}
	}
	return slots
}

// MorningSlots builds the six half-hour slots from 09:00 to 11:30.
func MorningSlots() []domain.Timeslot {
	return Slots("09:00", "09:30", "10:00", "10:30", "11:00", "11:30")
}

// FullDaySlots builds the whole 16-slot ladder from 09:00 through 17:30
// with the lunch break between 11:30 and 13:00. The last three slots start
// at or after 16:30 and count as late.
func FullDaySlots() []domain.Timeslot {
	return Slots(
		"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
		"13:00", "13:30", "14:00", "14:30", "15:00", "15:30",
		"16:00", "16:30", "17:00", "17:30",
	)
}

// Interim builds an interim-defense project.
func Interim(id, responsible int) domain.Project {
	return domain.Project{
		ID:            id,
		Title:         fmt.Sprintf("Project %d", id),
		Type:          domain.ProjectInterim,
		ResponsibleID: responsible,
	}
}

// Thesis builds a thesis-defense project.
func Thesis(id, responsible int) domain.Project {
	return domain.Project{
		ID:            id,
		Title:         fmt.Sprintf("Thesis %d", id),
		Type:          domain.ProjectThesis,
		ResponsibleID: responsible,
	}
}

// Snapshot assembles a snapshot from the fixture pieces with no extras.
func Snapshot(projects []domain.Project, instructors []domain.Instructor, rooms []domain.Classroom, slots []domain.Timeslot) *domain.Snapshot {
	return domain.NewSnapshot(projects, instructors, rooms, slots, nil)
}
