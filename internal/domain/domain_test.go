package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeslot_IsLate(t *testing.T) {
	assert.False(t, Timeslot{Start: "09:00"}.IsLate())
	assert.False(t, Timeslot{Start: "16:00"}.IsLate())
	assert.True(t, Timeslot{Start: "16:30"}.IsLate())
	assert.True(t, Timeslot{Start: "17:00"}.IsLate())
}

func TestTimeslot_Reward(t *testing.T) {
	assert.Equal(t, 1000, Timeslot{Start: "09:00"}.Reward())
	assert.Equal(t, 700, Timeslot{Start: "13:00"}.Reward())
	assert.Equal(t, 400, Timeslot{Start: "16:00"}.Reward())
	assert.Equal(t, LateSlotReward, Timeslot{Start: "16:30"}.Reward())
	// Non-late starts outside the table fall back to the minimum.
	assert.Equal(t, MinSlotReward, Timeslot{Start: "12:15"}.Reward())
}

func TestNormalizeProjectType(t *testing.T) {
	cases := map[string]ProjectType{
		"interim":   ProjectInterim,
		"ara":       ProjectInterim,
		"ARA":       ProjectInterim,
		"thesis":    ProjectThesis,
		"final":     ProjectThesis,
		" bitirme ": ProjectThesis,
	}
	for raw, want := range cases {
		got, ok := NormalizeProjectType(raw)
		require.True(t, ok, "expected %q to normalize", raw)
		assert.Equal(t, want, got)
	}

	_, ok := NormalizeProjectType("capstone")
	assert.False(t, ok)
}

func TestProject_MinJurySize(t *testing.T) {
	interim := Project{Type: ProjectInterim}
	thesis := Project{Type: ProjectThesis}
	assert.Equal(t, 1, interim.MinJurySize())
	assert.Equal(t, 2, thesis.MinJurySize())
}

func TestProject_Validate(t *testing.T) {
	valid := Project{ID: 1, Type: ProjectInterim, ResponsibleID: 10}
	assert.NoError(t, valid.Validate())

	noResp := Project{ID: 1, Type: ProjectInterim}
	assert.Error(t, noResp.Validate())

	badType := Project{ID: 1, Type: "capstone", ResponsibleID: 10}
	assert.Error(t, badType.Validate())
}

func TestSnapshot_SortsTimeslotsAndSkipsInactiveRooms(t *testing.T) {
	snap := NewSnapshot(
		[]Project{{ID: 1, Type: ProjectInterim, ResponsibleID: 10}},
		[]Instructor{{ID: 10, Rank: RankFaculty}},
		[]Classroom{
			{ID: 100, Active: true},
			{ID: 101, Active: false},
		},
		[]Timeslot{
			{ID: 202, Start: "10:00"},
			{ID: 200, Start: "09:00"},
			{ID: 201, Start: "09:30"},
		},
		nil,
	)

	slots := snap.SortedTimeslots()
	require.Len(t, slots, 3)
	assert.Equal(t, 200, slots[0].ID)
	assert.Equal(t, 202, slots[2].ID)

	assert.Equal(t, 0, snap.SlotIndex(200))
	assert.Equal(t, 2, snap.SlotIndex(202))
	assert.Equal(t, -1, snap.SlotIndex(999))

	assert.Equal(t, []int{100}, snap.ClassroomIDs())
}

func TestSnapshot_Validate(t *testing.T) {
	empty := NewSnapshot(nil, nil, nil, nil, nil)
	assert.Error(t, empty.Validate())

	ok := NewSnapshot(
		[]Project{{ID: 1, Type: ProjectInterim, ResponsibleID: 10}},
		[]Instructor{{ID: 10, Rank: RankFaculty}},
		[]Classroom{{ID: 100, Active: true}},
		[]Timeslot{{ID: 200, Start: "09:00"}},
		nil,
	)
	assert.NoError(t, ok.Validate())
}

func TestSnapshot_Extras(t *testing.T) {
	snap := NewSnapshot(nil, nil, nil, nil, map[string]any{"classroom_count": 7})
	v, ok := snap.Extra("classroom_count")
	require.True(t, ok)
	assert.Equal(t, 7, v)

	// Extras returns a copy.
	snap.Extras()["classroom_count"] = 3
	v, _ = snap.Extra("classroom_count")
	assert.Equal(t, 7, v)
}

func TestCloneAssignments_DeepCopiesJuries(t *testing.T) {
	original := []Assignment{{ProjectID: 1, InstructorIDs: []int{10, 11}}}
	clone := CloneAssignments(original)
	clone[0].InstructorIDs[0] = 99
	assert.Equal(t, 10, original[0].InstructorIDs[0])
}

func TestAssignment_HasInstructor(t *testing.T) {
	a := Assignment{InstructorIDs: []int{10, 11}}
	assert.True(t, a.HasInstructor(11))
	assert.False(t, a.HasInstructor(12))
}
