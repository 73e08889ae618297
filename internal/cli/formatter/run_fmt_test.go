package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/viva/internal/algorithm"
	"github.com/alexanderramin/viva/internal/domain"
)

func completedRecord() *domain.RunRecord {
	return &domain.RunRecord{
		ID:               "12345678-abcd-efgh",
		AlgorithmTag:     "greedy",
		Status:           domain.RunCompleted,
		ExecutionSeconds: 0.42,
		StartedAt:        time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC),
		Result: map[string]any{
			"fitness":     96.5,
			"assignments": []any{map[string]any{}, map[string]any{}},
			"fitness_breakdown": map[string]any{
				"coverage":    100.0,
				"gap_penalty": 80.0,
			},
		},
	}
}

func TestRunReport_Completed(t *testing.T) {
	out := RunReport(completedRecord())
	assert.Contains(t, out, "COMPLETED")
	assert.Contains(t, out, "96.5")
	assert.Contains(t, out, "0.42s")
	assert.Contains(t, out, "coverage")
}

func TestRunReport_Failed(t *testing.T) {
	record := completedRecord()
	record.Status = domain.RunFailed
	record.Error = "snapshot has no projects"
	record.Result = nil

	out := RunReport(record)
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "snapshot has no projects")
	assert.NotContains(t, out, "fitness")
}

func TestRunReport_FallbackNoted(t *testing.T) {
	record := completedRecord()
	record.Result["fallback_used"] = true
	record.Result["fallback_from"] = "genetic"

	out := RunReport(record)
	assert.Contains(t, out, "fallback from genetic")
}

func TestRunsTable_ShortensIDs(t *testing.T) {
	out := RunsTable([]*domain.RunRecord{completedRecord()})
	assert.Contains(t, out, "12345678")
	assert.NotContains(t, out, "12345678-abcd")
}

func TestScheduleTable_MarksMakeup(t *testing.T) {
	rows := []domain.ScheduleRow{
		{ProjectID: 1, ClassroomID: 100, TimeslotID: 200, InstructorIDs: []int{10, 11}},
		{ProjectID: 2, ClassroomID: 101, TimeslotID: 201, InstructorIDs: []int{12}, IsMakeup: true},
	}
	out := ScheduleTable(rows)
	assert.Contains(t, out, "10,11")
	assert.Contains(t, out, "makeup")
}

func TestAlgorithmTable_ListsEveryTag(t *testing.T) {
	descriptors := algorithm.Descriptors()
	require.NotEmpty(t, descriptors)

	out := AlgorithmTable(descriptors)
	for _, d := range descriptors {
		assert.Contains(t, out, d.Tag)
	}
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable([]string{"A", "LONGHEADER"}, [][]string{
		{"x", "y"},
		{"wide-cell", "z"},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "A")
	assert.Contains(t, lines[1], "─")
}

func TestRenderTable_EmptyHeaders(t *testing.T) {
	assert.Equal(t, "", RenderTable(nil, nil))
}
