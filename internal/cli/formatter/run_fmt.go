package formatter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alexanderramin/viva/internal/algorithm"
	"github.com/alexanderramin/viva/internal/domain"
)

// RunReport renders one completed or failed run for the terminal.
func RunReport(record *domain.RunRecord) string {
	var b strings.Builder
	b.WriteString(Header("run "+record.AlgorithmTag) + "\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", StatusIndicator(record.Status), StyleDim.Render(record.ID)))

	if record.Error != "" {
		b.WriteString(StyleRed.Render("error: "+record.Error) + "\n")
		return b.String()
	}

	if f, ok := record.Result["fitness"].(float64); ok {
		b.WriteString(fmt.Sprintf("fitness        %s\n", FitnessStyle(f).Render(fmt.Sprintf("%.1f", f))))
	}
	b.WriteString(fmt.Sprintf("execution      %.2fs\n", record.ExecutionSeconds))
	if list, ok := record.Result["assignments"].([]any); ok {
		b.WriteString(fmt.Sprintf("assignments    %d\n", len(list)))
	}
	if used, _ := record.Result["fallback_used"].(bool); used {
		from, _ := record.Result["fallback_from"].(string)
		b.WriteString(StyleYellow.Render(fmt.Sprintf("fallback from %s", from)) + "\n")
	}
	if breakdown, ok := record.Result["fitness_breakdown"].(map[string]any); ok {
		b.WriteString("\n" + fitnessBreakdown(breakdown))
	}
	return b.String()
}

func fitnessBreakdown(breakdown map[string]any) string {
	axes := make([]string, 0, len(breakdown))
	for axis := range breakdown {
		axes = append(axes, axis)
	}
	sort.Strings(axes)

	rows := make([][]string, 0, len(axes))
	for _, axis := range axes {
		v, ok := breakdown[axis].(float64)
		if !ok {
			continue
		}
		rows = append(rows, []string{axis, FitnessStyle(v).Render(fmt.Sprintf("%.1f", v))})
	}
	return RenderTable([]string{"AXIS", "SCORE"}, rows)
}

// RunsTable renders recent runs newest first.
func RunsTable(records []*domain.RunRecord) string {
	rows := make([][]string, len(records))
	for i, r := range records {
		fitness := StyleDim.Render("-")
		if f, ok := r.Result["fitness"].(float64); ok {
			fitness = FitnessStyle(f).Render(fmt.Sprintf("%.1f", f))
		}
		rows[i] = []string{
			StyleDim.Render(shortID(r.ID)),
			r.AlgorithmTag,
			StatusIndicator(r.Status),
			fitness,
			fmt.Sprintf("%.2fs", r.ExecutionSeconds),
			r.StartedAt.Format("2006-01-02 15:04"),
		}
	}
	return RenderTable([]string{"ID", "ALGORITHM", "STATUS", "FITNESS", "TIME", "STARTED"}, rows)
}

// ScheduleTable renders the persisted schedule ordered by slot then room.
func ScheduleTable(rows []domain.ScheduleRow) string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		jury := make([]string, len(row.InstructorIDs))
		for j, id := range row.InstructorIDs {
			jury[j] = strconv.Itoa(id)
		}
		makeup := ""
		if row.IsMakeup {
			makeup = StyleYellow.Render("makeup")
		}
		out[i] = []string{
			strconv.Itoa(row.ProjectID),
			strconv.Itoa(row.ClassroomID),
			strconv.Itoa(row.TimeslotID),
			strings.Join(jury, ","),
			makeup,
		}
	}
	return RenderTable([]string{"PROJECT", "ROOM", "SLOT", "JURY", ""}, out)
}

// AlgorithmTable renders the registered strategies with their categories.
func AlgorithmTable(descriptors []algorithm.Descriptor) string {
	rows := make([][]string, len(descriptors))
	for i, d := range descriptors {
		rows[i] = []string{
			StyleBold.Render(d.Tag),
			StyleBlue.Render(string(d.Category)),
			d.Description,
		}
	}
	return RenderTable([]string{"TAG", "CATEGORY", "DESCRIPTION"}, rows)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
