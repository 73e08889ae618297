package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/viva/internal/db"
)

// SeedDemoData populates an empty database with a small defense day:
// eight instructors, four classrooms, the half-hour slot ladder from
// 09:00 through 16:30 with a lunch break, and twenty projects. A
// database that already has instructors is left untouched.
func SeedDemoData(ctx context.Context, dbtx db.DBTX) error {
	var count int
	if err := dbtx.QueryRowContext(ctx, `SELECT COUNT(*) FROM instructors`).Scan(&count); err != nil {
		return fmt.Errorf("checking instructors: %w", err)
	}
	if count > 0 {
		return nil
	}

	instructors := []struct {
		id   int
		name string
		rank string
	}{
		{10, "Dr. Aksoy", "faculty"},
		{11, "Dr. Demir", "faculty"},
		{12, "Dr. Kaya", "faculty"},
		{13, "Dr. Yildiz", "faculty"},
		{14, "Dr. Arslan", "faculty"},
		{15, "R.A. Celik", "assistant"},
		{16, "R.A. Dogan", "assistant"},
		{17, "R.A. Erdem", "assistant"},
	}
	for _, ins := range instructors {
		if _, err := dbtx.ExecContext(ctx,
			`INSERT INTO instructors (id, name, rank) VALUES (?, ?, ?)`,
			ins.id, ins.name, ins.rank); err != nil {
			return fmt.Errorf("seeding instructor %d: %w", ins.id, err)
		}
	}

	for i := 0; i < 4; i++ {
		if _, err := dbtx.ExecContext(ctx,
			`INSERT INTO classrooms (id, name, capacity, active) VALUES (?, ?, 30, 1)`,
			100+i, fmt.Sprintf("D%d", 101+i)); err != nil {
			return fmt.Errorf("seeding classroom %d: %w", 100+i, err)
		}
	}

	starts := []string{
		"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
		"13:00", "13:30", "14:00", "14:30", "15:00", "15:30",
		"16:00", "16:30",
	}
	for i, start := range starts {
		if _, err := dbtx.ExecContext(ctx,
			`INSERT INTO timeslots (id, start_time, end_time, is_morning) VALUES (?, ?, '', ?)`,
			200+i, start, boolToInt(start < "12:00")); err != nil {
			return fmt.Errorf("seeding timeslot %s: %w", start, err)
		}
	}

	coAdvisor := 14
	for i := 0; i < 20; i++ {
		typ := "interim"
		if i%3 == 0 {
			typ = "thesis"
		}
		var co *int
		if i%5 == 0 {
			co = &coAdvisor
		}
		responsible := 10 + i%5
		if _, err := dbtx.ExecContext(ctx,
			`INSERT INTO projects (id, title, type, responsible_id, co_advisor_id, is_makeup)
			VALUES (?, ?, ?, ?, ?, ?)`,
			i+1, fmt.Sprintf("Project %02d", i+1), typ, responsible,
			nullableIntToValue(co), boolToInt(i >= 18)); err != nil {
			return fmt.Errorf("seeding project %d: %w", i+1, err)
		}
		if i%4 == 0 {
			if _, err := dbtx.ExecContext(ctx,
				`INSERT INTO project_assistants (project_id, instructor_id) VALUES (?, ?)`,
				i+1, 15+i%3); err != nil {
				return fmt.Errorf("seeding assistant for project %d: %w", i+1, err)
			}
		}
	}
	return nil
}
