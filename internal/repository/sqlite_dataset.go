package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/viva/internal/db"
	"github.com/alexanderramin/viva/internal/domain"
)

// SQLiteDataSource assembles scheduling snapshots from the SQLite tables.
type SQLiteDataSource struct {
	db db.DBTX
}

// NewSQLiteDataSource creates a new SQLiteDataSource.
func NewSQLiteDataSource(db db.DBTX) *SQLiteDataSource {
	return &SQLiteDataSource{db: db}
}

func (r *SQLiteDataSource) LoadSnapshot(ctx context.Context, maxRooms int) (*domain.Snapshot, error) {
	instructors, err := r.loadInstructors(ctx)
	if err != nil {
		return nil, err
	}
	classrooms, err := r.loadClassrooms(ctx, maxRooms)
	if err != nil {
		return nil, err
	}
	timeslots, err := r.loadTimeslots(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := r.loadProjects(ctx)
	if err != nil {
		return nil, err
	}
	return domain.NewSnapshot(projects, instructors, classrooms, timeslots, nil), nil
}

func (r *SQLiteDataSource) loadInstructors(ctx context.Context) ([]domain.Instructor, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, rank, load FROM instructors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing instructors: %w", err)
	}
	defer rows.Close()

	var instructors []domain.Instructor
	for rows.Next() {
		var ins domain.Instructor
		var rank string
		if err := rows.Scan(&ins.ID, &ins.Name, &rank, &ins.Load); err != nil {
			return nil, fmt.Errorf("scanning instructor row: %w", err)
		}
		ins.Rank = domain.InstructorRank(rank)
		instructors = append(instructors, ins)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating instructors: %w", err)
	}
	return instructors, nil
}

func (r *SQLiteDataSource) loadClassrooms(ctx context.Context, maxRooms int) ([]domain.Classroom, error) {
	query := `SELECT id, name, capacity, active FROM classrooms WHERE active = 1 ORDER BY id`
	args := []any{}
	if maxRooms > 0 {
		query += ` LIMIT ?`
		args = append(args, maxRooms)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing classrooms: %w", err)
	}
	defer rows.Close()

	var classrooms []domain.Classroom
	for rows.Next() {
		var c domain.Classroom
		var active int
		if err := rows.Scan(&c.ID, &c.Name, &c.Capacity, &active); err != nil {
			return nil, fmt.Errorf("scanning classroom row: %w", err)
		}
		c.Active = intToBool(active)
		classrooms = append(classrooms, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating classrooms: %w", err)
	}
	return classrooms, nil
}

func (r *SQLiteDataSource) loadTimeslots(ctx context.Context) ([]domain.Timeslot, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, start_time, end_time, is_morning FROM timeslots ORDER BY start_time, id`)
	if err != nil {
		return nil, fmt.Errorf("listing timeslots: %w", err)
	}
	defer rows.Close()

	var timeslots []domain.Timeslot
	for rows.Next() {
		var ts domain.Timeslot
		var morning int
		if err := rows.Scan(&ts.ID, &ts.Start, &ts.End, &morning); err != nil {
			return nil, fmt.Errorf("scanning timeslot row: %w", err)
		}
		ts.IsMorning = intToBool(morning)
		timeslots = append(timeslots, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating timeslots: %w", err)
	}
	return timeslots, nil
}

func (r *SQLiteDataSource) loadProjects(ctx context.Context) ([]domain.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, type, responsible_id, co_advisor_id, is_makeup FROM projects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		var p domain.Project
		var typ string
		var coAdvisor *int
		var makeup int
		if err := rows.Scan(&p.ID, &p.Title, &typ, &p.ResponsibleID, &coAdvisor, &makeup); err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		// Imported rows may carry the Turkish vocabulary.
		if normalized, ok := domain.NormalizeProjectType(typ); ok {
			p.Type = normalized
		} else {
			p.Type = domain.ProjectType(typ)
		}
		p.CoAdvisorID = coAdvisor
		p.IsMakeup = intToBool(makeup)
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}

	if err := r.attachAssistants(ctx, projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *SQLiteDataSource) attachAssistants(ctx context.Context, projects []domain.Project) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT project_id, instructor_id FROM project_assistants ORDER BY project_id, instructor_id`)
	if err != nil {
		return fmt.Errorf("listing project assistants: %w", err)
	}
	defer rows.Close()

	byProject := make(map[int][]int)
	for rows.Next() {
		var projectID, instructorID int
		if err := rows.Scan(&projectID, &instructorID); err != nil {
			return fmt.Errorf("scanning assistant row: %w", err)
		}
		byProject[projectID] = append(byProject[projectID], instructorID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating assistants: %w", err)
	}

	for i := range projects {
		projects[i].AssistantIDs = byProject[projects[i].ID]
	}
	return nil
}
