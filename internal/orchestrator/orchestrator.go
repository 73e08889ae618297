// Package orchestrator drives one algorithm run end to end: run record
// bookkeeping, snapshot load, strategy execution with the comprehensive
// fallback, the post-processing loop, diagnostic reports, and atomic
// schedule persistence. Distinct runs may execute concurrently; a single
// run is processed by a single goroutine.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/viva/internal/algorithm"
	"github.com/alexanderramin/viva/internal/db"
	"github.com/alexanderramin/viva/internal/domain"
	"github.com/alexanderramin/viva/internal/fitness"
	"github.com/alexanderramin/viva/internal/progress"
	"github.com/alexanderramin/viva/internal/repository"
	"github.com/alexanderramin/viva/internal/solution"
)

const (
	defaultClassroomCount    = 7
	maxPostProcessIterations = 8
	defaultAnalysisTTL       = 5 * time.Minute

	// noFallbackTag reports its own degenerate outcome instead of being
	// silently replaced by the comprehensive result.
	noFallbackTag = "pso"
)

// Notifier pushes run lifecycle events toward a user's stream. Delivery is
// advisory: implementations must not block the run or fail it.
type Notifier interface {
	Send(userID string, env progress.Envelope)
}

type noopNotifier struct{}

func (noopNotifier) Send(string, progress.Envelope) {}

// Orchestrator executes algorithm runs against one dataset and one store.
type Orchestrator struct {
	data     repository.DataSource
	runs     repository.RunRepo
	uow      db.UnitOfWork
	notifier Notifier
	observer RunObserver
	analyses *AnalysisCache
	log      *slog.Logger
}

// New wires an orchestrator. notifier, observer, and log may be nil.
func New(data repository.DataSource, runs repository.RunRepo, uow db.UnitOfWork, notifier Notifier, observer RunObserver, log *slog.Logger) *Orchestrator {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{
		data:     data,
		runs:     runs,
		uow:      uow,
		notifier: notifier,
		observer: observerOrNoop(observer),
		analyses: NewAnalysisCache(defaultAnalysisTTL),
		log:      log,
	}
}

// RunAlgorithm executes the tagged strategy and returns the persisted run
// record. A degenerate result from any tag but pso falls back to the
// comprehensive strategy; a degenerate fallback marks the record failed.
// The record never stays in the running state: every exit path updates it
// to completed or failed first.
func (o *Orchestrator) RunAlgorithm(ctx context.Context, tag string, params algorithm.Params, userID string) (*domain.RunRecord, error) {
	tag = algorithm.NormalizeTag(tag)
	desc, ok := algorithm.Lookup(tag)
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownAlgorithm, tag, strings.Join(algorithm.Tags(), ", "))
	}
	if params == nil {
		params = algorithm.Params{}
	}

	record := &domain.RunRecord{
		ID:           uuid.New().String(),
		AlgorithmTag: tag,
		Parameters:   map[string]any(params.Clone()),
		Status:       domain.RunRunning,
		StartedAt:    time.Now().UTC(),
		UserID:       userID,
	}
	if err := o.runs.Create(ctx, record); err != nil {
		return nil, &PersistenceError{Op: "run record", Err: err}
	}
	o.progress(userID, record, "starting", 0)

	snap, err := o.loadSnapshot(ctx, params)
	if err != nil {
		return o.fail(ctx, record, userID, err)
	}
	analysis := o.analyses.Get(snap, tag, params)
	record.Data = analysis.Map()

	o.progress(userID, record, "running", 10)
	res, err := o.executeWithFallback(ctx, desc, snap, params)
	if err != nil {
		return o.fail(ctx, record, userID, err)
	}

	o.progress(userID, record, "post_processing", 80)
	assignments, iterations := postProcess(snap, res.Assignments)
	assignments, deduped := solution.Dedup(snap, assignments)
	score := o.score(snap, res, assignments)

	result := buildResult(snap, res, score, assignments, analysis)
	result["post_process_iterations"] = iterations
	result["deduplicated"] = deduped
	result = Sanitize(result).(map[string]any)

	now := time.Now().UTC()
	record.Status = domain.RunCompleted
	record.Result = result
	record.ExecutionSeconds = now.Sub(record.StartedAt).Seconds()
	record.CompletedAt = &now
	if err := o.runs.Update(ctx, record); err != nil {
		return record, &PersistenceError{Op: "run record", Err: err}
	}

	if err := o.persistSchedule(ctx, assignments); err != nil {
		return record, err
	}

	o.complete(userID, record, score.Total)
	o.observer.ObserveRun(ctx, RunEvent{
		RunID:        record.ID,
		AlgorithmTag: tag,
		Duration:     now.Sub(record.StartedAt),
		Success:      true,
		FallbackUsed: res.FallbackUsed,
		StartedAt:    record.StartedAt,
		Fields: map[string]any{
			"assignments": len(assignments),
			"fitness":     score.Total,
			"iterations":  iterations,
		},
	})
	return record, nil
}

// loadSnapshot loads the dataset with the classroom cap from params and
// rebuilds it with the run parameters merged into the extras.
func (o *Orchestrator) loadSnapshot(ctx context.Context, params algorithm.Params) (*domain.Snapshot, error) {
	rooms := params.Int("classroom_count", defaultClassroomCount)
	snap, err := o.data.LoadSnapshot(ctx, rooms)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	if len(snap.Projects()) == 0 {
		return nil, ErrEmptySnapshot
	}

	extras := map[string]any{"classroom_count": rooms}
	for k, v := range params {
		extras[k] = v
	}
	return domain.NewSnapshot(snap.Projects(), snap.Instructors(), snap.Classrooms(), snap.SortedTimeslots(), extras), nil
}

func (o *Orchestrator) executeWithFallback(ctx context.Context, desc algorithm.Descriptor, snap *domain.Snapshot, params algorithm.Params) (algorithm.Result, error) {
	res, execErr := runStrategy(ctx, desc, snap, params)
	if execErr == nil && !res.Degenerate() {
		return res, nil
	}
	if execErr == nil && desc.Tag == noFallbackTag {
		return res, nil
	}

	original := fmt.Sprintf("degenerate result (status %s, %d assignments)", res.Status, len(res.Assignments))
	if execErr != nil {
		original = execErr.Error()
	}
	o.log.Warn("strategy degenerated, running fallback", "algorithm", desc.Tag, "cause", original)

	fbDesc, ok := algorithm.Lookup(algorithm.FallbackTag)
	if !ok {
		return algorithm.Result{}, fmt.Errorf("fallback strategy %q is not registered", algorithm.FallbackTag)
	}
	fb, fbErr := runStrategy(ctx, fbDesc, snap, params)
	if fbErr != nil || fb.Degenerate() {
		cause := fmt.Sprintf("degenerate result (status %s)", fb.Status)
		if fbErr != nil {
			cause = fbErr.Error()
		}
		return algorithm.Result{}, &FallbackFailureError{Tag: desc.Tag, Original: original, Fallback: cause}
	}

	fb.FallbackUsed = true
	fb.FallbackFrom = desc.Tag
	fb.OriginalError = original
	return fb, nil
}

// runStrategy executes one strategy, converting a panic into an error so
// the fallback path can take over.
func runStrategy(ctx context.Context, desc algorithm.Descriptor, snap *domain.Snapshot, params algorithm.Params) (res algorithm.Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("algorithm %s panicked: %v", desc.Tag, p)
		}
	}()

	s := desc.New()
	if initErr := s.Initialize(snap, params); initErr != nil {
		return algorithm.Result{}, fmt.Errorf("initializing %s: %w", desc.Tag, initErr)
	}
	return s.Optimize(ctx), nil
}

// postProcess repeatedly applies compaction, gap-free packing, late-slot
// relocation, and reflow until an iteration stops improving the combined
// gap and late count, or the iteration cap is reached. A panic inside one
// iteration abandons that iteration and keeps the last good solution.
func postProcess(snap *domain.Snapshot, assignments []domain.Assignment) ([]domain.Assignment, int) {
	cur := assignments
	gaps := solution.TotalGaps(snap, cur)
	late := solution.CountLate(snap, cur)
	iterations := 0

	for i := 0; i < maxPostProcessIterations; i++ {
		next, ok := postProcessOnce(snap, cur)
		if !ok {
			break
		}
		iterations++
		nextGaps := solution.TotalGaps(snap, next)
		nextLate := solution.CountLate(snap, next)
		if nextGaps+nextLate >= gaps+late {
			if nextGaps+nextLate == gaps+late {
				cur = next
			}
			break
		}
		cur, gaps, late = next, nextGaps, nextLate
	}
	return cur, iterations
}

func postProcessOnce(snap *domain.Snapshot, assignments []domain.Assignment) (out []domain.Assignment, ok bool) {
	defer func() {
		if recover() != nil {
			out, ok = nil, false
		}
	}()

	next, _ := solution.Compact(snap, assignments)
	next, _ = solution.GapFree(snap, next)
	next, _, _ = solution.RelocateLate(snap, next)
	next, _ = solution.Reflow(snap, next)
	return next, true
}

// score recomputes fitness for the post-processed solution with the weight
// family of the strategy that actually produced the result.
func (o *Orchestrator) score(snap *domain.Snapshot, res algorithm.Result, assignments []domain.Assignment) fitness.Score {
	category := fitness.CategoryLocalSearch
	if d, ok := algorithm.Lookup(res.AlgorithmTag); ok {
		category = d.Category
	}
	return fitness.EvaluateCategory(snap, assignments, category)
}

func buildResult(snap *domain.Snapshot, res algorithm.Result, score fitness.Score, assignments []domain.Assignment, analysis Analysis) map[string]any {
	list := make([]any, len(assignments))
	for i, a := range assignments {
		list[i] = assignmentMap(a)
	}
	breakdown := make(map[string]any)
	for axis, v := range score.AxisMap() {
		breakdown[axis] = v
	}

	m := map[string]any{
		"assignments":       list,
		"fitness":           score.Total,
		"fitness_breakdown": breakdown,
		"execution_time":    res.ExecutionSeconds,
		"algorithm_tag":     res.AlgorithmTag,
		"status":            res.Status,
		"parameters":        map[string]any(res.Parameters),
		"stats":             res.Stats,
		"gap_report":        buildGapReport(snap, assignments),
		"policy_summary":    buildPolicySummary(snap, assignments),
		"analysis":          analysis.Map(),
	}
	if res.FallbackUsed {
		m["fallback_used"] = true
		m["fallback_from"] = res.FallbackFrom
		m["original_error"] = res.OriginalError
	}
	return m
}

func assignmentMap(a domain.Assignment) map[string]any {
	ids := make([]any, len(a.InstructorIDs))
	for i, id := range a.InstructorIDs {
		ids[i] = id
	}
	m := map[string]any{
		"project_id":     a.ProjectID,
		"classroom_id":   a.ClassroomID,
		"timeslot_id":    a.TimeslotID,
		"is_makeup":      a.IsMakeup,
		"instructor_ids": ids,
	}
	if a.LatePenalized {
		m["late_penalized"] = true
	}
	return m
}

// persistSchedule swaps the published schedule for the deduplicated rows
// inside one transaction.
func (o *Orchestrator) persistSchedule(ctx context.Context, assignments []domain.Assignment) error {
	rows := make([]domain.ScheduleRow, len(assignments))
	for i, a := range assignments {
		rows[i] = domain.ScheduleRow{
			ProjectID:     a.ProjectID,
			ClassroomID:   a.ClassroomID,
			TimeslotID:    a.TimeslotID,
			IsMakeup:      a.IsMakeup,
			InstructorIDs: append([]int(nil), a.InstructorIDs...),
		}
	}
	err := o.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteScheduleRepo(tx).Replace(ctx, rows)
	})
	if err != nil {
		return &PersistenceError{Op: "schedule", Err: err}
	}
	return nil
}

// fail marks the record failed, emits the error event, and reports the run
// to the observer. The original error is returned alongside the record.
func (o *Orchestrator) fail(ctx context.Context, record *domain.RunRecord, userID string, runErr error) (*domain.RunRecord, error) {
	now := time.Now().UTC()
	record.Status = domain.RunFailed
	record.Error = runErr.Error()
	record.ExecutionSeconds = now.Sub(record.StartedAt).Seconds()
	record.CompletedAt = &now
	if err := o.runs.Update(ctx, record); err != nil {
		o.log.Error("failed to mark run failed", "run_id", record.ID, "error", err)
	}

	if userID != "" {
		o.notifier.Send(userID, progress.Envelope{
			Type:    progress.TypeError,
			Data:    map[string]any{"run_id": record.ID, "algorithm": record.AlgorithmTag},
			Message: runErr.Error(),
		})
	}
	o.observer.ObserveRun(ctx, RunEvent{
		RunID:        record.ID,
		AlgorithmTag: record.AlgorithmTag,
		Duration:     now.Sub(record.StartedAt),
		Success:      false,
		Err:          runErr,
		StartedAt:    record.StartedAt,
	})
	return record, runErr
}

func (o *Orchestrator) progress(userID string, record *domain.RunRecord, phase string, pct int) {
	if userID == "" {
		return
	}
	o.notifier.Send(userID, progress.Envelope{
		Type: progress.TypeProgress,
		Data: map[string]any{
			"run_id":    record.ID,
			"algorithm": record.AlgorithmTag,
			"phase":     phase,
			"progress":  pct,
		},
	})
}

func (o *Orchestrator) complete(userID string, record *domain.RunRecord, fitnessTotal float64) {
	if userID == "" {
		return
	}
	o.notifier.Send(userID, progress.Envelope{
		Type: progress.TypeComplete,
		Data: map[string]any{
			"run_id":         record.ID,
			"algorithm":      record.AlgorithmTag,
			"status":         string(record.Status),
			"fitness":        fitnessTotal,
			"execution_time": record.ExecutionSeconds,
		},
	})
}
