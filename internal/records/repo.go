package records

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/2beens/coachstats/internal/telemetry/tracing"
	"github.com/2beens/coachstats/internal/trainingstats/assessment"
	"github.com/2beens/coachstats/internal/trainingstats/logbook"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
)

// Querier is satisfied by *pgxpool.Pool and *pgx.Conn.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const (
	listLogEntriesQuery = `
		SELECT row_to_json(t)::text FROM (
			SELECT
				id, date, hours, feeling, training_focus, difficulty, session_type, exercise_details
			FROM training_log
			WHERE player_id = $1
			ORDER BY date DESC, id DESC
			LIMIT $2
		) t;`
	listAssessmentsQuery = `
		SELECT row_to_json(t)::text FROM (
			SELECT
				id, created_at, type, skills_data
			FROM skill_assessment
			WHERE player_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2
		) t;`
)

const DefaultRowsLimit = 5000

type Repo struct {
	db    Querier
	limit int
}

func NewRepo(db Querier, limit int) *Repo {
	if limit <= 0 {
		limit = DefaultRowsLimit
	}
	return &Repo{
		db:    db,
		limit: limit,
	}
}

func (r *Repo) LogEntries(ctx context.Context, playerID string) (_ []logbook.RawLogEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.logEntries")
	span.SetAttributes(attribute.String("player", playerID))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, listLogEntriesQuery, playerID, r.limit)
	if err != nil {
		return nil, fmt.Errorf("query log entries: %w", err)
	}
	defer rows.Close()

	objects, err := rows2objects(rows)
	if err != nil {
		return nil, fmt.Errorf("read log entries: %w", err)
	}

	entries := make([]logbook.RawLogEntry, len(objects))
	for i := range objects {
		entries[i] = objects[i]
	}
	span.SetAttributes(attribute.Int("count", len(entries)))

	return entries, nil
}

func (r *Repo) Assessments(ctx context.Context, playerID string) (_ []assessment.RawAssessment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.assessments")
	span.SetAttributes(attribute.String("player", playerID))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, listAssessmentsQuery, playerID, r.limit)
	if err != nil {
		return nil, fmt.Errorf("query assessments: %w", err)
	}
	defer rows.Close()

	objects, err := rows2objects(rows)
	if err != nil {
		return nil, fmt.Errorf("read assessments: %w", err)
	}

	assessments := make([]assessment.RawAssessment, len(objects))
	for i := range objects {
		assessments[i] = objects[i]
	}
	span.SetAttributes(attribute.Int("count", len(assessments)))

	return assessments, nil
}

// rows2objects expects a single JSON object column per row.
func rows2objects(rows pgx.Rows) ([]map[string]any, error) {
	objects := make([]map[string]any, 0)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}

		var obj map[string]any
		if err := json.Unmarshal(payload, &obj); err != nil {
			return nil, fmt.Errorf("unmarshal row: %w", err)
		}
		if obj == nil {
			continue
		}
		objects = append(objects, obj)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return objects, nil
}
