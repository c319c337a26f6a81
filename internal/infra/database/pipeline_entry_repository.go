package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/entity"
)

type PipelineEntryRepository struct {
	DB *sql.DB
}

func NewPipelineEntryRepository(db *sql.DB) *PipelineEntryRepository {
	return &PipelineEntryRepository{DB: db}
}

func (r *PipelineEntryRepository) Create(ctx context.Context, e *entity.PipelineEntry) error {
	query := `
		INSERT INTO pipeline_entries (id, user_id, prospect_name, value, stage, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.DB.ExecContext(ctx, query,
		e.ID,
		e.UserID,
		e.ProspectName,
		e.Value,
		e.Stage,
		e.Status,
		e.CreatedAt,
		e.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return entity.ErrDuplicateProspect
		}
		return fmt.Errorf("inserting pipeline entry: %w", err)
	}

	return nil
}

func (r *PipelineEntryRepository) FindByID(ctx context.Context, id string) (*entity.PipelineEntry, error) {
	query := `
		SELECT id, user_id, prospect_name, value, stage, status, created_at, updated_at
		FROM pipeline_entries
		WHERE id = $1
	`

	var e entity.PipelineEntry
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID,
		&e.UserID,
		&e.ProspectName,
		&e.Value,
		&e.Stage,
		&e.Status,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}

	return &e, nil
}

func (r *PipelineEntryRepository) FindAll(ctx context.Context) ([]entity.PipelineEntry, error) {
	query := `
		SELECT id, user_id, prospect_name, value, stage, status, created_at, updated_at
		FROM pipeline_entries
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Update applies only the fields present in the partial update and
// always bumps updated_at.
func (r *PipelineEntryRepository) Update(ctx context.Context, id string, update entity.PipelineEntryUpdate) error {
	sets := []string{"updated_at = $1"}
	args := []any{time.Now()}

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.ProspectName != nil {
		add("prospect_name", *update.ProspectName)
	}
	if update.Value != nil {
		add("value", *update.Value)
	}
	if update.Stage != nil {
		add("stage", *update.Stage)
	}
	if update.Status != nil {
		add("status", *update.Status)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE pipeline_entries SET %s WHERE id = $%d",
		strings.Join(sets, ", "), len(args),
	)

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating pipeline entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrEntryNotFound
	}
	return nil
}

func (r *PipelineEntryRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE pipeline_entries SET status = $1, updated_at = NOW() WHERE id = $2`
	res, err := r.DB.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrEntryNotFound
	}
	return nil
}

// FindForCallList loads entries in the given stages with every call
// attempt attached, newest entry first. One join, grouped in memory.
func (r *PipelineEntryRepository) FindForCallList(ctx context.Context, stages []string) ([]entity.CallListEntry, error) {
	placeholders := make([]string, len(stages))
	args := make([]any, len(stages))
	for i, s := range stages {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = s
	}

	query := fmt.Sprintf(`
		SELECT
			e.id, e.user_id, e.prospect_name, e.value, e.stage, e.status, e.created_at, e.updated_at,
			a.id, a.pipeline_entry_id, a.user_id, a.status, a.notes, a.attempt_date, a.next_follow_up, a.created_at
		FROM pipeline_entries e
		LEFT JOIN call_attempts a ON a.pipeline_entry_id = e.id
		WHERE e.stage IN (%s)
		ORDER BY e.created_at DESC, a.attempt_date ASC
	`, strings.Join(placeholders, ", "))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []entity.CallListEntry
	index := map[string]int{}

	for rows.Next() {
		var e entity.PipelineEntry
		var (
			attemptID      sql.NullString
			attemptEntryID sql.NullString
			attemptUserID  sql.NullString
			attemptStatus  sql.NullString
			attemptNotes   sql.NullString
			attemptDate    sql.NullTime
			nextFollowUp   sql.NullTime
			attemptCreated sql.NullTime
		)

		err := rows.Scan(
			&e.ID, &e.UserID, &e.ProspectName, &e.Value, &e.Stage, &e.Status, &e.CreatedAt, &e.UpdatedAt,
			&attemptID, &attemptEntryID, &attemptUserID, &attemptStatus, &attemptNotes, &attemptDate, &nextFollowUp, &attemptCreated,
		)
		if err != nil {
			return nil, err
		}

		pos, seen := index[e.ID]
		if !seen {
			entries = append(entries, entity.CallListEntry{PipelineEntry: e})
			pos = len(entries) - 1
			index[e.ID] = pos
		}

		if attemptID.Valid {
			attempt := entity.CallAttempt{
				ID:              attemptID.String,
				PipelineEntryID: attemptEntryID.String,
				UserID:          attemptUserID.String,
				Status:          attemptStatus.String,
				Notes:           attemptNotes.String,
				AttemptDate:     attemptDate.Time,
				CreatedAt:       attemptCreated.Time,
			}
			if nextFollowUp.Valid {
				t := nextFollowUp.Time
				attempt.NextFollowUp = &t
			}
			entries[pos].Attempts = append(entries[pos].Attempts, attempt)
		}
	}

	return entries, rows.Err()
}

func (r *PipelineEntryRepository) FindClosedBetween(ctx context.Context, from, to time.Time) ([]entity.PipelineEntry, error) {
	query := `
		SELECT id, user_id, prospect_name, value, stage, status, created_at, updated_at
		FROM pipeline_entries
		WHERE stage = $1 AND updated_at >= $2 AND updated_at < $3
	`

	rows, err := r.DB.QueryContext(ctx, query, entity.StageClosed, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]entity.PipelineEntry, error) {
	var entries []entity.PipelineEntry
	for rows.Next() {
		var e entity.PipelineEntry
		err := rows.Scan(
			&e.ID, &e.UserID, &e.ProspectName, &e.Value, &e.Stage, &e.Status, &e.CreatedAt, &e.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
