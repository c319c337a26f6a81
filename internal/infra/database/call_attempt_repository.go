package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/entity"
)

type CallAttemptRepository struct {
	DB *sql.DB
}

func NewCallAttemptRepository(db *sql.DB) *CallAttemptRepository {
	return &CallAttemptRepository{DB: db}
}

func (r *CallAttemptRepository) Create(ctx context.Context, a *entity.CallAttempt) error {
	query := `
		INSERT INTO call_attempts (id, pipeline_entry_id, user_id, status, notes, attempt_date, next_follow_up, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.DB.ExecContext(ctx, query,
		a.ID,
		a.PipelineEntryID,
		a.UserID,
		a.Status,
		nullString(a.Notes),
		a.AttemptDate,
		a.NextFollowUp,
		a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting call attempt: %w", err)
	}
	return nil
}

func (r *CallAttemptRepository) Update(ctx context.Context, id string, update entity.CallAttemptUpdate) error {
	var sets []string
	var args []any

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Status != nil {
		add("status", *update.Status)
	}
	if update.Notes != nil {
		add("notes", nullString(*update.Notes))
	}
	if update.ClearNextFollowUp {
		add("next_follow_up", nil)
	} else if update.NextFollowUp != nil {
		add("next_follow_up", *update.NextFollowUp)
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE call_attempts SET %s WHERE id = $%d",
		strings.Join(sets, ", "), len(args),
	)

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating call attempt: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrAttemptNotFound
	}
	return nil
}

func (r *CallAttemptRepository) FindByEntryID(ctx context.Context, entryID string) ([]entity.CallAttempt, error) {
	query := `
		SELECT id, pipeline_entry_id, user_id, status, COALESCE(notes, ''), attempt_date, next_follow_up, created_at
		FROM call_attempts
		WHERE pipeline_entry_id = $1
		ORDER BY attempt_date ASC
	`

	rows, err := r.DB.QueryContext(ctx, query, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []entity.CallAttempt
	for rows.Next() {
		var a entity.CallAttempt
		var nextFollowUp sql.NullTime
		err := rows.Scan(
			&a.ID, &a.PipelineEntryID, &a.UserID, &a.Status, &a.Notes, &a.AttemptDate, &nextFollowUp, &a.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if nextFollowUp.Valid {
			t := nextFollowUp.Time
			a.NextFollowUp = &t
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
