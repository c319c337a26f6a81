package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/entity"
)

type AssignmentRepository struct {
	DB *sql.DB
}

func NewAssignmentRepository(db *sql.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

// FindByUserID joins assignments to their session and program in one
// query, newest assignment first.
func (r *AssignmentRepository) FindByUserID(ctx context.Context, userID string) ([]entity.AssignmentWithDetails, error) {
	query := `
		SELECT
			a.id, a.user_id, a.session_id, a.completed, a.completed_at, a.created_at,
			s.id, s.program_id, s.title, COALESCE(s.description, ''), s.order_index, s.created_at,
			p.id, p.name, COALESCE(p.description, ''), p.created_at
		FROM user_assignments a
		JOIN program_sessions s ON s.id = a.session_id
		JOIN coaching_programs p ON p.id = s.program_id
		WHERE a.user_id = $1
		ORDER BY a.created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []entity.AssignmentWithDetails
	for rows.Next() {
		var a entity.AssignmentWithDetails
		var completedAt sql.NullTime

		err := rows.Scan(
			&a.ID, &a.UserID, &a.SessionID, &a.Completed, &completedAt, &a.CreatedAt,
			&a.Session.ID, &a.Session.ProgramID, &a.Session.Title, &a.Session.Description, &a.Session.OrderIndex, &a.Session.CreatedAt,
			&a.Program.ID, &a.Program.Name, &a.Program.Description, &a.Program.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if completedAt.Valid {
			t := completedAt.Time
			a.CompletedAt = &t
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (r *AssignmentRepository) SetCompleted(ctx context.Context, id string, completed bool, completedAt *time.Time) error {
	query := `UPDATE user_assignments SET completed = $1, completed_at = $2 WHERE id = $3`

	res, err := r.DB.ExecContext(ctx, query, completed, completedAt, id)
	if err != nil {
		return fmt.Errorf("updating assignment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrAssignmentNotFound
	}
	return nil
}
