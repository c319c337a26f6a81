package entity

import (
	"context"
	"errors"
	"time"
)

var ErrAssignmentNotFound = errors.New("assignment not found")

type CoachingProgram struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type ProgramSession struct {
	ID          string    `json:"id"`
	ProgramID   string    `json:"program_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	OrderIndex  int       `json:"order_index"`
	CreatedAt   time.Time `json:"created_at"`
}

type UserAssignment struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	SessionID   string     `json:"session_id"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// AssignmentWithDetails joins the assignment to its session and program,
// the shape the assignments page renders.
type AssignmentWithDetails struct {
	UserAssignment
	Session ProgramSession  `json:"session"`
	Program CoachingProgram `json:"program"`
}

type AssignmentRepository interface {
	FindByUserID(ctx context.Context, userID string) ([]AssignmentWithDetails, error)
	SetCompleted(ctx context.Context, id string, completed bool, completedAt *time.Time) error
}
