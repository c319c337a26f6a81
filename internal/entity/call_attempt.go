package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Call outcomes.
const (
	CallPending     = "PENDING"
	CallCompleted   = "COMPLETED"
	CallNoAnswer    = "NO_ANSWER"
	CallRescheduled = "RESCHEDULED"
)

var ErrAttemptNotFound = errors.New("call attempt not found")

type CallAttempt struct {
	ID              string     `json:"id"`
	PipelineEntryID string     `json:"pipeline_entry_id"`
	UserID          string     `json:"user_id"`
	Status          string     `json:"status"`
	Notes           string     `json:"notes,omitempty"`
	AttemptDate     time.Time  `json:"attempt_date"`
	NextFollowUp    *time.Time `json:"next_follow_up,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// NewCallAttempt logs one outreach attempt stamped with the current instant.
// The owning user is inherited from the pipeline entry, not the request.
func NewCallAttempt(entryID, userID, status, notes string, nextFollowUp *time.Time) (*CallAttempt, error) {
	if entryID == "" {
		return nil, errors.New("pipeline_entry_id is required")
	}
	if !ValidCallStatus(status) {
		return nil, errors.New("invalid call status")
	}

	return &CallAttempt{
		ID:              uuid.New().String(),
		PipelineEntryID: entryID,
		UserID:          userID,
		Status:          status,
		Notes:           notes,
		AttemptDate:     time.Now(),
		NextFollowUp:    nextFollowUp,
		CreatedAt:       time.Now(),
	}, nil
}

func ValidCallStatus(status string) bool {
	switch status {
	case CallPending, CallCompleted, CallNoAnswer, CallRescheduled:
		return true
	}
	return false
}

// CallAttemptUpdate carries corrective edits. Attempts are otherwise
// immutable once logged.
type CallAttemptUpdate struct {
	Status       *string
	Notes        *string
	NextFollowUp *time.Time
	// ClearNextFollowUp cancels a scheduled follow-up. A nil NextFollowUp
	// alone means "leave it alone", so clearing needs its own flag.
	ClearNextFollowUp bool
}

type CallAttemptRepository interface {
	Create(ctx context.Context, attempt *CallAttempt) error
	Update(ctx context.Context, id string, update CallAttemptUpdate) error
	FindByEntryID(ctx context.Context, entryID string) ([]CallAttempt, error)
}
