package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Funnel stages, in order. CLOSED is the won/terminal stage.
const (
	StageLeads         = "LEADS"
	StageConversations = "CONVERSATIONS"
	StageAppointments  = "APPOINTMENTS"
	StageFollowUp      = "FOLLOW_UP"
	StageClosed        = "CLOSED"
	StageLost          = "LOST"
)

const (
	StatusOpen = "OPEN"
	StatusWon  = "WON"
	StatusLost = "LOST"
)

var (
	ErrEntryNotFound     = errors.New("pipeline entry not found")
	ErrInvalidStage      = errors.New("invalid pipeline stage")
	ErrDuplicateProspect = errors.New("prospect already exists in the pipeline")
)

type PipelineEntry struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	ProspectName string    `json:"prospect_name"`
	Value        float64   `json:"value"` // dollars, never negative
	Stage        string    `json:"stage"`
	Status       string    `json:"status"` // OPEN, WON, LOST
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewPipelineEntry creates an entry in the first stage of the funnel.
func NewPipelineEntry(userID, prospectName string, value float64) (*PipelineEntry, error) {
	entry := &PipelineEntry{
		ID:           uuid.New().String(),
		UserID:       userID,
		ProspectName: prospectName,
		Value:        value,
		Stage:        StageLeads,
		Status:       StatusOpen,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

func (e *PipelineEntry) Validate() error {
	if e.UserID == "" {
		return errors.New("user_id is required")
	}
	if e.ProspectName == "" {
		return errors.New("prospect_name is required")
	}
	if e.Value < 0 {
		return errors.New("value must not be negative")
	}
	if !ValidStage(e.Stage) {
		return ErrInvalidStage
	}
	return nil
}

func ValidStage(stage string) bool {
	switch stage {
	case StageLeads, StageConversations, StageAppointments, StageFollowUp, StageClosed, StageLost:
		return true
	}
	return false
}

// CallListEntry is a pipeline entry carrying its outreach history.
// LatestAttempt is derived, not stored.
type CallListEntry struct {
	PipelineEntry
	Attempts      []CallAttempt `json:"call_attempts,omitempty"`
	LatestAttempt *CallAttempt  `json:"latest_attempt,omitempty"`
}

// PipelineEntryUpdate carries the fields a partial update may touch.
// Nil means "leave as is".
type PipelineEntryUpdate struct {
	ProspectName *string
	Value        *float64
	Stage        *string
	Status       *string
}

type PipelineEntryRepository interface {
	Create(ctx context.Context, entry *PipelineEntry) error
	FindByID(ctx context.Context, id string) (*PipelineEntry, error)
	FindAll(ctx context.Context) ([]PipelineEntry, error)
	Update(ctx context.Context, id string, update PipelineEntryUpdate) error
	UpdateStatus(ctx context.Context, id, status string) error
	// FindForCallList returns entries in the given stages with their
	// call attempts attached, newest entry first.
	FindForCallList(ctx context.Context, stages []string) ([]CallListEntry, error)
	// FindClosedBetween returns entries in CLOSED whose last update falls
	// inside [from, to).
	FindClosedBetween(ctx context.Context, from, to time.Time) ([]PipelineEntry, error)
}
