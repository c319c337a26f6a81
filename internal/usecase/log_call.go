package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/entity"
)

type LogCallInput struct {
	PipelineEntryID string     `json:"pipeline_entry_id"`
	Status          string     `json:"status"`
	Notes           string     `json:"notes,omitempty"`
	NextFollowUp    *time.Time `json:"next_follow_up,omitempty"`
}

// LogCallUseCase records one outreach attempt. The attempt inherits the
// owning user from its pipeline entry, so a rep cannot log calls onto
// someone else's book by passing a different user id.
type LogCallUseCase struct {
	EntryRepo   entity.PipelineEntryRepository
	AttemptRepo entity.CallAttemptRepository
}

func NewLogCallUseCase(entryRepo entity.PipelineEntryRepository, attemptRepo entity.CallAttemptRepository) *LogCallUseCase {
	return &LogCallUseCase{EntryRepo: entryRepo, AttemptRepo: attemptRepo}
}

func (uc *LogCallUseCase) Execute(ctx context.Context, input LogCallInput) (*entity.CallAttempt, error) {
	if errs := ValidateLogCallInput(input); len(errs) > 0 {
		return nil, errs[0]
	}

	entry, err := uc.EntryRepo.FindByID(ctx, input.PipelineEntryID)
	if err != nil {
		return nil, fmt.Errorf("fetching entry for call log: %w", err)
	}

	attempt, err := entity.NewCallAttempt(entry.ID, entry.UserID, input.Status, input.Notes, input.NextFollowUp)
	if err != nil {
		return nil, &DomainError{Code: "INVALID_CALL", Message: err.Error()}
	}

	if err := uc.AttemptRepo.Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("saving call attempt: %w", err)
	}

	return attempt, nil
}

// UpdateCallAttemptUseCase applies a corrective edit to a logged attempt.
type UpdateCallAttemptUseCase struct {
	AttemptRepo entity.CallAttemptRepository
}

func NewUpdateCallAttemptUseCase(attemptRepo entity.CallAttemptRepository) *UpdateCallAttemptUseCase {
	return &UpdateCallAttemptUseCase{AttemptRepo: attemptRepo}
}

func (uc *UpdateCallAttemptUseCase) Execute(ctx context.Context, id string, update entity.CallAttemptUpdate) error {
	if update.Status != nil && !entity.ValidCallStatus(*update.Status) {
		return &DomainError{Code: "INVALID_CALL_STATUS", Message: "invalid call status"}
	}
	if update.ClearNextFollowUp && update.NextFollowUp != nil {
		return &DomainError{Code: "AMBIGUOUS_FOLLOW_UP", Message: "cannot set and clear next_follow_up in one edit"}
	}
	return uc.AttemptRepo.Update(ctx, id, update)
}
