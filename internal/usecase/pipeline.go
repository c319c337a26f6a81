package usecase

import (
	"context"
	"fmt"

	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/entity"
)

type CreatePipelineEntryInput struct {
	UserID       string  `json:"user_id"`
	ProspectName string  `json:"prospect_name"`
	Value        float64 `json:"value"`
}

type CreatePipelineEntryUseCase struct {
	EntryRepo entity.PipelineEntryRepository
}

func NewCreatePipelineEntryUseCase(entryRepo entity.PipelineEntryRepository) *CreatePipelineEntryUseCase {
	return &CreatePipelineEntryUseCase{EntryRepo: entryRepo}
}

func (uc *CreatePipelineEntryUseCase) Execute(ctx context.Context, input CreatePipelineEntryInput) (*entity.PipelineEntry, error) {
	if errs := ValidateCreatePipelineEntryInput(input); len(errs) > 0 {
		return nil, errs[0]
	}

	entry, err := entity.NewPipelineEntry(input.UserID, input.ProspectName, input.Value)
	if err != nil {
		return nil, &DomainError{Code: "INVALID_ENTRY", Message: err.Error()}
	}

	if err := uc.EntryRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("creating pipeline entry: %w", err)
	}

	return entry, nil
}

type UpdatePipelineEntryInput struct {
	ProspectName *string  `json:"prospect_name,omitempty"`
	Value        *float64 `json:"value,omitempty"`
	Stage        *string  `json:"stage,omitempty"`
}

// UpdatePipelineEntryUseCase persists a partial update and, when the
// update moves the entry into CLOSED, hands off to the reconciler. The
// pre-update stage is read first so the transition can be detected
// against what was actually stored.
type UpdatePipelineEntryUseCase struct {
	EntryRepo entity.PipelineEntryRepository
	CloseDeal *CloseDealUseCase
}

func NewUpdatePipelineEntryUseCase(entryRepo entity.PipelineEntryRepository, closeDeal *CloseDealUseCase) *UpdatePipelineEntryUseCase {
	return &UpdatePipelineEntryUseCase{EntryRepo: entryRepo, CloseDeal: closeDeal}
}

func (uc *UpdatePipelineEntryUseCase) Execute(ctx context.Context, id string, input UpdatePipelineEntryInput) error {
	if input.Stage != nil && !entity.ValidStage(*input.Stage) {
		return &DomainError{Code: "INVALID_STAGE", Message: entity.ErrInvalidStage.Error()}
	}
	if input.Value != nil && *input.Value < 0 {
		return &DomainError{Code: "INVALID_VALUE", Message: "value must not be negative"}
	}

	current, err := uc.EntryRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("fetching entry %s: %w", id, err)
	}

	update := entity.PipelineEntryUpdate{
		ProspectName: input.ProspectName,
		Value:        input.Value,
		Stage:        input.Stage,
	}
	if err := uc.EntryRepo.Update(ctx, id, update); err != nil {
		return fmt.Errorf("updating entry %s: %w", id, err)
	}

	// The stage change is persisted at this point. A reconciler failure
	// below leaves the entry closed with the aggregate pending; the fix
	// is to retry the reconciliation, not the whole update.
	if input.Stage != nil {
		if err := uc.CloseDeal.Execute(ctx, id, current.Stage, *input.Stage); err != nil {
			return err
		}
	}

	return nil
}

type ListPipelineEntriesUseCase struct {
	EntryRepo entity.PipelineEntryRepository
}

func NewListPipelineEntriesUseCase(entryRepo entity.PipelineEntryRepository) *ListPipelineEntriesUseCase {
	return &ListPipelineEntriesUseCase{EntryRepo: entryRepo}
}

func (uc *ListPipelineEntriesUseCase) Execute(ctx context.Context) ([]entity.PipelineEntry, error) {
	return uc.EntryRepo.FindAll(ctx)
}
