package usecase

import (
	"context"
	"fmt"

	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/entity"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/infra/integration/ghl"
)

// Board use cases drive the kanban view served from the external CRM.
// Reads go through the cache; writes apply locally first and roll back
// if the CRM rejects them, which is what makes drag-and-drop feel
// instant without letting the board drift from the source of truth.

type GetBoardUseCase struct {
	Cache BoardCache
}

func NewGetBoardUseCase(cache BoardCache) *GetBoardUseCase {
	return &GetBoardUseCase{Cache: cache}
}

func (uc *GetBoardUseCase) Execute(ctx context.Context, force bool) (entity.Board, error) {
	return uc.Cache.Refresh(ctx, force)
}

type MoveOpportunityUseCase struct {
	Gateway OpportunityGateway
	Cache   BoardCache
}

func NewMoveOpportunityUseCase(gateway OpportunityGateway, cache BoardCache) *MoveOpportunityUseCase {
	return &MoveOpportunityUseCase{Gateway: gateway, Cache: cache}
}

func (uc *MoveOpportunityUseCase) Execute(ctx context.Context, id, pipelineID, stageID string) error {
	var previousStage string

	tx := NewTransaction()

	tx.AddOperation("apply stage locally", func(ctx context.Context) error {
		prev, ok := uc.Cache.SetOpportunityStage(id, stageID)
		if !ok {
			return &DomainError{Code: "UNKNOWN_OPPORTUNITY", Message: fmt.Sprintf("opportunity %s is not on the board", id)}
		}
		previousStage = prev
		return nil
	})
	tx.AddCompensation("revert stage locally", func(ctx context.Context) error {
		uc.Cache.SetOpportunityStage(id, previousStage)
		return nil
	})

	tx.AddOperation("push stage to CRM", func(ctx context.Context) error {
		_, err := uc.Gateway.UpdateOpportunity(ctx, id, ghl.UpdateOpportunityInput{
			PipelineID: pipelineID,
			StageID:    stageID,
		})
		return err
	})

	return tx.Execute(ctx)
}

type CreateOpportunityUseCase struct {
	Gateway OpportunityGateway
	Cache   BoardCache
}

func NewCreateOpportunityUseCase(gateway OpportunityGateway, cache BoardCache) *CreateOpportunityUseCase {
	return &CreateOpportunityUseCase{Gateway: gateway, Cache: cache}
}

func (uc *CreateOpportunityUseCase) Execute(ctx context.Context, input ghl.CreateOpportunityInput) (*entity.Opportunity, error) {
	if input.Title == "" {
		return nil, &DomainError{Code: "MISSING_TITLE", Message: "title is required"}
	}
	if input.Value <= 0 {
		return nil, &DomainError{Code: "INVALID_VALUE", Message: "value must be a positive number"}
	}

	opp, err := uc.Gateway.CreateOpportunity(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("creating opportunity: %w", err)
	}

	uc.Cache.AddOpportunity(*opp)
	return opp, nil
}
