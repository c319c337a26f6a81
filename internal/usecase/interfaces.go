package usecase

import (
	"context"

	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/entity"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/infra/integration/ghl"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/infra/queue"
)

type DealClosedPublisher interface {
	PublishDealClosed(ctx context.Context, payload queue.DealClosedPayload) error
}

// OpportunityGateway is the slice of the external CRM API the board
// use cases need.
type OpportunityGateway interface {
	ListPipelines(ctx context.Context) ([]entity.Pipeline, error)
	CreateOpportunity(ctx context.Context, input ghl.CreateOpportunityInput) (*entity.Opportunity, error)
	UpdateOpportunity(ctx context.Context, id string, input ghl.UpdateOpportunityInput) (*entity.Opportunity, error)
}

// BoardCache is the freshness-windowed local copy of the board. Local
// mutations clear its validity token so the next refresh goes back to
// the source unconditionally.
type BoardCache interface {
	Refresh(ctx context.Context, force bool) (entity.Board, error)
	SetOpportunityStage(id, stageID string) (previousStage string, ok bool)
	AddOpportunity(opp entity.Opportunity)
}
