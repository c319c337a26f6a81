package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/entity"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/infra/integration/ghl"
)

// fakeBoardCache tracks opportunity stages in a plain map so the move
// tests can observe rollbacks.
type fakeBoardCache struct {
	stages    map[string]string
	added     []entity.Opportunity
	refreshes int
}

func newFakeBoardCache(stages map[string]string) *fakeBoardCache {
	return &fakeBoardCache{stages: stages}
}

func (f *fakeBoardCache) Refresh(ctx context.Context, force bool) (entity.Board, error) {
	f.refreshes++
	return entity.Board{}, nil
}

func (f *fakeBoardCache) SetOpportunityStage(id, stageID string) (string, bool) {
	prev, ok := f.stages[id]
	if !ok {
		return "", false
	}
	f.stages[id] = stageID
	return prev, true
}

func (f *fakeBoardCache) AddOpportunity(opp entity.Opportunity) {
	f.added = append(f.added, opp)
}

func TestMoveOpportunityPushesToCRM(t *testing.T) {
	cache := newFakeBoardCache(map[string]string{"opp-1": "stage-a"})

	gateway := new(MockOpportunityGateway)
	gateway.On("UpdateOpportunity", mock.Anything, "opp-1", ghl.UpdateOpportunityInput{
		PipelineID: "pipe-1",
		StageID:    "stage-b",
	}).Return(&entity.Opportunity{ID: "opp-1", StageID: "stage-b"}, nil)

	uc := NewMoveOpportunityUseCase(gateway, cache)
	err := uc.Execute(context.Background(), "opp-1", "pipe-1", "stage-b")

	assert.NoError(t, err)
	assert.Equal(t, "stage-b", cache.stages["opp-1"])
	gateway.AssertExpectations(t)
}

func TestMoveOpportunityRollsBackOnCRMReject(t *testing.T) {
	cache := newFakeBoardCache(map[string]string{"opp-1": "stage-a"})

	gateway := new(MockOpportunityGateway)
	gateway.On("UpdateOpportunity", mock.Anything, "opp-1", mock.Anything).
		Return(nil, errors.New("stage does not belong to pipeline"))

	uc := NewMoveOpportunityUseCase(gateway, cache)
	err := uc.Execute(context.Background(), "opp-1", "pipe-1", "stage-b")

	assert.Error(t, err)
	// Local stage reverted, the board never drifts from the CRM.
	assert.Equal(t, "stage-a", cache.stages["opp-1"])
}

func TestMoveOpportunityUnknownID(t *testing.T) {
	cache := newFakeBoardCache(map[string]string{})

	gateway := new(MockOpportunityGateway)
	uc := NewMoveOpportunityUseCase(gateway, cache)

	err := uc.Execute(context.Background(), "ghost", "pipe-1", "stage-b")

	assert.Error(t, err)
	gateway.AssertNotCalled(t, "UpdateOpportunity", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateOpportunityValidation(t *testing.T) {
	uc := NewCreateOpportunityUseCase(new(MockOpportunityGateway), newFakeBoardCache(nil))

	_, err := uc.Execute(context.Background(), ghl.CreateOpportunityInput{Value: 100})
	assert.True(t, IsDomainError(err), "missing title should be a domain error")

	_, err = uc.Execute(context.Background(), ghl.CreateOpportunityInput{Title: "Acme", Value: 0})
	assert.True(t, IsDomainError(err), "non-positive value should be a domain error")
}

func TestCreateOpportunityAddsToCache(t *testing.T) {
	cache := newFakeBoardCache(nil)

	created := &entity.Opportunity{ID: "opp-9", Title: "Acme", Value: 1200}
	gateway := new(MockOpportunityGateway)
	gateway.On("CreateOpportunity", mock.Anything, mock.Anything).Return(created, nil)

	uc := NewCreateOpportunityUseCase(gateway, cache)
	opp, err := uc.Execute(context.Background(), ghl.CreateOpportunityInput{Title: "Acme", Value: 1200})

	assert.NoError(t, err)
	assert.Equal(t, "opp-9", opp.ID)
	assert.Len(t, cache.added, 1)
}
