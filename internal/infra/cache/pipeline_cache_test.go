package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/entity"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/infra/integration/ghl"
)

// fakeSource counts upstream traffic and replays a canned board.
type fakeSource struct {
	pipelines     []entity.Pipeline
	opportunities []entity.Opportunity
	lastModified  string

	pipelineCalls int
	searchCalls   int
	gotToken      string
}

func (f *fakeSource) ListPipelines(ctx context.Context) ([]entity.Pipeline, error) {
	f.pipelineCalls++
	return f.pipelines, nil
}

func (f *fakeSource) SearchOpportunities(ctx context.Context, pipelineID string, page, limit int, ifModifiedSince string) (*ghl.OpportunityPage, error) {
	f.searchCalls++
	f.gotToken = ifModifiedSince
	if ifModifiedSince != "" && ifModifiedSince == f.lastModified {
		return &ghl.OpportunityPage{NotModified: true, LastModified: ifModifiedSince}, nil
	}
	return &ghl.OpportunityPage{
		Opportunities: f.opportunities,
		LastModified:  f.lastModified,
	}, nil
}

func boardSource() *fakeSource {
	return &fakeSource{
		pipelines: []entity.Pipeline{{ID: "pipe-1", Name: "Sales"}},
		opportunities: []entity.Opportunity{
			{ID: "opp-1", Title: "Acme", StageID: "stage-a"},
		},
		lastModified: "Wed, 14 Feb 2024 10:00:00 GMT",
	}
}

func atInstant(c *PipelineCache, t time.Time) {
	c.now = func() time.Time { return t }
}

func TestRefreshServesFromCacheInsideWindow(t *testing.T) {
	source := boardSource()
	c := NewPipelineCache(source, 3*time.Second)

	start := time.Date(2024, 2, 14, 10, 0, 0, 0, time.UTC)
	atInstant(c, start)

	board, err := c.Refresh(context.Background(), false)
	assert.NoError(t, err)
	assert.Len(t, board.Opportunities, 1)
	assert.Equal(t, 1, source.searchCalls)

	// One second later the window is still open: no upstream traffic.
	atInstant(c, start.Add(time.Second))
	_, err = c.Refresh(context.Background(), false)
	assert.NoError(t, err)
	assert.Equal(t, 1, source.searchCalls)

	// Past the window the source is consulted again.
	atInstant(c, start.Add(5*time.Second))
	_, err = c.Refresh(context.Background(), false)
	assert.NoError(t, err)
	assert.Equal(t, 2, source.searchCalls)
}

func TestRefreshCachesEmptyBoard(t *testing.T) {
	source := boardSource()
	source.opportunities = nil

	c := NewPipelineCache(source, 3*time.Second)

	start := time.Date(2024, 2, 14, 10, 0, 0, 0, time.UTC)
	atInstant(c, start)

	board, err := c.Refresh(context.Background(), false)
	assert.NoError(t, err)
	assert.Empty(t, board.Opportunities)

	// An empty board is a valid answer: inside the window it is served
	// from cache like any other.
	atInstant(c, start.Add(time.Second))
	_, err = c.Refresh(context.Background(), false)
	assert.NoError(t, err)
	assert.Equal(t, 1, source.searchCalls)
}

func TestRefreshForceBypassesWindow(t *testing.T) {
	source := boardSource()
	c := NewPipelineCache(source, 3*time.Second)

	start := time.Date(2024, 2, 14, 10, 0, 0, 0, time.UTC)
	atInstant(c, start)

	_, err := c.Refresh(context.Background(), false)
	assert.NoError(t, err)

	atInstant(c, start.Add(time.Second))
	_, err = c.Refresh(context.Background(), true)
	assert.NoError(t, err)
	assert.Equal(t, 2, source.searchCalls)
}

func TestRefreshRevalidatesWithToken(t *testing.T) {
	source := boardSource()
	c := NewPipelineCache(source, 3*time.Second)

	start := time.Date(2024, 2, 14, 10, 0, 0, 0, time.UTC)
	atInstant(c, start)

	_, err := c.Refresh(context.Background(), false)
	assert.NoError(t, err)

	// The second fetch revalidates with the stored token and keeps the
	// cached cards on a not-modified answer.
	atInstant(c, start.Add(10*time.Second))
	board, err := c.Refresh(context.Background(), false)
	assert.NoError(t, err)
	assert.Equal(t, source.lastModified, source.gotToken)
	assert.Len(t, board.Opportunities, 1)
}

func TestLocalMutationClearsToken(t *testing.T) {
	source := boardSource()
	c := NewPipelineCache(source, 3*time.Second)

	start := time.Date(2024, 2, 14, 10, 0, 0, 0, time.UTC)
	atInstant(c, start)

	_, err := c.Refresh(context.Background(), false)
	assert.NoError(t, err)

	prev, ok := c.SetOpportunityStage("opp-1", "stage-b")
	assert.True(t, ok)
	assert.Equal(t, "stage-a", prev)

	// After a local move the next refresh must fetch unconditionally.
	atInstant(c, start.Add(10*time.Second))
	_, err = c.Refresh(context.Background(), false)
	assert.NoError(t, err)
	assert.Empty(t, source.gotToken)
}

func TestAddOpportunityPrepends(t *testing.T) {
	source := boardSource()
	c := NewPipelineCache(source, 3*time.Second)

	start := time.Date(2024, 2, 14, 10, 0, 0, 0, time.UTC)
	atInstant(c, start)

	_, err := c.Refresh(context.Background(), false)
	assert.NoError(t, err)

	c.AddOpportunity(entity.Opportunity{ID: "opp-2", Title: "Globex"})

	board, err := c.Refresh(context.Background(), false)
	assert.NoError(t, err)
	assert.Equal(t, "opp-2", board.Opportunities[0].ID)
}

func TestRefreshNoPipelines(t *testing.T) {
	c := NewPipelineCache(&fakeSource{}, 3*time.Second)
	atInstant(c, time.Date(2024, 2, 14, 10, 0, 0, 0, time.UTC))

	_, err := c.Refresh(context.Background(), false)
	assert.ErrorIs(t, err, ErrNoPipelines)
}

func TestUnknownOpportunityMove(t *testing.T) {
	c := NewPipelineCache(boardSource(), 3*time.Second)

	_, ok := c.SetOpportunityStage("ghost", "stage-b")
	assert.False(t, ok)
}
