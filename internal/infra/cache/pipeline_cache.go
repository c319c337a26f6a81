package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/entity"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/infra/integration/ghl"
)

// ErrNoPipelines: the CRM account has no pipeline to show a board for.
var ErrNoPipelines = errors.New("no pipelines found")

// DefaultFreshness is how long a fetched board is served without asking
// the CRM again. Short on purpose: the board is shared between reps.
const DefaultFreshness = 3 * time.Second

// BoardSource is the slice of the CRM client the cache refreshes from.
type BoardSource interface {
	ListPipelines(ctx context.Context) ([]entity.Pipeline, error)
	SearchOpportunities(ctx context.Context, pipelineID string, page, limit int, ifModifiedSince string) (*ghl.OpportunityPage, error)
}

// PipelineCache holds the last fetched board, when it was fetched, and
// the validity token the source handed back. It is injected wherever the
// board is read; there is no package-level instance.
type PipelineCache struct {
	mu           sync.Mutex
	source       BoardSource
	freshness    time.Duration
	board        entity.Board
	fetchedAt    time.Time
	lastModified string
	now          func() time.Time
}

func NewPipelineCache(source BoardSource, freshness time.Duration) *PipelineCache {
	if freshness <= 0 {
		freshness = DefaultFreshness
	}
	return &PipelineCache{
		source:    source,
		freshness: freshness,
		now:       time.Now,
	}
}

// Refresh returns the cached board when it is still fresh, otherwise
// re-fetches. A force bypasses the freshness window but still honors the
// source's not-modified answer.
func (c *PipelineCache) Refresh(ctx context.Context, force bool) (entity.Board, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()

	// A zero fetchedAt means nothing was ever fetched; an empty board that
	// WAS fetched is a valid answer and stays cached for the window.
	if !force && !c.fetchedAt.IsZero() && now.Sub(c.fetchedAt) < c.freshness {
		return c.board, nil
	}

	pipelines, err := c.source.ListPipelines(ctx)
	if err != nil {
		return entity.Board{}, err
	}
	if len(pipelines) == 0 {
		return entity.Board{}, ErrNoPipelines
	}

	// The product works a single pipeline; the first one is the board.
	selected := pipelines[0]

	page, err := c.source.SearchOpportunities(ctx, selected.ID, 1, 100, c.lastModified)
	if err != nil {
		return entity.Board{}, err
	}

	if page.NotModified {
		c.fetchedAt = now
		c.board.Pipeline = selected
		return c.board, nil
	}

	c.board = entity.Board{Pipeline: selected, Opportunities: page.Opportunities}
	c.fetchedAt = now
	c.lastModified = page.LastModified

	return c.board, nil
}

// SetOpportunityStage moves a cached card and clears the validity token
// so the next refresh cannot answer not-modified against stale state.
// Returns the stage the card was on, for rollback.
func (c *PipelineCache) SetOpportunityStage(id, stageID string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.board.Opportunities {
		if c.board.Opportunities[i].ID == id {
			previous := c.board.Opportunities[i].StageID
			c.board.Opportunities[i].StageID = stageID
			c.lastModified = ""
			return previous, true
		}
	}
	return "", false
}

// AddOpportunity prepends a newly created card and clears the token.
func (c *PipelineCache) AddOpportunity(opp entity.Opportunity) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.board.Opportunities = append([]entity.Opportunity{opp}, c.board.Opportunities...)
	c.lastModified = ""
}
