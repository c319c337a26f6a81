package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/entity"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/infra/queue"
)

// CloseDealUseCase folds a just-closed deal into the owner's weekly
// aggregate. The stage write itself has already been persisted by the
// caller; this is the compensating side of that transition.
//
// Hardening over the historical behavior:
//   - the increment is one atomic upsert at the store, so two closes for
//     the same (user, week) cannot lose an update
//   - the entry is flagged WON during reconciliation, so re-invoking for
//     an already-counted entry is a no-op instead of a double count
type CloseDealUseCase struct {
	EntryRepo  entity.PipelineEntryRepository
	MetricRepo entity.PerformanceMetricRepository
	Producer   DealClosedPublisher

	// Now is swappable so tests can pin the week.
	Now func() time.Time
}

func NewCloseDealUseCase(
	entryRepo entity.PipelineEntryRepository,
	metricRepo entity.PerformanceMetricRepository,
	producer DealClosedPublisher,
) *CloseDealUseCase {
	return &CloseDealUseCase{
		EntryRepo:  entryRepo,
		MetricRepo: metricRepo,
		Producer:   producer,
		Now:        time.Now,
	}
}

func (uc *CloseDealUseCase) Execute(ctx context.Context, entryID, previousStage, newStage string) error {
	// Only the transition INTO closed counts. Shuffling a closed deal
	// around, or anything else, is not our business.
	if newStage != entity.StageClosed || previousStage == entity.StageClosed {
		return nil
	}

	// Authoritative post-update data, never the caller's copy.
	entry, err := uc.EntryRepo.FindByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("fetching closed entry %s: %w", entryID, err)
	}

	// Already credited on a previous invocation.
	if entry.Status == entity.StatusWon {
		return nil
	}

	now := uc.Now()
	week, year := WeekOf(now)

	if err := uc.MetricRepo.AddSales(ctx, entry.UserID, week, year, entry.Value, StartOfWeek(now)); err != nil {
		return fmt.Errorf("crediting weekly sales for user %s: %w", entry.UserID, err)
	}

	if err := uc.EntryRepo.UpdateStatus(ctx, entry.ID, entity.StatusWon); err != nil {
		return fmt.Errorf("marking entry %s as won: %w", entry.ID, err)
	}

	// The notification is best-effort: the deal is credited either way.
	if uc.Producer != nil {
		payload := queue.DealClosedPayload{
			EntryID:      entry.ID,
			UserID:       entry.UserID,
			ProspectName: entry.ProspectName,
			Value:        entry.Value,
			WeekNumber:   week,
			Year:         year,
		}
		if err := uc.Producer.PublishDealClosed(ctx, payload); err != nil {
			log.Printf("⚠️ Deal %s credited, but queue publish failed: %v", entry.ID, err)
		}
	}

	log.Printf("💰 Deal closed: %s ($%.2f) credited to user %s, week %d/%d",
		entry.ProspectName, entry.Value, entry.UserID, week, year)
	return nil
}
