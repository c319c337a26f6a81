package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/entity"
)

// CallListStages are the active outreach targets. Anything further down
// the funnel is being worked through appointments, not cold calls.
var CallListStages = []string{entity.StageLeads, entity.StageConversations}

// DailyCallQuota is how many calls the list page asks a rep to make.
// Truncation happens at the edge; Rank itself always orders everything.
const DailyCallQuota = 5

type GetCallListUseCase struct {
	EntryRepo entity.PipelineEntryRepository
}

func NewGetCallListUseCase(entryRepo entity.PipelineEntryRepository) *GetCallListUseCase {
	return &GetCallListUseCase{EntryRepo: entryRepo}
}

func (uc *GetCallListUseCase) Execute(ctx context.Context) ([]entity.CallListEntry, error) {
	entries, err := uc.EntryRepo.FindForCallList(ctx, CallListStages)
	if err != nil {
		return nil, fmt.Errorf("loading call list entries: %w", err)
	}

	for i := range entries {
		entries[i].LatestAttempt = latestAttempt(entries[i].Attempts)
	}

	return Rank(entries), nil
}

// latestAttempt picks the attempt with the greatest attempt instant.
// On equal instants the first one encountered wins.
func latestAttempt(attempts []entity.CallAttempt) *entity.CallAttempt {
	if len(attempts) == 0 {
		return nil
	}
	latest := &attempts[0]
	for i := 1; i < len(attempts); i++ {
		if attempts[i].AttemptDate.After(latest.AttemptDate) {
			latest = &attempts[i]
		}
	}
	return latest
}

// Rank orders entries into the daily worklist. Pure: the input slice is
// left untouched and identical inputs always produce identical output.
//
// Precedence, each tier breaking only the ties the previous one left:
//  1. never-called entries first
//  2. earliest next follow-up first, but only when BOTH sides have one
//     (one-sided follow-ups deliberately fall through to tier 3)
//  3. latest attempt NO_ANSWER before any other outcome
//  4. highest value first
func Rank(entries []entity.CallListEntry) []entity.CallListEntry {
	ranked := make([]entity.CallListEntry, len(entries))
	copy(ranked, entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		return compareCallEntries(&ranked[i], &ranked[j]) < 0
	})

	return ranked
}

func compareCallEntries(a, b *entity.CallListEntry) int {
	la, lb := a.LatestAttempt, b.LatestAttempt

	if la == nil && lb != nil {
		return -1
	}
	if la != nil && lb == nil {
		return 1
	}

	if la != nil && lb != nil {
		if la.NextFollowUp != nil && lb.NextFollowUp != nil {
			if la.NextFollowUp.Before(*lb.NextFollowUp) {
				return -1
			}
			if lb.NextFollowUp.Before(*la.NextFollowUp) {
				return 1
			}
		}

		aNoAnswer := la.Status == entity.CallNoAnswer
		bNoAnswer := lb.Status == entity.CallNoAnswer
		if aNoAnswer && !bNoAnswer {
			return -1
		}
		if !aNoAnswer && bNoAnswer {
			return 1
		}
	}

	switch {
	case a.Value > b.Value:
		return -1
	case a.Value < b.Value:
		return 1
	}
	return 0
}
