package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/entity"
)

func callEntry(name string, value float64) entity.CallListEntry {
	return entity.CallListEntry{
		PipelineEntry: entity.PipelineEntry{
			ID:           name,
			UserID:       "user-1",
			ProspectName: name,
			Value:        value,
			Stage:        entity.StageLeads,
			Status:       entity.StatusOpen,
		},
	}
}

func withAttempt(e entity.CallListEntry, status string, nextFollowUp *time.Time) entity.CallListEntry {
	attempt := entity.CallAttempt{
		ID:              e.ID + "-attempt",
		PipelineEntryID: e.ID,
		UserID:          e.UserID,
		Status:          status,
		AttemptDate:     time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC),
		NextFollowUp:    nextFollowUp,
	}
	e.Attempts = append(e.Attempts, attempt)
	e.LatestAttempt = &e.Attempts[len(e.Attempts)-1]
	return e
}

func rankedNames(entries []entity.CallListEntry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.ProspectName
	}
	return names
}

func TestRankNeverCalledFirst(t *testing.T) {
	called := withAttempt(callEntry("called-big", 50000), entity.CallCompleted, nil)
	fresh := callEntry("fresh-small", 100)

	ranked := Rank([]entity.CallListEntry{called, fresh})

	assert.Equal(t, []string{"fresh-small", "called-big"}, rankedNames(ranked))
}

func TestRankNeverCalledByValueDescending(t *testing.T) {
	ranked := Rank([]entity.CallListEntry{
		callEntry("small", 1000),
		callEntry("big", 9000),
		callEntry("mid", 4500),
	})

	assert.Equal(t, []string{"big", "mid", "small"}, rankedNames(ranked))
}

func TestRankBothFollowUpsEarliestFirst(t *testing.T) {
	soon := time.Date(2024, 2, 12, 10, 0, 0, 0, time.UTC)
	later := time.Date(2024, 2, 20, 10, 0, 0, 0, time.UTC)

	// The cheap deal is due sooner, so it outranks the big one.
	a := withAttempt(callEntry("big-later", 20000), entity.CallCompleted, &later)
	b := withAttempt(callEntry("small-soon", 500), entity.CallCompleted, &soon)

	ranked := Rank([]entity.CallListEntry{a, b})

	assert.Equal(t, []string{"small-soon", "big-later"}, rankedNames(ranked))
}

func TestRankFollowUpIgnoredWhenOnlyOneSideHasIt(t *testing.T) {
	due := time.Date(2024, 2, 12, 10, 0, 0, 0, time.UTC)

	// One side has a follow-up date, the other doesn't. The follow-up
	// tier only applies when both do, so the outcome tier decides:
	// the unanswered call wins even though it has no scheduled date.
	scheduled := withAttempt(callEntry("scheduled", 8000), entity.CallCompleted, &due)
	unanswered := withAttempt(callEntry("unanswered", 8000), entity.CallNoAnswer, nil)

	ranked := Rank([]entity.CallListEntry{scheduled, unanswered})

	assert.Equal(t, []string{"unanswered", "scheduled"}, rankedNames(ranked))
}

func TestRankNoAnswerBeforeCompleted(t *testing.T) {
	completed := withAttempt(callEntry("completed", 9000), entity.CallCompleted, nil)
	noAnswer := withAttempt(callEntry("no-answer", 100), entity.CallNoAnswer, nil)

	ranked := Rank([]entity.CallListEntry{completed, noAnswer})

	assert.Equal(t, []string{"no-answer", "completed"}, rankedNames(ranked))
}

func TestRankEqualFollowUpsFallThroughToOutcome(t *testing.T) {
	due := time.Date(2024, 2, 12, 10, 0, 0, 0, time.UTC)
	sameDue := due

	completed := withAttempt(callEntry("completed", 9000), entity.CallCompleted, &due)
	noAnswer := withAttempt(callEntry("no-answer", 100), entity.CallNoAnswer, &sameDue)

	ranked := Rank([]entity.CallListEntry{completed, noAnswer})

	assert.Equal(t, []string{"no-answer", "completed"}, rankedNames(ranked))
}

func TestRankIsStable(t *testing.T) {
	// Indistinguishable entries keep their input order.
	first := callEntry("first", 5000)
	second := callEntry("second", 5000)
	third := callEntry("third", 5000)

	ranked := Rank([]entity.CallListEntry{first, second, third})

	assert.Equal(t, []string{"first", "second", "third"}, rankedNames(ranked))
}

func TestRankDoesNotMutateInput(t *testing.T) {
	input := []entity.CallListEntry{
		callEntry("small", 100),
		callEntry("big", 9000),
	}

	Rank(input)

	assert.Equal(t, []string{"small", "big"}, rankedNames(input))
}

func TestGetCallListUsesLatestAttempt(t *testing.T) {
	older := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC)

	// The first logged call went unanswered, the latest one completed.
	// Only the latest attempt counts toward ranking.
	entry := callEntry("retried", 5000)
	entry.Attempts = []entity.CallAttempt{
		{ID: "a1", PipelineEntryID: entry.ID, Status: entity.CallNoAnswer, AttemptDate: older},
		{ID: "a2", PipelineEntryID: entry.ID, Status: entity.CallCompleted, AttemptDate: newer},
	}
	rival := withAttempt(callEntry("rival", 100), entity.CallNoAnswer, nil)

	mockRepo := new(MockPipelineEntryRepository)
	mockRepo.On("FindForCallList", mock.Anything, CallListStages).
		Return([]entity.CallListEntry{entry, rival}, nil)

	uc := NewGetCallListUseCase(mockRepo)
	ranked, err := uc.Execute(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []string{"rival", "retried"}, rankedNames(ranked))
	assert.Equal(t, "a2", ranked[1].LatestAttempt.ID)
	mockRepo.AssertExpectations(t)
}

func TestGetCallListQueriesActiveStagesOnly(t *testing.T) {
	assert.Equal(t, []string{entity.StageLeads, entity.StageConversations}, CallListStages)
}
