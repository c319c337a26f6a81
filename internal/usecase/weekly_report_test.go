package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/entity"
)

func validReportInput() SubmitWeeklyReportInput {
	return SubmitWeeklyReportInput{
		UserID:         "user-1",
		WeekNumber:     7,
		Year:           2024,
		SalesAmount:    3200,
		CallsMade:      40,
		MeetingsBooked: 6,
		LeadsGenerated: 12,
		Notes:          "strong week",
	}
}

func TestSubmitWeeklyReport(t *testing.T) {
	mockProfiles := new(MockProfileRepository)
	mockProfiles.On("Upsert", mock.Anything, mock.MatchedBy(func(p *entity.Profile) bool {
		return p.ID == "user-1"
	})).Return(nil)

	stored := entity.NewPerformanceMetric("user-1", 7, 2024, time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC))
	stored.SalesAmount = 3200

	mockMetrics := new(MockPerformanceMetricRepository)
	mockMetrics.On("Upsert", mock.Anything, mock.MatchedBy(func(m *entity.PerformanceMetric) bool {
		return m.UserID == "user-1" &&
			m.WeekNumber == 7 &&
			m.Year == 2024 &&
			m.SalesAmount == 3200 &&
			m.WeekStart.Equal(time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC))
	})).Return(nil)
	mockMetrics.On("FindByUserWeek", mock.Anything, "user-1", 7, 2024).Return(stored, nil)

	uc := NewSubmitWeeklyReportUseCase(mockProfiles, mockMetrics)
	metric, err := uc.Execute(context.Background(), validReportInput())

	assert.NoError(t, err)
	assert.NotEmpty(t, metric.ID)
	assert.Equal(t, 3200.0, metric.SalesAmount)
	mockProfiles.AssertExpectations(t)
	mockMetrics.AssertExpectations(t)
}

func TestSubmitWeeklyReportEnsuresProfileFirst(t *testing.T) {
	mockProfiles := new(MockProfileRepository)
	mockProfiles.On("Upsert", mock.Anything, mock.Anything).Return(errors.New("profiles table unavailable"))

	mockMetrics := new(MockPerformanceMetricRepository)

	uc := NewSubmitWeeklyReportUseCase(mockProfiles, mockMetrics)
	_, err := uc.Execute(context.Background(), validReportInput())

	assert.Error(t, err)
	// No orphaned metric row when the profile write fails.
	mockMetrics.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

// A rep whose deal already closed this week can still file the weekly
// report: the reported sales merge on top of the credited amount instead
// of colliding with the existing row.
func TestSubmitWeeklyReportAfterDealClosed(t *testing.T) {
	store := newFakeMetricStore()

	mockEntries := new(MockPipelineEntryRepository)
	mockEntries.On("FindByID", mock.Anything, "entry-1").Return(closedEntry(), nil)
	mockEntries.On("UpdateStatus", mock.Anything, "entry-1", entity.StatusWon).Return(nil)

	closeUC := NewCloseDealUseCase(mockEntries, store, nil)
	closeUC.Now = func() time.Time { return pinnedNow }

	assert.NoError(t, closeUC.Execute(context.Background(), "entry-1", entity.StageFollowUp, entity.StageClosed))

	mockProfiles := new(MockProfileRepository)
	mockProfiles.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	reportUC := NewSubmitWeeklyReportUseCase(mockProfiles, store)
	metric, err := reportUC.Execute(context.Background(), validReportInput())

	assert.NoError(t, err)
	assert.Equal(t, 4700.0, metric.SalesAmount)
	assert.Equal(t, 40, metric.CallsMade)
	assert.Equal(t, 6, metric.MeetingsBooked)
	assert.Equal(t, "strong week", metric.Notes)
}

func TestSubmitWeeklyReportValidation(t *testing.T) {
	uc := NewSubmitWeeklyReportUseCase(new(MockProfileRepository), new(MockPerformanceMetricRepository))

	cases := []struct {
		name   string
		mutate func(*SubmitWeeklyReportInput)
	}{
		{"missing user", func(i *SubmitWeeklyReportInput) { i.UserID = " " }},
		{"week zero", func(i *SubmitWeeklyReportInput) { i.WeekNumber = 0 }},
		{"week 54", func(i *SubmitWeeklyReportInput) { i.WeekNumber = 54 }},
		{"negative sales", func(i *SubmitWeeklyReportInput) { i.SalesAmount = -1 }},
		{"negative calls", func(i *SubmitWeeklyReportInput) { i.CallsMade = -5 }},
		{"year out of range", func(i *SubmitWeeklyReportInput) { i.Year = 1999 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validReportInput()
			tc.mutate(&input)

			_, err := uc.Execute(context.Background(), input)

			var validationErr ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestUpdatePerformanceRecord(t *testing.T) {
	existing := entity.NewPerformanceMetric("user-1", 6, 2024, time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC))

	mockMetrics := new(MockPerformanceMetricRepository)
	mockMetrics.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
	mockMetrics.On("Update", mock.Anything, existing.ID, mock.MatchedBy(func(m *entity.PerformanceMetric) bool {
		return m.WeekNumber == 7 && m.SalesAmount == 3200 &&
			m.WeekStart.Equal(time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC))
	})).Return(nil)

	uc := NewUpdatePerformanceRecordUseCase(mockMetrics)
	err := uc.Execute(context.Background(), existing.ID, validReportInput())

	assert.NoError(t, err)
	mockMetrics.AssertExpectations(t)
}
