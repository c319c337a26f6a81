package usecase

import (
	"context"
	"fmt"

	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/entity"
)

type SubmitWeeklyReportInput struct {
	UserID         string  `json:"user_id"`
	WeekNumber     int     `json:"week_number"`
	Year           int     `json:"year"`
	SalesAmount    float64 `json:"sales_amount"`
	CallsMade      int     `json:"calls_made"`
	MeetingsBooked int     `json:"meetings_booked"`
	LeadsGenerated int     `json:"leads_generated"`
	Notes          string  `json:"notes,omitempty"`
}

// SubmitWeeklyReportUseCase stores a rep's self-reported numbers for one
// week. The profile row is upserted first so the metric never lands on a
// missing user. When the reconciler already credited closed deals into
// the same week, the report merges into that row instead of colliding
// with it; the returned metric is the merged aggregate.
type SubmitWeeklyReportUseCase struct {
	ProfileRepo entity.ProfileRepository
	MetricRepo  entity.PerformanceMetricRepository
}

func NewSubmitWeeklyReportUseCase(
	profileRepo entity.ProfileRepository,
	metricRepo entity.PerformanceMetricRepository,
) *SubmitWeeklyReportUseCase {
	return &SubmitWeeklyReportUseCase{ProfileRepo: profileRepo, MetricRepo: metricRepo}
}

func (uc *SubmitWeeklyReportUseCase) Execute(ctx context.Context, input SubmitWeeklyReportInput) (*entity.PerformanceMetric, error) {
	if errs := ValidateSubmitWeeklyReportInput(input); len(errs) > 0 {
		return nil, errs[0]
	}

	if err := uc.ProfileRepo.Upsert(ctx, &entity.Profile{ID: input.UserID}); err != nil {
		return nil, fmt.Errorf("ensuring profile %s: %w", input.UserID, err)
	}

	metric := entity.NewPerformanceMetric(
		input.UserID,
		input.WeekNumber,
		input.Year,
		WeekStartDate(input.Year, input.WeekNumber),
	)
	metric.SalesAmount = input.SalesAmount
	metric.CallsMade = input.CallsMade
	metric.MeetingsBooked = input.MeetingsBooked
	metric.LeadsGenerated = input.LeadsGenerated
	metric.Notes = input.Notes

	if err := metric.Validate(); err != nil {
		return nil, &DomainError{Code: "INVALID_REPORT", Message: err.Error()}
	}

	if err := uc.MetricRepo.Upsert(ctx, metric); err != nil {
		return nil, fmt.Errorf("saving weekly report: %w", err)
	}

	// Re-read the authoritative row: after a merge the stored totals are
	// not what the input carried.
	stored, err := uc.MetricRepo.FindByUserWeek(ctx, input.UserID, input.WeekNumber, input.Year)
	if err != nil {
		return nil, fmt.Errorf("reading back weekly report: %w", err)
	}

	return stored, nil
}

type UpdatePerformanceRecordUseCase struct {
	MetricRepo entity.PerformanceMetricRepository
}

func NewUpdatePerformanceRecordUseCase(metricRepo entity.PerformanceMetricRepository) *UpdatePerformanceRecordUseCase {
	return &UpdatePerformanceRecordUseCase{MetricRepo: metricRepo}
}

func (uc *UpdatePerformanceRecordUseCase) Execute(ctx context.Context, id string, input SubmitWeeklyReportInput) error {
	if errs := ValidateSubmitWeeklyReportInput(input); len(errs) > 0 {
		return errs[0]
	}

	metric, err := uc.MetricRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("fetching record %s: %w", id, err)
	}

	metric.UserID = input.UserID
	metric.WeekNumber = input.WeekNumber
	metric.Year = input.Year
	metric.SalesAmount = input.SalesAmount
	metric.CallsMade = input.CallsMade
	metric.MeetingsBooked = input.MeetingsBooked
	metric.LeadsGenerated = input.LeadsGenerated
	metric.Notes = input.Notes
	metric.WeekStart = WeekStartDate(input.Year, input.WeekNumber)

	if err := metric.Validate(); err != nil {
		return &DomainError{Code: "INVALID_REPORT", Message: err.Error()}
	}

	return uc.MetricRepo.Update(ctx, id, metric)
}
