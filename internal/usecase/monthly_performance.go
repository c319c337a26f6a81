package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/entity"
)

type PipelineMetrics struct {
	TotalLeads  int     `json:"total_leads"`
	TotalValue  float64 `json:"total_value"`
	ClosedDeals int     `json:"closed_deals"`
	ClosedValue float64 `json:"closed_value"`
}

type MonthlyPerformance struct {
	TotalSales    float64                    `json:"total_sales"`
	TotalCalls    int                        `json:"total_calls"`
	TotalMeetings int                        `json:"total_meetings"`
	TotalLeads    int                        `json:"total_leads"`
	WeeklyMetrics []entity.PerformanceMetric `json:"weekly_metrics"`
	Pipeline      PipelineMetrics            `json:"pipeline_metrics"`
}

// GetMonthlyPerformanceUseCase aggregates the dashboard numbers for one
// calendar month: the self-reported weekly metrics falling inside the
// month's week span, plus deals closed during the month, plus a snapshot
// of the whole pipeline by stage.
type GetMonthlyPerformanceUseCase struct {
	MetricRepo entity.PerformanceMetricRepository
	EntryRepo  entity.PipelineEntryRepository
}

func NewGetMonthlyPerformanceUseCase(
	metricRepo entity.PerformanceMetricRepository,
	entryRepo entity.PipelineEntryRepository,
) *GetMonthlyPerformanceUseCase {
	return &GetMonthlyPerformanceUseCase{MetricRepo: metricRepo, EntryRepo: entryRepo}
}

func (uc *GetMonthlyPerformanceUseCase) Execute(ctx context.Context, year int, month time.Month) (*MonthlyPerformance, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	startWeek, startYear := WeekOf(monthStart)
	if startYear < year {
		// Early January can belong to the previous ISO year's last week.
		startWeek = 1
	}
	endWeek, endYear := WeekOf(monthEnd.AddDate(0, 0, -1))
	if endYear > year {
		// Late December can roll into week 1 of the next ISO year.
		endWeek = 53
	}

	metrics, err := uc.MetricRepo.FindByYearWeekRange(ctx, year, startWeek, endWeek)
	if err != nil {
		return nil, fmt.Errorf("loading weekly metrics: %w", err)
	}

	closed, err := uc.EntryRepo.FindClosedBetween(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("loading closed deals: %w", err)
	}

	all, err := uc.EntryRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading pipeline snapshot: %w", err)
	}

	perf := &MonthlyPerformance{WeeklyMetrics: metrics}

	for _, m := range metrics {
		perf.TotalSales += m.SalesAmount
		perf.TotalCalls += m.CallsMade
		perf.TotalMeetings += m.MeetingsBooked
		perf.TotalLeads += m.LeadsGenerated
	}
	for _, deal := range closed {
		perf.TotalSales += deal.Value
	}

	for _, e := range all {
		perf.Pipeline.TotalValue += e.Value
		switch e.Stage {
		case entity.StageLeads:
			perf.Pipeline.TotalLeads++
		case entity.StageClosed:
			perf.Pipeline.ClosedDeals++
			perf.Pipeline.ClosedValue += e.Value
		}
	}

	return perf, nil
}
