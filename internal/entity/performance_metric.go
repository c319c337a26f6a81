package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrMetricNotFound = errors.New("performance record not found")

// PerformanceMetric is one weekly aggregate per (user, week, year).
// The table enforces uniqueness on that triple; concurrent credits go
// through AddSales, which upserts against it atomically.
type PerformanceMetric struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	WeekNumber     int       `json:"week_number"`
	Year           int       `json:"year"`
	SalesAmount    float64   `json:"sales_amount"`
	CallsMade      int       `json:"calls_made"`
	MeetingsBooked int       `json:"meetings_booked"`
	LeadsGenerated int       `json:"leads_generated"`
	Notes          string    `json:"notes,omitempty"`
	WeekStart      time.Time `json:"week_start"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewPerformanceMetric(userID string, week, year int, weekStart time.Time) *PerformanceMetric {
	return &PerformanceMetric{
		ID:         uuid.New().String(),
		UserID:     userID,
		WeekNumber: week,
		Year:       year,
		WeekStart:  weekStart,
		CreatedAt:  time.Now(),
	}
}

func (m *PerformanceMetric) Validate() error {
	if m.UserID == "" {
		return errors.New("user_id is required")
	}
	if m.WeekNumber < 1 || m.WeekNumber > 53 {
		return errors.New("week_number must be between 1 and 53")
	}
	if m.Year < 2000 {
		return errors.New("year is out of range")
	}
	if m.SalesAmount < 0 {
		return errors.New("sales_amount must not be negative")
	}
	if m.CallsMade < 0 || m.MeetingsBooked < 0 || m.LeadsGenerated < 0 {
		return errors.New("activity counters must not be negative")
	}
	return nil
}

type PerformanceMetricRepository interface {
	// Upsert stores a weekly report. When the reconciler already created
	// the (user, week, year) row for a closed deal, the report merges
	// into it: reported sales are added on top of the credited amount,
	// the activity counters are replaced.
	Upsert(ctx context.Context, metric *PerformanceMetric) error
	FindByID(ctx context.Context, id string) (*PerformanceMetric, error)
	FindAll(ctx context.Context) ([]PerformanceMetric, error)
	FindByUserWeek(ctx context.Context, userID string, week, year int) (*PerformanceMetric, error)
	FindByYearWeekRange(ctx context.Context, year, fromWeek, toWeek int) ([]PerformanceMetric, error)
	Update(ctx context.Context, id string, metric *PerformanceMetric) error
	// AddSales folds amount into the (user, week, year) row in a single
	// atomic upsert-with-increment. Creates the row with counters at zero
	// when absent.
	AddSales(ctx context.Context, userID string, week, year int, amount float64, weekStart time.Time) error
}
