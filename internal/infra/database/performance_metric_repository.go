package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/entity"
)

type PerformanceMetricRepository struct {
	DB *sql.DB
}

func NewPerformanceMetricRepository(db *sql.DB) *PerformanceMetricRepository {
	return &PerformanceMetricRepository{DB: db}
}

const metricColumns = `id, user_id, week_number, year, sales_amount, calls_made, meetings_booked, leads_generated, COALESCE(notes, ''), week_start, created_at`

// Upsert lands a weekly report on the same (user, week, year) row the
// reconciler credits deals into. On conflict the reported sales are
// added to the credited amount and the self-reported counters replace
// the old ones; one statement, no read-then-write window.
func (r *PerformanceMetricRepository) Upsert(ctx context.Context, m *entity.PerformanceMetric) error {
	query := `
		INSERT INTO performance_metrics
			(id, user_id, week_number, year, sales_amount, calls_made, meetings_booked, leads_generated, notes, week_start, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id, week_number, year)
		DO UPDATE SET
			sales_amount = performance_metrics.sales_amount + EXCLUDED.sales_amount,
			calls_made = EXCLUDED.calls_made,
			meetings_booked = EXCLUDED.meetings_booked,
			leads_generated = EXCLUDED.leads_generated,
			notes = COALESCE(EXCLUDED.notes, performance_metrics.notes),
			week_start = EXCLUDED.week_start
		RETURNING id
	`

	err := r.DB.QueryRowContext(ctx, query,
		m.ID,
		m.UserID,
		m.WeekNumber,
		m.Year,
		m.SalesAmount,
		m.CallsMade,
		m.MeetingsBooked,
		m.LeadsGenerated,
		nullString(m.Notes),
		m.WeekStart,
		m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("saving performance record: %w", err)
	}
	return nil
}

// AddSales folds a closed deal into the weekly row in one statement.
// The ON CONFLICT arm is what keeps two same-week closes from losing an
// update; there is no read-then-write window here.
func (r *PerformanceMetricRepository) AddSales(ctx context.Context, userID string, week, year int, amount float64, weekStart time.Time) error {
	query := `
		INSERT INTO performance_metrics
			(id, user_id, week_number, year, sales_amount, calls_made, meetings_booked, leads_generated, week_start, created_at)
		VALUES ($1, $2, $3, $4, $5, 0, 0, 0, $6, NOW())
		ON CONFLICT (user_id, week_number, year)
		DO UPDATE SET sales_amount = performance_metrics.sales_amount + EXCLUDED.sales_amount
	`

	_, err := r.DB.ExecContext(ctx, query,
		uuid.New().String(),
		userID,
		week,
		year,
		amount,
		weekStart,
	)
	if err != nil {
		return fmt.Errorf("crediting weekly sales: %w", err)
	}
	return nil
}

func (r *PerformanceMetricRepository) FindByID(ctx context.Context, id string) (*entity.PerformanceMetric, error) {
	query := `SELECT ` + metricColumns + ` FROM performance_metrics WHERE id = $1`

	m, err := scanMetric(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrMetricNotFound
	}
	return m, err
}

func (r *PerformanceMetricRepository) FindByUserWeek(ctx context.Context, userID string, week, year int) (*entity.PerformanceMetric, error) {
	query := `
		SELECT ` + metricColumns + `
		FROM performance_metrics
		WHERE user_id = $1 AND week_number = $2 AND year = $3
	`

	m, err := scanMetric(r.DB.QueryRowContext(ctx, query, userID, week, year))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrMetricNotFound
	}
	return m, err
}

func (r *PerformanceMetricRepository) FindAll(ctx context.Context) ([]entity.PerformanceMetric, error) {
	query := `SELECT ` + metricColumns + ` FROM performance_metrics ORDER BY week_start DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMetrics(rows)
}

func (r *PerformanceMetricRepository) FindByYearWeekRange(ctx context.Context, year, fromWeek, toWeek int) ([]entity.PerformanceMetric, error) {
	query := `
		SELECT ` + metricColumns + `
		FROM performance_metrics
		WHERE year = $1 AND week_number >= $2 AND week_number <= $3
		ORDER BY week_number ASC
	`

	rows, err := r.DB.QueryContext(ctx, query, year, fromWeek, toWeek)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMetrics(rows)
}

func (r *PerformanceMetricRepository) Update(ctx context.Context, id string, m *entity.PerformanceMetric) error {
	query := `
		UPDATE performance_metrics
		SET user_id = $1, week_number = $2, year = $3, sales_amount = $4,
			calls_made = $5, meetings_booked = $6, leads_generated = $7,
			notes = $8, week_start = $9
		WHERE id = $10
	`

	res, err := r.DB.ExecContext(ctx, query,
		m.UserID,
		m.WeekNumber,
		m.Year,
		m.SalesAmount,
		m.CallsMade,
		m.MeetingsBooked,
		m.LeadsGenerated,
		nullString(m.Notes),
		m.WeekStart,
		id,
	)
	if err != nil {
		return fmt.Errorf("updating performance record: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrMetricNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMetric(row rowScanner) (*entity.PerformanceMetric, error) {
	var m entity.PerformanceMetric
	err := row.Scan(
		&m.ID, &m.UserID, &m.WeekNumber, &m.Year, &m.SalesAmount,
		&m.CallsMade, &m.MeetingsBooked, &m.LeadsGenerated, &m.Notes,
		&m.WeekStart, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanMetrics(rows *sql.Rows) ([]entity.PerformanceMetric, error) {
	var metrics []entity.PerformanceMetric
	for rows.Next() {
		m, err := scanMetric(rows)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, *m)
	}
	return metrics, rows.Err()
}
