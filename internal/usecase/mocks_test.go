package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/entity"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/infra/integration/ghl"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/infra/queue"
)

// MockPipelineEntryRepository
type MockPipelineEntryRepository struct {
	mock.Mock
}

func (m *MockPipelineEntryRepository) Create(ctx context.Context, entry *entity.PipelineEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockPipelineEntryRepository) FindByID(ctx context.Context, id string) (*entity.PipelineEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PipelineEntry), args.Error(1)
}

func (m *MockPipelineEntryRepository) FindAll(ctx context.Context) ([]entity.PipelineEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.PipelineEntry), args.Error(1)
}

func (m *MockPipelineEntryRepository) Update(ctx context.Context, id string, update entity.PipelineEntryUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockPipelineEntryRepository) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockPipelineEntryRepository) FindForCallList(ctx context.Context, stages []string) ([]entity.CallListEntry, error) {
	args := m.Called(ctx, stages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.CallListEntry), args.Error(1)
}

func (m *MockPipelineEntryRepository) FindClosedBetween(ctx context.Context, from, to time.Time) ([]entity.PipelineEntry, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.PipelineEntry), args.Error(1)
}

// MockPerformanceMetricRepository
type MockPerformanceMetricRepository struct {
	mock.Mock
}

func (m *MockPerformanceMetricRepository) Upsert(ctx context.Context, metric *entity.PerformanceMetric) error {
	args := m.Called(ctx, metric)
	return args.Error(0)
}

func (m *MockPerformanceMetricRepository) FindByID(ctx context.Context, id string) (*entity.PerformanceMetric, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PerformanceMetric), args.Error(1)
}

func (m *MockPerformanceMetricRepository) FindAll(ctx context.Context) ([]entity.PerformanceMetric, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.PerformanceMetric), args.Error(1)
}

func (m *MockPerformanceMetricRepository) FindByUserWeek(ctx context.Context, userID string, week, year int) (*entity.PerformanceMetric, error) {
	args := m.Called(ctx, userID, week, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PerformanceMetric), args.Error(1)
}

func (m *MockPerformanceMetricRepository) FindByYearWeekRange(ctx context.Context, year, fromWeek, toWeek int) ([]entity.PerformanceMetric, error) {
	args := m.Called(ctx, year, fromWeek, toWeek)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.PerformanceMetric), args.Error(1)
}

func (m *MockPerformanceMetricRepository) Update(ctx context.Context, id string, metric *entity.PerformanceMetric) error {
	args := m.Called(ctx, id, metric)
	return args.Error(0)
}

func (m *MockPerformanceMetricRepository) AddSales(ctx context.Context, userID string, week, year int, amount float64, weekStart time.Time) error {
	args := m.Called(ctx, userID, week, year, amount, weekStart)
	return args.Error(0)
}

// MockProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Upsert(ctx context.Context, profile *entity.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id string) (*entity.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Profile), args.Error(1)
}

// MockDealClosedPublisher
type MockDealClosedPublisher struct {
	mock.Mock
}

func (m *MockDealClosedPublisher) PublishDealClosed(ctx context.Context, payload queue.DealClosedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// MockOpportunityGateway
type MockOpportunityGateway struct {
	mock.Mock
}

func (m *MockOpportunityGateway) ListPipelines(ctx context.Context) ([]entity.Pipeline, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Pipeline), args.Error(1)
}

func (m *MockOpportunityGateway) CreateOpportunity(ctx context.Context, input ghl.CreateOpportunityInput) (*entity.Opportunity, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Opportunity), args.Error(1)
}

func (m *MockOpportunityGateway) UpdateOpportunity(ctx context.Context, id string, input ghl.UpdateOpportunityInput) (*entity.Opportunity, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Opportunity), args.Error(1)
}

// fakeMetricStore is an in-memory PerformanceMetricRepository whose
// AddSales does a find-or-create accumulate, mirroring the SQL upsert.
// It lets tests assert the week totals a sequence of closes produces.
type fakeMetricStore struct {
	mu      sync.Mutex
	metrics map[string]*entity.PerformanceMetric
}

func newFakeMetricStore() *fakeMetricStore {
	return &fakeMetricStore{metrics: make(map[string]*entity.PerformanceMetric)}
}

func (f *fakeMetricStore) key(userID string, week, year int) string {
	return fmt.Sprintf("%s|%d|%d", userID, year, week)
}

func (f *fakeMetricStore) AddSales(ctx context.Context, userID string, week, year int, amount float64, weekStart time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := f.key(userID, week, year)
	if existing, ok := f.metrics[k]; ok {
		existing.SalesAmount += amount
		return nil
	}
	metric := entity.NewPerformanceMetric(userID, week, year, weekStart)
	metric.SalesAmount = amount
	f.metrics[k] = metric
	return nil
}

func (f *fakeMetricStore) get(userID string, week, year int) *entity.PerformanceMetric {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.metrics[f.key(userID, week, year)]
}

/// Upsert mirrors the SQL merge: reported sales accumulate, counters are
// replaced, notes only overwrite when non-empty.
func (f *fakeMetricStore) Upsert(ctx context.Context, metric *entity.PerformanceMetric) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := f.key(metric.UserID, metric.WeekNumber, metric.Year)
	if existing, ok := f.metrics[k]; ok {
		existing.SalesAmount += metric.SalesAmount
		existing.CallsMade = metric.CallsMade
		existing.MeetingsBooked = metric.MeetingsBooked
		existing.LeadsGenerated = metric.LeadsGenerated
		if metric.Notes != "" {
			existing.Notes = metric.Notes
		}
		existing.WeekStart = metric.WeekStart
		metric.ID = existing.ID
		return nil
	}
	clone := *metric
	f.metrics[k] = &clone
	return nil
}

func (f *fakeMetricStore) FindByID(ctx context.Context, id string) (*entity.PerformanceMetric, error) {
	return nil, entity.ErrMetricNotFound
}

func (f *fakeMetricStore) FindAll(ctx context.Context) ([]entity.PerformanceMetric, error) {
	return nil, nil
}

func (f *fakeMetricStore) FindByUserWeek(ctx context.Context, userID string, week, year int) (*entity.PerformanceMetric, error) {
	if m := f.get(userID, week, year); m != nil {
		return m, nil
	}
	return nil, entity.ErrMetricNotFound
}

func (f *fakeMetricStore) FindByYearWeekRange(ctx context.Context, year, fromWeek, toWeek int) ([]entity.PerformanceMetric, error) {
	return nil, nil
}

func (f *fakeMetricStore) Update(ctx context.Context, id string, metric *entity.PerformanceMetric) error {
	return nil
}
