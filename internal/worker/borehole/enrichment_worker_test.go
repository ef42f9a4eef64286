package borehole

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/borehole-microservice/internal/domain"
	"github.com/borehole-microservice/internal/geo/crs"
	"github.com/borehole-microservice/internal/usecase"
)

type mockBoreholeRepo struct {
	mock.Mock
}

func (m *mockBoreholeRepo) GetByID(ctx context.Context, id string) (*domain.SurveyPoint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SurveyPoint), args.Error(1)
}

func (m *mockBoreholeRepo) GetByIDs(ctx context.Context, ids []string) ([]*domain.SurveyPoint, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SurveyPoint), args.Error(1)
}

func (m *mockBoreholeRepo) List(ctx context.Context, bounds *domain.BoundingBox, limit, offset int) ([]*domain.SurveyPoint, error) {
	args := m.Called(ctx, bounds, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SurveyPoint), args.Error(1)
}

func (m *mockBoreholeRepo) CreateBatch(ctx context.Context, points []*domain.SurveyPoint) error {
	args := m.Called(ctx, points)
	return args.Error(0)
}

func (m *mockBoreholeRepo) UpdateDerived(ctx context.Context, points []*domain.SurveyPoint) error {
	args := m.Called(ctx, points)
	return args.Error(0)
}

func (m *mockBoreholeRepo) GetUnenriched(ctx context.Context, limit int) ([]*domain.SurveyPoint, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SurveyPoint), args.Error(1)
}

type mockStreamRepo struct {
	mock.Mock
}

func (m *mockStreamRepo) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *mockStreamRepo) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *mockStreamRepo) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *mockStreamRepo) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

func newTestWorker(repo *mockBoreholeRepo, stream *mockStreamRepo, batchSize int) *EnrichmentWorker {
	logger := zap.NewNop()
	enricher := usecase.NewCoordinateEnricher(crs.NewService(logger, 0), logger)
	return NewEnrichmentWorker(stream, repo, enricher, "test-group", batchSize, logger)
}

func TestEnrichmentWorker_HandleMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("enriches batch and publishes result", func(t *testing.T) {
		repo := &mockBoreholeRepo{}
		stream := &mockStreamRepo{}
		w := newTestWorker(repo, stream, 100)

		points := []*domain.SurveyPoint{
			{ID: "A", GridX: 500000, GridY: 200000},
			{ID: "B", GridX: 500100, GridY: 200100},
		}
		repo.On("GetByIDs", ctx, []string{"A", "B"}).Return(points, nil)
		repo.On("UpdateDerived", ctx, mock.MatchedBy(func(pts []*domain.SurveyPoint) bool {
			return len(pts) == 2 && pts[0].HasGeo() && pts[0].HasProjected()
		})).Return(nil)
		stream.On("PublishToStream", ctx, domain.StreamBoreholeEnriched, mock.MatchedBy(func(e domain.BoreholeEnrichedEvent) bool {
			return e.Enriched == 2 && e.Failed == 0
		})).Return(nil)

		batchID := uuid.New()
		data, err := json.Marshal(domain.BoreholeImportedEvent{BatchID: batchID, PointIDs: []string{"A", "B"}})
		require.NoError(t, err)

		err = w.handleMessage(ctx, domain.StreamMessage{ID: "1-0", Data: string(data)})
		require.NoError(t, err)
		repo.AssertExpectations(t)
		stream.AssertExpectations(t)
	})

	t.Run("malformed event is an error", func(t *testing.T) {
		w := newTestWorker(&mockBoreholeRepo{}, &mockStreamRepo{}, 100)
		err := w.handleMessage(ctx, domain.StreamMessage{ID: "1-0", Data: "not-json"})
		assert.Error(t, err)
	})

	t.Run("invalid grid coordinates counted as failed", func(t *testing.T) {
		repo := &mockBoreholeRepo{}
		stream := &mockStreamRepo{}
		w := newTestWorker(repo, stream, 100)

		points := []*domain.SurveyPoint{
			{ID: "A", GridX: 500000, GridY: 200000},
			{ID: "bad", GridX: 1e308, GridY: 1e308},
		}
		repo.On("GetByIDs", ctx, mock.Anything).Return(points, nil)
		repo.On("UpdateDerived", ctx, mock.MatchedBy(func(pts []*domain.SurveyPoint) bool {
			return len(pts) == 1 && pts[0].ID == "A"
		})).Return(nil)
		stream.On("PublishToStream", ctx, domain.StreamBoreholeEnriched, mock.MatchedBy(func(e domain.BoreholeEnrichedEvent) bool {
			return e.Enriched == 1 && e.Failed == 1
		})).Return(nil)

		data, _ := json.Marshal(domain.BoreholeImportedEvent{BatchID: uuid.New(), PointIDs: []string{"A", "bad"}})
		err := w.handleMessage(ctx, domain.StreamMessage{ID: "1-1", Data: string(data)})
		require.NoError(t, err)
		stream.AssertExpectations(t)
	})
}

func TestEnrichmentWorker_CatchUp(t *testing.T) {
	ctx := context.Background()

	t.Run("drains unenriched backlog", func(t *testing.T) {
		repo := &mockBoreholeRepo{}
		stream := &mockStreamRepo{}
		w := newTestWorker(repo, stream, 100)

		points := []*domain.SurveyPoint{{ID: "A", GridX: 500000, GridY: 200000}}
		repo.On("GetUnenriched", ctx, 100).Return(points, nil).Once()
		repo.On("UpdateDerived", ctx, mock.Anything).Return(nil)

		err := w.catchUp(ctx)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("stops when a pass stores nothing", func(t *testing.T) {
		repo := &mockBoreholeRepo{}
		stream := &mockStreamRepo{}
		w := newTestWorker(repo, stream, 2)

		// Полная партия непреобразуемых скважин: enriched_at остаётся
		// NULL, та же выборка вернулась бы бесконечно
		bad := []*domain.SurveyPoint{
			{ID: "bad-1", GridX: 1e308, GridY: 1e308},
			{ID: "bad-2", GridX: -1e308, GridY: 1e308},
		}
		repo.On("GetUnenriched", ctx, 2).Return(bad, nil).Once()

		err := w.catchUp(ctx)
		require.NoError(t, err)
		repo.AssertExpectations(t)
		repo.AssertNotCalled(t, "UpdateDerived", mock.Anything, mock.Anything)
	})
}
