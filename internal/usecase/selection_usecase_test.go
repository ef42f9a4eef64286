package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/borehole-microservice/internal/domain"
	"github.com/borehole-microservice/internal/geo/crs"
	"github.com/borehole-microservice/internal/geo/spatial"
	apperrors "github.com/borehole-microservice/internal/pkg/errors"
	"github.com/borehole-microservice/internal/usecase"
	"github.com/borehole-microservice/internal/usecase/dto"
)

// MockBoreholeRepository is a mock of BoreholeRepository
type MockBoreholeRepository struct {
	mock.Mock
}

func (m *MockBoreholeRepository) GetByID(ctx context.Context, id string) (*domain.SurveyPoint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SurveyPoint), args.Error(1)
}

func (m *MockBoreholeRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.SurveyPoint, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SurveyPoint), args.Error(1)
}

func (m *MockBoreholeRepository) List(ctx context.Context, bounds *domain.BoundingBox, limit, offset int) ([]*domain.SurveyPoint, error) {
	args := m.Called(ctx, bounds, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SurveyPoint), args.Error(1)
}

func (m *MockBoreholeRepository) CreateBatch(ctx context.Context, points []*domain.SurveyPoint) error {
	args := m.Called(ctx, points)
	return args.Error(0)
}

func (m *MockBoreholeRepository) UpdateDerived(ctx context.Context, points []*domain.SurveyPoint) error {
	args := m.Called(ctx, points)
	return args.Error(0)
}

func (m *MockBoreholeRepository) GetUnenriched(ctx context.Context, limit int) ([]*domain.SurveyPoint, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SurveyPoint), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func gridBorehole(id string, gridX, gridY float64) *domain.SurveyPoint {
	return &domain.SurveyPoint{ID: id, GridX: gridX, GridY: gridY}
}

func newSelectionUseCase(repo *MockBoreholeRepository, cache *MockCacheRepository) *usecase.SelectionUseCase {
	logger := zap.NewNop()
	transforms := crs.NewService(logger, 0)
	corridors := spatial.NewCorridorBuilder(transforms, logger, 0)
	filter := spatial.NewFilter(corridors, logger)
	enricher := usecase.NewCoordinateEnricher(transforms, logger)
	return usecase.NewSelectionUseCase(repo, cache, filter, corridors, enricher, logger, time.Minute)
}

func TestSelectionUseCase_SelectPoints(t *testing.T) {
	ctx := context.Background()

	t.Run("selects boreholes inside rectangle with lazy enrichment", func(t *testing.T) {
		repo := &MockBoreholeRepository{}
		cache := &MockCacheRepository{}
		uc := newSelectionUseCase(repo, cache)

		cache.On("Get", ctx, mock.Anything).Return(nil, nil)
		cache.On("Set", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		repo.On("List", ctx, (*domain.BoundingBox)(nil), mock.Anything, 0).Return([]*domain.SurveyPoint{
			gridBorehole("A", 500000, 200000),
			gridBorehole("B", 500100, 200100),
			gridBorehole("far", 700000, 900000),
		}, nil)

		// Прямоугольник с большим запасом вокруг точки A
		resp, err := uc.SelectPoints(ctx, dto.SelectionRequest{
			Shape: dto.ShapeRequest{
				Type:    "rectangle",
				CornerA: &dto.Point{Lat: 51.0, Lon: -1.0},
				CornerB: &dto.Point{Lat: 52.0, Lon: 0.0},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, resp.PointIDs)
		assert.Equal(t, 2, resp.Total)
		repo.AssertExpectations(t)
	})

	t.Run("explicit candidate list goes through GetByIDs", func(t *testing.T) {
		repo := &MockBoreholeRepository{}
		cache := &MockCacheRepository{}
		uc := newSelectionUseCase(repo, cache)

		cache.On("Get", ctx, mock.Anything).Return(nil, nil)
		cache.On("Set", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		repo.On("GetByIDs", ctx, []string{"A"}).Return([]*domain.SurveyPoint{
			gridBorehole("A", 500000, 200000),
		}, nil)

		resp, err := uc.SelectPoints(ctx, dto.SelectionRequest{
			Shape: dto.ShapeRequest{
				Type:    "rectangle",
				CornerA: &dto.Point{Lat: 51.0, Lon: -1.0},
				CornerB: &dto.Point{Lat: 52.0, Lon: 0.0},
			},
			CandidateIDs: []string{"A"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"A"}, resp.PointIDs)
		repo.AssertExpectations(t)
	})

	t.Run("cached response skips repository", func(t *testing.T) {
		repo := &MockBoreholeRepository{}
		cache := &MockCacheRepository{}
		uc := newSelectionUseCase(repo, cache)

		cache.On("Get", ctx, mock.Anything).Return([]byte(`{"point_ids":["A"],"total":1}`), nil)

		resp, err := uc.SelectPoints(ctx, dto.SelectionRequest{
			Shape: dto.ShapeRequest{
				Type:    "rectangle",
				CornerA: &dto.Point{Lat: 51.0, Lon: -1.0},
				CornerB: &dto.Point{Lat: 52.0, Lon: 0.0},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"A"}, resp.PointIDs)
		repo.AssertNotCalled(t, "List")
	})

	t.Run("invalid shape type rejected", func(t *testing.T) {
		repo := &MockBoreholeRepository{}
		cache := &MockCacheRepository{}
		uc := newSelectionUseCase(repo, cache)

		cache.On("Get", ctx, mock.Anything).Return(nil, nil)

		_, err := uc.SelectPoints(ctx, dto.SelectionRequest{
			Shape: dto.ShapeRequest{Type: "circle"},
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidShape)
	})
}

func TestSelectionUseCase_BuildCorridor(t *testing.T) {
	ctx := context.Background()

	t.Run("returns closed GeoJSON polygon", func(t *testing.T) {
		uc := newSelectionUseCase(&MockBoreholeRepository{}, &MockCacheRepository{})

		resp, err := uc.BuildCorridor(ctx, dto.CorridorRequest{
			Vertices: []dto.Point{
				{Lat: 51.50, Lon: -0.20},
				{Lat: 51.50, Lon: -0.10},
			},
			HalfWidthMeters: 100,
		})
		require.NoError(t, err)
		require.NotNil(t, resp.Corridor)
		assert.Equal(t, "Polygon", resp.Corridor.Geometry.GeoJSONType())
		assert.Equal(t, 100.0, resp.Corridor.Properties["half_width_meters"])
	})

	t.Run("invalid width rejected", func(t *testing.T) {
		uc := newSelectionUseCase(&MockBoreholeRepository{}, &MockCacheRepository{})

		_, err := uc.BuildCorridor(ctx, dto.CorridorRequest{
			Vertices:        []dto.Point{{Lat: 51.5, Lon: -0.2}, {Lat: 51.5, Lon: -0.1}},
			HalfWidthMeters: 0,
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidBufferWidth)
	})
}
