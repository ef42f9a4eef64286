package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/borehole-microservice/internal/domain"
	"github.com/borehole-microservice/internal/domain/repository"
	"github.com/borehole-microservice/internal/usecase/dto"
)

const defaultListLimit = 100

// BoreholeUseCase - use case управления скважинами: загрузка, чтение,
// публикация событий на обогащение
type BoreholeUseCase struct {
	boreholeRepo repository.BoreholeRepository
	streamRepo   repository.StreamRepository
	logger       *zap.Logger
}

// NewBoreholeUseCase - создание нового BoreholeUseCase
func NewBoreholeUseCase(
	boreholeRepo repository.BoreholeRepository,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
) *BoreholeUseCase {
	return &BoreholeUseCase{
		boreholeRepo: boreholeRepo,
		streamRepo:   streamRepo,
		logger:       logger,
	}
}

// GetByID - получение скважины по ID
func (uc *BoreholeUseCase) GetByID(ctx context.Context, id string) (*dto.BoreholeResponse, error) {
	point, err := uc.boreholeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.BoreholeResponse{Borehole: point}, nil
}

// List - листинг скважин, опционально внутри bbox
func (uc *BoreholeUseCase) List(ctx context.Context, req dto.ListBoreholesRequest) (*dto.BoreholesResponse, error) {
	if req.Limit == 0 {
		req.Limit = defaultListLimit
	}

	var bounds *domain.BoundingBox
	if req.MinLat != nil && req.MinLon != nil && req.MaxLat != nil && req.MaxLon != nil {
		bounds = &domain.BoundingBox{
			MinLat: *req.MinLat, MinLon: *req.MinLon,
			MaxLat: *req.MaxLat, MaxLon: *req.MaxLon,
		}
	}

	points, err := uc.boreholeRepo.List(ctx, bounds, req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.BoreholesResponse{
		Boreholes: points,
		Total:     len(points),
	}, nil
}

// CreateBatch - пакетная загрузка скважин с публикацией события на
// обогащение координат
func (uc *BoreholeUseCase) CreateBatch(ctx context.Context, req dto.CreateBoreholesRequest) (*dto.CreateBoreholesResponse, error) {
	points := make([]*domain.SurveyPoint, 0, len(req.Boreholes))
	ids := make([]string, 0, len(req.Boreholes))
	for _, b := range req.Boreholes {
		points = append(points, &domain.SurveyPoint{
			ID:    b.ID,
			Name:  b.Name,
			GridX: b.GridX,
			GridY: b.GridY,
			Depth: b.Depth,
		})
		ids = append(ids, b.ID)
	}

	if err := uc.boreholeRepo.CreateBatch(ctx, points); err != nil {
		return nil, err
	}

	batchID := uuid.New()
	event := domain.BoreholeImportedEvent{
		BatchID:  batchID,
		PointIDs: ids,
	}
	if uc.streamRepo != nil {
		if err := uc.streamRepo.PublishToStream(ctx, domain.StreamBoreholeImported, event); err != nil {
			// Партия сохранена; обогащение догонит её по enriched_at IS NULL
			uc.logger.Warn("Failed to publish import event",
				zap.String("batch_id", batchID.String()),
				zap.Error(err))
		}
	}

	uc.logger.Info("Boreholes imported",
		zap.String("batch_id", batchID.String()),
		zap.Int("count", len(points)))

	return &dto.CreateBoreholesResponse{
		Accepted: len(points),
		BatchID:  batchID.String(),
	}, nil
}
