package usecase

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/borehole-microservice/internal/domain"
	"github.com/borehole-microservice/internal/domain/repository"
	"github.com/borehole-microservice/internal/geo/section"
	"github.com/borehole-microservice/internal/pkg/errors"
	"github.com/borehole-microservice/internal/usecase/dto"
)

// SectionUseCase - use case построения разреза: подбор прямой по
// выбранным скважинам и их упорядочивание вдоль неё
type SectionUseCase struct {
	boreholeRepo repository.BoreholeRepository
	cacheRepo    repository.CacheRepository
	builder      *section.Builder
	enricher     *CoordinateEnricher
	logger       *zap.Logger
	cacheTTL     time.Duration
}

// NewSectionUseCase - создание нового SectionUseCase
func NewSectionUseCase(
	boreholeRepo repository.BoreholeRepository,
	cacheRepo repository.CacheRepository,
	builder *section.Builder,
	enricher *CoordinateEnricher,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *SectionUseCase {
	return &SectionUseCase{
		boreholeRepo: boreholeRepo,
		cacheRepo:    cacheRepo,
		builder:      builder,
		enricher:     enricher,
		logger:       logger,
		cacheTTL:     cacheTTL,
	}
}

// BuildSection - построение разреза по списку скважин. Порядок списка
// задаёт ориентацию прямой: положительное направление от первой
// скважины к последней.
func (uc *SectionUseCase) BuildSection(ctx context.Context, req dto.SectionRequest) (*dto.SectionResponse, error) {
	cacheKey := requestCacheKey("section", req)
	if uc.cacheRepo != nil {
		if data, err := uc.cacheRepo.Get(ctx, cacheKey); err == nil && data != nil {
			var resp dto.SectionResponse
			if err := json.Unmarshal(data, &resp); err == nil {
				return &resp, nil
			}
		}
	}

	loaded, err := uc.boreholeRepo.GetByIDs(ctx, req.PointIDs)
	if err != nil {
		return nil, err
	}
	if len(loaded) < len(req.PointIDs) {
		found := make(map[string]bool, len(loaded))
		for _, p := range loaded {
			found[p.ID] = true
		}
		var missing []string
		for _, id := range req.PointIDs {
			if !found[id] {
				missing = append(missing, id)
			}
		}
		return nil, errors.ErrBoreholeNotFound.WithDetails(map[string]interface{}{
			"missing_ids": missing,
		})
	}

	// Локальные координаты считаются заново в единой рамке запроса:
	// сохранённые значения могли быть получены в рамке другой партии
	if failed := uc.enricher.EnsureProjected(loaded); failed > 0 {
		return nil, errors.ErrTransformFailure.WithDetails(map[string]interface{}{
			"failed_points": failed,
		})
	}

	points := make([]domain.SurveyPoint, 0, len(loaded))
	for _, p := range loaded {
		points = append(points, *p)
	}

	line, err := uc.builder.FitLine(points)
	if err != nil {
		return nil, err
	}
	projections, err := uc.builder.ProjectAndOrder(line, points)
	if err != nil {
		return nil, err
	}

	resp := &dto.SectionResponse{
		Line:        line,
		Projections: projections,
	}
	if uc.cacheRepo != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := uc.cacheRepo.Set(ctx, cacheKey, data, uc.cacheTTL); err != nil {
				uc.logger.Warn("Failed to cache section", zap.String("key", cacheKey), zap.Error(err))
			}
		}
	}

	uc.logger.Info("Section built",
		zap.Int("points", len(points)),
		zap.Float64("direction_x", line.DirectionX),
		zap.Float64("direction_y", line.DirectionY))
	return resp, nil
}
