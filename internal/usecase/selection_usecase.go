package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/borehole-microservice/internal/domain"
	"github.com/borehole-microservice/internal/domain/repository"
	"github.com/borehole-microservice/internal/geo/spatial"
	"github.com/borehole-microservice/internal/usecase/dto"
)

// maxSelectionCandidates ограничивает отбор по всем скважинам
const maxSelectionCandidates = 10000

// SelectionUseCase - use case пространственного отбора скважин и
// построения буферных коридоров
type SelectionUseCase struct {
	boreholeRepo repository.BoreholeRepository
	cacheRepo    repository.CacheRepository
	filter       *spatial.Filter
	corridors    *spatial.CorridorBuilder
	enricher     *CoordinateEnricher
	logger       *zap.Logger
	cacheTTL     time.Duration
}

// NewSelectionUseCase - создание нового SelectionUseCase
func NewSelectionUseCase(
	boreholeRepo repository.BoreholeRepository,
	cacheRepo repository.CacheRepository,
	filter *spatial.Filter,
	corridors *spatial.CorridorBuilder,
	enricher *CoordinateEnricher,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *SelectionUseCase {
	return &SelectionUseCase{
		boreholeRepo: boreholeRepo,
		cacheRepo:    cacheRepo,
		filter:       filter,
		corridors:    corridors,
		enricher:     enricher,
		logger:       logger,
		cacheTTL:     cacheTTL,
	}
}

// SelectPoints - отбор скважин, попадающих в фигуру
func (uc *SelectionUseCase) SelectPoints(ctx context.Context, req dto.SelectionRequest) (*dto.SelectionResponse, error) {
	cacheKey := requestCacheKey("selection", req)
	if cached := uc.fromCache(ctx, cacheKey); cached != nil {
		var resp dto.SelectionResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			return &resp, nil
		}
	}

	shape, err := req.Shape.ToDomainShape()
	if err != nil {
		return nil, err
	}

	candidates, err := uc.loadCandidates(ctx, req.CandidateIDs)
	if err != nil {
		return nil, err
	}
	uc.enricher.EnsureGeo(candidates)

	points := make([]domain.SurveyPoint, 0, len(candidates))
	for _, p := range candidates {
		points = append(points, *p)
	}
	ids := uc.filter.SelectPointsInShape(points, shape)

	resp := &dto.SelectionResponse{
		PointIDs: ids,
		Total:    len(ids),
	}
	uc.toCache(ctx, cacheKey, resp)

	uc.logger.Info("Selection completed",
		zap.Int("candidates", len(candidates)),
		zap.Int("selected", len(ids)))
	return resp, nil
}

// BuildCorridor - построение буферного коридора вокруг полилинии
func (uc *SelectionUseCase) BuildCorridor(ctx context.Context, req dto.CorridorRequest) (*dto.CorridorResponse, error) {
	vertices, err := req.CorridorVertices()
	if err != nil {
		return nil, err
	}

	corridor, err := uc.corridors.BuildCorridor(vertices, req.HalfWidthMeters)
	if err != nil {
		return nil, err
	}

	return &dto.CorridorResponse{
		Corridor: dto.ConvertCorridorFeature(corridor, req.HalfWidthMeters),
	}, nil
}

func (uc *SelectionUseCase) loadCandidates(ctx context.Context, ids []string) ([]*domain.SurveyPoint, error) {
	if len(ids) > 0 {
		return uc.boreholeRepo.GetByIDs(ctx, ids)
	}
	return uc.boreholeRepo.List(ctx, nil, maxSelectionCandidates, 0)
}

func (uc *SelectionUseCase) fromCache(ctx context.Context, key string) []byte {
	if uc.cacheRepo == nil {
		return nil
	}
	data, err := uc.cacheRepo.Get(ctx, key)
	if err != nil {
		return nil
	}
	return data
}

func (uc *SelectionUseCase) toCache(ctx context.Context, key string, v interface{}) {
	if uc.cacheRepo == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := uc.cacheRepo.Set(ctx, key, data, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache response", zap.String("key", key), zap.Error(err))
	}
}

// requestCacheKey строит ключ кеша из сериализованного запроса
func requestCacheKey(prefix string, req interface{}) string {
	data, err := json.Marshal(req)
	if err != nil {
		return prefix + ":uncacheable"
	}
	sum := sha256.Sum256(data)
	return prefix + ":" + hex.EncodeToString(sum[:16])
}
