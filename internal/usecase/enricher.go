package usecase

import (
	"go.uber.org/zap"

	"github.com/borehole-microservice/internal/domain"
	"github.com/borehole-microservice/internal/geo/crs"
)

// CoordinateEnricher заполняет производные координаты скважин из
// сеточных. Используется воркером обогащения и лениво use case'ами,
// когда скважина ещё не обогащена.
type CoordinateEnricher struct {
	transforms *crs.Service
	logger     *zap.Logger
}

func NewCoordinateEnricher(transforms *crs.Service, logger *zap.Logger) *CoordinateEnricher {
	return &CoordinateEnricher{
		transforms: transforms,
		logger:     logger,
	}
}

// EnsureGeo заполняет географические координаты точкам, у которых их
// ещё нет. Возвращает число неудачных преобразований; успешные точки
// остаются пригодными для отбора.
func (e *CoordinateEnricher) EnsureGeo(points []*domain.SurveyPoint) int {
	var pending []*domain.SurveyPoint
	var gridXY []crs.XY
	for _, p := range points {
		if p.HasGeo() {
			continue
		}
		pending = append(pending, p)
		gridXY = append(gridXY, crs.XY{X: p.GridX, Y: p.GridY})
	}
	if len(pending) == 0 {
		return 0
	}

	failed := 0
	results, _ := e.transforms.TransformBatch(crs.NationalGrid, crs.Geographic, gridXY)
	for i, r := range results {
		if r.Err != nil {
			failed++
			e.logger.Warn("Failed to derive geographic coordinates",
				zap.String("id", pending[i].ID),
				zap.Error(r.Err))
			continue
		}
		lat, lon := r.X, r.Y
		pending[i].GeoLat = &lat
		pending[i].GeoLon = &lon
	}
	return failed
}

// EnsureProjected заполняет локальные проекционные координаты всем
// точкам заново в единой рамке, выведенной из всего набора. Общая
// рамка обязательна: расстояния вдоль разреза сравнимы только внутри
// одной проекции.
func (e *CoordinateEnricher) EnsureProjected(points []*domain.SurveyPoint) int {
	gridXY := make([]crs.XY, len(points))
	for i, p := range points {
		gridXY[i] = crs.XY{X: p.GridX, Y: p.GridY}
	}

	failed := 0
	results, _ := e.transforms.TransformBatch(crs.NationalGrid, crs.LocalProjected, gridXY)
	for i, r := range results {
		if r.Err != nil {
			failed++
			e.logger.Warn("Failed to derive projected coordinates",
				zap.String("id", points[i].ID),
				zap.Error(r.Err))
			continue
		}
		x, y := r.X, r.Y
		points[i].ProjX = &x
		points[i].ProjY = &y
	}
	return failed
}
