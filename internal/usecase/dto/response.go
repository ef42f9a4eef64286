package dto

import (
	"github.com/paulmach/orb/geojson"

	"github.com/borehole-microservice/internal/domain"
)

// SelectionResponse - ответ на пространственный отбор
type SelectionResponse struct {
	PointIDs []string `json:"point_ids"`
	Total    int      `json:"total"`
}

// CorridorResponse - буферный коридор как GeoJSON Feature (Polygon)
type CorridorResponse struct {
	Corridor *geojson.Feature `json:"corridor"`
}

// SectionResponse - прямая разреза и упорядоченные проекции скважин
type SectionResponse struct {
	Line        domain.SectionLine  `json:"line"`
	Projections []domain.Projection `json:"projections"`
}

// BoreholeResponse - одна скважина
type BoreholeResponse struct {
	Borehole *domain.SurveyPoint `json:"borehole"`
}

// BoreholesResponse - список скважин
type BoreholesResponse struct {
	Boreholes []*domain.SurveyPoint `json:"boreholes"`
	Total     int                   `json:"total"`
}

// CreateBoreholesResponse - результат пакетной загрузки
type CreateBoreholesResponse struct {
	Accepted int    `json:"accepted"`
	BatchID  string `json:"batch_id"`
}
