package spatial

import (
	"math"

	"go.uber.org/zap"

	"github.com/borehole-microservice/internal/domain"
)

// indexThreshold - с какого числа кандидатов включается r-tree
// предфильтрация по bbox
const indexThreshold = 256

// prefilterMetersPerDegree - заниженная оценка метров в градусе
// широты, чтобы расширение bbox предфильтра гарантированно покрывало
// полуширину коридора
const prefilterMetersPerDegree = 110000.0

// Filter отбирает скважины, попадающие внутрь фигуры выбора.
// Работает по географическим координатам точек; порядок результата
// повторяет порядок входа. Состояния не хранит - каждый вызов считает
// отбор заново.
type Filter struct {
	corridors *CorridorBuilder
	logger    *zap.Logger
}

// NewFilter создаёт фильтр поверх генератора буферных коридоров
func NewFilter(corridors *CorridorBuilder, logger *zap.Logger) *Filter {
	return &Filter{
		corridors: corridors,
		logger:    logger,
	}
}

// SelectPointsInShape возвращает id точек внутри фигуры. Вырожденная
// или некорректная фигура даёт пустой отбор, а не ошибку: "ничего не
// выбрано" - валидный результат для последующей логики.
func (f *Filter) SelectPointsInShape(points []domain.SurveyPoint, shape domain.Shape) []string {
	switch s := shape.(type) {
	case domain.PolygonShape:
		if len(s.Vertices) < 3 {
			return []string{}
		}
		return f.selectInRing(points, s.Vertices)

	case domain.RectangleShape:
		return f.selectInRectangle(points, s)

	case domain.PolylineShape:
		return f.selectNearPolyline(points, s)

	default:
		f.logger.Warn("Unknown shape descriptor, selecting nothing")
		return []string{}
	}
}

// selectInRing отбирает точки внутри кольца полигона. При большом
// числе кандидатов сначала отсекает по bbox через r-tree; результат
// идентичен линейному проходу.
func (f *Filter) selectInRing(points []domain.SurveyPoint, ring []domain.Point) []string {
	candidates := points
	if len(points) >= indexThreshold {
		candidates = prefilterByBounds(points, ringBounds(ring))
	}

	ids := make([]string, 0, len(candidates))
	for i := range candidates {
		p := &candidates[i]
		if !p.HasGeo() {
			continue
		}
		if pointInRing(*p.GeoLat, *p.GeoLon, ring) {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// selectNearPolyline отбирает точки по расстоянию до полилинии: точка
// попадает в коридор, если она не дальше полуширины от ближайшего
// сегмента. На острых стыках кольцо коридора может самопересекаться,
// тест чётности по нему терял бы точки, поэтому здесь прямой замер.
func (f *Filter) selectNearPolyline(points []domain.SurveyPoint, shape domain.PolylineShape) []string {
	candidates := points
	if len(points) >= indexThreshold && len(shape.Vertices) > 0 {
		candidates = prefilterByBounds(points, polylineBounds(shape.Vertices, shape.HalfWidthMeters))
	}

	geo := make([]domain.Point, 0, len(candidates))
	idx := make([]int, 0, len(candidates))
	for i := range candidates {
		p := &candidates[i]
		if !p.HasGeo() {
			continue
		}
		geo = append(geo, domain.Point{Lat: *p.GeoLat, Lon: *p.GeoLon})
		idx = append(idx, i)
	}

	within, err := f.corridors.WithinCorridor(shape.Vertices, geo, shape.HalfWidthMeters)
	if err != nil {
		f.logger.Warn("Corridor distance check failed, selecting nothing", zap.Error(err))
		return []string{}
	}

	ids := make([]string, 0, len(idx))
	for k, ok := range within {
		if ok {
			ids = append(ids, candidates[idx[k]].ID)
		}
	}
	return ids
}

// polylineBounds возвращает bbox полилинии, расширенный на полуширину
// коридора, с запасом по долготе на высоких широтах
func polylineBounds(vertices []domain.Point, halfWidthMeters float64) domain.BoundingBox {
	bb := domain.BufferPolygon{Vertices: vertices}.Bounds()

	dLat := halfWidthMeters / prefilterMetersPerDegree
	cosLat := math.Cos((bb.MinLat + bb.MaxLat) / 2 * math.Pi / 180)
	if cosLat < 0.1 {
		cosLat = 0.1
	}
	dLon := dLat / cosLat

	bb.MinLat -= dLat
	bb.MaxLat += dLat
	bb.MinLon -= dLon
	bb.MaxLon += dLon
	return bb
}

func (f *Filter) selectInRectangle(points []domain.SurveyPoint, rect domain.RectangleShape) []string {
	bb := normalizeRectangle(rect)
	ids := make([]string, 0, len(points))
	for i := range points {
		p := &points[i]
		if !p.HasGeo() {
			continue
		}
		if bb.Contains(*p.GeoLat, *p.GeoLon) {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// normalizeRectangle строит bbox независимо от того, какой угол был
// "первым"
func normalizeRectangle(rect domain.RectangleShape) domain.BoundingBox {
	bb := domain.BoundingBox{
		MinLat: rect.CornerA.Lat, MaxLat: rect.CornerB.Lat,
		MinLon: rect.CornerA.Lon, MaxLon: rect.CornerB.Lon,
	}
	if bb.MinLat > bb.MaxLat {
		bb.MinLat, bb.MaxLat = bb.MaxLat, bb.MinLat
	}
	if bb.MinLon > bb.MaxLon {
		bb.MinLon, bb.MaxLon = bb.MaxLon, bb.MinLon
	}
	return bb
}

// pointInRing - проверка принадлежности точки кольцу методом чётности
// пересечений (ray casting). Кольцо считается замкнутым неявно: ребро
// от последней вершины к первой учитывается всегда, поэтому явное
// замыкание входа не требуется (совпадающие первая/последняя вершины
// дают вырожденное ребро, которое не влияет на чётность).
func pointInRing(lat, lon float64, ring []domain.Point) bool {
	n := len(ring)
	if n < 3 {
		return false
	}

	inside := false
	x, y := lon, lat
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := ring[i].Lon, ring[i].Lat
		xj, yj := ring[j].Lon, ring[j].Lat
		if ((yi > y) != (yj > y)) && x < (xj-xi)*(y-yi)/(yj-yi+1e-12)+xi {
			inside = !inside
		}
	}
	return inside
}

func ringBounds(ring []domain.Point) domain.BoundingBox {
	return domain.BufferPolygon{Vertices: ring}.Bounds()
}
