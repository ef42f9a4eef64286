package domain

import "time"

// Point - географическая точка
type Point struct {
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`
}

// BoundingBox - ограничивающий прямоугольник в географических координатах
type BoundingBox struct {
	MinLat float64 `json:"min_lat" db:"min_lat"`
	MinLon float64 `json:"min_lon" db:"min_lon"`
	MaxLat float64 `json:"max_lat" db:"max_lat"`
	MaxLon float64 `json:"max_lon" db:"max_lon"`
}

// Contains проверяет, попадает ли точка внутрь bbox (границы включительно)
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// SurveyPoint - точка инженерно-геологической скважины.
// GridX/GridY задаются при загрузке (национальная сетка, метры);
// Geo*/Proj* - производные координаты, заполняются лениво сервисом
// трансформации и после заполнения не изменяются.
type SurveyPoint struct {
	ID         string     `json:"id" db:"id"`
	Name       string     `json:"name" db:"name"`
	GridX      float64    `json:"grid_x" db:"grid_x"`
	GridY      float64    `json:"grid_y" db:"grid_y"`
	GeoLat     *float64   `json:"geo_lat,omitempty" db:"geo_lat"`
	GeoLon     *float64   `json:"geo_lon,omitempty" db:"geo_lon"`
	ProjX      *float64   `json:"proj_x,omitempty" db:"proj_x"`
	ProjY      *float64   `json:"proj_y,omitempty" db:"proj_y"`
	Depth      float64    `json:"depth" db:"depth"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	EnrichedAt *time.Time `json:"enriched_at,omitempty" db:"enriched_at"`
}

// HasGeo сообщает, заполнены ли производные географические координаты
func (p *SurveyPoint) HasGeo() bool {
	return p.GeoLat != nil && p.GeoLon != nil
}

// HasProjected сообщает, заполнены ли производные проекционные координаты
func (p *SurveyPoint) HasProjected() bool {
	return p.ProjX != nil && p.ProjY != nil
}

// SectionLine - прямая разреза: точка привязки и единичное направление
// в локальной проекционной системе (метры). Инвариант:
// DirectionX^2 + DirectionY^2 == 1 с точностью до численной погрешности.
type SectionLine struct {
	OriginX    float64 `json:"origin_x"`
	OriginY    float64 `json:"origin_y"`
	DirectionX float64 `json:"direction_x"`
	DirectionY float64 `json:"direction_y"`
}

// Projection - проекция скважины на прямую разреза.
// DistanceAlongLine используется как горизонтальная координата скважины
// на чертеже разреза; список сортируется по возрастанию расстояния,
// равные расстояния сохраняют исходный порядок.
type Projection struct {
	PointID             string  `json:"point_id"`
	DistanceAlongLine   float64 `json:"distance_along_line"`
	PerpendicularOffset float64 `json:"perpendicular_offset"`
}
