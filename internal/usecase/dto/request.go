package dto

// Point - координаты точки
type Point struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

// ShapeRequest - область отбора. Polygon и polyline задаются списком
// вершин либо encoded polyline (Google encoded polyline algorithm),
// rectangle - двумя противоположными углами.
type ShapeRequest struct {
	Type            string  `json:"type" validate:"required,oneof=polygon rectangle polyline"`
	Vertices        []Point `json:"vertices,omitempty" validate:"omitempty,dive"`
	EncodedPolyline string  `json:"encoded_polyline,omitempty"`
	CornerA         *Point  `json:"corner_a,omitempty"`
	CornerB         *Point  `json:"corner_b,omitempty"`
	HalfWidthMeters float64 `json:"half_width_meters,omitempty" validate:"omitempty,gt=0"`
}

// SelectionRequest - запрос на пространственный отбор скважин
type SelectionRequest struct {
	Shape ShapeRequest `json:"shape" validate:"required"`
	// Пустой список означает отбор по всем скважинам
	CandidateIDs []string `json:"candidate_ids,omitempty" validate:"omitempty,max=10000"`
}

// CorridorRequest - запрос на построение буферного коридора
type CorridorRequest struct {
	Vertices        []Point `json:"vertices,omitempty" validate:"omitempty,dive"`
	EncodedPolyline string  `json:"encoded_polyline,omitempty"`
	HalfWidthMeters float64 `json:"half_width_meters" validate:"required,gt=0"`
}

// SectionRequest - запрос на построение разреза по скважинам
type SectionRequest struct {
	PointIDs []string `json:"point_ids" validate:"required,min=2,max=10000"`
}

// CreateBoreholesRequest - пакетная загрузка скважин
type CreateBoreholesRequest struct {
	Boreholes []BoreholeInput `json:"boreholes" validate:"required,min=1,max=10000,dive"`
}

// BoreholeInput - скважина при загрузке, координаты в национальной сетке
type BoreholeInput struct {
	ID    string  `json:"id" validate:"required,max=64"`
	Name  string  `json:"name" validate:"max=256"`
	GridX float64 `json:"grid_x"`
	GridY float64 `json:"grid_y"`
	Depth float64 `json:"depth" validate:"omitempty,gte=0"`
}

// ListBoreholesRequest - параметры листинга скважин
type ListBoreholesRequest struct {
	MinLat *float64 `query:"min_lat" validate:"omitempty,min=-90,max=90"`
	MinLon *float64 `query:"min_lon" validate:"omitempty,min=-180,max=180"`
	MaxLat *float64 `query:"max_lat" validate:"omitempty,min=-90,max=90"`
	MaxLon *float64 `query:"max_lon" validate:"omitempty,min=-180,max=180"`
	Limit  int      `query:"limit" validate:"omitempty,min=1,max=1000"`
	Offset int      `query:"offset" validate:"omitempty,min=0"`
}
