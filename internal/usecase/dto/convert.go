package dto

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/twpayne/go-polyline"

	"github.com/borehole-microservice/internal/domain"
	"github.com/borehole-microservice/internal/pkg/errors"
)

// shapeVertices возвращает вершины фигуры: либо явный список, либо
// декодированный encoded polyline
func shapeVertices(vertices []Point, encoded string) ([]domain.Point, error) {
	if encoded != "" {
		coords, _, err := polyline.DecodeCoords([]byte(encoded))
		if err != nil {
			return nil, errors.ErrInvalidShape.WithDetails(map[string]interface{}{
				"reason": "malformed encoded polyline",
			})
		}
		pts := make([]domain.Point, 0, len(coords))
		for _, c := range coords {
			pts = append(pts, domain.Point{Lat: c[0], Lon: c[1]})
		}
		return pts, nil
	}

	pts := make([]domain.Point, 0, len(vertices))
	for _, v := range vertices {
		pts = append(pts, domain.Point{Lat: v.Lat, Lon: v.Lon})
	}
	return pts, nil
}

// ToDomainShape преобразует запрос фигуры в доменную фигуру отбора
func (r ShapeRequest) ToDomainShape() (domain.Shape, error) {
	switch r.Type {
	case "polygon":
		vertices, err := shapeVertices(r.Vertices, r.EncodedPolyline)
		if err != nil {
			return nil, err
		}
		return domain.PolygonShape{Vertices: vertices}, nil

	case "rectangle":
		if r.CornerA == nil || r.CornerB == nil {
			return nil, errors.ErrInvalidShape.WithDetails(map[string]interface{}{
				"reason": "rectangle requires corner_a and corner_b",
			})
		}
		return domain.RectangleShape{
			CornerA: domain.Point{Lat: r.CornerA.Lat, Lon: r.CornerA.Lon},
			CornerB: domain.Point{Lat: r.CornerB.Lat, Lon: r.CornerB.Lon},
		}, nil

	case "polyline":
		vertices, err := shapeVertices(r.Vertices, r.EncodedPolyline)
		if err != nil {
			return nil, err
		}
		if r.HalfWidthMeters <= 0 {
			return nil, errors.ErrInvalidBufferWidth.WithDetails(map[string]interface{}{
				"half_width_meters": r.HalfWidthMeters,
			})
		}
		return domain.PolylineShape{
			Vertices:        vertices,
			HalfWidthMeters: r.HalfWidthMeters,
		}, nil
	}

	return nil, errors.ErrInvalidShape.WithDetails(map[string]interface{}{
		"type": r.Type,
	})
}

// CorridorVertices возвращает вершины полилинии коридора
func (r CorridorRequest) CorridorVertices() ([]domain.Point, error) {
	return shapeVertices(r.Vertices, r.EncodedPolyline)
}

// ConvertCorridorFeature оборачивает кольцо коридора в GeoJSON Feature
func ConvertCorridorFeature(corridor domain.BufferPolygon, halfWidthMeters float64) *geojson.Feature {
	ring := make(orb.Ring, 0, len(corridor.Vertices))
	for _, v := range corridor.Vertices {
		ring = append(ring, orb.Point{v.Lon, v.Lat})
	}

	feature := geojson.NewFeature(orb.Polygon{ring})
	feature.Properties["half_width_meters"] = halfWidthMeters
	return feature
}
