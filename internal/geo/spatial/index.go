package spatial

import (
	"github.com/dhconnelly/rtreego"

	"github.com/borehole-microservice/internal/domain"
)

// pointEntry - запись r-tree, хранит индекс точки во входном срезе,
// чтобы сохранить исходный порядок после предфильтрации
type pointEntry struct {
	idx  int
	rect rtreego.Rect
}

func (e *pointEntry) Bounds() rtreego.Rect {
	return e.rect
}

// prefilterByBounds строит r-tree по кандидатам и возвращает точки,
// попадающие в bbox кольца, в исходном порядке. Точность отбора
// обеспечивает последующий точный тест по кольцу.
func prefilterByBounds(points []domain.SurveyPoint, bb domain.BoundingBox) []domain.SurveyPoint {
	tree := rtreego.NewTree(2, 25, 50)
	for i := range points {
		p := &points[i]
		if !p.HasGeo() {
			continue
		}
		rect, _ := rtreego.NewRect(rtreego.Point{*p.GeoLon, *p.GeoLat}, []float64{1e-9, 1e-9})
		tree.Insert(&pointEntry{idx: i, rect: rect})
	}

	query, err := rtreego.NewRect(
		rtreego.Point{bb.MinLon, bb.MinLat},
		[]float64{bb.MaxLon - bb.MinLon, bb.MaxLat - bb.MinLat},
	)
	if err != nil {
		// Вырожденный bbox - отдаём всех кандидатов точному тесту
		return points
	}

	hits := tree.SearchIntersect(query)
	keep := make([]bool, len(points))
	for _, h := range hits {
		keep[h.(*pointEntry).idx] = true
	}

	filtered := make([]domain.SurveyPoint, 0, len(hits))
	for i := range points {
		if keep[i] {
			filtered = append(filtered, points[i])
		}
	}
	return filtered
}
