package section

import (
	"sort"

	"github.com/borehole-microservice/internal/domain"
	apperrors "github.com/borehole-microservice/internal/pkg/errors"
)

// ProjectAndOrder проецирует точки на прямую разреза и возвращает их в
// порядке возрастания расстояния вдоль прямой. Расстояние считается от
// начала прямой со знаком по её направлению; перпендикулярное смещение
// положительно слева от направления. При равных расстояниях сохраняется
// порядок входа.
func (b *Builder) ProjectAndOrder(line domain.SectionLine, points []domain.SurveyPoint) ([]domain.Projection, error) {
	projections := make([]domain.Projection, 0, len(points))
	for _, p := range points {
		if !p.HasProjected() {
			return nil, apperrors.ErrTransformFailure.WithDetails(map[string]interface{}{
				"point_id": p.ID,
				"reason":   "point has no projected coordinates",
			})
		}
		dx := *p.ProjX - line.OriginX
		dy := *p.ProjY - line.OriginY
		projections = append(projections, domain.Projection{
			PointID:             p.ID,
			DistanceAlongLine:   dx*line.DirectionX + dy*line.DirectionY,
			PerpendicularOffset: dy*line.DirectionX - dx*line.DirectionY,
		})
	}

	sort.SliceStable(projections, func(i, j int) bool {
		return projections[i].DistanceAlongLine < projections[j].DistanceAlongLine
	})
	return projections, nil
}
