package section

import (
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/borehole-microservice/internal/domain"
	apperrors "github.com/borehole-microservice/internal/pkg/errors"
)

// varianceEpsilon - порог, ниже которого разброс точек считается нулевым
const varianceEpsilon = 1e-12

// Builder подбирает прямую разреза методом главных компонент по
// точкам в локальной проекционной системе (метры).
type Builder struct {
	logger *zap.Logger
}

func NewBuilder(logger *zap.Logger) *Builder {
	return &Builder{logger: logger}
}

// FitLine возвращает прямую наилучшего приближения: начало в центроиде,
// направление вдоль главной компоненты разброса (единичный вектор).
// Требуются минимум две различные точки; совпадающие точки дают
// ошибку вырожденного входа.
func (b *Builder) FitLine(points []domain.SurveyPoint) (domain.SectionLine, error) {
	if len(points) < 2 {
		return domain.SectionLine{}, apperrors.ErrDegenerateInput.WithDetails(map[string]interface{}{
			"point_count": len(points),
		})
	}

	var cx, cy float64
	for _, p := range points {
		if !p.HasProjected() {
			return domain.SectionLine{}, apperrors.ErrTransformFailure.WithDetails(map[string]interface{}{
				"point_id": p.ID,
				"reason":   "point has no projected coordinates",
			})
		}
		cx += *p.ProjX
		cy += *p.ProjY
	}
	n := float64(len(points))
	cx /= n
	cy /= n

	// Ковариационная матрица 2x2 относительно центроида
	var sxx, sxy, syy float64
	for _, p := range points {
		dx := *p.ProjX - cx
		dy := *p.ProjY - cy
		sxx += dx * dx
		sxy += dx * dy
		syy += dy * dy
	}
	sxx /= n
	sxy /= n
	syy /= n

	if sxx+syy < varianceEpsilon {
		return domain.SectionLine{}, apperrors.ErrDegenerateInput.WithDetails(map[string]interface{}{
			"point_count": len(points),
			"reason":      "all points coincide",
		})
	}

	cov := mat.NewSymDense(2, []float64{sxx, sxy, sxy, syy})
	var eig mat.EigenSym
	if !eig.Factorize(cov, true) {
		return domain.SectionLine{}, apperrors.ErrDegenerateInput.WithDetails(map[string]interface{}{
			"reason": "eigendecomposition failed",
		})
	}

	// Собственные значения отсортированы по возрастанию:
	// главная компонента - последний столбец
	var vectors mat.Dense
	eig.VectorsTo(&vectors)
	dx := vectors.At(0, 1)
	dy := vectors.At(1, 1)

	norm := math.Hypot(dx, dy)
	dx /= norm
	dy /= norm

	// Ориентация: положительное направление от первой точки входа
	// к последней
	first := (*points[0].ProjX-cx)*dx + (*points[0].ProjY-cy)*dy
	last := (*points[len(points)-1].ProjX-cx)*dx + (*points[len(points)-1].ProjY-cy)*dy
	if first > last {
		dx = -dx
		dy = -dy
	}

	line := domain.SectionLine{
		OriginX:    cx,
		OriginY:    cy,
		DirectionX: dx,
		DirectionY: dy,
	}

	b.logger.Debug("Section line fitted",
		zap.Int("point_count", len(points)),
		zap.Float64("origin_x", cx),
		zap.Float64("origin_y", cy),
		zap.Float64("direction_x", dx),
		zap.Float64("direction_y", dy))

	return line, nil
}
