package section_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/borehole-microservice/internal/domain"
	"github.com/borehole-microservice/internal/geo/section"
	apperrors "github.com/borehole-microservice/internal/pkg/errors"
)

func projectedPoint(id string, x, y float64) domain.SurveyPoint {
	return domain.SurveyPoint{ID: id, ProjX: &x, ProjY: &y}
}

func TestBuilder_FitLine(t *testing.T) {
	b := section.NewBuilder(zap.NewNop())

	t.Run("collinear points give exact line", func(t *testing.T) {
		points := []domain.SurveyPoint{
			projectedPoint("a", 0, 0),
			projectedPoint("b", 1, 1),
			projectedPoint("c", 2, 2),
			projectedPoint("d", 3, 3),
		}
		line, err := b.FitLine(points)
		require.NoError(t, err)

		assert.InDelta(t, 1.5, line.OriginX, 1e-9)
		assert.InDelta(t, 1.5, line.OriginY, 1e-9)

		invSqrt2 := 1.0 / math.Sqrt2
		assert.InDelta(t, invSqrt2, line.DirectionX, 1e-9)
		assert.InDelta(t, invSqrt2, line.DirectionY, 1e-9)
		assert.InDelta(t, 1.0, math.Hypot(line.DirectionX, line.DirectionY), 1e-12)
	})

	t.Run("direction follows input order", func(t *testing.T) {
		// Те же точки в обратном порядке переворачивают направление
		points := []domain.SurveyPoint{
			projectedPoint("d", 3, 3),
			projectedPoint("c", 2, 2),
			projectedPoint("b", 1, 1),
			projectedPoint("a", 0, 0),
		}
		line, err := b.FitLine(points)
		require.NoError(t, err)
		assert.Negative(t, line.DirectionX)
		assert.Negative(t, line.DirectionY)
	})

	t.Run("scattered points follow the dominant axis", func(t *testing.T) {
		points := []domain.SurveyPoint{
			projectedPoint("a", 0, 0.3),
			projectedPoint("b", 10, -0.2),
			projectedPoint("c", 20, 0.1),
			projectedPoint("d", 30, -0.1),
		}
		line, err := b.FitLine(points)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, line.DirectionX, 0.01)
		assert.InDelta(t, 0.0, line.DirectionY, 0.05)
	})

	t.Run("fewer than two points rejected", func(t *testing.T) {
		_, err := b.FitLine(nil)
		assert.ErrorIs(t, err, apperrors.ErrDegenerateInput)

		_, err = b.FitLine([]domain.SurveyPoint{projectedPoint("a", 1, 2)})
		assert.ErrorIs(t, err, apperrors.ErrDegenerateInput)
	})

	t.Run("coincident points rejected", func(t *testing.T) {
		_, err := b.FitLine([]domain.SurveyPoint{
			projectedPoint("a", 1, 2),
			projectedPoint("b", 1, 2),
			projectedPoint("c", 1, 2),
		})
		assert.ErrorIs(t, err, apperrors.ErrDegenerateInput)
	})

	t.Run("point without projected coordinates rejected", func(t *testing.T) {
		_, err := b.FitLine([]domain.SurveyPoint{
			projectedPoint("a", 0, 0),
			{ID: "no-proj"},
		})
		assert.ErrorIs(t, err, apperrors.ErrTransformFailure)
	})
}

func TestBuilder_ProjectAndOrder(t *testing.T) {
	b := section.NewBuilder(zap.NewNop())

	t.Run("orders by distance along the line", func(t *testing.T) {
		line := domain.SectionLine{OriginX: 0, OriginY: 0, DirectionX: 1, DirectionY: 0}
		projections, err := b.ProjectAndOrder(line, []domain.SurveyPoint{
			projectedPoint("far", 30, 5),
			projectedPoint("near", 10, -2),
			projectedPoint("behind", -5, 1),
			projectedPoint("mid", 20, 0),
		})
		require.NoError(t, err)

		ids := make([]string, 0, len(projections))
		for _, p := range projections {
			ids = append(ids, p.PointID)
		}
		assert.Equal(t, []string{"behind", "near", "mid", "far"}, ids)

		for i := 1; i < len(projections); i++ {
			assert.LessOrEqual(t, projections[i-1].DistanceAlongLine, projections[i].DistanceAlongLine)
		}
	})

	t.Run("perpendicular offset is signed left positive", func(t *testing.T) {
		line := domain.SectionLine{OriginX: 0, OriginY: 0, DirectionX: 1, DirectionY: 0}
		projections, err := b.ProjectAndOrder(line, []domain.SurveyPoint{
			projectedPoint("left", 5, 3),
			projectedPoint("right", 5, -3),
		})
		require.NoError(t, err)
		assert.InDelta(t, 3.0, projections[0].PerpendicularOffset, 1e-12)
		assert.InDelta(t, -3.0, projections[1].PerpendicularOffset, 1e-12)
	})

	t.Run("equal distances keep input order", func(t *testing.T) {
		line := domain.SectionLine{OriginX: 0, OriginY: 0, DirectionX: 0, DirectionY: 1}
		projections, err := b.ProjectAndOrder(line, []domain.SurveyPoint{
			projectedPoint("first", -1, 7),
			projectedPoint("second", 4, 7),
		})
		require.NoError(t, err)
		assert.Equal(t, "first", projections[0].PointID)
		assert.Equal(t, "second", projections[1].PointID)
	})

	t.Run("point without projected coordinates rejected", func(t *testing.T) {
		line := domain.SectionLine{DirectionX: 1}
		_, err := b.ProjectAndOrder(line, []domain.SurveyPoint{{ID: "no-proj"}})
		assert.ErrorIs(t, err, apperrors.ErrTransformFailure)
	})
}
