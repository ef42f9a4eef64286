package spatial_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/borehole-microservice/internal/domain"
	"github.com/borehole-microservice/internal/geo/crs"
	"github.com/borehole-microservice/internal/geo/spatial"
	apperrors "github.com/borehole-microservice/internal/pkg/errors"
)

func newCorridorBuilder() *spatial.CorridorBuilder {
	logger := zap.NewNop()
	return spatial.NewCorridorBuilder(crs.NewService(logger, 0), logger, 0)
}

func TestCorridorBuilder_Validation(t *testing.T) {
	b := newCorridorBuilder()
	line := []domain.Point{{Lat: 51.5, Lon: -0.2}, {Lat: 51.5, Lon: -0.1}}

	t.Run("zero width rejected", func(t *testing.T) {
		_, err := b.BuildCorridor(line, 0)
		assert.ErrorIs(t, err, apperrors.ErrInvalidBufferWidth)
	})

	t.Run("negative width rejected", func(t *testing.T) {
		_, err := b.BuildCorridor(line, -10)
		assert.ErrorIs(t, err, apperrors.ErrInvalidBufferWidth)
	})

	t.Run("empty polyline rejected", func(t *testing.T) {
		_, err := b.BuildCorridor(nil, 100)
		assert.ErrorIs(t, err, apperrors.ErrInvalidShape)
	})

	t.Run("invalid vertex propagates transform error", func(t *testing.T) {
		_, err := b.BuildCorridor([]domain.Point{{Lat: 95, Lon: 0}, {Lat: 51.5, Lon: -0.1}}, 100)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCoordinate)
	})
}

func TestCorridorBuilder_RingGeometry(t *testing.T) {
	b := newCorridorBuilder()

	t.Run("ring is closed", func(t *testing.T) {
		poly, err := b.BuildCorridor([]domain.Point{
			{Lat: 51.50, Lon: -0.20},
			{Lat: 51.52, Lon: -0.15},
			{Lat: 51.50, Lon: -0.10},
		}, 250)
		require.NoError(t, err)
		ring := poly.Ring()
		require.Greater(t, len(ring), 3)
		assert.Equal(t, ring[0], ring[len(ring)-1])
	})

	t.Run("ring vertices stay near the requested width", func(t *testing.T) {
		line := []domain.Point{
			{Lat: 51.50, Lon: -0.20},
			{Lat: 51.50, Lon: -0.10},
		}
		const w = 300.0
		poly, err := b.BuildCorridor(line, w)
		require.NoError(t, err)
		for _, v := range poly.Ring() {
			d := distanceToPolyline(v, line)
			assert.GreaterOrEqual(t, d, w*0.99)
			// Стыков нет, вершины лежат на границе коридора
			assert.LessOrEqual(t, d, w*1.01)
		}
	})

	t.Run("corridor is never narrower than the half width", func(t *testing.T) {
		line := []domain.Point{
			{Lat: 51.50, Lon: -0.20},
			{Lat: 51.52, Lon: -0.15},
			{Lat: 51.50, Lon: -0.10},
		}
		const w = 250.0
		poly, err := b.BuildCorridor(line, w)
		require.NoError(t, err)
		for _, v := range poly.Ring() {
			assert.GreaterOrEqual(t, distanceToPolyline(v, line), w*0.99)
		}
	})

	t.Run("sharp bends keep the ring at the half width", func(t *testing.T) {
		bend := domain.Point{Lat: 51.50, Lon: -0.40}
		const w = 300.0
		for _, turnDeg := range []float64{150, 165} {
			turn := turnDeg * math.Pi / 180
			line := []domain.Point{
				offsetPoint(bend, -1500, 0),
				bend,
				offsetPoint(bend, 1500*math.Cos(turn), 1500*math.Sin(turn)),
			}
			poly, err := b.BuildCorridor(line, w)
			require.NoError(t, err)
			for _, v := range poly.Ring() {
				assert.GreaterOrEqual(t, distanceToPolyline(v, line), w*0.99,
					"turn %v", turnDeg)
			}
		}
	})

	t.Run("duplicate vertices are merged", func(t *testing.T) {
		poly, err := b.BuildCorridor([]domain.Point{
			{Lat: 51.50, Lon: -0.20},
			{Lat: 51.50, Lon: -0.20},
			{Lat: 51.50, Lon: -0.10},
		}, 250)
		require.NoError(t, err)
		assert.NotEmpty(t, poly.Ring())
	})

	t.Run("degenerate polyline yields a circle", func(t *testing.T) {
		center := domain.Point{Lat: 51.50, Lon: -0.15}
		const w = 200.0
		poly, err := b.BuildCorridor([]domain.Point{center, center}, w)
		require.NoError(t, err)
		ring := poly.Ring()
		require.Greater(t, len(ring), 8)
		for _, v := range ring {
			assert.InDelta(t, w, spatial.HaversineMeters(center, v), w*0.01)
		}
	})
}

func TestCorridorBuilder_WithinCorridor(t *testing.T) {
	b := newCorridorBuilder()

	t.Run("measures distance to the nearest segment", func(t *testing.T) {
		line := []domain.Point{
			{Lat: 51.50, Lon: -0.20},
			{Lat: 51.50, Lon: -0.10},
		}
		pts := []domain.Point{
			{Lat: 51.500, Lon: -0.15},
			offsetPoint(domain.Point{Lat: 51.50, Lon: -0.15}, 0, 400),
			offsetPoint(domain.Point{Lat: 51.50, Lon: -0.15}, 0, 700),
		}
		within, err := b.WithinCorridor(line, pts, 500)
		require.NoError(t, err)
		assert.Equal(t, []bool{true, true, false}, within)
	})

	t.Run("degenerate polyline measures distance to the vertex", func(t *testing.T) {
		center := domain.Point{Lat: 51.50, Lon: -0.15}
		pts := []domain.Point{
			offsetPoint(center, 100, 0),
			offsetPoint(center, 0, 250),
		}
		within, err := b.WithinCorridor([]domain.Point{center, center}, pts, 200)
		require.NoError(t, err)
		assert.Equal(t, []bool{true, false}, within)
	})

	t.Run("invalid width rejected", func(t *testing.T) {
		_, err := b.WithinCorridor([]domain.Point{{Lat: 51.5, Lon: -0.2}}, nil, 0)
		assert.ErrorIs(t, err, apperrors.ErrInvalidBufferWidth)
	})
}

// distanceToPolyline - минимальное расстояние от точки до полилинии,
// приближение по гаверсинусу через плотную дискретизацию сегментов
func distanceToPolyline(p domain.Point, line []domain.Point) float64 {
	best := spatial.HaversineMeters(p, line[0])
	for i := 0; i+1 < len(line); i++ {
		a, b := line[i], line[i+1]
		const steps = 200
		for s := 0; s <= steps; s++ {
			t := float64(s) / steps
			q := domain.Point{
				Lat: a.Lat + (b.Lat-a.Lat)*t,
				Lon: a.Lon + (b.Lon-a.Lon)*t,
			}
			if d := spatial.HaversineMeters(p, q); d < best {
				best = d
			}
		}
	}
	return best
}
