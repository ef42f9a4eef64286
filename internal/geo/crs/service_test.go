package crs_test

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/borehole-microservice/internal/geo/crs"
	apperrors "github.com/borehole-microservice/internal/pkg/errors"
)

func newService(t *testing.T) *crs.Service {
	t.Helper()
	return crs.NewService(zap.NewNop(), 0)
}

func TestService_RoundTrip(t *testing.T) {
	svc := newService(t)

	t.Run("national grid to geographic and back", func(t *testing.T) {
		cases := [][2]float64{
			{500000, 200000},
			{400000, -100000},
			{651409.903, 313177.270},
			{100000, 900000},
		}
		for _, c := range cases {
			lat, lon, err := svc.TransformPoint(crs.NationalGrid, crs.Geographic, c[0], c[1])
			require.NoError(t, err)
			x, y, err := svc.TransformPoint(crs.Geographic, crs.NationalGrid, lat, lon)
			require.NoError(t, err)
			assert.InDelta(t, c[0], x, 0.01)
			assert.InDelta(t, c[1], y, 0.01)
		}
	})

	t.Run("geographic to local projected and back", func(t *testing.T) {
		pts := []crs.XY{
			{X: 51.5, Y: -0.12},
			{X: 51.6, Y: -0.10},
		}
		results, frame := svc.TransformBatch(crs.Geographic, crs.LocalProjected, pts)
		require.Len(t, results, 2)
		for i, r := range results {
			require.NoError(t, r.Err)
			lat, lon, err := svc.TransformPointInFrame(frame, crs.LocalProjected, crs.Geographic, r.X, r.Y)
			require.NoError(t, err)
			assert.InDelta(t, pts[i].X, lat, 1e-6)
			assert.InDelta(t, pts[i].Y, lon, 1e-6)
		}
	})

	t.Run("identity transform returns input", func(t *testing.T) {
		lat, lon, err := svc.TransformPoint(crs.Geographic, crs.Geographic, 51.5, -0.12)
		require.NoError(t, err)
		assert.Equal(t, 51.5, lat)
		assert.Equal(t, -0.12, lon)
	})
}

func TestService_Frames(t *testing.T) {
	svc := newService(t)

	t.Run("zone derived from batch centroid", func(t *testing.T) {
		pts := []crs.XY{
			{X: 51.5, Y: -0.5},
			{X: 51.5, Y: -0.3},
		}
		frame, err := svc.FrameFor(crs.Geographic, pts)
		require.NoError(t, err)
		assert.Equal(t, 30, frame.Zone)
		assert.False(t, frame.South)
	})

	t.Run("southern hemisphere flag", func(t *testing.T) {
		frame, err := svc.FrameFor(crs.Geographic, []crs.XY{{X: -33.9, Y: 18.4}})
		require.NoError(t, err)
		assert.Equal(t, 34, frame.Zone)
		assert.True(t, frame.South)
	})

	t.Run("local projected source requires explicit frame", func(t *testing.T) {
		_, _, err := svc.TransformPoint(crs.LocalProjected, crs.Geographic, 500000, 5700000)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrTransformFailure)
	})

	t.Run("same frame gives consistent coordinates", func(t *testing.T) {
		_, frame := svc.TransformBatch(crs.Geographic, crs.LocalProjected, []crs.XY{{X: 51.5, Y: -0.12}})
		x1, y1, err := svc.TransformPointInFrame(frame, crs.Geographic, crs.LocalProjected, 51.5, -0.12)
		require.NoError(t, err)
		x2, y2, err := svc.TransformPointInFrame(frame, crs.Geographic, crs.LocalProjected, 51.5, -0.12)
		require.NoError(t, err)
		assert.Equal(t, x1, x2)
		assert.Equal(t, y1, y2)
	})
}

func TestService_Validation(t *testing.T) {
	svc := newService(t)

	t.Run("non-finite input rejected", func(t *testing.T) {
		for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
			_, _, err := svc.TransformPoint(crs.Geographic, crs.NationalGrid, v, 0)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidCoordinate)
		}
	})

	t.Run("latitude out of range rejected", func(t *testing.T) {
		_, _, err := svc.TransformPoint(crs.Geographic, crs.NationalGrid, 91, 0)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCoordinate)
	})

	t.Run("longitude out of range rejected", func(t *testing.T) {
		_, _, err := svc.TransformPoint(crs.Geographic, crs.NationalGrid, 0, 181)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCoordinate)
	})

	t.Run("unknown system fails the transform", func(t *testing.T) {
		_, _, err := svc.TransformPoint(crs.System("mercator"), crs.Geographic, 1, 2)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrTransformFailure)
	})
}

func TestService_BatchErrors(t *testing.T) {
	svc := newService(t)

	t.Run("failed points carry errors while the rest succeed", func(t *testing.T) {
		pts := []crs.XY{
			{X: 51.5, Y: -0.12},
			{X: math.NaN(), Y: -0.12},
			{X: 51.6, Y: -0.10},
		}
		results, _ := svc.TransformBatch(crs.Geographic, crs.LocalProjected, pts)
		require.Len(t, results, 3)
		assert.NoError(t, results[0].Err)
		assert.Error(t, results[1].Err)
		assert.NoError(t, results[2].Err)
	})
}

func TestService_Cache(t *testing.T) {
	t.Run("repeated transforms hit the cache", func(t *testing.T) {
		svc := crs.NewService(zap.NewNop(), 8)
		_, _, err := svc.TransformPoint(crs.Geographic, crs.NationalGrid, 51.5, -0.12)
		require.NoError(t, err)
		before := svc.CacheLen()
		_, _, err = svc.TransformPoint(crs.Geographic, crs.NationalGrid, 51.5, -0.12)
		require.NoError(t, err)
		assert.Equal(t, before, svc.CacheLen())
	})

	t.Run("cache never exceeds capacity", func(t *testing.T) {
		svc := crs.NewService(zap.NewNop(), 4)
		for i := 0; i < 20; i++ {
			_, _, err := svc.TransformPoint(crs.Geographic, crs.NationalGrid, 51.0+float64(i)*0.01, -0.12)
			require.NoError(t, err)
		}
		assert.LessOrEqual(t, svc.CacheLen(), 4)
	})

	t.Run("concurrent access is safe", func(t *testing.T) {
		svc := crs.NewService(zap.NewNop(), 64)
		var wg sync.WaitGroup
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func(g int) {
				defer wg.Done()
				for i := 0; i < 100; i++ {
					_, _, err := svc.TransformPoint(crs.Geographic, crs.NationalGrid, 51.0+float64(i%10)*0.01, -0.12+float64(g)*0.001)
					assert.NoError(t, err)
				}
			}(g)
		}
		wg.Wait()
	})
}
