package crs

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransverseMercator_TrueOrigin(t *testing.T) {
	grid := newNationalGrid()
	x, y := grid.Forward(gridLat0, gridLon0)
	assert.InDelta(t, gridFE, x, 1e-6)
	assert.InDelta(t, gridFN, y, 1e-6)

	lat, lon := grid.Inverse(gridFE, gridFN)
	assert.InDelta(t, gridLat0, lat, 1e-9)
	assert.InDelta(t, gridLon0, lon, 1e-9)
}

func TestTransverseMercator_CentralMeridianSymmetry(t *testing.T) {
	grid := newNationalGrid()
	xw, yw := grid.Forward(52.0, gridLon0-1.0)
	xe, ye := grid.Forward(52.0, gridLon0+1.0)
	// Восток и запад симметричны относительно осевого меридиана
	assert.InDelta(t, gridFE-xw, xe-gridFE, 1e-6)
	assert.InDelta(t, yw, ye, 1e-6)
}

func TestTransverseMercator_NorthingIncreasesWithLatitude(t *testing.T) {
	grid := newNationalGrid()
	_, y1 := grid.Forward(50.0, -1.0)
	_, y2 := grid.Forward(55.0, -1.0)
	assert.Greater(t, y2, y1)
}

func TestTransverseMercator_RoundTripAccuracy(t *testing.T) {
	grid := newNationalGrid()
	for lat := 49.5; lat <= 60.5; lat += 1.0 {
		for lon := -7.0; lon <= 2.0; lon += 1.0 {
			x, y := grid.Forward(lat, lon)
			backLat, backLon := grid.Inverse(x, y)
			assert.InDelta(t, lat, backLat, 1e-8, "lat %f lon %f", lat, lon)
			assert.InDelta(t, lon, backLon, 1e-8, "lat %f lon %f", lat, lon)
		}
	}
}

func TestUTM_Zones(t *testing.T) {
	t.Run("zone boundaries", func(t *testing.T) {
		assert.Equal(t, 31, utmZoneFor(0.0))
		assert.Equal(t, 30, utmZoneFor(-0.0001))
		assert.Equal(t, 1, utmZoneFor(-180.0))
		assert.Equal(t, 60, utmZoneFor(179.9999))
	})

	t.Run("central meridian maps to false easting", func(t *testing.T) {
		utm := newUTM(Frame{Zone: 31, South: false})
		x, _ := utm.Forward(45.0, 3.0)
		assert.InDelta(t, utmFE, x, 1e-6)
	})

	t.Run("southern frame offsets northing", func(t *testing.T) {
		north := newUTM(Frame{Zone: 34, South: false})
		south := newUTM(Frame{Zone: 34, South: true})
		_, yn := north.Forward(-33.9, 18.4)
		_, ys := south.Forward(-33.9, 18.4)
		require.Negative(t, yn)
		assert.InDelta(t, yn+utmFNSouth, ys, 1e-6)
		assert.Positive(t, ys)
	})

	t.Run("round trip", func(t *testing.T) {
		utm := newUTM(Frame{Zone: 30, South: false})
		x, y := utm.Forward(51.5, -0.12)
		lat, lon := utm.Inverse(x, y)
		assert.InDelta(t, 51.5, lat, 1e-8)
		assert.InDelta(t, -0.12, lon, 1e-8)
	})
}

func TestMeridionalArc_ZeroAtOrigin(t *testing.T) {
	grid := newNationalGrid()
	m := grid.meridionalArc(gridLat0 * math.Pi / 180.0)
	assert.InDelta(t, 0.0, m, 1e-9)
}
