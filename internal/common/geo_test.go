package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	jfkLat, jfkLon = 40.6413, -73.7781
	laxLat, laxLon = 33.9416, -118.4085
)

func TestDistance_JFKToLAX(t *testing.T) {
	d := Distance(jfkLat, jfkLon, laxLat, laxLon)

	// great-circle JFK-LAX is about 3974 km
	assert.InEpsilon(t, 3974.0, d, 0.01)
}

func TestDistance_Symmetric(t *testing.T) {
	points := [][2]float64{
		{jfkLat, jfkLon},
		{laxLat, laxLon},
		{51.4700, -0.4543},
		{-33.9399, 151.1753},
		{0, 0},
	}

	for _, a := range points {
		for _, b := range points {
			assert.Equal(t, Distance(a[0], a[1], b[0], b[1]), Distance(b[0], b[1], a[0], a[1]))
		}
	}
}

func TestDistance_SamePointIsZero(t *testing.T) {
	assert.Equal(t, 0.0, Distance(jfkLat, jfkLon, jfkLat, jfkLon))
	assert.Equal(t, 0.0, Distance(0, 0, 0, 0))
}

func TestDistance_Antipodal(t *testing.T) {
	d := Distance(0, 0, 0, 180)

	assert.False(t, math.IsNaN(d))
	assert.InDelta(t, math.Pi*EarthRadiusKm, d, 1e-6)
}

func TestDistance_NeverNegative(t *testing.T) {
	assert.GreaterOrEqual(t, Distance(-90, -180, 90, 180), 0.0)
	assert.GreaterOrEqual(t, Distance(10, 20, -10, -20), 0.0)
}
