package route

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/utils"
)

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestGenerate_EndpointsAndLength(t *testing.T) {
	origin := utils.Coordinate{Lat: 6.5, Lng: 3.4}
	dest := utils.Coordinate{Lat: 7.1, Lng: 3.9}

	for _, n := range []int{1, 2, 5, DefaultPointCount, 50} {
		r := Generate(origin, dest, n, DefaultJitterDeg, testRand(uint64(n)))
		require.Equal(t, n+1, r.Len(), "pointCount=%d", n)
		assert.Equal(t, origin, r.At(0))
		assert.Equal(t, dest, r.At(r.Len()-1))
		assert.Equal(t, origin, r.Origin())
		assert.Equal(t, dest, r.Destination())
	}
}

func TestGenerate_SinglePointDegeneratesToEndpoints(t *testing.T) {
	origin := utils.Coordinate{Lat: 1, Lng: 2}
	dest := utils.Coordinate{Lat: 3, Lng: 4}

	for _, n := range []int{1, 0, -3} {
		r := Generate(origin, dest, n, DefaultJitterDeg, testRand(1))
		assert.Equal(t, []utils.Coordinate{origin, dest}, r.Points(), "pointCount=%d", n)
	}
}

func TestGenerate_InteriorFollowsInterpolationWithinJitter(t *testing.T) {
	origin := utils.Coordinate{Lat: 6.5, Lng: 3.4}
	dest := utils.Coordinate{Lat: 8.5, Lng: 5.4}
	n := DefaultPointCount

	r := Generate(origin, dest, n, DefaultJitterDeg, testRand(42))
	for i := 1; i < n; i++ {
		frac := float64(i) / float64(n)
		wantLat := origin.Lat + (dest.Lat-origin.Lat)*frac
		wantLng := origin.Lng + (dest.Lng-origin.Lng)*frac
		p := r.At(i)
		assert.LessOrEqual(t, math.Abs(p.Lat-wantLat), DefaultJitterDeg/2, "lat at %d", i)
		assert.LessOrEqual(t, math.Abs(p.Lng-wantLng), DefaultJitterDeg/2, "lng at %d", i)
	}

	// jitter is far smaller than the 0.2 degree step, so latitude keeps increasing
	for i := 1; i < r.Len(); i++ {
		assert.Greater(t, r.At(i).Lat, r.At(i-1).Lat)
	}
}

func TestGenerate_ZeroJitterIsStraight(t *testing.T) {
	origin := utils.Coordinate{Lat: 0, Lng: 0}
	dest := utils.Coordinate{Lat: 0, Lng: 1}

	r := Generate(origin, dest, 4, 0, testRand(7))
	assert.InDelta(t, utils.DistanceKM(origin, dest), r.LengthKM(), 1e-6)
	assert.InDelta(t, 0.25, r.At(1).Lng, 1e-12)
}

func TestGenerate_SeedIsReproducible(t *testing.T) {
	origin := utils.Coordinate{Lat: 6.5, Lng: 3.4}
	dest := utils.Coordinate{Lat: 7.5, Lng: 4.4}

	a := Generate(origin, dest, 10, DefaultJitterDeg, testRand(99))
	b := Generate(origin, dest, 10, DefaultJitterDeg, testRand(99))
	assert.Equal(t, a.Points(), b.Points())
}

func TestRandomDestination_StaysWithinSpan(t *testing.T) {
	origin := utils.Coordinate{Lat: 6.5, Lng: 3.4}
	rng := testRand(3)
	for i := 0; i < 100; i++ {
		d := RandomDestination(origin, rng)
		assert.LessOrEqual(t, math.Abs(d.Lat-origin.Lat), RandomDestinationSpanDeg/2)
		assert.LessOrEqual(t, math.Abs(d.Lng-origin.Lng), RandomDestinationSpanDeg/2)
	}
}

func TestRoute_PointsIsACopy(t *testing.T) {
	src := []utils.Coordinate{{Lat: 1, Lng: 1}, {Lat: 2, Lng: 2}}
	r := New(src)
	src[0].Lat = 99

	pts := r.Points()
	pts[1].Lat = 42

	assert.Equal(t, 1.0, r.At(0).Lat)
	assert.Equal(t, 2.0, r.At(1).Lat)
}

func TestRoute_EmptyAccessors(t *testing.T) {
	var r Route
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, utils.Coordinate{}, r.Origin())
	assert.Equal(t, utils.Coordinate{}, r.Destination())
	assert.Equal(t, 0.0, r.LengthKM())
	assert.Empty(t, r.Points())
}
