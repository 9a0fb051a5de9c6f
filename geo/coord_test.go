package geo

import (
	"math"
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestHaversineZero(t *testing.T) {
	coords := []Coord{{0, 0}, {3.0728, 36.7468}, {-180, -90}, {180, 90}, {13.4, 52.5}}
	for _, c := range coords {
		assert.Equal(t, 0.0, HaversineDistance(c, c))
	}
}

func TestHaversineSymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		a := Coord{rng.Float64()*360 - 180, rng.Float64()*180 - 90}
		b := Coord{rng.Float64()*360 - 180, rng.Float64()*180 - 90}
		assert.InDelta(t, HaversineDistance(a, b), HaversineDistance(b, a), 1e-6)
	}
}

func TestHaversineReference(t *testing.T) {
	d := HaversineDistance(Coord{0, 0}, Coord{0, 1})
	assert.InEpsilon(t, 111195.0, d, 0.01)

	// one degree of longitude on the equator equals one degree of latitude
	assert.InDelta(t, d, HaversineDistance(Coord{0, 0}, Coord{1, 0}), 1e-6)

	// antipodes are half the circumference apart
	assert.InDelta(t, math.Pi*EARTH_RADIUS, HaversineDistance(Coord{0, 0}, Coord{180, 0}), 1e-3)
}

func TestHaversineOutOfRange(t *testing.T) {
	inputs := [][2]Coord{
		{{500, 300}, {-720, 1000}},
		{{math.NaN(), 0}, {0, 0}},
		{{math.Inf(1), 0}, {0, math.Inf(-1)}},
	}
	for _, in := range inputs {
		d := HaversineDistance(in[0], in[1])
		assert.False(t, math.IsNaN(d))
		assert.False(t, math.IsInf(d, 0))
		assert.GreaterOrEqual(t, d, 0.0)
	}
}

func TestCoordValid(t *testing.T) {
	assert.True(t, Coord{3.07, 36.74}.IsValid())
	assert.True(t, Coord{-180, 90}.IsValid())
	assert.False(t, Coord{181, 0}.IsValid())
	assert.False(t, Coord{0, -91}.IsValid())
	assert.False(t, Coord{math.NaN(), 0}.IsValid())
}

func TestLineStringConversion(t *testing.T) {
	coords := CoordArray{{0, 0}, {0, 1}, {1, 1}}
	line := coords.ToLineString()
	assert.Equal(t, orb.LineString{{0, 0}, {0, 1}, {1, 1}}, line)
	assert.Equal(t, coords, FromLineString(line))
	assert.InDelta(t, 2*111195.0, LineLength(coords), 2*111195.0*0.01)
}
