package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceSamePointIsZero(t *testing.T) {
	assert.Zero(t, Distance(-33.9249, 18.4241, -33.9249, 18.4241))
}

func TestDistanceCapeTownStellenbosch(t *testing.T) {
	d := Distance(-33.9249, 18.4241, -33.9321, 18.8602)
	// roughly 40 km as the crow flies
	assert.InDelta(t, 40.24, d, 0.05)
}

func TestDistanceIsSymmetric(t *testing.T) {
	a := Distance(-26.2041, 28.0473, -29.8587, 31.0218)
	b := Distance(-29.8587, 31.0218, -26.2041, 28.0473)
	assert.InDelta(t, a, b, 1e-9)
}

func TestBetweenNeedsBothPoints(t *testing.T) {
	lat, lng := -33.9249, 18.4241
	_, ok := Between(Point{Lat: &lat, Lng: &lng}, Point{})
	assert.False(t, ok)

	d, ok := Between(Point{Lat: &lat, Lng: &lng}, Point{Lat: &lat, Lng: &lng})
	assert.True(t, ok)
	assert.Zero(t, d)
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 41.6, Round1(41.56))
}
