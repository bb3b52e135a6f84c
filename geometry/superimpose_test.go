package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func rotateZ(p r3.Vec, angle float64) r3.Vec {
	return r3.Vec{
		X: p.X*math.Cos(angle) - p.Y*math.Sin(angle),
		Y: p.X*math.Sin(angle) + p.Y*math.Cos(angle),
		Z: p.Z,
	}
}

func TestSuperimposeRecoversRigidMotion(t *testing.T) {
	reference := []r3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1},
	}
	translation := r3.Vec{X: 3, Y: -2, Z: 5}
	candidate := make([]r3.Vec, len(reference))
	for i, p := range reference {
		candidate[i] = r3.Add(rotateZ(p, math.Pi/3), translation)
	}

	transform, err := Superimpose(reference, candidate)
	require.NoError(t, err)

	for i, p := range candidate {
		mapped := transform.Apply(p)
		assert.InDelta(t, reference[i].X, mapped.X, 1e-9)
		assert.InDelta(t, reference[i].Y, mapped.Y, 1e-9)
		assert.InDelta(t, reference[i].Z, mapped.Z, 1e-9)
	}

	rmsd, err := SuperimposedRMSD(reference, candidate)
	require.NoError(t, err)
	assert.InDelta(t, 0, rmsd, 1e-9)
}

func TestSuperimposeRejectsMismatchedSets(t *testing.T) {
	_, err := Superimpose([]r3.Vec{{X: 1}}, []r3.Vec{{X: 1}, {X: 2}})
	assert.Error(t, err)

	_, err = Superimpose(nil, nil)
	assert.Error(t, err)
}

func TestSuperimposedRMSDTwoPoints(t *testing.T) {
	// Underdetermined case falls back to centered RMSD.
	reference := []r3.Vec{{X: 0}, {X: 2}}
	candidate := []r3.Vec{{X: 10}, {X: 12}}
	rmsd, err := SuperimposedRMSD(reference, candidate)
	require.NoError(t, err)
	assert.InDelta(t, 0, rmsd, 1e-9)
}

func TestMeanPairwiseDistance(t *testing.T) {
	positions := []r3.Vec{{X: 0}, {X: 1}, {X: 3}}
	// Pairs: 1, 3, 2 -> mean = 2.
	assert.InDelta(t, 2.0, MeanPairwiseDistance(positions), 1e-12)
	assert.Equal(t, 0.0, MeanPairwiseDistance(positions[:1]))
}

func TestCentroid(t *testing.T) {
	c := Centroid([]r3.Vec{{X: 0, Y: 0}, {X: 2, Y: 4}})
	assert.InDelta(t, 1.0, c.X, 1e-12)
	assert.InDelta(t, 2.0, c.Y, 1e-12)
}
