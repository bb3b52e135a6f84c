// Package geometry provides rigid-body superimposition and distance measures
// over structural coordinates.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/motifminer/motifminer/errors"
	"github.com/motifminer/motifminer/model"
)

// Transform is a rigid-body transformation: rotate about the candidate
// centroid, then translate onto the reference centroid.
type Transform struct {
	Rotation          *mat.Dense // 3x3 rotation matrix
	ReferenceCentroid r3.Vec
	CandidateCentroid r3.Vec
}

// Apply maps a single position through the transform.
func (t *Transform) Apply(position r3.Vec) r3.Vec {
	centered := r3.Sub(position, t.CandidateCentroid)
	rotated := r3.Vec{
		X: t.Rotation.At(0, 0)*centered.X + t.Rotation.At(0, 1)*centered.Y + t.Rotation.At(0, 2)*centered.Z,
		Y: t.Rotation.At(1, 0)*centered.X + t.Rotation.At(1, 1)*centered.Y + t.Rotation.At(1, 2)*centered.Z,
		Z: t.Rotation.At(2, 0)*centered.X + t.Rotation.At(2, 1)*centered.Y + t.Rotation.At(2, 2)*centered.Z,
	}
	return r3.Add(rotated, t.ReferenceCentroid)
}

// ApplyToMotif returns a transformed deep copy of the motif. The input motif
// is never mutated since its elements may be shared with other occurrences.
func (t *Transform) ApplyToMotif(motif *model.StructuralMotif) *model.StructuralMotif {
	elements := make([]*model.StructuralElement, len(motif.Elements))
	for i, element := range motif.Elements {
		atoms := make([]model.Atom, len(element.Atoms))
		for j, atom := range element.Atoms {
			atoms[j] = model.Atom{Name: atom.Name, Position: t.Apply(atom.Position)}
		}
		elements[i] = &model.StructuralElement{
			Family: element.Family,
			Chain:  element.Chain,
			Serial: element.Serial,
			Atoms:  atoms,
		}
	}
	return model.NewStructuralMotif(elements)
}

// Superimpose computes the optimal rigid superimposition (Kabsch algorithm)
// mapping candidate onto reference. Both point sets must be of equal,
// non-zero length; correspondence is positional.
func Superimpose(reference, candidate []r3.Vec) (*Transform, error) {
	if len(reference) == 0 || len(reference) != len(candidate) {
		return nil, errors.Newf("superimposition requires equal non-empty point sets, got %d and %d",
			len(reference), len(candidate))
	}

	referenceCentroid := Centroid(reference)
	candidateCentroid := Centroid(candidate)

	// Cross-covariance of the centered point sets.
	h := mat.NewDense(3, 3, nil)
	for i := range reference {
		p := r3.Sub(candidate[i], candidateCentroid)
		q := r3.Sub(reference[i], referenceCentroid)
		pv := []float64{p.X, p.Y, p.Z}
		qv := []float64{q.X, q.Y, q.Z}
		for row := 0; row < 3; row++ {
			for col := 0; col < 3; col++ {
				h.Set(row, col, h.At(row, col)+pv[row]*qv[col])
			}
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(h, mat.SVDFull); !ok {
		return nil, errors.New("superimposition SVD failed to converge")
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	var rotation mat.Dense
	rotation.Mul(&v, u.T())

	// Correct improper rotations (reflections).
	if mat.Det(&rotation) < 0 {
		for row := 0; row < 3; row++ {
			v.Set(row, 2, -v.At(row, 2))
		}
		rotation.Mul(&v, u.T())
	}

	return &Transform{
		Rotation:          &rotation,
		ReferenceCentroid: referenceCentroid,
		CandidateCentroid: candidateCentroid,
	}, nil
}

// SuperimposedRMSD superimposes candidate onto reference and returns the
// residual RMSD. With fewer than three points a rigid superimposition is
// underdetermined and the plain RMSD of the centered point sets is returned.
func SuperimposedRMSD(reference, candidate []r3.Vec) (float64, error) {
	if len(reference) == 0 || len(reference) != len(candidate) {
		return 0, errors.Newf("RMSD requires equal non-empty point sets, got %d and %d",
			len(reference), len(candidate))
	}
	if len(reference) < 3 {
		referenceCentroid := Centroid(reference)
		candidateCentroid := Centroid(candidate)
		var sum float64
		for i := range reference {
			d := r3.Sub(r3.Sub(reference[i], referenceCentroid), r3.Sub(candidate[i], candidateCentroid))
			sum += r3.Norm2(d)
		}
		return math.Sqrt(sum / float64(len(reference))), nil
	}

	transform, err := Superimpose(reference, candidate)
	if err != nil {
		return 0, err
	}
	var sum float64
	for i := range reference {
		d := r3.Sub(reference[i], transform.Apply(candidate[i]))
		sum += r3.Norm2(d)
	}
	return math.Sqrt(sum / float64(len(reference))), nil
}

// Centroid returns the arithmetic mean of the positions.
func Centroid(positions []r3.Vec) r3.Vec {
	var sum r3.Vec
	if len(positions) == 0 {
		return sum
	}
	for _, position := range positions {
		sum = r3.Add(sum, position)
	}
	return r3.Scale(1/float64(len(positions)), sum)
}

// Distance returns the Euclidean distance between two positions.
func Distance(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// MeanPairwiseDistance returns the mean Euclidean distance over all unordered
// position pairs, or 0 for fewer than two positions.
func MeanPairwiseDistance(positions []r3.Vec) float64 {
	n := len(positions)
	if n < 2 {
		return 0
	}
	var sum float64
	var pairs int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sum += Distance(positions[i], positions[j])
			pairs++
		}
	}
	return sum / float64(pairs)
}
