package model

import (
	"fmt"
	"slices"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Atom is a named point in 3-D space belonging to a structural element.
type Atom struct {
	Name     string
	Position r3.Vec
}

// StructuralElement is the smallest structural unit items refer to (a residue
// or interaction pseudo-atom). Identity within a data point is the
// (Chain, Serial) pair; Family names the chemical family ("His", "Ser", ...).
type StructuralElement struct {
	Family string
	Chain  string
	Serial int
	Atoms  []Atom
}

// Key is the canonical per-structure identity of the element.
func (e *StructuralElement) Key() string {
	return fmt.Sprintf("%s:%d", e.Chain, e.Serial)
}

// Position returns the centroid of the element's atoms.
func (e *StructuralElement) Position() r3.Vec {
	var sum r3.Vec
	if len(e.Atoms) == 0 {
		return sum
	}
	for _, atom := range e.Atoms {
		sum = r3.Add(sum, atom.Position)
	}
	return r3.Scale(1/float64(len(e.Atoms)), sum)
}

// Compare orders elements canonically by chain, then serial.
func (e *StructuralElement) Compare(other *StructuralElement) int {
	if c := strings.Compare(e.Chain, other.Chain); c != 0 {
		return c
	}
	return e.Serial - other.Serial
}

func (e *StructuralElement) String() string {
	return fmt.Sprintf("%s-%s%d", e.Family, e.Chain, e.Serial)
}

// StructuralMotif is an ordered, deduplicated collection of structural
// elements, the structural representation of an itemset occurrence or of a
// merged consensus.
type StructuralMotif struct {
	Elements []*StructuralElement
}

// NewStructuralMotif builds a motif from the given elements, sorted by the
// canonical element ordering and deduplicated by element key.
func NewStructuralMotif(elements []*StructuralElement) *StructuralMotif {
	unique := make([]*StructuralElement, 0, len(elements))
	seen := make(map[string]bool, len(elements))
	for _, element := range elements {
		if element == nil || seen[element.Key()] {
			continue
		}
		seen[element.Key()] = true
		unique = append(unique, element)
	}
	slices.SortFunc(unique, func(a, b *StructuralElement) int { return a.Compare(b) })
	return &StructuralMotif{Elements: unique}
}

// Size returns the number of elements of the motif.
func (m *StructuralMotif) Size() int {
	return len(m.Elements)
}

// Positions returns the element centroids in motif order.
func (m *StructuralMotif) Positions() []r3.Vec {
	positions := make([]r3.Vec, len(m.Elements))
	for i, element := range m.Elements {
		positions[i] = element.Position()
	}
	return positions
}

// AtomPositions returns every atom position of the motif in element order.
func (m *StructuralMotif) AtomPositions() []r3.Vec {
	var positions []r3.Vec
	for _, element := range m.Elements {
		for _, atom := range element.Atoms {
			positions = append(positions, atom.Position)
		}
	}
	return positions
}

// FirstWithFamily returns the first element of the given family in motif
// order, or nil.
func (m *StructuralMotif) FirstWithFamily(family string) *StructuralElement {
	for _, element := range m.Elements {
		if element.Family == family {
			return element
		}
	}
	return nil
}

func (m *StructuralMotif) String() string {
	names := make([]string, len(m.Elements))
	for i, element := range m.Elements {
		names[i] = element.String()
	}
	return strings.Join(names, "|")
}

// Records renders the motif as plain-text structure records, one atom per
// line with a running serial.
func (m *StructuralMotif) Records() string {
	var builder strings.Builder
	serial := 0
	for _, element := range m.Elements {
		for _, atom := range element.Atoms {
			serial++
			fmt.Fprintf(&builder, "ATOM  %5d %-4s %-3s %s%4d    %8.3f%8.3f%8.3f\n",
				serial, atom.Name, element.Family, element.Chain, element.Serial,
				atom.Position.X, atom.Position.Y, atom.Position.Z)
		}
	}
	return builder.String()
}
