package model

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
)

// Itemset is an unordered set of unique labels treated as one pattern. An
// abstract (candidate) itemset has no origin; a concrete occurrence carries
// the data point it was extracted from and items backed by structural
// elements. Two itemsets are equal iff their label sets are equal,
// independent of origin.
//
// Scalar summary fields default to NaN until the corresponding stage has
// computed them.
type Itemset[L cmp.Ordered] struct {
	Items  []*Item[L]
	Origin *DataPointIdentifier

	Support   int
	Cohesion  float64
	Consensus float64
	Affinity  float64
	PValue    float64
	KS        float64
}

// NewItemset creates an abstract itemset from items, sorted by label.
func NewItemset[L cmp.Ordered](items []*Item[L]) *Itemset[L] {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b *Item[L]) int { return cmp.Compare(a.Label, b.Label) })
	return &Itemset[L]{
		Items:     sorted,
		Cohesion:  math.NaN(),
		Consensus: math.NaN(),
		Affinity:  math.NaN(),
		PValue:    math.NaN(),
		KS:        math.NaN(),
	}
}

// NewOccurrence creates a concrete occurrence of an itemset within the given
// data point.
func NewOccurrence[L cmp.Ordered](items []*Item[L], origin DataPointIdentifier) *Itemset[L] {
	itemset := NewItemset(items)
	itemset.Origin = &origin
	return itemset
}

// Labels returns the sorted labels of the itemset.
func (s *Itemset[L]) Labels() []L {
	labels := make([]L, len(s.Items))
	for i, item := range s.Items {
		labels[i] = item.Label
	}
	return labels
}

// Size returns the cardinality of the itemset.
func (s *Itemset[L]) Size() int {
	return len(s.Items)
}

// Key is the canonical identity of the itemset: its sorted labels joined.
// Itemsets with equal label sets share a key regardless of origin.
func (s *Itemset[L]) Key() string {
	parts := make([]string, len(s.Items))
	for i, item := range s.Items {
		parts[i] = fmt.Sprint(item.Label)
	}
	return strings.Join(parts, "|")
}

// Equal reports label-set equality.
func (s *Itemset[L]) Equal(other *Itemset[L]) bool {
	return s.Key() == other.Key()
}

// StructuralMotif builds the structural representation of a concrete
// occurrence from the union of its items' elements. Returns nil if no item
// carries structural backing.
func (s *Itemset[L]) StructuralMotif() *StructuralMotif {
	var elements []*StructuralElement
	for _, item := range s.Items {
		if item.Element != nil {
			elements = append(elements, item.Element)
		}
	}
	if len(elements) == 0 {
		return nil
	}
	return NewStructuralMotif(elements)
}

func (s *Itemset[L]) String() string {
	parts := make([]string, len(s.Items))
	for i, item := range s.Items {
		parts[i] = fmt.Sprint(item.Label)
	}
	label := "{" + strings.Join(parts, ",") + "}"
	if s.Origin != nil {
		return label + "@" + s.Origin.String()
	}
	return label
}
