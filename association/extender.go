package association

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/motifminer/motifminer/geometry"
	"github.com/motifminer/motifminer/logger"
	"github.com/motifminer/motifminer/miner"
	"github.com/motifminer/motifminer/model"
)

// ExtenderOptions configures subgraph merging.
type ExtenderOptions struct {
	// ReferenceFamily, when non-empty, selects the structural family merged
	// motifs are rigidly aligned on. Motifs without an element of that
	// family are left unaligned.
	ReferenceFamily string
}

// MergedMotif is the consensus motif of one data point within one
// component.
type MergedMotif struct {
	DataPoint model.DataPointIdentifier
	Motif     *model.StructuralMotif
	// Aligned reports whether the motif was superimposed onto the
	// component's alignment reference.
	Aligned bool
}

// MergedComponent is the merge result of one connected component of the
// relation graph: one consensus motif per contributing data point, grouped
// under a deterministic key derived from the component's label set.
type MergedComponent[L cmp.Ordered] struct {
	// Key is the sorted, deduplicated, hyphen-joined set of item labels
	// present in the component.
	Key      string
	Itemsets []*model.Itemset[L]
	Motifs   []MergedMotif
}

// Extender partitions the itemset relation graph into connected components
// and consolidates the structural occurrences of each component into
// per-data-point consensus motifs. Merged motifs are owned by the caller;
// the miner's occurrences are never mutated.
type Extender[L cmp.Ordered] struct {
	miner   *miner.Miner[L]
	graph   *Graph[L]
	options ExtenderOptions
}

// NewExtender creates an extender over the mined occurrences and the
// relation graph.
func NewExtender[L cmp.Ordered](m *miner.Miner[L], graph *Graph[L], options ExtenderOptions) *Extender[L] {
	return &Extender[L]{miner: m, graph: graph, options: options}
}

// Merge processes every connected component of the relation graph.
func (e *Extender[L]) Merge() []MergedComponent[L] {
	components := e.graph.ConnectedComponents()
	logger.Logger.Infow("found disconnected subgraphs", "subgraphs", len(components))

	merged := make([]MergedComponent[L], 0, len(components))
	for _, component := range components {
		itemsets := make([]*model.Itemset[L], len(component))
		for i, node := range component {
			itemsets[i] = node.Itemset
		}
		result := MergedComponent[L]{
			Key:      componentKey(itemsets),
			Itemsets: itemsets,
			Motifs:   e.mergeItemsets(itemsets),
		}
		if e.options.ReferenceFamily != "" {
			e.align(&result)
		}
		merged = append(merged, result)
	}
	return merged
}

// mergeItemsets groups the occurrences of all member itemsets by origin data
// point and unions their structural elements into one motif per data point,
// ordered by data point identifier.
func (e *Extender[L]) mergeItemsets(itemsets []*model.Itemset[L]) []MergedMotif {
	elementsByDataPoint := make(map[model.DataPointIdentifier][]*model.StructuralElement)
	for _, itemset := range itemsets {
		for _, occurrence := range e.miner.ExtractedItemsets()[itemset.Key()] {
			if occurrence.Origin == nil {
				continue
			}
			motif := occurrence.StructuralMotif()
			if motif == nil {
				continue
			}
			elementsByDataPoint[*occurrence.Origin] = append(
				elementsByDataPoint[*occurrence.Origin], motif.Elements...)
		}
	}

	identifiers := make([]model.DataPointIdentifier, 0, len(elementsByDataPoint))
	for identifier := range elementsByDataPoint {
		identifiers = append(identifiers, identifier)
	}
	slices.SortFunc(identifiers, func(a, b model.DataPointIdentifier) int { return a.Compare(b) })

	motifs := make([]MergedMotif, 0, len(identifiers))
	for _, identifier := range identifiers {
		motifs = append(motifs, MergedMotif{
			DataPoint: identifier,
			// NewStructuralMotif sorts canonically and deduplicates.
			Motif: model.NewStructuralMotif(elementsByDataPoint[identifier]),
		})
	}
	return motifs
}

// align superimposes every motif of the component onto the reference family
// element of the motif with the lowest data point identifier containing one.
// Motifs lacking a reference occurrence stay unaligned.
func (e *Extender[L]) align(component *MergedComponent[L]) {
	family := e.options.ReferenceFamily

	var reference *model.StructuralElement
	for _, motif := range component.Motifs {
		if element := motif.Motif.FirstWithFamily(family); element != nil {
			reference = element
			break
		}
	}
	if reference == nil {
		logger.Logger.Warnw("no reference family found in any structure of subgraph",
			"subgraph", component.Key,
			"family", family)
		return
	}

	logger.Logger.Infow("aligning merged motifs on common reference",
		"subgraph", component.Key,
		"family", family)
	for i := range component.Motifs {
		motif := &component.Motifs[i]
		candidate := motif.Motif.FirstWithFamily(family)
		if candidate == nil {
			logger.Logger.Warnw("no reference family element to align on, leaving motif unaligned",
				"data_point", motif.DataPoint.String(),
				"family", family)
			continue
		}
		referencePositions, candidatePositions := matchedAtomPositions(reference, candidate)
		transform, err := geometry.Superimpose(referencePositions, candidatePositions)
		if err != nil {
			logger.Logger.Warnw("superimposition failed, leaving motif unaligned",
				"data_point", motif.DataPoint.String(),
				"error", err)
			continue
		}
		motif.Motif = transform.ApplyToMotif(motif.Motif)
		motif.Aligned = true
	}
}

// matchedAtomPositions pairs the atoms of two elements by atom name, in
// reference atom order.
func matchedAtomPositions(reference, candidate *model.StructuralElement) ([]r3.Vec, []r3.Vec) {
	candidateByName := make(map[string]r3.Vec, len(candidate.Atoms))
	for _, atom := range candidate.Atoms {
		if _, ok := candidateByName[atom.Name]; !ok {
			candidateByName[atom.Name] = atom.Position
		}
	}
	var referencePositions, candidatePositions []r3.Vec
	for _, atom := range reference.Atoms {
		if position, ok := candidateByName[atom.Name]; ok {
			referencePositions = append(referencePositions, atom.Position)
			candidatePositions = append(candidatePositions, position)
		}
	}
	return referencePositions, candidatePositions
}

// componentKey derives the deterministic output key of a component: the
// sorted, deduplicated labels of all member itemsets joined by hyphens.
func componentKey[L cmp.Ordered](itemsets []*model.Itemset[L]) string {
	seen := make(map[string]bool)
	var labels []string
	for _, itemset := range itemsets {
		for _, label := range itemset.Labels() {
			text := fmt.Sprint(label)
			if !seen[text] {
				seen[text] = true
				labels = append(labels, text)
			}
		}
	}
	slices.Sort(labels)
	return strings.Join(labels, "-")
}
