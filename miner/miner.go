// Package miner implements the level-wise itemset mining engine. Starting
// from singleton label sets it repeatedly extends surviving itemsets by one
// co-occurring label, counts concrete occurrences across the corpus, and
// prunes candidates below the minimal support. Pruning correctness relies on
// support being anti-monotone in itemset cardinality.
package miner

import (
	"cmp"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/motifminer/motifminer/errors"
	"github.com/motifminer/motifminer/logger"
	"github.com/motifminer/motifminer/model"
)

// Adjacency decides whether two items of the same data point co-occur. It is
// the caller-supplied proximity notion driving candidate extension and
// occurrence extraction.
type Adjacency[L cmp.Ordered] func(a, b *model.Item[L]) bool

// Options configures a mining run.
type Options[L cmp.Ordered] struct {
	// MinimalSupport is the minimum number of data points an itemset must
	// occur in to survive a level.
	MinimalSupport int
	// MinimalItemsetSize filters the reported itemsets; smaller itemsets are
	// still mined internally since larger ones are built from them.
	MinimalItemsetSize int
	// Adjacency is the co-occurrence notion. Nil means every item pair of a
	// data point co-occurs.
	Adjacency Adjacency[L]
}

// Miner owns the frequent-itemset set and the per-itemset occurrence lists
// for the lifetime of a mining run.
type Miner[L cmp.Ordered] struct {
	corpus  []*model.DataPoint[L]
	options Options[L]

	totalItemsets     []*model.Itemset[L]
	extractedItemsets map[string][]*model.Itemset[L]
	mined             bool
}

// New creates a miner over the corpus. The corpus is reordered by data point
// identifier so that mining output is reproducible regardless of input order.
func New[L cmp.Ordered](corpus []*model.DataPoint[L], options Options[L]) *Miner[L] {
	sorted := slices.Clone(corpus)
	slices.SortStableFunc(sorted, func(a, b *model.DataPoint[L]) int {
		return a.Identifier.Compare(b.Identifier)
	})
	if options.Adjacency == nil {
		options.Adjacency = func(a, b *model.Item[L]) bool { return true }
	}
	return &Miner[L]{
		corpus:            sorted,
		options:           options,
		extractedItemsets: make(map[string][]*model.Itemset[L]),
	}
}

// Mined reports whether Mine has completed successfully.
func (m *Miner[L]) Mined() bool {
	return m.mined
}

// Corpus returns the identifier-ordered corpus the miner operates on.
func (m *Miner[L]) Corpus() []*model.DataPoint[L] {
	return m.corpus
}

// TotalItemsets returns all frequent itemsets of at least the minimal size,
// ordered by descending support, ties broken by label-set key.
func (m *Miner[L]) TotalItemsets() []*model.Itemset[L] {
	return m.totalItemsets
}

// ExtractedItemsets maps each frequent itemset key to its ordered concrete
// occurrences.
func (m *Miner[L]) ExtractedItemsets() map[string][]*model.Itemset[L] {
	return m.extractedItemsets
}

// ItemsetByKey returns the frequent itemset with the given label-set key.
func (m *Miner[L]) ItemsetByKey(key string) (*model.Itemset[L], bool) {
	for _, itemset := range m.totalItemsets {
		if itemset.Key() == key {
			return itemset, true
		}
	}
	return nil, false
}

// Mine runs the level-wise enumeration. It fails hard on a malformed corpus
// (duplicate data point identifiers or element index collisions), since
// occurrence identity underlies all downstream statistics.
func (m *Miner[L]) Mine() error {
	if err := m.validateCorpus(); err != nil {
		return err
	}

	frequent := m.mineSingletons()
	frequentKeys := make(map[string]bool, len(frequent))
	all := slices.Clone(frequent)
	for _, itemset := range frequent {
		frequentKeys[itemset.Key()] = true
	}

	level := 1
	for len(frequent) > 0 {
		logger.Logger.Infow("mined level", "level", level,
			"frequent_itemsets", len(frequent))
		candidates := m.generateCandidates(frequent, frequentKeys)
		var next []*model.Itemset[L]
		for _, candidate := range candidates {
			occurrences, support := m.extract(candidate.Labels())
			if support < m.options.MinimalSupport {
				continue
			}
			candidate.Support = support
			m.extractedItemsets[candidate.Key()] = occurrences
			next = append(next, candidate)
			frequentKeys[candidate.Key()] = true
		}
		all = append(all, next...)
		frequent = next
		level++
	}

	m.totalItemsets = m.filterAndRank(all)
	m.mined = true
	logger.Logger.Infow("mining finished",
		"total_itemsets", len(m.totalItemsets),
		"levels", level)
	return nil
}

// validateCorpus rejects corpora whose occurrence identity would be
// ambiguous.
func (m *Miner[L]) validateCorpus() error {
	seenIdentifiers := make(map[string]bool, len(m.corpus))
	for _, dataPoint := range m.corpus {
		id := dataPoint.Identifier.String()
		if seenIdentifiers[id] {
			return errors.Wrapf(errors.ErrCorpusMalformed, "duplicate data point identifier %s", id)
		}
		seenIdentifiers[id] = true

		seenElements := make(map[string]*model.StructuralElement)
		for _, item := range dataPoint.Items {
			if item.Element == nil {
				continue
			}
			key := item.Element.Key()
			if previous, ok := seenElements[key]; ok && previous != item.Element {
				return errors.Wrapf(errors.ErrCorpusMalformed,
					"data point %s: distinct elements collide on index %s", id, key)
			}
			seenElements[key] = item.Element
		}
	}
	return nil
}

// mineSingletons builds the first level from distinct item labels.
func (m *Miner[L]) mineSingletons() []*model.Itemset[L] {
	labelSet := make(map[L]bool)
	for _, dataPoint := range m.corpus {
		for _, item := range dataPoint.Items {
			labelSet[item.Label] = true
		}
	}
	labels := make([]L, 0, len(labelSet))
	for label := range labelSet {
		labels = append(labels, label)
	}
	slices.Sort(labels)

	var frequent []*model.Itemset[L]
	for _, label := range labels {
		itemset := model.NewItemset([]*model.Item[L]{model.NewItem(label)})
		occurrences, support := m.extract([]L{label})
		if support < m.options.MinimalSupport {
			continue
		}
		itemset.Support = support
		m.extractedItemsets[itemset.Key()] = occurrences
		frequent = append(frequent, itemset)
	}
	return frequent
}

// generateCandidates extends every surviving itemset by one label drawn from
// items adjacent to an existing occurrence. Candidates with an infrequent
// subset are pruned up front (anti-monotonicity).
func (m *Miner[L]) generateCandidates(frequent []*model.Itemset[L], frequentKeys map[string]bool) []*model.Itemset[L] {
	candidateLabels := make(map[string][]L)
	for _, itemset := range frequent {
		memberLabels := make(map[L]bool, itemset.Size())
		for _, label := range itemset.Labels() {
			memberLabels[label] = true
		}
		for _, occurrence := range m.extractedItemsets[itemset.Key()] {
			dataPoint := m.dataPoint(*occurrence.Origin)
			for _, item := range dataPoint.Items {
				if memberLabels[item.Label] || !m.adjacentToAll(item, occurrence.Items) {
					continue
				}
				extended := model.NewItemset(append(
					slices.Clone(itemset.Items), model.NewItem(item.Label)))
				candidateLabels[extended.Key()] = extended.Labels()
			}
		}
	}

	keys := make([]string, 0, len(candidateLabels))
	for key := range candidateLabels {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var candidates []*model.Itemset[L]
	for _, key := range keys {
		labels := candidateLabels[key]
		if !m.allSubsetsFrequent(labels, frequentKeys) {
			continue
		}
		items := make([]*model.Item[L], len(labels))
		for i, label := range labels {
			items[i] = model.NewItem(label)
		}
		candidates = append(candidates, model.NewItemset(items))
	}
	return candidates
}

// allSubsetsFrequent checks every (k-1)-subset of the candidate against the
// frequent key set.
func (m *Miner[L]) allSubsetsFrequent(labels []L, frequentKeys map[string]bool) bool {
	if len(labels) <= 2 {
		return true
	}
	for skip := range labels {
		subset := make([]*model.Item[L], 0, len(labels)-1)
		for i, label := range labels {
			if i == skip {
				continue
			}
			subset = append(subset, model.NewItem(label))
		}
		if !frequentKeys[model.NewItemset(subset).Key()] {
			return false
		}
	}
	return true
}

// extract finds every concrete occurrence of the label set across the
// corpus. Occurrences referring to the same physical location are reported
// once. The returned support counts the data points with at least one
// occurrence.
func (m *Miner[L]) extract(labels []L) ([]*model.Itemset[L], int) {
	sortedLabels := slices.Clone(labels)
	slices.Sort(sortedLabels)

	var occurrences []*model.Itemset[L]
	support := 0
	for _, dataPoint := range m.corpus {
		found := m.extractFromDataPoint(dataPoint, sortedLabels)
		if len(found) > 0 {
			support++
			occurrences = append(occurrences, found...)
		}
	}
	return occurrences, support
}

// extractFromDataPoint enumerates item combinations matching the labels with
// pairwise adjacency, deduplicated by physical location.
func (m *Miner[L]) extractFromDataPoint(dataPoint *model.DataPoint[L], labels []L) []*model.Itemset[L] {
	var occurrences []*model.Itemset[L]
	seenLocations := make(map[string]bool)

	itemIndex := make(map[*model.Item[L]]int, len(dataPoint.Items))
	for i, item := range dataPoint.Items {
		itemIndex[item] = i
	}

	chosen := make([]*model.Item[L], 0, len(labels))
	var assign func(depth int)
	assign = func(depth int) {
		if depth == len(labels) {
			location := locationKey(chosen, itemIndex)
			if seenLocations[location] {
				return
			}
			seenLocations[location] = true
			occurrences = append(occurrences,
				model.NewOccurrence(slices.Clone(chosen), dataPoint.Identifier))
			return
		}
		for _, item := range dataPoint.ItemsWithLabel(labels[depth]) {
			if slices.Contains(chosen, item) || !m.adjacentToAll(item, chosen) {
				continue
			}
			chosen = append(chosen, item)
			assign(depth + 1)
			chosen = chosen[:len(chosen)-1]
		}
	}
	assign(0)
	return occurrences
}

// locationKey identifies the physical location of a chosen item combination:
// the sorted element indices when structural backing exists, item positions
// otherwise.
func locationKey[L cmp.Ordered](chosen []*model.Item[L], itemIndex map[*model.Item[L]]int) string {
	parts := make([]string, len(chosen))
	for i, item := range chosen {
		if item.Element != nil {
			parts[i] = item.Element.Key()
		} else {
			parts[i] = "#" + strconv.Itoa(itemIndex[item])
		}
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

func (m *Miner[L]) adjacentToAll(item *model.Item[L], others []*model.Item[L]) bool {
	for _, other := range others {
		if !m.options.Adjacency(item, other) {
			return false
		}
	}
	return true
}

func (m *Miner[L]) dataPoint(identifier model.DataPointIdentifier) *model.DataPoint[L] {
	index, _ := slices.BinarySearchFunc(m.corpus, identifier,
		func(dataPoint *model.DataPoint[L], id model.DataPointIdentifier) int {
			return dataPoint.Identifier.Compare(id)
		})
	return m.corpus[index]
}

// filterAndRank applies the minimal size filter and the deterministic
// ranking: descending support, ties by label-set key.
func (m *Miner[L]) filterAndRank(itemsets []*model.Itemset[L]) []*model.Itemset[L] {
	filtered := make([]*model.Itemset[L], 0, len(itemsets))
	for _, itemset := range itemsets {
		if itemset.Size() < m.options.MinimalItemsetSize {
			delete(m.extractedItemsets, itemset.Key())
			continue
		}
		filtered = append(filtered, itemset)
	}
	slices.SortStableFunc(filtered, func(a, b *model.Itemset[L]) int {
		if a.Support != b.Support {
			return b.Support - a.Support
		}
		return strings.Compare(a.Key(), b.Key())
	})
	return filtered
}
