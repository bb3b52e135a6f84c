// Package library builds and persists collections of validated itemsets with
// their structural representations, either from externally clustered
// consensus observations or directly from raw occurrences.
package library

import (
	"cmp"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/motifminer/motifminer/errors"
	"github.com/motifminer/motifminer/logger"
	"github.com/motifminer/motifminer/model"
)

// Entry is one immutable library member: an itemset's label set and the
// structural representation backing it.
type Entry struct {
	Labels         []string `json:"labels"`
	Identifier     string   `json:"identifier"`
	Representation string   `json:"representation"`
}

// Library is a write-once, read-many collection of entries.
type Library struct {
	Entries []Entry `json:"entries"`
}

// ConsensusCluster is one cluster of structural observations together with
// its consensus motif, produced by an external consensus-clustering stage.
type ConsensusCluster struct {
	Size      int
	Consensus *model.StructuralMotif
}

// ClusterResult summarizes the clustering of one itemset's observations.
type ClusterResult struct {
	Clusters          []ConsensusCluster
	TotalObservations int
}

// FromClusters builds a library from clustered itemset observations. The
// largest cluster of each itemset represents it; itemsets below the minimal
// size or whose largest cluster covers less than minimalClusterRatio of all
// observations are skipped.
func FromClusters[L cmp.Ordered](clustered map[*model.Itemset[L]]ClusterResult, minimalItemsetSize int, minimalClusterRatio float64) (*Library, error) {
	logger.Logger.Infow("creating library from clustered itemsets", "itemsets", len(clustered))

	ordered := make([]*model.Itemset[L], 0, len(clustered))
	for itemset := range clustered {
		ordered = append(ordered, itemset)
	}
	slices.SortFunc(ordered, func(a, b *model.Itemset[L]) int {
		return strings.Compare(a.Key(), b.Key())
	})

	library := &Library{}
	for _, itemset := range ordered {
		if itemset.Size() < minimalItemsetSize {
			continue
		}
		result := clustered[itemset]
		largest, ok := largestCluster(result)
		if !ok {
			continue
		}
		if result.TotalObservations == 0 ||
			float64(largest.Size)/float64(result.TotalObservations) < minimalClusterRatio {
			logger.Logger.Infow("itemset not added to the library, largest cluster not sufficient",
				"itemset", itemset.Key(),
				"cluster_size", largest.Size)
			continue
		}
		if largest.Consensus == nil {
			return nil, errors.Wrapf(errors.ErrNoStructuralMotif, "cluster consensus of itemset %s", itemset.Key())
		}
		logger.Logger.Infow("itemset added to the library",
			"itemset", itemset.Key(),
			"cluster_size", largest.Size)
		library.Entries = append(library.Entries, newEntry(itemset, largest.Consensus))
	}
	return library, nil
}

// FromOccurrences builds a library directly from concrete occurrences,
// skipping itemsets below the minimal size. Occurrences without structural
// backing are a fatal precondition error.
func FromOccurrences[L cmp.Ordered](occurrences []*model.Itemset[L], minimalItemsetSize int) (*Library, error) {
	library := &Library{}
	for _, occurrence := range occurrences {
		if occurrence.Size() < minimalItemsetSize {
			continue
		}
		motif := occurrence.StructuralMotif()
		if motif == nil {
			return nil, errors.Wrapf(errors.ErrNoStructuralMotif,
				"libraries can only be built from structural observations, %s has none", occurrence.Key())
		}
		library.Entries = append(library.Entries, newEntry(occurrence, motif))
	}
	return library, nil
}

func newEntry[L cmp.Ordered](itemset *model.Itemset[L], motif *model.StructuralMotif) Entry {
	labels := make([]string, 0, itemset.Size())
	for _, label := range itemset.Labels() {
		labels = append(labels, fmt.Sprint(label))
	}
	identifier := strings.Join(labels, "-")
	if itemset.Origin != nil {
		identifier += "_" + itemset.Origin.String()
	}
	return Entry{
		Labels:         labels,
		Identifier:     identifier,
		Representation: motif.Records(),
	}
}

func largestCluster(result ClusterResult) (ConsensusCluster, bool) {
	if len(result.Clusters) == 0 {
		return ConsensusCluster{}, false
	}
	largest := result.Clusters[0]
	for _, cluster := range result.Clusters[1:] {
		if cluster.Size > largest.Size {
			largest = cluster
		}
	}
	return largest, true
}

// WriteToPath persists the library as gzip-compressed JSON.
func (l *Library) WriteToPath(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating library file %s", path)
	}
	zip := gzip.NewWriter(file)
	encoder := json.NewEncoder(zip)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(l); err != nil {
		file.Close()
		return errors.Wrap(err, "encoding library")
	}
	if err := zip.Close(); err != nil {
		file.Close()
		return errors.Wrap(err, "flushing library")
	}
	return file.Close()
}

// ReadFromPath loads a library written by WriteToPath.
func ReadFromPath(path string) (*Library, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening library file %s", path)
	}
	defer file.Close()

	zip, err := gzip.NewReader(file)
	if err != nil {
		return nil, errors.Wrap(err, "reading library header")
	}
	defer zip.Close()

	var library Library
	if err := json.NewDecoder(zip).Decode(&library); err != nil {
		return nil, errors.Wrap(err, "decoding library")
	}
	return &library, nil
}
