package library

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/motifminer/motifminer/errors"
	"github.com/motifminer/motifminer/model"
)

func structuredOccurrence(t *testing.T, structureID string, labels ...string) *model.Itemset[string] {
	t.Helper()
	id, err := model.NewDataPointIdentifier(structureID, "A")
	require.NoError(t, err)
	items := make([]*model.Item[string], len(labels))
	for i, label := range labels {
		items[i] = model.NewStructuralItem(label, &model.StructuralElement{
			Family: label,
			Chain:  "A",
			Serial: i + 1,
			Atoms:  []model.Atom{{Name: "CA", Position: r3.Vec{X: float64(i), Y: 1.5}}},
		})
	}
	return model.NewOccurrence(items, id)
}

func TestFromOccurrences(t *testing.T) {
	occurrences := []*model.Itemset[string]{
		structuredOccurrence(t, "1aaa", "His", "Ser"),
		structuredOccurrence(t, "2bbb", "Asp"),
	}
	lib, err := FromOccurrences(occurrences, 2)
	require.NoError(t, err)
	require.Len(t, lib.Entries, 1, "singleton filtered by minimal size")

	entry := lib.Entries[0]
	assert.Equal(t, []string{"His", "Ser"}, entry.Labels)
	assert.Contains(t, entry.Identifier, "His-Ser")
	assert.Contains(t, entry.Representation, "ATOM")
}

func TestFromOccurrencesRequiresStructuralBacking(t *testing.T) {
	bare := model.NewItemset([]*model.Item[string]{
		model.NewItem("His"), model.NewItem("Ser"),
	})
	_, err := FromOccurrences([]*model.Itemset[string]{bare}, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNoStructuralMotif))
}

func TestFromClusters(t *testing.T) {
	large := structuredOccurrence(t, "1aaa", "His", "Ser")
	small := structuredOccurrence(t, "2bbb", "Asp", "Glu")

	clustered := map[*model.Itemset[string]]ClusterResult{
		large: {
			Clusters: []ConsensusCluster{
				{Size: 8, Consensus: large.StructuralMotif()},
				{Size: 2, Consensus: small.StructuralMotif()},
			},
			TotalObservations: 10,
		},
		small: {
			// Largest cluster covers only 30% of the observations.
			Clusters:          []ConsensusCluster{{Size: 3, Consensus: small.StructuralMotif()}},
			TotalObservations: 10,
		},
	}
	lib, err := FromClusters(clustered, 2, 0.5)
	require.NoError(t, err)
	require.Len(t, lib.Entries, 1)
	assert.Equal(t, []string{"His", "Ser"}, lib.Entries[0].Labels)
}

func TestRoundTrip(t *testing.T) {
	occurrences := []*model.Itemset[string]{
		structuredOccurrence(t, "1aaa", "His", "Ser"),
		structuredOccurrence(t, "2bbb", "Asp", "Glu", "Lys"),
	}
	original, err := FromOccurrences(occurrences, 1)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "library.json.gz")
	require.NoError(t, original.WriteToPath(path))

	loaded, err := ReadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, original.Entries, loaded.Entries)
}

func TestReadFromPathMissingFile(t *testing.T) {
	_, err := ReadFromPath(filepath.Join(t.TempDir(), "absent.json.gz"))
	assert.Error(t, err)
}
