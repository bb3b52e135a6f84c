package association

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/motifminer/motifminer/errors"
	"github.com/motifminer/motifminer/miner"
	"github.com/motifminer/motifminer/model"
)

func itemsetOf(labels ...string) *model.Itemset[string] {
	items := make([]*model.Item[string], len(labels))
	for i, label := range labels {
		items[i] = model.NewItem(label)
	}
	return model.NewItemset(items)
}

func distributionOf(values ...float64) *model.Distribution {
	distribution := model.NewDistribution()
	for _, value := range values {
		distribution.Add(value)
	}
	return distribution
}

func TestMutualInformationSymmetry(t *testing.T) {
	x := []float64{0.1, 0.4, 0.35, 0.8, 0.95, 0.2, 0.55, 0.7}
	y := []float64{1.2, 3.4, 3.1, 7.9, 9.0, 2.2, 5.0, 6.8}

	assert.InDelta(t, MutualInformation(x, y), MutualInformation(y, x), 1e-12)
}

func TestMutualInformationDependentVsConstant(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	y := []float64{2, 4, 6, 8, 10, 12, 14, 16}
	dependent := MutualInformation(x, y)
	assert.Greater(t, dependent, 0.0)

	constant := []float64{3, 3, 3, 3, 3, 3, 3, 3}
	assert.Equal(t, 0.0, MutualInformation(x, constant))
}

func TestGraphNodeReuseByEquality(t *testing.T) {
	graph := NewGraph[string]()
	// Equal label sets discovered via different pairs must share one node.
	first := graph.EnsureNode(itemsetOf("A", "B"))
	second := graph.EnsureNode(itemsetOf("B", "A"))
	assert.Same(t, first, second)
	assert.Len(t, graph.Nodes(), 1)
}

func TestGraphConnectedComponentsScenario(t *testing.T) {
	graph := NewGraph[string]()
	a := graph.EnsureNode(itemsetOf("A", "B"))
	b := graph.EnsureNode(itemsetOf("B", "C"))
	graph.EnsureNode(itemsetOf("D", "E")) // isolated
	graph.AddEdge(a, b)
	graph.AddEdge(a, b) // duplicate edges collapse

	assert.Equal(t, 1, graph.EdgeCount())
	components := graph.ConnectedComponents()
	require.Len(t, components, 2)
	assert.Len(t, components[0], 2)
	assert.Len(t, components[1], 1)
}

func TestAnalyzeRequiresDistributions(t *testing.T) {
	m := miner.New[string](nil, miner.Options[string]{MinimalSupport: 1, MinimalItemsetSize: 1})
	analyzer := NewMutualInformationAnalyzer(m, nil, 1.0)
	_, _, err := analyzer.Analyze()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNoDistribution))
}

// minedStructuredCorpus mines a corpus where labels A, B and C co-occur in
// two data points.
func minedStructuredCorpus(t *testing.T) *miner.Miner[string] {
	t.Helper()
	corpus := make([]*model.DataPoint[string], 0, 2)
	for i, structureID := range []string{"1aaa", "2bbb"} {
		id, err := model.NewDataPointIdentifier(structureID, "A")
		require.NoError(t, err)
		items := make([]*model.Item[string], 0, 3)
		for j, label := range []string{"A", "B", "C"} {
			items = append(items, model.NewStructuralItem(label, &model.StructuralElement{
				Family: label,
				Chain:  "A",
				Serial: j + 1,
				Atoms: []model.Atom{
					{Name: "N", Position: r3.Vec{X: float64(j), Y: float64(i)}},
					{Name: "CA", Position: r3.Vec{X: float64(j) + 0.5, Y: float64(i), Z: 1}},
					{Name: "C", Position: r3.Vec{X: float64(j) + 1, Y: float64(i), Z: 0.5}},
				},
			}))
		}
		corpus = append(corpus, model.NewDataPoint(id, items))
	}
	m := miner.New(corpus, miner.Options[string]{MinimalSupport: 2, MinimalItemsetSize: 1})
	require.NoError(t, m.Mine())
	return m
}

func TestMergeCompleteness(t *testing.T) {
	m := minedStructuredCorpus(t)

	graph := NewGraph[string]()
	ab, ok := m.ItemsetByKey("A|B")
	require.True(t, ok)
	bc, ok := m.ItemsetByKey("B|C")
	require.True(t, ok)
	graph.AddEdge(graph.EnsureNode(ab), graph.EnsureNode(bc))

	extender := NewExtender(m, graph, ExtenderOptions{})
	merged := extender.Merge()
	require.Len(t, merged, 1)

	component := merged[0]
	assert.Equal(t, "A-B-C", component.Key)
	require.Len(t, component.Motifs, 2)
	for _, motif := range component.Motifs {
		// Union of the occurrences' elements: A, B and C exactly once.
		require.Equal(t, 3, motif.Motif.Size())
		seen := map[string]int{}
		for _, element := range motif.Motif.Elements {
			seen[element.Family]++
		}
		assert.Equal(t, map[string]int{"A": 1, "B": 1, "C": 1}, seen)
		assert.False(t, motif.Aligned)
	}
}

func TestMergeAlignsOnReferenceFamily(t *testing.T) {
	m := minedStructuredCorpus(t)

	graph := NewGraph[string]()
	ab, ok := m.ItemsetByKey("A|B")
	require.True(t, ok)
	bc, ok := m.ItemsetByKey("B|C")
	require.True(t, ok)
	graph.AddEdge(graph.EnsureNode(ab), graph.EnsureNode(bc))

	extender := NewExtender(m, graph, ExtenderOptions{ReferenceFamily: "B"})
	merged := extender.Merge()
	require.Len(t, merged, 1)

	for _, motif := range merged[0].Motifs {
		assert.True(t, motif.Aligned, "every motif contains family B")
	}

	// After alignment the reference elements coincide.
	first := merged[0].Motifs[0].Motif.FirstWithFamily("B")
	second := merged[0].Motifs[1].Motif.FirstWithFamily("B")
	require.NotNil(t, first)
	require.NotNil(t, second)
	for i := range first.Atoms {
		assert.InDelta(t, first.Atoms[i].Position.X, second.Atoms[i].Position.X, 1e-9)
		assert.InDelta(t, first.Atoms[i].Position.Y, second.Atoms[i].Position.Y, 1e-9)
		assert.InDelta(t, first.Atoms[i].Position.Z, second.Atoms[i].Position.Z, 1e-9)
	}
}

func TestMergeLeavesMotifWithoutReferenceUnaligned(t *testing.T) {
	m := minedStructuredCorpus(t)

	graph := NewGraph[string]()
	ab, ok := m.ItemsetByKey("A|B")
	require.True(t, ok)
	graph.EnsureNode(ab)

	extender := NewExtender(m, graph, ExtenderOptions{ReferenceFamily: "Zn"})
	merged := extender.Merge()
	require.Len(t, merged, 1)
	for _, motif := range merged[0].Motifs {
		assert.False(t, motif.Aligned, "missing reference family is a warning, not an error")
	}
}
