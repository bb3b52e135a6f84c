package association

import (
	"cmp"
	"slices"

	"github.com/motifminer/motifminer/model"
)

// Node wraps an itemset in the relation graph. Nodes live in an arena and
// are addressed by their stable index; identity is structural, derived from
// the wrapped itemset's label set.
type Node[L cmp.Ordered] struct {
	Index   int
	Itemset *model.Itemset[L]
}

// Graph is the undirected itemset relation graph. Nodes and edges are held
// in arena-style slices; a side index maps label-set keys to node indices so
// that node reuse is by itemset equality, never by pointer identity.
type Graph[L cmp.Ordered] struct {
	nodes     []*Node[L]
	adjacency [][]int
	edges     [][2]int
	index     map[string]int
}

// NewGraph creates an empty relation graph.
func NewGraph[L cmp.Ordered]() *Graph[L] {
	return &Graph[L]{index: make(map[string]int)}
}

// EnsureNode returns the node wrapping an itemset with the same label set,
// creating it if absent.
func (g *Graph[L]) EnsureNode(itemset *model.Itemset[L]) *Node[L] {
	key := itemset.Key()
	if existing, ok := g.index[key]; ok {
		return g.nodes[existing]
	}
	node := &Node[L]{Index: len(g.nodes), Itemset: itemset}
	g.nodes = append(g.nodes, node)
	g.adjacency = append(g.adjacency, nil)
	g.index[key] = node.Index
	return node
}

// AddEdge connects two nodes. Self-loops and duplicate edges are ignored.
func (g *Graph[L]) AddEdge(a, b *Node[L]) {
	if a.Index == b.Index {
		return
	}
	for _, neighbor := range g.adjacency[a.Index] {
		if neighbor == b.Index {
			return
		}
	}
	g.adjacency[a.Index] = append(g.adjacency[a.Index], b.Index)
	g.adjacency[b.Index] = append(g.adjacency[b.Index], a.Index)
	g.edges = append(g.edges, [2]int{a.Index, b.Index})
}

// Nodes returns the node arena in insertion order.
func (g *Graph[L]) Nodes() []*Node[L] {
	return g.nodes
}

// EdgeCount returns the number of undirected edges.
func (g *Graph[L]) EdgeCount() int {
	return len(g.edges)
}

// ContainsItemset reports whether a node with the itemset's label set
// exists.
func (g *Graph[L]) ContainsItemset(itemset *model.Itemset[L]) bool {
	_, ok := g.index[itemset.Key()]
	return ok
}

// ConnectedComponents partitions the graph into its disconnected subgraphs.
// Components are ordered by their smallest node index, and nodes within a
// component by node index, so the output is deterministic.
func (g *Graph[L]) ConnectedComponents() [][]*Node[L] {
	visited := make([]bool, len(g.nodes))
	var components [][]*Node[L]
	for start := range g.nodes {
		if visited[start] {
			continue
		}
		var component []*Node[L]
		queue := []int{start}
		visited[start] = true
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			component = append(component, g.nodes[current])
			for _, neighbor := range g.adjacency[current] {
				if !visited[neighbor] {
					visited[neighbor] = true
					queue = append(queue, neighbor)
				}
			}
		}
		slices.SortFunc(component, func(a, b *Node[L]) int { return a.Index - b.Index })
		components = append(components, component)
	}
	return components
}
