package motionplan

import (
	"github.com/pkg/errors"

	"go.mechlab.dev/armplan/referenceframe"
)

// noParent is the parent index of the root vertex and of a vertex that has not
// yet been connected to the tree.
const noParent = -1

// configurationTree is the planner's spanning tree over joint configurations.
// Vertices, parent indices and cumulative root costs are stored in parallel
// slices indexed by insertion order; the root is always index 0. Vertices are
// only ever appended, never removed; rewiring mutates parents and costs in
// place, by vertex index rather than by edge position.
type configurationTree struct {
	vertices [][]referenceframe.Input
	parents  []int
	costs    []float64
}

func newConfigurationTree() *configurationTree {
	return &configurationTree{}
}

// addVertex appends a configuration and returns its index. The vertex has no
// parent and zero cost until addEdge assigns them.
func (t *configurationTree) addVertex(q []referenceframe.Input) int {
	t.vertices = append(t.vertices, q)
	t.parents = append(t.parents, noParent)
	t.costs = append(t.costs, 0)
	return len(t.vertices) - 1
}

// addEdge connects the newest unparented vertex to an existing parent.
func (t *configurationTree) addEdge(parent, child int) error {
	if child != len(t.vertices)-1 || child == 0 {
		return errors.Errorf("edge child must be the newest vertex, got %d of %d", child, len(t.vertices))
	}
	if t.parents[child] != noParent {
		return errors.Errorf("vertex %d already has a parent", child)
	}
	if parent < 0 || parent >= child {
		return errors.Errorf("edge parent %d must be an existing vertex other than the child", parent)
	}
	t.parents[child] = parent
	return nil
}

// setParent overwrites the parent link of an existing, previously-parented
// vertex. The root can never be reparented.
func (t *configurationTree) setParent(vertex, parent int) error {
	if vertex <= 0 || vertex >= len(t.vertices) {
		return errors.Errorf("cannot reparent vertex %d", vertex)
	}
	if t.parents[vertex] == noParent {
		return errors.Errorf("vertex %d has no parent to overwrite", vertex)
	}
	if parent < 0 || parent >= len(t.vertices) || parent == vertex {
		return errors.Errorf("invalid new parent %d for vertex %d", parent, vertex)
	}
	t.parents[vertex] = parent
	return nil
}

func (t *configurationTree) cost(vertex int) float64 {
	return t.costs[vertex]
}

func (t *configurationTree) setCost(vertex int, cost float64) {
	t.costs[vertex] = cost
}

// edgeCount returns the number of parented vertices, which must always equal
// the vertex count minus one once the tree is seeded.
func (t *configurationTree) edgeCount() int {
	count := 0
	for _, parent := range t.parents {
		if parent != noParent {
			count++
		}
	}
	return count
}

// pathTo backtracks parent links from the given vertex to the root and returns
// the configurations ordered root-first. Failure to terminate at the root
// within |V| steps indicates a corrupted tree and is a logic error.
func (t *configurationTree) pathTo(vertex int) ([][]referenceframe.Input, error) {
	if vertex < 0 || vertex >= len(t.vertices) {
		return nil, errors.Errorf("no vertex %d in tree", vertex)
	}
	path := make([][]referenceframe.Input, 0)
	for steps := 0; vertex != 0; steps++ {
		if steps > len(t.vertices) {
			return nil, errors.New("parent links do not terminate at the root")
		}
		path = append(path, t.vertices[vertex])
		vertex = t.parents[vertex]
	}
	path = append(path, t.vertices[0])

	// reverse the slice
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// refreshDescendantCosts recomputes the recorded cost of every descendant of
// the given vertex, breadth-first. Called after a rewire lowers the vertex's
// cost so that the cumulative-cost invariant holds across the whole tree, not
// just at the rewired vertex.
func (t *configurationTree) refreshDescendantCosts(vertex int) {
	queue := []int{vertex}
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]
		for child, p := range t.parents {
			if p != parent {
				continue
			}
			t.costs[child] = t.costs[parent] + inputDist(t.vertices[parent], t.vertices[child])
			queue = append(queue, child)
		}
	}
}

// edges exports every (parent configuration, child configuration) pair, for
// diagnostics and visualization only.
func (t *configurationTree) edges() [][2][]referenceframe.Input {
	pairs := make([][2][]referenceframe.Input, 0, len(t.vertices))
	for child, parent := range t.parents {
		if parent == noParent {
			continue
		}
		pairs = append(pairs, [2][]referenceframe.Input{t.vertices[parent], t.vertices[child]})
	}
	return pairs
}
