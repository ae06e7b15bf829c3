package motionplan

import (
	"math"

	"go.mechlab.dev/armplan/referenceframe"
)

// nearestNeighbor returns the index of the tree vertex closest to target under
// Euclidean distance, by linear scan. Ties are broken by the lowest index.
func nearestNeighbor(tree *configurationTree, target []referenceframe.Input) int {
	bestDist := math.Inf(1)
	best := 0
	for i, vertex := range tree.vertices {
		if dist := inputDist(vertex, target); dist < bestDist {
			bestDist = dist
			best = i
		}
	}
	return best
}

// neighborsWithinRadius collects, in index order, every tree vertex within
// radius of the target configuration.
func neighborsWithinRadius(tree *configurationTree, target []referenceframe.Input, radius float64) []int {
	var neighbors []int
	for i, vertex := range tree.vertices {
		if inputDist(vertex, target) <= radius {
			neighbors = append(neighbors, i)
		}
	}
	return neighbors
}

// neighborRadius computes the shrinking RRT* search radius
// gamma * (ln(n+1)/(n+1))^(1/dof), capped at the step size, where n is the
// current vertex count.
func neighborRadius(gamma, stepSize float64, vertexCount, dof int) float64 {
	cardinality := float64(vertexCount + 1)
	radius := gamma * math.Pow(math.Log(cardinality)/cardinality, 1/float64(dof))
	return math.Min(radius, stepSize)
}
