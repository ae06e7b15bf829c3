// Package collision tracks named geometries and answers pairwise overlap
// queries against the full registered set. It is the oracle a planner consults
// to decide whether a candidate configuration may enter its search tree.
package collision

import (
	"github.com/pkg/errors"

	"go.mechlab.dev/armplan/spatialmath"
)

// Pair is a pair of names corresponding to registered geometries found in
// collision with one another.
type Pair struct {
	Name1, Name2 string
}

// entity is an object that is used in collision checking and contains a named geometry.
type entity struct {
	name     string
	geometry spatialmath.Geometry
}

// Manager is a registry of named collision geometries. Objects are added once,
// moved with SetTransform, and tested all-pairs with Check. Registration order
// is preserved so that pair reporting is deterministic.
type Manager struct {
	entities []*entity
	indices  map[string]int
}

// NewManager instantiates an empty collision Manager.
func NewManager() *Manager {
	return &Manager{indices: map[string]int{}}
}

// AddObject registers a geometry under the given name. Names must be unique.
func (m *Manager) AddObject(name string, geometry spatialmath.Geometry) error {
	if name == "" {
		return errors.New("cannot register a geometry without a name")
	}
	if geometry == nil {
		return errors.Errorf("cannot register a nil geometry under name %q", name)
	}
	if _, ok := m.indices[name]; ok {
		return errors.Errorf("found geometry with duplicate name: %s", name)
	}
	m.indices[name] = len(m.entities)
	m.entities = append(m.entities, &entity{name: name, geometry: geometry})
	return nil
}

// HasObject returns whether a geometry is registered under the given name.
func (m *Manager) HasObject(name string) bool {
	_, ok := m.indices[name]
	return ok
}

// Count returns the number of registered geometries.
func (m *Manager) Count() int {
	return len(m.entities)
}

// SetTransform moves the named geometry to the given pose.
func (m *Manager) SetTransform(name string, pose spatialmath.Pose) error {
	index, ok := m.indices[name]
	if !ok {
		return errors.Errorf("no geometry named %q is registered", name)
	}
	m.entities[index].geometry.Transform(pose)
	return nil
}

// Check tests every unordered pair of registered geometries for collision.
// When returnNames is true, every colliding pair is collected and returned;
// otherwise the check short-circuits on the first contact found.
func (m *Manager) Check(returnNames bool) (bool, []Pair, error) {
	var pairs []Pair
	for i := 0; i < len(m.entities); i++ {
		for j := i + 1; j < len(m.entities); j++ {
			hit, err := m.entities[i].geometry.CollidesWith(m.entities[j].geometry)
			if err != nil {
				return false, nil, err
			}
			if hit {
				if !returnNames {
					return true, nil, nil
				}
				pairs = append(pairs, Pair{Name1: m.entities[i].name, Name2: m.entities[j].name})
			}
		}
	}
	return len(pairs) > 0, pairs, nil
}
