package referenceframe

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.mechlab.dev/armplan/spatialmath"
)

// Model maps a joint-space configuration to named link poses and the collision
// geometries attached to those links. Planners never inspect the poses
// themselves; they only forward them to collision checking and report them in
// results.
type Model interface {
	// Name returns the name of the model.
	Name() string

	// DoF will return a slice with length equal to the number of joints/degrees
	// of freedom. Each element describes the min and max movement limit of that
	// joint/degree of freedom.
	DoF() []Limit

	// Transform maps a configuration to the pose of every link in the model,
	// keyed by link name.
	Transform([]Input) (map[string]spatialmath.Pose, error)

	// Geometries returns a map between link names and geometries for the model
	// at the given configuration. A link without collision geometry is not
	// added into the map.
	Geometries([]Input) (map[string]spatialmath.Geometry, error)
}

// pointModel is a gantry-style model whose configuration is interpreted directly
// as a world position: input 0 is x, input 1 is y, and input 2, if present, is z.
// Its single link is a sphere centered at that position.
type pointModel struct {
	name   string
	limits []Limit
	radius float64
}

// NewPointModel returns a Model for a robot that is a single sphere translating
// through space. Useful for planar and free-flying planning problems where the
// full kinematic chain is irrelevant.
func NewPointModel(name string, limits []Limit, radius float64) (Model, error) {
	var err error
	if name == "" {
		err = multierr.Append(err, errors.New("model name must not be empty"))
	}
	if len(limits) == 0 {
		err = multierr.Append(err, errors.New("model must have at least one degree of freedom"))
	}
	if radius <= 0 {
		err = multierr.Append(err, errors.Errorf("link radius must be positive, got %f", radius))
	}
	for i, limit := range limits {
		if limit.Min > limit.Max {
			err = multierr.Append(err, errors.Errorf("limit %d has min %f greater than max %f", i, limit.Min, limit.Max))
		}
	}
	if err != nil {
		return nil, err
	}
	return &pointModel{name: name, limits: limits, radius: radius}, nil
}

func (pm *pointModel) Name() string {
	return pm.name
}

func (pm *pointModel) DoF() []Limit {
	return pm.limits
}

func (pm *pointModel) bodyName() string {
	return pm.name + "_body"
}

func (pm *pointModel) Transform(inputs []Input) (map[string]spatialmath.Pose, error) {
	if len(inputs) != len(pm.limits) {
		return nil, NewIncorrectDoFError(len(inputs), len(pm.limits))
	}
	position := r3.Vector{X: inputs[0].Value}
	if len(inputs) > 1 {
		position.Y = inputs[1].Value
	}
	if len(inputs) > 2 {
		position.Z = inputs[2].Value
	}
	return map[string]spatialmath.Pose{pm.bodyName(): spatialmath.NewPoseFromPoint(position)}, nil
}

func (pm *pointModel) Geometries(inputs []Input) (map[string]spatialmath.Geometry, error) {
	poses, err := pm.Transform(inputs)
	if err != nil {
		return nil, err
	}
	geometries := make(map[string]spatialmath.Geometry, len(poses))
	for name, pose := range poses {
		geometry, err := spatialmath.NewSphere(pose, pm.radius, name)
		if err != nil {
			return nil, err
		}
		geometries[name] = geometry
	}
	return geometries, nil
}

// planarSerialModel is a serial chain of revolute joints rotating in the XY
// plane, the classic n-link arm. Link i extends lengths[i] from the end of link
// i-1, at the cumulative angle of joints 0..i. Each link carries a spherical
// geometry at its distal end.
type planarSerialModel struct {
	name    string
	lengths []float64
	limits  []Limit
	radius  float64
}

// NewPlanarSerialModel returns a Model for a planar arm with one revolute joint
// per link. The number of link lengths determines the DoF, and limits must match
// it in length.
func NewPlanarSerialModel(name string, lengths []float64, limits []Limit, radius float64) (Model, error) {
	var err error
	if name == "" {
		err = multierr.Append(err, errors.New("model name must not be empty"))
	}
	if len(lengths) == 0 {
		err = multierr.Append(err, errors.New("model must have at least one link"))
	}
	if len(lengths) != len(limits) {
		err = multierr.Append(err, errors.Errorf("got %d link lengths but %d joint limits", len(lengths), len(limits)))
	}
	if radius <= 0 {
		err = multierr.Append(err, errors.Errorf("link radius must be positive, got %f", radius))
	}
	for i, length := range lengths {
		if length <= 0 {
			err = multierr.Append(err, errors.Errorf("link %d has nonpositive length %f", i, length))
		}
	}
	if err != nil {
		return nil, err
	}
	return &planarSerialModel{name: name, lengths: lengths, limits: limits, radius: radius}, nil
}

func (psm *planarSerialModel) Name() string {
	return psm.name
}

func (psm *planarSerialModel) DoF() []Limit {
	return psm.limits
}

func (psm *planarSerialModel) linkName(i int) string {
	return fmt.Sprintf("%s_link%d", psm.name, i)
}

func (psm *planarSerialModel) Transform(inputs []Input) (map[string]spatialmath.Pose, error) {
	if len(inputs) != len(psm.limits) {
		return nil, NewIncorrectDoFError(len(inputs), len(psm.limits))
	}
	poses := make(map[string]spatialmath.Pose, len(psm.lengths))
	var angle float64
	var end r3.Vector
	for i, length := range psm.lengths {
		angle += inputs[i].Value
		end = end.Add(r3.Vector{X: length * math.Cos(angle), Y: length * math.Sin(angle)})
		poses[psm.linkName(i)] = spatialmath.NewPoseFromPoint(end)
	}
	return poses, nil
}

func (psm *planarSerialModel) Geometries(inputs []Input) (map[string]spatialmath.Geometry, error) {
	poses, err := psm.Transform(inputs)
	if err != nil {
		return nil, err
	}
	geometries := make(map[string]spatialmath.Geometry, len(poses))
	for name, pose := range poses {
		geometry, err := spatialmath.NewSphere(pose, psm.radius, name)
		if err != nil {
			return nil, err
		}
		geometries[name] = geometry
	}
	return geometries, nil
}

// subchainModel restricts the links reported by an underlying model to a named
// subset, the way planning for one arm of a multi-arm robot only propagates that
// arm's links to collision checking. DoF is unchanged.
type subchainModel struct {
	Model
	links map[string]bool
}

// Subchain wraps a Model so that Transform and Geometries only report the named
// links. Returns an error if any requested link is unknown to the model.
func Subchain(model Model, links ...string) (Model, error) {
	if len(links) == 0 {
		return nil, errors.New("subchain requires at least one link name")
	}
	zero := make([]Input, len(model.DoF()))
	known, err := model.Transform(zero)
	if err != nil {
		return nil, err
	}
	keep := make(map[string]bool, len(links))
	for _, name := range links {
		if _, ok := known[name]; !ok {
			return nil, NewLinkMissingError(name)
		}
		keep[name] = true
	}
	return &subchainModel{Model: model, links: keep}, nil
}

func (sm *subchainModel) Transform(inputs []Input) (map[string]spatialmath.Pose, error) {
	poses, err := sm.Model.Transform(inputs)
	if err != nil {
		return nil, err
	}
	for name := range poses {
		if !sm.links[name] {
			delete(poses, name)
		}
	}
	return poses, nil
}

func (sm *subchainModel) Geometries(inputs []Input) (map[string]spatialmath.Geometry, error) {
	geometries, err := sm.Model.Geometries(inputs)
	if err != nil {
		return nil, err
	}
	for name := range geometries {
		if !sm.links[name] {
			delete(geometries, name)
		}
	}
	return geometries, nil
}
