package softbody

import (
	"fmt"
	"math"

	"github.com/0442/soft-body-simulation/vec"
)

// A Node is a point mass.
//
// Its dimensionality is fixed by the initial position; velocity,
// acceleration and every force must have the same length.
type Node struct {
	mass float64
	pos  vec.Vec
	vel  vec.Vec
	acc  vec.Vec

	forces forces
}

// NewNode returns a node at rest at the given position.
// The mass must be positive and finite.
func NewNode(position vec.Vec, mass float64) (*Node, error) {
	if !(mass > 0) || math.IsInf(mass, 0) {
		return nil, fmt.Errorf("softbody: node mass %v: %w", mass, ErrMass)
	}
	if len(position) == 0 {
		return nil, fmt.Errorf("softbody: empty node position: %w", ErrDimension)
	}
	if !vec.IsFinite(position) {
		return nil, fmt.Errorf("softbody: node position %v is not finite", position)
	}
	n := len(position)
	return &Node{
		mass: mass,
		pos:  vec.Clone(position),
		vel:  vec.Zero(n),
		acc:  vec.Zero(n),
	}, nil
}

// Dim returns the dimensionality of the node.
func (n *Node) Dim() int { return len(n.pos) }

// Mass returns the mass of the node.
func (n *Node) Mass() float64 { return n.mass }

// Position returns a copy of the position.
func (n *Node) Position() vec.Vec { return vec.Clone(n.pos) }

// Velocity returns a copy of the velocity.
func (n *Node) Velocity() vec.Vec { return vec.Clone(n.vel) }

// Acceleration returns a copy of the acceleration computed by the last update.
func (n *Node) Acceleration() vec.Vec { return vec.Clone(n.acc) }

// SetPosition overwrites the position.
func (n *Node) SetPosition(p vec.Vec) error {
	if err := vec.Check(n.pos, p); err != nil {
		return fmt.Errorf("softbody: set position: %w", err)
	}
	n.pos = vec.Clone(p)
	return nil
}

// SetVelocity overwrites the velocity.
func (n *Node) SetVelocity(v vec.Vec) error {
	if err := vec.Check(n.vel, v); err != nil {
		return fmt.Errorf("softbody: set velocity: %w", err)
	}
	n.vel = vec.Clone(v)
	return nil
}

// SetAcceleration overwrites the acceleration.
func (n *Node) SetAcceleration(a vec.Vec) error {
	if err := vec.Check(n.acc, a); err != nil {
		return fmt.Errorf("softbody: set acceleration: %w", err)
	}
	n.acc = vec.Clone(a)
	return nil
}

// SetForce sets the force contributed by src, replacing any previous value.
func (n *Node) SetForce(src Source, f vec.Vec) error {
	if err := vec.Check(n.pos, f); err != nil {
		return fmt.Errorf("softbody: set force %s: %w", src, err)
	}
	n.forces.set(src, vec.Clone(f))
	return nil
}

// RemoveForce deletes the force contributed by src, if any.
func (n *Node) RemoveForce(src Source) {
	n.forces.remove(src)
}

// Force returns the force contributed by src.
func (n *Node) Force(src Source) (vec.Vec, error) {
	f, ok := n.forces.get(src)
	if !ok {
		return nil, fmt.Errorf("softbody: force %s: %w", src, ErrForceNotFound)
	}
	return vec.Clone(f), nil
}

// Sources lists the sources of every force currently set, in insertion order.
func (n *Node) Sources() []Source {
	out := make([]Source, len(n.forces))
	for i, e := range n.forces {
		out[i] = e.src
	}
	return out
}

// ForceSum returns the net force on the node.
// With no force set, it is the zero vector of the node's dimensionality.
func (n *Node) ForceSum() vec.Vec {
	return n.forces.sum(len(n.pos), nil)
}

// UpdateState integrates the motion of the node over dt.
//
// The new acceleration follows from the net force; velocity is advanced
// explicitly and position with the average of the old and new velocity.
func (n *Node) UpdateState(dt float64) {
	a := vec.Scale(n.ForceSum(), 1/n.mass)
	v := vec.Sum(n.vel, vec.Scale(a, dt))
	avg := vec.Scale(vec.Sum(n.vel, v), 0.5)
	p := vec.Sum(n.pos, vec.Scale(avg, dt))

	n.acc, n.vel, n.pos = a, v, p
}

// KineticEnergy returns ½mv².
func (n *Node) KineticEnergy() float64 {
	return 0.5 * n.mass * vec.Dot(n.vel, n.vel)
}
