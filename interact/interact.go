// Package interact lets a user pull the nodes of a running simulation.
package interact

import (
	"math"

	softbody "github.com/0442/soft-body-simulation"
	"github.com/0442/soft-body-simulation/vec"
)

// A Dragger pulls one node at a time toward a target point, like a rubber band.
//
// The pulling force is (target − position) × Strength × mass, set on the node
// under the Drag source and cleared on Release.
type Dragger struct {
	Radius   float64 // m, how far from a node a grab still catches it
	Strength float64 // 1/s², stiffness of the pull per unit mass

	body *softbody.Body
	node int
	held bool
}

// NewDragger returns a dragger with the usual settings.
func NewDragger() *Dragger {
	return &Dragger{Radius: 0.3, Strength: 100}
}

// Holding reports whether a node is being pulled, and which.
func (d *Dragger) Holding() (*softbody.Body, int, bool) {
	return d.body, d.node, d.held
}

// Grab picks the node of s nearest to p, if it is within Radius.
// It reports whether a node was caught. A node already held is released first.
func (d *Dragger) Grab(s *softbody.Simulator, p vec.Vec) bool {
	d.Release()
	best := math.Inf(1)
	for _, b := range s.Bodies() {
		for i, n := range b.Nodes() {
			dist := vec.Length(vec.Sub(n.Position(), p))
			if dist <= d.Radius && dist < best {
				best = dist
				d.body, d.node, d.held = b, i, true
			}
		}
	}
	return d.held
}

// Pull sets the drag force toward target on the held node.
func (d *Dragger) Pull(target vec.Vec) error {
	if !d.held {
		return nil
	}
	n := d.body.Node(d.node)
	f := vec.Scale(vec.Sub(target, n.Position()), d.Strength*n.Mass())
	return d.body.SetNodeForce(d.node, softbody.DragSource, f)
}

// Release clears the drag force and lets go of the node.
func (d *Dragger) Release() {
	if d.held {
		// the node index is valid for the lifetime of the body
		_ = d.body.RemoveNodeForce(d.node, softbody.DragSource)
	}
	d.body, d.node, d.held = nil, 0, false
}
