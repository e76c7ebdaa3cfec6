package softbody

import (
	"github.com/0442/soft-body-simulation/vec"
)

// An EdgeID identifies an edge within its body. IDs are never reused.
type EdgeID uint64

// An Edge is a spring-damper between two nodes of the same body.
// It refers to its nodes by index and does not own them.
type Edge struct {
	id      EdgeID
	body    *Body
	n1, n2  int
	spring  float64
	damping float64
	rest    float64

	// deformation is only as fresh as the last UpdateDeformation.
	deformation float64

	torn bool
}

// ID returns the identifier of the edge, which keys its spring force on both endpoints.
func (e *Edge) ID() EdgeID { return e.id }

// Source returns the force source under which the edge acts on its endpoints.
func (e *Edge) Source() Source { return SpringSource(e.id) }

// Indices returns the indices of both endpoints in the body's node arena.
func (e *Edge) Indices() (int, int) { return e.n1, e.n2 }

// Node1 returns the first endpoint.
func (e *Edge) Node1() *Node { return e.body.nodes[e.n1] }

// Node2 returns the second endpoint.
func (e *Edge) Node2() *Node { return e.body.nodes[e.n2] }

// SpringCoefficient returns the stiffness of the spring.
func (e *Edge) SpringCoefficient() float64 { return e.spring }

// DampingCoefficient returns the strength of the damper.
func (e *Edge) DampingCoefficient() float64 { return e.damping }

// RestLength returns the current rest length.
func (e *Edge) RestLength() float64 { return e.rest }

// SetRestLength changes the rest length. Bodies use it for plastic deformation.
func (e *Edge) SetRestLength(l float64) { e.rest = l }

// Deformation returns the deformation computed by the last UpdateDeformation.
func (e *Edge) Deformation() float64 { return e.deformation }

// Torn reports whether the edge has been torn and removed from its body.
func (e *Edge) Torn() bool { return e.torn }

// Length returns the live distance between the endpoints.
func (e *Edge) Length() float64 {
	return vec.Length(e.delta())
}

// delta returns the vector from node1 to node2.
func (e *Edge) delta() vec.Vec {
	return vec.Sub(e.Node2().pos, e.Node1().pos)
}

// UpdateDeformation recomputes the deformation from the live node positions and returns it.
func (e *Edge) UpdateDeformation() float64 {
	e.deformation = e.Length() - e.rest
	return e.deformation
}

// SpringForce returns the spring forces on node1 and node2.
// They are opposite vectors along the edge, and zero if the nodes coincide.
func (e *Edge) SpringForce() (f1, f2 vec.Vec) {
	e.UpdateDeformation()
	magnitude := e.deformation * e.spring

	d := e.delta()
	dist := vec.Length(d)
	var s float64
	if dist != 0 {
		s = magnitude / dist
	}
	f1 = vec.Scale(d, s)
	f2 = vec.Scale(f1, -1)
	return f1, f2
}

// DampingVectors returns the velocity corrections of node1 and node2.
// Only relative motion along the edge is damped; lateral motion is ignored.
func (e *Edge) DampingVectors() (d1, d2 vec.Vec) {
	n1, n2 := e.Node1(), e.Node2()
	rp := vec.Sub(n2.pos, n1.pos)
	rv := vec.Sub(n2.vel, n1.vel)

	d1 = vec.Scale(vec.Project(rv, rp), e.damping)
	d2 = vec.Scale(d1, -1)
	return d1, d2
}
