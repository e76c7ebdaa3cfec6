package softbody

import (
	"math"

	"github.com/0442/soft-body-simulation/vec"
)

const (
	axisX = 0
	axisY = 1
)

// collisionForce reports whether a source was produced by a wall collision.
func collisionForce(src Source) bool {
	return src.Kind == Normal || src.Kind == Friction
}

// resolveWalls reflects node n off the walls of the domain.
//
// Each axis is handled independently. On contact with a wall across axis k,
// the normal force cancels the net force along k, friction opposes the
// velocity along the other axis, the velocity along k is reversed and scaled
// by the restitution, and the position is clamped to the wall.
// Both forces are always set so that a node keeps the same set of sources.
func (s *Simulator) resolveWalls(n *Node) {
	total := n.forces.sum(len(n.pos), func(src Source) bool { return !collisionForce(src) })
	normal := vec.Zero(2)
	friction := vec.Zero(2)

	s.wall(n, axisY, axisX, s.height, total, normal, friction)
	s.wall(n, axisX, axisY, s.width, total, normal, friction)

	n.forces.set(NormalSource, normal)
	n.forces.set(FrictionSource, friction)
}

// wall resolves contact across axis k against the walls at 0 and limit.
// t is the tangential axis.
func (s *Simulator) wall(n *Node, k, t int, limit float64, total, normal, friction vec.Vec) {
	p := n.pos[k]
	if p > 0 && p < limit {
		return
	}
	normal[k] = -total[k]
	friction[t] = -vec.Sign(n.vel[t]) * math.Abs(normal[k]) * s.friction
	n.vel[k] = -n.vel[k] * s.bounce
	n.acc[k] = 0
	if p <= 0 {
		n.pos[k] = 0
	} else {
		n.pos[k] = limit
	}
}
