// Package softbody simulates deformable bodies made of point masses linked by springs.
//
// A Body is a network of nodes connected by spring-damper edges. Edges
// stretched past a threshold deform plastically, and edges stretched further
// tear. A Simulator advances its bodies in a rectangular 2D domain whose walls
// reflect nodes with restitution and friction.
//
// The package owns no clock, renderer or input handling. Callers drive it one
// Step at a time, read node and edge state between steps, and inject forces
// with Body.SetExternalForce or Body.SetNodeForce.
package softbody

import (
	"fmt"
	"log/slog"
	"math"
)

// SimulatorConfig contains the parameters of the domain.
type SimulatorConfig struct {
	// Bounce is the fraction of normal velocity kept after hitting a wall,
	// from 0 (inelastic) to 1 (elastic).
	Bounce float64

	// Friction scales the tangential wall force with the normal force.
	Friction float64

	// Width and Height of the domain, whose origin is (0, 0).
	Width, Height float64

	// Logger is inherited by bodies that have none. Nil discards.
	Logger *slog.Logger
}

// A Simulator advances soft bodies inside a walled rectangle.
type Simulator struct {
	bounce, friction float64
	width, height    float64
	log              *slog.Logger

	bodies []*Body

	// Air, if set, is called for every node after wall collisions.
	// It can be used to model drag; there is none by default.
	Air func(n *Node, dt float64)
}

// NewSimulator returns a simulator without bodies.
func NewSimulator(conf SimulatorConfig) (*Simulator, error) {
	for _, d := range []float64{conf.Width, conf.Height} {
		if !(d > 0) || math.IsInf(d, 0) {
			return nil, fmt.Errorf("softbody: domain %vx%v: %w", conf.Width, conf.Height, ErrDomain)
		}
	}
	if !(conf.Bounce >= 0 && conf.Bounce <= 1) {
		return nil, fmt.Errorf("softbody: bounce %v not in [0, 1]: %w", conf.Bounce, ErrCoefficient)
	}
	if !(conf.Friction >= 0) || math.IsInf(conf.Friction, 0) {
		return nil, fmt.Errorf("softbody: friction %v: %w", conf.Friction, ErrCoefficient)
	}
	log := conf.Logger
	if log == nil {
		log = discard
	}
	return &Simulator{
		bounce:   conf.Bounce,
		friction: conf.Friction,
		width:    conf.Width,
		height:   conf.Height,
		log:      log,
	}, nil
}

// Bounce returns the restitution coefficient.
func (s *Simulator) Bounce() float64 { return s.bounce }

// Friction returns the friction coefficient.
func (s *Simulator) Friction() float64 { return s.friction }

// Width returns the width of the domain.
func (s *Simulator) Width() float64 { return s.width }

// Height returns the height of the domain.
func (s *Simulator) Height() float64 { return s.height }

// AddBody adds a 2D body to the simulation.
func (s *Simulator) AddBody(b *Body) error {
	if b.Dim() != 2 {
		return fmt.Errorf("softbody: body %q has dimension %d, want 2: %w", b.name, b.Dim(), ErrDimension)
	}
	if b.log == nil {
		b.log = s.log
	}
	s.bodies = append(s.bodies, b)
	s.log.Debug("body added", "body", b.name, "nodes", len(b.nodes), "edges", len(b.edges))
	return nil
}

// Bodies returns the bodies in the order they were added.
func (s *Simulator) Bodies() []*Body {
	return append([]*Body(nil), s.bodies...)
}

// Nodes returns the nodes of every body.
func (s *Simulator) Nodes() []*Node {
	var out []*Node
	for _, b := range s.bodies {
		out = append(out, b.nodes...)
	}
	return out
}

// Edges returns the remaining edges of every body.
func (s *Simulator) Edges() []*Edge {
	var out []*Edge
	for _, b := range s.bodies {
		out = append(out, b.edges...)
	}
	return out
}

// KineticEnergy returns the total kinetic energy of the simulation.
func (s *Simulator) KineticEnergy() float64 {
	var e float64
	for _, b := range s.bodies {
		e += b.KineticEnergy()
	}
	return e
}

// Step advances the simulation by dt seconds and resolves the walls.
// If dt is not positive the bodies are not advanced, but nodes outside the
// domain are still brought back to its walls.
func (s *Simulator) Step(dt float64) {
	if dt > 0 {
		for _, b := range s.bodies {
			b.Advance(dt)
		}
	}
	for _, b := range s.bodies {
		for _, n := range b.nodes {
			s.resolveWalls(n)
			if s.Air != nil && dt > 0 {
				s.Air(n, dt)
			}
		}
	}
}
