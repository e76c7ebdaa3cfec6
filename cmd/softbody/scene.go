package main

import (
	"fmt"
	"log/slog"
	"math"

	softbody "github.com/0442/soft-body-simulation"
	"github.com/0442/soft-body-simulation/vec"
)

// setup creates the simulator and its bodies.
func setup(conf *Config, log *slog.Logger) (*softbody.Simulator, error) {
	s, err := softbody.NewSimulator(softbody.SimulatorConfig{
		Bounce:   conf.Bounce,
		Friction: conf.Friction,
		Width:    conf.Width,
		Height:   conf.Height,
		Logger:   log,
	})
	if err != nil {
		return nil, err
	}
	for i, bc := range conf.Bodies {
		b, err := newBody(&bc, conf.Gravity)
		if err != nil {
			return nil, fmt.Errorf("body %d (%s): %w", i, bc.Name, err)
		}
		if err := s.AddBody(b); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// newBody builds a body from its description.
func newBody(bc *BodyConf, gravity float64) (*softbody.Body, error) {
	bodyConf := softbody.DefaultBodyConfig
	bodyConf.Name = bc.Name
	if bc.DeformAt > 0 {
		bodyConf.DeformAt = bc.DeformAt
	}
	if bc.DeformCoefficient > 0 {
		bodyConf.DeformCoefficient = bc.DeformCoefficient
	}
	if bc.TearAt > 0 {
		bodyConf.TearAt = bc.TearAt
	}
	b, err := softbody.NewBody(bodyConf)
	if err != nil {
		return nil, err
	}

	switch bc.Preset {
	case "square":
		err = grid(b, 2, 2, bc)
	case "grid":
		err = grid(b, bc.Columns, bc.Rows, bc)
	default:
		err = explicit(b, bc)
	}
	if err != nil {
		return nil, err
	}

	if err := applyGravity(b, gravity); err != nil {
		return nil, err
	}
	if bc.Position != nil {
		if err := b.MoveAbsolute(bc.Position); err != nil {
			return nil, err
		}
	}
	if bc.Velocity != nil {
		if err := b.AddVelocity(bc.Velocity); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// grid adds a cols×rows grid of nodes, each linked to its 8 neighbours.
func grid(b *softbody.Body, cols, rows int, bc *BodyConf) error {
	index := func(i, j int) int { return j*cols + i }
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			if _, err := b.AddNode(vec.Vec{float64(i) * bc.Spacing, float64(j) * bc.Spacing}, bc.Mass); err != nil {
				return err
			}
		}
	}
	link := func(i, j, k, l int) error {
		if k < 0 || k >= cols || l >= rows {
			return nil
		}
		_, err := b.AddEdge(index(i, j), index(k, l), bc.Spring, bc.Damping)
		return err
	}
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			for _, d := range [][2]int{{1, 0}, {0, 1}, {1, 1}, {-1, 1}} {
				if err := link(i, j, i+d[0], j+d[1]); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// explicit adds the nodes and edges listed in bc.
func explicit(b *softbody.Body, bc *BodyConf) error {
	for _, n := range bc.Nodes {
		m := n.Mass
		if m == 0 {
			m = bc.Mass
		}
		if _, err := b.AddNode(n.Position, m); err != nil {
			return err
		}
	}
	for _, e := range bc.Edges {
		spring, damping := e.Spring, e.Damping
		if spring == 0 {
			spring = bc.Spring
		}
		if damping == 0 {
			damping = bc.Damping
		}
		var err error
		if e.Rest == 0 {
			_, err = b.AddEdge(e.Nodes[0], e.Nodes[1], spring, damping)
		} else {
			_, err = b.AddEdgeRest(e.Nodes[0], e.Nodes[1], spring, damping, e.Rest)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// applyGravity pulls every node down with its weight.
// Bodies of uniform mass share a single external force.
func applyGravity(b *softbody.Body, g float64) error {
	if g == 0 {
		return nil
	}
	nodes := b.Nodes()
	m := nodes[0].Mass()
	uniform := true
	for _, n := range nodes[1:] {
		uniform = uniform && n.Mass() == m
	}
	if uniform {
		return b.SetExternalForce("gravity", vec.Vec{0, g * m})
	}
	for i, n := range nodes {
		if err := b.SetNodeForce(i, softbody.ExternalSource("gravity"), vec.Vec{0, g * n.Mass()}); err != nil {
			return err
		}
	}
	return nil
}

// stepsPerFrame returns the number of time steps between two frames.
func stepsPerFrame(conf *Config) int {
	return int(math.Max(1, math.Round(conf.TimeScale/(conf.FrameRate*conf.Dt))))
}
