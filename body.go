package softbody

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/0442/soft-body-simulation/vec"
)

// BodyConfig holds the material parameters of a body.
type BodyConfig struct {
	Name string // used in logs only

	// Edges whose deformation exceeds DeformAt deform plastically:
	// their rest length grows by DeformCoefficient times the deformation.
	// DeformCoefficient must be positive unless DeformAt is +Inf.
	DeformAt          float64
	DeformCoefficient float64

	// Edges whose deformation exceeds TearAt are removed.
	TearAt float64

	// Logger receives tear and deformation events.
	// If nil, the body uses the logger of its simulator, or discards.
	Logger *slog.Logger
}

// DefaultBodyConfig never deforms nor tears.
var DefaultBodyConfig = BodyConfig{
	DeformAt:          math.Inf(1),
	DeformCoefficient: 1,
	TearAt:            math.Inf(1),
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// A Body is a soft body: a set of nodes linked by edges.
//
// Nodes are kept in an append-only arena, so a node index stays valid and
// a *Node stays the same for the lifetime of the body.
type Body struct {
	name              string
	deformAt          float64
	deformCoefficient float64
	tearAt            float64
	log               *slog.Logger

	nodes    []*Node
	edges    []*Edge
	nextEdge EdgeID
	external forces
}

// NewBody returns an empty body.
func NewBody(conf BodyConfig) (*Body, error) {
	if math.IsNaN(conf.DeformAt) || math.IsNaN(conf.TearAt) {
		return nil, fmt.Errorf("softbody: body %q: NaN threshold: %w", conf.Name, ErrCoefficient)
	}
	if !(conf.DeformCoefficient >= 0) || math.IsInf(conf.DeformCoefficient, 0) ||
		(conf.DeformCoefficient == 0 && !math.IsInf(conf.DeformAt, 1)) {
		return nil, fmt.Errorf("softbody: body %q: deform coefficient %v: %w", conf.Name, conf.DeformCoefficient, ErrCoefficient)
	}
	return &Body{
		name:              conf.Name,
		deformAt:          conf.DeformAt,
		deformCoefficient: conf.DeformCoefficient,
		tearAt:            conf.TearAt,
		log:               conf.Logger,
	}, nil
}

// Name returns the name of the body.
func (b *Body) Name() string { return b.name }

// DeformAt returns the plastic deformation threshold.
func (b *Body) DeformAt() float64 { return b.deformAt }

// DeformCoefficient returns the fraction of the deformation made permanent.
func (b *Body) DeformCoefficient() float64 { return b.deformCoefficient }

// TearAt returns the tearing threshold.
func (b *Body) TearAt() float64 { return b.tearAt }

// Dim returns the dimensionality of the nodes, or 0 for a body without nodes.
func (b *Body) Dim() int {
	if len(b.nodes) == 0 {
		return 0
	}
	return b.nodes[0].Dim()
}

func (b *Body) logger() *slog.Logger {
	if b.log == nil {
		return discard
	}
	return b.log
}

// AddNode creates a node and returns its index.
// All nodes of a body share the dimensionality of the first one.
func (b *Body) AddNode(position vec.Vec, mass float64) (int, error) {
	if len(b.nodes) > 0 {
		if err := vec.Check(b.nodes[0].pos, position); err != nil {
			return -1, fmt.Errorf("softbody: body %q: add node: %w", b.name, err)
		}
	}
	for _, e := range b.external {
		if err := vec.Check(e.f, position); err != nil {
			return -1, fmt.Errorf("softbody: body %q: add node: external force %q: %w", b.name, e.src.Name, err)
		}
	}
	n, err := NewNode(position, mass)
	if err != nil {
		return -1, err
	}
	b.nodes = append(b.nodes, n)
	return len(b.nodes) - 1, nil
}

// AddEdge links nodes i and j with a spring whose rest length is their current distance.
func (b *Body) AddEdge(i, j int, spring, damping float64) (*Edge, error) {
	if err := b.checkNodes(i, j); err != nil {
		return nil, err
	}
	return b.AddEdgeRest(i, j, spring, damping, vec.Length(vec.Sub(b.nodes[j].pos, b.nodes[i].pos)))
}

// AddEdgeRest links nodes i and j with a spring of the given rest length.
func (b *Body) AddEdgeRest(i, j int, spring, damping, rest float64) (*Edge, error) {
	if err := b.checkNodes(i, j); err != nil {
		return nil, err
	}
	for _, c := range []struct {
		name string
		v    float64
	}{{"spring", spring}, {"damping", damping}, {"rest length", rest}} {
		if !(c.v >= 0) || math.IsInf(c.v, 0) {
			return nil, fmt.Errorf("softbody: body %q: edge %d-%d %s %v: %w", b.name, i, j, c.name, c.v, ErrCoefficient)
		}
	}
	e := &Edge{
		id:      b.nextEdge,
		body:    b,
		n1:      i,
		n2:      j,
		spring:  spring,
		damping: damping,
		rest:    rest,
	}
	b.nextEdge++
	e.UpdateDeformation()
	b.edges = append(b.edges, e)
	return e, nil
}

func (b *Body) checkNodes(i, j int) error {
	for _, k := range []int{i, j} {
		if k < 0 || k >= len(b.nodes) {
			return fmt.Errorf("softbody: body %q: node %d of %d: %w", b.name, k, len(b.nodes), ErrNodeIndex)
		}
	}
	if i == j {
		return fmt.Errorf("softbody: body %q: edge from node %d to itself: %w", b.name, i, ErrNodeIndex)
	}
	return nil
}

// Node returns the node at index i, or nil if there is none.
func (b *Body) Node(i int) *Node {
	if i < 0 || i >= len(b.nodes) {
		return nil
	}
	return b.nodes[i]
}

// Nodes returns the nodes of the body in index order.
func (b *Body) Nodes() []*Node {
	return append([]*Node(nil), b.nodes...)
}

// Edges returns the edges that have not been torn.
func (b *Body) Edges() []*Edge {
	return append([]*Edge(nil), b.edges...)
}

// SetExternalForce sets a named force applied to every node at each step.
func (b *Body) SetExternalForce(name string, f vec.Vec) error {
	if d := b.Dim(); d != 0 && d != len(f) {
		return fmt.Errorf("softbody: body %q: external force %q: %w", b.name, name, vec.Check(b.nodes[0].pos, f))
	}
	b.external.set(ExternalSource(name), vec.Clone(f))
	return nil
}

// RemoveExternalForce stops applying the named force.
// The force is also removed from every node.
func (b *Body) RemoveExternalForce(name string) {
	src := ExternalSource(name)
	b.external.remove(src)
	for _, n := range b.nodes {
		n.RemoveForce(src)
	}
}

// ExternalForce returns the named external force.
func (b *Body) ExternalForce(name string) (vec.Vec, error) {
	f, ok := b.external.get(ExternalSource(name))
	if !ok {
		return nil, fmt.Errorf("softbody: body %q: external force %q: %w", b.name, name, ErrForceNotFound)
	}
	return vec.Clone(f), nil
}

// ExternalForces returns a copy of all external forces by name.
func (b *Body) ExternalForces() map[string]vec.Vec {
	out := make(map[string]vec.Vec, len(b.external))
	for _, e := range b.external {
		out[e.src.Name] = vec.Clone(e.f)
	}
	return out
}

// SetNodeForce sets a force on a single node, e.g. a Drag force while the user pulls it.
func (b *Body) SetNodeForce(i int, src Source, f vec.Vec) error {
	n := b.Node(i)
	if n == nil {
		return fmt.Errorf("softbody: body %q: node %d: %w", b.name, i, ErrNodeIndex)
	}
	return n.SetForce(src, f)
}

// RemoveNodeForce removes a force from a single node.
func (b *Body) RemoveNodeForce(i int, src Source) error {
	n := b.Node(i)
	if n == nil {
		return fmt.Errorf("softbody: body %q: node %d: %w", b.name, i, ErrNodeIndex)
	}
	n.RemoveForce(src)
	return nil
}

// Advance advances the physics of the body by dt.
//
// Edges first: each one tears or deforms, then updates the spring force and
// damping of its endpoints. Nodes then receive the external forces and are
// integrated.
func (b *Body) Advance(dt float64) {
	var torn []int
	for k, e := range b.edges {
		n1, n2 := e.Node1(), e.Node2()
		src := e.Source()

		d := e.UpdateDeformation()
		if d > b.tearAt {
			n1.RemoveForce(src)
			n2.RemoveForce(src)
			torn = append(torn, k)
			continue
		}

		if d > b.deformAt {
			rest := e.rest
			e.SetRestLength(rest + d*b.deformCoefficient)
			b.logger().Debug("edge deformed", "body", b.name, "edge", e.id, "rest", rest, "newRest", e.rest)
		}

		// measured again against the grown rest length
		f1, f2 := e.SpringForce()
		n1.forces.set(src, f1)
		n2.forces.set(src, f2)

		d1, d2 := e.DampingVectors()
		n1.vel = vec.Sum(n1.vel, d1)
		n2.vel = vec.Sum(n2.vel, d2)
	}
	b.removeEdges(torn)

	for _, n := range b.nodes {
		for _, f := range b.external {
			n.forces.set(f.src, f.f)
		}
		n.UpdateState(dt)
	}
}

// removeEdges removes the edges at the given increasing positions.
func (b *Body) removeEdges(torn []int) {
	if len(torn) == 0 {
		return
	}
	kept := b.edges[:0]
	t := 0
	for k, e := range b.edges {
		if t < len(torn) && torn[t] == k {
			t++
			e.torn = true
			b.logger().Info("edge torn", "body", b.name, "edge", e.id, "deformation", e.deformation)
			continue
		}
		kept = append(kept, e)
	}
	for k := len(kept); k < len(b.edges); k++ {
		b.edges[k] = nil
	}
	b.edges = kept
}

// AddVelocity adds v to the velocity of every node.
func (b *Body) AddVelocity(v vec.Vec) error {
	if err := b.checkDim(v); err != nil {
		return fmt.Errorf("softbody: body %q: add velocity: %w", b.name, err)
	}
	for _, n := range b.nodes {
		n.vel = vec.Sum(n.vel, v)
	}
	return nil
}

// MoveRelative translates every node by v.
func (b *Body) MoveRelative(v vec.Vec) error {
	if err := b.checkDim(v); err != nil {
		return fmt.Errorf("softbody: body %q: move: %w", b.name, err)
	}
	for _, n := range b.nodes {
		n.pos = vec.Sum(n.pos, v)
	}
	return nil
}

// MoveAbsolute translates the body so that the minimum corner of its bounding box is at topLeft.
func (b *Body) MoveAbsolute(topLeft vec.Vec) error {
	if err := b.checkDim(topLeft); err != nil {
		return fmt.Errorf("softbody: body %q: move: %w", b.name, err)
	}
	if len(b.nodes) == 0 {
		return nil
	}
	lo, _ := b.Bounds()
	return b.MoveRelative(vec.Sub(topLeft, lo))
}

// Bounds returns the minimum and maximum corners of the bounding box of the nodes.
func (b *Body) Bounds() (lo, hi vec.Vec) {
	if len(b.nodes) == 0 {
		return nil, nil
	}
	lo = vec.Clone(b.nodes[0].pos)
	hi = vec.Clone(b.nodes[0].pos)
	for _, n := range b.nodes[1:] {
		for i, x := range n.pos {
			lo[i] = math.Min(lo[i], x)
			hi[i] = math.Max(hi[i], x)
		}
	}
	return lo, hi
}

// KineticEnergy returns the total kinetic energy of the nodes.
func (b *Body) KineticEnergy() float64 {
	var e float64
	for _, n := range b.nodes {
		e += n.KineticEnergy()
	}
	return e
}

func (b *Body) checkDim(v vec.Vec) error {
	if len(b.nodes) == 0 {
		return nil
	}
	return vec.Check(b.nodes[0].pos, v)
}
