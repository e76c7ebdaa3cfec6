package softbody

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0442/soft-body-simulation/vec"
)

func newTestSimulator(t *testing.T, bounce, friction float64) *Simulator {
	t.Helper()
	s, err := NewSimulator(SimulatorConfig{Bounce: bounce, Friction: friction, Width: 5, Height: 5})
	require.NoError(t, err)
	return s
}

var badSimulatorTests = []struct {
	conf SimulatorConfig
	err  error
}{
	{SimulatorConfig{Width: 0, Height: 5}, ErrDomain},
	{SimulatorConfig{Width: 5, Height: -1}, ErrDomain},
	{SimulatorConfig{Width: math.Inf(1), Height: 5}, ErrDomain},
	{SimulatorConfig{Width: 5, Height: math.NaN()}, ErrDomain},
	{SimulatorConfig{Width: 5, Height: 5, Bounce: -0.1}, ErrCoefficient},
	{SimulatorConfig{Width: 5, Height: 5, Bounce: 1.5}, ErrCoefficient},
	{SimulatorConfig{Width: 5, Height: 5, Friction: -1}, ErrCoefficient},
	{SimulatorConfig{Width: 5, Height: 5, Friction: math.NaN()}, ErrCoefficient},
}

func TestNewSimulatorValidation(t *testing.T) {
	for _, st := range badSimulatorTests {
		_, err := NewSimulator(st.conf)
		assert.ErrorIs(t, err, st.err, "%+v", st.conf)
	}
	s := newTestSimulator(t, 0.5, 0.1)
	assert.Equal(t, 0.5, s.Bounce())
	assert.Equal(t, 0.1, s.Friction())
	assert.Equal(t, 5.0, s.Width())
	assert.Equal(t, 5.0, s.Height())
}

func TestAddBodyDimension(t *testing.T) {
	s := newTestSimulator(t, 0, 0)
	assert.ErrorIs(t, s.AddBody(newTestBody(t, DefaultBodyConfig)), ErrDimension)
	assert.ErrorIs(t, s.AddBody(newTestBody(t, DefaultBodyConfig, vec.Vec{1, 1, 1})), ErrDimension)
	require.NoError(t, s.AddBody(newTestBody(t, DefaultBodyConfig, vec.Vec{1, 1})))
	assert.Len(t, s.Bodies(), 1)
	assert.Len(t, s.Nodes(), 1)
	assert.Empty(t, s.Edges())
}

func TestElasticBounce(t *testing.T) {
	s := newTestSimulator(t, 1, 0)
	b := newTestBody(t, DefaultBodyConfig, vec.Vec{2, 4.99})
	require.NoError(t, s.AddBody(b))
	n := b.Node(0)
	require.NoError(t, n.SetVelocity(vec.Vec{0.5, 2}))
	before := vec.Length(n.Velocity())

	s.Step(0.01)

	assert.Equal(t, 5.0, n.Position()[1])
	assert.Equal(t, vec.Vec{0.5, -2}, n.Velocity())
	assert.Equal(t, before, vec.Length(n.Velocity()))
}

func TestInelasticBounce(t *testing.T) {
	s := newTestSimulator(t, 0.5, 0)
	b := newTestBody(t, DefaultBodyConfig, vec.Vec{0.01, 2})
	require.NoError(t, s.AddBody(b))
	n := b.Node(0)
	require.NoError(t, n.SetVelocity(vec.Vec{-2, 0}))

	s.Step(0.01)

	assert.Equal(t, vec.Vec{0, 2}, n.Position())
	assert.Equal(t, vec.Vec{1, 0}, n.Velocity())
}

func TestWallForces(t *testing.T) {
	s := newTestSimulator(t, 0, 0.5)
	b := newTestBody(t, DefaultBodyConfig, vec.Vec{2, 5})
	require.NoError(t, b.SetExternalForce("gravity", vec.Vec{0, 9.81}))
	require.NoError(t, s.AddBody(b))
	n := b.Node(0)
	require.NoError(t, n.SetVelocity(vec.Vec{1, 0}))

	for i := 0; i < 10; i++ {
		s.Step(0.001)
	}

	normal, err := n.Force(NormalSource)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, -9.81}, normal, 1e-12)
	friction, err := n.Force(FrictionSource)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-0.5 * 9.81, 0}, friction, 1e-12)

	assert.Equal(t, 5.0, n.Position()[1])
	assert.Equal(t, 0.0, n.Acceleration()[1])
	assert.Less(t, n.Velocity()[0], 1.0)
}

func TestCornerContact(t *testing.T) {
	s := newTestSimulator(t, 1, 0)
	b := newTestBody(t, DefaultBodyConfig, vec.Vec{0.001, 0.001})
	require.NoError(t, s.AddBody(b))
	n := b.Node(0)
	require.NoError(t, n.SetVelocity(vec.Vec{-1, -1}))

	s.Step(0.01)

	assert.Equal(t, vec.Vec{0, 0}, n.Position())
	assert.Equal(t, vec.Vec{1, 1}, n.Velocity())
}

func TestWallForcesWithoutContact(t *testing.T) {
	s := newTestSimulator(t, 0, 0.5)
	b := newTestBody(t, DefaultBodyConfig, vec.Vec{2, 2})
	require.NoError(t, s.AddBody(b))
	s.Step(0.01)

	n := b.Node(0)
	for _, src := range []Source{NormalSource, FrictionSource} {
		f, err := n.Force(src)
		require.NoError(t, err)
		assert.Equal(t, vec.Vec{0, 0}, f)
	}
}

func TestStepWithoutTime(t *testing.T) {
	s := newTestSimulator(t, 0, 0)
	b := newTestBody(t, DefaultBodyConfig, vec.Vec{2, 2})
	require.NoError(t, s.AddBody(b))
	require.NoError(t, b.Node(0).SetVelocity(vec.Vec{1, 1}))
	s.Step(0)
	s.Step(-1)
	n := b.Node(0)
	assert.Equal(t, vec.Vec{2, 2}, n.Position())
	assert.Equal(t, vec.Vec{1, 1}, n.Velocity())
	assert.Equal(t, []Source{NormalSource, FrictionSource}, n.Sources())
}

func TestStepWithoutTimeResolvesWalls(t *testing.T) {
	s := newTestSimulator(t, 1, 0)
	b := newTestBody(t, DefaultBodyConfig, vec.Vec{2, 6})
	require.NoError(t, s.AddBody(b))
	n := b.Node(0)
	require.NoError(t, n.SetVelocity(vec.Vec{0, 1}))

	s.Step(0)
	assert.Equal(t, vec.Vec{2, 5}, n.Position())
	assert.Equal(t, vec.Vec{0, -1}, n.Velocity())
}

func TestAirHook(t *testing.T) {
	s := newTestSimulator(t, 0, 0)
	require.NoError(t, s.AddBody(newTestBody(t, DefaultBodyConfig, vec.Vec{1, 1}, vec.Vec{2, 2})))
	var calls int
	s.Air = func(n *Node, dt float64) {
		calls++
		assert.Equal(t, 0.01, dt)
	}
	s.Step(0.01)
	assert.Equal(t, 2, calls)
}

// square returns a unit square with diagonals whose top-left node is at (x, y).
func square(t *testing.T, x, y float64) *Body {
	t.Helper()
	b := newTestBody(t, DefaultBodyConfig)
	for _, p := range []vec.Vec{{x, y}, {x + 1, y}, {x + 1, y + 1}, {x, y + 1}} {
		_, err := b.AddNode(p, 0.05)
		require.NoError(t, err)
	}
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			_, err := b.AddEdge(i, j, 40, 0.07)
			require.NoError(t, err)
		}
	}
	require.NoError(t, b.SetExternalForce("gravity", vec.Vec{0, 9.81 * 0.05}))
	return b
}

func TestSquareSettles(t *testing.T) {
	const dt = 0.001
	s := newTestSimulator(t, 0, 0.01)
	b := square(t, 2, 2)
	require.NoError(t, s.AddBody(b))

	for i := 0; i < 5000; i++ {
		s.Step(dt)
		for _, n := range s.Nodes() {
			require.True(t, vec.IsFinite(n.Position()), "step %d: position %v", i, n.Position())
			require.True(t, vec.IsFinite(n.Velocity()), "step %d: velocity %v", i, n.Velocity())
		}
	}

	for _, n := range s.Nodes() {
		assert.Less(t, vec.Length(n.Velocity()), 0.05)
		p := n.Position()
		assert.True(t, p[0] >= 0 && p[0] <= 5 && p[1] >= 0 && p[1] <= 5, "%v out of domain", p)
	}
	_, hi := b.Bounds()
	assert.InDelta(t, 5.0, hi[1], 1e-3, "resting on the floor")
	assert.Len(t, s.Edges(), 6)
}
