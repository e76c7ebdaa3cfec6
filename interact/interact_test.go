package interact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	softbody "github.com/0442/soft-body-simulation"
	"github.com/0442/soft-body-simulation/vec"
)

func newSim(t *testing.T) (*softbody.Simulator, *softbody.Body) {
	t.Helper()
	s, err := softbody.NewSimulator(softbody.SimulatorConfig{Width: 5, Height: 5})
	require.NoError(t, err)
	b, err := softbody.NewBody(softbody.DefaultBodyConfig)
	require.NoError(t, err)
	for _, p := range []vec.Vec{{1, 1}, {2, 1}, {2, 2}} {
		_, err := b.AddNode(p, 0.5)
		require.NoError(t, err)
	}
	require.NoError(t, s.AddBody(b))
	return s, b
}

func TestGrabNearest(t *testing.T) {
	s, b := newSim(t)
	d := NewDragger()

	require.True(t, d.Grab(s, vec.Vec{1.9, 1.2}))
	body, i, held := d.Holding()
	assert.True(t, held)
	assert.Same(t, b, body)
	assert.Equal(t, 1, i)

	assert.False(t, d.Grab(s, vec.Vec{4, 4}))
	_, _, held = d.Holding()
	assert.False(t, held)
}

func TestPullAndRelease(t *testing.T) {
	s, b := newSim(t)
	d := NewDragger()
	require.True(t, d.Grab(s, vec.Vec{1, 1}))

	require.NoError(t, d.Pull(vec.Vec{1.5, 0.5}))
	f, err := b.Node(0).Force(softbody.DragSource)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{25, -25}, f, 1e-12)

	s.Step(0.001)
	assert.Greater(t, b.Node(0).Velocity()[0], 0.0)

	d.Release()
	_, err = b.Node(0).Force(softbody.DragSource)
	assert.ErrorIs(t, err, softbody.ErrForceNotFound)
	assert.NoError(t, d.Pull(vec.Vec{3, 3}), "pulling nothing is a no-op")
}

func TestGrabReleasesPrevious(t *testing.T) {
	s, b := newSim(t)
	d := NewDragger()
	require.True(t, d.Grab(s, vec.Vec{1, 1}))
	require.NoError(t, d.Pull(vec.Vec{3, 3}))
	require.True(t, d.Grab(s, vec.Vec{2, 2}))

	_, err := b.Node(0).Force(softbody.DragSource)
	assert.ErrorIs(t, err, softbody.ErrForceNotFound)
}
