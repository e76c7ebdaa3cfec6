package vec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type binaryTest struct {
	in1, in2 Vec
	out      Vec
}

var sumTests = []binaryTest{
	{Vec{0, 0}, Vec{0, 0}, Vec{0, 0}},
	{Vec{0, 1}, Vec{0, 0}, Vec{0, 1}},
	{Vec{1, 2}, Vec{0, 0}, Vec{1, 2}},
	{Vec{2, 4}, Vec{1, 3}, Vec{3, 7}},
	{Vec{5, 5, 5}, Vec{2, 2, -2}, Vec{7, 7, 3}},
}

func TestSum(t *testing.T) {
	for _, st := range sumTests {
		assert.Equal(t, st.out, Sum(st.in1, st.in2), "Sum(%v, %v)", st.in1, st.in2)
	}
}

var subTests = []binaryTest{
	{Vec{0, 0}, Vec{0, 0}, Vec{0, 0}},
	{Vec{3, 7}, Vec{1, 3}, Vec{2, 4}},
	{Vec{1, 2}, Vec{2, 4}, Vec{-1, -2}},
	{Vec{1, 1, 1}, Vec{1, 1, 1}, Vec{0, 0, 0}},
}

func TestSub(t *testing.T) {
	for _, st := range subTests {
		assert.Equal(t, st.out, Sub(st.in1, st.in2), "Sub(%v, %v)", st.in1, st.in2)
	}
}

func TestInputsNotMutated(t *testing.T) {
	a, b := Vec{1, 2}, Vec{3, 4}
	Sum(a, b)
	Sub(a, b)
	Scale(a, 3)
	Unit(b)
	Project(a, b)
	assert.Equal(t, Vec{1, 2}, a)
	assert.Equal(t, Vec{3, 4}, b)
}

func TestMismatchPanics(t *testing.T) {
	a, b := Vec{1, 2}, Vec{1, 2, 3}
	require.Error(t, Check(a, b))
	assert.ErrorIs(t, Check(a, b), ErrDimension)
	assert.Panics(t, func() { Sum(a, b) })
	assert.Panics(t, func() { Sub(a, b) })
	assert.Panics(t, func() { Dot(a, b) })
	assert.NoError(t, Check(a, Vec{0, 0}))
}

var lengthTests = []struct {
	in  Vec
	out float64
}{
	{Vec{0, 0}, 0},
	{Vec{0, 2}, 2},
	{Vec{3, 4}, 5},
	{Vec{1, 1}, math.Sqrt(2)},
	{Vec{}, 0},
}

func TestLength(t *testing.T) {
	for _, lt := range lengthTests {
		assert.Equal(t, lt.out, Length(lt.in), "Length(%v)", lt.in)
	}
}

func TestUnit(t *testing.T) {
	assert.Equal(t, Vec{0, 0}, Unit(Vec{0, 0}))
	assert.Equal(t, Vec{0, 0, 0}, Unit(Vec{0, 0, 0}))
	u := Unit(Vec{3, 4})
	assert.InDelta(t, 0.6, u[0], 1e-12)
	assert.InDelta(t, 0.8, u[1], 1e-12)
	assert.InDelta(t, 1, Length(u), 1e-12)
}

func TestDotAndProject(t *testing.T) {
	assert.Equal(t, 11.0, Dot(Vec{1, 2}, Vec{3, 4}))
	assert.Equal(t, 0.0, Dot(Vec{1, 0}, Vec{0, 1}))

	p := Project(Vec{2, 3}, Vec{5, 0})
	assert.InDelta(t, 2, p[0], 1e-12)
	assert.InDelta(t, 0, p[1], 1e-12)

	// lateral component is dropped
	p = Project(Vec{0, 3}, Vec{1, 0})
	assert.Equal(t, Vec{0, 0}, p)

	// projecting onto the zero vector yields zero
	assert.Equal(t, Vec{0, 0}, Project(Vec{1, 1}, Vec{0, 0}))
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(Vec{1, -2}))
	assert.False(t, IsFinite(Vec{math.NaN(), 0}))
	assert.False(t, IsFinite(Vec{0, math.Inf(-1)}))
}

func TestSign(t *testing.T) {
	assert.Equal(t, 1.0, Sign(3))
	assert.Equal(t, -1.0, Sign(-0.1))
	assert.Equal(t, 0.0, Sign(0))
}
