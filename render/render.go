// Package render draws soft body simulations.
//
// A Renderer is a minimal drawing backend working in simulation units
// (meters, origin at the top left, y pointing down). Draw composes a frame of
// a simulation on any Renderer.
package render

import (
	"image/color"
	"math"

	softbody "github.com/0442/soft-body-simulation"
	"github.com/0442/soft-body-simulation/vec"
)

// A Renderer is a drawing backend.
//
// A frame starts with Begin, receives shapes in painting order and is shown
// by Render. Quit releases the backend.
type Renderer interface {
	Begin()
	AddLine(p1, p2 vec.Vec, width float64, c color.RGBA)
	AddCircle(center vec.Vec, radius float64, c color.RGBA)
	AddRectangle(topLeft vec.Vec, width, height float64, c color.RGBA)
	Render() error
	Quit() error
}

// Options controls what Draw puts in a frame.
type Options struct {
	Nodes   bool // draw nodes
	Edges   bool // draw edges
	Vectors bool // draw net force vectors

	NodeRadius float64 // m
	EdgeWidth  float64 // m

	// Force vectors are drawn VectorScale m per N and skipped below MinVector N.
	VectorScale float64
	MinVector   float64

	// Edges are colored from Edge to Strained as |deformation|/rest length
	// goes from 0 to StrainLimit.
	StrainLimit float64

	Background color.RGBA
	Node       color.RGBA
	Edge       color.RGBA
	Strained   color.RGBA
	Vector     color.RGBA
}

// DefaultOptions draws nodes and edges.
var DefaultOptions = Options{
	Nodes:       true,
	Edges:       true,
	NodeRadius:  0.04,
	EdgeWidth:   0.016,
	VectorScale: 0.5,
	MinVector:   0.1,
	StrainLimit: 0.25,
	Background:  color.RGBA{1, 16, 89, 255},
	Node:        color.RGBA{245, 253, 255, 255},
	Edge:        color.RGBA{93, 196, 255, 255},
	Strained:    color.RGBA{255, 80, 60, 255},
	Vector:      color.RGBA{0, 100, 255, 255},
}

// Draw renders one frame of s on r.
func Draw(r Renderer, s *softbody.Simulator, o *Options) error {
	r.Begin()
	r.AddRectangle(vec.Vec{0, 0}, s.Width(), s.Height(), o.Background)
	if o.Edges {
		for _, e := range s.Edges() {
			c := Mix(o.Edge, o.Strained, strain(e, o.StrainLimit))
			r.AddLine(e.Node1().Position(), e.Node2().Position(), o.EdgeWidth, c)
		}
	}
	if o.Nodes {
		for _, n := range s.Nodes() {
			r.AddCircle(n.Position(), o.NodeRadius, o.Node)
		}
	}
	if o.Vectors {
		for _, n := range s.Nodes() {
			f := n.ForceSum()
			if vec.Length(f) < o.MinVector {
				continue
			}
			p := n.Position()
			r.AddLine(p, vec.Sum(p, vec.Scale(f, o.VectorScale)), o.EdgeWidth, o.Vector)
		}
	}
	return r.Render()
}

// strain returns the relative deformation of e mapped to [0, 1].
func strain(e *softbody.Edge, limit float64) float64 {
	if e.RestLength() == 0 || limit <= 0 {
		return 0
	}
	return math.Min(1, math.Abs(e.Length()-e.RestLength())/e.RestLength()/limit)
}

// Mix interpolates linearly between a (t = 0) and b (t = 1).
func Mix(a, b color.RGBA, t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), mix(a.A, b.A)}
}
