package softbody

import (
	"fmt"

	"github.com/0442/soft-body-simulation/vec"
)

// A SourceKind identifies what produced a force.
type SourceKind uint8

const (
	// External forces are constant body-wide forces such as gravity.
	External SourceKind = iota
	// Spring forces are contributed by an edge to each of its endpoints.
	Spring
	// Normal is the wall reaction computed by the simulator.
	Normal
	// Friction is the tangential wall force computed by the simulator.
	Friction
	// Drag is reserved for forces injected from outside, e.g. mouse pulling.
	Drag
)

var kindNames = [...]string{"external", "spring", "normal", "friction", "drag"}

// String returns the name of the kind.
func (k SourceKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("SourceKind(%d)", k)
}

// A Source identifies one force contribution on a node.
// Two contributions with the same Source replace each other.
type Source struct {
	Kind SourceKind
	Name string // name of an External force
	Edge EdgeID // edge of a Spring force
}

// Sources for the forces that exist at most once per node.
var (
	NormalSource   = Source{Kind: Normal}
	FrictionSource = Source{Kind: Friction}
	DragSource     = Source{Kind: Drag}
)

// ExternalSource returns the source of the named external force.
func ExternalSource(name string) Source {
	return Source{Kind: External, Name: name}
}

// SpringSource returns the source of the spring force of an edge.
func SpringSource(id EdgeID) Source {
	return Source{Kind: Spring, Edge: id}
}

// String formats the source for logs.
func (s Source) String() string {
	switch s.Kind {
	case External:
		return "external:" + s.Name
	case Spring:
		return fmt.Sprintf("spring:%d", s.Edge)
	}
	return s.Kind.String()
}

// forceEntry is a single named contribution.
type forceEntry struct {
	src Source
	f   vec.Vec
}

// forces is an insertion-ordered set of contributions.
// The order makes force sums reproducible from run to run.
type forces []forceEntry

func (fs forces) index(src Source) int {
	for i := range fs {
		if fs[i].src == src {
			return i
		}
	}
	return -1
}

func (fs *forces) set(src Source, f vec.Vec) {
	if i := fs.index(src); i >= 0 {
		(*fs)[i].f = f
		return
	}
	*fs = append(*fs, forceEntry{src: src, f: f})
}

func (fs *forces) remove(src Source) {
	i := fs.index(src)
	if i < 0 {
		return
	}
	*fs = append((*fs)[:i], (*fs)[i+1:]...)
}

func (fs forces) get(src Source) (vec.Vec, bool) {
	if i := fs.index(src); i >= 0 {
		return fs[i].f, true
	}
	return nil, false
}

// sum adds every contribution accepted by keep into a zero vector of dimension n.
func (fs forces) sum(n int, keep func(Source) bool) vec.Vec {
	out := vec.Zero(n)
	for _, e := range fs {
		if keep != nil && !keep(e.src) {
			continue
		}
		for i, x := range e.f {
			out[i] += x
		}
	}
	return out
}
