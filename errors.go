package softbody

import (
	"errors"

	"github.com/0442/soft-body-simulation/vec"
)

var (
	// ErrMass is returned when a node is given a mass that is not positive and finite.
	ErrMass = errors.New("mass must be positive and finite")

	// ErrDimension is returned when vectors of different dimensionality are mixed.
	ErrDimension = vec.ErrDimension

	// ErrForceNotFound is returned when looking up a force that was never set.
	ErrForceNotFound = errors.New("force not found")

	// ErrNodeIndex is returned when an edge refers to a node that is not part of its body.
	ErrNodeIndex = errors.New("node index out of range")

	// ErrDomain is returned for malformed simulation domains.
	ErrDomain = errors.New("invalid domain")

	// ErrCoefficient is returned for coefficients or thresholds outside their valid range.
	ErrCoefficient = errors.New("invalid coefficient")
)
