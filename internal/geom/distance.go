package geom

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"
)

var (
	ErrDimNotEqual = fmt.Errorf("vectors dimension is not equal")
	ErrInvalidP    = errors.New("p-norm exponent must be at least 1")
)

// RealDistance is a metric over the real-valued feature subvector.
type RealDistance interface {
	Distance(vec, vec1 []float64) (float64, error)
	String() string
}

// CategoricalDistance is a metric over the categorical feature subvector.
type CategoricalDistance interface {
	Distance(vec, vec1 []string) (float64, error)
	String() string
}

var (
	_ RealDistance        = PNorm{}
	_ RealDistance        = Chebyshev{}
	_ CategoricalDistance = Hamming{}
	_ CategoricalDistance = Ignore{}
)

var (
	Euclidean = PNorm{P: 2}
	Manhattan = PNorm{P: 1}
)

// PNorm is the Minkowski distance (sum |a_i - b_i|^p)^(1/p).
type PNorm struct {
	P float64
}

func NewPNorm(p float64) (PNorm, error) {
	if p < 1 || math.IsNaN(p) {
		return PNorm{}, fmt.Errorf("%w: got %v", ErrInvalidP, p)
	}
	return PNorm{P: p}, nil
}

func (n PNorm) Distance(vec, vec1 []float64) (float64, error) {
	if len(vec) != len(vec1) {
		return 0.0, ErrDimNotEqual
	}
	if len(vec) == 0 {
		return 0.0, nil
	}
	return floats.Distance(vec, vec1, n.P), nil
}

func (n PNorm) String() string {
	return "Minkowski distance (p = " + strconv.FormatFloat(n.P, 'g', -1, 64) + ")"
}

type Chebyshev struct{}

func (Chebyshev) Distance(vec, vec1 []float64) (float64, error) {
	if len(vec) != len(vec1) {
		return 0.0, ErrDimNotEqual
	}
	if len(vec) == 0 {
		return 0.0, nil
	}
	return floats.Distance(vec, vec1, math.Inf(1)), nil
}

func (Chebyshev) String() string {
	return "Chebyshev distance"
}

// Hamming counts mismatching positions, normalized by the categorical arity.
type Hamming struct{}

func (Hamming) Distance(vec, vec1 []string) (float64, error) {
	if len(vec) != len(vec1) {
		return 0.0, ErrDimNotEqual
	}
	if len(vec) == 0 {
		return 0.0, nil
	}
	var distance float64
	for i := range vec {
		if vec[i] != vec1[i] {
			distance++
		}
	}
	return distance / float64(len(vec)), nil
}

func (Hamming) String() string {
	return "Hamming distance"
}

// Ignore excludes categorical attributes from the composite distance.
type Ignore struct{}

func (Ignore) Distance(_, _ []string) (float64, error) {
	return 0.0, nil
}

func (Ignore) String() string {
	return "None"
}

// Metric composes a real and a categorical distance by plain addition.
// The two terms are neither weighted nor rescaled relative to each other.
type Metric struct {
	Real        RealDistance
	Categorical CategoricalDistance
}

func (m Metric) Distance(p, p1 *Point) (float64, error) {
	r, err := m.Real.Distance(p.Real, p1.Real)
	if err != nil {
		return 0.0, fmt.Errorf("real distance: %w", err)
	}
	c, err := m.Categorical.Distance(p.Categorical, p1.Categorical)
	if err != nil {
		return 0.0, fmt.Errorf("categorical distance: %w", err)
	}
	return r + c, nil
}

func (m Metric) String() string {
	return m.Real.String() + " + " + m.Categorical.String()
}
