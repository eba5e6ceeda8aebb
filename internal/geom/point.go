package geom

import (
	"fmt"
)

// Point is a single observation: real-valued features, categorical features
// and the target value as text.
type Point struct {
	Real        []float64
	Categorical []string
	Target      string
}

func NewPoint(realValues []float64, categorical []string, target string) Point {
	return Point{Real: realValues, Categorical: categorical, Target: target}
}

// Dimensions returns the real-valued arity.
func (p Point) Dimensions() int {
	return len(p.Real)
}

// CategoricalDimensions returns the categorical arity.
func (p Point) CategoricalDimensions() int {
	return len(p.Categorical)
}

// Copy returns a point that shares no backing arrays with p.
func (p Point) Copy() Point {
	realValues := make([]float64, len(p.Real))
	copy(realValues, p.Real)
	categorical := make([]string, len(p.Categorical))
	copy(categorical, p.Categorical)
	return Point{Real: realValues, Categorical: categorical, Target: p.Target}
}

// SizeEqual reports whether both arities match.
func (p Point) SizeEqual(p1 Point) bool {
	return len(p.Real) == len(p1.Real) && len(p.Categorical) == len(p1.Categorical)
}

// Equal compares features and target by value.
func (p Point) Equal(p1 Point) bool {
	if !p.SizeEqual(p1) || p.Target != p1.Target {
		return false
	}
	for i, value := range p.Real {
		if p1.Real[i] != value {
			return false
		}
	}
	for i, value := range p.Categorical {
		if p1.Categorical[i] != value {
			return false
		}
	}
	return true
}

func (p Point) String() string {
	return fmt.Sprintf("Class: %s %v %v", p.Target, p.Real, p.Categorical)
}
