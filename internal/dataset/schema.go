package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-sod/knn/internal/geom"
)

type Kind uint8

const (
	KindReal Kind = iota
	KindCategorical
)

func (k Kind) String() string {
	if k == KindReal {
		return "real"
	}
	return "categorical"
}

// Attribute is one declared column. Values holds the closed value set of a
// nominal attribute, in declaration order.
type Attribute struct {
	Name   string
	Kind   Kind
	Values []string
}

type Schema struct {
	Relation   string
	Attributes []Attribute
}

func (s *Schema) Index(name string) int {
	for i := range s.Attributes {
		if s.Attributes[i].Name == name {
			return i
		}
	}
	return -1
}

// Extract converts raw rows into points: ignored attributes are dropped, the
// target attribute becomes the point's target and the remaining columns are
// split by kind. The returned labels are the target's declared values, if
// any.
func (s *Schema) Extract(rows [][]string, target string, ignored []string) ([]geom.Point, []string, error) {
	targetIdx := s.Index(target)
	if targetIdx < 0 {
		return nil, nil, fmt.Errorf("%w: target %q", ErrUnknownAttribute, target)
	}
	skip := make(map[int]struct{}, len(ignored))
	for _, name := range ignored {
		idx := s.Index(name)
		if idx < 0 {
			return nil, nil, fmt.Errorf("%w: ignored %q", ErrUnknownAttribute, name)
		}
		if idx == targetIdx {
			return nil, nil, fmt.Errorf("%w: target %q is also ignored", ErrConfiguration, target)
		}
		skip[idx] = struct{}{}
	}

	points := make([]geom.Point, 0, len(rows))
	for n, row := range rows {
		if len(row) != len(s.Attributes) {
			return nil, nil, fmt.Errorf(
				"%w: row %d has %d values, expected %d", ErrMalformed, n, len(row), len(s.Attributes))
		}
		var p geom.Point
		for i, raw := range row {
			if _, ok := skip[i]; ok {
				continue
			}
			value := strings.TrimSpace(raw)
			switch {
			case i == targetIdx:
				p.Target = value
			case s.Attributes[i].Kind == KindReal:
				f, err := strconv.ParseFloat(value, 64)
				if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
					return nil, nil, fmt.Errorf(
						"%w: row %d attribute %q: %q is not a finite number", ErrMalformed, n, s.Attributes[i].Name, value)
				}
				p.Real = append(p.Real, f)
			default:
				p.Categorical = append(p.Categorical, value)
			}
		}
		points = append(points, p)
	}

	return points, s.Attributes[targetIdx].Values, nil
}
