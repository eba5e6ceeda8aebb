// Package dataset turns raw observations into normalized, shuffled and
// fold-partitioned points ready for neighbor search.
package dataset

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/go-sod/knn/internal/geom"
)

const (
	DefaultFolds = 10
	DefaultSeed  = 4
	// NoFold excludes nothing: every fold is part of the training set.
	NoFold = -1
)

// Arity is the number of real-valued and categorical features every point
// of a dataset carries.
type Arity struct {
	Real        int
	Categorical int
}

func (a Arity) Check(p geom.Point) error {
	if p.Dimensions() != a.Real || p.CategoricalDimensions() != a.Categorical {
		return fmt.Errorf(
			"%w: got %d real and %d categorical features, expected %d and %d",
			ErrArityMismatch, p.Dimensions(), p.CategoricalDimensions(), a.Real, a.Categorical,
		)
	}
	return nil
}

type Option func(*options)

type options struct {
	folds  int
	rnd    *rand.Rand
	arity  *Arity
	labels []string
}

func WithFolds(n int) Option {
	return func(o *options) {
		o.folds = n
	}
}

// WithSeed shuffles with a fresh generator seeded with seed.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.rnd = rand.New(rand.NewSource(seed))
	}
}

// WithRand shuffles with the given generator.
func WithRand(rnd *rand.Rand) Option {
	return func(o *options) {
		o.rnd = rnd
	}
}

// WithArity declares the arity every point must have. Without it the arity
// of the first point is used.
func WithArity(realArity, categoricalArity int) Option {
	return func(o *options) {
		o.arity = &Arity{Real: realArity, Categorical: categoricalArity}
	}
}

// WithLabels declares the closed, ordered set of target values.
func WithLabels(labels []string) Option {
	return func(o *options) {
		o.labels = labels
	}
}

// Dataset is a read-only set of folds.
type Dataset struct {
	folds  [][]geom.Point
	labels []string
	arity  Arity
	size   int
}

// Prepare validates, normalizes, shuffles and partitions points. The input
// slice and its points are left untouched.
func Prepare(points []geom.Point, opts ...Option) (*Dataset, error) {
	o := options{folds: DefaultFolds}
	for _, f := range opts {
		f(&o)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: dataset has no points", ErrConfiguration)
	}
	if o.folds <= 0 {
		return nil, fmt.Errorf("%w: folds must be positive, got %d", ErrConfiguration, o.folds)
	}
	if o.folds > len(points) {
		return nil, fmt.Errorf(
			"%w: %d folds requested for %d points would leave empty folds",
			ErrConfiguration, o.folds, len(points),
		)
	}

	arity := Arity{Real: points[0].Dimensions(), Categorical: points[0].CategoricalDimensions()}
	if o.arity != nil {
		arity = *o.arity
	}

	prepared := make([]geom.Point, len(points))
	for i := range points {
		if err := arity.Check(points[i]); err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		prepared[i] = points[i].Copy()
	}

	if err := normalize(prepared, arity.Real); err != nil {
		return nil, err
	}

	labels := o.labels
	if len(labels) == 0 {
		labels = distinctTargets(points)
	}

	rnd := o.rnd
	if rnd == nil {
		rnd = rand.New(rand.NewSource(DefaultSeed))
	}
	rnd.Shuffle(len(prepared), func(i, j int) {
		prepared[i], prepared[j] = prepared[j], prepared[i]
	})

	return &Dataset{
		folds:  partition(prepared, o.folds),
		labels: labels,
		arity:  arity,
		size:   len(prepared),
	}, nil
}

// FromFolds builds a dataset from points that are already normalized and
// partitioned.
func FromFolds(folds [][]geom.Point, labels []string) (*Dataset, error) {
	if len(folds) == 0 {
		return nil, fmt.Errorf("%w: no folds", ErrConfiguration)
	}
	var (
		arity  *Arity
		size   int
		copied = make([][]geom.Point, len(folds))
	)
	for i, fold := range folds {
		copied[i] = make([]geom.Point, len(fold))
		for j, p := range fold {
			if arity == nil {
				arity = &Arity{Real: p.Dimensions(), Categorical: p.CategoricalDimensions()}
			}
			if err := arity.Check(p); err != nil {
				return nil, fmt.Errorf("fold %d point %d: %w", i, j, err)
			}
			copied[i][j] = p.Copy()
		}
		size += len(fold)
	}
	if size == 0 {
		return nil, fmt.Errorf("%w: dataset has no points", ErrConfiguration)
	}
	if len(labels) == 0 {
		var all []geom.Point
		for _, fold := range copied {
			all = append(all, fold...)
		}
		labels = distinctTargets(all)
	}
	return &Dataset{folds: copied, labels: labels, arity: *arity, size: size}, nil
}

func (d *Dataset) Folds() int {
	return len(d.folds)
}

func (d *Dataset) Fold(idx int) []geom.Point {
	return d.folds[idx]
}

func (d *Dataset) Len() int {
	return d.size
}

func (d *Dataset) Labels() []string {
	return d.labels
}

func (d *Dataset) Arity() Arity {
	return d.arity
}

// TrainingSet returns every point outside the excluded fold, in fold order.
// An index outside [0, Folds()) excludes nothing.
func (d *Dataset) TrainingSet(excluded int) []geom.Point {
	n := d.size
	if excluded >= 0 && excluded < len(d.folds) {
		n -= len(d.folds[excluded])
	}
	set := make([]geom.Point, 0, n)
	for i, fold := range d.folds {
		if i == excluded {
			continue
		}
		set = append(set, fold...)
	}
	return set
}

// normalize rescales every real column to [0, 1] in place.
func normalize(points []geom.Point, columns int) error {
	for col := 0; col < columns; col++ {
		min, max := math.Inf(1), math.Inf(-1)
		for i, p := range points {
			v := p.Real[col]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: column %d point %d is %v", ErrDegenerateColumn, col, i, v)
			}
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		if max == min {
			return fmt.Errorf("%w: column %d is constant (%v)", ErrDegenerateColumn, col, min)
		}
		for _, p := range points {
			p.Real[col] = (p.Real[col] - min) / (max - min)
		}
	}
	return nil
}

// partition deals points round-robin: point i goes to fold i mod n.
func partition(points []geom.Point, n int) [][]geom.Point {
	folds := make([][]geom.Point, n)
	for i := range points {
		folds[i%n] = append(folds[i%n], points[i])
	}
	return folds
}

func distinctTargets(points []geom.Point) []string {
	var (
		labels []string
		seen   = map[string]struct{}{}
	)
	for _, p := range points {
		if _, ok := seen[p.Target]; ok {
			continue
		}
		seen[p.Target] = struct{}{}
		labels = append(labels, p.Target)
	}
	return labels
}
