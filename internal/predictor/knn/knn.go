// Package knn predicts a query's target from its nearest neighbors, by
// weighted majority vote for classification and weighted mean for
// regression.
package knn

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/go-sod/knn/internal/dataset"
	"github.com/go-sod/knn/internal/geom"
	"github.com/go-sod/knn/internal/predictor"
	"github.com/go-sod/knn/internal/predictor/knn/brute"
)

var _ predictor.Predictor = (*KNN)(nil)

var (
	ErrNoLabels         = errors.New("no target values known for classification")
	ErrNoNeighbors      = errors.New("no neighbors to regress from")
	ErrNonNumericTarget = errors.New("target value is not numeric")
)

type Option func(*KNN)

func WithK(k int) Option {
	return func(n *KNN) {
		n.k = k
	}
}

func WithDistanceWeighting(weighted bool) Option {
	return func(n *KNN) {
		n.weighted = weighted
	}
}

func WithMetric(m geom.Metric) Option {
	return func(n *KNN) {
		n.metric = m
	}
}

// WithSearcher replaces the brute-force search built from the metric.
func WithSearcher(s predictor.Searcher) Option {
	return func(n *KNN) {
		n.searcher = s
	}
}

var defaultMetric = geom.Metric{Real: geom.Euclidean, Categorical: geom.Hamming{}}

func New(data *dataset.Dataset, opts ...Option) (*KNN, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: dataset is not prepared", dataset.ErrConfiguration)
	}
	n := &KNN{
		data:   data,
		k:      DefaultK,
		metric: defaultMetric,
	}
	for _, f := range opts {
		f(n)
	}
	if n.k < 1 {
		return nil, fmt.Errorf("%w: k must be at least 1, got %d", dataset.ErrConfiguration, n.k)
	}
	if n.searcher == nil {
		n.searcher = brute.NewBruteAlg(data, n.metric)
	}
	return n, nil
}

type KNN struct {
	data     *dataset.Dataset
	k        int
	weighted bool
	metric   geom.Metric
	searcher predictor.Searcher
}

func (n *KNN) K() int {
	return n.k
}

func (n *KNN) DistanceWeighting() bool {
	return n.weighted
}

func (n *KNN) Metric() geom.Metric {
	return n.metric
}

// Neighbors returns the k nearest neighbors of query outside the excluded
// fold.
func (n *KNN) Neighbors(query geom.Point, excluded int) ([]predictor.Neighbor, error) {
	if err := n.data.Arity().Check(query); err != nil {
		return nil, err
	}
	nn, err := n.searcher.KNN(query, excluded, n.k)
	if err != nil {
		return nil, fmt.Errorf("unable compute KNN: %w", err)
	}
	return nn, nil
}

// Classify returns the label with the highest score among the neighbors.
// Ties go to the label declared first.
func (n *KNN) Classify(query geom.Point, excluded int) (string, error) {
	labels := n.data.Labels()
	if len(labels) == 0 {
		return "", ErrNoLabels
	}
	nn, err := n.Neighbors(query, excluded)
	if err != nil {
		return "", err
	}

	scores := make([]float64, len(labels))
	for _, neighbor := range nn {
		for i := range labels {
			if neighbor.Point.Target != labels[i] {
				continue
			}
			if n.weighted {
				scores[i] += voteWeight(neighbor.Distance)
			} else {
				scores[i]++
			}
		}
	}

	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return labels[best], nil
}

// Regress returns the mean of the neighbors' numeric targets, weighted by
// inverse squared distance when distance weighting is on.
func (n *KNN) Regress(query geom.Point, excluded int) (float64, error) {
	nn, err := n.Neighbors(query, excluded)
	if err != nil {
		return 0.0, err
	}
	if len(nn) == 0 {
		return 0.0, ErrNoNeighbors
	}

	var sum, weights float64
	for _, neighbor := range nn {
		target, err := ParseTarget(neighbor.Point.Target)
		if err != nil {
			return 0.0, err
		}
		if !n.weighted {
			sum += target
			continue
		}
		w := regressionWeight(neighbor.Distance)
		sum += target * w
		weights += w
	}
	if !n.weighted {
		return sum / float64(len(nn)), nil
	}
	return sum / weights, nil
}

// ParseTarget interprets a target value as a number.
func ParseTarget(value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0.0, fmt.Errorf("%w: %q", ErrNonNumericTarget, value)
	}
	return f, nil
}

// voteWeight is 1/d^2, or 1 for an exact match.
func voteWeight(distance float64) float64 {
	d := distance * distance
	if d == 0 {
		return 1
	}
	return 1 / d
}

// regressionWeight is 1/d^2, or 1 when that is not finite.
func regressionWeight(distance float64) float64 {
	w := 1 / (distance * distance)
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return 1
	}
	return w
}
