// Package brute implements exact nearest-neighbor search by scanning every
// training point.
package brute

import (
	"fmt"

	"github.com/go-sod/knn/internal/dataset"
	"github.com/go-sod/knn/internal/geom"
	"github.com/go-sod/knn/internal/predictor"
	"github.com/go-sod/knn/pkg/pqueue"
)

var _ predictor.Searcher = (*Brute)(nil)

func NewBruteAlg(data *dataset.Dataset, metric geom.Metric) *Brute {
	return &Brute{data: data, metric: metric}
}

type Brute struct {
	data   *dataset.Dataset
	metric geom.Metric
}

// KNN returns at most k neighbors of vec ascending by composite distance.
// Equal distances keep training-set order. Fewer than k neighbors are
// returned only when the training set is smaller than k.
func (b *Brute) KNN(vec geom.Point, excluded int, k int) ([]predictor.Neighbor, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", dataset.ErrConfiguration, k)
	}
	list := b.data.TrainingSet(excluded)
	pq := pqueue.New[int](pqueue.WithCap(uint(k)))
	distances := make([]float64, len(list))
	for i := range list {
		distance, err := b.metric.Distance(&list[i], &vec)
		if err != nil {
			return nil, fmt.Errorf(
				"unable to compute distance between %v and %v: %w",
				vec, list[i], err,
			)
		}
		distances[i] = distance
		pq.Push(i, distance)
	}

	knn := make([]predictor.Neighbor, 0, pq.Len())
	for _, idx := range pq.PopAll() {
		knn = append(knn, predictor.Neighbor{Point: list[idx], Distance: distances[idx]})
	}
	return knn, nil
}
