package predictor

import (
	"github.com/go-sod/knn/internal/dataset"
	"github.com/go-sod/knn/internal/geom"
)

// ProvideFn builds a predictor over a prepared dataset.
type ProvideFn func(data *dataset.Dataset) (Predictor, error)

// Neighbor is a training point together with its composite distance to the
// query.
type Neighbor struct {
	Point    geom.Point
	Distance float64
}

// Searcher returns the k nearest training points to a query, ascending by
// distance, with the excluded fold left out of the training set.
type Searcher interface {
	KNN(query geom.Point, excluded int, k int) ([]Neighbor, error)
}

type Classifier interface {
	Classify(query geom.Point, excluded int) (string, error)
}

type Regressor interface {
	Regress(query geom.Point, excluded int) (float64, error)
}

type Predictor interface {
	Classifier
	Regressor
}
