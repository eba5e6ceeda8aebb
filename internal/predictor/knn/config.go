package knn

import (
	"fmt"
	"strings"

	"github.com/go-sod/knn/internal/dataset"
	"github.com/go-sod/knn/internal/geom"
	"github.com/go-sod/knn/internal/predictor"
)

const DefaultK = 3

const (
	RealDistanceMinkowski = "MINKOWSKI"
	RealDistanceEuclidean = "EUCLIDEAN"
	RealDistanceManhattan = "MANHATTAN"
	RealDistanceChebyshev = "CHEBYSHEV"

	CategoricalDistanceHamming = "HAMMING"
	CategoricalDistanceIgnore  = "IGNORE"
)

func RealDistanceFor(name string, p float64) (geom.RealDistance, error) {
	switch strings.ToUpper(name) {
	case RealDistanceMinkowski:
		n, err := geom.NewPNorm(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", dataset.ErrConfiguration, err)
		}
		return n, nil
	case RealDistanceEuclidean:
		return geom.Euclidean, nil
	case RealDistanceManhattan:
		return geom.Manhattan, nil
	case RealDistanceChebyshev:
		return geom.Chebyshev{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown real distance function: %s", dataset.ErrConfiguration, name)
	}
}

func CategoricalDistanceFor(name string) (geom.CategoricalDistance, error) {
	switch strings.ToUpper(name) {
	case CategoricalDistanceHamming:
		return geom.Hamming{}, nil
	case CategoricalDistanceIgnore:
		return geom.Ignore{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown categorical distance function: %s", dataset.ErrConfiguration, name)
	}
}

// MetricFor resolves the distance functions named in cfg.
func MetricFor(cfg predictor.Config) (geom.Metric, error) {
	r, err := RealDistanceFor(cfg.RealDistance, cfg.P)
	if err != nil {
		return geom.Metric{}, err
	}
	c, err := CategoricalDistanceFor(cfg.CategoricalDistance)
	if err != nil {
		return geom.Metric{}, err
	}
	return geom.Metric{Real: r, Categorical: c}, nil
}

// ProvideFor returns a factory of predictors configured by cfg.
func ProvideFor(cfg predictor.Config) (predictor.ProvideFn, error) {
	metric, err := MetricFor(cfg)
	if err != nil {
		return nil, fmt.Errorf("unable provide distance function: %w", err)
	}
	return func(data *dataset.Dataset) (predictor.Predictor, error) {
		n, err := New(
			data,
			WithK(cfg.K),
			WithDistanceWeighting(cfg.DistanceWeighting),
			WithMetric(metric),
		)
		if err != nil {
			return nil, fmt.Errorf("unable create knn instance: %w", err)
		}
		return n, nil
	}, nil
}
