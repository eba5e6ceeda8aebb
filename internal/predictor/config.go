package predictor

type Config struct {
	// Number of neighbors considered
	K int `envconfig:"KNN_K" default:"3"`
	// Weight neighbors by 1/d^2 instead of uniformly
	DistanceWeighting bool `envconfig:"KNN_DISTANCE_WEIGHTING" default:"false"`
	// MINKOWSKI, EUCLIDEAN, MANHATTAN or CHEBYSHEV
	RealDistance string `envconfig:"KNN_REAL_DISTANCE" default:"MINKOWSKI"`
	// Exponent of the MINKOWSKI distance
	P float64 `envconfig:"KNN_P" default:"2"`
	// HAMMING or IGNORE
	CategoricalDistance string `envconfig:"KNN_CATEGORICAL_DISTANCE" default:"HAMMING"`
}
