package dataset

type Config struct {
	// Number of cross-validation folds
	Folds int `envconfig:"KNN_FOLDS" default:"10"`
	// Seed of the shuffle that precedes fold assignment
	Seed int64 `envconfig:"KNN_SEED" default:"4"`
}
