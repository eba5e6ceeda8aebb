package setup

import (
	"context"
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/go-sod/knn/internal/database"
	"github.com/go-sod/knn/internal/dataset"
	"github.com/go-sod/knn/internal/experiment"
	"github.com/go-sod/knn/internal/logging"
	"github.com/go-sod/knn/internal/predictor"
	"github.com/go-sod/knn/internal/predictor/knn"
	reportdb "github.com/go-sod/knn/internal/report/database"
	"github.com/go-sod/knn/internal/srvenv"
)

type PredictorConfigProvider interface {
	PredictorConfig() *predictor.Config
}

type DatasetConfigProvider interface {
	DatasetConfig() *dataset.Config
}

type DatabaseConfigProvider interface {
	DatabaseConfig() *database.Config
}

// Setup loads config from the environment and builds the server env from
// whichever providers config implements.
func Setup(ctx context.Context, config interface{}) (*srvenv.SrvEnv, error) {
	logger := logging.FromContext(ctx)
	var serverEnvOpts []srvenv.Option
	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	var (
		defaults   experiment.Defaults
		runnerOpts []experiment.Option
	)
	if predictorConfigProvider, ok := config.(PredictorConfigProvider); ok {
		logger.Info("Configuring predictor")
		cfg := predictorConfigProvider.PredictorConfig()
		if _, err := knn.ProvideFor(*cfg); err != nil {
			return nil, fmt.Errorf("unable create predictor provide function: %w", err)
		}
		defaults.Predictor = *cfg
	}

	if datasetConfigProvider, ok := config.(DatasetConfigProvider); ok {
		logger.Info("Configuring dataset")
		cfg := datasetConfigProvider.DatasetConfig()
		if cfg.Folds <= 0 {
			return nil, fmt.Errorf("%w: folds must be positive, got %d", dataset.ErrConfiguration, cfg.Folds)
		}
		defaults.Dataset = *cfg
	}
	serverEnvOpts = append(serverEnvOpts, srvenv.WithDefaults(defaults))

	if dbConfigProvider, ok := config.(DatabaseConfigProvider); ok && dbConfigProvider.DatabaseConfig().Enabled() {
		logger.Info("Configuring db")
		db, err := database.NewFromEnv(ctx, dbConfigProvider.DatabaseConfig())
		if err != nil {
			return nil, fmt.Errorf("unable to connect to database: %w", err)
		}
		reports := reportdb.New(db)
		runnerOpts = append(runnerOpts, experiment.WithStore(reports))
		serverEnvOpts = append(serverEnvOpts, srvenv.WithDatabase(db), srvenv.WithReports(reports))
	}

	serverEnvOpts = append(serverEnvOpts, srvenv.WithRunner(experiment.NewRunner(runnerOpts...)))
	return srvenv.New(serverEnvOpts...), nil
}
