package config

import (
	"github.com/go-sod/knn/internal/database"
	"github.com/go-sod/knn/internal/dataset"
	"github.com/go-sod/knn/internal/predictor"
	"github.com/go-sod/knn/internal/report"
	"github.com/go-sod/knn/internal/setup"
)

var (
	_ setup.PredictorConfigProvider = (*Config)(nil)
	_ setup.DatasetConfigProvider   = (*Config)(nil)
	_ setup.DatabaseConfigProvider  = (*Config)(nil)
)

type Config struct {
	SrvAddr         string `envconfig:"KNN_ADDR" default:":8787"`
	ExperimentsFile string `envconfig:"KNN_EXPERIMENTS_FILE" default:"experiments.toml"`
	Predictor       predictor.Config
	Dataset         dataset.Config
	Database        database.Config
	Report          report.Config
}

func (c *Config) PredictorConfig() *predictor.Config {
	return &c.Predictor
}

func (c *Config) DatasetConfig() *dataset.Config {
	return &c.Dataset
}

func (c *Config) DatabaseConfig() *database.Config {
	return &c.Database
}

func (c *Config) ReportConfig() *report.Config {
	return &c.Report
}
