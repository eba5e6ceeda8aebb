package srvenv

import (
	"context"

	"github.com/go-sod/knn/internal/database"
	"github.com/go-sod/knn/internal/experiment"
	reportdb "github.com/go-sod/knn/internal/report/database"
)

type Option func(*SrvEnv) *SrvEnv

func New(opts ...Option) *SrvEnv {
	env := &SrvEnv{}
	for _, f := range opts {
		env = f(env)
	}

	return env
}

type SrvEnv struct {
	database *database.DB
	reports  *reportdb.DB
	runner   *experiment.Runner
	defaults experiment.Defaults
}

// Reports is nil when no database is configured.
func (s *SrvEnv) Reports() *reportdb.DB {
	return s.reports
}

func (s *SrvEnv) Runner() *experiment.Runner {
	return s.runner
}

func (s *SrvEnv) Defaults() experiment.Defaults {
	return s.defaults
}

func WithDatabase(db *database.DB) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.database = db
		return s
	}
}

func WithReports(db *reportdb.DB) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.reports = db
		return s
	}
}

func WithRunner(r *experiment.Runner) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.runner = r
		return s
	}
}

func WithDefaults(d experiment.Defaults) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.defaults = d
		return s
	}
}

func (s *SrvEnv) Close(ctx context.Context) error {
	if s == nil {
		return nil
	}

	if s.database != nil {
		return s.database.Close(ctx)
	}
	return nil
}
