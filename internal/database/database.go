package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	retry "github.com/sethvargo/go-retry"
	bolt "go.etcd.io/bbolt"

	"github.com/go-sod/knn/internal/logging"
)

const defaultOpenBackoff = 500 * time.Millisecond

type DB struct {
	DB *bolt.DB
}

// NewFromEnv opens the bbolt file named by config. The file lock is retried
// while another process holds it.
func NewFromEnv(ctx context.Context, config *Config) (*DB, error) {
	logger := logging.FromContext(ctx)
	logger.Infof("opening report db %s", config.FileName)

	backoff := config.OpenBackoff
	if backoff <= 0 {
		backoff = defaultOpenBackoff
	}
	var db *bolt.DB
	b := retry.WithMaxRetries(config.OpenRetries, retry.NewFibonacci(backoff))
	if err := retry.Do(ctx, b, func(ctx context.Context) error {
		opened, err := bolt.Open(config.FileName, 0600, &bolt.Options{Timeout: config.LockTimeout})
		if errors.Is(err, bolt.ErrTimeout) {
			logger.Warnf("%s is locked, will retry", config.FileName)
			return retry.RetryableError(err)
		}
		if err != nil {
			return err
		}
		db = opened
		return nil
	}); err != nil {
		return nil, fmt.Errorf("opening db %s: %w", config.FileName, err)
	}

	return &DB{DB: db}, nil
}

func (db *DB) Close(ctx context.Context) error {
	logger := logging.FromContext(ctx)
	logger.Infof("closing DB connection")

	if err := db.DB.Close(); err != nil {
		return fmt.Errorf("error close Db connection: %w", err)
	}

	return nil
}
