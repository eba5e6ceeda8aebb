package main

import (
	"os"

	"github.com/go-sod/knn/internal/logging"
	"github.com/go-sod/knn/internal/shutdown"
)

func main() {
	ctx, done := shutdown.New()
	logger := logging.NewLoggerFromEnv()
	ctx = logging.WithLogger(ctx, logger)

	err := rootCmd.ExecuteContext(ctx)
	done()
	if err != nil {
		logger.Error(err)
		_ = logger.Sync()
		os.Exit(1)
	}
}
