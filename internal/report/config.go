package report

import "time"

type Config struct {
	RequestTimeout time.Duration `envconfig:"KNN_REPORT_REQUEST_TIMEOUT" default:"30s"`
}
