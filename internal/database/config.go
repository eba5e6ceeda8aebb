package database

import "time"

type Config struct {
	FileName    string        `envconfig:"KNN_DB_FILENAME"`
	LockTimeout time.Duration `envconfig:"KNN_DB_LOCK_TIMEOUT" default:"1s"`
	OpenRetries uint64        `envconfig:"KNN_DB_OPEN_RETRIES" default:"3"`
	OpenBackoff time.Duration `envconfig:"KNN_DB_OPEN_BACKOFF" default:"500ms"`
}

// Enabled reports whether a database file is configured.
func (c *Config) Enabled() bool {
	return c.FileName != ""
}
