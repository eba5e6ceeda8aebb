package database

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	bolt "go.etcd.io/bbolt"

	"github.com/go-sod/knn/internal/database"
	"github.com/go-sod/knn/internal/report/model"
)

const (
	experimentKeys = "experiment:keys:"
	prefix         = "report:"
)

type FilterFn func(report model.Report) bool

func New(db *database.DB) *DB {
	return &DB{sDB: db}
}

type DB struct {
	sDB *database.DB
}

func (db *DB) extractKey(key string) string {
	prefixPos := strings.Index(key, prefix)

	return key[prefixPos+len(prefix):]
}

// Keys returns the names of experiments that have stored reports.
func (db *DB) Keys() ([]string, error) {
	var bucketKeys []string
	err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(experimentKeys))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			bucketKeys = append(bucketKeys, db.extractKey(string(k)))
		}
		return nil
	})

	return bucketKeys, err
}

func (db *DB) Store(_ context.Context, report model.Report) error {
	bytes, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(prefix + report.Experiment))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		if err := b.Put([]byte(report.ID.String()), bytes); err != nil {
			return fmt.Errorf("put to bucket error: %w", err)
		}
		b, err = tx.CreateBucketIfNotExists([]byte(experimentKeys))
		if err != nil {
			return fmt.Errorf("unable create experiments bucket: %w", err)
		}
		if err := b.Put([]byte(prefix+report.Experiment), []byte{0x0}); err != nil {
			return fmt.Errorf("unable put to experiments bucket: %w", err)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("update transaction error: %w", err)
	}

	return nil
}

// FindAll returns every stored report accepted by filter, oldest first.
func (db *DB) FindAll(_ context.Context, filter FilterFn) ([]model.Report, error) {
	var reports []model.Report
	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		keys := tx.Bucket([]byte(experimentKeys))
		if keys == nil {
			return nil
		}
		return keys.ForEach(func(key, _ []byte) error {
			found, err := scan(tx.Bucket(key), filter)
			if err != nil {
				return err
			}
			reports = append(reports, found...)
			return nil
		})
	}); err != nil {
		return nil, fmt.Errorf("view transaction error: %w", err)
	}

	sortByCreation(reports)
	return reports, nil
}

// FindByExperiment returns the reports of one experiment accepted by filter,
// oldest first.
func (db *DB) FindByExperiment(experiment string, filter FilterFn) ([]model.Report, error) {
	var list []model.Report
	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		found, err := scan(tx.Bucket([]byte(prefix+experiment)), filter)
		list = found
		return err
	}); err != nil {
		return nil, fmt.Errorf("view transaction error: %w", err)
	}

	sortByCreation(list)
	return list, nil
}

func scan(b *bolt.Bucket, filter FilterFn) ([]model.Report, error) {
	if b == nil {
		return nil, nil
	}
	var list []model.Report
	c := b.Cursor()
	for k, v := c.First(); k != nil; k, v = c.Next() {
		var report model.Report
		if err := json.Unmarshal(v, &report); err != nil {
			return nil, fmt.Errorf("json unmarshal error, %w", err)
		}
		if filter == nil || filter(report) {
			list = append(list, report)
		}
	}
	return list, nil
}

func sortByCreation(reports []model.Report) {
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].CreatedAt.Before(reports[j].CreatedAt)
	})
}
