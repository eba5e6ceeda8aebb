package model

import (
	"time"

	"github.com/google/uuid"
)

func NewReport(experiment string, createdAt time.Time) Report {
	return Report{
		ID:         uuid.New(),
		Experiment: experiment,
		CreatedAt:  createdAt,
	}
}

// Report is the outcome of one cross-validated experiment.
type Report struct {
	ID                  uuid.UUID `json:"id"`
	Experiment          string    `json:"experiment"`
	Dataset             string    `json:"dataset"`
	Task                string    `json:"task"`
	Target              string    `json:"target"`
	Labels              []string  `json:"labels,omitempty"`
	Ignored             []string  `json:"ignored,omitempty"`
	Points              int       `json:"points"`
	K                   int       `json:"k"`
	Folds               int       `json:"folds"`
	Seed                int64     `json:"seed"`
	DistanceWeighting   bool      `json:"distanceWeighting"`
	RealDistance        string    `json:"realDistance"`
	CategoricalDistance string    `json:"categoricalDistance"`
	FoldScores          []float64 `json:"foldScores"`
	Score               float64   `json:"score"`
	CreatedAt           time.Time `json:"createdAt"`
}

// ScoreName is "accuracy" for classification and "mean absolute error" for
// regression reports.
func (r Report) ScoreName() string {
	if r.Task == "REGRESSION" {
		return "mean absolute error"
	}
	return "accuracy"
}
