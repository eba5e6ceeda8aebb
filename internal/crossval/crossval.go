// Package crossval evaluates a predictor with k-fold cross-validation: every
// fold serves once as the validation set while the others form the
// training set.
package crossval

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.opencensus.io/stats"
	"go.opencensus.io/tag"

	"github.com/go-sod/knn/internal/dataset"
	"github.com/go-sod/knn/internal/logging"
	"github.com/go-sod/knn/internal/predictor"
	"github.com/go-sod/knn/internal/predictor/knn"
)

type Task string

const (
	TaskClassification Task = "CLASSIFICATION"
	TaskRegression     Task = "REGRESSION"
)

var ErrUnknownTask = errors.New("unknown task")

func ParseTask(s string) (Task, error) {
	switch t := Task(strings.ToUpper(strings.TrimSpace(s))); t {
	case TaskClassification, TaskRegression:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTask, s)
	}
}

// Result holds one score per fold and their unweighted mean. Scores are
// accuracies for classification and mean absolute errors for regression.
type Result struct {
	Task       Task
	FoldScores []float64
	Score      float64
}

func New(data *dataset.Dataset, p predictor.Predictor) *Evaluator {
	return &Evaluator{data: data, predictor: p}
}

type Evaluator struct {
	data      *dataset.Dataset
	predictor predictor.Predictor
}

// Evaluate runs the task over every fold in index order.
func (e *Evaluator) Evaluate(ctx context.Context, task Task) (*Result, error) {
	var foldFn func(int) (float64, error)
	switch task {
	case TaskClassification:
		foldFn = e.accuracy
	case TaskRegression:
		foldFn = e.meanAbsoluteError
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTask, task)
	}

	logger := logging.FromContext(ctx)
	ctx, err := tag.New(ctx, tag.Upsert(TaskKey, string(task)))
	if err != nil {
		return nil, fmt.Errorf("tagging context: %w", err)
	}

	start := time.Now()
	result := &Result{Task: task, FoldScores: make([]float64, 0, e.data.Folds())}
	for i := 0; i < e.data.Folds(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("evaluation interrupted at fold %d: %w", i, err)
		}
		if len(e.data.Fold(i)) == 0 {
			return nil, fmt.Errorf("%w: fold %d is empty", dataset.ErrConfiguration, i)
		}
		score, err := foldFn(i)
		if err != nil {
			return nil, fmt.Errorf("fold %d: %w", i, err)
		}
		logger.Debugf("fold %d of %d: %s score %v", i+1, e.data.Folds(), task, score)
		stats.Record(ctx, FoldScore.M(score))
		result.FoldScores = append(result.FoldScores, score)
	}
	result.Score = mean(result.FoldScores)
	stats.Record(ctx, EvaluationLatency.M(float64(time.Since(start))/float64(time.Millisecond)))

	return result, nil
}

func (e *Evaluator) accuracy(fold int) (float64, error) {
	points := e.data.Fold(fold)
	var correct int
	for _, p := range points {
		label, err := e.predictor.Classify(p, fold)
		if err != nil {
			return 0.0, err
		}
		if label == p.Target {
			correct++
		}
	}
	return float64(correct) / float64(len(points)), nil
}

func (e *Evaluator) meanAbsoluteError(fold int) (float64, error) {
	points := e.data.Fold(fold)
	var absoluteError float64
	for _, p := range points {
		actual, err := knn.ParseTarget(p.Target)
		if err != nil {
			return 0.0, err
		}
		predicted, err := e.predictor.Regress(p, fold)
		if err != nil {
			return 0.0, err
		}
		absoluteError += math.Abs(predicted - actual)
	}
	return absoluteError / float64(len(points)), nil
}

func mean(values []float64) float64 {
	var s float64
	for _, v := range values {
		s += v
	}
	return s / float64(len(values))
}
