package crossval

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/go-sod/knn/internal/dataset"
	"github.com/go-sod/knn/internal/geom"
	"github.com/go-sod/knn/internal/predictor/knn"
)

func point(v float64, target string) geom.Point {
	return geom.NewPoint([]float64{v}, nil, target)
}

func TestEvaluate_FourPointScenario(t *testing.T) {
	t.Parallel()
	points := []geom.Point{
		point(0.0, "A"),
		point(0.2, "A"),
		point(0.8, "B"),
		point(1.0, "B"),
	}
	for _, seed := range []int64{1, 4, 42} {
		data, err := dataset.Prepare(points, dataset.WithFolds(4), dataset.WithSeed(seed), dataset.WithLabels([]string{"A", "B"}))
		if err != nil {
			t.Fatalf("prepare: %v", err)
		}
		p, err := knn.New(data, knn.WithK(1), knn.WithMetric(geom.Metric{Real: geom.Euclidean, Categorical: geom.Ignore{}}))
		if err != nil {
			t.Fatalf("new: %v", err)
		}
		result, err := New(data, p).Evaluate(context.Background(), TaskClassification)
		if err != nil {
			t.Fatalf("evaluate: %v", err)
		}
		if result.Score != 1.0 || len(result.FoldScores) != 4 {
			t.Errorf("seed %d: classification score, got:\n%s expected 1.0 over 4 folds", seed, spew.Sdump(result))
		}
	}
}

func TestEvaluate_UnweightedFoldMean(t *testing.T) {
	t.Parallel()
	// Fold 0 has one point classified wrongly, fold 1 has three points
	// classified correctly: mean of fold accuracies is 0.5, pooled accuracy
	// would be 0.75.
	data, err := dataset.FromFolds([][]geom.Point{
		{point(0.1, "B")},
		{point(0.0, "A"), point(0.05, "A"), point(0.9, "B")},
	}, []string{"A", "B"})
	if err != nil {
		t.Fatalf("building dataset: %v", err)
	}
	p, err := knn.New(data, knn.WithK(1))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	stub := &foldPredictor{KNN: p, oracle: map[int]bool{1: true}}
	result, err := New(data, stub).Evaluate(context.Background(), TaskClassification)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if result.FoldScores[0] != 0 || result.FoldScores[1] != 1 || result.Score != 0.5 {
		t.Errorf("fold scores, got:\n%s expected [0 1] with score 0.5", spew.Sdump(result))
	}
}

// foldPredictor answers classification of fold 1 with each point's own
// label and defers everything else to the wrapped predictor.
type foldPredictor struct {
	*knn.KNN
	oracle map[int]bool
}

func (f *foldPredictor) Classify(query geom.Point, excluded int) (string, error) {
	if f.oracle[excluded] {
		return query.Target, nil
	}
	return f.KNN.Classify(query, excluded)
}

func TestEvaluate_Regression(t *testing.T) {
	t.Parallel()
	data, err := dataset.FromFolds([][]geom.Point{
		{point(0.0, "1"), point(1.0, "5")},
		{point(0.25, "2"), point(0.75, "4")},
	}, nil)
	if err != nil {
		t.Fatalf("building dataset: %v", err)
	}
	p, err := knn.New(data, knn.WithK(1))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	result, err := New(data, p).Evaluate(context.Background(), TaskRegression)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	// fold 0: 0.0 -> 0.25 (2), 1.0 -> 0.75 (4): errors 1 and 1
	// fold 1: 0.25 -> 0.0 (1), 0.75 -> 1.0 (5): errors 1 and 1
	expected := []float64{1, 1}
	for i := range expected {
		if math.Abs(result.FoldScores[i]-expected[i]) > 1e-12 {
			t.Errorf("fold %d MAE, got: %v, expected: %v", i, result.FoldScores[i], expected[i])
		}
	}
	if math.Abs(result.Score-1) > 1e-12 {
		t.Errorf("mean MAE, got: %v, expected: 1", result.Score)
	}
}

func TestEvaluate_Errors(t *testing.T) {
	t.Parallel()
	data, err := dataset.FromFolds([][]geom.Point{
		{point(0.0, "A")},
		{point(1.0, "B")},
	}, nil)
	if err != nil {
		t.Fatalf("building dataset: %v", err)
	}
	p, err := knn.New(data, knn.WithK(1))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	e := New(data, p)

	if _, err := e.Evaluate(context.Background(), Task("CLUSTERING")); !errors.Is(err, ErrUnknownTask) {
		t.Errorf("unknown task, got: %v, expected: %v", err, ErrUnknownTask)
	}
	if _, err := e.Evaluate(context.Background(), TaskRegression); !errors.Is(err, knn.ErrNonNumericTarget) {
		t.Errorf("regression over labels, got: %v, expected: %v", err, knn.ErrNonNumericTarget)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Evaluate(ctx, TaskClassification); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled context, got: %v, expected: %v", err, context.Canceled)
	}

	empty, err := dataset.FromFolds([][]geom.Point{{point(0.0, "A")}, {}}, nil)
	if err != nil {
		t.Fatalf("building dataset: %v", err)
	}
	p, err = knn.New(empty, knn.WithK(1))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := New(empty, p).Evaluate(context.Background(), TaskClassification); !errors.Is(err, dataset.ErrConfiguration) {
		t.Errorf("empty fold, got: %v, expected: %v", err, dataset.ErrConfiguration)
	}
}

func TestParseTask(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in       string
		expected Task
		err      error
	}{
		{in: "classification", expected: TaskClassification},
		{in: " Regression ", expected: TaskRegression},
		{in: "ranking", err: ErrUnknownTask},
	}
	for _, test := range tests {
		got, err := ParseTask(test.in)
		if !errors.Is(err, test.err) || got != test.expected {
			t.Errorf("parse %q, got: %q, %v, expected: %q, %v", test.in, got, err, test.expected, test.err)
		}
	}
}
