package experiment

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/go-sod/knn/internal/crossval"
	"github.com/go-sod/knn/internal/dataset"
	"github.com/go-sod/knn/internal/logging"
	"github.com/go-sod/knn/internal/predictor/knn"
	"github.com/go-sod/knn/internal/report/model"
)

type Store interface {
	Store(ctx context.Context, report model.Report) error
}

type Option func(*Runner)

// WithStore persists every successful report.
func WithStore(s Store) Option {
	return func(r *Runner) {
		r.store = s
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

func NewRunner(opts ...Option) *Runner {
	r := &Runner{now: time.Now}
	for _, f := range opts {
		f(r)
	}
	return r
}

type Runner struct {
	store Store
	now   func() time.Time
}

// Run loads the experiment's dataset, cross-validates the configured
// predictor over it and returns the resulting report.
func (r *Runner) Run(ctx context.Context, e Experiment) (*model.Report, error) {
	logger := logging.FromContext(ctx).With("experiment", e.Name)

	task, err := crossval.ParseTask(e.Task)
	if err != nil {
		return nil, err
	}
	predictorCfg := e.PredictorConfig()
	datasetCfg := e.DatasetConfig()
	metric, err := knn.MetricFor(predictorCfg)
	if err != nil {
		return nil, fmt.Errorf("resolving metric: %w", err)
	}
	provideFn, err := knn.ProvideFor(predictorCfg)
	if err != nil {
		return nil, err
	}

	schema, rows, err := readDataset(e.Dataset)
	if err != nil {
		return nil, err
	}
	points, labels, err := schema.Extract(rows, e.Target, e.Ignored)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", e.Dataset, err)
	}
	data, err := dataset.Prepare(
		points,
		dataset.WithFolds(datasetCfg.Folds),
		dataset.WithSeed(datasetCfg.Seed),
		dataset.WithLabels(labels),
	)
	if err != nil {
		return nil, fmt.Errorf("preparing %s: %w", e.Dataset, err)
	}
	p, err := provideFn(data)
	if err != nil {
		return nil, err
	}

	logger.Infof("evaluating %s over %d points in %d folds", task, data.Len(), data.Folds())
	result, err := crossval.New(data, p).Evaluate(logging.WithLogger(ctx, logger), task)
	if err != nil {
		return nil, fmt.Errorf("evaluating %s: %w", e.Name, err)
	}

	report := model.NewReport(e.Name, r.now())
	report.Dataset = e.Dataset
	report.Task = string(task)
	report.Target = e.Target
	report.Ignored = e.Ignored
	report.Points = data.Len()
	report.K = predictorCfg.K
	report.Folds = datasetCfg.Folds
	report.Seed = datasetCfg.Seed
	report.DistanceWeighting = predictorCfg.DistanceWeighting
	report.RealDistance = metric.Real.String()
	report.CategoricalDistance = metric.Categorical.String()
	report.FoldScores = result.FoldScores
	report.Score = result.Score
	if task == crossval.TaskClassification {
		report.Labels = data.Labels()
	}
	logger.Infof("%s: %v", report.ScoreName(), report.Score)

	if r.store != nil {
		if err := r.store.Store(ctx, report); err != nil {
			return nil, fmt.Errorf("storing report: %w", err)
		}
	}
	return &report, nil
}

// readDataset decodes an ARFF file, gunzipping it first when path ends
// in .gz.
func readDataset(path string) (*dataset.Schema, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, nil, fmt.Errorf("reading %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}

	schema, rows, err := dataset.DecodeARFF(r)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return schema, rows, nil
}

// WriteSummary prints a human readable account of report.
func WriteSummary(w io.Writer, report *model.Report) error {
	task := "classification"
	if report.Task == string(crossval.TaskRegression) {
		task = "regression"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Results for %d-NearestNeighbor %s with %d-fold cross-validation for the data set %s:\n",
		report.K, task, report.Folds, report.Dataset)
	if len(report.Labels) > 0 {
		fmt.Fprintf(&b, "Target attribute: %s (Possible values: %v)\n", report.Target, report.Labels)
	} else {
		fmt.Fprintf(&b, "Target attribute: %s\n", report.Target)
	}
	fmt.Fprintf(&b, "Real value distance function: %s\n", report.RealDistance)
	fmt.Fprintf(&b, "Categorical value distance function: %s\n", report.CategoricalDistance)
	if task == "regression" {
		fmt.Fprintf(&b, "The target attribute was predicted with a mean absolute error of %v\n", report.Score)
	} else {
		fmt.Fprintf(&b, "The target attribute was correctly classified %v%% of the time\n", 100*report.Score)
	}
	fmt.Fprintf(&b, "Attributes omitted: %v\n", report.Ignored)
	_, err := io.WriteString(w, b.String())
	return err
}
