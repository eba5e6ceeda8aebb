package crossval

import (
	"fmt"
	"time"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
	"go.uber.org/zap"
)

var (
	TaskKey = tag.MustNewKey("task")

	FoldScore         = stats.Float64("knn/fold_score", "Per-fold accuracy or mean absolute error", stats.UnitDimensionless)
	EvaluationLatency = stats.Float64("knn/evaluation_latency", "Duration of a full cross-validation run", stats.UnitMilliseconds)
)

var Views = []*view.View{
	{
		Name:        "knn/fold_score",
		Measure:     FoldScore,
		Description: "Distribution of per-fold scores",
		TagKeys:     []tag.Key{TaskKey},
		Aggregation: view.Distribution(0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1, 10, 100, 1000, 10000),
	},
	{
		Name:        "knn/evaluation_latency",
		Measure:     EvaluationLatency,
		Description: "Distribution of cross-validation run durations",
		TagKeys:     []tag.Key{TaskKey},
		Aggregation: view.Distribution(1, 5, 10, 50, 100, 500, 1000, 5000, 10000, 60000),
	},
	{
		Name:        "knn/evaluations",
		Measure:     EvaluationLatency,
		Description: "Number of cross-validation runs",
		TagKeys:     []tag.Key{TaskKey},
		Aggregation: view.Count(),
	},
}

// RegisterViews makes the cross-validation measures visible to exporters.
func RegisterViews() error {
	if err := view.Register(Views...); err != nil {
		return fmt.Errorf("registering views: %w", err)
	}
	return nil
}

// LogExporter writes view data to a logger, one entry per row.
type LogExporter struct {
	logger *zap.SugaredLogger
}

func NewLogExporter(logger *zap.SugaredLogger) *LogExporter {
	return &LogExporter{logger: logger}
}

func (e *LogExporter) ExportView(vd *view.Data) {
	for _, row := range vd.Rows {
		tags := make(map[string]string, len(row.Tags))
		for _, t := range row.Tags {
			tags[t.Key.Name()] = t.Value
		}
		e.logger.Infow("view", "name", vd.View.Name, "tags", tags, "data", row.Data)
	}
}

// Flush hands the current data of every registered view to exp. Runs that
// end before the reporting period would otherwise never be exported.
func Flush(exp view.Exporter, since time.Time) error {
	end := time.Now()
	for _, v := range Views {
		rows, err := view.RetrieveData(v.Name)
		if err != nil {
			return fmt.Errorf("retrieving %s: %w", v.Name, err)
		}
		exp.ExportView(&view.Data{View: v, Start: since, End: end, Rows: rows})
	}
	return nil
}
