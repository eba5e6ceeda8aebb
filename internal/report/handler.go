// Package report serves stored cross-validation reports over HTTP.
package report

import (
	"context"
	"net/http"

	"github.com/go-sod/knn/internal/crossval"
	"github.com/go-sod/knn/internal/httputil"
	"github.com/go-sod/knn/internal/report/database"
	"github.com/go-sod/knn/internal/report/model"
)

type Finder interface {
	FindAll(ctx context.Context, filter database.FilterFn) ([]model.Report, error)
	FindByExperiment(experiment string, filter database.FilterFn) ([]model.Report, error)
}

type response struct {
	Reports []model.Report `json:"reports"`
}

func NewHandler(cfg *Config, finder Finder) (http.Handler, error) {
	return &handler{
		cfg:    cfg,
		finder: finder,
	}, nil
}

type handler struct {
	cfg    *Config
	finder Finder
}

// ServeHTTP answers GET /reports[?experiment=name][&task=task]. The task is
// matched case-insensitively.
func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	if r.Method != http.MethodGet {
		httputil.RespMethodNotAllowed(ctx, w, r.Method)
		return
	}

	var filter database.FilterFn
	if raw := r.URL.Query().Get("task"); raw != "" {
		task, err := crossval.ParseTask(raw)
		if err != nil {
			httputil.RespBadRequest(ctx, w, `{"error": "unknown task, expected classification or regression"}`)
			return
		}
		filter = func(report model.Report) bool {
			return report.Task == string(task)
		}
	}

	var (
		reports []model.Report
		err     error
	)
	if experiment := r.URL.Query().Get("experiment"); experiment != "" {
		reports, err = h.finder.FindByExperiment(experiment, filter)
	} else {
		reports, err = h.finder.FindAll(ctx, filter)
	}
	if err != nil {
		httputil.RespInternalError(ctx, w, `{"error": "unable to read reports, %v"}`, err)
		return
	}
	if reports == nil {
		reports = []model.Report{}
	}

	httputil.RespJSON(ctx, w, http.StatusOK, response{Reports: reports})
}
