package ui

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"numcmp/domain/core"
	"numcmp/domain/stats"
	"numcmp/internal"
	"numcmp/internal/report"
	"numcmp/ports"
)

// App is a read-only browser over the run ledger: a run list and a rendered
// HTML report per run. It never writes to the ledger.
type App struct {
	router *chi.Mux
	ledger ports.RunLedgerPort
	logger *internal.Logger
}

// NewApp creates the report browser over the given ledger.
func NewApp(ledger ports.RunLedgerPort, logger *internal.Logger) *App {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	app := &App{
		router: chi.NewRouter(),
		ledger: ledger,
		logger: logger,
	}

	app.router.Use(middleware.Logger)
	app.router.Use(middleware.Recoverer)

	app.router.Get("/runs", app.handleRunList)
	app.router.Get("/runs/{id}", app.handleRunReport)

	return app
}

// Run starts the report browser on the given address.
func (a *App) Run(addr string) error {
	a.logger.Info("report browser listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// ServeHTTP dispatches to the underlying router.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

func (a *App) handleRunList(w http.ResponseWriter, r *http.Request) {
	runs, err := a.ledger.ListRuns(r.Context(), 100)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<html><body><h1>Comparison runs</h1><ul>")
	for _, run := range runs {
		fmt.Fprintf(w, `<li><a href="/runs/%s">%s</a>: %s vs %s, %d iterations, %s</li>`,
			run.ID, run.ID, run.BaselineRef, run.TargetRef, run.Iterations,
			run.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprint(w, "</ul></body></html>")
}

func (a *App) handleRunReport(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid run id", http.StatusBadRequest)
		return
	}

	run, err := a.ledger.GetRun(r.Context(), id)
	if err != nil {
		if core.IsNotFoundError(err) {
			http.Error(w, "run not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Ledger rows don't carry the full summaries; rebuild the summary block
	// from the stored per-estimator statistics and sample counts.
	cmp := report.Comparison{
		BaselineRef:     run.BaselineRef,
		TargetRef:       run.TargetRef,
		BaselineSummary: summaryFromResults(run.BaselineCount, run.Results, func(res stats.EstimatorResult) float64 { return res.BaselineStat }),
		TargetSummary:   summaryFromResults(run.TargetCount, run.Results, func(res stats.EstimatorResult) float64 { return res.TargetStat }),
		Results:         run.Results,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(report.RenderHTML(cmp))
}

func summaryFromResults(count int, results []stats.EstimatorResult, pick func(stats.EstimatorResult) float64) stats.SampleSummary {
	summary := stats.SampleSummary{Count: count, Values: make([]stats.NamedValue, 0, len(results))}
	for _, res := range results {
		summary.Values = append(summary.Values, stats.NamedValue{Name: res.Name, Value: pick(res)})
	}
	return summary
}
