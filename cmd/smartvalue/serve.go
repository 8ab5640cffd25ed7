package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/smartvalue/internal/config"
	"github.com/vango-dev/smartvalue/internal/demo"
	"github.com/vango-dev/smartvalue/internal/errors"
	"github.com/vango-dev/smartvalue/internal/metrics"
	"github.com/vango-dev/smartvalue/pkg/vango"
)

func serveCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the counter demo over HTTP",
		Long: `Serve both counters side by side: one with reactive storage and one
with silent storage.

Routes:
  GET  /                    HTML page with both counters
  GET  /api/{counter}       counter snapshot as JSON
  POST /api/{counter}/{action}
  GET  /ws/{counter}        WebSocket pushing a snapshot after every re-render
  GET  /metrics             Prometheus metrics (if enabled)

Examples:
  smartvalue serve
  smartvalue serve --addr :8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Serve.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, a.cfg, a.logger, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Address to listen on (default from config)")

	return cmd
}

// demoServer serves the two demo counters.
type demoServer struct {
	counters map[string]*demo.Counter
	order    []string
	live     *liveServer
	logger   *slog.Logger
}

func newDemoServer(cfg *config.Config, logger *slog.Logger, registry *prometheus.Registry) *demoServer {
	var collector *metrics.Collector
	if registry != nil {
		collector = metrics.New(
			metrics.WithRegistry(registry),
			metrics.WithNamespace(cfg.Metrics.Namespace),
		)
	}

	s := &demoServer{
		counters: make(map[string]*demo.Counter),
		logger:   logger.With("component", "server"),
	}
	s.live = newLiveServer(s.logger)
	for _, useRef := range []bool{false, true} {
		name := "reactive"
		if useRef {
			name = "silent"
		}
		s.counters[name] = demo.NewCounter(demo.Config{
			Name:    name,
			Initial: cfg.Demo.Initial,
			UseRef:  useRef,
			Metrics: collector,
			Logger:  logger,
		})
		s.live.attach(s.counters[name])
		s.order = append(s.order, name)
	}
	return s
}

func (s *demoServer) close() {
	s.live.close()
	for _, c := range s.counters {
		c.Close()
	}
}

func (s *demoServer) routes(registry *prometheus.Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(releaseTracking)

	r.Get("/", s.handleIndex)
	r.Route("/api/{counter}", func(r chi.Router) {
		r.Get("/", s.handleSnapshot)
		r.Post("/{action}", s.handleAction)
	})
	r.Get("/ws/{counter}", s.handleLive)
	if registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	return r
}

// releaseTracking drops the reactive tracking context of the request goroutine.
func releaseTracking(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer vango.ReleaseTrackingContext()
		next.ServeHTTP(w, r)
	})
}

var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html>
<head><title>smartvalue</title></head>
<body>
{{range .}}
<section data-counter="{{.Name}}">
  <h2>{{.Name}} ({{.Mode}})</h2>
  <form method="post" action="/api/{{.Name}}/inc"><button>Increment</button></form>
  <form method="post" action="/api/{{.Name}}/reset"><button>reset</button></form>
  <p class="view">{{.View}}</p>
  <p class="stored">Stored value: {{.Current}} &middot; renders: {{.Renders}}</p>
</section>
{{end}}
` + liveScript + `
</body>
</html>
`))

func (s *demoServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	snaps := make([]demo.Snapshot, 0, len(s.order))
	for _, name := range s.order {
		snaps = append(snaps, s.counters[name].Snapshot())
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, snaps); err != nil {
		s.logger.Error("render index", "error", err)
	}
}

func (s *demoServer) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	counter, ok := s.counters[chi.URLParam(r, "counter")]
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, counter.Snapshot())
}

func (s *demoServer) handleLive(w http.ResponseWriter, r *http.Request) {
	counter, ok := s.counters[chi.URLParam(r, "counter")]
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.live.handle(w, r, counter)
}

func (s *demoServer) handleAction(w http.ResponseWriter, r *http.Request) {
	counter, ok := s.counters[chi.URLParam(r, "counter")]
	if !ok {
		http.NotFound(w, r)
		return
	}

	action, err := demo.ParseAction(chi.URLParam(r, "action"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	snap := counter.Apply(r.Context(), action)
	s.logger.Info("action", "counter", counter.Name(), "action", action.String(), "current", snap.Current)

	if r.Header.Get("Accept") == "application/json" {
		writeJSON(w, http.StatusOK, snap)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func runServe(ctx context.Context, cfg *config.Config, logger *slog.Logger, addr string) error {
	var registry *prometheus.Registry
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
	}

	s := newDemoServer(cfg, logger, registry)
	defer s.close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(registry),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Info("serving counter demo", "addr", fmt.Sprintf("http://%s", addr))

	select {
	case err := <-errCh:
		if err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return errors.New("E102").Wrap(err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
