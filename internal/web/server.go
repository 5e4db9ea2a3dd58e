package web

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dirsize/internal/config"
	"dirsize/internal/model"
	"dirsize/internal/trace"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed static/*
var staticFS embed.FS

//go:embed help.md
var helpMD string

// maxTraceBytes bounds an uploaded trace.
const maxTraceBytes = 32 << 20

type metrics struct {
	analyses *prometheus.CounterVec
	lines    prometheus.Counter
	duration prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		analyses: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dirsize_analyses_total",
			Help: "Trace analyses by outcome.",
		}, []string{"outcome"}),
		lines: f.NewCounter(prometheus.CounterOpts{
			Name: "dirsize_trace_lines_total",
			Help: "Trace lines received.",
		}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "dirsize_analysis_duration_seconds",
			Help:    "Time spent parsing and analyzing a trace.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Server answers analysis requests over HTTP.
type Server struct {
	cfg      config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *metrics
	mux      *http.ServeMux
}

// NewServer wires the routes. A nil logger uses slog.Default().
func NewServer(cfg config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	reg := prometheus.NewRegistry()
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		registry: reg,
		metrics:  newMetrics(reg),
		mux:      http.NewServeMux(),
	}

	subFS, _ := fs.Sub(staticFS, "static")
	s.mux.Handle("/", http.FileServer(http.FS(subFS)))

	s.mux.HandleFunc("/api/analyze", s.handleAnalyze)
	s.mux.HandleFunc("/api/help", handleHelp)
	s.mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// StartServer serves on cfg.Web.Addr until the listener fails.
func StartServer(cfg config.Config, logger *slog.Logger) error {
	s := NewServer(cfg, logger)
	fmt.Printf("Starting dirsize web server at http://localhost%s\n", cfg.Web.Addr)
	return http.ListenAndServe(cfg.Web.Addr, s)
}

// ErrorResponse is the JSON body of a failed analysis.
type ErrorResponse struct {
	RunID   string
	Error   string
	Kind    string
	Line    int                `json:",omitempty"`
	Context *model.LineContext `json:",omitempty"`
}

// AnalyzeResponse is the JSON body of a successful analysis.
type AnalyzeResponse struct {
	model.AnalysisResult
	Report        string `json:"Report"`
	VerboseReport string `json:"VerboseReport"`
	Version       string `json:"Version"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "POST a trace", http.StatusMethodNotAllowed)
		return
	}

	runID := uuid.NewString()
	logger := s.logger.With(slog.String("run_id", runID))
	start := time.Now()

	opts, err := s.options(r)
	if err != nil {
		s.metrics.analyses.WithLabelValues("request").Inc()
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{RunID: runID, Error: err.Error(), Kind: "request"})
		return
	}

	result, lines, err := trace.NewAnalyzer(opts, logger).AnalyzeReader(http.MaxBytesReader(w, r.Body, maxTraceBytes))
	s.metrics.lines.Add(float64(len(lines)))
	s.metrics.duration.Observe(time.Since(start).Seconds())
	if err != nil {
		status, kind := classify(err)
		s.metrics.analyses.WithLabelValues(kind).Inc()
		logger.Warn("analysis failed", slog.String("kind", kind), slog.String("error", err.Error()))

		resp := ErrorResponse{RunID: runID, Error: err.Error(), Kind: kind}
		if n := trace.ErrorLine(err); n > 0 {
			ctx := model.GetLineContext(lines, n)
			resp.Line = n
			resp.Context = &ctx
		}
		s.writeJSON(w, status, resp)
		return
	}
	s.metrics.analyses.WithLabelValues("ok").Inc()

	result.RunID = runID
	logger.Info("analysis served",
		slog.Int("lines", len(lines)),
		slog.Int64("total_at_most", result.TotalAtMost),
		slog.Int64("min_to_delete", result.MinToDelete))

	s.writeJSON(w, http.StatusOK, AnalyzeResponse{
		AnalysisResult: result,
		Report:         trace.GenerateReport(result, false),
		VerboseReport:  trace.GenerateReport(result, true),
		Version:        model.Version,
	})
}

// options starts from the server config and applies query overrides:
// threshold, capacity, required, prompt.
func (s *Server) options(r *http.Request) (trace.Options, error) {
	opts := trace.Options{
		Threshold:    s.cfg.Space.Threshold,
		Capacity:     s.cfg.Space.Capacity,
		RequiredFree: s.cfg.Space.RequiredFree,
		ListedDirs:   s.cfg.Trace.ListedDirs,
		Shell:        trace.ShellByName(s.cfg.Trace.Prompt),
	}

	q := r.URL.Query()
	for _, p := range []struct {
		key string
		dst *int64
	}{
		{"threshold", &opts.Threshold},
		{"capacity", &opts.Capacity},
		{"required", &opts.RequiredFree},
	} {
		v := q.Get(p.key)
		if v == "" {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return opts, fmt.Errorf("%s must be a non-negative integer, got %q", p.key, v)
		}
		*p.dst = n
	}
	if name := q.Get("prompt"); name != "" {
		sh := trace.ShellByName(name)
		if sh == nil {
			return opts, fmt.Errorf("unknown prompt %q", name)
		}
		opts.Shell = sh
	}
	return opts, nil
}

func classify(err error) (int, string) {
	var parseErr *model.ParseError
	var navErr *model.NavigationError
	var noCand *model.NoCandidateError
	switch {
	case errors.Is(err, trace.ErrReadTrace):
		return http.StatusBadRequest, "request"
	case errors.As(err, &parseErr):
		return http.StatusBadRequest, "parse"
	case errors.As(err, &navErr):
		return http.StatusBadRequest, "navigation"
	case errors.As(err, &noCand):
		return http.StatusUnprocessableEntity, "no_candidate"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response failed", slog.Int("status", status), slog.String("error", err.Error()))
	}
}

func handleHelp(w http.ResponseWriter, r *http.Request) {
	text := strings.ReplaceAll(helpMD, "{{VERSION}}", model.Version)

	w.Header().Set("Content-Type", "text/markdown")
	w.Write([]byte(text))
}
