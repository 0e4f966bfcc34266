// Package api serves the ballistics engine over HTTP: zeroing, range
// cards, stored runs and their charts.
package api

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/banshee-data/ballistics/internal/config"
	"github.com/banshee-data/ballistics/internal/db"
	"github.com/banshee-data/ballistics/internal/drag"
	"github.com/banshee-data/ballistics/internal/httputil"
	"github.com/banshee-data/ballistics/internal/rangecard"
	"github.com/banshee-data/ballistics/internal/report"
	"github.com/banshee-data/ballistics/internal/security"
	"github.com/banshee-data/ballistics/internal/units"
	"github.com/banshee-data/ballistics/internal/version"
)

// ANSI escape codes for cyan and reset
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

const (
	maxConfigSize    = 1 << 20
	defaultRunsLimit = 50
	maxRunsLimit     = 1000
)

var errNoStore = errors.New("run store not configured")

type Server struct {
	db        *db.DB
	registry  *drag.Registry
	tablesDir string
	workers   int
}

// NewServer returns a server using reg for drag tables. store may be nil,
// which disables the run routes. Configs may only name drag_table_file
// paths inside tablesDir; an empty tablesDir rejects them all.
func NewServer(store *db.DB, reg *drag.Registry, tablesDir string) *Server {
	return &Server{
		db:        store,
		registry:  reg,
		tablesDir: tablesDir,
	}
}

// SetWorkers bounds how many zeros one request solves concurrently.
func (s *Server) SetWorkers(n int) { s.workers = n }

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Flush() {
	if flusher, ok := lrw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, query, status, and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/zero", s.zero)
	mux.HandleFunc("/api/trajectory", s.trajectory)
	mux.HandleFunc("/api/runs", s.listRuns)
	mux.HandleFunc("/api/runs/rows", s.runRows)
	mux.HandleFunc("/api/chart", s.chart)
	mux.HandleFunc("/api/tables", s.tables)
	mux.HandleFunc("/api/version", s.version)
	return mux
}

// readConfig decodes a POSTed shot config, writing the error response
// itself when it fails.
func (s *Server) readConfig(w http.ResponseWriter, r *http.Request) (*config.ShotConfig, bool) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return nil, false
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxConfigSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.WriteJSONError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("config larger than %d bytes", tooLarge.Limit))
			return nil, false
		}
		httputil.BadRequest(w, fmt.Sprintf("failed to read body: %v", err))
		return nil, false
	}

	cfg, err := config.Parse(data)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return nil, false
	}
	if f := cfg.Projectile.DragTableFile; f != nil && *f != "" {
		path, err := security.ResolveWithin(s.tablesDir, *f)
		if err != nil {
			httputil.BadRequest(w, fmt.Sprintf("projectile.drag_table_file: %v", err))
			return nil, false
		}
		cfg.Projectile.DragTableFile = &path
	}
	return cfg, true
}

// displayUnits reads the optional units query parameter, falling back to def.
func displayUnits(r *http.Request, def units.System) (units.System, error) {
	name := r.URL.Query().Get("units")
	if name == "" {
		return def, nil
	}
	return units.ParseSystem(name)
}

func (s *Server) zero(w http.ResponseWriter, r *http.Request) {
	cfg, ok := s.readConfig(w, r)
	if !ok {
		return
	}

	res, err := rangecard.Solve(r.Context(), cfg, s.registry, rangecard.Options{Workers: s.workers})
	if err != nil {
		httputil.WriteError(w, statusFor(err), err)
		return
	}
	httputil.WriteJSONOK(w, res)
}

type trajectoryResponse struct {
	*rangecard.Result
	RunID string `json:"run_id,omitempty"`
}

// trajectory zeros the config and returns its range card. With
// ?record=true the run is also stored.
func (s *Server) trajectory(w http.ResponseWriter, r *http.Request) {
	cfg, ok := s.readConfig(w, r)
	if !ok {
		return
	}
	system, err := displayUnits(r, cfg.GetUnits())
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	record := r.URL.Query().Get("record") == "true"
	if record && s.db == nil {
		httputil.WriteError(w, http.StatusServiceUnavailable, errNoStore)
		return
	}

	res, err := rangecard.Compute(r.Context(), cfg, s.registry, rangecard.Options{Workers: s.workers, System: system})
	if err != nil {
		httputil.WriteError(w, statusFor(err), err)
		return
	}

	resp := trajectoryResponse{Result: res}
	if record {
		run, err := res.Record(s.db, cfg)
		if err != nil {
			httputil.WriteError(w, http.StatusInternalServerError, err)
			return
		}
		resp.RunID = run.ID
	}
	httputil.WriteJSONOK(w, resp)
}

func (s *Server) requireStore(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	if !slices.Contains(methods, r.Method) {
		httputil.MethodNotAllowed(w)
		return false
	}
	if s.db == nil {
		httputil.WriteError(w, http.StatusServiceUnavailable, errNoStore)
		return false
	}
	return true
}

func (s *Server) listRuns(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w, r, http.MethodGet, http.MethodDelete) {
		return
	}
	if r.Method == http.MethodDelete {
		s.deleteRun(w, r)
		return
	}

	limit := defaultRunsLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 || n > maxRunsLimit {
			httputil.BadRequest(w, fmt.Sprintf("invalid 'limit' parameter, want 1..%d", maxRunsLimit))
			return
		}
		limit = n
	}

	runs, err := s.db.Runs(limit)
	if err != nil {
		httputil.WriteError(w, statusFor(err), err)
		return
	}
	httputil.WriteJSONOK(w, runs)
}

func (s *Server) deleteRun(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httputil.BadRequest(w, "missing 'id' parameter")
		return
	}
	if err := s.db.DeleteRun(id); err != nil {
		httputil.WriteError(w, statusFor(err), err)
		return
	}
	httputil.WriteJSONOK(w, map[string]string{"deleted": id})
}

// storedCard loads a run's range card in the requested units.
func (s *Server) storedCard(w http.ResponseWriter, r *http.Request) (*report.Card, bool) {
	if !s.requireStore(w, r, http.MethodGet) {
		return nil, false
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		httputil.BadRequest(w, "missing 'id' parameter")
		return nil, false
	}
	system, err := displayUnits(r, units.Imperial)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return nil, false
	}

	run, err := s.db.Run(id)
	if err != nil {
		httputil.WriteError(w, statusFor(err), err)
		return nil, false
	}
	rows, err := s.db.RangeRows(id)
	if err != nil {
		httputil.WriteError(w, statusFor(err), err)
		return nil, false
	}
	card := report.NewCard(run.Label, rows, system)
	return &card, true
}

func (s *Server) runRows(w http.ResponseWriter, r *http.Request) {
	card, ok := s.storedCard(w, r)
	if !ok {
		return
	}
	httputil.WriteJSONOK(w, card)
}

func (s *Server) chart(w http.ResponseWriter, r *http.Request) {
	card, ok := s.storedCard(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := card.RenderChart(w); err != nil {
		log.Printf("failed to render chart: %v", err)
	}
}

func (s *Server) tables(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	httputil.WriteJSONOK(w, s.registry.Kinds())
}

func (s *Server) version(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	httputil.WriteJSONOK(w, map[string]string{
		"version":    version.Version,
		"git_sha":    version.GitSHA,
		"build_time": version.BuildTime,
	})
}
