package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/chromabench/pkg/buildinfo"
	"github.com/matzehuels/chromabench/pkg/coloring"
	"github.com/matzehuels/chromabench/pkg/dimacs"
	errs "github.com/matzehuels/chromabench/pkg/errors"
	"github.com/matzehuels/chromabench/pkg/graph"
	"github.com/matzehuels/chromabench/pkg/pipeline"
	"github.com/matzehuels/chromabench/pkg/render"
	"github.com/matzehuels/chromabench/pkg/report"
)

// defaultGraphName names graphs posted without a name parameter.
const defaultGraphName = "request.col"

type colorResponse struct {
	Name           string            `json:"name"`
	Vertices       int               `json:"vertices"`
	Edges          int               `json:"edges"`
	Colors         int               `json:"colors"`
	Coloring       coloring.Coloring `json:"coloring"`
	Groups         string            `json:"groups"`
	Test           coloring.Outcome  `json:"test"`
	Optimal        *int              `json:"optimal"`
	Solved         bool              `json:"solved"`
	Trials         int               `json:"trials"`
	BestTrial      int               `json:"best_trial"`
	ElapsedSeconds float64           `json:"elapsed_seconds"`
	SearchSeconds  float64           `json:"search_seconds"`
	Cached         bool              `json:"cached"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Short(),
	})
}

func (s *Server) handleOptimalList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cfg.Optimal)
}

func (s *Server) handleOptimalGet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	k, ok := s.cfg.Optimal.Lookup(name)
	if !ok {
		s.writeError(w, errs.New(errs.ErrCodeFileNotFound, "no known optimum for %q", name))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"name": name, "optimal": k})
}

func (s *Server) handleColor(w http.ResponseWriter, r *http.Request) {
	name, g, opts, err := s.readRequest(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.cfg.Runner.ColorGraph(r.Context(), name, g, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	row := res.Row(s.cfg.Optimal)
	resp := colorResponse{
		Name:           name,
		Vertices:       res.Vertices,
		Edges:          res.Edges,
		Colors:         row.Colors,
		Coloring:       res.Best.Coloring,
		Groups:         report.FormatGroups(row.Groups),
		Test:           row.Test,
		Solved:         row.Solved,
		Trials:         row.Trials,
		BestTrial:      row.BestAt,
		ElapsedSeconds: row.Time.Seconds(),
		SearchSeconds:  res.Best.Duration.Seconds(),
		Cached:         res.CacheHit,
	}
	if row.OptimalKnown {
		resp.Optimal = &row.Optimal
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = render.FormatSVG
	}
	if format != render.FormatSVG && format != render.FormatDOT {
		s.writeError(w, errs.New(errs.ErrCodeInvalidFormat, "format must be svg or dot, got %q", format))
		return
	}

	name, g, opts, err := s.readRequest(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	res, err := s.cfg.Runner.ColorGraph(r.Context(), name, g, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	dot := render.ToDOT(g, res.Best.Coloring, render.Options{Engine: r.URL.Query().Get("engine")})
	out, err := render.Render(r.Context(), dot, format, 1)
	if err != nil {
		s.writeError(w, errs.Wrap(errs.ErrCodeInternal, err, "render %s", name))
		return
	}

	contentType := "text/vnd.graphviz; charset=utf-8"
	if format == render.FormatSVG {
		contentType = "image/svg+xml"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Colors", strconv.Itoa(res.Best.Colors))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// readRequest decodes the query parameters and the DIMACS body.
func (s *Server) readRequest(w http.ResponseWriter, r *http.Request) (string, *graph.Graph, pipeline.Options, error) {
	q := r.URL.Query()
	opts := s.cfg.Defaults
	opts.Logger = s.cfg.Logger

	name := q.Get("name")
	if name == "" {
		name = defaultGraphName
	}
	if err := errs.ValidateGraphName(name); err != nil {
		return "", nil, opts, err
	}

	if v := q.Get("trials"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return "", nil, opts, errs.New(errs.ErrCodeInvalidInput, "trials must be an integer, got %q", v)
		}
		opts.Trials = n
	}
	if opts.Trials != 0 {
		if err := errs.ValidateTrials(opts.Trials, s.cfg.MaxTrials); err != nil {
			return "", nil, opts, err
		}
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return "", nil, opts, errs.New(errs.ErrCodeInvalidInput, "seed must be an unsigned integer, got %q", v)
		}
		opts.Seed = seed
	}

	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	in, err := dimacs.Parse(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", nil, opts, errs.New(errs.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return "", nil, opts, err
	}
	if in.Vertices > s.cfg.MaxVertices {
		return "", nil, opts, errs.New(errs.ErrCodeInvalidInput, "graph has %d vertices, the limit is %d", in.Vertices, s.cfg.MaxVertices)
	}
	g, err := in.Graph()
	if err != nil {
		return "", nil, opts, err
	}
	return name, g, opts, nil
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.cfg.Logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{
		Error: errs.UserMessage(err),
		Code:  string(errs.GetCode(err)),
	})
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return 499
	}
	switch errs.GetCode(err) {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidFormat, errs.ErrCodeParse,
		errs.ErrCodeInvalidGraph, errs.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case errs.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errs.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errs.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
