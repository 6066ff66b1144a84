package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/bisim/internal/compiler"
	"github.com/aretw0/bisim/internal/dto"
	"github.com/aretw0/bisim/internal/presentation/graph"
	"github.com/aretw0/bisim/pkg/domain"
	"github.com/aretw0/bisim/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodyBytes caps request documents.
const maxBodyBytes = 4 << 20

// Server exposes a Refiner over HTTP.
type Server struct {
	Engine   ports.Refiner
	gatherer prometheus.Gatherer
}

// Option configures the HTTP handler.
type Option func(*Server)

// WithGatherer serves metrics from g on /metrics instead of the default registry.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine ports.Refiner, opts ...Option) http.Handler {
	server := &Server{
		Engine:   engine,
		gatherer: prometheus.DefaultGatherer,
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Get("/openapi.yaml", serveSpec)
	r.Get("/swagger", serveSwagger)
	r.Post("/refine", server.Refine)
	r.Get("/graphs", server.ListGraphs)
	r.Get("/graphs/{name}", server.GetGraph)
	r.Post("/graphs/{name}/refine", server.RefineGraph)
	r.Get("/results/{id}", server.GetResult)
	r.Handle("/metrics", promhttp.HandlerFor(server.gatherer, promhttp.HandlerOpts{}))

	return enableCORS(validateRequests(r))
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Refine handles POST /refine with a graph document as body.
func (s *Server) Refine(w http.ResponseWriter, r *http.Request) {
	var doc dto.GraphDocument
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		slog.Warn("Refine: Invalid request body", "err", err)
		return
	}

	ts, initial, err := compiler.Compile(&doc)
	if err != nil {
		slog.Warn("Refine: Invalid graph", "err", err)
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}

	result, err := s.Engine.RefineNamed(r.Context(), doc.Name, ts, initial)
	if err != nil {
		writeError(w, "Refine", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ListGraphs handles GET /graphs.
func (s *Server) ListGraphs(w http.ResponseWriter, r *http.Request) {
	names, err := s.Engine.Graphs(r.Context())
	if err != nil {
		writeError(w, "ListGraphs", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"graphs": names})
}

// GetGraph handles GET /graphs/{name}. With ?format=mermaid it returns a flowchart.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	name, ok := pathParam(w, r, "name")
	if !ok {
		return
	}
	var format string
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &format); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	ts, err := s.Engine.Graph(r.Context(), name)
	if err != nil {
		writeError(w, "GetGraph", err)
		return
	}

	if format == "mermaid" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(graph.GenerateMermaid(ts, nil, nil)))
		return
	}

	writeJSON(w, http.StatusOK, compiler.Decompile(name, ts, nil))
}

// RefineGraph handles POST /graphs/{name}/refine.
func (s *Server) RefineGraph(w http.ResponseWriter, r *http.Request) {
	name, ok := pathParam(w, r, "name")
	if !ok {
		return
	}
	result, err := s.Engine.RefineGraph(r.Context(), name)
	if err != nil {
		writeError(w, "RefineGraph", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetResult handles GET /results/{id}.
func (s *Server) GetResult(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}
	result, err := s.Engine.Result(r.Context(), id)
	if err != nil {
		writeError(w, "GetResult", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// pathParam binds a required simple-style path parameter, answering 400 on failure.
func pathParam(w http.ResponseWriter, r *http.Request, param string) (string, bool) {
	var value string
	err := runtime.BindStyledParameterWithOptions("simple", param, chi.URLParam(r, param), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("invalid %s: %v", param, err)})
		return "", false
	}
	return value, true
}

func statusFor(err error) int {
	var stateErr *domain.StateError
	switch {
	case errors.Is(err, domain.ErrGraphNotFound), errors.Is(err, domain.ErrResultNotFound):
		return http.StatusNotFound
	case errors.As(err, &stateErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error(op+" failed", "err", err)
	} else {
		slog.Warn(op+" rejected", "err", err, "status", status)
	}
	writeJSON(w, status, map[string]string{"error": fmt.Sprintf("%v", err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}
