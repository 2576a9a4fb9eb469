// Package server exposes the scaffolding engine over HTTP: archetype listing,
// generation previews, zip downloads, schema inference, and a WebSocket that
// streams generation progress. The prompt→spec LLM call stays upstream of this
// service; it only ever consumes parsed AppSpec documents.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matthewbaird/appforge/internal/archive"
	"github.com/matthewbaird/appforge/internal/catalog"
	"github.com/matthewbaird/appforge/internal/corpus"
	"github.com/matthewbaird/appforge/internal/generator"
	"github.com/matthewbaird/appforge/internal/infer"
	"github.com/matthewbaird/appforge/internal/spec"
)

// Config holds server configuration.
type Config struct {
	Port   int
	Corpus corpus.Store // optional; inference degrades without it
}

// Server wires the engine's components behind HTTP handlers.
type Server struct {
	corpus corpus.Store
}

// New builds the server and its router.
func New(cfg Config) (*Server, http.Handler) {
	s := &Server{corpus: cfg.Corpus}

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/v1", func(r chi.Router) {
		r.Get("/archetypes", s.listArchetypes)
		r.Get("/archetypes/{type}", s.getArchetype)
		r.Post("/generate", s.generatePreview)
		r.Post("/generate/archive", s.generateArchive)
		r.Get("/generate/ws", s.generateStream)
		r.Get("/infer", s.inferTables)
	})
	return s, r
}

// Run starts the HTTP server and shuts it down when ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	_, handler := New(cfg)
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("starting server on %s", addr)

	srv := &http.Server{Addr: addr, Handler: handler}
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) listArchetypes(w http.ResponseWriter, _ *http.Request) {
	type entry struct {
		Type spec.AppType `json:"type"`
		Spec spec.AppSpec `json:"spec"`
	}
	var out []entry
	for _, t := range catalog.Types() {
		tpl, err := catalog.Lookup(t)
		if err != nil {
			continue
		}
		out = append(out, entry{Type: t, Spec: tpl})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getArchetype(w http.ResponseWriter, r *http.Request) {
	t := spec.AppType(chi.URLParam(r, "type"))
	tpl, err := catalog.Lookup(t)
	if err != nil {
		writeError(w, http.StatusNotFound, "UNKNOWN_ARCHETYPE", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, tpl)
}

// decodeSpec reads, normalizes, and validates an AppSpec request body.
func decodeSpec(r *http.Request) (spec.AppSpec, error) {
	defer r.Body.Close()
	var sp spec.AppSpec
	if err := json.NewDecoder(r.Body).Decode(&sp); err != nil {
		return spec.AppSpec{}, fmt.Errorf("decoding spec: %w", err)
	}
	sp = sp.Normalized()
	if err := sp.Validate(); err != nil {
		return spec.AppSpec{}, err
	}
	return sp, nil
}

func (s *Server) generatePreview(w http.ResponseWriter, r *http.Request) {
	sp, err := decodeSpec(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_SPEC", err.Error())
		return
	}
	app, err := generator.GenerateApp(r.Context(), sp, nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "GENERATION_FAILED", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (s *Server) generateArchive(w http.ResponseWriter, r *http.Request) {
	sp, err := decodeSpec(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_SPEC", err.Error())
		return
	}
	app, err := generator.GenerateApp(r.Context(), sp, nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "GENERATION_FAILED", err.Error())
		return
	}
	data, err := archive.Zip(app)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "ARCHIVE_FAILED", err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", packageFilename(sp.Name)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("server: writing archive: %v", err)
	}
}

func (s *Server) inferTables(w http.ResponseWriter, r *http.Request) {
	if s.corpus == nil {
		writeError(w, http.StatusServiceUnavailable, "NO_CORPUS", "no corpus store configured")
		return
	}
	tenant := r.URL.Query().Get("tenant")
	if tenant == "" {
		writeError(w, http.StatusBadRequest, "MISSING_TENANT", "tenant query parameter is required")
		return
	}
	tables := infer.InferFromStore(r.Context(), s.corpus, tenant)
	writeJSON(w, http.StatusOK, map[string]any{"tables": tables})
}

func packageFilename(name string) string {
	if name == "" {
		name = "app"
	}
	return name + ".zip"
}

// writeJSON marshals v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writeJSON encode error: %v", err)
	}
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
		"code":  code,
	})
}
