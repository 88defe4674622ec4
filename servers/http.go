package servers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/lo"

	"github.com/reusee/taideck/comps"
	"github.com/reusee/taideck/deckjs"
	"github.com/reusee/taideck/logs"
	"github.com/reusee/taideck/metrics"
	"github.com/reusee/taideck/nodes"
	"github.com/reusee/taideck/renders"
	"github.com/reusee/taideck/storages"
	"github.com/reusee/taideck/syncs"
)

// Server exposes the component engine to the authoring frontend. Store
// and Metrics are optional; without a store, definitions live only in
// request bodies and the compile cache.
type Server struct {
	Runtime  *renders.Runtime
	Store    *storages.Store
	Metrics  *metrics.Metrics
	Logger   logs.Logger
	NewSpan  logs.NewSpan
	Compiles syncs.Semaphore
}

func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()
	if s.NewSpan != nil {
		router.Use(s.withSpan)
	}

	router.Get("/healthz", s.handleHealth)
	if s.Metrics != nil {
		router.Method("GET", "/metrics", promhttp.HandlerFor(
			s.Metrics.Registry,
			promhttp.HandlerOpts{},
		))
	}

	router.Route("/v1/components", func(router chi.Router) {
		router.Get("/", s.handleList)
		router.Put("/{id}", s.handleSave)
		router.Get("/{id}", s.handleGet)
		router.Post("/{id}/compile", s.handleCompile)
		router.Post("/{id}/render", s.handleRender)
	})

	return enableCORS(router)
}

// withSpan gives every request its own span, so log records and error
// strings produced while serving it correlate.
func (s *Server) withSpan(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, _ := s.NewSpan(r.Context(), "")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

type componentBody struct {
	Source string         `json:"source"`
	Props  map[string]any `json:"props,omitempty"`
	Width  int            `json:"width,omitempty"`
	Height int            `json:"height,omitempty"`
}

func (b componentBody) definition(id string) *comps.Definition {
	return &comps.Definition{
		ID:          id,
		Text:        b.Source,
		CustomProps: b.Props,
		Width:       b.Width,
		Height:      b.Height,
	}
}

type componentSummary struct {
	ID       string `json:"id"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Compiled bool   `json:"compiled"`
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	var summaries []componentSummary
	if s.Store != nil {
		defs, err := s.Store.ListDefinitions(r.Context())
		if err != nil {
			s.log().ErrorContext(r.Context(), "list definitions", "error", err)
			http.Error(w, "cannot list definitions", http.StatusInternalServerError)
			return
		}
		summaries = lo.Map(defs, func(def *comps.Definition, _ int) componentSummary {
			return componentSummary{
				ID:       def.ID,
				Width:    def.Width,
				Height:   def.Height,
				Compiled: s.hasGoodUnit(def.ID),
			}
		})
	} else {
		summaries = lo.Map(s.Runtime.Cache.IDs(), func(id string, _ int) componentSummary {
			return componentSummary{
				ID:       id,
				Compiled: s.hasGoodUnit(id),
			}
		})
	}
	if summaries == nil {
		summaries = []componentSummary{}
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) hasGoodUnit(id string) bool {
	out, ok := s.Runtime.Cache.Get(id)
	return ok && out.LastGood != nil
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		http.Error(w, "no definition store configured", http.StatusNotImplemented)
		return
	}
	var body componentBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	def := body.definition(chi.URLParam(r, "id"))
	if err := s.Store.SaveDefinition(r.Context(), def); err != nil {
		s.log().ErrorContext(r.Context(), "save definition", "component", def.ID, "error", err)
		http.Error(w, "cannot save definition", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, componentSummary{
		ID:       def.ID,
		Width:    def.Width,
		Height:   def.Height,
		Compiled: s.hasGoodUnit(def.ID),
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		http.Error(w, "no definition store configured", http.StatusNotImplemented)
		return
	}
	id := chi.URLParam(r, "id")
	def, err := s.Store.LoadDefinition(r.Context(), id)
	if errors.Is(err, storages.ErrNotFound) {
		http.Error(w, "no such component", http.StatusNotFound)
		return
	}
	if err != nil {
		s.log().ErrorContext(r.Context(), "load definition", "component", id, "error", err)
		http.Error(w, "cannot load definition", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, componentBody{
		Source: def.Text,
		Props:  def.CustomProps,
		Width:  def.Width,
		Height: def.Height,
	})
}

type compileResponse struct {
	OK     bool   `json:"ok"`
	Format string `json:"format"`
	Error  string `json:"error,omitempty"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
	// a previously compiled unit still serves renders for this id
	StaleAvailable bool `json:"stale_available"`
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	var body componentBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	def := body.definition(chi.URLParam(r, "id"))

	if s.Compiles != nil {
		s.Compiles.Acquire()
		defer s.Compiles.Release()
	}

	resp := s.compile(r.Context(), def)
	status := http.StatusOK
	if !resp.OK {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, resp)
}

func (s *Server) compile(ctx context.Context, def *comps.Definition) compileResponse {
	format, err := comps.Classify(def)
	if err != nil {
		return compileResponse{
			Format:         format.String(),
			Error:          logs.WrapSpan(ctx, err).Error(),
			StaleAvailable: s.hasGoodUnit(def.ID),
		}
	}

	switch format {

	case comps.FormatMarkup:
		if _, err := nodes.ValidateMarkup(def.Text); err != nil {
			return compileResponse{
				Format:         format.String(),
				Error:          logs.WrapSpan(ctx, err).Error(),
				StaleAvailable: s.hasGoodUnit(def.ID),
			}
		}
		return compileResponse{
			OK:     true,
			Format: format.String(),
		}

	case comps.FormatSource:
		_, err := s.Runtime.Compile(def)
		if err != nil {
			resp := compileResponse{
				Format:         format.String(),
				Error:          logs.WrapSpan(ctx, err).Error(),
				StaleAvailable: s.hasGoodUnit(def.ID),
			}
			var compileErr *deckjs.CompileError
			if errors.As(err, &compileErr) {
				resp.Line = compileErr.Line
				resp.Column = compileErr.Column
			}
			return resp
		}
		if s.Store != nil {
			if err := s.Store.SaveCompiled(ctx, def); err != nil {
				s.log().ErrorContext(ctx, "persist compiled definition",
					"component", def.ID,
					"error", err,
				)
			}
		}
		return compileResponse{
			OK:     true,
			Format: format.String(),
		}

	}

	return compileResponse{
		Format: format.String(),
		Error:  "definition is not compilable",
	}
}

type renderRequest struct {
	componentBody
	Thumbnail bool `json:"thumbnail,omitempty"`
	// tree (default) or html
	Format string `json:"format,omitempty"`
}

type renderResponse struct {
	OK    bool        `json:"ok"`
	Error string      `json:"error,omitempty"`
	Node  *nodes.Node `json:"node,omitempty"`
	HTML  string      `json:"html,omitempty"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	id := chi.URLParam(r, "id")

	def, err := s.resolveDefinition(r.Context(), id, req.componentBody)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	instance := s.Runtime.NewInstance(def, req.Thumbnail)
	defer instance.Close()

	node, renderErr := instance.Render(r.Context(), req.Width, req.Height)

	resp := renderResponse{
		OK: renderErr == nil,
	}
	if renderErr != nil {
		resp.Error = logs.WrapSpan(r.Context(), renderErr).Error()
	}
	switch req.Format {
	case "", "tree":
		resp.Node = node
	case "html":
		html, err := nodes.RenderHTML(node)
		if err != nil {
			s.log().ErrorContext(r.Context(), "render html", "component", id, "error", err)
			http.Error(w, "cannot serialize node tree", http.StatusInternalServerError)
			return
		}
		resp.HTML = html
	default:
		http.Error(w, "unknown render format", http.StatusBadRequest)
		return
	}

	status := http.StatusOK
	if renderErr != nil {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, resp)
}

// resolveDefinition prefers the request body's source and falls back to
// the stored definition, overlaying any body props on it.
func (s *Server) resolveDefinition(ctx context.Context, id string, body componentBody) (*comps.Definition, error) {
	if body.Source != "" || s.Store == nil {
		return body.definition(id), nil
	}
	def, err := s.Store.LoadDefinition(ctx, id)
	if errors.Is(err, storages.ErrNotFound) {
		return nil, errors.New("no such component")
	}
	if err != nil {
		return nil, wrap(err)
	}
	for name, value := range body.Props {
		if def.CustomProps == nil {
			def.CustomProps = make(map[string]any)
		}
		def.CustomProps[name] = value
	}
	if body.Width != 0 {
		def.Width = body.Width
	}
	if body.Height != 0 {
		def.Height = body.Height
	}
	return def, nil
}

func (s *Server) log() logs.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(value)
}
