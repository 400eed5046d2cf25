package cyresttest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

var defaultVisualProperties = []string{
	"NODE_FILL_COLOR", "NODE_SHAPE", "NODE_SIZE", "NODE_LABEL",
	"NODE_BORDER_PAINT", "NODE_BORDER_STROKE",
	"EDGE_WIDTH", "EDGE_UNSELECTED_PAINT", "EDGE_TARGET_ARROW_SHAPE",
}

func (s *Server) styleRoutes(r chi.Router) {
	r.Post("/", func(w http.ResponseWriter, req *http.Request) {
		var style map[string]any
		if err := json.NewDecoder(req.Body).Decode(&style); err != nil {
			cyError(w, 400, "expected a style definition")
			return
		}
		title, _ := style["title"].(string)
		if title == "" {
			cyError(w, 400, "style needs a title")
			return
		}
		s.mu.Lock()
		s.styles[title] = style
		if mappings, ok := style["mappings"].([]any); ok {
			for _, m := range mappings {
				if mm, ok := m.(map[string]any); ok {
					s.mappings[title] = append(s.mappings[title], mm)
				}
			}
		}
		s.mu.Unlock()
		writeJSON(w, 201, map[string]any{"title": title})
	})
	r.Get("/default/defaults", func(w http.ResponseWriter, _ *http.Request) {
		defs := make([]map[string]any, 0, len(defaultVisualProperties))
		for _, vp := range defaultVisualProperties {
			defs = append(defs, map[string]any{"visualProperty": vp, "value": nil})
		}
		writeJSON(w, 200, map[string]any{"defaults": defs})
	})
	r.Route("/{style}", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			s.mu.Lock()
			style := s.styles[chi.URLParam(req, "style")]
			s.mu.Unlock()
			if style == nil {
				cyError(w, 404, "Style does not exist: "+chi.URLParam(req, "style"))
				return
			}
			writeJSON(w, 200, style)
		})
		r.Delete("/", func(w http.ResponseWriter, req *http.Request) {
			s.mu.Lock()
			delete(s.styles, chi.URLParam(req, "style"))
			delete(s.mappings, chi.URLParam(req, "style"))
			s.mu.Unlock()
			w.WriteHeader(200)
		})
		r.Get("/dependencies", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, 200, []map[string]any{
				{"visualPropertyDependency": "nodeSizeLocked", "enabled": false},
			})
		})
		r.Put("/dependencies", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(200)
		})
		r.Get("/mappings", func(w http.ResponseWriter, req *http.Request) {
			s.mu.Lock()
			mappings := s.mappings[chi.URLParam(req, "style")]
			s.mu.Unlock()
			if mappings == nil {
				mappings = []map[string]any{}
			}
			writeJSON(w, 200, mappings)
		})
		r.Post("/mappings", func(w http.ResponseWriter, req *http.Request) {
			s.upsertMappings(w, req, false)
		})
		r.Put("/mappings/{vp}", func(w http.ResponseWriter, req *http.Request) {
			s.upsertMappings(w, req, true)
		})
		r.Delete("/mappings/{vp}", func(w http.ResponseWriter, req *http.Request) {
			style, vp := chi.URLParam(req, "style"), chi.URLParam(req, "vp")
			s.mu.Lock()
			kept := s.mappings[style][:0]
			for _, m := range s.mappings[style] {
				if m["visualProperty"] != vp {
					kept = append(kept, m)
				}
			}
			s.mappings[style] = kept
			s.mu.Unlock()
			w.WriteHeader(200)
		})
	})
}

func (s *Server) upsertMappings(w http.ResponseWriter, req *http.Request, replace bool) {
	style := chi.URLParam(req, "style")
	var incoming []map[string]any
	if err := json.NewDecoder(req.Body).Decode(&incoming); err != nil {
		cyError(w, 400, "expected a list of mappings")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range incoming {
		vp, _ := m["visualProperty"].(string)
		replaced := false
		if replace {
			for i, old := range s.mappings[style] {
				if old["visualProperty"] == vp {
					s.mappings[style][i] = m
					replaced = true
					break
				}
			}
		}
		if !replaced {
			s.mappings[style] = append(s.mappings[style], m)
		}
	}
	w.WriteHeader(200)
}

// StyleMappings returns a style's recorded mappings for inspection.
func (s *Server) StyleMappings(style string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mappings[style]
}
