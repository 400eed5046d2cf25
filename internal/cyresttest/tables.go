package cyresttest

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) tableRoutes(r chi.Router) {
	r.Get("/columns", func(w http.ResponseWriter, req *http.Request) {
		net, cols, _ := s.tableOf(w, req)
		if net == nil {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		out := make([]map[string]any, 0, len(cols))
		for name, typ := range cols {
			out = append(out, map[string]any{"name": name, "type": typ})
		}
		writeJSON(w, 200, out)
	})
	r.Post("/columns", func(w http.ResponseWriter, req *http.Request) {
		net, cols, _ := s.tableOf(w, req)
		if net == nil {
			return
		}
		var body struct {
			Name string `json:"name"`
			Type string `json:"type"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil || body.Name == "" {
			cyError(w, 400, "expected a column definition")
			return
		}
		s.mu.Lock()
		cols[body.Name] = body.Type
		s.mu.Unlock()
		w.WriteHeader(201)
	})
	r.Put("/columns", func(w http.ResponseWriter, req *http.Request) {
		net, cols, nodes := s.tableOf(w, req)
		if net == nil {
			return
		}
		var body struct {
			OldName string `json:"oldName"`
			NewName string `json:"newName"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			cyError(w, 400, "expected oldName/newName")
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		typ, ok := cols[body.OldName]
		if !ok {
			cyError(w, 404, fmt.Sprintf("Column does not exist: %s", body.OldName))
			return
		}
		delete(cols, body.OldName)
		cols[body.NewName] = typ
		for _, attrs := range s.tableAttrs(net, nodes) {
			if v, ok := attrs[body.OldName]; ok {
				delete(attrs, body.OldName)
				attrs[body.NewName] = v
			}
		}
		w.WriteHeader(200)
	})
	// Setting a column default resets every row; the client uses this
	// with selected=false to clear selections.
	r.Put("/columns/{col}", func(w http.ResponseWriter, req *http.Request) {
		net, cols, nodes := s.tableOf(w, req)
		if net == nil {
			return
		}
		col := chi.URLParam(req, "col")
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := cols[col]; !ok {
			cyError(w, 404, fmt.Sprintf("Column does not exist: %s", col))
			return
		}
		var value any
		switch req.URL.Query().Get("default") {
		case "true":
			value = true
		case "false":
			value = false
		default:
			value = req.URL.Query().Get("default")
		}
		for _, attrs := range s.tableAttrs(net, nodes) {
			attrs[col] = value
		}
		w.WriteHeader(200)
	})
	r.Delete("/columns/{col}", func(w http.ResponseWriter, req *http.Request) {
		net, cols, nodes := s.tableOf(w, req)
		if net == nil {
			return
		}
		col := chi.URLParam(req, "col")
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(cols, col)
		for _, attrs := range s.tableAttrs(net, nodes) {
			delete(attrs, col)
		}
		w.WriteHeader(200)
	})
	r.Get("/columns/{col}", func(w http.ResponseWriter, req *http.Request) {
		net, cols, nodes := s.tableOf(w, req)
		if net == nil {
			return
		}
		col := chi.URLParam(req, "col")
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := cols[col]; !ok && col != "SUID" {
			cyError(w, 404, fmt.Sprintf("Column does not exist: %s", col))
			return
		}
		values := []any{}
		if col == "SUID" {
			for _, suid := range s.tableSUIDs(net, nodes) {
				values = append(values, suid)
			}
		} else {
			for _, attrs := range s.tableAttrs(net, nodes) {
				values = append(values, attrs[col])
			}
		}
		writeJSON(w, 200, map[string]any{"name": col, "values": values})
	})
	r.Get("/rows/{row}/{col}", func(w http.ResponseWriter, req *http.Request) {
		net, _, nodes := s.tableOf(w, req)
		if net == nil {
			return
		}
		var row int64
		fmt.Sscan(chi.URLParam(req, "row"), &row)
		col := chi.URLParam(req, "col")
		s.mu.Lock()
		defer s.mu.Unlock()
		suids := s.tableSUIDs(net, nodes)
		attrs := s.tableAttrs(net, nodes)
		for i, suid := range suids {
			if suid == row {
				writeJSON(w, 200, attrs[i][col])
				return
			}
		}
		cyError(w, 404, fmt.Sprintf("Row does not exist: %d", row))
	})
	// Bulk attribute upload.
	r.Put("/", func(w http.ResponseWriter, req *http.Request) {
		net, cols, nodes := s.tableOf(w, req)
		if net == nil {
			return
		}
		var body struct {
			Key     string           `json:"key"`
			DataKey string           `json:"dataKey"`
			Data    []map[string]any `json:"data"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			cyError(w, 400, "expected a bulk table upload")
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		attrs := s.tableAttrs(net, nodes)
		for _, rec := range body.Data {
			key := fmt.Sprint(rec[body.DataKey])
			for _, row := range attrs {
				if fmt.Sprint(row[body.Key]) != key {
					continue
				}
				for col, val := range rec {
					if col == body.DataKey {
						continue
					}
					row[col] = val
					if _, known := cols[col]; !known {
						cols[col] = remoteTypeOf(val)
					}
				}
			}
		}
		w.WriteHeader(200)
	})
}

// tableOf resolves the {suid}/{table} pair; nodes reports whether the
// node table (vs edge) was addressed.
func (s *Server) tableOf(w http.ResponseWriter, req *http.Request) (*Network, map[string]string, bool) {
	net := s.findNetwork(w, req)
	if net == nil {
		return nil, nil, false
	}
	switch chi.URLParam(req, "table") {
	case "defaultnode":
		return net, net.NodeCols, true
	case "defaultedge":
		return net, net.EdgeCols, false
	default:
		cyError(w, 404, "Table does not exist: "+chi.URLParam(req, "table"))
		return nil, nil, false
	}
}

func (s *Server) tableSUIDs(net *Network, nodes bool) []int64 {
	var out []int64
	if nodes {
		for _, n := range net.Nodes {
			out = append(out, n.SUID)
		}
	} else {
		for _, e := range net.Edges {
			out = append(out, e.SUID)
		}
	}
	return out
}

func (s *Server) tableAttrs(net *Network, nodes bool) []map[string]any {
	var out []map[string]any
	if nodes {
		for _, n := range net.Nodes {
			out = append(out, n.Attrs)
		}
	} else {
		for _, e := range net.Edges {
			out = append(out, e.Attrs)
		}
	}
	return out
}

func remoteTypeOf(v any) string {
	switch v.(type) {
	case bool:
		return "Boolean"
	case float64:
		return "Double"
	case []any:
		return "List"
	default:
		return "String"
	}
}
