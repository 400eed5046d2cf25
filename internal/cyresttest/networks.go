package cyresttest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

func (s *Server) networkRoutes(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		suids := make([]int64, 0, len(s.networks))
		for suid := range s.networks {
			suids = append(suids, suid)
		}
		s.mu.Unlock()
		writeJSON(w, 200, suids)
	})
	r.Delete("/", func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		s.networks = map[int64]*Network{}
		s.current = 0
		s.mu.Unlock()
		w.WriteHeader(200)
	})
	r.Get("/count", func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		n := len(s.networks)
		s.mu.Unlock()
		writeJSON(w, 200, map[string]int{"count": n})
	})
	r.Post("/", s.handleCreateNetwork)

	r.Route("/{suid}", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			net := s.findNetwork(w, req)
			if net == nil {
				return
			}
			writeJSON(w, 200, map[string]any{"data": map[string]any{"name": net.Name, "SUID": net.SUID}})
		})
		r.Delete("/", func(w http.ResponseWriter, req *http.Request) {
			net := s.findNetwork(w, req)
			if net == nil {
				return
			}
			s.mu.Lock()
			delete(s.networks, net.SUID)
			if s.current == net.SUID {
				s.current = 0
			}
			s.mu.Unlock()
			w.WriteHeader(200)
		})
		r.Get("/views", func(w http.ResponseWriter, req *http.Request) {
			net := s.findNetwork(w, req)
			if net == nil {
				return
			}
			writeJSON(w, 200, net.Views)
		})
		r.Get("/nodes", func(w http.ResponseWriter, req *http.Request) {
			net := s.findNetwork(w, req)
			if net == nil {
				return
			}
			writeJSON(w, 200, s.entitySUIDs(net, true, req))
		})
		r.Get("/edges", func(w http.ResponseWriter, req *http.Request) {
			net := s.findNetwork(w, req)
			if net == nil {
				return
			}
			writeJSON(w, 200, s.entitySUIDs(net, false, req))
		})
		r.Get("/nodes/count", func(w http.ResponseWriter, req *http.Request) {
			net := s.findNetwork(w, req)
			if net == nil {
				return
			}
			writeJSON(w, 200, map[string]int{"count": len(net.Nodes)})
		})
		r.Get("/edges/count", func(w http.ResponseWriter, req *http.Request) {
			net := s.findNetwork(w, req)
			if net == nil {
				return
			}
			writeJSON(w, 200, map[string]int{"count": len(net.Edges)})
		})
		r.Get("/nodes/{nsuid}/neighbors", s.handleNeighbors)
		r.Get("/edges/{esuid}", s.handleEdgeInfo)
		r.Post("/nodes", s.handleAddNodes)
		r.Post("/edges", s.handleAddEdges)
		r.Route("/tables/{table}", s.tableRoutes)
	})
}

// entitySUIDs honors the ?column=&query= filter the selection calls use.
func (s *Server) entitySUIDs(net *Network, nodes bool, req *http.Request) []int64 {
	column := req.URL.Query().Get("column")
	query := req.URL.Query().Get("query")
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []int64
	match := func(attrs map[string]any, suid int64) {
		if column != "" {
			if fmt.Sprint(attrs[column]) != query {
				return
			}
		}
		out = append(out, suid)
	}
	if nodes {
		for _, n := range net.Nodes {
			match(n.Attrs, n.SUID)
		}
	} else {
		for _, e := range net.Edges {
			match(e.Attrs, e.SUID)
		}
	}
	if out == nil {
		out = []int64{}
	}
	return out
}

func (s *Server) handleNeighbors(w http.ResponseWriter, req *http.Request) {
	net := s.findNetwork(w, req)
	if net == nil {
		return
	}
	nsuid, _ := strconv.ParseInt(chi.URLParam(req, "nsuid"), 10, 64)
	s.mu.Lock()
	defer s.mu.Unlock()
	neighbors := []int64{}
	for _, e := range net.Edges {
		switch nsuid {
		case e.Source:
			neighbors = append(neighbors, e.Target)
		case e.Target:
			neighbors = append(neighbors, e.Source)
		}
	}
	writeJSON(w, 200, neighbors)
}

func (s *Server) handleEdgeInfo(w http.ResponseWriter, req *http.Request) {
	net := s.findNetwork(w, req)
	if net == nil {
		return
	}
	esuid, _ := strconv.ParseInt(chi.URLParam(req, "esuid"), 10, 64)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range net.Edges {
		if e.SUID == esuid {
			writeJSON(w, 200, map[string]any{"data": map[string]any{
				"SUID": e.SUID, "source": e.Source, "target": e.Target,
			}})
			return
		}
	}
	cyError(w, 404, fmt.Sprintf("Edge does not exist: %d", esuid))
}

func (s *Server) handleAddNodes(w http.ResponseWriter, req *http.Request) {
	net := s.findNetwork(w, req)
	if net == nil {
		return
	}
	var names []string
	if err := json.NewDecoder(req.Body).Decode(&names); err != nil {
		cyError(w, 400, "expected a JSON list of node names")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, 0, len(names))
	for _, name := range names {
		node := &Node{SUID: s.suid(), Attrs: map[string]any{"name": name, "selected": false}}
		net.Nodes = append(net.Nodes, node)
		out = append(out, map[string]any{"name": name, "SUID": node.SUID})
	}
	writeJSON(w, 200, out)
}

func (s *Server) handleAddEdges(w http.ResponseWriter, req *http.Request) {
	net := s.findNetwork(w, req)
	if net == nil {
		return
	}
	var specs []struct {
		Source      int64  `json:"source"`
		Target      int64  `json:"target"`
		Interaction string `json:"interaction"`
	}
	if err := json.NewDecoder(req.Body).Decode(&specs); err != nil {
		cyError(w, 400, "expected a JSON list of edge specs")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	nameOf := make(map[int64]string, len(net.Nodes))
	for _, n := range net.Nodes {
		nameOf[n.SUID] = fmt.Sprint(n.Attrs["name"])
	}
	out := make([]map[string]any, 0, len(specs))
	for _, spec := range specs {
		inter := spec.Interaction
		if inter == "" {
			inter = "interacts with"
		}
		name := fmt.Sprintf("%s (%s) %s", nameOf[spec.Source], inter, nameOf[spec.Target])
		edge := &Edge{SUID: s.suid(), Source: spec.Source, Target: spec.Target,
			Attrs: map[string]any{"name": name, "selected": false, "interaction": inter}}
		net.Edges = append(net.Edges, edge)
		out = append(out, map[string]any{"name": name, "SUID": edge.SUID})
	}
	writeJSON(w, 200, out)
}

// handleCreateNetwork accepts the cytoscape.js payload.
func (s *Server) handleCreateNetwork(w http.ResponseWriter, req *http.Request) {
	title := req.URL.Query().Get("title")
	var body struct {
		Data     map[string]any `json:"data"`
		Elements struct {
			Nodes []struct {
				Data map[string]any `json:"data"`
			} `json:"nodes"`
			Edges []struct {
				Data map[string]any `json:"data"`
			} `json:"edges"`
		} `json:"elements"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		cyError(w, 400, "expected a cytoscape.js network")
		return
	}
	if title == "" {
		title, _ = body.Data["name"].(string)
	}

	var nodeNames []string
	for _, n := range body.Elements.Nodes {
		nodeNames = append(nodeNames, fmt.Sprint(n.Data["id"]))
	}
	var edges [][3]string
	for _, e := range body.Elements.Edges {
		inter, _ := e.Data["interaction"].(string)
		edges = append(edges, [3]string{
			fmt.Sprint(e.Data["source"]), fmt.Sprint(e.Data["target"]), inter,
		})
	}
	s.mu.Lock()
	net := s.addNetworkLocked(title, nodeNames, edges)
	s.mu.Unlock()
	writeJSON(w, 200, map[string]any{"networkSUID": net.SUID})
}

// resolveTitle maps a command-surface network reference to a network.
func (s *Server) resolveTitle(title string) *Network {
	s.mu.Lock()
	defer s.mu.Unlock()
	if title == "current" || title == "" {
		return s.networks[s.current]
	}
	if rest, ok := strings.CutPrefix(title, "SUID:"); ok {
		suid, _ := strconv.ParseInt(rest, 10, 64)
		return s.networks[suid]
	}
	for _, net := range s.networks {
		if net.Name == title {
			return net
		}
	}
	return nil
}
