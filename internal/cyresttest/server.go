// Package cyresttest runs an in-process fake of the CyREST surface so
// client tests pass without a live Cytoscape. It models just enough:
// networks with attribute tables, the commands dispatcher, styles,
// filters and the sandbox file commands.
package cyresttest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Node is one fake node; Attrs always carries "name" and "selected".
type Node struct {
	SUID  int64
	Attrs map[string]any
}

// Edge is one fake edge.
type Edge struct {
	SUID           int64
	Source, Target int64
	Attrs          map[string]any
}

// Network is one fake network with its default node and edge tables.
type Network struct {
	SUID     int64
	Name     string
	Nodes    []*Node
	Edges    []*Edge
	Views    []int64
	NodeCols map[string]string // column name -> CyREST type
	EdgeCols map[string]string
}

// Command is one logged invocation of the commands surface.
type Command struct {
	Path string
	Args map[string]any
}

// Server is the fake instance. Mutate its exported fields before the
// client calls arrive; inspect Commands afterwards.
type Server struct {
	mu sync.Mutex

	APIVersion       string
	CytoscapeVersion string

	nextSUID int64
	networks map[int64]*Network
	current  int64

	styles   map[string]map[string]any
	mappings map[string][]map[string]any
	filters  map[string]map[string]any

	sandbox      string
	sandboxFiles map[string][]byte

	// SessionName is what the session name endpoint reports; empty
	// means the session has never been saved.
	SessionName string

	// Commands logs every POST to the commands surface in order.
	Commands []Command

	http *httptest.Server
}

// New starts the fake server. Callers must Close it.
func New() *Server {
	s := &Server{
		APIVersion:       "v1",
		CytoscapeVersion: "3.10.1",
		nextSUID:         1000,
		networks:         make(map[int64]*Network),
		styles:           map[string]map[string]any{"default": {"title": "default"}},
		mappings:         make(map[string][]map[string]any),
		filters:          make(map[string]map[string]any),
		sandboxFiles:     make(map[string][]byte),
	}
	s.http = httptest.NewServer(s.router())
	return s
}

// Close shuts the fake down.
func (s *Server) Close() { s.http.Close() }

// URL returns the versioned base URL clients should connect to.
func (s *Server) URL() string { return s.http.URL + "/v1" }

func (s *Server) suid() int64 {
	s.nextSUID++
	return s.nextSUID
}

// AddNetwork seeds a network. Edges name node pairs as [source, target,
// interaction]. Returns the network for further seeding.
func (s *Server) AddNetwork(name string, nodeNames []string, edges [][3]string) *Network {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addNetworkLocked(name, nodeNames, edges)
}

func (s *Server) addNetworkLocked(name string, nodeNames []string, edges [][3]string) *Network {
	net := &Network{
		SUID:     s.suid(),
		Name:     name,
		NodeCols: map[string]string{"SUID": "Long", "name": "String", "selected": "Boolean"},
		EdgeCols: map[string]string{"SUID": "Long", "name": "String", "selected": "Boolean", "interaction": "String"},
	}
	byName := make(map[string]int64)
	for _, n := range nodeNames {
		node := &Node{SUID: s.suid(), Attrs: map[string]any{"name": n, "selected": false}}
		net.Nodes = append(net.Nodes, node)
		byName[n] = node.SUID
	}
	for _, e := range edges {
		inter := e[2]
		if inter == "" {
			inter = "interacts with"
		}
		edge := &Edge{
			SUID:   s.suid(),
			Source: byName[e[0]],
			Target: byName[e[1]],
			Attrs: map[string]any{
				"name":        fmt.Sprintf("%s (%s) %s", e[0], inter, e[1]),
				"selected":    false,
				"interaction": inter,
			},
		}
		net.Edges = append(net.Edges, edge)
	}
	net.Views = []int64{s.suid()}
	s.networks[net.SUID] = net
	s.current = net.SUID
	return net
}

// Network returns a seeded network by SUID for inspection.
func (s *Server) Network(suid int64) *Network {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.networks[suid]
}

// Filter returns a recorded filter definition by name.
func (s *Server) Filter(name string) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters[name]
}

// SandboxFile returns the content of a file sent into the sandbox.
func (s *Server) SandboxFile(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.sandboxFiles[name]
	return b, ok
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func cyError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"errors": []map[string]any{{"message": msg}},
	})
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, 200, map[string]any{"availableApiVersions": []string{"v1"}})
	})
	r.Route("/v1", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, 200, map[string]any{
				"apiVersion":    s.APIVersion,
				"numberOfCores": 4,
				"memoryStatus": map[string]int64{
					"usedMemory": 512, "freeMemory": 1024, "totalMemory": 1536, "maxMemory": 4096,
				},
			})
		})
		r.Get("/version", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, 200, map[string]any{
				"apiVersion":       s.APIVersion,
				"cytoscapeVersion": s.CytoscapeVersion,
			})
		})
		r.Get("/gc", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(204)
		})
		r.Get("/session/name", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/plain")
			s.mu.Lock()
			fmt.Fprint(w, s.SessionName)
			s.mu.Unlock()
		})
		r.Put("/ui/lod", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, 200, map[string]any{})
		})

		r.Route("/networks", s.networkRoutes)
		r.Get("/networks.names", func(w http.ResponseWriter, req *http.Request) {
			suid, _ := strconv.ParseInt(req.URL.Query().Get("query"), 10, 64)
			s.mu.Lock()
			net := s.networks[suid]
			s.mu.Unlock()
			if net == nil {
				writeJSON(w, 200, []any{})
				return
			}
			writeJSON(w, 200, []map[string]any{{"name": net.Name, "SUID": net.SUID}})
		})
		// The fake keeps collections one-to-one with networks.
		r.Route("/collections", func(r chi.Router) {
			r.Get("/", func(w http.ResponseWriter, req *http.Request) {
				s.mu.Lock()
				defer s.mu.Unlock()
				suids := []int64{}
				if sub := req.URL.Query().Get("subsuid"); sub != "" {
					n, _ := strconv.ParseInt(sub, 10, 64)
					if s.networks[n] != nil {
						suids = append(suids, n)
					}
				} else {
					for suid := range s.networks {
						suids = append(suids, suid)
					}
				}
				writeJSON(w, 200, suids)
			})
			r.Get("/{csuid}/tables/default", func(w http.ResponseWriter, req *http.Request) {
				csuid, _ := strconv.ParseInt(chi.URLParam(req, "csuid"), 10, 64)
				s.mu.Lock()
				net := s.networks[csuid]
				s.mu.Unlock()
				if net == nil {
					cyError(w, 404, fmt.Sprintf("Collection does not exist: %d", csuid))
					return
				}
				writeJSON(w, 200, map[string]any{
					"rows": []map[string]any{{"name": net.Name, "SUID": net.SUID}},
				})
			})
			r.Get("/{csuid}/subnetworks", func(w http.ResponseWriter, req *http.Request) {
				csuid, _ := strconv.ParseInt(chi.URLParam(req, "csuid"), 10, 64)
				s.mu.Lock()
				net := s.networks[csuid]
				s.mu.Unlock()
				if net == nil {
					cyError(w, 404, fmt.Sprintf("Collection does not exist: %d", csuid))
					return
				}
				writeJSON(w, 200, []int64{net.SUID})
			})
		})

		r.Route("/styles", s.styleRoutes)
		r.Get("/apply/styles", func(w http.ResponseWriter, _ *http.Request) {
			s.mu.Lock()
			names := make([]string, 0, len(s.styles))
			for name := range s.styles {
				names = append(names, name)
			}
			s.mu.Unlock()
			writeJSON(w, 200, names)
		})
		r.Get("/apply/layouts", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, 200, []string{"force-directed", "circular", "grid"})
		})
		r.Get("/apply/layouts/{name}", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, 200, map[string]any{"longName": chi.URLParam(req, "name") + " Layout"})
		})
		r.Get("/apply/layouts/{name}/parameters", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, 200, []map[string]any{
				{"name": "defaultSpringLength", "value": 50.0},
				{"name": "defaultSpringCoefficient", "value": 0.1},
			})
		})
		r.Put("/apply/layouts/{name}/parameters", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(200)
		})
		r.Get("/apply/edgebundling/{suid}", func(w http.ResponseWriter, req *http.Request) {
			if s.findNetwork(w, req) == nil {
				return
			}
			writeJSON(w, 200, map[string]any{"message": "Edge bundling success."})
		})
		r.Get("/apply/clearalledgebends/{suid}", func(w http.ResponseWriter, req *http.Request) {
			if s.findNetwork(w, req) == nil {
				return
			}
			writeJSON(w, 200, map[string]any{"message": "Clear all edge bends success."})
		})

		r.Post("/commands/{ns}/{cmd}", s.handleCommandPost)
		r.Get("/commands/{ns}/{cmd}", s.handleCommandGet)
		r.Get("/commands/{ns}", s.handleCommandGet)
		r.Get("/commands", s.handleCommandGet)
	})
	return r
}

func (s *Server) findNetwork(w http.ResponseWriter, req *http.Request) *Network {
	suid, err := strconv.ParseInt(chi.URLParam(req, "suid"), 10, 64)
	if err != nil {
		cyError(w, 404, "bad network SUID")
		return nil
	}
	s.mu.Lock()
	net := s.networks[suid]
	s.mu.Unlock()
	if net == nil {
		cyError(w, 404, fmt.Sprintf("Network does not exist: %d", suid))
	}
	return net
}
