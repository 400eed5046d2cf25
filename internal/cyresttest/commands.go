package cyresttest

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

func commandData(w http.ResponseWriter, data any) {
	writeJSON(w, 200, map[string]any{"data": data, "errors": []any{}})
}

// handleCommandGet serves the text/plain command surface used for help
// and line-oriented commands.
func (s *Server) handleCommandGet(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	ns := chi.URLParam(req, "ns")
	if ns == "" {
		fmt.Fprint(w, "Available namespaces:\n  network\n  view\n  session\n  filter\nFinished\n")
		return
	}
	fmt.Fprintf(w, "Available commands for %s:\n  list\n  create\nFinished\n", ns)
}

func (s *Server) handleCommandPost(w http.ResponseWriter, req *http.Request) {
	cmd := chi.URLParam(req, "ns") + " " + chi.URLParam(req, "cmd")
	args := map[string]any{}
	if req.Body != nil {
		_ = json.NewDecoder(req.Body).Decode(&args)
	}
	s.mu.Lock()
	s.Commands = append(s.Commands, Command{Path: cmd, Args: args})
	s.mu.Unlock()

	str := func(key string) string {
		v, _ := args[key].(string)
		return v
	}

	switch cmd {
	case "network get attribute":
		net := s.resolveTitle(str("network"))
		if net == nil {
			cyError(w, 404, "Network does not exist: "+str("network"))
			return
		}
		s.mu.Lock()
		s.current = net.SUID
		s.mu.Unlock()
		commandData(w, []map[string]any{{"SUID": net.SUID}})

	case "network set current":
		net := s.resolveTitle(str("network"))
		if net == nil {
			cyError(w, 404, "Network does not exist: "+str("network"))
			return
		}
		s.mu.Lock()
		s.current = net.SUID
		s.mu.Unlock()
		commandData(w, map[string]any{})

	case "network rename":
		net := s.resolveTitle(str("sourceNetwork"))
		if net == nil {
			cyError(w, 404, "Network does not exist: "+str("sourceNetwork"))
			return
		}
		s.mu.Lock()
		net.Name = str("name")
		s.mu.Unlock()
		commandData(w, map[string]any{})

	case "network clone":
		net := s.resolveTitle(str("network"))
		if net == nil {
			cyError(w, 404, "Network does not exist: "+str("network"))
			return
		}
		s.mu.Lock()
		var nodeNames []string
		for _, n := range net.Nodes {
			nodeNames = append(nodeNames, fmt.Sprint(n.Attrs["name"]))
		}
		var edges [][3]string
		nameOf := map[int64]string{}
		for _, n := range net.Nodes {
			nameOf[n.SUID] = fmt.Sprint(n.Attrs["name"])
		}
		for _, e := range net.Edges {
			edges = append(edges, [3]string{nameOf[e.Source], nameOf[e.Target], fmt.Sprint(e.Attrs["interaction"])})
		}
		clone := s.addNetworkLocked(net.Name+"_1", nodeNames, edges)
		s.mu.Unlock()
		commandData(w, map[string]any{"network": clone.SUID})

	case "network create":
		s.handleSubnetworkCreate(w, args)

	case "network select":
		s.handleNetworkSelect(w, args)

	case "network delete":
		s.handleNetworkDelete(w, args)

	case "network load file":
		s.mu.Lock()
		net := s.addNetworkLocked("loaded", []string{"A", "B", "C"}, [][3]string{{"A", "B", ""}, {"B", "C", ""}})
		s.mu.Unlock()
		commandData(w, map[string]any{"networks": []int64{net.SUID}})

	case "network export":
		commandData(w, map[string]any{"file": str("OutputFile")})

	case "vizmap apply":
		commandData(w, map[string]any{})

	case "filter create":
		s.handleFilterCreate(w, args)

	case "filter list":
		s.mu.Lock()
		names := make([]map[string]any, 0, len(s.filters))
		for name := range s.filters {
			names = append(names, map[string]any{"name": name})
		}
		s.mu.Unlock()
		commandData(w, names)

	case "filter get":
		s.mu.Lock()
		def := s.filters[str("name")]
		s.mu.Unlock()
		if def == nil {
			commandData(w, []any{})
			return
		}
		commandData(w, []map[string]any{{"name": str("name"), "transformers": []any{def}}})

	case "filter apply":
		s.mu.Lock()
		def := s.filters[str("name")]
		s.mu.Unlock()
		if def == nil {
			cyError(w, 404, "Filter does not exist: "+str("name"))
			return
		}
		net := s.resolveTitle(str("network"))
		if net != nil {
			s.applyColumnFilter(net, def)
		}
		commandData(w, map[string]any{})

	case "filter export", "filter import":
		commandData(w, map[string]any{})

	case "command echo":
		commandData(w, []string{str("message")})

	case "command sleep":
		commandData(w, map[string]any{})

	case "session new":
		s.mu.Lock()
		s.networks = map[int64]*Network{}
		s.current = 0
		s.mu.Unlock()
		commandData(w, map[string]any{})

	case "session open", "session save", "session save as":
		commandData(w, map[string]any{})

	case "view create":
		net := s.resolveTitle(str("network"))
		if net != nil {
			s.mu.Lock()
			if len(net.Views) == 0 {
				net.Views = []int64{s.suid()}
			}
			s.mu.Unlock()
		}
		commandData(w, map[string]any{})

	case "view fit content", "view fit selected", "view set current":
		commandData(w, map[string]any{})

	case "view export":
		commandData(w, map[string]any{"file": str("OutputFile")})

	case "layout copycat":
		net := s.resolveTitle(str("targetNetwork"))
		count := 0
		if net != nil {
			count = len(net.Nodes)
		}
		commandData(w, map[string]any{"mappedNodeCount": count, "unmappedNodeCount": 0})

	default:
		switch {
		case strings.HasPrefix(cmd, "layout "):
			commandData(w, map[string]any{})
		case strings.HasPrefix(cmd, "filetransfer "):
			s.handleFiletransfer(w, cmd, args)
		case strings.HasPrefix(cmd, "apps list"):
			commandData(w, []any{})
		case strings.HasPrefix(cmd, "apps "):
			commandData(w, map[string]any{"appName": str("app"), "status": "Installed"})
		case strings.HasPrefix(cmd, "group "):
			s.handleGroup(w, cmd, args)
		default:
			commandData(w, map[string]any{})
		}
	}
}

func parseSUIDList(list string) []int64 {
	var out []int64
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(strings.TrimPrefix(part, "SUID:"))
		if suid, err := strconv.ParseInt(part, 10, 64); err == nil {
			out = append(out, suid)
		}
	}
	return out
}

func (s *Server) handleNetworkSelect(w http.ResponseWriter, args map[string]any) {
	str := func(key string) string { v, _ := args[key].(string); return v }
	net := s.resolveTitle(str("network"))
	if net == nil {
		cyError(w, 404, "Network does not exist: "+str("network"))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case str("invert") == "nodes":
		for _, n := range net.Nodes {
			n.Attrs["selected"] = n.Attrs["selected"] != true
		}
	case str("invert") == "edges":
		for _, e := range net.Edges {
			e.Attrs["selected"] = e.Attrs["selected"] != true
		}
	case str("firstNeighbors") != "":
		selected := map[int64]bool{}
		for _, n := range net.Nodes {
			if n.Attrs["selected"] == true {
				selected[n.SUID] = true
			}
		}
		for _, e := range net.Edges {
			if selected[e.Source] || selected[e.Target] {
				for _, n := range net.Nodes {
					if n.SUID == e.Source || n.SUID == e.Target {
						n.Attrs["selected"] = true
					}
				}
			}
		}
	default:
		for _, suid := range parseSUIDList(str("nodeList")) {
			for _, n := range net.Nodes {
				if n.SUID == suid {
					n.Attrs["selected"] = true
				}
			}
		}
		for _, suid := range parseSUIDList(str("edgeList")) {
			for _, e := range net.Edges {
				if e.SUID == suid {
					e.Attrs["selected"] = true
				}
			}
		}
	}

	nodes, edges := []int64{}, []int64{}
	for _, n := range net.Nodes {
		if n.Attrs["selected"] == true {
			nodes = append(nodes, n.SUID)
		}
	}
	for _, e := range net.Edges {
		if e.Attrs["selected"] == true {
			edges = append(edges, e.SUID)
		}
	}
	commandData(w, map[string]any{"nodes": nodes, "edges": edges})
}

func (s *Server) handleNetworkDelete(w http.ResponseWriter, args map[string]any) {
	str := func(key string) string { v, _ := args[key].(string); return v }
	net := s.resolveTitle(str("network"))
	if net == nil {
		cyError(w, 404, "Network does not exist: "+str("network"))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	removedNodes, removedEdges := []int64{}, []int64{}
	if str("nodeList") == "selected" {
		kept := net.Nodes[:0]
		gone := map[int64]bool{}
		for _, n := range net.Nodes {
			if n.Attrs["selected"] == true {
				removedNodes = append(removedNodes, n.SUID)
				gone[n.SUID] = true
			} else {
				kept = append(kept, n)
			}
		}
		net.Nodes = kept
		keptEdges := net.Edges[:0]
		for _, e := range net.Edges {
			if gone[e.Source] || gone[e.Target] {
				removedEdges = append(removedEdges, e.SUID)
			} else {
				keptEdges = append(keptEdges, e)
			}
		}
		net.Edges = keptEdges
	}
	if str("edgeList") == "selected" {
		kept := net.Edges[:0]
		for _, e := range net.Edges {
			if e.Attrs["selected"] == true {
				removedEdges = append(removedEdges, e.SUID)
			} else {
				kept = append(kept, e)
			}
		}
		net.Edges = kept
	}
	commandData(w, map[string]any{"nodes": removedNodes, "edges": removedEdges})
}

func (s *Server) handleSubnetworkCreate(w http.ResponseWriter, args map[string]any) {
	str := func(key string) string { v, _ := args[key].(string); return v }
	source := s.resolveTitle(str("source"))
	if source == nil {
		cyError(w, 404, "Network does not exist: "+str("source"))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	want := map[int64]bool{}
	switch nodeList := str("nodeList"); nodeList {
	case "all", "":
		for _, n := range source.Nodes {
			want[n.SUID] = true
		}
	case "selected":
		for _, n := range source.Nodes {
			if n.Attrs["selected"] == true {
				want[n.SUID] = true
			}
		}
	default:
		for _, suid := range parseSUIDList(nodeList) {
			want[suid] = true
		}
	}

	var nodeNames []string
	nameOf := map[int64]string{}
	for _, n := range source.Nodes {
		nameOf[n.SUID] = fmt.Sprint(n.Attrs["name"])
		if want[n.SUID] {
			nodeNames = append(nodeNames, fmt.Sprint(n.Attrs["name"]))
		}
	}
	var edges [][3]string
	if str("excludeEdges") != "true" {
		for _, e := range source.Edges {
			if want[e.Source] && want[e.Target] {
				edges = append(edges, [3]string{nameOf[e.Source], nameOf[e.Target], fmt.Sprint(e.Attrs["interaction"])})
			}
		}
	}
	name := str("networkName")
	if name == "" {
		name = source.Name + "_sub"
	}
	sub := s.addNetworkLocked(name, nodeNames, edges)
	commandData(w, map[string]any{"network": sub.SUID})
}

func (s *Server) handleFilterCreate(w http.ResponseWriter, args map[string]any) {
	name, _ := args["name"].(string)
	encoded, _ := args["json"].(string)
	var def map[string]any
	if err := json.Unmarshal([]byte(encoded), &def); err != nil {
		cyError(w, 400, "filter json does not parse: "+err.Error())
		return
	}
	s.mu.Lock()
	s.filters[name] = def
	current := s.networks[s.current]
	s.mu.Unlock()

	if apply, _ := args["apply"].(bool); apply && current != nil {
		s.applyColumnFilter(current, def)
	}
	commandData(w, map[string]any{})
}

// applyColumnFilter evaluates ColumnFilter definitions against the live
// node or edge table; other filter kinds select nothing.
func (s *Server) applyColumnFilter(net *Network, def map[string]any) {
	if def["id"] != "ColumnFilter" {
		return
	}
	params, _ := def["parameters"].(map[string]any)
	column, _ := params["columnName"].(string)
	predicate, _ := params["predicate"].(string)
	criterion := params["criterion"]
	onEdges := params["type"] == "edges"

	s.mu.Lock()
	defer s.mu.Unlock()
	attrs := s.tableAttrs(net, !onEdges)
	for _, row := range attrs {
		row["selected"] = matchesCriterion(row[column], predicate, criterion)
	}
}

func matchesCriterion(value any, predicate string, criterion any) bool {
	switch predicate {
	case "BETWEEN", "IS_NOT_BETWEEN":
		pair, _ := criterion.([]any)
		if len(pair) != 2 {
			return false
		}
		v, ok := value.(float64)
		lo, _ := pair[0].(float64)
		hi, _ := pair[1].(float64)
		in := ok && v >= lo && v <= hi
		if predicate == "IS_NOT_BETWEEN" {
			return ok && !in
		}
		return in
	case "IS":
		return fmt.Sprint(value) == fmt.Sprint(criterion)
	case "IS_NOT":
		return fmt.Sprint(value) != fmt.Sprint(criterion)
	case "CONTAINS":
		c, _ := criterion.(string)
		return strings.Contains(fmt.Sprint(value), c)
	}
	return false
}

func (s *Server) handleFiletransfer(w http.ResponseWriter, cmd string, args map[string]any) {
	str := func(key string) string { v, _ := args[key].(string); return v }
	fileName := str("fileName")

	switch strings.TrimPrefix(cmd, "filetransfer ") {
	case "setSandbox":
		name := str("sandboxName")
		s.mu.Lock()
		s.sandbox = name
		s.mu.Unlock()
		commandData(w, map[string]any{"sandboxPath": "/cytoscape/filetransfer/" + name})

	case "removeSandbox":
		s.mu.Lock()
		existed := s.sandbox == str("sandboxName")
		if existed {
			s.sandbox = ""
			s.sandboxFiles = map[string][]byte{}
		}
		s.mu.Unlock()
		commandData(w, map[string]any{"existed": existed})

	case "getFileInfo":
		s.mu.Lock()
		content, exists := s.sandboxFiles[fileName]
		sandbox := s.sandbox
		s.mu.Unlock()
		modified := ""
		if exists {
			modified = "2026-01-01 00:00:00"
		}
		_ = content
		commandData(w, map[string]any{
			"filePath":     "/cytoscape/filetransfer/" + sandbox + "/" + fileName,
			"modifiedTime": modified,
			"isFile":       exists,
		})

	case "toSandbox":
		content, err := base64.StdEncoding.DecodeString(str("fileBase64"))
		if err != nil {
			cyError(w, 400, "fileBase64 does not decode")
			return
		}
		s.mu.Lock()
		s.sandboxFiles[fileName] = content
		sandbox := s.sandbox
		s.mu.Unlock()
		commandData(w, map[string]any{
			"filePath": "/cytoscape/filetransfer/" + sandbox + "/" + fileName,
		})

	case "fromSandbox":
		s.mu.Lock()
		content, exists := s.sandboxFiles[fileName]
		s.mu.Unlock()
		if !exists {
			cyError(w, 404, "File does not exist: "+fileName)
			return
		}
		commandData(w, map[string]any{
			"fileBase64":    base64.StdEncoding.EncodeToString(content),
			"fileByteCount": len(content),
		})

	case "removeFile":
		s.mu.Lock()
		_, existed := s.sandboxFiles[fileName]
		delete(s.sandboxFiles, fileName)
		s.mu.Unlock()
		commandData(w, map[string]any{"fileRemoved": existed})

	default:
		commandData(w, map[string]any{})
	}
}

func (s *Server) handleGroup(w http.ResponseWriter, cmd string, args map[string]any) {
	switch strings.TrimPrefix(cmd, "group ") {
	case "create":
		s.mu.Lock()
		suid := s.suid()
		s.mu.Unlock()
		commandData(w, map[string]any{"group": suid})
	case "list":
		commandData(w, map[string]any{"groups": []int64{}})
	case "collapse", "expand":
		list, _ := args["groupList"].(string)
		commandData(w, map[string]any{"groups": parseSUIDList(list)})
	default:
		commandData(w, map[string]any{})
	}
}
