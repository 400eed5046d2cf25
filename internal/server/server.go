package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/cytoscape/cyrest-go/internal/apptype"
	"github.com/cytoscape/cyrest-go/internal/buildinfo"
	"github.com/cytoscape/cyrest-go/internal/metrics"
	"github.com/cytoscape/cyrest-go/internal/table"
	"github.com/cytoscape/cyrest-go/pkg/cytoscape"
	"github.com/modelcontextprotocol/go-sdk/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverName = "cyrest-mcp"

// MCPServer exposes Cytoscape automation as MCP tools.
type MCPServer struct {
	server *mcp.Server
	cy     *cytoscape.Client
}

// NewMCPServer creates a new MCP server around a Cytoscape client.
func NewMCPServer(cy *cytoscape.Client) *MCPServer {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: buildinfo.Version,
	}, nil)

	mcpServer := &MCPServer{
		server: server,
		cy:     cy,
	}

	// initialize metrics from env (no-op if disabled)
	metrics.InitFromEnv()
	mcpServer.setupToolHandlers()
	return mcpServer
}

func mustSchema[T any](name string) *jsonschema.Schema {
	s, err := jsonschema.For[T]()
	if err != nil {
		panic(fmt.Sprintf("failed to create schema for %s: %v", name, err))
	}
	return s
}

// setupToolHandlers registers all MCP tools
func (s *MCPServer) setupToolHandlers() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:         "health_check",
		Title:        "Health Check",
		Description:  "Verify the Cytoscape connection and report versions.",
		InputSchema:  mustSchema[apptype.HealthArgs]("HealthArgs"),
		OutputSchema: mustSchema[apptype.HealthResult]("HealthResult"),
	}, s.handleHealth)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "open_session",
		Title:       "Open Session",
		Description: "Open a .cys session file or URL, discarding the current session.",
		InputSchema: mustSchema[apptype.OpenSessionArgs]("OpenSessionArgs"),
	}, s.handleOpenSession)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "save_session",
		Title:       "Save Session",
		Description: "Save the current session, optionally to a new file.",
		InputSchema: mustSchema[apptype.SaveSessionArgs]("SaveSessionArgs"),
	}, s.handleSaveSession)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "close_session",
		Title:       "Close Session",
		Description: "Close the current session, optionally saving it first.",
		InputSchema: mustSchema[apptype.CloseSessionArgs]("CloseSessionArgs"),
	}, s.handleCloseSession)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:         "import_network",
		Title:        "Import Network",
		Description:  "Load a network from a file on the Cytoscape workstation.",
		InputSchema:  mustSchema[apptype.ImportNetworkArgs]("ImportNetworkArgs"),
		OutputSchema: mustSchema[apptype.NetworkResult]("NetworkResult (import)"),
	}, s.handleImportNetwork)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:         "create_network",
		Title:        "Create Network",
		Description:  "Create a network from node names and edge specs.",
		InputSchema:  mustSchema[apptype.CreateNetworkArgs]("CreateNetworkArgs"),
		OutputSchema: mustSchema[apptype.NetworkResult]("NetworkResult (create)"),
	}, s.handleCreateNetwork)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:         "list_networks",
		Title:        "List Networks",
		Description:  "List all networks in the current session with node and edge counts.",
		InputSchema:  mustSchema[apptype.ListNetworksArgs]("ListNetworksArgs"),
		OutputSchema: mustSchema[apptype.NetworkListResult]("NetworkListResult"),
	}, s.handleListNetworks)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "apply_layout",
		Title:       "Apply Layout",
		Description: "Run a layout algorithm on a network.",
		InputSchema: mustSchema[apptype.ApplyLayoutArgs]("ApplyLayoutArgs"),
	}, s.handleApplyLayout)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:         "export_image",
		Title:        "Export Image",
		Description:  "Render a network view to an image file.",
		InputSchema:  mustSchema[apptype.ExportImageArgs]("ExportImageArgs"),
		OutputSchema: mustSchema[apptype.ExportImageResult]("ExportImageResult"),
	}, s.handleExportImage)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:         "select_nodes",
		Title:        "Select Nodes",
		Description:  "Select nodes by name in a network.",
		InputSchema:  mustSchema[apptype.SelectNodesArgs]("SelectNodesArgs"),
		OutputSchema: mustSchema[apptype.SelectionResult]("SelectionResult"),
	}, s.handleSelectNodes)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:         "create_column_filter",
		Title:        "Create Column Filter",
		Description:  "Define a filter over a table column and apply it to the current network.",
		InputSchema:  mustSchema[apptype.CreateColumnFilterArgs]("CreateColumnFilterArgs"),
		OutputSchema: mustSchema[apptype.FilterSelection]("FilterSelection (create)"),
	}, s.handleCreateColumnFilter)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:         "apply_filter",
		Title:        "Apply Filter",
		Description:  "Apply a previously defined filter to a network.",
		InputSchema:  mustSchema[apptype.ApplyFilterArgs]("ApplyFilterArgs"),
		OutputSchema: mustSchema[apptype.FilterSelection]("FilterSelection (apply)"),
	}, s.handleApplyFilter)
}

// networkRef maps a tool-level network reference to a NetworkRef.
// Decimal strings address by SUID, anything else by title, empty
// means the current network.
func networkRef(network string) cytoscape.NetworkRef {
	if network == "" {
		return cytoscape.CurrentNetwork()
	}
	if suid, err := strconv.ParseInt(network, 10, 64); err == nil {
		return cytoscape.NetworkBySUID(suid)
	}
	return cytoscape.NetworkByName(network)
}

func textResult(format string, args ...any) *mcp.CallToolResultFor[any] {
	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
	}
}

func (s *MCPServer) handleHealth(
	ctx context.Context,
	session *mcp.ServerSession,
	params *mcp.CallToolParamsFor[apptype.HealthArgs],
) (*mcp.CallToolResultFor[apptype.HealthResult], error) {
	done := metrics.TimeOp("tool_health_check")
	var success bool
	defer func() { done(success) }()
	if err := s.cy.Ping(ctx); err != nil {
		return nil, err
	}
	version, err := s.cy.Version(ctx)
	if err != nil {
		return nil, err
	}
	success = true
	return &mcp.CallToolResultFor[apptype.HealthResult]{
		Content: []mcp.Content{&mcp.TextContent{Text: "ok"}},
		StructuredContent: apptype.HealthResult{
			Name:             serverName,
			Version:          buildinfo.Version,
			APIVersion:       version.APIVersion,
			CytoscapeVersion: version.CytoscapeVersion,
		},
	}, nil
}

func (s *MCPServer) handleOpenSession(
	ctx context.Context,
	session *mcp.ServerSession,
	params *mcp.CallToolParamsFor[apptype.OpenSessionArgs],
) (*mcp.CallToolResultFor[any], error) {
	done := metrics.TimeOp("tool_open_session")
	var success bool
	defer func() { done(success) }()
	if err := s.cy.OpenSession(ctx, params.Arguments.File); err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}
	success = true
	return textResult("Opened session %s", params.Arguments.File), nil
}

func (s *MCPServer) handleSaveSession(
	ctx context.Context,
	session *mcp.ServerSession,
	params *mcp.CallToolParamsFor[apptype.SaveSessionArgs],
) (*mcp.CallToolResultFor[any], error) {
	done := metrics.TimeOp("tool_save_session")
	var success bool
	defer func() { done(success) }()
	if err := s.cy.SaveSession(ctx, params.Arguments.File); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	success = true
	return textResult("Session saved"), nil
}

func (s *MCPServer) handleCloseSession(
	ctx context.Context,
	session *mcp.ServerSession,
	params *mcp.CallToolParamsFor[apptype.CloseSessionArgs],
) (*mcp.CallToolResultFor[any], error) {
	done := metrics.TimeOp("tool_close_session")
	var success bool
	defer func() { done(success) }()
	if err := s.cy.CloseSession(ctx, params.Arguments.Save, params.Arguments.File); err != nil {
		return nil, fmt.Errorf("failed to close session: %w", err)
	}
	success = true
	return textResult("Session closed"), nil
}

func (s *MCPServer) handleImportNetwork(
	ctx context.Context,
	session *mcp.ServerSession,
	params *mcp.CallToolParamsFor[apptype.ImportNetworkArgs],
) (*mcp.CallToolResultFor[apptype.NetworkResult], error) {
	done := metrics.TimeOp("tool_import_network")
	var success bool
	defer func() { done(success) }()
	suids, err := s.cy.ImportNetworkFromFile(ctx, params.Arguments.File)
	if err != nil {
		return nil, fmt.Errorf("failed to import network: %w", err)
	}
	if len(suids) == 0 {
		return nil, fmt.Errorf("no network was loaded from %s", params.Arguments.File)
	}
	name, err := s.cy.GetNetworkName(ctx, suids[0])
	if err != nil {
		return nil, err
	}
	success = true
	return &mcp.CallToolResultFor[apptype.NetworkResult]{
		Content:           []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Imported network %q", name)}},
		StructuredContent: apptype.NetworkResult{SUID: suids[0], Name: name},
	}, nil
}

func (s *MCPServer) handleCreateNetwork(
	ctx context.Context,
	session *mcp.ServerSession,
	params *mcp.CallToolParamsFor[apptype.CreateNetworkArgs],
) (*mcp.CallToolResultFor[apptype.NetworkResult], error) {
	done := metrics.TimeOp("tool_create_network")
	var success bool
	defer func() { done(success) }()

	ids := make([]table.Value, 0, len(params.Arguments.Nodes))
	for _, name := range params.Arguments.Nodes {
		ids = append(ids, table.Str(name))
	}
	nodes, err := table.New(table.NewColumn("id", table.String, ids...))
	if err != nil {
		return nil, err
	}

	var edges *table.Table
	if len(params.Arguments.Edges) > 0 {
		var src, tgt, inter []table.Value
		for _, e := range params.Arguments.Edges {
			src = append(src, table.Str(e.Source))
			tgt = append(tgt, table.Str(e.Target))
			if e.Interaction == "" {
				inter = append(inter, table.Null())
			} else {
				inter = append(inter, table.Str(e.Interaction))
			}
		}
		edges, err = table.New(
			table.NewColumn("source", table.String, src...),
			table.NewColumn("target", table.String, tgt...),
			table.NewColumn("interaction", table.String, inter...),
		)
		if err != nil {
			return nil, err
		}
	}

	suid, err := s.cy.CreateNetworkFromTables(ctx, nodes, edges, params.Arguments.Title, params.Arguments.Collection)
	if err != nil {
		return nil, fmt.Errorf("failed to create network: %w", err)
	}
	name, err := s.cy.GetNetworkName(ctx, suid)
	if err != nil {
		return nil, err
	}
	success = true
	return &mcp.CallToolResultFor[apptype.NetworkResult]{
		Content:           []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Created network %q with %d nodes", name, len(params.Arguments.Nodes))}},
		StructuredContent: apptype.NetworkResult{SUID: suid, Name: name},
	}, nil
}

func (s *MCPServer) handleListNetworks(
	ctx context.Context,
	session *mcp.ServerSession,
	params *mcp.CallToolParamsFor[apptype.ListNetworksArgs],
) (*mcp.CallToolResultFor[apptype.NetworkListResult], error) {
	done := metrics.TimeOp("tool_list_networks")
	var success bool
	defer func() { done(success) }()
	names, err := s.cy.GetNetworkList(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list networks: %w", err)
	}
	summaries := make([]apptype.NetworkSummary, 0, len(names))
	for _, name := range names {
		ref := cytoscape.NetworkByName(name)
		suid, err := s.cy.GetNetworkSUID(ctx, ref)
		if err != nil {
			return nil, err
		}
		nodeCount, err := s.cy.GetNodeCount(ctx, ref)
		if err != nil {
			return nil, err
		}
		edgeCount, err := s.cy.GetEdgeCount(ctx, ref)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, apptype.NetworkSummary{
			SUID: suid, Name: name, Nodes: nodeCount, Edges: edgeCount,
		})
	}
	success = true
	return &mcp.CallToolResultFor[apptype.NetworkListResult]{
		Content:           []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("%d networks", len(summaries))}},
		StructuredContent: apptype.NetworkListResult{Networks: summaries},
	}, nil
}

func (s *MCPServer) handleApplyLayout(
	ctx context.Context,
	session *mcp.ServerSession,
	params *mcp.CallToolParamsFor[apptype.ApplyLayoutArgs],
) (*mcp.CallToolResultFor[any], error) {
	done := metrics.TimeOp("tool_apply_layout")
	var success bool
	defer func() { done(success) }()
	if err := s.cy.LayoutNetwork(ctx, networkRef(params.Arguments.Network), params.Arguments.Name); err != nil {
		return nil, fmt.Errorf("failed to apply layout: %w", err)
	}
	success = true
	layout := params.Arguments.Name
	if layout == "" {
		layout = "preferred"
	}
	return textResult("Applied %s layout", layout), nil
}

func (s *MCPServer) handleExportImage(
	ctx context.Context,
	session *mcp.ServerSession,
	params *mcp.CallToolParamsFor[apptype.ExportImageArgs],
) (*mcp.CallToolResultFor[apptype.ExportImageResult], error) {
	done := metrics.TimeOp("tool_export_image")
	var success bool
	defer func() { done(success) }()
	file, err := s.cy.ExportImage(ctx, networkRef(params.Arguments.Network), params.Arguments.File, cytoscape.ImageOptions{
		Format:    params.Arguments.Format,
		Zoom:      params.Arguments.Zoom,
		Overwrite: params.Arguments.Overwrite,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to export image: %w", err)
	}
	success = true
	return &mcp.CallToolResultFor[apptype.ExportImageResult]{
		Content:           []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Exported %s", file)}},
		StructuredContent: apptype.ExportImageResult{File: file},
	}, nil
}

func (s *MCPServer) handleSelectNodes(
	ctx context.Context,
	session *mcp.ServerSession,
	params *mcp.CallToolParamsFor[apptype.SelectNodesArgs],
) (*mcp.CallToolResultFor[apptype.SelectionResult], error) {
	done := metrics.TimeOp("tool_select_nodes")
	var success bool
	defer func() { done(success) }()
	res, err := s.cy.SelectNodes(ctx,
		networkRef(params.Arguments.Network),
		cytoscape.RefNames(params.Arguments.Nodes...),
		params.Arguments.Preserve)
	if err != nil {
		return nil, fmt.Errorf("failed to select nodes: %w", err)
	}
	success = true
	return &mcp.CallToolResultFor[apptype.SelectionResult]{
		Content:           []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Selected %d nodes", len(res.Nodes))}},
		StructuredContent: apptype.SelectionResult{Nodes: len(res.Nodes), Edges: len(res.Edges)},
	}, nil
}

func (s *MCPServer) handleCreateColumnFilter(
	ctx context.Context,
	session *mcp.ServerSession,
	params *mcp.CallToolParamsFor[apptype.CreateColumnFilterArgs],
) (*mcp.CallToolResultFor[apptype.FilterSelection], error) {
	done := metrics.TimeOp("tool_create_column_filter")
	var success bool
	defer func() { done(success) }()

	var criterion any
	predicate := params.Arguments.Predicate
	if len(params.Arguments.Range) == 2 {
		criterion = []any{params.Arguments.Range[0], params.Arguments.Range[1]}
		if predicate == "" {
			predicate = "BETWEEN"
		}
	} else {
		criterion = params.Arguments.Value
		if predicate == "" {
			predicate = "IS"
		}
	}

	res, err := s.cy.CreateColumnFilter(ctx, cytoscape.CurrentNetwork(),
		params.Arguments.Name, params.Arguments.Column, criterion, predicate,
		cytoscape.ColumnFilterOptions{Edges: params.Arguments.Edges})
	if err != nil {
		return nil, fmt.Errorf("failed to create filter: %w", err)
	}
	success = true
	return &mcp.CallToolResultFor[apptype.FilterSelection]{
		Content:           []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Filter %q selected %d nodes and %d edges", params.Arguments.Name, len(res.Nodes), len(res.Edges))}},
		StructuredContent: apptype.FilterSelection{Nodes: res.Nodes, Edges: res.Edges},
	}, nil
}

func (s *MCPServer) handleApplyFilter(
	ctx context.Context,
	session *mcp.ServerSession,
	params *mcp.CallToolParamsFor[apptype.ApplyFilterArgs],
) (*mcp.CallToolResultFor[apptype.FilterSelection], error) {
	done := metrics.TimeOp("tool_apply_filter")
	var success bool
	defer func() { done(success) }()
	res, err := s.cy.ApplyFilter(ctx, params.Arguments.Name, networkRef(params.Arguments.Network))
	if err != nil {
		return nil, fmt.Errorf("failed to apply filter: %w", err)
	}
	success = true
	return &mcp.CallToolResultFor[apptype.FilterSelection]{
		Content:           []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Filter %q selected %d nodes and %d edges", params.Arguments.Name, len(res.Nodes), len(res.Edges))}},
		StructuredContent: apptype.FilterSelection{Nodes: res.Nodes, Edges: res.Edges},
	}, nil
}

// Run starts the MCP server with stdio transport
func (s *MCPServer) Run(ctx context.Context) error {
	transport := mcp.NewStdioTransport()
	return s.server.Run(ctx, transport)
}

// RunSSE starts the MCP server over SSE at the given address and endpoint
func (s *MCPServer) RunSSE(ctx context.Context, addr string, endpoint string) error {
	handler := mcp.NewSSEHandler(func(r *http.Request) *mcp.Server { return s.server })
	mux := http.NewServeMux()
	mux.Handle(endpoint, handler)
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 0)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("SSE MCP server listening on %s%s", addr, endpoint)
	return srv.ListenAndServe()
}
