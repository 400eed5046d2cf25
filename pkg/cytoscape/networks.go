package cytoscape

import (
	"context"
	"fmt"
	"strings"

	"github.com/cytoscape/cyrest-go/internal/cyrest"
	"github.com/cytoscape/cyrest-go/internal/metrics"
	"github.com/cytoscape/cyrest-go/internal/table"
)

// resolveNetwork turns a NetworkRef into a live SUID. A SUID reference
// is validated against the instance's network list; a name reference is
// validated against the session's titles before being resolved through
// the command surface, which also makes that network current.
func (c *Client) resolveNetwork(ctx context.Context, ref NetworkRef) (int64, error) {
	if ref.bySUID {
		suids, err := c.networkSUIDs(ctx)
		if err != nil {
			return 0, err
		}
		for _, s := range suids {
			if s == ref.suid {
				return s, nil
			}
		}
		return 0, notFound("network", ref.suid)
	}

	title := "current"
	if ref.byName {
		names, err := c.GetNetworkList(ctx)
		if err != nil {
			return 0, err
		}
		found := false
		for _, n := range names {
			if n == ref.name {
				found = true
				break
			}
		}
		if !found {
			return 0, notFound("network", ref.name)
		}
		title = ref.name
	}

	res, err := c.rest.CommandsPost(ctx,
		fmt.Sprintf(`network get attribute network="%s" namespace="default" columnList="SUID"`, title))
	if err != nil {
		return 0, err
	}
	suid, ok := firstRowInt(res, "SUID")
	if !ok {
		return 0, notFound("network", title)
	}
	return suid, nil
}

func (c *Client) networkSUIDs(ctx context.Context) ([]int64, error) {
	var suids []int64
	if err := c.rest.GetInto(ctx, "networks", nil, &suids); err != nil {
		return nil, err
	}
	return suids, nil
}

// GetNetworkCount returns the number of networks in the session.
func (c *Client) GetNetworkCount(ctx context.Context) (int, error) {
	var res struct {
		Count int `json:"count"`
	}
	if err := c.rest.GetInto(ctx, "networks/count", nil, &res); err != nil {
		return 0, err
	}
	return res.Count, nil
}

// GetNetworkName returns the title of the network with the given SUID.
func (c *Client) GetNetworkName(ctx context.Context, suid int64) (string, error) {
	var rows []struct {
		Name string `json:"name"`
	}
	err := c.rest.GetInto(ctx, "networks.names",
		cyrest.Params{"column": "suid", "query": fmt.Sprint(suid)}, &rows)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", notFound("network", suid)
	}
	return rows[0].Name, nil
}

// GetNetworkSUID resolves a network reference to its SUID.
func (c *Client) GetNetworkSUID(ctx context.Context, network NetworkRef) (int64, error) {
	return c.resolveNetwork(ctx, network)
}

// GetNetworkList returns the titles of all networks in the session.
func (c *Client) GetNetworkList(ctx context.Context) ([]string, error) {
	count, err := c.GetNetworkCount(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return []string{}, nil
	}
	suids, err := c.networkSUIDs(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(suids))
	for _, suid := range suids {
		var res struct {
			Data struct {
				Name string `json:"name"`
			} `json:"data"`
		}
		if err := c.rest.GetInto(ctx, fmt.Sprintf("networks/%d", suid), nil, &res); err != nil {
			return nil, err
		}
		names = append(names, res.Data.Name)
	}
	return names, nil
}

// SetCurrentNetwork makes the given network the current one.
func (c *Client) SetCurrentNetwork(ctx context.Context, network NetworkRef) error {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return err
	}
	_, err = c.rest.CommandsPost(ctx, fmt.Sprintf(`network set current network="SUID:%d"`, suid))
	return err
}

// RenameNetwork retitles a network. Returns nothing on success.
func (c *Client) RenameNetwork(ctx context.Context, network NetworkRef, newName string) error {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return err
	}
	_, err = c.rest.CommandsPost(ctx,
		fmt.Sprintf(`network rename name="%s" sourceNetwork="SUID:%d"`, newName, suid))
	return err
}

// DeleteNetwork removes one network from the session. The reply body is
// empty, not a JSON document.
func (c *Client) DeleteNetwork(ctx context.Context, network NetworkRef) error {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return err
	}
	_, err = c.rest.Delete(ctx, fmt.Sprintf("networks/%d", suid), nil, false)
	return err
}

// DeleteAllNetworks removes every network from the session.
func (c *Client) DeleteAllNetworks(ctx context.Context) error {
	_, err := c.rest.Delete(ctx, "networks", nil, false)
	return err
}

// CloneNetwork copies a network and returns the copy's SUID.
func (c *Client) CloneNetwork(ctx context.Context, network NetworkRef) (int64, error) {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return 0, err
	}
	res, err := c.rest.CommandsPost(ctx, fmt.Sprintf(`network clone network="SUID:%d"`, suid))
	if err != nil {
		return 0, err
	}
	newSUID, ok := mapInt(asMap(res), "network")
	if !ok {
		return 0, validationf("clone reply carries no network SUID: %v", res)
	}
	return newSUID, nil
}

// SubnetworkOptions selects what goes into a new subnetwork. Nodes and
// Edges accept explicit reference lists; the keywords "all", "selected"
// and "unselected" select by state instead.
type SubnetworkOptions struct {
	Nodes        Refs
	NodesKeyword string
	Edges        Refs
	EdgesKeyword string
	ExcludeEdges bool
	Name         string
}

// CreateSubnetwork builds a new network from a subset of an existing
// one and returns the new network's SUID.
func (c *Client) CreateSubnetwork(ctx context.Context, network NetworkRef, opts SubnetworkOptions) (int64, error) {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return 0, err
	}

	nodeList, err := c.subnetworkList(ctx, network, nodeKind, opts.Nodes, opts.NodesKeyword)
	if err != nil {
		return 0, err
	}
	edgeList, err := c.subnetworkList(ctx, network, edgeKind, opts.Edges, opts.EdgesKeyword)
	if err != nil {
		return 0, err
	}

	body := map[string]any{
		"source":       fmt.Sprintf("SUID:%d", suid),
		"excludeEdges": fmt.Sprint(opts.ExcludeEdges),
	}
	if nodeList != "" {
		body["nodeList"] = nodeList
	}
	if edgeList != "" {
		body["edgeList"] = edgeList
	}
	if opts.Name != "" {
		body["networkName"] = opts.Name
	}

	var res struct {
		Data struct {
			Network int64 `json:"network"`
		} `json:"data"`
	}
	if err := c.rest.PostInto(ctx, "commands/network/create", nil, body, &res); err != nil {
		return 0, err
	}
	return res.Data.Network, nil
}

func (c *Client) subnetworkList(ctx context.Context, network NetworkRef, kind entityKind, refs Refs, keyword string) (string, error) {
	if keyword != "" {
		switch keyword {
		case "all", "selected", "unselected":
			return keyword, nil
		default:
			return "", validationf("unknown %s keyword %q", kind, keyword)
		}
	}
	if refs.IsEmpty() {
		return "", nil
	}
	suids, err := c.translateToSUIDs(ctx, network, kind, refs, nil)
	if err != nil {
		return "", err
	}
	parts := make([]string, len(suids))
	for i, s := range suids {
		parts[i] = fmt.Sprintf("SUID:%d", s)
	}
	return strings.Join(parts, ","), nil
}

// GetNodeCount returns the number of nodes in a network.
func (c *Client) GetNodeCount(ctx context.Context, network NetworkRef) (int, error) {
	return c.entityCount(ctx, network, "nodes")
}

// GetEdgeCount returns the number of edges in a network.
func (c *Client) GetEdgeCount(ctx context.Context, network NetworkRef) (int, error) {
	return c.entityCount(ctx, network, "edges")
}

func (c *Client) entityCount(ctx context.Context, network NetworkRef, plural string) (int, error) {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return 0, err
	}
	var res struct {
		Count int `json:"count"`
	}
	if err := c.rest.GetInto(ctx, fmt.Sprintf("networks/%d/%s/count", suid, plural), nil, &res); err != nil {
		return 0, err
	}
	return res.Count, nil
}

// GetAllNodes returns the names of every node in a network.
func (c *Client) GetAllNodes(ctx context.Context, network NetworkRef) ([]string, error) {
	return c.allEntityNames(ctx, network, "defaultnode")
}

// GetAllEdges returns the names of every edge in a network.
func (c *Client) GetAllEdges(ctx context.Context, network NetworkRef) ([]string, error) {
	return c.allEntityNames(ctx, network, "defaultedge")
}

func (c *Client) allEntityNames(ctx context.Context, network NetworkRef, tbl string) ([]string, error) {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return nil, err
	}
	var col struct {
		Values []string `json:"values"`
	}
	err = c.rest.GetInto(ctx, fmt.Sprintf("networks/%d/tables/%s/columns/name", suid, tbl), nil, &col)
	if err != nil {
		return nil, err
	}
	return col.Values, nil
}

// AddedEntity is one node or edge created by AddNodes or AddEdges.
type AddedEntity struct {
	Name string `json:"name"`
	SUID int64  `json:"SUID"`
}

// AddNodes adds nodes by name to an existing network.
func (c *Client) AddNodes(ctx context.Context, network NetworkRef, names []string) ([]AddedEntity, error) {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return nil, err
	}
	var out []AddedEntity
	if err := c.rest.PostInto(ctx, fmt.Sprintf("networks/%d/nodes", suid), nil, names, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EdgeSpec describes one edge to add: source and target node SUIDs plus
// an optional interaction type.
type EdgeSpec struct {
	Source      int64  `json:"source"`
	Target      int64  `json:"target"`
	Directed    bool   `json:"directed"`
	Interaction string `json:"interaction,omitempty"`
}

// AddEdges adds edges between existing nodes.
func (c *Client) AddEdges(ctx context.Context, network NetworkRef, edges []EdgeSpec) ([]AddedEntity, error) {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return nil, err
	}
	var out []AddedEntity
	if err := c.rest.PostInto(ctx, fmt.Sprintf("networks/%d/edges", suid), nil, edges, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EdgeInfo is the endpoint data of one edge.
type EdgeInfo struct {
	SUID   int64 `json:"SUID"`
	Source int64 `json:"source"`
	Target int64 `json:"target"`
}

// GetEdgeInfo returns source and target for each referenced edge.
func (c *Client) GetEdgeInfo(ctx context.Context, network NetworkRef, edges Refs) ([]EdgeInfo, error) {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return nil, err
	}
	edgeSUIDs, err := c.translateToSUIDs(ctx, network, edgeKind, edges, nil)
	if err != nil {
		return nil, err
	}
	out := make([]EdgeInfo, 0, len(edgeSUIDs))
	for _, es := range edgeSUIDs {
		var res struct {
			Data EdgeInfo `json:"data"`
		}
		if err := c.rest.GetInto(ctx, fmt.Sprintf("networks/%d/edges/%d", suid, es), nil, &res); err != nil {
			return nil, err
		}
		out = append(out, res.Data)
	}
	return out, nil
}

// GetFirstNeighbors returns the node names adjacent to the referenced
// nodes, deduplicated, in discovery order.
func (c *Client) GetFirstNeighbors(ctx context.Context, network NetworkRef, nodes Refs) ([]string, error) {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return nil, err
	}
	nodeSUIDs, err := c.translateToSUIDs(ctx, network, nodeKind, nodes, nil)
	if err != nil {
		return nil, err
	}
	seen := make(map[int64]bool)
	var neighborSUIDs []int64
	for _, ns := range nodeSUIDs {
		var neighbors []int64
		err := c.rest.GetInto(ctx, fmt.Sprintf("networks/%d/nodes/%d/neighbors", suid, ns), nil, &neighbors)
		if err != nil {
			return nil, err
		}
		for _, n := range neighbors {
			if !seen[n] {
				seen[n] = true
				neighborSUIDs = append(neighborSUIDs, n)
			}
		}
	}
	return c.NodeSUIDsToNames(ctx, network, neighborSUIDs)
}

// CreateNetworkFromTables builds a network from a node table and an
// edge table, then uploads the remaining columns of both as attributes.
//
// The node table must carry an "id" String column. The edge table must
// carry "source" and "target" String columns referencing node ids, plus
// an optional "interaction" column (defaulting to "interacts with").
// Edges are named "source (interaction) target".
func (c *Client) CreateNetworkFromTables(ctx context.Context, nodes, edges *table.Table, title, collection string) (int64, error) {
	done := metrics.TimeOp("create_network_from_tables")
	suid, err := c.createNetworkFromTables(ctx, nodes, edges, title, collection)
	done(err == nil)
	return suid, err
}

func (c *Client) createNetworkFromTables(ctx context.Context, nodes, edges *table.Table, title, collection string) (int64, error) {
	if title == "" {
		title = "network"
	}
	if collection == "" {
		collection = "My Networks"
	}

	idCol, ok := nodes.Column("id")
	if !ok {
		return 0, validationf(`node table needs an "id" column`)
	}
	nodeElements := make([]map[string]any, 0, nodes.RowCount())
	for _, v := range idCol.Values {
		id, ok := v.AsString()
		if !ok {
			return 0, validationf(`node "id" column must be String with no missing values`)
		}
		nodeElements = append(nodeElements, map[string]any{"data": map[string]any{"id": id}})
	}

	edgeElements := []map[string]any{}
	var edgeNames []string
	if edges != nil {
		src, ok := edges.Column("source")
		if !ok {
			return 0, validationf(`edge table needs a "source" column`)
		}
		tgt, ok := edges.Column("target")
		if !ok {
			return 0, validationf(`edge table needs a "target" column`)
		}
		interaction, _ := edges.Column("interaction")
		for i := 0; i < edges.RowCount(); i++ {
			s, sok := src.Values[i].AsString()
			t, tok := tgt.Values[i].AsString()
			if !sok || !tok {
				return 0, validationf("edge row %d is missing source or target", i)
			}
			inter := "interacts with"
			if interaction != nil {
				if v, ok := interaction.Values[i].AsString(); ok {
					inter = v
				}
			}
			name := fmt.Sprintf("%s (%s) %s", s, inter, t)
			edgeNames = append(edgeNames, name)
			edgeElements = append(edgeElements, map[string]any{"data": map[string]any{
				"name":        name,
				"source":      s,
				"target":      t,
				"interaction": inter,
			}})
		}
	}

	body := map[string]any{
		"data": map[string]any{"name": title},
		"elements": map[string]any{
			"nodes": nodeElements,
			"edges": edgeElements,
		},
	}
	var res struct {
		NetworkSUID int64 `json:"networkSUID"`
	}
	err := c.rest.PostInto(ctx, "networks",
		cyrest.Params{"title": title, "collection": collection}, body, &res)
	if err != nil {
		return 0, err
	}
	netRef := NetworkBySUID(res.NetworkSUID)

	if _, err := c.rest.CommandsPost(ctx, `vizmap apply styles="default"`); err != nil {
		return 0, err
	}

	// Upload the attribute columns the cytoscape.js payload cannot carry.
	if extra := attributeTable(nodes, "id"); extra != nil {
		if err := c.LoadTableData(ctx, netRef, extra, LoadTableOptions{
			DataKeyColumn: "id", Table: NodeTable, TableKeyColumn: "name",
		}); err != nil {
			return 0, err
		}
	}
	if edges != nil {
		if extra := edgeAttributeTable(edges, edgeNames); extra != nil {
			if err := c.LoadTableData(ctx, netRef, extra, LoadTableOptions{
				DataKeyColumn: "name", Table: EdgeTable, TableKeyColumn: "name",
			}); err != nil {
				return 0, err
			}
		}
	}
	return res.NetworkSUID, nil
}

// attributeTable strips the structural columns from a node table,
// keeping the key plus whatever is left. Nil when nothing is left.
func attributeTable(t *table.Table, key string) *table.Table {
	keyCol, ok := t.Column(key)
	if !ok {
		return nil
	}
	out, _ := table.New(keyCol)
	extra := 0
	for _, name := range t.ColumnNames() {
		if name == key {
			continue
		}
		col, _ := t.Column(name)
		if out.AddColumn(col) == nil {
			extra++
		}
	}
	if extra == 0 {
		return nil
	}
	return out
}

// edgeAttributeTable keeps the non-structural edge columns keyed by the
// generated edge names.
func edgeAttributeTable(t *table.Table, edgeNames []string) *table.Table {
	nameVals := make([]table.Value, len(edgeNames))
	for i, n := range edgeNames {
		nameVals[i] = table.Str(n)
	}
	out, _ := table.New(table.NewColumn("name", table.String, nameVals...))
	extra := 0
	for _, name := range t.ColumnNames() {
		switch name {
		case "source", "target", "interaction", "name":
			continue
		}
		col, _ := t.Column(name)
		if out.AddColumn(col) == nil {
			extra++
		}
	}
	if extra == 0 {
		return nil
	}
	return out
}

// ImportNetworkFromFile loads a network from a file visible to the
// Cytoscape workstation, routed through the active sandbox.
func (c *Client) ImportNetworkFromFile(ctx context.Context, file string) ([]int64, error) {
	res, err := c.rest.CommandsPost(ctx,
		fmt.Sprintf(`network load file file="%s"`, c.absSandboxPath(file)))
	if err != nil {
		return nil, err
	}
	m := asMap(res)
	var suids []int64
	for _, v := range asSlice(m["networks"]) {
		if f, ok := v.(float64); ok {
			suids = append(suids, int64(f))
		}
	}
	return suids, nil
}

// ExportNetwork writes a network to a file on the Cytoscape
// workstation. format is one of SIF, GraphML, CX, CyJS, xGMML.
func (c *Client) ExportNetwork(ctx context.Context, network NetworkRef, file, format string) error {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return err
	}
	if format == "" {
		format = "SIF"
	}
	_, err = c.rest.CommandsPost(ctx,
		fmt.Sprintf(`network export network="SUID:%d" options="%s" OutputFile="%s"`,
			suid, strings.ToUpper(format), c.absSandboxPath(file)))
	return err
}
