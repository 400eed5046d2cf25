package cytoscape

import (
	"context"
	"fmt"
	"strings"

	"github.com/cytoscape/cyrest-go/internal/cyrest"
)

// SelectionResult reports what a selection command selected.
type SelectionResult struct {
	Nodes []int64
	Edges []int64
}

func selectionResult(res any) *SelectionResult {
	m := asMap(res)
	out := &SelectionResult{}
	for _, v := range asSlice(m["nodes"]) {
		if f, ok := v.(float64); ok {
			out.Nodes = append(out.Nodes, int64(f))
		}
	}
	for _, v := range asSlice(m["edges"]) {
		if f, ok := v.(float64); ok {
			out.Edges = append(out.Edges, int64(f))
		}
	}
	return out
}

func suidList(suids []int64) string {
	parts := make([]string, len(suids))
	for i, s := range suids {
		parts[i] = fmt.Sprintf("SUID:%d", s)
	}
	return strings.Join(parts, ",")
}

// SelectNodes adds the referenced nodes to the selection. With preserve
// false the previous selection is cleared first.
func (c *Client) SelectNodes(ctx context.Context, network NetworkRef, nodes Refs, preserve bool) (*SelectionResult, error) {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return nil, err
	}
	if !preserve {
		if err := c.ClearSelection(ctx, NetworkBySUID(suid), "nodes"); err != nil {
			return nil, err
		}
	}
	nodeSUIDs, err := c.translateToSUIDs(ctx, NetworkBySUID(suid), nodeKind, nodes, nil)
	if err != nil {
		return nil, err
	}
	if len(nodeSUIDs) == 0 {
		return &SelectionResult{}, nil
	}
	res, err := c.rest.CommandsPost(ctx,
		fmt.Sprintf(`network select network=SUID:"%d" nodeList="%s"`, suid, suidList(nodeSUIDs)))
	if err != nil {
		return nil, err
	}
	return selectionResult(res), nil
}

// SelectAllNodes selects every node in a network.
func (c *Client) SelectAllNodes(ctx context.Context, network NetworkRef) (*SelectionResult, error) {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return nil, err
	}
	var all []int64
	if err := c.rest.GetInto(ctx, fmt.Sprintf("networks/%d/nodes", suid), nil, &all); err != nil {
		return nil, err
	}
	res, err := c.rest.CommandsPost(ctx,
		fmt.Sprintf(`network select network=SUID:"%d" nodeList="%s"`, suid, suidList(all)))
	if err != nil {
		return nil, err
	}
	return selectionResult(res), nil
}

// ClearSelection deselects nodes, edges or both ("nodes", "edges",
// "both"). The reply body is empty.
func (c *Client) ClearSelection(ctx context.Context, network NetworkRef, kind string) error {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return err
	}
	if kind == "" {
		kind = "both"
	}
	if kind == "nodes" || kind == "both" {
		_, err := c.rest.Put(ctx,
			fmt.Sprintf("networks/%d/tables/defaultnode/columns/selected", suid),
			cyrest.Params{"default": "false"}, nil, false)
		if err != nil {
			return err
		}
	}
	if kind == "edges" || kind == "both" {
		_, err := c.rest.Put(ctx,
			fmt.Sprintf("networks/%d/tables/defaultedge/columns/selected", suid),
			cyrest.Params{"default": "false"}, nil, false)
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) selectedSUIDs(ctx context.Context, network NetworkRef, plural string) ([]int64, error) {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return nil, err
	}
	var suids []int64
	err = c.rest.GetInto(ctx, fmt.Sprintf("networks/%d/%s", suid, plural),
		cyrest.Params{"column": "selected", "query": "true"}, &suids)
	if err != nil {
		return nil, err
	}
	return suids, nil
}

// GetSelectedNodeCount returns how many nodes are selected.
func (c *Client) GetSelectedNodeCount(ctx context.Context, network NetworkRef) (int, error) {
	suids, err := c.selectedSUIDs(ctx, network, "nodes")
	if err != nil {
		return 0, err
	}
	return len(suids), nil
}

// GetSelectedNodes returns the names of the selected nodes.
func (c *Client) GetSelectedNodes(ctx context.Context, network NetworkRef) ([]string, error) {
	suids, err := c.selectedSUIDs(ctx, network, "nodes")
	if err != nil {
		return nil, err
	}
	return c.NodeSUIDsToNames(ctx, network, suids)
}

// InvertNodeSelection selects the unselected nodes and vice versa.
func (c *Client) InvertNodeSelection(ctx context.Context, network NetworkRef) (*SelectionResult, error) {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return nil, err
	}
	res, err := c.rest.CommandsPost(ctx,
		fmt.Sprintf(`network select invert=nodes network="SUID:%d"`, suid))
	if err != nil {
		return nil, err
	}
	return selectionResult(res), nil
}

// DeleteSelectedNodes removes the selected nodes and their edges.
func (c *Client) DeleteSelectedNodes(ctx context.Context, network NetworkRef) (*SelectionResult, error) {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return nil, err
	}
	res, err := c.rest.CommandsPost(ctx,
		fmt.Sprintf(`network delete nodeList=selected network="SUID:%d"`, suid))
	if err != nil {
		return nil, err
	}
	return selectionResult(res), nil
}

// SelectFirstNeighbors extends the selection to the neighbors of the
// selected nodes. direction is any, incoming or outgoing.
func (c *Client) SelectFirstNeighbors(ctx context.Context, network NetworkRef, direction string) (*SelectionResult, error) {
	if direction == "" {
		direction = "any"
	}
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return nil, err
	}
	res, err := c.rest.CommandsPost(ctx,
		fmt.Sprintf(`network select firstNeighbors="%s" network=SUID:"%d"`, direction, suid))
	if err != nil {
		return nil, err
	}
	return selectionResult(res), nil
}

// SelectEdges adds the referenced edges to the selection.
func (c *Client) SelectEdges(ctx context.Context, network NetworkRef, edges Refs, preserve bool) (*SelectionResult, error) {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return nil, err
	}
	if !preserve {
		if err := c.ClearSelection(ctx, NetworkBySUID(suid), "edges"); err != nil {
			return nil, err
		}
	}
	edgeSUIDs, err := c.translateToSUIDs(ctx, NetworkBySUID(suid), edgeKind, edges, nil)
	if err != nil {
		return nil, err
	}
	if len(edgeSUIDs) == 0 {
		return &SelectionResult{}, nil
	}
	res, err := c.rest.CommandsPost(ctx,
		fmt.Sprintf(`network select network=SUID:"%d" edgeList="%s"`, suid, suidList(edgeSUIDs)))
	if err != nil {
		return nil, err
	}
	return selectionResult(res), nil
}

// SelectAllEdges selects every edge in a network.
func (c *Client) SelectAllEdges(ctx context.Context, network NetworkRef) (*SelectionResult, error) {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return nil, err
	}
	var all []int64
	if err := c.rest.GetInto(ctx, fmt.Sprintf("networks/%d/edges", suid), nil, &all); err != nil {
		return nil, err
	}
	res, err := c.rest.CommandsPost(ctx,
		fmt.Sprintf(`network select network=SUID:"%d" edgeList="%s"`, suid, suidList(all)))
	if err != nil {
		return nil, err
	}
	return selectionResult(res), nil
}

// GetSelectedEdgeCount returns how many edges are selected.
func (c *Client) GetSelectedEdgeCount(ctx context.Context, network NetworkRef) (int, error) {
	suids, err := c.selectedSUIDs(ctx, network, "edges")
	if err != nil {
		return 0, err
	}
	return len(suids), nil
}

// GetSelectedEdges returns the names of the selected edges.
func (c *Client) GetSelectedEdges(ctx context.Context, network NetworkRef) ([]string, error) {
	suids, err := c.selectedSUIDs(ctx, network, "edges")
	if err != nil {
		return nil, err
	}
	return c.EdgeSUIDsToNames(ctx, network, suids)
}

// InvertEdgeSelection selects the unselected edges and vice versa.
func (c *Client) InvertEdgeSelection(ctx context.Context, network NetworkRef) (*SelectionResult, error) {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return nil, err
	}
	res, err := c.rest.CommandsPost(ctx,
		fmt.Sprintf(`network select invert=edges network="SUID:%d"`, suid))
	if err != nil {
		return nil, err
	}
	return selectionResult(res), nil
}

// DeleteSelectedEdges removes the selected edges.
func (c *Client) DeleteSelectedEdges(ctx context.Context, network NetworkRef) (*SelectionResult, error) {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return nil, err
	}
	res, err := c.rest.CommandsPost(ctx,
		fmt.Sprintf(`network delete edgeList=selected network="SUID:%d"`, suid))
	if err != nil {
		return nil, err
	}
	return selectionResult(res), nil
}
