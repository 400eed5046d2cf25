package cytoscape

import (
	"context"
	"fmt"
)

// Groups collapse sets of nodes into single group nodes and back. All
// group manipulation goes through the command surface.

func (c *Client) groupNodeList(ctx context.Context, network NetworkRef, nodes Refs, keyword string) (string, error) {
	return c.subnetworkList(ctx, network, nodeKind, nodes, keyword)
}

func groupSUID(res any) (int64, error) {
	suid, ok := mapInt(asMap(res), "group")
	if !ok {
		return 0, validationf("group reply carries no group SUID: %v", res)
	}
	return suid, nil
}

func groupSUIDs(res any) []int64 {
	var out []int64
	for _, v := range asSlice(asMap(res)["groups"]) {
		if f, ok := v.(float64); ok {
			out = append(out, int64(f))
		}
	}
	return out
}

// CreateGroup groups the referenced nodes (or, with the "selected"
// keyword, the selected ones) and returns the group node's SUID.
func (c *Client) CreateGroup(ctx context.Context, network NetworkRef, groupName string, nodes Refs, keyword string) (int64, error) {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return 0, err
	}
	nodeList, err := c.groupNodeList(ctx, NetworkBySUID(suid), nodes, keyword)
	if err != nil {
		return 0, err
	}
	res, err := c.rest.CommandsPost(ctx, fmt.Sprintf(
		`group create groupName="%s" nodeList="%s" network="SUID:%d"`, groupName, nodeList, suid))
	if err != nil {
		return 0, err
	}
	return groupSUID(res)
}

// CreateGroupByColumn groups the nodes whose column holds the given
// value and returns the group node's SUID.
func (c *Client) CreateGroupByColumn(ctx context.Context, network NetworkRef, groupName, column string, value any) (int64, error) {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return 0, err
	}
	res, err := c.rest.CommandsPost(ctx, fmt.Sprintf(
		`group create groupName="%s" nodeList="%s":"%v" network="SUID:%d"`, groupName, column, value, suid))
	if err != nil {
		return 0, err
	}
	return groupSUID(res)
}

// ListGroups returns the SUIDs of every group node in a network.
func (c *Client) ListGroups(ctx context.Context, network NetworkRef) ([]int64, error) {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return nil, err
	}
	res, err := c.rest.CommandsPost(ctx, fmt.Sprintf(`group list network="SUID:%d"`, suid))
	if err != nil {
		return nil, err
	}
	return groupSUIDs(res), nil
}

// GetGroupInfo returns a group's definition: its name, member nodes
// and edges, and collapsed state. A group not yet collapsed is absent
// from the node table, so the reference is passed straight through.
func (c *Client) GetGroupInfo(ctx context.Context, network NetworkRef, group string) (map[string]any, error) {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return nil, err
	}
	res, err := c.rest.CommandsPost(ctx,
		fmt.Sprintf(`group get node="%s" network="SUID:%d"`, group, suid))
	if err != nil {
		return nil, err
	}
	info := asMap(res)
	if info == nil {
		return nil, notFound("group", group)
	}
	return info, nil
}

func (c *Client) groupListCommand(ctx context.Context, network NetworkRef, verb string, groups []int64) ([]int64, error) {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return nil, err
	}
	res, err := c.rest.CommandsPost(ctx, fmt.Sprintf(
		`group %s groupList="%s" network="SUID:%d"`, verb, suidList(groups), suid))
	if err != nil {
		return nil, err
	}
	return groupSUIDs(res), nil
}

// CollapseGroup replaces each group's members with its group node.
func (c *Client) CollapseGroup(ctx context.Context, network NetworkRef, groups []int64) ([]int64, error) {
	return c.groupListCommand(ctx, network, "collapse", groups)
}

// ExpandGroup restores each group's members.
func (c *Client) ExpandGroup(ctx context.Context, network NetworkRef, groups []int64) ([]int64, error) {
	return c.groupListCommand(ctx, network, "expand", groups)
}

// AddToGroup adds nodes (and their internal edges) to a group.
func (c *Client) AddToGroup(ctx context.Context, network NetworkRef, groupName string, nodes Refs, keyword string) error {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return err
	}
	nodeList, err := c.groupNodeList(ctx, NetworkBySUID(suid), nodes, keyword)
	if err != nil {
		return err
	}
	_, err = c.rest.CommandsPost(ctx, fmt.Sprintf(
		`group add groupName="%s" nodeList="%s" network="SUID:%d"`, groupName, nodeList, suid))
	return err
}

// RemoveFromGroup removes nodes from a group.
func (c *Client) RemoveFromGroup(ctx context.Context, network NetworkRef, groupName string, nodes Refs, keyword string) error {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return err
	}
	nodeList, err := c.groupNodeList(ctx, NetworkBySUID(suid), nodes, keyword)
	if err != nil {
		return err
	}
	_, err = c.rest.CommandsPost(ctx, fmt.Sprintf(
		`group remove groupName="%s" nodeList="%s" network="SUID:%d"`, groupName, nodeList, suid))
	return err
}

// DeleteGroup ungroups the referenced groups, keeping their member
// nodes in the network.
func (c *Client) DeleteGroup(ctx context.Context, network NetworkRef, groups []int64) error {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return err
	}
	_, err = c.rest.CommandsPost(ctx, fmt.Sprintf(
		`group ungroup nodeList="%s" network="SUID:%d"`, suidList(groups), suid))
	return err
}
