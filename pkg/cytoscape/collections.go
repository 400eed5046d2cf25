package cytoscape

import (
	"context"
	"fmt"

	"github.com/cytoscape/cyrest-go/internal/cyrest"
)

// Network collections group related networks (e.g. a network and its
// subnetworks) under one root.

// GetCollectionList returns the names of the collections in the
// session.
func (c *Client) GetCollectionList(ctx context.Context) ([]string, error) {
	var suids []int64
	if err := c.rest.GetInto(ctx, "collections", nil, &suids); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(suids))
	for _, suid := range suids {
		name, err := c.GetCollectionName(ctx, suid)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// GetCollectionSUID returns the SUID of the collection containing a
// network.
func (c *Client) GetCollectionSUID(ctx context.Context, network NetworkRef) (int64, error) {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return 0, err
	}
	var matches []int64
	err = c.rest.GetInto(ctx, "collections", cyrest.Params{"subsuid": fmt.Sprint(suid)}, &matches)
	if err != nil {
		return 0, err
	}
	if len(matches) == 0 {
		return 0, notFound("collection", fmt.Sprintf("containing network %d", suid))
	}
	return matches[0], nil
}

// GetCollectionName returns the name of a collection.
func (c *Client) GetCollectionName(ctx context.Context, collectionSUID int64) (string, error) {
	var res struct {
		Rows []struct {
			Name string `json:"name"`
		} `json:"rows"`
	}
	err := c.rest.GetInto(ctx, fmt.Sprintf("collections/%d/tables/default", collectionSUID), nil, &res)
	if err != nil {
		return "", err
	}
	if len(res.Rows) == 0 {
		return "", notFound("collection", collectionSUID)
	}
	return res.Rows[0].Name, nil
}

// GetCollectionNetworks lists the SUIDs of the networks in a
// collection.
func (c *Client) GetCollectionNetworks(ctx context.Context, collectionSUID int64) ([]int64, error) {
	var suids []int64
	err := c.rest.GetInto(ctx, fmt.Sprintf("collections/%d/subnetworks", collectionSUID), nil, &suids)
	if err != nil {
		return nil, err
	}
	return suids, nil
}
