package cytoscape

import (
	"context"
	"fmt"
)

// Name/SUID translation always works against a freshly fetched name
// table. SUIDs change across sessions and names can be edited at any
// time in the Cytoscape UI, so nothing here is ever cached.

type entityKind string

const (
	nodeKind entityKind = "node"
	edgeKind entityKind = "edge"
)

// entityIndex is one snapshot of an entity table's SUID and name
// columns, zipped row by row.
type entityIndex struct {
	kind   entityKind
	suids  []int64
	byName map[string][]int64
	bySUID map[int64]string
	live   map[int64]bool
}

type columnValues struct {
	Name   string `json:"name"`
	Values []any  `json:"values"`
}

func (c *Client) fetchEntityIndex(ctx context.Context, netSUID int64, kind entityKind) (*entityIndex, error) {
	base := fmt.Sprintf("networks/%d/tables/default%s/columns/", netSUID, kind)

	var suidCol, nameCol columnValues
	if err := c.rest.GetInto(ctx, base+"SUID", nil, &suidCol); err != nil {
		return nil, err
	}
	if err := c.rest.GetInto(ctx, base+"name", nil, &nameCol); err != nil {
		return nil, err
	}
	if len(suidCol.Values) != len(nameCol.Values) {
		return nil, validationf("%s table is inconsistent: %d SUIDs but %d names",
			kind, len(suidCol.Values), len(nameCol.Values))
	}

	idx := &entityIndex{
		kind:   kind,
		suids:  make([]int64, len(suidCol.Values)),
		byName: make(map[string][]int64, len(nameCol.Values)),
		bySUID: make(map[int64]string, len(nameCol.Values)),
		live:   make(map[int64]bool, len(suidCol.Values)),
	}
	for i, rv := range suidCol.Values {
		f, ok := rv.(float64)
		if !ok {
			return nil, validationf("%s table SUID column holds %T, expected number", kind, rv)
		}
		suid := int64(f)
		name, _ := nameCol.Values[i].(string)
		idx.suids[i] = suid
		idx.live[suid] = true
		idx.bySUID[suid] = name
		idx.byName[name] = append(idx.byName[name], suid)
	}
	return idx, nil
}

type translateOpts struct {
	nonUnique bool
}

// TranslateOption adjusts name-to-SUID translation.
type TranslateOption func(*translateOpts)

// NonUnique makes repeated requests for a duplicated name yield the
// distinct SUIDs of its occurrences in table order, instead of one
// representative SUID. Requesting a name more times than it occurs is
// an error.
func NonUnique() TranslateOption {
	return func(o *translateOpts) { o.nonUnique = true }
}

// namesToSUIDs maps a reference list to SUIDs against one table
// snapshot. A SUID list passes through after a liveness check.
func (idx *entityIndex) namesToSUIDs(refs Refs, o translateOpts) ([]int64, error) {
	suids, names, err := refs.resolve(idx.live)
	if err != nil {
		return nil, err
	}
	if suids != nil {
		for _, s := range suids {
			if !idx.live[s] {
				return nil, notFound(string(idx.kind), s)
			}
		}
		return suids, nil
	}

	out := make([]int64, len(names))
	seen := make(map[string]int, len(names))
	for i, name := range names {
		matches, ok := idx.byName[name]
		if !ok {
			return nil, notFound(string(idx.kind), name)
		}
		if !o.nonUnique {
			out[i] = matches[0]
			continue
		}
		k := seen[name]
		if k >= len(matches) {
			return nil, validationf("%s name %q requested %d times but occurs only %d times",
				idx.kind, name, k+1, len(matches))
		}
		out[i] = matches[k]
		seen[name] = k + 1
	}
	return out, nil
}

func (idx *entityIndex) suidsToNames(suids []int64) ([]string, error) {
	out := make([]string, len(suids))
	for i, s := range suids {
		name, ok := idx.bySUID[s]
		if !ok {
			return nil, notFound(string(idx.kind), s)
		}
		out[i] = name
	}
	return out, nil
}

func (c *Client) translateToSUIDs(ctx context.Context, network NetworkRef, kind entityKind, refs Refs, opts []TranslateOption) ([]int64, error) {
	if refs.IsEmpty() {
		return nil, nil
	}
	var o translateOpts
	for _, opt := range opts {
		opt(&o)
	}
	netSUID, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return nil, err
	}
	idx, err := c.fetchEntityIndex(ctx, netSUID, kind)
	if err != nil {
		return nil, err
	}
	return idx.namesToSUIDs(refs, o)
}

func (c *Client) translateToNames(ctx context.Context, network NetworkRef, kind entityKind, suids []int64) ([]string, error) {
	if len(suids) == 0 {
		return nil, nil
	}
	netSUID, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return nil, err
	}
	idx, err := c.fetchEntityIndex(ctx, netSUID, kind)
	if err != nil {
		return nil, err
	}
	return idx.suidsToNames(suids)
}

// NodeNamesToSUIDs maps node references to SUIDs in the given network.
// A list that already holds live SUIDs passes through unchanged.
func (c *Client) NodeNamesToSUIDs(ctx context.Context, network NetworkRef, nodes Refs, opts ...TranslateOption) ([]int64, error) {
	return c.translateToSUIDs(ctx, network, nodeKind, nodes, opts)
}

// NodeSUIDsToNames maps node SUIDs back to their names.
func (c *Client) NodeSUIDsToNames(ctx context.Context, network NetworkRef, suids []int64) ([]string, error) {
	return c.translateToNames(ctx, network, nodeKind, suids)
}

// EdgeNamesToSUIDs maps edge references to SUIDs in the given network.
func (c *Client) EdgeNamesToSUIDs(ctx context.Context, network NetworkRef, edges Refs, opts ...TranslateOption) ([]int64, error) {
	return c.translateToSUIDs(ctx, network, edgeKind, edges, opts)
}

// EdgeSUIDsToNames maps edge SUIDs back to their names.
func (c *Client) EdgeSUIDsToNames(ctx context.Context, network NetworkRef, suids []int64) ([]string, error) {
	return c.translateToNames(ctx, network, edgeKind, suids)
}
