package cytoscape

import (
	"context"
	"fmt"
)

// LayoutNetwork applies a layout algorithm to a network. An empty name
// applies the preferred layout configured in Cytoscape.
func (c *Client) LayoutNetwork(ctx context.Context, network NetworkRef, layoutName string) error {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return err
	}
	var cmd string
	if layoutName == "" {
		cmd = fmt.Sprintf(`layout apply preferred networkSelected="SUID:%d"`, suid)
	} else {
		cmd = fmt.Sprintf(`layout %s network="SUID:%d"`, layoutName, suid)
	}
	_, err = c.rest.CommandsPost(ctx, cmd)
	return err
}

// LayoutCopycat maps one network's node positions onto another,
// matching nodes by name. Returns the mapped and unmapped node counts.
func (c *Client) LayoutCopycat(ctx context.Context, source, target NetworkRef) (mapped, unmapped int64, err error) {
	srcSUID, err := c.resolveNetwork(ctx, source)
	if err != nil {
		return 0, 0, err
	}
	tgtSUID, err := c.resolveNetwork(ctx, target)
	if err != nil {
		return 0, 0, err
	}
	srcName, err := c.GetNetworkName(ctx, srcSUID)
	if err != nil {
		return 0, 0, err
	}
	tgtName, err := c.GetNetworkName(ctx, tgtSUID)
	if err != nil {
		return 0, 0, err
	}
	res, err := c.rest.CommandsPost(ctx, fmt.Sprintf(
		`layout copycat sourceNetwork="%s" targetNetwork="%s" sourceColumn="name" targetColumn="name" gridUnmapped="true" selectUnmapped="true"`,
		srcName, tgtName))
	if err != nil {
		return 0, 0, err
	}
	m := asMap(res)
	mapped, _ = mapInt(m, "mappedNodeCount")
	unmapped, _ = mapInt(m, "unmappedNodeCount")
	return mapped, unmapped, nil
}

// GetLayoutNames lists the available layout algorithm names.
func (c *Client) GetLayoutNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.rest.GetInto(ctx, "apply/layouts", nil, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// GetLayoutNameMapping maps each layout's human-readable title to the
// name LayoutNetwork takes.
func (c *Client) GetLayoutNameMapping(ctx context.Context) (map[string]string, error) {
	names, err := c.GetLayoutNames(ctx)
	if err != nil {
		return nil, err
	}
	mapping := make(map[string]string, len(names))
	for _, name := range names {
		var res struct {
			LongName string `json:"longName"`
		}
		if err := c.rest.GetInto(ctx, "apply/layouts/"+name, nil, &res); err != nil {
			return nil, err
		}
		mapping[res.LongName] = name
	}
	return mapping, nil
}

type layoutParameter struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

func (c *Client) layoutParameters(ctx context.Context, layoutName string) ([]layoutParameter, error) {
	var params []layoutParameter
	err := c.rest.GetInto(ctx, "apply/layouts/"+layoutName+"/parameters", nil, &params)
	if err != nil {
		return nil, err
	}
	return params, nil
}

// GetLayoutPropertyNames lists the tunable properties of a layout.
func (c *Client) GetLayoutPropertyNames(ctx context.Context, layoutName string) ([]string, error) {
	params, err := c.layoutParameters(ctx, layoutName)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return names, nil
}

// GetLayoutPropertyValue returns the current value of one layout
// property.
func (c *Client) GetLayoutPropertyValue(ctx context.Context, layoutName, property string) (any, error) {
	params, err := c.layoutParameters(ctx, layoutName)
	if err != nil {
		return nil, err
	}
	for _, p := range params {
		if p.Name == property {
			return p.Value, nil
		}
	}
	return nil, notFound("layout property", fmt.Sprintf("%s of %s", property, layoutName))
}

// SetLayoutProperties updates tunable properties of a layout. Unknown
// property names are rejected before anything is changed.
func (c *Client) SetLayoutProperties(ctx context.Context, layoutName string, properties map[string]any) error {
	known, err := c.GetLayoutPropertyNames(ctx, layoutName)
	if err != nil {
		return err
	}
	knownSet := make(map[string]bool, len(known))
	for _, name := range known {
		knownSet[name] = true
	}
	for name := range properties {
		if !knownSet[name] {
			return validationf("%q is not a property of layout %q", name, layoutName)
		}
	}
	for name, value := range properties {
		body := []layoutParameter{{Name: name, Value: value}}
		if _, err := c.rest.Put(ctx, "apply/layouts/"+layoutName+"/parameters", nil, body, false); err != nil {
			return err
		}
	}
	return nil
}

// BundleEdges applies edge bundling to reduce visual clutter.
func (c *Client) BundleEdges(ctx context.Context, network NetworkRef) error {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return err
	}
	_, err = c.rest.Get(ctx, fmt.Sprintf("apply/edgebundling/%d", suid), nil, true)
	return err
}

// ClearEdgeBends removes all edge bends, undoing BundleEdges.
func (c *Client) ClearEdgeBends(ctx context.Context, network NetworkRef) error {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return err
	}
	_, err = c.rest.Get(ctx, fmt.Sprintf("apply/clearalledgebends/%d", suid), nil, true)
	return err
}
