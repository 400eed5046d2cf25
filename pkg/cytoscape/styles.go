package cytoscape

import "context"

// CreateVisualStyle registers a new style from default property values
// and visual mappings. Mappings come from MapVisualProperty.
func (c *Client) CreateVisualStyle(ctx context.Context, name string, defaults map[string]any, mappings []*VisualMapping) error {
	defs := make([]map[string]any, 0, len(defaults))
	for prop, val := range defaults {
		defs = append(defs, map[string]any{"visualProperty": prop, "value": val})
	}
	if mappings == nil {
		mappings = []*VisualMapping{}
	}
	body := map[string]any{"title": name, "defaults": defs, "mappings": mappings}
	_, err := c.rest.Post(ctx, "styles", nil, body, true)
	return err
}

// CopyVisualStyle duplicates a style under a new name, carrying its
// dependency settings across.
func (c *Client) CopyVisualStyle(ctx context.Context, from, to string) error {
	if to == "" {
		return validationf("style name must not be empty")
	}
	var style map[string]any
	if err := c.rest.GetInto(ctx, "styles/"+from, nil, &style); err != nil {
		return err
	}
	style["title"] = to
	if _, err := c.rest.Post(ctx, "styles", nil, style, true); err != nil {
		return err
	}
	var deps any
	if err := c.rest.GetInto(ctx, "styles/"+from+"/dependencies", nil, &deps); err != nil {
		return err
	}
	_, err := c.rest.Put(ctx, "styles/"+to+"/dependencies", nil, deps, false)
	return err
}

// DeleteVisualStyle removes a style. The reply body is empty.
func (c *Client) DeleteVisualStyle(ctx context.Context, name string) error {
	_, err := c.rest.Delete(ctx, "styles/"+name, nil, false)
	return err
}

// GetVisualStyleNames lists the styles in the session.
func (c *Client) GetVisualStyleNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.rest.GetInto(ctx, "apply/styles", nil, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// GetVisualPropertyNames lists the visual property names styles can map.
func (c *Client) GetVisualPropertyNames(ctx context.Context) ([]string, error) {
	var res struct {
		Defaults []struct {
			VisualProperty string `json:"visualProperty"`
		} `json:"defaults"`
	}
	if err := c.rest.GetInto(ctx, "styles/default/defaults", nil, &res); err != nil {
		return nil, err
	}
	names := make([]string, len(res.Defaults))
	for i, d := range res.Defaults {
		names[i] = d.VisualProperty
	}
	return names, nil
}
