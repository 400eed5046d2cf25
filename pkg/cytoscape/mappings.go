package cytoscape

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// MappingType selects how a column drives a visual property.
type MappingType string

const (
	Passthrough MappingType = "passthrough"
	Discrete    MappingType = "discrete"
	Continuous  MappingType = "continuous"
)

// DiscreteEntry pairs one column value with one visual property value.
type DiscreteEntry struct {
	Key   any `json:"key"`
	Value any `json:"value"`
}

// ContinuousPoint is one waypoint of a continuous mapping.
type ContinuousPoint struct {
	Value   any `json:"value"`
	Lesser  any `json:"lesser"`
	Equal   any `json:"equal"`
	Greater any `json:"greater"`
}

// VisualMapping binds a table column to a visual property. Build one
// with MapVisualProperty, then install it with UpdateStyleMapping.
type VisualMapping struct {
	MappingType    MappingType       `json:"mappingType"`
	Column         string            `json:"mappingColumn"`
	ColumnType     string            `json:"mappingColumnType"`
	VisualProperty string            `json:"visualProperty"`
	Map            []DiscreteEntry   `json:"map,omitempty"`
	Points         []ContinuousPoint `json:"points,omitempty"`
}

var whitespaceRE = regexp.MustCompile(`\s+`)

// Common aliases for visual property names.
var propertyAliases = map[string]string{
	"EDGE_COLOR":            "EDGE_UNSELECTED_PAINT",
	"EDGE_THICKNESS":        "EDGE_WIDTH",
	"NODE_BORDER_COLOR":     "NODE_BORDER_PAINT",
	"NODE_BORDER_LINE_TYPE": "NODE_BORDER_STROKE",
}

// MapVisualProperty builds a mapping between a table column and a
// visual property. The property name is case-insensitive with spaces
// allowed ("node fill color"). For discrete and continuous mappings,
// columnValues and propValues pair up positionally; a continuous
// mapping additionally accepts exactly two extra propValues, the first
// and last of which map values below and above the waypoint range.
func (c *Client) MapVisualProperty(ctx context.Context, network NetworkRef, visualProp, column string, mappingType MappingType, columnValues, propValues []any) (*VisualMapping, error) {
	switch mappingType {
	case "c":
		mappingType = Continuous
	case "d":
		mappingType = Discrete
	case "p":
		mappingType = Passthrough
	case Continuous, Discrete, Passthrough:
	default:
		return nil, validationf("unknown mapping type %q", mappingType)
	}

	propName := strings.ToUpper(whitespaceRE.ReplaceAllString(strings.TrimSpace(visualProp), "_"))
	if alias, ok := propertyAliases[propName]; ok {
		propName = alias
	}
	known, err := c.GetVisualPropertyNames(ctx)
	if err != nil {
		return nil, err
	}
	found := false
	for _, n := range known {
		if n == propName {
			found = true
			break
		}
	}
	if !found {
		return nil, notFound("visual property", propName)
	}

	// The property prefix names the table the column lives in.
	netSUID, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return nil, err
	}
	tbl := "default" + strings.ToLower(strings.SplitN(propName, "_", 2)[0])
	meta, err := c.tableColumnMeta(ctx, netSUID, tbl)
	if err != nil {
		return nil, err
	}
	columnType := ""
	for _, m := range meta {
		if m.Name == column {
			columnType = m.Type
			break
		}
	}
	if columnType == "" {
		return nil, notFound("column", fmt.Sprintf("%s in %s table", column, tbl))
	}

	vm := &VisualMapping{
		MappingType:    mappingType,
		Column:         column,
		ColumnType:     columnType,
		VisualProperty: propName,
	}
	switch mappingType {
	case Discrete:
		if len(columnValues) != len(propValues) {
			return nil, validationf("discrete mapping pairs %d column values with %d property values",
				len(columnValues), len(propValues))
		}
		for i := range columnValues {
			vm.Map = append(vm.Map, DiscreteEntry{Key: columnValues[i], Value: propValues[i]})
		}
	case Continuous:
		matched := propValues
		hasExtremes := false
		switch len(propValues) - len(columnValues) {
		case 0:
		case 2:
			matched = propValues[1 : len(propValues)-1]
			hasExtremes = true
		default:
			return nil, validationf("continuous mapping pairs %d column values with %d property values",
				len(columnValues), len(propValues))
		}
		for i := range columnValues {
			vm.Points = append(vm.Points, ContinuousPoint{
				Value: columnValues[i], Lesser: matched[i], Equal: matched[i], Greater: matched[i],
			})
		}
		if hasExtremes && len(vm.Points) > 0 {
			vm.Points[0].Lesser = propValues[0]
			vm.Points[len(vm.Points)-1].Greater = propValues[len(propValues)-1]
		}
	}
	return vm, nil
}

func (c *Client) styleMappings(ctx context.Context, styleName string) ([]map[string]any, error) {
	var mappings []map[string]any
	if err := c.rest.GetInto(ctx, "styles/"+styleName+"/mappings", nil, &mappings); err != nil {
		return nil, err
	}
	return mappings, nil
}

func (c *Client) styleHasMapping(ctx context.Context, styleName, visualProp string) (bool, error) {
	mappings, err := c.styleMappings(ctx, styleName)
	if err != nil {
		return false, err
	}
	for _, m := range mappings {
		if vp, _ := mapStr(m, "visualProperty"); vp == visualProp {
			return true, nil
		}
	}
	return false, nil
}

// UpdateStyleMapping installs a mapping into a style, replacing any
// existing mapping for the same visual property.
func (c *Client) UpdateStyleMapping(ctx context.Context, styleName string, mapping *VisualMapping) error {
	exists, err := c.styleHasMapping(ctx, styleName, mapping.VisualProperty)
	if err != nil {
		return err
	}
	body := []*VisualMapping{mapping}
	if exists {
		_, err = c.rest.Put(ctx, "styles/"+styleName+"/mappings/"+mapping.VisualProperty, nil, body, false)
	} else {
		_, err = c.rest.Post(ctx, "styles/"+styleName+"/mappings", nil, body, false)
	}
	return err
}

// DeleteStyleMapping removes the mapping for one visual property from a
// style.
func (c *Client) DeleteStyleMapping(ctx context.Context, styleName, visualProp string) error {
	exists, err := c.styleHasMapping(ctx, styleName, visualProp)
	if err != nil {
		return err
	}
	if !exists {
		return notFound("mapping", fmt.Sprintf("%s in style %s", visualProp, styleName))
	}
	_, err = c.rest.Delete(ctx, "styles/"+styleName+"/mappings/"+visualProp, nil, false)
	return err
}

// GetStyleMapping returns one style's mapping for a visual property.
func (c *Client) GetStyleMapping(ctx context.Context, styleName, visualProp string) (map[string]any, error) {
	mappings, err := c.styleMappings(ctx, styleName)
	if err != nil {
		return nil, err
	}
	for _, m := range mappings {
		if vp, _ := mapStr(m, "visualProperty"); vp == visualProp {
			return m, nil
		}
	}
	return nil, notFound("mapping", fmt.Sprintf("%s in style %s", visualProp, styleName))
}

// GetStyleAllMappings returns every mapping of a style.
func (c *Client) GetStyleAllMappings(ctx context.Context, styleName string) ([]map[string]any, error) {
	return c.styleMappings(ctx, styleName)
}
