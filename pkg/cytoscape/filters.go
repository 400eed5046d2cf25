package cytoscape

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cytoscape/cyrest-go/internal/metrics"
)

// Column filter predicates, by column type. Numeric scalar IS and
// IS_NOT requests are rewritten to the BETWEEN form the filter engine
// actually evaluates.
var columnPredicates = map[string]bool{
	"IS": true, "IS_NOT": true,
	"CONTAINS": true, "DOES_NOT_CONTAIN": true, "REGEX": true,
	"GREATER_THAN": true, "GREATER_THAN_OR_EQUAL": true,
	"LESS_THAN": true, "LESS_THAN_OR_EQUAL": true,
	"BETWEEN": true, "IS_NOT_BETWEEN": true,
}

// FilterResult reports what a filter left selected.
type FilterResult struct {
	Nodes []string
	Edges []string
}

func (c *Client) filterSelection(ctx context.Context, network NetworkRef) (*FilterResult, error) {
	nodes, err := c.GetSelectedNodes(ctx, network)
	if err != nil {
		return nil, err
	}
	edges, err := c.GetSelectedEdges(ctx, network)
	if err != nil {
		return nil, err
	}
	return &FilterResult{Nodes: nodes, Edges: edges}, nil
}

// ApplyFilter runs an existing filter against a network and reports the
// resulting selection.
func (c *Client) ApplyFilter(ctx context.Context, filterName string, network NetworkRef) (*FilterResult, error) {
	done := metrics.TimeOp("apply_filter")
	res, err := c.applyFilter(ctx, filterName, network)
	done(err == nil)
	return res, err
}

func (c *Client) applyFilter(ctx context.Context, filterName string, network NetworkRef) (*FilterResult, error) {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return nil, err
	}
	_, err = c.rest.CommandsPost(ctx,
		fmt.Sprintf(`filter apply container="filter" name="%s" network=SUID:"%d"`, filterName, suid))
	if err != nil {
		return nil, err
	}
	return c.filterSelection(ctx, NetworkBySUID(suid))
}

// ColumnFilterOptions tunes CreateColumnFilter. The zero value targets
// nodes, matches any value, creates and applies the filter.
type ColumnFilterOptions struct {
	CaseSensitive bool
	AllMatch      bool // require every value of a list column to match
	Edges         bool // filter edges instead of nodes
	DoNotApply    bool
}

// CreateColumnFilter defines a filter over one table column and, unless
// told otherwise, applies it. The criterion depends on the column and
// predicate: a string, a bool, a number, or a two-element number list
// for BETWEEN and IS_NOT_BETWEEN.
func (c *Client) CreateColumnFilter(ctx context.Context, network NetworkRef, filterName, column string, criterion any, predicate string, opts ColumnFilterOptions) (*FilterResult, error) {
	if !columnPredicates[predicate] {
		return nil, validationf("unknown predicate %q", predicate)
	}

	kind, entType := NodeTable, "nodes"
	if opts.Edges {
		kind, entType = EdgeTable, "edges"
	}
	if err := c.SetCurrentNetwork(ctx, network); err != nil {
		return nil, err
	}
	cols, err := c.GetTableColumnNames(ctx, network, kind, "")
	if err != nil {
		return nil, err
	}
	present := false
	for _, col := range cols {
		if col == column {
			present = true
			break
		}
	}
	if !present {
		return nil, notFound("column", fmt.Sprintf("%s in %s table", column, kind))
	}

	criterion, predicate, err = normalizeCriterion(criterion, predicate)
	if err != nil {
		return nil, err
	}

	params := map[string]any{
		"criterion":     criterion,
		"columnName":    column,
		"predicate":     predicate,
		"caseSensitive": opts.CaseSensitive,
		"anyMatch":      !opts.AllMatch,
		"type":          entType,
	}
	return c.createFilter(ctx, network, filterName, "ColumnFilter", params, nil, !opts.DoNotApply)
}

// normalizeCriterion rewrites criterion/predicate pairs into the shapes
// the filter engine evaluates.
func normalizeCriterion(criterion any, predicate string) (any, string, error) {
	switch predicate {
	case "BETWEEN", "IS_NOT_BETWEEN":
		pair, err := numberPair(criterion)
		if err != nil {
			return nil, "", err
		}
		return pair, predicate, nil
	}
	switch v := criterion.(type) {
	case bool:
		// The filter engine only evaluates IS on booleans; IS_NOT is
		// expressed by negating the criterion.
		if predicate == "IS_NOT" {
			return !v, predicate, nil
		}
		return v, predicate, nil
	case int, int64, float64:
		n := toFloat(v)
		switch predicate {
		case "IS":
			return []float64{n, n}, "BETWEEN", nil
		case "IS_NOT":
			return []float64{n, n}, "IS_NOT_BETWEEN", nil
		}
	}
	return criterion, predicate, nil
}

func numberPair(criterion any) ([]float64, error) {
	bad := func() error {
		return validationf("criterion %v must be a list of two numeric values", criterion)
	}
	switch v := criterion.(type) {
	case []float64:
		if len(v) != 2 {
			return nil, bad()
		}
		return v, nil
	case []any:
		if len(v) != 2 {
			return nil, bad()
		}
		pair := make([]float64, 2)
		for i, e := range v {
			switch n := e.(type) {
			case int, int64, float64:
				pair[i] = toFloat(n)
			default:
				return nil, bad()
			}
		}
		return pair, nil
	default:
		return nil, bad()
	}
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case float64:
		return n
	}
	return 0
}

// CreateDegreeFilter defines a filter selecting nodes by degree range
// and, unless told otherwise, applies it.
func (c *Client) CreateDegreeFilter(ctx context.Context, network NetworkRef, filterName string, criterion [2]float64, predicate, edgeType string, apply bool) (*FilterResult, error) {
	switch predicate {
	case "":
		predicate = "BETWEEN"
	case "BETWEEN", "IS_NOT_BETWEEN":
	default:
		return nil, validationf("degree filter predicate must be BETWEEN or IS_NOT_BETWEEN, got %q", predicate)
	}
	if edgeType == "" {
		edgeType = "ANY"
	}
	if err := c.SetCurrentNetwork(ctx, network); err != nil {
		return nil, err
	}
	params := map[string]any{
		"criterion": []float64{criterion[0], criterion[1]},
		"predicate": predicate,
		"edgeType":  edgeType,
	}
	return c.createFilter(ctx, network, filterName, "DegreeFilter", params, nil, apply)
}

// CreateCompositeFilter combines existing filters with ALL or ANY
// semantics and, unless told otherwise, applies the combination.
func (c *Client) CreateCompositeFilter(ctx context.Context, network NetworkRef, filterName string, filterNames []string, combine string, apply bool) (*FilterResult, error) {
	if len(filterNames) < 2 {
		return nil, validationf("composite filter needs at least two filter names")
	}
	switch combine {
	case "":
		combine = "ALL"
	case "ALL", "ANY":
	default:
		return nil, validationf("composite combine mode must be ALL or ANY, got %q", combine)
	}

	var transformers []any
	for _, name := range filterNames {
		res, err := c.rest.CommandsPost(ctx, fmt.Sprintf(`filter get name="%s"`, name))
		if err != nil {
			return nil, err
		}
		rows := asSlice(res)
		if len(rows) == 0 {
			return nil, notFound("filter", name)
		}
		trans := asSlice(asMap(rows[0])["transformers"])
		if len(trans) == 0 {
			return nil, notFound("filter", name)
		}
		transformers = append(transformers, trans[0])
	}

	if err := c.SetCurrentNetwork(ctx, network); err != nil {
		return nil, err
	}
	return c.createFilter(ctx, network, filterName, "CompositeFilter",
		map[string]any{"type": combine}, transformers, apply)
}

// createFilter posts a filter definition to the filter command surface.
// The definition travels as a JSON string inside the JSON body.
func (c *Client) createFilter(ctx context.Context, network NetworkRef, name, id string, params map[string]any, transformers []any, apply bool) (*FilterResult, error) {
	def := map[string]any{"id": id, "parameters": params}
	if transformers != nil {
		def["transformers"] = transformers
	}
	encoded, err := json.Marshal(def)
	if err != nil {
		return nil, validationf("cannot encode filter definition: %v", err)
	}
	body := map[string]any{"name": name, "json": string(encoded), "apply": apply}
	if _, err := c.rest.Post(ctx, "commands/filter/create", nil, body, true); err != nil {
		return nil, err
	}
	return c.filterSelection(ctx, network)
}

// GetFilterList returns the names of the defined filters.
func (c *Client) GetFilterList(ctx context.Context) ([]string, error) {
	res, err := c.rest.CommandsPost(ctx, "filter list")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, v := range asSlice(res) {
		if name, ok := mapStr(asMap(v), "name"); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// ExportFilters writes every defined filter to a JSON file on the
// Cytoscape workstation.
func (c *Client) ExportFilters(ctx context.Context, file string) error {
	if file == "" {
		file = "filters.json"
	}
	_, err := c.rest.CommandsPost(ctx,
		fmt.Sprintf(`filter export file="%s"`, c.absSandboxPath(file)))
	return err
}

// ImportFilters loads filter definitions from a JSON file on the
// Cytoscape workstation.
func (c *Client) ImportFilters(ctx context.Context, file string) error {
	_, err := c.rest.CommandsPost(ctx,
		fmt.Sprintf(`filter import file="%s"`, c.absSandboxPath(file)))
	return err
}
