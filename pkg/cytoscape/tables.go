package cytoscape

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cytoscape/cyrest-go/internal/metrics"
	"github.com/cytoscape/cyrest-go/internal/table"
)

// TableKind selects one of the three attribute tables of a network.
type TableKind string

const (
	NodeTable    TableKind = "node"
	EdgeTable    TableKind = "edge"
	NetworkTable TableKind = "network"
)

func tableName(kind TableKind, namespace string) string {
	if namespace == "" {
		namespace = "default"
	}
	return namespace + string(kind)
}

type columnMeta struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func (c *Client) tableColumnMeta(ctx context.Context, netSUID int64, tbl string) ([]columnMeta, error) {
	var cols []columnMeta
	err := c.rest.GetInto(ctx, fmt.Sprintf("networks/%d/tables/%s/columns", netSUID, tbl), nil, &cols)
	if err != nil {
		return nil, err
	}
	return cols, nil
}

// GetTableColumnNames returns the column names of a table.
func (c *Client) GetTableColumnNames(ctx context.Context, network NetworkRef, kind TableKind, namespace string) ([]string, error) {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return nil, err
	}
	cols, err := c.tableColumnMeta(ctx, suid, tableName(kind, namespace))
	if err != nil {
		return nil, err
	}
	names := make([]string, len(cols))
	for i, col := range cols {
		names[i] = col.Name
	}
	return names, nil
}

// GetTableColumnTypes returns the type of each column in a table.
// Columns with a type outside the supported set are an error.
func (c *Client) GetTableColumnTypes(ctx context.Context, network NetworkRef, kind TableKind, namespace string) (map[string]table.Type, error) {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return nil, err
	}
	cols, err := c.tableColumnMeta(ctx, suid, tableName(kind, namespace))
	if err != nil {
		return nil, err
	}
	types := make(map[string]table.Type, len(cols))
	for _, col := range cols {
		typ, err := table.TypeFromRemote(col.Type)
		if err != nil {
			return nil, err
		}
		types[col.Name] = typ
	}
	return types, nil
}

// GetTableColumns fetches the named columns (or every column when the
// list is empty) as a SUID-keyed table. Cells Cytoscape holds no value
// for come back as the missing marker.
func (c *Client) GetTableColumns(ctx context.Context, network NetworkRef, kind TableKind, namespace string, columns ...string) (*table.Table, error) {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return nil, err
	}
	tbl := tableName(kind, namespace)

	meta, err := c.tableColumnMeta(ctx, suid, tbl)
	if err != nil {
		return nil, err
	}
	typeOf := make(map[string]string, len(meta))
	for _, m := range meta {
		typeOf[m.Name] = m.Type
	}

	if len(columns) == 0 {
		for _, m := range meta {
			if m.Name != "SUID" {
				columns = append(columns, m.Name)
			}
		}
	}

	var suidCol columnValues
	if err := c.rest.GetInto(ctx, fmt.Sprintf("networks/%d/tables/%s/columns/SUID", suid, tbl), nil, &suidCol); err != nil {
		return nil, err
	}
	suids := make([]int64, len(suidCol.Values))
	for i, rv := range suidCol.Values {
		f, ok := rv.(float64)
		if !ok {
			return nil, validationf("SUID column holds %T, expected number", rv)
		}
		suids[i] = int64(f)
	}

	out, _ := table.New()
	for _, name := range columns {
		remoteType, ok := typeOf[name]
		if !ok {
			return nil, notFound("column", name)
		}
		typ, err := table.TypeFromRemote(remoteType)
		if err != nil {
			return nil, err
		}
		var col columnValues
		if err := c.rest.GetInto(ctx, fmt.Sprintf("networks/%d/tables/%s/columns/%s", suid, tbl, name), nil, &col); err != nil {
			return nil, err
		}
		// The column endpoint omits trailing unset cells.
		raw := col.Values
		for len(raw) < len(suids) {
			raw = append(raw, nil)
		}
		values, err := table.DecodeColumn(typ, raw)
		if err != nil {
			return nil, err
		}
		if err := out.AddColumn(table.NewColumn(name, typ, values...)); err != nil {
			return nil, err
		}
	}
	if err := out.SetSUIDs(suids); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTableValue fetches one cell by row SUID and column name.
func (c *Client) GetTableValue(ctx context.Context, network NetworkRef, kind TableKind, namespace string, rowSUID int64, column string) (table.Value, error) {
	netSUID, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return table.Null(), err
	}
	tbl := tableName(kind, namespace)

	types, err := c.GetTableColumnTypes(ctx, NetworkBySUID(netSUID), kind, namespace)
	if err != nil {
		return table.Null(), err
	}
	typ, ok := types[column]
	if !ok {
		return table.Null(), notFound("column", column)
	}

	raw, err := c.rest.Get(ctx,
		fmt.Sprintf("networks/%d/tables/%s/rows/%d/%s", netSUID, tbl, rowSUID, column), nil, false)
	if err != nil {
		return table.Null(), err
	}
	if s, ok := raw.(string); ok && s == "" {
		return table.Null(), nil
	}
	values, err := table.DecodeColumn(typ, []any{raw})
	if err != nil {
		return table.Null(), err
	}
	return values[0], nil
}

// LoadTableOptions controls how LoadTableData keys the incoming rows
// against the target table. Zero values mean the "name" column of the
// default node table.
type LoadTableOptions struct {
	DataKeyColumn  string
	Table          TableKind
	TableKeyColumn string
	Namespace      string
}

// LoadTableData bulk-loads a table of attribute values into one of a
// network's tables, matching rows on a shared key column. Rows whose
// key matches nothing are skipped; matching nothing at all is an error.
// Missing cells are sent as nulls and leave the target cell unset.
func (c *Client) LoadTableData(ctx context.Context, network NetworkRef, data *table.Table, opts LoadTableOptions) error {
	done := metrics.TimeOp("load_table_data")
	err := c.loadTableData(ctx, network, data, opts)
	done(err == nil)
	return err
}

func (c *Client) loadTableData(ctx context.Context, network NetworkRef, data *table.Table, opts LoadTableOptions) error {
	if opts.DataKeyColumn == "" {
		opts.DataKeyColumn = "name"
	}
	if opts.Table == "" {
		opts.Table = NodeTable
	}
	if opts.TableKeyColumn == "" {
		opts.TableKeyColumn = "name"
	}

	keyCol, ok := data.Column(opts.DataKeyColumn)
	if !ok {
		return validationf("data has no key column %q", opts.DataKeyColumn)
	}

	netSUID, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return err
	}
	netRef := NetworkBySUID(netSUID)
	tbl := tableName(opts.Table, opts.Namespace)

	target, err := c.GetTableColumns(ctx, netRef, opts.Table, opts.Namespace, opts.TableKeyColumn)
	if err != nil {
		return err
	}
	targetCol, _ := target.Column(opts.TableKeyColumn)
	targetKeys := make(map[string]bool, len(targetCol.Values))
	for _, v := range targetCol.Values {
		targetKeys[stringifyCell(v)] = true
	}

	match := make([]bool, data.RowCount())
	matchedAny := false
	for i, v := range keyCol.Values {
		if targetKeys[stringifyCell(v)] {
			match[i] = true
			matchedAny = true
		}
	}
	if !matchedAny {
		return validationf("table key column %q and data key column %q share no values",
			opts.TableKeyColumn, opts.DataKeyColumn)
	}

	// Integer columns are created up front so they don't default to Double.
	existing, err := c.GetTableColumnNames(ctx, netRef, opts.Table, opts.Namespace)
	if err != nil {
		return err
	}
	present := make(map[string]bool, len(existing))
	for _, name := range existing {
		present[name] = true
	}
	for _, name := range data.ColumnNames() {
		col, _ := data.Column(name)
		if present[name] || (col.Type != table.Integer && col.Type != table.Long) {
			continue
		}
		_, err := c.rest.Post(ctx, fmt.Sprintf("networks/%d/tables/%s/columns", netSUID, tbl), nil,
			map[string]string{"name": name, "type": string(col.Type)}, false)
		if err != nil {
			return err
		}
	}

	records := data.Records()
	matched := make([]map[string]any, 0, len(records))
	for i, rec := range records {
		if match[i] {
			matched = append(matched, rec)
		}
	}
	_, err = c.rest.Put(ctx, fmt.Sprintf("networks/%d/tables/%s", netSUID, tbl), nil, map[string]any{
		"key":     opts.TableKeyColumn,
		"dataKey": opts.DataKeyColumn,
		"data":    matched,
	}, false)
	return err
}

// stringifyCell renders a cell the way key matching compares it.
func stringifyCell(v table.Value) string {
	switch {
	case v.IsNull():
		return ""
	default:
		switch jv := v.JSON().(type) {
		case string:
			return jv
		case int64:
			return strconv.FormatInt(jv, 10)
		case float64:
			return strconv.FormatFloat(jv, 'g', -1, 64)
		case bool:
			return strconv.FormatBool(jv)
		default:
			return fmt.Sprint(jv)
		}
	}
}

// DeleteTableColumn removes a column. The reply body is empty.
func (c *Client) DeleteTableColumn(ctx context.Context, network NetworkRef, kind TableKind, namespace, column string) error {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return err
	}
	_, err = c.rest.Delete(ctx,
		fmt.Sprintf("networks/%d/tables/%s/columns/%s", suid, tableName(kind, namespace), column), nil, false)
	return err
}

// RenameTableColumn renames a column. The reply body is empty.
func (c *Client) RenameTableColumn(ctx context.Context, network NetworkRef, kind TableKind, namespace, column, newName string) error {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return err
	}
	_, err = c.rest.Put(ctx,
		fmt.Sprintf("networks/%d/tables/%s/columns", suid, tableName(kind, namespace)), nil,
		map[string]string{"oldName": column, "newName": newName}, false)
	return err
}
