package cytoscape

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cytoscape/cyrest-go/internal/table"
)

func TestTableColumnNamesAndTypes(t *testing.T) {
	c, srv := newTestClient(t)
	net := seedNetwork(srv)
	ctx := context.Background()
	ref := NetworkBySUID(net.SUID)

	names, err := c.GetTableColumnNames(ctx, ref, NodeTable, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"SUID", "name", "selected"}, names)

	types, err := c.GetTableColumnTypes(ctx, ref, EdgeTable, "")
	require.NoError(t, err)
	assert.Equal(t, table.String, types["name"])
	assert.Equal(t, table.Boolean, types["selected"])
	assert.Equal(t, table.String, types["interaction"])
}

func TestLoadTableData(t *testing.T) {
	c, srv := newTestClient(t)
	net := seedNetwork(srv)
	ctx := context.Background()
	ref := NetworkBySUID(net.SUID)

	data, err := table.New(
		table.NewColumn("name", table.String, table.Str("A"), table.Str("B")),
		table.NewColumn("rank", table.Integer, table.Int(1), table.Int(2)),
	)
	require.NoError(t, err)

	require.NoError(t, c.LoadTableData(ctx, ref, data, LoadTableOptions{}))

	// the integer column is created up front, so values decode as Integer
	types, err := c.GetTableColumnTypes(ctx, ref, NodeTable, "")
	require.NoError(t, err)
	assert.Equal(t, table.Integer, types["rank"])

	suids, err := c.NodeNamesToSUIDs(ctx, ref, RefNames("A", "C"))
	require.NoError(t, err)

	v, err := c.GetTableValue(ctx, ref, NodeTable, "", suids[0], "rank")
	require.NoError(t, err)
	assert.True(t, v.Equal(table.Int(1)))

	// C matched no incoming row, its cell stays unset
	v, err = c.GetTableValue(ctx, ref, NodeTable, "", suids[1], "rank")
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestLoadTableDataRejectsDisjointKeys(t *testing.T) {
	c, srv := newTestClient(t)
	net := seedNetwork(srv)

	data, err := table.New(
		table.NewColumn("name", table.String, table.Str("X"), table.Str("Y")),
		table.NewColumn("rank", table.Integer, table.Int(1), table.Int(2)),
	)
	require.NoError(t, err)

	err = c.LoadTableData(context.Background(), NetworkBySUID(net.SUID), data, LoadTableOptions{})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestLoadTableDataRequiresKeyColumn(t *testing.T) {
	c, srv := newTestClient(t)
	net := seedNetwork(srv)

	data, err := table.New(table.NewColumn("rank", table.Integer, table.Int(1)))
	require.NoError(t, err)

	err = c.LoadTableData(context.Background(), NetworkBySUID(net.SUID), data, LoadTableOptions{})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestRenameAndDeleteTableColumn(t *testing.T) {
	c, srv := newTestClient(t)
	net := seedNetwork(srv)
	ctx := context.Background()
	ref := NetworkBySUID(net.SUID)

	data, err := table.New(
		table.NewColumn("name", table.String, table.Str("A")),
		table.NewColumn("rank", table.Integer, table.Int(7)),
	)
	require.NoError(t, err)
	require.NoError(t, c.LoadTableData(ctx, ref, data, LoadTableOptions{}))

	require.NoError(t, c.RenameTableColumn(ctx, ref, NodeTable, "", "rank", "grade"))
	names, err := c.GetTableColumnNames(ctx, ref, NodeTable, "")
	require.NoError(t, err)
	assert.Contains(t, names, "grade")
	assert.NotContains(t, names, "rank")

	suids, err := c.NodeNamesToSUIDs(ctx, ref, RefNames("A"))
	require.NoError(t, err)
	v, err := c.GetTableValue(ctx, ref, NodeTable, "", suids[0], "grade")
	require.NoError(t, err)
	assert.True(t, v.Equal(table.Int(7)))

	require.NoError(t, c.DeleteTableColumn(ctx, ref, NodeTable, "", "grade"))
	names, err = c.GetTableColumnNames(ctx, ref, NodeTable, "")
	require.NoError(t, err)
	assert.NotContains(t, names, "grade")
}

func TestGetTableValueUnknownColumn(t *testing.T) {
	c, srv := newTestClient(t)
	net := seedNetwork(srv)

	_, err := c.GetTableValue(context.Background(), NetworkBySUID(net.SUID), NodeTable, "",
		net.Nodes[0].SUID, "no-such-column")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}
