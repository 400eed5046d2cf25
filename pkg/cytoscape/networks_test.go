package cytoscape

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cytoscape/cyrest-go/internal/cyresttest"
	"github.com/cytoscape/cyrest-go/internal/table"
)

func seedNetwork(srv *cyresttest.Server) *cyresttest.Network {
	return srv.AddNetwork("net1",
		[]string{"A", "B", "C"},
		[][3]string{{"A", "B", ""}, {"B", "C", "activates"}})
}

func TestNetworkLookup(t *testing.T) {
	c, srv := newTestClient(t)
	net := seedNetwork(srv)
	ctx := context.Background()

	count, err := c.GetNetworkCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	name, err := c.GetNetworkName(ctx, net.SUID)
	require.NoError(t, err)
	assert.Equal(t, "net1", name)

	suid, err := c.GetNetworkSUID(ctx, NetworkByName("net1"))
	require.NoError(t, err)
	assert.Equal(t, net.SUID, suid)

	suid, err = c.GetNetworkSUID(ctx, CurrentNetwork())
	require.NoError(t, err)
	assert.Equal(t, net.SUID, suid)

	_, err = c.GetNetworkSUID(ctx, NetworkByName("no such net"))
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)

	_, err = c.GetNetworkSUID(ctx, NetworkBySUID(99999))
	require.ErrorAs(t, err, &nf)

	names, err := c.GetNetworkList(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"net1"}, names)
}

func TestRenameAndDeleteNetwork(t *testing.T) {
	c, srv := newTestClient(t)
	net := seedNetwork(srv)
	ctx := context.Background()

	require.NoError(t, c.RenameNetwork(ctx, NetworkBySUID(net.SUID), "renamed"))
	name, err := c.GetNetworkName(ctx, net.SUID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", name)

	require.NoError(t, c.DeleteNetwork(ctx, NetworkBySUID(net.SUID)))
	count, err := c.GetNetworkCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCloneNetwork(t *testing.T) {
	c, srv := newTestClient(t)
	net := seedNetwork(srv)
	ctx := context.Background()

	cloneSUID, err := c.CloneNetwork(ctx, NetworkBySUID(net.SUID))
	require.NoError(t, err)
	assert.NotEqual(t, net.SUID, cloneSUID)

	count, err := c.GetNetworkCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	nodes, err := c.GetNodeCount(ctx, NetworkBySUID(cloneSUID))
	require.NoError(t, err)
	assert.Equal(t, 3, nodes)

	require.NoError(t, c.DeleteAllNetworks(ctx))
	count, err = c.GetNetworkCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestAddNodesAndEdges(t *testing.T) {
	c, srv := newTestClient(t)
	net := seedNetwork(srv)
	ctx := context.Background()
	ref := NetworkBySUID(net.SUID)

	added, err := c.AddNodes(ctx, ref, []string{"D"})
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.Equal(t, "D", added[0].Name)

	count, err := c.GetNodeCount(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	suids, err := c.NodeNamesToSUIDs(ctx, ref, RefNames("D", "A"))
	require.NoError(t, err)
	require.Len(t, suids, 2)

	edges, err := c.AddEdges(ctx, ref, []EdgeSpec{
		{Source: suids[0], Target: suids[1], Interaction: "binds"},
	})
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, "D (binds) A", edges[0].Name)

	edgeCount, err := c.GetEdgeCount(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, 3, edgeCount)

	allEdges, err := c.GetAllEdges(ctx, ref)
	require.NoError(t, err)
	assert.Contains(t, allEdges, "D (binds) A")
}

func TestGetFirstNeighbors(t *testing.T) {
	c, srv := newTestClient(t)
	net := seedNetwork(srv)
	ctx := context.Background()

	neighbors, err := c.GetFirstNeighbors(ctx, NetworkBySUID(net.SUID), RefNames("B"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C"}, neighbors)
}

func TestCreateSubnetwork(t *testing.T) {
	c, srv := newTestClient(t)
	net := seedNetwork(srv)
	ctx := context.Background()

	sub, err := c.CreateSubnetwork(ctx, NetworkBySUID(net.SUID), SubnetworkOptions{
		Nodes: RefNames("A", "B"),
		Name:  "pair",
	})
	require.NoError(t, err)

	nodes, err := c.GetNodeCount(ctx, NetworkBySUID(sub))
	require.NoError(t, err)
	assert.Equal(t, 2, nodes)

	edgeCount, err := c.GetEdgeCount(ctx, NetworkBySUID(sub))
	require.NoError(t, err)
	assert.Equal(t, 1, edgeCount, "the A-B edge survives the cut")

	name, err := c.GetNetworkName(ctx, sub)
	require.NoError(t, err)
	assert.Equal(t, "pair", name)
}

func TestCreateNetworkFromTables(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()

	nodes, err := table.New(
		table.NewColumn("id", table.String, table.Str("a"), table.Str("b"), table.Str("c")),
		table.NewColumn("score", table.Double, table.Float(1.5), table.Null(), table.Float(2.5)),
	)
	require.NoError(t, err)
	edges, err := table.New(
		table.NewColumn("source", table.String, table.Str("a"), table.Str("b")),
		table.NewColumn("target", table.String, table.Str("b"), table.Str("c")),
		table.NewColumn("weight", table.Double, table.Float(0.1), table.Float(0.9)),
	)
	require.NoError(t, err)

	suid, err := c.CreateNetworkFromTables(ctx, nodes, edges, "scored", "")
	require.NoError(t, err)

	ref := NetworkBySUID(suid)
	nodeCount, err := c.GetNodeCount(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, 3, nodeCount)

	edgeCount, err := c.GetEdgeCount(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, 2, edgeCount)

	// attribute upload preserves the missing marker
	got, err := c.GetTableColumns(ctx, ref, NodeTable, "", "name", "score")
	require.NoError(t, err)
	byName := map[string]table.Value{}
	nameCol, _ := got.Column("name")
	scoreCol, _ := got.Column("score")
	for i, v := range nameCol.Values {
		n, _ := v.AsString()
		byName[n] = scoreCol.Values[i]
	}
	assert.True(t, byName["a"].Equal(table.Float(1.5)))
	assert.True(t, byName["b"].IsNull())
	assert.True(t, byName["c"].Equal(table.Float(2.5)))

	// edge attributes land keyed by the generated edge name
	fakeNet := srv.Network(suid)
	require.NotNil(t, fakeNet)
	require.Len(t, fakeNet.Edges, 2)
	assert.Equal(t, 0.1, fakeNet.Edges[0].Attrs["weight"])
}

func TestCreateNetworkFromTablesRequiresIDColumn(t *testing.T) {
	c, _ := newTestClient(t)
	nodes, err := table.New(table.NewColumn("name", table.String, table.Str("a")))
	require.NoError(t, err)

	_, err = c.CreateNetworkFromTables(context.Background(), nodes, nil, "bad", "")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestImportAndExportNetwork(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()

	suids, err := c.ImportNetworkFromFile(ctx, "galFiltered.sif")
	require.NoError(t, err)
	require.Len(t, suids, 1)

	name, err := c.GetNetworkName(ctx, suids[0])
	require.NoError(t, err)
	assert.Equal(t, "loaded", name)

	require.NoError(t, c.ExportNetwork(ctx, NetworkBySUID(suids[0]), "out", "graphml"))
	last := srv.Commands[len(srv.Commands)-1]
	assert.Equal(t, "network export", last.Path)
	assert.Equal(t, "GRAPHML", last.Args["options"])
	assert.Equal(t, "out", last.Args["OutputFile"])
}
