package cytoscape

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisualStyleLifecycle(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	err := c.CreateVisualStyle(ctx, "galStyle", map[string]any{"NODE_SIZE": 40}, nil)
	require.NoError(t, err)

	names, err := c.GetVisualStyleNames(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, "galStyle")
	assert.Contains(t, names, "default")

	require.NoError(t, c.CopyVisualStyle(ctx, "galStyle", "galStyle copy"))
	names, err = c.GetVisualStyleNames(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, "galStyle copy")

	require.NoError(t, c.DeleteVisualStyle(ctx, "galStyle copy"))
	names, err = c.GetVisualStyleNames(ctx)
	require.NoError(t, err)
	assert.NotContains(t, names, "galStyle copy")
}

func TestCopyVisualStyleValidation(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	err := c.CopyVisualStyle(ctx, "default", "")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	err = c.CopyVisualStyle(ctx, "no-such-style", "copy")
	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
}

func TestGetVisualPropertyNames(t *testing.T) {
	c, _ := newTestClient(t)
	names, err := c.GetVisualPropertyNames(context.Background())
	require.NoError(t, err)
	assert.Contains(t, names, "NODE_FILL_COLOR")
	assert.Contains(t, names, "EDGE_WIDTH")
}

func TestMapVisualPropertyDiscrete(t *testing.T) {
	c, srv := newTestClient(t)
	net := seedNetwork(srv)
	ctx := context.Background()
	ref := NetworkBySUID(net.SUID)

	// spaced lowercase names normalize to the canonical form
	vm, err := c.MapVisualProperty(ctx, ref, "node fill color", "name", Discrete,
		[]any{"A", "B"}, []any{"#FF0000", "#00FF00"})
	require.NoError(t, err)
	assert.Equal(t, "NODE_FILL_COLOR", vm.VisualProperty)
	assert.Equal(t, "String", vm.ColumnType)
	require.Len(t, vm.Map, 2)
	assert.Equal(t, "A", vm.Map[0].Key)
	assert.Equal(t, "#FF0000", vm.Map[0].Value)

	_, err = c.MapVisualProperty(ctx, ref, "node fill color", "name", Discrete,
		[]any{"A", "B"}, []any{"#FF0000"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestMapVisualPropertyContinuous(t *testing.T) {
	c, srv := newTestClient(t)
	net := seedNetwork(srv)
	ctx := context.Background()
	ref := NetworkBySUID(net.SUID)

	net.NodeCols["score"] = "Double"

	// two extra property values become the below and above extremes
	vm, err := c.MapVisualProperty(ctx, ref, "node size", "score", Continuous,
		[]any{1.0, 2.0, 3.0}, []any{10, 20, 40, 60, 90})
	require.NoError(t, err)
	require.Len(t, vm.Points, 3)
	assert.Equal(t, 10, vm.Points[0].Lesser)
	assert.Equal(t, 20, vm.Points[0].Equal)
	assert.Equal(t, 60, vm.Points[2].Equal)
	assert.Equal(t, 90, vm.Points[2].Greater)

	// one extra value is neither matched nor a pair of extremes
	_, err = c.MapVisualProperty(ctx, ref, "node size", "score", Continuous,
		[]any{1.0, 2.0}, []any{10, 20, 40})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestMapVisualPropertyAliasesAndEdgeTable(t *testing.T) {
	c, srv := newTestClient(t)
	net := seedNetwork(srv)
	ctx := context.Background()
	ref := NetworkBySUID(net.SUID)

	// the edge color alias resolves and targets the edge table
	vm, err := c.MapVisualProperty(ctx, ref, "edge color", "interaction", Passthrough, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "EDGE_UNSELECTED_PAINT", vm.VisualProperty)
	assert.Equal(t, "interaction", vm.Column)

	_, err = c.MapVisualProperty(ctx, ref, "node glow", "name", Passthrough, nil, nil)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)

	// the column must exist in the table the property prefix names
	_, err = c.MapVisualProperty(ctx, ref, "edge width", "no-such-col", Passthrough, nil, nil)
	require.ErrorAs(t, err, &nf)
}

func TestUpdateStyleMapping(t *testing.T) {
	c, srv := newTestClient(t)
	net := seedNetwork(srv)
	ctx := context.Background()
	ref := NetworkBySUID(net.SUID)

	require.NoError(t, c.CreateVisualStyle(ctx, "s1", nil, nil))

	vm, err := c.MapVisualProperty(ctx, ref, "node label", "name", Passthrough, nil, nil)
	require.NoError(t, err)
	require.NoError(t, c.UpdateStyleMapping(ctx, "s1", vm))
	assert.Len(t, srv.StyleMappings("s1"), 1)

	// a second install for the same property replaces, not appends
	vm2, err := c.MapVisualProperty(ctx, ref, "node label", "selected", Passthrough, nil, nil)
	require.NoError(t, err)
	require.NoError(t, c.UpdateStyleMapping(ctx, "s1", vm2))
	assert.Len(t, srv.StyleMappings("s1"), 1)

	got, err := c.GetStyleMapping(ctx, "s1", "NODE_LABEL")
	require.NoError(t, err)
	assert.Equal(t, "passthrough", got["mappingType"])

	all, err := c.GetStyleAllMappings(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, c.DeleteStyleMapping(ctx, "s1", "NODE_LABEL"))
	var nf *NotFoundError
	err = c.DeleteStyleMapping(ctx, "s1", "NODE_LABEL")
	require.ErrorAs(t, err, &nf)
	_, err = c.GetStyleMapping(ctx, "s1", "NODE_LABEL")
	require.ErrorAs(t, err, &nf)
}
