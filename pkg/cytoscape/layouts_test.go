package cytoscape

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutNetwork(t *testing.T) {
	c, srv := newTestClient(t)
	net := seedNetwork(srv)
	ctx := context.Background()
	ref := NetworkBySUID(net.SUID)

	require.NoError(t, c.LayoutNetwork(ctx, ref, "grid"))
	last := srv.Commands[len(srv.Commands)-1]
	assert.Equal(t, "layout grid", last.Path)

	// an empty name runs the preferred layout
	require.NoError(t, c.LayoutNetwork(ctx, ref, ""))
	last = srv.Commands[len(srv.Commands)-1]
	assert.Equal(t, "layout apply preferred", last.Path)
}

func TestLayoutCopycat(t *testing.T) {
	c, srv := newTestClient(t)
	src := seedNetwork(srv)
	tgt := srv.AddNetwork("other", []string{"A", "B"}, nil)
	ctx := context.Background()

	mapped, unmapped, err := c.LayoutCopycat(ctx, NetworkBySUID(src.SUID), NetworkBySUID(tgt.SUID))
	require.NoError(t, err)
	assert.Equal(t, int64(2), mapped)
	assert.Equal(t, int64(0), unmapped)
}

func TestLayoutCatalog(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	names, err := c.GetLayoutNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"force-directed", "circular", "grid"}, names)

	mapping, err := c.GetLayoutNameMapping(ctx)
	require.NoError(t, err)
	assert.Equal(t, "force-directed", mapping["force-directed Layout"])

	props, err := c.GetLayoutPropertyNames(ctx, "force-directed")
	require.NoError(t, err)
	assert.Contains(t, props, "defaultSpringLength")

	v, err := c.GetLayoutPropertyValue(ctx, "force-directed", "defaultSpringLength")
	require.NoError(t, err)
	assert.Equal(t, 50.0, v)

	_, err = c.GetLayoutPropertyValue(ctx, "force-directed", "gravity")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestSetLayoutProperties(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	err := c.SetLayoutProperties(ctx, "force-directed", map[string]any{"defaultSpringLength": 80.0})
	require.NoError(t, err)

	// unknown names are rejected before anything is sent
	err = c.SetLayoutProperties(ctx, "force-directed", map[string]any{"gravity": 1.0})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestEdgeBundling(t *testing.T) {
	c, srv := newTestClient(t)
	net := seedNetwork(srv)
	ctx := context.Background()
	ref := NetworkBySUID(net.SUID)

	require.NoError(t, c.BundleEdges(ctx, ref))
	require.NoError(t, c.ClearEdgeBends(ctx, ref))
}
