package cytoscape

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollections(t *testing.T) {
	c, srv := newTestClient(t)
	net := seedNetwork(srv)
	ctx := context.Background()

	names, err := c.GetCollectionList(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"net1"}, names)

	csuid, err := c.GetCollectionSUID(ctx, NetworkBySUID(net.SUID))
	require.NoError(t, err)

	name, err := c.GetCollectionName(ctx, csuid)
	require.NoError(t, err)
	assert.Equal(t, "net1", name)

	subnets, err := c.GetCollectionNetworks(ctx, csuid)
	require.NoError(t, err)
	assert.Equal(t, []int64{net.SUID}, subnets)
}
