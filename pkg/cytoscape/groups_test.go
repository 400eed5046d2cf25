package cytoscape

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupLifecycle(t *testing.T) {
	c, srv := newTestClient(t)
	net := seedNetwork(srv)
	ctx := context.Background()
	ref := NetworkBySUID(net.SUID)

	group, err := c.CreateGroup(ctx, ref, "pair", RefNames("A", "B"), "")
	require.NoError(t, err)
	assert.Positive(t, group)

	collapsed, err := c.CollapseGroup(ctx, ref, []int64{group})
	require.NoError(t, err)
	assert.Equal(t, []int64{group}, collapsed)

	expanded, err := c.ExpandGroup(ctx, ref, []int64{group})
	require.NoError(t, err)
	assert.Equal(t, []int64{group}, expanded)

	require.NoError(t, c.DeleteGroup(ctx, ref, []int64{group}))
	last := srv.Commands[len(srv.Commands)-1]
	assert.Equal(t, "group ungroup", last.Path)
}

func TestCreateGroupByColumn(t *testing.T) {
	c, srv := newTestClient(t)
	net := seedNetwork(srv)
	ctx := context.Background()

	group, err := c.CreateGroupByColumn(ctx, NetworkBySUID(net.SUID), "named", "name", "A")
	require.NoError(t, err)
	assert.Positive(t, group)
}

func TestApps(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()

	apps, err := c.GetInstalledApps(ctx)
	require.NoError(t, err)
	assert.Empty(t, apps)

	require.NoError(t, c.InstallApp(ctx, "stringApp"))
	last := srv.Commands[len(srv.Commands)-1]
	assert.Equal(t, "apps install", last.Path)
	assert.Equal(t, "stringApp", last.Args["app"])

	status, err := c.GetAppStatus(ctx, "stringApp")
	require.NoError(t, err)
	assert.Equal(t, "Installed", status)
}
