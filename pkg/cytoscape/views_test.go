package cytoscape

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewLifecycle(t *testing.T) {
	c, srv := newTestClient(t)
	net := seedNetwork(srv)
	ctx := context.Background()
	ref := NetworkBySUID(net.SUID)

	view, err := c.GetNetworkViewSUID(ctx, ref)
	require.NoError(t, err)
	assert.Positive(t, view)

	// a network with a view gets the existing one back
	same, err := c.CreateView(ctx, ref, false)
	require.NoError(t, err)
	assert.Equal(t, view, same)

	net.Views = nil
	_, err = c.GetNetworkViewSUID(ctx, ref)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)

	created, err := c.CreateView(ctx, ref, true)
	require.NoError(t, err)
	assert.Positive(t, created)

	require.NoError(t, c.SetCurrentView(ctx, ref))
	require.NoError(t, c.FitContent(ctx, ref, false))
	require.NoError(t, c.FitContent(ctx, ref, true))
	last := srv.Commands[len(srv.Commands)-1]
	assert.Equal(t, "view fit selected", last.Path)

	require.NoError(t, c.ToggleGraphicsDetails(ctx))
}

func TestExportImage(t *testing.T) {
	c, srv := newTestClient(t)
	net := seedNetwork(srv)
	ctx := context.Background()
	ref := NetworkBySUID(net.SUID)

	// no filename: the network name plus the format extension
	path, err := c.ExportImage(ctx, ref, "", ImageOptions{})
	require.NoError(t, err)
	assert.Contains(t, path, "net1.png")

	last := srv.Commands[len(srv.Commands)-1]
	assert.Equal(t, "view export", last.Path)
	assert.Equal(t, "PNG", last.Args["options"])

	_, err = c.ExportImage(ctx, ref, "figure", ImageOptions{
		Format: "svg", Zoom: 200, Width: 8, Units: "inches",
	})
	require.NoError(t, err)
	last = srv.Commands[len(srv.Commands)-1]
	assert.Equal(t, "SVG", last.Args["options"])
	assert.Equal(t, "200", last.Args["Zoom"])
	assert.Equal(t, "8", last.Args["Width"])
	assert.Equal(t, "inches", last.Args["Units"])
}

func TestExportImageOverwrite(t *testing.T) {
	c, srv := newTestClient(t)
	net := seedNetwork(srv)
	ctx := context.Background()
	ref := NetworkBySUID(net.SUID)

	_, err := c.SandboxSet(ctx, "box", SandboxOptions{})
	require.NoError(t, err)

	local := filepath.Join(t.TempDir(), "pic.png")
	require.NoError(t, os.WriteFile(local, []byte("old render"), 0o644))
	_, err = c.SandboxSendTo(ctx, local, "pic.png", true)
	require.NoError(t, err)

	_, err = c.ExportImage(ctx, ref, "pic", ImageOptions{})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	// overwrite removes the old file before exporting
	_, err = c.ExportImage(ctx, ref, "pic", ImageOptions{Overwrite: true})
	require.NoError(t, err)
	_, ok := srv.SandboxFile("pic.png")
	assert.False(t, ok)
}
