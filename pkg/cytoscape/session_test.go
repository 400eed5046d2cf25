package cytoscape

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSession(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.OpenSession(ctx, "work.cys"))
	last := srv.Commands[len(srv.Commands)-1]
	assert.Equal(t, "session open", last.Path)
	assert.Equal(t, "work.cys", last.Args["file"])

	require.NoError(t, c.OpenSession(ctx, "https://example.org/galFiltered.cys"))
	last = srv.Commands[len(srv.Commands)-1]
	assert.Equal(t, "https://example.org/galFiltered.cys", last.Args["url"])

	err := c.OpenSession(ctx, "")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestSaveSession(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()

	// never saved and no filename given
	err := c.SaveSession(ctx, "")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	// once the session has a file, a bare save goes back to it
	srv.SessionName = "work.cys"
	require.NoError(t, c.SaveSession(ctx, ""))
	last := srv.Commands[len(srv.Commands)-1]
	assert.Equal(t, "session save", last.Path)

	// a fresh name gets the .cys suffix and a save-as
	require.NoError(t, c.SaveSession(ctx, "mywork"))
	last = srv.Commands[len(srv.Commands)-1]
	assert.Equal(t, "session save as", last.Path)
	assert.Equal(t, "mywork.cys", last.Args["file"])
}

func TestCloseSession(t *testing.T) {
	c, srv := newTestClient(t)
	seedNetwork(srv)
	ctx := context.Background()

	require.NoError(t, c.CloseSession(ctx, true, "final"))
	n := len(srv.Commands)
	assert.Equal(t, "session save as", srv.Commands[n-2].Path)
	assert.Equal(t, "session new", srv.Commands[n-1].Path)

	count, err := c.GetNetworkCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestSandboxLifecycle(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()

	path, err := c.SandboxSet(ctx, "box", SandboxOptions{})
	require.NoError(t, err)
	assert.Equal(t, "/cytoscape/filetransfer/box", path)

	local := filepath.Join(t.TempDir(), "data.txt")
	require.NoError(t, os.WriteFile(local, []byte("hello sandbox"), 0o644))

	sent, err := c.SandboxSendTo(ctx, local, "data.txt", true)
	require.NoError(t, err)
	assert.Equal(t, "/cytoscape/filetransfer/box/data.txt", sent)
	content, ok := srv.SandboxFile("data.txt")
	require.True(t, ok)
	assert.Equal(t, "hello sandbox", string(content))

	info, err := c.SandboxGetFileInfo(ctx, "data.txt")
	require.NoError(t, err)
	assert.True(t, info.IsFile)
	assert.NotEmpty(t, info.ModifiedTime)

	info, err = c.SandboxGetFileInfo(ctx, "absent.txt")
	require.NoError(t, err)
	assert.False(t, info.IsFile)
	assert.Empty(t, info.ModifiedTime)

	back := filepath.Join(t.TempDir(), "back.txt")
	require.NoError(t, c.SandboxGetFrom(ctx, "data.txt", back, false))
	got, err := os.ReadFile(back)
	require.NoError(t, err)
	assert.Equal(t, "hello sandbox", string(got))

	require.NoError(t, c.SandboxRemoveFile(ctx, "data.txt"))
	_, ok = srv.SandboxFile("data.txt")
	assert.False(t, ok)

	require.NoError(t, c.SandboxRemove(ctx, ""))

	// with no sandbox active paths resolve against the raw filesystem
	assert.Equal(t, "plain.txt", c.absSandboxPath("plain.txt"))
}

func TestSandboxPathResolution(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	_, err := c.SandboxSet(ctx, "box", SandboxOptions{})
	require.NoError(t, err)

	assert.Equal(t, "/cytoscape/filetransfer/box/out.png", c.absSandboxPath("out.png"))
	// absolute paths bypass the sandbox
	assert.Equal(t, "/tmp/out.png", c.absSandboxPath("/tmp/out.png"))
	assert.Equal(t, `C:\out.png`, c.absSandboxPath(`C:\out.png`))
}

func TestSandboxGetFromRefusesOverwrite(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	_, err := c.SandboxSet(ctx, "box", SandboxOptions{})
	require.NoError(t, err)

	local := filepath.Join(t.TempDir(), "exists.txt")
	require.NoError(t, os.WriteFile(local, []byte("old"), 0o644))

	err = c.SandboxGetFrom(ctx, "anything.txt", local, false)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	// a missing sandbox file is a remote error
	err = c.SandboxGetFrom(ctx, "anything.txt", local, true)
	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
}

func TestCommandSurface(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()

	msg, err := c.CommandEcho(ctx, "hi")
	require.NoError(t, err)
	assert.Equal(t, "hi", msg)

	require.NoError(t, c.CommandSleep(ctx, 0.1))
	last := srv.Commands[len(srv.Commands)-1]
	assert.Equal(t, "command sleep", last.Path)
	assert.Equal(t, "0.1", last.Args["duration"])

	lines, err := c.CommandsHelp(ctx, "network")
	require.NoError(t, err)
	assert.NotEmpty(t, lines)
}
