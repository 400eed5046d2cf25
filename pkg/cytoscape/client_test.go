package cytoscape

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cytoscape/cyrest-go/internal/cyresttest"
)

func newTestClient(t *testing.T) (*Client, *cyresttest.Server) {
	t.Helper()
	srv := cyresttest.New()
	t.Cleanup(srv.Close)
	c, err := New(&Config{BaseURL: srv.URL()})
	require.NoError(t, err)
	return c, srv
}

func TestPing(t *testing.T) {
	c, _ := newTestClient(t)
	require.NoError(t, c.Ping(context.Background()))
}

func TestPingRejectsOldCytoscape(t *testing.T) {
	srv := cyresttest.New()
	defer srv.Close()
	srv.CytoscapeVersion = "3.5.0"

	c, err := New(&Config{BaseURL: srv.URL()})
	require.NoError(t, err)

	err = c.Ping(context.Background())
	var compat *CompatibilityError
	require.ErrorAs(t, err, &compat)
	assert.Equal(t, "Cytoscape", compat.Component)
	assert.Equal(t, "3.5.0", compat.Actual)
}

func TestVersion(t *testing.T) {
	c, _ := newTestClient(t)
	v, err := c.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v1", v.APIVersion)
	assert.Equal(t, "3.10.1", v.CytoscapeVersion)
}

func TestSystemInfo(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	versions, err := c.APIVersions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"v1"}, versions)

	cores, err := c.NumberOfCores(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, cores)

	mem, err := c.MemoryStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1024), mem["freeMemory"])

	require.NoError(t, c.FreeMemory(ctx))
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(&Config{BaseURL: "not a url"})
	require.Error(t, err)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("CYREST_URL", "http://localhost:2345/v1")
	t.Setenv("CYREST_TIMEOUT", "90s")
	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:2345/v1", cfg.BaseURL)
	assert.Equal(t, 90*time.Second, cfg.Timeout)

	t.Setenv("CYREST_TIMEOUT", "soon")
	_, err = ConfigFromEnv()
	require.Error(t, err)
}
