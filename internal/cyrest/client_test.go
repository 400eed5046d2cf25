package cyrest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return New(Options{BaseURL: srv.URL + "/v1"}), srv
}

func TestGetDecodesJSON(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/networks/count", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count": 3}`))
	})
	defer srv.Close()

	res, err := c.Get(context.Background(), "networks/count", nil, true)
	require.NoError(t, err)
	m, ok := res.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(3), m["count"])
}

func TestBuildURLEscapesSegmentsAndParams(t *testing.T) {
	var gotPath, gotQuery string
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotQuery = r.URL.Query().Get("network")
		w.Write([]byte(`{}`))
	})
	defer srv.Close()

	_, err := c.Get(context.Background(), "commands/network/get attribute",
		Params{"network": "my net"}, true)
	require.NoError(t, err)
	assert.Equal(t, "/v1/commands/network/get%20attribute", gotPath)
	assert.Equal(t, "my net", gotQuery)
}

func TestRemoteErrorCarriesStatusAndMessage(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"errors":[{"message":"Network does not exist: 42"}]}`))
	})
	defer srv.Close()

	_, err := c.Get(context.Background(), "networks/42", nil, true)
	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusNotFound, remote.StatusCode)
	assert.Equal(t, "networks/42", remote.Operation)
	assert.Equal(t, "Network does not exist: 42", remote.Message)
}

func TestRemoteErrorFallsBackToRawBody(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("something broke\n"))
	})
	defer srv.Close()

	_, err := c.Get(context.Background(), "gc", nil, false)
	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, "something broke", remote.Message)
}

func TestTransportErrorOnUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(Options{BaseURL: url + "/v1"})
	_, err := c.Get(context.Background(), "version", nil, true)
	var transport *TransportError
	require.ErrorAs(t, err, &transport)
	assert.ErrorIs(t, err, transport.Err)
}

func TestRequireJSONSemantics(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("plain text reply"))
	})
	defer srv.Close()

	res, err := c.Get(context.Background(), "session/name", nil, false)
	require.NoError(t, err)
	assert.Equal(t, "plain text reply", res)

	_, err = c.Get(context.Background(), "session/name", nil, true)
	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
}

func TestSplitCommand(t *testing.T) {
	head, args := splitCommand(`network get attribute network="SUID:52" namespace="default" columnList="SUID"`)
	assert.Equal(t, "network get attribute", head)
	assert.Equal(t, map[string]string{
		"network":    "SUID:52",
		"namespace":  "default",
		"columnList": "SUID",
	}, args)

	head, args = splitCommand("session new")
	assert.Equal(t, "session new", head)
	assert.Nil(t, args)

	// values may contain spaces and unquoted text
	_, args = splitCommand(`view export options=PNG OutputFile=/tmp/out file`)
	assert.Equal(t, "PNG", args["options"])
	assert.Equal(t, "/tmp/out file", args["OutputFile"])
}

func TestCommandPathSplitsFirstSpaceOnly(t *testing.T) {
	assert.Equal(t, "commands/layout/force-directed", commandPath("layout force-directed"))
	assert.Equal(t, "commands/network/get attribute", commandPath("network get attribute"))
	assert.Equal(t, "commands/session/new", commandPath("session new"))
}

func TestCommandLines(t *testing.T) {
	text := "Available commands:\n  network\n  view\n\nFinished\n"
	assert.Equal(t, []string{"Available commands:", "network", "view"}, commandLines(text, false))
	assert.Equal(t, []string{"network", "view"}, commandLines(text, true))
}

func TestCommandsPostSendsArgsAsBody(t *testing.T) {
	var gotBody map[string]string
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"network":101},"errors":[]}`))
	})
	defer srv.Close()

	res, err := c.CommandsPost(context.Background(), `network clone network="SUID:100"`)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"network": "SUID:100"}, gotBody)
	m, ok := res.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(101), m["network"])
}

func TestVerifySupportedVersions(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"apiVersion":"v1","cytoscapeVersion":"3.5.0"}`))
	})
	defer srv.Close()

	err := c.VerifySupportedVersions(context.Background(), 1, 3.6)
	var compat *CompatibilityError
	require.ErrorAs(t, err, &compat)
	assert.Equal(t, "Cytoscape", compat.Component)

	require.NoError(t, c.VerifySupportedVersions(context.Background(), 1, 3.5))
}
