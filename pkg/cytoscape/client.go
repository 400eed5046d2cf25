// Package cytoscape drives a running Cytoscape instance over its CyREST
// automation API: network and table manipulation, visual styles and
// mappings, filters, sessions, layouts and sandboxed file transfer.
//
// A Client is safe for concurrent use. Every operation is synchronous,
// takes a context, never retries, and returns a typed error from the
// taxonomy in errors.go.
package cytoscape

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/cytoscape/cyrest-go/internal/buildinfo"
	"github.com/cytoscape/cyrest-go/internal/cyrest"
)

// Client is a handle on one Cytoscape instance.
type Client struct {
	rest *cyrest.Client
	log  *zap.Logger

	mu          sync.Mutex
	sandbox     string // active sandbox name, "" means raw workstation filesystem
	sandboxPath string // absolute path of the active sandbox on the workstation
}

// New builds a Client from a Config. Nil means defaults. No connection
// is attempted; call Ping to probe the instance.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	rest := cyrest.New(cyrest.Options{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Logger:  log,
	})
	return &Client{rest: rest, log: log}, nil
}

// BaseURL returns the CyREST endpoint this client talks to.
func (c *Client) BaseURL() string { return c.rest.BaseURL() }

// Ping probes the instance and verifies that it is recent enough to
// automate. A TransportError means Cytoscape is not running or not
// reachable; a CompatibilityError means it is too old.
func (c *Client) Ping(ctx context.Context) error {
	return c.rest.VerifySupportedVersions(ctx, buildinfo.MinAPIVersion, buildinfo.MinCytoscapeVersion)
}

// Version reports the CyREST API and Cytoscape versions of the running
// instance.
func (c *Client) Version(ctx context.Context) (*cyrest.VersionInfo, error) {
	return c.rest.Version(ctx)
}
