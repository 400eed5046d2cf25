package cytoscape

import (
	"context"
	"fmt"
	"strings"

	"github.com/cytoscape/cyrest-go/internal/metrics"
)

// Session archives (.cys) are opaque to this client; they travel to and
// from Cytoscape by file path or URL and are never parsed locally.

// OpenSession loads a session from a file path or an http(s) URL,
// discarding everything in the current session.
func (c *Client) OpenSession(ctx context.Context, location string) error {
	done := metrics.TimeOp("open_session")
	err := c.openSession(ctx, location)
	done(err == nil)
	return err
}

func (c *Client) openSession(ctx context.Context, location string) error {
	if location == "" {
		return validationf("session location must not be empty")
	}
	kind := "file"
	if strings.HasPrefix(location, "http:") || strings.HasPrefix(location, "https:") {
		kind = "url"
	} else {
		location = c.absSandboxPath(location)
	}
	_, err := c.rest.CommandsPost(ctx, fmt.Sprintf(`session open %s="%s"`, kind, location))
	return err
}

// SaveSession writes the session to a .cys file. An empty filename
// saves back to the file the session was loaded from; a session that
// was never saved has no such file and is an error.
func (c *Client) SaveSession(ctx context.Context, filename string) error {
	done := metrics.TimeOp("save_session")
	err := c.saveSession(ctx, filename)
	done(err == nil)
	return err
}

func (c *Client) saveSession(ctx context.Context, filename string) error {
	if filename == "" {
		current, err := c.rest.Get(ctx, "session/name", nil, false)
		if err != nil {
			return err
		}
		name, _ := current.(string)
		if name == "" {
			return validationf("session has never been saved; supply a filename")
		}
		_, err = c.rest.CommandsPost(ctx, "session save")
		return err
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".cys") {
		filename += ".cys"
	}
	_, err := c.rest.CommandsPost(ctx,
		fmt.Sprintf(`session save as file="%s"`, c.absSandboxPath(filename)))
	return err
}

// CloseSession discards the current session, optionally saving it
// first. Pass an empty filename with save to write back to the file the
// session came from.
func (c *Client) CloseSession(ctx context.Context, save bool, filename string) error {
	if save {
		if err := c.saveSession(ctx, filename); err != nil {
			return err
		}
	}
	_, err := c.rest.CommandsPost(ctx, "session new")
	return err
}
