package cytoscape

import (
	"context"
	"fmt"
)

// The raw command surface, for namespaces this package has no typed
// wrapper for. Commands use Cytoscape's Command Line Dialog syntax:
// a command head followed by key="value" arguments.

// CommandsPost runs a command and returns the data member of its
// structured reply.
func (c *Client) CommandsPost(ctx context.Context, cmd string) (any, error) {
	return c.rest.CommandsPost(ctx, cmd)
}

// CommandsGet runs a command over the text surface and returns its
// output lines.
func (c *Client) CommandsGet(ctx context.Context, cmd string) ([]string, error) {
	return c.rest.CommandsGet(ctx, cmd)
}

// CommandsHelp lists the sub-commands or arguments available for a
// command. Asking about a command that takes no arguments runs it.
func (c *Client) CommandsHelp(ctx context.Context, cmd string) ([]string, error) {
	return c.rest.CommandsHelp(ctx, cmd)
}

// CommandEcho round-trips a message through the command processor,
// useful as a liveness check of the command surface itself.
func (c *Client) CommandEcho(ctx context.Context, message string) (string, error) {
	if message == "" {
		message = "*"
	}
	res, err := c.rest.CommandsPost(ctx, fmt.Sprintf(`command echo message="%s"`, message))
	if err != nil {
		return "", err
	}
	if lines := asSlice(res); len(lines) > 0 {
		if s, ok := lines[0].(string); ok {
			return s, nil
		}
	}
	return "", nil
}

// CommandSleep pauses the Cytoscape command processor, typically to let
// the UI settle inside a scripted workflow.
func (c *Client) CommandSleep(ctx context.Context, seconds float64) error {
	_, err := c.rest.CommandsPost(ctx, fmt.Sprintf(`command sleep duration="%v"`, seconds))
	return err
}
