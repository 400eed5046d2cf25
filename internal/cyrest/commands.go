package cyrest

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
)

// The commands surface accepts the same syntax as Cytoscape's Command
// Line Dialog: a space-separated command head followed by key="value"
// arguments, e.g.
//
//	network get attribute network="test" columnList="SUID"
//
// For GET the arguments become query parameters; for POST they become a
// JSON body.

var commandArgRE = regexp.MustCompile(` ([A-Za-z0-9_-]+=)`)

// splitCommand separates the command head from its key="value" arguments.
func splitCommand(cmd string) (head string, args map[string]string) {
	marked := commandArgRE.ReplaceAllString(cmd, "\x00$1")
	parts := strings.Split(marked, "\x00")
	head = strings.TrimSpace(parts[0])
	if len(parts) == 1 {
		return head, nil
	}
	args = make(map[string]string, len(parts)-1)
	for _, p := range parts[1:] {
		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}
		args[kv[0]] = strings.Trim(strings.TrimSpace(kv[1]), `"`)
	}
	return head, args
}

// commandPath turns a command head into the CyREST commands path, with
// only the first space becoming a path separator ("layout force-directed"
// -> "commands/layout/force-directed").
func commandPath(head string) string {
	return "commands/" + strings.Replace(head, " ", "/", 1)
}

// CommandsGet executes a command via GET and returns the result as a
// list of lines, omitting the trailing "Finished" marker.
func (c *Client) CommandsGet(ctx context.Context, cmd string) ([]string, error) {
	head, args := splitCommand(cmd)
	raw, err := c.doRaw(ctx, http.MethodGet, commandPath(head), Params(args), nil, "text/plain")
	if err != nil {
		return nil, err
	}
	return commandLines(string(raw), false), nil
}

// CommandsHelp lists the sub-commands or arguments available for a
// command. The "help" prefix is optional. Note that asking about a
// command that takes no arguments will run it.
func (c *Client) CommandsHelp(ctx context.Context, cmd string) ([]string, error) {
	cmd = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(cmd), "help"))
	head, args := splitCommand(cmd)
	raw, err := c.doRaw(ctx, http.MethodGet, commandPath(head), Params(args), nil, "text/plain")
	if err != nil {
		return nil, err
	}
	return commandLines(string(raw), true), nil
}

// CommandsPost executes a command via POST and returns the "data" member
// of the structured reply.
func (c *Client) CommandsPost(ctx context.Context, cmd string) (any, error) {
	head, args := splitCommand(cmd)
	if args == nil {
		// CyREST rejects an absent body on the commands surface.
		args = map[string]string{}
	}
	raw, err := c.doRaw(ctx, http.MethodPost, commandPath(head), nil, args, "application/json")
	if err != nil {
		return nil, err
	}
	var reply struct {
		Data   any   `json:"data"`
		Errors []any `json:"errors"`
	}
	if err := json.Unmarshal(raw, &reply); err != nil {
		return nil, &RemoteError{StatusCode: http.StatusOK, Operation: commandPath(head),
			Message: "expected JSON command reply: " + err.Error()}
	}
	return reply.Data, nil
}

func commandLines(text string, dropHeader bool) []string {
	lines := regexp.MustCompile(`\n\s*`).Split(text, -1)
	if dropHeader && len(lines) > 0 {
		lines = lines[1:]
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || line == "Finished" {
			continue
		}
		out = append(out, line)
	}
	return out
}
