// Package apptype holds the argument and result types of the MCP tool
// surface. Keeping them in one package lets the server derive JSON
// schemas and the integration tester share the same shapes.
package apptype

// NetworkArgs provides a standard way to address a network in tools.
// An empty reference means the current network; a decimal string is
// treated as an SUID, anything else as a network title.
type NetworkArgs struct {
	Network string `json:"network,omitempty" jsonschema:"Network to operate on: a title, an SUID, or empty for the current network."`
}

// NetworkSummary describes one network.
type NetworkSummary struct {
	SUID  int64  `json:"suid"`
	Name  string `json:"name"`
	Nodes int    `json:"nodes"`
	Edges int    `json:"edges"`
}

// EdgeArg is one edge in a create_network request.
type EdgeArg struct {
	Source      string `json:"source" jsonschema:"Name of the source node."`
	Target      string `json:"target" jsonschema:"Name of the target node."`
	Interaction string `json:"interaction,omitempty" jsonschema:"Interaction type (default 'interacts with')."`
}
