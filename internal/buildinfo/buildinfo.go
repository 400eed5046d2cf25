// Package buildinfo carries version constants stamped at release time.
package buildinfo

// Version is the library release version.
var Version = "0.1.0"

// MinAPIVersion is the lowest CyREST API major version this client supports.
const MinAPIVersion = 1

// MinCytoscapeVersion is the lowest Cytoscape major.minor this client supports.
const MinCytoscapeVersion = 3.6
