package apptype

// HealthArgs has no parameters.
type HealthArgs struct{}

// HealthResult reports server and remote Cytoscape information.
type HealthResult struct {
	Name             string `json:"name"`
	Version          string `json:"version"`
	APIVersion       string `json:"apiVersion"`
	CytoscapeVersion string `json:"cytoscapeVersion"`
}

// OpenSessionArgs represents the arguments for the open_session tool.
type OpenSessionArgs struct {
	File string `json:"file" jsonschema:"Path or URL of the .cys session file to open."`
}

// SaveSessionArgs represents the arguments for the save_session tool.
type SaveSessionArgs struct {
	File string `json:"file,omitempty" jsonschema:"File to save the session to. Empty re-saves the current session file."`
}

// CloseSessionArgs represents the arguments for the close_session tool.
type CloseSessionArgs struct {
	Save bool   `json:"save,omitempty" jsonschema:"Whether to save before closing."`
	File string `json:"file,omitempty" jsonschema:"File to save to when save is true."`
}

// ImportNetworkArgs represents the arguments for the import_network tool.
type ImportNetworkArgs struct {
	File string `json:"file" jsonschema:"Network file to load (SIF, GML, XGMML, ...)."`
}

// CreateNetworkArgs represents the arguments for the create_network tool.
type CreateNetworkArgs struct {
	Title      string    `json:"title" jsonschema:"Title of the new network."`
	Collection string    `json:"collection,omitempty" jsonschema:"Collection to create the network in."`
	Nodes      []string  `json:"nodes" jsonschema:"Node names."`
	Edges      []EdgeArg `json:"edges,omitempty" jsonschema:"Edges between the named nodes."`
}

// NetworkResult identifies a network created or imported by a tool.
type NetworkResult struct {
	SUID int64  `json:"suid"`
	Name string `json:"name"`
}

// ListNetworksArgs has no parameters.
type ListNetworksArgs struct{}

// NetworkListResult is the result of the list_networks tool.
type NetworkListResult struct {
	Networks []NetworkSummary `json:"networks"`
}

// ApplyLayoutArgs represents the arguments for the apply_layout tool.
type ApplyLayoutArgs struct {
	NetworkArgs
	Name string `json:"name,omitempty" jsonschema:"Layout algorithm name. Empty applies the preferred layout."`
}

// ExportImageArgs represents the arguments for the export_image tool.
type ExportImageArgs struct {
	NetworkArgs
	File      string  `json:"file,omitempty" jsonschema:"Output file name. Defaults to the network title."`
	Format    string  `json:"format,omitempty" jsonschema:"PNG, JPEG, PDF, SVG or PS (default PNG)."`
	Zoom      float64 `json:"zoom,omitempty" jsonschema:"Zoom percentage for bitmap formats."`
	Overwrite bool    `json:"overwrite,omitempty" jsonschema:"Replace the file if it already exists."`
}

// ExportImageResult reports where the image landed.
type ExportImageResult struct {
	File string `json:"file"`
}

// SelectNodesArgs represents the arguments for the select_nodes tool.
type SelectNodesArgs struct {
	NetworkArgs
	Nodes    []string `json:"nodes" jsonschema:"Node names to select."`
	Preserve bool     `json:"preserve,omitempty" jsonschema:"Keep the current selection instead of replacing it."`
}

// SelectionResult reports how many nodes and edges ended up selected.
type SelectionResult struct {
	Nodes int `json:"nodes"`
	Edges int `json:"edges"`
}

// CreateColumnFilterArgs represents the arguments for the
// create_column_filter tool.
type CreateColumnFilterArgs struct {
	Name      string    `json:"name" jsonschema:"Name to register the filter under."`
	Column    string    `json:"column" jsonschema:"Table column the filter tests."`
	Predicate string    `json:"predicate,omitempty" jsonschema:"IS, IS_NOT, CONTAINS, BETWEEN, GREATER_THAN, ... (default IS)."`
	Value     string    `json:"value,omitempty" jsonschema:"Criterion for string predicates."`
	Range     []float64 `json:"range,omitempty" jsonschema:"Two-element numeric range for BETWEEN predicates."`
	Edges     bool      `json:"edges,omitempty" jsonschema:"Filter the edge table instead of the node table."`
}

// ApplyFilterArgs represents the arguments for the apply_filter tool.
type ApplyFilterArgs struct {
	NetworkArgs
	Name string `json:"name" jsonschema:"Name of the filter to apply."`
}

// FilterSelection reports the node and edge names a filter selected.
type FilterSelection struct {
	Nodes []string `json:"nodes"`
	Edges []string `json:"edges"`
}
