package cyrest

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

// VersionInfo is the reply from the CyREST version endpoint.
type VersionInfo struct {
	APIVersion       string `json:"apiVersion"`
	CytoscapeVersion string `json:"cytoscapeVersion"`
}

// Version fetches the running CyREST API and Cytoscape versions.
func (c *Client) Version(ctx context.Context) (*VersionInfo, error) {
	var v VersionInfo
	if err := c.GetInto(ctx, "version", nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// ServerStatus is the reply from the versioned API root: runtime facts
// about the Cytoscape process.
type ServerStatus struct {
	APIVersion    string           `json:"apiVersion"`
	NumberOfCores int              `json:"numberOfCores"`
	MemoryStatus  map[string]int64 `json:"memoryStatus"`
}

// Status fetches core count and JVM memory usage.
func (c *Client) Status(ctx context.Context) (*ServerStatus, error) {
	var s ServerStatus
	if err := c.GetInto(ctx, "", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// AvailableAPIVersions asks the server root (outside the versioned
// base) which API versions it serves.
func (c *Client) AvailableAPIVersions(ctx context.Context) ([]string, error) {
	raw, err := c.doRawURL(ctx, "GET", "(root)", c.RootURL(), nil, "")
	if err != nil {
		return nil, err
	}
	var res struct {
		AvailableAPIVersions []string `json:"availableApiVersions"`
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, &RemoteError{StatusCode: 200, Operation: "(root)",
			Message: "expected JSON response: " + err.Error()}
	}
	return res.AvailableAPIVersions, nil
}

var (
	apiVersionRE = regexp.MustCompile(`^v([0-9]+)$`)
	cyVersionRE  = regexp.MustCompile(`^([0-9]+\.[0-9]+)\..*$`)
)

// VerifySupportedVersions checks that the remote CyREST API and Cytoscape
// versions are at or above the given floors, failing with a
// CompatibilityError otherwise. Called at the start of a session so
// incompatible deployments fail fast.
func (c *Client) VerifySupportedVersions(ctx context.Context, minAPI int, minCytoscape float64) error {
	v, err := c.Version(ctx)
	if err != nil {
		return err
	}

	m := apiVersionRE.FindStringSubmatch(v.APIVersion)
	if m == nil {
		return &CompatibilityError{Component: "CyREST API",
			Required: fmt.Sprintf("v%d", minAPI), Actual: v.APIVersion}
	}
	apiNum, _ := strconv.Atoi(m[1])
	if apiNum < minAPI {
		return &CompatibilityError{Component: "CyREST API",
			Required: fmt.Sprintf("v%d", minAPI), Actual: v.APIVersion}
	}

	m = cyVersionRE.FindStringSubmatch(v.CytoscapeVersion)
	if m == nil {
		return &CompatibilityError{Component: "Cytoscape",
			Required: fmt.Sprintf("%.2g", minCytoscape), Actual: v.CytoscapeVersion}
	}
	cyNum, _ := strconv.ParseFloat(m[1], 64)
	if cyNum < minCytoscape {
		return &CompatibilityError{Component: "Cytoscape",
			Required: fmt.Sprintf("%.2g", minCytoscape), Actual: v.CytoscapeVersion}
	}
	return nil
}
