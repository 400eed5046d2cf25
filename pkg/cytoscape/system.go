package cytoscape

import "context"

// APIVersions lists the CyREST API versions the instance serves.
func (c *Client) APIVersions(ctx context.Context) ([]string, error) {
	return c.rest.AvailableAPIVersions(ctx)
}

// NumberOfCores reports how many CPU cores Cytoscape sees.
func (c *Client) NumberOfCores(ctx context.Context) (int, error) {
	status, err := c.rest.Status(ctx)
	if err != nil {
		return 0, err
	}
	return status.NumberOfCores, nil
}

// MemoryStatus reports the JVM memory pools (used, free, total, max) in
// megabytes.
func (c *Client) MemoryStatus(ctx context.Context) (map[string]int64, error) {
	status, err := c.rest.Status(ctx)
	if err != nil {
		return nil, err
	}
	return status.MemoryStatus, nil
}

// FreeMemory asks the Cytoscape JVM to run garbage collection. The
// reply body is empty.
func (c *Client) FreeMemory(ctx context.Context) error {
	_, err := c.rest.Get(ctx, "gc", nil, false)
	return err
}
