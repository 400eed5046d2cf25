// integration-tester drives a running cyrest-mcp server end to end over
// SSE and prints a JSON report. It needs a live Cytoscape behind the
// server, so it lives outside the test suite.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cytoscape/cyrest-go/internal/apptype"
	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type StepResult struct {
	Name      string `json:"name"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

type Report struct {
	SSEURL     string       `json:"sse_url"`
	StartedAt  time.Time    `json:"started_at"`
	DurationMs int64        `json:"duration_ms"`
	Steps      []StepResult `json:"steps"`
	Passed     bool         `json:"passed"`
}

func main() {
	sseURL := flag.String("sse-url", "http://localhost:8080/sse", "SSE endpoint URL")
	timeout := flag.Duration("timeout", 60*time.Second, "Overall timeout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := mcp.NewClient(&mcp.Implementation{Name: "integration-tester", Version: "dev"}, nil)
	transport := mcp.NewSSEClientTransport(*sseURL, nil)

	start := time.Now()
	report := Report{SSEURL: *sseURL, StartedAt: start}
	steps := make([]StepResult, 0, 16)

	// Connect
	tConn := time.Now()
	connRes := StepResult{Name: "connect"}
	session, err := client.Connect(ctx, transport)
	if err != nil {
		connRes.Success = false
		connRes.Error = err.Error()
		connRes.ElapsedMs = elapsedMsSince(tConn)
		steps = append(steps, connRes)
		report.Steps = steps
		report.DurationMs = elapsedMsSince(start)
		report.Passed = false
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(report)
		os.Exit(1)
	}
	defer session.Close()
	connRes.Success = true
	connRes.ElapsedMs = elapsedMsSince(tConn)
	steps = append(steps, connRes)

	// Session-unique names keep reruns against the same Cytoscape clean.
	title := "itest-" + uuid.NewString()[:8]
	filterName := "itest-filter-" + uuid.NewString()[:8]

	steps = append(steps, runListTools(ctx, session))
	steps = append(steps, runStep(ctx, session, "health_check", apptype.HealthArgs{}))
	steps = append(steps, runCreateNetwork(ctx, session, title))
	steps = append(steps, runStep(ctx, session, "list_networks", apptype.ListNetworksArgs{}))
	steps = append(steps, runStep(ctx, session, "select_nodes", apptype.SelectNodesArgs{
		NetworkArgs: apptype.NetworkArgs{Network: title},
		Nodes:       []string{"a", "b"},
	}))
	steps = append(steps, runStep(ctx, session, "apply_layout", apptype.ApplyLayoutArgs{
		NetworkArgs: apptype.NetworkArgs{Network: title},
		Name:        "grid",
	}))
	steps = append(steps, runStep(ctx, session, "create_column_filter", apptype.CreateColumnFilterArgs{
		Name:   filterName,
		Column: "name",
		Value:  "a",
	}))
	steps = append(steps, runStep(ctx, session, "apply_filter", apptype.ApplyFilterArgs{
		NetworkArgs: apptype.NetworkArgs{Network: title},
		Name:        filterName,
	}))
	steps = append(steps, runStep(ctx, session, "export_image", apptype.ExportImageArgs{
		NetworkArgs: apptype.NetworkArgs{Network: title},
		File:        title,
		Overwrite:   true,
	}))

	// finalize report
	report.Steps = steps
	report.DurationMs = elapsedMsSince(start)
	report.Passed = true
	for _, s := range steps {
		if !s.Success {
			report.Passed = false
			break
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(report)

	if !report.Passed {
		os.Exit(1)
	}
}

func runListTools(ctx context.Context, session *mcp.ClientSession) StepResult {
	t0 := time.Now()
	res := StepResult{Name: "list_tools"}
	if _, err := session.ListTools(ctx, &mcp.ListToolsParams{}); err != nil {
		res.Success = false
		res.Error = err.Error()
	} else {
		res.Success = true
	}
	res.ElapsedMs = elapsedMsSince(t0)
	return res
}

func runCreateNetwork(ctx context.Context, session *mcp.ClientSession, title string) StepResult {
	t0 := time.Now()
	res := StepResult{Name: "create_network"}
	args := apptype.CreateNetworkArgs{
		Title: title,
		Nodes: []string{"a", "b", "c", "d"},
		Edges: []apptype.EdgeArg{
			{Source: "a", Target: "b"},
			{Source: "b", Target: "c"},
			{Source: "a", Target: "d", Interaction: "activates"},
		},
	}
	raw, _ := json.Marshal(args)
	if _, err := session.CallTool(ctx, &mcp.CallToolParams{Name: "create_network", Arguments: json.RawMessage(raw)}); err != nil {
		res.Success = false
		res.Error = fmt.Sprintf("create_network %s: %v", title, err)
	} else {
		res.Success = true
	}
	res.ElapsedMs = elapsedMsSince(t0)
	return res
}

func runStep(ctx context.Context, session *mcp.ClientSession, tool string, args any) StepResult {
	t0 := time.Now()
	res := StepResult{Name: tool}
	raw, _ := json.Marshal(args)
	_, err := session.CallTool(ctx, &mcp.CallToolParams{Name: tool, Arguments: json.RawMessage(raw)})
	if err != nil {
		res.Success = false
		res.Error = err.Error()
	} else {
		res.Success = true
	}
	res.ElapsedMs = elapsedMsSince(t0)
	return res
}

// elapsedMsSince returns max(1ms, elapsed) to avoid zero durations on fast steps
func elapsedMsSince(t0 time.Time) int64 {
	d := time.Since(t0) / time.Millisecond
	if d <= 0 {
		return 1
	}
	return int64(d)
}
