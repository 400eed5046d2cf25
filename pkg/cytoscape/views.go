package cytoscape

import (
	"context"
	"fmt"
	"strings"

	"github.com/cytoscape/cyrest-go/internal/metrics"
)

// CreateView creates a view for a network that has none and returns the
// view's SUID. layout controls whether the preferred layout runs on the
// new view.
func (c *Client) CreateView(ctx context.Context, network NetworkRef, layout bool) (int64, error) {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return 0, err
	}
	views, err := c.GetNetworkViews(ctx, NetworkBySUID(suid))
	if err != nil {
		return 0, err
	}
	if len(views) > 0 {
		return views[0], nil
	}
	_, err = c.rest.CommandsPost(ctx,
		fmt.Sprintf(`view create network="SUID:%d" layout=%t`, suid, layout))
	if err != nil {
		return 0, err
	}
	return c.GetNetworkViewSUID(ctx, NetworkBySUID(suid))
}

// GetNetworkViews lists the view SUIDs of a network.
func (c *Client) GetNetworkViews(ctx context.Context, network NetworkRef) ([]int64, error) {
	suid, err := c.resolveNetwork(ctx, network)
	if err != nil {
		return nil, err
	}
	var views []int64
	if err := c.rest.GetInto(ctx, fmt.Sprintf("networks/%d/views", suid), nil, &views); err != nil {
		return nil, err
	}
	return views, nil
}

// GetNetworkViewSUID returns a network's view SUID. Cytoscape networks
// have at most one view in practice; a network with none is an error.
func (c *Client) GetNetworkViewSUID(ctx context.Context, network NetworkRef) (int64, error) {
	views, err := c.GetNetworkViews(ctx, network)
	if err != nil {
		return 0, err
	}
	if len(views) == 0 {
		return 0, notFound("view", "network has no view")
	}
	return views[0], nil
}

// SetCurrentView brings a network's view to the front.
func (c *Client) SetCurrentView(ctx context.Context, network NetworkRef) error {
	view, err := c.GetNetworkViewSUID(ctx, network)
	if err != nil {
		return err
	}
	_, err = c.rest.CommandsPost(ctx, fmt.Sprintf(`view set current view="SUID:%d"`, view))
	return err
}

// FitContent zooms and pans a view so its content fills the window.
// selectedOnly fits only the selected nodes.
func (c *Client) FitContent(ctx context.Context, network NetworkRef, selectedOnly bool) error {
	view, err := c.GetNetworkViewSUID(ctx, network)
	if err != nil {
		return err
	}
	cmd := fmt.Sprintf(`view fit content view="SUID:%d"`, view)
	if selectedOnly {
		cmd = fmt.Sprintf(`view fit selected view="SUID:%d"`, view)
	}
	_, err = c.rest.CommandsPost(ctx, cmd)
	return err
}

// ImageOptions tunes ExportImage. The zero value exports PNG at the
// current view size.
type ImageOptions struct {
	Format     string // PNG, JPEG, PDF, SVG, PS
	Resolution int    // DPI, bitmap formats with inch units only
	Units      string // pixels or inches
	Height     float64
	Width      float64
	Zoom       float64
	Overwrite  bool
}

// ExportImage renders a network view to an image file on the Cytoscape
// workstation and returns the file's absolute path there. The format
// extension is appended when missing.
func (c *Client) ExportImage(ctx context.Context, network NetworkRef, filename string, opts ImageOptions) (string, error) {
	done := metrics.TimeOp("export_image")
	path, err := c.exportImage(ctx, network, filename, opts)
	done(err == nil)
	return path, err
}

func (c *Client) exportImage(ctx context.Context, network NetworkRef, filename string, opts ImageOptions) (string, error) {
	if opts.Format == "" {
		opts.Format = "PNG"
	}
	view, err := c.GetNetworkViewSUID(ctx, network)
	if err != nil {
		return "", err
	}
	if filename == "" {
		suid, err := c.resolveNetwork(ctx, network)
		if err != nil {
			return "", err
		}
		if filename, err = c.GetNetworkName(ctx, suid); err != nil {
			return "", err
		}
	}
	ext := "." + strings.ToLower(opts.Format)
	if !strings.HasSuffix(strings.ToLower(filename), ext) {
		filename += ext
	}

	info, err := c.SandboxGetFileInfo(ctx, filename)
	if err != nil {
		return "", err
	}
	if info.IsFile {
		if !opts.Overwrite {
			return "", validationf("file %q already exists", filename)
		}
		if err := c.SandboxRemoveFile(ctx, filename); err != nil {
			return "", err
		}
	}

	cmd := "view export"
	if opts.Resolution != 0 {
		cmd += fmt.Sprintf(` Resolution="%d"`, opts.Resolution)
	}
	if opts.Units != "" {
		cmd += fmt.Sprintf(` Units="%s"`, opts.Units)
	}
	if opts.Height != 0 {
		cmd += fmt.Sprintf(` Height="%v"`, opts.Height)
	}
	if opts.Width != 0 {
		cmd += fmt.Sprintf(` Width="%v"`, opts.Width)
	}
	if opts.Zoom != 0 {
		cmd += fmt.Sprintf(` Zoom="%v"`, opts.Zoom)
	}
	cmd += fmt.Sprintf(` OutputFile="%s" options="%s" view="SUID:%d"`,
		info.FilePath, strings.ToUpper(opts.Format), view)

	res, err := c.rest.CommandsPost(ctx, cmd)
	if err != nil {
		return "", err
	}
	if path, ok := mapStr(asMap(res), "file"); ok {
		return path, nil
	}
	return info.FilePath, nil
}

// ToggleGraphicsDetails flips the show-graphics-details setting of the
// rendering engine.
func (c *Client) ToggleGraphicsDetails(ctx context.Context) error {
	_, err := c.rest.Put(ctx, "ui/lod", nil, nil, true)
	return err
}
