package cytoscape

import (
	"context"
	"fmt"
)

// App management rides entirely on the apps command namespace of the
// App Manager.

func (c *Client) appCommand(ctx context.Context, verb, app string) (map[string]any, error) {
	res, err := c.rest.CommandsPost(ctx, fmt.Sprintf(`apps %s app="%s"`, verb, app))
	if err != nil {
		return nil, err
	}
	return asMap(res), nil
}

func (c *Client) appList(ctx context.Context, which string) ([]map[string]any, error) {
	res, err := c.rest.CommandsPost(ctx, "apps list "+which)
	if err != nil {
		return nil, err
	}
	var out []map[string]any
	for _, v := range asSlice(res) {
		if m := asMap(v); m != nil {
			out = append(out, m)
		}
	}
	return out, nil
}

// InstallApp installs an app from the Cytoscape App Store.
func (c *Client) InstallApp(ctx context.Context, app string) error {
	_, err := c.appCommand(ctx, "install", app)
	return err
}

// UninstallApp removes an installed app.
func (c *Client) UninstallApp(ctx context.Context, app string) error {
	_, err := c.appCommand(ctx, "uninstall", app)
	return err
}

// EnableApp enables a disabled app.
func (c *Client) EnableApp(ctx context.Context, app string) error {
	_, err := c.appCommand(ctx, "enable", app)
	return err
}

// DisableApp disables an installed app without uninstalling it.
func (c *Client) DisableApp(ctx context.Context, app string) error {
	_, err := c.appCommand(ctx, "disable", app)
	return err
}

// UpdateApp updates an app to its latest version.
func (c *Client) UpdateApp(ctx context.Context, app string) error {
	_, err := c.appCommand(ctx, "update", app)
	return err
}

// GetAppStatus reports whether an app is Installed, Disabled or
// Uninstalled.
func (c *Client) GetAppStatus(ctx context.Context, app string) (string, error) {
	res, err := c.appCommand(ctx, "status", app)
	if err != nil {
		return "", err
	}
	status, ok := mapStr(res, "status")
	if !ok {
		return "", notFound("app", app)
	}
	return status, nil
}

// GetInstalledApps lists the installed apps with their versions.
func (c *Client) GetInstalledApps(ctx context.Context) ([]map[string]any, error) {
	return c.appList(ctx, "installed")
}

// GetAvailableApps lists the apps available in the App Store.
func (c *Client) GetAvailableApps(ctx context.Context) ([]map[string]any, error) {
	return c.appList(ctx, "available")
}

// GetDisabledApps lists the disabled apps.
func (c *Client) GetDisabledApps(ctx context.Context) ([]map[string]any, error) {
	return c.appList(ctx, "disabled")
}

// GetAppUpdates lists the installed apps with updates available.
func (c *Client) GetAppUpdates(ctx context.Context) ([]map[string]any, error) {
	return c.appList(ctx, "updates")
}
