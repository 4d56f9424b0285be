package assistctl

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// printStatus renders daemon health plus per-service model status.
func printStatus(ctx context.Context, c *Client) error {
	health, err := c.Health(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("daemon %s (version %s)\n", health.Status, health.Version)

	status, err := c.Status(ctx)
	if err != nil {
		return err
	}
	dl, err := c.DownloadStatus(ctx)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(status))
	for name := range status {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		svc := status[name]
		line := fmt.Sprintf("%-12s %s", name, svc.Status)
		if d, ok := dl[name]; ok {
			if d.Downloading {
				line += " (downloading)"
			} else if !d.Installed {
				line += " (deps missing)"
			}
		}
		if svc.Error != "" {
			line += " error: " + svc.Error
		}
		fmt.Println(line)
	}
	return nil
}

// downloadService triggers a dependency install on the daemon. Install
// failures arrive in the response body with a 200 status, so the body
// flag decides the exit code.
func downloadService(ctx context.Context, c *Client, service string) error {
	info("Requesting install of %s", service)
	resp, err := c.Download(ctx, service)
	if err != nil {
		return err
	}
	if !resp.Success {
		return errors.New(resp.Message)
	}
	info("%s", resp.Message)
	return nil
}
