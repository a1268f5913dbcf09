package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/questlog/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup writes a starter config.toml the user can fill in with their server
// address and token.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	r.logger.Infof("creating config file at %v", configPath)

	if err := shared.CreateConfigFile(configPath); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidConfig, err)
	}

	r.writePlain("✓ Created %s\n", configPath)
	r.writePlain("Edit it to point at your backlog server, then run `questlog auth status`.\n")
	return nil
}

// AuthStatus checks backend reachability by calling the health endpoint.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("checking auth status")

	if err := r.svc.Health(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}

	r.writePlain("✓ Service is healthy\n")
	if r.config.Server.Token != "" {
		r.writePlain("Authentication: ✓ Token configured\n")
	} else {
		r.writePlain("Authentication: ✗ No token configured\n")
	}
	return nil
}
