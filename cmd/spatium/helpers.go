package main

import (
	"github.com/spatium-net/spatium/pkg/cli"
	"github.com/spatium-net/spatium/pkg/deploy"
)

// deployService builds the deployment service from the loaded settings.
// Fails when the containerlab binary is not on PATH.
func deployService() (*deploy.Service, error) {
	return deploy.NewService(cfg.TopologyDir, cfg.ClabBin, cfg.ClabTimeout)
}

// Color helpers — delegate to pkg/cli
func green(s string) string  { return cli.Green(s) }
func yellow(s string) string { return cli.Yellow(s) }
func red(s string) string    { return cli.Red(s) }
