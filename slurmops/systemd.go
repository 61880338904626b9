package slurmops

import (
	"context"
)

// SystemdController controls one systemd unit through systemctl.
type SystemdController struct {
	// Unit is the unit name without the .service suffix
	Unit string
	// SystemctlPath is the systemctl binary (default "systemctl")
	SystemctlPath string

	runner Runner
}

var _ ServiceController = (*SystemdController)(nil)

// NewSystemdController returns a controller for unit backed by runner
func NewSystemdController(unit string, runner Runner) *SystemdController {
	return &SystemdController{
		Unit:          unit,
		SystemctlPath: "systemctl",
		runner:        runner,
	}
}

func (c *SystemdController) systemctl(ctx context.Context, op string, args ...string) error {
	full := append(append([]string{op}, args...), c.Unit+".service")
	if _, err := runOK(ctx, c.runner, c.SystemctlPath, full...); err != nil {
		return &ServiceError{Service: c.Unit, Op: op, Err: err}
	}
	return nil
}

// Start starts the unit
func (c *SystemdController) Start(ctx context.Context) error {
	return c.systemctl(ctx, "start")
}

// Stop stops the unit
func (c *SystemdController) Stop(ctx context.Context) error {
	return c.systemctl(ctx, "stop")
}

// Restart restarts the unit
func (c *SystemdController) Restart(ctx context.Context) error {
	return c.systemctl(ctx, "restart")
}

// Enable enables the unit to start on boot
func (c *SystemdController) Enable(ctx context.Context) error {
	return c.systemctl(ctx, "enable")
}

// Disable disables the unit from starting on boot
func (c *SystemdController) Disable(ctx context.Context) error {
	return c.systemctl(ctx, "disable")
}

// IsActive reports whether the unit is currently active. An inactive unit
// is a valid false result, not an error: systemctl exits non-zero for
// inactive and unknown units.
func (c *SystemdController) IsActive(ctx context.Context) (bool, error) {
	res, err := c.runner.Run(ctx, c.SystemctlPath,
		"is-active", "--quiet", c.Unit+".service")
	if err != nil {
		return false, &ServiceError{Service: c.Unit, Op: "is-active", Err: err}
	}
	return res.ExitCode == 0, nil
}

// DaemonReload reloads systemd unit definitions after on-disk changes
func (c *SystemdController) DaemonReload(ctx context.Context) error {
	if _, err := runOK(ctx, c.runner, c.SystemctlPath, "daemon-reload"); err != nil {
		return &ServiceError{Service: c.Unit, Op: "daemon-reload", Err: err}
	}
	return nil
}
