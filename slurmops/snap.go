package slurmops

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// slurmSnap is the snap that packages every Slurm daemon.
const slurmSnap = "slurm"

// defaultSnapChannel tracks the charmed-hpc published channel.
const defaultSnapChannel = "latest/candidate"

// snapInfo is the subset of `snap info` output the managers consume. The
// output is YAML; this mirrors how the Python library fed it straight to a
// YAML parser.
type snapInfo struct {
	// Installed is e.g. "23.11.7  (x1) 114MB classic", empty when the
	// snap is not installed
	Installed string `yaml:"installed"`
	// Services maps service names to "<mode>, <enabled>, <active>" rows
	Services map[string]string `yaml:"services"`
}

func querySnapInfo(ctx context.Context, runner Runner) (*snapInfo, error) {
	res, err := runOK(ctx, runner, "snap", "info", slurmSnap)
	if err != nil {
		return nil, err
	}
	var info snapInfo
	if err := yaml.Unmarshal([]byte(res.Stdout), &info); err != nil {
		return nil, fmt.Errorf("parse snap info output: %w", err)
	}
	return &info, nil
}

// version extracts the bare version number from the installed field.
func (i *snapInfo) version() (string, bool) {
	fields := strings.Fields(i.Installed)
	if len(fields) == 0 {
		return "", false
	}
	return fields[0], true
}

// SnapController controls one Slurm daemon packaged in the slurm snap.
type SnapController struct {
	// Service is the managed daemon
	Service Service

	runner Runner
}

var _ ServiceController = (*SnapController)(nil)

// NewSnapController returns a controller for service backed by runner
func NewSnapController(service Service, runner Runner) *SnapController {
	return &SnapController{Service: service, runner: runner}
}

func (c *SnapController) snap(ctx context.Context, op string, args ...string) error {
	full := append(append([]string{op}, args...), c.Service.snapServiceName())
	if _, err := runOK(ctx, c.runner, "snap", full...); err != nil {
		return &ServiceError{Service: c.Service.snapServiceName(), Op: op, Err: err}
	}
	return nil
}

// Start starts the service
func (c *SnapController) Start(ctx context.Context) error {
	return c.snap(ctx, "start")
}

// Stop stops the service
func (c *SnapController) Stop(ctx context.Context) error {
	return c.snap(ctx, "stop")
}

// Restart restarts the service
func (c *SnapController) Restart(ctx context.Context) error {
	return c.snap(ctx, "restart")
}

// Enable starts the service and enables it at boot
func (c *SnapController) Enable(ctx context.Context) error {
	return c.snap(ctx, "start", "--enable")
}

// Disable stops the service and disables it at boot
func (c *SnapController) Disable(ctx context.Context) error {
	return c.snap(ctx, "stop", "--disable")
}

// IsActive reports whether the service is running, from the services
// table of `snap info`.
func (c *SnapController) IsActive(ctx context.Context) (bool, error) {
	name := c.Service.snapServiceName()
	info, err := querySnapInfo(ctx, c.runner)
	if err != nil {
		return false, &ServiceError{Service: name, Op: "is-active", Err: err}
	}
	state, ok := info.Services[name]
	if !ok {
		return false, &ServiceError{
			Service: name, Op: "is-active",
			Err: fmt.Errorf("service not reported by snap info %s: %w", slurmSnap, ErrNotInstalled),
		}
	}
	// "inactive" would also substring-match "active"; test for the
	// negative state.
	return !strings.Contains(state, "inactive"), nil
}

// snapInstaller installs the slurm snap.
type snapInstaller struct {
	runner Runner
}

var _ installer = (*snapInstaller)(nil)

func (s *snapInstaller) Installed(ctx context.Context) (bool, error) {
	info, err := querySnapInfo(ctx, s.runner)
	if err != nil {
		// An unknown snap also exits non-zero; that is "not installed",
		// not a failure.
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) {
			return false, nil
		}
		return false, err
	}
	return info.Installed != "", nil
}

func (s *snapInstaller) InstalledVersion(ctx context.Context) (string, error) {
	info, err := querySnapInfo(ctx, s.runner)
	if err != nil {
		return "", err
	}
	v, ok := info.version()
	if !ok {
		return "", ErrNotInstalled
	}
	return v, nil
}

func (s *snapInstaller) Install(ctx context.Context, version string) error {
	channel := version
	if channel == "" {
		channel = defaultSnapChannel
	}
	_, err := runOK(ctx, s.runner, "snap",
		"install", slurmSnap, "--classic", "--channel", channel)
	return err
}

func (s *snapInstaller) Upgrade(ctx context.Context, version string) error {
	args := []string{"refresh", slurmSnap, "--classic"}
	if version != "" {
		args = append(args, "--channel", version)
	}
	_, err := runOK(ctx, s.runner, "snap", args...)
	return err
}
