package slurmops

import (
	"context"
	"fmt"
	"strings"
)

// aptInstaller installs a Slurm daemon and its helper packages from the
// distro archive.
type aptInstaller struct {
	service Service
	runner  Runner
}

var _ installer = (*aptInstaller)(nil)

// Installed reports whether the daemon's main package is installed.
// dpkg-query exits non-zero for unknown packages; that is a clean "not
// installed".
func (a *aptInstaller) Installed(ctx context.Context) (bool, error) {
	res, err := a.runner.Run(ctx, "dpkg-query",
		"--show", "--showformat=${Status}", a.service.String())
	if err != nil {
		return false, err
	}
	if res.ExitCode != 0 {
		return false, nil
	}
	return strings.Contains(res.Stdout, "install ok installed"), nil
}

func (a *aptInstaller) InstalledVersion(ctx context.Context) (string, error) {
	res, err := a.runner.Run(ctx, "dpkg-query",
		"--show", "--showformat=${Version}", a.service.String())
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 || res.Stdout == "" {
		return "", fmt.Errorf("%s: %w", a.service, ErrNotInstalled)
	}
	return res.Stdout, nil
}

// Install installs the daemon's package set non-interactively. A version
// pin applies to the main package only; helpers track the archive.
func (a *aptInstaller) Install(ctx context.Context, version string) error {
	packages := a.service.aptPackages()
	if version != "" && len(packages) > 0 {
		packages = append([]string{packages[0] + "=" + version}, packages[1:]...)
	}

	args := append([]string{"install", "--assume-yes"}, packages...)
	_, err := runOK(ctx, a.runner, "apt-get", args...)
	return err
}

// Upgrade reinstalls at the pinned version. apt handles an equal version
// as a no-op.
func (a *aptInstaller) Upgrade(ctx context.Context, version string) error {
	return a.Install(ctx, version)
}
