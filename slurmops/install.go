package slurmops

import (
	"context"
	"strings"
)

// InstallMethod selects the mechanism by which Slurm is installed on the
// host.
type InstallMethod int

const (
	// MethodUnknown means no method was specified
	MethodUnknown InstallMethod = iota
	// MethodSnap installs the self-contained slurm snap
	MethodSnap
	// MethodAPT installs distro packages through apt
	MethodAPT
)

// InstallMethod string constants
const (
	methodUnknownStr = "unknown"
	methodSnapStr    = "snap"
	methodAPTStr     = "apt"
)

// String returns the string representation of InstallMethod
func (m InstallMethod) String() string {
	switch m {
	case MethodSnap:
		return methodSnapStr
	case MethodAPT:
		return methodAPTStr
	case MethodUnknown:
		fallthrough
	default:
		return methodUnknownStr
	}
}

// InstallSpec describes a desired installation.
type InstallSpec struct {
	// Method is the installation backend. The zero value inherits the
	// manager's configured method.
	Method InstallMethod
	// Version constrains what gets installed: a channel for snap, a
	// package version pin for apt. Empty installs the default.
	Version string
}

// installer is the per-backend installation contract.
type installer interface {
	// Installed reports whether the component is present at all
	Installed(ctx context.Context) (bool, error)
	// InstalledVersion returns the installed version string
	InstalledVersion(ctx context.Context) (string, error)
	// Install performs the initial installation
	Install(ctx context.Context, version string) error
	// Upgrade moves an existing installation to the requested version
	Upgrade(ctx context.Context, version string) error
}

// versionSatisfies reports whether the installed version meets the
// requested constraint. Snap channel pins and apt revision suffixes mean
// an exact byte comparison is too strict; a prefix match on the installed
// version is the verification the backends can support.
func versionSatisfies(installed, requested string) bool {
	if requested == "" {
		return true
	}
	// A snap channel pin cannot be compared to a version number; presence
	// satisfies it.
	if strings.Contains(requested, "/") {
		return true
	}
	return strings.HasPrefix(installed, requested)
}
