package slurmops

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors returned by slurmops operations
var (
	// ErrNotInstalled indicates the requested Slurm component is not installed
	ErrNotInstalled = errors.New("slurmops: not installed")

	// ErrUnknownSection indicates a configuration section with no known file
	ErrUnknownSection = errors.New("slurmops: unknown configuration section")

	// ErrMethodConflict indicates an InstallSpec whose method disagrees with
	// the manager's configured backend
	ErrMethodConflict = errors.New("slurmops: install method conflicts with manager backend")
)

// CommandError captures a failed external command invocation.
type CommandError struct {
	// Cmd is the full command line that was executed
	Cmd string
	// ExitCode is the command's exit status
	ExitCode int
	// Stderr is the captured standard error output
	Stderr string
}

// Error returns a formatted error message
func (e *CommandError) Error() string {
	msg := fmt.Sprintf("command %q exited %d", e.Cmd, e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

// InstallError represents a failed package acquisition or installation
type InstallError struct {
	// Method is the installation backend that failed
	Method InstallMethod
	// Err is the underlying error
	Err error
}

// Error returns a formatted error message
func (e *InstallError) Error() string {
	return fmt.Sprintf("slurmops install %s: %v", e.Method, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *InstallError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration file that could not be read,
// written, or parsed
type ConfigError struct {
	// Path is the configuration file involved
	Path string
	// Err is the underlying error
	Err error
}

// Error returns a formatted error message
func (e *ConfigError) Error() string {
	return fmt.Sprintf("slurmops config %q: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ServiceError represents a failed init-system operation
type ServiceError struct {
	// Service is the managed unit involved
	Service string
	// Op is the operation that failed (start, stop, enable, ...)
	Op string
	// Err is the underlying error
	Err error
}

// Error returns a formatted error message
func (e *ServiceError) Error() string {
	return fmt.Sprintf("slurmops %s %s: %v", e.Op, e.Service, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *ServiceError) Unwrap() error {
	return e.Err
}
