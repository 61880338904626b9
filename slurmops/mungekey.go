package slurmops

import (
	"context"
)

// MungeManager manages the munge authentication key shared by every node
// in the cluster, through the mungectl helper (slurm.mungectl when Slurm
// is snap-installed).
type MungeManager struct {
	command string
	runner  Runner
}

// NewMungeManager returns a MungeManager for the given install method
func NewMungeManager(method InstallMethod, runner Runner) *MungeManager {
	command := "mungectl"
	if method == MethodSnap {
		command = "slurm.mungectl"
	}
	return &MungeManager{command: command, runner: runner}
}

// Key returns the current munge key, base64 encoded
func (m *MungeManager) Key(ctx context.Context) (string, error) {
	res, err := runOK(ctx, m.runner, m.command, "key", "get")
	if err != nil {
		return "", &ServiceError{Service: "munge", Op: "key get", Err: err}
	}
	return res.Stdout, nil
}

// SetKey installs a new base64-encoded munge key, passed over stdin so it
// never appears in the process table.
func (m *MungeManager) SetKey(ctx context.Context, key string) error {
	if _, err := runInputOK(ctx, m.runner, key, m.command, "key", "set"); err != nil {
		return &ServiceError{Service: "munge", Op: "key set", Err: err}
	}
	return nil
}

// GenerateKey generates a new cryptographically secure munge key on the
// host.
func (m *MungeManager) GenerateKey(ctx context.Context) error {
	if _, err := runOK(ctx, m.runner, m.command, "key", "generate"); err != nil {
		return &ServiceError{Service: "munge", Op: "key generate", Err: err}
	}
	return nil
}
