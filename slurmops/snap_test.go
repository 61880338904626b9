package slurmops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slurmSnapInfo mirrors real `snap info slurm` output for an installed
// snap.
const slurmSnapInfo = `name:      slurm
summary:   "Slurm: A Highly Scalable Workload Manager"
publisher: canonical
store-url: https://snapcraft.io/slurm
license:   Apache-2.0
description: |
    Slurm is an open source, fault-tolerant, and highly scalable cluster
    management and job scheduling system for large and small Linux clusters.
commands:
    - slurm.mungectl
services:
    slurm.logrotate:  oneshot, enabled, inactive
    slurm.munged:     simple, enabled, active
    slurm.slurmctld:  simple, disabled, active
    slurm.slurmd:     simple, enabled, active
    slurm.slurmdbd:   simple, disabled, inactive
    slurm.slurmrestd: simple, disabled, active
channels:
    latest/stable:    23.11.7 2024-06-26 (460) 114MB classic
    latest/candidate: 23.11.7 2024-06-26 (460) 114MB classic
installed:          23.11.7             (x1) 114MB classic
`

// slurmSnapInfoNotInstalled is the same snap before installation: no
// installed or services fields.
const slurmSnapInfoNotInstalled = `name:      slurm
summary:   "Slurm: A Highly Scalable Workload Manager"
publisher: canonical
store-url: https://snapcraft.io/slurm
license:   Apache-2.0
channels:
    latest/stable:    23.11.7 2024-06-26 (460) 114MB classic
    latest/candidate: 23.11.7 2024-06-26 (460) 114MB classic
`

func snapInfoRunner(output string) *fakeRunner {
	return &fakeRunner{
		handle: func(c recordedCall) (Result, error) {
			if c.name == "snap" && len(c.args) > 0 && c.args[0] == "info" {
				return Result{Stdout: output}, nil
			}
			return Result{}, nil
		},
	}
}

func TestSnapControllerCommands(t *testing.T) {
	tests := []struct {
		name string
		op   func(c *SnapController, ctx context.Context) error
		want string
	}{
		{"start", (*SnapController).Start, "snap start slurm.slurmd"},
		{"stop", (*SnapController).Stop, "snap stop slurm.slurmd"},
		{"restart", (*SnapController).Restart, "snap restart slurm.slurmd"},
		{"enable", (*SnapController).Enable, "snap start --enable slurm.slurmd"},
		{"disable", (*SnapController).Disable, "snap stop --disable slurm.slurmd"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			runner := &fakeRunner{}
			c := NewSnapController(Slurmd, runner)

			require.NoError(t, tc.op(c, context.Background()))
			assert.Equal(t, tc.want, runner.last().line())
		})
	}
}

func TestSnapControllerIsActive(t *testing.T) {
	runner := snapInfoRunner(slurmSnapInfo)

	active, err := NewSnapController(Slurmctld, runner).IsActive(context.Background())
	require.NoError(t, err)
	assert.True(t, active)

	// "inactive" also contains "active"; make sure the negative state is
	// what gets tested.
	active, err = NewSnapController(Slurmdbd, runner).IsActive(context.Background())
	require.NoError(t, err)
	assert.False(t, active)
}

func TestSnapControllerIsActiveNotInstalled(t *testing.T) {
	runner := snapInfoRunner(slurmSnapInfoNotInstalled)

	_, err := NewSnapController(Slurmctld, runner).IsActive(context.Background())
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.ErrorIs(t, err, ErrNotInstalled)
}

func TestSnapInstallerInstalled(t *testing.T) {
	installed, err := (&snapInstaller{runner: snapInfoRunner(slurmSnapInfo)}).
		Installed(context.Background())
	require.NoError(t, err)
	assert.True(t, installed)

	installed, err = (&snapInstaller{runner: snapInfoRunner(slurmSnapInfoNotInstalled)}).
		Installed(context.Background())
	require.NoError(t, err)
	assert.False(t, installed)
}

func TestSnapInstallerInstalledUnknownSnap(t *testing.T) {
	// `snap info` exits non-zero for a snap the store does not know.
	runner := &fakeRunner{
		handle: func(recordedCall) (Result, error) {
			return Result{ExitCode: 1, Stderr: `error: no snap found for "slurm"`}, nil
		},
	}

	installed, err := (&snapInstaller{runner: runner}).Installed(context.Background())
	require.NoError(t, err)
	assert.False(t, installed)
}

func TestSnapInstallerVersion(t *testing.T) {
	version, err := (&snapInstaller{runner: snapInfoRunner(slurmSnapInfo)}).
		InstalledVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "23.11.7", version)

	_, err = (&snapInstaller{runner: snapInfoRunner(slurmSnapInfoNotInstalled)}).
		InstalledVersion(context.Background())
	assert.ErrorIs(t, err, ErrNotInstalled)
}

func TestSnapInstallerInstallCommand(t *testing.T) {
	runner := &fakeRunner{}
	inst := &snapInstaller{runner: runner}

	require.NoError(t, inst.Install(context.Background(), ""))
	assert.Equal(t,
		"snap install slurm --classic --channel latest/candidate",
		runner.last().line())

	require.NoError(t, inst.Install(context.Background(), "23.11/stable"))
	assert.Equal(t,
		"snap install slurm --classic --channel 23.11/stable",
		runner.last().line())

	require.NoError(t, inst.Upgrade(context.Background(), "23.11/stable"))
	assert.Equal(t,
		"snap refresh slurm --classic --channel 23.11/stable",
		runner.last().line())
}
