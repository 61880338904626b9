// Package slurmops installs, configures, and controls the Slurm workload
// manager daemons on a host, via either the slurm snap or Debian packages.
//
// The core type is Manager, one per daemon:
//
//	ctl := slurmops.New(slurmops.Slurmctld, slurmops.MethodAPT)
//
//	err := ctl.Install(ctx, slurmops.InstallSpec{Method: slurmops.MethodAPT})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = ctl.Configure("slurm", "ClusterName", "mycluster")
//	err = ctl.Enable(ctx)
//	err = ctl.Restart(ctx)
//
// Every operation is synchronous, single-attempt, and stateless between
// calls: the manager re-derives installed-package state, file contents, and
// init-system status on each call, so operations may be issued in any order
// and retried by the calling orchestration layer. The manager never retries
// internally and never runs background work; status queries are point in
// time.
//
// Configuration writes are read-merge-write: entries already present in a
// file that the caller did not name are preserved verbatim, including
// comments and Include lines. Partial application is possible when a
// multi-key operation fails midway; callers detect and remediate with
// subsequent calls.
//
// # Errors
//
// Failures surface immediately as one of three types: *InstallError for
// package acquisition, *ConfigError for configuration file access, and
// *ServiceError for init-system commands. All three wrap a *CommandError
// carrying the failed command line, exit code, and captured stderr when an
// external command was involved:
//
//	var cmdErr *slurmops.CommandError
//	if errors.As(err, &cmdErr) {
//	    log.Printf("%s exited %d: %s", cmdErr.Cmd, cmdErr.ExitCode, cmdErr.Stderr)
//	}
package slurmops
