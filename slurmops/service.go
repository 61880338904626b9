package slurmops

// Service identifies a managed Slurm daemon.
type Service int

const (
	// Slurmctld is the central management daemon
	Slurmctld Service = iota
	// Slurmd is the compute node daemon
	Slurmd
	// Slurmdbd is the accounting storage daemon
	Slurmdbd
	// Slurmrestd is the REST API daemon
	Slurmrestd
	// Sackd is the auth/credential kiosk daemon for login nodes
	Sackd
)

// String returns the daemon name
func (s Service) String() string {
	switch s {
	case Slurmctld:
		return "slurmctld"
	case Slurmd:
		return "slurmd"
	case Slurmdbd:
		return "slurmdbd"
	case Slurmrestd:
		return "slurmrestd"
	case Sackd:
		return "sackd"
	default:
		return "unknown"
	}
}

// unitName is the systemd unit controlling the daemon under a distro
// package installation.
func (s Service) unitName() string {
	return s.String()
}

// snapServiceName is the service name under the slurm snap, always
// qualified by the snap name.
func (s Service) snapServiceName() string {
	return "slurm." + s.String()
}

// defaultSection is the configuration section the daemon reads at start.
func (s Service) defaultSection() string {
	switch s {
	case Slurmdbd:
		return SectionSlurmdbd
	default:
		return SectionSlurm
	}
}

// aptPackages lists the Debian packages that provide the daemon and its
// required helpers. The sets mirror what the slurm charms deploy.
func (s Service) aptPackages() []string {
	switch s {
	case Slurmctld:
		return []string{"slurmctld", "munge", "mungectl", "libpmix-dev", "mailutils", "prometheus-slurm-exporter"}
	case Slurmd:
		return []string{"slurmd", "munge", "mungectl", "slurm-client", "libpmix-dev", "openmpi-bin"}
	case Slurmdbd:
		return []string{"slurmdbd", "munge", "mungectl"}
	case Slurmrestd:
		return []string{"slurmrestd", "munge", "mungectl", "slurm-wlm-basic-plugins"}
	case Sackd:
		return []string{"sackd", "munge", "mungectl", "slurm-client"}
	default:
		return nil
	}
}

// envFilePath is the environment file sourced by the daemon's unit.
func (s Service) envFilePath() string {
	return "/etc/default/" + s.String()
}
