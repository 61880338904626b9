package hostenv

// Environment identifies the virtualization or container runtime the
// current process is running under.
type Environment int

const (
	// Unknown means the host could not be classified
	Unknown Environment = iota
	// BareMetal means no virtualization signal was found
	BareMetal
	// KVM is the KVM/QEMU hypervisor
	KVM
	// VMware is the VMware hypervisor family
	VMware
	// HyperV is Microsoft Hyper-V, including WSL2 guests
	HyperV
	// LXC is a plain LXC container
	LXC
	// LXD is a container managed by LXD
	LXD
	// Docker is a Docker (or OCI-compatible) container
	Docker
)

// Environment string constants
const (
	envUnknownStr   = "unknown"
	envBareMetalStr = "bare-metal"
	envKVMStr       = "kvm"
	envVMwareStr    = "vmware"
	envHyperVStr    = "hyperv"
	envLXCStr       = "lxc"
	envLXDStr       = "lxd"
	envDockerStr    = "docker"
)

// String returns the string representation of Environment
func (e Environment) String() string {
	switch e {
	case BareMetal:
		return envBareMetalStr
	case KVM:
		return envKVMStr
	case VMware:
		return envVMwareStr
	case HyperV:
		return envHyperVStr
	case LXC:
		return envLXCStr
	case LXD:
		return envLXDStr
	case Docker:
		return envDockerStr
	case Unknown:
		fallthrough
	default:
		return envUnknownStr
	}
}

// IsContainer reports whether the environment is a container runtime
func (e Environment) IsContainer() bool {
	switch e {
	case LXC, LXD, Docker:
		return true
	default:
		return false
	}
}

// IsVirtualMachine reports whether the environment is a hypervisor guest
func (e Environment) IsVirtualMachine() bool {
	switch e {
	case KVM, VMware, HyperV:
		return true
	default:
		return false
	}
}
