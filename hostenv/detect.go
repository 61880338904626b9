//go:build linux

package hostenv

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// Prober inspects a host and classifies its environment. The probe roots
// are configurable so tests can point the prober at fixture trees; the
// zero value is not usable, call NewProber.
type Prober struct {
	// ProcPath is the procfs mount point (default /proc)
	ProcPath string
	// SysPath is the sysfs mount point (default /sys)
	SysPath string
	// DevPath is the device tree root (default /dev)
	DevPath string
	// RunPath is the runtime state directory (default /run)
	RunPath string
	// RootPath is the filesystem root (default /)
	RootPath string

	// kernelRelease reports the running kernel release string.
	// Overridable in tests.
	kernelRelease func() string
}

// NewProber returns a Prober targeting the real host filesystem
func NewProber() *Prober {
	return &Prober{
		ProcPath:      "/proc",
		SysPath:       "/sys",
		DevPath:       "/dev",
		RunPath:       "/run",
		RootPath:      "/",
		kernelRelease: kernelRelease,
	}
}

// Detect classifies the environment the current process runs in.
// It is shorthand for NewProber().Detect().
func Detect() Environment {
	return NewProber().Detect()
}

// Detect runs the probe chain. Container signals are checked before
// hypervisor signals so a container on a virtualized host reports the
// container runtime. Unreadable probes are treated as "no signal".
func (p *Prober) Detect() Environment {
	if env, ok := p.container(); ok {
		return env
	}
	if env, ok := p.hypervisor(); ok {
		return env
	}

	// A host where neither PID 1 nor the DMI tree is visible cannot be
	// classified at all.
	if !p.exists(filepath.Join(p.ProcPath, "1")) &&
		!p.exists(filepath.Join(p.SysPath, "class/dmi/id")) {
		return Unknown
	}
	return BareMetal
}

// container checks container-runtime signals: marker files, the container=
// variable in PID 1's environment, and cgroup membership.
func (p *Prober) container() (Environment, bool) {
	if p.exists(filepath.Join(p.RootPath, ".dockerenv")) {
		return Docker, true
	}
	// Written by podman and other OCI runtimes.
	if p.exists(filepath.Join(p.RunPath, ".containerenv")) {
		return Docker, true
	}
	if p.exists(filepath.Join(p.DevPath, "lxd", "sock")) {
		return LXD, true
	}

	environ := p.read(filepath.Join(p.ProcPath, "1", "environ"))
	for _, kv := range strings.Split(environ, "\x00") {
		value, ok := strings.CutPrefix(kv, "container=")
		if !ok {
			continue
		}
		switch value {
		case "lxd":
			return LXD, true
		case "lxc", "lxc-libvirt":
			return LXC, true
		case "docker", "podman", "oci":
			return Docker, true
		}
	}

	cgroup := p.read(filepath.Join(p.ProcPath, "1", "cgroup"))
	switch {
	case strings.Contains(cgroup, "/docker"):
		return Docker, true
	case strings.Contains(cgroup, "/lxc"):
		return LXC, true
	}

	return Unknown, false
}

// dmiAttrs are the DMI/SMBIOS attributes consulted for hypervisor vendor
// strings, in match order.
var dmiAttrs = []string{"sys_vendor", "product_name", "bios_vendor", "product_version"}

// hypervisor checks hypervisor signals: DMI vendor strings, hypervisor
// device files, the kernel release, and the CPUID hypervisor flag.
func (p *Prober) hypervisor() (Environment, bool) {
	virtualized := false
	for _, attr := range dmiAttrs {
		value := strings.ToLower(p.read(filepath.Join(p.SysPath, "class/dmi/id", attr)))
		if value == "" {
			continue
		}
		switch {
		case strings.Contains(value, "vmware"):
			return VMware, true
		case strings.Contains(value, "microsoft"):
			return HyperV, true
		case strings.Contains(value, "qemu"),
			strings.Contains(value, "kvm"),
			strings.Contains(value, "bochs"),
			strings.Contains(value, "amazon ec2"):
			return KVM, true
		case strings.Contains(value, "openstack"):
			// Nova guests virtualize on KVM but report their own
			// product strings.
			virtualized = true
		}
	}

	// VMCI is exposed inside VMware guests.
	if p.exists(filepath.Join(p.DevPath, "vmci")) {
		return VMware, true
	}

	// WSL2 kernels carry a vendor suffix in the release string.
	if p.kernelRelease != nil &&
		strings.Contains(strings.ToLower(p.kernelRelease()), "microsoft") {
		return HyperV, true
	}

	if strings.Contains(p.read(filepath.Join(p.ProcPath, "cpuinfo")), " hypervisor") {
		virtualized = true
	}

	// Virtualized, but no recognized vendor.
	if virtualized {
		return Unknown, true
	}
	return Unknown, false
}

func (p *Prober) exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (p *Prober) read(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func kernelRelease() string {
	var uname unix.Utsname
	if err := unix.Uname(&uname); err != nil {
		return ""
	}
	return unix.ByteSliceToString(uname.Release[:])
}
