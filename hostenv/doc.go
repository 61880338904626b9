// Package hostenv classifies the environment the current process runs in:
// bare metal, a specific hypervisor, or a specific container runtime.
//
// The probe is read-only and stateless. It inspects well-known filesystem
// and kernel signals (container marker files, /proc/1/environ, cgroup
// contents, DMI vendor strings, the kernel release) and returns a single
// classification:
//
//	env := hostenv.Detect()
//	if env.IsContainer() {
//	    // skip steps that need a real kernel
//	}
//
// Container signals are always checked before hypervisor signals, so a
// container running on top of a virtual machine reports the container
// runtime, not the hypervisor. Detect never fails: unreadable probes are
// treated as "no signal", and an unclassifiable host reports Unknown.
package hostenv
