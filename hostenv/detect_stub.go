//go:build !linux

package hostenv

// Detect is only meaningful on Linux hosts. On other platforms the
// environment cannot be classified.
func Detect() Environment {
	return Unknown
}
