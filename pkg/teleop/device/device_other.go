//go:build !linux

package device

// Open always fails on this platform.
func Open(int) (Device, error) {
	return nil, ErrUnsupported
}

// DetectAndOpen always fails on this platform.
func DetectAndOpen(int) (Device, error) {
	return nil, ErrUnsupported
}
