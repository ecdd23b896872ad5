//go:build !linux

package platform

// New returns the Source for backend. Only gopsutil is available off linux.
func New(backend string) (Source, error) {
	switch backend {
	case "", "auto", "gopsutil":
		return NewGopsutil(), nil
	default:
		return nil, errFactory.WithData(ErrBackend, backend)
	}
}
