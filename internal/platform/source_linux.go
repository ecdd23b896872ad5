//go:build linux

package platform

// New returns the Source for backend. On linux "auto" reads /proc directly.
func New(backend string) (Source, error) {
	switch backend {
	case "", "auto", "procfs":
		return NewProcfs("/"), nil
	case "gopsutil":
		return NewGopsutil(), nil
	default:
		return nil, errFactory.WithData(ErrBackend, backend)
	}
}
