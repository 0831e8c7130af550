package loader

// NewDefault prefers an installed copy of the document under the XDG data directories
// and falls back to the directory of the running executable.
func NewDefault(appName string) (Loader, error) {
	exe, err := NewExecutableLoader()
	if err != nil {
		return nil, err
	}
	return FirstOf(NewXDGLoader(appName), exe), nil
}
