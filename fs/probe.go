package fs

// Probe answers existence/type queries about remote paths. Each call is a
// single blocking round trip over the remote channel; there is no batching and
// no caching here (the planner keeps its own single-slot parent cache).
type Probe interface {
	// Exists reports whether a file or directory exists at path.
	Exists(path string) (bool, error)

	// IsDirectory reports whether path is an existing directory.
	// Only meaningful when Exists is true; returns false for absent paths.
	IsDirectory(path string) (bool, error)
}

// ProbeResult is the transient classification of one remote path during a
// single planning pass. Absence is a value here, never an error.
type ProbeResult int

const (
	// Absent means nothing exists at the remote path
	Absent ProbeResult = iota
	// ExistsAsDirectory means the remote path is a directory
	ExistsAsDirectory
	// ExistsAsOther means the remote path exists but is not a directory
	ExistsAsOther
)

func (r ProbeResult) String() string {
	switch r {
	case Absent:
		return "absent"
	case ExistsAsDirectory:
		return "directory"
	default:
		return "non-directory"
	}
}

// Classify folds the probe's two boolean queries into one ProbeResult.
// Costs one round trip for absent paths, two for existing ones.
func Classify(p Probe, path string) (ProbeResult, error) {
	exists, err := p.Exists(path)
	if err != nil {
		return Absent, &ProbeError{Path: path, Err: err}
	}
	if !exists {
		return Absent, nil
	}
	isDir, err := p.IsDirectory(path)
	if err != nil {
		return Absent, &ProbeError{Path: path, Err: err}
	}
	if isDir {
		return ExistsAsDirectory, nil
	}
	return ExistsAsOther, nil
}
