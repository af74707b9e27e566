package pyproject

import "os"

// PathKind classifies what a probed path refers to on disk.
type PathKind int

const (
	// KindMissing means neither a file nor a directory exists at the path.
	KindMissing PathKind = iota
	// KindFile means a regular file exists at the path.
	KindFile
	// KindDir means a directory exists at the path.
	KindDir
)

// Probe answers path-kind questions for the import resolver. Existence
// probes are inherently racy against concurrent filesystem changes; keeping
// them behind this interface lets a caching or snapshotting implementation
// replace the live one without touching resolution logic.
type Probe interface {
	Kind(path string) PathKind
}

type fsProbe struct{}

// NewFSProbe returns a Probe backed by live os.Stat calls.
func NewFSProbe() Probe {
	return fsProbe{}
}

func (fsProbe) Kind(path string) PathKind {
	info, err := os.Stat(path)
	if err != nil {
		return KindMissing
	}
	if info.IsDir() {
		return KindDir
	}
	return KindFile
}
