package planner

import "fmt"

// SourceNotFoundError means the source argument resolved to nothing locally
// (typically a glob expression with an empty expansion).
type SourceNotFoundError struct {
	Source string
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("file or directory not found: %s", e.Source)
}

// RecursiveFlagRequiredError means the source yields more than one file
// but the recursive flag wasn't set. Raised before any remote contact.
type RecursiveFlagRequiredError struct {
	Source string
}

func (e *RecursiveFlagRequiredError) Error() string {
	return fmt.Sprintf("copying %q needs the recursive flag enabled", e.Source)
}

// TypeMismatchError means a remote path that must be a directory already
// exists as something else. Fatal: the whole planning pass is discarded.
type TypeMismatchError struct {
	LocalPath  string
	RemotePath string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("copy aborted, mismatch in file type: local %q remote %q",
		e.LocalPath, e.RemotePath)
}
