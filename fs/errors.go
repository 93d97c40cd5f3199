package fs

import "fmt"

// ProbeError means a remote existence/type query itself failed
// (e.g. the connection dropped), as opposed to the path being absent.
type ProbeError struct {
	Path string
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("couldn't probe remote path %q: %v", e.Path, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

// DirectoryCreationError wraps an I/O failure while creating a remote directory.
type DirectoryCreationError struct {
	Path string
	Err  error
}

func (e *DirectoryCreationError) Error() string {
	return fmt.Sprintf("couldn't create remote directory %q: %v", e.Path, e.Err)
}

func (e *DirectoryCreationError) Unwrap() error {
	return e.Err
}

// UploadError wraps an I/O failure while uploading a file.
type UploadError struct {
	LocalPath  string
	RemotePath string
	Err        error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("couldn't copy local %q to remote %q: %v", e.LocalPath, e.RemotePath, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}
