package fs

// Executor realizes a transfer plan on the remote side. Calls are made
// strictly in plan order: all directory creations first, then all uploads.
// The planner guarantees that by the time an upload is attempted its
// containing directory is either already remote-resident or was created
// earlier in the same call.
type Executor interface {
	// CreateDirectory creates a single remote directory (not its parents).
	CreateDirectory(path string) error

	// UploadFile copies a local file to the given remote path.
	UploadFile(localPath, remotePath string) error
}
