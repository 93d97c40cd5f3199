package fs

import (
	"io"
	"os"

	"github.com/pkg/sftp"
)

// SFTPFS implements Probe and Executor over an SFTP channel.
type SFTPFS struct {
	client *sftp.Client
}

// NewSFTPFS wraps an existing sftp.Client.
func NewSFTPFS(client *sftp.Client) *SFTPFS {
	return &SFTPFS{client: client}
}

func (s *SFTPFS) Exists(path string) (bool, error) {
	_, err := s.client.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (s *SFTPFS) IsDirectory(path string) (bool, error) {
	// Lstat: a symlink to a directory is not itself a directory
	info, err := s.client.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

func (s *SFTPFS) CreateDirectory(path string) error {
	if err := s.client.Mkdir(path); err != nil {
		return &DirectoryCreationError{Path: path, Err: err}
	}
	return nil
}

func (s *SFTPFS) UploadFile(localPath, remotePath string) error {
	src, err := os.Open(localPath)
	if err != nil {
		return &UploadError{LocalPath: localPath, RemotePath: remotePath, Err: err}
	}
	defer src.Close()

	dst, err := s.client.Create(remotePath)
	if err != nil {
		return &UploadError{LocalPath: localPath, RemotePath: remotePath, Err: err}
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return &UploadError{LocalPath: localPath, RemotePath: remotePath, Err: err}
	}
	if err := dst.Close(); err != nil {
		return &UploadError{LocalPath: localPath, RemotePath: remotePath, Err: err}
	}
	return nil
}
