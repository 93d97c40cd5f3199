package planner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ureddy/rdispatcher/entity"
	rdfs "github.com/ureddy/rdispatcher/fs"
)

// recordingExecutor records calls in order and can be told to fail.
type recordingExecutor struct {
	calls       []string
	failMkdir   string // directory path that fails
	failUpload  string // remote path that fails
	uploadCount int
}

func (e *recordingExecutor) CreateDirectory(path string) error {
	e.calls = append(e.calls, "mkdir "+path)
	if path == e.failMkdir {
		return &rdfs.DirectoryCreationError{Path: path, Err: errors.New("permission denied")}
	}
	return nil
}

func (e *recordingExecutor) UploadFile(localPath, remotePath string) error {
	e.calls = append(e.calls, "put "+remotePath)
	e.uploadCount++
	if remotePath == e.failUpload {
		return &rdfs.UploadError{LocalPath: localPath, RemotePath: remotePath, Err: errors.New("disk full")}
	}
	return nil
}

func TestApplyOrdersDirectoriesBeforeFiles(t *testing.T) {
	plan := &entity.TransferPlan{
		Directories: []string{"/d", "/d/b"},
		Files: []entity.FileMapping{
			{LocalPath: "x.txt", RemotePath: "/d/x.txt"},
			{LocalPath: "y.txt", RemotePath: "/d/b/y.txt"},
		},
	}
	ex := &recordingExecutor{}
	require.NoError(t, Apply(plan, ex))
	assert.Equal(t, []string{"mkdir /d", "mkdir /d/b", "put /d/x.txt", "put /d/b/y.txt"}, ex.calls)
}

func TestApplyFailFastOnDirectoryCreation(t *testing.T) {
	plan := &entity.TransferPlan{
		Directories: []string{"/d", "/d/b"},
		Files:       []entity.FileMapping{{LocalPath: "x.txt", RemotePath: "/d/x.txt"}},
	}
	ex := &recordingExecutor{failMkdir: "/d"}
	err := Apply(plan, ex)
	var creationErr *rdfs.DirectoryCreationError
	require.ErrorAs(t, err, &creationErr)
	assert.Equal(t, "/d", creationErr.Path)
	assert.Zero(t, ex.uploadCount)
	assert.Equal(t, []string{"mkdir /d"}, ex.calls)
}

func TestApplyFailFastOnUpload(t *testing.T) {
	plan := &entity.TransferPlan{
		Files: []entity.FileMapping{
			{LocalPath: "a.txt", RemotePath: "/d/a.txt"},
			{LocalPath: "b.txt", RemotePath: "/d/b.txt"},
			{LocalPath: "c.txt", RemotePath: "/d/c.txt"},
		},
	}
	ex := &recordingExecutor{failUpload: "/d/b.txt"}
	err := Apply(plan, ex)
	var uploadErr *rdfs.UploadError
	require.ErrorAs(t, err, &uploadErr)
	assert.Equal(t, "/d/b.txt", uploadErr.RemotePath)
	assert.Equal(t, []string{"put /d/a.txt", "put /d/b.txt"}, ex.calls)
}
