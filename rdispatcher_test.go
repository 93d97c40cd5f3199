package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ureddy/rdispatcher/planner"
	"github.com/ureddy/rdispatcher/remote"
)

func TestParseHostArg(t *testing.T) {
	loc, err := parseHostArg("user@host")
	require.NoError(t, err)
	assert.Equal(t, "user", loc.User)
	assert.Equal(t, "host", loc.Host)

	loc, err = parseHostArg("host:/ignored")
	require.NoError(t, err)
	assert.Equal(t, "host", loc.Host)

	_, err = parseHostArg("")
	assert.Error(t, err)
}

func TestExitCodeForCopyError(t *testing.T) {
	assert.Equal(t, exitCodeSourceError,
		exitCodeForCopyError(&planner.SourceNotFoundError{Source: "x"}))
	assert.Equal(t, exitCodeSourceError,
		exitCodeForCopyError(&planner.RecursiveFlagRequiredError{Source: "x"}))
	assert.Equal(t, exitCodeSessionError,
		exitCodeForCopyError(&remote.ConnectionError{Addr: "h:22"}))
	assert.Equal(t, exitCodeCopyError,
		exitCodeForCopyError(&planner.TypeMismatchError{LocalPath: "a", RemotePath: "b"}))
}
