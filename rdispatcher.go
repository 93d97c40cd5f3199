package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	set "github.com/deckarep/golang-set/v2"
	"github.com/ureddy/rdispatcher/entity"
	"github.com/ureddy/rdispatcher/fmte"
	rdfs "github.com/ureddy/rdispatcher/fs"
	"github.com/ureddy/rdispatcher/planner"
	"github.com/ureddy/rdispatcher/remote"
)

// secureCopy is the plan-then-execute pipeline: resolve the source, enforce
// the recursive flag before any remote contact, establish the channel, build
// the transfer plan against live remote state and realize it. The session is
// released on every exit path.
func secureCopy(source string, destLoc remote.Location, cfg remote.Config,
	exclusions set.Set[string], recursive bool) error {
	spec := entity.ResolveSource(source)
	if err := planner.CheckRecursive(spec, recursive); err != nil {
		return err
	}

	session, dialErr := remote.Dial(cfg)
	if dialErr != nil {
		return dialErr
	}
	defer session.Close()

	sftpClient, sftpErr := session.SFTP()
	if sftpErr != nil {
		return sftpErr
	}
	remoteFS := rdfs.NewSFTPFS(sftpClient)

	fmte.PrintfV("planning transfer of %s %q to %s:%s\n",
		spec.Kind, source, destLoc.SSHSpec(), destLoc.Path)
	plan, planErr := planner.NewWithExclusions(remoteFS, exclusions).BuildPlan(source, destLoc.Path)
	if planErr != nil {
		return planErr
	}
	if plan.IsEmpty() {
		fmte.Printf("Nothing to copy.\n")
		return nil
	}
	fmte.PrintfV("plan: %d remote directories to create, %d files to upload\n",
		len(plan.Directories), len(plan.Files))

	return planner.Apply(plan, remoteFS)
}

// executeRemoteCommand runs one command on the remote host and relays its
// combined output. The remote exit status becomes this process's exit code.
func executeRemoteCommand(command string, cfg remote.Config) (int, error) {
	session, dialErr := remote.Dial(cfg)
	if dialErr != nil {
		return 0, dialErr
	}
	defer session.Close()

	fmte.PrintfV("executing %q on %s\n", command, cfg.Host)
	status, output, execErr := session.Execute(command)
	if execErr != nil {
		return 0, execErr
	}
	if len(output) > 0 {
		_, _ = os.Stdout.Write(output)
	}
	return status, nil
}

// parseHostArg accepts "[user@]host" (with an optional ignored ":path" suffix)
// for the command-execution mode.
func parseHostArg(arg string) (remote.Location, error) {
	if arg == "" {
		return remote.Location{}, fmt.Errorf("empty host argument")
	}
	if strings.Contains(arg, ":") {
		return remote.ParseLocation(arg)
	}
	loc, err := remote.ParseLocation(arg + ":.")
	if err != nil {
		return remote.Location{}, err
	}
	loc.Path = ""
	return loc, nil
}

func exitCodeForCopyError(err error) int {
	var sourceNotFound *planner.SourceNotFoundError
	var recursiveRequired *planner.RecursiveFlagRequiredError
	if errors.As(err, &sourceNotFound) || errors.As(err, &recursiveRequired) {
		return exitCodeSourceError
	}
	var keyLoad *remote.KeyLoadError
	var auth *remote.AuthenticationError
	var conn *remote.ConnectionError
	if errors.As(err, &keyLoad) || errors.As(err, &auth) || errors.As(err, &conn) {
		return exitCodeSessionError
	}
	return exitCodeCopyError
}
