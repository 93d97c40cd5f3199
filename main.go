package main

import (
	_ "embed"
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"time"

	set "github.com/deckarep/golang-set/v2"
	flag "github.com/spf13/pflag"
	"github.com/ureddy/rdispatcher/fmte"
	"github.com/ureddy/rdispatcher/lib"
	"github.com/ureddy/rdispatcher/remote"
	"golang.org/x/term"
)

// Constants indicating return codes of this tool, when run from command line
const (
	exitCodeSuccess = iota
	exitCodeInvalidNumArgs
	exitCodeSourceError
	exitCodeDestinationError
	exitCodeSessionError
	exitCodeCopyError
	exitCodeExclusionFilesError
)

//go:embed default_exclusions.txt
var defaultExclusionsStr string

var flags struct {
	isHelp           func() bool
	isRecursive      func() bool
	isVerbose        func() bool
	getPort          func() int
	getIdentityFile  func() string
	getPassword      func() (string, error)
	getExecuteCmd    func() string
	getExcludedFiles func() set.Set[string]
}

func setupHelpOpt() {
	helpPtr := flag.BoolP("help", "h", false, "display help")
	flags.isHelp = func() bool {
		return *helpPtr
	}
}

func setupRecursiveOpt() {
	recursivePtr := flag.BoolP("recursive", "r", false,
		"copy recursively (required when source is a directory or a pattern matching more than one file)")
	flags.isRecursive = func() bool {
		return *recursivePtr
	}
}

func setupVerboseOpt() {
	verbosePtr := flag.BoolP("verbose", "v", false, "print each planning and transfer step")
	flags.isVerbose = func() bool {
		return *verbosePtr
	}
}

func setupPortOpt() {
	portPtr := flag.IntP("port", "P", 22, "ssh port on the remote host")
	flags.getPort = func() int {
		return *portPtr
	}
}

func setupIdentityOpt() {
	identityPtr := flag.StringP("identity", "i", "",
		"path to private key file (defaults to ~/.ssh/id_rsa, id_ed25519 or id_dsa)")
	flags.getIdentityFile = func() string {
		return *identityPtr
	}
}

func setupPasswordOpt() {
	passwordPtr := flag.Bool("password", false, "prompt for a password instead of key authentication")
	flags.getPassword = func() (string, error) {
		if !*passwordPtr {
			return "", nil
		}
		fmt.Fprint(os.Stderr, "Password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("couldn't read password: %w", err)
		}
		return string(raw), nil
	}
}

func setupExecuteOpt() {
	executePtr := flag.StringP("execute", "e", "",
		"run the given command on the remote host instead of copying files")
	flags.getExecuteCmd = func() string {
		return *executePtr
	}
}

func setupExclusionsOpt() {
	const exclusionsFlag = "exclusions"
	defaultExclusions, defaultExclusionsExamples := lib.LineSeparatedStrToSet(defaultExclusionsStr)
	excludesListFilePathPtr := flag.String(exclusionsFlag, "",
		fmt.Sprintf("path to file containing newline separated list of file/directory names to be excluded\n"+
			"(if this is not set, by default these will be ignored: %s etc.)",
			strings.Join(defaultExclusionsExamples, ", ")))
	flags.getExcludedFiles = func() set.Set[string] {
		excludesListFilePath := *excludesListFilePathPtr
		if excludesListFilePath == "" {
			return defaultExclusions
		}
		if !lib.IsReadableFile(excludesListFilePath) {
			fmte.PrintfErr("error: argument to flag --%s should be a readable file\n", exclusionsFlag)
			flag.Usage()
			os.Exit(exitCodeExclusionFilesError)
		}
		rawContents, err := os.ReadFile(excludesListFilePath)
		if err != nil {
			fmte.PrintfErr("error: argument to flag --%s isn't readable: %+v\n", exclusionsFlag, err)
			flag.Usage()
			os.Exit(exitCodeExclusionFilesError)
		}
		contents := strings.ReplaceAll(string(rawContents), "\r\n", "\n") // Windows
		exclusions, _ := lib.LineSeparatedStrToSet(contents)
		return exclusions
	}
}

func setupUsage() {
	flag.Usage = func() {
		fmte.PrintfErr("Run \"rdispatcher --help\" for usage\n")
	}
}

func showHelpAndExit() {
	flag.CommandLine.SetOutput(os.Stdout)
	fmt.Printf(`rdispatcher copies files and directories to a remote host over SSH, and can
run commands there.

Usage:
	 rdispatcher <flags> <source> [user@]host:<destination>
	 rdispatcher <flags> -e <command> [user@]host

where,
	source        local file, directory or glob pattern
	destination   absolute path on the remote host

flags: (all optional)
`)
	flag.PrintDefaults()
	os.Exit(exitCodeSuccess)
}

func handlePanic() {
	err := recover()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Program exited unexpectedly. "+
			"Please report the below error to the author:\n"+
			"%+v\n", err)
		_, _ = fmt.Fprintln(os.Stderr, string(debug.Stack()))
	}
}

func setupFlags() {
	setupHelpOpt()
	setupRecursiveOpt()
	setupVerboseOpt()
	setupPortOpt()
	setupIdentityOpt()
	setupPasswordOpt()
	setupExecuteOpt()
	setupExclusionsOpt()
	setupUsage()
}

func sessionConfig(loc remote.Location) remote.Config {
	password, pwErr := flags.getPassword()
	if pwErr != nil {
		fmte.PrintfErr("error: %+v\n", pwErr)
		os.Exit(exitCodeSessionError)
	}
	return remote.Config{
		Host:     loc.Host,
		Port:     flags.getPort(),
		User:     loc.User,
		Password: password,
		KeyPath:  flags.getIdentityFile(),
		Timeout:  30 * time.Second,
	}
}

func main() {
	defer handlePanic()
	setupFlags()
	flag.Parse()
	if flag.NArg() == 0 && flag.NFlag() == 0 {
		fmte.PrintfErr("error: no arguments passed\n")
		flag.Usage()
		os.Exit(exitCodeInvalidNumArgs)
	}
	if flags.isHelp() {
		showHelpAndExit()
	}
	if flags.isVerbose() {
		fmte.VerboseOn()
	}

	if command := flags.getExecuteCmd(); command != "" {
		if flag.NArg() != 1 {
			fmte.PrintfErr("error: one argument expected with -e: the remote host\n")
			flag.Usage()
			os.Exit(exitCodeInvalidNumArgs)
		}
		hostLoc, locErr := parseHostArg(flag.Arg(0))
		if locErr != nil {
			fmte.PrintfErr("error: %+v\n", locErr)
			flag.Usage()
			os.Exit(exitCodeDestinationError)
		}
		status, execErr := executeRemoteCommand(command, sessionConfig(hostLoc))
		if execErr != nil {
			fmte.PrintfErr("error while executing remote command: %+v\n", execErr)
			os.Exit(exitCodeSessionError)
		}
		os.Exit(status)
	}

	if flag.NArg() != 2 {
		fmte.PrintfErr("error: two arguments expected: source and [user@]host:destination\n")
		flag.Usage()
		os.Exit(exitCodeInvalidNumArgs)
	}
	source := flag.Arg(0)
	destLoc, destErr := remote.ParseLocation(flag.Arg(1))
	if destErr != nil || !destLoc.IsRemote {
		fmte.PrintfErr("error: destination %q must be of the form [user@]host:path\n", flag.Arg(1))
		flag.Usage()
		os.Exit(exitCodeDestinationError)
	}

	copyErr := secureCopy(source, destLoc, sessionConfig(destLoc),
		flags.getExcludedFiles(), flags.isRecursive())
	if copyErr != nil {
		fmte.PrintfErr("error while copying: %+v\n", copyErr)
		os.Exit(exitCodeForCopyError(copyErr))
	}
}
