package lib

import (
	"os"
	"strings"

	set "github.com/deckarep/golang-set/v2"
)

// IsReadableDirectory checks whether a readable directory exists at given path
func IsReadableDirectory(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsReadableFile checks whether argument is a readable file
func IsReadableFile(path string) bool {
	fileInfo, statErr := os.Stat(path)
	if statErr != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}

// LineSeparatedStrToSet converts a line-separated string to a set of its
// non-blank lines, also returning the first few entries for display.
func LineSeparatedStrToSet(lineSeparatedString string) (entries set.Set[string], firstFew []string) {
	entries = set.NewThreadUnsafeSet[string]()
	firstFew = []string{}
	for _, e := range strings.Split(lineSeparatedString, "\n") {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		entries.Add(e)
		if len(firstFew) < 3 {
			firstFew = append(firstFew, e)
		}
	}
	return
}
