package entity

import "os"

// SourceKind classifies what the source argument of a copy refers to locally.
type SourceKind int

const (
	// SourceFile is a single regular file
	SourceFile SourceKind = iota
	// SourceDirectory is a directory tree
	SourceDirectory
	// SourcePattern is a glob expression (or a path that doesn't exist locally,
	// which expands to nothing)
	SourcePattern
)

func (k SourceKind) String() string {
	switch k {
	case SourceFile:
		return "file"
	case SourceDirectory:
		return "directory"
	default:
		return "pattern"
	}
}

// SourceSpec is the source argument resolved once at plan-build time.
type SourceSpec struct {
	Kind SourceKind
	// Path is the literal path for SourceFile/SourceDirectory,
	// or the glob expression for SourcePattern.
	Path string
}

// ResolveSource classifies a literal source argument by local stat.
// Anything that is neither an existing file nor an existing directory is
// treated as a pattern, mirroring how scp-like tools dispatch.
func ResolveSource(arg string) SourceSpec {
	if info, err := os.Stat(arg); err == nil {
		if info.IsDir() {
			return SourceSpec{Kind: SourceDirectory, Path: arg}
		}
		if info.Mode().IsRegular() {
			return SourceSpec{Kind: SourceFile, Path: arg}
		}
	}
	return SourceSpec{Kind: SourcePattern, Path: arg}
}
