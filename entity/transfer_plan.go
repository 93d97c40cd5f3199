package entity

import "fmt"

// FileMapping pairs a local file with the remote path it will be uploaded to.
type FileMapping struct {
	LocalPath  string
	RemotePath string
}

func (m FileMapping) String() string {
	return fmt.Sprintf("%s -> %s", m.LocalPath, m.RemotePath)
}

// TransferPlan is the result of one planning pass: the remote directories to
// create (in discovery order, without duplicates) followed by the files to
// upload. A plan is built fresh per copy call, consumed once and discarded.
//
// Invariant: every directory implied by a mapping's remote path either already
// exists on the remote side or appears in Directories before that mapping.
type TransferPlan struct {
	Directories []string
	Files       []FileMapping
}

// IsEmpty reports whether the plan requires no remote mutation at all.
func (p *TransferPlan) IsEmpty() bool {
	return len(p.Directories) == 0 && len(p.Files) == 0
}

func (p *TransferPlan) String() string {
	return fmt.Sprintf("{%d directories, %d files}", len(p.Directories), len(p.Files))
}
