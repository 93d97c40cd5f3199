package planner

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"

	set "github.com/deckarep/golang-set/v2"
	"github.com/ureddy/rdispatcher/entity"
	"github.com/ureddy/rdispatcher/fmte"
	rdfs "github.com/ureddy/rdispatcher/fs"
)

const numDirsGuess = 100

// Planner builds transfer plans by walking a local source and probing the
// remote side through a Probe. One Planner may be reused across calls; each
// BuildPlan is an independent planning pass with no state carried over.
type Planner struct {
	probe      rdfs.Probe
	exclusions set.Set[string]
}

// New creates a Planner with no exclusions.
func New(probe rdfs.Probe) *Planner {
	return NewWithExclusions(probe, set.NewThreadUnsafeSet[string]())
}

// NewWithExclusions creates a Planner that skips local files and directories
// whose base name is in exclusions (directories are pruned from the walk).
func NewWithExclusions(probe rdfs.Probe, exclusions set.Set[string]) *Planner {
	return &Planner{probe: probe, exclusions: exclusions}
}

// CheckRecursive enforces the recursive-flag requirement uniformly across
// source kinds: a directory source, or a glob expanding to more than one
// match or to any directory, needs the flag. Makes no remote contact.
func CheckRecursive(spec entity.SourceSpec, recursive bool) error {
	if recursive {
		return nil
	}
	switch spec.Kind {
	case entity.SourceDirectory:
		return &RecursiveFlagRequiredError{Source: spec.Path}
	case entity.SourcePattern:
		matches, err := filepath.Glob(spec.Path)
		if err != nil || len(matches) == 0 {
			return nil // empty or malformed expansion surfaces later as SourceNotFoundError
		}
		if len(matches) > 1 {
			return &RecursiveFlagRequiredError{Source: spec.Path}
		}
		if info, statErr := os.Stat(matches[0]); statErr == nil && info.IsDir() {
			return &RecursiveFlagRequiredError{Source: spec.Path}
		}
	}
	return nil
}

// BuildPlan computes the ordered remote directory-creation list and the
// local-to-remote file mappings for copying source to destination.
// On any error the partial plan is discarded and nil is returned.
func (p *Planner) BuildPlan(source, destination string) (*entity.TransferPlan, error) {
	source = filepath.Clean(source)
	destination = path.Clean(destination)
	spec := entity.ResolveSource(source)

	b := &planBuilder{
		probe:      p.probe,
		exclusions: p.exclusions,
		scheduled:  set.NewThreadUnsafeSetWithSize[string](numDirsGuess),
		plan:       &entity.TransferPlan{},
	}

	var err error
	switch spec.Kind {
	case entity.SourceFile:
		err = b.planFile(spec.Path, destination)
	case entity.SourceDirectory:
		err = b.planDirectory(spec.Path, destination)
	default:
		err = b.planPattern(spec.Path, destination)
	}
	if err != nil {
		return nil, err
	}
	return b.plan, nil
}

// planBuilder holds the state of one planning pass.
type planBuilder struct {
	probe      rdfs.Probe
	exclusions set.Set[string]
	scheduled  set.Set[string]
	plan       *entity.TransferPlan
}

// parentState is the single-slot cache that lets sibling directories under an
// already-probed parent inherit its existence judgment without a round trip.
// It is threaded explicitly through one reconciliation walk and never outlives it.
type parentState struct {
	parentPath   string
	knownToExist bool
}

func (b *planBuilder) planFile(source, destination string) error {
	result, err := rdfs.Classify(b.probe, destination)
	if err != nil {
		return err
	}
	if result == rdfs.ExistsAsDirectory {
		destination = path.Join(destination, filepath.Base(source))
	}
	b.mapFile(source, destination)
	return nil
}

func (b *planBuilder) planDirectory(source, destination string) error {
	result, err := rdfs.Classify(b.probe, destination)
	if err != nil {
		return err
	}
	if result == rdfs.ExistsAsDirectory {
		destination = path.Join(destination, filepath.Base(source))
	}
	return b.reconcile(source, destination)
}

func (b *planBuilder) planPattern(pattern, destination string) error {
	matches, globErr := filepath.Glob(pattern)
	if globErr != nil || len(matches) == 0 {
		return &SourceNotFoundError{Source: pattern}
	}

	result, err := rdfs.Classify(b.probe, destination)
	if err != nil {
		return err
	}
	switch result {
	case rdfs.ExistsAsOther:
		return &TypeMismatchError{LocalPath: pattern, RemotePath: destination}
	case rdfs.Absent:
		b.schedule(destination)
	}

	for _, match := range matches {
		info, statErr := os.Stat(match)
		if statErr != nil {
			fmte.PrintfErr("skipping \"%s\": %+v\n", match, statErr)
			continue
		}
		if info.IsDir() {
			// Directory matches become subtrees side-by-side under destination
			if rErr := b.reconcile(match, path.Join(destination, filepath.Base(match))); rErr != nil {
				return rErr
			}
		} else if info.Mode().IsRegular() {
			// File matches land directly in destination
			b.mapFile(match, path.Join(destination, filepath.Base(match)))
		}
	}
	return nil
}

// reconcile walks the local directory tree rooted at localRoot top-down and
// decides, per subdirectory, whether its remote counterpart under remoteRoot
// must be created. This is the directory-skeleton reconciliation algorithm.
func (b *planBuilder) reconcile(localRoot, remoteRoot string) error {
	rootResult, err := rdfs.Classify(b.probe, remoteRoot)
	if err != nil {
		return err
	}
	if rootResult == rdfs.ExistsAsOther {
		return &TypeMismatchError{LocalPath: localRoot, RemotePath: remoteRoot}
	}
	rootKnownToExist := rootResult == rdfs.ExistsAsDirectory
	if !rootKnownToExist {
		b.schedule(remoteRoot)
	}

	// Last-probed-parent cache; initialized so the first subdirectory never inherits
	state := parentState{parentPath: localRoot, knownToExist: true}

	return filepath.WalkDir(localRoot, func(localPath string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			fmte.PrintfErr("skipping \"%s\": %+v\n", localPath, walkErr)
			return nil
		}
		if b.exclusions.Contains(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if localPath == localRoot {
			return nil // handled by the root probe above
		}

		rel, relErr := filepath.Rel(localRoot, localPath)
		if relErr != nil {
			fmte.PrintfErr("skipping \"%s\": %+v\n", localPath, relErr)
			return nil
		}
		remotePath := path.Join(remoteRoot, filepath.ToSlash(rel))

		if d.IsDir() {
			if !rootKnownToExist {
				// Creating the root implies the whole subtree is absent
				b.schedule(remotePath)
				return nil
			}
			return b.reconcileDir(localPath, remotePath, &state)
		}
		if d.Type().IsRegular() {
			// Files are mapped regardless of their directory's creation decision
			b.mapFile(localPath, remotePath)
		}
		return nil
	})
}

// reconcileDir decides one subdirectory when the remote root is known to
// exist, consulting and updating the parent-state cache.
func (b *planBuilder) reconcileDir(localPath, remotePath string, state *parentState) error {
	localParent := filepath.Dir(localPath)
	if localParent == state.parentPath && !state.knownToExist {
		// Sibling of a directory already scheduled for creation: no round trip
		b.schedule(remotePath)
		return nil
	}
	state.parentPath = localParent
	result, err := rdfs.Classify(b.probe, remotePath)
	if err != nil {
		return err
	}
	switch result {
	case rdfs.Absent:
		state.knownToExist = false
		b.schedule(remotePath)
	case rdfs.ExistsAsDirectory:
		state.knownToExist = true
	case rdfs.ExistsAsOther:
		return &TypeMismatchError{LocalPath: localPath, RemotePath: remotePath}
	}
	return nil
}

func (b *planBuilder) schedule(remoteDir string) {
	if b.scheduled.Contains(remoteDir) {
		return
	}
	b.scheduled.Add(remoteDir)
	b.plan.Directories = append(b.plan.Directories, remoteDir)
}

func (b *planBuilder) mapFile(localPath, remotePath string) {
	b.plan.Files = append(b.plan.Files, entity.FileMapping{
		LocalPath:  localPath,
		RemotePath: remotePath,
	})
}
