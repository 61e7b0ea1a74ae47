// Package ckrun drives the external CK jar against a single repository:
// shallow clone, source precheck, tool invocation, artifact collection and
// scratch cleanup. The collection step compensates for the tool's habit of
// writing CSVs to its working directory instead of the requested output
// directory.
package ckrun

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ckscope/ckscope/internal/contract"
	"github.com/ckscope/ckscope/schema"
)

const dirPerm = 0o750

// Named failure conditions a batch run records per repository.
var (
	// ErrCloneFailed means the shallow clone did not complete.
	ErrCloneFailed = errors.New("repository clone failed")

	// ErrNoJavaSources means the clone finished but holds no .java files.
	ErrNoJavaSources = errors.New("no Java source files in clone")

	// ErrNoToolOutput means the tool exited without leaving a class-level
	// CSV in any known location.
	ErrNoToolOutput = errors.New("metrics tool produced no output")
)

// FailureStage maps an AnalyzeRepo error to the stage a batch failure is
// recorded under.
func FailureStage(err error) string {
	switch {
	case errors.Is(err, ErrCloneFailed):
		return schema.StageClone
	case errors.Is(err, ErrNoJavaSources):
		return schema.StagePrecheck
	default:
		return schema.StageMetrics
	}
}

// Artifacts holds the canonical locations of the collected output files.
// ClassCSV is always set on success; MethodCSV and FieldCSV stay empty when
// the tool did not emit them.
type Artifacts struct {
	Dir       string
	ClassCSV  string
	MethodCSV string
	FieldCSV  string
}

// Analyzer runs the per-repository analysis sequence. Construct with
// NewAnalyzer; the zero value has no clients.
type Analyzer struct {
	git         contract.GitClient
	runner      contract.CKRunner
	jarPath     string
	scratchRoot string
	outputRoot  string
	settleWait  time.Duration
}

// NewAnalyzer wires an analyzer from the resolved config and the two
// external clients.
func NewAnalyzer(cfg *contract.Config, git contract.GitClient, runner contract.CKRunner) *Analyzer {
	return &Analyzer{
		git:         git,
		runner:      runner,
		jarPath:     cfg.CKJarPath,
		scratchRoot: cfg.ScratchRoot,
		outputRoot:  cfg.OutputRoot,
		settleWait:  cfg.SettleWait,
	}
}

// AnalyzeRepo processes one repository end to end and returns the canonical
// artifact paths. The scratch clone is removed on every exit path, success
// or failure.
func (a *Analyzer) AnalyzeRepo(ctx context.Context, fullName, cloneURL string) (*Artifacts, error) {
	scratch, err := os.MkdirTemp(a.scratchRoot, "ckscope-*")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(scratch) }()

	// --- 1. Shallow clone into scratch ---
	repoDir := filepath.Join(scratch, schema.SanitizeRepoDir(fullName))
	if err := a.git.CloneShallow(ctx, cloneURL, repoDir); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCloneFailed, err)
	}

	// --- 2. Source precheck ---
	count, err := CountJavaFiles(repoDir)
	if err != nil {
		return nil, fmt.Errorf("scan clone of %s: %w", fullName, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("%s: %w", fullName, ErrNoJavaSources)
	}

	// --- 3. Tool invocation ---
	// The output directory is unique to this run. A stable per-repository
	// path would let a previous run's CSVs satisfy the artifact probe even
	// when the tool emitted nothing.
	if err := os.MkdirAll(a.outputRoot, dirPerm); err != nil {
		return nil, fmt.Errorf("create output root: %w", err)
	}
	outDir, err := os.MkdirTemp(a.outputRoot, schema.SanitizeRepoDir(fullName)+"-")
	if err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	// The scratch dir doubles as the tool's working directory so that
	// misplaced CSVs land somewhere we control and probe.
	if err := a.runner.Run(ctx, a.jarPath, repoDir, outDir, scratch); err != nil {
		return nil, fmt.Errorf("%s: %w", fullName, err)
	}

	// --- 4. Artifact collection ---
	arts, err := CollectArtifacts(ctx, outDir, []string{scratch, os.TempDir()}, a.settleWait)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fullName, err)
	}
	return arts, nil
}

// CountJavaFiles walks root and counts .java files, skipping hidden
// directories such as .git.
func CountJavaFiles(root string) (int, error) {
	count := 0
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if name := d.Name(); len(name) > 1 && name[0] == '.' {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(d.Name()) == ".java" {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
