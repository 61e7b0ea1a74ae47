package ckrun

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

const filePerm = 0o600

// probeInterval is the pause between artifact probes while waiting for the
// tool's files to appear.
const probeInterval = 250 * time.Millisecond

// misplacedPrefix is the filename prefix the tool produces when it mangles
// the output path into a bare prefix.
const misplacedPrefix = "ck_output"

// errArtifactNotFound marks one kind's CSV as absent from every candidate.
var errArtifactNotFound = errors.New("artifact not found")

// CollectArtifacts locates the tool's CSVs and normalizes them under outDir.
// Candidate locations are probed in order: the intended output directory,
// then each entry of extraDirs (the tool's working directory and the system
// temp dir). A file found anywhere else, or under the misplaced prefix, is
// moved to outDir/<kind>.csv. The class file is required; method and field
// files are collected when present. If no class file appears within settle,
// the collection fails with ErrNoToolOutput.
func CollectArtifacts(ctx context.Context, outDir string, extraDirs []string, settle time.Duration) (*Artifacts, error) {
	deadline := time.Now().Add(settle)
	for {
		arts, err := collectOnce(outDir, extraDirs)
		if err == nil {
			return arts, nil
		}
		if !errors.Is(err, ErrNoToolOutput) || !time.Now().Before(deadline) {
			return nil, err
		}

		timer := time.NewTimer(probeInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// collectOnce runs a single probe pass over all three artifact kinds.
func collectOnce(outDir string, extraDirs []string) (*Artifacts, error) {
	classPath, err := normalizeKind("class", outDir, extraDirs)
	if errors.Is(err, errArtifactNotFound) {
		return nil, ErrNoToolOutput
	}
	if err != nil {
		return nil, err
	}
	arts := &Artifacts{Dir: outDir, ClassCSV: classPath}

	if p, err := normalizeKind("method", outDir, extraDirs); err == nil {
		arts.MethodCSV = p
	} else if !errors.Is(err, errArtifactNotFound) {
		return nil, err
	}
	if p, err := normalizeKind("field", outDir, extraDirs); err == nil {
		arts.FieldCSV = p
	} else if !errors.Is(err, errArtifactNotFound) {
		return nil, err
	}
	return arts, nil
}

// normalizeKind finds the CSV for one kind and ensures it ends up at
// outDir/<kind>.csv. The first candidate that exists wins.
func normalizeKind(kind, outDir string, extraDirs []string) (string, error) {
	canonical := filepath.Join(outDir, kind+".csv")
	names := []string{kind + ".csv", misplacedPrefix + kind + ".csv"}

	for _, name := range names {
		src := filepath.Join(outDir, name)
		if !fileExists(src) {
			continue
		}
		if src == canonical {
			return canonical, nil
		}
		if err := moveFile(src, canonical); err != nil {
			return "", fmt.Errorf("relocate %s: %w", src, err)
		}
		return canonical, nil
	}
	for _, dir := range extraDirs {
		for _, name := range names {
			src := filepath.Join(dir, name)
			if !fileExists(src) {
				continue
			}
			if err := moveFile(src, canonical); err != nil {
				return "", fmt.Errorf("relocate %s: %w", src, err)
			}
			return canonical, nil
		}
	}
	return "", errArtifactNotFound
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// moveFile renames src to dst, falling back to copy-and-remove when the two
// paths sit on different filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
