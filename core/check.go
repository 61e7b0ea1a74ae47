package core

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ckscope/ckscope/internal/contract"
)

// envCheck is one preflight probe result.
type envCheck struct {
	label    string
	detail   string
	ok       bool
	optional bool
}

// ExecuteEnvCheck verifies the external tools the pipeline shells out to
// before any repository is cloned: git, java, the CK jar and the scratch
// directory. A missing token is reported as a warning because anonymous
// API access works, just with tighter rate limits.
func ExecuteEnvCheck(ctx context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	start := time.Now()

	checks := []envCheck{
		checkGit(ctx),
		checkJava(ctx),
		checkJar(cfg.CKJarPath),
		checkScratch(cfg.ScratchRoot),
		checkToken(cfg.Token),
	}

	printEnvChecks(checks, time.Since(start))

	failed := 0
	for _, c := range checks {
		if !c.ok && !c.optional {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d required check(s) failed", failed)
	}
	return nil
}

// checkGit probes for a usable git binary.
func checkGit(ctx context.Context) envCheck {
	version, err := contract.NewLocalGitClient().Version(ctx)
	if err != nil {
		return envCheck{label: "Git", detail: err.Error()}
	}
	return envCheck{label: "Git", detail: strings.TrimSpace(version), ok: true}
}

// checkJava probes for a usable java runtime.
func checkJava(ctx context.Context) envCheck {
	version, err := contract.NewJavaCKRunner().Version(ctx)
	if err != nil {
		return envCheck{label: "Java", detail: err.Error()}
	}
	return envCheck{label: "Java", detail: strings.TrimSpace(version), ok: true}
}

// checkJar verifies the CK jar exists and opens for reading.
func checkJar(path string) envCheck {
	info, err := os.Stat(path)
	if err != nil {
		return envCheck{label: "CK jar", detail: err.Error()}
	}
	if info.IsDir() {
		return envCheck{label: "CK jar", detail: fmt.Sprintf("%s is a directory", path)}
	}
	f, err := os.Open(path)
	if err != nil {
		return envCheck{label: "CK jar", detail: err.Error()}
	}
	_ = f.Close()
	return envCheck{label: "CK jar", detail: fmt.Sprintf("%s (%d KB)", path, info.Size()/1024), ok: true}
}

// checkScratch verifies clones can be created under the scratch root.
func checkScratch(root string) envCheck {
	dir, err := os.MkdirTemp(root, "ckscope-check-*")
	if err != nil {
		return envCheck{label: "Scratch dir", detail: err.Error()}
	}
	_ = os.RemoveAll(dir)
	return envCheck{label: "Scratch dir", detail: fmt.Sprintf("%s is writable", root), ok: true}
}

// checkToken reports whether an API token is configured. Optional.
func checkToken(token string) envCheck {
	if token == "" {
		return envCheck{label: "API token", detail: "not set, anonymous rate limits apply", optional: true}
	}
	return envCheck{label: "API token", detail: "configured", ok: true, optional: true}
}

// printEnvChecks prints the preflight report with aligned labels.
func printEnvChecks(checks []envCheck, duration time.Duration) {
	fmt.Println("Environment Check Results:")

	// Find the longest label for consistent padding
	maxLabelLen := 0
	for _, c := range checks {
		if len(c.label) > maxLabelLen {
			maxLabelLen = len(c.label)
		}
	}

	for _, c := range checks {
		marker := "✅"
		if !c.ok {
			marker = "❌"
			if c.optional {
				marker = "⚠️ "
			}
		}
		fmt.Printf("  %s %-*s %s\n", marker, maxLabelLen+1, c.label+":", c.detail)
	}

	fmt.Printf("\nChecked %d prerequisites in %v\n", len(checks), duration)
}
