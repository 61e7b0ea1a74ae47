package contract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// JavaCKRunner implements the CKRunner interface by executing the CK jar
// through the local 'java' binary.
type JavaCKRunner struct{}

var _ CKRunner = &JavaCKRunner{} // Compile-time check

// NewJavaCKRunner creates a new instance of the JVM-backed CK runner.
func NewJavaCKRunner() *JavaCKRunner {
	return &JavaCKRunner{}
}

// Run implements the CKRunner interface. The positional arguments follow the
// tool's fixed calling convention:
//
//	java -jar ck.jar <srcDir> <useJars> <maxFilesPerPartition> <varsAndFields> <outDir>
//
// useJars and varsAndFields stay off and maxFilesPerPartition stays 0 (auto)
// so runs behave identically across repositories. The trailing separator on
// outDir is required: the tool concatenates file names onto the argument
// verbatim, and without it the CSVs land next to outDir instead of inside it.
func (r *JavaCKRunner) Run(ctx context.Context, jarPath, srcDir, outDir, workDir string) error {
	outArg := outDir
	if !strings.HasSuffix(outArg, "/") {
		outArg += "/"
	}

	cmd := exec.CommandContext(ctx, "java", "-jar", jarPath, srcDir, "false", "0", "false", outArg)
	cmd.Dir = workDir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			msg := strings.TrimSpace(stderr.String())
			if len(msg) > 400 {
				msg = msg[len(msg)-400:]
			}
			return fmt.Errorf("metrics tool exited with %d: %s", exitErr.ExitCode(), msg)
		}
		return fmt.Errorf("metrics tool failed to start: %w. Ensure Java is installed and available on your PATH", err)
	}
	return nil
}

// Version implements the CKRunner interface. Java prints its banner on
// stderr, so the combined output is captured.
func (r *JavaCKRunner) Version(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, "java", "-version")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("java not available: %w", err)
	}
	banner := strings.TrimSpace(string(out))
	if idx := strings.IndexByte(banner, '\n'); idx > 0 {
		banner = banner[:idx]
	}
	return banner, nil
}
