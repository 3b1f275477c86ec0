package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// runtimeStub answers the version probe and runs the entry point with sh.
const runtimeStub = `#!/bin/sh
if [ "$1" = "--version" ]; then
  echo v20.11.1
  exit 0
fi
exec /bin/sh "$@"
`

const exporterScript = `printf '%s\n' "$1" "$2" "$3" > "$3/args.txt"
echo "exported chapter 1"
`

func init() {
	// Mock osExit to prevent tests from exiting
	osExit = func(code int) {}
}

// exitRecorder replaces osExit for the duration of a test.
type exitRecorder struct {
	codes []int
}

func recordExits(t *testing.T) *exitRecorder {
	t.Helper()
	rec := &exitRecorder{}
	old := osExit
	osExit = func(code int) { rec.codes = append(rec.codes, code) }
	t.Cleanup(func() { osExit = old })
	return rec
}

func (r *exitRecorder) exited() bool {
	return len(r.codes) > 0
}

// cliFixture is a fake exporter installation, a config file pointing at it
// and a start directory the command runs from.
type cliFixture struct {
	root    string
	start   string
	logDir  string
	config  string
	runtime string
}

func newCLIFixture(t *testing.T, script string) *cliFixture {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs require a POSIX shell")
	}

	fx := &cliFixture{
		root:   realTempDir(t),
		start:  realTempDir(t),
		logDir: filepath.Join(realTempDir(t), "logs"),
	}
	bin := realTempDir(t)
	fx.runtime = filepath.Join(bin, "fake-node")
	writeTestFile(t, fx.runtime, runtimeStub, 0o755)
	writeTestFile(t, filepath.Join(fx.root, "exporter.sh"), script, 0o644)
	writeTestFile(t, filepath.Join(fx.root, "package.json"), `{"name":"exporter"}`, 0o644)

	fx.config = filepath.Join(bin, "qqbook.yaml")
	writeTestFile(t, fx.config, fmt.Sprintf(
		"runtime_binary: %s\nexporter_root: %s\nentry_point: exporter.sh\nmanifest: package.json\ncheck_timeout: 2s\n",
		fx.runtime, fx.root), 0o644)

	chdirForTest(t, fx.start)
	return fx
}

// run executes the root command with the fixture's config and log dir.
func (fx *cliFixture) run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	return fx.runContext(t, context.Background(), args...)
}

func (fx *cliFixture) runContext(t *testing.T, ctx context.Context, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{
		"--config", fx.config,
		"--log-dir", fx.logDir,
		"--progress", "none",
		"--color=false",
	}, args...))
	err = cmd.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

func realTempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("failed to resolve temp dir: %v", err)
	}
	return dir
}

func writeTestFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
