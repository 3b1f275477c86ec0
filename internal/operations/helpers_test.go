package operations

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aquamarine5/qqbook-cli/internal/config"
)

const (
	scriptSucceed = `pwd > "$3/cwd.txt"
printf '%s\n' "$1" "$2" "$3" > "$3/args.txt"
echo "exported chapter 1"
exit 0
`
	scriptFail  = "echo 'login required' >&2\nexit 3\n"
	scriptBlock = "exec sleep 30\n"
)

func requirePOSIX(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs require a POSIX shell")
	}
}

func realTempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
}

// exporterFixture lays out a fake exporter installation whose entry point is
// a shell script run by /bin/sh, and a separate start directory.
type exporterFixture struct {
	cfg   *config.Config
	root  string
	start string
}

func newExporterFixture(t *testing.T, script string) *exporterFixture {
	t.Helper()
	requirePOSIX(t)

	root := realTempDir(t)
	start := realTempDir(t)
	writeFile(t, filepath.Join(root, "exporter.sh"), script, 0o644)
	writeFile(t, filepath.Join(root, "package.json"), `{"name":"exporter"}`, 0o644)

	cfg := &config.Config{
		Exporter: config.Exporter{
			RuntimeBinary: "/bin/sh",
			Root:          root,
			EntryPoint:    "exporter.sh",
			Manifest:      "package.json",
			CheckTimeout:  2 * time.Second,
		},
		Output: config.Output{DefaultSubdir: "out"},
	}
	return &exporterFixture{cfg: cfg, root: root, start: start}
}
