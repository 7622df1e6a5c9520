package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestEngineExecute(t *testing.T) {
	embedded := fstest.MapFS{
		"go/hello.tmpl": {Data: []byte(`hello {{ upper .Name }}`)},
		"README.md":     {Data: []byte(`ignored`)},
	}
	e, err := NewEngine(embedded, "", map[string]any{"upper": strings.ToUpper})
	require.NoError(t, err)

	out, err := e.Execute("go/hello.tmpl", map[string]string{"Name": "refunds"})
	require.NoError(t, err)
	require.Equal(t, "hello REFUNDS", out)

	_, err = e.Execute("README.md", nil)
	require.ErrorContains(t, err, "template not found")
}

func TestEngineCustomDirOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "go"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go", "hello.tmpl"), []byte(`custom {{ .Name }}`), 0o644))

	embedded := fstest.MapFS{"go/hello.tmpl": {Data: []byte(`embedded`)}}
	e, err := NewEngine(embedded, dir, nil)
	require.NoError(t, err)

	out, err := e.Execute("go/hello.tmpl", map[string]string{"Name": "payouts"})
	require.NoError(t, err)
	require.Equal(t, "custom payouts", out)
}

func TestEngineMissingCustomDir(t *testing.T) {
	_, err := NewEngine(fstest.MapFS{}, filepath.Join(t.TempDir(), "absent"), nil)
	require.NoError(t, err)
}

func TestEngineParseError(t *testing.T) {
	_, err := NewEngine(fstest.MapFS{"go/bad.tmpl": {Data: []byte(`{{ .Name `)}}, "", nil)
	require.ErrorContains(t, err, "parsing embedded template go/bad.tmpl")
}
