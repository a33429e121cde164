package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ludo-technologies/rtdbuild/internal/templates"
	"github.com/ludo-technologies/rtdbuild/internal/version"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRoot builds a fresh command tree so flag state does not leak
// between tests
func newTestRoot() *cobra.Command {
	root := &cobra.Command{Use: "rtdbuild", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	root.AddCommand(NewConfCmd(), NewLocateCmd(), NewInitCmd(), NewVersionCmd())
	return root
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := newTestRoot()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func newCheckout(t *testing.T) string {
	t.Helper()
	checkout := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(checkout, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(checkout, "docs", "README.rst"), []byte("Demo\n====\n"), 0o644))
	return checkout
}

func TestVersion(t *testing.T) {
	if version.Short() == "" {
		t.Error("version should not be empty")
	}

	stdout, _, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, version.Short()+"\n", stdout)
}

func TestConfCommand_DryRun(t *testing.T) {
	checkout := newCheckout(t)

	stdout, _, err := execute(t, "conf", "--name", "Demo Docs", "--checkout", checkout, "--dry-run", "--template-dir", "/srv/templates")
	require.NoError(t, err)
	assert.Contains(t, stdout, "master_doc = 'README'")
	assert.Contains(t, stdout, "project = 'Demo Docs'")
	assert.Contains(t, stdout, "templates_path = ['/srv/templates'")
	assert.Contains(t, stdout, templates.OverlayMarker)
	assert.NoFileExists(t, filepath.Join(checkout, "docs", "conf.py"))
}

func TestConfCommand_WriteThenCheck(t *testing.T) {
	checkout := newCheckout(t)

	_, _, err := execute(t, "conf", "--name", "Demo Docs", "--checkout", checkout, "--check")
	require.Error(t, err, "check must fail before conf.py exists")

	_, stderr, err := execute(t, "conf", "--name", "Demo Docs", "--checkout", checkout, "--commit", "abc123")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Written: ")

	data, err := os.ReadFile(filepath.Join(checkout, "docs", "conf.py"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "'commit': 'abc123',")

	_, stderr, err = execute(t, "conf", "--name", "Demo Docs", "--checkout", checkout, "--commit", "abc123", "--check")
	require.NoError(t, err)
	assert.Contains(t, stderr, "up to date")

	stdout, _, err := execute(t, "conf", "--name", "Demo Docs", "--checkout", checkout, "--commit", "def456", "--check")
	require.Error(t, err)
	assert.EqualError(t, err, "conf.py is out of date for version(s): latest")
	assert.Contains(t, stdout, "+    'commit': 'def456',")
}

func TestConfCommand_FormatReport(t *testing.T) {
	checkout := newCheckout(t)

	stdout, _, err := execute(t, "conf", "--name", "Demo Docs", "--checkout", checkout, "--format", "json")
	require.NoError(t, err)

	var report struct {
		Project string `json:"project"`
		Mode    string `json:"mode"`
		Results []struct {
			Version   string `json:"version"`
			Generated bool   `json:"generated"`
			Changed   bool   `json:"changed"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, "demo-docs", report.Project)
	assert.Equal(t, "write", report.Mode)
	require.Len(t, report.Results, 1)
	assert.True(t, report.Results[0].Generated)
	assert.True(t, report.Results[0].Changed)

	stdout, _, err = execute(t, "conf", "--name", "Demo Docs", "--checkout", checkout, "--check", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, stdout, "conf.py report for demo-docs")
	assert.Contains(t, stdout, "Status: up to date")
	assert.NotContains(t, stdout, "---")

	_, _, err = execute(t, "conf", "--name", "Demo Docs", "--checkout", checkout, "--dry-run", "--format", "json")
	assert.Error(t, err)

	_, _, err = execute(t, "conf", "--name", "Demo Docs", "--checkout", checkout, "--format", "csv")
	assert.Error(t, err)
}

func TestConfCommand_Errors(t *testing.T) {
	checkout := newCheckout(t)

	_, _, err := execute(t, "conf", "--name", "Demo", "--checkout", checkout, "--dry-run", "--check")
	assert.Error(t, err)

	_, stderr, err := execute(t, "conf", "--checkout", checkout)
	assert.Error(t, err)
	assert.Contains(t, stderr, "Input Error")

	_, _, err = execute(t, "conf", "--name", "Demo", "--checkout", checkout, "--builder", "man")
	assert.Error(t, err)
}

func TestConfCommand_Registry(t *testing.T) {
	docRoot := t.TempDir()
	checkout := filepath.Join(docRoot, "pip", "checkouts", "latest")
	require.NoError(t, os.MkdirAll(filepath.Join(checkout, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(checkout, "docs", "conf.py"), []byte("project = 'pip'\n"), 0o644))

	registry := filepath.Join(t.TempDir(), "projects.yaml")
	require.NoError(t, os.WriteFile(registry, []byte(`projects:
  - slug: pip
    name: Pip
    repo: https://github.com/pypa/pip
    versions:
      - slug: latest
        identifier: main
        active: true
`), 0o644))

	stdout, _, err := execute(t, "conf", "--project", "pip", "--registry", registry, "--doc-root", docRoot, "--dry-run")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "project = 'pip'\n\n"+templates.OverlayMarker))
	assert.Contains(t, stdout, "'github_user': 'pypa',")
	assert.Contains(t, stdout, "'conf_py_path': '/docs/',")
}

func TestLocateCommand(t *testing.T) {
	checkout := newCheckout(t)

	stdout, _, err := execute(t, "locate", checkout, "--builder", "singlehtml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "would be generated")
	assert.Contains(t, stdout, "docs dir:     "+filepath.Join(checkout, "docs"))
	assert.Contains(t, stdout, "-b readthedocssinglehtmllocalmedia")

	require.NoError(t, os.WriteFile(filepath.Join(checkout, "docs", "conf.py"), []byte(""), 0o644))
	stdout, _, err = execute(t, "locate", checkout)
	require.NoError(t, err)
	assert.Contains(t, stdout, "conf.py:      "+filepath.Join(checkout, "docs", "conf.py"))
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rtdbuild.toml")

	stdout, _, err := execute(t, "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration file created")
	assert.FileExists(t, path)

	_, _, err = execute(t, "init", "--config", path)
	assert.Error(t, err)

	_, _, err = execute(t, "init", "--config", path, "--force")
	assert.NoError(t, err)
}

func TestGetExplicitFlags(t *testing.T) {
	cmd := NewConfCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--builder", "pdf", "--dry-run"}))

	flags := GetExplicitFlags(cmd)
	assert.True(t, flags["builder"])
	assert.True(t, flags["dry-run"])
	assert.False(t, flags["registry"])
	assert.Empty(t, GetExplicitFlags(nil))
}
