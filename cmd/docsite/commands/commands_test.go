package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	ferrors "github.com/lianghchao/docsite/internal/foundation/errors"
)

// project lays out a config file in a temp dir and returns the CLI pointing at it.
func project(t *testing.T, configYAML string) (*CLI, string) {
	t.Helper()
	t.Setenv("DOCSITE_URL", "")
	t.Setenv("DOCSITE_BASE_URL", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "docsite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o600))
	return &CLI{Config: path}, dir
}

func global() (*Global, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Global{RunID: "test-run", Out: &buf}, &buf
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestGenerateWritesConfiguration(t *testing.T) {
	cli, dir := project(t, "output:\n  format: json\n")
	g, out := global()

	require.NoError(t, (&GenerateCmd{}).Run(g, cli))
	require.Contains(t, out.String(), "Wrote ")

	data, err := os.ReadFile(filepath.Join(dir, "site.config.json"))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Equal(t, "LiangHChao的个人博客项目", doc["title"])
	require.Len(t, doc["plugins"], 3)

	out.Reset()
	require.NoError(t, (&GenerateCmd{}).Run(g, cli))
	require.Contains(t, out.String(), "Up to date: ")
}

func TestGenerateFlagsOverrideConfig(t *testing.T) {
	cli, dir := project(t, "output:\n  format: json\n")
	g, _ := global()
	outDir := filepath.Join(dir, "build")

	require.NoError(t, (&GenerateCmd{Output: outDir, Format: "yaml"}).Run(g, cli))
	require.FileExists(t, filepath.Join(outDir, "site.config.yaml"))
	require.NoFileExists(t, filepath.Join(dir, "site.config.json"))
}

func TestGenerateRejectsUnknownFormat(t *testing.T) {
	cli, _ := project(t, "")
	g, _ := global()

	err := (&GenerateCmd{Format: "toml"}).Run(g, cli)
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
}

func TestGenerateAppliesSiteOverrides(t *testing.T) {
	cli, dir := project(t, "output:\n  format: json\nsite:\n  url: https://docs.example.com\n  base_url: handbook\n")
	g, _ := global()

	require.NoError(t, (&GenerateCmd{}).Run(g, cli))

	data, err := os.ReadFile(filepath.Join(dir, "site.config.json"))
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Equal(t, "https://docs.example.com", doc["url"])
	require.Equal(t, "/handbook/", doc["baseUrl"])
}

func TestGenerateWritesMetricsFile(t *testing.T) {
	cli, dir := project(t, "output:\n  format: ts\n")
	g, _ := global()
	metricsPath := filepath.Join(dir, "docsite.prom")

	require.NoError(t, (&GenerateCmd{MetricsFile: metricsPath}).Run(g, cli))
	require.FileExists(t, filepath.Join(dir, "docusaurus.config.ts"))

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "docsite_doc_instances 3")
	require.Contains(t, string(data), `docsite_run_outcomes_total{outcome="success"} 1`)
}

func TestGenerateStampsCommit(t *testing.T) {
	cli, dir := project(t, "output:\n  format: json\n  stamp_commit: true\n")
	g, _ := global()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("docsite.yaml")
	require.NoError(t, err)
	hash, err := wt.Commit("init", &git.CommitOptions{
		Author: &object.Signature{Name: "Test User", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	require.NoError(t, (&GenerateCmd{}).Run(g, cli))

	data, err := os.ReadFile(filepath.Join(dir, "site.config.json"))
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	fields, ok := doc["customFields"].(map[string]any)
	require.True(t, ok, "customFields missing")
	require.Equal(t, hash.String(), fields["gitCommit"])
	require.Equal(t, "master", fields["gitBranch"])
}

func TestCheckPassesAfterCommittingStampedOutput(t *testing.T) {
	cli, dir := project(t, "output:\n  format: json\n  stamp_commit: true\n")
	g, out := global()
	sig := &object.Signature{Name: "Test User", Email: "test@example.com", When: time.Now()}

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("docsite.yaml")
	require.NoError(t, err)
	_, err = wt.Commit("init", &git.CommitOptions{Author: sig})
	require.NoError(t, err)

	require.NoError(t, (&GenerateCmd{}).Run(g, cli))
	_, err = wt.Add("site.config.json")
	require.NoError(t, err)
	_, err = wt.Commit("generate site config", &git.CommitOptions{Author: sig})
	require.NoError(t, err)

	out.Reset()
	require.NoError(t, (&CheckCmd{}).Run(g, cli))
	require.Contains(t, out.String(), "is up to date")

	writeFile(t, dir, "docsite.yaml", "output:\n  format: json\n  stamp_commit: true\nsite:\n  url: https://docs.example.com\n")
	out.Reset()
	err = (&CheckCmd{}).Run(g, cli)
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryDrift))
	require.Contains(t, out.String(), "docs.example.com")
	require.NotContains(t, out.String(), "gitCommit")
}

func TestGenerateWithoutRepositorySkipsStamp(t *testing.T) {
	cli, dir := project(t, "output:\n  format: json\n  stamp_commit: true\n")
	g, _ := global()

	require.NoError(t, (&GenerateCmd{}).Run(g, cli))

	data, err := os.ReadFile(filepath.Join(dir, "site.config.json"))
	require.NoError(t, err)
	require.NotContains(t, string(data), "gitCommit")
}

func TestCheck(t *testing.T) {
	cli, dir := project(t, "output:\n  format: json\n")
	g, out := global()

	err := (&CheckCmd{}).Run(g, cli)
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))

	require.NoError(t, (&GenerateCmd{}).Run(g, cli))
	out.Reset()
	require.NoError(t, (&CheckCmd{}).Run(g, cli))
	require.Contains(t, out.String(), "is up to date")

	writeFile(t, dir, "site.config.json", "{\"title\": \"edited by hand\"}\n")
	out.Reset()
	err = (&CheckCmd{}).Run(g, cli)
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryDrift))
	require.Equal(t, 3, ferrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
	require.Contains(t, out.String(), "is out of date")
	require.Contains(t, out.String(), "edited by hand")
}

func TestValidate(t *testing.T) {
	cli, _ := project(t, "")
	g, out := global()

	require.NoError(t, (&ValidateCmd{}).Run(g, cli))
	require.Equal(t, "Configuration is valid: 3 doc instances, 5 navbar items, 3 footer sections\n", out.String())
}

func TestInvalidConfigurationMapsToConfigExitCode(t *testing.T) {
	cli, _ := project(t, "site:\n  url: https://example.com/docs\n")
	g, _ := global()

	err := (&ValidateCmd{}).Run(g, cli)
	require.Error(t, err)
	require.Equal(t, 7, ferrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestMissingConfigUsesDefaults(t *testing.T) {
	t.Setenv("DOCSITE_URL", "")
	t.Setenv("DOCSITE_BASE_URL", "")
	g, out := global()

	cli := &CLI{Config: filepath.Join(t.TempDir(), "absent.yaml")}
	require.NoError(t, (&ValidateCmd{}).Run(g, cli))
	require.Contains(t, out.String(), "Configuration is valid")
}

func TestShowTables(t *testing.T) {
	cli, _ := project(t, "")
	g, out := global()

	require.NoError(t, (&ShowCmd{}).Run(g, cli))
	text := out.String()
	for _, want := range []string{"javadoc", "/docs/sqlDoc/", "sidebarsSQLdoc.ts", "GitHub", "Learn More", "Dinosaurs", "blog -> /docs/blog/"} {
		require.Contains(t, text, want)
	}
	require.Less(t, strings.Index(text, "Docs"), strings.Index(text, "Learn More"))
}

func TestShowJSON(t *testing.T) {
	cli, _ := project(t, "")
	g, out := global()

	require.NoError(t, (&ShowCmd{JSON: true}).Run(g, cli))
	var doc map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	require.Equal(t, "/docs/", doc["baseUrl"])
}

func TestPreflight(t *testing.T) {
	cli, dir := project(t, "")
	g, out := global()

	err := (&PreflightCmd{}).Run(g, cli)
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))
	require.Contains(t, out.String(), "11 paths checked: 8 errors, 3 warnings")

	for _, d := range []string{"docs", "javadoc", "sql-doc", "blog"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, d), 0o750))
	}
	for _, f := range []string{"sidebars.ts", "sidebarsJavadoc.ts", "sidebarsSQLdoc.ts", "src/css/custom.css"} {
		writeFile(t, dir, f, "")
	}
	out.Reset()
	require.NoError(t, (&PreflightCmd{}).Run(g, cli))
	require.Contains(t, out.String(), "0 errors, 3 warnings")
}

func TestInventory(t *testing.T) {
	cli, dir := project(t, "")
	writeFile(t, dir, "docs/intro.md", "# Tutorial Intro\n")
	writeFile(t, dir, "sql-doc/select.md", "---\ntitle: SELECT\ndraft: true\n---\nbody\n")
	g, out := global()

	require.NoError(t, (&InventoryCmd{}).Run(g, cli))
	require.Contains(t, out.String(), "sqlDoc")
	require.Contains(t, out.String(), "javadoc", "instances without pages are listed")
	require.Contains(t, strings.ToLower(out.String()), "total")

	out.Reset()
	require.NoError(t, (&InventoryCmd{Instance: "sqlDoc"}).Run(g, cli))
	require.Contains(t, out.String(), "/docs/sqlDoc/select")
	require.Contains(t, out.String(), "SELECT (draft)")
	require.NotContains(t, out.String(), "Tutorial Intro")

	err := (&InventoryCmd{Instance: "nope"}).Run(g, cli)
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
}

func TestInit(t *testing.T) {
	t.Setenv("DOCSITE_URL", "")
	t.Setenv("DOCSITE_BASE_URL", "")
	path := filepath.Join(t.TempDir(), "docsite.yaml")
	cli := &CLI{Config: path}
	g, out := global()

	require.NoError(t, (&InitCmd{}).Run(g, cli))
	require.Contains(t, out.String(), "Wrote "+path)
	require.FileExists(t, path)

	err := (&InitCmd{}).Run(g, cli)
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryAlreadyExists))
	require.NoError(t, (&InitCmd{Force: true}).Run(g, cli))

	require.NoError(t, (&ValidateCmd{}).Run(g, cli))
}

func TestWatchGeneratesUntilCancelled(t *testing.T) {
	cli, dir := project(t, "output:\n  format: json\nwatch:\n  debounce: 50ms\n")
	g, _ := global()

	ctx, cancel := context.WithCancel(g.context(context.Background(), "watch"))
	done := make(chan error, 1)
	go func() { done <- (&WatchCmd{}).run(ctx, cli) }()

	output := filepath.Join(dir, "site.config.json")
	require.Eventually(t, func() bool {
		_, err := os.Stat(output)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	// A manual edit to the output is overwritten. The edit is repeated until the watcher,
	// which starts after the initial generation, has picked it up.
	edited := false
	require.Eventually(t, func() bool {
		data, err := os.ReadFile(output)
		if edited && err == nil && len(data) > 100 {
			return true
		}
		_ = os.WriteFile(output, []byte("{}\n"), 0o600)
		edited = true
		return false
	}, 5*time.Second, 150*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
}

func TestWatchFollowsOutputDirectoryChange(t *testing.T) {
	cli, dir := project(t, "output:\n  format: json\nwatch:\n  debounce: 50ms\n")
	g, _ := global()

	ctx, cancel := context.WithCancel(g.context(context.Background(), "watch"))
	done := make(chan error, 1)
	go func() { done <- (&WatchCmd{}).run(ctx, cli) }()

	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(dir, "site.config.json"))
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	moved := filepath.Join(dir, "build", "site.config.json")
	require.Eventually(t, func() bool {
		if _, err := os.Stat(moved); err == nil {
			return true
		}
		_ = os.WriteFile(cli.Config, []byte("output:\n  format: json\n  directory: build\nwatch:\n  debounce: 50ms\n"), 0o600)
		return false
	}, 5*time.Second, 150*time.Millisecond)

	// The new output location is watched once the watcher has been rebuilt.
	edited := false
	require.Eventually(t, func() bool {
		data, err := os.ReadFile(moved)
		if edited && err == nil && len(data) > 100 {
			return true
		}
		_ = os.WriteFile(moved, []byte("{}\n"), 0o600)
		edited = true
		return false
	}, 5*time.Second, 150*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
}

func TestWatchedFiles(t *testing.T) {
	cli, dir := project(t, "")
	cfg, err := loadConfig(cli)
	require.NoError(t, err)

	files := watchedFiles(cli.Config, cfg, filepath.Join(dir, "docusaurus.config.ts"))
	require.Contains(t, files, cli.Config)
	require.Contains(t, files, filepath.Join(dir, "sidebarsJavadoc.ts"))
	require.Contains(t, files, filepath.Join(dir, "src", "css", "custom.css"))
	require.Contains(t, files, filepath.Join(dir, "docusaurus.config.ts"))
}
