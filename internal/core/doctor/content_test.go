package doctor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharo-jef/checklist-sub001/internal/core/config"
)

func TestContentCheck_BuiltinLibrary(t *testing.T) {
	check := &ContentCheck{Config: &config.Config{}}

	result := check.Run(context.Background())

	require.Len(t, result.Items, 1)
	assert.Equal(t, StatusPass, result.Items[0].Status)
	assert.Contains(t, result.Items[0].Detail, "categories")
}

func TestContentCheck_InvalidUserFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	content := `categories:
  - id: custom
    name: Custom
    checklists:
      - id: broken
        name: Broken
        items:
          - text: missing an id
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	check := &ContentCheck{Config: &config.Config{
		Content: config.ContentConfig{DisableBuiltin: true, Paths: []string{path}},
	}}

	result := check.Run(context.Background())

	require.NotEmpty(t, result.Items)
	var labels []string
	for _, item := range result.Items {
		assert.Equal(t, StatusFail, item.Status)
		labels = append(labels, item.Label)
	}
	assert.Contains(t, labels, "categories[0].checklists[0].items[0].id")
}

func TestContentCheck_NoContent(t *testing.T) {
	check := &ContentCheck{Config: &config.Config{
		Content: config.ContentConfig{DisableBuiltin: true},
	}}

	result := check.Run(context.Background())

	require.Len(t, result.Items, 1)
	assert.Equal(t, StatusWarn, result.Items[0].Status)
	assert.Contains(t, result.Items[0].Detail, "no checklist content")
}

func TestConfigCheck_MissingFileWarns(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.DataDir = dir

	check := &ConfigCheck{
		ConfigPath: filepath.Join(dir, "nope.yaml"),
		Config:     &cfg,
	}

	result := check.Run(context.Background())

	item, ok := findItem(result, "config file")
	require.True(t, ok)
	assert.Equal(t, StatusWarn, item.Status)
}

func TestConfigCheck_EmptyGlobWarns(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.DataDir = dir
	cfg.Content.Paths = []string{filepath.Join(dir, "*.yaml")}

	check := &ConfigCheck{ConfigPath: filepath.Join(dir, "nope.yaml"), Config: &cfg}

	result := check.Run(context.Background())

	item, ok := findItem(result, "content path")
	require.True(t, ok)
	assert.Equal(t, StatusWarn, item.Status)
	assert.Contains(t, item.Detail, "matches no files")
}
