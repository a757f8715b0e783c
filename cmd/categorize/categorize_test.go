package categorize

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shekelio/autocat/cmd/root"
	"shekelio/autocat/internal/config"
	"shekelio/autocat/internal/container"
)

const categoriesYAML = `categories:
  - id: cat-food
    name: Food
    type: expense
    subcategories:
      - id: sub-restaurants
        name: Restaurants
        keywords: ["restaurant", "מסעדה"]
`

func setupApp(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "categories.yaml"), []byte(categoriesYAML), 0o600))

	cfg, err := config.InitializeConfig()
	require.NoError(t, err)
	cfg.Data.Directory = dir

	app, err := container.NewContainer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })
	root.SetApp(app)
}

func TestCategorizeCommand_KeywordHit(t *testing.T) {
	setupApp(t)

	description = "מסעדה הכרם"
	memo = ""
	amount = "-120.50"
	date = "2026-08-01"
	txType = ""
	rawCategory = ""

	var buf bytes.Buffer
	Cmd.SetOut(&buf)
	Cmd.SetContext(context.Background())
	require.NoError(t, categorizeFunc(Cmd, nil))

	out := buf.String()
	assert.Contains(t, out, "cat-food")
	assert.Contains(t, out, "sub-restaurants")
	assert.Contains(t, out, "previous-data")
}

func TestCategorizeCommand_NoSignal(t *testing.T) {
	setupApp(t)

	description = "unknown merchant 42"
	amount = "-10"
	date = ""
	txType = ""
	rawCategory = ""

	var buf bytes.Buffer
	Cmd.SetOut(&buf)
	Cmd.SetContext(context.Background())
	require.NoError(t, categorizeFunc(Cmd, nil))

	assert.Contains(t, buf.String(), "No category found")
	assert.Contains(t, buf.String(), "expense")
}

func TestCategorizeCommand_BadDate(t *testing.T) {
	setupApp(t)

	description = "shop"
	amount = "-1"
	date = "01/08/2026"

	Cmd.SetContext(context.Background())
	err := categorizeFunc(Cmd, nil)
	assert.Error(t, err)
}
