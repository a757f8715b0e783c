package batch

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
        keywords: ["restaurant", "coffee"]
  - id: cat-salary
    name: Salary
    type: income
    keywords: ["salary"]
`

const inputCSV = `id,date,description,amount,currency
tx-1,2026-08-01,coffee house downtown,-42.50,ILS
tx-2,2026-08-02,monthly salary deposit,18000.00,ILS
tx-3,2026-08-03,unknown merchant 42,-10.00,ILS
`

func TestImportCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "categories.yaml"), []byte(categoriesYAML), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "input.csv"), []byte(inputCSV), 0o600))

	cfg, err := config.InitializeConfig()
	require.NoError(t, err)
	cfg.Data.Directory = dir

	app, err := container.NewContainer(context.Background(), cfg)
	require.NoError(t, err)
	defer app.Close()
	root.SetApp(app)

	inputFile = filepath.Join(dir, "input.csv")
	outputFile = filepath.Join(dir, "output.csv")

	var buf bytes.Buffer
	Cmd.SetOut(&buf)
	Cmd.SetContext(context.Background())
	require.NoError(t, importFunc(Cmd, nil))

	out := buf.String()
	assert.Contains(t, out, "Processed:     3")
	assert.Contains(t, out, "From own data: 2")
	assert.Contains(t, out, "Uncategorized: 1")

	written, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Contains(t, string(written), "sub-restaurants")
	assert.Contains(t, string(written), "cat-salary")
}
