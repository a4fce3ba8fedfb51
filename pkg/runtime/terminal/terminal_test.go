package terminal

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exportCSV = `product,price,status,event_date
Cookie,100,Godkendt,01/05/2024
Cookie,50,Godkendt,03/05/2024
SEO,200,Tilbud,08/05/2024
SEO,80,Aflsag,08/05/2024
`

const periodsINI = `[q2]
start_week = 18
end_week = 19
year = 2024
goal = 1000
products = Cookie, SEO
`

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

func workspace(t *testing.T, kind string) string {
	dir := t.TempDir()
	files := map[string]string{
		"export.csv":  exportCSV,
		"periods.ini": periodsINI,
		"sales-atlas.yaml": "source:\n  kind: " + kind + "\n  path: export.csv\n  db_path: rows.db\n" +
			"periods_file: periods.ini\ncurrency: DKK\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	var out, errOut bytes.Buffer
	cli := NewCLI(Options{
		Clock:  fixedClock(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)),
		Output: &out,
		ErrOut: &errOut,
	})
	cli.SetArgs(args)
	err := cli.Execute()
	return out.String(), err
}

func TestCLI_Periods(t *testing.T) {
	dir := workspace(t, "csv")

	out, err := run(t, "periods", "--config", filepath.Join(dir, "sales-atlas.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "q2")
	assert.Contains(t, out, "1000.00 DKK")
	assert.Contains(t, out, "Cookie, SEO")
}

func TestCLI_Compute(t *testing.T) {
	dir := workspace(t, "csv")
	cfg := filepath.Join(dir, "sales-atlas.yaml")

	t.Run("table", func(t *testing.T) {
		out, err := run(t, "compute", "--config", cfg, "--period", "q2")
		require.NoError(t, err)
		assert.Contains(t, out, "Sales KPIs: q2")
		assert.Contains(t, out, "Sold: 150.00 DKK of 1000.00 DKK")
		assert.Contains(t, out, "(current week 18)")
		assert.Contains(t, out, "Hit-rate: 50.0%")
		assert.Contains(t, out, "| Week 18")
	})

	t.Run("text with explicit week", func(t *testing.T) {
		out, err := run(t, "compute", "--config", cfg, "--period", "q2", "--week", "19", "--format", "text")
		require.NoError(t, err)
		assert.Contains(t, out, "(current week 19)")
		assert.Contains(t, out, "- 1. Cookie: 150.00 DKK (2 sold)")
		assert.Contains(t, out, "Remaining Weeks: 0")
	})

	t.Run("unknown period", func(t *testing.T) {
		_, err := run(t, "compute", "--config", cfg, "--period", "q9")
		assert.ErrorContains(t, err, "period not found")
	})

	t.Run("bad week", func(t *testing.T) {
		_, err := run(t, "compute", "--config", cfg, "--period", "q2", "--week", "60")
		assert.ErrorContains(t, err, "invalid week 60")
	})

	t.Run("bad format", func(t *testing.T) {
		_, err := run(t, "compute", "--config", cfg, "--period", "q2", "--format", "xml")
		assert.ErrorContains(t, err, "unsupported format")
	})
}

func TestCLI_ImportThenCompute(t *testing.T) {
	dir := workspace(t, "duckdb")
	cfg := filepath.Join(dir, "sales-atlas.yaml")

	out, err := run(t, "import", "--config", cfg, "--csv", filepath.Join(dir, "export.csv"), "--quiet")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 4 rows")

	out, err = run(t, "compute", "--config", cfg, "--period", "q2", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Sold: 150.00 DKK of 1000.00 DKK")

	out, err = run(t, "history", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "#1")
	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "export.csv")
}
