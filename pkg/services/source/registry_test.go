package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/models/store"
	"github.com/de-tools/sales-atlas/pkg/store/duckdb"
	"github.com/de-tools/sales-atlas/pkg/store/duckdb/rows"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	rows []domain.RawRow
}

func (s *staticSource) Rows(context.Context) ([]domain.RawRow, error) { return s.rows, nil }
func (s *staticSource) Close() error                                { return nil }

func TestRegistry(t *testing.T) {
	static := func(_ context.Context, _ Settings) (Source, error) {
		return &staticSource{rows: []domain.RawRow{{Product: "Cookie"}}}, nil
	}

	t.Run("register and create", func(t *testing.T) {
		r, err := NewRegistry(map[string]Factory{"static": static})
		require.NoError(t, err)

		src, err := r.Create(context.Background(), "static", Settings{})
		require.NoError(t, err)
		got, err := src.Rows(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []domain.RawRow{{Product: "Cookie"}}, got)
	})

	t.Run("duplicate kind", func(t *testing.T) {
		r, err := NewRegistry(nil)
		require.NoError(t, err)
		require.NoError(t, r.Register("static", static))
		assert.Error(t, r.Register("static", static))
	})

	t.Run("invalid registration", func(t *testing.T) {
		r, err := NewRegistry(nil)
		require.NoError(t, err)
		assert.Error(t, r.Register("", static))
		assert.Error(t, r.Register("static", nil))
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := DefaultRegistry().Create(context.Background(), "gsheets", Settings{})
		assert.Error(t, err)
	})

	t.Run("default kinds", func(t *testing.T) {
		assert.Equal(t, []string{KindCSV, KindDuckDB}, DefaultRegistry().ListKinds())
	})
}

func TestCSVSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "salg.csv")
	content := "product,price,status,event_date\nCookie,100,Godkendt,01/05/2024\nSEO,abc,Tilbud,08/05/2024\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	src, err := DefaultRegistry().Create(context.Background(), KindCSV, Settings{Path: path})
	require.NoError(t, err)
	defer src.Close()

	got, err := src.Rows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.RawRow{
		{Product: "Cookie", Price: "100", Status: "Godkendt", EventDate: "01/05/2024"},
		{Product: "SEO", Price: "abc", Status: "Tilbud", EventDate: "08/05/2024"},
	}, got)

	_, err = NewCSVSource(context.Background(), Settings{})
	assert.Error(t, err)
}

func TestStoreSource(t *testing.T) {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rowStore, err := rows.NewStore(db)
	require.NoError(t, err)
	require.NoError(t, rowStore.Add(context.Background(), []store.SheetRow{
		{Product: "Cookie", Price: "100", Status: "Godkendt", EventDate: "01/05/2024"},
	}))

	src := NewStoreSource(rowStore)
	got, err := src.Rows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.RawRow{{Product: "Cookie", Price: "100", Status: "Godkendt", EventDate: "01/05/2024"}}, got)
	assert.NoError(t, src.Close())
}

func TestDuckDBSource_RequiresPath(t *testing.T) {
	_, err := NewDuckDBSource(context.Background(), Settings{})
	assert.Error(t, err)
}
