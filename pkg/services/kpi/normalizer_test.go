package kpi

import (
	"testing"
	"time"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want domain.Status
	}{
		{raw: "Godkendt", want: domain.StatusSold},
		{raw: "  godkendt ", want: domain.StatusSold},
		{raw: "GODKENDT", want: domain.StatusSold},
		{raw: "Tilbud", want: domain.StatusOffered},
		{raw: "tilbud", want: domain.StatusOffered},
		{raw: "Afslag", want: domain.StatusRejected},
		{raw: " aflsag ", want: domain.StatusRejected},
		{raw: "AFLSAG", want: domain.StatusRejected},
		{raw: "rejected", want: domain.StatusRejected},
		{raw: "Måske", want: domain.StatusUnknown},
		{raw: "", want: domain.StatusUnknown},
		{raw: "nan", want: domain.StatusUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseStatus(tc.raw))
		})
	}
}

func TestNormalizeStatusLabel(t *testing.T) {
	assert.Equal(t, "Afslag", NormalizeStatusLabel(" aflsag "))
	assert.Equal(t, "Tilbud", NormalizeStatusLabel("TILBUD"))
	assert.Equal(t, "Ærgerligt", NormalizeStatusLabel("ÆRGERLIGT"))
	assert.Equal(t, "", NormalizeStatusLabel("   "))
}

func TestParseDate(t *testing.T) {
	may3 := time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  string
		want *time.Time
	}{
		{name: "day first slash", raw: "03/05/2024", want: &may3},
		{name: "day first short", raw: "3/5/2024", want: &may3},
		{name: "day first dash", raw: "03-05-2024", want: &may3},
		{name: "day first dot", raw: "03.05.2024", want: &may3},
		{name: "day first with time", raw: "03/05/2024 14:30:00", want: &may3},
		{name: "single digits with minutes", raw: "3/5/2024 14:30", want: &may3},
		{name: "single digit hour", raw: "3/5/2024 0:00", want: &may3},
		{name: "dash with minutes", raw: "3-5-2024 14:30", want: &may3},
		{name: "dot with minutes", raw: "3.5.2024 14:30", want: &may3},
		{name: "dot with seconds", raw: "03.05.2024 14:30:00", want: &may3},
		{name: "two digit year slash", raw: "3/5/24", want: &may3},
		{name: "two digit year dash", raw: "03-05-24", want: &may3},
		{name: "two digit year dot", raw: "3.5.24", want: &may3},
		{name: "iso slash", raw: "2024/05/03", want: &may3},
		{name: "iso", raw: "2024-05-03", want: &may3},
		{name: "iso with time", raw: "2024-05-03 09:00:00", want: &may3},
		{name: "padded", raw: "  03/05/2024 ", want: &may3},
		{name: "blank", raw: "", want: nil},
		{name: "garbage", raw: "next tuesday", want: nil},
		{name: "impossible day", raw: "31/02/2024", want: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseDate(tc.raw)
			if tc.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tc.want.Equal(*got), "got %s", got)
		})
	}
}

func TestParsePrice(t *testing.T) {
	price, ok := ParsePrice(" 1499.50 ")
	require.True(t, ok)
	assert.Equal(t, "1499.5", price.String())

	_, ok = ParsePrice("abc")
	assert.False(t, ok)

	_, ok = ParsePrice("")
	assert.False(t, ok)

	_, ok = ParsePrice("-10")
	assert.False(t, ok)

	price, ok = ParsePrice("0")
	require.True(t, ok)
	assert.True(t, price.IsZero())
}

func TestNormalize(t *testing.T) {
	t.Run("valid row", func(t *testing.T) {
		rec, ok := Normalize(domain.RawRow{Product: " Cookie ", Price: "100", Status: "godkendt", EventDate: "01/05/2024"})
		require.True(t, ok)
		assert.Equal(t, "Cookie", rec.Product)
		assert.Equal(t, "100", rec.Price.String())
		assert.Equal(t, domain.StatusSold, rec.Status)
		require.True(t, rec.HasDate())
		assert.Equal(t, 18, rec.Week)
		assert.Equal(t, 2024, rec.Year)
	})

	t.Run("bad date keeps the record undated", func(t *testing.T) {
		rec, ok := Normalize(domain.RawRow{Product: "SEO", Price: "200", Status: "Tilbud", EventDate: "soon"})
		require.True(t, ok)
		assert.False(t, rec.HasDate())
		assert.Zero(t, rec.Week)
		assert.Zero(t, rec.Year)
	})

	t.Run("iso year differs from calendar year", func(t *testing.T) {
		rec, ok := Normalize(domain.RawRow{Product: "SEO", Price: "1", EventDate: "30/12/2024"})
		require.True(t, ok)
		assert.Equal(t, 1, rec.Week)
		assert.Equal(t, 2025, rec.Year)
	})

	t.Run("missing product", func(t *testing.T) {
		_, ok := Normalize(domain.RawRow{Product: "  ", Price: "100", Status: "Godkendt"})
		assert.False(t, ok)
	})

	t.Run("non numeric price", func(t *testing.T) {
		_, ok := Normalize(domain.RawRow{Product: "Cookie", Price: "abc", Status: "Godkendt"})
		assert.False(t, ok)
	})
}

func TestNormalizeAll(t *testing.T) {
	rows := []domain.RawRow{
		{Product: "Cookie", Price: "100", Status: "Godkendt", EventDate: "2024-05-01"},
		{Product: "", Price: "100"},
		{Product: "Cookie", Price: "abc"},
		{Product: "SEO", Price: "200", Status: "Tilbud", EventDate: "2024-05-08"},
	}

	records, dropped := NormalizeAll(rows)

	assert.Equal(t, 2, dropped)
	require.Len(t, records, 2)
	assert.Equal(t, "Cookie", records[0].Product)
	assert.Equal(t, "SEO", records[1].Product)
}
