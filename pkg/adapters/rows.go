package adapters

import (
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/models/store"
	"github.com/samber/lo"
)

func MapStoreSheetRowToDomainRawRow(row store.SheetRow) domain.RawRow {
	return domain.RawRow{
		Product:   row.Product,
		Price:     row.Price,
		Status:    row.Status,
		EventDate: row.EventDate,
	}
}

func MapStoreSheetRowsToDomainRawRows(rows []store.SheetRow) []domain.RawRow {
	return lo.Map(rows, func(row store.SheetRow, _ int) domain.RawRow {
		return MapStoreSheetRowToDomainRawRow(row)
	})
}
