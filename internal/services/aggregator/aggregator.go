// Package aggregator rolls ledger events up into per-instrument summaries.
package aggregator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/vadiminshakov/fundbook/internal/domain"
)

// Aggregate partitions events by (exchange, symbol, asset, kind) and reduces
// each group to an exact-decimal total, a count and the time bounds. The
// returned rows are sorted ascending by key so identical event sets always
// serialize identically regardless of input order.
func Aggregate(events []domain.LedgerEvent) []domain.SummaryRow {
	groups := make(map[domain.SummaryKey]*domain.SummaryRow)

	for _, e := range events {
		key := domain.KeyOf(e)

		row, ok := groups[key]
		if !ok {
			row = &domain.SummaryRow{Key: key, Total: decimal.Zero, First: e.Time, Last: e.Time}
			groups[key] = row
		}

		row.Total = row.Total.Add(e.Amount)
		row.Count++
		if e.Time < row.First {
			row.First = e.Time
		}
		if e.Time > row.Last {
			row.Last = e.Time
		}
	}

	rows := make([]domain.SummaryRow, 0, len(groups))
	for _, row := range groups {
		rows = append(rows, *row)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Key.Less(rows[j].Key)
	})

	return rows
}
