package domain

import "github.com/shopspring/decimal"

// SummaryKey identifies one aggregation group. Equality is exact, symbol
// case and whitespace are never normalized.
type SummaryKey struct {
	Exchange Exchange
	Symbol   string
	Asset    string
	Kind     EventKind
}

// KeyOf returns the aggregation key for a ledger event.
func KeyOf(e LedgerEvent) SummaryKey {
	return SummaryKey{
		Exchange: e.Exchange,
		Symbol:   e.Symbol,
		Asset:    e.Asset,
		Kind:     e.Kind,
	}
}

// Less orders keys ascending by exchange, then symbol, asset and kind.
func (k SummaryKey) Less(other SummaryKey) bool {
	if k.Exchange != other.Exchange {
		return k.Exchange < other.Exchange
	}
	if k.Symbol != other.Symbol {
		return k.Symbol < other.Symbol
	}
	if k.Asset != other.Asset {
		return k.Asset < other.Asset
	}
	return k.Kind < other.Kind
}

// SummaryRow is the rollup of all ledger events sharing one key. Rows are
// recomputed from scratch on every run and never persisted.
type SummaryRow struct {
	Key   SummaryKey
	Total decimal.Decimal
	Count int
	First int64 // epoch milliseconds, min over the group
	Last  int64 // epoch milliseconds, max over the group
}
