package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Exchange identifies the venue an event originated from.
type Exchange string

const (
	ExchangeBinance Exchange = "Binance"
	ExchangeBybit   Exchange = "Bybit"
)

// EventKind is the semantic type of a cash-flow event.
type EventKind string

const (
	// KindFunding is a periodic funding payment on a perpetual position.
	KindFunding EventKind = "funding"
	// KindRealizedPnl is the realized profit or loss accrued on an open position.
	KindRealizedPnl EventKind = "realized_pnl"
)

// LedgerEvent is one normalized cash-flow record. Amount is signed, positive
// means a credit to the account. An event carries no identity beyond its
// field values, so duplicate-valued events are both retained.
type LedgerEvent struct {
	Exchange Exchange
	Symbol   string
	Asset    string
	Amount   decimal.Decimal
	Time     int64 // epoch milliseconds
	Kind     EventKind
}

// String returns a human-readable string representation.
func (e *LedgerEvent) String() string {
	return fmt.Sprintf("%s %s %s: %s %s at %d", e.Exchange, e.Symbol, e.Kind, e.Amount.String(), e.Asset, e.Time)
}
