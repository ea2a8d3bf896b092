package normalizer

import (
	"strconv"
	"strings"

	"github.com/vadiminshakov/fundbook/internal/domain"
	"github.com/vadiminshakov/fundbook/internal/services/fetcher"
)

// settleSuffixes are stripped from the instrument symbol to derive the base
// asset, e.g. BTCUSDT -> BTC.
var settleSuffixes = []string{"USDT", "USDC"}

// NormalizeBybit maps open-position rows to realized-PnL ledger events.
// Positions with zero size are closed and carry no further realized-PnL
// signal, so they are dropped.
func NormalizeBybit(positions []fetcher.PositionRecord) ([]domain.LedgerEvent, []ParseFailure) {
	events := make([]domain.LedgerEvent, 0, len(positions))
	var failures []ParseFailure

	for _, pos := range positions {
		if pos.Size == "" || pos.Size == "0" || pos.Size == "0.0" {
			continue
		}
		if pos.Symbol == "" {
			continue
		}

		asset := pos.Symbol
		for _, suffix := range settleSuffixes {
			asset = strings.ReplaceAll(asset, suffix, "")
		}

		amount, failure := parseAmount(domain.ExchangeBybit, pos.Symbol, "curRealisedPnl", pos.CurRealisedPnl)
		if failure != nil {
			failures = append(failures, *failure)
		}

		events = append(events, domain.LedgerEvent{
			Exchange: domain.ExchangeBybit,
			Symbol:   pos.Symbol,
			Asset:    asset,
			Amount:   amount,
			Time:     parseTime(pos.UpdatedTime),
			Kind:     domain.KindRealizedPnl,
		})
	}

	return events, failures
}

// parseTime coerces a raw epoch-millisecond string, defaulting to zero when
// absent or unparseable.
func parseTime(raw string) int64 {
	if raw == "" {
		return 0
	}

	ts, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}

	return ts
}
