// Package normalizer maps raw exchange records into canonical ledger events.
package normalizer

import (
	"github.com/shopspring/decimal"

	"github.com/vadiminshakov/fundbook/internal/domain"
	"github.com/vadiminshakov/fundbook/internal/services/fetcher"
)

// defaultBinanceAsset is assumed when the venue omits the settlement asset.
const defaultBinanceAsset = "USDT"

// ParseFailure records one raw field that could not be parsed. The event it
// belongs to is still emitted with a zero value so a single malformed row
// never aborts the run; callers decide whether to log or count failures.
type ParseFailure struct {
	Exchange domain.Exchange
	Symbol   string
	Field    string
	Value    string
	Err      error
}

// NormalizeBinance maps raw income rows to funding ledger events. Rows of
// other income types are dropped: the fetch is already filtered, but
// payloads may mix types.
func NormalizeBinance(rows []fetcher.IncomeRecord) ([]domain.LedgerEvent, []ParseFailure) {
	events := make([]domain.LedgerEvent, 0, len(rows))
	var failures []ParseFailure

	for _, r := range rows {
		if r.IncomeType != fetcher.IncomeTypeFunding {
			continue
		}

		asset := r.Asset
		if asset == "" {
			asset = defaultBinanceAsset
		}

		amount, failure := parseAmount(domain.ExchangeBinance, r.Symbol, "income", r.Income)
		if failure != nil {
			failures = append(failures, *failure)
		}

		events = append(events, domain.LedgerEvent{
			Exchange: domain.ExchangeBinance,
			Symbol:   r.Symbol,
			Asset:    asset,
			Amount:   amount,
			Time:     r.Time,
			Kind:     domain.KindFunding,
		})
	}

	return events, failures
}

// parseAmount coerces a raw amount string to an exact decimal. An absent
// value is zero; an unparseable one is zero plus a failure record.
func parseAmount(exchange domain.Exchange, symbol, field, raw string) (decimal.Decimal, *ParseFailure) {
	if raw == "" {
		return decimal.Zero, nil
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, &ParseFailure{
			Exchange: exchange,
			Symbol:   symbol,
			Field:    field,
			Value:    raw,
			Err:      err,
		}
	}

	return amount, nil
}
