// Package fetcher retrieves raw cash-flow records from the exchanges.
// Binance funding is paged through exhaustively, Bybit positions are
// snapshotted per settlement coin.
package fetcher

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// IncomeTypeFunding is the Binance income type for funding payments.
const IncomeTypeFunding = "FUNDING_FEE"

const (
	pageLimit = 1000
	// maxPages bounds the pagination loop. The short-page stop assumes the
	// venue never returns an exactly full page as the true last page; the
	// bound keeps a violated assumption from looping forever.
	maxPages = 10000
)

// IncomeRecord is a raw income row as reported by Binance.
type IncomeRecord struct {
	Symbol     string
	IncomeType string
	Asset      string
	Income     string
	Time       int64 // epoch milliseconds
}

// IncomeProvider fetches one page of income history of the given type,
// starting at startTime, at most limit rows.
type IncomeProvider interface {
	IncomeHistory(ctx context.Context, incomeType string, startTime int64, limit int) ([]IncomeRecord, error)
}

// BinanceFetcher pages through Binance funding income until the history
// from the start time is exhausted.
type BinanceFetcher struct {
	provider IncomeProvider
	logger   *zap.Logger
}

// NewBinanceFetcher creates a new Binance funding fetcher.
func NewBinanceFetcher(provider IncomeProvider, logger *zap.Logger) *BinanceFetcher {
	return &BinanceFetcher{provider: provider, logger: logger}
}

// FetchFunding returns every funding income row with time >= startTime.
// Any page failure aborts the whole fetch: partial funding history is worse
// than no report. A page shorter than the page limit ends the pagination,
// otherwise the cursor advances to the last row's timestamp plus one
// millisecond.
func (f *BinanceFetcher) FetchFunding(ctx context.Context, startTime int64) ([]IncomeRecord, error) {
	var all []IncomeRecord

	cursor := startTime
	for page := 0; page < maxPages; page++ {
		rows, err := f.provider.IncomeHistory(ctx, IncomeTypeFunding, cursor, pageLimit)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to fetch income page at cursor %d", cursor)
		}
		if len(rows) == 0 {
			return all, nil
		}

		all = append(all, rows...)
		f.logger.Debug("fetched income page", zap.Int("rows", len(rows)), zap.Int64("cursor", cursor))

		if len(rows) < pageLimit {
			return all, nil
		}

		cursor = rows[len(rows)-1].Time + 1
	}

	return nil, errors.Errorf("income pagination did not terminate within %d pages", maxPages)
}
