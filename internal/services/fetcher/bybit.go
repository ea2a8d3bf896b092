package fetcher

import (
	"context"

	"go.uber.org/zap"
)

// PositionRecord is a raw open-position row as reported by Bybit. Numeric
// fields stay strings here, parsing happens in the normalizer.
type PositionRecord struct {
	Symbol         string
	Size           string
	CurRealisedPnl string
	UpdatedTime    string
}

// PositionProvider fetches currently open linear positions settled in one coin.
type PositionProvider interface {
	LinearPositions(ctx context.Context, settleCoin string) ([]PositionRecord, error)
}

// PartitionOutcome reports the result of one settle-coin partition fetch.
type PartitionOutcome struct {
	SettleCoin string
	Records    int
	Err        error
}

// Skipped reports whether the partition contributed nothing.
func (o PartitionOutcome) Skipped() bool {
	return o.Err != nil
}

// BybitFetcher snapshots open positions across settle-coin partitions.
type BybitFetcher struct {
	provider    PositionProvider
	settleCoins []string
	logger      *zap.Logger
}

// NewBybitFetcher creates a new Bybit position fetcher querying the given
// settle-coin partitions.
func NewBybitFetcher(provider PositionProvider, settleCoins []string, logger *zap.Logger) *BybitFetcher {
	return &BybitFetcher{provider: provider, settleCoins: settleCoins, logger: logger}
}

// FetchPositions collects open positions across all settle-coin partitions.
// A failed partition is skipped and the remaining partitions still
// contribute; the returned outcomes say what was fetched and what was
// dropped. The fetch itself never fails as a whole.
func (f *BybitFetcher) FetchPositions(ctx context.Context) ([]PositionRecord, []PartitionOutcome) {
	var all []PositionRecord
	outcomes := make([]PartitionOutcome, 0, len(f.settleCoins))

	for _, coin := range f.settleCoins {
		rows, err := f.provider.LinearPositions(ctx, coin)
		if err != nil {
			outcomes = append(outcomes, PartitionOutcome{SettleCoin: coin, Err: err})
			continue
		}

		all = append(all, rows...)
		outcomes = append(outcomes, PartitionOutcome{SettleCoin: coin, Records: len(rows)})
		f.logger.Debug("fetched position partition", zap.String("settleCoin", coin), zap.Int("rows", len(rows)))
	}

	return all, outcomes
}
