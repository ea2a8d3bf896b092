package internal

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vadiminshakov/fundbook/config"
	"github.com/vadiminshakov/fundbook/internal/clients"
	"github.com/vadiminshakov/fundbook/internal/domain"
	"github.com/vadiminshakov/fundbook/internal/services/aggregator"
	"github.com/vadiminshakov/fundbook/internal/services/fetcher"
	"github.com/vadiminshakov/fundbook/internal/services/normalizer"
	"github.com/vadiminshakov/fundbook/internal/services/report"
)

// FundingFetcher retrieves the full funding history from the start time.
type FundingFetcher interface {
	FetchFunding(ctx context.Context, startTime int64) ([]fetcher.IncomeRecord, error)
}

// PositionFetcher snapshots open positions across settle-coin partitions.
type PositionFetcher interface {
	FetchPositions(ctx context.Context) ([]fetcher.PositionRecord, []fetcher.PartitionOutcome)
}

// Emitter serializes the ledger and its summary.
type Emitter interface {
	Write(events []domain.LedgerEvent, rows []domain.SummaryRow) error
}

// RunStats summarizes one reporting run.
type RunStats struct {
	FundingEvents     int
	RealizedEvents    int
	ParseFailures     int
	SkippedPartitions int
}

// Reporter runs the fetch, normalize, aggregate, emit pipeline once.
type Reporter struct {
	funding   FundingFetcher
	positions PositionFetcher // nil when Bybit credentials are absent
	emitter   Emitter
	startTime int64
}

// NewReporter wires the pipeline from config. Missing Binance credentials
// are fatal because the funding ledger must be complete or not reported at
// all; missing Bybit credentials only drop the realized-PnL side.
func NewReporter(cfg config.Config, logger *zap.Logger) (*Reporter, error) {
	if !cfg.Binance.IsSet() {
		return nil, errors.New("BINANCE_API_KEY and BINANCE_API_SECRET environment variables must be set")
	}

	binanceClient := clients.NewBinanceIncomeClient(cfg.Binance.APIKey, cfg.Binance.APISecret)
	funding := fetcher.NewBinanceFetcher(binanceClient, logger)

	var positions PositionFetcher
	if cfg.Bybit.IsSet() {
		bybitClient := clients.NewBybitPositionClient(cfg.Bybit.APIKey, cfg.Bybit.APISecret)
		positions = fetcher.NewBybitFetcher(bybitClient, cfg.SettleCoins, logger)
	} else {
		logger.Info("Bybit credentials are not set, realized PnL will not be reported")
	}

	return &Reporter{
		funding:   funding,
		positions: positions,
		emitter:   report.NewCSVWriter(cfg.OutputDir, cfg.DetailsName, cfg.SummaryName),
		startTime: cfg.StartTime,
	}, nil
}

// Run executes one reporting pass. No file is written unless every fatal
// step succeeded.
func (r *Reporter) Run(ctx context.Context, logger *zap.Logger) (RunStats, error) {
	var stats RunStats

	rawIncome, err := r.funding.FetchFunding(ctx, r.startTime)
	if err != nil {
		return stats, errors.Wrap(err, "failed to fetch Binance funding history")
	}
	logger.Info("fetched Binance funding rows", zap.Int("rows", len(rawIncome)))

	events, failures := normalizer.NormalizeBinance(rawIncome)
	stats.FundingEvents = len(events)

	if r.positions != nil {
		rawPositions, outcomes := r.positions.FetchPositions(ctx)
		for _, outcome := range outcomes {
			if outcome.Skipped() {
				stats.SkippedPartitions++
				logger.Warn("skipped Bybit settle coin partition",
					zap.String("settleCoin", outcome.SettleCoin), zap.Error(outcome.Err))
			}
		}

		realized, pnlFailures := normalizer.NormalizeBybit(rawPositions)
		stats.RealizedEvents = len(realized)
		failures = append(failures, pnlFailures...)
		events = append(events, realized...)
		logger.Info("normalized Bybit realized PnL rows", zap.Int("rows", len(realized)))
	}

	stats.ParseFailures = len(failures)
	for _, failure := range failures {
		logger.Warn("substituted zero for unparseable field",
			zap.String("exchange", string(failure.Exchange)),
			zap.String("symbol", failure.Symbol),
			zap.String("field", failure.Field),
			zap.String("value", failure.Value),
			zap.Error(failure.Err))
	}

	rows := aggregator.Aggregate(events)

	if err := r.emitter.Write(events, rows); err != nil {
		return stats, errors.Wrap(err, "failed to write report tables")
	}

	logger.Info("report written", zap.Int("events", len(events)), zap.Int("summaryRows", len(rows)))

	return stats, nil
}
