// Package clients adapts the exchange SDKs to the fetcher interfaces. The
// SDKs own request signing, timestamps and the recvWindow bound.
package clients

import (
	"context"

	"github.com/adshao/go-binance/v2/futures"
	"github.com/pkg/errors"

	"github.com/vadiminshakov/fundbook/internal/services/fetcher"
)

// BinanceIncomeClient adapts the Binance USD-M futures SDK to the income
// provider interface.
type BinanceIncomeClient struct {
	client *futures.Client
}

// NewBinanceIncomeClient creates an authenticated Binance futures client.
func NewBinanceIncomeClient(apiKey, apiSecret string) *BinanceIncomeClient {
	return &BinanceIncomeClient{client: futures.NewClient(apiKey, apiSecret)}
}

// IncomeHistory fetches one page of income history from Binance.
func (c *BinanceIncomeClient) IncomeHistory(ctx context.Context, incomeType string, startTime int64, limit int) ([]fetcher.IncomeRecord, error) {
	svc := c.client.NewGetIncomeHistoryService().
		IncomeType(incomeType).
		Limit(int64(limit))
	if startTime > 0 {
		svc = svc.StartTime(startTime)
	}

	rows, err := svc.Do(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch income history from Binance")
	}

	records := make([]fetcher.IncomeRecord, len(rows))
	for i, r := range rows {
		records[i] = fetcher.IncomeRecord{
			Symbol:     r.Symbol,
			IncomeType: r.IncomeType,
			Asset:      r.Asset,
			Income:     r.Income,
			Time:       r.Time,
		}
	}

	return records, nil
}
