package clients

import (
	"context"

	"github.com/hirokisan/bybit/v2"
	"github.com/pkg/errors"

	"github.com/vadiminshakov/fundbook/internal/services/fetcher"
)

// BybitPositionClient adapts the Bybit V5 SDK to the position provider
// interface.
type BybitPositionClient struct {
	client *bybit.Client
}

// NewBybitPositionClient creates an authenticated Bybit client.
func NewBybitPositionClient(apiKey, apiSecret string) *BybitPositionClient {
	return &BybitPositionClient{client: bybit.NewClient().WithAuth(apiKey, apiSecret)}
}

// LinearPositions returns currently open linear positions settled in the
// given coin. The SDK does not thread a context through its calls, so ctx
// only scopes the call site.
func (c *BybitPositionClient) LinearPositions(_ context.Context, settleCoin string) ([]fetcher.PositionRecord, error) {
	coin := bybit.Coin(settleCoin)

	res, err := c.client.V5().Position().GetPositionInfo(bybit.V5GetPositionInfoParam{
		Category:   bybit.CategoryV5Linear,
		SettleCoin: &coin,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch %s positions from Bybit", settleCoin)
	}
	if res.RetCode != 0 {
		return nil, errors.Errorf("bybit returned retCode=%d retMsg=%q for %s positions", res.RetCode, res.RetMsg, settleCoin)
	}

	records := make([]fetcher.PositionRecord, len(res.Result.List))
	for i, pos := range res.Result.List {
		records[i] = fetcher.PositionRecord{
			Symbol:         string(pos.Symbol),
			Size:           pos.Size,
			CurRealisedPnl: pos.CurRealisedPnl,
			UpdatedTime:    pos.UpdatedTime,
		}
	}

	return records, nil
}
