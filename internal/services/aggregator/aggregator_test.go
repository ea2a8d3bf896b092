package aggregator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadiminshakov/fundbook/internal/domain"
)

func fundingEvent(symbol, asset, amount string, ts int64) domain.LedgerEvent {
	return domain.LedgerEvent{
		Exchange: domain.ExchangeBinance,
		Symbol:   symbol,
		Asset:    asset,
		Amount:   decimal.RequireFromString(amount),
		Time:     ts,
		Kind:     domain.KindFunding,
	}
}

func TestAggregateSingleGroup(t *testing.T) {
	events := []domain.LedgerEvent{
		fundingEvent("BTCUSDT", "USDT", "1.5", 100),
		fundingEvent("BTCUSDT", "USDT", "-0.5", 200),
	}

	rows := Aggregate(events)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.True(t, row.Total.Equal(decimal.RequireFromString("1.0")))
	assert.Equal(t, 2, row.Count)
	assert.Equal(t, int64(100), row.First)
	assert.Equal(t, int64(200), row.Last)
}

func TestAggregateExactDecimalSum(t *testing.T) {
	events := []domain.LedgerEvent{
		fundingEvent("BTCUSDT", "USDT", "0.00000001", 1),
		fundingEvent("BTCUSDT", "USDT", "0.00000001", 2),
		fundingEvent("BTCUSDT", "USDT", "0.00000001", 3),
	}

	rows := Aggregate(events)
	require.Len(t, rows, 1)
	assert.Equal(t, "0.0000000300", rows[0].Total.StringFixed(10),
		"summing satoshi-sized amounts must not drift")
}

func TestAggregateKeyOrdering(t *testing.T) {
	events := []domain.LedgerEvent{
		{Exchange: domain.ExchangeBybit, Symbol: "ETHUSDT", Asset: "ETH", Kind: domain.KindRealizedPnl, Amount: decimal.New(1, 0), Time: 5},
		{Exchange: domain.ExchangeBinance, Symbol: "ETHUSDT", Asset: "USDT", Kind: domain.KindFunding, Amount: decimal.New(1, 0), Time: 5},
		{Exchange: domain.ExchangeBinance, Symbol: "BTCUSDT", Asset: "USDT", Kind: domain.KindFunding, Amount: decimal.New(1, 0), Time: 5},
		{Exchange: domain.ExchangeBybit, Symbol: "BTCUSDT", Asset: "BTC", Kind: domain.KindRealizedPnl, Amount: decimal.New(1, 0), Time: 5},
	}

	rows := Aggregate(events)
	require.Len(t, rows, 4)

	keys := make([]domain.SummaryKey, 0, len(rows))
	for _, row := range rows {
		keys = append(keys, row.Key)
	}
	assert.Equal(t, []domain.SummaryKey{
		{Exchange: domain.ExchangeBinance, Symbol: "BTCUSDT", Asset: "USDT", Kind: domain.KindFunding},
		{Exchange: domain.ExchangeBinance, Symbol: "ETHUSDT", Asset: "USDT", Kind: domain.KindFunding},
		{Exchange: domain.ExchangeBybit, Symbol: "BTCUSDT", Asset: "BTC", Kind: domain.KindRealizedPnl},
		{Exchange: domain.ExchangeBybit, Symbol: "ETHUSDT", Asset: "ETH", Kind: domain.KindRealizedPnl},
	}, keys)
}

func TestAggregateOrderIndependence(t *testing.T) {
	events := []domain.LedgerEvent{
		fundingEvent("BTCUSDT", "USDT", "1.5", 100),
		fundingEvent("ETHUSDT", "USDT", "-0.25", 300),
		fundingEvent("BTCUSDT", "USDT", "-0.5", 200),
		fundingEvent("ETHUSDT", "USDT", "0.75", 50),
	}
	permuted := []domain.LedgerEvent{events[3], events[1], events[0], events[2]}

	first := Aggregate(events)
	second := Aggregate(permuted)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Key, second[i].Key)
		assert.True(t, first[i].Total.Equal(second[i].Total))
		assert.Equal(t, first[i].Count, second[i].Count)
		assert.Equal(t, first[i].First, second[i].First)
		assert.Equal(t, first[i].Last, second[i].Last)
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	rows := Aggregate(nil)
	assert.Empty(t, rows)
}
