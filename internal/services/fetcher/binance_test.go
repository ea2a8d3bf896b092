package fetcher

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubIncomeProvider struct {
	pages    [][]IncomeRecord
	requests []int64
	err      error
}

func (s *stubIncomeProvider) IncomeHistory(_ context.Context, _ string, startTime int64, _ int) ([]IncomeRecord, error) {
	s.requests = append(s.requests, startTime)
	if s.err != nil {
		return nil, s.err
	}
	if len(s.pages) == 0 {
		return nil, nil
	}

	page := s.pages[0]
	s.pages = s.pages[1:]
	return page, nil
}

func incomePage(size int, fromTime int64) []IncomeRecord {
	rows := make([]IncomeRecord, size)
	for i := range rows {
		rows[i] = IncomeRecord{
			Symbol:     "BTCUSDT",
			IncomeType: IncomeTypeFunding,
			Asset:      "USDT",
			Income:     "0.1",
			Time:       fromTime + int64(i),
		}
	}
	return rows
}

func TestFetchFundingShortPageTerminates(t *testing.T) {
	provider := &stubIncomeProvider{pages: [][]IncomeRecord{
		incomePage(1000, 1000),
		incomePage(1000, 3000),
		incomePage(400, 5000),
	}}
	f := NewBinanceFetcher(provider, zap.NewNop())

	rows, err := f.FetchFunding(context.Background(), 500)
	require.NoError(t, err)
	assert.Len(t, rows, 2400)
	assert.Len(t, provider.requests, 3, "a page below the limit must end pagination")
}

func TestFetchFundingCursorAdvance(t *testing.T) {
	provider := &stubIncomeProvider{pages: [][]IncomeRecord{
		incomePage(1000, 1000), // last row at t=1999
		incomePage(1000, 3000), // last row at t=3999
		incomePage(1, 5000),
	}}
	f := NewBinanceFetcher(provider, zap.NewNop())

	_, err := f.FetchFunding(context.Background(), 500)
	require.NoError(t, err)
	assert.Equal(t, []int64{500, 2000, 4000}, provider.requests,
		"each request must start one millisecond after the previous page's last row")
}

func TestFetchFundingEmptyFirstPage(t *testing.T) {
	provider := &stubIncomeProvider{}
	f := NewBinanceFetcher(provider, zap.NewNop())

	rows, err := f.FetchFunding(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Len(t, provider.requests, 1)
}

func TestFetchFundingTransportErrorIsFatal(t *testing.T) {
	provider := &stubIncomeProvider{err: errors.New("connection reset")}
	f := NewBinanceFetcher(provider, zap.NewNop())

	rows, err := f.FetchFunding(context.Background(), 0)
	assert.Error(t, err)
	assert.Nil(t, rows, "no partial funding history may be returned")
}
