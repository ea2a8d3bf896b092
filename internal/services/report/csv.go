// Package report writes the details and summary tables as CSV.
package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"

	"github.com/vadiminshakov/fundbook/internal/domain"
)

// amountPrecision is the fixed number of decimal places amounts are
// formatted with, so exact values survive the trip through text.
const amountPrecision = 10

var (
	detailsHeader = []string{"exchange", "symbol", "asset", "kind", "amount", "time"}
	summaryHeader = []string{"exchange", "symbol", "asset", "kind", "total_amount", "periods", "first_time", "last_time"}
)

// CSVWriter serializes ledger events and summary rows into the output
// directory. Both tables are staged as temp files and renamed into place
// only after everything succeeded, so a failed run leaves no partial output.
type CSVWriter struct {
	dir         string
	detailsName string
	summaryName string
}

// NewCSVWriter creates a writer emitting into dir under the given file names.
func NewCSVWriter(dir, detailsName, summaryName string) *CSVWriter {
	return &CSVWriter{dir: dir, detailsName: detailsName, summaryName: summaryName}
}

// Write emits both tables. An empty event set still produces header-only
// files.
func (w *CSVWriter) Write(events []domain.LedgerEvent, rows []domain.SummaryRow) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create output directory")
	}

	detailsTmp, err := writeTempCSV(w.dir, detailsRecords(events))
	if err != nil {
		return errors.Wrap(err, "failed to write details table")
	}

	summaryTmp, err := writeTempCSV(w.dir, summaryRecords(rows))
	if err != nil {
		os.Remove(detailsTmp)
		return errors.Wrap(err, "failed to write summary table")
	}

	if err := os.Rename(detailsTmp, filepath.Join(w.dir, w.detailsName)); err != nil {
		os.Remove(detailsTmp)
		os.Remove(summaryTmp)
		return errors.Wrap(err, "failed to move details table into place")
	}
	if err := os.Rename(summaryTmp, filepath.Join(w.dir, w.summaryName)); err != nil {
		os.Remove(summaryTmp)
		return errors.Wrap(err, "failed to move summary table into place")
	}

	return nil
}

func detailsRecords(events []domain.LedgerEvent) [][]string {
	records := make([][]string, 0, len(events)+1)
	records = append(records, detailsHeader)

	for _, e := range events {
		records = append(records, []string{
			string(e.Exchange),
			e.Symbol,
			e.Asset,
			string(e.Kind),
			e.Amount.StringFixed(amountPrecision),
			strconv.FormatInt(e.Time, 10),
		})
	}

	return records
}

func summaryRecords(rows []domain.SummaryRow) [][]string {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, summaryHeader)

	for _, row := range rows {
		records = append(records, []string{
			string(row.Key.Exchange),
			row.Key.Symbol,
			row.Key.Asset,
			string(row.Key.Kind),
			row.Total.StringFixed(amountPrecision),
			strconv.Itoa(row.Count),
			strconv.FormatInt(row.First, 10),
			strconv.FormatInt(row.Last, 10),
		})
	}

	return records
}

func writeTempCSV(dir string, records [][]string) (string, error) {
	f, err := os.CreateTemp(dir, "fundbook-*.csv")
	if err != nil {
		return "", err
	}

	wr := csv.NewWriter(f)
	if err := wr.WriteAll(records); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}

	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}

	return f.Name(), nil
}
