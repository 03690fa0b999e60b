package datasource

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Columns a bid-history CSV export must carry. Extra columns are ignored.
var requiredColumns = []string{
	"category", "amount", "percent_of", "status", "client_type", "bid_date",
}

var bidDateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	time.RFC3339,
}

// parseBidRows reads a bid-history CSV stream into BidRows. Rows with
// unparseable amount, percentage or date columns are skipped with a warning
// rather than failing the whole import.
func parseBidRows(r io.Reader, sourceName string, logger *logrus.Logger) ([]BidRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, NewDataSourceError(sourceName, ErrCodeInvalidData, "failed to read CSV header", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, NewDataSourceError(sourceName, ErrCodeInvalidData,
				fmt.Sprintf("missing required column %q", name), nil)
		}
	}

	var rows []BidRow
	line := 1
	for {
		line++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, NewDataSourceError(sourceName, ErrCodeInvalidData,
				fmt.Sprintf("failed to read CSV line %d", line), err)
		}

		row, err := parseBidRow(record, columns)
		if err != nil {
			if logger != nil {
				logger.WithFields(logrus.Fields{
					"source": sourceName,
					"line":   line,
					"error":  err.Error(),
				}).Warn("Skipping unparseable bid row")
			}
			continue
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func parseBidRow(record []string, columns map[string]int) (BidRow, error) {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	amount, err := parseMoney(field("amount"))
	if err != nil {
		return BidRow{}, fmt.Errorf("invalid amount %q: %w", field("amount"), err)
	}

	percentOf, err := parseMoney(field("percent_of"))
	if err != nil {
		return BidRow{}, fmt.Errorf("invalid percent_of %q: %w", field("percent_of"), err)
	}

	bidDate, err := parseBidDate(field("bid_date"))
	if err != nil {
		return BidRow{}, err
	}

	return BidRow{
		Category:   field("category"),
		Amount:     amount,
		PercentOf:  percentOf,
		Status:     field("status"),
		ClientType: field("client_type"),
		City:       field("city"),
		State:      field("state"),
		BidDate:    bidDate,
	}, nil
}

// parseMoney parses a currency or percentage column, tolerating the "$", ","
// and "%" decorations estimating exports tend to carry.
func parseMoney(s string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer("$", "", ",", "", "%", "").Replace(s)
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty value")
	}
	return decimal.NewFromString(cleaned)
}

func parseBidDate(s string) (time.Time, error) {
	for _, layout := range bidDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid bid_date %q", s)
}
