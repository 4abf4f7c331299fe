package utils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"trading_journal/models"
)

var (
	// ErrMissingHeaders is returned when a required CSV column is absent.
	ErrMissingHeaders = errors.New("CSV is missing required headers")
	// ErrNoRows is returned when the CSV has no data row.
	ErrNoRows = errors.New("CSV file must have a header row and at least one data row")
)

// RequiredHeaders are the columns every import file must carry.
var RequiredHeaders = []string{"date", "pair", "direction", "entryPrice", "exitPrice", "size", "setup"}

// OptionalHeaders are read when present.
var OptionalHeaders = []string{"notes", "image"}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// RawTrade is one untyped CSV row keyed by header.
type RawTrade struct {
	Row    int // 1-based line number in the file, the header being line 1
	Fields map[string]string
}

// Get returns the trimmed value of a column.
func (r RawTrade) Get(key string) string {
	return strings.TrimSpace(r.Fields[key])
}

// ParseTradesCSV reads the header and data rows of an import file.
func ParseTradesCSV(r io.Reader) ([]RawTrade, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, ErrNoRows
	}

	header := make([]string, len(records[0]))
	present := make(map[string]bool, len(header))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
		present[header[i]] = true
	}

	var missing []string
	for _, h := range RequiredHeaders {
		if !present[h] {
			missing = append(missing, h)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingHeaders, strings.Join(missing, ", "))
	}

	rows := make([]RawTrade, 0, len(records)-1)
	for i, rec := range records[1:] {
		raw := RawTrade{Row: i + 2, Fields: make(map[string]string, len(header))}
		for j, h := range header {
			if j < len(rec) {
				raw.Fields[h] = strings.TrimSpace(rec[j])
			}
		}
		rows = append(rows, raw)
	}
	return rows, nil
}

// ToTrade validates the row and converts it into a coin trade.
// Rows with a parseable exit price become completed trades.
func (r RawTrade) ToTrade() (models.Trade, error) {
	entryPrice, entryErr := strconv.ParseFloat(r.Get("entryPrice"), 64)
	size, sizeErr := strconv.ParseFloat(r.Get("size"), 64)

	if r.Get("date") == "" || r.Get("pair") == "" || r.Get("direction") == "" ||
		entryErr != nil || sizeErr != nil || r.Get("setup") == "" {
		return models.Trade{}, fmt.Errorf("row %d: contains invalid or missing data, check all required fields", r.Row)
	}

	var position models.Position
	switch r.Get("direction") {
	case "long":
		position = models.PositionBuy
	case "short":
		position = models.PositionSell
	default:
		return models.Trade{}, fmt.Errorf("row %d: 'direction' must be 'long' or 'short'", r.Row)
	}

	date, err := parseDate(r.Get("date"))
	if err != nil {
		return models.Trade{}, fmt.Errorf("row %d: %w", r.Row, err)
	}

	var notes []string
	if setup := r.Get("setup"); setup != "" {
		notes = append(notes, "Setup: "+setup)
	}
	if n := r.Get("notes"); n != "" {
		notes = append(notes, n)
	}
	if img := r.Get("image"); img != "" {
		notes = append(notes, "Image URL: "+img)
	}

	trade := models.Trade{
		Date:      date,
		Market:    models.MarketCoin,
		Symbol:    r.Get("pair"),
		Position:  position,
		EntryType: models.EntryQuantity,
		Quantity:  size,
		Price:     entryPrice,
		Notes:     strings.Join(notes, "\n"),
	}

	if exit, err := strconv.ParseFloat(r.Get("exitPrice"), 64); err == nil && exit != 0 {
		trade.Close(exit)
	}

	if err := trade.Validate(); err != nil {
		return models.Trade{}, fmt.Errorf("row %d: %w", r.Row, err)
	}
	return trade, nil
}

// ImportTrades parses and converts a whole file. Any invalid row rejects the import.
func ImportTrades(r io.Reader) ([]models.Trade, error) {
	rows, err := ParseTradesCSV(r)
	if err != nil {
		return nil, err
	}

	trades := make([]models.Trade, 0, len(rows))
	for _, row := range rows {
		t, err := row.ToTrade()
		if err != nil {
			return nil, err
		}
		trades = append(trades, t)
	}
	return trades, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
