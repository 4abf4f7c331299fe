package utils

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"trading_journal/models"
)

// StatsHeader is the first row of a stats snapshot file.
var StatsHeader = []string{"Timestamp", "TotalTrades", "CompletedTrades", "TotalPnL", "WinRate", "AvgPnL", "MaxProfit", "MaxLoss"}

// AppendStatsToCSV appends a stats snapshot taken at ts to filename, writing
// StatsHeader first when the file is new or empty.
func AppendStatsToCSV(filename string, ts time.Time, stats models.Stats) error {
	file, empty, err := openForAppend(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	rows := [][]string{StatsRecord(ts, stats)}
	if empty {
		rows = append([][]string{StatsHeader}, rows...)
	}
	if err := csv.NewWriter(file).WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write stats snapshot: %w", err)
	}
	return nil
}

// StatsRecord is the CSV row of a snapshot, amounts with two decimals.
func StatsRecord(ts time.Time, s models.Stats) []string {
	amount := func(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) }
	return []string{
		ts.Format(time.RFC3339),
		strconv.Itoa(s.TotalTrades),
		strconv.Itoa(s.CompletedTrades),
		amount(s.TotalPnL),
		amount(s.WinRate),
		amount(s.AvgPnL),
		amount(s.MaxProfit),
		amount(s.MaxLoss),
	}
}

// openForAppend creates filename and its directory if needed and reports
// whether the file is empty.
func openForAppend(filename string) (*os.File, bool, error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return nil, false, fmt.Errorf("failed to create directory for %s: %w", filename, err)
	}
	file, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, false, fmt.Errorf("failed to open CSV file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, false, fmt.Errorf("failed to stat %s: %w", filename, err)
	}
	return file, info.Size() == 0, nil
}
