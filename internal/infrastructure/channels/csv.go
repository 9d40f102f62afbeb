// Package channels reads the curated channel list CSV.
package channels

import (
	"encoding/csv"
	"fmt"
	"os"

	"VideoClassifier/internal/domain"
	"VideoClassifier/internal/ports"
)

// CSVLoader reads the semicolon-delimited channel list with required columns
// channel_id and channel_title.
type CSVLoader struct {
	path string
}

var _ ports.ChannelLoader = (*CSVLoader)(nil)

// NewCSVLoader points the loader at a file path.
func NewCSVLoader(path string) *CSVLoader {
	return &CSVLoader{path: path}
}

// LoadRange reads the file and returns the [start, end) slice of data rows.
// An end of zero (or past the last row) means "through the end of the file".
func (l *CSVLoader) LoadRange(start, end int) ([]domain.Channel, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open channel csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read channel csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("channel csv %s is empty", l.path)
	}

	idCol, titleCol := -1, -1
	for i, name := range rows[0] {
		switch name {
		case "channel_id":
			idCol = i
		case "channel_title":
			titleCol = i
		}
	}
	if idCol < 0 || titleCol < 0 {
		return nil, fmt.Errorf("channel csv %s missing channel_id/channel_title columns", l.path)
	}

	data := rows[1:]
	if start < 0 {
		start = 0
	}
	if end <= 0 || end > len(data) {
		end = len(data)
	}
	if start >= end {
		return []domain.Channel{}, nil
	}

	channels := make([]domain.Channel, 0, end-start)
	for _, row := range data[start:end] {
		if len(row) <= idCol || len(row) <= titleCol {
			continue
		}
		channels = append(channels, domain.Channel{
			ID:    row[idCol],
			Title: row[titleCol],
		})
	}
	return channels, nil
}
