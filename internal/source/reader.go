// Package source reads raw address lists for bulk import.
package source

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Stats counts what a read skipped.
type Stats struct {
	Read    int
	Blank   int
	Invalid int
}

// ReadLines returns one address per non-blank line.
func ReadLines(r io.Reader) ([]string, Stats, error) {
	var (
		lines []string
		stats Stats
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			stats.Blank++
			continue
		}
		lines = append(lines, line)
		stats.Read++
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("failed to read lines: %w", err)
	}
	return lines, stats, nil
}

// ReadCSV returns the values of the named column. The first record is the
// header; the column match ignores case and surrounding space. Malformed
// records are counted and skipped.
func ReadCSV(r io.Reader, column string) ([]string, Stats, error) {
	var stats Stats

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, stats, fmt.Errorf("failed to read header: %w", err)
	}
	idx := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), strings.TrimSpace(column)) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, stats, fmt.Errorf("column %q not found in header %v", column, header)
	}

	var out []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			stats.Invalid++
			continue
		}
		if idx >= len(record) {
			stats.Invalid++
			continue
		}
		value := strings.TrimSpace(record[idx])
		if value == "" {
			stats.Blank++
			continue
		}
		out = append(out, value)
		stats.Read++
	}
	return out, stats, nil
}

// ReadFile opens filename and reads it as CSV when column is set, otherwise
// as plain lines.
func ReadFile(filename, column string) ([]string, Stats, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	if column != "" {
		return ReadCSV(file, column)
	}
	return ReadLines(file)
}
