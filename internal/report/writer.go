// Package report records the parameters and results of a run as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// New creates an empty report stamped with the current time.
func New(workers int) *Report {
	return &Report{
		Version:     SupportedVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Workers:     workers,
		Timing:      Timing{PhasesMS: make(map[string]float64)},
	}
}

// Millis converts d to fractional milliseconds.
func Millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}

// WriteJSON serializes r as indented JSON.
func WriteJSON(r *Report, path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// Read parses a report file. Unknown fields are ignored.
func Read(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &r, nil
}
