package report

import "github.com/AnyUserName/laplace-cli/internal/partition"

// Report is the JSON record of one laplace run.
type Report struct {
	Version     int                  `json:"version"`
	GeneratedAt string               `json:"generated_at"`
	Workers     int                  `json:"workers"`
	Ranges      []partition.RowRange `json:"ranges"`
	Input       ImageInfo            `json:"input"`
	Output      ImageInfo            `json:"output"`
	Timing      Timing               `json:"timing"`
	AvgColor    *[3]uint8            `json:"avg_color,omitempty"` // output [R,G,B] mean
}

// ImageInfo describes one side of the run.
type ImageInfo struct {
	Path      string `json:"path"`
	Format    string `json:"format"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Size      int64  `json:"size"`                // bytes on disk
	FileHash  string `json:"file_hash,omitempty"` // xxhash64 of the file
	PixelHash string `json:"pixel_hash"`          // xxhash64 of the RGB grid
}

// Timing holds step durations in milliseconds.
type Timing struct {
	DecodeMS float64            `json:"decode_ms"`
	PhasesMS map[string]float64 `json:"phases_ms"`
	EncodeMS float64            `json:"encode_ms"`
	TotalMS  float64            `json:"total_ms"`
}

// SupportedVersion is the current schema version.
const SupportedVersion = 1
