package models

import "time"

// PagePair is one line of the input file: a page to capture in both environments
type PagePair struct {
	// Index is the 1-based position of the pair among non-blank input lines
	Index     int    `json:"index"`
	LeftPath  string `json:"left_path"`
	RightPath string `json:"right_path"`
}

// OutputRecord is one row of the record log, written once a pair is composited
type OutputRecord struct {
	Index          int    `json:"index"`
	LeftURL        string `json:"left_url"`
	RightURL       string `json:"right_url"`
	OutputFileName string `json:"output_file_name"`
	LeftStatus     int    `json:"left_status"`
	RightStatus    int    `json:"right_status"`
}

// Summary describes a completed or interrupted run
type Summary struct {
	RunID          string        `json:"run_id"`
	Total          int           `json:"total"`
	Processed      int           `json:"processed"`
	Skipped        int           `json:"skipped"`
	FailedCaptures int           `json:"failed_captures"`
	Duration       time.Duration `json:"duration"`
}

// Remaining returns the number of pairs neither processed nor skipped
func (s *Summary) Remaining() int {
	return s.Total - s.Processed - s.Skipped
}
