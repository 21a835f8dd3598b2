package domain

import "time"

// Statistics accumulates packaging counters over one traversal.
// It is owned and mutated exclusively by the walker; no locking is
// required for the single-threaded depth-first pass.
type Statistics struct {
	TotalFiles      int           `json:"total_files"`
	IncludedFiles   int           `json:"included_files"`
	ExcludedFiles   int           `json:"excluded_files"`
	ExcludedDirs    int           `json:"excluded_dirs"`
	TotalSize       int64         `json:"total_size"`
	CompressedSize  int64         `json:"compressed_size"`
	CommentsRemoved int           `json:"files_with_comments_removed"`
	Warnings        int           `json:"warnings"`
	Elapsed         time.Duration `json:"elapsed"`
}

// CompressionRatio returns the space saved as a percentage of the
// original size, or 0 when nothing was packaged.
func (s *Statistics) CompressionRatio() float64 {
	if s.TotalSize == 0 {
		return 0
	}
	return (1 - float64(s.CompressedSize)/float64(s.TotalSize)) * 100
}

// EntriesVisited returns the number of filesystem entries the walker
// evaluated: every file seen plus every pruned directory.
func (s *Statistics) EntriesVisited() int {
	return s.TotalFiles + s.ExcludedDirs
}
