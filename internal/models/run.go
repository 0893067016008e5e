package models

import "time"

// RunRecord is one generate run as stored in the history database.
type RunRecord struct {
	RunID          string        // UUID assigned at run start
	RootDir        string        // absolute scan root
	OutputPath     string        // report destination ("" = stdout)
	FileCount      int           // files included in the report
	TotalLines     int           // approximate total line count
	TruncatedCount int           // files cut at the truncation budget
	ErrorCount     int           // files rendered as error entries
	Languages      []string      // sorted detected languages
	ProjectTypes   []string      // sorted detected project types
	Duration       time.Duration // wall time of the run
	CreatedAt      time.Time     // set by the store on insert
}
