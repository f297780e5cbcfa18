package recorder

import "time"

// RunSnapshot summarizes one ticker's analysis within a pipeline run.
type RunSnapshot struct {
	Ticker         string
	Rows           int
	MissingCells   int // missing cells observed before cleaning
	Outliers       int
	UnusualReturns int
	MeanReturn     float64
	MinReturn      float64
	MaxReturn      float64
	LastClose      float64
}

// Recorder persists pipeline run results for later analysis.
type Recorder interface {
	RecordRun(startedAt time.Time, snapshots []RunSnapshot) error
	Close() error
}
