// Package recorder persists pipeline results to external sinks.
package recorder

import (
	"context"
	"math"

	"MarketLens/internal/model"
)

// Recorder writes a full result to one sink. Every call replaces what the
// previous call wrote.
type Recorder interface {
	Record(ctx context.Context, res *model.Result) error
	Name() string
	Close() error
}

// nullable maps NaN to SQL NULL.
func nullable(v float64) any {
	if math.IsNaN(v) {
		return nil
	}
	return v
}
