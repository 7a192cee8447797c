package recorder

import (
	"context"

	"MarketLens/internal/model"
)

// NoopRecorder is a no-op implementation used when no sink is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) Record(_ context.Context, _ *model.Result) error { return nil }
func (n *NoopRecorder) Name() string                                    { return "noop" }
func (n *NoopRecorder) Close() error                                    { return nil }
