package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketLens/internal/model"
	"MarketLens/internal/pipeline"
)

type fakeRunner struct {
	out *pipeline.Outcome
	err error
}

func (r *fakeRunner) Run(context.Context) (*pipeline.Outcome, error) { return r.out, r.err }

type fakeSender struct {
	messages []string
}

func (s *fakeSender) SendWithRetry(_ context.Context, text string, _ int) error {
	s.messages = append(s.messages, text)
	return nil
}

func outcome() *pipeline.Outcome {
	return &pipeline.Outcome{
		Result: &model.Result{
			Dataset: model.NewDataset(nil),
			Summary: model.MarketSummary{TotalStocks: 3, GreenStocks: 2, RedStocks: 1, GreenPercent: 66.666},
			Yearly: model.YearlyPerformance{
				TopGainers: []model.YearlyPerformanceEntry{{Symbol: "AAA", YearlyReturnPct: 12.5}},
			},
		},
		CacheHit: true,
	}
}

func TestRunNow_SendsDigest(t *testing.T) {
	sender := &fakeSender{}
	s := NewScheduler(context.Background(), &fakeRunner{out: outcome()}, sender, zerolog.Nop())

	s.RunNow()
	require.Len(t, sender.messages, 1)
	assert.Contains(t, sender.messages[0], "(cached)")
	assert.Contains(t, sender.messages[0], "66.7% green")
	assert.Contains(t, sender.messages[0], "<b>AAA</b> +12.50%")
	assert.Equal(t, 1, s.Runs())
}

func TestRunNow_ReportsFailure(t *testing.T) {
	sender := &fakeSender{}
	runErr := errors.New("input directory missing")
	s := NewScheduler(context.Background(), &fakeRunner{err: runErr}, sender, zerolog.Nop())

	s.RunNow()
	require.Len(t, sender.messages, 1)
	assert.Contains(t, sender.messages[0], "run failed")
	assert.Contains(t, sender.messages[0], "input directory missing")
}

func TestRunNow_PersistErrorStillSendsDigest(t *testing.T) {
	sender := &fakeSender{}
	out := outcome()
	out.PersistErr = model.ErrPersistence
	s := NewScheduler(context.Background(), &fakeRunner{out: out}, sender, zerolog.Nop())

	s.RunNow()
	assert.Len(t, sender.messages, 1)
}

func TestRunNow_WithoutNotifier(t *testing.T) {
	s := NewScheduler(context.Background(), &fakeRunner{out: outcome()}, nil, zerolog.Nop())
	assert.NotPanics(t, s.RunNow)
	assert.Equal(t, 1, s.Runs())
}

func TestRegister(t *testing.T) {
	s := NewScheduler(context.Background(), &fakeRunner{out: outcome()}, nil, zerolog.Nop())

	require.NoError(t, s.Register("0 30 18 * * 1-5"))
	assert.Len(t, s.Cron.Entries(), 1)

	err := s.Register("not a schedule")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "register analysis task")
}

func TestStartStop(t *testing.T) {
	s := NewScheduler(context.Background(), &fakeRunner{out: outcome()}, nil, zerolog.Nop())
	require.NoError(t, s.Register("@every 1h"))
	s.Start()
	s.Stop()
}
