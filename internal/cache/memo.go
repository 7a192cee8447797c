package cache

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"MarketLens/internal/model"
)

// Memo stores and restores pipeline results through a Store.
// Store failures are logged and degrade to a miss; they never fail a run.
type Memo struct {
	store Store
	log   zerolog.Logger
}

// NewMemo creates a new Memo over store.
func NewMemo(store Store, log zerolog.Logger) *Memo {
	return &Memo{store: store, log: log.With().Str("component", "cache").Logger()}
}

// Load returns the result stored under key. An entry that cannot be decoded
// is evicted and reported as a miss.
func (m *Memo) Load(ctx context.Context, key string) (*model.Result, bool) {
	b, ok, err := m.store.Get(ctx, key)
	if err != nil {
		m.log.Warn().Err(err).Str("key", key).Msg("Cache read failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}

	res, err := Decode(b)
	if err != nil {
		m.log.Warn().Err(err).Str("key", key).Msg("Evicting undecodable cache entry")
		_ = m.store.Delete(ctx, key)
		return nil, false
	}
	return res, true
}

// Save stores res under key.
func (m *Memo) Save(ctx context.Context, key string, res *model.Result) {
	b, err := Encode(res)
	if err != nil {
		m.log.Warn().Err(err).Msg("Cache encode failed")
		return
	}
	if err := m.store.Set(ctx, key, b); err != nil {
		m.log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

// Encode serializes a result with msgpack, which round-trips NaN.
func Encode(res *model.Result) ([]byte, error) {
	return msgpack.Marshal(res)
}

// Decode restores a result written by Encode with all times in UTC.
func Decode(b []byte) (*model.Result, error) {
	var res model.Result
	if err := msgpack.Unmarshal(b, &res); err != nil {
		return nil, err
	}
	if res.Dataset == nil {
		res.Dataset = model.NewDataset(nil)
	}
	res.NormalizeTimes()
	return &res, nil
}
