package cli

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/gpahal/mtrand/http/client"
	"github.com/gpahal/mtrand/random"
)

// source produces the values printed by the generator commands, either from a
// local generator or from a remote server.
type source interface {
	Float(ctx context.Context, min, max *float64) (float64, error)
	Int(ctx context.Context, min, max *int64) (int64, error)
	Index(ctx context.Context, weights []float64) (int, error)
	String(ctx context.Context, length int, charset *string) (string, error)
	Shuffle(ctx context.Context, items []string, biased bool) ([]string, error)
}

type localSource struct {
	random  *random.Random
	charset string
}

func (s *localSource) Float(_ context.Context, min, max *float64) (float64, error) {
	switch {
	case min == nil && max == nil:
		return s.random.Float64(), nil
	case min == nil:
		return s.random.Float64n(*max)
	case max == nil:
		return 0, errors.New("--max is required with --min")
	default:
		return s.random.Float64Range(*min, *max)
	}
}

func (s *localSource) Int(_ context.Context, min, max *int64) (int64, error) {
	switch {
	case min == nil && max == nil:
		return s.random.Int64(), nil
	case min == nil:
		return s.random.Int64n(*max)
	case max == nil:
		return 0, errors.New("--max is required with --min")
	default:
		return s.random.Int64Range(*min, *max)
	}
}

func (s *localSource) Index(_ context.Context, weights []float64) (int, error) {
	return s.random.SelectIndex(weights)
}

func (s *localSource) String(_ context.Context, length int, charset *string) (string, error) {
	cs := s.charset
	if charset != nil {
		cs = *charset
	}
	return s.random.String(length, cs)
}

func (s *localSource) Shuffle(_ context.Context, items []string, biased bool) ([]string, error) {
	if biased {
		return random.ShuffleBiased(s.random, items), nil
	}
	return random.Shuffle(s.random, items), nil
}

type remoteSource struct {
	client *client.RandomClient
}

func (s *remoteSource) Float(ctx context.Context, min, max *float64) (float64, error) {
	return s.client.Float(ctx, min, max)
}

func (s *remoteSource) Int(ctx context.Context, min, max *int64) (int64, error) {
	return s.client.Int(ctx, min, max)
}

func (s *remoteSource) Index(ctx context.Context, weights []float64) (int, error) {
	return s.client.Index(ctx, weights)
}

func (s *remoteSource) String(ctx context.Context, length int, charset *string) (string, error) {
	return s.client.String(ctx, length, charset)
}

func (s *remoteSource) Shuffle(ctx context.Context, items []string, biased bool) ([]string, error) {
	raw := make([]json.RawMessage, len(items))
	for i, item := range items {
		bs, err := json.Marshal(item)
		if err != nil {
			return nil, errors.Wrapf(err, "encoding item %d", i)
		}
		raw[i] = bs
	}

	shuffled, err := s.client.Shuffle(ctx, raw, biased)
	if err != nil {
		return nil, err
	}

	out := make([]string, len(shuffled))
	for i, bs := range shuffled {
		if err := json.Unmarshal(bs, &out[i]); err != nil {
			return nil, errors.Wrapf(err, "decoding item %d", i)
		}
	}
	return out, nil
}
