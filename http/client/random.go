package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/gpahal/mtrand/api"
	"github.com/gpahal/mtrand/random"
	"github.com/gpahal/mtrand/retry"
)

// DefaultRetryOptions retries up to maxAttempts times, and for at most timeout
// when it is positive, with jittered exponential backoff capped at 5s. Only
// transport failures and temporary statuses are retried. A nil rnd uses
// random.Default().
func DefaultRetryOptions(maxAttempts int, timeout time.Duration, rnd *random.Random) retry.Options {
	var timeoutStopper retry.Stopper
	if timeout > 0 {
		timeoutStopper = retry.TimeoutStopper(timeout)
	}

	return retry.Options{
		Delayer: retry.JitterDelayer(
			retry.LimitDelayer(retry.ExponentialBackoffDelayer(100*time.Millisecond), 5*time.Second),
			0.2,
			rnd,
		),
		Stopper: retry.AnyStopper(
			retry.MaxAttemptsStopper(maxAttempts),
			timeoutStopper,
			retry.PredicateStopper(isRetryable),
		),
	}
}

func isRetryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	return true
}

// RandomClient calls the random API served by the api package.
type RandomClient struct {
	client *Client
}

func NewRandomClient(opts Options) (*RandomClient, error) {
	c, err := NewWithOptions(opts)
	if err != nil {
		return nil, err
	}
	return &RandomClient{client: c}, nil
}

// Float returns a number in [0,1) when both bounds are nil, [0,*max) when only
// max is set and [*min,*max) otherwise.
func (rc *RandomClient) Float(ctx context.Context, min, max *float64) (float64, error) {
	q := url.Values{}
	if min != nil {
		q.Set("min", strconv.FormatFloat(*min, 'g', -1, 64))
	}
	if max != nil {
		q.Set("max", strconv.FormatFloat(*max, 'g', -1, 64))
	}

	var resp api.ValueResponse[float64]
	err := rc.do(ctx, http.MethodGet, "/v1/float", q, nil, &resp)
	return resp.Value, err
}

// Int follows the same bound rules as Float.
func (rc *RandomClient) Int(ctx context.Context, min, max *int64) (int64, error) {
	q := url.Values{}
	if min != nil {
		q.Set("min", strconv.FormatInt(*min, 10))
	}
	if max != nil {
		q.Set("max", strconv.FormatInt(*max, 10))
	}

	var resp api.ValueResponse[int64]
	err := rc.do(ctx, http.MethodGet, "/v1/int", q, nil, &resp)
	return resp.Value, err
}

func (rc *RandomClient) Index(ctx context.Context, weights []float64) (int, error) {
	if weights == nil {
		weights = []float64{}
	}

	var resp api.IndexResponse
	if err := rc.do(ctx, http.MethodPost, "/v1/index", nil, api.IndexRequest{Weights: weights}, &resp); err != nil {
		return random.NoSelection, err
	}
	return resp.Index, nil
}

// String draws length characters from charset, or from the server's default
// charset when charset is nil.
func (rc *RandomClient) String(ctx context.Context, length int, charset *string) (string, error) {
	q := url.Values{"length": {strconv.Itoa(length)}}
	if charset != nil {
		q.Set("charset", *charset)
	}

	var resp api.ValueResponse[string]
	err := rc.do(ctx, http.MethodGet, "/v1/string", q, nil, &resp)
	return resp.Value, err
}

// Shuffle returns items in a random order. Items are passed through as raw
// JSON.
func (rc *RandomClient) Shuffle(ctx context.Context, items []json.RawMessage, biased bool) ([]json.RawMessage, error) {
	if items == nil {
		items = []json.RawMessage{}
	}

	var resp api.ShuffleResponse
	if err := rc.do(ctx, http.MethodPost, "/v1/shuffle", nil, api.ShuffleRequest{Items: items, Biased: biased}, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (rc *RandomClient) Health(ctx context.Context) error {
	var resp api.HealthResponse
	if err := rc.do(ctx, http.MethodGet, "/healthz", nil, nil, &resp); err != nil {
		return err
	}
	if resp.Status != "ok" {
		return errors.Errorf("unhealthy: %s", resp.Status)
	}
	return nil
}

func (rc *RandomClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	req, err := rc.client.NewRequest(ctx, method, path)
	if err != nil {
		return err
	}
	if body != nil {
		if err := req.SetBodyJson(body); err != nil {
			return err
		}
	}

	resp, err := rc.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	return resp.BindBodyJson(out)
}
