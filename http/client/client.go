package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/net/publicsuffix"

	"github.com/gpahal/mtrand/retry"
)

const (
	defaultTimeout = 30 * time.Second
)

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Message)
}

// Temporary reports whether the request may succeed if repeated.
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= http.StatusInternalServerError || e.StatusCode == http.StatusTooManyRequests
}

type Client struct {
	client    *http.Client
	baseUrl   *url.URL
	header    http.Header
	retryOpts retry.Options
}

type Options struct {
	BaseUrl          *url.URL
	BaseUrlString    string
	Timeout          time.Duration
	Header           http.Header
	RetryOpts        retry.Options
	IncludeCookieJar bool
	// Transport overrides the default dialing transport.
	Transport http.RoundTripper
}

func New() (*Client, error) {
	return NewWithOptions(Options{})
}

func NewWithOptions(opts Options) (*Client, error) {
	baseUrl := opts.BaseUrl
	if baseUrl == nil && opts.BaseUrlString != "" {
		var err error
		baseUrl, err = url.Parse(opts.BaseUrlString)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid base url %q", opts.BaseUrlString)
		}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	var cookieJar http.CookieJar
	if opts.IncludeCookieJar {
		cookieJar, _ = cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	}

	transport := opts.Transport
	if transport == nil {
		transport = &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: 10 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout: 10 * time.Second,
		}
	}

	httpClient := &http.Client{
		Timeout:   timeout,
		Transport: transport,
		Jar:       cookieJar,
	}
	return &Client{client: httpClient, baseUrl: baseUrl, header: opts.Header, retryOpts: opts.RetryOpts}, nil
}

type Request struct {
	*http.Request
}

func (c *Client) NewRequest(ctx context.Context, method, urlString string) (*Request, error) {
	u, err := url.Parse(urlString)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid url %q", urlString)
	}
	if c.baseUrl != nil {
		u = c.baseUrl.ResolveReference(u)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return nil, err
	}

	if c.header != nil {
		httpReq.Header = c.header.Clone()
	}
	return &Request{Request: httpReq}, nil
}

// SetBodyJson encodes body as the JSON request body. The body can be re-read
// by GetBody so the request survives retries.
func (req *Request) SetBodyJson(body any) error {
	bs, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "encoding request body")
	}

	req.Header.Set("Content-Type", "application/json")
	req.ContentLength = int64(len(bs))
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(bs)), nil
	}
	req.Body, _ = req.GetBody()
	return nil
}

type Response struct {
	*http.Response
}

func (resp *Response) GetBodyString() (string, error) {
	defer resp.Body.Close()

	bs, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(bs), nil
}

// BindBodyJson decodes the response body into v and closes it.
func (resp *Response) BindBodyJson(v any) error {
	defer resp.Body.Close()

	err := json.NewDecoder(resp.Body).Decode(v)
	if err == nil {
		return nil
	}

	var ute *json.UnmarshalTypeError
	var se *json.SyntaxError
	switch {
	case errors.As(err, &ute):
		return errors.Wrapf(err, "unmarshal type error: expected=%v, got=%v, field=%v, offset=%v", ute.Type, ute.Value, ute.Field, ute.Offset)
	case errors.As(err, &se):
		return errors.Wrapf(err, "syntax error: offset=%v", se.Offset)
	}
	return errors.Wrap(err, "decoding response body")
}

// Do sends req, retrying transport failures and temporary statuses according
// to the client's retry options. Any other non-2xx status is returned as a
// *StatusError without retrying.
func (c *Client) Do(req *Request) (*Response, error) {
	var resp *Response
	attempt := 0
	err := retry.Do(req.Context(), func(ctx context.Context) error {
		if attempt > 0 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return errors.Wrap(retry.ErrStop, err.Error())
			}
			req.Body = body
		}
		attempt++

		httpResp, err := c.client.Do(req.Request)
		if err != nil {
			if ctx.Err() != nil {
				return errors.Wrap(retry.ErrStop, err.Error())
			}
			return err
		}

		if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
			statusErr := newStatusError(httpResp)
			if !statusErr.Temporary() {
				return &permanentError{err: statusErr}
			}
			return statusErr
		}

		resp = &Response{Response: httpResp}
		return nil
	}, c.retryOpts)

	var perr *permanentError
	if errors.As(err, &perr) {
		return nil, perr.err
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// permanentError carries a non-retryable error through retry.Do.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Is(target error) bool {
	return target == retry.ErrStop
}
func (e *permanentError) Unwrap() error { return e.err }

func newStatusError(resp *http.Response) *StatusError {
	defer resp.Body.Close()

	statusErr := &StatusError{StatusCode: resp.StatusCode}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body); err == nil {
		statusErr.Message = body.Error
	}
	return statusErr
}
