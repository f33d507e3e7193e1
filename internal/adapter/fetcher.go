// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/semaphore"

	"github.com/sama64/nerdeala25/internal/config"
	"github.com/sama64/nerdeala25/internal/logger"
	"github.com/sama64/nerdeala25/internal/utils"
)

// fieldsParam is the partial-response projection parameter. Some collections
// reject it with 400, in which case the listing is repeated without it.
const fieldsParam = "fields"

// Fetch outcomes reported to a [FetchRecorder].
const (
	OutcomeOK          = "ok"
	OutcomeNotModified = "not_modified"
	OutcomeForbidden   = "forbidden"
	OutcomeError       = "error"
)

// FetchRecorder observes finished collection reads.
type FetchRecorder interface {
	FetchDone(collection, outcome string, pages int)
}

type nopRecorder struct{}

func (nopRecorder) FetchDone(string, string, int) {}

type httpFetcher struct {
	client *utils.HTTPClient
	gate   *semaphore.Weighted

	timeout   time.Duration
	attempts  uint64
	retryBase time.Duration
	retryCap  time.Duration

	recorder FetchRecorder
	logger   *logger.Logger
}

// FetcherOption customises a fetcher built by [NewFetcher].
type FetcherOption func(*httpFetcher)

// WithRecorder reports every finished read to r.
func WithRecorder(r FetchRecorder) FetcherOption {
	return func(f *httpFetcher) {
		if r != nil {
			f.recorder = r
		}
	}
}

// NewFetcher constructs the HTTP implementation of [Fetcher]. All requests of
// the returned fetcher share one gate of cfg.MaxInFlight slots.
func NewFetcher(cfg config.Adapter, log *logger.Logger, opts ...FetcherOption) (Fetcher, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter base url: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	maxInFlight := cfg.MaxInFlight
	if maxInFlight <= 0 {
		maxInFlight = 1
	}
	attempts := cfg.RetryAttempts
	if attempts == 0 {
		attempts = 1
	}
	retryBase := cfg.RetryBase
	if retryBase <= 0 {
		retryBase = time.Second
	}

	f := &httpFetcher{
		client:    client,
		gate:      semaphore.NewWeighted(maxInFlight),
		timeout:   cfg.RequestTimeout,
		attempts:  attempts,
		retryBase: retryBase,
		retryCap:  cfg.RetryCap,
		recorder:  nopRecorder{},
		logger:    log,
	}
	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Fetch implements [Fetcher].
//
// A 400 while the query carries a field projection triggers exactly one more
// run of the whole page sequence without it. Every error returned wraps
// [ErrIntegration].
func (f *httpFetcher) Fetch(ctx context.Context, req FetchRequest) (FetchResult, error) {
	log := logger.FromContext(ctx)

	result, pages, err := f.fetchPages(ctx, req)
	if err != nil && errors.Is(err, ErrBadRequest) && req.Query.Has(fieldsParam) {
		log.Warn().Err(err).Str("func", "*httpFetcher.Fetch").Str("path", req.Path).Msg("field projection rejected, retrying without it")

		stripped := req
		stripped.Query = cloneQuery(req.Query)
		stripped.Query.Del(fieldsParam)
		result, pages, err = f.fetchPages(ctx, stripped)
	}
	if err != nil {
		f.recorder.FetchDone(req.ItemsKey, OutcomeError, pages)
		log.Err(err).Str("func", "*httpFetcher.Fetch").Str("path", req.Path).Msg("collection fetch failed")
		return FetchResult{}, fmt.Errorf("%w: %s: %w", ErrIntegration, req.Path, err)
	}

	switch {
	case result.NotModified:
		f.recorder.FetchDone(req.ItemsKey, OutcomeNotModified, pages)
	case result.Forbidden:
		log.Info().Str("func", "*httpFetcher.Fetch").Str("path", req.Path).Msg("collection forbidden, treated as empty")
		f.recorder.FetchDone(req.ItemsKey, OutcomeForbidden, pages)
	default:
		f.recorder.FetchDone(req.ItemsKey, OutcomeOK, pages)
	}

	return result, nil
}

func (f *httpFetcher) fetchPages(ctx context.Context, req FetchRequest) (FetchResult, int, error) {
	result := FetchResult{Items: []json.RawMessage{}}
	pageToken := ""
	pages := 0

	for {
		query := cloneQuery(req.Query)
		var etag *string
		if pageToken == "" {
			etag = req.ETag
		} else {
			query.Set("pageToken", pageToken)
		}

		resp, err := f.get(ctx, req.Path, query, req.Token, etag)
		pages++
		if err != nil {
			return FetchResult{}, pages, err
		}

		switch resp.StatusCode() {
		case http.StatusNotModified:
			if pageToken != "" {
				return FetchResult{}, pages, fmt.Errorf("unexpected 304 on page %d", pages)
			}
			return FetchResult{Items: []json.RawMessage{}, ETag: req.ETag, NotModified: true}, pages, nil
		case http.StatusForbidden:
			return FetchResult{Items: []json.RawMessage{}, Forbidden: true}, pages, nil
		}
		if err := mapHTTPError(resp); err != nil {
			return FetchResult{}, pages, err
		}

		if pageToken == "" {
			result.ETag = etagHeader(resp)
		}

		items, next, err := decodePage(resp.Body(), req.ItemsKey)
		if err != nil {
			return FetchResult{}, pages, err
		}
		result.Items = append(result.Items, items...)

		if next == "" {
			return result, pages, nil
		}
		if next == pageToken {
			return FetchResult{}, pages, fmt.Errorf("page token %q repeated", next)
		}
		pageToken = next
	}
}

// get performs one logical request, retrying network failures, 429 and 5xx
// with capped exponential backoff.
func (f *httpFetcher) get(ctx context.Context, path string, query url.Values, token string, etag *string) (*resty.Response, error) {
	backoff := retry.NewExponential(f.retryBase)
	backoff = retry.WithMaxRetries(f.attempts-1, backoff)
	if f.retryCap > 0 {
		backoff = retry.WithCappedDuration(f.retryCap, backoff)
	}

	return retry.DoValue(ctx, backoff, func(ctx context.Context) (*resty.Response, error) {
		r, err := f.do(ctx, path, query, token, etag)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, retry.RetryableError(fmt.Errorf("request %s: %w", path, err))
		}
		if retryableStatus(r.StatusCode()) {
			logger.FromContext(ctx).Debug().Int("status", r.StatusCode()).Str("path", path).Msg("transient upstream failure")
			return nil, retry.RetryableError(mapHTTPError(r))
		}
		return r, nil
	})
}

func (f *httpFetcher) do(ctx context.Context, path string, query url.Values, token string, etag *string) (*resty.Response, error) {
	if err := f.gate.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer f.gate.Release(1)

	callCtx := ctx
	if f.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	r := f.client.R().
		SetContext(callCtx).
		SetAuthToken(token).
		SetHeader("Accept", "application/json").
		SetQueryParamsFromValues(query)
	if etag != nil && *etag != "" {
		r.SetHeader("If-None-Match", *etag)
	}

	return r.Get(path)
}

func decodePage(body []byte, itemsKey string) ([]json.RawMessage, string, error) {
	if len(body) == 0 {
		return nil, "", nil
	}

	var page map[string]json.RawMessage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, "", fmt.Errorf("decode page: %w", err)
	}

	var items []json.RawMessage
	if raw, ok := page[itemsKey]; ok {
		// an absent key is an empty page; a malformed one must not be,
		// or deletion by absence would wipe the collection
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, "", fmt.Errorf("decode page %q: %w", itemsKey, err)
		}
	}

	var next string
	if raw, ok := page["nextPageToken"]; ok {
		_ = json.Unmarshal(raw, &next)
	}

	return items, next, nil
}

func etagHeader(resp *resty.Response) *string {
	etag := strings.TrimSpace(resp.Header().Get("ETag"))
	if etag == "" {
		return nil
	}
	return &etag
}

func cloneQuery(q url.Values) url.Values {
	out := make(url.Values, len(q)+1)
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	return out
}
