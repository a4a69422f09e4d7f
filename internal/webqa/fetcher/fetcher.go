// Package fetcher downloads web pages and extracts their readable text.
package fetcher

import (
	"context"
	stderrors "errors"
	"net"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/kart-io/logger"

	"github.com/kart-io/wizora/pkg/utils/errors"
)

// Config configures a Fetcher.
type Config struct {
	Timeout   time.Duration
	UserAgent string
	MaxBytes  int64
}

// Fetcher downloads pages without retrying.
type Fetcher struct {
	rc *resty.Client
}

// New creates a Fetcher.
func New(cfg Config) *Fetcher {
	rc := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(10)).
		SetHeader("Accept", "text/html,application/xhtml+xml,text/plain;q=0.9,*/*;q=0.8")
	if cfg.UserAgent != "" {
		rc.SetHeader("User-Agent", cfg.UserAgent)
	}
	if cfg.MaxBytes > 0 {
		rc.SetResponseBodyLimit(int(cfg.MaxBytes))
	}
	return &Fetcher{rc: rc}
}

// Fetch downloads url and returns its readable text.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	start := time.Now()
	resp, err := f.rc.R().SetContext(ctx).Get(url)
	if err != nil {
		switch {
		case stderrors.Is(err, resty.ErrResponseBodyTooLarge):
			return "", errors.ErrFetchPage.WithMessage("Page is too large").WithCause(err)
		case isTimeout(err):
			return "", errors.ErrFetchTimeout.WithCause(err)
		default:
			return "", errors.ErrFetchPage.WithMessagef("Failed to fetch URL: %v", err).WithCause(err)
		}
	}

	logger.Infow("page fetched",
		"url", url,
		"status", resp.StatusCode(),
		"bytes", len(resp.Body()),
		"latency", time.Since(start).String(),
	)
	if !resp.IsSuccess() {
		return "", errors.ErrFetchPage.WithMessagef("Failed to fetch URL: %d", resp.StatusCode())
	}

	text, err := ExtractText(resp.Body())
	if err != nil {
		return "", errors.ErrFetchPage.WithMessage("Failed to parse page").WithCause(err)
	}
	return text, nil
}

func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return stderrors.As(err, &ne) && ne.Timeout()
}
