// Package upstream calls the external image generation API.
package upstream

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/kart-io/logger"

	"github.com/kart-io/wizora/pkg/utils/errors"
	"github.com/kart-io/wizora/pkg/utils/json"
)

// Client posts prompts to the image API. It never retries.
type Client struct {
	rc  *resty.Client
	url string
}

// NewClient creates a Client for url with a fixed per-call timeout.
func NewClient(url string, timeout time.Duration) *Client {
	rc := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)
	return &Client{rc: rc, url: url}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

// Generate returns the raw image bytes for prompt.
//
// A non-200 answer is ErrImageUpstream carrying the status, a timeout is
// ErrImageTimeout and any other transport failure is an internal error
// carrying the failure text.
func (c *Client) Generate(ctx context.Context, prompt string) ([]byte, error) {
	start := time.Now()
	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(generateRequest{Prompt: prompt}).
		Post(c.url)
	latency := time.Since(start)

	if err != nil {
		logger.Warnw("image upstream call failed", "latency", latency.String(), "error", err)
		if isTimeout(err) {
			return nil, errors.ErrImageTimeout.WithCause(err)
		}
		return nil, errors.ErrInternal.WithMessage(err.Error()).WithCause(err)
	}

	logger.Infow("image upstream call finished",
		"status", resp.StatusCode(),
		"latency", latency.String(),
		"bytes", len(resp.Body()),
	)
	if resp.StatusCode() != http.StatusOK {
		return nil, errors.ErrImageUpstream.WithMessagef("Failed to generate image: %d", resp.StatusCode())
	}
	return resp.Body(), nil
}

func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return stderrors.As(err, &ne) && ne.Timeout()
}
