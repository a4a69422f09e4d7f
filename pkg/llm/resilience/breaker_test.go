package resilience

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/wizora/pkg/llm"
	apierrors "github.com/kart-io/wizora/pkg/utils/errors"
	"github.com/kart-io/wizora/pkg/utils/httpclient"
)

type stubProvider struct {
	err   error
	calls int
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Generate(_ context.Context, prompt string, _ ...llm.GenerateOption) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "ok:" + prompt, nil
}

func testConfig() *BreakerConfig {
	return &BreakerConfig{
		MaxRequests:  1,
		Timeout:      50 * time.Millisecond,
		MinRequests:  3,
		FailureRatio: 0.5,
	}
}

func TestBreakerOpensAfterFailures(t *testing.T) {
	stub := &stubProvider{err: errors.New("upstream down")}
	p := Wrap(stub, testConfig())

	for i := 0; i < 3; i++ {
		_, err := p.Generate(context.Background(), "x")
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, p.State())

	_, err := p.Generate(context.Background(), "x")
	assert.ErrorIs(t, err, apierrors.ErrUpstreamUnavailable)
	assert.Equal(t, 3, stub.calls)
}

func TestBreakerHalfOpenRecovers(t *testing.T) {
	stub := &stubProvider{err: errors.New("upstream down")}
	p := Wrap(stub, testConfig())
	for i := 0; i < 3; i++ {
		_, _ = p.Generate(context.Background(), "x")
	}
	require.Equal(t, gobreaker.StateOpen, p.State())

	time.Sleep(80 * time.Millisecond)
	stub.err = nil

	out, err := p.Generate(context.Background(), "y")
	require.NoError(t, err)
	assert.Equal(t, "ok:y", out)
	assert.Equal(t, gobreaker.StateClosed, p.State())
}

func TestIsSuccessful(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"无错误", nil, true},
		{"调用方取消", fmt.Errorf("wrap: %w", context.Canceled), true},
		{"客户端错误", &httpclient.StatusError{StatusCode: http.StatusBadRequest}, true},
		{"限流", &httpclient.StatusError{StatusCode: http.StatusTooManyRequests}, false},
		{"服务端错误", &httpclient.StatusError{StatusCode: http.StatusBadGateway}, false},
		{"超时", context.DeadlineExceeded, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isSuccessful(tt.err))
		})
	}
}

func TestClientErrorsDoNotTrip(t *testing.T) {
	stub := &stubProvider{err: &httpclient.StatusError{StatusCode: http.StatusBadRequest}}
	p := Wrap(stub, testConfig())
	for i := 0; i < 5; i++ {
		_, err := p.Generate(context.Background(), "x")
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateClosed, p.State())
	assert.Equal(t, "stub", p.Name())
}
