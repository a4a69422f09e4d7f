// Package resilience 为模型供应商提供熔断保护。
// 重试由 httpclient 负责，这里只在连续失败后快速拒绝请求。
package resilience

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/kart-io/logger"
	"github.com/sony/gobreaker"

	"github.com/kart-io/wizora/pkg/llm"
	apierrors "github.com/kart-io/wizora/pkg/utils/errors"
	"github.com/kart-io/wizora/pkg/utils/httpclient"
)

// BreakerConfig 熔断器配置。
type BreakerConfig struct {
	// MaxRequests 半开状态允许通过的请求数。
	MaxRequests uint32
	// Interval 关闭状态下清零计数的周期，0 表示不清零。
	Interval time.Duration
	// Timeout 打开状态持续多久后进入半开。
	Timeout time.Duration
	// MinRequests 计算失败率前至少需要的请求数。
	MinRequests uint32
	// FailureRatio 触发熔断的失败率。
	FailureRatio float64
}

// DefaultBreakerConfig 返回默认熔断器配置。
func DefaultBreakerConfig() *BreakerConfig {
	return &BreakerConfig{
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
		MinRequests:  5,
		FailureRatio: 0.6,
	}
}

// Provider 为 llm.Provider 加上熔断器。
type Provider struct {
	provider llm.Provider
	cb       *gobreaker.CircuitBreaker
}

var _ llm.Provider = (*Provider)(nil)

// Wrap 返回带熔断保护的供应商，cfg 为 nil 时使用默认配置。
func Wrap(p llm.Provider, cfg *BreakerConfig) *Provider {
	if cfg == nil {
		cfg = DefaultBreakerConfig()
	}

	settings := gobreaker.Settings{
		Name:        p.Name(),
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warnw("model provider circuit breaker state changed",
				"provider", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
		IsSuccessful: isSuccessful,
	}

	return &Provider{
		provider: p,
		cb:       gobreaker.NewCircuitBreaker(settings),
	}
}

// Name 返回被包装供应商的名称。
func (r *Provider) Name() string {
	return r.provider.Name()
}

// Generate 在熔断器保护下调用供应商。熔断打开时返回 ErrUpstreamUnavailable。
func (r *Provider) Generate(ctx context.Context, prompt string, opts ...llm.GenerateOption) (string, error) {
	out, err := r.cb.Execute(func() (interface{}, error) {
		return r.provider.Generate(ctx, prompt, opts...)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", apierrors.ErrUpstreamUnavailable.WithCause(err)
		}
		return "", err
	}
	return out.(string), nil
}

// Ping 透传给被包装的供应商。
func (r *Provider) Ping(ctx context.Context) error {
	if p, ok := r.provider.(llm.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// State 返回熔断器当前状态。
func (r *Provider) State() gobreaker.State {
	return r.cb.State()
}

// isSuccessful 调用方取消与 4xx 不计入失败。
func isSuccessful(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var se *httpclient.StatusError
	if errors.As(err, &se) {
		return se.StatusCode < http.StatusInternalServerError && se.StatusCode != http.StatusTooManyRequests
	}
	return false
}
