// Package webqa provides web QA service options.
package webqa

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/kart-io/wizora/pkg/options"
)

var _ options.IOptions = (*Options)(nil)

// Options 定义网页问答配置。
type Options struct {
	// FetchTimeout 页面抓取超时。
	FetchTimeout time.Duration `json:"fetch-timeout" mapstructure:"fetch-timeout"`
	// UserAgent 抓取页面时使用的 User-Agent。
	UserAgent string `json:"user-agent" mapstructure:"user-agent"`
	// MaxPageBytes 页面正文的最大读取字节数。
	MaxPageBytes int64 `json:"max-page-bytes" mapstructure:"max-page-bytes"`
	// SummaryInputChars 送入摘要模型的最大字符数。
	SummaryInputChars int `json:"summary-input-chars" mapstructure:"summary-input-chars"`
	// SummaryMaxTokens 摘要的最大生成长度。
	SummaryMaxTokens int `json:"summary-max-tokens" mapstructure:"summary-max-tokens"`
	// AnswerMaxTokens 答案的最大生成长度。
	AnswerMaxTokens int `json:"answer-max-tokens" mapstructure:"answer-max-tokens"`
}

// NewOptions 创建默认配置。
func NewOptions() *Options {
	return &Options{
		FetchTimeout:      10 * time.Second,
		UserAgent:         "wizora-web-qa/1.0",
		MaxPageBytes:      5 << 20,
		SummaryInputChars: 2000,
		SummaryMaxTokens:  200,
		AnswerMaxTokens:   150,
	}
}

// AddFlags adds flags for web QA options to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	p := options.Join(prefixes...)
	fs.DurationVar(&o.FetchTimeout, p+"webqa.fetch-timeout", o.FetchTimeout, "Timeout for fetching the page.")
	fs.StringVar(&o.UserAgent, p+"webqa.user-agent", o.UserAgent, "User-Agent sent when fetching pages.")
	fs.Int64Var(&o.MaxPageBytes, p+"webqa.max-page-bytes", o.MaxPageBytes, "Maximum page size read.")
	fs.IntVar(&o.SummaryInputChars, p+"webqa.summary-input-chars", o.SummaryInputChars, "Characters of page text sent to the summarizer.")
	fs.IntVar(&o.SummaryMaxTokens, p+"webqa.summary-max-tokens", o.SummaryMaxTokens, "Maximum summary length.")
	fs.IntVar(&o.AnswerMaxTokens, p+"webqa.answer-max-tokens", o.AnswerMaxTokens, "Maximum answer length.")
}

// Validate validates the web QA options.
func (o *Options) Validate() []error {
	var errs []error
	if o.FetchTimeout <= 0 {
		errs = append(errs, fmt.Errorf("webqa.fetch-timeout must be positive"))
	}
	if o.MaxPageBytes <= 0 {
		errs = append(errs, fmt.Errorf("webqa.max-page-bytes must be positive"))
	}
	if o.SummaryInputChars <= 0 || o.SummaryMaxTokens <= 0 || o.AnswerMaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("webqa summary and answer limits must be positive"))
	}
	return errs
}
