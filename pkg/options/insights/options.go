// Package insights provides CSV insights service options.
package insights

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/kart-io/wizora/pkg/options"
)

var _ options.IOptions = (*Options)(nil)

// Options 定义表格洞察生成参数。
type Options struct {
	// ChunkSize 每个分块包含的数据行数。
	ChunkSize int `json:"chunk-size" mapstructure:"chunk-size"`
	// ChunkMaxTokens 分块摘要的最大生成长度。
	ChunkMaxTokens int `json:"chunk-max-tokens" mapstructure:"chunk-max-tokens"`
	// FinalMaxTokens 最终摘要的最大生成长度。
	FinalMaxTokens int `json:"final-max-tokens" mapstructure:"final-max-tokens"`
	// Temperature 采样温度，0 表示贪心解码。
	Temperature float64 `json:"temperature" mapstructure:"temperature"`
	// MaxRows 单次请求允许的最大数据行数，0 表示不限制。
	MaxRows int `json:"max-rows" mapstructure:"max-rows"`
}

// NewOptions 创建默认配置。
func NewOptions() *Options {
	return &Options{
		ChunkSize:      20,
		ChunkMaxTokens: 150,
		FinalMaxTokens: 200,
		Temperature:    0.7,
		MaxRows:        100000,
	}
}

// AddFlags adds flags for insights options to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	p := options.Join(prefixes...)
	fs.IntVar(&o.ChunkSize, p+"insights.chunk-size", o.ChunkSize, "Number of data rows per chunk.")
	fs.IntVar(&o.ChunkMaxTokens, p+"insights.chunk-max-tokens", o.ChunkMaxTokens, "Maximum length of each chunk summary.")
	fs.IntVar(&o.FinalMaxTokens, p+"insights.final-max-tokens", o.FinalMaxTokens, "Maximum length of the final summary.")
	fs.Float64Var(&o.Temperature, p+"insights.temperature", o.Temperature, "Sampling temperature, 0 for greedy decoding.")
	fs.IntVar(&o.MaxRows, p+"insights.max-rows", o.MaxRows, "Maximum number of data rows per upload, 0 for no limit.")
}

// Validate validates the insights options.
func (o *Options) Validate() []error {
	var errs []error
	if o.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("insights.chunk-size must be positive"))
	}
	if o.ChunkMaxTokens <= 0 || o.FinalMaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("insights max tokens must be positive"))
	}
	if o.Temperature < 0 {
		errs = append(errs, fmt.Errorf("insights.temperature must not be negative"))
	}
	if o.MaxRows < 0 {
		errs = append(errs, fmt.Errorf("insights.max-rows must not be negative"))
	}
	return errs
}
