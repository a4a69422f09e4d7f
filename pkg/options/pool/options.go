// Package pool provides worker pool configuration options.
package pool

import (
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/pflag"

	"github.com/kart-io/wizora/pkg/options"
)

var _ options.IOptions = (*Options)(nil)

// Options 定义推理 worker 池配置。
type Options struct {
	// Capacity 最大并发 goroutine 数。
	Capacity int `json:"capacity" mapstructure:"capacity"`
	// ExpiryDuration goroutine 空闲过期时间。
	ExpiryDuration time.Duration `json:"expiry-duration" mapstructure:"expiry-duration"`
	// MaxBlockingTasks 池满时允许排队的任务数，超出直接拒绝。
	MaxBlockingTasks int `json:"max-blocking-tasks" mapstructure:"max-blocking-tasks"`
	// Nonblocking 池满时立即拒绝。
	Nonblocking bool `json:"nonblocking" mapstructure:"nonblocking"`
}

// NewOptions 创建默认池配置。
func NewOptions() *Options {
	return &Options{
		Capacity:         runtime.NumCPU() * 4,
		ExpiryDuration:   30 * time.Second,
		MaxBlockingTasks: 256,
		Nonblocking:      false,
	}
}

// AddFlags adds flags for pool options to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	p := options.Join(prefixes...)
	fs.IntVar(&o.Capacity, p+"pool.capacity", o.Capacity, "Maximum number of concurrent model calls.")
	fs.DurationVar(&o.ExpiryDuration, p+"pool.expiry-duration", o.ExpiryDuration, "Idle worker expiry.")
	fs.IntVar(&o.MaxBlockingTasks, p+"pool.max-blocking-tasks", o.MaxBlockingTasks, "Queued model calls allowed before requests are rejected as busy.")
	fs.BoolVar(&o.Nonblocking, p+"pool.nonblocking", o.Nonblocking, "Reject model calls immediately when all workers are busy.")
}

// Validate validates the pool options.
func (o *Options) Validate() []error {
	if o == nil {
		return nil
	}
	var errs []error
	if o.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("pool.capacity must be positive"))
	}
	if o.MaxBlockingTasks < 0 {
		errs = append(errs, fmt.Errorf("pool.max-blocking-tasks must not be negative"))
	}
	return errs
}

// Complete completes the pool options with defaults.
func (o *Options) Complete() error {
	if o.ExpiryDuration <= 0 {
		o.ExpiryDuration = 30 * time.Second
	}
	return nil
}
