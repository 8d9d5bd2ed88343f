// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package retry

import (
	"context"
	"time"

	"github.com/ecodeclub/ekit/retry"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/domain"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/errs"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service/llm/handler"
	"github.com/gotomicro/ego/core/elog"
)

type Config struct {
	InitialInterval time.Duration `yaml:"initialInterval"`
	MaxInterval     time.Duration `yaml:"maxInterval"`
	// 不包含第一次调用。小于等于 0 的时候不重试
	MaxRetries int32 `yaml:"maxRetries"`
}

func DefaultConfig() Config {
	return Config{
		InitialInterval: time.Second,
		MaxInterval:     5 * time.Second,
		MaxRetries:      2,
	}
}

// HandlerBuilder 只重试 429、5xx 和网络错误
type HandlerBuilder struct {
	cfg    Config
	logger *elog.Component
}

var (
	_ handler.Builder       = &HandlerBuilder{}
	_ handler.StreamBuilder = &HandlerBuilder{}
)

func NewHandler(cfg Config) (*HandlerBuilder, error) {
	if cfg.MaxRetries > 0 {
		// 提前校验参数
		if _, err := cfg.strategy(); err != nil {
			return nil, err
		}
	}
	return &HandlerBuilder{
		cfg:    cfg,
		logger: elog.DefaultLogger,
	}, nil
}

func (h *HandlerBuilder) Name() string {
	return "retry"
}

func (h *HandlerBuilder) Next(next handler.Handler) handler.Handler {
	if h.cfg.MaxRetries <= 0 {
		return next
	}
	return handler.HandleFunc(func(ctx context.Context, req domain.LLMRequest) (domain.LLMResponse, error) {
		var resp domain.LLMResponse
		err := h.do(ctx, req, func() error {
			var err error
			resp, err = next.Handle(ctx, req)
			return err
		})
		return resp, err
	})
}

// NextStream 只会重试建立连接的阶段，开始返回内容之后就不会重试了
func (h *HandlerBuilder) NextStream(next handler.StreamHandler) handler.StreamHandler {
	if h.cfg.MaxRetries <= 0 {
		return next
	}
	return handler.StreamHandleFunc(func(ctx context.Context, req domain.LLMRequest) (chan domain.StreamEvent, error) {
		var ch chan domain.StreamEvent
		err := h.do(ctx, req, func() error {
			var err error
			ch, err = next.StreamHandle(ctx, req)
			return err
		})
		return ch, err
	})
}

func (h *HandlerBuilder) do(ctx context.Context, req domain.LLMRequest, fn func() error) error {
	strategy, err := h.cfg.strategy()
	if err != nil {
		return err
	}
	for {
		err = fn()
		if err == nil || !errs.IsRetryable(err) {
			return err
		}
		interval, ok := strategy.Next()
		if !ok {
			return err
		}
		h.logger.Warn("LLM 调用失败，准备重试",
			elog.String("tid", req.Tid),
			elog.String("biz", req.Biz),
			elog.Any("interval", interval),
			elog.FieldErr(err))
		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
	}
}

func (c Config) strategy() (*retry.ExponentialBackoffRetryStrategy, error) {
	return retry.NewExponentialBackoffRetryStrategy(c.InitialInterval, c.MaxInterval, c.MaxRetries)
}
