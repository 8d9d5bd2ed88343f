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

package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/ecodeclub/examgrader/internal/evaluation/internal/domain"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service/llm/handler"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	statusSuccess = "success"
	statusFailed  = "failed"
)

// HandlerBuilder 统计 LLM 调用的耗时和 token 消耗
type HandlerBuilder struct {
	duration *prometheus.SummaryVec
	tokens   *prometheus.CounterVec
}

var (
	_ handler.Builder       = &HandlerBuilder{}
	_ handler.StreamBuilder = &HandlerBuilder{}
)

func NewHandler(namespace, subsystem, instanceID string) *HandlerBuilder {
	labels := prometheus.Labels{"instance_id": instanceID}
	duration := prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        "llm_call_duration_seconds",
		Help:        "LLM 调用耗时",
		ConstLabels: labels,
		Objectives: map[float64]float64{
			0.5:  0.01,
			0.75: 0.01,
			0.9:  0.01,
			0.99: 0.001,
		},
	}, []string{"biz", "mode", "status"})
	tokens := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        "llm_tokens_total",
		Help:        "LLM 消耗的 token 数",
		ConstLabels: labels,
	}, []string{"biz"})
	return &HandlerBuilder{
		duration: register(duration),
		tokens:   register(tokens),
	}
}

func (h *HandlerBuilder) Name() string {
	return "metrics"
}

func (h *HandlerBuilder) Next(next handler.Handler) handler.Handler {
	return handler.HandleFunc(func(ctx context.Context, req domain.LLMRequest) (domain.LLMResponse, error) {
		start := time.Now()
		resp, err := next.Handle(ctx, req)
		h.observe(req.Biz, "sync", start, resp.Tokens, err)
		return resp, err
	})
}

func (h *HandlerBuilder) NextStream(next handler.StreamHandler) handler.StreamHandler {
	return handler.StreamHandleFunc(func(ctx context.Context, req domain.LLMRequest) (chan domain.StreamEvent, error) {
		start := time.Now()
		ch, err := next.StreamHandle(ctx, req)
		if err != nil {
			h.observe(req.Biz, "stream", start, 0, err)
			return nil, err
		}
		return handler.Tap(ch, func(last domain.StreamEvent) {
			h.observe(req.Biz, "stream", start, last.Tokens, handler.StreamErr(last))
		}), nil
	})
}

func (h *HandlerBuilder) observe(biz, mode string, start time.Time, tokens int64, err error) {
	status := statusSuccess
	if err != nil {
		status = statusFailed
	}
	h.duration.WithLabelValues(biz, mode, status).Observe(time.Since(start).Seconds())
	if tokens > 0 {
		h.tokens.WithLabelValues(biz).Add(float64(tokens))
	}
}

// register 重复注册的时候复用已经注册的 collector
func register[T prometheus.Collector](c T) T {
	err := prometheus.Register(c)
	if err == nil {
		return c
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(T); ok {
			return existing
		}
	}
	panic(err)
}
