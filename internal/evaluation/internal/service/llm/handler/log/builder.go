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

package log

import (
	"context"
	"time"

	"github.com/ecodeclub/examgrader/internal/evaluation/internal/domain"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service/llm/handler"
	"github.com/gotomicro/ego/core/elog"
)

type HandlerBuilder struct {
	logger *elog.Component
}

var (
	_ handler.Builder       = &HandlerBuilder{}
	_ handler.StreamBuilder = &HandlerBuilder{}
)

func NewHandler() *HandlerBuilder {
	return &HandlerBuilder{
		logger: elog.DefaultLogger,
	}
}

func (h *HandlerBuilder) Name() string {
	return "log"
}

func (h *HandlerBuilder) Next(next handler.Handler) handler.Handler {
	return handler.HandleFunc(func(ctx context.Context, req domain.LLMRequest) (domain.LLMResponse, error) {
		logger := h.with(req)
		// 记录请求
		logger.Debug("请求 LLM")
		start := time.Now()
		resp, err := next.Handle(ctx, req)
		if err != nil {
			// 记录错误
			logger.Error("请求 LLM 服务失败", elog.FieldErr(err), elog.FieldCost(time.Since(start)))
			return resp, err
		}
		// 记录响应
		logger.Debug("请求 LLM 服务响应成功",
			elog.Int64("tokens", resp.Tokens),
			elog.FieldCost(time.Since(start)))
		return resp, err
	})
}

func (h *HandlerBuilder) NextStream(next handler.StreamHandler) handler.StreamHandler {
	return handler.StreamHandleFunc(func(ctx context.Context, req domain.LLMRequest) (chan domain.StreamEvent, error) {
		logger := h.with(req)
		logger.Debug("流式请求 LLM")
		start := time.Now()
		ch, err := next.StreamHandle(ctx, req)
		if err != nil {
			logger.Error("流式请求 LLM 服务失败", elog.FieldErr(err), elog.FieldCost(time.Since(start)))
			return nil, err
		}
		return handler.Tap(ch, func(last domain.StreamEvent) {
			if err := handler.StreamErr(last); err != nil {
				logger.Error("流式响应中断", elog.FieldErr(err), elog.FieldCost(time.Since(start)))
				return
			}
			logger.Debug("流式响应结束",
				elog.Int64("tokens", last.Tokens),
				elog.FieldCost(time.Since(start)))
		}), nil
	})
}

func (h *HandlerBuilder) with(req domain.LLMRequest) *elog.Component {
	return h.logger.With(elog.String("tid", req.Tid),
		elog.String("run_id", req.RunID),
		elog.String("biz", req.Biz))
}
