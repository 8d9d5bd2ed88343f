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

package record

import (
	"context"

	"github.com/ecodeclub/examgrader/internal/evaluation/internal/domain"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/repository"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service/llm/handler"
	"github.com/gotomicro/ego/core/elog"
)

type HandlerBuilder struct {
	repo   repository.LLMRecordRepo
	logger *elog.Component
}

var (
	_ handler.Builder       = &HandlerBuilder{}
	_ handler.StreamBuilder = &HandlerBuilder{}
)

func NewHandler(repo repository.LLMRecordRepo) *HandlerBuilder {
	return &HandlerBuilder{
		repo:   repo,
		logger: elog.DefaultLogger,
	}
}

func (h *HandlerBuilder) Name() string {
	return "record"
}

func (h *HandlerBuilder) Next(next handler.Handler) handler.Handler {
	return handler.HandleFunc(func(ctx context.Context, req domain.LLMRequest) (domain.LLMResponse, error) {
		record := h.newRecord(req)
		defer func() {
			h.save(context.WithoutCancel(ctx), record)
		}()
		resp, err := next.Handle(ctx, req)
		if err != nil {
			record.Status = domain.RecordStatusFailed
			return domain.LLMResponse{}, err
		}
		record.Tokens = resp.Tokens
		record.Status = domain.RecordStatusSuccess
		record.Answer = resp.Answer
		return resp, err
	})
}

func (h *HandlerBuilder) NextStream(next handler.StreamHandler) handler.StreamHandler {
	return handler.StreamHandleFunc(func(ctx context.Context, req domain.LLMRequest) (chan domain.StreamEvent, error) {
		record := h.newRecord(req)
		ch, err := next.StreamHandle(ctx, req)
		if err != nil {
			record.Status = domain.RecordStatusFailed
			h.save(ctx, record)
			return nil, err
		}
		return handler.Tap(ch, func(last domain.StreamEvent) {
			if handler.StreamErr(last) == nil {
				record.Status = domain.RecordStatusSuccess
				record.Tokens = last.Tokens
				record.Answer = last.Answer
			} else {
				record.Status = domain.RecordStatusFailed
			}
			// 调用方可能已经取消了，记录还是要保存下来
			h.save(context.WithoutCancel(ctx), record)
		}), nil
	})
}

func (h *HandlerBuilder) newRecord(req domain.LLMRequest) domain.LLMRecord {
	return domain.LLMRecord{
		Tid:    req.Tid,
		RunID:  req.RunID,
		Biz:    req.Biz,
		Status: domain.RecordStatusProcessing,
		Prompt: req.Prompt,
	}
}

func (h *HandlerBuilder) save(ctx context.Context, record domain.LLMRecord) {
	_, err := h.repo.SaveRecord(ctx, record)
	if err != nil {
		h.logger.Error("保存 LLM 访问记录失败",
			elog.String("tid", record.Tid),
			elog.FieldErr(err))
	}
}
