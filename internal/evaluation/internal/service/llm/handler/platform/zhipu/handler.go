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

package zhipu

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ecodeclub/examgrader/internal/evaluation/internal/domain"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/errs"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service/llm/handler"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service/llm/handler/platform"
	"github.com/yankeguo/zhipu"
)

const (
	name         = "zhipu"
	DefaultModel = "glm-4-plus"
)

var ErrVisionUnsupported = errors.New("zhipu: 不支持图片输入")

var _ handler.Platform = &Handler{}

type Handler struct {
	model string
	// api key => *zhipu.Client
	clients sync.Map
}

func NewHandler(model string) *Handler {
	if model == "" {
		model = DefaultModel
	}
	return &Handler{
		model: model,
	}
}

func (h *Handler) Name() string {
	return name
}

func (h *Handler) Handle(ctx context.Context, req domain.LLMRequest) (domain.LLMResponse, error) {
	// 这边它不会调用 next，因为它是最终的出口
	chatReq, err := h.buildReq(req)
	if err != nil {
		return domain.LLMResponse{}, err
	}
	completion, err := chatReq.Do(ctx)
	if err != nil {
		return domain.LLMResponse{}, &errs.TransportError{Provider: name, Err: err}
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return domain.LLMResponse{}, &errs.ResponseShapeError{Provider: name, Reason: "choices[0].message.content 为空"}
	}
	return domain.LLMResponse{
		Tokens: completion.Usage.TotalTokens,
		Answer: completion.Choices[0].Message.Content,
	}, nil
}

func (h *Handler) StreamHandle(ctx context.Context, req domain.LLMRequest) (chan domain.StreamEvent, error) {
	chatReq, err := h.buildReq(req)
	if err != nil {
		return nil, err
	}
	s := platform.NewStream(ctx, name)
	chatReq = chatReq.SetStreamHandler(func(chunk zhipu.ChatCompletionResponse) error {
		if chunk.Usage.TotalTokens > 0 {
			s.SetTokens(chunk.Usage.TotalTokens)
		}
		if len(chunk.Choices) == 0 {
			return nil
		}
		return s.Delta(chunk.Choices[0].Delta.Content)
	})
	go func() {
		_, err := chatReq.Do(ctx)
		if err != nil {
			err = &errs.TransportError{Provider: name, Err: err}
		}
		s.Close(err)
	}()
	return s.Chan(), nil
}

func (h *Handler) buildReq(req domain.LLMRequest) (*zhipu.ChatCompletionService, error) {
	if len(req.Images) > 0 {
		return nil, ErrVisionUnsupported
	}
	client, err := h.client(req.APIKey)
	if err != nil {
		return nil, err
	}
	chatReq := client.ChatCompletion(h.model).AddMessage(zhipu.ChatCompletionMessage{
		Role:    zhipu.RoleUser,
		Content: req.Prompt,
	})
	if req.Temperature > 0 {
		chatReq = chatReq.SetTemperature(req.Temperature)
	}
	if req.MaxTokens > 0 {
		chatReq = chatReq.SetMaxTokens(int(req.MaxTokens))
	}
	return chatReq, nil
}

func (h *Handler) client(key string) (*zhipu.Client, error) {
	if c, ok := h.clients.Load(key); ok {
		return c.(*zhipu.Client), nil
	}
	client, err := zhipu.NewClient(zhipu.WithAPIKey(key))
	if err != nil {
		return nil, fmt.Errorf("%s: 创建客户端失败: %w", name, err)
	}
	actual, _ := h.clients.LoadOrStore(key, client)
	return actual.(*zhipu.Client), nil
}
