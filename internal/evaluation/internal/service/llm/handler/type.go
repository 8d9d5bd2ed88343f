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

package handler

import (
	"context"

	"github.com/ecodeclub/examgrader/internal/evaluation/internal/domain"
)

type HandleFunc func(ctx context.Context, req domain.LLMRequest) (domain.LLMResponse, error)

func (f HandleFunc) Handle(ctx context.Context, req domain.LLMRequest) (domain.LLMResponse, error) {
	return f(ctx, req)
}

//go:generate mockgen -source=./type.go -destination=./mocks/handler.mock.go -package=hdlmocks -typed=true
type Handler interface {
	Handle(ctx context.Context, req domain.LLMRequest) (domain.LLMResponse, error)
}

type StreamHandleFunc func(ctx context.Context, req domain.LLMRequest) (chan domain.StreamEvent, error)

func (f StreamHandleFunc) StreamHandle(ctx context.Context, req domain.LLMRequest) (chan domain.StreamEvent, error) {
	return f(ctx, req)
}

// StreamHandler 返回的 channel 里面依次是增量内容，最后一个事件 Done 为 true 并且带上完整回答，
// 或者是一个带 Error 的事件。之后 channel 会被关闭
type StreamHandler interface {
	StreamHandle(ctx context.Context, req domain.LLMRequest) (chan domain.StreamEvent, error)
}
