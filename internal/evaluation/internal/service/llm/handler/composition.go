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
	"errors"

	"github.com/ecodeclub/examgrader/internal/evaluation/internal/domain"
)

// CompositionHandler 通过组合 Handler 来完成调用，
// builders 里面排在前面的先执行
type CompositionHandler struct {
	root Handler
}

func (c *CompositionHandler) Handle(ctx context.Context, req domain.LLMRequest) (domain.LLMResponse, error) {
	return c.root.Handle(ctx, req)
}

func NewCompositionHandler(common []Builder,
	root Handler) *CompositionHandler {
	for i := len(common) - 1; i >= 0; i-- {
		current := common[i]
		root = current.Next(root)
	}
	return &CompositionHandler{
		root: root,
	}
}

type CompositionStreamHandler struct {
	root StreamHandler
}

func (c *CompositionStreamHandler) StreamHandle(ctx context.Context, req domain.LLMRequest) (chan domain.StreamEvent, error) {
	return c.root.StreamHandle(ctx, req)
}

func NewCompositionStreamHandler(common []StreamBuilder,
	root StreamHandler) *CompositionStreamHandler {
	for i := len(common) - 1; i >= 0; i-- {
		root = common[i].NextStream(root)
	}
	return &CompositionStreamHandler{
		root: root,
	}
}

var ErrStreamIncomplete = errors.New("流式响应没有结束事件")

// StreamErr 根据最后一个事件判断流是否成功。
// 没有 Done 也没有 Error 说明结束事件被丢掉了，按照失败处理
func StreamErr(last domain.StreamEvent) error {
	if last.Error != nil {
		return last.Error
	}
	if !last.Done {
		return ErrStreamIncomplete
	}
	return nil
}

// Tap 在不改变事件的前提下观察一个流，结束的时候回调 done。
// 上游的 channel 关闭之后，返回的 channel 也会关闭
func Tap(ch chan domain.StreamEvent, done func(last domain.StreamEvent)) chan domain.StreamEvent {
	out := make(chan domain.StreamEvent, cap(ch))
	go func() {
		defer close(out)
		var last domain.StreamEvent
		for evt := range ch {
			last = evt
			out <- evt
		}
		done(last)
	}()
	return out
}
