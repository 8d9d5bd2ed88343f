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

// Package platform 是各个 provider 共用的 HTTP 和流式处理逻辑
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ecodeclub/examgrader/internal/evaluation/internal/domain"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/errs"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service/llm/sse"
)

// 错误响应最多读取 4KB
const maxErrorBody = 4 << 10

// PostJSON 发送 JSON 请求。网络错误是 TransportError，非 2xx 是 ProviderHTTPError。
// 成功的时候由调用方负责关闭 Body
func PostJSON(ctx context.Context, client *http.Client, provider, url string,
	header http.Header, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%s: 序列化请求失败: %w", provider, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, &errs.TransportError{Provider: provider, Err: err}
	}
	for key, vals := range header {
		for _, val := range vals {
			req.Header.Add(key, val)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return nil, &errs.TransportError{Provider: provider, Err: err}
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &errs.ProviderHTTPError{
			Provider: provider,
			Status:   resp.StatusCode,
			Message:  strings.TrimSpace(string(msg)),
		}
	}
	return resp, nil
}

// DecodeJSON 读取并关闭 Body
func DecodeJSON(provider string, resp *http.Response, val any) error {
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(val); err != nil {
		return &errs.ResponseShapeError{Provider: provider, Reason: "响应不是合法的 JSON: " + err.Error()}
	}
	return nil
}

// Stream 把增量内容写入 channel，结束的时候发送带完整回答的 Done 事件
type Stream struct {
	ctx      context.Context
	provider string
	ch       chan domain.StreamEvent
	answer   strings.Builder
	tokens   int64
}

func NewStream(ctx context.Context, provider string) *Stream {
	return &Stream{
		ctx:      ctx,
		provider: provider,
		ch:       make(chan domain.StreamEvent, 16),
	}
}

func (s *Stream) Chan() chan domain.StreamEvent {
	return s.ch
}

// Delta 调用方已经不再读取的时候返回 ctx 的错误
func (s *Stream) Delta(content string) error {
	if content == "" {
		return nil
	}
	s.answer.WriteString(content)
	select {
	case s.ch <- domain.StreamEvent{Content: content}:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	}
}

// SetTokens 覆盖之前的值，provider 给的都是累计值
func (s *Stream) SetTokens(tokens int64) {
	s.tokens = tokens
}

// Close 发送最后一个事件并关闭 channel。
// ctx 已经结束的时候，最后一个事件总是带上 ctx 的错误
func (s *Stream) Close(err error) {
	defer close(s.ch)
	if err == nil && s.ctx.Err() != nil {
		err = &errs.TransportError{Provider: s.provider, Err: s.ctx.Err()}
	}
	if err == nil && s.answer.Len() == 0 {
		err = &errs.ResponseShapeError{Provider: s.provider, Reason: "流式响应里面没有文本"}
	}
	evt := domain.StreamEvent{Done: true, Answer: s.answer.String(), Tokens: s.tokens}
	if err != nil {
		evt = domain.StreamEvent{Error: err}
	}
	select {
	case s.ch <- evt:
	case <-s.ctx.Done():
		// 缓冲区还有位置的话尽量把结果留下
		select {
		case s.ch <- evt:
		default:
		}
	}
}

// FrameHandler 处理一条 SSE 数据
type FrameHandler func(frame json.RawMessage, s *Stream) error

// Relay 在后台读取 SSE 响应体，body 会被关闭
func Relay(ctx context.Context, provider string, body io.ReadCloser, fn FrameHandler) chan domain.StreamEvent {
	s := NewStream(ctx, provider)
	go func() {
		defer body.Close()
		err := sse.Decode(ctx, body, func(frame json.RawMessage) error {
			return fn(frame, s)
		})
		s.Close(wrapStreamErr(provider, err))
	}()
	return s.Chan()
}

func wrapStreamErr(provider string, err error) error {
	if err == nil {
		return nil
	}
	var (
		httpErr  *errs.ProviderHTTPError
		shapeErr *errs.ResponseShapeError
	)
	if errors.As(err, &httpErr) || errors.As(err, &shapeErr) {
		return err
	}
	return &errs.TransportError{Provider: provider, Err: err}
}
