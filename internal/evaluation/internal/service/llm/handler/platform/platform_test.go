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

package platform

import (
	"context"
	"errors"
	"testing"

	"github.com/ecodeclub/examgrader/internal/evaluation/internal/domain"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/errs"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service/llm/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStream_Close(t *testing.T) {
	testCases := []struct {
		name     string
		cancel   bool
		contents []string
		err      error
		wantLast domain.StreamEvent
	}{
		{
			name:     "正常结束",
			contents: []string{"{\"score\"", ": 1}"},
			wantLast: domain.StreamEvent{Done: true, Answer: "{\"score\": 1}"},
		},
		{
			name:     "没有文本",
			wantLast: domain.StreamEvent{Error: &errs.ResponseShapeError{Provider: "test", Reason: "流式响应里面没有文本"}},
		},
		{
			name:     "上游出错",
			contents: []string{"{"},
			err:      errors.New("connection reset"),
			wantLast: domain.StreamEvent{Error: errors.New("connection reset")},
		},
		{
			name:     "调用方已经取消",
			cancel:   true,
			wantLast: domain.StreamEvent{Error: &errs.TransportError{Provider: "test", Err: context.Canceled}},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			s := NewStream(ctx, "test")
			for _, c := range tc.contents {
				require.NoError(t, s.Delta(c))
			}
			if tc.cancel {
				cancel()
			}
			s.Close(tc.err)
			var last domain.StreamEvent
			for evt := range s.Chan() {
				last = evt
			}
			assert.Equal(t, tc.wantLast, last)
		})
	}
}

func TestStream_CloseBufferFull(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewStream(ctx, "test")
	for i := 0; i < cap(s.ch); i++ {
		require.NoError(t, s.Delta("a"))
	}
	cancel()
	s.Close(nil)
	var last domain.StreamEvent
	for evt := range s.Chan() {
		last = evt
	}
	// 缓冲区满了，结束事件送不进去，观察者要能识别出来
	assert.Equal(t, domain.StreamEvent{Content: "a"}, last)
	assert.ErrorIs(t, handler.StreamErr(last), handler.ErrStreamIncomplete)
}
