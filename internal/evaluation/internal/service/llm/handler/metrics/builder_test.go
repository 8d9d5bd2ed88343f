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
	"testing"

	"github.com/ecodeclub/examgrader/internal/evaluation/internal/domain"
	hdlmocks "github.com/ecodeclub/examgrader/internal/evaluation/internal/service/llm/handler/mocks"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHandlerBuilder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	builder := NewHandler("examgrader", "metrics_builder_test", "test")
	// 重复创建不会 panic
	again := NewHandler("examgrader", "metrics_builder_test", "test")
	assert.Same(t, builder.tokens, again.tokens)

	next := hdlmocks.NewMockHandler(ctrl)
	gomock.InOrder(
		next.EXPECT().Handle(gomock.Any(), gomock.Any()).Return(domain.LLMResponse{Tokens: 100}, nil),
		next.EXPECT().Handle(gomock.Any(), gomock.Any()).Return(domain.LLMResponse{}, errors.New("mock error")),
	)
	h := builder.Next(next)
	_, err := h.Handle(context.Background(), domain.LLMRequest{Biz: domain.BizEvaluator})
	require.NoError(t, err)
	_, err = h.Handle(context.Background(), domain.LLMRequest{Biz: domain.BizEvaluator})
	assert.Error(t, err)
	assert.Equal(t, float64(100), testutil.ToFloat64(builder.tokens.WithLabelValues(domain.BizEvaluator)))

	stream := hdlmocks.NewMockStreamHandler(ctrl)
	ch := make(chan domain.StreamEvent, 1)
	ch <- domain.StreamEvent{Done: true, Tokens: 20}
	close(ch)
	stream.EXPECT().StreamHandle(gomock.Any(), gomock.Any()).Return(ch, nil)
	out, err := builder.NextStream(stream).StreamHandle(context.Background(), domain.LLMRequest{Biz: domain.BizEvaluator})
	require.NoError(t, err)
	for range out {
	}
	assert.Equal(t, float64(120), testutil.ToFloat64(builder.tokens.WithLabelValues(domain.BizEvaluator)))
}

func TestHandlerBuilder_NextStreamIncomplete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	builder := NewHandler("examgrader", "metrics_builder_incomplete_test", "test")

	stream := hdlmocks.NewMockStreamHandler(ctrl)
	ch := make(chan domain.StreamEvent, 1)
	ch <- domain.StreamEvent{Content: "{"}
	close(ch)
	stream.EXPECT().StreamHandle(gomock.Any(), gomock.Any()).Return(ch, nil)
	out, err := builder.NextStream(stream).StreamHandle(context.Background(), domain.LLMRequest{Biz: domain.BizEvaluator})
	require.NoError(t, err)
	for range out {
	}
	assert.False(t, builder.duration.DeleteLabelValues(domain.BizEvaluator, "stream", statusSuccess))
	assert.True(t, builder.duration.DeleteLabelValues(domain.BizEvaluator, "stream", statusFailed))
}
