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
	"errors"
	"testing"

	"github.com/ecodeclub/examgrader/internal/evaluation/internal/domain"
	hdlmocks "github.com/ecodeclub/examgrader/internal/evaluation/internal/service/llm/handler/mocks"
	evalmocks "github.com/ecodeclub/examgrader/internal/evaluation/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHandlerBuilder_Next(t *testing.T) {
	req := domain.LLMRequest{
		Biz:    domain.BizEvaluator,
		Tid:    "tid-1",
		RunID:  "run-1",
		Prompt: "채점해 주세요",
	}
	testCases := []struct {
		name       string
		mock       func(ctrl *gomock.Controller) (*hdlmocks.MockHandler, *evalmocks.MockLLMRecordRepo)
		wantResp   domain.LLMResponse
		wantErr    error
		wantRecord domain.LLMRecord
	}{
		{
			name: "调用成功",
			mock: func(ctrl *gomock.Controller) (*hdlmocks.MockHandler, *evalmocks.MockLLMRecordRepo) {
				next := hdlmocks.NewMockHandler(ctrl)
				next.EXPECT().Handle(gomock.Any(), req).Return(domain.LLMResponse{Tokens: 12, Answer: `{"score": 80}`}, nil)
				repo := evalmocks.NewMockLLMRecordRepo(ctrl)
				repo.EXPECT().SaveRecord(gomock.Any(), domain.LLMRecord{
					Tid:    "tid-1",
					RunID:  "run-1",
					Biz:    domain.BizEvaluator,
					Tokens: 12,
					Status: domain.RecordStatusSuccess,
					Prompt: "채점해 주세요",
					Answer: `{"score": 80}`,
				}).Return(int64(1), nil)
				return next, repo
			},
			wantResp: domain.LLMResponse{Tokens: 12, Answer: `{"score": 80}`},
		},
		{
			name: "调用失败",
			mock: func(ctrl *gomock.Controller) (*hdlmocks.MockHandler, *evalmocks.MockLLMRecordRepo) {
				next := hdlmocks.NewMockHandler(ctrl)
				next.EXPECT().Handle(gomock.Any(), req).Return(domain.LLMResponse{}, errors.New("mock error"))
				repo := evalmocks.NewMockLLMRecordRepo(ctrl)
				repo.EXPECT().SaveRecord(gomock.Any(), domain.LLMRecord{
					Tid:    "tid-1",
					RunID:  "run-1",
					Biz:    domain.BizEvaluator,
					Status: domain.RecordStatusFailed,
					Prompt: "채점해 주세요",
				}).Return(int64(1), nil)
				return next, repo
			},
			wantErr: errors.New("mock error"),
		},
		{
			name: "保存记录失败不影响结果",
			mock: func(ctrl *gomock.Controller) (*hdlmocks.MockHandler, *evalmocks.MockLLMRecordRepo) {
				next := hdlmocks.NewMockHandler(ctrl)
				next.EXPECT().Handle(gomock.Any(), req).Return(domain.LLMResponse{Tokens: 3, Answer: "ok"}, nil)
				repo := evalmocks.NewMockLLMRecordRepo(ctrl)
				repo.EXPECT().SaveRecord(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("db error"))
				return next, repo
			},
			wantResp: domain.LLMResponse{Tokens: 3, Answer: "ok"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			next, repo := tc.mock(ctrl)
			resp, err := NewHandler(repo).Next(next).Handle(context.Background(), req)
			assert.Equal(t, tc.wantErr, err)
			assert.Equal(t, tc.wantResp, resp)
		})
	}
}

func TestHandlerBuilder_NextStream(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	req := domain.LLMRequest{Biz: domain.BizComprehensiveAnalysis, Tid: "tid-2", RunID: "run-2"}

	ch := make(chan domain.StreamEvent, 3)
	ch <- domain.StreamEvent{Content: "{\"predictedGrade\""}
	ch <- domain.StreamEvent{Content: ": \"B\"}"}
	ch <- domain.StreamEvent{Done: true, Answer: `{"predictedGrade": "B"}`, Tokens: 30}
	close(ch)

	next := hdlmocks.NewMockStreamHandler(ctrl)
	next.EXPECT().StreamHandle(gomock.Any(), req).Return(ch, nil)
	repo := evalmocks.NewMockLLMRecordRepo(ctrl)
	repo.EXPECT().SaveRecord(gomock.Any(), domain.LLMRecord{
		Tid:    "tid-2",
		RunID:  "run-2",
		Biz:    domain.BizComprehensiveAnalysis,
		Tokens: 30,
		Status: domain.RecordStatusSuccess,
		Answer: `{"predictedGrade": "B"}`,
	}).Return(int64(1), nil)

	out, err := NewHandler(repo).NextStream(next).StreamHandle(context.Background(), req)
	require.NoError(t, err)
	var contents []string
	for evt := range out {
		if evt.Content != "" {
			contents = append(contents, evt.Content)
		}
	}
	assert.Equal(t, []string{"{\"predictedGrade\"", ": \"B\"}"}, contents)
}

func TestHandlerBuilder_NextStreamIncomplete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	req := domain.LLMRequest{Biz: domain.BizEvaluator, Tid: "tid-3", RunID: "run-3"}

	// 上游取消之后结束事件没有送达
	ch := make(chan domain.StreamEvent, 1)
	ch <- domain.StreamEvent{Content: "{\"score\""}
	close(ch)

	next := hdlmocks.NewMockStreamHandler(ctrl)
	next.EXPECT().StreamHandle(gomock.Any(), req).Return(ch, nil)
	repo := evalmocks.NewMockLLMRecordRepo(ctrl)
	repo.EXPECT().SaveRecord(gomock.Any(), domain.LLMRecord{
		Tid:    "tid-3",
		RunID:  "run-3",
		Biz:    domain.BizEvaluator,
		Status: domain.RecordStatusFailed,
	}).Return(int64(1), nil)

	out, err := NewHandler(repo).NextStream(next).StreamHandle(context.Background(), req)
	require.NoError(t, err)
	for range out {
	}
}
