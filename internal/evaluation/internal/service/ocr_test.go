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

package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/ecodeclub/examgrader/internal/evaluation/internal/domain"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/errs"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/repository/cache"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service/extract"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service/keypool"
	hdlmocks "github.com/ecodeclub/examgrader/internal/evaluation/internal/service/llm/handler/mocks"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service/stage"
	evalmocks "github.com/ecodeclub/examgrader/internal/evaluation/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	pngBase64  = "iVBORw0KGgoAAAAAAAAAAA=="
	jpegBase64 = "/9j/4AAAAAAAAAAA"
)

func newOCRService(ctrl *gomock.Controller) (service.OCRService, *hdlmocks.MockHandler, *evalmocks.MockOCRCache) {
	h := hdlmocks.NewMockHandler(ctrl)
	c := evalmocks.NewMockOCRCache(ctrl)
	runner := stage.NewRunner(h, hdlmocks.NewMockStreamHandler(ctrl),
		extract.NewBraceExtractor(), stage.DefaultPrompts(), stage.Timeouts{})
	return service.NewOCRService(runner, keypool.NewLoader("gemini", testKeys, ""), c), h, c
}

func ocrAnswer(text string, confidence string) domain.LLMResponse {
	return domain.LLMResponse{Answer: `{"text": "` + text + `", "confidence": ` + confidence + `, "hasFormulas": false, "hasDiagrams": true}`}
}

func TestOCRService_Recognize(t *testing.T) {
	testCases := []struct {
		name    string
		image   string
		mock    func(h *hdlmocks.MockHandler, c *evalmocks.MockOCRCache)
		wantRes domain.OCRResult
		wantMsg string
	}{
		{
			name:  "data URL",
			image: "data:image/png;base64," + pngBase64,
			mock: func(h *hdlmocks.MockHandler, c *evalmocks.MockOCRCache) {
				c.EXPECT().Get(gomock.Any(), gomock.Any()).Return(domain.OCRResult{}, cache.ErrOCRResultNotFound)
				h.EXPECT().Handle(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, req domain.LLMRequest) (domain.LLMResponse, error) {
						assert.Equal(t, domain.BizOCR, req.Biz)
						assert.Equal(t, []domain.Image{{MediaType: "image/png", Data: pngBase64}}, req.Images)
						assert.Equal(t, 0.0, req.Temperature)
						return ocrAnswer("1. 개요", "0.9"), nil
					})
				c.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			wantRes: domain.OCRResult{Text: "1. 개요", Confidence: 0.9, HasDiagrams: true},
		},
		{
			name:  "纯 base64",
			image: jpegBase64,
			mock: func(h *hdlmocks.MockHandler, c *evalmocks.MockOCRCache) {
				c.EXPECT().Get(gomock.Any(), gomock.Any()).Return(domain.OCRResult{}, cache.ErrOCRResultNotFound)
				h.EXPECT().Handle(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, req domain.LLMRequest) (domain.LLMResponse, error) {
						assert.Equal(t, "image/jpeg", req.Images[0].MediaType)
						return ocrAnswer("본문", "1.5"), nil
					})
				c.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			wantRes: domain.OCRResult{Text: "본문", Confidence: 1, HasDiagrams: true},
		},
		{
			name:  "命中缓存",
			image: "data:image/png;base64," + pngBase64,
			mock: func(h *hdlmocks.MockHandler, c *evalmocks.MockOCRCache) {
				c.EXPECT().Get(gomock.Any(), gomock.Any()).Return(domain.OCRResult{Text: "캐시", Confidence: 0.8}, nil)
			},
			wantRes: domain.OCRResult{Text: "캐시", Confidence: 0.8},
		},
		{
			name:  "缓存出错",
			image: "data:image/png;base64," + pngBase64,
			mock: func(h *hdlmocks.MockHandler, c *evalmocks.MockOCRCache) {
				c.EXPECT().Get(gomock.Any(), gomock.Any()).Return(domain.OCRResult{}, errors.New("redis 挂了"))
				h.EXPECT().Handle(gomock.Any(), gomock.Any()).Return(ocrAnswer("본문", "0.5"), nil)
				c.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis 挂了"))
			},
			wantRes: domain.OCRResult{Text: "본문", Confidence: 0.5, HasDiagrams: true},
		},
		{
			name:    "没有图片",
			image:   " ",
			mock:    func(h *hdlmocks.MockHandler, c *evalmocks.MockOCRCache) {},
			wantMsg: "이미지가 제공되지 않았습니다.",
		},
		{
			name:    "不是图片",
			image:   "data:text/plain;base64,aGVsbG8gd29ybGQ=",
			mock:    func(h *hdlmocks.MockHandler, c *evalmocks.MockOCRCache) {},
			wantMsg: "올바른 이미지 형식이 아닙니다.",
		},
		{
			name:    "base64 内容不是图片",
			image:   "aGVsbG8gd29ybGQ=",
			mock:    func(h *hdlmocks.MockHandler, c *evalmocks.MockOCRCache) {},
			wantMsg: "올바른 이미지 형식이 아닙니다.",
		},
		{
			name:    "不是 base64",
			image:   "이미지",
			mock:    func(h *hdlmocks.MockHandler, c *evalmocks.MockOCRCache) {},
			wantMsg: "올바른 이미지 형식이 아닙니다.",
		},
		{
			name:  "模型调用失败",
			image: "data:image/png;base64," + pngBase64,
			mock: func(h *hdlmocks.MockHandler, c *evalmocks.MockOCRCache) {
				c.EXPECT().Get(gomock.Any(), gomock.Any()).Return(domain.OCRResult{}, cache.ErrOCRResultNotFound)
				h.EXPECT().Handle(gomock.Any(), gomock.Any()).
					Return(domain.LLMResponse{}, &errs.ProviderHTTPError{Provider: "gemini", Status: http.StatusForbidden})
			},
			wantMsg: errs.OCRFailed.Msg,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			svc, h, c := newOCRService(ctrl)
			tc.mock(h, c)
			res, err := svc.Recognize(context.Background(), tc.image)
			if tc.wantMsg != "" {
				require.Error(t, err)
				assert.Equal(t, tc.wantMsg, errs.UserMessage(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantRes, res)
		})
	}
}

func TestOCRService_RecognizePages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, h, c := newOCRService(ctrl)
	c.EXPECT().Get(gomock.Any(), gomock.Any()).Return(domain.OCRResult{}, cache.ErrOCRResultNotFound).Times(2)
	c.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	h.EXPECT().Handle(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req domain.LLMRequest) (domain.LLMResponse, error) {
			// 第一页用第一个 key，第二页用第二个 key
			if req.Images[0].MediaType == "image/png" {
				assert.Equal(t, "key-a", req.APIKey)
				return ocrAnswer("첫 페이지", "0.8"), nil
			}
			assert.Equal(t, "key-b", req.APIKey)
			return ocrAnswer("둘째 페이지", "0.6"), nil
		}).Times(2)

	res, err := svc.RecognizePages(context.Background(), []string{
		"data:image/png;base64," + pngBase64,
		"data:image/jpeg;base64," + jpegBase64,
	})
	require.NoError(t, err)
	assert.Equal(t, "첫 페이지"+domain.PageBreak+"둘째 페이지", res.Text)
	assert.InDelta(t, 0.7, res.Confidence, 1e-9)
	assert.True(t, res.HasDiagrams)
	assert.False(t, res.HasFormulas)

	_, err = svc.RecognizePages(context.Background(), nil)
	assert.Equal(t, "이미지가 제공되지 않았습니다.", errs.UserMessage(err))
}
