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

package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ecodeclub/examgrader/internal/evaluation/internal/domain"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Handle(t *testing.T) {
	testCases := []struct {
		name     string
		status   int
		body     string
		wantResp domain.LLMResponse
		wantErr  error
	}{
		{
			name:   "成功",
			status: http.StatusOK,
			body:   `{"candidates":[{"content":{"parts":[{"text":"{\"score\": 90}"}]}}],"usageMetadata":{"totalTokenCount":42}}`,
			wantResp: domain.LLMResponse{
				Tokens: 42,
				Answer: `{"score": 90}`,
			},
		},
		{
			name:    "服务不可用",
			status:  http.StatusServiceUnavailable,
			body:    "overloaded",
			wantErr: &errs.ProviderHTTPError{Provider: name, Status: http.StatusServiceUnavailable, Message: "overloaded"},
		},
		{
			name:    "没有候选",
			status:  http.StatusOK,
			body:    `{"candidates":[]}`,
			wantErr: &errs.ResponseShapeError{Provider: name, Reason: "candidates[0].content.parts[0].text 为空"},
		},
		{
			name:    "不是 JSON",
			status:  http.StatusOK,
			body:    `<html>`,
			wantErr: &errs.ResponseShapeError{Provider: name, Reason: "响应不是合法的 JSON: invalid character '<' looking for beginning of value"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v1beta/models/test-model:generateContent", r.URL.Path)
				assert.Equal(t, "key-1", r.Header.Get("x-goog-api-key"))
				var req generateRequest
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, int64(2048), req.GenerationConfig.MaxOutputTokens)
				assert.Equal(t, 0.3, req.GenerationConfig.Temperature)
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}))
			defer server.Close()

			h := NewHandler(server.Client(), server.URL, "test-model")
			resp, err := h.Handle(context.Background(), domain.LLMRequest{
				APIKey:      "key-1",
				Prompt:      "구조 분석",
				MaxTokens:   2048,
				Temperature: 0.3,
			})
			assert.Equal(t, tc.wantErr, err)
			assert.Equal(t, tc.wantResp, resp)
		})
	}
}

func TestHandler_StreamHandle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/test-model:streamGenerateContent", r.URL.Path)
		assert.Equal(t, "sse", r.URL.Query().Get("alt"))
		flusher := w.(http.Flusher)
		frames := []string{
			`data: {"candidates":[{"content":{"parts":[{"text":"모범 "}]}}],"usageMetadata":{"totalTokenCount":10}}`,
			`data: {"candidates":[{"content":{"parts":[{"text":"답안"}]}}],"usageMetadata":{"totalTokenCount":15}}`,
		}
		for _, f := range frames {
			// 故意把一帧拆成两次写
			_, _ = fmt.Fprint(w, f[:10])
			flusher.Flush()
			_, _ = fmt.Fprint(w, f[10:]+"\r\n\r\n")
			flusher.Flush()
		}
	}))
	defer server.Close()

	h := NewHandler(server.Client(), server.URL, "test-model")
	ch, err := h.StreamHandle(context.Background(), domain.LLMRequest{APIKey: "key-1"})
	require.NoError(t, err)
	var (
		contents []string
		last     domain.StreamEvent
	)
	for evt := range ch {
		if evt.Content != "" {
			contents = append(contents, evt.Content)
		}
		last = evt
	}
	assert.Equal(t, []string{"모범 ", "답안"}, contents)
	assert.True(t, last.Done)
	assert.Equal(t, "모범 답안", last.Answer)
	assert.Equal(t, int64(15), last.Tokens)
}
