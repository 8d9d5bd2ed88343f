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

package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
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
			body: `{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"test-model",` +
				`"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"{\"score\": 80}"}}],` +
				`"usage":{"prompt_tokens":10,"completion_tokens":5,"total_tokens":15}}`,
			wantResp: domain.LLMResponse{
				Tokens: 15,
				Answer: `{"score": 80}`,
			},
		},
		{
			name:    "限流",
			status:  http.StatusTooManyRequests,
			body:    `{"error":{"message":"slow down","type":"rate_limit_exceeded"}}`,
			wantErr: &errs.ProviderHTTPError{Provider: name, Status: http.StatusTooManyRequests, Message: "slow down"},
		},
		{
			name:    "参数错误",
			status:  http.StatusBadRequest,
			body:    `{"error":{"message":"max_tokens is too large","type":"invalid_request_error"}}`,
			wantErr: &errs.ProviderHTTPError{Provider: name, Status: http.StatusBadRequest, Message: "max_tokens is too large"},
		},
		{
			name:   "没有 choices",
			status: http.StatusOK,
			body: `{"id":"chatcmpl-2","object":"chat.completion","created":1,"model":"test-model","choices":[],` +
				`"usage":{"prompt_tokens":10,"completion_tokens":0,"total_tokens":10}}`,
			wantErr: &errs.ResponseShapeError{Provider: name, Reason: "choices[0].message.content 为空"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"))
				assert.Equal(t, "Bearer key-1", r.Header.Get("Authorization"))
				var req map[string]any
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "test-model", req["model"])
				assert.Equal(t, float64(4096), req["max_tokens"])
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}))
			defer server.Close()

			h := NewHandler(server.Client(), server.URL+"/", "test-model")
			resp, err := h.Handle(context.Background(), domain.LLMRequest{
				APIKey:      "key-1",
				Prompt:      "채점",
				MaxTokens:   4096,
				Temperature: 0.7,
			})
			assert.Equal(t, tc.wantErr, err)
			assert.Equal(t, tc.wantResp, resp)
		})
	}
}

func TestHandler_HandleTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	h := NewHandler(http.DefaultClient, url+"/", "")
	_, err := h.Handle(context.Background(), domain.LLMRequest{APIKey: "key-1", Prompt: "채점"})
	var transportErr *errs.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.True(t, errs.IsRetryable(err))
}

func TestHandler_StreamHandle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, true, req["stream"])
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		frames := []string{
			`{"id":"chatcmpl-3","object":"chat.completion.chunk","created":1,"model":"test-model","choices":[{"index":0,"delta":{"role":"assistant","content":"{\"sco"}}]}`,
			`{"id":"chatcmpl-3","object":"chat.completion.chunk","created":1,"model":"test-model","choices":[{"index":0,"delta":{"content":"re\":1}"}}]}`,
			`{"id":"chatcmpl-3","object":"chat.completion.chunk","created":1,"model":"test-model","choices":[{"index":0,"delta":{},"finish_reason":"stop"}]}`,
		}
		for _, frame := range frames {
			_, _ = io.WriteString(w, "data: "+frame+"\n\n")
			flusher.Flush()
		}
		_, _ = io.WriteString(w, "data: [DONE]\n\n")
		flusher.Flush()
	}))
	defer server.Close()

	h := NewHandler(server.Client(), server.URL+"/", "test-model")
	ch, err := h.StreamHandle(context.Background(), domain.LLMRequest{APIKey: "key-1", Prompt: "채점"})
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
	assert.Equal(t, []string{`{"sco`, `re":1}`}, contents)
	require.NoError(t, last.Error)
	assert.True(t, last.Done)
	assert.Equal(t, `{"score":1}`, last.Answer)
}

func TestHandler_StreamHandleHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `{"error":{"message":"overloaded","type":"server_error"}}`)
	}))
	defer server.Close()

	h := NewHandler(server.Client(), server.URL+"/", "test-model")
	ch, err := h.StreamHandle(context.Background(), domain.LLMRequest{APIKey: "key-1", Prompt: "채점"})
	assert.Nil(t, ch)
	assert.Equal(t, &errs.ProviderHTTPError{Provider: name, Status: http.StatusServiceUnavailable, Message: "overloaded"}, err)
	assert.True(t, errs.IsRetryable(err))
}
