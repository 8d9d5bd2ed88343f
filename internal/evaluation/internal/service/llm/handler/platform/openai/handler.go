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
	"errors"
	"net/http"
	"strings"

	"github.com/ecodeclub/examgrader/internal/evaluation/internal/domain"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/errs"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service/llm/handler"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service/llm/handler/platform"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	name         = "openai"
	DefaultModel = "gpt-4o"
)

var _ handler.Platform = &Handler{}

// Handler 适用于所有兼容 OpenAI 协议的服务，通过 baseURL 切换
type Handler struct {
	client *openai.Client
	model  string
}

func NewHandler(client *http.Client, baseURL, model string) *Handler {
	if model == "" {
		model = DefaultModel
	}
	opts := []option.RequestOption{
		option.WithHTTPClient(client),
		// 重试交给 retry builder
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &Handler{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

func (h *Handler) Name() string {
	return name
}

func (h *Handler) Handle(ctx context.Context, req domain.LLMRequest) (domain.LLMResponse, error) {
	completion, err := h.client.Chat.Completions.New(ctx, h.buildParams(req), option.WithAPIKey(req.APIKey))
	if err != nil {
		return domain.LLMResponse{}, h.mapErr(err)
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
	params := h.buildParams(req)
	params.StreamOptions = openai.F(openai.ChatCompletionStreamOptionsParam{
		IncludeUsage: openai.F(true),
	})
	stream := h.client.Chat.Completions.NewStreaming(ctx, params, option.WithAPIKey(req.APIKey))
	// 第一次 Next 才能知道请求是否成功
	if !stream.Next() {
		err := stream.Err()
		_ = stream.Close()
		if err != nil {
			return nil, h.mapErr(err)
		}
		return nil, &errs.ResponseShapeError{Provider: name, Reason: "流式响应为空"}
	}
	s := platform.NewStream(ctx, name)
	go func() {
		defer stream.Close()
		acc := openai.ChatCompletionAccumulator{}
		var err error
		for ok := true; ok; ok = stream.Next() {
			chunk := stream.Current()
			acc.AddChunk(chunk)
			if len(chunk.Choices) == 0 {
				continue
			}
			if err = s.Delta(chunk.Choices[0].Delta.Content); err != nil {
				break
			}
		}
		if err == nil {
			err = stream.Err()
		}
		if err != nil {
			err = h.mapErr(err)
		}
		s.SetTokens(acc.Usage.TotalTokens)
		s.Close(err)
	}()
	return s.Chan(), nil
}

func (h *Handler) buildParams(req domain.LLMRequest) openai.ChatCompletionNewParams {
	var msg openai.ChatCompletionMessageParamUnion = openai.UserMessage(req.Prompt)
	if len(req.Images) > 0 {
		parts := make([]openai.ChatCompletionContentPartUnionParam, 0, len(req.Images)+1)
		for _, img := range req.Images {
			parts = append(parts, openai.ImagePart("data:"+img.MediaType+";base64,"+img.Data))
		}
		parts = append(parts, openai.TextPart(req.Prompt))
		msg = openai.UserMessageParts(parts...)
	}
	return openai.ChatCompletionNewParams{
		Messages:    openai.F([]openai.ChatCompletionMessageParamUnion{msg}),
		Model:       openai.F(h.model),
		MaxTokens:   openai.F(req.MaxTokens),
		Temperature: openai.F(req.Temperature),
	}
}

func (h *Handler) mapErr(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &errs.ProviderHTTPError{
			Provider: name,
			Status:   apiErr.StatusCode,
			Message:  errorMessage(apiErr),
		}
	}
	return &errs.TransportError{Provider: name, Err: err}
}

// errorMessage SDK 把整个响应体解析到 Error 上，
// 标准的 {"error":{"message":...}} 格式下 Message 是空的，要从原始响应体里面取
func errorMessage(apiErr *openai.Error) string {
	if apiErr.Message != "" {
		return apiErr.Message
	}
	raw := strings.TrimSpace(apiErr.JSON.RawJSON())
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal([]byte(raw), &body); err == nil && body.Error.Message != "" {
		return body.Error.Message
	}
	return raw
}
