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

package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ecodeclub/examgrader/internal/evaluation/internal/domain"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/errs"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service/llm/handler"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service/llm/handler/platform"
)

const (
	name           = "anthropic"
	DefaultBaseURL = "https://api.anthropic.com"
	DefaultModel   = "claude-sonnet-4-20250514"
	apiVersion     = "2023-06-01"
)

var _ handler.Platform = &Handler{}

// Handler 调用 Messages API
type Handler struct {
	client  *http.Client
	baseURL string
	model   string
}

func NewHandler(client *http.Client, baseURL, model string) *Handler {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Handler{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
	}
}

func (h *Handler) Name() string {
	return name
}

func (h *Handler) Handle(ctx context.Context, req domain.LLMRequest) (domain.LLMResponse, error) {
	resp, err := platform.PostJSON(ctx, h.client, name, h.url(), h.header(req), h.buildReq(req, false))
	if err != nil {
		return domain.LLMResponse{}, err
	}
	var msg messageResponse
	if err = platform.DecodeJSON(name, resp, &msg); err != nil {
		return domain.LLMResponse{}, err
	}
	if len(msg.Content) == 0 || msg.Content[0].Text == "" {
		return domain.LLMResponse{}, &errs.ResponseShapeError{Provider: name, Reason: "content[0].text 为空"}
	}
	return domain.LLMResponse{
		Tokens: msg.Usage.InputTokens + msg.Usage.OutputTokens,
		Answer: msg.Content[0].Text,
	}, nil
}

func (h *Handler) StreamHandle(ctx context.Context, req domain.LLMRequest) (chan domain.StreamEvent, error) {
	resp, err := platform.PostJSON(ctx, h.client, name, h.url(), h.header(req), h.buildReq(req, true))
	if err != nil {
		return nil, err
	}
	var inputTokens int64
	return platform.Relay(ctx, name, resp.Body, func(frame json.RawMessage, s *platform.Stream) error {
		var evt streamEvent
		if err := json.Unmarshal(frame, &evt); err != nil {
			// 坏掉的帧直接丢弃
			return nil
		}
		switch evt.Type {
		case "message_start":
			inputTokens = evt.Message.Usage.InputTokens
			s.SetTokens(inputTokens)
		case "content_block_delta":
			return s.Delta(evt.Delta.Text)
		case "message_delta":
			s.SetTokens(inputTokens + evt.Usage.OutputTokens)
		case "error":
			return &errs.ProviderHTTPError{
				Provider: name,
				Status:   http.StatusServiceUnavailable,
				Message:  evt.Error.Type + ": " + evt.Error.Message,
			}
		}
		return nil
	}), nil
}

func (h *Handler) url() string {
	return h.baseURL + "/v1/messages"
}

func (h *Handler) header(req domain.LLMRequest) http.Header {
	header := http.Header{}
	header.Set("x-api-key", req.APIKey)
	header.Set("anthropic-version", apiVersion)
	return header
}

func (h *Handler) buildReq(req domain.LLMRequest, stream bool) messageRequest {
	content := make([]contentBlock, 0, len(req.Images)+1)
	for _, img := range req.Images {
		content = append(content, contentBlock{
			Type: "image",
			Source: &imageSource{
				Type:      "base64",
				MediaType: img.MediaType,
				Data:      img.Data,
			},
		})
	}
	content = append(content, contentBlock{Type: "text", Text: req.Prompt})
	return messageRequest{
		Model:       h.model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		Stream:      stream,
		Messages: []message{
			{Role: "user", Content: content},
		},
	}
}

type messageRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int64     `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	Stream      bool      `json:"stream,omitempty"`
	Messages    []message `json:"messages"`
}

type message struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *imageSource `json:"source,omitempty"`
}

type imageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type usage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
}

type messageResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage usage `json:"usage"`
}

type streamEvent struct {
	Type    string `json:"type"`
	Message struct {
		Usage usage `json:"usage"`
	} `json:"message"`
	Delta struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"delta"`
	Usage usage `json:"usage"`
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}
