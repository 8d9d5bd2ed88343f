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
	"net/http"
	"strings"

	"github.com/ecodeclub/examgrader/internal/evaluation/internal/domain"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/errs"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service/llm/handler"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service/llm/handler/platform"
)

const (
	name           = "gemini"
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-2.0-flash"
)

var _ handler.Platform = &Handler{}

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
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", h.baseURL, h.model)
	resp, err := platform.PostJSON(ctx, h.client, name, url, h.header(req), h.buildReq(req))
	if err != nil {
		return domain.LLMResponse{}, err
	}
	var res generateResponse
	if err = platform.DecodeJSON(name, resp, &res); err != nil {
		return domain.LLMResponse{}, err
	}
	text := res.text()
	if text == "" {
		return domain.LLMResponse{}, &errs.ResponseShapeError{Provider: name, Reason: "candidates[0].content.parts[0].text 为空"}
	}
	return domain.LLMResponse{
		Tokens: res.UsageMetadata.TotalTokenCount,
		Answer: text,
	}, nil
}

func (h *Handler) StreamHandle(ctx context.Context, req domain.LLMRequest) (chan domain.StreamEvent, error) {
	url := fmt.Sprintf("%s/v1beta/models/%s:streamGenerateContent?alt=sse", h.baseURL, h.model)
	resp, err := platform.PostJSON(ctx, h.client, name, url, h.header(req), h.buildReq(req))
	if err != nil {
		return nil, err
	}
	return platform.Relay(ctx, name, resp.Body, func(frame json.RawMessage, s *platform.Stream) error {
		var chunk generateResponse
		if err := json.Unmarshal(frame, &chunk); err != nil {
			return nil
		}
		if chunk.UsageMetadata.TotalTokenCount > 0 {
			s.SetTokens(chunk.UsageMetadata.TotalTokenCount)
		}
		return s.Delta(chunk.text())
	}), nil
}

func (h *Handler) header(req domain.LLMRequest) http.Header {
	header := http.Header{}
	header.Set("x-goog-api-key", req.APIKey)
	return header
}

func (h *Handler) buildReq(req domain.LLMRequest) generateRequest {
	parts := make([]part, 0, len(req.Images)+1)
	for _, img := range req.Images {
		parts = append(parts, part{InlineData: &inlineData{
			MimeType: img.MediaType,
			Data:     img.Data,
		}})
	}
	parts = append(parts, part{Text: req.Prompt})
	return generateRequest{
		Contents: []content{{Role: "user", Parts: parts}},
		GenerationConfig: generationConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: req.MaxTokens,
		},
	}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int64   `json:"maxOutputTokens,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	UsageMetadata struct {
		TotalTokenCount int64 `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

func (r generateResponse) text() string {
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return ""
	}
	return r.Candidates[0].Content.Parts[0].Text
}
