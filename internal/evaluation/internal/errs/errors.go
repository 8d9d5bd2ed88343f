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

package errs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// userFacing 可以直接展示给用户的错误
type userFacing interface {
	UserMessage() string
}

// UserMessage 找到错误链上第一个可以展示给用户的消息
func UserMessage(err error) string {
	var uf userFacing
	if errors.As(err, &uf) {
		return uf.UserMessage()
	}
	return EvaluationFailed.Msg
}

// TransportError provider 网络层面的错误，连接失败、超时等
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: 调用失败: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProviderHTTPError provider 返回了非 2xx 的响应
type ProviderHTTPError struct {
	Provider string
	Status   int
	Message  string
}

func (e *ProviderHTTPError) Error() string {
	return fmt.Sprintf("%s: HTTP %d: %s", e.Provider, e.Status, e.Message)
}

// Retryable 429 和 5xx 是可以重试的
func (e *ProviderHTTPError) Retryable() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= http.StatusInternalServerError
}

// ResponseShapeError provider 的响应里面没有预期的文本字段
type ResponseShapeError struct {
	Provider string
	Reason   string
}

func (e *ResponseShapeError) Error() string {
	return fmt.Sprintf("%s: 响应结构不符合预期: %s", e.Provider, e.Reason)
}

// MalformedResponseError 模型输出里面找不到可以解析的 JSON
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("模型输出格式错误: %s: %v", e.Reason, e.Err)
	}
	return "模型输出格式错误: " + e.Reason
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// MissingCredentialError 一个 API key 都没有配置
type MissingCredentialError struct {
	Platform string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("%s: 没有配置 API key", e.Platform)
}

func (e *MissingCredentialError) UserMessage() string {
	return MissingCredential.Msg
}

// ValidationError 请求参数不合法，Msg 直接返回给用户
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("参数 %s 不合法: %s", e.Field, e.Msg)
}

func (e *ValidationError) UserMessage() string {
	return e.Msg
}

type StructureAnalysisError struct {
	Err error
}

func (e *StructureAnalysisError) Error() string {
	return fmt.Sprintf("结构分析失败: %v", e.Err)
}

func (e *StructureAnalysisError) Unwrap() error {
	return e.Err
}

func (e *StructureAnalysisError) UserMessage() string {
	return "구조 분석 중 오류가 발생했습니다."
}

// EvaluatorError 某一个评分者失败了，ID 是 A、B、C
type EvaluatorError struct {
	ID  string
	Err error
}

func (e *EvaluatorError) Error() string {
	return fmt.Sprintf("评分者 %s 失败: %v", e.ID, e.Err)
}

func (e *EvaluatorError) Unwrap() error {
	return e.Err
}

func (e *EvaluatorError) UserMessage() string {
	return fmt.Sprintf("평가위원 %s 평가 중 오류가 발생했습니다.", e.ID)
}

type AggregationError struct {
	Err error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("综合分析失败: %v", e.Err)
}

func (e *AggregationError) Unwrap() error {
	return e.Err
}

func (e *AggregationError) UserMessage() string {
	return "종합 분석 중 오류가 발생했습니다."
}

type ModelAnswerError struct {
	Err error
}

func (e *ModelAnswerError) Error() string {
	return fmt.Sprintf("生成模范答案失败: %v", e.Err)
}

func (e *ModelAnswerError) Unwrap() error {
	return e.Err
}

func (e *ModelAnswerError) UserMessage() string {
	return "모범 답안 생성 중 오류가 발생했습니다."
}

type OCRError struct {
	Err error
}

func (e *OCRError) Error() string {
	return fmt.Sprintf("OCR 失败: %v", e.Err)
}

func (e *OCRError) Unwrap() error {
	return e.Err
}

func (e *OCRError) UserMessage() string {
	return OCRFailed.Msg
}

// IsRetryable 判断 provider 调用的错误是否值得重试
func IsRetryable(err error) bool {
	var httpErr *ProviderHTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Retryable()
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		// 调用方主动取消或者超时的，不需要重试
		return !errors.Is(transportErr.Err, context.Canceled) &&
			!errors.Is(transportErr.Err, context.DeadlineExceeded)
	}
	return false
}
