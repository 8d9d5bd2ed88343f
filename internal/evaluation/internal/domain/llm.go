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

package domain

const (
	BizStructureAnalysis     = "structure_analysis"
	BizEvaluator             = "evaluator"
	BizComprehensiveAnalysis = "comprehensive_analysis"
	BizModelAnswer           = "model_answer"
	BizOCR                   = "ocr"
)

// Image 视觉模型的图片输入
type Image struct {
	// 例如 image/png
	MediaType string
	// base64 编码之后的内容，不带 data URL 前缀
	Data string
}

type LLMRequest struct {
	Biz string
	// 请求 id，每一次调用都不一样
	Tid string
	// 一次评估的 id，同一次评估的所有调用共享
	RunID string
	// 调用 provider 使用的 key，由 key pool 分配
	APIKey string
	Prompt string
	Images []Image
	// 最多输出多少 token
	MaxTokens   int64
	Temperature float64
}

type LLMResponse struct {
	// 花费的token
	Tokens int64
	// llm 的回答
	Answer string
}

type StreamEvent struct {
	// 增量内容
	Content string
	// Done 的时候带上完整的回答
	Answer string
	Tokens int64
	// 错误
	Error error
	// 是否结束
	Done bool
}

type LLMRecord struct {
	Id     int64
	Tid    string
	RunID  string
	Biz    string
	Tokens int64
	Status RecordStatus
	Prompt string
	Answer string
	Ctime  int64
	Utime  int64
}

type RecordStatus uint8

func (g RecordStatus) ToUint8() uint8 {
	return uint8(g)
}

const (
	RecordStatusProcessing RecordStatus = 0
	RecordStatusSuccess    RecordStatus = 1
	RecordStatusFailed     RecordStatus = 2
)
