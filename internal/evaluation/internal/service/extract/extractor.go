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

package extract

import (
	"encoding/json"
	"regexp"

	"github.com/ecodeclub/examgrader/internal/evaluation/internal/errs"
)

// Extractor 从模型的自由文本输出里面找到 JSON 对象
type Extractor interface {
	Extract(raw string) (json.RawMessage, error)
}

// 从第一个 { 到最后一个 }，贪婪匹配
const jsonExpr = `(?s)\{.*\}`

// 要求模型把 JSON 放在 ``` 代码块里面
const fencedExpr = "(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```"

// BraceExtractor 宽松的提取方式，模型在 JSON 前后加了说明文字也能处理
type BraceExtractor struct {
	expr *regexp.Regexp
}

func NewBraceExtractor() *BraceExtractor {
	return &BraceExtractor{
		expr: regexp.MustCompile(jsonExpr),
	}
}

func (b *BraceExtractor) Extract(raw string) (json.RawMessage, error) {
	val := b.expr.FindString(raw)
	if val == "" {
		return nil, &errs.MalformedResponseError{Reason: "没有找到 JSON 对象"}
	}
	return parseObject(val)
}

// FencedExtractor 严格的提取方式，只认代码块里面的 JSON
type FencedExtractor struct {
	expr *regexp.Regexp
}

func NewFencedExtractor() *FencedExtractor {
	return &FencedExtractor{
		expr: regexp.MustCompile(fencedExpr),
	}
}

func (f *FencedExtractor) Extract(raw string) (json.RawMessage, error) {
	matches := f.expr.FindStringSubmatch(raw)
	if len(matches) < 2 {
		return nil, &errs.MalformedResponseError{Reason: "没有找到 JSON 代码块"}
	}
	return parseObject(matches[1])
}

func parseObject(val string) (json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(val), &obj); err != nil {
		return nil, &errs.MalformedResponseError{Reason: "JSON 解析失败", Err: err}
	}
	return json.RawMessage(val), nil
}
