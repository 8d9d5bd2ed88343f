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

import "strings"

// PageBreak 多页答案拼接时使用的分隔符
const PageBreak = "\n\n--- 페이지 구분 ---\n\n"

type OCRResult struct {
	Text string `json:"text"`
	// 0-1
	Confidence  float64 `json:"confidence"`
	HasFormulas bool    `json:"hasFormulas"`
	HasDiagrams bool    `json:"hasDiagrams"`
}

// MergePages 把逐页识别的结果合并成一份，置信度取算术平均
func MergePages(pages []OCRResult) OCRResult {
	if len(pages) == 0 {
		return OCRResult{}
	}
	texts := make([]string, 0, len(pages))
	var res OCRResult
	var confidence float64
	for _, p := range pages {
		texts = append(texts, p.Text)
		confidence += p.Confidence
		res.HasFormulas = res.HasFormulas || p.HasFormulas
		res.HasDiagrams = res.HasDiagrams || p.HasDiagrams
	}
	res.Text = strings.Join(texts, PageBreak)
	res.Confidence = confidence / float64(len(pages))
	return res
}
