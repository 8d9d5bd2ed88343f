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
	"strconv"
	"strings"

	"github.com/ecodeclub/examgrader/internal/evaluation/internal/domain"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/errs"
	"github.com/gotomicro/ego/core/elog"
)

const (
	maxScore       = 100
	maxDetailScore = 20
)

// NormalizeEvaluation 把评分者的输出转成完整的 EvaluationResult。
// 总分、五个维度、评语、引用缺失或者类型不对，都会用默认值补齐；
// 只有整个输出不是 JSON 对象的时候才返回错误
func NormalizeEvaluation(id domain.EvaluatorID, raw json.RawMessage) (domain.EvaluationResult, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return domain.EvaluationResult{}, &errs.MalformedResponseError{Reason: "评分结果不是 JSON 对象", Err: err}
	}
	score, ok := decodeNumber(obj["score"])
	if !ok {
		elog.DefaultLogger.Warn("评分结果缺少 score，按 0 分处理",
			elog.String("evaluator", string(id)))
		score = 0
	}
	var feedback map[string]json.RawMessage
	if err := json.Unmarshal(obj["detailedFeedback"], &feedback); err != nil {
		feedback = nil
	}
	return domain.EvaluationResult{
		EvaluatorID: id,
		Score:       clamp(score, maxScore),
		Strengths:   decodeStrings(obj["strengths"]),
		Weaknesses:  decodeStrings(obj["weaknesses"]),
		Comment:     decodeString(obj["comment"]),
		KeyPoints:   decodeStrings(obj["keyPoints"]),
		DetailedFeedback: domain.DetailedFeedback{
			Theory:       decodeDetailedScore(feedback["theory"]),
			Practical:    decodeDetailedScore(feedback["practical"]),
			Structure:    decodeDetailedScore(feedback["structure"]),
			Expression:   decodeDetailedScore(feedback["expression"]),
			Completeness: decodeDetailedScore(feedback["completeness"]),
		},
	}, nil
}

func decodeDetailedScore(raw json.RawMessage) domain.DetailedScore {
	res := domain.DetailedScore{Quotes: []domain.QuotedFeedback{}}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return res
	}
	if score, ok := decodeNumber(obj["score"]); ok {
		res.Score = clamp(score, maxDetailScore)
	}
	res.Comment = decodeString(obj["comment"])
	var quotes []json.RawMessage
	if err := json.Unmarshal(obj["quotes"], &quotes); err != nil {
		return res
	}
	for _, q := range quotes {
		var quote struct {
			Quote      string   `json:"quote"`
			Evaluation string   `json:"evaluation"`
			IsPositive flexBool `json:"isPositive"`
		}
		if err := json.Unmarshal(q, &quote); err != nil || quote.Quote == "" {
			continue
		}
		res.Quotes = append(res.Quotes, domain.QuotedFeedback{
			Quote:      quote.Quote,
			Evaluation: quote.Evaluation,
			IsPositive: bool(quote.IsPositive),
		})
	}
	return res
}

// decodeNumber 数字或者数字字符串，ok 表示有没有拿到合法的值
func decodeNumber(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f, err == nil
}

func decodeString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// decodeStrings 只保留字符串元素，任何情况下都不会返回 nil
func decodeStrings(raw json.RawMessage) []string {
	res := []string{}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return res
	}
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			res = append(res, s)
		}
	}
	return res
}

func clamp(val float64, upper float64) float64 {
	if val < 0 {
		return 0
	}
	if val > upper {
		return upper
	}
	return val
}
