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

import (
	"slices"
	"strings"
)

// EvaluatorID 评分者，顺序有意义：A < B < C
type EvaluatorID string

const (
	EvaluatorA EvaluatorID = "A"
	EvaluatorB EvaluatorID = "B"
	EvaluatorC EvaluatorID = "C"
)

// Evaluators 固定的三个评分者，下标就是分配 API key 的位置
func Evaluators() []EvaluatorID {
	return []EvaluatorID{EvaluatorA, EvaluatorB, EvaluatorC}
}

func (id EvaluatorID) Valid() bool {
	return slices.Contains(Evaluators(), id)
}

// Index 在 Evaluators 中的位置，非法的 ID 返回 -1
func (id EvaluatorID) Index() int {
	return slices.Index(Evaluators(), id)
}

type QuotedFeedback struct {
	// 答案原文
	Quote      string `json:"quote"`
	Evaluation string `json:"evaluation"`
	IsPositive bool   `json:"isPositive"`
}

// DetailedScore 单个维度的得分，满分 20
type DetailedScore struct {
	Score   float64          `json:"score"`
	Comment string           `json:"comment"`
	Quotes  []QuotedFeedback `json:"quotes"`
}

type DetailedFeedback struct {
	Theory       DetailedScore `json:"theory"`
	Practical    DetailedScore `json:"practical"`
	Structure    DetailedScore `json:"structure"`
	Expression   DetailedScore `json:"expression"`
	Completeness DetailedScore `json:"completeness"`
}

// EvaluationResult 一个评分者的评分结果
type EvaluationResult struct {
	EvaluatorID      EvaluatorID      `json:"evaluatorId"`
	Score            float64          `json:"score"`
	Strengths        []string         `json:"strengths"`
	Weaknesses       []string         `json:"weaknesses"`
	Comment          string           `json:"comment"`
	KeyPoints        []string         `json:"keyPoints"`
	DetailedFeedback DetailedFeedback `json:"detailedFeedback"`
}

// SortEvaluations 按照 A、B、C 排序，不管谁先完成
func SortEvaluations(evals []EvaluationResult) {
	slices.SortFunc(evals, func(a, b EvaluationResult) int {
		return strings.Compare(string(a.EvaluatorID), string(b.EvaluatorID))
	})
}

// AverageScore 算术平均
func AverageScore(evals []EvaluationResult) float64 {
	if len(evals) == 0 {
		return 0
	}
	var sum float64
	for _, e := range evals {
		sum += e.Score
	}
	return sum / float64(len(evals))
}
