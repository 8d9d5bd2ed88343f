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

// EvaluateRequest 一次评估的输入，Text 是 OCR 之后的答案
type EvaluateRequest struct {
	Text  string
	Field Field
}

// ModelAnswerRequest 评估完成之后，生成模范答案需要的输入
type ModelAnswerRequest struct {
	Text              string
	Field             Field
	Evaluations       []EvaluationResult
	OverallStrengths  []string
	OverallWeaknesses []string
	Improvements      []string
}
