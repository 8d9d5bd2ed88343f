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

type Readability string

const (
	ReadabilityHigh   Readability = "상"
	ReadabilityMedium Readability = "중"
	ReadabilityLow    Readability = "하"
)

// StructureAnalysis 评分前的结构预分析，一次评估只生成一次，之后只读
type StructureAnalysis struct {
	DetectedField Field `json:"detectedField"`
	// 0-100
	FieldConfidence float64 `json:"fieldConfidence"`
	FieldReason     string  `json:"fieldReason"`

	Structure StructureCheck `json:"structure"`
	Diagrams  DiagramCheck   `json:"diagrams"`
	Keywords  KeywordCheck   `json:"keywords"`
	Format    FormatCheck    `json:"format"`

	// 0-100，仅供参考
	OverallStructureScore float64 `json:"overallStructureScore"`
	StructureSummary      string  `json:"structureSummary"`
}

type StructureCheck struct {
	HasOutline       bool   `json:"hasOutline"`
	HasIntro         bool   `json:"hasIntro"`
	HasBody          bool   `json:"hasBody"`
	HasConclusion    bool   `json:"hasConclusion"`
	StructureComment string `json:"structureComment"`
}

type DiagramCheck struct {
	HasDiagram     bool     `json:"hasDiagram"`
	DiagramTypes   []string `json:"diagramTypes"`
	DiagramComment string   `json:"diagramComment"`
}

type KeywordCheck struct {
	Found          []string `json:"found"`
	FieldSpecific  []string `json:"fieldSpecific"`
	Missing        []string `json:"missing"`
	KeywordComment string   `json:"keywordComment"`
}

type FormatCheck struct {
	EstimatedPages float64     `json:"estimatedPages"`
	Readability    Readability `json:"readability"`
	FormatComment  string      `json:"formatComment"`
}
