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

	"github.com/ecodeclub/examgrader/internal/evaluation/internal/domain"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/errs"
)

type structurePayload struct {
	DetectedField   flexString `json:"detectedField"`
	FieldConfidence flexNumber `json:"fieldConfidence"`
	FieldReason     flexString `json:"fieldReason"`
	Structure       struct {
		HasOutline       flexBool   `json:"hasOutline"`
		HasIntro         flexBool   `json:"hasIntro"`
		HasBody          flexBool   `json:"hasBody"`
		HasConclusion    flexBool   `json:"hasConclusion"`
		StructureComment flexString `json:"structureComment"`
	} `json:"structure"`
	Diagrams struct {
		HasDiagram     flexBool    `json:"hasDiagram"`
		DiagramTypes   flexStrings `json:"diagramTypes"`
		DiagramComment flexString  `json:"diagramComment"`
	} `json:"diagrams"`
	Keywords struct {
		Found          flexStrings `json:"found"`
		FieldSpecific  flexStrings `json:"fieldSpecific"`
		Missing        flexStrings `json:"missing"`
		KeywordComment flexString  `json:"keywordComment"`
	} `json:"keywords"`
	Format struct {
		EstimatedPages flexNumber `json:"estimatedPages"`
		Readability    flexString `json:"readability"`
		FormatComment  flexString `json:"formatComment"`
	} `json:"format"`
	OverallStructureScore flexNumber `json:"overallStructureScore"`
	StructureSummary      flexString `json:"structureSummary"`
}

// DecodeStructure 解析结构分析的输出。
// 嵌套对象的类型不对会导致失败，其余字段缺失都用零值
func DecodeStructure(raw json.RawMessage) (domain.StructureAnalysis, error) {
	var p structurePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.StructureAnalysis{}, &errs.MalformedResponseError{Reason: "结构分析结果解析失败", Err: err}
	}
	field := domain.Field(p.DetectedField)
	if !field.Valid() {
		field = domain.FieldOther
	}
	readability := domain.Readability(p.Format.Readability)
	switch readability {
	case domain.ReadabilityHigh, domain.ReadabilityMedium, domain.ReadabilityLow:
	default:
		readability = domain.ReadabilityMedium
	}
	return domain.StructureAnalysis{
		DetectedField:   field,
		FieldConfidence: clamp(float64(p.FieldConfidence), maxScore),
		FieldReason:     string(p.FieldReason),
		Structure: domain.StructureCheck{
			HasOutline:       bool(p.Structure.HasOutline),
			HasIntro:         bool(p.Structure.HasIntro),
			HasBody:          bool(p.Structure.HasBody),
			HasConclusion:    bool(p.Structure.HasConclusion),
			StructureComment: string(p.Structure.StructureComment),
		},
		Diagrams: domain.DiagramCheck{
			HasDiagram:     bool(p.Diagrams.HasDiagram),
			DiagramTypes:   p.Diagrams.DiagramTypes.orEmpty(),
			DiagramComment: string(p.Diagrams.DiagramComment),
		},
		Keywords: domain.KeywordCheck{
			Found:          p.Keywords.Found.orEmpty(),
			FieldSpecific:  p.Keywords.FieldSpecific.orEmpty(),
			Missing:        p.Keywords.Missing.orEmpty(),
			KeywordComment: string(p.Keywords.KeywordComment),
		},
		Format: domain.FormatCheck{
			EstimatedPages: float64(p.Format.EstimatedPages),
			Readability:    readability,
			FormatComment:  string(p.Format.FormatComment),
		},
		OverallStructureScore: clamp(float64(p.OverallStructureScore), maxScore),
		StructureSummary:      string(p.StructureSummary),
	}, nil
}

type aggregationPayload struct {
	PredictedGrade    flexString  `json:"predictedGrade"`
	PassStatus        flexString  `json:"passStatus"`
	OverallStrengths  flexStrings `json:"overallStrengths"`
	OverallWeaknesses flexStrings `json:"overallWeaknesses"`
	Improvements      flexStrings `json:"improvements"`
	StudyGuide        struct {
		Priority  flexStrings `json:"priority"`
		Resources flexStrings `json:"resources"`
		Tips      flexStrings `json:"tips"`
	} `json:"studyGuide"`
}

// DecodeAggregation 解析综合分析的输出。
// 等级和合格状态不合法的时候置空，由调用方根据平均分推算
func DecodeAggregation(raw json.RawMessage) (domain.Aggregation, error) {
	var p aggregationPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.Aggregation{}, &errs.MalformedResponseError{Reason: "综合分析结果解析失败", Err: err}
	}
	grade := domain.Grade(p.PredictedGrade)
	if !grade.Valid() {
		grade = ""
	}
	status := domain.PassStatus(p.PassStatus)
	if !status.Valid() {
		status = ""
	}
	return domain.Aggregation{
		PredictedGrade:    grade,
		PassStatus:        status,
		OverallStrengths:  p.OverallStrengths.orEmpty(),
		OverallWeaknesses: p.OverallWeaknesses.orEmpty(),
		Improvements:      p.Improvements.orEmpty(),
		StudyGuide: domain.StudyGuide{
			Priority:  p.StudyGuide.Priority.orEmpty(),
			Resources: p.StudyGuide.Resources.orEmpty(),
			Tips:      p.StudyGuide.Tips.orEmpty(),
		},
	}, nil
}

type ocrPayload struct {
	Text        flexString `json:"text"`
	Confidence  flexNumber `json:"confidence"`
	HasFormulas flexBool   `json:"hasFormulas"`
	HasDiagrams flexBool   `json:"hasDiagrams"`
}

// DecodeOCR 解析视觉模型的识别结果，置信度限制在 [0,1]
func DecodeOCR(raw json.RawMessage) (domain.OCRResult, error) {
	var p ocrPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.OCRResult{}, &errs.MalformedResponseError{Reason: "OCR 结果解析失败", Err: err}
	}
	return domain.OCRResult{
		Text:        string(p.Text),
		Confidence:  clamp(float64(p.Confidence), 1),
		HasFormulas: bool(p.HasFormulas),
		HasDiagrams: bool(p.HasDiagrams),
	}, nil
}
