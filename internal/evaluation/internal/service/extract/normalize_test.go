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
	"testing"

	"github.com/ecodeclub/examgrader/internal/evaluation/internal/domain"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptyScore() domain.DetailedScore {
	return domain.DetailedScore{Quotes: []domain.QuotedFeedback{}}
}

func TestNormalizeEvaluation(t *testing.T) {
	testCases := []struct {
		name    string
		raw     string
		want    domain.EvaluationResult
		wantErr bool
	}{
		{
			name: "只有总分",
			raw:  `{"score":77}`,
			want: domain.EvaluationResult{
				EvaluatorID: domain.EvaluatorB,
				Score:       77,
				Strengths:   []string{},
				Weaknesses:  []string{},
				KeyPoints:   []string{},
				DetailedFeedback: domain.DetailedFeedback{
					Theory:       emptyScore(),
					Practical:    emptyScore(),
					Structure:    emptyScore(),
					Expression:   emptyScore(),
					Completeness: emptyScore(),
				},
			},
		},
		{
			name: "部分维度缺失或者类型不对",
			raw: `{
				"score": "82.5",
				"strengths": ["논리적 구성", 3],
				"weaknesses": "없음",
				"comment": "전반적으로 양호",
				"keyPoints": ["OSI 7계층"],
				"detailedFeedback": {
					"theory": {"score": 18, "comment": "정확함", "quotes": [
						{"quote": "TCP는 연결지향", "evaluation": "정확", "isPositive": true},
						{"evaluation": "인용 없음"},
						"잘못된 형식"
					]},
					"practical": "없음",
					"structure": {"score": 25, "comment": 3, "quotes": null},
					"expression": {"comment": "보통"}
				}
			}`,
			want: domain.EvaluationResult{
				EvaluatorID: domain.EvaluatorB,
				Score:       82.5,
				Strengths:   []string{"논리적 구성"},
				Weaknesses:  []string{},
				Comment:     "전반적으로 양호",
				KeyPoints:   []string{"OSI 7계층"},
				DetailedFeedback: domain.DetailedFeedback{
					Theory: domain.DetailedScore{
						Score:   18,
						Comment: "정확함",
						Quotes: []domain.QuotedFeedback{
							{Quote: "TCP는 연결지향", Evaluation: "정확", IsPositive: true},
						},
					},
					Practical: emptyScore(),
					Structure: domain.DetailedScore{
						Score:  20,
						Quotes: []domain.QuotedFeedback{},
					},
					Expression: domain.DetailedScore{
						Comment: "보통",
						Quotes:  []domain.QuotedFeedback{},
					},
					Completeness: emptyScore(),
				},
			},
		},
		{
			name: "总分越界",
			raw:  `{"score":130,"detailedFeedback":[]}`,
			want: domain.EvaluationResult{
				EvaluatorID: domain.EvaluatorB,
				Score:       100,
				Strengths:   []string{},
				Weaknesses:  []string{},
				KeyPoints:   []string{},
				DetailedFeedback: domain.DetailedFeedback{
					Theory:       emptyScore(),
					Practical:    emptyScore(),
					Structure:    emptyScore(),
					Expression:   emptyScore(),
					Completeness: emptyScore(),
				},
			},
		},
		{
			name: "没有总分",
			raw:  `{"strengths":["a"]}`,
			want: domain.EvaluationResult{
				EvaluatorID: domain.EvaluatorB,
				Strengths:   []string{"a"},
				Weaknesses:  []string{},
				KeyPoints:   []string{},
				DetailedFeedback: domain.DetailedFeedback{
					Theory:       emptyScore(),
					Practical:    emptyScore(),
					Structure:    emptyScore(),
					Expression:   emptyScore(),
					Completeness: emptyScore(),
				},
			},
		},
		{
			name: "总分不是数字",
			raw:  `{"score":"높음"}`,
			want: domain.EvaluationResult{
				EvaluatorID: domain.EvaluatorB,
				Strengths:   []string{},
				Weaknesses:  []string{},
				KeyPoints:   []string{},
				DetailedFeedback: domain.DetailedFeedback{
					Theory:       emptyScore(),
					Practical:    emptyScore(),
					Structure:    emptyScore(),
					Expression:   emptyScore(),
					Completeness: emptyScore(),
				},
			},
		},
		{
			name:    "不是对象",
			raw:     `[1,2,3]`,
			wantErr: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := NormalizeEvaluation(domain.EvaluatorB, json.RawMessage(tc.raw))
			if tc.wantErr {
				var malformed *errs.MalformedResponseError
				assert.ErrorAs(t, err, &malformed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, res)
		})
	}
}

// 不管输入缺了什么，五个维度都必须存在，quotes 不能是 nil
func TestNormalizeEvaluation_AlwaysComplete(t *testing.T) {
	inputs := []string{
		`{"score":1}`,
		`{"score":1,"detailedFeedback":null}`,
		`{"score":1,"detailedFeedback":{"theory":null}}`,
		`{"score":1,"detailedFeedback":{"theory":{"quotes":"x"}}}`,
	}
	for _, input := range inputs {
		res, err := NormalizeEvaluation(domain.EvaluatorA, json.RawMessage(input))
		require.NoError(t, err)
		data, err := json.Marshal(res.DetailedFeedback)
		require.NoError(t, err)
		var feedback map[string]map[string]any
		require.NoError(t, json.Unmarshal(data, &feedback))
		for _, key := range []string{"theory", "practical", "structure", "expression", "completeness"} {
			item, ok := feedback[key]
			require.True(t, ok, key)
			_, ok = item["score"].(float64)
			assert.True(t, ok, key)
			_, ok = item["quotes"].([]any)
			assert.True(t, ok, key)
		}
	}
}

func TestDecodeStructure(t *testing.T) {
	raw := `{
		"detectedField": "정보관리기술사",
		"fieldConfidence": 92,
		"fieldReason": "데이터베이스 관련 용어",
		"structure": {"hasOutline": true, "hasIntro": "true", "hasBody": true, "structureComment": "양호"},
		"diagrams": {"hasDiagram": false},
		"keywords": {"found": ["정규화"], "missing": ["반정규화"]},
		"format": {"estimatedPages": 2.5, "readability": "최상"},
		"overallStructureScore": 72,
		"structureSummary": "기본 구조를 갖춤"
	}`
	res, err := DecodeStructure(json.RawMessage(raw))
	require.NoError(t, err)
	assert.Equal(t, domain.StructureAnalysis{
		DetectedField:   domain.FieldInformationManagement,
		FieldConfidence: 92,
		FieldReason:     "데이터베이스 관련 용어",
		Structure: domain.StructureCheck{
			HasOutline:       true,
			HasIntro:         true,
			HasBody:          true,
			StructureComment: "양호",
		},
		Diagrams: domain.DiagramCheck{DiagramTypes: []string{}},
		Keywords: domain.KeywordCheck{
			Found:         []string{"정규화"},
			FieldSpecific: []string{},
			Missing:       []string{"반정규화"},
		},
		Format: domain.FormatCheck{
			EstimatedPages: 2.5,
			Readability:    domain.ReadabilityMedium,
		},
		OverallStructureScore: 72,
		StructureSummary:      "기본 구조를 갖춤",
	}, res)

	res, err = DecodeStructure(json.RawMessage(`{"detectedField":"건축기술사"}`))
	require.NoError(t, err)
	assert.Equal(t, domain.FieldOther, res.DetectedField)

	_, err = DecodeStructure(json.RawMessage(`{"structure":"없음"}`))
	var malformed *errs.MalformedResponseError
	assert.ErrorAs(t, err, &malformed)
}

func TestDecodeAggregation(t *testing.T) {
	res, err := DecodeAggregation(json.RawMessage(`{
		"predictedGrade": "B+",
		"passStatus": "합격권",
		"overallStrengths": ["구조"],
		"studyGuide": {"tips": ["도식 활용"]}
	}`))
	require.NoError(t, err)
	assert.Equal(t, domain.Aggregation{
		PredictedGrade:    domain.GradeBPlus,
		PassStatus:        domain.PassStatusPass,
		OverallStrengths:  []string{"구조"},
		OverallWeaknesses: []string{},
		Improvements:      []string{},
		StudyGuide: domain.StudyGuide{
			Priority:  []string{},
			Resources: []string{},
			Tips:      []string{"도식 활용"},
		},
	}, res)

	res, err = DecodeAggregation(json.RawMessage(`{"predictedGrade": "S", "passStatus": "pass"}`))
	require.NoError(t, err)
	assert.Equal(t, domain.Grade(""), res.PredictedGrade)
	assert.Equal(t, domain.PassStatus(""), res.PassStatus)
}

func TestDecodeOCR(t *testing.T) {
	res, err := DecodeOCR(json.RawMessage(`{"text":"답안","confidence":1.4,"hasFormulas":true}`))
	require.NoError(t, err)
	assert.Equal(t, domain.OCRResult{Text: "답안", Confidence: 1, HasFormulas: true}, res)
}
