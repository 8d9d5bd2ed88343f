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

type Grade string

const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeBPlus Grade = "B+"
	GradeB     Grade = "B"
	GradeC     Grade = "C"
	GradeD     Grade = "D"
	GradeF     Grade = "F"
)

var gradeThresholds = []struct {
	min   float64
	grade Grade
}{
	{min: 90, grade: GradeAPlus},
	{min: 85, grade: GradeA},
	{min: 80, grade: GradeBPlus},
	{min: 70, grade: GradeB},
	{min: 60, grade: GradeC},
	{min: 50, grade: GradeD},
}

func (g Grade) Valid() bool {
	if g == GradeF {
		return true
	}
	for _, t := range gradeThresholds {
		if t.grade == g {
			return true
		}
	}
	return false
}

func (g Grade) String() string {
	return string(g)
}

// GradeFor 模型没有给出合法等级的时候，按照平均分推算
func GradeFor(avg float64) Grade {
	for _, t := range gradeThresholds {
		if avg >= t.min {
			return t.grade
		}
	}
	return GradeF
}

type PassStatus string

const (
	PassStatusPass       PassStatus = "합격권"
	PassStatusBorderline PassStatus = "경계선"
	PassStatusFail       PassStatus = "미달"
)

const (
	passLine       = 60
	borderlineLine = 55
)

func (p PassStatus) Valid() bool {
	switch p {
	case PassStatusPass, PassStatusBorderline, PassStatusFail:
		return true
	}
	return false
}

func (p PassStatus) String() string {
	return string(p)
}

// PassStatusFor 及格线是 60 分，55 分以上算边界
func PassStatusFor(avg float64) PassStatus {
	switch {
	case avg >= passLine:
		return PassStatusPass
	case avg >= borderlineLine:
		return PassStatusBorderline
	default:
		return PassStatusFail
	}
}

type StudyGuide struct {
	Priority  []string `json:"priority"`
	Resources []string `json:"resources"`
	Tips      []string `json:"tips"`
}

// ComprehensiveResult 最终的综合报告。
// 除了后续单独请求生成的 ModelAnswer 之外，创建之后就不会再修改
type ComprehensiveResult struct {
	RunID             string             `json:"runId,omitempty"`
	AverageScore      float64            `json:"averageScore"`
	PredictedGrade    Grade              `json:"predictedGrade"`
	PassStatus        PassStatus         `json:"passStatus"`
	Evaluations       []EvaluationResult `json:"evaluations"`
	OverallStrengths  []string           `json:"overallStrengths"`
	OverallWeaknesses []string           `json:"overallWeaknesses"`
	Improvements      []string           `json:"improvements"`
	StudyGuide        StudyGuide         `json:"studyGuide"`
	ModelAnswer       string             `json:"modelAnswer,omitempty"`
	StructureAnalysis *StructureAnalysis `json:"structureAnalysis,omitempty"`
	SelectedField     Field              `json:"selectedField,omitempty"`
}

// Aggregation 综合分析阶段模型给出的部分
type Aggregation struct {
	PredictedGrade    Grade
	PassStatus        PassStatus
	OverallStrengths  []string
	OverallWeaknesses []string
	Improvements      []string
	StudyGuide        StudyGuide
}
