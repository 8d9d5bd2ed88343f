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

package web

import "github.com/ecodeclub/examgrader/internal/evaluation/internal/domain"

type EvaluateReq struct {
	ExtractedText string `json:"extractedText"`
	SelectedField string `json:"selectedField"`
}

func (r EvaluateReq) toDomain() domain.EvaluateRequest {
	return domain.EvaluateRequest{
		Text:  r.ExtractedText,
		Field: domain.Field(r.SelectedField),
	}
}

type ModelAnswerReq struct {
	ExtractedText     string                    `json:"extractedText"`
	SelectedField     string                    `json:"selectedField"`
	Evaluations       []domain.EvaluationResult `json:"evaluations"`
	OverallStrengths  []string                  `json:"overallStrengths"`
	OverallWeaknesses []string                  `json:"overallWeaknesses"`
	Improvements      []string                  `json:"improvements"`
}

func (r ModelAnswerReq) toDomain() domain.ModelAnswerRequest {
	return domain.ModelAnswerRequest{
		Text:              r.ExtractedText,
		Field:             domain.Field(r.SelectedField),
		Evaluations:       r.Evaluations,
		OverallStrengths:  r.OverallStrengths,
		OverallWeaknesses: r.OverallWeaknesses,
		Improvements:      r.Improvements,
	}
}

type ModelAnswerVO struct {
	ModelAnswer string `json:"modelAnswer"`
}

// OCRReq 单页用 Image，多页用 Images，同时存在的时候以 Images 为准
type OCRReq struct {
	Image  string   `json:"image"`
	Images []string `json:"images"`
}

func (r OCRReq) pages() []string {
	if len(r.Images) > 0 {
		return r.Images
	}
	if r.Image == "" {
		return nil
	}
	return []string{r.Image}
}

type RunDetailReq struct {
	RunID string `json:"runId"`
}

type RunVO struct {
	RunID          string                      `json:"runId"`
	Field          string                      `json:"field"`
	Streaming      bool                        `json:"streaming"`
	Status         string                      `json:"status"`
	AverageScore   float64                     `json:"averageScore"`
	PredictedGrade string                      `json:"predictedGrade"`
	PassStatus     string                      `json:"passStatus"`
	ErrMsg         string                      `json:"errMsg,omitempty"`
	Result         *domain.ComprehensiveResult `json:"result,omitempty"`
	Ctime          int64                       `json:"ctime"`
	Utime          int64                       `json:"utime"`
}

func newRunVO(run domain.EvaluationRun) RunVO {
	status := "unknown"
	switch run.Status {
	case domain.RunStatusSuccess:
		status = "success"
	case domain.RunStatusFailed:
		status = "failed"
	}
	return RunVO{
		RunID:          run.RunID,
		Field:          run.Field.String(),
		Streaming:      run.Streaming,
		Status:         status,
		AverageScore:   run.AverageScore,
		PredictedGrade: run.PredictedGrade.String(),
		PassStatus:     run.PassStatus.String(),
		ErrMsg:         run.ErrMsg,
		Result:         run.Result,
		Ctime:          run.Ctime,
		Utime:          run.Utime,
	}
}
