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

package event

import "github.com/ecodeclub/examgrader/internal/evaluation/internal/domain"

const EvaluationCompletedTopic = "evaluation_completed_events"

// EvaluationCompletedEvent 一次评估结束，不管成功还是失败都会发送
type EvaluationCompletedEvent struct {
	RunID          string                      `json:"runId"`
	Field          string                      `json:"field"`
	Streaming      bool                        `json:"streaming"`
	Status         uint8                       `json:"status"`
	AverageScore   float64                     `json:"averageScore"`
	PredictedGrade string                      `json:"predictedGrade"`
	PassStatus     string                      `json:"passStatus"`
	ErrMsg         string                      `json:"errMsg,omitempty"`
	Result         *domain.ComprehensiveResult `json:"result,omitempty"`
}

func NewEvaluationCompletedEvent(run domain.EvaluationRun) EvaluationCompletedEvent {
	return EvaluationCompletedEvent{
		RunID:          run.RunID,
		Field:          run.Field.String(),
		Streaming:      run.Streaming,
		Status:         run.Status.ToUint8(),
		AverageScore:   run.AverageScore,
		PredictedGrade: run.PredictedGrade.String(),
		PassStatus:     run.PassStatus.String(),
		ErrMsg:         run.ErrMsg,
		Result:         run.Result,
	}
}

func (e EvaluationCompletedEvent) ToDomain() domain.EvaluationRun {
	return domain.EvaluationRun{
		RunID:          e.RunID,
		Field:          domain.Field(e.Field),
		Streaming:      e.Streaming,
		Status:         domain.RunStatus(e.Status),
		AverageScore:   e.AverageScore,
		PredictedGrade: domain.Grade(e.PredictedGrade),
		PassStatus:     domain.PassStatus(e.PassStatus),
		ErrMsg:         e.ErrMsg,
		Result:         e.Result,
	}
}
