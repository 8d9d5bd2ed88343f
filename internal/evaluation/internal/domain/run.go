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

type RunStatus uint8

func (s RunStatus) ToUint8() uint8 {
	return uint8(s)
}

const (
	RunStatusUnknown RunStatus = iota
	RunStatusSuccess
	RunStatusFailed
)

// EvaluationRun 一次评估的归档记录
type EvaluationRun struct {
	RunID          string
	Field          Field
	Streaming      bool
	Status         RunStatus
	AverageScore   float64
	PredictedGrade Grade
	PassStatus     PassStatus
	ErrMsg         string
	Result         *ComprehensiveResult
	Ctime          int64
	Utime          int64
}
