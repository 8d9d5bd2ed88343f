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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortEvaluations(t *testing.T) {
	evals := []EvaluationResult{
		{EvaluatorID: EvaluatorC, Score: 90},
		{EvaluatorID: EvaluatorA, Score: 70},
		{EvaluatorID: EvaluatorB, Score: 85},
	}
	SortEvaluations(evals)
	ids := make([]EvaluatorID, 0, len(evals))
	for _, e := range evals {
		ids = append(ids, e.EvaluatorID)
	}
	assert.Equal(t, []EvaluatorID{EvaluatorA, EvaluatorB, EvaluatorC}, ids)
}

func TestAverageScore(t *testing.T) {
	testCases := []struct {
		name   string
		scores []float64
		want   float64
	}{
		{
			name:   "三个评分",
			scores: []float64{70, 85, 90},
			want:   245.0 / 3,
		},
		{
			name:   "整除",
			scores: []float64{60, 75, 90},
			want:   75,
		},
		{
			name: "没有评分",
			want: 0,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			evals := make([]EvaluationResult, 0, len(tc.scores))
			for _, s := range tc.scores {
				evals = append(evals, EvaluationResult{Score: s})
			}
			assert.InDelta(t, tc.want, AverageScore(evals), 1e-9)
		})
	}
}

func TestEvaluatorID_Index(t *testing.T) {
	assert.Equal(t, 0, EvaluatorA.Index())
	assert.Equal(t, 2, EvaluatorC.Index())
	assert.Equal(t, -1, EvaluatorID("D").Index())
	assert.False(t, EvaluatorID("").Valid())
}

func TestGradeFor(t *testing.T) {
	testCases := []struct {
		avg        float64
		wantGrade  Grade
		wantStatus PassStatus
	}{
		{avg: 95, wantGrade: GradeAPlus, wantStatus: PassStatusPass},
		{avg: 85, wantGrade: GradeA, wantStatus: PassStatusPass},
		{avg: 81.5, wantGrade: GradeBPlus, wantStatus: PassStatusPass},
		{avg: 75, wantGrade: GradeB, wantStatus: PassStatusPass},
		{avg: 60, wantGrade: GradeC, wantStatus: PassStatusPass},
		{avg: 57, wantGrade: GradeD, wantStatus: PassStatusBorderline},
		{avg: 30, wantGrade: GradeF, wantStatus: PassStatusFail},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.wantGrade, GradeFor(tc.avg))
		assert.Equal(t, tc.wantStatus, PassStatusFor(tc.avg))
		assert.True(t, tc.wantGrade.Valid())
	}
	assert.False(t, Grade("S").Valid())
	assert.False(t, PassStatus("pass").Valid())
}

func TestField_Valid(t *testing.T) {
	assert.True(t, FieldInformationManagement.Valid())
	assert.True(t, FieldOther.Valid())
	assert.False(t, Field("건축기술사").Valid())
	assert.False(t, Field("").Valid())
}
