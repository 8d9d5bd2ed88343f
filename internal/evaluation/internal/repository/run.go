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

package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/ecodeclub/ekit/sqlx"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/domain"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/repository/dao"
	pkgerrs "github.com/pkg/errors"
	"gorm.io/gorm"
)

var ErrRunNotFound = errors.New("评估记录不存在")

//go:generate mockgen -source=./run.go -destination=../../mocks/run.mock.go -package=evalmocks -typed=true EvaluationRunRepo
type EvaluationRunRepo interface {
	Save(ctx context.Context, r domain.EvaluationRun) error
	FindByRunID(ctx context.Context, runID string) (domain.EvaluationRun, error)
}

type evaluationRunRepo struct {
	dao dao.EvaluationRunDAO
}

func NewEvaluationRunRepo(d dao.EvaluationRunDAO) EvaluationRunRepo {
	return &evaluationRunRepo{dao: d}
}

func (r *evaluationRunRepo) Save(ctx context.Context, run domain.EvaluationRun) error {
	entity, err := r.toEntity(run)
	if err != nil {
		return err
	}
	return r.dao.Upsert(ctx, entity)
}

func (r *evaluationRunRepo) FindByRunID(ctx context.Context, runID string) (domain.EvaluationRun, error) {
	entity, err := r.dao.FindByRunID(ctx, runID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.EvaluationRun{}, ErrRunNotFound
	}
	if err != nil {
		return domain.EvaluationRun{}, pkgerrs.Wrap(err, "查询评估记录失败")
	}
	return r.toDomain(entity)
}

func (r *evaluationRunRepo) toEntity(run domain.EvaluationRun) (dao.EvaluationRun, error) {
	entity := dao.EvaluationRun{
		RunId:          run.RunID,
		Field:          run.Field.String(),
		Streaming:      run.Streaming,
		Status:         run.Status.ToUint8(),
		AverageScore:   run.AverageScore,
		PredictedGrade: run.PredictedGrade.String(),
		PassStatus:     run.PassStatus.String(),
		ErrMsg:         sqlx.NewNullString(run.ErrMsg),
	}
	if run.Result != nil {
		raw, err := json.Marshal(run.Result)
		if err != nil {
			return dao.EvaluationRun{}, pkgerrs.Wrap(err, "序列化综合报告失败")
		}
		entity.Result = sqlx.JsonColumn[json.RawMessage]{Val: raw, Valid: true}
	}
	return entity, nil
}

func (r *evaluationRunRepo) toDomain(entity dao.EvaluationRun) (domain.EvaluationRun, error) {
	run := domain.EvaluationRun{
		RunID:          entity.RunId,
		Field:          domain.Field(entity.Field),
		Streaming:      entity.Streaming,
		Status:         domain.RunStatus(entity.Status),
		AverageScore:   entity.AverageScore,
		PredictedGrade: domain.Grade(entity.PredictedGrade),
		PassStatus:     domain.PassStatus(entity.PassStatus),
		ErrMsg:         entity.ErrMsg.String,
		Ctime:          entity.Ctime,
		Utime:          entity.Utime,
	}
	if entity.Result.Valid {
		var res domain.ComprehensiveResult
		if err := json.Unmarshal(entity.Result.Val, &res); err != nil {
			return domain.EvaluationRun{}, pkgerrs.Wrap(err, "反序列化综合报告失败")
		}
		run.Result = &res
	}
	return run, nil
}
