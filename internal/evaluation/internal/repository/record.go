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

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ekit/sqlx"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/domain"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/repository/dao"
)

//go:generate mockgen -source=./record.go -destination=../../mocks/record.mock.go -package=evalmocks -typed=true LLMRecordRepo
type LLMRecordRepo interface {
	SaveRecord(ctx context.Context, r domain.LLMRecord) (int64, error)
	FindByRunID(ctx context.Context, runID string) ([]domain.LLMRecord, error)
}

// 调用记录
type llmRecordRepo struct {
	dao dao.LLMRecordDAO
}

func NewLLMRecordRepo(d dao.LLMRecordDAO) LLMRecordRepo {
	return &llmRecordRepo{dao: d}
}

func (r *llmRecordRepo) SaveRecord(ctx context.Context, l domain.LLMRecord) (int64, error) {
	return r.dao.Save(ctx, r.toEntity(l))
}

func (r *llmRecordRepo) FindByRunID(ctx context.Context, runID string) ([]domain.LLMRecord, error) {
	res, err := r.dao.FindByRunID(ctx, runID)
	if err != nil {
		return nil, err
	}
	return slice.Map(res, func(idx int, src dao.LLMRecord) domain.LLMRecord {
		return r.toDomain(src)
	}), nil
}

func (r *llmRecordRepo) toEntity(l domain.LLMRecord) dao.LLMRecord {
	return dao.LLMRecord{
		Id:     l.Id,
		Tid:    l.Tid,
		RunId:  l.RunID,
		Biz:    l.Biz,
		Tokens: l.Tokens,
		Status: l.Status.ToUint8(),
		Prompt: sqlx.NewNullString(l.Prompt),
		Answer: sqlx.NewNullString(l.Answer),
	}
}

func (r *llmRecordRepo) toDomain(l dao.LLMRecord) domain.LLMRecord {
	return domain.LLMRecord{
		Id:     l.Id,
		Tid:    l.Tid,
		RunID:  l.RunId,
		Biz:    l.Biz,
		Tokens: l.Tokens,
		Status: domain.RecordStatus(l.Status),
		Prompt: l.Prompt.String,
		Answer: l.Answer.String,
		Ctime:  l.Ctime,
		Utime:  l.Utime,
	}
}
