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

package dao

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/ecodeclub/ekit/sqlx"
	"github.com/ego-component/egorm"
	"gorm.io/gorm/clause"
)

type EvaluationRunDAO interface {
	Upsert(ctx context.Context, r EvaluationRun) error
	FindByRunID(ctx context.Context, runID string) (EvaluationRun, error)
}

type GORMEvaluationRunDAO struct {
	db *egorm.Component
}

func NewGORMEvaluationRunDAO(db *egorm.Component) EvaluationRunDAO {
	return &GORMEvaluationRunDAO{db: db}
}

func (g *GORMEvaluationRunDAO) Upsert(ctx context.Context, r EvaluationRun) error {
	now := time.Now().UnixMilli()
	r.Ctime = now
	r.Utime = now
	return g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "run_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"status", "average_score", "predicted_grade",
				"pass_status", "err_msg", "result", "utime",
			}),
		}).Create(&r).Error
}

func (g *GORMEvaluationRunDAO) FindByRunID(ctx context.Context, runID string) (EvaluationRun, error) {
	var res EvaluationRun
	err := g.db.WithContext(ctx).Where("run_id = ?", runID).First(&res).Error
	return res, err
}

type EvaluationRun struct {
	Id             int64                             `gorm:"primaryKey;autoIncrement"`
	RunId          string                            `gorm:"type:varchar(64);not null;uniqueIndex:unq_run_id"`
	Field          string                            `gorm:"type:varchar(64);not null;comment:选择的技术士科目"`
	Streaming      bool                              `gorm:"not null;default:false"`
	Status         uint8                             `gorm:"type:tinyint unsigned;not null;default:0;comment:1=成功 2=失败"`
	AverageScore   float64                           `gorm:"not null;default:0"`
	PredictedGrade string                            `gorm:"type:varchar(8)"`
	PassStatus     string                            `gorm:"type:varchar(16)"`
	ErrMsg         sql.NullString                    `gorm:"type:varchar(1024)"`
	Result         sqlx.JsonColumn[json.RawMessage] `gorm:"type:json;comment:完整的综合报告"`
	Ctime          int64
	Utime          int64
}

func (EvaluationRun) TableName() string {
	return "evaluation_runs"
}
