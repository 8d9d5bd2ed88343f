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

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ecodeclub/examgrader/internal/evaluation/internal/repository"
	"github.com/ecodeclub/mq-api"
	"github.com/gotomicro/ego/core/elog"
)

// RunRecordConsumer 把评估结果归档到 evaluation_runs
type RunRecordConsumer struct {
	repo     repository.EvaluationRunRepo
	consumer mq.Consumer
	logger   *elog.Component
}

func NewRunRecordConsumer(repo repository.EvaluationRunRepo, q mq.MQ) (*RunRecordConsumer, error) {
	const groupID = "evaluation_run_record"
	consumer, err := q.Consumer(EvaluationCompletedTopic, groupID)
	if err != nil {
		return nil, err
	}
	return &RunRecordConsumer{
		repo:     repo,
		consumer: consumer,
		logger:   elog.DefaultLogger,
	}, nil
}

func (c *RunRecordConsumer) Consume(ctx context.Context) error {
	msg, err := c.consumer.Consume(ctx)
	if err != nil {
		return fmt.Errorf("获取消息失败: %w", err)
	}
	var evt EvaluationCompletedEvent
	err = json.Unmarshal(msg.Value, &evt)
	if err != nil {
		return fmt.Errorf("解析消息失败: %w", err)
	}
	err = c.repo.Save(ctx, evt.ToDomain())
	if err != nil {
		return fmt.Errorf("保存评估记录失败 run_id=%s: %w", evt.RunID, err)
	}
	return nil
}

func (c *RunRecordConsumer) Start(ctx context.Context) {
	go func() {
		for {
			err := c.Consume(ctx)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			if err != nil {
				c.logger.Error("归档评估记录失败", elog.FieldErr(err))
			}
		}
	}()
}

func (c *RunRecordConsumer) Stop(_ context.Context) error {
	return c.consumer.Close()
}
