//go:build wireinject

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

package evaluation

import (
	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/event"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/repository"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/web"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
)

func InitModule(db *egorm.Component, ec ecache.Cache, q mq.MQ) (*Module, error) {
	wire.Build(
		InitLLMRecordDAO,
		InitEvaluationRunDAO,
		repository.NewLLMRecordRepo,
		repository.NewEvaluationRunRepo,
		InitOCRCache,

		InitLLMConfig,
		InitEvaluationConfig,
		InitPlatform,
		InitCommonBuilders,
		InitHandler,
		InitStreamHandler,
		InitRunner,
		InitKeyLoader,
		InitServiceConfig,

		event.NewEvaluationEventProducer,
		event.NewRunRecordConsumer,

		service.NewEvaluationService,
		service.NewOCRService,
		web.NewHandler,
		wire.Struct(new(Module), "*"),
	)
	return new(Module), nil
}
