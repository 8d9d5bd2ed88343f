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
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/domain"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/event"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/web"
)

type Handler = web.Handler
type EvaluationService = service.EvaluationService
type OCRService = service.OCRService
type RunRecordConsumer = event.RunRecordConsumer

type EvaluateRequest = domain.EvaluateRequest
type ComprehensiveResult = domain.ComprehensiveResult
type ProgressEvent = domain.ProgressEvent
type OCRResult = domain.OCRResult
