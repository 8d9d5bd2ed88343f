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

package service

import (
	"context"
	"strings"
	"sync"

	"github.com/ecodeclub/examgrader/internal/evaluation/internal/domain"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/errs"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/event"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/repository"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service/keypool"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service/stage"
	"github.com/gotomicro/ego/core/elog"
	"github.com/lithammer/shortuuid/v4"
	"golang.org/x/sync/errgroup"
)

var ErrRunNotFound = repository.ErrRunNotFound

// 错误信息最多保留的字符数
const maxErrMsgLen = 512

//go:generate mockgen -source=./evaluation.go -destination=../../mocks/evaluation.mock.go -package=evalmocks -typed=true EvaluationService
type EvaluationService interface {
	// Evaluate 阻塞直到综合报告生成
	Evaluate(ctx context.Context, req domain.EvaluateRequest) (domain.ComprehensiveResult, error)
	// Stream 立刻返回，评估过程中的事件通过 channel 推送，
	// 最后一个事件是 complete 或者 error，之后 channel 关闭
	Stream(ctx context.Context, req domain.EvaluateRequest) (<-chan domain.ProgressEvent, error)
	GenerateModelAnswer(ctx context.Context, req domain.ModelAnswerRequest) (string, error)
	GetRun(ctx context.Context, runID string) (domain.EvaluationRun, error)
}

type Config struct {
	// 流式评估的时候是否转发模型输出的 token
	RelayTokens bool `yaml:"relayTokens"`
}

type evaluationService struct {
	runner   *stage.Runner
	keys     *keypool.Loader
	producer event.EvaluationEventProducer
	runRepo  repository.EvaluationRunRepo
	cfg      Config
	logger   *elog.Component
}

func NewEvaluationService(runner *stage.Runner, keys *keypool.Loader,
	producer event.EvaluationEventProducer, runRepo repository.EvaluationRunRepo, cfg Config) EvaluationService {
	return &evaluationService{
		runner:   runner,
		keys:     keys,
		producer: producer,
		runRepo:  runRepo,
		cfg:      cfg,
		logger:   elog.DefaultLogger,
	}
}

func (s *evaluationService) Evaluate(ctx context.Context, req domain.EvaluateRequest) (domain.ComprehensiveResult, error) {
	req, err := s.checkEvaluateRequest(req)
	if err != nil {
		return domain.ComprehensiveResult{}, err
	}
	pool, err := s.keys.Load()
	if err != nil {
		return domain.ComprehensiveResult{}, err
	}
	runID := shortuuid.New()
	res, err := s.run(ctx, runID, pool, req, nil)
	s.publish(ctx, runID, req, false, res, err)
	return res, err
}

func (s *evaluationService) Stream(ctx context.Context, req domain.EvaluateRequest) (<-chan domain.ProgressEvent, error) {
	req, err := s.checkEvaluateRequest(req)
	if err != nil {
		return nil, err
	}
	pool, err := s.keys.Load()
	if err != nil {
		return nil, err
	}
	runID := shortuuid.New()
	em := newEmitter(ctx)
	go func() {
		defer em.close()
		em.emit(domain.ProgressEvent{Type: domain.EventStart, Data: map[string]string{"runId": runID}})
		res, err := s.run(ctx, runID, pool, req, em)
		if err != nil {
			em.emit(domain.ProgressEvent{Type: domain.EventError, Content: errs.UserMessage(err)})
		} else {
			em.emit(domain.ProgressEvent{Type: domain.EventComplete, Data: res})
		}
		s.publish(ctx, runID, req, true, res, err)
	}()
	return em.events(), nil
}

// run 结构分析 → 三个评分者并发评分 → 综合分析。
// em 为 nil 的时候不推送任何事件
func (s *evaluationService) run(ctx context.Context, runID string, pool *keypool.Pool,
	req domain.EvaluateRequest, em *emitter) (domain.ComprehensiveResult, error) {
	logger := s.logger.With(elog.String("run_id", runID))
	logger.Info("开始评估", elog.String("field", req.Field.String()), elog.Int("text_len", len([]rune(req.Text))))

	em.emit(domain.ProgressEvent{Type: domain.EventStructureStart})
	sa, err := s.runner.AnalyzeStructure(ctx, stage.Call{RunID: runID, APIKey: pool.Primary()}, req.Text, req.Field)
	if err != nil {
		logger.Error("结构分析失败", elog.FieldErr(err))
		return domain.ComprehensiveResult{}, err
	}
	em.emit(domain.ProgressEvent{Type: domain.EventStructureComplete, Data: sa})

	evaluators := domain.Evaluators()
	// 三个评分者都先发出 start，再开始评分
	for _, id := range evaluators {
		em.emit(domain.ProgressEvent{Type: domain.EventEvaluatorStart, EvaluatorID: id})
	}
	evals := make([]domain.EvaluationResult, len(evaluators))
	eg, gctx := errgroup.WithContext(ctx)
	for i, id := range evaluators {
		eg.Go(func() error {
			var onChunk stage.ChunkFunc
			if em != nil && s.cfg.RelayTokens {
				onChunk = func(content string) {
					em.emit(domain.ProgressEvent{Type: domain.EventEvaluatorChunk, EvaluatorID: id, Content: content})
				}
			}
			res, err := s.runner.Rate(gctx, stage.Call{RunID: runID, APIKey: pool.Get(i)},
				id, req.Text, req.Field, sa, onChunk)
			if err != nil {
				return err
			}
			evals[i] = res
			em.emit(domain.ProgressEvent{Type: domain.EventEvaluatorComplete, EvaluatorID: id, Data: res})
			return nil
		})
	}
	if err = eg.Wait(); err != nil {
		logger.Error("评分失败", elog.FieldErr(err), elog.Any("completed", em.completed()))
		return domain.ComprehensiveResult{}, err
	}
	domain.SortEvaluations(evals)

	em.emit(domain.ProgressEvent{Type: domain.EventComprehensiveStart})
	var onChunk stage.ChunkFunc
	if em != nil && s.cfg.RelayTokens {
		onChunk = func(content string) {
			em.emit(domain.ProgressEvent{Type: domain.EventComprehensiveChunk, Content: content})
		}
	}
	agg, err := s.runner.Aggregate(ctx, stage.Call{RunID: runID, APIKey: pool.Primary()}, req.Field, evals, onChunk)
	if err != nil {
		logger.Error("综合分析失败", elog.FieldErr(err))
		return domain.ComprehensiveResult{}, err
	}
	em.emit(domain.ProgressEvent{Type: domain.EventComprehensiveComplete, Data: agg})

	res := s.compose(runID, req, sa, evals, agg)
	logger.Info("评估完成",
		elog.Any("average_score", res.AverageScore),
		elog.String("grade", res.PredictedGrade.String()))
	return res, nil
}

// compose 平均分总是自己算，等级和合格状态缺失的时候根据平均分推算
func (s *evaluationService) compose(runID string, req domain.EvaluateRequest, sa domain.StructureAnalysis,
	evals []domain.EvaluationResult, agg domain.Aggregation) domain.ComprehensiveResult {
	avg := domain.AverageScore(evals)
	grade := agg.PredictedGrade
	if !grade.Valid() {
		grade = domain.GradeFor(avg)
	}
	status := agg.PassStatus
	if !status.Valid() {
		status = domain.PassStatusFor(avg)
	}
	return domain.ComprehensiveResult{
		RunID:             runID,
		AverageScore:      avg,
		PredictedGrade:    grade,
		PassStatus:        status,
		Evaluations:       evals,
		OverallStrengths:  agg.OverallStrengths,
		OverallWeaknesses: agg.OverallWeaknesses,
		Improvements:      agg.Improvements,
		StudyGuide:        agg.StudyGuide,
		StructureAnalysis: &sa,
		SelectedField:     req.Field,
	}
}

func (s *evaluationService) GenerateModelAnswer(ctx context.Context, req domain.ModelAnswerRequest) (string, error) {
	if strings.TrimSpace(req.Text) == "" {
		return "", &errs.ValidationError{Field: "extractedText", Msg: "원본 답안이 제공되지 않았습니다."}
	}
	if req.Field == "" {
		return "", &errs.ValidationError{Field: "selectedField", Msg: "기술사 종목이 선택되지 않았습니다."}
	}
	if !req.Field.Valid() {
		return "", &errs.ValidationError{Field: "selectedField", Msg: "기술사 종목이 올바르지 않습니다."}
	}
	if len(req.Evaluations) == 0 {
		return "", &errs.ValidationError{Field: "evaluations", Msg: "평가 결과가 제공되지 않았습니다."}
	}
	pool, err := s.keys.Load()
	if err != nil {
		return "", err
	}
	return s.runner.ModelAnswer(ctx, stage.Call{RunID: shortuuid.New(), APIKey: pool.Primary()}, stage.ModelAnswerInput{
		Text:              req.Text,
		Field:             req.Field,
		Evaluations:       req.Evaluations,
		OverallStrengths:  req.OverallStrengths,
		OverallWeaknesses: req.OverallWeaknesses,
		Improvements:      req.Improvements,
	})
}

func (s *evaluationService) GetRun(ctx context.Context, runID string) (domain.EvaluationRun, error) {
	return s.runRepo.FindByRunID(ctx, runID)
}

// checkEvaluateRequest 没有选择科目的时候按照"其他"处理
func (s *evaluationService) checkEvaluateRequest(req domain.EvaluateRequest) (domain.EvaluateRequest, error) {
	if strings.TrimSpace(req.Text) == "" {
		return req, &errs.ValidationError{Field: "extractedText", Msg: "분석할 텍스트가 제공되지 않았습니다."}
	}
	if req.Field == "" {
		req.Field = domain.FieldOther
	}
	if !req.Field.Valid() {
		return req, &errs.ValidationError{Field: "selectedField", Msg: "기술사 종목이 올바르지 않습니다."}
	}
	return req, nil
}

// publish 归档失败只记录日志，不影响评估结果
func (s *evaluationService) publish(ctx context.Context, runID string, req domain.EvaluateRequest,
	streaming bool, res domain.ComprehensiveResult, err error) {
	run := domain.EvaluationRun{
		RunID:     runID,
		Field:     req.Field,
		Streaming: streaming,
		Status:    domain.RunStatusSuccess,
	}
	if err != nil {
		run.Status = domain.RunStatusFailed
		run.ErrMsg = truncate(err.Error(), maxErrMsgLen)
	} else {
		run.AverageScore = res.AverageScore
		run.PredictedGrade = res.PredictedGrade
		run.PassStatus = res.PassStatus
		run.Result = &res
	}
	// 客户端断开之后也要归档
	perr := s.producer.Produce(context.WithoutCancel(ctx), event.NewEvaluationCompletedEvent(run))
	if perr != nil {
		s.logger.Error("发送评估完成事件失败",
			elog.String("run_id", runID),
			elog.FieldErr(perr))
	}
}

func truncate(val string, limit int) string {
	runes := []rune(val)
	if len(runes) <= limit {
		return val
	}
	return string(runes[:limit])
}

// emitter 多个评分者共用的事件出口。
// 事件先写入 EventLog 再发送，终止事件之后的所有事件都会被丢弃
type emitter struct {
	ctx context.Context
	mu  sync.Mutex
	log domain.EventLog
	ch  chan domain.ProgressEvent
}

func newEmitter(ctx context.Context) *emitter {
	return &emitter{
		ctx: ctx,
		ch:  make(chan domain.ProgressEvent, 64),
	}
}

// emit 对 nil 安全，非流式评估直接传 nil
func (e *emitter) emit(evt domain.ProgressEvent) {
	if e == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.log.Terminated() {
		return
	}
	e.log.Append(evt)
	select {
	case e.ch <- evt:
	case <-e.ctx.Done():
	}
}

// completed 已经推送过 complete 事件的评分者，按照完成顺序
func (e *emitter) completed() []domain.EvaluatorID {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	evals := e.log.Completed()
	res := make([]domain.EvaluatorID, 0, len(evals))
	for _, eval := range evals {
		res = append(res, eval.EvaluatorID)
	}
	return res
}

func (e *emitter) events() <-chan domain.ProgressEvent {
	return e.ch
}

func (e *emitter) close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	close(e.ch)
}
