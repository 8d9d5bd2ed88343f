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

package stage

import (
	"context"
	"strings"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/domain"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/errs"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service/extract"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service/llm/handler"
	"github.com/lithammer/shortuuid/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "internal/evaluation/stage"

// Budget 一个阶段的输出上限和采样温度
type Budget struct {
	MaxTokens   int64
	Temperature float64
}

var (
	StructureBudget   = Budget{MaxTokens: 2048, Temperature: 0.3}
	RaterBudget       = Budget{MaxTokens: 4096, Temperature: 0.7}
	AggregationBudget = Budget{MaxTokens: 2048, Temperature: 0.5}
	ModelAnswerBudget = Budget{MaxTokens: 8192, Temperature: 0.7}
	OCRBudget         = Budget{MaxTokens: 4096, Temperature: 0}
)

type Timeouts struct {
	Structure   time.Duration `yaml:"structure"`
	Rater       time.Duration `yaml:"rater"`
	Aggregation time.Duration `yaml:"aggregation"`
	ModelAnswer time.Duration `yaml:"modelAnswer"`
	OCR         time.Duration `yaml:"ocr"`
}

func DefaultTimeouts() Timeouts {
	return Timeouts{
		Structure:   60 * time.Second,
		Rater:       90 * time.Second,
		Aggregation: 60 * time.Second,
		ModelAnswer: 120 * time.Second,
		OCR:         60 * time.Second,
	}
}

// withDefaults 没有配置的超时使用默认值
func (t Timeouts) withDefaults() Timeouts {
	def := DefaultTimeouts()
	pick := func(val, fallback time.Duration) time.Duration {
		if val <= 0 {
			return fallback
		}
		return val
	}
	return Timeouts{
		Structure:   pick(t.Structure, def.Structure),
		Rater:       pick(t.Rater, def.Rater),
		Aggregation: pick(t.Aggregation, def.Aggregation),
		ModelAnswer: pick(t.ModelAnswer, def.ModelAnswer),
		OCR:         pick(t.OCR, def.OCR),
	}
}

// Call 一次调用共享的参数
type Call struct {
	RunID  string
	APIKey string
}

// ChunkFunc 收到增量内容的回调。为 nil 的时候使用非流式调用
type ChunkFunc func(content string)

// Runner 执行评估的各个阶段。
// 每个阶段渲染 prompt，调用模型，然后从回答里面解析出结构化的结果
type Runner struct {
	handler   handler.Handler
	stream    handler.StreamHandler
	extractor extract.Extractor
	prompts   *Prompts
	timeouts  Timeouts
	tracer    trace.Tracer
}

func NewRunner(h handler.Handler, stream handler.StreamHandler,
	extractor extract.Extractor, prompts *Prompts, timeouts Timeouts) *Runner {
	return &Runner{
		handler:   h,
		stream:    stream,
		extractor: extractor,
		prompts:   prompts,
		timeouts:  timeouts.withDefaults(),
		tracer:    otel.GetTracerProvider().Tracer(instrumentationName),
	}
}

func (r *Runner) AnalyzeStructure(ctx context.Context, call Call,
	text string, field domain.Field) (domain.StructureAnalysis, error) {
	ctx, span := r.tracer.Start(ctx, "stage.structure")
	defer span.End()
	res, err := r.analyzeStructure(ctx, call, text, field)
	if err != nil {
		err = &errs.StructureAnalysisError{Err: err}
	}
	end(span, err)
	return res, err
}

func (r *Runner) analyzeStructure(ctx context.Context, call Call,
	text string, field domain.Field) (domain.StructureAnalysis, error) {
	prompt, err := r.prompts.render(tplStructure, structureData{
		Field: field,
		Fields: slice.Map(domain.Fields(), func(idx int, src domain.Field) string {
			return src.String()
		}),
		Text: text,
	})
	if err != nil {
		return domain.StructureAnalysis{}, err
	}
	answer, err := r.invoke(ctx, call, domain.BizStructureAnalysis, StructureBudget,
		r.timeouts.Structure, prompt, nil, nil)
	if err != nil {
		return domain.StructureAnalysis{}, err
	}
	raw, err := r.extractor.Extract(answer)
	if err != nil {
		return domain.StructureAnalysis{}, err
	}
	return extract.DecodeStructure(raw)
}

// Rate 让一个评分者打分。onChunk 不为 nil 的时候会把模型的输出实时转发出去
func (r *Runner) Rate(ctx context.Context, call Call, id domain.EvaluatorID,
	text string, field domain.Field, sa domain.StructureAnalysis, onChunk ChunkFunc) (domain.EvaluationResult, error) {
	ctx, span := r.tracer.Start(ctx, "stage.rater",
		trace.WithAttributes(attribute.String("evaluator_id", string(id))))
	defer span.End()
	res, err := r.rate(ctx, call, id, text, field, sa, onChunk)
	if err != nil {
		err = &errs.EvaluatorError{ID: string(id), Err: err}
	}
	end(span, err)
	return res, err
}

func (r *Runner) rate(ctx context.Context, call Call, id domain.EvaluatorID,
	text string, field domain.Field, sa domain.StructureAnalysis, onChunk ChunkFunc) (domain.EvaluationResult, error) {
	prompt, err := r.prompts.render(tplRater, raterData{
		Field:     field,
		Persona:   PersonaOf(id),
		Text:      text,
		Structure: sa,
	})
	if err != nil {
		return domain.EvaluationResult{}, err
	}
	answer, err := r.invoke(ctx, call, domain.BizEvaluator, RaterBudget,
		r.timeouts.Rater, prompt, nil, onChunk)
	if err != nil {
		return domain.EvaluationResult{}, err
	}
	raw, err := r.extractor.Extract(answer)
	if err != nil {
		return domain.EvaluationResult{}, err
	}
	return extract.NormalizeEvaluation(id, raw)
}

// Aggregate 综合三个评分者的意见，evals 需要已经按照 A、B、C 排好序
func (r *Runner) Aggregate(ctx context.Context, call Call, field domain.Field,
	evals []domain.EvaluationResult, onChunk ChunkFunc) (domain.Aggregation, error) {
	ctx, span := r.tracer.Start(ctx, "stage.aggregation")
	defer span.End()
	res, err := r.aggregate(ctx, call, field, evals, onChunk)
	if err != nil {
		err = &errs.AggregationError{Err: err}
	}
	end(span, err)
	return res, err
}

func (r *Runner) aggregate(ctx context.Context, call Call, field domain.Field,
	evals []domain.EvaluationResult, onChunk ChunkFunc) (domain.Aggregation, error) {
	prompt, err := r.prompts.render(tplAggregation, aggregationData{
		Field:       field,
		Evaluations: evals,
	})
	if err != nil {
		return domain.Aggregation{}, err
	}
	answer, err := r.invoke(ctx, call, domain.BizComprehensiveAnalysis, AggregationBudget,
		r.timeouts.Aggregation, prompt, nil, onChunk)
	if err != nil {
		return domain.Aggregation{}, err
	}
	raw, err := r.extractor.Extract(answer)
	if err != nil {
		return domain.Aggregation{}, err
	}
	return extract.DecodeAggregation(raw)
}

type ModelAnswerInput struct {
	Text              string
	Field             domain.Field
	Evaluations       []domain.EvaluationResult
	OverallStrengths  []string
	OverallWeaknesses []string
	Improvements      []string
}

// ModelAnswer 模型直接输出纯文本，不需要解析
func (r *Runner) ModelAnswer(ctx context.Context, call Call, in ModelAnswerInput) (string, error) {
	ctx, span := r.tracer.Start(ctx, "stage.model_answer")
	defer span.End()
	res, err := r.modelAnswer(ctx, call, in)
	if err != nil {
		err = &errs.ModelAnswerError{Err: err}
	}
	end(span, err)
	return res, err
}

func (r *Runner) modelAnswer(ctx context.Context, call Call, in ModelAnswerInput) (string, error) {
	prompt, err := r.prompts.render(tplModelAnswer, modelAnswerData(in))
	if err != nil {
		return "", err
	}
	answer, err := r.invoke(ctx, call, domain.BizModelAnswer, ModelAnswerBudget,
		r.timeouts.ModelAnswer, prompt, nil, nil)
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", &errs.MalformedResponseError{Reason: "模范答案为空"}
	}
	return answer, nil
}

// Recognize 识别一张答题纸的图片
func (r *Runner) Recognize(ctx context.Context, call Call, img domain.Image) (domain.OCRResult, error) {
	ctx, span := r.tracer.Start(ctx, "stage.ocr")
	defer span.End()
	res, err := r.recognize(ctx, call, img)
	if err != nil {
		err = &errs.OCRError{Err: err}
	}
	end(span, err)
	return res, err
}

func (r *Runner) recognize(ctx context.Context, call Call, img domain.Image) (domain.OCRResult, error) {
	prompt, err := r.prompts.render(tplOCR, nil)
	if err != nil {
		return domain.OCRResult{}, err
	}
	answer, err := r.invoke(ctx, call, domain.BizOCR, OCRBudget,
		r.timeouts.OCR, prompt, []domain.Image{img}, nil)
	if err != nil {
		return domain.OCRResult{}, err
	}
	raw, err := r.extractor.Extract(answer)
	if err != nil {
		return domain.OCRResult{}, err
	}
	return extract.DecodeOCR(raw)
}

func (r *Runner) invoke(ctx context.Context, call Call, biz string, budget Budget,
	timeout time.Duration, prompt string, images []domain.Image, onChunk ChunkFunc) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	req := domain.LLMRequest{
		Biz:         biz,
		Tid:         shortuuid.New(),
		RunID:       call.RunID,
		APIKey:      call.APIKey,
		Prompt:      prompt,
		Images:      images,
		MaxTokens:   budget.MaxTokens,
		Temperature: budget.Temperature,
	}
	if onChunk == nil {
		resp, err := r.handler.Handle(ctx, req)
		return resp.Answer, err
	}
	ch, err := r.stream.StreamHandle(ctx, req)
	if err != nil {
		return "", err
	}
	var answer string
	var streamErr error
	// 一直读到 channel 关闭，上游的 goroutine 才能退出
	for evt := range ch {
		switch {
		case evt.Error != nil:
			streamErr = evt.Error
		case evt.Done:
			answer = evt.Answer
		case evt.Content != "" && streamErr == nil:
			onChunk(evt.Content)
		}
	}
	if streamErr == nil && answer == "" && ctx.Err() != nil {
		// 取消之后结束事件可能已经被丢掉了
		streamErr = &errs.TransportError{Provider: "stream", Err: ctx.Err()}
	}
	if streamErr != nil {
		return "", streamErr
	}
	if answer == "" {
		return "", &errs.ResponseShapeError{Provider: "stream", Reason: "流式响应没有结束事件"}
	}
	return answer, nil
}

func end(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}
