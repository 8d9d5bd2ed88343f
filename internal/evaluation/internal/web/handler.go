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

package web

import (
	"errors"
	"net/http"

	"github.com/ecodeclub/examgrader/internal/evaluation/internal/domain"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/errs"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service/llm/sse"
	"github.com/ecodeclub/ginx"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

type Handler struct {
	svc    service.EvaluationService
	ocrSvc service.OCRService
	logger *elog.Component
}

func NewHandler(svc service.EvaluationService, ocrSvc service.OCRService) *Handler {
	return &Handler{
		svc:    svc,
		ocrSvc: ocrSvc,
		logger: elog.DefaultLogger,
	}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	g := server.Group("/api")
	g.POST("/evaluate", ginx.B[EvaluateReq](h.Evaluate))
	g.POST("/evaluate/stream", ginx.B[EvaluateReq](h.EvaluateStream))
	g.POST("/evaluate/detail", ginx.B[RunDetailReq](h.Detail))
	g.POST("/generate-model-answer", ginx.B[ModelAnswerReq](h.GenerateModelAnswer))
	g.POST("/ocr", ginx.B[OCRReq](h.OCR))
}

func (h *Handler) Evaluate(ctx *ginx.Context, req EvaluateReq) (ginx.Result, error) {
	res, err := h.svc.Evaluate(ctx.Request.Context(), req.toDomain())
	return h.respond(ctx, res, err)
}

// EvaluateStream 参数不合法的时候还没有开始推流，直接返回 JSON
func (h *Handler) EvaluateStream(ctx *ginx.Context, req EvaluateReq) (ginx.Result, error) {
	ch, err := h.svc.Stream(ctx.Request.Context(), req.toDomain())
	var validationErr *errs.ValidationError
	if errors.As(err, &validationErr) {
		return h.respond(ctx, nil, err)
	}
	header := ctx.Writer.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	if err != nil {
		h.logger.Error("开始流式评估失败", elog.FieldErr(err))
		ctx.Status(http.StatusInternalServerError)
		_ = sse.Encode(ctx.Writer, domain.ProgressEvent{Type: domain.EventError, Content: errs.UserMessage(err)})
		ctx.Writer.Flush()
		return ginx.Result{}, ginx.ErrNoResponse
	}
	ctx.Status(http.StatusOK)
	for evt := range ch {
		if er := sse.Encode(ctx.Writer, evt); er != nil {
			h.logger.Error("写入 SSE 事件失败", elog.String("type", string(evt.Type)), elog.FieldErr(er))
			// 后面的事件没人读了，丢掉
			go func() {
				for range ch {
				}
			}()
			break
		}
		ctx.Writer.Flush()
		if evt.Type.Terminal() {
			break
		}
	}
	return ginx.Result{}, ginx.ErrNoResponse
}

func (h *Handler) Detail(ctx *ginx.Context, req RunDetailReq) (ginx.Result, error) {
	if req.RunID == "" {
		return h.respond(ctx, nil, &errs.ValidationError{Field: "runId", Msg: errs.InvalidInput.Msg})
	}
	run, err := h.svc.GetRun(ctx.Request.Context(), req.RunID)
	if err != nil {
		return h.respond(ctx, nil, err)
	}
	return h.respond(ctx, newRunVO(run), nil)
}

func (h *Handler) GenerateModelAnswer(ctx *ginx.Context, req ModelAnswerReq) (ginx.Result, error) {
	res, err := h.svc.GenerateModelAnswer(ctx.Request.Context(), req.toDomain())
	if err != nil {
		return h.respond(ctx, nil, err)
	}
	return h.respond(ctx, ModelAnswerVO{ModelAnswer: res}, nil)
}

func (h *Handler) OCR(ctx *ginx.Context, req OCRReq) (ginx.Result, error) {
	res, err := h.ocrSvc.RecognizePages(ctx.Request.Context(), req.pages())
	return h.respond(ctx, res, err)
}

// respond 自己写响应，统一成 {success, code, data, error} 的格式
func (h *Handler) respond(ctx *ginx.Context, data any, err error) (ginx.Result, error) {
	if err == nil {
		ctx.JSON(http.StatusOK, successResult(data))
		return ginx.Result{}, ginx.ErrNoResponse
	}
	status, res := errorResult(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("处理请求失败",
			elog.String("path", ctx.Request.URL.Path),
			elog.FieldErr(err))
	}
	ctx.JSON(status, res)
	return ginx.Result{}, ginx.ErrNoResponse
}
