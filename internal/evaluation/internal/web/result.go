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

	"github.com/ecodeclub/examgrader/internal/evaluation/internal/errs"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service"
)

// Result 所有 JSON 接口的返回结构
type Result struct {
	Success bool   `json:"success"`
	Code    int    `json:"code,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func successResult(data any) Result {
	return Result{Success: true, Data: data}
}

// errorResult 参数错误返回 400，找不到记录返回 404，其余都是 500
func errorResult(err error) (int, Result) {
	var (
		validationErr *errs.ValidationError
		credentialErr *errs.MissingCredentialError
		ocrErr        *errs.OCRError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, Result{Code: errs.InvalidInput.Code, Error: validationErr.Msg}
	case errors.Is(err, service.ErrRunNotFound):
		return http.StatusNotFound, Result{Code: errs.RunNotFound.Code, Error: errs.RunNotFound.Msg}
	case errors.As(err, &credentialErr):
		return http.StatusInternalServerError, Result{Code: errs.MissingCredential.Code, Error: errs.UserMessage(err)}
	case errors.As(err, &ocrErr):
		return http.StatusInternalServerError, Result{Code: errs.OCRFailed.Code, Error: errs.UserMessage(err)}
	default:
		return http.StatusInternalServerError, Result{Code: errs.EvaluationFailed.Code, Error: errs.UserMessage(err)}
	}
}
