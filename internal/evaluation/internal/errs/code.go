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

package errs

var (
	SystemError       = ErrorCode{Code: 517001, Msg: "시스템 오류가 발생했습니다."}
	InvalidInput      = ErrorCode{Code: 517002, Msg: "요청 값이 올바르지 않습니다."}
	MissingCredential = ErrorCode{Code: 517003, Msg: "API 키가 설정되지 않았습니다."}
	EvaluationFailed  = ErrorCode{Code: 517004, Msg: "평가 중 오류가 발생했습니다."}
	OCRFailed         = ErrorCode{Code: 517005, Msg: "이미지 텍스트 추출 중 오류가 발생했습니다."}
	RunNotFound       = ErrorCode{Code: 517006, Msg: "평가 기록을 찾을 수 없습니다."}
)

type ErrorCode struct {
	Code int
	Msg  string
}
