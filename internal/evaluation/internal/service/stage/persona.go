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

import "github.com/ecodeclub/examgrader/internal/evaluation/internal/domain"

// Persona 评分者的视角
type Persona struct {
	ID    domain.EvaluatorID
	Name  string
	Role  string
	Focus []string
}

var personas = map[domain.EvaluatorID]Persona{
	domain.EvaluatorA: {
		ID:   domain.EvaluatorA,
		Name: "평가위원 A (학술형)",
		Role: "대학 교수 출신으로 이론적 깊이와 개념의 정확성을 가장 중요하게 봅니다.",
		Focus: []string{
			"핵심 개념과 정의의 정확성",
			"이론적 배경과 원리 설명의 깊이",
			"최신 기술 동향과 표준의 반영",
		},
	},
	domain.EvaluatorB: {
		ID:   domain.EvaluatorB,
		Name: "평가위원 B (실무형)",
		Role: "현업 기술사로서 실무 적용 가능성과 구체적인 사례를 가장 중요하게 봅니다.",
		Focus: []string{
			"실무 적용 사례와 경험의 구체성",
			"문제 해결 방안의 현실성",
			"비용, 일정, 위험 등 실무 관점의 고려",
		},
	},
	domain.EvaluatorC: {
		ID:   domain.EvaluatorC,
		Name: "평가위원 C (출제위원형)",
		Role: "출제 경험이 많은 위원으로 답안의 구조, 형식, 출제 의도 부합 여부를 가장 중요하게 봅니다.",
		Focus: []string{
			"출제 의도에 맞는 답변인지",
			"서론, 본론, 결론의 논리적 구성",
			"도표 활용과 답안 분량, 가독성",
		},
	},
}

// PersonaOf 调用方需要保证 id 是合法的
func PersonaOf(id domain.EvaluatorID) Persona {
	return personas[id]
}
