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

package domain

import "slices"

type EventType string

const (
	EventStart                 EventType = "start"
	EventStructureStart        EventType = "structure_start"
	EventStructureComplete     EventType = "structure_complete"
	EventEvaluatorStart        EventType = "evaluator_start"
	EventEvaluatorChunk        EventType = "evaluator_chunk"
	EventEvaluatorComplete     EventType = "evaluator_complete"
	EventComprehensiveStart    EventType = "comprehensive_start"
	EventComprehensiveChunk    EventType = "comprehensive_chunk"
	EventComprehensiveComplete EventType = "comprehensive_complete"
	EventComplete              EventType = "complete"
	EventError                 EventType = "error"
)

// Terminal complete 和 error 之后不会再有任何事件
func (t EventType) Terminal() bool {
	return t == EventComplete || t == EventError
}

// ProgressEvent 流式评估过程中推送给前端的事件
type ProgressEvent struct {
	Type        EventType   `json:"type"`
	EvaluatorID EvaluatorID `json:"evaluatorId,omitempty"`
	Content     string      `json:"content,omitempty"`
	Data        any         `json:"data,omitempty"`
}

// EventLog 一次流式评估的事件记录，只能追加。
// 它属于单次评估，不是并发安全的，由调用方保证互斥
type EventLog struct {
	events []ProgressEvent
}

func (l *EventLog) Append(evt ProgressEvent) {
	l.events = append(l.events, evt)
}

func (l *EventLog) Events() []ProgressEvent {
	return slices.Clone(l.events)
}

func (l *EventLog) Len() int {
	return len(l.events)
}

// Terminated 最后一个事件是 complete 或者 error
func (l *EventLog) Terminated() bool {
	if len(l.events) == 0 {
		return false
	}
	return l.events[len(l.events)-1].Type.Terminal()
}

// Completed 已经完成的评分结果，按照完成的先后顺序
func (l *EventLog) Completed() []EvaluationResult {
	res := make([]EvaluationResult, 0, len(Evaluators()))
	for _, evt := range l.events {
		if evt.Type != EventEvaluatorComplete {
			continue
		}
		if val, ok := evt.Data.(EvaluationResult); ok {
			res = append(res, val)
		}
	}
	return res
}
