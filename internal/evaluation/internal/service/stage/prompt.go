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
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/domain"
)

const (
	tplStructure   = "structure.tmpl"
	tplRater       = "rater.tmpl"
	tplAggregation = "aggregation.tmpl"
	tplModelAnswer = "model_answer.tmpl"
	tplOCR         = "ocr.tmpl"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

// Prompts 各个阶段的 prompt 模板
type Prompts struct {
	tpl *template.Template
}

func DefaultPrompts() *Prompts {
	tpl := template.Must(template.New("prompts").
		Funcs(promptFuncs).
		ParseFS(promptFS, "prompts/*.tmpl"))
	return &Prompts{tpl: tpl}
}

var promptFuncs = template.FuncMap{
	"join": strings.Join,
	"yn": func(b bool) string {
		if b {
			return "있음"
		}
		return "없음"
	},
	"detailComments": func(e domain.EvaluationResult) []string {
		fb := e.DetailedFeedback
		scores := []domain.DetailedScore{fb.Theory, fb.Practical, fb.Structure, fb.Expression, fb.Completeness}
		return slice.FilterMap(scores, func(idx int, src domain.DetailedScore) (string, bool) {
			return src.Comment, src.Comment != ""
		})
	},
}

func (p *Prompts) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := p.tpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("渲染 prompt %s 失败: %w", name, err)
	}
	return buf.String(), nil
}

type structureData struct {
	Field  domain.Field
	Fields []string
	Text   string
}

type raterData struct {
	Field     domain.Field
	Persona   Persona
	Text      string
	Structure domain.StructureAnalysis
}

type aggregationData struct {
	Field       domain.Field
	Evaluations []domain.EvaluationResult
}

type modelAnswerData struct {
	Text              string
	Field             domain.Field
	Evaluations       []domain.EvaluationResult
	OverallStrengths  []string
	OverallWeaknesses []string
	Improvements      []string
}
