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

package keypool

import (
	"os"
	"slices"
	"strings"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/errs"
)

// Size 每一个评分者分配一个 key
const Size = 3

// Pool 一次评估使用的 key，初始化之后只读。
// 不足 3 个的时候重复使用第一个 key，这只会影响限流，不影响正确性
type Pool struct {
	keys []string
}

func New(platform string, keys []string) (*Pool, error) {
	valid := slice.FilterMap(keys, func(idx int, src string) (string, bool) {
		key := strings.TrimSpace(src)
		return key, key != ""
	})
	if len(valid) == 0 {
		return nil, &errs.MissingCredentialError{Platform: platform}
	}
	if len(valid) > Size {
		valid = valid[:Size]
	}
	for len(valid) < Size {
		valid = append(valid, valid[0])
	}
	return &Pool{keys: valid}, nil
}

// Get 按照位置分配，A 用 0，B 用 1，C 用 2
func (p *Pool) Get(i int) string {
	return p.keys[i%len(p.keys)]
}

// Primary 结构分析、综合分析等单次调用使用的 key
func (p *Pool) Primary() string {
	return p.keys[0]
}

func (p *Pool) Keys() []string {
	return slices.Clone(p.keys)
}

// Loader 每次评估都重新读取一遍配置
type Loader struct {
	platform  string
	envPrefix string
	keys      []string
	getenv    func(string) string
}

// NewLoader keys 是配置文件里面的 key，
// envPrefix 不为空的时候还会读取 envPrefix、envPrefix_2、envPrefix_3 三个环境变量
func NewLoader(platform string, keys []string, envPrefix string) *Loader {
	return &Loader{
		platform:  platform,
		envPrefix: envPrefix,
		keys:      keys,
		getenv:    os.Getenv,
	}
}

func (l *Loader) Load() (*Pool, error) {
	keys := slices.Clone(l.keys)
	if l.envPrefix != "" {
		keys = append(keys,
			l.getenv(l.envPrefix),
			l.getenv(l.envPrefix+"_2"),
			l.getenv(l.envPrefix+"_3"))
	}
	return New(l.platform, keys)
}
