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
	"testing"

	"github.com/ecodeclub/examgrader/internal/evaluation/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	testCases := []struct {
		name     string
		keys     []string
		wantKeys []string
		wantErr  error
	}{
		{
			name:     "一个 key",
			keys:     []string{"k1"},
			wantKeys: []string{"k1", "k1", "k1"},
		},
		{
			name:     "两个 key",
			keys:     []string{"k1", "k2"},
			wantKeys: []string{"k1", "k2", "k1"},
		},
		{
			name:     "三个 key",
			keys:     []string{"k1", "k2", "k3"},
			wantKeys: []string{"k1", "k2", "k3"},
		},
		{
			name:     "超过三个",
			keys:     []string{"k1", "k2", "k3", "k4"},
			wantKeys: []string{"k1", "k2", "k3"},
		},
		{
			name:     "忽略空 key",
			keys:     []string{"", " ", "k2"},
			wantKeys: []string{"k2", "k2", "k2"},
		},
		{
			name:    "没有 key",
			keys:    []string{"", ""},
			wantErr: &errs.MissingCredentialError{Platform: "anthropic"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := New("anthropic", tc.keys)
			assert.Equal(t, tc.wantErr, err)
			if err != nil {
				return
			}
			assert.Equal(t, tc.wantKeys, p.Keys())
		})
	}
}

func TestPool_Get(t *testing.T) {
	p, err := New("gemini", []string{"only"})
	require.NoError(t, err)
	assert.Equal(t, "only", p.Get(0))
	assert.Equal(t, "only", p.Get(1))
	assert.Equal(t, "only", p.Get(2))

	p, err = New("gemini", []string{"k1", "k2", "k3"})
	require.NoError(t, err)
	assert.Equal(t, "k1", p.Get(0))
	assert.Equal(t, "k2", p.Get(1))
	assert.Equal(t, "k3", p.Get(2))
	assert.Equal(t, "k1", p.Primary())
}

func TestLoader_Load(t *testing.T) {
	env := map[string]string{
		"GOOGLE_API_KEY":   "env1",
		"GOOGLE_API_KEY_3": "env3",
	}
	l := NewLoader("gemini", nil, "GOOGLE_API_KEY")
	l.getenv = func(key string) string {
		return env[key]
	}
	p, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"env1", "env3", "env1"}, p.Keys())

	// 配置文件里面的优先
	l = NewLoader("gemini", []string{"cfg1"}, "GOOGLE_API_KEY")
	l.getenv = func(key string) string {
		return env[key]
	}
	p, err = l.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"cfg1", "env1", "env3"}, p.Keys())

	l = NewLoader("gemini", nil, "")
	_, err = l.Load()
	var missing *errs.MissingCredentialError
	assert.ErrorAs(t, err, &missing)
}
