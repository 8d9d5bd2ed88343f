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

package extract

import (
	"encoding/json"
	"strconv"
	"strings"
)

// 下面几个类型用于宽松地解析模型输出，类型不对的时候保留零值而不是报错

type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	if val, ok := decodeNumber(data); ok {
		*n = flexNumber(val)
	}
	return nil
}

type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	var val bool
	if err := json.Unmarshal(data, &val); err == nil {
		*b = flexBool(val)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(s))
	if err == nil {
		*b = flexBool(parsed)
	}
	return nil
}

type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	*s = flexString(decodeString(data))
	return nil
}

type flexStrings []string

func (l *flexStrings) UnmarshalJSON(data []byte) error {
	*l = decodeStrings(data)
	return nil
}

// orEmpty 字段缺失的时候 UnmarshalJSON 不会被调用
func (l flexStrings) orEmpty() []string {
	if l == nil {
		return []string{}
	}
	return l
}
