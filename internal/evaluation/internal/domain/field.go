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

// Field 技术士考试的科目
type Field string

const (
	FieldInformationManagement    Field = "정보관리기술사"
	FieldComputerSystem           Field = "컴퓨터시스템응용기술사"
	FieldInformationCommunication Field = "정보통신기술사"
	FieldElectronics              Field = "전자응용기술사"
	FieldOther                    Field = "기타"
)

// Fields 所有支持的科目，顺序就是前端展示的顺序
func Fields() []Field {
	return []Field{
		FieldInformationManagement,
		FieldComputerSystem,
		FieldInformationCommunication,
		FieldElectronics,
		FieldOther,
	}
}

func (f Field) Valid() bool {
	for _, field := range Fields() {
		if f == field {
			return true
		}
	}
	return false
}

func (f Field) String() string {
	return string(f)
}
