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

// Package sse 解析 provider 返回的 text/event-stream，也负责把评估进度编码成 SSE 帧。
// 解析的时候只关心 data 行，其它行（event、id、注释、心跳）都直接忽略
package sse

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
)

const (
	dataPrefix = "data:"
	doneMarker = "[DONE]"
	readSize   = 4096
)

// Decoder 增量解析器，可以接收任意切分的字节流，
// 只有拿到完整的一行才会输出
type Decoder struct {
	buf []byte
}

func NewDecoder() *Decoder {
	return &Decoder{}
}

// Feed 追加一段字节，返回这一次凑齐的所有 JSON 数据。
// 非 JSON 的 data 和 [DONE] 会被丢弃
func (d *Decoder) Feed(chunk []byte) []json.RawMessage {
	d.buf = append(d.buf, chunk...)
	var res []json.RawMessage
	for {
		idx := bytes.IndexByte(d.buf, '\n')
		if idx < 0 {
			break
		}
		line := d.buf[:idx]
		d.buf = d.buf[idx+1:]
		if payload, ok := parseLine(line); ok {
			res = append(res, payload)
		}
	}
	return res
}

// Flush 流结束的时候，最后一行可能没有换行符
func (d *Decoder) Flush() []json.RawMessage {
	line := d.buf
	d.buf = nil
	if payload, ok := parseLine(line); ok {
		return []json.RawMessage{payload}
	}
	return nil
}

func parseLine(line []byte) (json.RawMessage, bool) {
	line = bytes.TrimRight(line, "\r")
	if !bytes.HasPrefix(line, []byte(dataPrefix)) {
		return nil, false
	}
	payload := bytes.TrimSpace(line[len(dataPrefix):])
	if len(payload) == 0 || string(payload) == doneMarker {
		return nil, false
	}
	if !json.Valid(payload) {
		return nil, false
	}
	// buf 会被复用，这里必须复制一份
	return json.RawMessage(bytes.Clone(payload)), true
}

// Decode 持续读取 r 直到结束，每拿到一条数据就回调 fn。
// fn 返回错误会中断读取
func Decode(ctx context.Context, r io.Reader, fn func(payload json.RawMessage) error) error {
	dec := NewDecoder()
	chunk := make([]byte, readSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := r.Read(chunk)
		if n > 0 {
			for _, payload := range dec.Feed(chunk[:n]) {
				if er := fn(payload); er != nil {
					return er
				}
			}
		}
		if errors.Is(err, io.EOF) {
			for _, payload := range dec.Flush() {
				if er := fn(payload); er != nil {
					return er
				}
			}
			return nil
		}
		if err != nil {
			return err
		}
	}
}
