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

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/domain"
	pkgerrs "github.com/pkg/errors"
)

const defaultOCRExpiration = 24 * time.Hour

var ErrOCRResultNotFound = errors.New("OCR 结果没有缓存")

//go:generate mockgen -source=./ocr.go -destination=../../../mocks/ocr_cache.mock.go -package=evalmocks -typed=true OCRCache
type OCRCache interface {
	Get(ctx context.Context, digest string) (domain.OCRResult, error)
	Set(ctx context.Context, digest string, res domain.OCRResult) error
}

type ocrCache struct {
	ec         ecache.Cache
	expiration time.Duration
}

// NewOCRCache expiration 不大于 0 的时候使用默认的 24 小时
func NewOCRCache(ec ecache.Cache, expiration time.Duration) OCRCache {
	if expiration <= 0 {
		expiration = defaultOCRExpiration
	}
	return &ocrCache{
		ec: &ecache.NamespaceCache{
			C:         ec,
			Namespace: "ocr:",
		},
		expiration: expiration,
	}
}

func (c *ocrCache) Get(ctx context.Context, digest string) (domain.OCRResult, error) {
	val := c.ec.Get(ctx, c.key(digest))
	if val.KeyNotFound() {
		return domain.OCRResult{}, ErrOCRResultNotFound
	}
	if val.Err != nil {
		return domain.OCRResult{}, pkgerrs.Wrap(val.Err, "查询缓存出错")
	}
	str, ok := val.Val.(string)
	if !ok {
		return domain.OCRResult{}, ErrOCRResultNotFound
	}
	var res domain.OCRResult
	if err := json.Unmarshal([]byte(str), &res); err != nil {
		return domain.OCRResult{}, pkgerrs.Wrap(err, "反序列化 OCR 结果失败")
	}
	return res, nil
}

func (c *ocrCache) Set(ctx context.Context, digest string, res domain.OCRResult) error {
	data, err := json.Marshal(res)
	if err != nil {
		return pkgerrs.Wrap(err, "序列化 OCR 结果失败")
	}
	return c.ec.Set(ctx, c.key(digest), string(data), c.expiration)
}

func (c *ocrCache) key(digest string) string {
	return "result:" + digest
}
