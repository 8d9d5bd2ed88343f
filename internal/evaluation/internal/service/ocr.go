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

package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/domain"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/errs"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/repository/cache"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service/keypool"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service/stage"
	"github.com/gotomicro/ego/core/elog"
	"github.com/lithammer/shortuuid/v4"
	"golang.org/x/sync/errgroup"
)

var dataURLRegexp = regexp.MustCompile(`^data:([^;]+);base64,(.+)$`)

//go:generate mockgen -source=./ocr.go -destination=../../mocks/ocr.mock.go -package=evalmocks -typed=true OCRService
type OCRService interface {
	// Recognize image 可以是 data URL，也可以是纯 base64
	Recognize(ctx context.Context, image string) (domain.OCRResult, error)
	// RecognizePages 多页答案逐页识别之后合并
	RecognizePages(ctx context.Context, images []string) (domain.OCRResult, error)
}

type ocrService struct {
	runner *stage.Runner
	keys   *keypool.Loader
	cache  cache.OCRCache
	logger *elog.Component
}

func NewOCRService(runner *stage.Runner, keys *keypool.Loader, c cache.OCRCache) OCRService {
	return &ocrService{
		runner: runner,
		keys:   keys,
		cache:  c,
		logger: elog.DefaultLogger,
	}
}

func (s *ocrService) Recognize(ctx context.Context, image string) (domain.OCRResult, error) {
	return s.RecognizePages(ctx, []string{image})
}

func (s *ocrService) RecognizePages(ctx context.Context, images []string) (domain.OCRResult, error) {
	if len(images) == 0 {
		return domain.OCRResult{}, &errs.ValidationError{Field: "image", Msg: "이미지가 제공되지 않았습니다."}
	}
	imgs := make([]domain.Image, 0, len(images))
	for _, raw := range images {
		img, err := parseImage(raw)
		if err != nil {
			return domain.OCRResult{}, err
		}
		imgs = append(imgs, img)
	}
	pool, err := s.keys.Load()
	if err != nil {
		return domain.OCRResult{}, err
	}
	runID := shortuuid.New()
	pages := make([]domain.OCRResult, len(imgs))
	eg, ctx := errgroup.WithContext(ctx)
	for i, img := range imgs {
		eg.Go(func() error {
			res, err := s.recognize(ctx, stage.Call{RunID: runID, APIKey: pool.Get(i)}, img)
			pages[i] = res
			return err
		})
	}
	if err = eg.Wait(); err != nil {
		return domain.OCRResult{}, err
	}
	return domain.MergePages(pages), nil
}

// recognize 同一张图片只识别一次，缓存出错不影响识别
func (s *ocrService) recognize(ctx context.Context, call stage.Call, img domain.Image) (domain.OCRResult, error) {
	digest := digestOf(img)
	res, err := s.cache.Get(ctx, digest)
	if err == nil {
		return res, nil
	}
	if !errors.Is(err, cache.ErrOCRResultNotFound) {
		s.logger.Warn("查询 OCR 缓存失败", elog.String("digest", digest), elog.FieldErr(err))
	}
	res, err = s.runner.Recognize(ctx, call, img)
	if err != nil {
		return domain.OCRResult{}, err
	}
	if err = s.cache.Set(ctx, digest, res); err != nil {
		s.logger.Warn("缓存 OCR 结果失败", elog.String("digest", digest), elog.FieldErr(err))
	}
	return res, nil
}

// parseImage 纯 base64 的时候根据内容推断类型
func parseImage(raw string) (domain.Image, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.Image{}, &errs.ValidationError{Field: "image", Msg: "이미지가 제공되지 않았습니다."}
	}
	invalid := &errs.ValidationError{Field: "image", Msg: "올바른 이미지 형식이 아닙니다."}
	if strings.HasPrefix(raw, "data:") {
		matches := dataURLRegexp.FindStringSubmatch(raw)
		if matches == nil || !strings.HasPrefix(matches[1], "image/") {
			return domain.Image{}, invalid
		}
		return domain.Image{MediaType: matches[1], Data: matches[2]}, nil
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return domain.Image{}, invalid
	}
	mediaType := http.DetectContentType(data)
	if !slice.Contains([]string{"image/png", "image/jpeg", "image/gif", "image/webp"}, mediaType) {
		return domain.Image{}, invalid
	}
	return domain.Image{MediaType: mediaType, Data: raw}, nil
}

func digestOf(img domain.Image) string {
	sum := sha256.Sum256([]byte(img.MediaType + ":" + img.Data))
	return hex.EncodeToString(sum[:])
}
