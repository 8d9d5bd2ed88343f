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

package evaluation

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/repository"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/repository/cache"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/repository/dao"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service/extract"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service/keypool"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service/llm/handler"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service/llm/handler/log"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service/llm/handler/metrics"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service/llm/handler/platform/anthropic"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service/llm/handler/platform/gemini"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service/llm/handler/platform/openai"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service/llm/handler/platform/zhipu"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service/llm/handler/record"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service/llm/handler/retry"
	"github.com/ecodeclub/examgrader/internal/evaluation/internal/service/stage"
	"github.com/ego-component/egorm"
	"github.com/gotomicro/ego/core/econf"
	"gorm.io/gorm"
)

const (
	platformAnthropic = "anthropic"
	platformGemini    = "gemini"
	platformOpenAI    = "openai"
	platformZhipu     = "zhipu"
)

type LLMConfig struct {
	// anthropic、gemini、openai、zhipu，默认是 anthropic
	Platform string   `yaml:"platform"`
	Model    string   `yaml:"model"`
	BaseURL  string   `yaml:"baseURL"`
	APIKeys  []string `yaml:"apiKeys"`
	// 环境变量的前缀，默认是 <PLATFORM>_API_KEY
	KeyEnv string       `yaml:"keyEnv"`
	Retry  retry.Config `yaml:"retry"`
}

type EvaluationConfig struct {
	RelayTokens bool `yaml:"relayTokens"`
	// brace 或者 fenced，默认是 brace
	Extractor string         `yaml:"extractor"`
	Timeouts  stage.Timeouts `yaml:"timeouts"`
}

type OCRConfig struct {
	CacheExpiration time.Duration `yaml:"cacheExpiration"`
}

func InitLLMConfig() LLMConfig {
	var cfg LLMConfig
	err := econf.UnmarshalKey("llm", &cfg)
	if err != nil {
		panic(err)
	}
	cfg.Platform = strings.ToLower(strings.TrimSpace(cfg.Platform))
	if cfg.Platform == "" {
		cfg.Platform = platformAnthropic
	}
	if cfg.KeyEnv == "" {
		cfg.KeyEnv = strings.ToUpper(cfg.Platform) + "_API_KEY"
	}
	if cfg.Retry == (retry.Config{}) {
		cfg.Retry = retry.DefaultConfig()
	}
	return cfg
}

func InitEvaluationConfig() EvaluationConfig {
	var cfg EvaluationConfig
	err := econf.UnmarshalKey("evaluation", &cfg)
	if err != nil {
		panic(err)
	}
	return cfg
}

func InitPlatform(cfg LLMConfig) handler.Platform {
	// 超时由每个阶段的 context 控制
	client := &http.Client{}
	switch cfg.Platform {
	case platformAnthropic:
		return anthropic.NewHandler(client, cfg.BaseURL, cfg.Model)
	case platformGemini:
		return gemini.NewHandler(client, cfg.BaseURL, cfg.Model)
	case platformOpenAI:
		return openai.NewHandler(client, cfg.BaseURL, cfg.Model)
	case platformZhipu:
		return zhipu.NewHandler(cfg.Model)
	default:
		panic(fmt.Sprintf("不支持的 LLM 平台 %s", cfg.Platform))
	}
}

// commonBuilder 同时装饰普通调用和流式调用
type commonBuilder interface {
	handler.Builder
	handler.StreamBuilder
}

// InitCommonBuilders log -> metrics -> retry -> record -> platform
func InitCommonBuilders(cfg LLMConfig, repo repository.LLMRecordRepo) []commonBuilder {
	retryBuilder, err := retry.NewHandler(cfg.Retry)
	if err != nil {
		panic(err)
	}
	hostname, _ := os.Hostname()
	return []commonBuilder{
		log.NewHandler(),
		metrics.NewHandler("examgrader", "evaluation", hostname),
		retryBuilder,
		record.NewHandler(repo),
	}
}

func InitHandler(common []commonBuilder, platform handler.Platform) handler.Handler {
	builders := slice.Map(common, func(idx int, src commonBuilder) handler.Builder {
		return src
	})
	return handler.NewCompositionHandler(builders, platform)
}

func InitStreamHandler(common []commonBuilder, platform handler.Platform) handler.StreamHandler {
	builders := slice.Map(common, func(idx int, src commonBuilder) handler.StreamBuilder {
		return src
	})
	return handler.NewCompositionStreamHandler(builders, platform)
}

func InitRunner(h handler.Handler, stream handler.StreamHandler, cfg EvaluationConfig) *stage.Runner {
	var extractor extract.Extractor = extract.NewBraceExtractor()
	if cfg.Extractor == "fenced" {
		extractor = extract.NewFencedExtractor()
	}
	return stage.NewRunner(h, stream, extractor, stage.DefaultPrompts(), cfg.Timeouts)
}

func InitKeyLoader(cfg LLMConfig) *keypool.Loader {
	return keypool.NewLoader(cfg.Platform, cfg.APIKeys, cfg.KeyEnv)
}

func InitServiceConfig(cfg EvaluationConfig) service.Config {
	return service.Config{RelayTokens: cfg.RelayTokens}
}

func InitOCRCache(ec ecache.Cache) cache.OCRCache {
	var cfg OCRConfig
	err := econf.UnmarshalKey("ocr", &cfg)
	if err != nil {
		panic(err)
	}
	return cache.NewOCRCache(ec, cfg.CacheExpiration)
}

var daoOnce = sync.Once{}

func InitTableOnce(db *gorm.DB) {
	daoOnce.Do(func() {
		err := dao.InitTables(db)
		if err != nil {
			panic(err)
		}
	})
}

func InitLLMRecordDAO(db *egorm.Component) dao.LLMRecordDAO {
	InitTableOnce(db)
	return dao.NewGORMLLMRecordDAO(db)
}

func InitEvaluationRunDAO(db *egorm.Component) dao.EvaluationRunDAO {
	InitTableOnce(db)
	return dao.NewGORMEvaluationRunDAO(db)
}
