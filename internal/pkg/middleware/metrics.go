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

package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsBuilder struct {
	summaryVec *prometheus.SummaryVec
	counterVec *prometheus.CounterVec
	// 流式接口的耗时没有参考价值
	ignorePaths map[string]struct{}
}

func NewMetricsBuilder(namespace, subsystem string) *MetricsBuilder {
	labels := []string{"method", "path", "status_code"}
	summaryVec := promauto.NewSummaryVec(
		prometheus.SummaryOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP 请求耗时",
			Objectives: map[float64]float64{
				0.5:  0.05,
				0.9:  0.01,
				0.95: 0.005,
				0.99: 0.001,
			},
		},
		labels,
	)
	counterVec := promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "http_requests_total",
			Help:      "HTTP 请求数",
		},
		labels,
	)
	return &MetricsBuilder{
		summaryVec:  summaryVec,
		counterVec:  counterVec,
		ignorePaths: map[string]struct{}{},
	}
}

// IgnoreDuration 这些路径只计数，不统计耗时
func (b *MetricsBuilder) IgnoreDuration(paths ...string) *MetricsBuilder {
	for _, p := range paths {
		b.ignorePaths[p] = struct{}{}
	}
	return b
}

func (b *MetricsBuilder) Build() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		path := ctx.FullPath()
		if path == "" {
			path = ctx.Request.URL.Path
		}
		method := ctx.Request.Method
		status := strconv.Itoa(ctx.Writer.Status())
		b.counterVec.WithLabelValues(method, path, status).Inc()
		if _, ok := b.ignorePaths[path]; ok {
			return
		}
		b.summaryVec.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
	}
}
