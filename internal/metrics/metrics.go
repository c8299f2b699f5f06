// Copyright © 2024 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type ClientMetrics interface {
	RecordCall(ctx context.Context, operation string, code string, duration time.Duration)
	IncInconsistencies(ctx context.Context, operation string)
}

const (
	METRICS_NAMESPACE = "ledger"
	METRICS_SUBSYSTEM = "client"
)

type clientMetrics struct {
	calls           *prometheus.CounterVec
	inconsistencies *prometheus.CounterVec
	callDuration    *prometheus.HistogramVec
}

func InitMetrics(ctx context.Context, registry prometheus.Registerer) ClientMetrics {
	metrics := &clientMetrics{}

	metrics.calls = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "calls_total",
		Help: "Ledger client operations by result status", Namespace: METRICS_NAMESPACE, Subsystem: METRICS_SUBSYSTEM},
		[]string{"operation", "code"})
	metrics.inconsistencies = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "inconsistencies_total",
		Help: "Ledger client operations where the Ledger and Auditor disagreed", Namespace: METRICS_NAMESPACE, Subsystem: METRICS_SUBSYSTEM},
		[]string{"operation"})
	metrics.callDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: "call_duration_seconds",
		Help: "Ledger client operation duration", Namespace: METRICS_NAMESPACE, Subsystem: METRICS_SUBSYSTEM},
		[]string{"operation"})

	metrics.calls = register(registry, metrics.calls)
	metrics.inconsistencies = register(registry, metrics.inconsistencies)
	metrics.callDuration = register(registry, metrics.callDuration)
	return metrics
}

// register adds c to the registry, or returns the collector already registered
// under the same descriptor so that every client in a process shares one series
func register[C prometheus.Collector](registry prometheus.Registerer, c C) C {
	err := registry.Register(c)
	if err == nil {
		return c
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing
		}
	}
	panic(err)
}

func (m *clientMetrics) RecordCall(ctx context.Context, operation string, code string, duration time.Duration) {
	m.calls.WithLabelValues(operation, code).Inc()
	m.callDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *clientMetrics) IncInconsistencies(ctx context.Context, operation string) {
	m.inconsistencies.WithLabelValues(operation).Inc()
}

type noopMetrics struct{}

// Disabled is used when metrics are not enabled in the client configuration
func Disabled() ClientMetrics {
	return noopMetrics{}
}

func (noopMetrics) RecordCall(ctx context.Context, operation string, code string, duration time.Duration) {}

func (noopMetrics) IncInconsistencies(ctx context.Context, operation string) {}
