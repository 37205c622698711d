// Copyright © 2025 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var METRICS_SUBSYSTEM = "payroll"

type PayrollMetrics interface {
	// WorkflowStarted returns the function to call with the outcome when the workflow ends
	WorkflowStarted(op string) func(outcome string)
	IncPending(op string)
	DecPending(op string)
	IncRPC(method string)
}

type payrollMetrics struct {
	outcomes *prometheus.CounterVec
	duration *prometheus.HistogramVec
	pending  *prometheus.GaugeVec
	rpc      *prometheus.CounterVec
}

func InitMetrics(ctx context.Context, registry *prometheus.Registry) PayrollMetrics {
	metrics := &payrollMetrics{}

	metrics.outcomes = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "workflows_total",
		Help: "Payroll workflows completed, by outcome", Subsystem: METRICS_SUBSYSTEM}, []string{"op", "outcome"})
	metrics.duration = prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: "workflow_duration_seconds",
		Help: "Payroll workflow duration", Subsystem: METRICS_SUBSYSTEM, Buckets: prometheus.ExponentialBuckets(0.01, 4, 8)}, []string{"op"})
	metrics.pending = prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "pending_ops",
		Help: "Per-payment decrypt and claim operations in flight", Subsystem: METRICS_SUBSYSTEM}, []string{"op"})
	metrics.rpc = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "rpc_total",
		Help: "Payroll JSON/RPC calls", Subsystem: METRICS_SUBSYSTEM}, []string{"method"})

	registry.MustRegister(metrics.outcomes, metrics.duration, metrics.pending, metrics.rpc)
	return metrics
}

func (pm *payrollMetrics) WorkflowStarted(op string) func(outcome string) {
	start := time.Now()
	return func(outcome string) {
		pm.duration.With(prometheus.Labels{"op": op}).Observe(time.Since(start).Seconds())
		pm.outcomes.With(prometheus.Labels{"op": op, "outcome": outcome}).Inc()
	}
}

func (pm *payrollMetrics) IncPending(op string) {
	pm.pending.With(prometheus.Labels{"op": op}).Inc()
}

func (pm *payrollMetrics) DecPending(op string) {
	pm.pending.With(prometheus.Labels{"op": op}).Dec()
}

func (pm *payrollMetrics) IncRPC(method string) {
	pm.rpc.With(prometheus.Labels{"method": method}).Inc()
}
