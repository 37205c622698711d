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

package metricsserver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/Confidential-Secret-Vault/app/internal/metrics"
	"github.com/Confidential-Secret-Vault/app/pkg/confutil"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollconf"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServerServesWorkflowMetrics(t *testing.T) {
	ctx := context.Background()
	registry := prometheus.NewRegistry()
	m := metrics.InitMetrics(ctx, registry)
	m.WorkflowStarted("send")("success")

	s, err := NewMetricsServer(ctx, registry, &payrollconf.MetricsServerConfig{
		Enabled: confutil.P(true),
		HTTPServerConfig: payrollconf.HTTPServerConfig{
			Address: confutil.P("127.0.0.1"),
			Port:    confutil.P(0),
		},
	})
	require.NoError(t, err)
	require.NoError(t, s.Start())
	defer s.Stop()

	res, err := http.Get(fmt.Sprintf("http://%s/metrics", s.Addr()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(b), `payroll_workflows_total{op="send",outcome="success"} 1`)
	assert.Contains(t, string(b), "promhttp_metric_handler_requests_in_flight 1")

	res, err = http.Post(fmt.Sprintf("http://%s/metrics", s.Addr()), "text/plain", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}

func TestMetricsServerDisabled(t *testing.T) {
	s, err := NewMetricsServer(context.Background(), prometheus.NewRegistry(), &payrollconf.MetricsServerConfig{})
	require.NoError(t, err)
	assert.NoError(t, s.Start())
	assert.Nil(t, s.Addr())
	s.Stop()
}

func TestMetricsServerBadAddress(t *testing.T) {
	_, err := NewMetricsServer(context.Background(), prometheus.NewRegistry(), &payrollconf.MetricsServerConfig{
		Enabled: confutil.P(true),
		HTTPServerConfig: payrollconf.HTTPServerConfig{
			Address: confutil.P(":::::badness"),
		},
	})
	assert.Regexp(t, "PY010307", err)
}
