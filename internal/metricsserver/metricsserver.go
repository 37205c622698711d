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
	"net"
	"net/http"

	"github.com/Confidential-Secret-Vault/app/pkg/confutil"
	"github.com/Confidential-Secret-Vault/app/pkg/log"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollconf"
	"github.com/Confidential-Secret-Vault/app/pkg/router"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsServer exposes the workflow metrics registry for scraping.
// When disabled every method is a no-op and Addr is nil.
type MetricsServer interface {
	Start() error
	Stop()
	Addr() net.Addr
}

type metricsServer struct {
	r router.Router
}

var _ MetricsServer = &metricsServer{}

func NewMetricsServer(ctx context.Context, registry *prometheus.Registry, conf *payrollconf.MetricsServerConfig) (*metricsServer, error) {
	s := &metricsServer{}
	if !confutil.Bool(conf.Enabled, *payrollconf.MetricsServerDefaults.Enabled) {
		log.L(ctx).Debugf("Metrics server disabled")
		return s, nil
	}

	httpConf := conf.HTTPServerConfig
	if httpConf.Port == nil {
		httpConf.Port = confutil.P(payrollconf.DefaultMetricsPort)
	}
	r, err := router.NewRouter(ctx, "Metrics (HTTP)", &httpConf)
	if err != nil {
		return nil, err
	}
	metrics := promhttp.InstrumentMetricHandler(registry, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	r.HandleFunc("/metrics", metrics.ServeHTTP, http.MethodGet)
	s.r = r
	return s, nil
}

func (s *metricsServer) Addr() net.Addr {
	if s.r == nil {
		return nil
	}
	return s.r.Addr()
}

func (s *metricsServer) Start() error {
	if s.r == nil {
		return nil
	}
	return s.r.Start()
}

func (s *metricsServer) Stop() {
	if s.r != nil {
		s.r.Stop()
	}
}
