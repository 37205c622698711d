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

package bootstrap

import (
	"context"

	"github.com/Confidential-Secret-Vault/app/internal/encryption"
	"github.com/Confidential-Secret-Vault/app/internal/journal"
	"github.com/Confidential-Secret-Vault/app/internal/ledger"
	"github.com/Confidential-Secret-Vault/app/internal/metrics"
	"github.com/Confidential-Secret-Vault/app/internal/metricsserver"
	"github.com/Confidential-Secret-Vault/app/internal/msgs"
	"github.com/Confidential-Secret-Vault/app/internal/payroll"
	"github.com/Confidential-Secret-Vault/app/internal/persistence"
	"github.com/Confidential-Secret-Vault/app/internal/wallet"
	"github.com/Confidential-Secret-Vault/app/pkg/ethclient"
	"github.com/Confidential-Secret-Vault/app/pkg/log"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollconf"
	"github.com/Confidential-Secret-Vault/app/pkg/rpcserver"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/prometheus/client_golang/prometheus"
)

// Stack is the fully wired client for one configuration, connected with the configured wallet
type Stack struct {
	Client     *payroll.Client
	Connection *payroll.Connection
	Registry   *prometheus.Registry

	conf          *payrollconf.PayrollConfig
	persistence   persistence.Persistence
	rpcServer     rpcserver.RPCServer
	metricsServer metricsserver.MetricsServer
}

func componentFailed(ctx context.Context, err error, name string) error {
	return i18n.WrapError(ctx, err, msgs.MsgBootstrapComponentFailed, name)
}

// Build creates every component, and connects the configured wallet.
// Servers are not started until StartServers is called.
func Build(ctx context.Context, conf *payrollconf.PayrollConfig) (_ *Stack, err error) {
	s := &Stack{
		conf:     conf,
		Registry: prometheus.NewRegistry(),
	}
	defer func() {
		if err != nil {
			s.Close()
		}
	}()

	ec, err := ethclient.New(ctx, &conf.Blockchain)
	if err != nil {
		return nil, componentFailed(ctx, err, "blockchain")
	}
	gw, err := ledger.New(ctx, ec, conf)
	if err != nil {
		return nil, componentFailed(ctx, err, "ledger")
	}
	w, err := wallet.New(ctx, &conf.Wallet)
	if err != nil {
		return nil, componentFailed(ctx, err, "wallet")
	}
	enc, err := encryption.NewRelayerClient(ctx, &conf.Encryption)
	if err != nil {
		return nil, componentFailed(ctx, err, "encryption")
	}

	j := journal.NewNoop()
	if conf.DB.Type != "" {
		if s.persistence, err = persistence.NewPersistence(ctx, &conf.DB); err != nil {
			return nil, componentFailed(ctx, err, "db")
		}
		j = journal.New(s.persistence)
	} else {
		log.L(ctx).Infof("No database configured, transaction journal disabled")
	}

	m := metrics.InitMetrics(ctx, s.Registry)
	s.Client = payroll.New(conf, gw, enc, j, m)
	s.Connection = s.Client.Connect(ctx, w)
	return s, nil
}

// StartServers opens the JSON/RPC front door and the metrics endpoint
func (s *Stack) StartServers(ctx context.Context) (err error) {
	rs, err := rpcserver.NewRPCServer(ctx, &s.conf.RPCServer)
	if err != nil {
		return componentFailed(ctx, err, "rpcServer")
	}
	rs.Register(s.Client.RPCModule())
	s.rpcServer = rs

	ms, err := metricsserver.NewMetricsServer(ctx, s.Registry, &s.conf.MetricsServer)
	if err != nil {
		return componentFailed(ctx, err, "metricsServer")
	}
	s.metricsServer = ms

	if err = s.rpcServer.Start(); err == nil {
		err = s.metricsServer.Start()
	}
	return err
}

func (s *Stack) RPCServer() rpcserver.RPCServer {
	return s.rpcServer
}

func (s *Stack) MetricsServer() metricsserver.MetricsServer {
	return s.metricsServer
}

func (s *Stack) Close() {
	if s.rpcServer != nil {
		s.rpcServer.Stop()
	}
	if s.metricsServer != nil {
		s.metricsServer.Stop()
	}
	if s.persistence != nil {
		s.persistence.Close()
	}
}
