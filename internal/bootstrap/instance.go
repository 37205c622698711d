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
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"

	"github.com/Confidential-Secret-Vault/app/internal/msgs"
	"github.com/Confidential-Secret-Vault/app/pkg/log"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollconf"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

type RC int

const (
	RC_OK   RC = 0
	RC_FAIL RC = 1
)

var stackFactory = Build

// Instance runs the front door until it is stopped by a signal or a call to Stop
type Instance struct {
	configFile string

	ctx       context.Context
	cancelCtx context.CancelFunc
	signals   chan os.Signal
	stopped   atomic.Bool
	started   chan *Stack
	done      chan struct{}
}

func NewInstance(configFile string) *Instance {
	i := &Instance{
		configFile: configFile,
		signals:    make(chan os.Signal),
		started:    make(chan *Stack, 1),
		done:       make(chan struct{}),
	}
	i.ctx, i.cancelCtx = context.WithCancel(log.WithLogField(context.Background(), "pid", strconv.Itoa(os.Getpid())))
	return i
}

// LoadConfig reads the YAML config file, and initializes logging from it
func LoadConfig(ctx context.Context, configFile string) (*payrollconf.PayrollConfig, error) {
	if configFile == "" {
		return nil, i18n.NewError(ctx, msgs.MsgBootstrapConfigRequired)
	}
	var conf payrollconf.PayrollConfig
	if err := payrollconf.ReadAndParseYAMLFile(ctx, configFile, &conf); err != nil {
		return nil, err
	}
	log.InitConfig(&conf.Log)
	return &conf, nil
}

func (i *Instance) signalHandler() {
	signal.Notify(i.signals, os.Interrupt, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	sig := <-i.signals
	if sig != nil {
		log.L(i.ctx).Infof("Stopping due to signal %s", sig)
		i.Stop()
	}
}

// Started returns the stack once the servers are listening
func (i *Instance) Started() <-chan *Stack {
	return i.started
}

func (i *Instance) Run() RC {
	defer close(i.done)
	go i.signalHandler()

	conf, err := LoadConfig(i.ctx, i.configFile)
	if err != nil {
		log.L(i.ctx).Error(err.Error())
		return RC_FAIL
	}

	s, err := stackFactory(i.ctx, conf)
	if err != nil {
		log.L(i.ctx).Error(err.Error())
		return RC_FAIL
	}
	defer s.Close()

	if err = s.StartServers(i.ctx); err != nil {
		log.L(i.ctx).Error(err.Error())
		return RC_FAIL
	}
	i.started <- s

	<-i.ctx.Done()
	return RC_OK
}

func (i *Instance) Stop() {
	if i.stopped.CompareAndSwap(false, true) {
		signal.Stop(i.signals)
		i.cancelCtx()
		close(i.signals)
		<-i.done
	}
}
