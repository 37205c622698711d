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
package httpserver

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/Confidential-Secret-Vault/app/internal/msgs"
	"github.com/Confidential-Secret-Vault/app/pkg/confutil"
	"github.com/Confidential-Secret-Vault/app/pkg/log"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollconf"
	"github.com/Confidential-Secret-Vault/app/pkg/types"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

// Server is a listener that is bound on creation, so Addr is valid before Start
type Server interface {
	Start() error
	Stop()
	Addr() net.Addr
}

type httpServer struct {
	ctx             context.Context
	cancelCtx       func()
	description     string
	listener        net.Listener
	httpServer      *http.Server
	serveDone       chan error
	shutdownTimeout time.Duration
	started         bool
}

var _ Server = &httpServer{}

func NewServer(ctx context.Context, description string, conf *payrollconf.HTTPServerConfig, handler http.Handler) (Server, error) {
	if conf.Port == nil {
		return nil, i18n.NewError(ctx, msgs.MsgHTTPServerMissingPort, description)
	}
	defs := payrollconf.HTTPDefaults
	listenAddr := fmt.Sprintf("%s:%d", confutil.StringNotEmpty(conf.Address, *defs.Address), *conf.Port)
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgHTTPServerStartFailed, listenAddr)
	}
	log.L(ctx).Infof("%s server listening on %s", description, listener.Addr())

	timeouts := requestTimeouts{
		def: confutil.DurationMin(conf.DefaultRequestTimeout, time.Second, *defs.DefaultRequestTimeout),
		max: confutil.DurationMin(conf.MaxRequestTimeout, time.Second, *defs.MaxRequestTimeout),
	}
	// the connection must outlive the longest request it can carry
	ioTimeoutMin := timeouts.max + time.Second
	readTimeout := confutil.DurationMin(conf.ReadTimeout, ioTimeoutMin, "0")
	writeTimeout := confutil.DurationMin(conf.WriteTimeout, ioTimeoutMin, "0")
	log.L(ctx).Debugf("%s server timeouts: read=%s write=%s request=%s/%s", description, readTimeout, writeTimeout, timeouts.def, timeouts.max)

	s := &httpServer{
		description:     description,
		listener:        listener,
		serveDone:       make(chan error),
		shutdownTimeout: confutil.DurationMin(conf.ShutdownTimeout, 0, *defs.ShutdownTimeout),
	}
	s.ctx, s.cancelCtx = context.WithCancel(ctx)
	s.httpServer = &http.Server{
		Handler:           WrapCorsIfEnabled(ctx, s.withLogAndTimeout(handler, timeouts), &conf.CORS),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readTimeout,
		WriteTimeout:      writeTimeout,
		ConnContext: func(connCtx context.Context, c net.Conn) context.Context {
			l := log.L(ctx).WithField("req", types.ShortID())
			l.Debugf("New %s connection: remote=%s local=%s", description, c.RemoteAddr(), c.LocalAddr())
			return log.WithLogger(connCtx, l)
		},
	}
	return s, nil
}

type requestTimeouts struct {
	def time.Duration
	max time.Duration
}

// forRequest honors a Request-Timeout header of whole seconds or a Go duration,
// capped at the maximum
func (rt requestTimeouts) forRequest(req *http.Request) time.Duration {
	h := req.Header.Get("Request-Timeout")
	if h == "" {
		return rt.def
	}
	var custom time.Duration
	secs, err := strconv.ParseInt(h, 10, 32)
	if err == nil {
		custom = time.Duration(secs) * time.Second
	} else if custom, err = time.ParseDuration(h); err != nil {
		log.L(req.Context()).Warnf("Invalid Request-Timeout header '%s': %s", h, err)
		return rt.def
	}
	return min(custom, rt.max)
}

func (s *httpServer) Addr() net.Addr {
	return s.listener.Addr()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(statusCode int) {
	sr.status = statusCode
	sr.ResponseWriter.WriteHeader(statusCode)
}

// Hijack passes through to the real writer, so WebSocket upgrades work behind the recorder
func (sr *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := sr.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, i18n.NewError(context.Background(), msgs.MsgHTTPServerNoWSUpgradeSupport)
	}
	return hj.Hijack()
}

func (s *httpServer) withLogAndTimeout(handler http.Handler, timeouts requestTimeouts) http.Handler {
	return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ctx, cancel := context.WithTimeout(req.Context(), timeouts.forRequest(req))
		defer cancel()

		log.L(ctx).Debugf("--> %s %s (%s)", req.Method, req.URL.Path, s.description)
		sr := &statusRecorder{ResponseWriter: res, status: http.StatusOK}
		handler.ServeHTTP(sr, req.WithContext(ctx))
		log.L(ctx).Debugf("<-- %s %s [%d] (%.2fms)", req.Method, req.URL.Path, sr.status, float64(time.Since(start))/float64(time.Millisecond))
	})
}

func (s *httpServer) Start() error {
	s.started = true
	go func() {
		s.serveDone <- s.httpServer.Serve(s.listener)
	}()
	return nil
}

// Stop waits up to the shutdown timeout for in-flight requests, then closes
// any connections still open
func (s *httpServer) Stop() {
	if !s.started {
		_ = s.listener.Close()
		return
	}
	log.L(s.ctx).Infof("%s server shutting down", s.description)
	shutdownCtx, cancel := context.WithTimeout(s.ctx, s.shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		log.L(s.ctx).Warnf("%s server terminating after waiting %s for shutdown", s.description, s.shutdownTimeout)
		_ = s.httpServer.Close()
	}
	s.cancelCtx()
	err := <-s.serveDone
	log.L(s.ctx).Infof("%s server ended (err=%v)", s.description, err)
	s.started = false
}
