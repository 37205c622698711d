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

package rpcclient

import (
	"context"
	"encoding/base64"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/Confidential-Secret-Vault/app/internal/msgs"
	"github.com/Confidential-Secret-Vault/app/pkg/confutil"
	"github.com/Confidential-Secret-Vault/app/pkg/log"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollconf"
	"github.com/Confidential-Secret-Vault/app/pkg/types"
	"github.com/go-resty/resty/v2"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/sirupsen/logrus"
)

type retryCtxKey struct{}

type retryCtx struct {
	id       string
	start    time.Time
	attempts uint
}

func onAfterResponse(_ *resty.Client, resp *resty.Response) {
	if resp == nil {
		return
	}
	rCtx := resp.Request.Context()
	level := logrus.DebugLevel
	status := resp.StatusCode()
	if status >= 300 {
		level = logrus.ErrorLevel
	}
	elapsed := time.Duration(0)
	if rc, ok := rCtx.Value(retryCtxKey{}).(*retryCtx); ok {
		elapsed = time.Since(rc.start)
	}
	log.L(rCtx).Logf(level, "<== %s %s [%d] (%dms)", resp.Request.Method, resp.Request.URL, status, elapsed.Milliseconds())
}

// NewRestyClient builds a resty client from HTTP client config, with request
// correlation logging, basic auth, TLS and optional retry on HTTP errors.
// It is shared by the JSON/RPC clients and the encryption relayer client.
func NewRestyClient(ctx context.Context, conf *payrollconf.HTTPClientConfig) (*resty.Client, error) {
	defs := payrollconf.DefaultHTTPConfig
	connTimeout := confutil.DurationMin(conf.ConnectionTimeout, 0, *defs.ConnectionTimeout)
	httpTransport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   connTimeout,
			KeepAlive: connTimeout,
		}).DialContext,
		ForceAttemptHTTP2: true,
	}

	u, err := url.Parse(conf.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, i18n.WrapError(ctx, err, msgs.MsgRPCClientInvalidHTTPURL, conf.URL)
	}
	tlsConf := conf.TLS
	if u.Scheme == "https" {
		tlsConf.Enabled = true
	}
	if httpTransport.TLSClientConfig, err = buildTLSConfig(ctx, &tlsConf); err != nil {
		return nil, err
	}

	client := resty.NewWithClient(&http.Client{Transport: httpTransport})
	baseURL := strings.TrimSuffix(conf.URL, "/")
	client.SetBaseURL(baseURL)
	log.L(ctx).Debugf("Created REST client to %s", baseURL)

	client.SetTimeout(confutil.DurationMin(conf.RequestTimeout, 0, *defs.RequestTimeout))

	client.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		rCtx := req.Context()
		if rCtx.Value(retryCtxKey{}) == nil {
			r := &retryCtx{
				id:    types.ShortID(),
				start: time.Now(),
			}
			rCtx = context.WithValue(rCtx, retryCtxKey{}, r)
			rCtx = log.WithLogField(rCtx, "breq", r.id)
			req.SetContext(rCtx)
		}
		log.L(rCtx).Debugf("==> %s %s%s", req.Method, baseURL, req.URL)
		log.L(rCtx).Tracef("==> (body) %+v", req.Body)
		return nil
	})
	client.OnAfterResponse(func(c *resty.Client, r *resty.Response) error { onAfterResponse(c, r); return nil })

	for k, v := range conf.HTTPHeaders {
		if vs, ok := v.(string); ok {
			client.SetHeader(k, vs)
		}
	}

	if conf.Auth.Username != "" && conf.Auth.Password != "" {
		client.SetHeader("Authorization", fmt.Sprintf("Basic %s",
			base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%s:%s", conf.Auth.Username, conf.Auth.Password)))))
	}

	if conf.Retry.Enabled {
		var retryStatusCodeRegex *regexp.Regexp
		if conf.Retry.ErrorStatusCodes != "" {
			retryStatusCodeRegex = regexp.MustCompile(conf.Retry.ErrorStatusCodes)
		}
		retryCount := confutil.IntMin(conf.Retry.Count, 0, *defs.Retry.Count)
		minTimeout := confutil.DurationMin(conf.Retry.InitialDelay, 0, *defs.Retry.InitialDelay)
		maxTimeout := confutil.DurationMin(conf.Retry.MaximumDelay, 0, *defs.Retry.MaximumDelay)
		client.
			SetRetryCount(retryCount).
			SetRetryWaitTime(minTimeout).
			SetRetryMaxWaitTime(maxTimeout).
			AddRetryCondition(func(r *resty.Response, err error) bool {
				if r == nil || r.IsSuccess() {
					return false
				}
				if r.StatusCode() > 0 && retryStatusCodeRegex != nil && !retryStatusCodeRegex.MatchString(r.Status()) {
					return false
				}
				rCtx := r.Request.Context()
				if rc, ok := rCtx.Value(retryCtxKey{}).(*retryCtx); ok {
					rc.attempts++
					log.L(rCtx).Infof("retry %d/%d (min=%dms/max=%dms) status=%d", rc.attempts, retryCount, minTimeout.Milliseconds(), maxTimeout.Milliseconds(), r.StatusCode())
				}
				return true
			})
	}

	return client, nil
}
