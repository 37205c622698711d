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
	"crypto/tls"
	"crypto/x509"
	"os"

	"github.com/Confidential-Secret-Vault/app/internal/msgs"
	"github.com/Confidential-Secret-Vault/app/pkg/log"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollconf"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

func buildTLSConfig(ctx context.Context, conf *payrollconf.TLSConfig) (*tls.Config, error) {
	if !conf.Enabled {
		return nil, nil
	}

	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: conf.InsecureSkipHostVerify,
	}

	var err error
	var rootCAs *x509.CertPool
	if conf.CAFile != "" {
		rootCAs = x509.NewCertPool()
		var caBytes []byte
		if caBytes, err = os.ReadFile(conf.CAFile); err == nil {
			if !rootCAs.AppendCertsFromPEM(caBytes) {
				err = i18n.NewError(ctx, msgs.MsgTLSInvalidCAFile)
			}
		}
	} else {
		rootCAs, err = x509.SystemCertPool()
	}
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgTLSConfigFailed)
	}
	tlsConfig.RootCAs = rootCAs

	if conf.CertFile != "" && conf.KeyFile != "" {
		cert, err := tls.LoadX509KeyPair(conf.CertFile, conf.KeyFile)
		if err != nil {
			return nil, i18n.WrapError(ctx, err, msgs.MsgTLSInvalidKeyPairFiles)
		}
		tlsConfig.GetClientCertificate = func(*tls.CertificateRequestInfo) (*tls.Certificate, error) {
			log.L(ctx).Debugf("Supplying client certificate")
			return &cert, nil
		}
	}

	return tlsConfig, nil
}
