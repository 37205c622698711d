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

package ledger

import (
	"context"
	"errors"

	"github.com/Confidential-Secret-Vault/app/internal/msgs"
	"github.com/Confidential-Secret-Vault/app/pkg/ethclient"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollapi"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

func classifyRead(ctx context.Context, op string, err error) error {
	if _, ok := payrollapi.AsFailure(err); ok {
		return err
	}
	if isUnavailable(err) {
		return payrollapi.NewFailure(payrollapi.ReasonNetworkUnavailable,
			i18n.NewError(ctx, msgs.MsgPayrollNetworkUnavailable, err.Error()))
	}
	return payrollapi.NewFailure(payrollapi.ReasonRejected,
		i18n.NewError(ctx, msgs.MsgLedgerReadFailed, op, err.Error()))
}

// classifyWrite turns a submission error into NetworkUnavailable, UserCancelled or Rejected
func classifyWrite(ctx context.Context, op string, err error) error {
	if _, ok := payrollapi.AsFailure(err); ok {
		return err
	}
	switch {
	case ethclient.MapError(err) == ethclient.ErrorReasonUserRejected:
		return payrollapi.NewFailure(payrollapi.ReasonUserCancelled,
			i18n.NewError(ctx, msgs.MsgPayrollUserCancelled, err.Error()))
	case isUnavailable(err):
		return payrollapi.NewFailure(payrollapi.ReasonNetworkUnavailable,
			i18n.NewError(ctx, msgs.MsgPayrollNetworkUnavailable, err.Error()))
	default:
		return payrollapi.NewFailure(payrollapi.ReasonRejected,
			i18n.NewError(ctx, msgs.MsgLedgerSubmitFailed, op, err.Error()))
	}
}

func isUnavailable(err error) bool {
	return ethclient.MapError(err) == ethclient.ErrorReasonDownstreamDown ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled)
}
