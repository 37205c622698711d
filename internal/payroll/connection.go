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

package payroll

import (
	"context"
	"sync/atomic"

	"github.com/Confidential-Secret-Vault/app/internal/msgs"
	"github.com/Confidential-Secret-Vault/app/internal/wallet"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollapi"
	"github.com/Confidential-Secret-Vault/app/pkg/types"
	"github.com/google/uuid"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

// Connection is one wallet session. Every workflow takes the connection it was
// started under, and results that arrive after it is invalidated are discarded.
type Connection struct {
	id          uuid.UUID
	account     types.EthAddress
	wallet      wallet.Wallet
	invalidated atomic.Bool
}

func newConnection(w wallet.Wallet) *Connection {
	return &Connection{
		id:      uuid.New(),
		account: *w.Address(),
		wallet:  w,
	}
}

func (c *Connection) ID() string {
	return c.id.String()
}

func (c *Connection) Account() types.EthAddress {
	return c.account
}

func (c *Connection) Info() *payrollapi.ConnectionInfo {
	return &payrollapi.ConnectionInfo{
		ID:         c.ID(),
		Account:    c.account,
		WalletType: string(c.wallet.Type()),
	}
}

func (c *Connection) Valid() bool {
	return c != nil && !c.invalidated.Load()
}

func (c *Connection) invalidate() {
	c.invalidated.Store(true)
}

func notConnected(ctx context.Context) error {
	return payrollapi.NewFailure(payrollapi.ReasonNotConnected, i18n.NewError(ctx, msgs.MsgPayrollNotConnected))
}

func checkConnection(ctx context.Context, conn *Connection) error {
	if !conn.Valid() {
		return notConnected(ctx)
	}
	return nil
}
