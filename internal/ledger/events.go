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
	"encoding/json"

	"github.com/Confidential-Secret-Vault/app/pkg/ethclient"
	"github.com/Confidential-Secret-Vault/app/pkg/log"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollapi"
	"github.com/Confidential-Secret-Vault/app/pkg/types"
)

type payrollEventJSON struct {
	Sender    *types.EthAddress `json:"sender"`
	Recipient *types.EthAddress `json:"recipient"`
	PaymentID types.HexUint64   `json:"paymentId"`
	Timestamp types.HexUint64   `json:"timestamp"`
	Memo      string            `json:"memo"`
}

// decodeEvents picks out the payroll events emitted by our contract, in log order.
// Logs that fail to decode are skipped, as the receipt itself is already final.
func (g *gateway) decodeEvents(ctx context.Context, logs []*ethclient.LogJSONRPC) []*payrollapi.LedgerEvent {
	events := []*payrollapi.LedgerEvent{}
	for _, l := range logs {
		if l == nil || l.Removed || l.Address == nil {
			continue
		}
		emitter := types.EthAddress(*l.Address)
		if !emitter.Equals(&g.contract) {
			continue
		}
		decoded, err := g.abi.DecodeEvent(ctx, l)
		if err != nil {
			log.L(ctx).Warnf("Skipping log %d in tx %s: %s", l.LogIndex, l.TransactionHash, err)
			continue
		}
		if decoded == nil {
			continue
		}
		var data payrollEventJSON
		if err := json.Unmarshal(decoded.Data, &data); err != nil {
			log.L(ctx).Warnf("Skipping event %s in tx %s: %s", decoded.Signature, l.TransactionHash, err)
			continue
		}
		events = append(events, &payrollapi.LedgerEvent{
			Type:      payrollapi.LedgerEventType(decoded.Name),
			PaymentID: data.PaymentID.Uint64(),
			Sender:    data.Sender,
			Recipient: data.Recipient,
			Timestamp: data.Timestamp.Uint64(),
			Memo:      data.Memo,
		})
	}
	return events
}
