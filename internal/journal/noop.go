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

package journal

import (
	"context"

	"github.com/Confidential-Secret-Vault/app/pkg/payrollapi"
	"github.com/google/uuid"
)

type noopJournal struct{}

// NewNoop is used when no database is configured
func NewNoop() Journal {
	return noopJournal{}
}

func (noopJournal) Record(ctx context.Context, entry *payrollapi.JournalEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return nil
}

func (noopJournal) Resolve(ctx context.Context, id uuid.UUID, blockNumber *uint64, failure error) error {
	return nil
}

func (noopJournal) List(ctx context.Context, limit int) ([]*payrollapi.JournalEntry, error) {
	return []*payrollapi.JournalEntry{}, nil
}
