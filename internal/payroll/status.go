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
	"fmt"
	"sync"
	"time"

	"github.com/Confidential-Secret-Vault/app/pkg/log"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollapi"
)

// statusLog is a bounded ring of the transient messages shown to the user
type statusLog struct {
	lock     sync.Mutex
	retain   int
	next     int
	messages []*payrollapi.StatusMessage
}

func newStatusLog(retain int) *statusLog {
	return &statusLog{
		retain:   retain,
		messages: make([]*payrollapi.StatusMessage, 0, retain),
	}
}

func (sl *statusLog) post(ctx context.Context, level payrollapi.StatusLevel, format string, args ...any) {
	msg := &payrollapi.StatusMessage{
		Level:   level,
		Message: fmt.Sprintf(format, args...),
		Time:    time.Now(),
	}
	switch level {
	case payrollapi.StatusError:
		log.L(ctx).Errorf("%s", msg.Message)
	case payrollapi.StatusWarning:
		log.L(ctx).Warnf("%s", msg.Message)
	default:
		log.L(ctx).Infof("%s", msg.Message)
	}

	sl.lock.Lock()
	defer sl.lock.Unlock()
	if len(sl.messages) < sl.retain {
		sl.messages = append(sl.messages, msg)
	} else {
		sl.messages[sl.next] = msg
		sl.next = (sl.next + 1) % sl.retain
	}
}

// postFailure reports a workflow failure. Validation problems are the user's
// to fix, so they are warnings rather than errors.
func (sl *statusLog) postFailure(ctx context.Context, what string, err error) {
	level := payrollapi.StatusError
	if payrollapi.ClassOf(err) == payrollapi.ClassValidation {
		level = payrollapi.StatusWarning
	}
	sl.post(ctx, level, "%s failed: %s", what, err)
}

// list returns the retained messages oldest first
func (sl *statusLog) list() []*payrollapi.StatusMessage {
	sl.lock.Lock()
	defer sl.lock.Unlock()
	out := make([]*payrollapi.StatusMessage, 0, len(sl.messages))
	out = append(out, sl.messages[sl.next:]...)
	out = append(out, sl.messages[:sl.next]...)
	for i, m := range out {
		c := *m
		out[i] = &c
	}
	return out
}
