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

package payrollapi

import (
	"errors"
)

// FailureClass is the top level classification every workflow reports
type FailureClass string

const (
	ClassValidation   FailureClass = "ValidationError"
	ClassEncryption   FailureClass = "EncryptionFailed"
	ClassLedger       FailureClass = "LedgerNetworkError"
	ClassNotFound     FailureClass = "PaymentNotFound"
	ClassNotConnected FailureClass = "NotConnected"
)

type FailureReason string

const (
	ReasonInvalidAddress     FailureReason = "InvalidAddress"
	ReasonSelfPayment        FailureReason = "SelfPayment"
	ReasonInvalidAmount      FailureReason = "EmptyOrNonNumericAmount"
	ReasonAmountOutOfRange   FailureReason = "AmountOutOfRange"
	ReasonMemoTooLong        FailureReason = "MemoTooLong"
	ReasonMemoRequired       FailureReason = "MemoRequired"
	ReasonEmptyBatch         FailureReason = "EmptyBatch"
	ReasonBatchTooLarge      FailureReason = "BatchTooLarge"
	ReasonInvalidInput       FailureReason = "InvalidInput"
	ReasonEncryptionFailed   FailureReason = "EncryptionFailed"
	ReasonNetworkUnavailable FailureReason = "NetworkUnavailable"
	ReasonUserCancelled      FailureReason = "UserCancelled"
	ReasonRejected           FailureReason = "Rejected"
	ReasonPaymentNotFound    FailureReason = "PaymentNotFound"
	ReasonNotConnected       FailureReason = "NotConnected"
)

var reasonClasses = map[FailureReason]FailureClass{
	ReasonInvalidAddress:     ClassValidation,
	ReasonSelfPayment:        ClassValidation,
	ReasonInvalidAmount:      ClassValidation,
	ReasonAmountOutOfRange:   ClassValidation,
	ReasonMemoTooLong:        ClassValidation,
	ReasonMemoRequired:       ClassValidation,
	ReasonEmptyBatch:         ClassValidation,
	ReasonBatchTooLarge:      ClassValidation,
	ReasonInvalidInput:       ClassValidation,
	ReasonEncryptionFailed:   ClassEncryption,
	ReasonNetworkUnavailable: ClassLedger,
	ReasonUserCancelled:      ClassLedger,
	ReasonRejected:           ClassLedger,
	ReasonPaymentNotFound:    ClassNotFound,
	ReasonNotConnected:       ClassNotConnected,
}

// Failure is a classified workflow error. The wrapped error carries the
// message text (and i18n code) surfaced to the user.
type Failure struct {
	Class  FailureClass  `json:"class"`
	Reason FailureReason `json:"reason"`
	err    error
}

// NewFailure wraps err with the class implied by the reason
func NewFailure(reason FailureReason, err error) *Failure {
	class, ok := reasonClasses[reason]
	if !ok {
		class = ClassLedger
	}
	return &Failure{Class: class, Reason: reason, err: err}
}

func (f *Failure) Error() string {
	if f.err == nil {
		return string(f.Reason)
	}
	return f.err.Error()
}

func (f *Failure) Unwrap() error {
	return f.err
}

// AsFailure finds a Failure anywhere in the error chain
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// HasReason is a convenience for callers and tests
func HasReason(err error, reason FailureReason) bool {
	f, ok := AsFailure(err)
	return ok && f.Reason == reason
}

// ClassOf returns the class of a classified error, or empty for anything else
func ClassOf(err error) FailureClass {
	if f, ok := AsFailure(err); ok {
		return f.Class
	}
	return ""
}
