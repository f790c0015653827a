// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - notifications for off-chain indexing
//
// all notifications are observational and never required for
// correctness; when nothing drains the queue the oldest backlog is
// dropped rather than ever blocking an engine operation
package messagebus

import (
	"github.com/bitmark-inc/barterd/account"
)

// internal constants
const (
	queueSize = 1000
)

// Kind - class of a notification
type Kind int

// possible notifications
const (
	Created      Kind = iota // a request was created
	Cancelled                // a request was cancelled by its creator
	Accepted                 // a proposal completed a request
	Withdrawn                // entries left a withdrawable slot
	EscrowIn                 // descriptors were pulled into escrow
	LedgerCredit             // descriptors were credited to a slot
)

// String - kind represented as a string
func (kind Kind) String() string {
	switch kind {
	case Created:
		return "created"
	case Cancelled:
		return "cancelled"
	case Accepted:
		return "accepted"
	case Withdrawn:
		return "withdrawn"
	case EscrowIn:
		return "escrow-in"
	case LedgerCredit:
		return "ledger-credit"
	default:
		return "*unknown*"
	}
}

// MarshalText - for JSON encoding
func (kind Kind) MarshalText() ([]byte, error) {
	return []byte(kind.String()), nil
}

// Notification - one bus item
type Notification struct {
	Kind         Kind            `json:"kind"`
	RequestId    uint64          `json:"requestId,string"`
	Requester    account.Account `json:"requester,omitempty"`
	Counterparty account.Account `json:"counterparty,omitempty"`
	Count        int             `json:"count,omitempty"`
}

// for queueing data
var queue = make(chan Notification, queueSize)

// Send - queue a notification, dropping the oldest backlog when full
func Send(n Notification) {
	for {
		select {
		case queue <- n:
			return
		default:
			select {
			case <-queue:
			default:
			}
		}
	}
}

// Chan - channel to read from
func Chan() <-chan Notification {
	return queue
}
