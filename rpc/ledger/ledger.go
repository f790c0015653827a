// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/barterd/account"
	"github.com/bitmark-inc/barterd/asset"
	"github.com/bitmark-inc/barterd/engine"
	"github.com/bitmark-inc/barterd/ledger"
	"github.com/bitmark-inc/barterd/rpc/ratelimit"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitLedger = 200
	rateBurstLedger = 100
)

// Ledger - type for the RPC
type Ledger struct {
	Log     *logger.L
	Limiter *rate.Limiter
}

// New - create the ledger service
func New(log *logger.L) *Ledger {
	return &Ledger{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitLedger, rateBurstLedger),
	}
}

// ---

// ListArguments - arguments for a slot listing
type ListArguments struct {
	Owner account.Account `json:"owner"`
}

// ListReply - the withdrawable slot contents
type ListReply struct {
	Assets asset.Basket `json:"assets"`
	Count  int          `json:"count"`
}

// List - show the withdrawable assets held for an account
//
// indices in the reply are positional and only valid until the next
// withdrawal compacts the slot
func (l *Ledger) List(arguments *ListArguments, reply *ListReply) error {

	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}

	slot := ledger.List(arguments.Owner)
	reply.Assets = slot
	reply.Count = len(slot)
	return nil
}

// ---

// WithdrawArguments - chosen slot indices to release
type WithdrawArguments struct {
	Caller  account.Account `json:"caller"`
	Indices []uint64        `json:"indices"`
}

// WithdrawReply - the released descriptors in index order
type WithdrawReply struct {
	Withdrawn asset.Basket `json:"withdrawn"`
}

// Withdraw - release chosen entries back to the caller
func (l *Ledger) Withdraw(arguments *WithdrawArguments, reply *WithdrawReply) error {

	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}

	l.Log.Infof("Ledger.Withdraw: %+v", arguments)

	withdrawn, err := engine.Withdraw(arguments.Caller, arguments.Indices)
	if nil != err {
		return err
	}
	reply.Withdrawn = withdrawn
	return nil
}

// ---

// DrainArguments - arguments for a whole slot withdrawal
type DrainArguments struct {
	Caller account.Account `json:"caller"`
}

// Drain - release every entry back to the caller
func (l *Ledger) Drain(arguments *DrainArguments, reply *WithdrawReply) error {

	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}

	l.Log.Infof("Ledger.Drain: %+v", arguments)

	withdrawn, err := engine.Drain(arguments.Caller)
	if nil != err {
		return err
	}
	reply.Withdrawn = withdrawn
	return nil
}
