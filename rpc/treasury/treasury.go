// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package treasury

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/barterd/account"
	"github.com/bitmark-inc/barterd/engine"
	"github.com/bitmark-inc/barterd/rpc/ratelimit"
	"github.com/bitmark-inc/barterd/treasury"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitTreasury = 200
	rateBurstTreasury = 100
)

// Treasury - type for the RPC
type Treasury struct {
	Log     *logger.L
	Limiter *rate.Limiter
}

// New - create the treasury service
func New(log *logger.L) *Treasury {
	return &Treasury{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitTreasury, rateBurstTreasury),
	}
}

// ---

// FeeArguments - empty arguments
type FeeArguments struct{}

// FeeReply - current fee and unswept balance
type FeeReply struct {
	Fee     uint64 `json:"fee,string"`
	Balance uint64 `json:"balance,string"`
}

// Fee - show the payment a creation call must carry
func (t *Treasury) Fee(_ *FeeArguments, reply *FeeReply) error {

	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	reply.Fee = treasury.CurrentFee()
	reply.Balance = treasury.Balance()
	return nil
}

// ---

// SetFeeArguments - administrator fee change
type SetFeeArguments struct {
	Caller account.Account `json:"caller"`
	Fee    uint64          `json:"fee,string"`
}

// SetFeeReply - the fee now in force
type SetFeeReply struct {
	Fee uint64 `json:"fee,string"`
}

// SetFee - change the creation fee, administrator only
func (t *Treasury) SetFee(arguments *SetFeeArguments, reply *SetFeeReply) error {

	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	t.Log.Infof("Treasury.SetFee: %+v", arguments)

	if err := engine.SetFee(arguments.Caller, arguments.Fee); nil != err {
		return err
	}
	reply.Fee = arguments.Fee
	return nil
}

// ---

// SweepArguments - administrator balance payout
type SweepArguments struct {
	Caller    account.Account `json:"caller"`
	Recipient account.Account `json:"recipient"`
}

// SweepReply - amount transferred out
type SweepReply struct {
	Amount uint64 `json:"amount,string"`
}

// Sweep - transfer the accumulated fees, administrator only
func (t *Treasury) Sweep(arguments *SweepArguments, reply *SweepReply) error {

	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	t.Log.Infof("Treasury.Sweep: %+v", arguments)

	amount, err := engine.Sweep(arguments.Caller, arguments.Recipient)
	if nil != err {
		return err
	}
	reply.Amount = amount
	return nil
}
