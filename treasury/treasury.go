// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package treasury - flat per-request fee and the accumulated balance
//
// fee amounts are integer fee units of the configured fee contract;
// only the administrator can change the fee or sweep the balance
package treasury

import (
	"encoding/binary"
	"sync"

	"github.com/holiman/uint256"

	"github.com/bitmark-inc/barterd/account"
	"github.com/bitmark-inc/barterd/asset"
	"github.com/bitmark-inc/barterd/fault"
	"github.com/bitmark-inc/barterd/gateway"
	"github.com/bitmark-inc/barterd/storage"
	"github.com/bitmark-inc/logger"
)

// treasury pool tags
var (
	feeKey     = []byte("fee")
	balanceKey = []byte("balance")
)

// globals
var globalData struct {
	sync.RWMutex
	log           *logger.L
	administrator account.Account
	feeContract   account.Account
	gateway       gateway.Gateway

	// set once during initialise
	initialised bool
}

// Initialise - set up fee collection
//
// the configured fee only seeds an empty store; a fee already on disk
// is authoritative so a restart never silently reprices requests
func Initialise(administrator account.Account, feeContract account.Account, initialFee uint64, g gateway.Gateway) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("treasury")
	globalData.log.Info("starting…")

	globalData.administrator = administrator
	globalData.feeContract = feeContract
	globalData.gateway = g

	if !storage.Pool.Treasury.Has(feeKey) {
		storage.Pool.Treasury.Put(feeKey, uint64Record(initialFee))
	}

	globalData.initialised = true
	return nil
}

// Finalise - stop fee collection
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()
	globalData.initialised = false
	return nil
}

// CurrentFee - the exact payment a creation call must carry
func CurrentFee() uint64 {
	fee, _ := storage.Pool.Treasury.GetN(feeKey)
	return fee
}

// SetFee - administrator only
func SetFee(caller account.Account, fee uint64) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}
	if caller != globalData.administrator {
		return fault.OnlyAdministrator
	}

	storage.Pool.Treasury.Put(feeKey, uint64Record(fee))
	globalData.log.Infof("fee set to: %d", fee)
	return nil
}

// Balance - accumulated fees not yet swept
func Balance() uint64 {
	balance, _ := storage.Pool.Treasury.GetN(balanceKey)
	return balance
}

// Collect - stage the credit of a paid fee
//
// the balance is read through the transaction so a credit staged
// earlier in the same operation is never lost
func Collect(trx storage.Transaction, amount uint64) {
	balance := uint64(0)
	if buffer := trx.Get(storage.Pool.Treasury, balanceKey); 8 == len(buffer) {
		balance = binary.BigEndian.Uint64(buffer)
	}
	trx.Put(storage.Pool.Treasury, balanceKey, uint64Record(balance+amount))
}

// Sweep - transfer the whole accumulated balance to a recipient
//
// a failed transfer is reported to the caller, never absorbed
func Sweep(caller account.Account, recipient account.Account) (uint64, error) {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return 0, fault.NotInitialised
	}
	if caller != globalData.administrator {
		return 0, fault.OnlyAdministrator
	}

	balance := Balance()
	if 0 == balance {
		return 0, fault.NothingToWithdraw
	}

	d := asset.NewFungible(globalData.feeContract, uint256.NewInt(balance))
	gateway.AssertTransferable(d)
	if err := globalData.gateway.PushOut(recipient, d); nil != err {
		globalData.log.Errorf("sweep of %d to %s failed: %s", balance, recipient, err)
		return 0, fault.AssetTransferFailed
	}

	storage.Pool.Treasury.Put(balanceKey, uint64Record(0))
	globalData.log.Infof("swept %d to %s", balance, recipient)
	return balance, nil
}

func uint64Record(n uint64) []byte {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, n)
	return buffer
}
