// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine

import (
	"github.com/bitmark-inc/barterd/account"
	"github.com/bitmark-inc/barterd/asset"
	"github.com/bitmark-inc/barterd/fault"
	"github.com/bitmark-inc/barterd/gateway"
	"github.com/bitmark-inc/barterd/ledger"
	"github.com/bitmark-inc/barterd/messagebus"
	"github.com/bitmark-inc/barterd/storage"
)

// Withdraw - release chosen slot entries back to their owner
//
// indices address the caller's own slot, must be strictly ascending and
// duplicate free; a rejected index list never mutates the slot; the
// surviving entries are the exact complement of the withdrawn set, in
// unspecified order
func Withdraw(caller account.Account, indices []uint64) (asset.Basket, error) {
	if err := enter(); nil != err {
		return nil, err
	}
	defer leave()

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return nil, err
	}

	withdrawn, err := ledger.Remove(trx, caller, indices)
	if nil != err {
		trx.Abort()
		return nil, err
	}

	return finishWithdrawal(trx, caller, withdrawn)
}

// Drain - release every slot entry back to its owner
func Drain(caller account.Account) (asset.Basket, error) {
	if err := enter(); nil != err {
		return nil, err
	}
	defer leave()

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return nil, err
	}

	withdrawn, err := ledger.RemoveAll(trx, caller)
	if nil != err {
		trx.Abort()
		return nil, err
	}

	return finishWithdrawal(trx, caller, withdrawn)
}

// push every withdrawn descriptor out, then commit the slot shrink
func finishWithdrawal(trx storage.Transaction, caller account.Account, withdrawn asset.Basket) (asset.Basket, error) {
	for _, d := range withdrawn {
		gateway.AssertTransferable(d)
		if err := globalData.gateway.PushOut(caller, d); nil != err {
			trx.Abort()
			globalData.log.Warnf("withdraw: push out failed for %s: %s", caller, err)
			return nil, fault.AssetTransferFailed
		}
	}

	if err := trx.Commit(); nil != err {
		return nil, err
	}
	globalData.withdrawal.Add(uint64(len(withdrawn)))

	globalData.log.Infof("withdrawal of %d entries by: %s", len(withdrawn), caller)
	messagebus.Send(messagebus.Notification{
		Kind:         messagebus.Withdrawn,
		Counterparty: caller,
		Count:        len(withdrawn),
	})

	return withdrawn, nil
}
