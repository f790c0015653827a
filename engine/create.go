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
	"github.com/bitmark-inc/barterd/request"
	"github.com/bitmark-inc/barterd/storage"
	"github.com/bitmark-inc/barterd/treasury"
)

// CreateRequest - escrow an offered basket against a requested one
//
// the payment must equal the current fee exactly; the offered basket
// must be non-empty and concrete; the requested basket may be empty (a
// pure gift) and may carry wildcard unit ids
//
// on success every offered descriptor has been pulled into escrow, the
// new id is recorded Pending under the caller's history, and the id is
// returned
func CreateRequest(requester account.Account, offered asset.Basket, requested asset.Basket, payment uint64) (uint64, error) {
	if err := enter(); nil != err {
		return 0, err
	}
	defer leave()

	log := globalData.log

	if payment != treasury.CurrentFee() {
		return 0, fault.IncorrectFee
	}

	if 0 == len(offered) {
		return 0, fault.OfferCannotBeEmpty
	}
	if err := offered.Check(); nil != err {
		return 0, err
	}
	if err := requested.Check(); nil != err {
		return 0, err
	}
	if !offered.IsTransferable() {
		return 0, fault.WildcardNotTransferable
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return 0, err
	}

	// pull the whole offered basket into escrow, all or nothing
	for _, d := range offered {
		gateway.AssertTransferable(d)
		if err := globalData.gateway.PullIn(requester, d); nil != err {
			trx.Abort()
			log.Warnf("create: pull in failed for %s: %s", requester, err)
			return 0, fault.AssetTransferFailed
		}
	}
	globalData.escrowIn.Add(uint64(len(offered)))

	id := request.AllocateId(trx)
	request.Store(trx, &request.Request{
		Id:        id,
		Requester: requester,
		Offered:   offered.Copy(),
		Requested: requested.Copy(),
		State:     request.Pending,
	})
	request.IndexAppend(trx, requester, id)
	treasury.Collect(trx, payment)

	if err := trx.Commit(); nil != err {
		return 0, err
	}

	log.Infof("created request: %d  requester: %s", id, requester)
	messagebus.Send(messagebus.Notification{
		Kind:      messagebus.Created,
		RequestId: id,
		Requester: requester,
	})
	messagebus.Send(messagebus.Notification{
		Kind:  messagebus.EscrowIn,
		Count: len(offered),
	})

	return id, nil
}

// Cancel - re-label a pending request's escrowed basket as withdrawable
//
// only the original requester can cancel and only while Pending; no
// assets move, the offered basket is credited back to the requester's
// withdrawable slot
func Cancel(caller account.Account, id uint64) error {
	if err := enter(); nil != err {
		return err
	}
	defer leave()

	r, err := request.Fetch(id)
	if nil != err {
		return err
	}
	if caller != r.Requester {
		return fault.OnlyRequester
	}
	if request.Pending != r.State {
		return fault.RequestNotPending
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	r.State = request.Cancelled
	request.Store(trx, r)
	ledger.Append(trx, r.Requester, r.Offered)

	if err := trx.Commit(); nil != err {
		return err
	}
	globalData.ledgerCredit.Add(uint64(len(r.Offered)))

	globalData.log.Infof("cancelled request: %d", id)
	messagebus.Send(messagebus.Notification{
		Kind:      messagebus.Cancelled,
		RequestId: id,
		Requester: r.Requester,
	})
	messagebus.Send(messagebus.Notification{
		Kind:  messagebus.LedgerCredit,
		Count: len(r.Offered),
	})

	return nil
}
