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
)

// Accept - complete a pending request with a matching proposal
//
// the proposal must line up with the requested basket index by index:
// identical kind and contract, exact amount for fungible entries, exact
// unit id for non-fungible entries unless the request carries the
// wildcard sentinel at that position
//
// on success the concrete proposal is credited to the original
// requester and the stored offered basket to the accepting caller; the
// Pending check and the Completed write share one guarded operation so
// only one acceptance can ever succeed per request
func Accept(caller account.Account, id uint64, proposed asset.Basket) error {
	if err := enter(); nil != err {
		return err
	}
	defer leave()

	r, err := request.Fetch(id)
	if nil != err {
		return err
	}
	if request.Pending != r.State {
		return fault.RequestNotPending
	}

	if len(proposed) != len(r.Requested) {
		return fault.ProposalRequestLengthMismatch
	}
	if err := proposed.Check(); nil != err {
		return err
	}
	if !proposed.IsTransferable() {
		return fault.WildcardNotTransferable
	}
	for i, want := range r.Requested {
		if !want.Match(proposed[i]) {
			return fault.ProposalNotValid
		}
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	// pull the proposed basket into escrow, all or nothing; a failed
	// transfer leaves the request Pending and unmutated
	for _, d := range proposed {
		gateway.AssertTransferable(d)
		if err := globalData.gateway.PullIn(caller, d); nil != err {
			trx.Abort()
			globalData.log.Warnf("accept: pull in failed for %s: %s", caller, err)
			return fault.AssetTransferFailed
		}
	}
	globalData.escrowIn.Add(uint64(len(proposed)))

	r.State = request.Completed
	request.Store(trx, r)

	// concrete assets each side actually receives
	ledger.Append(trx, r.Requester, proposed)
	ledger.Append(trx, caller, r.Offered)

	if err := trx.Commit(); nil != err {
		return err
	}
	credits := len(proposed) + len(r.Offered)
	globalData.ledgerCredit.Add(uint64(credits))

	globalData.log.Infof("accepted request: %d  by: %s", id, caller)
	messagebus.Send(messagebus.Notification{
		Kind:         messagebus.Accepted,
		RequestId:    id,
		Requester:    r.Requester,
		Counterparty: caller,
	})
	messagebus.Send(messagebus.Notification{
		Kind:  messagebus.EscrowIn,
		Count: len(proposed),
	})
	messagebus.Send(messagebus.Notification{
		Kind:  messagebus.LedgerCredit,
		Count: credits,
	})

	return nil
}
