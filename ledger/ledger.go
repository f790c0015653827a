// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - per-owner pools of withdrawable assets
//
// each owner has one slot holding the descriptors the escrow keeps on
// that owner's behalf; entries are credited by the barter engine and
// removed only by that owner's withdrawal; entry order is insertion
// order but removal compacts by swapping the last live entry into the
// removed position, so callers must never assume index stability
// across calls
package ledger

import (
	"github.com/bitmark-inc/barterd/account"
	"github.com/bitmark-inc/barterd/asset"
	"github.com/bitmark-inc/barterd/fault"
	"github.com/bitmark-inc/barterd/storage"
	"github.com/bitmark-inc/logger"
)

// List - the committed contents of an owner's slot
func List(owner account.Account) asset.Basket {
	return unpackSlot(owner, storage.Pool.Withdrawals.Get(owner.Bytes()))
}

// slot contents as seen inside a transaction, staged writes included
func list(trx storage.Transaction, owner account.Account) asset.Basket {
	return unpackSlot(owner, trx.Get(storage.Pool.Withdrawals, owner.Bytes()))
}

func unpackSlot(owner account.Account, buffer []byte) asset.Basket {
	if nil == buffer {
		return asset.Basket{}
	}
	basket, remainder, err := asset.UnpackBasket(buffer)
	if nil != err || 0 != len(remainder) {
		logger.Panicf("ledger: corrupt slot for owner: %s  error: %v", owner, err)
	}
	return basket
}

// Count - number of entries in an owner's slot
func Count(owner account.Account) int {
	return len(List(owner))
}

// Append - stage a credit of a basket to an owner's slot
//
// the slot is read through the transaction, so a second credit staged
// for the same owner in one operation extends the first instead of
// overwriting it
func Append(trx storage.Transaction, owner account.Account, basket asset.Basket) {
	if 0 == len(basket) {
		return
	}
	slot := append(list(trx, owner), basket.Copy()...)
	trx.Put(storage.Pool.Withdrawals, owner.Bytes(), slot.Pack())
}

// Remove - stage removal of the entries at the given indices
//
// indices must be strictly ascending and in range; compaction runs from
// the highest index down, swapping the current last live entry into
// each removed position before shrinking, so cost is O(len(indices))
// and the remaining entries are exactly the complement of the removed
// set, in unspecified order
//
// returns the removed descriptors in index order
func Remove(trx storage.Transaction, owner account.Account, indices []uint64) (asset.Basket, error) {
	if 0 == len(indices) {
		return nil, fault.IndicesCannotBeEmpty
	}

	for i := 1; i < len(indices); i += 1 {
		if indices[i-1] >= indices[i] {
			return nil, fault.DuplicateOrUnsortedIndices
		}
	}

	slot := list(trx, owner)

	// ascending order makes the last index the largest
	if indices[len(indices)-1] >= uint64(len(slot)) {
		return nil, fault.LedgerEntryNotFound
	}

	withdrawn := make(asset.Basket, 0, len(indices))
	for _, n := range indices {
		withdrawn = append(withdrawn, slot[n])
	}

	// swap-and-truncate, highest removed index first
	live := len(slot)
	for i := len(indices) - 1; i >= 0; i -= 1 {
		n := int(indices[i])
		live -= 1
		if n != live {
			slot[n] = slot[live]
		}
	}
	slot = slot[:live]

	storeSlot(trx, owner, slot)
	return withdrawn, nil
}

// RemoveAll - stage removal of every entry in an owner's slot
func RemoveAll(trx storage.Transaction, owner account.Account) (asset.Basket, error) {
	slot := list(trx, owner)
	if 0 == len(slot) {
		return nil, fault.NothingToWithdraw
	}
	storeSlot(trx, owner, nil)
	return slot, nil
}

func storeSlot(trx storage.Transaction, owner account.Account, slot asset.Basket) {
	if 0 == len(slot) {
		trx.Delete(storage.Pool.Withdrawals, owner.Bytes())
		return
	}
	trx.Put(storage.Pool.Withdrawals, owner.Bytes(), slot.Pack())
}
