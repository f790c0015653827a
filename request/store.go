// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package request

import (
	"encoding/binary"

	"github.com/bitmark-inc/barterd/account"
	"github.com/bitmark-inc/barterd/fault"
	"github.com/bitmark-inc/barterd/storage"
)

// from storage/doc.go:
//
//   Requests           id                - packed barter request
//   RequestOwnerCount  requester        - number of requests created
//   RequestOwnerList   requester ++ BN  - request id, for discovery
//   Metadata           tag              - next request id

// metadata tag for the id allocator
var nextIdKey = []byte("next-request-id")

// uint64ByteSize - bytes in a big endian count record
const uint64ByteSize = 8

func uint64Key(n uint64) []byte {
	key := make([]byte, uint64ByteSize)
	binary.BigEndian.PutUint64(key, n)
	return key
}

// NextId - the id the next created request will be assigned
func NextId() uint64 {
	n, ok := storage.Pool.Metadata.GetN(nextIdKey)
	if !ok {
		return 0
	}
	return n
}

// AllocateId - take the next id and stage the increment
//
// ids are strictly increasing from zero with no gaps
func AllocateId(trx storage.Transaction) uint64 {
	id := NextId()
	trx.Put(storage.Pool.Metadata, nextIdKey, uint64Key(id+1))
	return id
}

// Store - stage a request record write
func Store(trx storage.Transaction, r *Request) {
	trx.Put(storage.Pool.Requests, uint64Key(r.Id), r.Pack())
}

// Fetch - read a request record by id
func Fetch(id uint64) (*Request, error) {
	buffer := storage.Pool.Requests.Get(uint64Key(id))
	if nil == buffer {
		return nil, fault.RequestNotFound
	}
	return Unpack(id, buffer)
}

// Exists - check a request id is assigned
func Exists(id uint64) bool {
	return storage.Pool.Requests.Has(uint64Key(id))
}

// IndexAppend - stage an append of an id to a creator's history
func IndexAppend(trx storage.Transaction, owner account.Account, id uint64) {
	count, _ := storage.Pool.RequestOwnerCount.GetN(owner.Bytes())

	oKey := append(owner.Bytes(), uint64Key(count)...)
	trx.Put(storage.Pool.RequestOwnerList, oKey, uint64Key(id))
	trx.Put(storage.Pool.RequestOwnerCount, owner.Bytes(), uint64Key(count+1))
}

// CountFor - number of requests a creator has made
func CountFor(owner account.Account) uint64 {
	count, _ := storage.Pool.RequestOwnerCount.GetN(owner.Bytes())
	return count
}

// ListFor - a page of a creator's request ids in creation order
func ListFor(owner account.Account, start uint64, count int) ([]uint64, error) {
	if count <= 0 {
		return nil, fault.InvalidCount
	}

	total := CountFor(owner)
	ids := make([]uint64, 0, count)
	for n := start; n < total && len(ids) < count; n += 1 {
		oKey := append(owner.Bytes(), uint64Key(n)...)
		id, ok := storage.Pool.RequestOwnerList.GetN(oKey)
		if !ok {
			return nil, fault.RecordCorrupt
		}
		ids = append(ids, id)
	}
	return ids, nil
}
