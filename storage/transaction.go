// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/barterd/fault"
)

// Transaction - a batch of pool writes committed as one unit
//
// Get reads through the staged writes, so a later step of an operation
// sees what an earlier step staged; nothing reaches the database until
// Commit and an aborted operation leaves the store untouched
type Transaction interface {
	Put(pool *PoolHandle, key []byte, value []byte)
	Get(pool *PoolHandle, key []byte) []byte
	Delete(pool *PoolHandle, key []byte)
	Commit() error
	Abort()
}

type transactionData struct {
	batch  *leveldb.Batch
	staged map[string][]byte // shadow of the batch, nil marks a staged delete
}

// NewDBTransaction - start a fresh batched transaction
func NewDBTransaction() (Transaction, error) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return nil, fault.NotInitialised
	}
	return &transactionData{
		batch:  new(leveldb.Batch),
		staged: make(map[string][]byte),
	}, nil
}

// Put - stage a key/value store into a pool
func (t *transactionData) Put(pool *PoolHandle, key []byte, value []byte) {
	prefixed := pool.prefixKey(key)
	t.batch.Put(prefixed, value)
	t.staged[string(prefixed)] = value
}

// Get - read a value, staged writes first then the database
func (t *transactionData) Get(pool *PoolHandle, key []byte) []byte {
	if value, ok := t.staged[string(pool.prefixKey(key))]; ok {
		return value
	}
	return pool.Get(key)
}

// Delete - stage a key removal from a pool
func (t *transactionData) Delete(pool *PoolHandle, key []byte) {
	prefixed := pool.prefixKey(key)
	t.batch.Delete(prefixed)
	t.staged[string(prefixed)] = nil
}

// Commit - atomically apply all staged writes
func (t *transactionData) Commit() error {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return fault.NotInitialised
	}
	err := poolData.db.Write(t.batch, nil)
	t.batch.Reset()
	t.staged = make(map[string][]byte)
	return err
}

// Abort - discard all staged writes
func (t *transactionData) Abort() {
	t.batch.Reset()
	t.staged = make(map[string][]byte)
}
