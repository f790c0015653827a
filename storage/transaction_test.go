// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"bytes"
	"testing"

	"github.com/bitmark-inc/barterd/storage"
)

func TestTransactionCommit(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.TestData

	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("new transaction error: %s", err)
	}

	trx.Put(p, []byte("key-one"), []byte("data-one"))
	trx.Put(p, []byte("key-two"), []byte("data-two"))

	// staged writes are invisible before commit
	if p.Has([]byte("key-one")) {
		t.Error("staged write visible before commit")
	}

	err = trx.Commit()
	if nil != err {
		t.Fatalf("commit error: %s", err)
	}

	d := p.Get([]byte("key-one"))
	if !bytes.Equal([]byte("data-one"), d) {
		t.Errorf("mismatch after commit, got: %q", d)
	}
}

func TestTransactionAbort(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.TestData
	p.Put([]byte("existing"), []byte("before"))

	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("new transaction error: %s", err)
	}

	trx.Put(p, []byte("key-one"), []byte("data-one"))
	trx.Delete(p, []byte("existing"))
	trx.Abort()

	if p.Has([]byte("key-one")) {
		t.Error("aborted write was applied")
	}
	d := p.Get([]byte("existing"))
	if !bytes.Equal([]byte("before"), d) {
		t.Errorf("aborted delete was applied, got: %q", d)
	}
}

func TestTransactionReadsStagedWrites(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.TestData
	p.Put([]byte("committed"), []byte("old"))

	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("new transaction error: %s", err)
	}

	// an unstaged key falls through to the database
	d := trx.Get(p, []byte("committed"))
	if !bytes.Equal([]byte("old"), d) {
		t.Errorf("fall-through read, got: %q", d)
	}

	// a staged write shadows the committed value
	trx.Put(p, []byte("committed"), []byte("new"))
	d = trx.Get(p, []byte("committed"))
	if !bytes.Equal([]byte("new"), d) {
		t.Errorf("staged read, got: %q", d)
	}

	// a staged delete reads as absent
	trx.Delete(p, []byte("committed"))
	if d := trx.Get(p, []byte("committed")); nil != d {
		t.Errorf("staged delete still reads: %q", d)
	}

	trx.Abort()
	d = p.Get([]byte("committed"))
	if !bytes.Equal([]byte("old"), d) {
		t.Errorf("abort leaked staged state, got: %q", d)
	}
}

func TestTransactionDelete(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.TestData
	p.Put([]byte("doomed"), []byte("data"))

	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("new transaction error: %s", err)
	}
	trx.Delete(p, []byte("doomed"))
	err = trx.Commit()
	if nil != err {
		t.Fatalf("commit error: %s", err)
	}

	if p.Has([]byte("doomed")) {
		t.Error("committed delete was not applied")
	}
}
