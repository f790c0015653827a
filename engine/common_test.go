// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/bitmark-inc/barterd/account"
	"github.com/bitmark-inc/barterd/engine"
	"github.com/bitmark-inc/barterd/gateway"
	"github.com/bitmark-inc/barterd/storage"
	"github.com/bitmark-inc/barterd/treasury"
	"github.com/bitmark-inc/logger"
)

// test database file
const (
	databaseFileName = "engine-test"
	logFileName      = "engine-test.log"
	currentFee       = 10
)

// well known test accounts
var (
	administrator = testAccount(0xad)
	feeContract   = testAccount(0xfc)
	alice         = testAccount(0x01)
	bob           = testAccount(0x02)
	tokenX        = testAccount(0xa1)
	tokenY        = testAccount(0xb2)
)

func testAccount(fill byte) account.Account {
	var a account.Account
	for i := 0; i < account.Size; i += 1 {
		a[i] = fill
	}
	return a
}

// remove all files created by test
func removeFiles() {
	os.RemoveAll(databaseFileName + "-data.leveldb")
	os.Remove(logFileName)
}

func TestMain(m *testing.M) {
	removeFiles()

	logging := logger.Configuration{
		Directory: ".",
		File:      logFileName,
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	if err := logger.Initialise(logging); nil != err {
		panic(fmt.Sprintf("logger initialise failed: %s", err))
	}

	rc := m.Run()

	logger.Finalise()
	removeFiles()
	os.Exit(rc)
}

// configure for testing
func setup(t *testing.T, g gateway.Gateway) {
	os.RemoveAll(databaseFileName + "-data.leveldb")

	if err := storage.Initialise(databaseFileName); nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
	if err := treasury.Initialise(administrator, feeContract, currentFee, g); nil != err {
		t.Fatalf("treasury initialise error: %s", err)
	}
	if err := engine.Initialise(g); nil != err {
		t.Fatalf("engine initialise error: %s", err)
	}
}

// post test cleanup
func teardown(t *testing.T) {
	engine.Finalise()
	treasury.Finalise()
	storage.Finalise()
	os.RemoveAll(databaseFileName + "-data.leveldb")
}
