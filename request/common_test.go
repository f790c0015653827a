// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package request_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/barterd/storage"
)

const databaseFileName = "request-test"

func removeFiles() {
	os.RemoveAll(databaseFileName + "-data.leveldb")
}

func setup(t *testing.T) {
	removeFiles()
	err := storage.Initialise(databaseFileName)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
}

func teardown(t *testing.T) {
	storage.Finalise()
	removeFiles()
}
