// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine

import (
	"github.com/bitmark-inc/barterd/account"
	"github.com/bitmark-inc/barterd/treasury"
)

// SetFee - change the creation fee, administrator only
//
// runs under the same single-operation guard as the barter operations
// so a fee change never lands between a create's fee check and its
// commit
func SetFee(caller account.Account, fee uint64) error {
	if err := enter(); nil != err {
		return err
	}
	defer leave()

	return treasury.SetFee(caller, fee)
}

// Sweep - pay the accumulated fee balance out, administrator only
//
// the guard keeps the sweep's balance read and zeroing from
// interleaving with a create staging a fee credit, so paid-out funds
// can never resurface in the balance
func Sweep(caller account.Account, recipient account.Account) (uint64, error) {
	if err := enter(); nil != err {
		return 0, err
	}
	defer leave()

	return treasury.Sweep(caller, recipient)
}
