// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package gateway - the external asset transfer collaborator
//
// the engine only ever calls this interface and reacts to success or
// failure; any failure is fatal to the enclosing operation and the
// execution environment is responsible for rolling back transfers that
// already happened within the failed call
package gateway

import (
	"github.com/bitmark-inc/barterd/account"
	"github.com/bitmark-inc/barterd/asset"
	"github.com/bitmark-inc/logger"
)

// Gateway - moves asset custody between an external owner and the escrow
type Gateway interface {

	// PullIn - take custody of one descriptor from its owner
	PullIn(from account.Account, d asset.Descriptor) error

	// PushOut - release one descriptor to a recipient
	PushOut(to account.Account, d asset.Descriptor) error
}

// AssertTransferable - guard a descriptor about to cross the gateway
//
// a wildcard sentinel or an unknown kind can never reach a transfer
// through the public surface as all inputs are validated first; hitting
// this is a programming error, not a caller error
func AssertTransferable(d asset.Descriptor) {
	if !d.Kind.IsValid() {
		logger.Panicf("gateway: transfer of unknown asset kind: %d", d.Kind)
	}
	if d.IsAnyUnit() {
		logger.Panicf("gateway: transfer of wildcard unit from contract: %s", d.Contract)
	}
}
