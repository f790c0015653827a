// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package engine - orchestrates the barter request lifecycle
//
// the engine is the only component allowed to mutate the request store
// and the withdrawable ledger together; each public operation runs to
// completion or not at all: reads and validation happen first, gateway
// transfers next, and all pool writes are committed as one batch only
// after the last transfer succeeded
package engine

import (
	"sync"
	"sync/atomic"

	"github.com/bitmark-inc/barterd/counter"
	"github.com/bitmark-inc/barterd/fault"
	"github.com/bitmark-inc/barterd/gateway"
	"github.com/bitmark-inc/logger"
)

// globals
var globalData struct {
	sync.RWMutex
	log     *logger.L
	gateway gateway.Gateway

	// non-reentrancy guard, see enter()
	entered uint32

	// observational counters
	escrowIn     counter.Counter
	ledgerCredit counter.Counter
	withdrawal   counter.Counter

	// set once during initialise
	initialised bool
}

// Initialise - connect the engine to its transfer collaborator
func Initialise(g gateway.Gateway) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("engine")
	globalData.log.Info("starting…")

	globalData.gateway = g
	globalData.initialised = true
	return nil
}

// Finalise - shut down the engine
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()
	globalData.initialised = false
	return nil
}

// Counts - totals of escrow inflows, ledger credits and withdrawals
func Counts() (uint64, uint64, uint64) {
	return globalData.escrowIn.Uint64(),
		globalData.ledgerCredit.Uint64(),
		globalData.withdrawal.Uint64()
}

// claim the engine for one state-mutating operation
//
// an untrusted transfer callback re-entering the engine, or a second
// call overlapping the first, fails here instead of interleaving with
// an operation in flight
func enter() error {
	globalData.RLock()
	initialised := globalData.initialised
	globalData.RUnlock()
	if !initialised {
		return fault.NotInitialised
	}

	if !atomic.CompareAndSwapUint32(&globalData.entered, 0, 1) {
		return fault.NoReentrantCall
	}
	return nil
}

func leave() {
	atomic.StoreUint32(&globalData.entered, 0)
}
