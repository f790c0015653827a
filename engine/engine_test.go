// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine_test

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/holiman/uint256"

	"github.com/bitmark-inc/barterd/account"
	"github.com/bitmark-inc/barterd/asset"
	"github.com/bitmark-inc/barterd/engine"
	"github.com/bitmark-inc/barterd/fault"
	"github.com/bitmark-inc/barterd/gateway/mocks"
	"github.com/bitmark-inc/barterd/ledger"
	"github.com/bitmark-inc/barterd/request"
)

func assertBasketEqual(t *testing.T, expected asset.Basket, actual asset.Basket) {
	t.Helper()
	if len(expected) != len(actual) {
		t.Fatalf("basket length mismatch: expected: %d  actual: %d", len(expected), len(actual))
	}
	for i, d := range expected {
		if !d.Equal(actual[i]) {
			t.Fatalf("basket entry: %d mismatch: expected: %v  actual: %v", i, d, actual[i])
		}
	}
}

// the whole happy path: alice escrows tokens against a wildcard
// request, bob satisfies it with a concrete unit, both sides end up
// with the other's assets in their withdrawable slots
func TestCreateAndAccept(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	g := mocks.NewMockGateway(ctl)
	setup(t, g)
	defer teardown(t)

	offered := asset.Basket{asset.NewFungible(tokenX, uint256.NewInt(100))}
	requested := asset.Basket{asset.NewNonFungible(tokenY, asset.AnyUnit())}
	proposal := asset.Basket{asset.NewNonFungible(tokenY, uint256.NewInt(7))}

	g.EXPECT().PullIn(alice, offered[0]).Return(nil)
	id, err := engine.CreateRequest(alice, offered, requested, currentFee)
	if nil != err {
		t.Fatalf("create error: %s", err)
	}
	if 0 != id {
		t.Fatalf("first id expected: 0  actual: %d", id)
	}

	r, err := request.Fetch(id)
	if nil != err {
		t.Fatalf("fetch error: %s", err)
	}
	if request.Pending != r.State {
		t.Fatalf("state expected: %s  actual: %s", request.Pending, r.State)
	}

	g.EXPECT().PullIn(bob, proposal[0]).Return(nil)
	if err := engine.Accept(bob, id, proposal); nil != err {
		t.Fatalf("accept error: %s", err)
	}

	r, err = request.Fetch(id)
	if nil != err {
		t.Fatalf("fetch error: %s", err)
	}
	if request.Completed != r.State {
		t.Fatalf("state expected: %s  actual: %s", request.Completed, r.State)
	}

	// requester receives the concrete proposal, accepter the offer
	assertBasketEqual(t, proposal, ledger.List(alice))
	assertBasketEqual(t, offered, ledger.List(bob))
}

func TestCreateValidation(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	g := mocks.NewMockGateway(ctl)
	setup(t, g)
	defer teardown(t)

	offered := asset.Basket{asset.NewFungible(tokenX, uint256.NewInt(100))}
	requested := asset.Basket{asset.NewNonFungible(tokenY, asset.AnyUnit())}

	_, err := engine.CreateRequest(alice, offered, requested, currentFee+1)
	if fault.IncorrectFee != err {
		t.Fatalf("wrong fee expected: %s  actual: %v", fault.IncorrectFee, err)
	}

	_, err = engine.CreateRequest(alice, asset.Basket{}, requested, currentFee)
	if fault.OfferCannotBeEmpty != err {
		t.Fatalf("empty offer expected: %s  actual: %v", fault.OfferCannotBeEmpty, err)
	}

	wildcardOffer := asset.Basket{asset.NewNonFungible(tokenY, asset.AnyUnit())}
	_, err = engine.CreateRequest(alice, wildcardOffer, requested, currentFee)
	if fault.WildcardNotTransferable != err {
		t.Fatalf("wildcard offer expected: %s  actual: %v", fault.WildcardNotTransferable, err)
	}

	// nothing reached the gateway or the store
	if 0 != request.NextId() {
		t.Fatalf("id allocator moved to: %d", request.NextId())
	}
}

func TestCreateTransferFailure(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	g := mocks.NewMockGateway(ctl)
	setup(t, g)
	defer teardown(t)

	offered := asset.Basket{
		asset.NewFungible(tokenX, uint256.NewInt(100)),
		asset.NewNonFungible(tokenY, uint256.NewInt(3)),
	}

	g.EXPECT().PullIn(alice, offered[0]).Return(nil)
	g.EXPECT().PullIn(alice, offered[1]).Return(errors.New("insufficient balance"))

	_, err := engine.CreateRequest(alice, offered, asset.Basket{}, currentFee)
	if fault.AssetTransferFailed != err {
		t.Fatalf("expected: %s  actual: %v", fault.AssetTransferFailed, err)
	}

	// failed escrow leaves no trace
	if 0 != request.NextId() {
		t.Fatalf("id allocator moved to: %d", request.NextId())
	}
	if request.Exists(0) {
		t.Fatal("request record exists after failed create")
	}
	if 0 != request.CountFor(alice) {
		t.Fatalf("owner index count: %d", request.CountFor(alice))
	}
}

func TestCancel(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	g := mocks.NewMockGateway(ctl)
	setup(t, g)
	defer teardown(t)

	offered := asset.Basket{asset.NewFungible(tokenX, uint256.NewInt(55))}

	g.EXPECT().PullIn(alice, offered[0]).Return(nil)
	id, err := engine.CreateRequest(alice, offered, asset.Basket{}, currentFee)
	if nil != err {
		t.Fatalf("create error: %s", err)
	}

	if err := engine.Cancel(bob, id); fault.OnlyRequester != err {
		t.Fatalf("foreign cancel expected: %s  actual: %v", fault.OnlyRequester, err)
	}
	if err := engine.Cancel(alice, id+1); fault.RequestNotFound != err {
		t.Fatalf("unknown id expected: %s  actual: %v", fault.RequestNotFound, err)
	}

	if err := engine.Cancel(alice, id); nil != err {
		t.Fatalf("cancel error: %s", err)
	}

	r, err := request.Fetch(id)
	if nil != err {
		t.Fatalf("fetch error: %s", err)
	}
	if request.Cancelled != r.State {
		t.Fatalf("state expected: %s  actual: %s", request.Cancelled, r.State)
	}
	assertBasketEqual(t, offered, ledger.List(alice))

	// terminal states reject a second transition
	if err := engine.Cancel(alice, id); fault.RequestNotPending != err {
		t.Fatalf("second cancel expected: %s  actual: %v", fault.RequestNotPending, err)
	}
	if err := engine.Accept(bob, id, asset.Basket{}); fault.RequestNotPending != err {
		t.Fatalf("accept cancelled expected: %s  actual: %v", fault.RequestNotPending, err)
	}
}

// a requester accepting the own request gets both baskets; the second
// credit must extend the first, not overwrite it
func TestAcceptBySelf(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	g := mocks.NewMockGateway(ctl)
	setup(t, g)
	defer teardown(t)

	offered := asset.Basket{asset.NewFungible(tokenX, uint256.NewInt(100))}
	requested := asset.Basket{asset.NewNonFungible(tokenY, asset.AnyUnit())}
	proposal := asset.Basket{asset.NewNonFungible(tokenY, uint256.NewInt(7))}

	g.EXPECT().PullIn(alice, offered[0]).Return(nil)
	id, err := engine.CreateRequest(alice, offered, requested, currentFee)
	if nil != err {
		t.Fatalf("create error: %s", err)
	}

	g.EXPECT().PullIn(alice, proposal[0]).Return(nil)
	if err := engine.Accept(alice, id, proposal); nil != err {
		t.Fatalf("accept error: %s", err)
	}

	// both sides of the exchange land in the one slot
	slot := ledger.List(alice)
	if 2 != len(slot) {
		t.Fatalf("slot size expected: 2  actual: %d  contents: %v", len(slot), slot)
	}
	assertBasketEqual(t, asset.Basket{proposal[0], offered[0]}, slot)
}

// a basket too large for one packed record is rejected before any
// asset is escrowed
func TestCreateOversizedBasket(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	g := mocks.NewMockGateway(ctl)
	setup(t, g)
	defer teardown(t)

	oversized := make(asset.Basket, 65536)
	for i := range oversized {
		oversized[i] = asset.NewFungible(tokenX, uint256.NewInt(1))
	}

	_, err := engine.CreateRequest(alice, oversized, asset.Basket{}, currentFee)
	if fault.InvalidCount != err {
		t.Fatalf("oversized offer expected: %s  actual: %v", fault.InvalidCount, err)
	}

	offered := asset.Basket{asset.NewFungible(tokenX, uint256.NewInt(1))}
	_, err = engine.CreateRequest(alice, offered, oversized, currentFee)
	if fault.InvalidCount != err {
		t.Fatalf("oversized request expected: %s  actual: %v", fault.InvalidCount, err)
	}

	// nothing reached the gateway or the store
	if 0 != request.NextId() {
		t.Fatalf("id allocator moved to: %d", request.NextId())
	}
}

func TestAcceptValidation(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	g := mocks.NewMockGateway(ctl)
	setup(t, g)
	defer teardown(t)

	offered := asset.Basket{asset.NewFungible(tokenX, uint256.NewInt(100))}
	requested := asset.Basket{asset.NewNonFungible(tokenY, uint256.NewInt(5))}

	g.EXPECT().PullIn(alice, offered[0]).Return(nil)
	id, err := engine.CreateRequest(alice, offered, requested, currentFee)
	if nil != err {
		t.Fatalf("create error: %s", err)
	}

	err = engine.Accept(bob, id, asset.Basket{})
	if fault.ProposalRequestLengthMismatch != err {
		t.Fatalf("short proposal expected: %s  actual: %v", fault.ProposalRequestLengthMismatch, err)
	}

	wrongUnit := asset.Basket{asset.NewNonFungible(tokenY, uint256.NewInt(6))}
	if err := engine.Accept(bob, id, wrongUnit); fault.ProposalNotValid != err {
		t.Fatalf("wrong unit expected: %s  actual: %v", fault.ProposalNotValid, err)
	}

	wrongContract := asset.Basket{asset.NewNonFungible(tokenX, uint256.NewInt(5))}
	if err := engine.Accept(bob, id, wrongContract); fault.ProposalNotValid != err {
		t.Fatalf("wrong contract expected: %s  actual: %v", fault.ProposalNotValid, err)
	}

	wildcard := asset.Basket{asset.NewNonFungible(tokenY, asset.AnyUnit())}
	if err := engine.Accept(bob, id, wildcard); fault.WildcardNotTransferable != err {
		t.Fatalf("wildcard proposal expected: %s  actual: %v", fault.WildcardNotTransferable, err)
	}

	// rejected proposals never touched the request
	r, err := request.Fetch(id)
	if nil != err {
		t.Fatalf("fetch error: %s", err)
	}
	if request.Pending != r.State {
		t.Fatalf("state expected: %s  actual: %s", request.Pending, r.State)
	}
}

func TestAcceptOnlyOnce(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	g := mocks.NewMockGateway(ctl)
	setup(t, g)
	defer teardown(t)

	offered := asset.Basket{asset.NewFungible(tokenX, uint256.NewInt(100))}
	requested := asset.Basket{asset.NewNonFungible(tokenY, asset.AnyUnit())}
	proposal := asset.Basket{asset.NewNonFungible(tokenY, uint256.NewInt(9))}

	g.EXPECT().PullIn(alice, offered[0]).Return(nil)
	id, err := engine.CreateRequest(alice, offered, requested, currentFee)
	if nil != err {
		t.Fatalf("create error: %s", err)
	}

	g.EXPECT().PullIn(bob, proposal[0]).Return(nil)
	if err := engine.Accept(bob, id, proposal); nil != err {
		t.Fatalf("accept error: %s", err)
	}

	if err := engine.Accept(bob, id, proposal); fault.RequestNotPending != err {
		t.Fatalf("second accept expected: %s  actual: %v", fault.RequestNotPending, err)
	}
}

func TestAcceptTransferFailure(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	g := mocks.NewMockGateway(ctl)
	setup(t, g)
	defer teardown(t)

	offered := asset.Basket{asset.NewFungible(tokenX, uint256.NewInt(100))}
	requested := asset.Basket{asset.NewNonFungible(tokenY, asset.AnyUnit())}
	proposal := asset.Basket{asset.NewNonFungible(tokenY, uint256.NewInt(9))}

	g.EXPECT().PullIn(alice, offered[0]).Return(nil)
	id, err := engine.CreateRequest(alice, offered, requested, currentFee)
	if nil != err {
		t.Fatalf("create error: %s", err)
	}

	g.EXPECT().PullIn(bob, proposal[0]).Return(errors.New("not the owner"))
	if err := engine.Accept(bob, id, proposal); fault.AssetTransferFailed != err {
		t.Fatalf("expected: %s  actual: %v", fault.AssetTransferFailed, err)
	}

	// the request stays open and no credits were made
	r, err := request.Fetch(id)
	if nil != err {
		t.Fatalf("fetch error: %s", err)
	}
	if request.Pending != r.State {
		t.Fatalf("state expected: %s  actual: %s", request.Pending, r.State)
	}
	if 0 != ledger.Count(alice) || 0 != ledger.Count(bob) {
		t.Fatal("ledger credited after failed accept")
	}
}

func TestWithdraw(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	g := mocks.NewMockGateway(ctl)
	setup(t, g)
	defer teardown(t)

	offered := asset.Basket{
		asset.NewFungible(tokenX, uint256.NewInt(100)),
		asset.NewNonFungible(tokenY, uint256.NewInt(3)),
		asset.NewNonFungible(tokenY, uint256.NewInt(4)),
	}

	// cancellation is the simplest way to fill a slot
	g.EXPECT().PullIn(alice, gomock.Any()).Return(nil).Times(len(offered))
	id, err := engine.CreateRequest(alice, offered, asset.Basket{}, currentFee)
	if nil != err {
		t.Fatalf("create error: %s", err)
	}
	if err := engine.Cancel(alice, id); nil != err {
		t.Fatalf("cancel error: %s", err)
	}

	// bad index lists never move assets
	if _, err := engine.Withdraw(alice, []uint64{}); fault.IndicesCannotBeEmpty != err {
		t.Fatalf("empty indices expected: %s  actual: %v", fault.IndicesCannotBeEmpty, err)
	}
	if _, err := engine.Withdraw(alice, []uint64{1, 1}); fault.DuplicateOrUnsortedIndices != err {
		t.Fatalf("duplicate indices expected: %s  actual: %v", fault.DuplicateOrUnsortedIndices, err)
	}
	if _, err := engine.Withdraw(alice, []uint64{0, 3}); fault.LedgerEntryNotFound != err {
		t.Fatalf("out of range expected: %s  actual: %v", fault.LedgerEntryNotFound, err)
	}

	g.EXPECT().PushOut(alice, offered[1]).Return(nil)
	withdrawn, err := engine.Withdraw(alice, []uint64{1})
	if nil != err {
		t.Fatalf("withdraw error: %s", err)
	}
	assertBasketEqual(t, asset.Basket{offered[1]}, withdrawn)
	if 2 != ledger.Count(alice) {
		t.Fatalf("slot size expected: 2  actual: %d", ledger.Count(alice))
	}

	// drain pushes out everything that is left
	g.EXPECT().PushOut(alice, gomock.Any()).Return(nil).Times(2)
	withdrawn, err = engine.Drain(alice)
	if nil != err {
		t.Fatalf("drain error: %s", err)
	}
	if 2 != len(withdrawn) {
		t.Fatalf("drained expected: 2  actual: %d", len(withdrawn))
	}
	if 0 != ledger.Count(alice) {
		t.Fatalf("slot not empty: %d", ledger.Count(alice))
	}

	if _, err := engine.Drain(alice); fault.NothingToWithdraw != err {
		t.Fatalf("empty drain expected: %s  actual: %v", fault.NothingToWithdraw, err)
	}
}

func TestWithdrawTransferFailure(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	g := mocks.NewMockGateway(ctl)
	setup(t, g)
	defer teardown(t)

	offered := asset.Basket{asset.NewFungible(tokenX, uint256.NewInt(42))}

	g.EXPECT().PullIn(alice, offered[0]).Return(nil)
	id, err := engine.CreateRequest(alice, offered, asset.Basket{}, currentFee)
	if nil != err {
		t.Fatalf("create error: %s", err)
	}
	if err := engine.Cancel(alice, id); nil != err {
		t.Fatalf("cancel error: %s", err)
	}

	g.EXPECT().PushOut(alice, offered[0]).Return(errors.New("paused"))
	if _, err := engine.Withdraw(alice, []uint64{0}); fault.AssetTransferFailed != err {
		t.Fatalf("expected: %s  actual: %v", fault.AssetTransferFailed, err)
	}

	// the slot is untouched and a retry succeeds
	assertBasketEqual(t, offered, ledger.List(alice))
	g.EXPECT().PushOut(alice, offered[0]).Return(nil)
	if _, err := engine.Withdraw(alice, []uint64{0}); nil != err {
		t.Fatalf("retry error: %s", err)
	}
	if 0 != ledger.Count(alice) {
		t.Fatalf("slot not empty: %d", ledger.Count(alice))
	}
}

// a transfer callback trying to call back into the engine gets an
// error instead of interleaving with the operation in flight
func TestReentrancyRejected(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	g := mocks.NewMockGateway(ctl)
	setup(t, g)
	defer teardown(t)

	offered := asset.Basket{asset.NewFungible(tokenX, uint256.NewInt(100))}

	var inner error
	g.EXPECT().PullIn(alice, offered[0]).DoAndReturn(
		func(from account.Account, d asset.Descriptor) error {
			inner = engine.Cancel(from, 0)
			return nil
		})

	id, err := engine.CreateRequest(alice, offered, asset.Basket{}, currentFee)
	if nil != err {
		t.Fatalf("create error: %s", err)
	}
	if fault.NoReentrantCall != inner {
		t.Fatalf("reentrant call expected: %s  actual: %v", fault.NoReentrantCall, inner)
	}

	// the outer operation still completed normally
	if !request.Exists(id) {
		t.Fatal("request record missing")
	}
}

// a sweep overlapping a create is refused by the operation guard, so
// the balance a create stages can never resurrect funds a concurrent
// sweep already paid out
func TestSweepDuringCreateRejected(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	g := mocks.NewMockGateway(ctl)
	setup(t, g)
	defer teardown(t)

	offered := asset.Basket{asset.NewFungible(tokenX, uint256.NewInt(100))}

	var inner error
	g.EXPECT().PullIn(alice, offered[0]).DoAndReturn(
		func(from account.Account, d asset.Descriptor) error {
			_, inner = engine.Sweep(administrator, bob)
			return nil
		})

	if _, err := engine.CreateRequest(alice, offered, asset.Basket{}, currentFee); nil != err {
		t.Fatalf("create error: %s", err)
	}
	if fault.NoReentrantCall != inner {
		t.Fatalf("overlapping sweep expected: %s  actual: %v", fault.NoReentrantCall, inner)
	}

	// the collected fee survived and sweeps normally afterwards
	g.EXPECT().PushOut(bob, asset.NewFungible(feeContract, uint256.NewInt(currentFee))).Return(nil)
	amount, err := engine.Sweep(administrator, bob)
	if nil != err {
		t.Fatalf("sweep error: %s", err)
	}
	if currentFee != amount {
		t.Fatalf("swept amount expected: %d  actual: %d", currentFee, amount)
	}
}
