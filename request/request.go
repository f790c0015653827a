// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package request - barter request records and their store
//
// a request is created Pending and moves exactly once to Completed or
// Cancelled; terminal records are immutable and retained permanently
package request

import (
	"github.com/bitmark-inc/barterd/account"
	"github.com/bitmark-inc/barterd/asset"
	"github.com/bitmark-inc/barterd/fault"
)

// State - lifecycle state of a barter request
type State byte

// possible states
const (
	Pending State = iota
	Completed
	Cancelled
	stateLimit // one greater than the last valid state
)

// IsValid - check state is in the known domain
func (state State) IsValid() bool {
	return state < stateLimit
}

// String - state represented as a string
func (state State) String() string {
	switch state {
	case Pending:
		return "Pending"
	case Completed:
		return "Completed"
	case Cancelled:
		return "Cancelled"
	default:
		return "*Unknown*"
	}
}

// MarshalText - for JSON encoding
func (state State) MarshalText() ([]byte, error) {
	return []byte(state.String()), nil
}

// Request - one barter request
//
// Offered exactly mirrors the basket pulled into escrow at creation;
// Requested is the pattern a proposal is matched against and may carry
// wildcard unit ids
type Request struct {
	Id        uint64          `json:"id,string"`
	Requester account.Account `json:"requester"`
	Offered   asset.Basket    `json:"offered"`
	Requested asset.Basket    `json:"requested"`
	State     State           `json:"state"`
}

// Pack - binary record for storage
//
// layout: requester(20) || state(1) || offered basket || requested basket
// the id is the storage key and is not repeated in the record
func (r *Request) Pack() []byte {
	buffer := make([]byte, 0, account.Size+1+len(r.Offered.Pack())+len(r.Requested.Pack()))
	buffer = append(buffer, r.Requester.Bytes()...)
	buffer = append(buffer, byte(r.State))
	buffer = append(buffer, r.Offered.Pack()...)
	buffer = append(buffer, r.Requested.Pack()...)
	return buffer
}

// Unpack - inverse of Pack
func Unpack(id uint64, buffer []byte) (*Request, error) {
	if len(buffer) < account.Size+1 {
		return nil, fault.RecordCorrupt
	}

	r := &Request{Id: id}
	copy(r.Requester[:], buffer[:account.Size])
	r.State = State(buffer[account.Size])
	if !r.State.IsValid() {
		return nil, fault.RecordCorrupt
	}

	offered, remainder, err := asset.UnpackBasket(buffer[account.Size+1:])
	if nil != err {
		return nil, err
	}
	requested, remainder, err := asset.UnpackBasket(remainder)
	if nil != err {
		return nil, err
	}
	if 0 != len(remainder) {
		return nil, fault.RecordCorrupt
	}

	r.Offered = offered
	r.Requested = requested
	return r, nil
}
