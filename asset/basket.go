// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"encoding/binary"

	"github.com/holiman/uint256"

	"github.com/bitmark-inc/barterd/account"
	"github.com/bitmark-inc/barterd/fault"
)

// Basket - an ordered sequence of descriptors exchanged as a unit
type Basket []Descriptor

// maximum descriptors in one packed basket (fits the uint16 count)
const maximumBasketSize = 65535

// FromArrays - collapse parallel attribute arrays into a basket
//
// the wire encoding used by some clients carries separate arrays for
// kind, contract, unit id and amount; shape is validated once here so
// raw arrays are never threaded through internal calls
func FromArrays(
	kinds []Kind,
	contracts []account.Account,
	unitIds []*uint256.Int,
	amounts []*uint256.Int,
) (Basket, error) {

	n := len(kinds)
	if len(contracts) != n || len(unitIds) != n || len(amounts) != n {
		return nil, fault.LengthMismatch
	}
	if n > maximumBasketSize {
		return nil, fault.InvalidCount
	}

	basket := make(Basket, 0, n)
	for i := 0; i < n; i += 1 {
		switch kinds[i] {
		case Fungible:
			basket = append(basket, NewFungible(contracts[i], u256(amounts[i])))
		case NonFungible:
			basket = append(basket, NewNonFungible(contracts[i], u256(unitIds[i])))
		default:
			return nil, fault.UnknownAssetType
		}
	}
	return basket, nil
}

// Check - validate every descriptor kind is in the known domain and
// the basket fits one packed record
func (basket Basket) Check() error {
	if len(basket) > maximumBasketSize {
		return fault.InvalidCount
	}
	for _, d := range basket {
		if !d.Kind.IsValid() {
			return fault.UnknownAssetType
		}
	}
	return nil
}

// IsTransferable - a basket is transferable when every entry names a
// concrete asset: valid kind and no wildcard sentinel
//
// wildcard is a request-side matching construct, never a literal
// transferable unit
func (basket Basket) IsTransferable() bool {
	for _, d := range basket {
		if !d.Kind.IsValid() || d.IsAnyUnit() {
			return false
		}
	}
	return true
}

// Copy - deep copy so stored baskets stay immutable
func (basket Basket) Copy() Basket {
	duplicate := make(Basket, 0, len(basket))
	for _, d := range basket {
		duplicate = append(duplicate, Descriptor{
			Kind:     d.Kind,
			Contract: d.Contract,
			UnitID:   new(uint256.Int).Set(u256(d.UnitID)),
			Amount:   new(uint256.Int).Set(u256(d.Amount)),
		})
	}
	return duplicate
}

// Pack - count prefixed sequence of packed descriptors
func (basket Basket) Pack() []byte {
	buffer := make([]byte, 2, 2+len(basket)*PackedDescriptorSize)
	binary.BigEndian.PutUint16(buffer, uint16(len(basket)))
	for _, d := range basket {
		buffer = append(buffer, d.Pack()...)
	}
	return buffer
}

// UnpackBasket - unpack one basket returning any unconsumed bytes
func UnpackBasket(buffer []byte) (Basket, []byte, error) {
	if len(buffer) < 2 {
		return nil, nil, fault.RecordCorrupt
	}
	count := int(binary.BigEndian.Uint16(buffer))
	buffer = buffer[2:]
	if len(buffer) < count*PackedDescriptorSize {
		return nil, nil, fault.RecordCorrupt
	}

	basket := make(Basket, 0, count)
	for i := 0; i < count; i += 1 {
		d, err := UnpackDescriptor(buffer[:PackedDescriptorSize])
		if nil != err {
			return nil, nil, err
		}
		basket = append(basket, d)
		buffer = buffer[PackedDescriptorSize:]
	}
	return basket, buffer, nil
}
