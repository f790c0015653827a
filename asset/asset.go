// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"github.com/holiman/uint256"

	"github.com/bitmark-inc/barterd/account"
	"github.com/bitmark-inc/barterd/fault"
)

// Kind - class of an asset descriptor
type Kind byte

// possible kinds
const (
	Fungible Kind = iota
	NonFungible
	kindLimit // one greater than the last valid kind
)

// PackedDescriptorSize - bytes in one packed descriptor record
//
// layout: kind(1) || contract(20) || unit id(32) || amount(32)
const PackedDescriptorSize = 1 + account.Size + 32 + 32

// IsValid - check kind is in the known domain
func (kind Kind) IsValid() bool {
	return kind < kindLimit
}

// String - kind represented as a string
func (kind Kind) String() string {
	switch kind {
	case Fungible:
		return "fungible"
	case NonFungible:
		return "non-fungible"
	default:
		return "*unknown*"
	}
}

// MarshalText - for JSON encoding
func (kind Kind) MarshalText() ([]byte, error) {
	if !kind.IsValid() {
		return nil, fault.UnknownAssetType
	}
	return []byte(kind.String()), nil
}

// UnmarshalText - for JSON decoding
func (kind *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "fungible":
		*kind = Fungible
	case "non-fungible":
		*kind = NonFungible
	default:
		return fault.UnknownAssetType
	}
	return nil
}

// Descriptor - one unit of exchange
//
// for Fungible the amount is the transferable quantity and the unit id
// is unused; for NonFungible the unit id identifies the unit and the
// amount is unused; immutable once stored in a request or ledger slot
type Descriptor struct {
	Kind     Kind            `json:"kind"`
	Contract account.Account `json:"contract"`
	UnitID   *uint256.Int    `json:"unitId"`
	Amount   *uint256.Int    `json:"amount"`
}

// AnyUnit - the wildcard sentinel unit id
func AnyUnit() *uint256.Int {
	return new(uint256.Int).SetAllOne()
}

// NewFungible - descriptor for an exact quantity of a fungible asset
func NewFungible(contract account.Account, amount *uint256.Int) Descriptor {
	return Descriptor{
		Kind:     Fungible,
		Contract: contract,
		UnitID:   new(uint256.Int),
		Amount:   new(uint256.Int).Set(amount),
	}
}

// NewNonFungible - descriptor for a single unit of a collection
func NewNonFungible(contract account.Account, unitId *uint256.Int) Descriptor {
	return Descriptor{
		Kind:     NonFungible,
		Contract: contract,
		UnitID:   new(uint256.Int).Set(unitId),
		Amount:   new(uint256.Int),
	}
}

// IsAnyUnit - check for a wildcard non-fungible descriptor
func (d Descriptor) IsAnyUnit() bool {
	return NonFungible == d.Kind && nil != d.UnitID && d.UnitID.Eq(AnyUnit())
}

// Match - check a concrete proposed descriptor against this requested one
//
// kind and contract must be identical; fungible entries need exact
// amount equality; non-fungible entries need exact unit id equality
// unless this side carries the wildcard sentinel
func (d Descriptor) Match(proposed Descriptor) bool {
	if d.Kind != proposed.Kind || d.Contract != proposed.Contract {
		return false
	}
	switch d.Kind {
	case Fungible:
		return u256(d.Amount).Eq(u256(proposed.Amount))
	case NonFungible:
		if d.IsAnyUnit() {
			return true
		}
		return u256(d.UnitID).Eq(u256(proposed.UnitID))
	default:
		return false
	}
}

// Equal - exact descriptor equality
func (d Descriptor) Equal(other Descriptor) bool {
	return d.Kind == other.Kind &&
		d.Contract == other.Contract &&
		u256(d.UnitID).Eq(u256(other.UnitID)) &&
		u256(d.Amount).Eq(u256(other.Amount))
}

// Pack - fixed width binary record for storage
func (d Descriptor) Pack() []byte {
	buffer := make([]byte, 0, PackedDescriptorSize)
	buffer = append(buffer, byte(d.Kind))
	buffer = append(buffer, d.Contract.Bytes()...)
	unitId := u256(d.UnitID).Bytes32()
	buffer = append(buffer, unitId[:]...)
	amount := u256(d.Amount).Bytes32()
	buffer = append(buffer, amount[:]...)
	return buffer
}

// UnpackDescriptor - inverse of Pack
func UnpackDescriptor(buffer []byte) (Descriptor, error) {
	var d Descriptor
	if PackedDescriptorSize != len(buffer) {
		return d, fault.RecordCorrupt
	}
	d.Kind = Kind(buffer[0])
	if !d.Kind.IsValid() {
		return d, fault.RecordCorrupt
	}
	n := 1
	copy(d.Contract[:], buffer[n:n+account.Size])
	n += account.Size
	d.UnitID = new(uint256.Int).SetBytes(buffer[n : n+32])
	n += 32
	d.Amount = new(uint256.Int).SetBytes(buffer[n : n+32])
	return d, nil
}

// treat a nil big value as zero
func u256(x *uint256.Int) *uint256.Int {
	if nil == x {
		return new(uint256.Int)
	}
	return x
}
