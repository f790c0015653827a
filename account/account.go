// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/barterd/fault"
)

// miscellaneous constants
const (
	Size           = 20 // bytes in an account identifier
	checksumLength = 4  // bytes of sha3-256 appended before encoding
)

// Account - identifies an owner or an asset contract
//
// the external representation is Base58 of: identifier || checksum
// where checksum is the first 4 bytes of SHA3-256(identifier)
type Account [Size]byte

// Bytes - raw identifier bytes
func (account Account) Bytes() []byte {
	return account[:]
}

// IsZero - check for the all-zero account
func (account Account) IsZero() bool {
	for _, b := range account {
		if 0 != b {
			return false
		}
	}
	return true
}

// String - Base58 with checksum
func (account Account) String() string {
	buffer := make([]byte, 0, Size+checksumLength)
	buffer = append(buffer, account[:]...)
	checksum := sha3.Sum256(account[:])
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// AccountFromBase58 - decode and checksum an external representation
func AccountFromBase58(accountBase58Encoded string) (Account, error) {
	var account Account

	decoded, err := base58.Decode(accountBase58Encoded)
	if nil != err {
		return account, fault.CannotDecodeAccount
	}
	if Size+checksumLength != len(decoded) {
		return account, fault.CannotDecodeAccount
	}

	checksum := sha3.Sum256(decoded[:Size])
	for i := 0; i < checksumLength; i += 1 {
		if checksum[i] != decoded[Size+i] {
			return account, fault.CannotDecodeAccount
		}
	}

	copy(account[:], decoded[:Size])
	return account, nil
}

// MarshalText - for JSON encoding
func (account Account) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// UnmarshalText - for JSON decoding
func (account *Account) UnmarshalText(text []byte) error {
	a, err := AccountFromBase58(string(text))
	if nil != err {
		return err
	}
	*account = a
	return nil
}
