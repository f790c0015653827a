// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// IsErrExists - determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }

// common errors - keep in alphabetic order
var (
	AlreadyInitialised            = ProcessError("already initialised")
	AssetTransferFailed           = ProcessError("asset transfer failed")
	CannotDecodeAccount           = InvalidError("cannot decode account")
	CertificateFileAlreadyExists  = ExistsError("certificate file already exists")
	DuplicateOrUnsortedIndices    = InvalidError("indices are duplicated or unsorted")
	IncorrectFee                  = InvalidError("incorrect fee")
	IndicesCannotBeEmpty          = LengthError("indices cannot be empty")
	InvalidCount                  = InvalidError("invalid count")
	InvalidIpAddress              = InvalidError("invalid ip Address")
	KeyFileAlreadyExists          = ExistsError("key file already exists")
	LedgerEntryNotFound           = NotFoundError("ledger entry does not exist")
	LengthMismatch                = LengthError("attribute array lengths mismatch")
	MissingParameters             = LengthError("missing parameters")
	NoReentrantCall               = ProcessError("re-entrant call is not allowed")
	NotInitialised                = ProcessError("not initialised")
	NothingToWithdraw             = NotFoundError("nothing to withdraw")
	OfferCannotBeEmpty            = LengthError("offered basket cannot be empty")
	OnlyAdministrator             = InvalidError("only the administrator can do this")
	OnlyRequester                 = InvalidError("only the requester can do this")
	ProposalNotValid              = InvalidError("proposal is not valid")
	ProposalRequestLengthMismatch = LengthError("proposal length does not match request")
	RateLimiting                  = ProcessError("rate limiting")
	RecordCorrupt                 = ProcessError("record corrupt")
	RequestNotFound               = NotFoundError("request does not exist")
	RequestNotPending             = InvalidError("request is not pending")
	UnknownAssetType              = InvalidError("unknown asset type")
	WildcardNotTransferable       = InvalidError("wildcard unit is not transferable")
)
