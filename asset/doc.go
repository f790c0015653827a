// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package asset - descriptors for units of exchange
//
// a descriptor names either an exact quantity of a fungible asset or a
// single unit of a non-fungible collection; a reserved maximum unit id
// acts as a request-side wildcard meaning any unit of the collection
package asset
