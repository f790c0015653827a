// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// a single LevelDB database split into prefixed pools:
//
//   Requests           id                - packed barter request
//   RequestOwnerCount  requester        - number of requests created
//   RequestOwnerList   requester ++ BN  - request id, for discovery
//   Withdrawals        owner            - packed withdrawable basket
//   Treasury           tag              - fee and balance values
//   Metadata           tag              - next request id
//
// every write belonging to one engine operation is staged in a single
// batched transaction so the operation commits entirely or not at all
package storage
