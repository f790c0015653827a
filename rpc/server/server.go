// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/barterd/counter"
	"github.com/bitmark-inc/barterd/rpc/ledger"
	"github.com/bitmark-inc/barterd/rpc/node"
	"github.com/bitmark-inc/barterd/rpc/request"
	"github.com/bitmark-inc/barterd/rpc/treasury"
	"github.com/bitmark-inc/logger"
)

// Create - make an RPC server with all services registered
func Create(log *logger.L, version string, rpcCount *counter.Counter) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(request.New(log))
	_ = server.Register(ledger.New(log))
	_ = server.Register(treasury.New(log))
	_ = server.Register(node.New(log, start, version, rpcCount))

	return server
}
