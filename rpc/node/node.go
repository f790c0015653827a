// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/barterd/counter"
	"github.com/bitmark-inc/barterd/engine"
	"github.com/bitmark-inc/barterd/request"
	"github.com/bitmark-inc/barterd/rpc/ratelimit"
	"github.com/bitmark-inc/barterd/treasury"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	start   time.Time
	version string
	counter *counter.Counter
}

// New - create the node service
func New(log *logger.L, start time.Time, version string, connections *counter.Counter) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		start:   start,
		version: version,
		counter: connections,
	}
}

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// Counters - running totals of engine activity
type Counters struct {
	EscrowIn     uint64 `json:"escrowIn"`
	LedgerCredit uint64 `json:"ledgerCredit"`
	Withdrawal   uint64 `json:"withdrawal"`
}

// InfoReply - results from info request
type InfoReply struct {
	Version     string   `json:"version"`
	Uptime      string   `json:"uptime"`
	Connections uint64   `json:"connections"`
	NextId      uint64   `json:"nextId,string"`
	Fee         uint64   `json:"fee,string"`
	Counters    Counters `json:"counters"`
}

// Info - return enough information for clients to determine node state
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	escrowIn, ledgerCredit, withdrawal := engine.Counts()

	reply.Version = node.version
	reply.Uptime = time.Since(node.start).String()
	reply.Connections = node.counter.Uint64()
	reply.NextId = request.NextId()
	reply.Fee = treasury.CurrentFee()
	reply.Counters = Counters{
		EscrowIn:     escrowIn,
		LedgerCredit: ledgerCredit,
		Withdrawal:   withdrawal,
	}
	return nil
}
