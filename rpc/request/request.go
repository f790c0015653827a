// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package request

import (
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/barterd/account"
	"github.com/bitmark-inc/barterd/asset"
	"github.com/bitmark-inc/barterd/engine"
	"github.com/bitmark-inc/barterd/request"
	"github.com/bitmark-inc/barterd/rpc/ratelimit"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitRequest = 200
	rateBurstRequest = 100

	// limit for Index count
	maximumIndexCount = 100

	// terminal records never change so a short cache soaks up
	// repeated polling after completion
	cacheExpiry  = 2 * time.Minute
	cacheCleanup = 5 * time.Minute
)

// Request - type for the RPC
type Request struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	terminal *gocache.Cache
}

// New - create the request service
func New(log *logger.L) *Request {
	return &Request{
		Log:      log,
		Limiter:  rate.NewLimiter(rateLimitRequest, rateBurstRequest),
		terminal: gocache.New(cacheExpiry, cacheCleanup),
	}
}

// ---

// CreateArguments - arguments for barter request creation
type CreateArguments struct {
	Requester account.Account `json:"requester"`
	Offered   asset.Basket    `json:"offered"`
	Requested asset.Basket    `json:"requested"`
	Payment   uint64          `json:"payment,string"`
}

// CreateReply - result of creation
type CreateReply struct {
	RequestId uint64 `json:"requestId,string"`
}

// Create - escrow an offered basket against a requested one
func (r *Request) Create(arguments *CreateArguments, reply *CreateReply) error {

	if err := ratelimit.Limit(r.Limiter); nil != err {
		return err
	}

	r.Log.Infof("Request.Create: %+v", arguments)

	id, err := engine.CreateRequest(arguments.Requester, arguments.Offered, arguments.Requested, arguments.Payment)
	if nil != err {
		return err
	}
	reply.RequestId = id
	return nil
}

// ---

// CancelArguments - arguments to cancel a pending request
type CancelArguments struct {
	Caller    account.Account `json:"caller"`
	RequestId uint64          `json:"requestId,string"`
}

// CancelReply - result of cancellation
type CancelReply struct {
	RequestId uint64        `json:"requestId,string"`
	State     request.State `json:"state"`
}

// Cancel - return a pending request's escrow to its creator
func (r *Request) Cancel(arguments *CancelArguments, reply *CancelReply) error {

	if err := ratelimit.Limit(r.Limiter); nil != err {
		return err
	}

	r.Log.Infof("Request.Cancel: %+v", arguments)

	if err := engine.Cancel(arguments.Caller, arguments.RequestId); nil != err {
		return err
	}
	reply.RequestId = arguments.RequestId
	reply.State = request.Cancelled
	return nil
}

// ---

// AcceptArguments - arguments to complete a pending request
type AcceptArguments struct {
	Caller    account.Account `json:"caller"`
	RequestId uint64          `json:"requestId,string"`
	Proposal  asset.Basket    `json:"proposal"`
}

// AcceptReply - result of acceptance
type AcceptReply struct {
	RequestId uint64        `json:"requestId,string"`
	State     request.State `json:"state"`
}

// Accept - complete a pending request with a matching proposal
func (r *Request) Accept(arguments *AcceptArguments, reply *AcceptReply) error {

	if err := ratelimit.Limit(r.Limiter); nil != err {
		return err
	}

	r.Log.Infof("Request.Accept: %+v", arguments)

	if err := engine.Accept(arguments.Caller, arguments.RequestId, arguments.Proposal); nil != err {
		return err
	}
	reply.RequestId = arguments.RequestId
	reply.State = request.Completed
	return nil
}

// ---

// GetArguments - arguments to fetch one request record
type GetArguments struct {
	RequestId uint64 `json:"requestId,string"`
}

// GetReply - the full request record
type GetReply struct {
	Request *request.Request `json:"request"`
}

// Get - fetch one request record by id
func (r *Request) Get(arguments *GetArguments, reply *GetReply) error {

	if err := ratelimit.Limit(r.Limiter); nil != err {
		return err
	}

	key := strconv.FormatUint(arguments.RequestId, 10)
	if cached, ok := r.terminal.Get(key); ok {
		reply.Request = cached.(*request.Request)
		return nil
	}

	record, err := request.Fetch(arguments.RequestId)
	if nil != err {
		return err
	}
	if request.Pending != record.State {
		r.terminal.Set(key, record, gocache.DefaultExpiration)
	}

	reply.Request = record
	return nil
}

// ---

// IndexArguments - a page of an owner's request history
type IndexArguments struct {
	Owner account.Account `json:"owner"`
	Start uint64          `json:"start,string"`
	Count int             `json:"count"`
}

// IndexReply - ids in creation order
type IndexReply struct {
	RequestIds []uint64 `json:"requestIds"`
	NextStart  uint64   `json:"nextStart,string"`
}

// Index - list request ids created by an account
func (r *Request) Index(arguments *IndexArguments, reply *IndexReply) error {

	if err := ratelimit.LimitN(r.Limiter, arguments.Count, maximumIndexCount); nil != err {
		return err
	}

	ids, err := request.ListFor(arguments.Owner, arguments.Start, arguments.Count)
	if nil != err {
		return err
	}
	reply.RequestIds = ids
	reply.NextStart = arguments.Start + uint64(len(ids))
	return nil
}

// ---

// NextArguments - empty arguments
type NextArguments struct{}

// NextReply - the id the next created request will get
type NextReply struct {
	NextId uint64 `json:"nextId,string"`
}

// Next - the next id to be assigned
func (r *Request) Next(_ *NextArguments, reply *NextReply) error {

	if err := ratelimit.Limit(r.Limiter); nil != err {
		return err
	}

	reply.NextId = request.NextId()
	return nil
}
